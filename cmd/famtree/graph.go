package main

import (
	"context"
	"fmt"

	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/metrics"
	"github.com/dusk-indust/famtree/internal/navigation"
	"github.com/dusk-indust/famtree/internal/orchestrator"
)

// loadGraph reads --input when given, else the family index.
func (a *app) loadGraph(ctx context.Context) (*family.Graph, error) {
	var (
		g   *family.Graph
		err error
	)
	if a.input != "" {
		g, err = family.LoadFile(a.input)
	} else {
		g, err = loadIndex(ctx, a.indexPath())
	}
	if err != nil {
		return nil, err
	}
	for _, w := range g.Warnings() {
		logger.Warn("family graph", "warning", w)
	}
	metrics.GraphPeople.Set(float64(g.Len()))
	logger.Debug("family graph loaded", "people", g.Len())
	return g, nil
}

// genFlags are the generation settings that flags can override.
type genFlags struct {
	outputDir   string
	format      string
	stubs       bool
	overview    bool
	concurrency int
}

// newPipeline builds a Pipeline from configuration overlaid with flags. The
// sink is S3 when the project configures a bucket, else the output directory.
func (a *app) newPipeline(f genFlags, stubsSet, overviewSet bool) (*orchestrator.Pipeline, error) {
	formatName := a.cfg.Format
	if f.format != "" {
		formatName = f.format
	}
	format, err := export.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}

	nav := navigation.Options{Stubs: a.cfg.Stubs, Overview: a.cfg.Overview}
	if stubsSet {
		nav.Stubs = f.stubs
	}
	if overviewSet {
		nav.Overview = f.overview
	}
	concurrency := a.cfg.Concurrency
	if f.concurrency > 0 {
		concurrency = f.concurrency
	}
	cacheSize := a.cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = orchestrator.DefaultCacheSize
	}

	planner, err := orchestrator.NewPlanner(cacheSize)
	if err != nil {
		return nil, err
	}
	sink, err := a.newSink(f.outputDir)
	if err != nil {
		return nil, err
	}
	return orchestrator.NewPipeline(orchestrator.Config{
		Format:      format,
		Navigation:  nav,
		Concurrency: concurrency,
	}, planner, sink), nil
}

func (a *app) newSink(outputDir string) (export.Sink, error) {
	if a.cfg.S3.Enabled() {
		sink, err := export.NewS3Sink(a.cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 sink: %w", err)
		}
		return &export.ManifestMirror{Remote: sink, Local: export.NewFileSink(a.outputDir(outputDir))}, nil
	}
	return export.NewFileSink(a.outputDir(outputDir)), nil
}
