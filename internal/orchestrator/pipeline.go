package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/navigation"
	"github.com/dusk-indust/famtree/internal/partition"
)

// Compile-time interface check.
var _ Orchestrator = (*Pipeline)(nil)

// Generation is the outcome of one Generate call.
type Generation struct {
	Plan         *Plan
	Navigation   *navigation.Navigation
	Results      []export.Result
	ManifestPath string
}

// Failed counts results that did not succeed.
func (g *Generation) Failed() int {
	n := 0
	for _, r := range g.Results {
		if !r.Success {
			n++
		}
	}
	return n
}

// Pipeline implements Orchestrator. Preview goes through the Planner, so the
// partitioning a caller sees is the one Generate later emits.
type Pipeline struct {
	cfg      Config
	planner  *Planner
	sink     export.Sink
	progress *ProgressReporter
}

// NewPipeline creates a Pipeline writing to sink by default.
func NewPipeline(cfg Config, planner *Planner, sink export.Sink) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		planner:  planner,
		sink:     sink,
		progress: NewProgressReporter(),
	}
}

// Preview computes or reuses the plan for g and cfg.
func (p *Pipeline) Preview(ctx context.Context, g *family.Graph, cfg partition.Config) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.progress.Emit(ProgressEvent{Stage: StagePlan, Section: strategyName(cfg), Status: ProgressWorking})
	plan, err := p.planner.Plan(g, cfg)
	if err != nil {
		p.progress.Emit(ProgressEvent{Stage: StagePlan, Section: strategyName(cfg), Status: ProgressFailed, Message: err.Error()})
		return nil, err
	}
	p.progress.Emit(ProgressEvent{Stage: StagePlan, Section: string(plan.Summary.Strategy), Status: ProgressComplete})
	return plan, nil
}

// Plan returns a previously previewed plan.
func (p *Pipeline) Plan(id string) (*Plan, error) {
	return p.planner.Get(id)
}

// Generate emits the plan with the given id to the default sink.
func (p *Pipeline) Generate(ctx context.Context, planID string) (*Generation, error) {
	return p.GenerateTo(ctx, planID, p.sink)
}

// GenerateTo emits the plan with the given id to sink.
//
// Navigation is synthesized first, since it needs every partition; then all
// artifacts are rendered and written in parallel. A failed artifact is
// recorded in the results and does not stop the others. The manifest is
// written last.
func (p *Pipeline) GenerateTo(ctx context.Context, planID string, sink export.Sink) (*Generation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan, err := p.planner.Get(planID)
	if err != nil {
		return nil, err
	}
	format := p.cfg.format()

	logger.Debug(FormatStageHeader(plan.ID, StageNavigate))
	p.progress.Emit(ProgressEvent{Stage: StageNavigate, Section: "cross-references", Status: ProgressWorking})
	nav := navigation.Synthesize(plan.Graph, plan.Partitioning, p.cfg.Navigation)
	p.progress.Emit(ProgressEvent{Stage: StageNavigate, Section: "cross-references", Status: ProgressComplete})

	tasks := make([]EmitTask, 0, len(plan.Partitioning.Partitions)+1)
	if nav.Overview != nil {
		tasks = append(tasks, EmitTask{
			Section: "Overview",
			Index:   export.OverviewIndex,
			Render:  func() (export.Artifact, error) { return export.RenderOverview(nav.Overview, format) },
		})
	}
	for i, part := range plan.Partitioning.Partitions {
		tasks = append(tasks, EmitTask{
			Section: part.Label,
			Index:   i,
			Render: func() (export.Artifact, error) {
				return export.RenderPartition(plan.Graph, plan.Partitioning, nav, i, format)
			},
		})
	}

	logger.Debug(FormatStageHeader(plan.ID, StageEmit), "artifacts", len(tasks))
	fanout := NewFanOut(sink, p.cfg.concurrency(), p.progress.Emit)
	gen := &Generation{
		Plan:       plan,
		Navigation: nav,
		Results:    fanout.Run(ctx, tasks),
	}

	logger.Debug(FormatStageHeader(plan.ID, StageManifest))
	p.progress.Emit(ProgressEvent{Stage: StageManifest, Section: export.ManifestName, Status: ProgressWorking})
	manifest := &export.Manifest{
		PlanID:      plan.ID,
		Strategy:    plan.Summary.Strategy,
		Format:      format,
		Fingerprint: plan.Graph.Fingerprint(),
		PlannedAt:   plan.CreatedAt,
		GeneratedAt: time.Now().UTC(),
		Summary:     plan.Summary,
		Results:     gen.Results,
	}
	loc, err := export.WriteManifest(ctx, sink, manifest)
	if err != nil {
		p.progress.Emit(ProgressEvent{Stage: StageManifest, Section: export.ManifestName, Status: ProgressFailed, Message: err.Error()})
		return gen, fmt.Errorf("write manifest: %w", err)
	}
	gen.ManifestPath = loc
	p.progress.Emit(ProgressEvent{Stage: StageManifest, Section: export.ManifestName, Status: ProgressComplete})

	logger.Info("generation finished",
		"plan", plan.ID,
		"strategy", plan.Summary.Strategy,
		"artifacts", len(gen.Results),
		"failed", gen.Failed(),
		"manifest", loc,
	)
	return gen, nil
}

// Progress returns a channel that emits progress events.
func (p *Pipeline) Progress() <-chan ProgressEvent {
	return p.progress.Subscribe()
}

// Close shuts down the progress reporter. Callers should invoke this when the
// pipeline is no longer needed.
func (p *Pipeline) Close() {
	p.progress.Close()
}

func strategyName(cfg partition.Config) string {
	if s := partition.StrategyOf(cfg); s != "" {
		return string(s)
	}
	return "unknown"
}
