package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/famtree/internal/config"
	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/logger"
	"github.com/dusk-indust/famtree/internal/metrics"
	"github.com/dusk-indust/famtree/internal/orchestrator"
	"github.com/dusk-indust/famtree/internal/partition"
	"github.com/dusk-indust/famtree/internal/status"
	"github.com/dusk-indust/famtree/internal/traverse"
)

// GraphSource supplies the default family graph when a tool call names
// neither a file nor inline content.
type GraphSource func(ctx context.Context) (*family.Graph, error)

// FamilyService handles MCP tool calls. It wraps a Pipeline so that plans
// previewed through one tool can be generated through another.
type FamilyService struct {
	pipeline  *orchestrator.Pipeline
	source    GraphSource
	outputDir string
}

// NewFamilyService creates a FamilyService. source may be nil, in which case
// every call must carry its own family input. outputDir is where
// get_run_status looks when the call names no directory.
func NewFamilyService(pipeline *orchestrator.Pipeline, source GraphSource, outputDir string) *FamilyService {
	return &FamilyService{
		pipeline:  pipeline,
		source:    source,
		outputDir: outputDir,
	}
}

// PreviewPartitions computes (or reuses) a plan and returns its summary.
func (s *FamilyService) PreviewPartitions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PreviewInput,
) (*mcp.CallToolResult, PreviewOutput, error) {
	if strings.TrimSpace(input.Strategy) == "" {
		return nil, PreviewOutput{}, fmt.Errorf("%w: strategy document is required", partition.ErrInvalidConfig)
	}
	cfg, err := config.ParseStrategy([]byte(input.Strategy), strategyExt(input.StrategyFormat, input.Strategy))
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	g, err := s.loadGraph(ctx, input.Family)
	if err != nil {
		return nil, PreviewOutput{}, err
	}

	plan, err := s.pipeline.Preview(ctx, g, cfg)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	return nil, PreviewOutput{
		PlanID:        plan.ID,
		Summary:       plan.Summary,
		GraphWarnings: g.Warnings(),
	}, nil
}

// GeneratePartitions emits the artifacts of a previewed plan.
func (s *FamilyService) GeneratePartitions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	if input.PlanID == "" {
		return nil, GenerateOutput{}, errors.New("planId is required")
	}

	var (
		gen *orchestrator.Generation
		err error
	)
	if input.OutputDir != "" {
		gen, err = s.pipeline.GenerateTo(ctx, input.PlanID, export.NewFileSink(input.OutputDir))
	} else {
		gen, err = s.pipeline.Generate(ctx, input.PlanID)
	}
	if gen == nil {
		return nil, GenerateOutput{}, err
	}

	return nil, NewGenerateOutput(gen, err), nil
}

// NewGenerateOutput reports on a generation. err is the manifest write
// failure returned alongside gen, if any.
func NewGenerateOutput(gen *orchestrator.Generation, err error) GenerateOutput {
	out := GenerateOutput{
		PlanID:    gen.Plan.ID,
		Manifest:  gen.ManifestPath,
		Artifacts: gen.Results,
		Failed:    gen.Failed(),
	}
	switch {
	case err != nil:
		out.Status = "failed"
		out.Message = err.Error()
	case out.Failed == 0:
		out.Status = "completed"
	case out.Failed == len(out.Artifacts):
		out.Status = "failed"
	default:
		out.Status = "partial"
	}
	return out
}

// FindLineage returns the direct-line path between two people.
func (s *FamilyService) FindLineage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LineageInput,
) (*mcp.CallToolResult, LineageOutput, error) {
	g, err := s.loadGraph(ctx, input.Family)
	if err != nil {
		return nil, LineageOutput{}, err
	}
	if !g.Has(input.StartID) {
		return nil, LineageOutput{}, &partition.NotFoundError{Role: "start", ID: input.StartID}
	}
	if !g.Has(input.EndID) {
		return nil, LineageOutput{}, &partition.NotFoundError{Role: "end", ID: input.EndID}
	}

	path, ok := traverse.ShortestPath(g, input.StartID, input.EndID)
	if !ok {
		return nil, LineageOutput{
			Message: fmt.Sprintf("no path found between %s and %s", input.StartID, input.EndID),
		}, nil
	}
	steps := make([]PathStep, len(path))
	for i, id := range path {
		steps[i] = PathStep{ID: id, Name: g.Name(id)}
	}
	return nil, LineageOutput{Found: true, Path: steps}, nil
}

// GraphStats summarizes a family graph.
func (s *FamilyService) GraphStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	g, err := s.loadGraph(ctx, input.Family)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	st := g.Stats()
	return nil, StatsOutput{
		People:      st.PersonCount,
		ParentEdges: st.ParentEdges,
		SpouseEdges: st.SpouseEdges,
		Collections: st.Collections,
		Fingerprint: g.Fingerprint(),
		Warnings:    g.Warnings(),
	}, nil
}

// GetRunStatus lists the generation runs found under an output directory.
func (s *FamilyService) GetRunStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RunStatusInput,
) (*mcp.CallToolResult, RunStatusOutput, error) {
	dir := input.OutputDir
	if dir == "" {
		dir = s.outputDir
	}
	if dir == "" {
		return nil, RunStatusOutput{}, errors.New("outputDir is required")
	}

	out := RunStatusOutput{Runs: []RunSummary{}}
	for _, rs := range status.ListRuns(dir) {
		out.Runs = append(out.Runs, RunSummary{
			Dir:         rs.Dir,
			PlanID:      rs.PlanID,
			Strategy:    rs.Strategy,
			TotalPeople: rs.TotalPeople,
			Artifacts:   len(rs.Artifacts),
			Failed:      rs.Failed(),
			Missing:     rs.Missing(),
			Complete:    rs.Complete(),
		})
	}
	return nil, out, nil
}

// loadGraph resolves a FamilyInput: inline content first, then a file path,
// then the default source.
func (s *FamilyService) loadGraph(ctx context.Context, in FamilyInput) (*family.Graph, error) {
	var (
		g   *family.Graph
		err error
	)
	switch {
	case strings.TrimSpace(in.Content) != "":
		var doc *family.Document
		doc, err = family.Parse([]byte(in.Content), familyExt(in.Format))
		if err != nil {
			return nil, fmt.Errorf("parse family content: %w", err)
		}
		g = family.NewGraph(doc.People)
	case in.Path != "":
		g, err = family.LoadFile(in.Path)
	case s.source != nil:
		g, err = s.source(ctx)
	default:
		return nil, errors.New("no family graph: pass a path or inline content")
	}
	if err != nil {
		return nil, err
	}
	metrics.GraphPeople.Set(float64(g.Len()))
	logger.Debug("family graph loaded", "people", g.Len(), "warnings", len(g.Warnings()))
	return g, nil
}

func familyExt(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return ".json"
	}
	return ".yaml"
}

// strategyExt picks the decoder for a strategy document. Without an explicit
// format, a document starting with '{' is read as JSON.
func strategyExt(format, doc string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return ".json"
	case "yaml", "yml":
		return ".yaml"
	}
	if strings.HasPrefix(strings.TrimSpace(doc), "{") {
		return ".json"
	}
	return ".yaml"
}
