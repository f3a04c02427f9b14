package mcptools

import (
	"github.com/dusk-indust/famtree/internal/export"
	"github.com/dusk-indust/famtree/internal/partition"
)

// --- MCP Tool Types for the family partitioning server (serve-mcp) ---
// Every tool that needs a family graph accepts either a file path or inline
// content. When both are empty the server's default graph is used.

// FamilyInput selects the family graph a tool works on.
type FamilyInput struct {
	Path    string `json:"path,omitempty" jsonschema:"path to a family file (.json, .yml or .yaml)"`
	Content string `json:"content,omitempty" jsonschema:"inline family document with a top-level people list"`
	Format  string `json:"format,omitempty" jsonschema:"format of inline content: yaml (default) or json"`
}

// PreviewInput is the input for the preview_partitions MCP tool.
type PreviewInput struct {
	Family         FamilyInput `json:"family,omitempty" jsonschema:"family graph to partition"`
	Strategy       string      `json:"strategy" jsonschema:"strategy document with a strategy field, e.g. {\"strategy\":\"surname\",\"surnames\":[\"Smith\"]}"`
	StrategyFormat string      `json:"strategyFormat,omitempty" jsonschema:"format of the strategy document: json (default) or yaml"`
}

// PreviewOutput is the result of the preview_partitions MCP tool.
type PreviewOutput struct {
	PlanID        string            `json:"planId"`
	Summary       partition.Summary `json:"summary"`
	GraphWarnings []string          `json:"graphWarnings,omitempty"`
}

// GenerateInput is the input for the generate_partitions MCP tool.
type GenerateInput struct {
	PlanID    string `json:"planId" jsonschema:"plan id returned by preview_partitions"`
	OutputDir string `json:"outputDir,omitempty" jsonschema:"directory to write artifacts to (default: the configured output)"`
}

// GenerateOutput is the result of the generate_partitions MCP tool.
type GenerateOutput struct {
	PlanID    string          `json:"planId"`
	Manifest  string          `json:"manifest,omitempty"`
	Artifacts []export.Result `json:"artifacts"`
	Failed    int             `json:"failed"`
	Status    string          `json:"status"` // "completed", "partial" or "failed"
	Message   string          `json:"message,omitempty"`
}

// LineageInput is the input for the find_lineage MCP tool.
type LineageInput struct {
	Family  FamilyInput `json:"family,omitempty" jsonschema:"family graph to search"`
	StartID string      `json:"startId" jsonschema:"id of the first person"`
	EndID   string      `json:"endId" jsonschema:"id of the second person"`
}

// PathStep is one person on a lineage path.
type PathStep struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LineageOutput is the result of the find_lineage MCP tool.
type LineageOutput struct {
	Found   bool       `json:"found"`
	Path    []PathStep `json:"path,omitempty"`
	Message string     `json:"message,omitempty"`
}

// StatsInput is the input for the graph_stats MCP tool.
type StatsInput struct {
	Family FamilyInput `json:"family,omitempty" jsonschema:"family graph to summarize"`
}

// StatsOutput is the result of the graph_stats MCP tool.
type StatsOutput struct {
	People      int      `json:"people"`
	ParentEdges int      `json:"parentEdges"`
	SpouseEdges int      `json:"spouseEdges"`
	Collections int      `json:"collections"`
	Fingerprint string   `json:"fingerprint"`
	Warnings    []string `json:"warnings,omitempty"`
}

// RunStatusInput is the input for the get_run_status MCP tool.
type RunStatusInput struct {
	OutputDir string `json:"outputDir,omitempty" jsonschema:"output directory to inspect (default: the configured output)"`
}

// RunSummary is a brief overview of one generation run.
type RunSummary struct {
	Dir         string             `json:"dir"`
	PlanID      string             `json:"planId"`
	Strategy    partition.Strategy `json:"strategy"`
	TotalPeople int                `json:"totalPeople"`
	Artifacts   int                `json:"artifacts"`
	Failed      int                `json:"failed"`
	Missing     int                `json:"missing"`
	Complete    bool               `json:"complete"`
}

// RunStatusOutput is the result of the get_run_status MCP tool.
type RunStatusOutput struct {
	Runs []RunSummary `json:"runs"`
}
