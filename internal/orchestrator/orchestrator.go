// Package orchestrator ties partitioning to artifact emission. A Planner
// computes and caches Plans; a Pipeline previews plans and later generates
// exactly the partitions a preview showed.
package orchestrator

import (
	"context"

	"github.com/dusk-indust/famtree/internal/family"
	"github.com/dusk-indust/famtree/internal/partition"
)

// Stage identifies a step of a generation run.
type Stage int

const (
	StagePlan     Stage = 0
	StageNavigate Stage = 1
	StageEmit     Stage = 2
	StageManifest Stage = 3

	stageCount = 4
)

func (s Stage) String() string {
	names := [...]string{
		"plan",
		"navigate",
		"emit",
		"manifest",
	}
	if int(s) >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// ProgressEvent is emitted to the user during a run.
type ProgressEvent struct {
	Stage   Stage
	Section string
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a section within a stage.
type ProgressStatus string

const (
	ProgressPending  ProgressStatus = "pending"
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// Orchestrator previews and generates partitionings.
type Orchestrator interface {
	// Preview computes (or reuses) the plan for g and cfg.
	Preview(ctx context.Context, g *family.Graph, cfg partition.Config) (*Plan, error)

	// Generate emits the artifacts of a previously previewed plan.
	Generate(ctx context.Context, planID string) (*Generation, error)

	// Progress returns a channel that emits progress events.
	Progress() <-chan ProgressEvent
}
