package orchestrator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/famtree/internal/export"
)

// EmitTask describes one artifact to render and write.
type EmitTask struct {
	// Section names the task in progress events.
	Section string

	// Index is copied into the Result when rendering fails.
	Index int

	// Render produces the artifact. It runs on a worker goroutine.
	Render func() (export.Artifact, error)
}

// FanOut renders and writes artifacts in parallel with bounded
// concurrency. Tasks are independent: a failing task never cancels its
// siblings, and every task yields exactly one Result.
type FanOut struct {
	sink       export.Sink
	limit      int
	onProgress func(ProgressEvent)
}

// NewFanOut creates a FanOut writing to sink with at most limit tasks in
// flight. onProgress is called from worker goroutines; it may be nil.
func NewFanOut(sink export.Sink, limit int, onProgress func(ProgressEvent)) *FanOut {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	return &FanOut{
		sink:       sink,
		limit:      limit,
		onProgress: onProgress,
	}
}

// Run executes every task and returns their results in task order.
func (f *FanOut) Run(ctx context.Context, tasks []EmitTask) []export.Result {
	results := make([]export.Result, len(tasks))

	var g errgroup.Group
	g.SetLimit(f.limit)

	for _, task := range tasks {
		f.emit(ProgressEvent{Stage: StageEmit, Section: task.Section, Status: ProgressPending})
	}

	for i, task := range tasks {
		g.Go(func() error {
			f.emit(ProgressEvent{Stage: StageEmit, Section: task.Section, Status: ProgressWorking})

			artifact, err := task.Render()
			if err != nil {
				results[i] = export.Result{Partition: task.Section, Index: task.Index, Error: err.Error()}
			} else {
				results[i] = export.Emit(ctx, f.sink, artifact)
			}

			if results[i].Success {
				f.emit(ProgressEvent{Stage: StageEmit, Section: task.Section, Status: ProgressComplete})
			} else {
				f.emit(ProgressEvent{
					Stage:   StageEmit,
					Section: task.Section,
					Status:  ProgressFailed,
					Message: results[i].Error,
				})
			}
			// Failures are carried in results so siblings keep running.
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// emit sends a progress event if a callback is registered.
func (f *FanOut) emit(ev ProgressEvent) {
	if f.onProgress != nil {
		f.onProgress(ev)
	}
}
