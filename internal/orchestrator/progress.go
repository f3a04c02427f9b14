package orchestrator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dusk-indust/famtree/internal/logger"
)

// progressBuffer is the number of events a slow subscriber may fall behind
// before new events are dropped.
const progressBuffer = 64

// ProgressReporter fans progress events into a buffered channel. Emit never
// blocks: a generation run must not stall on a terminal that stopped reading.
type ProgressReporter struct {
	ch        chan ProgressEvent
	dropped   atomic.Int64
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewProgressReporter creates a ProgressReporter.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{ch: make(chan ProgressEvent, progressBuffer)}
}

// Emit queues event, or counts it as dropped when the buffer is full or the
// reporter is closed.
func (pr *ProgressReporter) Emit(event ProgressEvent) {
	pr.mu.RLock()
	defer pr.mu.RUnlock()
	if pr.closed {
		pr.dropped.Add(1)
		return
	}
	select {
	case pr.ch <- event:
	default:
		if pr.dropped.Add(1) == 1 {
			logger.Debug("progress buffer full, dropping events", "stage", event.Stage.String())
		}
	}
}

// Subscribe returns the event channel. It is closed by Close.
func (pr *ProgressReporter) Subscribe() <-chan ProgressEvent {
	return pr.ch
}

// Dropped reports how many events were discarded.
func (pr *ProgressReporter) Dropped() int64 {
	return pr.dropped.Load()
}

// Close closes the event channel. Later calls, and later Emits, are no-ops.
func (pr *ProgressReporter) Close() {
	pr.closeOnce.Do(func() {
		pr.mu.Lock()
		pr.closed = true
		close(pr.ch)
		pr.mu.Unlock()
	})
}

// FormatProgress renders a ProgressEvent as one status line, e.g.
// "  ✓ [emit] Paternal line".
func FormatProgress(event ProgressEvent) string {
	stage := event.Stage.String()
	switch event.Status {
	case ProgressPending:
		return fmt.Sprintf("  ○ [%s] %s (queued)", stage, event.Section)
	case ProgressWorking:
		return fmt.Sprintf("  ● [%s] %s...", stage, event.Section)
	case ProgressComplete:
		return fmt.Sprintf("  ✓ [%s] %s", stage, event.Section)
	case ProgressFailed:
		return fmt.Sprintf("  ✗ [%s] %s: %s", stage, event.Section, event.Message)
	default:
		return fmt.Sprintf("  ? [%s] %s", stage, event.Section)
	}
}

// FormatStageHeader names a stage of a plan's generation run, e.g.
// "plan 1f3c…: navigate (2/4)".
func FormatStageHeader(planID string, stage Stage) string {
	return fmt.Sprintf("plan %s: %s (%d/%d)", shortID(planID), stage.String(), int(stage)+1, stageCount)
}

// shortID keeps the first eight characters of a plan id.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8] + "…"
}
