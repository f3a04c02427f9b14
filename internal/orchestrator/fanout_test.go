package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dusk-indust/famtree/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSink records artifacts in memory. Names containing failOn are
// rejected.
type memSink struct {
	mu     sync.Mutex
	files  map[string][]byte
	failOn string
}

func (m *memSink) Put(_ context.Context, name string, data []byte) (string, error) {
	if m.failOn != "" && strings.Contains(name, m.failOn) {
		return "", errors.New("bucket unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[name] = data
	return "mem://" + name, nil
}

func (m *memSink) get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	return data, ok
}

func makeTasks(n int, render func(i int) (export.Artifact, error)) []EmitTask {
	tasks := make([]EmitTask, n)
	for i := range tasks {
		tasks[i] = EmitTask{
			Section: fmt.Sprintf("part-%d", i),
			Index:   i,
			Render:  func() (export.Artifact, error) { return render(i) },
		}
	}
	return tasks
}

func artifact(i int) export.Artifact {
	return export.Artifact{
		Partition: fmt.Sprintf("part-%d", i),
		Index:     i,
		Name:      fmt.Sprintf("%02d-part.mmd", i),
		Format:    export.FormatMermaid,
		Data:      []byte("graph TD\n"),
	}
}

func TestFanOut_AllTasksSucceed(t *testing.T) {
	sink := &memSink{}
	results := NewFanOut(sink, 2, nil).Run(context.Background(), makeTasks(5, func(i int) (export.Artifact, error) {
		return artifact(i), nil
	}))

	require.Len(t, results, 5)
	for i, res := range results {
		assert.True(t, res.Success)
		assert.Equal(t, i, res.Index)
		assert.Equal(t, fmt.Sprintf("mem://%02d-part.mmd", i), res.Path)
	}
}

func TestFanOut_FailureDoesNotCancelSiblings(t *testing.T) {
	sink := &memSink{failOn: "01-"}
	results := NewFanOut(sink, 4, nil).Run(context.Background(), makeTasks(4, func(i int) (export.Artifact, error) {
		if i == 2 {
			return export.Artifact{}, errors.New("render exploded")
		}
		// Give the failing tasks time to finish first.
		time.Sleep(10 * time.Millisecond)
		return artifact(i), nil
	}))

	require.Len(t, results, 4)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.Equal(t, "bucket unavailable", results[1].Error)
	assert.False(t, results[2].Success)
	assert.Equal(t, "render exploded", results[2].Error)
	assert.Equal(t, "part-2", results[2].Partition)
	assert.True(t, results[3].Success)

	_, ok := sink.get("03-part.mmd")
	assert.True(t, ok)
}

func TestFanOut_RespectsConcurrencyLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	render := func(i int) (export.Artifact, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return artifact(i), nil
	}

	NewFanOut(&memSink{}, 2, nil).Run(context.Background(), makeTasks(8, render))
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestFanOut_ProgressEvents(t *testing.T) {
	var mu sync.Mutex
	counts := make(map[ProgressStatus]int)
	onProgress := func(ev ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		counts[ev.Status]++
		assert.Equal(t, StageEmit, ev.Stage)
	}

	sink := &memSink{failOn: "00-"}
	NewFanOut(sink, 3, onProgress).Run(context.Background(), makeTasks(3, func(i int) (export.Artifact, error) {
		return artifact(i), nil
	}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, counts[ProgressPending])
	assert.Equal(t, 3, counts[ProgressWorking])
	assert.Equal(t, 2, counts[ProgressComplete])
	assert.Equal(t, 1, counts[ProgressFailed])
}
