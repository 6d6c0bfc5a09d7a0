package run

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/milk9111/groggy/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// lockedSink is a memorySink safe to read while a Writer is draining.
type lockedSink struct {
	mu   sync.Mutex
	runs []Statistics
	gate chan struct{}
}

func (s *lockedSink) Insert(ctx context.Context, st Statistics) (int64, error) {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, st)
	return int64(len(s.runs)), nil
}

func (s *lockedSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.runs)
}

func TestWriterKeepsEndRunFast(t *testing.T) {
	inner := &lockedSink{gate: make(chan struct{})}
	w := NewWriter(inner, 4, time.Second)
	var g errgroup.Group
	g.Go(func() error { return w.Run(context.Background()) })

	m := NewManager(nil, nil, w)
	require.NoError(t, m.StartRun(stats.Heavy))
	start := time.Now()
	_, err := m.EndRun(false)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Equal(t, 0, inner.count())

	close(inner.gate)
	w.Close()
	require.NoError(t, g.Wait())
	assert.Equal(t, 1, inner.count())
}

func TestWriterDrainsOnClose(t *testing.T) {
	inner := &lockedSink{}
	w := NewWriter(inner, 8, time.Second)
	for i := range 3 {
		_, err := w.Insert(context.Background(), Statistics{Stage: i + 1})
		require.NoError(t, err)
	}
	w.Close()
	w.Close()

	_, err := w.Insert(context.Background(), Statistics{})
	assert.ErrorIs(t, err, ErrWriterClosed)

	require.NoError(t, w.Run(context.Background()))
	require.Equal(t, 3, inner.count())
	assert.Equal(t, 3, inner.runs[2].Stage)
}

func TestWriterRejectsWhenFull(t *testing.T) {
	w := NewWriter(&lockedSink{}, 1, time.Second)
	_, err := w.Insert(context.Background(), Statistics{})
	require.NoError(t, err)
	_, err = w.Insert(context.Background(), Statistics{})
	assert.ErrorIs(t, err, ErrWriterFull)
}

func TestWriterTimesOutStalledWrites(t *testing.T) {
	inner := &lockedSink{gate: make(chan struct{})}
	w := NewWriter(inner, 2, 10*time.Millisecond)
	_, err := w.Insert(context.Background(), Statistics{})
	require.NoError(t, err)
	w.Close()

	done := make(chan error, 1)
	go func() { done <- w.Run(context.Background()) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("writer did not give up on a stalled sink")
	}
	assert.Equal(t, 0, inner.count())
}
