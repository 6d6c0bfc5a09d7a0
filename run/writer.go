package run

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrWriterFull   = errors.New("run: writer queue full")
	ErrWriterClosed = errors.New("run: writer closed")
)

// DefaultWriteTimeout bounds one background write.
const DefaultWriteTimeout = 5 * time.Second

// Writer is a Sink that queues finished runs and writes them to another sink
// from its own goroutine, so EndRun never waits on the network.
type Writer struct {
	sink    Sink
	timeout time.Duration
	queue   chan Statistics

	mu     sync.Mutex
	closed bool
}

// NewWriter creates a writer holding up to buffer pending runs. Run must be
// started for anything to be written.
func NewWriter(sink Sink, buffer int, timeout time.Duration) *Writer {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	return &Writer{
		sink:    sink,
		timeout: timeout,
		queue:   make(chan Statistics, max(buffer, 1)),
	}
}

// Insert queues s without blocking. The returned id is always 0 since the
// write has not happened yet.
func (w *Writer) Insert(_ context.Context, s Statistics) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, ErrWriterClosed
	}
	select {
	case w.queue <- s:
		return 0, nil
	default:
		return 0, ErrWriterFull
	}
}

// Run writes queued runs until Close drains the queue or ctx is done.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case s, ok := <-w.queue:
			if !ok {
				return nil
			}
			w.write(ctx, s)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (w *Writer) write(ctx context.Context, s Statistics) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	id, err := w.sink.Insert(ctx, s)
	if err != nil {
		slog.Warn("run history write failed", "err", err)
		return
	}
	slog.Debug("run history written", "id", id)
}

// Close stops accepting runs. Run returns once the queued ones are written.
func (w *Writer) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
}
