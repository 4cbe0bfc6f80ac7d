// Package async runs a blocking call on its own goroutine and hands back a
// Future, so an interactive caller can keep servicing its terminal while it
// waits for the result.
package async

import (
	"context"
	"time"
)

// Future is the pending result of a call started with Run.
type Future[T any] struct {
	result T
	done   chan struct{}
}

// Run starts fn(ctx) on a new goroutine. fn must honor ctx cancellation.
func Run[T any](ctx context.Context, fn func(context.Context) T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		f.result = fn(ctx)
	}()

	return f
}

// AwaitWithProgress blocks until the result is available, calling tick every
// interval while waiting.
func (f *Future[T]) AwaitWithProgress(interval time.Duration, tick func()) T {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return f.result
		case <-ticker.C:
			tick()
		}
	}
}
