package async

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noTick() {}

func TestRun_ReturnsResult(t *testing.T) {
	f := Run(context.Background(), func(context.Context) int { return 42 })
	assert.Equal(t, 42, f.AwaitWithProgress(time.Hour, noTick))
	assert.Equal(t, 42, f.AwaitWithProgress(time.Hour, noTick), "result is kept after the first wait")
}

func TestRun_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := Run(context.Background(), func(context.Context) string {
		close(started)
		<-release
		return "done"
	})

	<-started
	close(release)
	assert.Equal(t, "done", f.AwaitWithProgress(time.Hour, noTick))
}

func TestRun_PassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	f := Run(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	cancel()
	require.ErrorIs(t, f.AwaitWithProgress(time.Hour, noTick), context.Canceled)
}

func TestAwaitWithProgress_Ticks(t *testing.T) {
	release := make(chan struct{})
	var ticks atomic.Int32

	f := Run(context.Background(), func(context.Context) int {
		<-release
		return 1
	})

	go func() {
		for ticks.Load() < 2 {
			time.Sleep(time.Millisecond)
		}
		close(release)
	}()

	got := f.AwaitWithProgress(time.Millisecond, func() { ticks.Add(1) })
	assert.Equal(t, 1, got)
	assert.GreaterOrEqual(t, ticks.Load(), int32(2))
}
