package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPool_RunsJobs(t *testing.T) {
	pool := NewPool(2, 8, zap.NewNop())
	pool.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.True(t, pool.Enqueue(func(ctx context.Context) { ran.Add(1) }))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))
	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_EnqueueFailsWhenFull(t *testing.T) {
	// One slot, no workers started: the second job has nowhere to go.
	pool := NewPool(1, 1, zap.NewNop())

	assert.True(t, pool.Enqueue(func(ctx context.Context) {}))
	assert.False(t, pool.Enqueue(func(ctx context.Context) {}))
}

func TestPool_ShutdownWaitsForInFlight(t *testing.T) {
	pool := NewPool(1, 1, zap.NewNop())
	pool.Start(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	var done atomic.Bool
	require.True(t, pool.Enqueue(func(ctx context.Context) {
		close(started)
		<-release
		done.Store(true)
	}))
	<-started

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(release)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))
	assert.True(t, done.Load())
}

func TestPool_ShutdownTimesOut(t *testing.T) {
	pool := NewPool(1, 1, zap.NewNop())
	pool.Start(context.Background())

	release := make(chan struct{})
	defer close(release)
	require.True(t, pool.Enqueue(func(ctx context.Context) { <-release }))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, pool.Shutdown(ctx), context.DeadlineExceeded)
}

func TestPool_JobsOutliveSignalContext(t *testing.T) {
	// Mirrors the server wiring: the pool runs under its own context, so a
	// shutdown signal does not cancel in-flight jobs before the drain.
	signalCtx, stop := context.WithCancel(context.Background())
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	pool := NewPool(1, 1, zap.NewNop())
	pool.Start(jobCtx)

	started := make(chan struct{})
	var completed atomic.Bool
	require.True(t, pool.Enqueue(func(ctx context.Context) {
		close(started)
		callCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		select {
		case <-time.After(30 * time.Millisecond):
			completed.Store(true)
		case <-callCtx.Done():
		}
	}))

	<-started
	stop() // the signal arrives while the job is mid-flight
	require.Error(t, signalCtx.Err())

	drainCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(drainCtx))
	assert.True(t, completed.Load(), "job was cancelled by the signal instead of draining")
}

func TestPool_RecoversFromPanics(t *testing.T) {
	pool := NewPool(1, 4, zap.NewNop())
	pool.Start(context.Background())

	var ran atomic.Bool
	require.True(t, pool.Enqueue(func(ctx context.Context) { panic("boom") }))
	require.True(t, pool.Enqueue(func(ctx context.Context) { ran.Store(true) }))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, pool.Shutdown(ctx))
	assert.True(t, ran.Load())
}
