package workerpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/shopfront/pkg/workerpool"
)

func TestPool_SubmitAndWait(t *testing.T) {
	const n = 100
	pool := workerpool.New(4, workerpool.WithQueueSize(n))
	defer pool.Shutdown(context.Background()) //nolint:errcheck

	var count atomic.Int64
	for i := 0; i < n; i++ {
		require.NoError(t, pool.Submit("count", func(context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	pool.Wait()
	assert.Equal(t, int64(n), count.Load())
}

func TestPool_ErrPoolFull(t *testing.T) {
	pool := workerpool.New(1, workerpool.WithQueueSize(1))
	defer pool.Shutdown(context.Background()) //nolint:errcheck

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, pool.Submit("block", func(context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	require.NoError(t, pool.Submit("queued", func(context.Context) error { return nil }))
	err := pool.Submit("overflow", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, workerpool.ErrPoolFull)

	close(release)
	pool.Wait()
}

func TestPool_ErrorsAndPanicsReachHandler(t *testing.T) {
	var mu sync.Mutex
	failures := map[string]error{}

	pool := workerpool.New(2, workerpool.WithErrorHandler(func(name string, err error) {
		mu.Lock()
		failures[name] = err
		mu.Unlock()
	}))
	defer pool.Shutdown(context.Background()) //nolint:errcheck

	boom := errors.New("boom")
	require.NoError(t, pool.Submit("fails", func(context.Context) error { return boom }))
	require.NoError(t, pool.Submit("panics", func(context.Context) error { panic("kaboom") }))
	require.NoError(t, pool.Submit("ok", func(context.Context) error { return nil }))
	pool.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.ErrorIs(t, failures["fails"], boom)
	require.Contains(t, failures, "panics")
	assert.Contains(t, failures["panics"].Error(), "kaboom")
	assert.NotContains(t, failures, "ok")
}

func TestPool_TaskTimeout(t *testing.T) {
	var got error
	done := make(chan struct{})
	pool := workerpool.New(1,
		workerpool.WithTaskTimeout(20*time.Millisecond),
		workerpool.WithErrorHandler(func(_ string, err error) { got = err; close(done) }),
	)
	defer pool.Shutdown(context.Background()) //nolint:errcheck

	require.NoError(t, pool.Submit("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task was not cancelled")
	}
	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestPool_ShutdownDrainsAndRejects(t *testing.T) {
	pool := workerpool.New(2)

	var count atomic.Int64
	for i := 0; i < 4; i++ {
		require.NoError(t, pool.Submit("n", func(context.Context) error {
			time.Sleep(5 * time.Millisecond)
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, pool.Shutdown(context.Background()))
	assert.Equal(t, int64(4), count.Load())

	err := pool.Submit("late", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, workerpool.ErrPoolClosed)
	assert.NoError(t, pool.Shutdown(context.Background()))
}
