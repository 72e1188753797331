// Package workerpool runs background tasks on a fixed set of goroutines with
// a bounded queue. Task failures and panics are routed to an error handler
// instead of the caller, so submitting work never fails the request that
// produced it.
//
//	pool := workerpool.New(4, workerpool.WithErrorHandler(func(name string, err error) {
//	    logger.Error("task failed", "task", name, "error", err)
//	}))
//	defer pool.Shutdown(ctx)
//
//	_ = pool.Submit("rating.recompute", func(ctx context.Context) error {
//	    return ratings.Recompute(ctx, productID)
//	})
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrPoolFull is returned by Submit when the queue is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned by Submit after Shutdown has been called.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Task is one unit of background work.
type Task func(ctx context.Context) error

// ErrorHandler receives failed task results. It runs on the worker goroutine.
type ErrorHandler func(name string, err error)

type job struct {
	name string
	run  Task
}

// Pool is a bounded goroutine pool.
type Pool struct {
	jobs    chan job
	workers sync.WaitGroup
	pending sync.WaitGroup

	mu     sync.RWMutex
	closed bool
	once   sync.Once

	base    context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	onError ErrorHandler
}

// Option configures a Pool.
type Option func(*Pool)

// WithErrorHandler sets the sink for task errors. The default drops them.
func WithErrorHandler(h ErrorHandler) Option {
	return func(p *Pool) { p.onError = h }
}

// WithTaskTimeout bounds every task's context.
func WithTaskTimeout(d time.Duration) Option {
	return func(p *Pool) { p.timeout = d }
}

// WithQueueSize overrides the default queue capacity of 2x workers.
func WithQueueSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.jobs = make(chan job, n)
		}
	}
}

// New starts size workers.
func New(size int, opts ...Option) *Pool {
	if size <= 0 {
		size = 1
	}

	base, cancel := context.WithCancel(context.Background())
	p := &Pool{
		jobs:    make(chan job, size*2),
		base:    base,
		cancel:  cancel,
		timeout: 30 * time.Second,
		onError: func(string, error) {},
	}
	for _, opt := range opts {
		opt(p)
	}

	for i := 0; i < size; i++ {
		p.workers.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(name string, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	p.pending.Add(1)
	select {
	case p.jobs <- job{name: name, run: task}:
		return nil
	default:
		p.pending.Done()
		return ErrPoolFull
	}
}

// Wait blocks until every task submitted so far has finished.
func (p *Pool) Wait() {
	p.pending.Wait()
}

// Shutdown stops intake and waits for queued tasks. If ctx expires first,
// running tasks see their context cancelled and Shutdown returns ctx.Err().
func (p *Pool) Shutdown(ctx context.Context) error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}

func (p *Pool) worker() {
	defer p.workers.Done()
	for j := range p.jobs {
		if err := p.run(j); err != nil {
			p.onError(j.name, err)
		}
		p.pending.Done()
	}
}

func (p *Pool) run(j job) (err error) {
	ctx, cancel := context.WithTimeout(p.base, p.timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("workerpool: task %s panicked: %v", j.name, rec)
		}
	}()
	return j.run(ctx)
}
