// Package worker runs the background analysis jobs the intake endpoint
// detaches from. A pool with explicit shutdown replaces a bare goroutine so
// in-flight pipelines survive until the process is told to stop.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Job func(ctx context.Context)

type Pool struct {
	jobs    chan Job
	log     *zap.Logger
	size    int
	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

func NewPool(size, buffer int, log *zap.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		jobs: make(chan Job, buffer),
		log:  log,
		size: size,
	}
}

// Start launches the workers. Jobs run under ctx, so cancelling it aborts
// provider calls inside still-running jobs.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.started = true
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for job := range p.jobs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					p.log.Error("background job panicked",
						zap.Int("worker", id),
						zap.Any("panic", r))
				}
			}()
			job(ctx)
		}()
	}
}

// Enqueue hands a job to the pool. Returns false when the queue is full; the
// caller decides whether that fails the request.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Shutdown stops accepting jobs and waits for in-flight ones, up to ctx's
// deadline.
func (p *Pool) Shutdown(ctx context.Context) error {
	close(p.jobs)
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
