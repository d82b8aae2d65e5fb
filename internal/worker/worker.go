// Package worker provides a bounded worker pool for fanning sampling jobs
// across a fixed number of goroutines.
package worker

import (
	"context"
	"sync"
)

type ProcessFunc[T any] func(ctx context.Context, job T) error

type Pool[T any] struct {
	numWorkers int
	jobs       chan T
	processor  ProcessFunc[T]
	wg         sync.WaitGroup
}

func NewPool[T any](numWorkers int, bufferSize int, processor ProcessFunc[T]) *Pool[T] {
	return &Pool[T]{
		numWorkers: numWorkers,
		jobs:       make(chan T, bufferSize),
		processor:  processor,
	}
}

func (p *Pool[T]) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool[T]) worker(ctx context.Context) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.processor(ctx, job)
		}
	}
}

// Submit blocks when the buffer is full. Callers that must not block should
// size the buffer to the largest batch they submit.
func (p *Pool[T]) Submit(job T) {
	p.jobs <- job
}

// Stop closes the job channel and waits for in-flight jobs to finish.
func (p *Pool[T]) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
