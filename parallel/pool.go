// Package parallel runs independent jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits a job.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted jobs finish. With done set, no more
	// jobs may be submitted afterwards.
	WaitFunc func(done bool)
)

type Pool struct {
	wg      sync.WaitGroup
	work    chan func()
	workers int
	cancel  func()
}

// Start launches numWorkers goroutines, GOMAXPROCS when numWorkers < 1.
// A single worker pool runs jobs inline on the submitting goroutine.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		cancel:  func() {},
	}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.cancel = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Do runs f on the next free worker.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait blocks until the workers exit. Workers only exit once the pool is
// cancelled, so done must be set unless another goroutine cancels it.
func (p *Pool) Wait(done bool) {
	if done {
		p.Cancel()
	}
	p.wg.Wait()
}

// Cancel stops accepting jobs. Jobs already queued still run.
func (p *Pool) Cancel() {
	p.cancel()
}
