// Package routines provides a goroutine pool.
package routines

import (
	"sync"
)

// Pool runs queued functions on a fixed number of goroutines.
// Work is started in the order it was queued. A pool with 1 goroutine
// executes its work serially.
type Pool struct {
	queue     []WorkFn
	active    int
	terminate bool
	mu        sync.Mutex // protects queue, active and terminate

	workChan            chan WorkFn
	schedulerNotifyChan chan struct{}

	terminateWg sync.WaitGroup
}

// WorkFn is a function that is executed by the pool workers.
type WorkFn func()

// NewPool creates a pool and starts its workers.
func NewPool(workers uint) *Pool {
	p := Pool{
		workChan:            make(chan WorkFn),
		schedulerNotifyChan: make(chan struct{}, 1),
	}

	p.terminateWg.Add(1)
	go p.scheduler()

	for range workers {
		p.terminateWg.Add(1)
		go p.worker()
	}

	return &p
}

func (p *Pool) scheduler() {
	defer p.terminateWg.Done()

	for range p.schedulerNotifyChan {
		for {
			work, terminate := p.popWork()
			if work == nil {
				if terminate {
					close(p.workChan)
					return
				}

				break
			}

			p.workChan <- work
		}
	}
}

func (p *Pool) popWork() (WorkFn, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return nil, p.terminate
	}

	w := p.queue[0]
	p.queue[0] = nil
	p.queue = p.queue[1:]
	p.active++

	return w, false
}

func (p *Pool) worker() {
	defer p.terminateWg.Done()

	for workFn := range p.workChan {
		workFn()

		p.mu.Lock()
		p.active--
		p.mu.Unlock()
	}
}

func (p *Pool) notifyScheduler() {
	select {
	case p.schedulerNotifyChan <- struct{}{}:
	default:
	}
}

// Queue appends work to the queue of the pool.
// The method never blocks. It panics when it is called after Wait().
func (p *Pool) Queue(workFn WorkFn) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.terminate {
		panic("work was queued on a closed pool")
	}

	p.queue = append(p.queue, workFn)
	p.notifyScheduler()
}

// Pending returns the number of queued and running functions.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue) + p.active
}

// Wait waits until all queued work was executed and terminates the workers.
// After Wait() was called, no further work must be queued.
func (p *Pool) Wait() {
	p.mu.Lock()
	p.terminate = true
	p.notifyScheduler()
	p.mu.Unlock()

	p.terminateWg.Wait()
}
