package pool

import (
	"runtime"
	"sync"
)

// Handle tracks one submitted task; it is only good for waiting.
type Handle struct {
	done chan struct{}
}

type task struct {
	fn func(worker int)
	h  *Handle
}

// Pool runs tasks on a fixed set of workers draining a shared queue.
// Workers hold indices 1..Workers(); index 0 is reserved for the caller,
// which executes queued tasks itself while inside ActiveWait. A worker index
// therefore always belongs to exactly one running task at a time, which is
// what lets callers keep unlocked per-index scratch state.
type Pool struct {
	queue   chan task
	workers int
}

func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		queue:   make(chan task, 4*workers),
		workers: workers,
	}
	for w := 1; w <= workers; w++ {
		go p.drain(w)
	}
	return p
}

func (p *Pool) drain(worker int) {
	for t := range p.queue {
		t.fn(worker)
		close(t.h.done)
	}
}

func (p *Pool) Workers() int { return p.workers }

// Spawn queues fn for execution and returns a handle to wait on. The function
// receives the index of the worker it lands on.
func (p *Pool) Spawn(fn func(worker int)) *Handle {
	h := &Handle{done: make(chan struct{})}
	p.queue <- task{fn: fn, h: h}
	return h
}

// ActiveWait blocks until h completes. Rather than sleeping, the caller picks
// up other queued tasks (under index 0) while it waits, so draining more
// handles than there are workers cannot deadlock.
func (p *Pool) ActiveWait(h *Handle) {
	for {
		select {
		case <-h.done:
			return
		case t := <-p.queue:
			t.fn(0)
			close(t.h.done)
		}
	}
}

// Close stops the workers once the queue drains. Only for tests; the shared
// pool lives for the whole process.
func (p *Pool) Close() {
	close(p.queue)
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the shared process-wide pool, sized to leave one CPU for
// the calling thread.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = New(runtime.GOMAXPROCS(0) - 1)
	})
	return defaultPool
}
