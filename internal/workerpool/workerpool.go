// Package workerpool provides a fixed-size goroutine pool over an
// unbounded FIFO job queue. A job that panics does not take the pool below
// its declared size: the panicking goroutine recovers, logs, and spawns a
// replacement before exiting, mirroring a thread pool whose worker threads
// respawn themselves on an unhandled panic rather than letting one bad job
// shrink the pool.
package workerpool

import (
	"sync"

	"go.uber.org/zap"
)

// Job is a unit of work submitted to the pool.
type Job func()

// Pool runs a fixed number of goroutines pulling jobs off an unbounded
// FIFO queue. The queue is unbounded by design: Spawn never blocks the
// caller, so there is no backpressure from a full pool onto whoever is
// submitting work — callers that need backpressure must implement it
// themselves.
type Pool struct {
	log    *zap.SugaredLogger
	size   int
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Job
	closed bool
	wg     sync.WaitGroup
}

// New starts a Pool of size goroutines.
func New(size int, log *zap.SugaredLogger) *Pool {
	if size < 1 {
		size = 1
	}

	p := &Pool{log: log, size: size}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}

	return p
}

// Spawn enqueues job for execution by some worker goroutine. It never
// blocks: the queue grows to accommodate whatever is submitted.
func (p *Pool) Spawn(job Job) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.queue = append(p.queue, job)
	p.cond.Signal()
}

// Shutdown stops accepting new jobs, drains whatever is already queued,
// and waits for every worker goroutine to exit.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) runWorker() {
	defer p.wg.Done()

	for {
		job, ok := p.next()
		if !ok {
			return
		}
		if !p.runJob(job) {
			// job panicked; runJob already spawned our replacement.
			return
		}
	}
}

// next blocks until a job is available or the pool is closed with nothing
// left to drain.
func (p *Pool) next() (Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}

	if len(p.queue) == 0 {
		return nil, false
	}

	job := p.queue[0]
	p.queue = p.queue[1:]
	return job, true
}

// runJob executes job, recovering a panic so it never takes down the
// process. It reports false if job panicked, in which case it has already
// spawned a replacement worker goroutine — the caller must exit rather
// than continue its loop, since recover only unwinds to here, not back to
// a clean per-iteration state.
func (p *Pool) runJob(job Job) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("worker pool job panicked, respawning worker", "panic", r)
			p.wg.Add(1)
			go p.runWorker()
			ok = false
		}
	}()

	job()
	return
}
