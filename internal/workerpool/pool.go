// Package workerpool implements the fan-out-plus-barrier worker pool
// the rasterization core treats as an external service (spec.md §1,
// §5, §6): per-scanline span work is wrapped into tasks, submitted,
// and joined with a WaitForAll barrier before the per-draw arena is
// released.
//
// The pool itself is adapted from the per-worker-queue,
// work-stealing WorkerPool in gogpu-gg/internal/parallel, generalized
// from that package's slice-of-funcs ExecuteAll entry point to the
// createTask/submit/waitForAll handle-based contract raster.TaskPool
// expects.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/samuelscerri/polygoncore/raster"
)

// task is the concrete Task handle returned by CreateTask.
type task struct {
	fn func()
}

// Pool is a pool of goroutines, each with its own work queue; a
// worker whose queue is empty steals from another worker's queue
// before blocking. It implements raster.TaskPool; the raster package
// itself only depends on that interface, never on this package.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	pending sync.WaitGroup // tracks tasks submitted since the last WaitForAll
}

// New creates a pool with the given number of workers. If workers is
// 0 or negative, GOMAXPROCS is used, matching the teacher's
// `cores = runtime.NumCPU()` sizing.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}

	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}

	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	my := p.queues[id]

	for {
		select {
		case <-p.done:
			p.drain(my)
			return
		case work := <-my:
			if work != nil {
				work()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(my)
				return
			case work := <-my:
				if work != nil {
					work()
				}
			}
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case work := <-q:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

func (p *Pool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// CreateTask wraps fn as a Task without running it (raster.TaskPool).
func (p *Pool) CreateTask(fn func()) raster.Task {
	return &task{fn: fn}
}

// Submit enqueues t onto the worker with the shortest queue and
// registers it against the barrier WaitForAll joins. Each queue is
// bounded, so when every queue is full Submit blocks until the chosen
// queue has room or the pool is closed.
func (p *Pool) Submit(t raster.Task) {
	tk, ok := t.(*task)
	if !ok || tk == nil || !p.running.Load() {
		return
	}

	p.pending.Add(1)
	wrapped := func() {
		defer p.pending.Done()
		tk.fn()
	}

	minLen, minIdx := len(p.queues[0]), 0
	for i := 1; i < p.workers; i++ {
		if l := len(p.queues[i]); l < minLen {
			minLen, minIdx = l, i
		}
	}

	select {
	case p.queues[minIdx] <- wrapped:
	case <-p.done:
		p.pending.Done()
	}
}

// WaitForAll blocks until every task submitted since the previous
// WaitForAll call has returned.
func (p *Pool) WaitForAll() {
	p.pending.Wait()
}

// Workers reports the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops accepting new work and waits for in-flight work to
// drain before stopping all workers. Calls after the first are no-ops.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}
