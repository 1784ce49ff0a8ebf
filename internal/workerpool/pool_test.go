package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/samuelscerri/polygoncore/raster"
)

// === Pool conformance ===

func TestPool_ImplementsTaskPool(t *testing.T) {
	var _ raster.TaskPool = (*Pool)(nil)
}

// === Pool creation ===

func TestPool_CreateDefaultsWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()

	if p.Workers() <= 0 {
		t.Fatalf("Workers() = %d, want > 0", p.Workers())
	}
}

func TestPool_CreateExplicitWorkers(t *testing.T) {
	p := New(4)
	defer p.Close()

	if p.Workers() != 4 {
		t.Fatalf("Workers() = %d, want 4", p.Workers())
	}
}

// === Submit / WaitForAll ===

func TestPool_SubmitAndWaitForAll(t *testing.T) {
	p := New(4)
	defer p.Close()

	var count int32
	const n = 500

	for i := 0; i < n; i++ {
		task := p.CreateTask(func() {
			atomic.AddInt32(&count, 1)
		})
		p.Submit(task)
	}

	p.WaitForAll()

	if got := atomic.LoadInt32(&count); got != n {
		t.Fatalf("count = %d, want %d", got, n)
	}
}

func TestPool_WaitForAllIsReusable(t *testing.T) {
	p := New(2)
	defer p.Close()

	var round1, round2 int32

	for i := 0; i < 50; i++ {
		p.Submit(p.CreateTask(func() { atomic.AddInt32(&round1, 1) }))
	}
	p.WaitForAll()

	for i := 0; i < 50; i++ {
		p.Submit(p.CreateTask(func() { atomic.AddInt32(&round2, 1) }))
	}
	p.WaitForAll()

	if round1 != 50 || round2 != 50 {
		t.Fatalf("round1=%d round2=%d, want 50/50", round1, round2)
	}
}

func TestPool_ManySlowTasksAllComplete(t *testing.T) {
	p := New(8)
	defer p.Close()

	var count int32
	const n = 2000

	for i := 0; i < n; i++ {
		p.Submit(p.CreateTask(func() {
			time.Sleep(time.Microsecond)
			atomic.AddInt32(&count, 1)
		}))
	}
	p.WaitForAll()

	if got := atomic.LoadInt32(&count); got != n {
		t.Fatalf("count = %d, want %d", got, n)
	}
}

// === Close ===

func TestPool_CloseIsIdempotent(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close()
}

func TestPool_SubmitAfterCloseDoesNotPanic(t *testing.T) {
	p := New(2)
	p.Close()

	task := p.CreateTask(func() {})
	p.Submit(task)
}
