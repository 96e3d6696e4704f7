package workerpool

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSpawnRunsEveryJob(t *testing.T) {
	p := New(3, zap.NewNop().Sugar())
	defer p.Shutdown()

	const n = 100
	var count atomic.Int64
	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		p.Spawn(func() {
			count.Add(1)
			wg.Done()
		})
	}

	wg.Wait()
	if got := count.Load(); got != n {
		t.Fatalf("ran %d jobs, want %d", got, n)
	}
}

func TestPoolSurvivesPanickingJob(t *testing.T) {
	p := New(2, zap.NewNop().Sugar())
	defer p.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	p.Spawn(func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	// Give the replacement goroutine a moment to come up, then confirm the
	// pool still makes progress on new jobs.
	time.Sleep(20 * time.Millisecond)

	var ran atomic.Bool
	var done sync.WaitGroup
	done.Add(1)
	p.Spawn(func() {
		ran.Store(true)
		done.Done()
	})

	doneCh := make(chan struct{})
	go func() { done.Wait(); close(doneCh) }()

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("pool did not run a job after a worker panicked")
	}

	if !ran.Load() {
		t.Fatal("expected job to have run")
	}
}

func TestShutdownDrainsQueueBeforeReturning(t *testing.T) {
	p := New(1, zap.NewNop().Sugar())

	var ran atomic.Bool
	p.Spawn(func() { ran.Store(true) })
	p.Shutdown()

	if !ran.Load() {
		t.Fatal("expected queued job to run before Shutdown returns")
	}

	// Spawning after Shutdown must not panic or block.
	p.Spawn(func() {})
}
