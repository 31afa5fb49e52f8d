package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type testJob struct {
	id      int
	delay   time.Duration
	fail    bool
	running *atomic.Int32
	peak    *atomic.Int32
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) GetError() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	if j.running != nil {
		now := j.running.Add(1)
		for {
			peak := j.peak.Load()
			if now <= peak || j.peak.CompareAndSwap(peak, now) {
				break
			}
		}
		defer j.running.Add(-1)
	}

	if j.delay > 0 {
		select {
		case <-ctx.Done():
			return &testResult{id: j.id, err: ctx.Err()}
		case <-time.After(j.delay):
		}
	}

	if j.fail {
		return &testResult{id: j.id, err: errors.New("job failed")}
	}
	return &testResult{id: j.id}
}

func TestPoolExecutesAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	for i := 0; i < 10; i++ {
		pool.Submit(&testJob{id: i})
	}

	results := pool.Wait()
	if len(results) != 10 {
		t.Fatalf("results = %d, want 10", len(results))
	}

	seen := make(map[int]bool)
	for _, res := range results {
		r := res.(*testResult)
		if r.err != nil {
			t.Errorf("job %d failed: %v", r.id, r.err)
		}
		seen[r.id] = true
	}
	if len(seen) != 10 {
		t.Errorf("distinct jobs = %d, want 10", len(seen))
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	var running, peak atomic.Int32

	pool := NewPool(2)
	pool.Start()

	for i := 0; i < 8; i++ {
		pool.Submit(&testJob{id: i, delay: 20 * time.Millisecond, running: &running, peak: &peak})
	}
	pool.Wait()

	if got := peak.Load(); got > 2 {
		t.Errorf("peak concurrency = %d, want <= 2", got)
	}
}

func TestPoolCollectsFailures(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&testJob{id: 1})
	pool.Submit(&testJob{id: 2, fail: true})
	pool.Submit(&testJob{id: 3})

	failed := 0
	for _, res := range pool.Wait() {
		if res.GetError() != nil {
			failed++
		}
	}

	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
}

func TestPoolZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&testJob{id: 1})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestPoolShutdownStopsWork(t *testing.T) {
	pool := NewPool(1)
	pool.Start()
	pool.Submit(&testJob{id: 1, delay: 50 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		pool.Shutdown()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}
