package executor

import (
	"runtime"
	"sync"
)

// Pool is a goroutine-backed Executor adapted from the fixed/dynamic worker
// pool this module evolved from (see DESIGN.md). A zero-capacity Pool is
// dynamic: Execute always spawns a fresh goroutine, the same "grow and
// shrink as needed" behavior the original dynamic pool got from sync.Pool.
// A Pool constructed with NewFixedPool caps the number of concurrently
// running work items at capacity; Execute blocks the submitter once the
// pool is saturated, which is the Go-idiomatic form of the original's
// channel-based backpressure.
type Pool struct {
	sem  chan struct{} // nil: dynamic (unbounded); sized: fixed capacity
	wg   sync.WaitGroup
	once sync.Once
}

// NewDynamicPool constructs a Pool with no concurrency cap: every Execute
// spawns a new goroutine. This is the default pool, matching the teacher's
// MaxWorkers == 0 convention.
func NewDynamicPool() *Pool {
	return &Pool{}
}

// NewFixedPool constructs a Pool that runs at most capacity work items
// concurrently. capacity must be > 0.
func NewFixedPool(capacity uint) *Pool {
	if capacity == 0 {
		panic("executor: NewFixedPool requires capacity > 0")
	}
	return &Pool{sem: make(chan struct{}, capacity)}
}

// Execute runs work on a pool goroutine. On a fixed pool, Execute blocks
// until a slot is available; the work item itself always runs
// asynchronously relative to the caller.
func (p *Pool) Execute(work func()) {
	if p.sem != nil {
		p.sem <- struct{}{}
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if p.sem != nil {
			defer func() { <-p.sem }()
		}
		work()
	}()
}

// HardwareConcurrency reports the pool's fixed capacity, or
// runtime.GOMAXPROCS(0) for a dynamic pool, as a hint to the thread
// partitioner.
func (p *Pool) HardwareConcurrency() int {
	if p.sem != nil {
		return cap(p.sem)
	}
	return runtime.GOMAXPROCS(0)
}

// Close waits for all work items submitted before the call to Close to
// finish running. It mirrors the teacher's lifecycle shutdown sequence
// (cancel dispatch, then wait inflight) minus the cancellation step, since
// Pool has no notion of cancellable work items — that's the caller's
// context to manage. Close is idempotent.
func (p *Pool) Close() {
	p.once.Do(func() {
		p.wg.Wait()
	})
}
