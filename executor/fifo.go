package executor

import "sync"

// FIFO is a strictly sequential Executor: work items run one at a time, in
// submission order, on a single dedicated goroutine. Adapted from the
// teacher's build-tag-disabled fifoWorkers, re-enabled here as a
// single-worker executor — the parallel package's tests run the skeleton
// on a FIFO (and on a fixed Pool) to check that bounded capacity never
// deadlocks it and that every index is still visited exactly once.
type FIFO struct {
	tasks chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

// NewFIFO starts the dispatch goroutine and returns a ready-to-use FIFO.
func NewFIFO() *FIFO {
	f := &FIFO{tasks: make(chan func())}
	f.wg.Add(1)
	go f.run()
	return f
}

func (f *FIFO) run() {
	defer f.wg.Done()
	for work := range f.tasks {
		work()
	}
}

// Execute enqueues work to run after every previously submitted item has
// completed.
func (f *FIFO) Execute(work func()) {
	f.tasks <- work
}

// HardwareConcurrency reports 1: FIFO never runs more than one work item at
// a time.
func (f *FIFO) HardwareConcurrency() int { return 1 }

// Close stops accepting new work and waits for the dispatch goroutine to
// drain the queue and exit. Close is idempotent; Execute must not be called
// after Close.
func (f *FIFO) Close() {
	f.once.Do(func() {
		close(f.tasks)
	})
	f.wg.Wait()
}
