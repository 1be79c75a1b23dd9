package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	future "github.com/alandefreitas/futures-sub003"
	"github.com/alandefreitas/futures-sub003/executor"
)

// Leaf is the work a parallel algorithm performs on one unsplit subrange.
type Leaf func(ctx context.Context, first, last int) error

// HardwareConcurrencyOf adapts an executor's own notion of concurrency
// (for a Pool, its capacity) for use by Thread, falling back to
// runtime.NumCPU for executors that don't implement
// executor.HardwareConcurrencyHinter (Inline, FIFO and Pool all do).
func HardwareConcurrencyOf(ex executor.Executor) func() int {
	if hinter, ok := ex.(executor.HardwareConcurrencyHinter); ok {
		return hinter.HardwareConcurrency
	}
	return runtime.NumCPU
}

// Run is the recursive fork/join skeleton every algorithm in this package
// builds on (spec.md §4.5): bisect [first,last) with part until a
// subrange is a leaf, run each leaf via ex, and join every fork's result
// with golang.org/x/sync/errgroup so the first leaf error cancels the
// context every sibling fork observes.
//
// Adapted from the teacher's run_all.go fan-out/join (a sync.WaitGroup
// plus a result/error channel pair), restructured from "one task per
// item" into "recursively bisect a range", and from a hand-rolled
// WaitGroup join to errgroup.Group, which additionally cancels the shared
// context on the first error the way spec.md §4.5's cancellation note
// requires.
//
// Only leaves are dispatched through ex; the recursive bisection itself
// runs on plain goroutines owned by errgroup. A bisection frame that
// consumed an executor slot while it recursed and then blocked waiting
// for its own children would self-deadlock the moment ex has bounded
// capacity (a single-worker executor.FIFO, or a saturated
// executor.NewFixedPool): the children could never acquire the slot
// their parent is holding. Since only leaves — which never recurse
// further — touch ex, the executor's capacity only ever bounds how many
// leaves run concurrently, never how many bisection frames are
// in-flight, so it can't be exhausted by frames waiting on each other.
func Run(ctx context.Context, ex executor.Executor, first, last int, part Partitioner, leaf Leaf) error {
	if first >= last {
		return nil
	}
	if ex == nil {
		ex = executor.Inline{}
	}
	if executor.IsInline(ex) {
		// Forking onto an inline executor only adds goroutine/errgroup
		// bookkeeping overhead: every leaf runs on the calling goroutine
		// anyway. Walk the same bisection tree serially instead.
		return runSerial(ctx, first, last, part, leaf)
	}
	g, gctx := errgroup.WithContext(ctx)
	fork(gctx, g, ex, first, last, part, leaf)
	return g.Wait()
}

func runSerial(ctx context.Context, first, last int, part Partitioner, leaf Leaf) error {
	mid := part(first, last)
	if mid >= last || mid <= first {
		if err := leaf(ctx, first, last); err != nil {
			return future.NewRangeTaggedError(err, first, last)
		}
		return nil
	}
	if err := runSerial(ctx, first, mid, part, leaf); err != nil {
		return err
	}
	return runSerial(ctx, mid, last, part, leaf)
}

// fork recursively bisects [first,last), joining each half through its own
// errgroup.Group on an ordinary goroutine (g.Go never touches ex: it's
// bookkeeping, not work). Only once a subrange can no longer be split does
// the leaf itself go through ex via submitLeaf.
func fork(ctx context.Context, g *errgroup.Group, ex executor.Executor, first, last int, part Partitioner, leaf Leaf) {
	mid := part(first, last)
	if mid >= last || mid <= first {
		submitLeaf(ctx, g, ex, first, last, leaf)
		return
	}

	g.Go(func() error {
		sg, sctx := errgroup.WithContext(ctx)
		fork(sctx, sg, ex, first, mid, part, leaf)
		return sg.Wait()
	})
	g.Go(func() error {
		sg, sctx := errgroup.WithContext(ctx)
		fork(sctx, sg, ex, mid, last, part, leaf)
		return sg.Wait()
	})
}

// submitLeaf runs leaf(first,last) on ex, joining its completion into g.
// This is the only place a bisection recursion touches the executor: a
// leaf never recurses further, so however bounded ex's capacity is, an
// outstanding leaf never blocks on another leaf (or on a bisection frame)
// to free a slot.
func submitLeaf(ctx context.Context, g *errgroup.Group, ex executor.Executor, first, last int, leaf Leaf) {
	g.Go(func() error {
		done := make(chan error, 1)
		ex.Execute(func() {
			if err := leaf(ctx, first, last); err != nil {
				done <- future.NewRangeTaggedError(err, first, last)
				return
			}
			done <- nil
		})
		select {
		case err := <-done:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
