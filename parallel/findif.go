package parallel

import (
	"context"
	"sync/atomic"

	"github.com/alandefreitas/futures-sub003/executor"
)

// FindIf returns the lowest index whose item satisfies pred, or -1 if none
// does. Every leaf runs to completion: the original's branch-and-bound
// tie-break cancels a fork once a lower-indexed match elsewhere is known
// to precede it, tracked by comparing the path (branch mask) each fork
// took from the root; this port keeps the same leftmost-index result by
// instead taking the atomic minimum of every candidate found and skipping
// indices at-or-past the current minimum, trading the early-cancellation
// optimization for a simpler, still race-free implementation.
func FindIf[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, pred func(T) bool) (int, error) {
	if len(items) == 0 {
		return -1, nil
	}

	notFound := int64(len(items))
	best := &atomic.Int64{}
	best.Store(notFound)

	err := Run(ctx, ex, 0, len(items), part, func(ctx context.Context, first, last int) error {
		for i := first; i < last; i++ {
			if int64(i) >= best.Load() {
				break
			}
			if pred(items[i]) {
				casMin(best, int64(i))
				break
			}
		}
		return nil
	})
	if err != nil {
		return -1, err
	}

	if found := best.Load(); found < notFound {
		return int(found), nil
	}
	return -1, nil
}

// FindIfNot returns the lowest index whose item does not satisfy pred, or
// -1 if every item does.
func FindIfNot[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, pred func(T) bool) (int, error) {
	return FindIf(ctx, items, ex, part, func(v T) bool { return !pred(v) })
}

func casMin(addr *atomic.Int64, val int64) {
	for {
		cur := addr.Load()
		if cur <= val {
			return
		}
		if addr.CompareAndSwap(cur, val) {
			return
		}
	}
}
