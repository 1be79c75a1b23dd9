package parallel

import (
	"context"
	"sort"
	"sync"

	"github.com/alandefreitas/futures-sub003/executor"
)

// Reduce folds items down to a single value via combine, which must be
// associative with identity as its neutral element (combine(identity, x)
// == x). Each leaf folds its own subrange independently; the partial
// results are then combined in range order (not completion order), so the
// result is deterministic regardless of fork scheduling even when combine
// isn't commutative.
func Reduce[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, identity T, combine func(acc, item T) T) (T, error) {
	if len(items) == 0 {
		return identity, nil
	}

	var mu sync.Mutex
	partials := make(map[int]T)

	err := Run(ctx, ex, 0, len(items), part, func(ctx context.Context, first, last int) error {
		acc := identity
		for i := first; i < last; i++ {
			acc = combine(acc, items[i])
		}
		mu.Lock()
		partials[first] = acc
		mu.Unlock()
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	starts := make([]int, 0, len(partials))
	for first := range partials {
		starts = append(starts, first)
	}
	sort.Ints(starts)

	result := identity
	for _, first := range starts {
		result = combine(result, partials[first])
	}
	return result, nil
}
