package parallel

import (
	"context"

	"github.com/alandefreitas/futures-sub003/executor"
)

// ForEach applies fn to every item in items, forking subranges across ex
// according to part. It returns the first leaf error encountered, tagged
// with the [first,last) range that produced it.
func ForEach[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, fn func(context.Context, T) error) error {
	return Run(ctx, ex, 0, len(items), part, func(ctx context.Context, first, last int) error {
		for i := first; i < last; i++ {
			if err := fn(ctx, items[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
