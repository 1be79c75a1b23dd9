package parallel

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alandefreitas/futures-sub003/executor"
)

// errShortCircuit is returned by a leaf to cancel the remaining forks once
// AnyOf/AllOf already know their answer. It never escapes to a caller:
// AnyOf/AllOf (and NoneOf, through AnyOf) treat it (and the
// context.Canceled it triggers in siblings) as "stopped early, not a
// failure". CountIf never produces it.
var errShortCircuit = errors.New("parallel: short-circuited")

func isShortCircuit(err error) bool {
	return errors.Is(err, errShortCircuit) || errors.Is(err, context.Canceled)
}

// AnyOf reports whether pred holds for at least one item, forking ex the
// same way ForEach does and cancelling the remaining forks as soon as one
// match is found.
func AnyOf[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, pred func(T) bool) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	var found atomic.Bool
	err := Run(ctx, ex, 0, len(items), part, func(ctx context.Context, first, last int) error {
		for i := first; i < last; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if pred(items[i]) {
				found.Store(true)
				return errShortCircuit
			}
		}
		return nil
	})
	if err != nil && !isShortCircuit(err) {
		return false, err
	}
	return found.Load(), nil
}

// AllOf reports whether pred holds for every item.
func AllOf[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, pred func(T) bool) (bool, error) {
	if len(items) == 0 {
		return true, nil
	}
	var failed atomic.Bool
	err := Run(ctx, ex, 0, len(items), part, func(ctx context.Context, first, last int) error {
		for i := first; i < last; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if !pred(items[i]) {
				failed.Store(true)
				return errShortCircuit
			}
		}
		return nil
	})
	if err != nil && !isShortCircuit(err) {
		return false, err
	}
	return !failed.Load(), nil
}

// NoneOf reports whether pred holds for no item.
func NoneOf[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, pred func(T) bool) (bool, error) {
	any, err := AnyOf(ctx, items, ex, part, pred)
	if err != nil {
		return false, err
	}
	return !any, nil
}

// CountIf counts how many items satisfy pred. Every leaf runs to
// completion (CountIf never short-circuits).
func CountIf[T any](ctx context.Context, items []T, ex executor.Executor, part Partitioner, pred func(T) bool) (int, error) {
	var count atomic.Int64
	err := Run(ctx, ex, 0, len(items), part, func(ctx context.Context, first, last int) error {
		var local int64
		for i := first; i < last; i++ {
			if pred(items[i]) {
				local++
			}
		}
		count.Add(local)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(count.Load()), nil
}
