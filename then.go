package future

import (
	"context"

	"github.com/alandefreitas/futures-sub003/executor"
)

// chainThen implements the three execution strategies of spec.md §4.2's
// continuation-attachment table:
//
//   - deferred antecedent: the continuation itself becomes deferred, and
//     runs the antecedent (via Get) followed by run, on whichever
//     goroutine first waits on it.
//   - eager, continuable antecedent: run is queued on the antecedent's
//     continuation list, fired (via ex, if given) once the antecedent
//     completes — or immediately (again via ex, if given) if it already
//     has.
//   - eager, non-continuable antecedent: there's no list to queue on, so
//     the continuation blocks on the antecedent synchronously before
//     producing its own result.
//
// A panic inside run is recovered into a task-execution error (spec.md §7
// row 6), matching Promise/PackagedTask's own task-panic handling.
func chainThen[T, R any](ex executor.Executor, src Future[T], run func(T, error) (R, error), opts ...Option) Future[R] {
	if !src.Valid() {
		p := NewPromise[R](opts...)
		fut, _ := p.GetFuture()
		_ = p.SetException(ErrNoState)
		return fut
	}

	if src.Deferred() {
		return Defer(func(ctx context.Context) (R, error) {
			v, err := src.Get(ctx)
			return run(v, err)
		}, opts...)
	}

	p := NewPromise[R](opts...)
	fut, _ := p.GetFuture()

	complete := func() {
		v, err := src.state.get(context.Background())
		rv, rerr := func() (r R, e error) {
			defer func() {
				if rec := recover(); rec != nil {
					e = taskPanicError(rec)
				}
			}()
			return run(v, err)
		}()
		_ = p.state.transition(rv, rerr)
	}
	dispatch := func() {
		if ex != nil {
			ex.Execute(complete)
		} else {
			complete()
		}
	}

	if src.Continuable() {
		if !src.state.attachContinuation(dispatch) {
			dispatch()
		}
	} else {
		dispatch()
	}

	return fut
}

// Then attaches a continuation that runs f on the antecedent's value once
// it completes successfully. If the antecedent fails, its error propagates
// unchanged and f never runs (spec.md §4.2 error-propagation rule).
func Then[T, R any](ex executor.Executor, src Future[T], f func(T) R, opts ...Option) Future[R] {
	return chainThen(ex, src, func(v T, err error) (R, error) {
		if err != nil {
			var zero R
			return zero, err
		}
		return f(v), nil
	}, opts...)
}

// ThenE is Then for a continuation that can itself fail.
func ThenE[T, R any](ex executor.Executor, src Future[T], f func(T) (R, error), opts ...Option) Future[R] {
	return chainThen(ex, src, func(v T, err error) (R, error) {
		if err != nil {
			var zero R
			return zero, err
		}
		return f(v)
	}, opts...)
}

// ThenCompose attaches a continuation whose result is itself a future,
// unwrapping it so the returned future completes with the inner future's
// eventual value rather than with a Future[R] (spec.md §4.2 rule 3,
// generalized here since Go has no implicit future-of-future collapse).
func ThenCompose[T, R any](ex executor.Executor, src Future[T], f func(T) Future[R], opts ...Option) Future[R] {
	return chainThen(ex, src, func(v T, err error) (R, error) {
		if err != nil {
			var zero R
			return zero, err
		}
		return f(v).Get(context.Background())
	}, opts...)
}

// ThenStop attaches a continuation that receives the antecedent's stop
// token, letting it observe (or, via a captured StopSource, request)
// cooperative cancellation across the chain (spec.md §4.3).
func ThenStop[T, R any](ex executor.Executor, src Future[T], f func(StopToken, T) R, opts ...Option) Future[R] {
	token := src.StopToken()
	return chainThen(ex, src, func(v T, err error) (R, error) {
		if err != nil {
			var zero R
			return zero, err
		}
		return f(token, v), nil
	}, opts...)
}
