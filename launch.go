package future

import (
	"context"

	"github.com/alandefreitas/futures-sub003/executor"
)

// Async launches fn on ex and returns a Future for its result (spec.md §3
// C6, eager policy). fn begins running as soon as ex schedules it, which
// may be before Async returns.
//
// Grounded on the teacher's worker.go submission path (wrap the callable,
// hand it to an executor, let the executor own the goroutine), adapted
// from a fire-and-forget job to a result-producing one tied to a Promise.
func Async[T any](ctx context.Context, ex executor.Executor, fn func(context.Context) (T, error), opts ...Option) Future[T] {
	if ex == nil {
		panic(Namespace + ": Async requires a non-nil executor")
	}
	p := NewPromise[T](opts...)
	fut, _ := p.GetFuture()
	ex.Execute(func() {
		v, err := p.state.runTask(ctx, fn)
		_ = p.state.transition(v, err)
	})
	return fut
}

// AsyncStoppable is Async for a task that accepts a cooperative
// cancellation token, ensuring the constructed state is stoppable (spec.md
// §4.3). If opts doesn't already request a StopSource, one is allocated.
func AsyncStoppable[T any](ctx context.Context, ex executor.Executor, fn func(context.Context, StopToken) (T, error), opts ...Option) Future[T] {
	opts = append([]Option{Stoppable()}, opts...)
	if ex == nil {
		panic(Namespace + ": AsyncStoppable requires a non-nil executor")
	}
	p := NewPromise[T](opts...)
	fut, _ := p.GetFuture()
	token := p.state.token()
	ex.Execute(func() {
		v, err := p.state.runTask(ctx, func(ctx context.Context) (T, error) {
			return fn(ctx, token)
		})
		_ = p.state.transition(v, err)
	})
	return fut
}

// Defer constructs an always-deferred future (spec.md §3 C6, deferred
// policy): fn does not run until the first Wait/Get/WaitContext call on
// the returned future (or a continuation chained from it), at which point
// it runs synchronously on the calling goroutine.
func Defer[T any](fn func(context.Context) (T, error), opts ...Option) Future[T] {
	opts = append(opts, deferredOption())
	cfg := newStateConfig(opts)
	s := newState[T](cfg)
	s.deferred = &deferredTask[T]{fn: fn}
	return Future[T]{state: s}
}
