package future

import "context"

// PackagedTask wraps a callable together with the Promise that carries its
// result, so that invoking the task and satisfying the promise happen as
// one step (spec.md §3 C4). Adapted from the teacher's task.go three-shape
// adapter (a task may return (value, error), just a value, or just an
// error), generalized from worker-pool jobs to future-producing callables.
type PackagedTask[T any] struct {
	promise *Promise[T]
	fn      func(context.Context) (T, error)
}

// NewPackagedTask wraps fn, which must return (T, error).
func NewPackagedTask[T any](fn func(context.Context) (T, error), opts ...Option) *PackagedTask[T] {
	return &PackagedTask[T]{promise: NewPromise[T](opts...), fn: fn}
}

// NewPackagedTaskValue wraps fn, which returns only a value; the task never
// fails on its own (a panic is still captured and reported as an error).
func NewPackagedTaskValue[T any](fn func(context.Context) T, opts ...Option) *PackagedTask[T] {
	return NewPackagedTask[T](func(ctx context.Context) (T, error) {
		return fn(ctx), nil
	}, opts...)
}

// NewPackagedTaskAction wraps fn, which returns only an error and no value
// of interest; the associated future's value type is struct{}.
func NewPackagedTaskAction(fn func(context.Context) error, opts ...Option) *PackagedTask[struct{}] {
	return NewPackagedTask[struct{}](func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, opts...)
}

// GetFuture returns the Future this task will satisfy. See
// Promise.GetFuture for the single-retrieval rule.
func (t *PackagedTask[T]) GetFuture() (Future[T], error) {
	return t.promise.GetFuture()
}

// Run invokes the wrapped callable and satisfies the promise with its
// result, recovering a panic into a task-execution error (spec.md §7 row
// 6). Run is itself synchronous; callers that want asynchronous execution
// submit it to an executor (this is exactly what Async does internally).
func (t *PackagedTask[T]) Run(ctx context.Context) {
	v, err := t.promise.state.runTask(ctx, t.fn)
	_ = t.promise.state.transition(v, err)
}

// Reset rebinds this task to a fresh, unsatisfied promise so the same
// callable can be scheduled again (spec.md §3 C4's reset operation).
func (t *PackagedTask[T]) Reset(opts ...Option) {
	t.promise = NewPromise[T](opts...)
}
