package future

import (
	"context"
	"time"
)

// Future is the consumer handle for an operation state (spec.md §3 C5). A
// zero-value Future (e.g. from a default-constructed variable, or from a
// second call to Promise.GetFuture) is Valid()==false and every blocking
// method on it returns ErrNoState immediately.
//
// Grounded on kennycyb-go-utils' Future[T] (Await(ctx)/Try() pair) for the
// consumer-side method shape, combined with the teacher's pattern of a
// thin handle wrapping a shared internal pointer.
type Future[T any] struct {
	state *state[T]
}

// Valid reports whether this Future is associated with an operation state.
func (f Future[T]) Valid() bool { return f.state != nil }

// Get blocks until the future is ready (driving a deferred task if this is
// an always-deferred future) and returns its value or error.
func (f Future[T]) Get(ctx context.Context) (T, error) {
	if f.state == nil {
		var zero T
		return zero, ErrNoState
	}
	return f.state.get(ctx)
}

// Wait blocks, with no deadline, until the future is ready.
func (f Future[T]) Wait() error {
	if f.state == nil {
		return ErrNoState
	}
	return f.state.wait(context.Background())
}

// WaitContext blocks until the future is ready or ctx is done, whichever
// comes first.
func (f Future[T]) WaitContext(ctx context.Context) error {
	if f.state == nil {
		return ErrNoState
	}
	return f.state.wait(ctx)
}

// WaitFor blocks for at most d. It never drives an always-deferred
// future's task (spec.md §4.1's "wait on a deferred state" note); in that
// case it always returns WaitDeferred without blocking.
func (f Future[T]) WaitFor(d time.Duration) WaitStatus {
	if f.state == nil {
		return WaitTimeout
	}
	return f.state.waitFor(d)
}

// WaitUntil blocks until deadline t. See WaitFor for the deferred-state
// caveat.
func (f Future[T]) WaitUntil(t time.Time) WaitStatus {
	return f.WaitFor(time.Until(t))
}

// IsReady is a non-blocking probe. For an always-deferred future it only
// ever reports true after Get/Wait has driven its task.
func (f Future[T]) IsReady() bool {
	return f.state != nil && f.state.isReady()
}

// Try returns the value without blocking if the future is already ready,
// otherwise reports ok=false.
func (f Future[T]) Try() (value T, err error, ok bool) {
	if f.state == nil || !f.state.isReady() {
		var zero T
		return zero, nil, false
	}
	v, e := f.state.get(context.Background())
	return v, e, true
}

// Deferred reports whether this future is always-deferred.
func (f Future[T]) Deferred() bool {
	return f.state != nil && f.state.opts.has(optDeferred)
}

// Continuable reports whether Then (and friends) can attach a continuation
// to this future.
func (f Future[T]) Continuable() bool {
	return f.state != nil && f.state.continuable()
}

// StopToken returns this future's stop token, or a zero (never-cancellable)
// token if it wasn't constructed as stoppable.
func (f Future[T]) StopToken() StopToken {
	if f.state == nil {
		return StopToken{}
	}
	return f.state.token()
}

// Share converts this future into a SharedFuture over the same state, whose
// Get/Wait/Try may be called from more than one goroutine and more than
// once each (spec.md §3's shared-future invariant). Future's own Get does
// not consume the result either, so both handles read the same value. The
// original Future should be discarded after calling Share.
func (f Future[T]) Share() SharedFuture[T] {
	return SharedFuture[T]{state: f.state}
}

// doneSignal implements AnyFuture for use by WaitForAny.
func (f Future[T]) doneSignal() <-chan struct{} {
	if f.state == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return f.state.done
}

// isDeferred implements AnyFuture for use by WaitForAny.
func (f Future[T]) isDeferred() bool { return f.Deferred() }

// SharedFuture is a Future that may be read from multiple call sites
// concurrently, each seeing the same eventual value or error (spec.md §3's
// shared-future variant, C5). Every method has the same semantics as the
// corresponding Future method.
type SharedFuture[T any] struct {
	state *state[T]
}

func (f SharedFuture[T]) Valid() bool { return f.state != nil }

func (f SharedFuture[T]) Get(ctx context.Context) (T, error) {
	return Future[T](f).Get(ctx)
}

func (f SharedFuture[T]) Wait() error { return Future[T](f).Wait() }

func (f SharedFuture[T]) WaitContext(ctx context.Context) error {
	return Future[T](f).WaitContext(ctx)
}

func (f SharedFuture[T]) WaitFor(d time.Duration) WaitStatus { return Future[T](f).WaitFor(d) }

func (f SharedFuture[T]) WaitUntil(t time.Time) WaitStatus { return Future[T](f).WaitUntil(t) }

func (f SharedFuture[T]) IsReady() bool { return Future[T](f).IsReady() }

func (f SharedFuture[T]) Try() (T, error, bool) { return Future[T](f).Try() }

func (f SharedFuture[T]) StopToken() StopToken { return Future[T](f).StopToken() }

// AnyFuture is the type-erased view of a Future/SharedFuture used by
// WaitForAny to wait across futures of different result types (spec.md §3
// C8). Future[T] and SharedFuture[T] both satisfy it; both methods are
// unexported, so the interface is effectively sealed to this package.
type AnyFuture interface {
	doneSignal() <-chan struct{}
	isDeferred() bool
}

func (f SharedFuture[T]) doneSignal() <-chan struct{} { return Future[T](f).doneSignal() }

func (f SharedFuture[T]) isDeferred() bool { return Future[T](f).isDeferred() }
