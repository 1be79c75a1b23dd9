package future

import "runtime"

// Promise is the producer handle for a manually satisfied operation
// (spec.md §3 C4). Call GetFuture exactly once to retrieve the associated
// Future, then SetValue or SetException exactly once to satisfy it.
//
// Grounded on Tochemey/gopack's completer/completable split (a promise-side
// type distinct from the future-side type, connected through one shared
// state), adapted to the option-flag construction style of this package's
// options.go rather than gopack's fixed constructor.
type Promise[T any] struct {
	state     *state[T]
	retrieved bool
}

// NewPromise constructs an unsatisfied Promise.
func NewPromise[T any](opts ...Option) *Promise[T] {
	cfg := newStateConfig(opts)
	p := &Promise[T]{state: newState[T](cfg)}
	// A Promise dropped without SetValue/SetException/Abandon leaves its
	// Future permanently pending. Go has no destructor to detect this
	// deterministically (spec.md §3 invariant 6 assumes one); a finalizer
	// is the closest approximation, catching the case at GC time as a
	// fallback to the explicit Abandon call below.
	runtime.SetFinalizer(p, func(p *Promise[T]) { p.state.abandon() })
	return p
}

// GetFuture returns the Future associated with this promise. It may be
// called at most once; subsequent calls return ErrFutureAlreadyRetrieved
// (spec.md §3 invariant 3).
func (p *Promise[T]) GetFuture() (Future[T], error) {
	if p.retrieved {
		return Future[T]{}, ErrFutureAlreadyRetrieved
	}
	p.retrieved = true
	return Future[T]{state: p.state}, nil
}

// SetValue satisfies the promise with v. Returns
// ErrPromiseAlreadySatisfied if the promise was already satisfied
// (spec.md §7 row 2).
func (p *Promise[T]) SetValue(v T) error {
	return p.state.transition(v, nil)
}

// SetException satisfies the promise with err, which must be non-nil.
func (p *Promise[T]) SetException(err error) error {
	if err == nil {
		panic(Namespace + ": SetException called with a nil error")
	}
	return p.state.transition(*new(T), err)
}

// Abandon satisfies the promise with ErrBrokenPromise if it isn't already
// satisfied (spec.md §3 invariant 6). Call this explicitly when discarding
// a Promise before it's used, rather than relying on the GC finalizer.
func (p *Promise[T]) Abandon() {
	p.state.abandon()
}

// StopSource returns the StopSource backing this promise, or nil if it
// wasn't constructed with Stoppable()/WithStopSource.
func (p *Promise[T]) StopSource() *StopSource {
	return p.state.stopSource
}
