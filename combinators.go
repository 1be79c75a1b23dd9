package future

import (
	"context"
	"sync"
	"sync/atomic"
)

// Result pairs a completed future's value and error, preserving per-element
// outcome the way the original's when_all returns a collection of futures
// rather than collapsing straight to values (spec.md §4.4). Inspect Err to
// find out whether Value is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// attachOrDrive arranges for record to run once f becomes ready, either by
// attaching a continuation (the eager, no-goroutine path, which is what
// lets a WhenAll/WhenAny composite's own readiness track its children's
// readiness rather than only materializing on Get) or, for a deferred or
// non-continuable f, by spawning a goroutine that blocks on f.Get(ctx) —
// the only way to drive a deferred antecedent, since nothing else will.
func attachOrDrive[T any](ctx context.Context, f Future[T], record func(T, error)) {
	if !f.Deferred() && f.Continuable() {
		cb := func() {
			v, err, _ := f.Try()
			record(v, err)
		}
		if f.state.attachContinuation(cb) {
			return
		}
		// already drained: f was ready by the time we attached
		cb()
		return
	}
	go func() {
		v, err := f.Get(ctx)
		record(v, err)
	}()
}

// WhenAll returns a future that becomes ready once every one of futures
// has (spec.md §3 C9, §8 "composite future is Ready iff every c is Ready").
// Unlike Then, it never short-circuits on the first error: every future's
// outcome is recorded in the result slice, in input order, regardless of
// whether it succeeded or failed.
//
// Grounded on the teacher's run_all.go fan-out/fan-in shape (spawn one
// goroutine per item, join on completion), adapted here from "block until
// every goroutine returns" to "become Ready as each child's own
// continuation fires", so the composite's IsReady/WaitFor reflect its
// children's state directly instead of only resolving inside a blocking
// Get.
func WhenAll[T any](ctx context.Context, futures ...Future[T]) Future[[]Result[T]] {
	return WhenAllSlice(ctx, futures)
}

// WhenAllSlice is WhenAll taking its futures as a slice rather than a
// variadic list.
func WhenAllSlice[T any](ctx context.Context, futures []Future[T]) Future[[]Result[T]] {
	p := NewPromise[[]Result[T]]()
	composite, _ := p.GetFuture()

	if len(futures) == 0 {
		_ = p.SetException(ErrNoFutures)
		return composite
	}

	results := make([]Result[T], len(futures))
	var remaining atomic.Int64
	remaining.Store(int64(len(futures)))

	for i, f := range futures {
		i := i
		attachOrDrive(ctx, f, func(v T, err error) {
			results[i] = Result[T]{Value: v, Err: err}
			if remaining.Add(-1) == 0 {
				_ = p.state.transition(results, nil)
			}
		})
	}

	return composite
}

// Tuple2 is the heterogeneous join result of WhenAll2. Go has no variadic
// heterogeneous tuple the way the original's when_all(futures...) does, so
// each arity gets its own named type (spec.md §4.2 rules 4/5 unwrap the
// corresponding way on the producing side).
type Tuple2[A, B any] struct {
	First  Result[A]
	Second Result[B]
}

// Tuple3 is the 3-future join result of WhenAll3.
type Tuple3[A, B, C any] struct {
	First  Result[A]
	Second Result[B]
	Third  Result[C]
}

// Tuple4 is the 4-future join result of WhenAll4.
type Tuple4[A, B, C, D any] struct {
	First  Result[A]
	Second Result[B]
	Third  Result[C]
	Fourth Result[D]
}

// WhenAll2 joins two futures of different result types, becoming Ready as
// soon as both have (see WhenAllSlice).
func WhenAll2[A, B any](ctx context.Context, fa Future[A], fb Future[B]) Future[Tuple2[A, B]] {
	p := NewPromise[Tuple2[A, B]]()
	composite, _ := p.GetFuture()

	var t Tuple2[A, B]
	var remaining atomic.Int64
	remaining.Store(2)
	done := func() {
		if remaining.Add(-1) == 0 {
			_ = p.state.transition(t, nil)
		}
	}

	attachOrDrive(ctx, fa, func(v A, err error) { t.First = Result[A]{Value: v, Err: err}; done() })
	attachOrDrive(ctx, fb, func(v B, err error) { t.Second = Result[B]{Value: v, Err: err}; done() })

	return composite
}

// WhenAll3 joins three futures of different result types.
func WhenAll3[A, B, C any](ctx context.Context, fa Future[A], fb Future[B], fc Future[C]) Future[Tuple3[A, B, C]] {
	p := NewPromise[Tuple3[A, B, C]]()
	composite, _ := p.GetFuture()

	var t Tuple3[A, B, C]
	var remaining atomic.Int64
	remaining.Store(3)
	done := func() {
		if remaining.Add(-1) == 0 {
			_ = p.state.transition(t, nil)
		}
	}

	attachOrDrive(ctx, fa, func(v A, err error) { t.First = Result[A]{Value: v, Err: err}; done() })
	attachOrDrive(ctx, fb, func(v B, err error) { t.Second = Result[B]{Value: v, Err: err}; done() })
	attachOrDrive(ctx, fc, func(v C, err error) { t.Third = Result[C]{Value: v, Err: err}; done() })

	return composite
}

// WhenAll4 joins four futures of different result types.
func WhenAll4[A, B, C, D any](ctx context.Context, fa Future[A], fb Future[B], fc Future[C], fd Future[D]) Future[Tuple4[A, B, C, D]] {
	p := NewPromise[Tuple4[A, B, C, D]]()
	composite, _ := p.GetFuture()

	var t Tuple4[A, B, C, D]
	var remaining atomic.Int64
	remaining.Store(4)
	done := func() {
		if remaining.Add(-1) == 0 {
			_ = p.state.transition(t, nil)
		}
	}

	attachOrDrive(ctx, fa, func(v A, err error) { t.First = Result[A]{Value: v, Err: err}; done() })
	attachOrDrive(ctx, fb, func(v B, err error) { t.Second = Result[B]{Value: v, Err: err}; done() })
	attachOrDrive(ctx, fc, func(v C, err error) { t.Third = Result[C]{Value: v, Err: err}; done() })
	attachOrDrive(ctx, fd, func(v D, err error) { t.Fourth = Result[D]{Value: v, Err: err}; done() })

	return composite
}

// WhenAnyResult reports which future WhenAny observed ready first, along
// with the full set it was waiting on so the caller can inspect the rest.
type WhenAnyResult[T any] struct {
	Index   int
	Futures []Future[T]
}

// WhenAny returns a future that becomes ready as soon as any one of
// futures does (spec.md §3 C9, §8's when_any property: the reported index
// was Ready at the moment of readiness and no other child was Ready
// earlier). It does not cancel the others: they keep running, and
// WhenAnyResult.Futures lets the caller still retrieve them.
func WhenAny[T any](ctx context.Context, futures ...Future[T]) Future[WhenAnyResult[T]] {
	p := NewPromise[WhenAnyResult[T]]()
	composite, _ := p.GetFuture()

	if len(futures) == 0 {
		_ = p.SetException(ErrNoFutures)
		return composite
	}

	var winner sync.Once
	for i, f := range futures {
		i := i
		attachOrDrive(ctx, f, func(_ T, _ error) {
			winner.Do(func() {
				_ = p.state.transition(WhenAnyResult[T]{Index: i, Futures: futures}, nil)
			})
		})
	}

	return composite
}
