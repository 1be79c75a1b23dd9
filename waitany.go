package future

import (
	"context"
	"reflect"
)

// WaitForAny blocks until one of futures becomes ready, or until ctx is
// done, and returns that future's index (spec.md §3 C8). When several are
// already ready at the time of the call, which of their indices is
// returned is chosen at random by reflect.Select. It never
// drives an always-deferred future's task: a deferred future's done
// channel only closes once something else calls Get/Wait on it, so mixing
// one in here would otherwise wait forever. Instead WaitForAny rejects the
// call synchronously with ErrFutureDeferred (spec.md §7's "future-deferred"
// row, a library-interface error reported at the offending call).
//
// Grounded on the reflect.Select-based fan-in seen in
// _examples/kennycyb-go-utils' future multiplexing, generalized from a
// fixed pair of channels to an arbitrary list of heterogeneous futures via
// the AnyFuture type-erasure interface.
func WaitForAny(ctx context.Context, futures ...AnyFuture) (int, error) {
	if len(futures) == 0 {
		return -1, ErrNoFutures
	}
	for _, f := range futures {
		if f.isDeferred() {
			return -1, ErrFutureDeferred
		}
	}

	cases := make([]reflect.SelectCase, 0, len(futures)+1)
	for _, f := range futures {
		cases = append(cases, reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(f.doneSignal()),
		})
	}
	cases = append(cases, reflect.SelectCase{
		Dir:  reflect.SelectRecv,
		Chan: reflect.ValueOf(ctx.Done()),
	})

	chosen, _, _ := reflect.Select(cases)
	if chosen == len(futures) {
		return -1, ctx.Err()
	}
	return chosen, nil
}
