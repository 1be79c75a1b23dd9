package future

import (
	"errors"
	"fmt"

	"github.com/ygrebnov/errorc"
)

// Namespace prefixes every sentinel error this package defines, the same
// convention the teacher module used for its own error taxonomy.
const Namespace = "future"

// Library-interface errors (spec.md §7, taxonomy rows 1-5). Most are
// returned synchronously by the offending call; ErrBrokenPromise, and
// ErrNoFutures/ErrNoState when raised by WhenAll/WhenAny or by a Then
// chained onto an invalid Future, are stored as the error of the returned
// future instead and surface from its Get/Wait.
var (
	// ErrBrokenPromise is stored as the result of a state whose producer
	// handle (Promise/PackagedTask) was destroyed/garbage-collected, or
	// explicitly abandoned via Promise.Abandon, without ever completing it.
	ErrBrokenPromise = errors.New(Namespace + ": broken promise")

	// ErrPromiseAlreadySatisfied is returned by SetValue/SetException when
	// the state has already transitioned out of Empty.
	ErrPromiseAlreadySatisfied = errors.New(Namespace + ": promise already satisfied")

	// ErrFutureAlreadyRetrieved is returned by Promise.GetFuture (and
	// PackagedTask.GetFuture) on a second call.
	ErrFutureAlreadyRetrieved = errors.New(Namespace + ": future already retrieved")

	// ErrNoState is returned by Get/Wait/WaitContext on a zero-value Future
	// (one never obtained from a Promise/PackagedTask/Async/Defer, or from a
	// second GetFuture call), and is the error of a Then/ThenE/ThenCompose/
	// ThenStop chained onto such a Future. Reading a Future does not consume
	// its result: Get may be called again and returns the same value. The
	// methods of a zero-value Promise do not check for a missing state.
	ErrNoState = errors.New(Namespace + ": no associated state")

	// ErrFutureDeferred is returned by WaitForAny when one of its futures is
	// always-deferred (spec.md §7's "future-deferred" taxonomy row).
	// WaitForAny only ever observes a done channel closing; an always-
	// deferred future's channel never closes on its own, since nothing
	// drives its task until something calls Get/Wait on it directly. Rather
	// than hang forever, WaitForAny rejects the call synchronously.
	// WaitFor/WaitUntil, by contrast, report this same "always-deferred"
	// case through the WaitDeferred status instead of an error, since they
	// take a single future and "not ready" is already part of their
	// result type.
	ErrFutureDeferred = errors.New(Namespace + ": future is deferred")

	// ErrNoFutures is returned by WhenAll/WhenAllSlice/WhenAny/WaitForAny
	// called with zero children: there is nothing that could ever become
	// ready.
	ErrNoFutures = errors.New(Namespace + ": no futures provided")
)

// taskPanicError wraps a recovered panic value as a task-execution error
// (spec.md §7 taxonomy row 6: "user-task-exception"). It is stored in the
// result slot exactly like any other task error and surfaces at Get/Wait.
func taskPanicError(recovered any) error {
	return errorc.Wrap(fmt.Errorf("%s: task panicked: %v", Namespace, recovered), "task execution")
}
