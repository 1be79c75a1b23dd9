// Package future provides asynchronous task launching, continuations, and
// composition on top of a pluggable executor: Promise/PackagedTask produce
// a result, Future/SharedFuture consume one, Then/ThenE/ThenCompose/ThenStop
// chain work onto it, and WhenAll/WhenAny/WaitForAny compose many futures
// into one.
//
// Executors (inline, fixed/dynamic pool, FIFO) live in the executor
// subpackage; recursive fork/join parallel algorithms (ForEach, Reduce,
// FindIf, ...) live in the parallel subpackage.
package future
