package future

import (
	"context"
	"sync"
	"time"

	"github.com/alandefreitas/futures-sub003/executor"
	"github.com/alandefreitas/futures-sub003/metrics"
)

const (
	metricCompletedValue = "future_completed_value"
	metricCompletedError = "future_completed_error"
	metricInflight       = "future_inflight"
	metricTaskDuration   = "future_task_duration_seconds"
)

// WaitStatus is the outcome of a bounded wait (spec.md §4.1 wait_for/
// wait_until).
type WaitStatus int

const (
	// WaitReady means the state became ready before the deadline.
	WaitReady WaitStatus = iota
	// WaitTimeout means the deadline elapsed first.
	WaitTimeout
	// WaitDeferred means the state is always-deferred: a bounded wait never
	// drives the deferred task, it only reports that it didn't.
	WaitDeferred
)

// deferredTask holds the function and wait-callback a deferred state needs
// to run its work exactly once, on the first Wait/Get (spec.md §3, §9
// "Deferred-state wait callback"). waitCallback, when set, runs before fn;
// nothing in this package sets it at present: a deferred Then chain drives
// its antecedent from inside fn by calling the antecedent's Get.
type deferredTask[T any] struct {
	once         sync.Once
	fn           func(context.Context) (T, error)
	waitCallback func()
}

// state is the operation state shared between exactly one producer handle
// and one-or-more future handles (spec.md §3 C3). Every optional feature
// (stoppable, continuable, shared, deferred) is represented by a runtime
// flag plus a field that stays nil/zero when unused, per §9's "falling
// back to runtime flags" guidance — Go has no compile-time trait
// composition to select these at the type level the way the original does.
//
// Readiness is signaled by closing done exactly once, the same single-
// assignment-channel idiom used throughout the retrieval pack's Future
// implementations (e.g. Tochemey/gopack's future[T], kennycyb-go-utils'
// Future[T]) rather than a condition variable: it composes directly with
// ctx.Done() in a select, which a sync.Cond does not.
type state[T any] struct {
	mu    sync.Mutex
	done  chan struct{}
	ready bool
	val   T
	err   error

	opts       opt
	executor   executor.Executor
	stopSource *StopSource
	conts      *contList
	deferred   *deferredTask[T]
	taskID     any
	provider   metrics.Provider

	abandoned bool // set by Promise.Abandon / the GC finalizer fallback
}

func newState[T any](cfg stateConfig) *state[T] {
	s := &state[T]{
		done:       make(chan struct{}),
		opts:       cfg.opts,
		executor:   cfg.executor,
		stopSource: cfg.stopSource,
		taskID:     cfg.taskID,
		provider:   cfg.provider,
	}
	if s.provider == nil {
		s.provider = metrics.NoopProvider{}
	}
	if s.opts.has(optContinuable) {
		s.conts = &contList{}
	}
	return s
}

// transition moves the state from Empty to Ready (with v) or
// Ready-with-error (with err), exactly once (spec.md §3 invariant 1, §4.1).
func (s *state[T]) transition(v T, err error) error {
	if err != nil && s.taskID != nil {
		err = newTaggedError(err, s.taskID)
	}

	s.mu.Lock()
	if s.ready {
		s.mu.Unlock()
		return ErrPromiseAlreadySatisfied
	}
	s.val, s.err = v, err
	s.ready = true
	close(s.done)
	s.mu.Unlock()

	if err != nil {
		s.provider.Counter(metricCompletedError).Add(1)
	} else {
		s.provider.Counter(metricCompletedValue).Add(1)
	}

	// Draining continuations happens-after releasing mu (spec.md §4.1 step
	// 4): continuation callbacks may themselves call back into this state
	// (e.g. IsReady) and must not deadlock on mu.
	if s.conts != nil {
		s.conts.drain()
	}
	return nil
}

func (s *state[T]) runDeferredOnce(ctx context.Context) {
	s.deferred.once.Do(func() {
		if s.deferred.waitCallback != nil {
			s.deferred.waitCallback()
		}
		v, err := s.runTask(ctx, s.deferred.fn)
		_ = s.transition(v, err)
	})
}

// runTask invokes fn, converting a panic into a task-execution error
// (spec.md §7 row 6), the same recover-and-wrap idiom as the teacher's
// worker.go/task.go. It also brackets the call with the in-flight
// UpDownCounter and records the Histogram duration, so a configured
// metrics.Provider sees every task this state ever runs (launch, deferred,
// or packaged), not just its terminal Counter outcome.
func (s *state[T]) runTask(ctx context.Context, fn func(context.Context) (T, error)) (result T, err error) {
	s.provider.UpDownCounter(metricInflight).Add(1)
	start := time.Now()
	defer func() {
		s.provider.UpDownCounter(metricInflight).Add(-1)
		s.provider.Histogram(metricTaskDuration).Record(time.Since(start).Seconds())
		if r := recover(); r != nil {
			err = taskPanicError(r)
		}
	}()
	return fn(ctx)
}

// wait blocks until ready, driving the deferred task on first call if this
// is an always-deferred state. It returns ctx.Err() if ctx is done first
// (never possible for always-deferred states, which run synchronously).
func (s *state[T]) wait(ctx context.Context) error {
	if s.opts.has(optDeferred) {
		s.runDeferredOnce(ctx)
		return nil
	}
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// waitFor is the bounded variant (spec.md §4.1 wait_for/wait_until): it
// never drives a deferred task, it only reports WaitDeferred.
func (s *state[T]) waitFor(d time.Duration) WaitStatus {
	if s.opts.has(optDeferred) {
		return WaitDeferred
	}
	if d <= 0 {
		select {
		case <-s.done:
			return WaitReady
		default:
			return WaitTimeout
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.done:
		return WaitReady
	case <-timer.C:
		return WaitTimeout
	}
}

// isReady is a non-blocking probe (spec.md §4.1 is_ready). For
// always-deferred states it never reports ready on its own: readiness only
// happens once Wait/Get drives the deferred task.
func (s *state[T]) isReady() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// get blocks via wait, then returns the stored value/error.
func (s *state[T]) get(ctx context.Context) (T, error) {
	if err := s.wait(ctx); err != nil {
		var zero T
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val, s.err
}

// attachContinuation appends cb to the continuation list if the state
// hasn't drained yet, returning true if it was queued (spec.md §4.1
// attach_continuation). A false return means the caller must dispatch cb
// itself (directly, or via an executor).
func (s *state[T]) attachContinuation(cb func()) bool {
	if s.conts == nil {
		return false
	}
	return s.conts.append(cb)
}

// continuable reports whether this state supports continuation attachment.
func (s *state[T]) continuable() bool { return s.conts != nil }

// stoppable reports whether this state carries a stop source.
func (s *state[T]) stoppable() bool { return s.opts.has(optStoppable) }

// token returns this state's stop token, or a zero (never-cancellable)
// token if the state isn't stoppable.
func (s *state[T]) token() StopToken {
	if s.stopSource == nil {
		return StopToken{}
	}
	return s.stopSource.Token()
}

// abandon marks the state Ready-with-error(ErrBrokenPromise) if it hasn't
// already completed (spec.md §3 invariant 6). Safe to call more than once
// and safe to call after a normal completion (it's then a no-op).
func (s *state[T]) abandon() {
	s.mu.Lock()
	if s.ready || s.abandoned {
		s.mu.Unlock()
		return
	}
	s.abandoned = true
	s.mu.Unlock()
	_ = s.transition(*new(T), ErrBrokenPromise)
}
