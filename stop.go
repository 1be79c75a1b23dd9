package future

import (
	"sync"
	"sync/atomic"
)

// StopSource owns a cooperative-cancellation flag and the callbacks
// registered against it (spec.md §3 C1). Requesting stop is monotonic:
// once true, it never reverts. Grounded on
// _examples/other_examples/.../util-stopper.go.go's two-phase stop flag,
// narrowed from a full worker-draining Stopper down to the bare
// flag+callbacks pair spec.md's stop source needs.
type StopSource struct {
	mu        sync.Mutex
	requested atomic.Bool
	callbacks []func()
}

// NewStopSource constructs an unrequested StopSource.
func NewStopSource() *StopSource {
	return &StopSource{}
}

// Token returns a read-only view of this source, shareable across the
// producer, consumer, and any continuations that cooperate on the same
// cancellation signal.
func (s *StopSource) Token() StopToken {
	return StopToken{source: s}
}

// RequestStop sets the stop flag if it is not already set and runs every
// registered callback, in registration order, on the calling goroutine.
// RequestStop returns true if this call performed the transition, false if
// stop had already been requested by a previous call.
//
// Ordering (spec.md §5, §8): callbacks registered before the call run to
// completion before the stop flag becomes observable, so no other
// goroutine's StopRequested can return true while a callback is still
// running. The mutex stays held for the whole callback batch, and the flag
// is only set after the batch; StopRequested reads the flag without taking
// the mutex, so it reports false (rather than waiting) while callbacks run.
func (s *StopSource) RequestStop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.requested.Load() {
		return false
	}
	callbacks := s.callbacks
	s.callbacks = nil

	for _, cb := range callbacks {
		if cb != nil {
			cb()
		}
	}
	s.requested.Store(true)
	return true
}

// StopRequested reports whether a RequestStop call has finished running
// its callbacks.
func (s *StopSource) StopRequested() bool {
	return s.requested.Load()
}

// register adds cb to the callback list, or invokes it immediately if stop
// has already been requested. Returns a deregistration function that is
// a no-op once callbacks have already fired.
func (s *StopSource) register(cb func()) (deregister func()) {
	s.mu.Lock()
	if s.requested.Load() {
		s.mu.Unlock()
		cb()
		return func() {}
	}
	idx := len(s.callbacks)
	s.callbacks = append(s.callbacks, cb)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if idx < len(s.callbacks) {
			s.callbacks[idx] = nil
		}
	}
}

// StopToken is a copyable, read-only view of a StopSource's cancellation
// state. A zero-value StopToken is never cancellable: StopRequested always
// reports false and OnStop never fires.
type StopToken struct {
	source *StopSource
}

// StopRequested reports whether the associated StopSource's stop has been
// requested. A zero-value token always reports false.
func (t StopToken) StopRequested() bool {
	if t.source == nil {
		return false
	}
	return t.source.StopRequested()
}

// OnStop registers cb to run when stop is requested, or immediately if it
// already has been. It returns a function that deregisters cb; calling it
// after cb has already fired is a harmless no-op. A zero-value token's
// OnStop never fires and its deregister function is a no-op.
func (t StopToken) OnStop(cb func()) (deregister func()) {
	if t.source == nil {
		return func() {}
	}
	return t.source.register(cb)
}

// Stoppable reports whether this token is backed by a real StopSource.
func (t StopToken) Stoppable() bool { return t.source != nil }
