package future

import (
	"github.com/alandefreitas/futures-sub003/executor"
	"github.com/alandefreitas/futures-sub003/metrics"
)

// opt is the runtime option-flag bitmask backing every state[T] (spec.md §9:
// "falling back to runtime flags" when the host language has no compile-time
// trait composition). Flags are orthogonal and composable, exactly as
// spec.md's option set describes.
type opt uint8

const (
	optContinuable opt = 1 << iota
	optStoppable
	optShared
	optDeferred
)

func (o opt) has(flag opt) bool { return o&flag != 0 }

// stateConfig collects construction-time choices for a state[T], built by
// applying a chain of Option values. Mirrors the teacher's
// configOptions/Option builder in shape (a private struct assembled by
// functional options, then validated once).
type stateConfig struct {
	opts       opt
	executor   executor.Executor
	stopSource *StopSource
	taskID     any
	provider   metrics.Provider
}

// Option configures a Promise, PackagedTask, or launcher call
// (Async/Defer). Use the With... constructors below to build an option
// list; Option values compose, matching the teacher's Option pattern in
// options.go.
type Option func(*stateConfig)

func newStateConfig(opts []Option) stateConfig {
	cfg := stateConfig{opts: optContinuable, provider: metrics.NoopProvider{}}
	for _, o := range opts {
		if o == nil {
			panic(Namespace + ": nil option")
		}
		o(&cfg)
	}
	return cfg
}

// WithExecutor records ex on the constructed state. Nothing in this package
// reads it back: Then/ThenE/ThenCompose/ThenStop dispatch continuations
// through the executor passed to them (inline when that is nil, even if
// the antecedent is already ready), and Async/AsyncStoppable submit their
// task to their own ex argument.
func WithExecutor(ex executor.Executor) Option {
	return func(c *stateConfig) { c.executor = ex }
}

// WithStopSource makes the constructed state stoppable, sharing the given
// StopSource rather than allocating a fresh one. Use this to let several
// futures (e.g. the children of a WhenAll) cooperate on the same
// cancellation signal.
func WithStopSource(s *StopSource) Option {
	return func(c *stateConfig) {
		c.opts |= optStoppable
		c.stopSource = s
	}
}

// Stoppable makes the constructed state stoppable with a freshly allocated
// StopSource.
func Stoppable() Option {
	return func(c *stateConfig) {
		c.opts |= optStoppable
		if c.stopSource == nil {
			c.stopSource = NewStopSource()
		}
	}
}

// WithoutContinuations disables the continuation list for this state. Use
// this for throwaway intermediate futures that are only ever Wait()ed or
// Get(), never Then'd; it skips the continuation-list allocation entirely.
func WithoutContinuations() Option {
	return func(c *stateConfig) { c.opts &^= optContinuable }
}

// WithTaskID tags the future's eventual error (if any) with id, retrievable
// via ExtractTaskID.
func WithTaskID(id any) Option {
	return func(c *stateConfig) { c.taskID = id }
}

// WithMetrics routes this state's instrumentation (completions with a value
// or an error, tasks in flight, task duration) to provider instead of the
// no-op default.
func WithMetrics(provider metrics.Provider) Option {
	return func(c *stateConfig) {
		if provider != nil {
			c.provider = provider
		}
	}
}

func deferredOption() Option {
	return func(c *stateConfig) { c.opts |= optDeferred }
}
