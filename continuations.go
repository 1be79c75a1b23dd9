package future

import "sync"

// contList is the ordered list of "run after ready" callbacks attached to
// an operation state (spec.md §3 C2). It supports concurrent append before
// the state becomes ready and a single serialized drain once it does;
// appends observed after (or during) the drain are rejected so the caller
// can dispatch them directly instead (spec.md §4.1 step 4, §5).
//
// Grounded on the teacher's error_forwarder.go/lifecycle.go idiom of a
// single mutex-guarded sequence with a "has this already run" flag, rather
// than a genuinely lock-free queue — spec.md §3 explicitly allows "a mutex
// fallback" for this component.
type contList struct {
	mu      sync.Mutex
	drained bool
	items   []func()
}

// append adds cb to the list if the drain hasn't started yet. It reports
// whether cb was queued (true) or whether the list had already drained
// (false, meaning the caller must dispatch cb itself).
func (c *contList) append(cb func()) (queued bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drained {
		return false
	}
	c.items = append(c.items, cb)
	return true
}

// drain flips the run-requested flag and invokes every queued callback, in
// FIFO attach order, on the calling goroutine. drain is idempotent: calling
// it more than once only runs the queued callbacks the first time.
func (c *contList) drain() {
	c.mu.Lock()
	if c.drained {
		c.mu.Unlock()
		return
	}
	c.drained = true
	items := c.items
	c.items = nil
	c.mu.Unlock()

	for _, cb := range items {
		cb()
	}
}

// hasDrained reports whether drain has already run. append does not use
// it: append's own false return already tells the caller to dispatch.
func (c *contList) hasDrained() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drained
}
