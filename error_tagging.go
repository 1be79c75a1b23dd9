package future

import (
	"errors"
	"fmt"
)

// TaskMetaError exposes correlation metadata for a task failure: an
// optional caller-supplied ID (set via Promise/PackagedTask construction or
// Async's WithTaskID option) and, for errors raised while forking a
// parallel algorithm, the partition bounds of the subrange that failed.
//
// Adapted from the teacher's error_tagging.go, generalized from
// worker-queue task id/index pairs to future-launch task IDs and
// parallel-algorithm partition ranges.
type TaskMetaError interface {
	error
	Unwrap() error
	TaskID() (any, bool)
	Range() (first, last int, ok bool)
}

type taggedError struct {
	err         error
	id          any
	first, last int
	hasRange    bool
}

// newTaggedError wraps err with a task ID for correlation. Returns nil if
// err is nil.
func newTaggedError(err error, id any) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, id: id}
}

// NewRangeTaggedError wraps err with the [first,last) partition bounds of
// the parallel-algorithm fork that produced it. Exported for use by the
// parallel package.
func NewRangeTaggedError(err error, first, last int) error {
	if err == nil {
		return nil
	}
	return &taggedError{err: err, first: first, last: last, hasRange: true}
}

func (e *taggedError) Error() string { return e.err.Error() }
func (e *taggedError) Unwrap() error { return e.err }

func (e *taggedError) TaskID() (any, bool) {
	if e.id == nil {
		return nil, false
	}
	return e.id, true
}

func (e *taggedError) Range() (int, int, bool) {
	return e.first, e.last, e.hasRange
}

func (e *taggedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if e.hasRange {
				_, _ = fmt.Fprintf(s, "range[%d,%d): %+v", e.first, e.last, e.err)
			} else {
				_, _ = fmt.Fprintf(s, "task(id=%v): %+v", e.id, e.err)
			}
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractTaskID returns the task ID from err if present anywhere in its
// chain.
func ExtractTaskID(err error) (any, bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.TaskID()
	}
	return nil, false
}

// ExtractRange returns the partition bounds tagged on err, if present
// anywhere in its chain.
func ExtractRange(err error) (first, last int, ok bool) {
	var tme TaskMetaError
	if errors.As(err, &tme) {
		return tme.Range()
	}
	return 0, 0, false
}
