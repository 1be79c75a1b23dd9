package future

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskPanicError_WrapsRecoveredValue(t *testing.T) {
	t.Parallel()

	err := taskPanicError("boom")
	assert.Contains(t, err.Error(), "task panicked")
	assert.Contains(t, err.Error(), "boom")
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrBrokenPromise,
		ErrPromiseAlreadySatisfied,
		ErrFutureAlreadyRetrieved,
		ErrNoState,
		ErrFutureDeferred,
		ErrNoFutures,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b)
		}
	}
}
