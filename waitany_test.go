package future

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForAny_ReturnsEarliestReadyIndex(t *testing.T) {
	t.Parallel()

	p0 := NewPromise[int]()
	p1 := NewPromise[int]()
	f0, _ := p0.GetFuture()
	f1, _ := p1.GetFuture()

	require.NoError(t, p1.SetValue(1))

	idx, err := WaitForAny(context.Background(), f0, f1)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestWaitForAny_ContextCancellation(t *testing.T) {
	t.Parallel()

	p := NewPromise[int]()
	f, _ := p.GetFuture()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := WaitForAny(ctx, f)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWaitForAny_NoFutures(t *testing.T) {
	t.Parallel()

	_, err := WaitForAny(context.Background())
	assert.ErrorIs(t, err, ErrNoFutures)
}

func TestWaitForAny_RejectsDeferredFutureRatherThanHanging(t *testing.T) {
	t.Parallel()

	p := NewPromise[int]()
	ready, _ := p.GetFuture()
	require.NoError(t, p.SetValue(1))

	deferred := Defer(func(context.Context) (int, error) { return 2, nil })

	idx, err := WaitForAny(context.Background(), ready, deferred)
	assert.Equal(t, -1, idx)
	assert.ErrorIs(t, err, ErrFutureDeferred)
}
