package future

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alandefreitas/futures-sub003/executor"
)

func TestAsync_RunsOnExecutor(t *testing.T) {
	t.Parallel()

	f := Async(context.Background(), executor.Inline{}, func(context.Context) (int, error) {
		return 5, nil
	})
	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestAsync_PanicBecomesTaskError(t *testing.T) {
	t.Parallel()

	f := Async(context.Background(), executor.Inline{}, func(context.Context) (int, error) {
		panic("boom")
	})
	_, err := f.Get(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task panicked")
}

func TestAsync_NilExecutorPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		Async[int](context.Background(), nil, func(context.Context) (int, error) { return 0, nil })
	})
}

func TestAsyncStoppable_ObservesStop(t *testing.T) {
	t.Parallel()

	source := NewStopSource()
	started := make(chan struct{})
	stopSeen := make(chan struct{})
	f := AsyncStoppable(context.Background(), executor.NewDynamicPool(), func(ctx context.Context, tok StopToken) (int, error) {
		close(started)
		for !tok.StopRequested() {
		}
		close(stopSeen)
		return -1, errors.New("stopped")
	}, WithStopSource(source))

	<-started
	assert.True(t, f.StopToken().Stoppable())
	source.RequestStop()
	<-stopSeen

	_, err := f.Get(context.Background())
	assert.Error(t, err)
}

func TestDefer_RunsOnFirstGet(t *testing.T) {
	t.Parallel()

	var ran bool
	f := Defer(func(context.Context) (int, error) {
		ran = true
		return 9, nil
	})
	assert.False(t, ran)

	v, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, v)
	assert.True(t, ran)
}
