package parallel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alandefreitas/futures-sub003/executor"
)

func TestAnyOf(t *testing.T) {
	t.Parallel()

	ok, err := AnyOf(context.Background(), []int{1, 2, 3}, executor.NewDynamicPool(), Halve(1), func(v int) bool { return v == 2 })
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AnyOf(context.Background(), []int{1, 2, 3}, executor.NewDynamicPool(), Halve(1), func(v int) bool { return v == 9 })
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = AnyOf[int](context.Background(), nil, executor.Inline{}, Halve(1), func(v int) bool { return true })
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllOf(t *testing.T) {
	t.Parallel()

	ok, err := AllOf(context.Background(), []int{2, 4, 6}, executor.NewDynamicPool(), Halve(1), func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AllOf(context.Background(), []int{2, 3, 6}, executor.NewDynamicPool(), Halve(1), func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoneOf(t *testing.T) {
	t.Parallel()

	ok, err := NoneOf(context.Background(), []int{1, 3, 5}, executor.Inline{}, Halve(1), func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCountIf(t *testing.T) {
	t.Parallel()

	count, err := CountIf(context.Background(), []int{1, 2, 3, 4, 5, 6}, executor.NewDynamicPool(), Halve(1), func(v int) bool { return v%2 == 0 })
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
