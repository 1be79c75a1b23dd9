package parallel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alandefreitas/futures-sub003/executor"
)

func TestReduce_SumsInRangeOrder(t *testing.T) {
	t.Parallel()

	items := make([]int, 50)
	for i := range items {
		items[i] = i + 1
	}

	sum, err := Reduce(context.Background(), items, executor.NewDynamicPool(), Halve(3), 0, func(acc, v int) int { return acc + v })
	require.NoError(t, err)
	assert.Equal(t, 1275, sum)
}

func TestReduce_EmptyReturnsIdentity(t *testing.T) {
	t.Parallel()

	sum, err := Reduce[int](context.Background(), nil, executor.Inline{}, Halve(1), 42, func(acc, v int) int { return acc + v })
	require.NoError(t, err)
	assert.Equal(t, 42, sum)
}

func TestReduce_ConcatenationRespectsOrder(t *testing.T) {
	t.Parallel()

	words := []string{"a", "b", "c", "d", "e", "f", "g"}
	joined, err := Reduce(context.Background(), words, executor.NewDynamicPool(), Halve(2), "", func(acc, v string) string { return acc + v })
	require.NoError(t, err)
	assert.Equal(t, "abcdefg", joined)
}
