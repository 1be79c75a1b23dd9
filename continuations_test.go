package future

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContList_AppendBeforeDrain(t *testing.T) {
	t.Parallel()

	c := &contList{}
	var ran []int
	queued := c.append(func() { ran = append(ran, 1) })
	assert.True(t, queued)
	assert.False(t, c.hasDrained())

	c.drain()
	assert.Equal(t, []int{1}, ran)
	assert.True(t, c.hasDrained())
}

func TestContList_AppendAfterDrainIsRejected(t *testing.T) {
	t.Parallel()

	c := &contList{}
	c.drain()

	queued := c.append(func() {})
	assert.False(t, queued)
}

func TestContList_DrainIsIdempotent(t *testing.T) {
	t.Parallel()

	c := &contList{}
	var count int
	c.append(func() { count++ })
	c.drain()
	c.drain()
	assert.Equal(t, 1, count)
}
