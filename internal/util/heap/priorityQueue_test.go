package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueueOrder(t *testing.T) {
	q := NewPriorityQueue(4)
	for i, p := range []float64{5, 1.5, 3, 0.25, 8, 3} {
		q.Push(i, -i, p)
	}
	require.Equal(t, 6, q.Len())
	assert.Equal(t, 3, q.Peek().Value)

	var got []int
	for q.Len() > 0 {
		got = append(got, q.Pop().Value)
	}
	// The two items with priority 3 keep their push order.
	assert.Equal(t, []int{3, 1, 2, 5, 0, 4}, got)
}

func TestPriorityQueueEmpty(t *testing.T) {
	q := NewPriorityQueue(0)
	assert.Nil(t, q.Peek())
	assert.Nil(t, q.Pop())

	q.Push(7, 9, 1)
	item := q.Pop()
	require.NotNil(t, item)
	assert.Equal(t, 7, item.Value)
	assert.Equal(t, 9, item.Other)
	assert.Equal(t, 0, q.Len())
}
