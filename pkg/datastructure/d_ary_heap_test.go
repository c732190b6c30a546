package datastructure

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name string
		d    int
	}{
		{name: "binary heap", d: 2},
		{name: "4-ary heap", d: 4},
		{name: "8-ary heap", d: 8},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rd := rand.New(rand.NewSource(int64(tt.d)))
			pq := NewdAryHeap[Index](tt.d)
			ranks := make([]float64, 500)
			for i := range ranks {
				ranks[i] = float64(rd.Intn(100))
				pq.Insert(NewPriorityQueueNode(ranks[i], Index(i)))
			}
			sort.Float64s(ranks)

			prevRank, prevItem := -1.0, Index(0)
			for i := range ranks {
				node, err := pq.ExtractMin()
				require.NoError(t, err)
				assert.Equal(t, ranks[i], node.GetRank())
				if node.GetRank() == prevRank {
					assert.Greater(t, node.GetItem(), prevItem, "ties must come out in item order")
				}
				prevRank, prevItem = node.GetRank(), node.GetItem()
			}
			assert.True(t, pq.IsEmpty())
		})
	}
}

func TestMinHeapTieBreakByItem(t *testing.T) {
	pq := NewFourAryHeap[Index]()
	for _, item := range []Index{7, 3, 9, 1, 5} {
		pq.Insert(NewPriorityQueueNode(10.0, item))
	}

	got := make([]Index, 0, 5)
	for !pq.IsEmpty() {
		node, err := pq.ExtractMin()
		require.NoError(t, err)
		got = append(got, node.GetItem())
	}
	assert.Equal(t, []Index{1, 3, 5, 7, 9}, got)
}

func TestMinHeapDecreaseKey(t *testing.T) {
	pq := NewFourAryHeap[Index]()
	nodes := make([]*PriorityQueueNode[Index], 10)
	for i := range nodes {
		nodes[i] = NewPriorityQueueNode(float64(100+i), Index(i))
		pq.Insert(nodes[i])
	}

	require.NoError(t, pq.DecreaseKey(nodes[8], 1))
	assert.Equal(t, 1.0, pq.GetMinrank())

	// increasing the rank is rejected
	assert.Error(t, pq.DecreaseKey(nodes[3], 500))

	min, err := pq.ExtractMin()
	require.NoError(t, err)
	assert.Equal(t, Index(8), min.GetItem())
	assert.Equal(t, -1, min.GetPos())

	// extracted node can't be decreased
	assert.Error(t, pq.DecreaseKey(min, 0))
}

func TestMinHeapEmpty(t *testing.T) {
	pq := NewBinaryHeap[Index]()
	_, err := pq.ExtractMin()
	assert.Error(t, err)
	_, err = pq.GetMin()
	assert.Error(t, err)
	assert.Greater(t, pq.GetMinrank(), 1e15)

	pq.Insert(NewPriorityQueueNode(1.0, Index(1)))
	pq.Clear()
	assert.Equal(t, 0, pq.Size())
}
