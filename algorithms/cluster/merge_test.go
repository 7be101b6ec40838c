package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adjacency(t *testing.T, nVerts int, neighbors map[int32][]int32) *Adjacency {
	t.Helper()
	adj, err := NewAdjacency(nVerts, neighbors)
	require.NoError(t, err)
	return adj
}

func TestNewAdjacency_Validation(t *testing.T) {
	_, err := NewAdjacency(3, map[int32][]int32{0: {1, 2}})
	assert.NoError(t, err)

	_, err = NewAdjacency(0, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewAdjacency(3, map[int32][]int32{3: {0}})
	assert.ErrorIs(t, err, ErrInvalidAdjacency)

	_, err = NewAdjacency(3, map[int32][]int32{0: {3}})
	assert.ErrorIs(t, err, ErrInvalidAdjacency)

	_, err = NewAdjacency(3, map[int32][]int32{0: {-1}})
	assert.ErrorIs(t, err, ErrInvalidAdjacency)
}

// A single vertex has no adjacency edges, so a label row stays untouched.
//
//	slices:  1 0 2 2 0 3
func TestMergeLabels_SingleVertexUnchanged(t *testing.T) {
	cmap := []uint32{1, 0, 2, 2, 0, 3}
	adj := adjacency(t, 1, nil)

	ids, err := MergeLabels(cmap, 1, 6, 3, adj)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, ids)
	assert.Equal(t, []uint32{1, 0, 2, 2, 0, 3}, cmap)
}

// Two adjacent vertices labeled 1 and 2 in the same slice merge into the
// minimum label; the merged-away id is not returned.
func TestMergeLabels_AdjacentPairTakesMinimum(t *testing.T) {
	cmap := []uint32{1, 2}
	adj := adjacency(t, 2, map[int32][]int32{0: {1}, 1: {0}})

	ids, err := MergeLabels(cmap, 2, 1, 2, adj)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, ids)
	assert.Equal(t, []uint32{1, 1}, cmap)
}

// Scenario from a 2-vertex × 2-slice map:
//
//	vertex 0: 1 2
//	vertex 1: 2 0
//
// Labels 1 and 2 connect through slice 0, so every cell of label 2 is
// rewritten to 1, including vertex 0's slice-1 cell.
func TestMergeLabels_TwoVerticesTwoSlices(t *testing.T) {
	cmap := []uint32{
		1, 2,
		2, 0,
	}
	adj := adjacency(t, 2, map[int32][]int32{0: {1}})

	ids, err := MergeLabels(cmap, 2, 2, 2, adj)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, ids)
	assert.Equal(t, []uint32{1, 1, 1, 0}, cmap)
}

// Chained merges must resolve through the relabel forest to the overall
// minimum: 2~3 and then 3~1 leave a single component labeled 1.
func TestMergeLabels_ChainResolvesToMinimum(t *testing.T) {
	cmap := []uint32{2, 3, 1}
	adj := adjacency(t, 3, map[int32][]int32{0: {1}, 1: {0, 2}, 2: {1}})

	ids, err := MergeLabels(cmap, 3, 1, 3, adj)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1}, ids)
	assert.Equal(t, []uint32{1, 1, 1}, cmap)
}

func TestMergeLabels_Idempotent(t *testing.T) {
	cmap := []uint32{
		1, 2,
		2, 0,
	}
	adj := adjacency(t, 2, map[int32][]int32{0: {1}})

	ids1, err := MergeLabels(cmap, 2, 2, 2, adj)
	require.NoError(t, err)
	merged := append([]uint32(nil), cmap...)

	ids2, err := MergeLabels(cmap, 2, 2, 2, adj)
	require.NoError(t, err)
	assert.Equal(t, ids1, ids2)
	assert.Equal(t, merged, cmap)
}

// Vertices adjacent in different slices never merge.
func TestMergeLabels_NoCrossSliceMerge(t *testing.T) {
	cmap := []uint32{
		1, 0,
		0, 2,
	}
	adj := adjacency(t, 2, map[int32][]int32{0: {1}, 1: {0}})

	ids, err := MergeLabels(cmap, 2, 2, 2, adj)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, ids)
	assert.Equal(t, []uint32{1, 0, 0, 2}, cmap)
}

func TestMergeLabels_Validation(t *testing.T) {
	adj := adjacency(t, 2, nil)

	_, err := MergeLabels([]uint32{1, 2, 3}, 2, 2, 3, adj)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = MergeLabels([]uint32{1, 2, 3, 4}, 4, 1, 3, adjacency(t, 4, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch, "label above nLabels")

	_, err = MergeLabels([]uint32{1, 2}, 2, 1, 2, adjacency(t, 3, nil))
	assert.ErrorIs(t, err, ErrDimensionMismatch, "adjacency vertex count")
}
