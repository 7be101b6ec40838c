package norm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL1L2_Basics(t *testing.T) {
	v := []float64{1, -2, 3, -4}
	assert.Equal(t, 10.0, L1(v))
	assert.Equal(t, 30.0, L2(v))

	zeros := []float64{0, 0, 0}
	assert.Equal(t, 0.0, L1(zeros))
	assert.Equal(t, 0.0, L2(zeros))

	// integer element types accumulate in float64
	vi := []int32{1, -2, 3, -4}
	assert.Equal(t, 10.0, L1(vi))
	assert.Equal(t, 30.0, L2(vi))

	assert.Equal(t, 0.0, L1([]float64{}))
}

// ForDelta must match an independently computed residual norm for both
// candidate signs of delta.
func TestForDelta_MatchesIndependentResidual(t *testing.T) {
	y := []float64{1, 2, 3, 4, 5, 6}
	x := []float64{0.5, -1, 2, 0, 1, -0.5}
	delta := 0.4

	for shift := 0; shift <= len(y); shift++ {
		resAdd := make([]float64, len(y))
		resSub := make([]float64, len(y))
		copy(resAdd, y)
		copy(resSub, y)
		for i := shift; i < len(y); i++ {
			resAdd[i] -= delta * x[i-shift]
			resSub[i] += delta * x[i-shift]
		}

		add, sub, err := L1ForDelta(y, x, delta, shift)
		require.NoError(t, err)
		assert.InDelta(t, L1(resAdd), add, 1e-12, "l1 +delta, shift=%d", shift)
		assert.InDelta(t, L1(resSub), sub, 1e-12, "l1 -delta, shift=%d", shift)

		add, sub, err = L2ForDelta(y, x, delta, shift)
		require.NoError(t, err)
		assert.InDelta(t, L2(resAdd), add, 1e-12, "l2 +delta, shift=%d", shift)
		assert.InDelta(t, L2(resSub), sub, 1e-12, "l2 -delta, shift=%d", shift)
	}
}

// Committing the evaluated delta with UpdateError must reproduce the
// ForDelta result exactly on the mutated buffer.
func TestUpdateError_CommitMatchesEvaluation(t *testing.T) {
	y := []float64{2, -1, 0.5, 3, -2}
	x := []float64{1, 0.5, -1, 2, 0}
	delta := 0.25
	shift := 2

	add, _, err := L1ForDelta(y, x, delta, shift)
	require.NoError(t, err)
	add2, _, err := L2ForDelta(y, x, delta, shift)
	require.NoError(t, err)

	require.NoError(t, UpdateError(y, x, delta, shift))
	assert.InDelta(t, add, L1(y), 1e-12)
	assert.InDelta(t, add2, L2(y), 1e-12)
}

// The commit also works on float32 buffers through the Float constraint.
func TestUpdateError_Float32Buffers(t *testing.T) {
	y := []float32{2, -1, 0.5, 3}
	x := []float32{1, 0.5, -1, 2}
	delta := 0.25
	shift := 1

	add, _, err := L1ForDelta(y, x, delta, shift)
	require.NoError(t, err)

	require.NoError(t, UpdateError(y, x, delta, shift))
	assert.InDelta(t, add, L1(y), 1e-5)
}

func TestForDelta_Preconditions(t *testing.T) {
	y := []float64{1, 2, 3}
	x := []float64{1, 2, 3}

	_, _, err := L1ForDelta(y, x[:2], 0.1, 0)
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, _, err = L2ForDelta(y, x, 0.1, -1)
	assert.ErrorIs(t, err, ErrInvalidShift)

	_, _, err = L1ForDelta(y, x, 0.1, 4)
	assert.ErrorIs(t, err, ErrInvalidShift)

	assert.ErrorIs(t, UpdateError(y, x, 0.1, 4), ErrInvalidShift)
	assert.ErrorIs(t, UpdateError(y, x[:2], 0.1, 0), ErrLengthMismatch)
}

// shift == len leaves the signal untouched in both candidates
func TestForDelta_FullShift(t *testing.T) {
	y := []float64{1, -2, 3}
	x := []float64{9, 9, 9}

	add, sub, err := L1ForDelta(y, x, 0.5, len(y))
	require.NoError(t, err)
	assert.Equal(t, L1(y), add)
	assert.Equal(t, L1(y), sub)
}
