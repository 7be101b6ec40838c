package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanVariance(t *testing.T) {
	data := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(data), 1e-12)
	assert.InDelta(t, 32.0/7.0, Variance(data), 1e-12)

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Variance([]float64{1}))
	assert.Equal(t, 0.0, StandardDeviation([]float64{1}))
}

func TestMeanAbsoluteScale(t *testing.T) {
	data := []float64{1, -2, 3}
	assert.InDelta(t, 2.0, MeanAbsolute(data), 1e-12)
	assert.Equal(t, 0.0, MeanAbsolute(nil))

	Scale(data, 2)
	assert.Equal(t, []float64{2, -4, 6}, data)
}
