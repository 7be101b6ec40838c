package boosting

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"
)

// Predict computes the response predicted by a kernel: the sum over stimuli
// of x[i] convolved with h[i], truncated to the length of the input signal.
// The convolution runs in the frequency domain using mjibson/go-dsp, which
// handles arbitrary (non-power-of-2) lengths.
func Predict(h [][]float64, x [][]float64) ([]float64, error) {
	if len(h) != len(x) {
		return nil, fmt.Errorf("%w: kernel has %d stimulus rows, x has %d",
			ErrDimensionMismatch, len(h), len(x))
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: no stimulus rows", ErrDimensionMismatch)
	}
	nTimes := len(x[0])
	out := make([]float64, nTimes)
	for i, row := range x {
		if len(row) != nTimes {
			return nil, fmt.Errorf("%w: x[%d] has %d samples, x[0] has %d",
				ErrDimensionMismatch, i, len(row), nTimes)
		}
		conv := fft.Convolve(toComplex(row), toComplex(h[i]))
		for t := 0; t < nTimes && t < len(conv); t++ {
			out[t] += real(conv[t])
		}
	}
	return out, nil
}

func toComplex(v []float64) []complex128 {
	out := make([]complex128, len(v))
	for i, x := range v {
		out[i] = complex(x, 0)
	}
	return out
}
