package norm

import (
	"math"

	"github.com/avolkmann/neurostat/algorithms/common"
)

// L1 and L2 reductions over residual signals, plus the "what-if" delta
// variants driving greedy coordinate-descent kernel fitting: the caller
// evaluates both candidate signs of a scaled, lagged update without touching
// the residual, then commits the winner with UpdateError. Splitting
// evaluation from mutation means the search loop never needs rollback.
//
// All accumulation is in float64 regardless of the element type.

// L1 returns the sum of absolute values of x.
func L1[T common.Scalar](x []T) float64 {
	sum := 0.0
	for _, v := range x {
		sum += math.Abs(float64(v))
	}
	return sum
}

// L2 returns the sum of squared values of x.
func L2[T common.Scalar](x []T) float64 {
	sum := 0.0
	for _, v := range x {
		f := float64(v)
		sum += f * f
	}
	return sum
}

// L1ForDelta evaluates the L1 norm the residual y would have after
// subtracting delta*x lagged by shift samples, for both signs of delta.
// y is not modified. Samples before shift carry their unchanged
// contribution in both results.
func L1ForDelta[T common.Scalar](y, x []T, delta float64, shift int) (add, sub float64, err error) {
	if len(y) != len(x) {
		return 0, 0, ErrLengthMismatch
	}
	if shift < 0 || shift > len(y) {
		return 0, 0, ErrInvalidShift
	}
	for i := 0; i < shift; i++ {
		v := math.Abs(float64(y[i]))
		add += v
		sub += v
	}
	for i := shift; i < len(y); i++ {
		d := delta * float64(x[i-shift])
		f := float64(y[i])
		add += math.Abs(f - d)
		sub += math.Abs(f + d)
	}
	return add, sub, nil
}

// L2ForDelta is the L2 counterpart of L1ForDelta.
func L2ForDelta[T common.Scalar](y, x []T, delta float64, shift int) (add, sub float64, err error) {
	if len(y) != len(x) {
		return 0, 0, ErrLengthMismatch
	}
	if shift < 0 || shift > len(y) {
		return 0, 0, ErrInvalidShift
	}
	for i := 0; i < shift; i++ {
		f := float64(y[i])
		add += f * f
		sub += f * f
	}
	for i := shift; i < len(y); i++ {
		d := delta * float64(x[i-shift])
		f := float64(y[i])
		add += (f - d) * (f - d)
		sub += (f + d) * (f + d)
	}
	return add, sub, nil
}

// UpdateError commits a chosen delta in place: errSig[i] -= delta*x[i-shift]
// for i >= shift. A subsequent L1/L2 over errSig equals the matching
// ForDelta result for the same delta and shift, up to the precision of F.
func UpdateError[F common.Float](errSig, x []F, delta float64, shift int) error {
	if len(errSig) != len(x) {
		return ErrLengthMismatch
	}
	if shift < 0 || shift > len(errSig) {
		return ErrInvalidShift
	}
	for i := shift; i < len(errSig); i++ {
		errSig[i] -= F(delta * float64(x[i-shift]))
	}
	return nil
}
