package lm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Design holds a design matrix together with its pseudo-inverse. One Design
// is shared across all tests in a call, so the cost of computing the
// pseudo-inverse is amortized over many parallel univariate fits.
//
// X is cases × betas and Xsinv is betas × cases, both row-major. Treat a
// Design as read-only after construction; the fitting kernels stride over
// these slices directly.
type Design struct {
	NCases int
	NBetas int
	X      []float64
	Xsinv  []float64
}

// NewDesign wraps a caller-supplied design matrix and precomputed
// pseudo-inverse. Numerical stability of the fit is entirely the
// responsibility of the supplied pseudo-inverse.
func NewDesign(x, xsinv []float64, nCases, nBetas int) (*Design, error) {
	if nCases <= 0 || nBetas <= 0 {
		return nil, fmt.Errorf("%w: nCases=%d nBetas=%d", ErrDimensionMismatch, nCases, nBetas)
	}
	if len(x) != nCases*nBetas {
		return nil, fmt.Errorf("%w: design has %d elements, want %d (cases × betas)",
			ErrDimensionMismatch, len(x), nCases*nBetas)
	}
	if len(xsinv) != nBetas*nCases {
		return nil, fmt.Errorf("%w: pseudo-inverse has %d elements, want %d (betas × cases)",
			ErrDimensionMismatch, len(xsinv), nBetas*nCases)
	}
	return &Design{NCases: nCases, NBetas: nBetas, X: x, Xsinv: xsinv}, nil
}

// DesignFromMatrix computes the Moore-Penrose pseudo-inverse of x by thin
// SVD and returns the wrapped Design. Singular values below the usual
// max(m,n)·eps·σ₁ tolerance are treated as zero.
func DesignFromMatrix(x *mat.Dense) (*Design, error) {
	nCases, nBetas := x.Dims()

	var svd mat.SVD
	if !svd.Factorize(x, mat.SVDThin) {
		return nil, fmt.Errorf("%w: SVD factorization failed", ErrSingularDesign)
	}
	s := svd.Values(nil)
	if len(s) == 0 || s[0] == 0 {
		return nil, fmt.Errorf("%w: zero effective rank", ErrSingularDesign)
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	maxDim := nCases
	if nBetas > maxDim {
		maxDim = nBetas
	}
	const eps = 2.220446049250313e-16
	tol := float64(maxDim) * s[0] * eps

	// pinv = V · diag(1/s) · Uᵀ, dropping singular values below tolerance
	xsinv := make([]float64, nBetas*nCases)
	for b := 0; b < nBetas; b++ {
		for c := 0; c < nCases; c++ {
			sum := 0.0
			for k, sv := range s {
				if sv <= tol {
					continue
				}
				sum += v.At(b, k) * u.At(c, k) / sv
			}
			xsinv[b*nCases+c] = sum
		}
	}

	xFlat := make([]float64, nCases*nBetas)
	for c := 0; c < nCases; c++ {
		for b := 0; b < nBetas; b++ {
			xFlat[c*nBetas+b] = x.At(c, b)
		}
	}
	return &Design{NCases: nCases, NBetas: nBetas, X: xFlat, Xsinv: xsinv}, nil
}

// checkObservations validates a cases × tests observation buffer against the
// design dimensions.
func (d *Design) checkObservations(nY, nTests int) error {
	if nTests <= 0 {
		return fmt.Errorf("%w: nTests=%d", ErrDimensionMismatch, nTests)
	}
	if nY != d.NCases*nTests {
		return fmt.Errorf("%w: observations have %d elements, want %d (%d cases × %d tests)",
			ErrDimensionMismatch, nY, d.NCases*nTests, d.NCases, nTests)
	}
	return nil
}
