package lm

import "fmt"

// Mass-univariate ordinary-least-squares fitting: many dependent variables
// (tests) share one design matrix, so the model is fit column by column with
// a precomputed pseudo-inverse and small scratch buffers reused across
// columns. Observations are cases-major: y[case*nTests + test].
//
// Validation happens here at the public boundary; the inner loops index the
// flat buffers unchecked.

// FitBetas computes the regression coefficients for one test column:
// betas = Xsinv · y[:, test]. It is a building block for the residual and
// F-map kernels; most callers want Residuals or ResidualSS instead.
func FitBetas[T Scalar](d *Design, y []T, nTests, test int, betas []float64) {
	nCases := d.NCases
	for b := 0; b < d.NBetas; b++ {
		sum := 0.0
		row := d.Xsinv[b*nCases:]
		for c := 0; c < nCases; c++ {
			sum += row[c] * float64(y[c*nTests+test])
		}
		betas[b] = sum
	}
}

// Residuals fits every test column and writes y − X·betas into the matching
// column of res. res must have the same cases × tests shape as y.
func Residuals[T Scalar](d *Design, y []T, nTests int, res []float64) error {
	if err := d.checkObservations(len(y), nTests); err != nil {
		return err
	}
	if len(res) != len(y) {
		return fmt.Errorf("%w: residual buffer has %d elements, want %d",
			ErrDimensionMismatch, len(res), len(y))
	}
	betas := make([]float64, d.NBetas)
	for t := 0; t < nTests; t++ {
		FitBetas(d, y, nTests, t, betas)
		for c := 0; c < d.NCases; c++ {
			pred := 0.0
			row := d.X[c*d.NBetas:]
			for b := 0; b < d.NBetas; b++ {
				pred += row[b] * betas[b]
			}
			res[c*nTests+t] = float64(y[c*nTests+t]) - pred
		}
	}
	return nil
}

// ResidualSS fits every test column and accumulates only the residual sum
// of squares into ss (one value per test). Use this instead of Residuals
// when no per-case residuals are needed; it avoids the cases × tests output.
func ResidualSS[T Scalar](d *Design, y []T, nTests int, ss []float64) error {
	if err := d.checkObservations(len(y), nTests); err != nil {
		return err
	}
	if len(ss) != nTests {
		return fmt.Errorf("%w: ss buffer has %d elements, want %d tests",
			ErrDimensionMismatch, len(ss), nTests)
	}
	betas := make([]float64, d.NBetas)
	for t := 0; t < nTests; t++ {
		FitBetas(d, y, nTests, t, betas)
		sum := 0.0
		for c := 0; c < d.NCases; c++ {
			pred := 0.0
			row := d.X[c*d.NBetas:]
			for b := 0; b < d.NBetas; b++ {
				pred += row[b] * betas[b]
			}
			r := float64(y[c*nTests+t]) - pred
			sum += r * r
		}
		ss[t] = sum
	}
	return nil
}

// TotalSS writes the sum of squares of each test column around its own mean
// into ss. This is the null-model baseline for variance-explained measures.
func TotalSS[T Scalar](y []T, nCases, nTests int, ss []float64) error {
	if nCases <= 0 || nTests <= 0 || len(y) != nCases*nTests {
		return fmt.Errorf("%w: observations have %d elements, want %d (%d cases × %d tests)",
			ErrDimensionMismatch, len(y), nCases*nTests, nCases, nTests)
	}
	if len(ss) != nTests {
		return fmt.Errorf("%w: ss buffer has %d elements, want %d tests",
			ErrDimensionMismatch, len(ss), nTests)
	}
	for t := 0; t < nTests; t++ {
		mean := 0.0
		for c := 0; c < nCases; c++ {
			mean += float64(y[c*nTests+t])
		}
		mean /= float64(nCases)
		sum := 0.0
		for c := 0; c < nCases; c++ {
			dev := float64(y[c*nTests+t]) - mean
			sum += dev * dev
		}
		ss[t] = sum
	}
	return nil
}
