package anova

import (
	"fmt"

	"github.com/avolkmann/neurostat/algorithms/lm"
)

// Mass-univariate ANOVA F-map computation. Each test (column of y) is fit
// once against the shared design; per-effect sums of squares come from the
// predicted contribution of exactly that effect's betas. FMaps tests every
// effect against the common residual mean square (fixed-effects model);
// FullFMaps lets each effect carry its own error term built from other
// effects' mean squares (mixed / repeated-measures models).

func checkObservations(d *lm.Design, nY, nTests int) error {
	if nTests <= 0 {
		return fmt.Errorf("%w: nTests=%d", ErrDimensionMismatch, nTests)
	}
	if nY != d.NCases*nTests {
		return fmt.Errorf("%w: observations have %d elements, want %d (%d cases × %d tests)",
			ErrDimensionMismatch, nY, d.NCases*nTests, d.NCases, nTests)
	}
	return nil
}

// effectSS returns the sum over cases of the squared predicted contribution
// of the betas in [start, start+df).
func effectSS(d *lm.Design, betas []float64, start, df int) float64 {
	ss := 0.0
	for c := 0; c < d.NCases; c++ {
		row := d.X[c*d.NBetas:]
		v := 0.0
		for b := start; b < start+df; b++ {
			v += row[b] * betas[b]
		}
		ss += v * v
	}
	return ss
}

// FMaps computes one F-map per effect with a common residual error term.
// fmap is effects × tests, caller-owned; fmap[e*nTests+t] receives the
// F-statistic of effect e at test t. dfRes is the residual degree of
// freedom of the design.
func FMaps[T lm.Scalar](d *lm.Design, y []T, nTests int, effects []Effect, dfRes int, fmap []float64) error {
	if err := ValidateEffects(effects, d.NBetas); err != nil {
		return err
	}
	if err := checkObservations(d, len(y), nTests); err != nil {
		return err
	}
	if dfRes < 1 {
		return fmt.Errorf("%w: dfRes=%d", ErrDimensionMismatch, dfRes)
	}
	if len(fmap) != len(effects)*nTests {
		return fmt.Errorf("%w: fmap has %d elements, want %d (%d effects × %d tests)",
			ErrDimensionMismatch, len(fmap), len(effects)*nTests, len(effects), nTests)
	}

	betas := make([]float64, d.NBetas)
	for t := 0; t < nTests; t++ {
		lm.FitBetas(d, y, nTests, t, betas)

		ssRes := 0.0
		for c := 0; c < d.NCases; c++ {
			row := d.X[c*d.NBetas:]
			pred := 0.0
			for b := 0; b < d.NBetas; b++ {
				pred += row[b] * betas[b]
			}
			r := float64(y[c*nTests+t]) - pred
			ssRes += r * r
		}
		msRes := ssRes / float64(dfRes)

		for e, ef := range effects {
			ms := effectSS(d, betas, ef.Start, ef.DF) / float64(ef.DF)
			fmap[e*nTests+t] = ms / msRes
		}
	}
	return nil
}

// FullFMaps computes F-maps with per-effect error terms. Effect i's
// denominator is the sum of the mean squares of every effect flagged in
// terms[i]. Effects whose row is entirely unflagged have no error term:
// they produce no output row, and output rows for the remaining effects are
// packed densely from the top of fmap. The returned mask reports, per
// effect, whether an F-map was produced; nMaps counts the packed rows.
// Rows of fmap beyond nMaps are left untouched.
//
// fmap is sized nominally: effects × tests.
func FullFMaps[T lm.Scalar](d *lm.Design, y []T, nTests int, effects []Effect, terms ErrorTerms, fmap []float64) (nMaps int, produced []bool, err error) {
	if err = ValidateEffects(effects, d.NBetas); err != nil {
		return 0, nil, err
	}
	if err = terms.Validate(len(effects)); err != nil {
		return 0, nil, err
	}
	if err = checkObservations(d, len(y), nTests); err != nil {
		return 0, nil, err
	}
	if len(fmap) != len(effects)*nTests {
		return 0, nil, fmt.Errorf("%w: fmap has %d elements, want %d (%d effects × %d tests)",
			ErrDimensionMismatch, len(fmap), len(effects)*nTests, len(effects), nTests)
	}

	produced = make([]bool, len(effects))
	for i, row := range terms {
		for _, flagged := range row {
			if flagged {
				produced[i] = true
				nMaps++
				break
			}
		}
	}

	betas := make([]float64, d.NBetas)
	mss := make([]float64, len(effects))
	for t := 0; t < nTests; t++ {
		lm.FitBetas(d, y, nTests, t, betas)

		for e, ef := range effects {
			mss[e] = effectSS(d, betas, ef.Start, ef.DF) / float64(ef.DF)
		}

		iMap := 0
		for e := range effects {
			if !produced[e] {
				continue
			}
			den := 0.0
			for j, flagged := range terms[e] {
				if flagged {
					den += mss[j]
				}
			}
			fmap[iMap*nTests+t] = mss[e] / den
			iMap++
		}
	}
	return nMaps, produced, nil
}
