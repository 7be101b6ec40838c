package anova

import "fmt"

// Effect describes one model effect as a contiguous group of coefficients in
// the design matrix: the index of its first beta and its degree of freedom
// (the number of betas belonging to it). The order of effects is fixed by
// the caller and defines the row order of the F-map output.
type Effect struct {
	Name  string `json:"name,omitempty"`
	Start int    `json:"start"`
	DF    int    `json:"df"`
}

// ValidateEffects checks every effect's beta range against the design's
// beta count. The F-map kernels run unchecked, so this is the one place
// range errors are caught.
func ValidateEffects(effects []Effect, nBetas int) error {
	if len(effects) == 0 {
		return fmt.Errorf("%w: no effects", ErrInvalidEffects)
	}
	for i, e := range effects {
		if e.DF < 1 {
			return fmt.Errorf("%w: effect %d has df=%d", ErrInvalidEffects, i, e.DF)
		}
		if e.Start < 0 || e.Start+e.DF > nBetas {
			return fmt.Errorf("%w: effect %d covers betas [%d, %d) outside design with %d betas",
				ErrInvalidEffects, i, e.Start, e.Start+e.DF, nBetas)
		}
	}
	return nil
}

// ErrorTerms is a square boolean matrix over effects: row i flags which
// effects' mean squares are summed to form effect i's F-test denominator.
// A row with no flags set means effect i has no error term and produces no
// F-map (mixed and repeated-measures designs routinely leave such effects
// untestable).
type ErrorTerms [][]bool

// Validate checks that the matrix is square and sized for nEffects.
func (et ErrorTerms) Validate(nEffects int) error {
	if len(et) != nEffects {
		return fmt.Errorf("%w: %d rows for %d effects", ErrInvalidErrorTerms, len(et), nEffects)
	}
	for i, row := range et {
		if len(row) != nEffects {
			return fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrInvalidErrorTerms, i, len(row), nEffects)
		}
	}
	return nil
}
