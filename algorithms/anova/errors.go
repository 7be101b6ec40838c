package anova

import "errors"

var (
	// ErrInvalidEffects indicates an effect whose beta range falls outside
	// the design, or a non-positive degree of freedom.
	ErrInvalidEffects = errors.New("anova: invalid effects table")
	// ErrInvalidErrorTerms indicates a non-square error-term matrix or one
	// whose size disagrees with the effects table.
	ErrInvalidErrorTerms = errors.New("anova: invalid error-term matrix")
	// ErrDimensionMismatch indicates observation or output buffers whose
	// sizes disagree with the design and effects table.
	ErrDimensionMismatch = errors.New("anova: dimension mismatch")
)
