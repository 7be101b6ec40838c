package lm

import "errors"

var (
	// ErrDimensionMismatch indicates inconsistent design, pseudo-inverse or
	// observation dimensions.
	ErrDimensionMismatch = errors.New("lm: dimension mismatch")
	// ErrSingularDesign indicates a design matrix with zero effective rank.
	ErrSingularDesign = errors.New("lm: design matrix is singular")
)
