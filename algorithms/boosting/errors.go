package boosting

import "errors"

var (
	// ErrInvalidParams indicates a non-positive kernel length, delta or
	// test fraction outside (0, 1).
	ErrInvalidParams = errors.New("boosting: invalid parameters")
	// ErrDimensionMismatch indicates stimulus rows whose length disagrees
	// with the response signal, or a signal too short for the requested
	// kernel and test split.
	ErrDimensionMismatch = errors.New("boosting: dimension mismatch")
)
