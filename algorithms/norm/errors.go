package norm

import "errors"

var (
	// ErrLengthMismatch indicates the signal and kernel slices differ in length.
	ErrLengthMismatch = errors.New("norm: signal and kernel must have the same length")
	// ErrInvalidShift indicates a lag outside [0, len(signal)].
	ErrInvalidShift = errors.New("norm: shift must be in [0, len(signal)]")
)
