package common

// Scalar is the set of element types the numeric kernels accept for
// observation data. Kernels accumulate in float64 regardless of the
// element type, so results are identical across instantiations up to
// the precision of the input representation.
type Scalar interface {
	~int32 | ~int64 | ~float32 | ~float64
}

// Float is the subset of Scalar used for buffers that are mutated with
// fractional increments (error signals, coefficient maps).
type Float interface {
	~float32 | ~float64
}
