package cluster

import "errors"

var (
	// ErrInvalidAdjacency indicates a neighbor index outside [0, nVerts).
	ErrInvalidAdjacency = errors.New("cluster: adjacency index out of range")
	// ErrDimensionMismatch indicates a label map whose size disagrees with
	// the declared vertices × slices shape, or an adjacency built for a
	// different vertex count.
	ErrDimensionMismatch = errors.New("cluster: dimension mismatch")
)
