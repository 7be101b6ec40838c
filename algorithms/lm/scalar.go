package lm

import "github.com/avolkmann/neurostat/algorithms/common"

// Scalar aliases the shared element-type constraint so callers of the
// fitting kernels don't need a separate import for it.
type Scalar = common.Scalar
