package boosting

import (
	"fmt"

	"github.com/avolkmann/neurostat/algorithms/common"
	"github.com/avolkmann/neurostat/algorithms/norm"
	"github.com/avolkmann/neurostat/logging"
)

// ErrorNorm selects the residual norm driving the fit
type ErrorNorm string

const (
	L1 ErrorNorm = "l1"
	L2 ErrorNorm = "l2"
)

// Params contains parameters for boosting a temporal response function
type Params struct {
	KernelLength int       `json:"kernel_length"` // TRF length in time samples
	Delta        float64   `json:"delta"`         // step of each kernel adjustment
	MinDelta     float64   `json:"min_delta"`     // smallest delta before giving up
	MaxIter      int       `json:"max_iter"`      // hard iteration cap
	Norm         ErrorNorm `json:"norm"`          // "l1" or "l2"
	TestFraction float64   `json:"test_fraction"` // share of samples held out for early stopping
	ScaleData    bool      `json:"scale_data"`    // demean y and x and divide by the norm-matched scale
}

// Result contains the fitted temporal response function and fit diagnostics
type Result struct {
	H       [][]float64 `json:"h"`        // kernel, stimuli × lags, in scaled units
	HScaled [][]float64 `json:"h_scaled"` // kernel applicable to the unscaled inputs

	BestIter         int       `json:"best_iter"`          // iteration with lowest held-out error
	Iterations       int       `json:"iterations"`         // iterations actually run
	Reason           string    `json:"reason"`             // why the fit stopped
	TestErrorHistory []float64 `json:"test_error_history"` // held-out error per iteration
	FitError         float64   `json:"fit_error"`          // error of the final kernel on the full (scaled) signal

	YMean  float64   `json:"y_mean"`  // mean subtracted from y (0 when unscaled)
	YScale float64   `json:"y_scale"` // scale y was divided by: mean |y| for l1, std for l2 (1 when unscaled)
	XMean  []float64 `json:"x_mean"`  // per-stimulus means subtracted from x
	XScale []float64 `json:"x_scale"` // per-stimulus scales x was divided by, like YScale
}

// Boosting fits a temporal response function by greedy coordinate descent,
// as described by David, Mesgarani & Shamma (2007), "Estimating sparse
// spectro-temporal receptive fields with natural stimuli".
//
// At each iteration every (stimulus, lag) coordinate is probed with a
// ±delta step through the norm package's ForDelta kernels; the best signed
// step is committed to the residual with UpdateError. When no step improves
// the training error, delta is halved; fitting stops at MinDelta, when the
// held-out error stops improving, when the kernel revisits an earlier
// state, or at MaxIter. The returned kernel is the one with the lowest
// held-out error, which can be the zero kernel.
type Boosting struct {
	params Params
	logger logging.Logger
}

// New creates a Boosting fitter with default parameters
func New() *Boosting {
	return NewWithParams(Params{
		KernelLength: 10,
		Delta:        0.005,
		MinDelta:     0.005,
		MaxIter:      10000,
		Norm:         L2,
		TestFraction: 0.1,
		ScaleData:    true,
	})
}

// NewWithParams creates a Boosting fitter with custom parameters
func NewWithParams(params Params) *Boosting {
	return &Boosting{
		params: params,
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "boosting"}),
	}
}

// Fit estimates the kernel mapping the stimulus rows of x onto the response
// y. x is stimuli × times; every row must be as long as y. y and x are not
// modified.
func (b *Boosting) Fit(y []float64, x [][]float64) (*Result, error) {
	p := b.params
	if p.KernelLength < 1 || p.Delta <= 0 || p.MinDelta <= 0 || p.MaxIter < 1 ||
		p.TestFraction <= 0 || p.TestFraction >= 1 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidParams, p)
	}
	deltaError, errFunc, err := normFuncs(p.Norm)
	if err != nil {
		return nil, err
	}
	nStims := len(x)
	nTimes := len(y)
	if nStims == 0 {
		return nil, fmt.Errorf("%w: no stimulus rows", ErrDimensionMismatch)
	}
	for i, row := range x {
		if len(row) != nTimes {
			return nil, fmt.Errorf("%w: x[%d] has %d samples, y has %d",
				ErrDimensionMismatch, i, len(row), nTimes)
		}
	}
	testLen := int(float64(nTimes) * p.TestFraction)
	trainLen := nTimes - testLen
	if testLen < 1 || trainLen <= p.KernelLength {
		return nil, fmt.Errorf("%w: %d samples cannot hold a %d-sample kernel with test fraction %g",
			ErrDimensionMismatch, nTimes, p.KernelLength, p.TestFraction)
	}

	res := &Result{
		YScale: 1,
		XMean:  make([]float64, nStims),
		XScale: make([]float64, nStims),
	}
	for i := range res.XScale {
		res.XScale[i] = 1
	}

	yw := append([]float64(nil), y...)
	xw := make([][]float64, nStims)
	for i, row := range x {
		xw[i] = append([]float64(nil), row...)
	}
	if p.ScaleData {
		res.YMean, res.YScale = scaleSignal(yw, p.Norm)
		for i := range xw {
			res.XMean[i], res.XScale[i] = scaleSignal(xw[i], p.Norm)
		}
	}

	// held-out segment at the end of the signal
	yTrain, yTest := yw[:trainLen], yw[trainLen:]
	xTrain := make([][]float64, nStims)
	xTest := make([][]float64, nStims)
	for i, row := range xw {
		xTrain[i], xTest[i] = row[:trainLen], row[trainLen:]
	}

	h := make([][]float64, nStims)
	for i := range h {
		h[i] = make([]float64, p.KernelLength)
	}
	trainErr := append([]float64(nil), yTrain...)
	testErr := append([]float64(nil), yTest...)

	var history [][][]float64
	delta := p.Delta
	reason := "maxiter exceeded"
	iBoost := 0
	for ; iBoost < p.MaxIter; iBoost++ {
		history = append(history, copyKernel(h))

		eTest := errFunc(testErr)
		eTrain := errFunc(trainErr)
		res.TestErrorHistory = append(res.TestErrorHistory, eTest)

		// stop when the held-out error has not improved for two steps
		n := len(res.TestErrorHistory)
		if iBoost > 10 && eTest > res.TestErrorHistory[n-2] && eTest > res.TestErrorHistory[n-3] {
			reason = "error(test) not improving in 2 steps"
			break
		}

		// probe every (stimulus, lag) coordinate with ±delta
		bestErr := 0.0
		bestStim, bestLag := -1, 0
		bestSign := 1.0
		for iStim := 0; iStim < nStims; iStim++ {
			for iLag := 0; iLag < p.KernelLength; iLag++ {
				eAdd, eSub, ferr := deltaError(trainErr, xTrain[iStim], delta, iLag)
				if ferr != nil {
					return nil, ferr
				}
				e, sign := eAdd, 1.0
				if eSub < eAdd {
					e, sign = eSub, -1.0
				}
				if bestStim < 0 || e < bestErr {
					bestErr, bestStim, bestLag, bestSign = e, iStim, iLag, sign
				}
			}
		}

		// no improvement possible: shrink the step
		if bestErr > eTrain {
			delta *= 0.5
			if delta >= p.MinDelta {
				b.logger.Debug("reducing delta", logging.Fields{"delta": delta, "iteration": iBoost})
				continue
			}
			reason = "no improvement possible for training data"
			break
		}

		deltaSigned := bestSign * delta
		h[bestStim][bestLag] += deltaSigned

		// abort if we're moving in circles
		if iBoost >= 2 && h[bestStim][bestLag] == history[iBoost-1][bestStim][bestLag] {
			reason = "same h after 2 iterations"
			break
		}
		if iBoost >= 3 && h[bestStim][bestLag] == history[iBoost-2][bestStim][bestLag] {
			reason = "same h after 3 iterations"
			break
		}

		if err := norm.UpdateError(trainErr, xTrain[bestStim], deltaSigned, bestLag); err != nil {
			return nil, err
		}
		if err := norm.UpdateError(testErr, xTest[bestStim], deltaSigned, bestLag); err != nil {
			return nil, err
		}
	}

	res.Iterations = len(res.TestErrorHistory)
	res.Reason = reason
	res.BestIter = argmin(res.TestErrorHistory)
	res.H = history[res.BestIter]

	res.HScaled = copyKernel(res.H)
	for i := range res.HScaled {
		for j := range res.HScaled[i] {
			res.HScaled[i][j] *= res.YScale / res.XScale[i]
		}
	}

	pred, err := Predict(res.H, xw)
	if err != nil {
		return nil, err
	}
	resid := make([]float64, nTimes)
	for i := range resid {
		resid[i] = yw[i] - pred[i]
	}
	res.FitError = errFunc(resid)

	b.logger.Info("boosting finished", logging.Fields{
		"iterations": res.Iterations,
		"best_iter":  res.BestIter,
		"reason":     res.Reason,
		"fit_error":  res.FitError,
	})
	return res, nil
}

func normFuncs(n ErrorNorm) (func(y, x []float64, delta float64, shift int) (float64, float64, error), func([]float64) float64, error) {
	switch n {
	case L1:
		return norm.L1ForDelta[float64], norm.L1[float64], nil
	case L2:
		return norm.L2ForDelta[float64], norm.L2[float64], nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown norm %q", ErrInvalidParams, n)
	}
}

// scaleSignal demeans data in place and divides it by the scale matching
// the error norm: the mean absolute value for L1, the standard deviation
// for L2. Returns the mean and scale. Constant signals are only demeaned.
func scaleSignal(data []float64, n ErrorNorm) (mean, sc float64) {
	mean = common.Mean(data)
	for i := range data {
		data[i] -= mean
	}
	if n == L1 {
		sc = common.MeanAbsolute(data)
	} else {
		sc = common.StandardDeviation(data)
	}
	if sc == 0 {
		return mean, 1
	}
	common.Scale(data, 1/sc)
	return mean, sc
}

func copyKernel(h [][]float64) [][]float64 {
	out := make([][]float64, len(h))
	for i, row := range h {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func argmin(v []float64) int {
	best := 0
	for i, x := range v {
		if x < v[best] {
			best = i
		}
	}
	return best
}
