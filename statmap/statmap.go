// Package statmap ties the numeric kernels together into spatiotemporal
// cluster analysis: ANOVA F-maps over a vertices × slices measurement grid,
// thresholded into binary maps and merged into labeled clusters for
// permutation-based cluster statistics.
package statmap

import (
	"fmt"

	"github.com/avolkmann/neurostat/algorithms/anova"
	"github.com/avolkmann/neurostat/algorithms/cluster"
	"github.com/avolkmann/neurostat/algorithms/lm"
	"github.com/avolkmann/neurostat/logging"
)

// Params contains parameters for cluster analysis
type Params struct {
	Threshold       float64 `json:"threshold"`         // F-value forming the binary map
	MinClusterCells int     `json:"min_cluster_cells"` // minimum cluster extent, 0 disables
}

// EffectClusters holds one effect's F-map and the clusters found in it
type EffectClusters struct {
	Effect anova.Effect `json:"effect"`
	FMap   []float64    `json:"f_map"` // vertices × slices
	CMap   []uint32     `json:"c_map"` // cluster labels, 0 = background
	IDs    []uint32     `json:"ids"`   // surviving cluster ids, sorted
}

// Result contains cluster maps for every effect that produced an F-map
type Result struct {
	Effects []EffectClusters `json:"effects"`
	// Produced reports, per input effect, whether an F-map was computed.
	// Always all-true for fixed-effects models; mixed models can leave
	// effects without an error term.
	Produced []bool `json:"produced"`
}

// ClusterAnalysis computes thresholded cluster maps from mass-univariate
// ANOVA F-maps. Each test of the underlying model corresponds to one cell
// of a vertices × slices grid; vertex connectivity comes from an Adjacency,
// the slice axis is a line graph.
type ClusterAnalysis struct {
	params Params
	logger logging.Logger
}

// NewClusterAnalysis creates an analysis with the given parameters
func NewClusterAnalysis(params Params) *ClusterAnalysis {
	return &ClusterAnalysis{
		params: params,
		logger: logging.GetGlobalLogger().WithFields(logging.Fields{"component": "statmap"}),
	}
}

// Run computes fixed-effects F-maps (common residual error term) and labels
// the clusters of every effect. y is cases × tests with one test per grid
// cell, tests laid out slice-major per vertex.
func (ca *ClusterAnalysis) Run(d *lm.Design, y []float64, effects []anova.Effect, dfRes int, adj *cluster.Adjacency, nSlices int) (*Result, error) {
	nTests, err := ca.checkGrid(adj, nSlices)
	if err != nil {
		return nil, err
	}
	fmap := make([]float64, len(effects)*nTests)
	if err := anova.FMaps(d, y, nTests, effects, dfRes, fmap); err != nil {
		return nil, err
	}
	produced := make([]bool, len(effects))
	for i := range produced {
		produced[i] = true
	}
	return ca.labelEffects(fmap, effects, produced, adj, nSlices)
}

// RunFull is Run with a fully specified error-term model: each effect's
// F-test denominator is assembled from other effects' mean squares per
// terms. Effects without an error term are reported false in
// Result.Produced and get no cluster map.
func (ca *ClusterAnalysis) RunFull(d *lm.Design, y []float64, effects []anova.Effect, terms anova.ErrorTerms, adj *cluster.Adjacency, nSlices int) (*Result, error) {
	nTests, err := ca.checkGrid(adj, nSlices)
	if err != nil {
		return nil, err
	}
	fmap := make([]float64, len(effects)*nTests)
	nMaps, produced, err := anova.FullFMaps(d, y, nTests, effects, terms, fmap)
	if err != nil {
		return nil, err
	}
	ca.logger.Debug("full model F-maps", logging.Fields{
		"effects": len(effects), "produced": nMaps,
	})
	return ca.labelEffects(fmap[:nMaps*nTests], effects, produced, adj, nSlices)
}

func (ca *ClusterAnalysis) checkGrid(adj *cluster.Adjacency, nSlices int) (int, error) {
	if adj == nil || nSlices <= 0 {
		return 0, fmt.Errorf("%w: need adjacency and nSlices > 0", cluster.ErrDimensionMismatch)
	}
	return adj.NVerts() * nSlices, nil
}

// labelEffects thresholds each packed F-map row and labels its clusters.
func (ca *ClusterAnalysis) labelEffects(fmap []float64, effects []anova.Effect, produced []bool, adj *cluster.Adjacency, nSlices int) (*Result, error) {
	nTests := adj.NVerts() * nSlices
	res := &Result{Produced: produced}

	iMap := 0
	for e, ef := range effects {
		if !produced[e] {
			continue
		}
		row := fmap[iMap*nTests : (iMap+1)*nTests]
		iMap++

		binMap := make([]bool, nTests)
		for i, f := range row {
			binMap[i] = f > ca.params.Threshold
		}
		cmap := make([]uint32, nTests)
		ids, err := cluster.LabelBinary(binMap, cmap, adj.NVerts(), nSlices, adj)
		if err != nil {
			return nil, err
		}
		ids = cluster.FilterClusters(cmap, ids, ca.params.MinClusterCells)

		ca.logger.Info("effect clusters", logging.Fields{
			"effect":   effectName(ef, e),
			"clusters": len(ids),
		})
		res.Effects = append(res.Effects, EffectClusters{
			Effect: ef,
			FMap:   append([]float64(nil), row...),
			CMap:   cmap,
			IDs:    ids,
		})
	}
	return res, nil
}

func effectName(e anova.Effect, i int) string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("effect %d", i)
}
