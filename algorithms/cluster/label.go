package cluster

import "fmt"

// LabelBinary labels the connected components of a thresholded binary map.
// Contiguous runs of true cells along each vertex's time axis get
// provisional ids first (the time axis is a line graph), then MergeLabels
// resolves connectivity across vertices through adj. cmap receives the
// final labels and must have the same vertices × slices shape as binMap.
//
// Returns the sorted cluster ids, empty when nothing exceeds threshold.
func LabelBinary(binMap []bool, cmap []uint32, nVerts, nSlices int, adj *Adjacency) ([]uint32, error) {
	if nVerts <= 0 || nSlices <= 0 || len(binMap) != nVerts*nSlices {
		return nil, fmt.Errorf("%w: binary map has %d elements, want %d (%d vertices × %d slices)",
			ErrDimensionMismatch, len(binMap), nVerts*nSlices, nVerts, nSlices)
	}
	if len(cmap) != len(binMap) {
		return nil, fmt.Errorf("%w: label map has %d elements, want %d",
			ErrDimensionMismatch, len(cmap), len(binMap))
	}

	// provisional ids: one per run of true cells along the time axis
	next := uint32(0)
	for v := 0; v < nVerts; v++ {
		row := v * nSlices
		for s := 0; s < nSlices; s++ {
			if !binMap[row+s] {
				cmap[row+s] = 0
				continue
			}
			if s == 0 || !binMap[row+s-1] {
				next++
			}
			cmap[row+s] = next
		}
	}
	if next == 0 {
		return nil, nil
	}
	return MergeLabels(cmap, nVerts, nSlices, int(next), adj)
}

// FilterClusters applies a minimum-extent criterion: clusters covering fewer
// than minCells cells are erased from cmap. Returns the surviving ids from
// cids, in order. cids must be the id set of cmap, as returned by
// MergeLabels or LabelBinary.
func FilterClusters(cmap []uint32, cids []uint32, minCells int) []uint32 {
	if minCells <= 1 || len(cids) == 0 {
		return cids
	}
	counts := make(map[uint32]int, len(cids))
	for _, label := range cmap {
		if label != 0 {
			counts[label]++
		}
	}
	keep := cids[:0]
	for _, id := range cids {
		if counts[id] >= minCells {
			keep = append(keep, id)
		}
	}
	if len(keep) == len(cids) {
		return keep
	}
	small := make(map[uint32]bool, len(cids)-len(keep))
	for id, n := range counts {
		if n < minCells {
			small[id] = true
		}
	}
	for i, label := range cmap {
		if small[label] {
			cmap[i] = 0
		}
	}
	return keep
}
