package cluster

import "fmt"

// MergeLabels merges connected non-zero labels of a vertices × slices label
// map in place. Two cells may merge when they share a time slice and their
// vertices are adjacent. cmap is slice-major per vertex: cmap[v*nSlices+s].
// Label 0 is background and never touched. nLabels is the highest label id
// present in cmap.
//
// The merge is a union-find over a flat relabel array with union-by-minimum:
// of two connected roots the larger always points at the smaller, so the
// surviving id of every connected component is its minimum label. Three
// passes: union along adjacency edges, flatten every chain to its root,
// then rewrite cmap. The relabel array is scratch, discarded on return.
//
// Returns the sorted distinct positive labels remaining in cmap. Calling
// MergeLabels again on the result is a no-op.
func MergeLabels(cmap []uint32, nVerts, nSlices, nLabels int, adj *Adjacency) ([]uint32, error) {
	if nVerts <= 0 || nSlices <= 0 || len(cmap) != nVerts*nSlices {
		return nil, fmt.Errorf("%w: label map has %d elements, want %d (%d vertices × %d slices)",
			ErrDimensionMismatch, len(cmap), nVerts*nSlices, nVerts, nSlices)
	}
	if adj.NVerts() != nVerts {
		return nil, fmt.Errorf("%w: adjacency built for %d vertices, map has %d",
			ErrDimensionMismatch, adj.NVerts(), nVerts)
	}
	if nLabels < 0 {
		return nil, fmt.Errorf("%w: nLabels=%d", ErrDimensionMismatch, nLabels)
	}
	for i, label := range cmap {
		if int(label) > nLabels {
			return nil, fmt.Errorf("%w: cmap[%d]=%d exceeds nLabels=%d",
				ErrDimensionMismatch, i, label, nLabels)
		}
	}

	relabel := make([]uint32, nLabels+1)
	for i := range relabel {
		relabel[i] = uint32(i)
	}

	// union pass: connect same-slice labels across adjacency edges
	for s := 0; s < nSlices; s++ {
		for v := 0; v < nVerts; v++ {
			label := cmap[v*nSlices+s]
			if label == 0 {
				continue
			}
			for _, n := range adj.Neighbors(v) {
				nLabel := cmap[int(n)*nSlices+s]
				if nLabel == 0 {
					continue
				}
				a := find(relabel, label)
				b := find(relabel, nLabel)
				if a < b {
					relabel[b] = a
				} else if b < a {
					relabel[a] = b
				}
			}
		}
	}

	// flatten pass: ascending ids, so every chain below i is already flat
	for i := 1; i <= nLabels; i++ {
		relabel[i] = find(relabel, uint32(i))
	}

	// apply pass
	seen := make([]bool, nLabels+1)
	for i, label := range cmap {
		if label == 0 {
			continue
		}
		if root := relabel[label]; root != label {
			cmap[i] = root
			label = root
		}
		seen[label] = true
	}

	// ids come out sorted because seen is scanned in ascending order
	var ids []uint32
	for i := 1; i <= nLabels; i++ {
		if seen[i] {
			ids = append(ids, uint32(i))
		}
	}
	return ids, nil
}

// find follows a label's relabel chain down to its current root. Parents
// are always ≤ their children, so the walk terminates at a fixed point.
func find(relabel []uint32, label uint32) uint32 {
	for relabel[label] < label {
		label = relabel[label]
	}
	return label
}
