package cluster

import "fmt"

// Adjacency maps each vertex to the ordered list of vertices it is adjacent
// to, for the one dimension of a spatiotemporal map that is not a line
// graph (typically source-space vertices on a cortical surface). Labels in
// the same time slice may merge only across these edges.
//
// Adjacency is validated once at construction; the merge passes index it
// unchecked.
type Adjacency struct {
	nVerts    int
	neighbors [][]int32
}

// NewAdjacency builds an Adjacency for nVerts vertices from per-vertex
// neighbor lists. Vertices absent from the map have no neighbors. Neighbor
// entries outside [0, nVerts) are rejected with ErrInvalidAdjacency.
func NewAdjacency(nVerts int, neighbors map[int32][]int32) (*Adjacency, error) {
	if nVerts <= 0 {
		return nil, fmt.Errorf("%w: nVerts=%d", ErrDimensionMismatch, nVerts)
	}
	lists := make([][]int32, nVerts)
	for v, ns := range neighbors {
		if v < 0 || int(v) >= nVerts {
			return nil, fmt.Errorf("%w: vertex %d with %d vertices", ErrInvalidAdjacency, v, nVerts)
		}
		for _, n := range ns {
			if n < 0 || int(n) >= nVerts {
				return nil, fmt.Errorf("%w: vertex %d lists neighbor %d with %d vertices",
					ErrInvalidAdjacency, v, n, nVerts)
			}
		}
		lists[v] = ns
	}
	return &Adjacency{nVerts: nVerts, neighbors: lists}, nil
}

// NVerts returns the vertex count the adjacency was built for.
func (a *Adjacency) NVerts() int { return a.nVerts }

// Neighbors returns the neighbor list of vertex v. The returned slice is
// shared, not copied.
func (a *Adjacency) Neighbors(v int) []int32 { return a.neighbors[v] }
