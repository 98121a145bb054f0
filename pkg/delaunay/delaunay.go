// Package delaunay builds a planar Delaunay triangulation over the node set
// and exposes it as a proximity graph.
package delaunay

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

// Node is a triangulation vertex carrying its dataset identity.
type Node struct {
	ID       uint32
	Lon, Lat float64
}

// Triangulation is a Delaunay triangulation over a node set. Faces and edges
// are index arrays into the vertex slice; the structure is immutable once
// built.
type Triangulation struct {
	nodes []Node
	tri   *delaunay.Triangulation
}

// Build bulk-loads the triangulation. Nodes with non-finite coordinates are
// rejected up front; coincident points are expected to have been collapsed
// by identity deduplication beforehand.
func Build(nodes []Node) (*Triangulation, error) {
	points := make([]delaunay.Point, len(nodes))
	for i, n := range nodes {
		if !finite(n.Lon) || !finite(n.Lat) {
			return nil, fmt.Errorf("node %d has non-finite position (%v, %v)", n.ID, n.Lon, n.Lat)
		}
		points[i] = delaunay.Point{X: n.Lon, Y: n.Lat}
	}
	tri, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("triangulate %d nodes: %w", len(nodes), err)
	}
	return &Triangulation{nodes: nodes, tri: tri}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// NumFaces returns the number of triangles.
func (t *Triangulation) NumFaces() int { return len(t.tri.Triangles) / 3 }

// Face returns the three vertices of triangle i.
func (t *Triangulation) Face(i int) [3]Node {
	return [3]Node{
		t.nodes[t.tri.Triangles[3*i]],
		t.nodes[t.tri.Triangles[3*i+1]],
		t.nodes[t.tri.Triangles[3*i+2]],
	}
}

// Edges calls fn once per undirected edge. An edge shared by two faces is
// visited exactly once.
func (t *Triangulation) Edges(fn func(a, b Node)) {
	for e, p := range t.tri.Triangles {
		// Visit each half-edge pair from one side only; hull edges have
		// no twin (-1) and always qualify.
		if e > t.tri.Halfedges[e] {
			q := t.tri.Triangles[nextHalfedge(e)]
			fn(t.nodes[p], t.nodes[q])
		}
	}
}

// nextHalfedge steps to the next half-edge of the same triangle.
func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}
