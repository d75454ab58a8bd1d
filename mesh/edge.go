// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"sort"
)

// Edge is an undirected edge between two vertices.
// Edges created by MakeEdge always have A <= B.
type Edge struct {
	A, B uint16
}

// MakeEdge returns the canonical edge between i and j.
func MakeEdge(i, j uint16) Edge {
	if i > j {
		i, j = j, i
	}
	return Edge{i, j}
}

func (e Edge) less(f Edge) bool { return e.A < f.A || (e.A == f.A && e.B < f.B) }

// EdgeSet returns the unique edges of a triangle list,
// sorted by (A, B).
// Each triple in indices contributes the edges (i1, i2),
// (i2, i3) and (i3, i1). Trailing indices that do not form
// a triangle are ignored.
func EdgeSet(indices []uint16) []Edge {
	n := len(indices) - len(indices)%3
	set := make(map[Edge]struct{}, n)
	for i := 0; i < n; i += 3 {
		i1, i2, i3 := indices[i], indices[i+1], indices[i+2]
		set[MakeEdge(i1, i2)] = struct{}{}
		set[MakeEdge(i2, i3)] = struct{}{}
		set[MakeEdge(i3, i1)] = struct{}{}
	}
	edges := make([]Edge, 0, len(set))
	for e := range set {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].less(edges[j]) })
	return edges
}

// Edges returns the line list that draws the wireframe of
// a triangle list, two indices per edge.
// See EdgeSet.
func Edges(indices []uint16) []uint16 {
	edges := EdgeSet(indices)
	lines := make([]uint16, 0, 2*len(edges))
	for _, e := range edges {
		lines = append(lines, e.A, e.B)
	}
	return lines
}
