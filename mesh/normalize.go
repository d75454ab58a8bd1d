// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"math"
)

// TargetMaxDimension is the size of the largest bounding box
// dimension after normalization.
const TargetMaxDimension = 2

// Bounds returns the axis-aligned bounding box of vs.
// If vs is empty, lo is +Inf and hi is -Inf.
func Bounds(vs [][3]float32) (lo, hi [3]float32) {
	inf := float32(math.Inf(1))
	lo = [3]float32{inf, inf, inf}
	hi = [3]float32{-inf, -inf, -inf}
	for _, v := range vs {
		for i := range v {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return
}

// Normalize maps vs into a box centered at the origin whose
// largest dimension is TargetMaxDimension.
// Each vertex v becomes scale ⋅ (v - center).
// If every vertex coincides, scale is 1 and the vertices
// are only recentered.
// It returns a new slice; vs is not modified.
func Normalize(vs [][3]float32) [][3]float32 {
	out := make([][3]float32, len(vs))
	if len(vs) == 0 {
		return out
	}
	lo, hi := Bounds(vs)
	var center [3]float32
	var maxDim float32
	for i := range center {
		center[i] = (lo[i] + hi[i]) / 2
		maxDim = max(maxDim, hi[i]-lo[i])
	}
	var scale float32 = 1
	if maxDim > 0 {
		scale = TargetMaxDimension / maxDim
	}
	for i, v := range vs {
		for j := range v {
			out[i][j] = scale * (v[j] - center[j])
		}
	}
	return out
}
