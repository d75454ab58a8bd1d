// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package mesh defines the triangle mesh consumed by the viewer
// and the CPU-side processing applied to it before upload.
package mesh

import (
	"errors"
	"fmt"

	"github.com/gviegas/meshview/linear"
)

const prefix = "mesh: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// MaxVertices is the maximum number of vertices in a Mesh.
// Indices are stored as 16-bit unsigned integers.
const MaxVertices = 1 << 16

var (
	// ErrEmpty means that a Mesh has no vertices or no faces.
	ErrEmpty = newErr("no vertex/face data")

	// ErrNormals means that the number of normals does not
	// match the number of vertices.
	ErrNormals = newErr("normal count mismatch")

	// ErrIndex means that a face refers to a vertex that
	// does not exist.
	ErrIndex = newErr("face index out of range")

	// ErrTooLarge means that a Mesh has more than
	// MaxVertices vertices.
	ErrTooLarge = newErr("too many vertices")
)

// Mesh is a triangle mesh with per-vertex normals.
// Faces index into Vertices, and Normals[i] is the
// normal of Vertices[i].
// A Mesh must not be modified after it is handed
// to a consumer.
type Mesh struct {
	Vertices [][3]float32
	Normals  [][3]float32
	Faces    [][3]int
}

// Validate checks that m is well-formed.
func (m *Mesh) Validate() error {
	switch {
	case len(m.Vertices) == 0 || len(m.Faces) == 0:
		return ErrEmpty
	case len(m.Normals) != len(m.Vertices):
		return fmt.Errorf("%w: %d normals for %d vertices", ErrNormals, len(m.Normals), len(m.Vertices))
	case len(m.Vertices) > MaxVertices:
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, len(m.Vertices), MaxVertices)
	}
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, x := range f {
			if x < 0 || x >= n {
				return fmt.Errorf("%w: face %d refers to vertex %d", ErrIndex, i, x)
			}
		}
	}
	return nil
}

// Flatten returns the coordinates in vs as a flat slice,
// three elements per vertex.
func Flatten(vs [][3]float32) []float32 {
	s := make([]float32, 0, 3*len(vs))
	for i := range vs {
		s = append(s, vs[i][:]...)
	}
	return s
}

// FlattenFaces returns the indices in fs as a flat slice,
// three elements per face.
// It assumes that every index fits in 16 bits (see
// Mesh.Validate).
func FlattenFaces(fs [][3]int) []uint16 {
	s := make([]uint16, 0, 3*len(fs))
	for _, f := range fs {
		s = append(s, uint16(f[0]), uint16(f[1]), uint16(f[2]))
	}
	return s
}

// ComputeNormals computes per-vertex normals by summing the
// (area-weighted) normals of the faces sharing each vertex.
// Vertices not referenced by any face get a zero normal.
func ComputeNormals(vertices [][3]float32, faces [][3]int) [][3]float32 {
	ns := make([]linear.V3, len(vertices))
	for _, f := range faces {
		var e1, e2, n linear.V3
		p0 := linear.V3(vertices[f[0]])
		p1 := linear.V3(vertices[f[1]])
		p2 := linear.V3(vertices[f[2]])
		e1.Sub(&p1, &p0)
		e2.Sub(&p2, &p0)
		n.Cross(&e1, &e2)
		for _, x := range f {
			ns[x].Add(&ns[x], &n)
		}
	}
	out := make([][3]float32, len(ns))
	for i := range ns {
		ns[i].Norm(&ns[i])
		out[i] = ns[i]
	}
	return out
}
