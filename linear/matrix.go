// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"unsafe"
)

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Translate sets m to contain n ⋅ T, where T is
// a translation by v.
func (m *M4) Translate(n *M4, v *V3) {
	c := n[3]
	for i := range c {
		c[i] += n[0][i]*v[0] + n[1][i]*v[1] + n[2][i]*v[2]
	}
	*m = *n
	m[3] = c
}

// RotateX sets m to contain n ⋅ R, where R is
// a rotation of rad radians around the x axis.
func (m *M4) RotateX(n *M4, rad float32) {
	s, c := sincos(rad)
	c1, c2 := n[1], n[2]
	*m = *n
	for i := range c1 {
		m[1][i] = c1[i]*c + c2[i]*s
		m[2][i] = c2[i]*c - c1[i]*s
	}
}

// RotateY sets m to contain n ⋅ R, where R is
// a rotation of rad radians around the y axis.
func (m *M4) RotateY(n *M4, rad float32) {
	s, c := sincos(rad)
	c0, c2 := n[0], n[2]
	*m = *n
	for i := range c0 {
		m[0][i] = c0[i]*c - c2[i]*s
		m[2][i] = c0[i]*s + c2[i]*c
	}
}

// RotateZ sets m to contain n ⋅ R, where R is
// a rotation of rad radians around the z axis.
func (m *M4) RotateZ(n *M4, rad float32) {
	s, c := sincos(rad)
	c0, c1 := n[0], n[1]
	*m = *n
	for i := range c0 {
		m[0][i] = c0[i]*c + c1[i]*s
		m[1][i] = c1[i]*c - c0[i]*s
	}
}

// Perspective sets m to contain a perspective projection.
// yfov is the vertical field of view in radians.
// The depth range in clip space is [-1, 1].
func (m *M4) Perspective(yfov, aspectRatio, znear, zfar float32) {
	f := float32(1 / math.Tan(float64(yfov)/2))
	nf := 1 / (znear - zfar)
	*m = M4{
		{f / aspectRatio},
		{1: f},
		{2: (zfar + znear) * nf, 3: -1},
		{2: 2 * zfar * znear * nf},
	}
}

// Flat returns m as a flat array, in column-major order.
func (m *M4) Flat() *[16]float32 { return (*[16]float32)(unsafe.Pointer(m)) }

// Rad converts deg degrees to radians.
func Rad(deg float32) float32 { return deg * math.Pi / 180 }

func sincos(rad float32) (s, c float32) {
	s64, c64 := math.Sincos(float64(rad))
	return float32(s64), float32(c64)
}
