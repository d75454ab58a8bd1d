// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestV(t *testing.T) {
	var u V3
	v := V3{1, 2, 4}
	w := V3{0, -1, 2}

	if u.Add(&v, &w); u != (V3{1, 1, 6}) {
		t.Fatalf("V3.Add\nhave %v\nwant [1 1 6]", u)
	}
	if u.Sub(&v, &w); u != (V3{1, 3, 2}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 3 2]", u)
	}
	if u.Scale(-1, &v); u != (V3{-1, -2, -4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [-1 -2 -4]", u)
	}
	if d := v.Dot(&w); d != 6 {
		t.Fatalf("V3.Dot\nhave %v\nwant 6\n", d)
	}
	if l := v.Len(); l != float32(math.Sqrt(21)) {
		t.Fatalf("V3.Len\nhave %v\nwant %v\n", l, math.Sqrt(21))
	}

	v = V3{0, 0, -2}
	w = V3{0, 4, 0}

	if v.Norm(&v); v != (V3{0, 0, -1}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 -1]", v)
	}
	if w.Norm(&w); w != (V3{0, 1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 1 0]", w)
	}
	if u.Norm(&V3{}); u != (V3{}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 0 0]", u)
	}
	if u.Cross(&v, &w); u != (V3{1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [1 0 0]", u)
	}
	if u.Cross(&w, &v); u != (V3{-1, 0, 0}) {
		t.Fatalf("V3.Cross\nhave %v\nwant [-1 0 0]", u)
	}
}

func TestM(t *testing.T) {
	m := M4{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	if m.I(); m != (M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}}) {
		t.Fatalf("M4.I\nhave %v\nwant identity", m)
	}
	m = M4{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 10, 11, 12}, {13, 14, 15, 16}}
	f := m.Flat()
	for i := range f {
		if f[i] != float32(i+1) {
			t.Fatalf("M4.Flat\nhave %v\nwant column-major 1..16", *f)
		}
	}
	// Flat aliases m.
	f[12] = -1
	if m[3][0] != -1 {
		t.Fatal("M4.Flat: not aliased")
	}
}

func near(m *M4, n *mgl32.Mat4) bool {
	f := m.Flat()
	for i := range f {
		if d := f[i] - n[i]; d > 1e-5 || d < -1e-5 {
			return false
		}
	}
	return true
}

func TestTranslateRotate(t *testing.T) {
	for _, c := range [...]struct {
		dist    float32
		x, y, z float32
	}{
		{-3, 65, 15, 65},
		{0, 0, 0, 0},
		{2.5, 400, -90, 180},
		{-10, -33, 721, 1},
	} {
		var m M4
		m.I()
		m.Translate(&m, &V3{0, 0, c.dist})
		m.RotateZ(&m, Rad(-c.z))
		m.RotateY(&m, Rad(-c.y))
		m.RotateX(&m, Rad(c.x))

		n := mgl32.Ident4().
			Mul4(mgl32.Translate3D(0, 0, c.dist)).
			Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(-c.z))).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-c.y))).
			Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.x)))
		if !near(&m, &n) {
			t.Fatalf("T*Rz*Ry*Rx %+v\nhave %v\nwant %v", c, m, n)
		}
	}
}

func TestTranslate(t *testing.T) {
	var m M4
	m.I()
	m.Translate(&m, &V3{-1, -2, -3})
	if m != (M4{{1}, {1: 1}, {2: 1}, {-1, -2, -3, 1}}) {
		t.Fatalf("M4.Translate\nhave %v\nwant %v", m, M4{{1}, {1: 1}, {2: 1}, {-1, -2, -3, 1}})
	}
	v := mgl32.Mat4(*m.Flat()).Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	if v != (mgl32.Vec4{0, -1, -2, 1}) {
		t.Fatalf("T*v\nhave %v\nwant [0 -1 -2 1]", v)
	}
}

func TestPerspective(t *testing.T) {
	for _, c := range [...]struct {
		yfov, aspect, znear, zfar float32
	}{
		{math.Pi / 4, 800.0 / 600.0, 0.1, 100},
		{math.Pi / 2, 1, 1, 10},
		{math.Pi / 3, 0.5, 0.01, 1000},
	} {
		var m M4
		m.Perspective(c.yfov, c.aspect, c.znear, c.zfar)
		n := mgl32.Perspective(c.yfov, c.aspect, c.znear, c.zfar)
		if !near(&m, &n) {
			t.Fatalf("M4.Perspective %+v\nhave %v\nwant %v", c, m, n)
		}
	}
}
