// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package mesh

// Cube returns an axis-aligned cube with side length size,
// centered at the origin.
// Each face has its own four vertices so that normals are
// flat.
func Cube(size float32) *Mesh {
	h := size / 2
	// Per face: normal, then two tangent axes spanning it.
	faces := [6][3][3]float32{
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
	}
	m := &Mesh{
		Vertices: make([][3]float32, 0, 24),
		Normals:  make([][3]float32, 0, 24),
		Faces:    make([][3]int, 0, 12),
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := len(m.Vertices)
		for _, s := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p [3]float32
			for i := range p {
				p[i] = h * (n[i] + s[0]*u[i] + s[1]*v[i])
			}
			m.Vertices = append(m.Vertices, p)
			m.Normals = append(m.Normals, n)
		}
		m.Faces = append(m.Faces,
			[3]int{base, base + 1, base + 2},
			[3]int{base, base + 2, base + 3})
	}
	return m
}
