// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package viewer

import (
	"unsafe"

	"github.com/gviegas/meshview/driver"
	"github.com/gviegas/meshview/internal/shader"
	"github.com/gviegas/meshview/mesh"
)

// Buffers holds the GPU buffers of a mesh.
// They are created together and destroyed together.
type Buffers struct {
	Index    driver.Buffer
	Line     driver.Buffer
	Position driver.Buffer
	Normal   driver.Buffer

	IndexCount int
	LineCount  int
}

func bytesOf[T float32 | uint16](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(s[0])))
}

// NewBuffers creates the buffers of a mesh and binds the
// vertex buffers to the inputs identified by loc.
// vertices and normals have three elements per vertex;
// indices has three elements per triangle. The line list
// used for wireframe drawing is derived from indices.
// It fails without creating any buffer if a vertex input
// is not active. If buffer creation fails, buffers created
// so far are destroyed.
func NewBuffers(gpu driver.GPU, loc *shader.Locations, vertices []float32, indices []uint16, normals []float32) (*Buffers, error) {
	if err := loc.CheckAttribs(); err != nil {
		return nil, err
	}
	lines := mesh.Edges(indices)
	b := &Buffers{
		IndexCount: len(indices),
		LineCount:  len(lines),
	}
	for _, x := range [...]struct {
		dst  *driver.Buffer
		usg  driver.Usage
		data []byte
	}{
		{&b.Index, driver.UIndexData, bytesOf(indices)},
		{&b.Line, driver.UIndexData, bytesOf(lines)},
		{&b.Position, driver.UVertexData, bytesOf(vertices)},
		{&b.Normal, driver.UVertexData, bytesOf(normals)},
	} {
		buf, err := gpu.NewBuffer(x.usg, x.data)
		if err != nil {
			b.Destroy()
			return nil, err
		}
		*x.dst = buf
	}
	gpu.SetVertexBuf(loc.Position, b.Position, driver.Float32x3)
	gpu.SetVertexBuf(loc.Normal, b.Normal, driver.Float32x3)
	return b, nil
}

// Draw draws the mesh as triangles (Solid) or as lines
// (Wireframe).
func (b *Buffers) Draw(gpu driver.GPU, mode Mode) {
	if mode == Wireframe {
		gpu.SetIndexBuf(b.Line)
		gpu.DrawIndexed(driver.TLine, driver.Index16, b.LineCount, 0)
		return
	}
	gpu.SetIndexBuf(b.Index)
	gpu.DrawIndexed(driver.TTriangle, driver.Index16, b.IndexCount, 0)
}

// Destroy destroys every buffer in b.
func (b *Buffers) Destroy() {
	for _, x := range [...]*driver.Buffer{&b.Index, &b.Line, &b.Position, &b.Normal} {
		if *x != nil {
			(*x).Destroy()
			*x = nil
		}
	}
}
