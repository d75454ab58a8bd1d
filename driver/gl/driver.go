// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package gl implements driver interfaces using the
// OpenGL 4.1 core profile.
//
// The driver does not create a context. The context of
// the drawing surface must be current on the calling
// thread before Open is called, and every method must be
// called from that thread.
package gl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/meshview/driver"
)

const driverName = "gl"

// Driver implements driver.Driver and driver.GPU.
type Driver struct {
	open bool
	vao  uint32
	prog *program

	// Dimensions of the viewport.
	vw, vh int32
	// Reports the dimensions of the drawing surface.
	surface func() (width, height int)
}

var _ driver.GPU = &Driver{}

func init() {
	driver.Register(&Driver{})
}

// Open initializes the driver.
// It fails with driver.ErrNotInstalled if the GL entry
// points cannot be loaded and with driver.ErrNoContext if
// no context is current.
func (d *Driver) Open() (driver.GPU, error) {
	if d.open {
		return d, nil
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", driver.ErrNotInstalled, err)
	}
	if gl.GetString(gl.VERSION) == nil {
		return nil, driver.ErrNoContext
	}
	// The core profile cannot draw without a vertex
	// array object.
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	var vp [4]int32
	gl.GetIntegerv(gl.VIEWPORT, &vp[0])
	d.vw, d.vh = vp[2], vp[3]
	d.open = true
	return d, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Close deinitializes the driver.
// GPU objects not yet destroyed are left to be reclaimed
// with the context.
func (d *Driver) Close() {
	if !d.open {
		return
	}
	gl.BindVertexArray(0)
	gl.DeleteVertexArrays(1, &d.vao)
	gl.UseProgram(0)
	*d = Driver{surface: d.surface}
}

// Driver returns d.
func (d *Driver) Driver() driver.Driver { return d }

// SetSurface sets the function used to query the size
// of the drawing surface, in pixels.
// The viewport follows that size. Without a surface
// function, the viewport found by Open is kept.
func (d *Driver) SetSurface(size func() (width, height int)) { d.surface = size }

// Size returns the size of the drawing surface.
func (d *Driver) Size() (width, height int) {
	if d.surface != nil {
		return d.surface()
	}
	return int(d.vw), int(d.vh)
}

// syncViewport updates the viewport if the surface was
// resized.
func (d *Driver) syncViewport() {
	if d.surface == nil {
		return
	}
	w, h := d.surface()
	if int32(w) != d.vw || int32(h) != d.vh {
		d.vw, d.vh = int32(w), int32(h)
		gl.Viewport(0, 0, d.vw, d.vh)
	}
}

// Clear clears the color and depth buffers.
// The viewport is adjusted to the drawing surface first.
func (d *Driver) Clear(cv *driver.ClearValue) {
	d.syncViewport()
	gl.ClearColor(cv.Color[0], cv.Color[1], cv.Color[2], cv.Color[3])
	gl.ClearDepth(float64(cv.Depth))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Enable enables c.
func (d *Driver) Enable(c driver.Cap) { gl.Enable(convCap(c)) }

// Disable disables c.
func (d *Driver) Disable(c driver.Cap) { gl.Disable(convCap(c)) }

// SetDepthMask enables or disables depth writes.
func (d *Driver) SetDepthMask(write bool) { gl.DepthMask(write) }

// SetBlendFunc sets the blend factors.
func (d *Driver) SetBlendFunc(src, dst driver.BlendFac) {
	gl.BlendFunc(convBlendFac(src), convBlendFac(dst))
}

// DrawIndexed draws primitives using the bound index
// buffer.
func (d *Driver) DrawIndexed(topo driver.Topology, format driver.IndexFmt, idxCount, baseIdx int) {
	gl.DrawElementsWithOffset(convTopology(topo), int32(idxCount), convIndexFmt(format), uintptr(baseIdx*int(format)))
}
