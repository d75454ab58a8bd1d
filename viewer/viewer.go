// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package viewer implements an interactive viewer for a
// single triangle mesh, lit by a single light.
//
// A Viewer is driven by discrete events forwarded by the
// user interface: Init supplies the mesh, and Reset, Zoom,
// Rotate and DisplayToggle change the render state. Every
// method must be called from the thread that owns the
// drawing surface.
//
// Setup failures are not returned as errors. They are
// logged once and leave the Viewer in the Invalid state,
// in which every method is a no-op.
package viewer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/gviegas/meshview/driver"
	"github.com/gviegas/meshview/internal/shader"
	"github.com/gviegas/meshview/linear"
	"github.com/gviegas/meshview/mesh"
)

const prefix = "viewer: "

var (
	// ErrMissingContext means that no rendering context
	// could be obtained for the drawing surface.
	ErrMissingContext = errors.New(prefix + "rendering context unavailable")

	// ErrMissingMeshData means that Init was called
	// without a usable mesh.
	ErrMissingMeshData = errors.New(prefix + "unable to read mesh data")
)

// State is the state of a Viewer.
type State int

// States.
const (
	// No context has been acquired yet.
	Uninitialized State = iota
	// A context was acquired but Init has not
	// succeeded yet.
	ContextReady
	// Init succeeded; the Viewer renders.
	Valid
	// Setup failed or the Viewer was closed.
	// This state is terminal.
	Invalid
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case ContextReady:
		return "context ready"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Mode is the display mode.
type Mode int

// Display modes.
const (
	// Filled triangles.
	Solid Mode = iota
	// Triangle edges only.
	Wireframe
)

// Camera is the view transform.
type Camera struct {
	// Rotation around the x, y and z axes, in degrees.
	// Angles accumulate without being wrapped.
	Rotation [3]float32
	// Translation along the view axis.
	Distance float32
}

// ModelView computes the model-view matrix of c.
// The transform is T(0, 0, Distance) ⋅ Rz(-z) ⋅ Ry(-y) ⋅ Rx(x).
func (c *Camera) ModelView(m *linear.M4) {
	m.I()
	m.Translate(m, &linear.V3{0, 0, c.Distance})
	m.RotateZ(m, linear.Rad(-c.Rotation[2]))
	m.RotateY(m, linear.Rad(-c.Rotation[1]))
	m.RotateX(m, linear.Rad(c.Rotation[0]))
}

// Viewer renders a mesh on the drawing surface of a
// driver.Driver.
type Viewer struct {
	drv driver.Driver
	gpu driver.GPU
	cfg Config
	log *log.Logger

	state State
	err   error

	cam   Camera
	alpha float32
	mode  Mode

	prog *shader.Program
	bufs *Buffers
	proj linear.M4
	mv   linear.M4
}

// New creates a new Viewer that draws through drv.
// drv is opened immediately; if that fails, the Viewer
// is Invalid.
// cfg may be nil, in which case DefaultConfig is used.
// Diagnostics are written to logger; a nil logger
// discards them.
func New(drv driver.Driver, cfg *Config, logger *log.Logger) *Viewer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	v := &Viewer{drv: drv, log: logger}
	if cfg == nil {
		v.cfg = DefaultConfig()
	} else {
		v.cfg = *cfg
	}
	v.cam = Camera{Rotation: v.cfg.Rotation, Distance: v.cfg.Distance}
	if drv == nil {
		v.fail(ErrMissingContext)
		return v
	}
	gpu, err := drv.Open()
	if err != nil {
		v.fail(fmt.Errorf("%w: %w", ErrMissingContext, err))
		return v
	}
	v.gpu = gpu
	v.state = ContextReady
	return v
}

// fail logs err and makes v Invalid.
func (v *Viewer) fail(err error) {
	v.state = Invalid
	v.err = err
	v.log.Print(prefix, err)
}

// State returns the current state of v.
func (v *Viewer) State() State { return v.state }

// Err returns the error that made v Invalid, or nil.
// It is nil for a Viewer made Invalid by Close.
func (v *Viewer) Err() error { return v.err }

// Camera returns the current camera.
func (v *Viewer) Camera() Camera { return v.cam }

// Alpha returns the current transparency factor,
// from 0 (transparent) to 1 (opaque).
func (v *Viewer) Alpha() float32 { return v.alpha }

// Mode returns the current display mode.
func (v *Viewer) Mode() Mode { return v.mode }

// Projection returns the current projection matrix.
func (v *Viewer) Projection() linear.M4 { return v.proj }

// ModelView returns the model-view matrix used by the
// last draw.
func (v *Viewer) ModelView() linear.M4 { return v.mv }

// Init loads m and draws it.
// alphaPercent is the opacity, from 0 to 100.
// The mesh vertices are normalized to fit in a 2x2x2 box
// centered at the origin.
// Calling Init on a Valid Viewer replaces the mesh: GPU
// objects are recreated as a whole.
// It returns whether v is Valid afterwards.
func (v *Viewer) Init(m *mesh.Mesh, alphaPercent float32) bool {
	if v.state == Invalid {
		return false
	}
	if m == nil {
		v.fail(ErrMissingMeshData)
		return false
	}
	if err := m.Validate(); err != nil {
		v.fail(fmt.Errorf("%w: %w", ErrMissingMeshData, err))
		return false
	}
	v.alpha = alphaPercent / 100
	v.release()

	vertices := mesh.Flatten(mesh.Normalize(m.Vertices))
	normals := mesh.Flatten(m.Normals)
	indices := mesh.FlattenFaces(m.Faces)

	prog, err := shader.Build(v.gpu)
	if err != nil {
		v.fail(err)
		return false
	}
	v.prog = prog
	bufs, err := NewBuffers(v.gpu, &prog.Loc, vertices, indices, normals)
	if err != nil {
		v.fail(err)
		return false
	}
	v.bufs = bufs

	v.setProjection()
	v.cam.ModelView(&v.mv)
	v.setConstants()
	v.state = Valid
	v.Display()
	return true
}

func (v *Viewer) setProjection() {
	w, h := v.gpu.Size()
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	v.proj.Perspective(v.cfg.FieldOfView, aspect, v.cfg.ZNear, v.cfg.ZFar)
}

// setConstants sets every uniform of the program.
// Material and light are only set here.
func (v *Viewer) setConstants() {
	g := v.gpu
	loc := &v.prog.Loc
	mat := &v.cfg.Material
	lig := &v.cfg.Light
	g.SetUniformM4(loc.Projection, v.proj.Flat())
	g.SetUniformM4(loc.ModelView, v.mv.Flat())
	g.SetUniform3f(loc.MatDiffuse, &mat.Diffuse)
	g.SetUniform3f(loc.MatAmbient, &mat.Ambient)
	g.SetUniform3f(loc.MatSpecular, &mat.Specular)
	g.SetUniform1f(loc.MatShininess, mat.Shininess)
	g.SetUniform1f(loc.MatTransparency, v.alpha)
	g.SetUniform4f(loc.LightPosition, &lig.Position)
	g.SetUniform3f(loc.LightDiffuse, &lig.Diffuse)
	g.SetUniform3f(loc.LightAmbient, &lig.Ambient)
	g.SetUniform3f(loc.LightSpecular, &lig.Specular)
}

// Reset sets the opacity (from 0 to 100) and redraws.
func (v *Viewer) Reset(alphaPercent float32) {
	if v.state == Invalid {
		return
	}
	v.alpha = alphaPercent / 100
	v.Display()
}

// Zoom moves the mesh by delta along the view axis and
// redraws.
func (v *Viewer) Zoom(delta float32) {
	if v.state == Invalid {
		return
	}
	v.cam.Distance += delta
	v.Display()
}

// Rotate rotates the mesh by dx degrees around the y axis
// and by dy degrees around the x axis, and redraws.
// Each delta is reduced modulo 360 before it is added;
// the accumulated angles are not.
func (v *Viewer) Rotate(dx, dy float32) {
	if v.state == Invalid {
		return
	}
	v.cam.Rotation[1] += float32(math.Mod(float64(dx), 360))
	v.cam.Rotation[0] += float32(math.Mod(float64(dy), 360))
	v.Display()
}

// DisplayToggle selects solid (true) or wireframe (false)
// display.
// It does not redraw; call Display afterwards.
func (v *Viewer) DisplayToggle(solid bool) {
	if v.state == Invalid {
		return
	}
	if solid {
		v.mode = Solid
	} else {
		v.mode = Wireframe
	}
}

// Resize recomputes the projection from the current size
// of the drawing surface and redraws.
func (v *Viewer) Resize() {
	if v.state != Valid {
		return
	}
	v.setProjection()
	v.Display()
}

// Display draws the mesh.
// It does nothing unless v is Valid.
// Blending is disabled after drawing; depth testing is
// left enabled.
func (v *Viewer) Display() {
	if v.state != Valid {
		return
	}
	g := v.gpu
	loc := &v.prog.Loc
	g.Clear(&driver.ClearValue{Color: v.cfg.ClearColor, Depth: 1})
	v.cam.ModelView(&v.mv)

	g.Enable(driver.CapBlend)
	g.Enable(driver.CapDepthTest)
	g.SetDepthMask(true)
	g.SetBlendFunc(driver.BSrcAlpha, driver.BInvSrcAlpha)

	g.SetUniform1f(loc.MatTransparency, v.alpha)
	g.SetUniformM4(loc.Projection, v.proj.Flat())
	g.SetUniformM4(loc.ModelView, v.mv.Flat())
	v.bufs.Draw(g, v.mode)

	g.Disable(driver.CapBlend)
}

// release destroys the program and buffers, if any.
func (v *Viewer) release() {
	if v.bufs != nil {
		v.bufs.Destroy()
		v.bufs = nil
	}
	if v.prog != nil {
		if v.gpu.CurrentProgram() == v.prog.Driver() {
			v.gpu.SetProgram(nil)
		}
		v.prog.Destroy()
		v.prog = nil
	}
}

// Close destroys every GPU object owned by v and closes
// the driver. v becomes Invalid.
// Calling Close more than once has no effect.
func (v *Viewer) Close() {
	if v.gpu != nil {
		v.release()
		v.drv.Close()
		v.gpu = nil
	}
	v.state = Invalid
}
