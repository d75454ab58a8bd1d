// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package control translates pointer and widget events
// into viewer commands.
package control

// Target is the set of commands an Input issues.
// *viewer.Viewer implements it.
type Target interface {
	Zoom(delta float32)
	Rotate(dx, dy float32)
	Reset(alphaPercent float32)
	DisplayToggle(solid bool)
	Display()
}

// DefaultWheelScale is the default factor applied to
// wheel deltas. Scrolling down moves the mesh away.
const DefaultWheelScale = -0.001

// ClampZoom restricts a zoom step to [-1, 1].
func ClampZoom(x float32) float32 { return min(max(-1, x), 1) }

// Input tracks the pointer state of a drawing surface and
// forwards the resulting commands to a Target.
type Input struct {
	t Target

	// WheelScale multiplies wheel deltas before they
	// are clamped by ClampZoom.
	WheelScale float32

	holding      bool
	lastX, lastY float32
}

// New creates a new Input that controls t.
func New(t Target) *Input { return &Input{t: t, WheelScale: DefaultWheelScale} }

// Wheel handles a vertical scroll of deltaY.
func (in *Input) Wheel(deltaY float32) {
	in.t.Zoom(ClampZoom(deltaY * in.WheelScale))
	in.t.Display()
}

// Press handles a button press at (x, y).
// It starts a drag.
func (in *Input) Press(x, y float32) {
	in.holding = true
	in.lastX, in.lastY = x, y
}

// Move handles a pointer motion to (x, y).
// While dragging, the mesh is rotated by the distance
// travelled since the previous event, in pixels.
func (in *Input) Move(x, y float32) {
	if !in.holding {
		return
	}
	in.t.Rotate(x-in.lastX, y-in.lastY)
	in.lastX, in.lastY = x, y
}

// Release handles a button release at (x, y).
// It applies the final motion and ends the drag.
func (in *Input) Release(x, y float32) {
	if !in.holding {
		return
	}
	in.Move(x, y)
	in.holding = false
}

// Holding returns whether a drag is in progress.
func (in *Input) Holding() bool { return in.holding }

// Transparency handles a change of the transparency
// slider, from 0 (opaque) to 100 (transparent).
func (in *Input) Transparency(percent float32) { in.t.Reset(100 - percent) }

// Toggle handles a change of the display switch.
func (in *Input) Toggle(solid bool) {
	in.t.DisplayToggle(solid)
	in.t.Display()
}
