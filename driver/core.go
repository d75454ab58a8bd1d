// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// GPU is the main interface to an underlying driver
// implementation.
// It is used to create GPU objects and to record state
// changes and draw commands against a single drawing
// surface. Unlike objects created from it, the GPU holds
// mutable binding state (current program, bound buffers,
// enabled capabilities). Callers must not assume that
// such state persists across calls into code that they
// do not control.
// A GPU is obtained from a call to Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// Size returns the dimensions of the drawing surface,
	// in pixels.
	Size() (width, height int)

	// NewShader compiles src for the given stage.
	// If compilation fails, the error's text is the
	// compiler's diagnostic log.
	NewShader(stage Stage, src string) (Shader, error)

	// NewProgram links a vertex and a fragment shader into
	// a new program.
	// If linking fails, the error's text is the linker's
	// diagnostic log.
	// It does not make the program current.
	NewProgram(vert, frag Shader) (Program, error)

	// NewBuffer creates a new buffer and fills it with a
	// copy of data.
	NewBuffer(usg Usage, data []byte) (Buffer, error)

	// SetProgram makes p the current program.
	// A nil p leaves no program current.
	SetProgram(p Program)

	// CurrentProgram returns the current program, or nil.
	CurrentProgram() Program

	// SetVertexBuf binds buf as the source of the vertex
	// input at location attr, which must be a location
	// obtained from the current program.
	SetVertexBuf(attr int, buf Buffer, format VertexFmt)

	// SetIndexBuf binds buf as the index buffer.
	SetIndexBuf(buf Buffer)

	// SetUniform1f sets a float uniform of the current
	// program. Calls using NoUniform are ignored.
	SetUniform1f(u Uniform, v float32)

	// SetUniform3f sets a vec3 uniform of the current
	// program. Calls using NoUniform are ignored.
	SetUniform3f(u Uniform, v *[3]float32)

	// SetUniform4f sets a vec4 uniform of the current
	// program. Calls using NoUniform are ignored.
	SetUniform4f(u Uniform, v *[4]float32)

	// SetUniformM4 sets a column-major mat4 uniform of the
	// current program. Calls using NoUniform are ignored.
	SetUniformM4(u Uniform, m *[16]float32)

	// Clear clears the color and depth aspects of the
	// drawing surface.
	Clear(cv *ClearValue)

	// Enable enables a capability.
	Enable(c Cap)

	// Disable disables a capability.
	Disable(c Cap)

	// SetDepthMask enables or disables depth writes.
	SetDepthMask(write bool)

	// SetBlendFunc sets the blend factors applied to
	// source and destination colors.
	SetBlendFunc(src, dst BlendFac)

	// DrawIndexed draws indexed primitives using the
	// bound index buffer.
	// baseIdx is given in indices, not in bytes.
	DrawIndexed(topo Topology, format IndexFmt, idxCount, baseIdx int)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may allocate external
// memory that is not managed by GC, so Destroy must be
// called explicitly to ensure such memory is deallocated.
type Destroyer interface {
	Destroy()
}

// ClearValue defines clear values for color and depth
// aspects of the drawing surface.
type ClearValue struct {
	Color [4]float32
	Depth float32
}

// Stage is a programmable stage.
type Stage int

// Stages.
const (
	SVertex Stage = 1 << iota
	SFragment
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case SVertex:
		return "vertex"
	case SFragment:
		return "fragment"
	}
	return "unknown"
}

// Shader is the interface that defines a compiled shader
// for execution in a programmable stage.
// Shaders may be destroyed once linked into a program.
type Shader interface {
	Destroyer

	// Stage returns the stage the shader was compiled for.
	Stage() Stage
}

// Uniform identifies a uniform variable of a program.
type Uniform int

// NoUniform is the location of a uniform that does not
// exist (or that was removed by the compiler).
const NoUniform Uniform = -1

// Program is the interface that defines a linked shader
// program.
type Program interface {
	Destroyer

	// AttribLoc returns the location of the named vertex
	// input, or -1 if no such input is active.
	AttribLoc(name string) int

	// UniformLoc returns the location of the named uniform,
	// or NoUniform if no such uniform is active.
	UniformLoc(name string) Uniform
}

// VertexFmt describes the format of a vertex input.
type VertexFmt int

// Vertex formats.
const (
	// Single precision floating-point, 1-4 components.
	Float32 VertexFmt = iota
	Float32x2
	Float32x3
	Float32x4
)

// Size returns the size in bytes of a single element
// of format f.
func (f VertexFmt) Size() int { return 4 * (int(f-Float32) + 1) }

// Components returns the number of components of f.
func (f VertexFmt) Components() int { return int(f-Float32) + 1 }

// Topology is the type of primitive topologies,
// which determines how vertex data is assembled.
type Topology int

// Primitive topologies.
const (
	TPoint Topology = iota
	TLine
	TLnStrip
	TTriangle
	TTriStrip
)

// IndexFmt describes the format of index buffer data.
type IndexFmt int

// Index formats.
const (
	Index16 IndexFmt = 2
	Index32 IndexFmt = 4
)

// Cap is a fixed-function capability that can be
// enabled or disabled.
type Cap int

// Capabilities.
const (
	CapBlend Cap = iota
	CapDepthTest
)

// BlendFac is the type of blend factors.
type BlendFac int

// Blend factors.
const (
	BZero BlendFac = iota
	BOne
	BSrcColor
	BInvSrcColor
	BSrcAlpha
	BInvSrcAlpha
	BDstColor
	BInvDstColor
	BDstAlpha
	BInvDstAlpha
)

// Usage is a mask indicating valid usages for a buffer.
type Usage int

// Usage flags.
const (
	UVertexData Usage = 1 << iota
	UIndexData
)

// Buffer is the interface that defines a GPU buffer.
type Buffer interface {
	Destroyer

	// Usage returns the usage the buffer was created with.
	Usage() Usage

	// Cap returns the capacity of the buffer in bytes.
	Cap() int64
}
