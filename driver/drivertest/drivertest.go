// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package drivertest provides a driver.Driver that records
// every call made against its GPU, for use in tests.
//
// The GPU performs no rendering. Shader "compilation" only
// scans the source for vertex input and uniform declarations,
// which are assigned locations in declaration order. Failures
// can be injected through the exported fields of GPU.
package drivertest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"slices"

	"github.com/gviegas/meshview/driver"
)

// Name is the name of the driver.
const Name = "test"

// Register registers a 640x480 Driver with the driver
// package.
func Register() { driver.Register(New(640, 480)) }

// Driver implements driver.Driver.
type Driver struct {
	width, height int
	gpu           *GPU

	// OpenErr, if not nil, is returned by Open.
	OpenErr error
}

// New creates a new Driver whose drawing surface has the
// given dimensions.
func New(width, height int) *Driver { return &Driver{width: width, height: height} }

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	if d.gpu == nil {
		d.gpu = &GPU{
			drv:  d,
			caps: make(map[driver.Cap]bool),
			vbuf: make(map[int]*Buffer),
		}
	}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return Name }

// Close implements driver.Driver.
func (d *Driver) Close() {
	if d.gpu != nil {
		d.gpu.closed = true
		d.gpu = nil
	}
}

// GPU returns the GPU created by Open, or nil if the
// driver is not open.
func (d *Driver) GPU() *GPU { return d.gpu }

// Resize changes the dimensions of the drawing surface.
func (d *Driver) Resize(width, height int) { d.width, d.height = width, height }

// Draw records a DrawIndexed call.
type Draw struct {
	Topology driver.Topology
	Format   driver.IndexFmt
	Count    int
	Base     int
	Index    *Buffer
	Program  *Program
	Blend    bool
	Depth    bool
}

// GPU implements driver.GPU.
type GPU struct {
	drv    *Driver
	closed bool

	prog  *Program
	ibuf  *Buffer
	vbuf  map[int]*Buffer
	caps  map[driver.Cap]bool
	dmask bool
	blend [2]driver.BlendFac

	// CompileErr, if it contains a stage, makes NewShader
	// fail for that stage with the given log.
	CompileErr map[driver.Stage]string

	// LinkErr, if not empty, makes NewProgram fail with
	// the given log.
	LinkErr string

	// Inactive names vertex inputs and uniforms that are
	// reported as missing from linked programs.
	Inactive []string

	// BufferErr, if not nil, is returned by NewBuffer once
	// BufferErrAt buffers have been created.
	BufferErr   error
	BufferErrAt int

	// Shaders, Programs and Buffers list every object
	// created, in creation order.
	Shaders  []*Shader
	Programs []*Program
	Buffers  []*Buffer

	// Clears lists every ClearValue passed to Clear.
	Clears []driver.ClearValue

	// Draws lists every draw recorded.
	Draws []Draw

	// Ops lists the name of every state-changing call,
	// in call order.
	Ops []string

	// Misuse lists calls made with invalid arguments,
	// such as destroyed objects.
	Misuse []string
}

func (g *GPU) op(format string, args ...any) { g.Ops = append(g.Ops, fmt.Sprintf(format, args...)) }

func (g *GPU) misuse(format string, args ...any) {
	g.Misuse = append(g.Misuse, fmt.Sprintf(format, args...))
}

// Driver implements driver.GPU.
func (g *GPU) Driver() driver.Driver { return g.drv }

// Size implements driver.GPU.
func (g *GPU) Size() (width, height int) { return g.drv.width, g.drv.height }

var (
	reDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(in|attribute|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*;`)
	reMain = regexp.MustCompile(`void\s+main\s*\(`)
)

// NewShader implements driver.GPU.
func (g *GPU) NewShader(stage driver.Stage, src string) (driver.Shader, error) {
	if g.closed {
		return nil, driver.ErrFatal
	}
	if log, ok := g.CompileErr[stage]; ok {
		return nil, errors.New(log)
	}
	if !reMain.MatchString(src) {
		return nil, fmt.Errorf("ERROR: 0:1: '%s' : missing main function", stage)
	}
	s := &Shader{stage: stage, Source: src}
	for _, m := range reDecl.FindAllStringSubmatch(src, -1) {
		switch m[1] {
		case "uniform":
			s.uniforms = append(s.uniforms, m[2])
		default:
			if stage == driver.SVertex {
				s.inputs = append(s.inputs, m[2])
			}
		}
	}
	g.Shaders = append(g.Shaders, s)
	g.op("NewShader(%s)", stage)
	return s, nil
}

// NewProgram implements driver.GPU.
func (g *GPU) NewProgram(vert, frag driver.Shader) (driver.Program, error) {
	vs, ok1 := vert.(*Shader)
	fs, ok2 := frag.(*Shader)
	switch {
	case !ok1 || !ok2:
		g.misuse("NewProgram: foreign shader")
		return nil, errors.New("invalid shader")
	case vs.Destroyed || fs.Destroyed:
		g.misuse("NewProgram: destroyed shader")
		return nil, errors.New("invalid shader")
	case vs.stage != driver.SVertex || fs.stage != driver.SFragment:
		return nil, errors.New("ERROR: shader stage mismatch")
	case g.LinkErr != "":
		return nil, errors.New(g.LinkErr)
	}
	p := &Program{values: make(map[driver.Uniform]any)}
	for _, n := range vs.inputs {
		if !slices.Contains(g.Inactive, n) {
			p.inputs = append(p.inputs, n)
		}
	}
	for _, n := range append(slices.Clone(vs.uniforms), fs.uniforms...) {
		if !slices.Contains(g.Inactive, n) && !slices.Contains(p.uniforms, n) {
			p.uniforms = append(p.uniforms, n)
		}
	}
	g.Programs = append(g.Programs, p)
	g.op("NewProgram")
	return p, nil
}

// NewBuffer implements driver.GPU.
func (g *GPU) NewBuffer(usg driver.Usage, data []byte) (driver.Buffer, error) {
	if g.BufferErr != nil && len(g.Buffers) >= g.BufferErrAt {
		return nil, g.BufferErr
	}
	b := &Buffer{usage: usg, Data: slices.Clone(data)}
	g.Buffers = append(g.Buffers, b)
	g.op("NewBuffer")
	return b, nil
}

// SetProgram implements driver.GPU.
func (g *GPU) SetProgram(p driver.Program) {
	if p == nil {
		g.prog = nil
		g.op("SetProgram(nil)")
		return
	}
	prog := p.(*Program)
	if prog.Destroyed {
		g.misuse("SetProgram: destroyed program")
	}
	g.prog = prog
	g.op("SetProgram")
}

// CurrentProgram implements driver.GPU.
func (g *GPU) CurrentProgram() driver.Program {
	if g.prog == nil {
		return nil
	}
	return g.prog
}

// Current returns the current program, or nil.
func (g *GPU) Current() *Program { return g.prog }

// SetVertexBuf implements driver.GPU.
func (g *GPU) SetVertexBuf(attr int, buf driver.Buffer, format driver.VertexFmt) {
	b := buf.(*Buffer)
	switch {
	case attr < 0:
		g.misuse("SetVertexBuf: invalid location %d", attr)
	case b.Destroyed:
		g.misuse("SetVertexBuf: destroyed buffer")
	case b.usage&driver.UVertexData == 0:
		g.misuse("SetVertexBuf: not a vertex buffer")
	}
	b.Format = format
	g.vbuf[attr] = b
	g.op("SetVertexBuf(%d)", attr)
}

// VertexBuf returns the buffer bound to the vertex input
// at location attr, or nil.
func (g *GPU) VertexBuf(attr int) *Buffer { return g.vbuf[attr] }

// SetIndexBuf implements driver.GPU.
func (g *GPU) SetIndexBuf(buf driver.Buffer) {
	b := buf.(*Buffer)
	if b.Destroyed {
		g.misuse("SetIndexBuf: destroyed buffer")
	}
	if b.usage&driver.UIndexData == 0 {
		g.misuse("SetIndexBuf: not an index buffer")
	}
	g.ibuf = b
	g.op("SetIndexBuf")
}

func (g *GPU) setUniform(u driver.Uniform, v any) {
	if u == driver.NoUniform {
		return
	}
	if g.prog == nil {
		g.misuse("SetUniform: no current program")
		return
	}
	if int(u) < 0 || int(u) >= len(g.prog.uniforms) {
		g.misuse("SetUniform: invalid location %d", u)
		return
	}
	g.prog.values[u] = v
	g.op("SetUniform(%s)", g.prog.uniforms[u])
}

// SetUniform1f implements driver.GPU.
func (g *GPU) SetUniform1f(u driver.Uniform, v float32) { g.setUniform(u, v) }

// SetUniform3f implements driver.GPU.
func (g *GPU) SetUniform3f(u driver.Uniform, v *[3]float32) { g.setUniform(u, *v) }

// SetUniform4f implements driver.GPU.
func (g *GPU) SetUniform4f(u driver.Uniform, v *[4]float32) { g.setUniform(u, *v) }

// SetUniformM4 implements driver.GPU.
func (g *GPU) SetUniformM4(u driver.Uniform, m *[16]float32) { g.setUniform(u, *m) }

// Clear implements driver.GPU.
func (g *GPU) Clear(cv *driver.ClearValue) {
	g.Clears = append(g.Clears, *cv)
	g.op("Clear")
}

func capName(c driver.Cap) string {
	switch c {
	case driver.CapBlend:
		return "blend"
	case driver.CapDepthTest:
		return "depth"
	}
	return "unknown"
}

// Enable implements driver.GPU.
func (g *GPU) Enable(c driver.Cap) {
	g.caps[c] = true
	g.op("Enable(%s)", capName(c))
}

// Disable implements driver.GPU.
func (g *GPU) Disable(c driver.Cap) {
	g.caps[c] = false
	g.op("Disable(%s)", capName(c))
}

// Enabled returns whether c is enabled.
func (g *GPU) Enabled(c driver.Cap) bool { return g.caps[c] }

// SetDepthMask implements driver.GPU.
func (g *GPU) SetDepthMask(write bool) {
	g.dmask = write
	g.op("SetDepthMask(%t)", write)
}

// DepthMask returns whether depth writes are enabled.
func (g *GPU) DepthMask() bool { return g.dmask }

// SetBlendFunc implements driver.GPU.
func (g *GPU) SetBlendFunc(src, dst driver.BlendFac) {
	g.blend = [2]driver.BlendFac{src, dst}
	g.op("SetBlendFunc")
}

// BlendFunc returns the current blend factors.
func (g *GPU) BlendFunc() (src, dst driver.BlendFac) { return g.blend[0], g.blend[1] }

// DrawIndexed implements driver.GPU.
func (g *GPU) DrawIndexed(topo driver.Topology, format driver.IndexFmt, idxCount, baseIdx int) {
	switch {
	case g.prog == nil:
		g.misuse("DrawIndexed: no current program")
	case g.prog.Destroyed:
		g.misuse("DrawIndexed: destroyed program")
	case g.ibuf == nil:
		g.misuse("DrawIndexed: no index buffer")
	case g.ibuf.Destroyed:
		g.misuse("DrawIndexed: destroyed index buffer")
	case int64(baseIdx+idxCount)*int64(format) > g.ibuf.Cap():
		g.misuse("DrawIndexed: index range out of bounds")
	}
	for attr, b := range g.vbuf {
		if b.Destroyed {
			g.misuse("DrawIndexed: destroyed vertex buffer at %d", attr)
		}
	}
	g.Draws = append(g.Draws, Draw{
		Topology: topo,
		Format:   format,
		Count:    idxCount,
		Base:     baseIdx,
		Index:    g.ibuf,
		Program:  g.prog,
		Blend:    g.caps[driver.CapBlend],
		Depth:    g.caps[driver.CapDepthTest],
	})
	g.op("DrawIndexed")
}

// Shader implements driver.Shader.
type Shader struct {
	stage    driver.Stage
	inputs   []string
	uniforms []string

	Source    string
	Destroyed bool
}

// Destroy implements driver.Destroyer.
func (s *Shader) Destroy() { s.Destroyed = true }

// Stage implements driver.Shader.
func (s *Shader) Stage() driver.Stage { return s.stage }

// Program implements driver.Program.
type Program struct {
	inputs   []string
	uniforms []string
	values   map[driver.Uniform]any

	Destroyed bool
}

// Destroy implements driver.Destroyer.
func (p *Program) Destroy() { p.Destroyed = true }

// AttribLoc implements driver.Program.
func (p *Program) AttribLoc(name string) int { return slices.Index(p.inputs, name) }

// UniformLoc implements driver.Program.
func (p *Program) UniformLoc(name string) driver.Uniform {
	return driver.Uniform(slices.Index(p.uniforms, name))
}

// Value returns the last value set for the named uniform,
// or nil if it was never set.
// The dynamic type is float32, [3]float32, [4]float32 or
// [16]float32.
func (p *Program) Value(name string) any {
	i := slices.Index(p.uniforms, name)
	if i < 0 {
		return nil
	}
	return p.values[driver.Uniform(i)]
}

// Buffer implements driver.Buffer.
type Buffer struct {
	usage driver.Usage

	Data      []byte
	Format    driver.VertexFmt
	Destroyed bool
}

// Destroy implements driver.Destroyer.
func (b *Buffer) Destroy() { b.Destroyed = true }

// Usage implements driver.Buffer.
func (b *Buffer) Usage() driver.Usage { return b.usage }

// Cap implements driver.Buffer.
func (b *Buffer) Cap() int64 { return int64(len(b.Data)) }

// Float32s decodes the contents of b as float32 values.
func (b *Buffer) Float32s() []float32 {
	s := make([]float32, len(b.Data)/4)
	if err := binary.Read(bytes.NewReader(b.Data), binary.NativeEndian, s); err != nil {
		panic(err)
	}
	return s
}

// Uint16s decodes the contents of b as uint16 values.
func (b *Buffer) Uint16s() []uint16 {
	s := make([]uint16, len(b.Data)/2)
	if err := binary.Read(bytes.NewReader(b.Data), binary.NativeEndian, s); err != nil {
		panic(err)
	}
	return s
}

// Live returns the number of objects of each kind that have
// not been destroyed.
func (g *GPU) Live() (shaders, programs, buffers int) {
	for _, s := range g.Shaders {
		if !s.Destroyed {
			shaders++
		}
	}
	for _, p := range g.Programs {
		if !p.Destroyed {
			programs++
		}
	}
	for _, b := range g.Buffers {
		if !b.Destroyed {
			buffers++
		}
	}
	return
}
