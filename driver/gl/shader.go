// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"errors"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/meshview/driver"
)

// shader implements driver.Shader.
type shader struct {
	id    uint32
	stage driver.Stage
}

// infoLog retrieves an info log of n bytes
// (terminator included).
func infoLog(n int32, get func(bufSize int32, length *int32, log *uint8)) string {
	if n <= 1 {
		return "unknown error"
	}
	b := make([]byte, n)
	get(n, nil, &b[0])
	return strings.TrimRight(string(b), "\x00\n")
}

// NewShader compiles src.
// The error text is the compiler's info log.
func (d *Driver) NewShader(stage driver.Stage, src string) (driver.Shader, error) {
	id := gl.CreateShader(convStage(stage))
	if id == 0 {
		return nil, driver.ErrFatal
	}
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, csrc, nil)
	free()
	gl.CompileShader(id)
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		log := infoLog(n, func(sz int32, ln *int32, p *uint8) { gl.GetShaderInfoLog(id, sz, ln, p) })
		gl.DeleteShader(id)
		return nil, errors.New(log)
	}
	return &shader{id: id, stage: stage}, nil
}

// Destroy destroys the shader.
func (s *shader) Destroy() {
	if s.id != 0 {
		gl.DeleteShader(s.id)
		s.id = 0
	}
}

// Stage returns the shader stage.
func (s *shader) Stage() driver.Stage { return s.stage }

// program implements driver.Program.
type program struct {
	id uint32
}

// NewProgram links vert and frag.
// The error text is the linker's info log.
func (d *Driver) NewProgram(vert, frag driver.Shader) (driver.Program, error) {
	vs := vert.(*shader)
	fs := frag.(*shader)
	id := gl.CreateProgram()
	if id == 0 {
		return nil, driver.ErrFatal
	}
	gl.AttachShader(id, vs.id)
	gl.AttachShader(id, fs.id)
	gl.LinkProgram(id)
	gl.DetachShader(id, vs.id)
	gl.DetachShader(id, fs.id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := infoLog(n, func(sz int32, ln *int32, p *uint8) { gl.GetProgramInfoLog(id, sz, ln, p) })
		gl.DeleteProgram(id)
		return nil, errors.New(log)
	}
	return &program{id: id}, nil
}

// Destroy destroys the program.
func (p *program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// AttribLoc returns the location of a vertex input.
func (p *program) AttribLoc(name string) int {
	return int(gl.GetAttribLocation(p.id, gl.Str(name+"\x00")))
}

// UniformLoc returns the location of a uniform.
func (p *program) UniformLoc(name string) driver.Uniform {
	return driver.Uniform(gl.GetUniformLocation(p.id, gl.Str(name+"\x00")))
}

// SetProgram makes p the current program.
func (d *Driver) SetProgram(p driver.Program) {
	if p == nil {
		d.prog = nil
		gl.UseProgram(0)
		return
	}
	d.prog = p.(*program)
	gl.UseProgram(d.prog.id)
}

// CurrentProgram returns the current program.
func (d *Driver) CurrentProgram() driver.Program {
	if d.prog == nil {
		return nil
	}
	return d.prog
}

// SetUniform1f sets a float uniform of the current program.
func (d *Driver) SetUniform1f(u driver.Uniform, v float32) { gl.Uniform1f(int32(u), v) }

// SetUniform3f sets a vec3 uniform of the current program.
func (d *Driver) SetUniform3f(u driver.Uniform, v *[3]float32) { gl.Uniform3fv(int32(u), 1, &v[0]) }

// SetUniform4f sets a vec4 uniform of the current program.
func (d *Driver) SetUniform4f(u driver.Uniform, v *[4]float32) { gl.Uniform4fv(int32(u), 1, &v[0]) }

// SetUniformM4 sets a mat4 uniform of the current program.
// m is in column-major order.
func (d *Driver) SetUniformM4(u driver.Uniform, m *[16]float32) {
	gl.UniformMatrix4fv(int32(u), 1, false, &m[0])
}
