// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package shader builds the GPU program used to draw meshes.
package shader

import (
	"errors"
	"fmt"

	"github.com/gviegas/meshview/driver"
)

const prefix = "shader: "

// CompileError is returned when a stage fails to compile.
type CompileError struct {
	Stage driver.Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s%s stage failed to compile: %s", prefix, e.Stage, e.Log)
}

// LinkError is returned when a program fails to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string { return prefix + "program failed to link: " + e.Log }

// AttribError is returned when a vertex input that must be
// fed from a buffer is not active in the program.
type AttribError struct {
	Name string
}

func (e *AttribError) Error() string { return prefix + "vertex input not found: " + e.Name }

// Compile compiles src for the given stage.
func Compile(gpu driver.GPU, stage driver.Stage, src string) (driver.Shader, error) {
	s, err := gpu.NewShader(stage, src)
	if err != nil {
		return nil, &CompileError{Stage: stage, Log: err.Error()}
	}
	return s, nil
}

// Link links vert and frag into a new program.
// It destroys both shaders regardless of the outcome.
func Link(gpu driver.GPU, vert, frag driver.Shader) (driver.Program, error) {
	defer vert.Destroy()
	defer frag.Destroy()
	p, err := gpu.NewProgram(vert, frag)
	if err != nil {
		return nil, &LinkError{Log: err.Error()}
	}
	return p, nil
}

// Locations holds the locations of every vertex input and
// uniform of the program.
// Vertex inputs that are not active have location -1;
// uniforms that are not active are driver.NoUniform.
type Locations struct {
	Position int
	Normal   int

	Projection driver.Uniform
	ModelView  driver.Uniform

	MatAmbient      driver.Uniform
	MatDiffuse      driver.Uniform
	MatSpecular     driver.Uniform
	MatShininess    driver.Uniform
	MatTransparency driver.Uniform

	LightPosition driver.Uniform
	LightAmbient  driver.Uniform
	LightDiffuse  driver.Uniform
	LightSpecular driver.Uniform
}

func (l *Locations) resolve(p driver.Program) {
	*l = Locations{
		Position:        p.AttribLoc(AttrPosition),
		Normal:          p.AttribLoc(AttrNormal),
		Projection:      p.UniformLoc(UniProjection),
		ModelView:       p.UniformLoc(UniModelView),
		MatAmbient:      p.UniformLoc(UniMatAmbient),
		MatDiffuse:      p.UniformLoc(UniMatDiffuse),
		MatSpecular:     p.UniformLoc(UniMatSpecular),
		MatShininess:    p.UniformLoc(UniMatShininess),
		MatTransparency: p.UniformLoc(UniMatTransparency),
		LightPosition:   p.UniformLoc(UniLightPosition),
		LightAmbient:    p.UniformLoc(UniLightAmbient),
		LightDiffuse:    p.UniformLoc(UniLightDiffuse),
		LightSpecular:   p.UniformLoc(UniLightSpecular),
	}
}

// CheckAttribs checks that the vertex inputs fed from
// buffers are active.
func (l *Locations) CheckAttribs() error {
	switch {
	case l.Position == -1:
		return &AttribError{AttrPosition}
	case l.Normal == -1:
		return &AttribError{AttrNormal}
	}
	return nil
}

// Program is a linked program together with its locations.
type Program struct {
	prog driver.Program
	Loc  Locations
}

// Build compiles and links VertexSource and FragmentSource,
// resolves their locations and then makes the program
// current.
// Both stages are compiled even if the first one fails,
// so that every compilation error is reported.
// If Build fails, the current program is left unchanged.
func Build(gpu driver.GPU) (*Program, error) {
	return BuildSource(gpu, VertexSource, FragmentSource)
}

// BuildSource is like Build but uses the given sources.
func BuildSource(gpu driver.GPU, vertSrc, fragSrc string) (*Program, error) {
	vs, errV := Compile(gpu, driver.SVertex, vertSrc)
	fs, errF := Compile(gpu, driver.SFragment, fragSrc)
	if errV != nil || errF != nil {
		if vs != nil {
			vs.Destroy()
		}
		if fs != nil {
			fs.Destroy()
		}
		return nil, errors.Join(errV, errF)
	}
	p, err := Link(gpu, vs, fs)
	if err != nil {
		return nil, err
	}
	prog := &Program{prog: p}
	prog.Loc.resolve(p)
	gpu.SetProgram(p)
	return prog, nil
}

// Driver returns the underlying driver.Program.
func (p *Program) Driver() driver.Program { return p.prog }

// Destroy destroys the program.
// If it is current, the caller should make another
// program (or none) current first.
func (p *Program) Destroy() {
	if p.prog != nil {
		p.prog.Destroy()
		p.prog = nil
	}
}
