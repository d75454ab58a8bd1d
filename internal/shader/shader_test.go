// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"errors"
	"testing"

	"github.com/gviegas/meshview/driver"
	"github.com/gviegas/meshview/driver/drivertest"
)

func newGPU(t *testing.T) *drivertest.GPU {
	t.Helper()
	drv := drivertest.New(800, 600)
	if _, err := drv.Open(); err != nil {
		t.Fatalf("drivertest.Driver.Open: %v", err)
	}
	return drv.GPU()
}

func TestBuild(t *testing.T) {
	gpu := newGPU(t)
	p, err := Build(gpu)
	if err != nil {
		t.Fatalf("Build\nhave %v\nwant nil", err)
	}
	if gpu.CurrentProgram() != p.Driver() {
		t.Fatal("Build: program is not current")
	}
	if p.Loc.Position != 0 || p.Loc.Normal != 1 {
		t.Fatalf("Build: vertex inputs\nhave %d, %d\nwant 0, 1", p.Loc.Position, p.Loc.Normal)
	}
	for name, u := range map[string]driver.Uniform{
		UniProjection:      p.Loc.Projection,
		UniModelView:       p.Loc.ModelView,
		UniMatAmbient:      p.Loc.MatAmbient,
		UniMatDiffuse:      p.Loc.MatDiffuse,
		UniMatSpecular:     p.Loc.MatSpecular,
		UniMatShininess:    p.Loc.MatShininess,
		UniMatTransparency: p.Loc.MatTransparency,
		UniLightPosition:   p.Loc.LightPosition,
		UniLightAmbient:    p.Loc.LightAmbient,
		UniLightDiffuse:    p.Loc.LightDiffuse,
		UniLightSpecular:   p.Loc.LightSpecular,
	} {
		if u == driver.NoUniform {
			t.Errorf("Build: uniform %s not resolved", name)
		}
	}
	if err := p.Loc.CheckAttribs(); err != nil {
		t.Fatalf("Locations.CheckAttribs\nhave %v\nwant nil", err)
	}
	// Shader objects are released once linked.
	if s, _, _ := gpu.Live(); s != 0 {
		t.Fatalf("Build: live shaders\nhave %d\nwant 0", s)
	}
	p.Destroy()
	if _, n, _ := gpu.Live(); n != 0 {
		t.Fatalf("Program.Destroy: live programs\nhave %d\nwant 0", n)
	}
	p.Destroy()
}

func TestBuildCompileError(t *testing.T) {
	for _, stages := range [][]driver.Stage{
		{driver.SVertex},
		{driver.SFragment},
		{driver.SVertex, driver.SFragment},
	} {
		gpu := newGPU(t)
		prev, err := Build(gpu)
		if err != nil {
			t.Fatal(err)
		}
		gpu.CompileErr = make(map[driver.Stage]string)
		for _, s := range stages {
			gpu.CompileErr[s] = "ERROR: 0:1: syntax error"
		}
		p, err := Build(gpu)
		if p != nil {
			t.Fatal("Build: unexpected non-nil program")
		}
		for _, s := range stages {
			var found bool
			for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
				var ce *CompileError
				if errors.As(e, &ce) && ce.Stage == s {
					found = true
					if ce.Log != "ERROR: 0:1: syntax error" {
						t.Errorf("CompileError.Log\nhave %q\nwant %q", ce.Log, "ERROR: 0:1: syntax error")
					}
				}
			}
			if !found {
				t.Errorf("Build: missing %s CompileError in %v", s, err)
			}
		}
		if gpu.CurrentProgram() != prev.Driver() {
			t.Error("Build: current program changed after failure")
		}
		if s, _, _ := gpu.Live(); s != 0 {
			t.Errorf("Build: live shaders after failure\nhave %d\nwant 0", s)
		}
	}
}

func TestBuildLinkError(t *testing.T) {
	gpu := newGPU(t)
	gpu.LinkErr = "error: varying vNormal not written"
	p, err := Build(gpu)
	if p != nil {
		t.Fatal("Build: unexpected non-nil program")
	}
	var le *LinkError
	if !errors.As(err, &le) {
		t.Fatalf("Build\nhave %v\nwant *LinkError", err)
	}
	if le.Log != gpu.LinkErr {
		t.Fatalf("LinkError.Log\nhave %q\nwant %q", le.Log, gpu.LinkErr)
	}
	if gpu.CurrentProgram() != nil {
		t.Fatal("Build: program made current after failure")
	}
	if s, _, _ := gpu.Live(); s != 0 {
		t.Fatalf("Build: live shaders after failure\nhave %d\nwant 0", s)
	}
}

func TestBuildSourceMissingMain(t *testing.T) {
	gpu := newGPU(t)
	_, err := BuildSource(gpu, "in vec4 aPosition;", FragmentSource)
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Stage != driver.SVertex {
		t.Fatalf("BuildSource\nhave %v\nwant vertex *CompileError", err)
	}
}

func TestCheckAttribs(t *testing.T) {
	for _, name := range []string{AttrPosition, AttrNormal} {
		gpu := newGPU(t)
		gpu.Inactive = []string{name}
		p, err := Build(gpu)
		if err != nil {
			t.Fatal(err)
		}
		err = p.Loc.CheckAttribs()
		var ae *AttribError
		if !errors.As(err, &ae) || ae.Name != name {
			t.Fatalf("Locations.CheckAttribs\nhave %v\nwant *AttribError{%s}", err, name)
		}
	}
}
