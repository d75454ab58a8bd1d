// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Meshview displays a triangle mesh in a window.
//
// Usage:
//
//	meshview [flags]
//
// The mesh is read from a glTF or GLB file given by -mesh;
// a cube is shown when no file is given. Dragging with the
// left button rotates the mesh and scrolling zooms.
// W toggles wireframe display, + and - change the
// transparency and Esc quits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gviegas/meshview/control"
	"github.com/gviegas/meshview/driver"
	gldrv "github.com/gviegas/meshview/driver/gl"
	"github.com/gviegas/meshview/gltf"
	"github.com/gviegas/meshview/mesh"
	"github.com/gviegas/meshview/viewer"
)

func init() {
	// GL calls must be made from the main thread.
	runtime.LockOSThread()
}

// Pixels scrolled per wheel step.
const wheelStep = 100

// Transparency change per key press, in percent.
const transparencyStep = 10

type options struct {
	mesh         string
	transparency int
	wireframe    bool
	width        int
	height       int
	watch        bool
	light        mgl32.Vec3
	background   mgl32.Vec3
}

// vec3Value is a flag.Value holding a comma-separated
// vector.
type vec3Value struct{ v *mgl32.Vec3 }

func (f vec3Value) String() string {
	if f.v == nil {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v[0], f.v[1], f.v[2])
}

func (f vec3Value) Set(s string) error {
	v, err := parseVec3(s)
	if err != nil {
		return err
	}
	*f.v = v
	return nil
}

func parseVec3(s string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return v, errors.New("want three comma-separated numbers")
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return v, err
		}
		v[i] = float32(x)
	}
	return v, nil
}

func parseFlags(args []string) (*options, error) {
	cfg := viewer.DefaultConfig()
	opts := &options{
		light:      mgl32.Vec4(cfg.Light.Position).Vec3(),
		background: mgl32.Vec4(cfg.ClearColor).Vec3(),
	}
	fs := flag.NewFlagSet("meshview", flag.ContinueOnError)
	fs.StringVar(&opts.mesh, "mesh", "", "glTF/GLB `file` to display (a cube if empty)")
	fs.IntVar(&opts.transparency, "alpha", 0, "transparency `percent`, from 0 (opaque) to 100")
	fs.BoolVar(&opts.wireframe, "wireframe", false, "start in wireframe mode")
	fs.IntVar(&opts.width, "width", 800, "window width")
	fs.IntVar(&opts.height, "height", 600, "window height")
	fs.BoolVar(&opts.watch, "watch", false, "reload the mesh file when it changes")
	fs.Var(vec3Value{&opts.light}, "light", "light `position` as x,y,z")
	fs.Var(vec3Value{&opts.background}, "bg", "background `color` as r,g,b")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case opts.transparency < 0 || opts.transparency > 100:
		return nil, fmt.Errorf("-alpha out of range: %d", opts.transparency)
	case opts.width <= 0 || opts.height <= 0:
		return nil, fmt.Errorf("invalid window size: %dx%d", opts.width, opts.height)
	case opts.watch && opts.mesh == "":
		return nil, errors.New("-watch requires -mesh")
	}
	return opts, nil
}

// config creates the viewer configuration.
func (o *options) config() *viewer.Config {
	cfg := viewer.DefaultConfig()
	cfg.Light.Position = o.light.Vec4(1)
	cfg.ClearColor = o.background.Vec4(1)
	return &cfg
}

func loadMesh(name string) (*mesh.Mesh, error) {
	if name == "" {
		return mesh.Cube(1), nil
	}
	return gltf.LoadFile(name)
}

func main() {
	logger := log.New(os.Stderr, "meshview: ", log.LstdFlags)
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Fatal(err)
	}
	if err := run(opts, logger); err != nil {
		logger.Fatal(err)
	}
}

func run(opts *options, logger *log.Logger) error {
	m, err := loadMesh(opts.mesh)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	title := "meshview"
	if opts.mesh != "" {
		title += " - " + opts.mesh
	}
	win, err := glfw.CreateWindow(opts.width, opts.height, title, nil, nil)
	if err != nil {
		return err
	}
	defer win.Destroy()
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	drv := driver.Find("gl")
	if d, ok := drv.(*gldrv.Driver); ok {
		d.SetSurface(win.GetFramebufferSize)
	}
	v := viewer.New(drv, opts.config(), logger)
	defer v.Close()
	if !v.Init(m, float32(100-opts.transparency)) {
		return v.Err()
	}

	in := control.New(v)
	solid := !opts.wireframe
	if !solid {
		in.Toggle(solid)
	}
	transparency := opts.transparency

	// The window is only redrawn after something changes.
	dirty := true
	win.SetRefreshCallback(func(*glfw.Window) { dirty = true })
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		// Scrolling up yields positive offsets.
		in.Wheel(float32(-yoff * wheelStep))
		dirty = true
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		x, y := w.GetCursorPos()
		switch action {
		case glfw.Press:
			in.Press(float32(x), float32(y))
		case glfw.Release:
			in.Release(float32(x), float32(y))
		}
		dirty = true
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if in.Holding() {
			in.Move(float32(x), float32(y))
			dirty = true
		}
	})
	win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		v.Resize()
		dirty = true
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyW:
			if action == glfw.Press {
				solid = !solid
				in.Toggle(solid)
			}
		case glfw.KeyEqual, glfw.KeyKPAdd:
			transparency = min(transparency+transparencyStep, 100)
			in.Transparency(float32(transparency))
		case glfw.KeyMinus, glfw.KeyKPSubtract:
			transparency = max(transparency-transparencyStep, 0)
			in.Transparency(float32(transparency))
		default:
			return
		}
		dirty = true
	})

	var reload <-chan struct{}
	if opts.watch {
		fw, err := newFileWatcher(opts.mesh, logger, glfw.PostEmptyEvent)
		if err != nil {
			return err
		}
		defer fw.Close()
		reload = fw.C
	}

	for !win.ShouldClose() {
		glfw.WaitEvents()
		select {
		case <-reload:
			m, err := gltf.LoadFile(opts.mesh)
			if err != nil {
				// Keep the current mesh.
				logger.Print(err)
				break
			}
			logger.Printf("reloaded %s", opts.mesh)
			if !v.Init(m, float32(100-transparency)) {
				return v.Err()
			}
			dirty = true
		default:
		}
		if dirty {
			v.Display()
			win.SwapBuffers()
			dirty = false
		}
	}
	return nil
}
