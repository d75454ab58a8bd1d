// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.mesh != "" || opts.transparency != 0 || opts.wireframe || opts.watch {
		t.Fatalf("parseFlags(nil):\nhave %+v", opts)
	}
	if opts.width != 800 || opts.height != 600 {
		t.Fatalf("parseFlags(nil): size\nhave %dx%d\nwant 800x600", opts.width, opts.height)
	}
	cfg := opts.config()
	if cfg.Light.Position != ([4]float32{1, 1, 1, 1}) || cfg.ClearColor != ([4]float32{0, 0, 0, 1}) {
		t.Fatalf("options.config:\nhave %v, %v", cfg.Light.Position, cfg.ClearColor)
	}

	opts, err = parseFlags([]string{
		"-mesh", "a.glb",
		"-alpha", "30",
		"-wireframe",
		"-width", "320",
		"-height", "240",
		"-watch",
		"-light", "0, 2,-1",
		"-bg", "0.5,0.5,0.5",
	})
	if err != nil {
		t.Fatal(err)
	}
	if opts.mesh != "a.glb" || opts.transparency != 30 || !opts.wireframe || !opts.watch ||
		opts.width != 320 || opts.height != 240 {
		t.Fatalf("parseFlags:\nhave %+v", opts)
	}
	cfg = opts.config()
	if cfg.Light.Position != ([4]float32{0, 2, -1, 1}) {
		t.Fatalf("options.config: light\nhave %v\nwant [0 2 -1 1]", cfg.Light.Position)
	}
	if cfg.ClearColor != ([4]float32{0.5, 0.5, 0.5, 1}) {
		t.Fatalf("options.config: clear color\nhave %v\nwant [0.5 0.5 0.5 1]", cfg.ClearColor)
	}

	for _, args := range [][]string{
		{"-alpha", "101"},
		{"-alpha", "-1"},
		{"-width", "0"},
		{"-watch"},
		{"-light", "1,2"},
		{"-bg", "a,b,c"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Fatalf("parseFlags(%q):\nhave nil\nwant error", args)
		}
	}
}

func TestParseVec3(t *testing.T) {
	v, err := parseVec3("1,-2.5, 3e1")
	if err != nil {
		t.Fatal(err)
	}
	if want := (mgl32.Vec3{1, -2.5, 30}); v != want {
		t.Fatalf("parseVec3:\nhave %v\nwant %v", v, want)
	}
	if s := (vec3Value{&v}).String(); s != "1,-2.5,30" {
		t.Fatalf("vec3Value.String:\nhave %q\nwant \"1,-2.5,30\"", s)
	}
}

func TestLoadMesh(t *testing.T) {
	m, err := loadMesh("")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(m.Vertices) != 24 || len(m.Faces) != 12 {
		t.Fatalf("loadMesh(\"\"):\nhave %d vertices, %d faces\nwant 24, 12", len(m.Vertices), len(m.Faces))
	}
	if _, err := loadMesh(filepath.Join(t.TempDir(), "none.gltf")); err == nil {
		t.Fatal("loadMesh: missing file\nhave nil\nwant error")
	}
}

func TestFileWatcher(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "mesh.gltf")
	if err := os.WriteFile(name, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	woken := make(chan struct{}, 1)
	wake := func() {
		select {
		case woken <- struct{}{}:
		default:
		}
	}
	fw, err := newFileWatcher(name, log.New(&logs, "", 0), wake)
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer fw.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.bin"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fw.C:
		t.Fatal("fileWatcher: notified of another file")
	case <-woken:
		t.Fatal("fileWatcher: woken for another file")
	case <-time.After(200 * time.Millisecond):
	}

	f, err := os.OpenFile(name, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(f, " ")
	f.Close()
	select {
	case <-fw.C:
	case <-time.After(2 * time.Second):
		t.Fatal("fileWatcher: timeout waiting for notification")
	}
	// The event loop blocks in glfw.WaitEvents until woken.
	select {
	case <-woken:
	case <-time.After(2 * time.Second):
		t.Fatal("fileWatcher: wake not called after notification")
	}
}

func TestFileWatcherNilWake(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "mesh.glb")
	fw, err := newFileWatcher(name, log.New(io.Discard, "", 0), nil)
	if err != nil {
		t.Skip("fsnotify not supported: ", err)
	}
	defer fw.Close()
	if err := os.WriteFile(name, []byte("glTF"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-fw.C:
	case <-time.After(2 * time.Second):
		t.Fatal("fileWatcher: timeout waiting for notification")
	}
}
