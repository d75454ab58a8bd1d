// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package driver defines the GPU interface through which
// the viewer draws, along with a registry of backends
// that implement it.
package driver

import (
	"errors"
	"log"
	"sync"
)

// Driver is a GPU backend that can be opened and closed.
type Driver interface {
	// Open binds the driver to the rendering context that
	// is current on the calling thread and returns its GPU.
	// Once Open succeeds, later calls return the same GPU
	// until Close is called.
	Open() (GPU, error)

	// Name identifies the backend in the registry.
	// It can be called whether or not the driver is open.
	Name() string

	// Close releases the GPU returned by Open.
	// It is a no-op on a driver that is not open.
	Close()
}

// ErrNotInstalled means that the system lacks a library
// the backend needs, such as the GL loader.
var ErrNotInstalled = errors.New("driver: missing required library")

// ErrNoContext means that no rendering context is
// current on the calling thread.
var ErrNoContext = errors.New("driver: no current context")

// ErrNoDeviceMemory means that a GPU allocation failed.
var ErrNoDeviceMemory = errors.New("driver: out of device memory")

// ErrFatal means that the GPU rejected an operation in a
// way the backend cannot recover from. The viewer treats
// it as terminal.
var ErrFatal = errors.New("driver: fatal error")

// registry holds backends in registration order.
var registry struct {
	sync.Mutex
	drivers []Driver
}

// Drivers returns a copy of the registered backends, in
// the order they were first registered.
// A backend is only listed if its package was imported.
func Drivers() []Driver {
	registry.Lock()
	defer registry.Unlock()
	return append([]Driver(nil), registry.drivers...)
}

// Register adds drv to the registry, replacing a backend
// registered under the same name. Backend packages call
// it from init.
func Register(drv Driver) {
	registry.Lock()
	defer registry.Unlock()
	name := drv.Name()
	for i, d := range registry.drivers {
		if d.Name() == name {
			registry.drivers[i] = drv
			log.Printf("[!] driver %q replaced", name)
			return
		}
	}
	registry.drivers = append(registry.drivers, drv)
	log.Printf("driver %q registered", name)
}

// Find returns the backend registered as name, or nil.
func Find(name string) Driver {
	registry.Lock()
	defer registry.Unlock()
	for _, d := range registry.drivers {
		if d.Name() == name {
			return d
		}
	}
	return nil
}
