// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package viewer

import (
	"math"
)

// Material defines the reflectance of the mesh surface.
// Colors are linear RGB in the range [0, 1].
// Transparency is not part of the material; it is set
// through Viewer.Init and Viewer.Reset.
type Material struct {
	Ambient   [3]float32
	Diffuse   [3]float32
	Specular  [3]float32
	Shininess float32
}

// Light defines the single light source.
// Position is homogeneous: w = 1 describes a point light
// and w = 0 a light infinitely far away in the direction
// of xyz.
type Light struct {
	Position [4]float32
	Ambient  [3]float32
	Diffuse  [3]float32
	Specular [3]float32
}

// Config is used to configure a Viewer.
type Config struct {
	// Vertical field of view in radians.
	//
	// Default is math.Pi/4.
	FieldOfView float32

	// Distance to the near clipping plane.
	//
	// Default is 0.1.
	ZNear float32

	// Distance to the far clipping plane.
	//
	// Default is 100.
	ZFar float32

	// Initial rotation around the x, y and z axes,
	// in degrees.
	//
	// Default is {65, 15, 65}.
	Rotation [3]float32

	// Initial translation along the view axis.
	// Negative values move the mesh away from the
	// viewer.
	//
	// Default is -3.
	Distance float32

	// Color the surface is cleared to before drawing.
	//
	// Default is opaque black.
	ClearColor [4]float32

	// Material of the mesh.
	//
	// Default is DefaultMaterial().
	Material Material

	// Light source.
	//
	// Default is DefaultLight().
	Light Light
}

// DefaultMaterial returns the default material:
// a matte bronze with a white highlight.
func DefaultMaterial() Material {
	return Material{
		Ambient:   [3]float32{0.25, 0.20, 0.07},
		Diffuse:   [3]float32{0.75, 0.61, 0.23},
		Specular:  [3]float32{0.63, 0.56, 0.37},
		Shininess: 51.2,
	}
}

// DefaultLight returns the default light: white, placed
// above and to the right of the viewer.
func DefaultLight() Light {
	return Light{
		Position: [4]float32{1, 1, 1, 1},
		Ambient:  [3]float32{0.3, 0.3, 0.3},
		Diffuse:  [3]float32{1, 1, 1},
		Specular: [3]float32{1, 1, 1},
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FieldOfView: math.Pi / 4,
		ZNear:       0.1,
		ZFar:        100,
		Rotation:    [3]float32{65, 15, 65},
		Distance:    -3,
		ClearColor:  [4]float32{0, 0, 0, 1},
		Material:    DefaultMaterial(),
		Light:       DefaultLight(),
	}
}
