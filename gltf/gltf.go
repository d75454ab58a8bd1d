// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gltf decodes triangle meshes from glTF 2.0
// assets.
//
// Only the subset of the format needed to obtain vertex
// positions, normals and indices is modeled. Unknown
// properties are ignored.
package gltf

import (
	"encoding/json"
	"io"
)

// Root glTF object.
type GLTF struct {
	ExtensionsRequired []string     `json:"extensionsRequired,omitempty"`
	Accessors          []Accessor   `json:"accessors,omitempty"`
	Asset              Asset        `json:"asset"`
	Buffers            []Buffer     `json:"buffers,omitempty"`
	BufferViews        []BufferView `json:"bufferViews,omitempty"`
	Meshes             []Mesh       `json:"meshes,omitempty"`
}

// glTF.asset.
type Asset struct {
	Generator  string `json:"generator,omitempty"`
	Version    string `json:"version"`
	MinVersion string `json:"minVersion,omitempty"`
}

// glTF.accessors' element.
type Accessor struct {
	BufferView    *int64  `json:"bufferView,omitempty"`
	ByteOffset    int64   `json:"byteOffset,omitempty"` // Default is 0.
	ComponentType int64   `json:"componentType"`
	Normalized    bool    `json:"normalized,omitempty"`
	Count         int64   `json:"count"`
	Type          string  `json:"type"`
	Sparse        *Sparse `json:"sparse,omitempty"`
	Name          string  `json:"name,omitempty"`
}

// accessor.sparse.
// Sparse accessors are recognized but not supported.
type Sparse struct {
	Count int64 `json:"count"`
}

// accessor.*.componentType values.
const (
	BYTE           = 5120
	UNSIGNED_BYTE  = 5121
	SHORT          = 5122
	UNSIGNED_SHORT = 5123
	UNSIGNED_INT   = 5125
	FLOAT          = 5126
)

// accessor.type values.
const (
	SCALAR = "SCALAR"
	VEC2   = "VEC2"
	VEC3   = "VEC3"
	VEC4   = "VEC4"
	MAT2   = "MAT2"
	MAT3   = "MAT3"
	MAT4   = "MAT4"
)

// componentSize returns the size in bytes of a component
// of the given type, or 0 if typ is not valid.
func componentSize(typ int64) int64 {
	switch typ {
	case BYTE, UNSIGNED_BYTE:
		return 1
	case SHORT, UNSIGNED_SHORT:
		return 2
	case UNSIGNED_INT, FLOAT:
		return 4
	}
	return 0
}

// componentCount returns the number of components of
// the given accessor type, or 0 if typ is not valid.
func componentCount(typ string) int64 {
	switch typ {
	case SCALAR:
		return 1
	case VEC2:
		return 2
	case VEC3:
		return 3
	case VEC4, MAT2:
		return 4
	case MAT3:
		return 9
	case MAT4:
		return 16
	}
	return 0
}

// glTF.buffers' element.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int64  `json:"byteLength"`
	Name       string `json:"name,omitempty"`
}

// glTF.bufferViews' element.
type BufferView struct {
	Buffer     int64  `json:"buffer"`
	ByteOffset int64  `json:"byteOffset,omitempty"` // Default is 0.
	ByteLength int64  `json:"byteLength"`
	ByteStride int64  `json:"byteStride,omitempty"`
	Target     *int64 `json:"target,omitempty"`
	Name       string `json:"name,omitempty"`
}

// bufferView.target values.
const (
	ARRAY_BUFFER         = 34962
	ELEMENT_ARRAY_BUFFER = 34963
)

// glTF.meshes' element.
type Mesh struct {
	Primitives []Primitive `json:"primitives"`
	Name       string      `json:"name,omitempty"`
}

// mesh.primitives' element.
type Primitive struct {
	Attributes map[string]int64 `json:"attributes"`
	Indices    *int64           `json:"indices,omitempty"`
	Material   *int64           `json:"material,omitempty"`
	Mode       *int64           `json:"mode,omitempty"` // Default is TRIANGLES.
}

// mesh.primitive.attributes keys.
const (
	POSITION = "POSITION"
	NORMAL   = "NORMAL"
)

// mesh.primitive.mode values.
const (
	POINTS         = 0
	LINES          = 1
	LINE_LOOP      = 2
	LINE_STRIP     = 3
	TRIANGLES      = 4
	TRIANGLE_STRIP = 5
	TRIANGLE_FAN   = 6
)

// mode returns p's topology.
func (p *Primitive) mode() int64 {
	if p.Mode == nil {
		return TRIANGLES
	}
	return *p.Mode
}

// Encode encodes gltf into w.
func Encode(w io.Writer, gltf *GLTF) error {
	return json.NewEncoder(w).Encode(gltf)
}

// Decode decodes r into a new GLTF instance.
func Decode(r io.Reader) (*GLTF, error) {
	var gltf GLTF
	if err := json.NewDecoder(r).Decode(&gltf); err != nil {
		return nil, err
	}
	return &gltf, nil
}
