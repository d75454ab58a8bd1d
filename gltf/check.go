// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"strings"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

// Check checks that f is valid glTF.
// Only the properties modeled by GLTF are checked.
func (f *GLTF) Check() error {
	if !strings.HasPrefix(f.Asset.Version, "2.") {
		return newErr("unsupported GLTF.Asset.Version: " + f.Asset.Version)
	}
	if len(f.ExtensionsRequired) != 0 {
		return newErr("unsupported GLTF.ExtensionsRequired: " + strings.Join(f.ExtensionsRequired, ", "))
	}
	for _, b := range f.Buffers {
		if b.ByteLength < 1 {
			return newErr("invalid Buffer.ByteLength value")
		}
	}
	for _, v := range f.BufferViews {
		if err := v.Check(f); err != nil {
			return err
		}
	}
	for _, a := range f.Accessors {
		if err := a.Check(f); err != nil {
			return err
		}
	}
	for _, m := range f.Meshes {
		if len(m.Primitives) == 0 {
			return newErr("invalid Mesh.Primitives length")
		}
		for _, p := range m.Primitives {
			if err := p.Check(f); err != nil {
				return err
			}
		}
	}
	return nil
}

// Check checks that v is valid glTF.bufferViews' element.
func (v *BufferView) Check(gltf *GLTF) error {
	switch {
	case v.Buffer < 0 || v.Buffer >= int64(len(gltf.Buffers)):
		return newErr("invalid BufferView.Buffer index")
	case v.ByteOffset < 0:
		return newErr("invalid BufferView.ByteOffset value")
	case v.ByteLength < 1:
		return newErr("invalid BufferView.ByteLength value")
	case v.ByteOffset+v.ByteLength > gltf.Buffers[v.Buffer].ByteLength:
		return newErr("BufferView out of Buffer bounds")
	case v.ByteStride != 0 && (v.ByteStride < 4 || v.ByteStride > 252 || v.ByteStride%4 != 0):
		return newErr("invalid BufferView.ByteStride value")
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if a.BufferView != nil {
		idx := *a.BufferView
		if idx < 0 || idx >= int64(len(gltf.BufferViews)) {
			return newErr("invalid Accessor.BufferView index")
		}
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.ByteOffset value")
	}
	if componentSize(a.ComponentType) == 0 {
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	if componentCount(a.Type) == 0 {
		return newErr("invalid Accessor.Type value")
	}
	if s := a.Sparse; s != nil && (s.Count < 1 || s.Count > a.Count) {
		return newErr("invalid Accessor.Sparse.Count value")
	}
	return nil
}

// Check checks that p is valid glTF.meshes.primitives'
// element.
func (p *Primitive) Check(gltf *GLTF) error {
	n := int64(len(gltf.Accessors))
	for _, idx := range p.Attributes {
		if idx < 0 || idx >= n {
			return newErr("invalid Primitive.Attributes index")
		}
	}
	if p.Indices != nil && (*p.Indices < 0 || *p.Indices >= n) {
		return newErr("invalid Primitive.Indices index")
	}
	if m := p.mode(); m < POINTS || m > TRIANGLE_FAN {
		return newErr("invalid Primitive.Mode value")
	}
	return nil
}
