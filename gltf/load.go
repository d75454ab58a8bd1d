// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"math"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gviegas/meshview/mesh"
)

var (
	// ErrNoTriangles means that the first mesh of an asset
	// has no primitive whose mode is TRIANGLES.
	ErrNoTriangles = newErr("no triangle primitive")

	// ErrNoPosition means that a primitive has no POSITION
	// attribute.
	ErrNoPosition = newErr("primitive has no POSITION")

	// ErrUnsupported means that an asset uses a feature
	// that the loader does not implement.
	ErrUnsupported = newErr("unsupported feature")
)

// LoadFile loads the mesh stored in the glTF or GLB file
// at name.
// Buffer URIs are resolved relative to the file's
// directory.
func LoadFile(name string) (*mesh.Mesh, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, os.DirFS(filepath.Dir(name)))
}

// Load decodes a glTF (JSON) or GLB (binary) asset from r
// and returns the first triangle primitive of its first
// mesh.
// External buffers are read from dir, which may be nil if
// every buffer is embedded.
// If the primitive has no normals, they are computed from
// the faces. The returned mesh is valid.
func Load(r io.Reader, dir fs.FS) (*mesh.Mesh, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var bin []byte
	if IsGLB(bytes.NewReader(b)) {
		if b, bin, err = SplitGLB(b); err != nil {
			return nil, err
		}
	}
	gltf, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("gltf: %w", err)
	}
	if err = gltf.Check(); err != nil {
		return nil, err
	}
	l := loader{gltf: gltf, dir: dir, bin: bin}
	return l.load()
}

type loader struct {
	gltf *GLTF
	dir  fs.FS
	bin  []byte
	bufs [][]byte
}

func (l *loader) load() (*mesh.Mesh, error) {
	if len(l.gltf.Meshes) == 0 {
		return nil, ErrNoTriangles
	}
	var prim *Primitive
	for i := range l.gltf.Meshes[0].Primitives {
		if p := &l.gltf.Meshes[0].Primitives[i]; p.mode() == TRIANGLES {
			prim = p
			break
		}
	}
	if prim == nil {
		return nil, ErrNoTriangles
	}
	posIdx, ok := prim.Attributes[POSITION]
	if !ok {
		return nil, ErrNoPosition
	}
	if err := l.loadBuffers(); err != nil {
		return nil, err
	}

	m := new(mesh.Mesh)
	var err error
	if m.Vertices, err = l.vec3(&l.gltf.Accessors[posIdx]); err != nil {
		return nil, err
	}
	if prim.Indices != nil {
		idx, err := l.scalars(&l.gltf.Accessors[*prim.Indices])
		if err != nil {
			return nil, err
		}
		m.Faces = triangles(idx)
	} else {
		idx := make([]uint32, len(m.Vertices))
		for i := range idx {
			idx[i] = uint32(i)
		}
		m.Faces = triangles(idx)
	}
	if nrmIdx, ok := prim.Attributes[NORMAL]; ok {
		if m.Normals, err = l.vec3(&l.gltf.Accessors[nrmIdx]); err != nil {
			return nil, err
		}
	} else {
		// Faces must be valid before normals are computed.
		m.Normals = make([][3]float32, len(m.Vertices))
		if err := m.Validate(); err != nil {
			return nil, err
		}
		m.Normals = mesh.ComputeNormals(m.Vertices, m.Faces)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// triangles groups idx in triples.
// Trailing indices are ignored.
func triangles(idx []uint32) [][3]int {
	faces := make([][3]int, len(idx)/3)
	for i := range faces {
		faces[i] = [3]int{int(idx[3*i]), int(idx[3*i+1]), int(idx[3*i+2])}
	}
	return faces
}

// loadBuffers fetches the contents of every buffer.
func (l *loader) loadBuffers() error {
	l.bufs = make([][]byte, len(l.gltf.Buffers))
	for i, b := range l.gltf.Buffers {
		var data []byte
		var err error
		switch {
		case b.URI == "":
			if i != 0 || l.bin == nil {
				return newErr("buffer has no data")
			}
			data = l.bin
		case strings.HasPrefix(b.URI, "data:"):
			data, err = decodeDataURI(b.URI)
		default:
			data, err = l.readURI(b.URI)
		}
		if err != nil {
			return err
		}
		if int64(len(data)) < b.ByteLength {
			return newErr("buffer shorter than Buffer.ByteLength")
		}
		l.bufs[i] = data[:b.ByteLength]
	}
	return nil
}

func decodeDataURI(uri string) ([]byte, error) {
	const enc = ";base64,"
	i := strings.Index(uri, enc)
	if i < 0 {
		return nil, fmt.Errorf("%w: data URI without base64 encoding", ErrUnsupported)
	}
	data, err := base64.StdEncoding.DecodeString(uri[i+len(enc):])
	if err != nil {
		return nil, fmt.Errorf("gltf: invalid data URI: %w", err)
	}
	return data, nil
}

func (l *loader) readURI(uri string) ([]byte, error) {
	if l.dir == nil {
		return nil, newErr("external buffer without a directory: " + uri)
	}
	name, err := url.PathUnescape(uri)
	if err != nil {
		return nil, fmt.Errorf("gltf: invalid buffer URI: %w", err)
	}
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return nil, newErr("buffer URI outside of the asset directory: " + uri)
	}
	return fs.ReadFile(l.dir, name)
}

// elements returns the byte slice of every element of a,
// in order. An accessor without a buffer view yields
// zeroed elements.
func (l *loader) elements(a *Accessor) ([][]byte, error) {
	if a.Sparse != nil {
		return nil, fmt.Errorf("%w: sparse accessor", ErrUnsupported)
	}
	size := componentSize(a.ComponentType) * componentCount(a.Type)
	if a.BufferView == nil {
		elems := make([][]byte, a.Count)
		zero := make([]byte, size)
		for i := range elems {
			elems[i] = zero
		}
		return elems, nil
	}
	v := &l.gltf.BufferViews[*a.BufferView]
	data := l.bufs[v.Buffer][v.ByteOffset : v.ByteOffset+v.ByteLength]
	stride := v.ByteStride
	if stride == 0 {
		stride = size
	}
	// The last element must end within data.
	last := int64(len(data)) - size - a.ByteOffset
	if last < 0 || (a.Count-1) > last/stride {
		return nil, newErr("Accessor out of BufferView bounds")
	}
	elems := make([][]byte, a.Count)
	for i := range elems {
		off := a.ByteOffset + stride*int64(i)
		elems[i] = data[off : off+size]
	}
	return elems, nil
}

// vec3 reads a VEC3 FLOAT accessor.
func (l *loader) vec3(a *Accessor) ([][3]float32, error) {
	if a.Type != VEC3 || a.ComponentType != FLOAT {
		return nil, fmt.Errorf("%w: %s accessor of type %d", ErrUnsupported, a.Type, a.ComponentType)
	}
	if a.Count > mesh.MaxVertices {
		return nil, fmt.Errorf("%w: %d > %d", mesh.ErrTooLarge, a.Count, mesh.MaxVertices)
	}
	elems, err := l.elements(a)
	if err != nil {
		return nil, err
	}
	vs := make([][3]float32, len(elems))
	for i, e := range elems {
		for j := range vs[i] {
			vs[i][j] = math.Float32frombits(binary.LittleEndian.Uint32(e[4*j:]))
		}
	}
	return vs, nil
}

// scalars reads a SCALAR accessor of unsigned integers.
func (l *loader) scalars(a *Accessor) ([]uint32, error) {
	if a.Type != SCALAR {
		return nil, fmt.Errorf("%w: %s index accessor", ErrUnsupported, a.Type)
	}
	if a.BufferView == nil {
		return nil, fmt.Errorf("%w: index accessor without buffer view", ErrUnsupported)
	}
	var conv func([]byte) uint32
	switch a.ComponentType {
	case UNSIGNED_BYTE:
		conv = func(b []byte) uint32 { return uint32(b[0]) }
	case UNSIGNED_SHORT:
		conv = func(b []byte) uint32 { return uint32(binary.LittleEndian.Uint16(b)) }
	case UNSIGNED_INT:
		conv = binary.LittleEndian.Uint32
	default:
		return nil, fmt.Errorf("%w: index component type %d", ErrUnsupported, a.ComponentType)
	}
	elems, err := l.elements(a)
	if err != nil {
		return nil, err
	}
	s := make([]uint32, len(elems))
	for i, e := range elems {
		s[i] = conv(e)
	}
	return s, nil
}
