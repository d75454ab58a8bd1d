// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"encoding/binary"
	"errors"
	"io"
)

// GLB header.
type glbHeader [3]uint32

// Indices in glbHeader.
const (
	headerMagic   = 0
	headerVersion = 1
	headerLength  = 2
)

// Word indices in a GLB chunk header.
const (
	chunkLength = 0
	chunkType   = 1
	// Then payload.
)

const (
	// glbHeader[headerMagic].
	magic = 0x46546c67

	// Chunk types.
	typeJSON = 0x4e4f534a
	typeBIN  = 0x004e4942

	headerSize = 12
	chunkSize  = 8
)

// IsGLB returns whether r refers to a binary glTF (version 2).
// It assumes that r was positioned accordingly.
func IsGLB(r io.Reader) bool {
	var h glbHeader
	err := binary.Read(r, binary.LittleEndian, h[:])
	switch {
	case err != nil, h[headerMagic] != magic, h[headerVersion] != 2:
		return false
	default:
		return true
	}
}

// SplitGLB splits a GLB blob into its JSON and BIN chunks.
// bin is nil if the blob has no BIN chunk.
// Chunks of unknown type are skipped.
func SplitGLB(b []byte) (json, bin []byte, err error) {
	if len(b) < headerSize || binary.LittleEndian.Uint32(b) != magic {
		err = errors.New("gltf: not a GLB blob")
		return
	}
	if n := binary.LittleEndian.Uint32(b[4*headerLength:]); int64(n) < int64(len(b)) {
		b = b[:n]
	}
	for off := headerSize; off < len(b); {
		if len(b)-off < chunkSize {
			err = errors.New("gltf: truncated GLB chunk")
			return
		}
		n := int64(binary.LittleEndian.Uint32(b[off+4*chunkLength:]))
		typ := binary.LittleEndian.Uint32(b[off+4*chunkType:])
		off += chunkSize
		if n > int64(len(b)-off) {
			err = errors.New("gltf: truncated GLB chunk")
			return
		}
		data := b[off : off+int(n)]
		switch {
		case typ == typeJSON && json == nil:
			json = data
		case typ == typeBIN && json != nil && bin == nil:
			bin = data
		case json == nil:
			err = errors.New("gltf: invalid GLB chunk")
			return
		}
		off += int(n)
	}
	if json == nil {
		err = errors.New("gltf: invalid GLB chunk")
	}
	return
}
