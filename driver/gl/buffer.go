// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/meshview/driver"
)

// buffer implements driver.Buffer.
type buffer struct {
	id  uint32
	usg driver.Usage
	cap int64
}

// NewBuffer creates a new buffer holding a copy of data.
// It does not change any buffer binding that affects
// drawing.
func (d *Driver) NewBuffer(usg driver.Usage, data []byte) (driver.Buffer, error) {
	if len(data) == 0 {
		return nil, driver.ErrFatal
	}
	// Errors left by earlier calls must not be blamed
	// on the upload.
	drainErrors(gl.GetError)
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, id)
	gl.BufferData(gl.COPY_WRITE_BUFFER, len(data), unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
	if err := drainErrors(gl.GetError); err != nil {
		gl.DeleteBuffers(1, &id)
		return nil, err
	}
	return &buffer{id: id, usg: usg, cap: int64(len(data))}, nil
}

// maxErrors bounds the number of error flags read by
// drainErrors. A lost context may report errors forever.
const maxErrors = 16

// drainErrors reads error flags from get until it reports
// NO_ERROR. It returns driver.ErrNoDeviceMemory if any
// flag was OUT_OF_MEMORY, driver.ErrFatal if any other
// flag was set, and nil otherwise.
func drainErrors(get func() uint32) (err error) {
	for range maxErrors {
		switch get() {
		case gl.NO_ERROR:
			return
		case gl.OUT_OF_MEMORY:
			err = driver.ErrNoDeviceMemory
		default:
			if err == nil {
				err = driver.ErrFatal
			}
		}
	}
	return driver.ErrFatal
}

// Destroy destroys the buffer.
func (b *buffer) Destroy() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

// Usage returns the buffer's usage.
func (b *buffer) Usage() driver.Usage { return b.usg }

// Cap returns the buffer's capacity.
func (b *buffer) Cap() int64 { return b.cap }

// SetVertexBuf feeds the vertex input at attr from buf.
// Elements are tightly packed.
func (d *Driver) SetVertexBuf(attr int, buf driver.Buffer, format driver.VertexFmt) {
	if attr < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buf.(*buffer).id)
	gl.EnableVertexAttribArray(uint32(attr))
	gl.VertexAttribPointerWithOffset(uint32(attr), int32(format.Components()), gl.FLOAT, false, 0, 0)
}

// SetIndexBuf binds buf as the index buffer.
func (d *Driver) SetIndexBuf(buf driver.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.(*buffer).id)
}
