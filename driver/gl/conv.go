// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/meshview/driver"
)

// convStage converts a driver.Stage to a shader type.
func convStage(stg driver.Stage) uint32 {
	switch stg {
	case driver.SVertex:
		return gl.VERTEX_SHADER
	case driver.SFragment:
		return gl.FRAGMENT_SHADER
	}

	// Expected to be unreachable.
	return 0
}

// convTopology converts a driver.Topology to a
// primitive mode.
func convTopology(top driver.Topology) uint32 {
	switch top {
	case driver.TPoint:
		return gl.POINTS
	case driver.TLine:
		return gl.LINES
	case driver.TLnStrip:
		return gl.LINE_STRIP
	case driver.TTriangle:
		return gl.TRIANGLES
	case driver.TTriStrip:
		return gl.TRIANGLE_STRIP
	}

	// Expected to be unreachable.
	return ^uint32(0)
}

// convIndexFmt converts a driver.IndexFmt to a data type.
func convIndexFmt(f driver.IndexFmt) uint32 {
	switch f {
	case driver.Index16:
		return gl.UNSIGNED_SHORT
	case driver.Index32:
		return gl.UNSIGNED_INT
	}

	// Expected to be unreachable.
	return ^uint32(0)
}

// convCap converts a driver.Cap to a capability.
func convCap(c driver.Cap) uint32 {
	switch c {
	case driver.CapBlend:
		return gl.BLEND
	case driver.CapDepthTest:
		return gl.DEPTH_TEST
	}

	// Expected to be unreachable.
	return ^uint32(0)
}

// convBlendFac converts a driver.BlendFac to a blend
// factor.
func convBlendFac(f driver.BlendFac) uint32 {
	switch f {
	case driver.BZero:
		return gl.ZERO
	case driver.BOne:
		return gl.ONE
	case driver.BSrcColor:
		return gl.SRC_COLOR
	case driver.BInvSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case driver.BSrcAlpha:
		return gl.SRC_ALPHA
	case driver.BInvSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case driver.BDstColor:
		return gl.DST_COLOR
	case driver.BInvDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case driver.BDstAlpha:
		return gl.DST_ALPHA
	case driver.BInvDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	}

	// Expected to be unreachable.
	return ^uint32(0)
}
