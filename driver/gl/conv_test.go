// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package gl

import (
	"testing"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gviegas/meshview/driver"
)

func TestTopology(t *testing.T) {
	for _, x := range [...]struct {
		top  driver.Topology
		want uint32
	}{
		{driver.TPoint, gl.POINTS},
		{driver.TLine, gl.LINES},
		{driver.TLnStrip, gl.LINE_STRIP},
		{driver.TTriangle, gl.TRIANGLES},
		{driver.TTriStrip, gl.TRIANGLE_STRIP},
	} {
		if have := convTopology(x.top); have != x.want {
			t.Fatalf("convTopology(%v):\nhave %#x\nwant %#x", x.top, have, x.want)
		}
	}
}

func TestIndexFmt(t *testing.T) {
	if x := convIndexFmt(driver.Index16); x != gl.UNSIGNED_SHORT {
		t.Fatalf("convIndexFmt(Index16):\nhave %#x\nwant %#x", x, gl.UNSIGNED_SHORT)
	}
	if x := convIndexFmt(driver.Index32); x != gl.UNSIGNED_INT {
		t.Fatalf("convIndexFmt(Index32):\nhave %#x\nwant %#x", x, gl.UNSIGNED_INT)
	}
}

func TestBlendFac(t *testing.T) {
	seen := make(map[uint32]driver.BlendFac)
	for f := driver.BZero; f <= driver.BInvDstAlpha; f++ {
		x := convBlendFac(f)
		if x == ^uint32(0) {
			t.Fatalf("convBlendFac(%v): not converted", f)
		}
		if g, ok := seen[x]; ok {
			t.Fatalf("convBlendFac(%v): same as convBlendFac(%v)", f, g)
		}
		seen[x] = f
	}
	if x := convBlendFac(driver.BInvSrcAlpha); x != gl.ONE_MINUS_SRC_ALPHA {
		t.Fatalf("convBlendFac(BInvSrcAlpha):\nhave %#x\nwant %#x", x, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func TestCapStage(t *testing.T) {
	if convCap(driver.CapBlend) != gl.BLEND || convCap(driver.CapDepthTest) != gl.DEPTH_TEST {
		t.Fatal("convCap: wrong capability")
	}
	if convStage(driver.SVertex) != gl.VERTEX_SHADER || convStage(driver.SFragment) != gl.FRAGMENT_SHADER {
		t.Fatal("convStage: wrong shader type")
	}
}

func TestRegister(t *testing.T) {
	d := driver.Find(driverName)
	if d == nil {
		t.Fatalf("driver.Find(%q): not registered", driverName)
	}
	if _, ok := d.(*Driver); !ok {
		t.Fatalf("driver.Find(%q):\nhave %T\nwant *Driver", driverName, d)
	}
}
