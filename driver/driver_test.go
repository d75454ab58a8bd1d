// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package driver_test

import (
	"testing"

	"github.com/gviegas/meshview/driver"
	"github.com/gviegas/meshview/driver/drivertest"
)

func TestDrivers(t *testing.T) {
	drivertest.Register()
	drivers := driver.Drivers()
	if len(drivers) == 0 {
		t.Fatal("driver.Drivers: no driver registered")
	}
	for i := range drivers {
		name := drivers[i].Name()
		for j := 0; j < i; j++ {
			if name == drivers[j].Name() {
				t.Error("driver.Drivers: Driver.Name is not unique")
			}
		}
	}
	drivers2 := driver.Drivers()
	if len(drivers) != len(drivers2) {
		t.Error("driver.Drivers: length mismatch")
	} else {
		for i := range drivers {
			if drivers[i].Name() != drivers2[i].Name() {
				t.Error("driver.Drivers: Driver.Name mismatch")
			}
		}
	}
	// Registering again replaces rather than appends.
	drivertest.Register()
	if n := len(driver.Drivers()); n != len(drivers) {
		t.Errorf("driver.Register: replace\nhave %d drivers\nwant %d", n, len(drivers))
	}
}

func TestFind(t *testing.T) {
	drivertest.Register()
	drv := driver.Find(drivertest.Name)
	if drv == nil {
		t.Fatalf("driver.Find(%q): not found", drivertest.Name)
	}
	if drv.Name() != drivertest.Name {
		t.Errorf("driver.Find: Name\nhave %q\nwant %q", drv.Name(), drivertest.Name)
	}
	if driver.Find("no such driver") != nil {
		t.Error("driver.Find: unexpected driver")
	}
}

func TestDriverName(t *testing.T) {
	drv := drivertest.New(640, 480)
	name := drv.Name()
	if name == "" {
		t.Error("Driver.Name: name is empty")
	}
	gpu, err := drv.Open()
	if err != nil {
		t.Fatal("Failed to Open drv - cannot continue")
	}
	gpu2, _ := drv.Open()
	if gpu != gpu2 {
		t.Error("Driver.Open: GPU differs between calls")
	}
	drv.Close()
	if drv.Name() != name {
		t.Error("Driver.Name: unexpected name after call to Close")
	}
}

func TestVertexFmt(t *testing.T) {
	for _, c := range [...]struct {
		f    driver.VertexFmt
		size int
		n    int
	}{
		{driver.Float32, 4, 1},
		{driver.Float32x2, 8, 2},
		{driver.Float32x3, 12, 3},
		{driver.Float32x4, 16, 4},
	} {
		if s := c.f.Size(); s != c.size {
			t.Errorf("VertexFmt(%d).Size\nhave %d\nwant %d", c.f, s, c.size)
		}
		if n := c.f.Components(); n != c.n {
			t.Errorf("VertexFmt(%d).Components\nhave %d\nwant %d", c.f, n, c.n)
		}
	}
}
