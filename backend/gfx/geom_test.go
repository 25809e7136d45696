package gfx

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCircumcenter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	cx, cy, ok := Circumcenter(0, 0, 1, 1, 2, 0)
	if !ok {
		t.Fatal("expected a circumcenter for a proper triangle")
	}
	if math.Abs(cx-1) > 1e-9 || math.Abs(cy) > 1e-9 {
		t.Errorf("center = (%g,%g), expected (1,0)", cx, cy)
	}
}

func TestCircumcenterCollinear(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	if _, _, ok := Circumcenter(0, 0, 1, 0, 2, 0); ok {
		t.Error("collinear points must not yield a center")
	}
}

func TestArcGeometryClockwise(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	// upper semicircle traversed left to right runs clockwise
	cx, cy, r, ccw, sweep, ok := ArcGeometry(0, 0, 1, 1, 2, 0)
	if !ok {
		t.Fatal("expected arc geometry")
	}
	if math.Abs(cx-1) > 1e-9 || math.Abs(cy) > 1e-9 || math.Abs(r-1) > 1e-9 {
		t.Errorf("center/radius = (%g,%g)/%g, expected (1,0)/1", cx, cy, r)
	}
	if ccw {
		t.Error("expected clockwise traversal")
	}
	if math.Abs(sweep-math.Pi) > 1e-9 {
		t.Errorf("sweep = %g, expected pi", sweep)
	}
}

func TestArcGeometryCounterClockwise(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	// same endpoints, middle point below: the other arc
	_, _, _, ccw, sweep, ok := ArcGeometry(0, 0, 1, -1, 2, 0)
	if !ok {
		t.Fatal("expected arc geometry")
	}
	if !ccw {
		t.Error("expected counter-clockwise traversal")
	}
	if math.Abs(sweep-math.Pi) > 1e-9 {
		t.Errorf("sweep = %g, expected pi", sweep)
	}
}

func TestArcGeometryMinorArc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	// quarter circle on the unit circle, (1,0) through 45° to (0,1)
	s := math.Sqrt2 / 2
	cx, cy, _, ccw, sweep, ok := ArcGeometry(1, 0, s, s, 0, 1)
	if !ok {
		t.Fatal("expected arc geometry")
	}
	if math.Abs(cx) > 1e-9 || math.Abs(cy) > 1e-9 {
		t.Errorf("center = (%g,%g), expected origin", cx, cy)
	}
	if !ccw || math.Abs(sweep-math.Pi/2) > 1e-9 {
		t.Errorf("ccw/sweep = %v/%g, expected true/pi/2", ccw, sweep)
	}
}

func TestStartAngle(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.gfx")
	defer teardown()
	//
	if a := StartAngle(0, 0, 0, 2); math.Abs(a-math.Pi/2) > 1e-9 {
		t.Errorf("angle = %g, expected pi/2", a)
	}
}
