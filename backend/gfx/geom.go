package gfx

import "math"

// Circumcenter returns the center of the circle through three points.
// ok is false if the points are (nearly) collinear, in which case the
// arc degenerates to a straight line.
func Circumcenter(x0, y0, x1, y1, x2, y2 float64) (cx, cy float64, ok bool) {
	d := 2 * (x0*(y1-y2) + x1*(y2-y0) + x2*(y0-y1))
	if math.Abs(d) < 1e-9 {
		return 0, 0, false
	}
	s0 := x0*x0 + y0*y0
	s1 := x1*x1 + y1*y1
	s2 := x2*x2 + y2*y2
	cx = (s0*(y1-y2) + s1*(y2-y0) + s2*(y0-y1)) / d
	cy = (s0*(x2-x1) + s1*(x0-x2) + s2*(x1-x0)) / d
	return cx, cy, true
}

// ccwDelta returns the counter-clockwise angle from 'from' to 'to',
// normalized into [0, 2π).
func ccwDelta(from, to float64) float64 {
	d := math.Mod(to-from, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d
}

// ArcGeometry resolves a three-point arc (start, on-arc middle, end)
// into center, radius, proper sweep direction and sweep angle. The
// middle point selects which of the two arcs between start and end is
// meant. ok is false for collinear points.
func ArcGeometry(x0, y0, mx, my, x1, y1 float64) (cx, cy, r float64, ccw bool, sweep float64, ok bool) {
	cx, cy, ok = Circumcenter(x0, y0, mx, my, x1, y1)
	if !ok {
		return 0, 0, 0, false, 0, false
	}
	r = math.Hypot(x0-cx, y0-cy)
	a0 := math.Atan2(y0-cy, x0-cx)
	am := math.Atan2(my-cy, mx-cx)
	a1 := math.Atan2(y1-cy, x1-cx)
	d1 := ccwDelta(a0, a1)
	dm := ccwDelta(a0, am)
	if dm <= d1 {
		return cx, cy, r, true, d1, true
	}
	return cx, cy, r, false, 2*math.Pi - d1, true
}

// StartAngle returns the angle of (x,y) as seen from center (cx,cy).
func StartAngle(cx, cy, x, y float64) float64 {
	return math.Atan2(y-cy, x-cx)
}
