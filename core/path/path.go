package path

import "math"

// Sink receives the drawing operations of rendered glyph strokes.
// Implementations accumulate them into whatever representation the
// backend needs. Coordinates are in output units, y pointing up.
//
// Arcs are given as three-point arcs: start, a point on the arc halfway
// along its sweep, and end. The middle point is a point of the arc
// itself, not a tangent control handle.
type Sink interface {
	NewPath()                            // start a disjoint stroke subpath
	MoveTo(x, y float64)                 // relocate without drawing
	LineTo(x0, y0, x1, y1 float64)       // straight stroke segment
	ArcTo(x0, y0, cx, cy, x1, y1 float64) // circular arc through (cx,cy)
}

// An Op is one recorded sink operation.
type Op struct {
	Kind OpKind
	// Coordinates, depending on Kind:
	// MoveOp uses X1/Y1; LineOp uses X0/Y0 and X1/Y1;
	// ArcOp additionally uses CX/CY for the on-arc middle point.
	X0, Y0 float64
	CX, CY float64
	X1, Y1 float64
}

// OpKind discriminates recorded sink operations.
type OpKind int

const (
	NewPathOp OpKind = iota
	MoveOp
	LineOp
	ArcOp
)

func (k OpKind) String() string {
	switch k {
	case NewPathOp:
		return "newpath"
	case MoveOp:
		return "move"
	case LineOp:
		return "line"
	case ArcOp:
		return "arc"
	}
	return "unknown"
}

// Path is a Sink that records every operation. It is the canonical
// in-memory representation of a rendered text and may be replayed into
// other sinks.
type Path struct {
	Ops []Op
}

var _ Sink = (*Path)(nil)

// NewPath starts a disjoint subpath.
func (p *Path) NewPath() {
	p.Ops = append(p.Ops, Op{Kind: NewPathOp})
}

// MoveTo records a reposition.
func (p *Path) MoveTo(x, y float64) {
	p.Ops = append(p.Ops, Op{Kind: MoveOp, X1: x, Y1: y})
}

// LineTo records a straight segment.
func (p *Path) LineTo(x0, y0, x1, y1 float64) {
	p.Ops = append(p.Ops, Op{Kind: LineOp, X0: x0, Y0: y0, X1: x1, Y1: y1})
}

// ArcTo records a three-point circular arc.
func (p *Path) ArcTo(x0, y0, cx, cy, x1, y1 float64) {
	p.Ops = append(p.Ops, Op{Kind: ArcOp, X0: x0, Y0: y0, CX: cx, CY: cy, X1: x1, Y1: y1})
}

// IsEmpty returns true if no drawing operation has been recorded.
// Moves and subpath starts do not count as drawing.
func (p *Path) IsEmpty() bool {
	for _, op := range p.Ops {
		if op.Kind == LineOp || op.Kind == ArcOp {
			return false
		}
	}
	return true
}

// Replay sends all recorded operations into another sink.
func (p *Path) Replay(sink Sink) {
	for _, op := range p.Ops {
		switch op.Kind {
		case NewPathOp:
			sink.NewPath()
		case MoveOp:
			sink.MoveTo(op.X1, op.Y1)
		case LineOp:
			sink.LineTo(op.X0, op.Y0, op.X1, op.Y1)
		case ArcOp:
			sink.ArcTo(op.X0, op.Y0, op.CX, op.CY, op.X1, op.Y1)
		}
	}
}

// Bounds returns the bounding box of all drawn segments. Arc extents are
// approximated by start, middle and end point, which is exact enough for
// framing engraving output. ok is false for a path without strokes.
func (p *Path) Bounds() (minx, miny, maxx, maxy float64, ok bool) {
	minx, miny = math.Inf(1), math.Inf(1)
	maxx, maxy = math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minx = math.Min(minx, x)
		miny = math.Min(miny, y)
		maxx = math.Max(maxx, x)
		maxy = math.Max(maxy, y)
		ok = true
	}
	for _, op := range p.Ops {
		switch op.Kind {
		case LineOp:
			grow(op.X0, op.Y0)
			grow(op.X1, op.Y1)
		case ArcOp:
			grow(op.X0, op.Y0)
			grow(op.CX, op.CY)
			grow(op.X1, op.Y1)
		}
	}
	if !ok {
		tracer().Debugf("bounds of a path without strokes")
		return 0, 0, 0, 0, false
	}
	return minx, miny, maxx, maxy, true
}
