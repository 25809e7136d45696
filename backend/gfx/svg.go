package gfx

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/npillmayer/engrave/core/path"
)

// SVG is a path.Sink that collects stroke operations and writes them as
// an SVG document with a single stroked, unfilled path element. The
// y-axis is flipped on output, since rendering uses y-up coordinates
// and SVG uses y-down.
type SVG struct {
	StrokeWidth float64 // line width in output units, default 1
	Stroke      string  // stroke color, default "black"
	Margin      float64 // padding around the strokes, default 2
	p           path.Path
}

var _ path.Sink = (*SVG)(nil)

// NewSVG creates an SVG sink with default stroke attributes.
func NewSVG() *SVG {
	return &SVG{StrokeWidth: 1, Stroke: "black", Margin: 2}
}

func (s *SVG) NewPath()                             { s.p.NewPath() }
func (s *SVG) MoveTo(x, y float64)                  { s.p.MoveTo(x, y) }
func (s *SVG) LineTo(x0, y0, x1, y1 float64)        { s.p.LineTo(x0, y0, x1, y1) }
func (s *SVG) ArcTo(x0, y0, cx, cy, x1, y1 float64) { s.p.ArcTo(x0, y0, cx, cy, x1, y1) }

// WriteTo writes the collected strokes as a complete SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	minx, miny, maxx, maxy, ok := s.p.Bounds()
	if !ok {
		minx, miny, maxx, maxy = 0, 0, 1, 1
	}
	width := maxx - minx + 2*s.Margin
	height := maxy - miny + 2*s.Margin
	// flip y and shift into the viewbox
	tx := func(x float64) float64 { return x - minx + s.Margin }
	ty := func(y float64) float64 { return maxy - y + s.Margin }
	var d strings.Builder
	curx, cury := math.Inf(1), math.Inf(1)
	moveto := func(x, y float64) {
		if x != curx || y != cury {
			fmt.Fprintf(&d, "M %s %s ", coord(tx(x)), coord(ty(y)))
		}
	}
	for _, op := range s.p.Ops {
		switch op.Kind {
		case path.MoveOp:
			// repositioning is implicit in the start point of the next
			// segment; emitting nothing here keeps the 'M' lazy
		case path.LineOp:
			moveto(op.X0, op.Y0)
			fmt.Fprintf(&d, "L %s %s ", coord(tx(op.X1)), coord(ty(op.Y1)))
			curx, cury = op.X1, op.Y1
		case path.ArcOp:
			moveto(op.X0, op.Y0)
			if op.X0 == op.X1 && op.Y0 == op.Y1 {
				// full circle: the three-point form degenerates (start and
				// end coincide) and SVG arcs cannot close on themselves, so
				// split at the opposite point, which is the middle point
				r := math.Hypot(op.CX-op.X0, op.CY-op.Y0) / 2
				fmt.Fprintf(&d, "A %[1]s %[1]s 0 1 1 %s %s ", coord(r),
					coord(tx(op.CX)), coord(ty(op.CY)))
				fmt.Fprintf(&d, "A %[1]s %[1]s 0 1 1 %s %s ", coord(r),
					coord(tx(op.X1)), coord(ty(op.Y1)))
				curx, cury = op.X1, op.Y1
				continue
			}
			_, _, r, ccw, sweepAngle, ok := ArcGeometry(op.X0, op.Y0, op.CX, op.CY, op.X1, op.Y1)
			if !ok {
				fmt.Fprintf(&d, "L %s %s ", coord(tx(op.X1)), coord(ty(op.Y1)))
			} else {
				large := 0
				if sweepAngle > math.Pi {
					large = 1
				}
				fmt.Fprintf(&d, "A %[1]s %[1]s 0 %d %d %s %s ", coord(r), large, sweepFlag(ccw),
					coord(tx(op.X1)), coord(ty(op.Y1)))
			}
			curx, cury = op.X1, op.Y1
		}
	}
	G().Debugf("SVG viewbox %g × %g", width, height)
	var n int64
	count := func(c int, err error) error {
		n += int64(c)
		return err
	}
	if err := count(fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%s\" height=\"%s\" viewBox=\"0 0 %s %s\">\n",
		coord(width), coord(height), coord(width), coord(height))); err != nil {
		return n, err
	}
	if err := count(fmt.Fprintf(w,
		"  <path d=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%s\" stroke-linecap=\"round\"/>\n",
		strings.TrimSpace(d.String()), s.Stroke, coord(s.StrokeWidth))); err != nil {
		return n, err
	}
	if err := count(fmt.Fprintf(w, "</svg>\n")); err != nil {
		return n, err
	}
	return n, nil
}

// sweepFlag maps our y-up arc orientation to the SVG sweep flag of the
// y-flipped document: flipping the axis reverses the rotation sense.
func sweepFlag(ccw bool) int {
	if ccw {
		return 0
	}
	return 1
}

func coord(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
