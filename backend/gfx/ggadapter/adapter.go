/*
Package ggadapter bridges rendered stroke paths to a gg drawing
context, for rasterized previews of engraving output.

BSD License

Copyright (c) 2017-21, Norbert Pillmayer <norbert@pillmayer.com>

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of Norbert Pillmayer nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package ggadapter

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/npillmayer/engrave/backend/gfx"
	"github.com/npillmayer/engrave/core/path"
	"github.com/npillmayer/schuko/tracing"
)

// G traces to the graphics tracer.
func G() tracing.Trace {
	return tracing.Select("engrave.gfx")
}

// Canvas implements path.Sink on top of a gg drawing context. The
// caller owns the context and is responsible for the y-axis transform
// (e.g. gg.Context.InvertY) and for calling Stroke once rendering is
// done.
type Canvas struct {
	dc       *gg.Context
	ggx, ggy float64 // last point handed to the gg path
	valid    bool
}

var _ path.Sink = (*Canvas)(nil)

// NewCanvas wraps a gg context as a stroke path sink.
func NewCanvas(dc *gg.Context) *Canvas {
	return &Canvas{dc: dc}
}

// NewPath starts a disjoint subpath.
func (c *Canvas) NewPath() {
	c.dc.NewSubPath()
	c.valid = false
}

// MoveTo repositions without drawing.
func (c *Canvas) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
	c.ggx, c.ggy = x, y
	c.valid = true
}

// LineTo draws a straight segment, continuing the current gg subpath
// when the segment starts at its end for clean joins.
func (c *Canvas) LineTo(x0, y0, x1, y1 float64) {
	if !c.valid || c.ggx != x0 || c.ggy != y0 {
		c.dc.MoveTo(x0, y0)
	}
	c.dc.LineTo(x1, y1)
	c.ggx, c.ggy = x1, y1
	c.valid = true
}

// ArcTo draws a three-point circular arc. gg strokes arcs in
// counter-clockwise direction only; for clockwise arcs start and end
// are exchanged, which leaves the stroked pixels unchanged.
func (c *Canvas) ArcTo(x0, y0, cx, cy, x1, y1 float64) {
	if x0 == x1 && y0 == y1 {
		// full circle: start and end coincide, the circumcenter is
		// undefined; the middle point lies diametrically opposite
		ccx, ccy := (x0+cx)/2, (y0+cy)/2
		r := math.Hypot(cx-x0, cy-y0) / 2
		a0 := gfx.StartAngle(ccx, ccy, x0, y0)
		c.dc.MoveTo(x0, y0)
		c.dc.DrawArc(ccx, ccy, r, a0, a0+2*math.Pi)
		c.ggx, c.ggy = x1, y1
		c.valid = true
		return
	}
	ccx, ccy, r, ccw, sweep, ok := gfx.ArcGeometry(x0, y0, cx, cy, x1, y1)
	if !ok {
		c.LineTo(x0, y0, x1, y1)
		return
	}
	sx, sy, ex, ey := x0, y0, x1, y1
	if !ccw {
		sx, sy, ex, ey = x1, y1, x0, y0
	}
	a0 := gfx.StartAngle(ccx, ccy, sx, sy)
	c.dc.MoveTo(sx, sy)
	c.dc.DrawArc(ccx, ccy, r, a0, a0+sweep)
	c.ggx, c.ggy = ex, ey
	c.valid = true
	G().Debugf("arc around (%.2f,%.2f), r=%.2f", ccx, ccy, r)
}
