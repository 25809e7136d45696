package shx

import (
	"math"

	"github.com/npillmayer/engrave/core/path"
)

// Named opcodes, selected by the low nibble of a dispatch byte with
// zero high nibble. A non-zero high nibble is a vector move instead.
const (
	opEndOfShape         = 0x0
	opPenDown            = 0x1
	opPenUp              = 0x2
	opDivideVector       = 0x3
	opMultiplyVector     = 0x4
	opPushStack          = 0x5
	opPopStack           = 0x6
	opDrawSubshape       = 0x7
	opXYDisplacement     = 0x8
	opPolyXYDisplacement = 0x9
	opOctantArc          = 0xA
	opFractionalArc      = 0xB
	opBulgeArc           = 0xC
	opPolyBulgeArc       = 0xD
	opCondMode2          = 0xE
)

// stackDepth is the number of usable position pushes; a fourth
// simultaneous push is a fault.
const stackDepth = 3

// maxSplices bounds subshape resolution per glyph. Subshape calls are
// spliced inline into the code stream, so a corrupt font with cyclic
// references would otherwise never terminate.
const maxSplices = 128

const octant = math.Pi / 4 // 45°

// The sixteen compass directions of vector moves, 22.5° apart,
// direction k at angle k*22.5° counter-clockwise from +x. The legacy
// unit pairs are drawn from {-1, -0.5, 0, 0.5, 1}, which makes diagonal
// moves √2 longer than axis moves; fonts are authored against that.
var vectorDir = [16][2]float64{
	{1, 0}, {1, 0.5}, {1, 1}, {0.5, 1},
	{0, 1}, {-0.5, 1}, {-1, 1}, {-1, 0.5},
	{-1, 0}, {-1, -0.5}, {-1, -1}, {-0.5, -1},
	{0, -1}, {0.5, -1}, {1, -1}, {1, -0.5},
}

// State is the mutable machine state of one glyph interpretation. The
// text renderer reuses one State across the glyphs of a render call so
// that the pen position carries over; everything else is reset at glyph
// boundaries. A State must not be shared across concurrent renders.
type State struct {
	X, Y         float64 // current pen position in output units
	LastX, LastY float64 // position at the start of the current segment
	Pen          bool    // drawing vs. repositioning
	Scale        float64 // accumulated design-unit multiplier
	Horizontal   bool    // render orientation, gates COND_MODE_2

	stack    [stackDepth][2]float64
	sp       int
	skipNext bool
	code     []byte
	splices  int
}

// NewState creates interpreter state with an initial scale, normally
// fontSize divided by the font's above metric.
func NewState(scale float64, horizontal bool) *State {
	st := &State{}
	st.Reset(scale)
	st.Horizontal = horizontal
	return st
}

// Reset prepares the state for the next glyph. The pen position
// persists, since horizontal advance is emergent from the glyph
// programs themselves; scale, pen, stack and skip flag are
// re-initialized.
func (st *State) Reset(scale float64) {
	st.LastX, st.LastY = st.X, st.Y
	st.Pen = true
	st.Scale = scale
	st.sp = 0
	st.skipNext = false
	st.code = nil
	st.splices = 0
}

func (st *State) pop() (byte, error) {
	if len(st.code) == 0 {
		return 0, errShx(EmptyStream, "glyph program exhausted mid-opcode")
	}
	b := st.code[0]
	st.code = st.code[1:]
	return b, nil
}

// emitLine advances the pen, drawing if it is down.
func (st *State) emitLine(sink path.Sink, nx, ny float64) {
	if st.Pen {
		sink.LineTo(st.X, st.Y, nx, ny)
	} else {
		sink.MoveTo(nx, ny)
	}
	st.LastX, st.LastY = st.X, st.Y
	st.X, st.Y = nx, ny
}

// emitArc advances the pen along an arc through (mx,my), drawing if it
// is down.
func (st *State) emitArc(sink path.Sink, mx, my, nx, ny float64) {
	if st.Pen {
		sink.ArcTo(st.X, st.Y, mx, my, nx, ny)
	} else {
		sink.MoveTo(nx, ny)
	}
	st.LastX, st.LastY = st.X, st.Y
	st.X, st.Y = nx, ny
}

// Interpreter executes glyph byte programs of a font. It holds no
// mutable state of its own and is safe for concurrent use; all per-run
// state lives in the State passed to Execute.
type Interpreter struct {
	font *Font
}

// NewInterpreter creates an interpreter for glyph programs of font f.
// Subshape references are resolved against f's glyph map.
func NewInterpreter(f *Font) *Interpreter {
	return &Interpreter{font: f}
}

// Execute runs one glyph program to exhaustion. Subshape calls splice
// the callee's bytes onto the front of the remaining stream, so the
// parent program resumes automatically; there is no call stack.
func (ip *Interpreter) Execute(program []byte, st *State, sink path.Sink) error {
	st.code = program
	st.splices = 0
	for len(st.code) > 0 {
		b, err := st.pop()
		if err != nil {
			return err
		}
		if err := ip.step(b, st, sink); err != nil {
			return err
		}
	}
	return nil
}

// step dispatches a single opcode. Operand bytes are consumed before
// the skip flag is honored, keeping the stream aligned when an opcode
// is suppressed by COND_MODE_2.
func (ip *Interpreter) step(b byte, st *State, sink path.Sink) error {
	skipped := st.skipNext
	st.skipNext = false
	high := int(b >> 4)
	low := int(b & 0x0F)
	if high != 0 {
		// vector move: magnitude 1–15 in one of 16 directions
		if skipped {
			return nil
		}
		d := vectorDir[low]
		st.emitLine(sink, st.X+d[0]*float64(high)*st.Scale, st.Y+d[1]*float64(high)*st.Scale)
		return nil
	}
	switch low {
	case opEndOfShape:
		// Defensive boundary skip: discard up to and including the next
		// zero byte. This steps over embedded shape names and padding.
		for len(st.code) > 0 {
			c, _ := st.pop()
			if c == 0 {
				break
			}
		}
		if skipped {
			return nil
		}
		sink.NewPath()

	case opPenDown:
		if skipped {
			return nil
		}
		st.Pen = true

	case opPenUp:
		if skipped {
			return nil
		}
		st.Pen = false

	case opDivideVector, opMultiplyVector:
		factor, err := st.pop()
		if err != nil {
			return err
		}
		if skipped {
			return nil
		}
		if factor == 0 {
			return errShx(DivideByZero, "scale factor 0 in opcode %#x", low)
		}
		if low == opDivideVector {
			st.Scale /= float64(factor)
		} else {
			st.Scale *= float64(factor)
		}

	case opPushStack:
		if skipped {
			return nil
		}
		if st.sp == stackDepth {
			return errShx(StackOverflow, "more than %d stacked positions", stackDepth)
		}
		st.stack[st.sp] = [2]float64{st.X, st.Y}
		st.sp++

	case opPopStack:
		if skipped {
			return nil
		}
		if st.sp == 0 {
			return errShx(StackUnderflow, "pop from empty position stack")
		}
		st.sp--
		pos := st.stack[st.sp]
		// Legacy behavior: the restored position is always a move,
		// regardless of pen state. Downstream glyph programs rely on it.
		sink.MoveTo(pos[0], pos[1])
		st.X, st.Y = pos[0], pos[1]
		st.LastX, st.LastY = pos[0], pos[1]

	case opDrawSubshape:
		return ip.drawSubshape(st, skipped)

	case opXYDisplacement:
		dx, dy, err := st.popDisplacement()
		if err != nil {
			return err
		}
		if skipped {
			return nil
		}
		st.emitLine(sink, st.X+dx, st.Y+dy)

	case opPolyXYDisplacement:
		for {
			dxb, err := st.pop()
			if err != nil {
				return err
			}
			dyb, err := st.pop()
			if err != nil {
				return err
			}
			if dxb == 0 && dyb == 0 {
				break
			}
			if skipped {
				continue
			}
			st.emitLine(sink, st.X+float64(int8(dxb))*st.Scale, st.Y+float64(int8(dyb))*st.Scale)
		}

	case opOctantArc:
		rb, err := st.pop()
		if err != nil {
			return err
		}
		scb, err := st.pop()
		if err != nil {
			return err
		}
		if skipped {
			return nil
		}
		st.octantArc(sink, float64(rb)*st.Scale, scb, 0, 0)

	case opFractionalArc:
		ops, err := st.popN(5)
		if err != nil {
			return err
		}
		if skipped {
			return nil
		}
		startOff := float64(ops[0]) / 256 * octant
		endOff := float64(ops[1]) / 256 * octant
		radius := (float64(ops[2])*256 + float64(ops[3])) * st.Scale
		st.octantArc(sink, radius, ops[4], startOff, endOff)

	case opBulgeArc:
		ops, err := st.popN(3)
		if err != nil {
			return err
		}
		if skipped {
			return nil
		}
		st.bulgeArc(sink, float64(int8(ops[0]))*st.Scale, float64(int8(ops[1]))*st.Scale, int8(ops[2]))

	case opPolyBulgeArc:
		for {
			dxb, err := st.pop()
			if err != nil {
				return err
			}
			dyb, err := st.pop()
			if err != nil {
				return err
			}
			if dxb == 0 && dyb == 0 {
				// the terminator pair has no trailing bulge byte
				break
			}
			hb, err := st.pop()
			if err != nil {
				return err
			}
			if skipped {
				continue
			}
			st.bulgeArc(sink, float64(int8(dxb))*st.Scale, float64(int8(dyb))*st.Scale, int8(hb))
		}

	case opCondMode2:
		if skipped {
			return nil
		}
		// Dual-orientation fonts guard their vertical-only drawing with
		// this opcode; in horizontal rendering the guarded opcode is
		// consumed but performs nothing.
		if ip.font.Modes == 2 && st.Horizontal {
			st.skipNext = true
		}

	default:
		tracer().Infof("undefined opcode %#x in glyph program, ignored", low)
	}
	return nil
}

func (st *State) popDisplacement() (float64, float64, error) {
	dxb, err := st.pop()
	if err != nil {
		return 0, 0, err
	}
	dyb, err := st.pop()
	if err != nil {
		return 0, 0, err
	}
	return float64(int8(dxb)) * st.Scale, float64(int8(dyb)) * st.Scale, nil
}

func (st *State) popN(n int) ([]byte, error) {
	if len(st.code) < n {
		return nil, errShx(EmptyStream, "glyph program exhausted mid-opcode")
	}
	ops := st.code[:n]
	st.code = st.code[n:]
	return ops, nil
}

// octantArc draws an arc given in octant encoding: bit 7 of sc is the
// CCW flag, bits 4–6 the start octant, bits 0–3 the span in octants
// with 0 decoding as 8 (a full circle). The center lies at distance
// radius from the current point, opposite the start angle.
func (st *State) octantArc(sink path.Sink, radius float64, sc byte, startOff, endOff float64) {
	ccw := sc&0x80 != 0
	s := float64((sc >> 4) & 0x07)
	c := int(sc & 0x0F)
	if c == 0 {
		c = 8
	}
	start := s * octant
	if ccw {
		start = -start
	}
	end := start + float64(c)*octant + endOff
	start += startOff
	mid := (start + end) / 2
	cx := st.X - radius*math.Cos(start)
	cy := st.Y - radius*math.Sin(start)
	st.emitArc(sink,
		cx+radius*math.Cos(mid), cy+radius*math.Sin(mid),
		cx+radius*math.Cos(end), cy+radius*math.Sin(end))
}

// bulgeArc draws a DXF-style bulge arc: the chord (dx,dy) with its
// midpoint displaced perpendicularly by bulge × half-chord-length.
// The bulge factor h is a signed byte over [-127,127] and is not
// scaled. h == 0 degenerates to a straight line.
func (st *State) bulgeArc(sink path.Sink, dx, dy float64, h int8) {
	nx, ny := st.X+dx, st.Y+dy
	if h == 0 || !st.Pen {
		st.emitLine(sink, nx, ny)
		return
	}
	bulge := float64(h) / 127
	mx := st.X + dx/2 - dy*bulge/2
	my := st.Y + dy/2 + dx*bulge/2
	st.emitArc(sink, mx, my, nx, ny)
}

// drawSubshape resolves a nested glyph program and splices its bytes
// onto the front of the remaining stream. Addressing is
// variant-specific; bigfont records may carry origin/extent bytes which
// are consumed but not applied.
func (ip *Interpreter) drawSubshape(st *State, skipped bool) error {
	var key int
	switch ip.font.variant {
	case Bigfont:
		b, err := st.pop()
		if err != nil {
			return err
		}
		if b == 0 {
			ops, err := st.popN(6)
			if err != nil {
				return err
			}
			key = int(ops[0])*256 + int(ops[1])
			// ops[2:6] hold origin x/y and width/height of the
			// referenced shape; reserved, not applied.
		} else {
			key = int(b)
		}
	case Unifont:
		ops, err := st.popN(2)
		if err != nil {
			return err
		}
		key = int(u16le(ops))
	default: // Shapes
		b, err := st.pop()
		if err != nil {
			return err
		}
		key = int(b)
	}
	if skipped {
		return nil
	}
	program, ok := ip.font.Glyph(key)
	if !ok {
		return errShx(UnresolvedSubshape, "no glyph %d in font", key)
	}
	st.splices++
	if st.splices > maxSplices {
		return errShx(SubshapeLoop, "more than %d subshape calls in one glyph", maxSplices)
	}
	spliced := make([]byte, 0, len(program)+len(st.code))
	spliced = append(spliced, program...)
	st.code = append(spliced, st.code...)
	return nil
}
