package shx

import (
	"math"
	"testing"

	"github.com/npillmayer/engrave/core/path"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type InterpTestEnviron struct {
	suite.Suite
	font *Font
}

// listen for 'go test' command --> run test methods
func TestInterpreterFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "engrave.fonts")
	defer teardown()
	suite.Run(t, new(InterpTestEnviron))
}

// run before each test method, interpreter state is per-test
func (env *InterpTestEnviron) SetupTest() {
	env.font = newFont(Shapes)
	env.font.Above = 6
}

// run executes a glyph program on a fresh recording path and returns
// the path, the final machine state and the execution error.
func (env *InterpTestEnviron) run(program []byte, scale float64) (*path.Path, *State, error) {
	p := &path.Path{}
	st := NewState(scale, true)
	err := NewInterpreter(env.font).Execute(program, st, p)
	return p, st, err
}

func opCount(p *path.Path, kind path.OpKind) int {
	n := 0
	for _, op := range p.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// --- Tests -----------------------------------------------------------------

func (env *InterpTestEnviron) TestVectorMoves() {
	// pen up, 1 unit west, pen down, 2 units north
	p, st, err := env.run([]byte{0x02, 0x18, 0x01, 0x24}, 2)
	env.NoError(err)
	env.Require().Len(p.Ops, 2)
	env.Equal(path.MoveOp, p.Ops[0].Kind)
	env.InDelta(-2.0, p.Ops[0].X1, 1e-9)
	env.InDelta(0.0, p.Ops[0].Y1, 1e-9)
	env.Equal(path.LineOp, p.Ops[1].Kind)
	env.InDelta(-2.0, p.Ops[1].X0, 1e-9)
	env.InDelta(4.0, p.Ops[1].Y1, 1e-9)
	env.InDelta(-2.0, st.X, 1e-9)
	env.InDelta(4.0, st.Y, 1e-9)
}

func (env *InterpTestEnviron) TestVectorDiagonalUnits() {
	// direction 2 is the 45° diagonal with unit pair (1,1), which is
	// √2 times longer than an axis move of the same magnitude
	p, _, err := env.run([]byte{0x12}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.InDelta(1.0, p.Ops[0].X1, 1e-9)
	env.InDelta(1.0, p.Ops[0].Y1, 1e-9)
}

func (env *InterpTestEnviron) TestDivideThenMultiplyRestoresScale() {
	_, st, err := env.run([]byte{0x03, 3, 0x04, 3}, 1.5)
	env.NoError(err)
	env.InDelta(1.5, st.Scale, 1e-12)
}

func (env *InterpTestEnviron) TestZeroFactorIsFault() {
	_, _, err := env.run([]byte{0x03, 0}, 1)
	env.Equal(DivideByZero, KindOf(err))
	_, _, err = env.run([]byte{0x04, 0}, 1)
	env.Equal(DivideByZero, KindOf(err))
}

func (env *InterpTestEnviron) TestPushPopRoundtrip() {
	// draw north, remember, draw further, return
	p, st, err := env.run([]byte{0x14, 0x05, 0x14, 0x06}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 3)
	env.Equal(path.MoveOp, p.Ops[2].Kind, "restoring a position must move, even with the pen down")
	env.InDelta(1.0, p.Ops[2].Y1, 1e-9)
	env.InDelta(0.0, st.X, 1e-9)
	env.InDelta(1.0, st.Y, 1e-9)
}

func (env *InterpTestEnviron) TestStackOverflow() {
	_, _, err := env.run([]byte{0x05, 0x05, 0x05, 0x05}, 1)
	env.Equal(StackOverflow, KindOf(err), "the 4th push must fault")
	_, _, err = env.run([]byte{0x05, 0x05, 0x05}, 1)
	env.NoError(err, "3 pushes are within capacity")
}

func (env *InterpTestEnviron) TestStackUnderflow() {
	_, _, err := env.run([]byte{0x06}, 1)
	env.Equal(StackUnderflow, KindOf(err))
}

func (env *InterpTestEnviron) TestXYDisplacement() {
	p, _, err := env.run([]byte{0x08, 0xF6, 0x0A}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.Equal(path.LineOp, p.Ops[0].Kind)
	env.InDelta(-10.0, p.Ops[0].X1, 1e-9, "0xF6 is two's-complement -10")
	env.InDelta(10.0, p.Ops[0].Y1, 1e-9)
}

func (env *InterpTestEnviron) TestPolyXYDisplacement() {
	p, st, err := env.run([]byte{0x09, 10, 0, 0, 10, 0, 0, 0x14}, 1)
	env.NoError(err)
	env.Equal(3, opCount(p, path.LineOp), "two poly segments plus the trailing vector move")
	env.InDelta(10.0, st.X, 1e-9)
	env.InDelta(11.0, st.Y, 1e-9)
}

func (env *InterpTestEnviron) TestPolyBulgeTerminatorHasNoBulgeByte() {
	// a (0,0) pair ends the sequence; the byte after it is already the
	// next opcode and must not be consumed as a bulge factor
	p, _, err := env.run([]byte{0x0D, 10, 0, 0, 0, 0, 0x14}, 1)
	env.NoError(err)
	env.Equal(2, opCount(p, path.LineOp))
}

func (env *InterpTestEnviron) TestBulgeArcSemicircle() {
	// chord (100,0), bulge 127/127 = 1: midpoint displaced by half the
	// chord length perpendicular to the chord
	p, _, err := env.run([]byte{0x0C, 100, 0, 127}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.Equal(path.ArcOp, p.Ops[0].Kind)
	env.InDelta(50.0, p.Ops[0].CX, 1e-9)
	env.InDelta(50.0, p.Ops[0].CY, 1e-9)
	env.InDelta(100.0, p.Ops[0].X1, 1e-9)
	env.InDelta(0.0, p.Ops[0].Y1, 1e-9)
}

func (env *InterpTestEnviron) TestBulgeArcZeroIsLine() {
	p, _, err := env.run([]byte{0x0C, 10, 0, 0}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.Equal(path.LineOp, p.Ops[0].Kind)
}

func (env *InterpTestEnviron) TestBulgeArcPenUp() {
	p, _, err := env.run([]byte{0x02, 0x0C, 10, 0, 127}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.Equal(path.MoveOp, p.Ops[0].Kind)
}

func (env *InterpTestEnviron) TestOctantArcFullCircle() {
	// span 0 decodes as 8 octants, a full 360° sweep ending where it
	// started; center is opposite the start angle
	p, _, err := env.run([]byte{0x0A, 10, 0x00}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.Equal(path.ArcOp, p.Ops[0].Kind)
	env.InDelta(0.0, p.Ops[0].X1, 1e-9)
	env.InDelta(0.0, p.Ops[0].Y1, 1e-9)
	env.InDelta(-20.0, p.Ops[0].CX, 1e-9, "midpoint lies diametrically opposite")
	env.InDelta(0.0, p.Ops[0].CY, 1e-9)
}

func (env *InterpTestEnviron) TestOctantArcCCWNegatesStart() {
	// start octant 2 (90°), CCW flag negates it to -90°, span 4 octants
	p, _, err := env.run([]byte{0x0A, 10, 0xA4}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.InDelta(10.0, p.Ops[0].CX, 1e-9)
	env.InDelta(10.0, p.Ops[0].CY, 1e-9)
	env.InDelta(0.0, p.Ops[0].X1, 1e-9)
	env.InDelta(20.0, p.Ops[0].Y1, 1e-9)
}

func (env *InterpTestEnviron) TestFractionalArcRadiusAssembly() {
	// radius = high byte * 256 + low byte, here 256; half circle
	p, _, err := env.run([]byte{0x0B, 0, 0, 1, 0, 0x04}, 1)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.Equal(path.ArcOp, p.Ops[0].Kind)
	env.InDelta(-512.0, p.Ops[0].X1, 1e-6)
	env.InDelta(0.0, p.Ops[0].Y1, 1e-6)
}

func (env *InterpTestEnviron) TestCondMode2SkipsInHorizontal() {
	env.font.Modes = 2
	// the guarded displacement consumes its operands without drawing;
	// the following vector move draws normally
	p, _, err := env.run([]byte{0x0E, 0x08, 50, 50, 0x14}, 1)
	env.NoError(err)
	env.Equal(1, opCount(p, path.LineOp))
	env.Equal(0, opCount(p, path.MoveOp))
	env.InDelta(1.0, p.Ops[0].Y1, 1e-9)
}

func (env *InterpTestEnviron) TestCondMode2DrawsInVertical() {
	env.font.Modes = 2
	p := &path.Path{}
	st := NewState(1, false)
	err := NewInterpreter(env.font).Execute([]byte{0x0E, 0x08, 50, 50, 0x14}, st, p)
	env.NoError(err)
	env.Equal(2, opCount(p, path.LineOp))
}

func (env *InterpTestEnviron) TestCondMode2SuppressesFaults() {
	env.font.Modes = 2
	// a skipped opcode consumes its operands but raises no fault
	_, st, err := env.run([]byte{0x0E, 0x03, 0}, 1)
	env.NoError(err)
	env.InDelta(1.0, st.Scale, 1e-12)
}

func (env *InterpTestEnviron) TestSubshapeSplice() {
	env.font.putGlyph(2, []byte{0x14})
	p, st, err := env.run([]byte{0x07, 2, 0x18}, 1)
	env.NoError(err)
	env.Require().Equal(2, opCount(p, path.LineOp), "parent program must resume after the subshape")
	env.InDelta(0.0, p.Ops[0].X1, 1e-9)
	env.InDelta(1.0, p.Ops[0].Y1, 1e-9)
	env.InDelta(-1.0, st.X, 1e-9)
	env.InDelta(1.0, st.Y, 1e-9)
}

func (env *InterpTestEnviron) TestSubshapeUnresolved() {
	_, _, err := env.run([]byte{0x07, 9}, 1)
	env.Equal(UnresolvedSubshape, KindOf(err))
}

func (env *InterpTestEnviron) TestSubshapeCycleIsBounded() {
	env.font.putGlyph(3, []byte{0x07, 3})
	_, _, err := env.run([]byte{0x07, 3}, 1)
	env.Equal(SubshapeLoop, KindOf(err))
}

func (env *InterpTestEnviron) TestBigfontSubshapeKey() {
	env.font = newFont(Bigfont)
	env.font.putGlyph(0x1234, []byte{0x14})
	// escape byte 0 selects 2-byte addressing plus four origin/extent
	// bytes, which are consumed but not applied
	p, _, err := env.run([]byte{0x07, 0x00, 0x12, 0x34, 1, 2, 3, 4}, 1)
	env.NoError(err)
	env.Equal(1, opCount(p, path.LineOp))
}

func (env *InterpTestEnviron) TestUnifontSubshapeKey() {
	env.font = newFont(Unifont)
	env.font.putGlyph(0x1234, []byte{0x14})
	p, _, err := env.run([]byte{0x07, 0x34, 0x12}, 1)
	env.NoError(err)
	env.Equal(1, opCount(p, path.LineOp))
}

func (env *InterpTestEnviron) TestEndOfShapeSkipsNameBytes() {
	p, _, err := env.run([]byte{0x00, 'C', 'A', 'P', 0x00, 0x14}, 1)
	env.NoError(err)
	env.Equal(1, opCount(p, path.NewPathOp))
	env.Equal(1, opCount(p, path.LineOp))
}

func (env *InterpTestEnviron) TestExhaustedOperands() {
	_, _, err := env.run([]byte{0x08, 5}, 1)
	env.Equal(EmptyStream, KindOf(err))
}

func (env *InterpTestEnviron) TestScaleAppliesToDisplacement() {
	p, _, err := env.run([]byte{0x04, 3, 0x08, 2, 1}, 2)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.InDelta(12.0, p.Ops[0].X1, 1e-9)
	env.InDelta(6.0, p.Ops[0].Y1, 1e-9)
}

func (env *InterpTestEnviron) TestOctantArcRadiusScaled() {
	// quarter circle with scale 2: radius byte 5 becomes 10
	p, _, err := env.run([]byte{0x0A, 5, 0x02}, 2)
	env.NoError(err)
	env.Require().Len(p.Ops, 1)
	env.InDelta(-10.0, p.Ops[0].X1, 1e-9)
	env.InDelta(10.0, p.Ops[0].Y1, 1e-9)
	d := math.Hypot(p.Ops[0].CX+10, p.Ops[0].CY)
	env.InDelta(10.0, d, 1e-9, "arc midpoint lies on the circle")
}
