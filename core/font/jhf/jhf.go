package jhf

import (
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/npillmayer/engrave/core"
	"github.com/npillmayer/engrave/core/path"
	"golang.org/x/text/encoding/charmap"
)

// capHeight is the height of capital letters in Hershey design units.
// The classic tables put caps at 21 units; fontSize maps onto this.
const capHeight = 21.0

// A vertex is one decoded coordinate pair of a glyph polyline. Pen-up
// vertices reposition without drawing.
type vertex struct {
	x, y  int
	penUp bool
}

type glyph struct {
	id          int // Hershey glyph number, informational
	left, right int // horizontal extents relative to the glyph origin
	verts       []vertex
}

// Font is a parsed JHF glyph table. Glyphs are assigned to code points
// sequentially from ' ' (32), the usual convention for Hershey files.
// A Font is immutable and safe for concurrent renders.
type Font struct {
	Fontname string
	glyphs   map[rune]glyph
}

// Load reads and parses a JHF font file.
func Load(filepath string) (*Font, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	f.Fontname = filepath
	return f, nil
}

// Parse parses a JHF glyph table. JHF files are Latin-1 encoded; long
// glyphs wrap onto continuation lines, which carry no header fields.
func Parse(data []byte) (*Font, error) {
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "JHF font is not Latin-1 encoded")
	}
	lines := strings.Split(strings.ReplaceAll(string(text), "\r\n", "\n"), "\n")
	font := &Font{glyphs: make(map[rune]glyph)}
	code := rune(' ')
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(line) < 8 {
			return nil, core.Error(core.EINVALID, "JHF record %d too short", code-' ')
		}
		id, err := strconv.Atoi(strings.TrimSpace(line[0:5]))
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "JHF record %d: bad glyph number", code-' ')
		}
		npairs, err := strconv.Atoi(strings.TrimSpace(line[5:8]))
		if err != nil || npairs < 1 {
			return nil, core.Error(core.EINVALID, "JHF record %d: bad vertex count", code-' ')
		}
		pairs := line[8:]
		for len(pairs) < 2*npairs && i+1 < len(lines) {
			i++
			pairs += lines[i]
		}
		if len(pairs) < 2*npairs {
			return nil, core.Error(core.EINVALID, "JHF record %d: truncated vertex list", code-' ')
		}
		g := glyph{
			id:    id,
			left:  int(pairs[0]) - 'R',
			right: int(pairs[1]) - 'R',
		}
		for p := 1; p < npairs; p++ {
			c1, c2 := pairs[2*p], pairs[2*p+1]
			if c1 == ' ' && c2 == 'R' {
				g.verts = append(g.verts, vertex{penUp: true})
				continue
			}
			g.verts = append(g.verts, vertex{x: int(c1) - 'R', y: int(c2) - 'R'})
		}
		font.glyphs[code] = g
		code++
	}
	tracer().Infof("parsed JHF font with %d glyphs", len(font.glyphs))
	return font, nil
}

// GlyphCount returns the number of glyphs in the font.
func (f *Font) GlyphCount() int {
	return len(f.glyphs)
}

// HasGlyph reports whether a code point maps to a glyph.
func (f *Font) HasGlyph(codepoint rune) bool {
	_, ok := f.glyphs[codepoint]
	return ok
}

// Render draws text into sink starting at origin (0,0), baseline at
// y = 0 and strokes extending upward, matching the orientation of the
// SHX engine. fontSize is the cap height in output units. Characters
// without a glyph are dropped silently.
func (f *Font) Render(sink path.Sink, text string, fontSize float64) error {
	scale := fontSize / capHeight
	x := 0.0
	for _, ch := range text {
		g, ok := f.glyphs[ch]
		if !ok {
			tracer().Debugf("no glyph for %#U, dropped", ch)
			continue
		}
		penUp := true
		var lx, ly float64
		for _, v := range g.verts {
			if v.penUp {
				penUp = true
				continue
			}
			// Hershey y grows downward; flip to y-up output units.
			px := x + (float64(v.x)-float64(g.left))*scale
			py := -float64(v.y) * scale
			if penUp {
				sink.MoveTo(px, py)
				penUp = false
			} else {
				sink.LineTo(lx, ly, px, py)
			}
			lx, ly = px, py
		}
		x += (float64(g.right) - float64(g.left)) * scale
		sink.NewPath()
	}
	return nil
}
