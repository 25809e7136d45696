package engrave

import (
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/engrave/core/font/shx"
	"github.com/npillmayer/engrave/core/path"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
)

// fallbackSubst replaces Latin diacritics absent from a glyph map by
// common transliterations. Applied only when the composed character has
// no glyph of its own.
var fallbackSubst = map[rune]string{
	'ä': "ae", 'ö': "oe", 'ü': "ue",
	'Ä': "Ae", 'Ö': "Oe", 'Ü': "Ue",
	'ß': "ss",
	'à': "a", 'á': "a", 'â': "a", 'ã': "a",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o",
	'ù': "u", 'ú': "u", 'û': "u",
	'ç': "c", 'ñ': "n",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U",
	'Ç': "C", 'Ñ': "N",
}

// Renderer lays out text with an SHX shape font. The font is shared
// read-only, but the Renderer owns a mutable grapheme segmenter, so
// concurrent renders need one Renderer per goroutine.
type Renderer struct {
	font             *shx.Font
	interp           *shx.Interpreter
	graphemeSplitter *segment.Segmenter
}

// NewRenderer creates a text renderer for a parsed shape font.
func NewRenderer(f *shx.Font) *Renderer {
	onGraphemes := grapheme.NewBreaker(1)
	grapheme.SetupGraphemeClasses()
	return &Renderer{
		font:             f,
		interp:           shx.NewInterpreter(f),
		graphemeSplitter: segment.NewSegmenter(onGraphemes),
	}
}

// Font returns the renderer's shape font.
func (r *Renderer) Font() *shx.Font {
	return r.font
}

// Render draws text into sink, starting at origin (0,0) in output
// units. fontSize is the cap height in output units; the internal scale
// derives from the font's above metric. horizontal selects the layout
// orientation of dual-mode fonts.
//
// Unmapped characters are dropped silently. Interpreter faults abort
// the remaining text but leave the shared font untouched.
func (r *Renderer) Render(sink path.Sink, text string, horizontal bool, fontSize float64) error {
	above := r.font.Above
	if above == 0 {
		above = 1
	}
	scale := fontSize / float64(above)
	st := shx.NewState(scale, horizontal)
	r.graphemeSplitter.Init(strings.NewReader(text))
	for r.graphemeSplitter.Next() {
		codepoint, _ := utf8.DecodeRune(r.graphemeSplitter.Bytes())
		for _, ch := range r.resolve(codepoint) {
			program, ok := r.font.Glyph(int(ch))
			if !ok {
				tracer().Debugf("no glyph for %#U, dropped", ch)
				continue
			}
			st.Reset(scale)
			if err := r.interp.Execute(program, st, sink); err != nil {
				tracer().Errorf("glyph %#U: %v", ch, err)
				return err
			}
		}
	}
	return nil
}

// RenderToPath renders text into a fresh recording path.
func (r *Renderer) RenderToPath(text string, horizontal bool, fontSize float64) (*path.Path, error) {
	p := &path.Path{}
	err := r.Render(p, text, horizontal, fontSize)
	return p, err
}

// resolve maps a character to the sequence of characters that will be
// looked up in the glyph map. Characters present in the map stand for
// themselves; absent diacritics fall back to their transliteration.
func (r *Renderer) resolve(codepoint rune) []rune {
	if _, ok := r.font.Glyph(int(codepoint)); ok {
		return []rune{codepoint}
	}
	if subst, ok := fallbackSubst[codepoint]; ok {
		return []rune(subst)
	}
	return []rune{codepoint} // lookup will drop it silently
}
