package shx

import (
	"io/ioutil"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/maps/treemap"
)

// Variant denotes the container layout of an SHX file. The layout
// governs how glyph records are addressed; the glyph bytecode language
// is identical across variants.
type Variant int

const (
	Shapes  Variant = iota + 1 // classic 8-bit shape file
	Bigfont                    // indexed multi-byte glyph set
	Unifont                    // Unicode code point addressing
)

func (v Variant) String() string {
	switch v {
	case Shapes:
		return "shapes"
	case Bigfont:
		return "bigfont"
	case Unifont:
		return "unifont"
	}
	return "unknown"
}

// Font is a parsed SHX shape font. It is immutable after Parse and may
// be shared read-only across concurrent render calls.
type Font struct {
	Format  string // free-text vendor tag from the header
	Version string // free-text version from the header
	Name    string // font name from the metadata record, if present

	Above int // design-unit cap height; divisor for output scaling
	Below int // design-unit descender extent
	Modes int // 0 = horizontal only, 2 = dual horizontal/vertical

	// unifont-only metadata, carried but not interpreted by rendering
	Encoding   int
	Embeddable int

	variant Variant
	glyphs  *treemap.Map // glyph key (int) → program bytes ([]byte)
	aliases *trie.Trie   // legacy shape name → glyph key (int)
}

func newFont(variant Variant) *Font {
	return &Font{
		variant: variant,
		glyphs:  treemap.NewWithIntComparator(),
		aliases: trie.New(),
	}
}

// Load reads and parses an SHX font file.
func Load(filepath string) (*Font, error) {
	data, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Variant returns the container layout of the font.
func (f *Font) Variant() Variant {
	return f.variant
}

// Glyph returns the byte program for a glyph key. For Shapes and
// Unifont fonts the key is a Unicode code point; for Bigfont fonts it
// is a font-specific index.
func (f *Font) Glyph(key int) ([]byte, bool) {
	v, ok := f.glyphs.Get(key)
	if !ok {
		return nil, false
	}
	return v.([]byte), true
}

// GlyphCount returns the number of glyphs in the font, not counting the
// synthetic metadata record.
func (f *Font) GlyphCount() int {
	return f.glyphs.Size()
}

// Codes returns all glyph keys in ascending order.
func (f *Font) Codes() []int {
	keys := f.glyphs.Keys()
	codes := make([]int, len(keys))
	for i, k := range keys {
		codes[i] = k.(int)
	}
	return codes
}

// GlyphNamed looks up a glyph by its legacy string alias. Shapes files
// may embed an uppercase shape name with a glyph record; the renderer
// never consults these names, but tooling can.
func (f *Font) GlyphNamed(alias string) (int, bool) {
	node, ok := f.aliases.Find(alias)
	if !ok {
		return 0, false
	}
	return node.Meta().(int), true
}

// Aliases returns all legacy shape names found in the font.
func (f *Font) Aliases() []string {
	return f.aliases.Keys()
}

func (f *Font) putGlyph(key int, program []byte) {
	f.glyphs.Put(key, program)
}

func (f *Font) putAlias(alias string, key int) {
	f.aliases.Add(alias, key)
}
