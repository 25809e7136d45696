package shx

import (
	"strings"
)

// Parse parses an SHX shape font from a byte slice. The returned Font
// keeps copies of the glyph programs only; data may be reused by the
// caller afterwards.
func Parse(data []byte) (*Font, error) {
	r := &reader{data: data}
	header, err := r.line()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(header)
	if len(fields) != 3 {
		return nil, errShx(InvalidHeader, "header %q, expected '<format> <variant> <version>'", header)
	}
	tracer().Debugf("SHX header = %q", header)
	// Two filler bytes follow the header line terminator.
	if _, err := r.bytes(2); err != nil {
		return nil, err
	}
	var font *Font
	switch strings.ToLower(fields[1]) {
	case "shapes":
		font, err = parseShapes(r)
	case "bigfont":
		font, err = parseBigfont(r)
	case "unifont":
		font, err = parseUnifont(r)
	default:
		return nil, errShx(UnknownVariant, "%q", fields[1])
	}
	if err != nil {
		return nil, err
	}
	font.Format = fields[0]
	font.Version = fields[2]
	tracer().Infof("parsed %s font %q with %d glyphs", font.variant, font.Name, font.GlyphCount())
	return font, nil
}

// --- Shapes ----------------------------------------------------------------

// A shapes container is an index table of (glyph, length) pairs followed
// by the glyph records in table order. The record with glyph index 0 is
// not a program but font-wide metadata.
func parseShapes(r *reader) (*Font, error) {
	font := newFont(Shapes)
	start, err := r.u16()
	if err != nil {
		return nil, err
	}
	end, err := r.u16()
	if err != nil {
		return nil, err
	}
	count, err := r.u16()
	if err != nil {
		return nil, err
	}
	tracer().Debugf("shapes index %d–%d, %d glyphs", start, end, count)
	type entry struct {
		index  uint16
		length uint16
	}
	entries := make([]entry, count)
	for i := range entries {
		if entries[i].index, err = r.u16(); err != nil {
			return nil, err
		}
		if entries[i].length, err = r.u16(); err != nil {
			return nil, err
		}
	}
	for _, e := range entries {
		data, err := r.bytes(int(e.length))
		if err != nil {
			return nil, err
		}
		if e.index == 0 {
			if err := parseShapesMetadata(font, data); err != nil {
				return nil, err
			}
			continue
		}
		program := append([]byte(nil), data...)
		font.putGlyph(int(e.index), program)
		if alias, ok := glyphAlias(program); ok {
			font.putAlias(alias, int(e.index))
		}
	}
	return font, nil
}

// The metadata record carries a terminated name string followed by the
// above/below extents and the modes byte.
func parseShapesMetadata(font *Font, data []byte) error {
	i := 0
	for i < len(data) && data[i] != 0 && data[i] != ' ' {
		i++
	}
	font.Name = string(data[:i])
	rest := data[i:] // terminator + three metric bytes
	if len(rest) < 4 {
		return errShx(TruncatedFile, "shapes metadata record too short")
	}
	font.Above = int(int8(rest[1]))
	font.Below = int(int8(rest[2]))
	font.Modes = int(rest[3])
	return nil
}

// glyphAlias extracts the legacy shape name embedded in a glyph record:
// one or more leading zero bytes, then a NUL-terminated run of
// uppercase letters, digits, spaces or '&'. The bytes stay part of the
// program; the end-of-shape opcode skips them at run time.
func glyphAlias(program []byte) (string, bool) {
	i := 0
	for i < len(program) && program[i] == 0 {
		i++
	}
	if i == 0 || i >= len(program) {
		return "", false
	}
	j := i
	for j < len(program) && isAliasChar(program[j]) {
		j++
	}
	if j == i || j >= len(program) || program[j] != 0 {
		return "", false
	}
	return string(program[i:j]), true
}

func isAliasChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == ' ' || c == '&'
}

// --- Bigfont ---------------------------------------------------------------

// A bigfont container addresses glyph records by absolute file offset.
// The change table of (start,end) sub-ranges is reserved for range
// remapping and not applied.
func parseBigfont(r *reader) (*Font, error) {
	font := newFont(Bigfont)
	count, err := r.u16()
	if err != nil {
		return nil, err
	}
	if _, err = r.u16(); err != nil { // record length, unused
		return nil, err
	}
	changeCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(changeCount); i++ {
		if _, err = r.u16(); err != nil { // range start
			return nil, err
		}
		if _, err = r.u16(); err != nil { // range end
			return nil, err
		}
	}
	type entry struct {
		index  uint16
		length uint16
		offset uint32
	}
	entries := make([]entry, count)
	for i := range entries {
		if entries[i].index, err = r.u16(); err != nil {
			return nil, err
		}
		if entries[i].length, err = r.u16(); err != nil {
			return nil, err
		}
		if entries[i].offset, err = r.u32(); err != nil {
			return nil, err
		}
	}
	for _, e := range entries {
		if err := r.seek(int(e.offset)); err != nil {
			return nil, err
		}
		if e.index == 0 {
			meta, err := r.bytes(3)
			if err != nil {
				return nil, err
			}
			font.Above = int(int8(meta[0]))
			font.Below = int(int8(meta[1]))
			font.Modes = int(meta[2])
			continue
		}
		data, err := r.bytes(int(e.length))
		if err != nil {
			return nil, err
		}
		font.putGlyph(int(e.index), append([]byte(nil), data...))
	}
	return font, nil
}

// --- Unifont ---------------------------------------------------------------

// A unifont container has a single header record at fixed offset 5,
// followed by sequential (index, length, program) glyph records.
func parseUnifont(r *reader) (*Font, error) {
	font := newFont(Unifont)
	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	if _, err = r.u16(); err != nil { // record length, unused
		return nil, err
	}
	if err = r.seek(5); err != nil {
		return nil, err
	}
	if font.Name, err = r.string(); err != nil {
		return nil, err
	}
	meta, err := r.bytes(6)
	if err != nil {
		return nil, err
	}
	font.Above = int(int8(meta[0]))
	font.Below = int(int8(meta[1]))
	font.Modes = int(meta[2])
	font.Encoding = int(meta[3])
	font.Embeddable = int(meta[4])
	// meta[5] is reserved
	for i := 0; i < int(count)-1; i++ {
		index, err := r.u16()
		if err != nil {
			return nil, err
		}
		length, err := r.u16()
		if err != nil {
			return nil, err
		}
		data, err := r.bytes(int(length))
		if err != nil {
			return nil, err
		}
		font.putGlyph(int(index), append([]byte(nil), data...))
	}
	return font, nil
}
