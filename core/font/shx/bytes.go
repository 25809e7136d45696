package shx

// Reading bytes from a font's binary representation.
// SHX containers are little-endian throughout.

func u16le(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler.
	return uint16(b[0]) | uint16(b[1])<<8
}

func u32le(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler.
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// fontBinSegm is a segment of byte data.
type fontBinSegm []byte

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b fontBinSegm) view(offset, n int) (fontBinSegm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) {
		return nil, errShx(TruncatedFile, "need %d bytes at offset %d, have %d", n, offset, len(b))
	}
	return b[offset : offset+n], nil
}

// reader is a cursor over a font's binary data. Every short read is a
// fatal TruncatedFile error; the parser performs no partial recovery.
type reader struct {
	data fontBinSegm
	pos  int
}

func (r *reader) bytes(n int) (fontBinSegm, error) {
	b, err := r.data.view(r.pos, n)
	if err != nil {
		return nil, err
	}
	r.pos += n
	return b, nil
}

func (r *reader) u8() (uint8, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) u16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return u16le(b), nil
}

func (r *reader) u32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return u32le(b), nil
}

// seek positions the cursor at an absolute offset. Bigfont containers
// address glyph records by absolute file offset.
func (r *reader) seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return errShx(TruncatedFile, "seek to %d beyond end of file (%d)", offset, len(r.data))
	}
	r.pos = offset
	return nil
}

// line reads bytes up to (and consuming) a line terminator or NUL.
func (r *reader) line() (string, error) {
	start := r.pos
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		r.pos++
		if c == '\r' || c == '\n' || c == 0 {
			return string(r.data[start : r.pos-1]), nil
		}
	}
	return "", errShx(TruncatedFile, "unterminated header line")
}

// string reads bytes up to (and consuming) a NUL terminator.
func (r *reader) string() (string, error) {
	start := r.pos
	for r.pos < len(r.data) {
		c := r.data[r.pos]
		r.pos++
		if c == 0 {
			return string(r.data[start : r.pos-1]), nil
		}
	}
	return "", errShx(TruncatedFile, "unterminated string")
}
