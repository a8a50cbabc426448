package tt

// LocaTable stores the offsets of glyphs relative to the beginning of table 'glyf'.
// Glyph i occupies the bytes [Offsets[i], Offsets[i+1]). An empty extent denotes
// a glyph without outline.
type LocaTable struct {
	Offsets []uint32 // NumGlyphs+1 offsets, non-decreasing
	Long    bool     // read from 32-bit entries
}

// NumGlyphs returns the number of glyphs located by the table.
func (t *LocaTable) NumGlyphs() int {
	if len(t.Offsets) == 0 {
		return 0
	}
	return len(t.Offsets) - 1
}

// Extent returns offset and length of a glyph within table 'glyf'.
func (t *LocaTable) Extent(gid GlyphIndex) (offset, length uint32, ok bool) {
	if int(gid) >= t.NumGlyphs() {
		return 0, 0, false
	}
	start, end := t.Offsets[gid], t.Offsets[gid+1]
	return start, end - start, true
}

// readLoca reads numGlyphs+1 offsets. Short offsets are stored divided by 2.
// Every offset has to lie within a 'glyf' table of size glyfLength.
func readLoca(c *Cursor, numGlyphs uint16, long bool, glyfLength uint32) (*LocaTable, error) {
	c.Section("Offsets")
	entrySize := 2
	if long {
		entrySize = 4
	}
	n := int(numGlyphs) + 1
	size, ok := checkedMul(n, entrySize)
	if !ok || size != c.Len() {
		return nil, c.errorf(ErrInconsistentLength, "%d offsets of %d bytes need %d bytes, table has %d",
			n, entrySize, size, c.Len())
	}
	t := &LocaTable{Long: long}
	var err error
	if long {
		t.Offsets, err = readList(c, n, (*Cursor).ReadU32)
	} else {
		t.Offsets, err = readList(c, n, func(c *Cursor) (uint32, error) {
			off, err := c.ReadU16()
			return uint32(off) * 2, err
		})
	}
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if t.Offsets[i] < t.Offsets[i-1] {
			return nil, newFontError(ErrMalformedHeader, T("loca"), "Offsets", c.base+uint32(i*entrySize),
				"offset of glyph %d less than offset of glyph %d", i, i-1)
		}
	}
	if last := t.Offsets[n-1]; last > glyfLength {
		return nil, newFontError(ErrEOF, T("loca"), "Offsets", c.base+uint32((n-1)*entrySize),
			"glyph data end %d exceeds table 'glyf' of size %d", last, glyfLength)
	}
	return t, nil
}
