package tt

// RequiredTables lists the tables every font has to contain.
var RequiredTables = []string{
	"head", "hhea", "maxp", "hmtx", "cmap", "glyf",
}

// Font is a decoded TrueType font. All values are immutable after Parse returns.
// Instruction byte slices of glyphs refer to the data the font was parsed from.
type Font struct {
	Directory *FontDirectory
	Head      *HeadTable
	HHea      *HHeaTable
	MaxP      *MaxPTable
	HMtx      *HMtxTable
	CMap      *CMapTable
	Glyf      *GlyfTable
	Loca      *LocaTable // nil if the font has no table 'loca'
	warnings  []FontWarning
}

// Glyph returns the decoded outline of a glyph. Glyphs without contours and
// glyph indices out of range are reported as None.
func (f *Font) Glyph(gid GlyphIndex) Option[GlyphRecord] {
	return f.Glyf.Glyph(gid)
}

// GlyphIndex maps a code-point to a glyph index, using the preferred
// character map of the font.
func (f *Font) GlyphIndex(r rune) GlyphIndex {
	return f.CMap.GlyphIndex(r)
}

// NumGlyphs returns the number of glyphs as stated in table 'maxp'.
func (f *Font) NumGlyphs() int {
	return int(f.MaxP.NumGlyphs)
}

// Warnings returns the non-critical issues found while parsing the font.
func (f *Font) Warnings() []FontWarning {
	w := make([]FontWarning, len(f.warnings))
	copy(w, f.warnings)
	return w
}

// Parse decodes a TrueType font from its binary representation.
// Parse returns the first error encountered, as a *FontError; no partial font is
// returned.
//
// The font keeps references into data, which therefore must not be modified while
// the font is in use.
func Parse(data []byte, opts ...ParseOption) (*Font, error) {
	otf, err := parse(data, makeParseOptions(opts))
	if err != nil {
		tracer().Errorf("parsing font: %v", err)
		return nil, err
	}
	return otf, nil
}

func parse(data []byte, opts parseOptions) (*Font, error) {
	ec := &errorCollector{}
	root := NewCursor(data)
	dir, err := readDirectory(root, ec, opts)
	if err != nil {
		return nil, err
	}
	for _, tag := range RequiredTables {
		if _, err := dir.Lookup(T(tag)); err != nil {
			return nil, err
		}
	}
	otf := &Font{Directory: dir}
	c, err := tableCursor(root, dir, T("head"))
	if err != nil {
		return nil, err
	}
	if otf.Head, err = readHead(c); err != nil {
		return nil, err
	}
	if err = checkConsumed(c); err != nil {
		return nil, err
	}
	if c, err = tableCursor(root, dir, T("maxp")); err != nil {
		return nil, err
	}
	if otf.MaxP, err = readMaxP(c); err != nil {
		return nil, err
	}
	if err = checkConsumed(c); err != nil {
		return nil, err
	}
	if c, err = tableCursor(root, dir, T("hhea")); err != nil {
		return nil, err
	}
	if otf.HHea, err = readHHea(c); err != nil {
		return nil, err
	}
	if err = checkConsumed(c); err != nil {
		return nil, err
	}
	if c, err = tableCursor(root, dir, T("hmtx")); err != nil {
		return nil, err
	}
	if otf.HMtx, err = readHMtx(c, otf.HHea.NumOfLongHorMetrics, otf.MaxP.NumGlyphs); err != nil {
		return nil, err
	}
	if err = checkConsumed(c); err != nil {
		return nil, err
	}
	// subtables of 'cmap' are located by offset and may leave gaps
	if c, err = tableCursor(root, dir, T("cmap")); err != nil {
		return nil, err
	}
	if otf.CMap, err = readCMap(c, ec, opts); err != nil {
		return nil, err
	}
	glyfRec, _ := dir.Lookup(T("glyf"))
	if rec, ok := dir.Find(T("loca")).Unwrap(); ok {
		if c, err = tableCursor(root, dir, rec.Tag); err != nil {
			return nil, err
		}
		otf.Loca, err = readLoca(c, otf.MaxP.NumGlyphs, otf.Head.LongLocaFormat, glyfRec.Length)
		if err != nil {
			return nil, err
		}
	}
	if c, err = tableCursor(root, dir, T("glyf")); err != nil {
		return nil, err
	}
	if otf.Loca != nil {
		otf.Glyf, err = readGlyfIndexed(c, otf.Loca)
	} else {
		tracer().Debugf("no table 'loca', reading glyphs sequentially")
		otf.Glyf, err = readGlyfSequential(c, otf.MaxP.NumGlyphs)
	}
	if err != nil {
		return nil, err
	}
	for _, tag := range dir.order {
		if !isInterpreted(tag) {
			tracer().Infof("table '%s' not interpreted", tag)
		}
	}
	otf.warnings = ec.warnings
	if ec.hasWarnings() {
		tracer().Infof("font parsed with %d warnings", len(ec.warnings))
	}
	return otf, nil
}

// tableCursor returns a cursor bounded to the extent of a table.
func tableCursor(root *Cursor, dir *FontDirectory, tag Tag) (*Cursor, error) {
	rec, err := dir.Lookup(tag)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("reading %s", rec)
	return root.Sub(int(rec.Offset), int(rec.Length), tag)
}

// checkConsumed verifies that a table reader consumed its table exactly.
func checkConsumed(c *Cursor) error {
	if c.Remaining() != 0 {
		return c.Section("Length").errorf(ErrInconsistentLength,
			"table declares %d bytes, consumed %d", c.Len(), c.Pos())
	}
	return nil
}

func isInterpreted(tag Tag) bool {
	if tag == T("loca") {
		return true
	}
	for _, t := range RequiredTables {
		if T(t) == tag {
			return true
		}
	}
	return false
}
