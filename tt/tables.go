package tt

// Readers for the fixed-layout tables 'head', 'hhea', 'maxp' and 'hmtx'.
// Each reader is run on a cursor bounded to the table's extent.

// Version1 is version 1.0 as a 16.16 fixed-point number.
const Version1 Fixed = 0x00010000

// HeadMagic is the magic number of table 'head'.
const HeadMagic uint32 = 0x5F0F3CF5

// Byte sizes of the fixed-layout tables.
const (
	headTableSize = 54
	hheaTableSize = 36
	maxpTableSize = 32
)

// --- head ------------------------------------------------------------------

// HeadTable gives global information about the font.
type HeadTable struct {
	Version            Fixed
	FontRevision       Fixed
	ChecksumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            LongDateTime
	Modified           LongDateTime
	XMin, YMin         FWord
	XMax, YMax         FWord
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	LongLocaFormat     bool // 'loca' uses 32-bit offsets
	GlyphDataFormat    int16
}

func readHead(c *Cursor) (*HeadTable, error) {
	h := &HeadTable{}
	var err error
	if h.Version, err = readVersion(c); err != nil {
		return nil, err
	}
	if h.FontRevision, err = c.ReadFixed(); err != nil {
		return nil, err
	}
	if h.ChecksumAdjustment, err = c.ReadU32(); err != nil {
		return nil, err
	}
	c.Section("Magic")
	if h.MagicNumber, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if h.MagicNumber != HeadMagic {
		return nil, c.errorf(ErrMalformedHeader, "incorrect magic number %#08x", h.MagicNumber)
	}
	c.Section("Fields")
	if h.Flags, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.UnitsPerEm, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.Created, err = c.ReadLongDateTime(); err != nil {
		return nil, err
	}
	if h.Modified, err = c.ReadLongDateTime(); err != nil {
		return nil, err
	}
	for _, v := range []*FWord{&h.XMin, &h.YMin, &h.XMax, &h.YMax} {
		if *v, err = c.ReadFWord(); err != nil {
			return nil, err
		}
	}
	if h.MacStyle, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.LowestRecPPEM, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if h.FontDirectionHint, err = c.ReadI16(); err != nil {
		return nil, err
	}
	c.Section("IndexToLocFormat")
	locFormat, err := c.ReadI16()
	if err != nil {
		return nil, err
	}
	switch locFormat {
	case 0:
		h.LongLocaFormat = false
	case 1:
		h.LongLocaFormat = true
	default:
		return nil, c.errorf(ErrMalformedHeader, "index to loc format must be 0 or 1, is %d", locFormat)
	}
	c.Section("GlyphDataFormat")
	if h.GlyphDataFormat, err = c.ReadI16(); err != nil {
		return nil, err
	}
	if h.GlyphDataFormat != 0 {
		return nil, c.errorf(ErrMalformedHeader, "glyph data format must be 0, is %d", h.GlyphDataFormat)
	}
	return h, nil
}

func readVersion(c *Cursor) (Fixed, error) {
	c.Section("Version")
	v, err := c.ReadFixed()
	if err != nil {
		return 0, err
	}
	if v != Version1 {
		return 0, c.errorf(ErrMalformedHeader, "expected version 1.0, got %#08x", uint32(v))
	}
	return v, nil
}

// --- hhea ------------------------------------------------------------------

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	Version             Fixed
	Ascent              FWord
	Descent             FWord
	LineGap             FWord
	AdvanceWidthMax     UFWord
	MinLeftSideBearing  FWord
	MinRightSideBearing FWord
	XMaxExtent          FWord
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         FWord
	Reserved            [4]int16
	MetricDataFormat    int16
	NumOfLongHorMetrics uint16
}

func readHHea(c *Cursor) (*HHeaTable, error) {
	h := &HHeaTable{}
	var err error
	if h.Version, err = readVersion(c); err != nil {
		return nil, err
	}
	c.Section("Fields")
	for _, v := range []*FWord{&h.Ascent, &h.Descent, &h.LineGap} {
		if *v, err = c.ReadFWord(); err != nil {
			return nil, err
		}
	}
	if h.AdvanceWidthMax, err = c.ReadUFWord(); err != nil {
		return nil, err
	}
	for _, v := range []*FWord{&h.MinLeftSideBearing, &h.MinRightSideBearing, &h.XMaxExtent} {
		if *v, err = c.ReadFWord(); err != nil {
			return nil, err
		}
	}
	if h.CaretSlopeRise, err = c.ReadI16(); err != nil {
		return nil, err
	}
	if h.CaretSlopeRun, err = c.ReadI16(); err != nil {
		return nil, err
	}
	if h.CaretOffset, err = c.ReadFWord(); err != nil {
		return nil, err
	}
	for i := range h.Reserved {
		if h.Reserved[i], err = c.ReadI16(); err != nil {
			return nil, err
		}
	}
	if h.MetricDataFormat, err = c.ReadI16(); err != nil {
		return nil, err
	}
	if h.NumOfLongHorMetrics, err = c.ReadU16(); err != nil {
		return nil, err
	}
	return h, nil
}

// --- maxp ------------------------------------------------------------------

// MaxPTable establishes the memory requirements for the font (version 1.0 layout).
type MaxPTable struct {
	Version               Fixed
	NumGlyphs             uint16
	MaxPoints             uint16
	MaxContours           uint16
	MaxComponentPoints    uint16
	MaxComponentContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

func readMaxP(c *Cursor) (*MaxPTable, error) {
	m := &MaxPTable{}
	var err error
	if m.Version, err = readVersion(c); err != nil {
		return nil, err
	}
	c.Section("Fields")
	fields := []*uint16{
		&m.NumGlyphs, &m.MaxPoints, &m.MaxContours, &m.MaxComponentPoints,
		&m.MaxComponentContours, &m.MaxZones, &m.MaxTwilightPoints, &m.MaxStorage,
		&m.MaxFunctionDefs, &m.MaxInstructionDefs, &m.MaxStackElements,
		&m.MaxSizeOfInstructions, &m.MaxComponentElements, &m.MaxComponentDepth,
	}
	for _, f := range fields {
		if *f, err = c.ReadU16(); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// --- hmtx ------------------------------------------------------------------

// LongHorMetric is a pair of advance width and left side bearing.
type LongHorMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// HMtxTable contains horizontal metrics for each glyph. Glyphs beyond the long
// metrics share the advance width of the last long metric and carry only a
// left side bearing.
type HMtxTable struct {
	LongMetrics      []LongHorMetric
	LeftSideBearings []FWord
}

// Metrics returns advance width and left side bearing for a glyph.
// If the glyph is out of range, ok is false.
func (t *HMtxTable) Metrics(gid GlyphIndex) (advance uint16, lsb int16, ok bool) {
	n := len(t.LongMetrics)
	if n == 0 {
		return 0, 0, false
	}
	if int(gid) < n {
		m := t.LongMetrics[gid]
		return m.AdvanceWidth, m.LeftSideBearing, true
	}
	i := int(gid) - n
	if i >= len(t.LeftSideBearings) {
		return 0, 0, false
	}
	return t.LongMetrics[n-1].AdvanceWidth, int16(t.LeftSideBearings[i]), true
}

func readHMtx(c *Cursor, numLongMetrics, numGlyphs uint16) (*HMtxTable, error) {
	c.Section("LongMetrics")
	lsbCount, ok := checkedSub(int(numGlyphs), int(numLongMetrics))
	if !ok || lsbCount < 0 {
		return nil, c.errorf(ErrArithmeticRange,
			"number of glyphs %d less than number of long metrics %d", numGlyphs, numLongMetrics)
	}
	t := &HMtxTable{}
	var err error
	if t.LongMetrics, err = readList(c, int(numLongMetrics), readLongHorMetric); err != nil {
		return nil, err
	}
	c.Section("LeftSideBearings")
	if t.LeftSideBearings, err = readList(c, lsbCount, (*Cursor).ReadFWord); err != nil {
		return nil, err
	}
	return t, nil
}

func readLongHorMetric(c *Cursor) (LongHorMetric, error) {
	var m LongHorMetric
	b, err := c.ReadSlice(4)
	if err != nil {
		return m, err
	}
	m.AdvanceWidth = u16(b)
	m.LeftSideBearing = int16(u16(b[2:]))
	return m, nil
}
