package tt

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/charmap"
)

// Platform identifies the platform of a cmap encoding record.
type Platform uint16

// Platform IDs as defined for encoding records.
const (
	PlatformUnicode   Platform = 0
	PlatformMacintosh Platform = 1
	PlatformISO       Platform = 2 // deprecated
	PlatformWindows   Platform = 3
	PlatformCustom    Platform = 4
)

func (p Platform) String() string {
	switch p {
	case PlatformUnicode:
		return "Unicode"
	case PlatformMacintosh:
		return "Macintosh"
	case PlatformISO:
		return "ISO"
	case PlatformWindows:
		return "Windows"
	case PlatformCustom:
		return "Custom"
	}
	return fmt.Sprintf("Platform(%d)", uint16(p))
}

func platformFromID(id uint16) (Platform, bool) {
	if id > uint16(PlatformCustom) {
		return 0, false
	}
	return Platform(id), true
}

// PlatformEncoding is a pair of platform ID and platform-specific encoding ID.
type PlatformEncoding struct {
	Platform   Platform
	EncodingID uint16
}

func (pe PlatformEncoding) String() string {
	return fmt.Sprintf("(%s,%d)", pe.Platform, pe.EncodingID)
}

// Frequently used platform/encoding pairs.
var (
	WindowsUnicodeBMP = PlatformEncoding{PlatformWindows, 1}
	WindowsSymbol     = PlatformEncoding{PlatformWindows, 0}
	MacintoshRoman    = PlatformEncoding{PlatformMacintosh, 0}
)

// CMapTable is the character to glyph index mapping table of a font.
//
// A font may reference one physical subtable from several encoding records.
// Subtables are kept keyed by their offset, in ascending order. If two offsets
// hold subtables with identical content, they are merged into one entry and the
// second offset is recorded as an alias.
type CMapTable struct {
	Version   uint16
	Subtables []CMapEncoding
	preferred int // index into Subtables for GlyphIndex, -1 if none
	encoder   func(rune) (uint32, bool)
}

// CMapEncoding is a decoded subtable together with the encoding records
// referencing it.
type CMapEncoding struct {
	Offset       uint32             // offset of the subtable from the start of the cmap table
	AliasOffsets []uint32           // offsets of identical subtables merged into this one
	Encodings    []PlatformEncoding // in encoding record order
	Subtable     CMapSubtable
}

// Lookup returns the subtable referenced by a platform/encoding pair.
func (t *CMapTable) Lookup(pe PlatformEncoding) Option[CMapSubtable] {
	for _, enc := range t.Subtables {
		if slices.Contains(enc.Encodings, pe) {
			return Some(enc.Subtable)
		}
	}
	return None[CMapSubtable]()
}

// GlyphIndex returns the glyph index for a code-point, using the preferred
// subtable of the font. Subtables are preferred in this order: Windows Unicode BMP,
// Unicode platform, Windows Symbol, Macintosh Roman. Returns 0 (the missing glyph)
// for unmapped code-points.
func (t *CMapTable) GlyphIndex(r rune) GlyphIndex {
	if t == nil || t.preferred < 0 || t.encoder == nil {
		return 0
	}
	code, ok := t.encoder(r)
	if !ok {
		return 0
	}
	return t.Subtables[t.preferred].Subtable.Lookup(code)
}

// selectPreferred sets up GlyphIndex for the best-suited subtable.
func (t *CMapTable) selectPreferred() {
	t.preferred = -1
	rank := func(pe PlatformEncoding) int {
		switch {
		case pe == WindowsUnicodeBMP:
			return 4
		case pe.Platform == PlatformUnicode:
			return 3
		case pe == WindowsSymbol:
			return 2
		case pe == MacintoshRoman:
			return 1
		}
		return 0
	}
	best := 0
	var bestEnc PlatformEncoding
	for i, enc := range t.Subtables {
		for _, pe := range enc.Encodings {
			if r := rank(pe); r > best {
				best, bestEnc, t.preferred = r, pe, i
			}
		}
	}
	switch {
	case best == 0:
		tracer().Infof("cmap: no subtable with a supported encoding")
		return
	case bestEnc == WindowsSymbol:
		t.encoder = symbolCode
	case bestEnc == MacintoshRoman:
		t.encoder = macRomanCode
	default:
		t.encoder = unicodeCode
	}
	tracer().Debugf("cmap: preferred encoding is %s", bestEnc)
}

func unicodeCode(r rune) (uint32, bool) {
	return uint32(r), r >= 0
}

// Symbol fonts map their characters into the private use area U+F000–U+F0FF.
func symbolCode(r rune) (uint32, bool) {
	if r >= 0 && r <= 0xFF {
		return 0xF000 | uint32(r), true
	}
	return uint32(r), r >= 0
}

func macRomanCode(r rune) (uint32, bool) {
	b, ok := charmap.Macintosh.EncodeRune(r)
	return uint32(b), ok
}

// --- Subtables -------------------------------------------------------------

// CMapSubtable is one of *CMapFormat0, *CMapFormat4 or *CMapFormat6.
type CMapSubtable interface {
	Format() uint16
	Language() uint16
	// Lookup returns the glyph index for a character code, or 0 if unmapped.
	Lookup(code uint32) GlyphIndex
}

// Length of a format 0 subtable: 6 bytes of header and 256 glyph indices.
const cmapFormat0Length = 262

// Format 4 end codes are terminated by this code.
const cmapFormat4Sentinel = 0xFFFF

// CMapFormat0 is a byte encoding table, mapping codes 0…255.
type CMapFormat0 struct {
	Lang            uint16
	GlyphIndexArray [256]uint8
}

func (f *CMapFormat0) Format() uint16   { return 0 }
func (f *CMapFormat0) Language() uint16 { return f.Lang }

func (f *CMapFormat0) Lookup(code uint32) GlyphIndex {
	if code > 255 {
		return 0
	}
	return GlyphIndex(f.GlyphIndexArray[code])
}

// CMapFormat4 is a segment mapping to delta values. Segments which index
// into a glyph ID array are not supported.
type CMapFormat4 struct {
	Lang           uint16
	SegCountX2     uint16
	SearchRange    uint16
	EntrySelector  uint16
	RangeShift     uint16
	EndCodes       []uint16
	StartCodes     []uint16
	IDDeltas       []int16
	IDRangeOffsets []uint16
}

func (f *CMapFormat4) Format() uint16   { return 4 }
func (f *CMapFormat4) Language() uint16 { return f.Lang }

func (f *CMapFormat4) Lookup(code uint32) GlyphIndex {
	if code > 0xFFFF {
		return 0
	}
	c := uint16(code)
	i, _ := slices.BinarySearch(f.EndCodes, c)
	if i >= len(f.EndCodes) || f.StartCodes[i] > c {
		return 0
	}
	// glyph index arithmetic is modulo 65536
	return GlyphIndex(c + uint16(f.IDDeltas[i]))
}

// CMapFormat6 is a trimmed table mapping for a contiguous range of codes.
type CMapFormat6 struct {
	Lang            uint16
	FirstCode       uint16
	GlyphIndexArray []uint16
}

func (f *CMapFormat6) Format() uint16   { return 6 }
func (f *CMapFormat6) Language() uint16 { return f.Lang }

func (f *CMapFormat6) Lookup(code uint32) GlyphIndex {
	if code < uint32(f.FirstCode) {
		return 0
	}
	i := code - uint32(f.FirstCode)
	if i >= uint32(len(f.GlyphIndexArray)) {
		return 0
	}
	return GlyphIndex(f.GlyphIndexArray[i])
}

// equalSubtables compares two subtables by content.
func equalSubtables(a, b CMapSubtable) bool {
	switch x := a.(type) {
	case *CMapFormat0:
		y, ok := b.(*CMapFormat0)
		return ok && *x == *y
	case *CMapFormat4:
		y, ok := b.(*CMapFormat4)
		return ok && x.Lang == y.Lang && x.SegCountX2 == y.SegCountX2 &&
			x.SearchRange == y.SearchRange && x.EntrySelector == y.EntrySelector &&
			x.RangeShift == y.RangeShift &&
			slices.Equal(x.EndCodes, y.EndCodes) && slices.Equal(x.StartCodes, y.StartCodes) &&
			slices.Equal(x.IDDeltas, y.IDDeltas) && slices.Equal(x.IDRangeOffsets, y.IDRangeOffsets)
	case *CMapFormat6:
		y, ok := b.(*CMapFormat6)
		return ok && x.Lang == y.Lang && x.FirstCode == y.FirstCode &&
			slices.Equal(x.GlyphIndexArray, y.GlyphIndexArray)
	}
	return false
}

// --- Reading ---------------------------------------------------------------

type encodingRecord struct {
	pe     PlatformEncoding
	offset uint32
}

func readCMap(c *Cursor, ec *errorCollector, opts parseOptions) (*CMapTable, error) {
	c.Section("Header")
	version, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, c.errorf(ErrMalformedHeader, "expected cmap version 0, got %d", version)
	}
	n, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	c.Section("EncodingRecords")
	records, err := readList(c, int(n), readEncodingRecord)
	if err != nil {
		return nil, err
	}
	// group encoding records by subtable offset, keeping record order
	byOffset := make(map[uint32][]PlatformEncoding)
	for _, rec := range records {
		byOffset[rec.offset] = append(byOffset[rec.offset], rec.pe)
	}
	offsets := make([]uint32, 0, len(byOffset))
	for off := range byOffset {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	t := &CMapTable{Version: version}
	for _, off := range offsets {
		encs := byOffset[off]
		sub, err := readCMapSubtable(c, off)
		if err != nil {
			var ferr *FontError
			if opts.skipUnsupportedFormats && errors.As(err, &ferr) && ferr.Kind == ErrUnsupportedFormat {
				ec.addWarning(T("cmap"), ferr.Offset, "skipping subtable for %v: %s", encs, ferr.Issue)
				continue
			}
			return nil, err
		}
		if i := slices.IndexFunc(t.Subtables, func(e CMapEncoding) bool {
			return equalSubtables(e.Subtable, sub)
		}); i >= 0 {
			if opts.rejectDuplicateSubtables {
				return nil, newFontError(ErrMalformedHeader, T("cmap"), "Subtables", c.base+off,
					"subtable at offset %d duplicates subtable at offset %d", off, t.Subtables[i].Offset)
			}
			ec.addWarning(T("cmap"), c.base+off, "subtable at offset %d duplicates subtable at offset %d, merged",
				off, t.Subtables[i].Offset)
			t.Subtables[i].AliasOffsets = append(t.Subtables[i].AliasOffsets, off)
			t.Subtables[i].Encodings = append(t.Subtables[i].Encodings, encs...)
			continue
		}
		tracer().Debugf("cmap subtable format %d at offset %d for %v", sub.Format(), off, encs)
		t.Subtables = append(t.Subtables, CMapEncoding{
			Offset:    off,
			Encodings: encs,
			Subtable:  sub,
		})
	}
	t.selectPreferred()
	return t, nil
}

func readEncodingRecord(c *Cursor) (encodingRecord, error) {
	var rec encodingRecord
	b, err := c.ReadSlice(8)
	if err != nil {
		return rec, err
	}
	p, ok := platformFromID(u16(b))
	if !ok {
		return rec, c.errorf(ErrMalformedHeader, "unknown platform ID %d", u16(b))
	}
	rec.pe = PlatformEncoding{Platform: p, EncodingID: u16(b[2:])}
	rec.offset = u32(b[4:])
	return rec, nil
}

// readCMapSubtable decodes the subtable at offset off from the start of the
// cmap table. The subtable has to consume exactly its declared length.
func readCMapSubtable(c *Cursor, off uint32) (CMapSubtable, error) {
	if int64(off) > int64(c.Len()) {
		return nil, c.errorf(ErrEOF, "subtable offset %d outside of cmap table", off)
	}
	c.Section("Subtable")
	if err := c.Jump(int(off), 4); err != nil {
		return nil, err
	}
	format, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	switch format {
	case 0, 4, 6:
	default:
		// formats 2, 8, 10, 12, 13, 14 and unknown formats
		return nil, c.errorf(ErrUnsupportedFormat, "cmap subtable format %d not supported", format)
	}
	length, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if format == 0 && length != cmapFormat0Length {
		return nil, c.errorf(ErrInconsistentLength,
			"format 0 subtable must have length %d, has %d", cmapFormat0Length, length)
	}
	sub, err := c.Sub(int(off), int(length), T("cmap"))
	if err != nil {
		return nil, err
	}
	if err := sub.Jump(4, 0); err != nil {
		return nil, err
	}
	var st CMapSubtable
	switch format {
	case 0:
		st, err = readCMapFormat0(sub.Section("Format0"))
	case 4:
		st, err = readCMapFormat4(sub.Section("Format4"))
	case 6:
		st, err = readCMapFormat6(sub.Section("Format6"))
	}
	if err != nil {
		return nil, err
	}
	if sub.Remaining() != 0 {
		return nil, sub.errorf(ErrInconsistentLength,
			"format %d subtable declares %d bytes, consumed %d", format, length, sub.Pos())
	}
	return st, nil
}

func readCMapFormat0(c *Cursor) (*CMapFormat0, error) {
	f := &CMapFormat0{}
	var err error
	if f.Lang, err = c.ReadU16(); err != nil {
		return nil, err
	}
	b, err := c.ReadSlice(256)
	if err != nil {
		return nil, err
	}
	copy(f.GlyphIndexArray[:], b)
	return f, nil
}

func readCMapFormat4(c *Cursor) (*CMapFormat4, error) {
	f := &CMapFormat4{}
	var err error
	for _, v := range []*uint16{&f.Lang, &f.SegCountX2, &f.SearchRange, &f.EntrySelector, &f.RangeShift} {
		if *v, err = c.ReadU16(); err != nil {
			return nil, err
		}
	}
	if f.SegCountX2&1 != 0 {
		return nil, c.errorf(ErrMalformedHeader, "odd segment count × 2: %d", f.SegCountX2)
	}
	segCount := int(f.SegCountX2 / 2)
	c.Section("EndCodes")
	if f.EndCodes, err = readList(c, segCount, (*Cursor).ReadU16); err != nil {
		return nil, err
	}
	if segCount == 0 || f.EndCodes[segCount-1] != cmapFormat4Sentinel {
		return nil, c.errorf(ErrInvalidSentinel, "end codes not terminated by %#04x", cmapFormat4Sentinel)
	}
	c.Section("ReservedPad")
	if _, err = c.ReadU16(); err != nil {
		return nil, err
	}
	c.Section("StartCodes")
	if f.StartCodes, err = readList(c, segCount, (*Cursor).ReadU16); err != nil {
		return nil, err
	}
	c.Section("IDDeltas")
	if f.IDDeltas, err = readList(c, segCount, (*Cursor).ReadI16); err != nil {
		return nil, err
	}
	c.Section("IDRangeOffsets")
	if f.IDRangeOffsets, err = readList(c, segCount, (*Cursor).ReadU16); err != nil {
		return nil, err
	}
	for i, ro := range f.IDRangeOffsets {
		if ro != 0 {
			return nil, c.errorf(ErrUnsupportedFormat,
				"segment %d indexes into glyph ID array (range offset %d)", i, ro)
		}
	}
	return f, nil
}

func readCMapFormat6(c *Cursor) (*CMapFormat6, error) {
	f := &CMapFormat6{}
	var err error
	if f.Lang, err = c.ReadU16(); err != nil {
		return nil, err
	}
	if f.FirstCode, err = c.ReadU16(); err != nil {
		return nil, err
	}
	count, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	c.Section("GlyphIndexArray")
	if f.GlyphIndexArray, err = readList(c, int(count), (*Cursor).ReadU16); err != nil {
		return nil, err
	}
	return f, nil
}
