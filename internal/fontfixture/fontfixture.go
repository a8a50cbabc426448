/*
Package fontfixture assembles small TrueType fonts in memory, for tests.

The sample font has four glyphs:

	0  .notdef   rectangle 500×700, one contour of 4 points
	1  space     no outline
	2  A         triangle with 3 points, using every coordinate encoding
	3  B         compound glyph of 'A' (offset 10,−20) and .notdef (offset 5,−3, scaled 0.5)

Characters ' ', 'A' and 'B' are mapped by a format 4 subtable shared by encodings
(0,3) and (3,1), and by a format 0 subtable for Macintosh Roman (1,0).
*/
package fontfixture

import (
	"encoding/binary"
	"sort"
)

// Table is a font table to be assembled into a font.
type Table struct {
	Tag  string
	Data []byte
}

func be16(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) }
func be32(b []byte, v uint32) []byte { return binary.BigEndian.AppendUint32(b, v) }

// Build assembles a font from tables. Table records are sorted by tag and carry
// correct checksums; tables are aligned to 4 bytes.
func Build(tables ...Table) []byte {
	sorted := make([]Table, len(tables))
	copy(sorted, tables)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })
	n := len(sorted)
	font := be32(nil, 0x00010000)
	es := 0
	for 1<<(es+1) <= n {
		es++
	}
	sr := (1 << es) * 16
	font = be16(font, uint16(n))
	font = be16(font, uint16(sr))
	font = be16(font, uint16(es))
	font = be16(font, uint16(n*16-sr))
	offset := 12 + 16*n
	var body []byte
	for _, t := range sorted {
		font = append(font, (t.Tag + "    ")[:4]...)
		font = be32(font, Checksum(t.Data, t.Tag == "head"))
		font = be32(font, uint32(offset+len(body)))
		font = be32(font, uint32(len(t.Data)))
		body = append(body, t.Data...)
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
	}
	return append(font, body...)
}

// Checksum sums up table data as uint32 words.
func Checksum(b []byte, isHead bool) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		if isHead && i == 8 {
			continue
		}
		var w [4]byte
		copy(w[:], b[i:])
		sum += binary.BigEndian.Uint32(w[:])
	}
	return sum
}

// SetLength returns a copy of font with the declared length of table tag
// changed by delta. Checksums are not updated.
func SetLength(font []byte, tag string, delta int) []byte {
	f := make([]byte, len(font))
	copy(f, font)
	n := int(binary.BigEndian.Uint16(f[4:]))
	for i := 0; i < n; i++ {
		rec := f[12+16*i : 28+16*i]
		if string(rec[:4]) == tag {
			l := int(binary.BigEndian.Uint32(rec[12:])) + delta
			binary.BigEndian.PutUint32(rec[12:], uint32(l))
		}
	}
	return f
}

// Record returns offset and length of a table of font, as declared in the directory.
func Record(font []byte, tag string) (offset, length int) {
	n := int(binary.BigEndian.Uint16(font[4:]))
	for i := 0; i < n; i++ {
		rec := font[12+16*i : 28+16*i]
		if string(rec[:4]) == tag {
			return int(binary.BigEndian.Uint32(rec[8:])), int(binary.BigEndian.Uint32(rec[12:]))
		}
	}
	return -1, 0
}

// --- Fixed-layout tables ---------------------------------------------------

// UnitsPerEm of the sample font.
const UnitsPerEm = 1000

// Head returns a 'head' table.
func Head(longLoca bool) []byte {
	b := be32(nil, 0x00010000) // version
	b = be32(b, 0x00018000)    // font revision 1.5
	b = be32(b, 0)             // checksum adjustment
	b = be32(b, 0x5F0F3CF5)
	b = be16(b, 0x000B)     // flags
	b = be16(b, UnitsPerEm) // units per em
	b = be32(b, 0)
	b = be32(b, 3600) // created: one hour after 1904-01-01
	b = be32(b, 0)
	b = be32(b, 7200) // modified
	b = be16(b, 0)    // xMin
	b = be16(b, 0)    // yMin
	b = be16(b, 500)  // xMax
	b = be16(b, 700)  // yMax
	b = be16(b, 0)    // mac style
	b = be16(b, 8)    // lowest rec ppem
	b = be16(b, 2)    // font direction hint
	if longLoca {
		b = be16(b, 1)
	} else {
		b = be16(b, 0)
	}
	return be16(b, 0) // glyph data format
}

// HHea returns a 'hhea' table.
func HHea(numLongMetrics uint16) []byte {
	b := be32(nil, 0x00010000)
	b = be16(b, 800)    // ascent
	b = be16(b, 0xFF38) // descent −200
	b = be16(b, 90)     // line gap
	b = be16(b, 600)    // advance width max
	b = be16(b, 0)      // min lsb
	b = be16(b, 0)      // min rsb
	b = be16(b, 500)    // x max extent
	b = be16(b, 1)      // caret slope rise
	b = be16(b, 0)      // caret slope run
	b = be16(b, 0)      // caret offset
	b = append(b, make([]byte, 8)...)
	b = be16(b, 0) // metric data format
	return be16(b, numLongMetrics)
}

// MaxP returns a version 1.0 'maxp' table.
func MaxP(numGlyphs uint16) []byte {
	b := be32(nil, 0x00010000)
	b = be16(b, numGlyphs)
	for i := 0; i < 13; i++ {
		b = be16(b, uint16(i+1))
	}
	return b
}

// HMtx returns a 'hmtx' table with long metrics (advance, lsb) and
// trailing left side bearings.
func HMtx(long [][2]int16, lsbs ...int16) []byte {
	var b []byte
	for _, m := range long {
		b = be16(b, uint16(m[0]))
		b = be16(b, uint16(m[1]))
	}
	for _, lsb := range lsbs {
		b = be16(b, uint16(lsb))
	}
	return b
}

// --- cmap ------------------------------------------------------------------

// Encoding is a cmap encoding record referencing subtable number Subtable.
type Encoding struct {
	Platform, EncodingID uint16
	Subtable             int
}

// CMap returns a 'cmap' table with the given encoding records and subtables.
// Subtables are placed back-to-back after the encoding records.
func CMap(encodings []Encoding, subtables ...[]byte) []byte {
	offsets := make([]uint32, len(subtables))
	off := uint32(4 + 8*len(encodings))
	for i, st := range subtables {
		offsets[i] = off
		off += uint32(len(st))
	}
	b := be16(nil, 0)
	b = be16(b, uint16(len(encodings)))
	for _, e := range encodings {
		b = be16(b, e.Platform)
		b = be16(b, e.EncodingID)
		b = be32(b, offsets[e.Subtable])
	}
	for _, st := range subtables {
		b = append(b, st...)
	}
	return b
}

// CMapFormat0 returns a format 0 subtable mapping codes to glyphs.
func CMapFormat0(m map[byte]byte) []byte {
	b := be16(nil, 0)
	b = be16(b, 262)
	b = be16(b, 0)
	arr := make([]byte, 256)
	for code, gid := range m {
		arr[code] = gid
	}
	return append(b, arr...)
}

// Segment is a format 4 segment.
type Segment struct {
	Start, End uint16
	Delta      int16
}

// CMapFormat4 returns a format 4 subtable. The sentinel segment has to be
// included by the caller.
func CMapFormat4(segs ...Segment) []byte {
	n := len(segs)
	b := be16(nil, 4)
	b = be16(b, uint16(16+8*n))
	b = be16(b, 0)
	b = be16(b, uint16(2*n))
	es := 0
	for 1<<(es+1) <= n {
		es++
	}
	b = be16(b, uint16(2*(1<<es)))
	b = be16(b, uint16(es))
	b = be16(b, uint16(2*n-2*(1<<es)))
	for _, s := range segs {
		b = be16(b, s.End)
	}
	b = be16(b, 0)
	for _, s := range segs {
		b = be16(b, s.Start)
	}
	for _, s := range segs {
		b = be16(b, uint16(s.Delta))
	}
	for range segs {
		b = be16(b, 0)
	}
	return b
}

// CMapFormat6 returns a format 6 subtable.
func CMapFormat6(first uint16, glyphs ...uint16) []byte {
	b := be16(nil, 6)
	b = be16(b, uint16(10+2*len(glyphs)))
	b = be16(b, 0)
	b = be16(b, first)
	b = be16(b, uint16(len(glyphs)))
	for _, g := range glyphs {
		b = be16(b, g)
	}
	return b
}

// SampleSegments are the format 4 segments of the sample font.
var SampleSegments = []Segment{
	{Start: 0x20, End: 0x20, Delta: 1 - 0x20},
	{Start: 0x41, End: 0x42, Delta: 2 - 0x41},
	{Start: 0xFFFF, End: 0xFFFF, Delta: 1},
}

// SampleCMap returns the 'cmap' table of the sample font.
func SampleCMap() []byte {
	return CMap([]Encoding{
		{Platform: 0, EncodingID: 3, Subtable: 0},
		{Platform: 1, EncodingID: 0, Subtable: 1},
		{Platform: 3, EncodingID: 1, Subtable: 0},
	}, CMapFormat4(SampleSegments...), CMapFormat0(map[byte]byte{0x20: 1, 0x41: 2, 0x42: 3}))
}

// --- Glyphs ----------------------------------------------------------------

func description(contours int16, xmin, ymin, xmax, ymax int16) []byte {
	b := be16(nil, uint16(contours))
	b = be16(b, uint16(xmin))
	b = be16(b, uint16(ymin))
	b = be16(b, uint16(xmax))
	return be16(b, uint16(ymax))
}

// NotdefGlyph is a rectangle with long coordinates and a repeated flag.
func NotdefGlyph() []byte {
	b := description(1, 0, 0, 500, 700)
	b = be16(b, 3)         // end point
	b = be16(b, 0)         // no instructions
	b = append(b, 0x09, 3) // on-curve, repeat 3 times
	for _, dx := range []int16{0, 500, 0, -500} {
		b = be16(b, uint16(dx))
	}
	for _, dy := range []int16{0, 0, 700, 0} {
		b = be16(b, uint16(dy))
	}
	return b
}

// EmptyGlyph is a glyph without contours.
func EmptyGlyph() []byte {
	return description(0, 0, 0, 0, 0)
}

// TriangleGlyph has points (100,0) (50,300) and off-curve (50,50).
func TriangleGlyph() []byte {
	b := description(1, 50, 0, 100, 300)
	b = be16(b, 2)                  // end point
	b = be16(b, 2)                  // instruction length
	b = append(b, 0xB0, 0x01)       // instructions
	b = append(b, 0x33, 0x03, 0x14) // flags
	b = append(b, 100, 50)          // x: short+, short−, same
	b = be16(b, 300)                // y: same, long,
	return append(b, 250)           // short−
}

// CompoundGlyph references the triangle and the rectangle.
func CompoundGlyph() []byte {
	b := description(-1, 0, -20, 250, 350)
	b = be16(b, 0x0023) // more components, xy values, words
	b = be16(b, 2)
	b = be16(b, 10)
	b = be16(b, uint16(0xFFEC)) // −20
	b = be16(b, 0x010A)         // xy values, scale, instructions
	b = be16(b, 0)
	b = append(b, 5, 0xFD) // 5, −3
	b = be16(b, 0x2000)    // scale 0.5
	b = be16(b, 1)         // instruction length
	return append(b, 0x00)
}

// SampleGlyphs returns the glyph data of the sample font.
func SampleGlyphs() [][]byte {
	return [][]byte{NotdefGlyph(), EmptyGlyph(), TriangleGlyph(), CompoundGlyph()}
}

// Glyf concatenates glyphs. If loca is requested, glyphs are padded to even
// length and a matching 'loca' table is returned, with empty glyphs taking
// no space.
func Glyf(glyphs [][]byte, withLoca, long bool) (glyf, loca []byte) {
	offsets := []uint32{0}
	for _, g := range glyphs {
		if withLoca && len(g) == 10 && g[0] == 0 && g[1] == 0 {
			offsets = append(offsets, uint32(len(glyf)))
			continue
		}
		glyf = append(glyf, g...)
		if withLoca && len(glyf)%2 != 0 {
			glyf = append(glyf, 0)
		}
		offsets = append(offsets, uint32(len(glyf)))
	}
	if !withLoca {
		return glyf, nil
	}
	for _, off := range offsets {
		if long {
			loca = be32(loca, off)
		} else {
			loca = be16(loca, uint16(off/2))
		}
	}
	return glyf, loca
}

// SampleTables returns the tables of the sample font. Without loca, glyphs
// are stored back-to-back.
func SampleTables(withLoca, longLoca bool) []Table {
	glyf, loca := Glyf(SampleGlyphs(), withLoca, longLoca)
	tables := []Table{
		{"head", Head(longLoca)},
		{"hhea", HHea(3)},
		{"maxp", MaxP(4)},
		{"hmtx", HMtx([][2]int16{{500, 0}, {250, 0}, {600, 50}}, 10)},
		{"cmap", SampleCMap()},
		{"glyf", glyf},
	}
	if withLoca {
		tables = append(tables, Table{"loca", loca})
	}
	return tables
}

// Sample returns the sample font without 'loca'.
func Sample() []byte {
	return Build(SampleTables(false, false)...)
}

// SampleWithLoca returns the sample font with a short or long 'loca' table.
func SampleWithLoca(long bool) []byte {
	return Build(SampleTables(true, long)...)
}
