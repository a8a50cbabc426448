package tt

import (
	"fmt"
	"sort"
	"strings"
)

// Scalar types of the offset sub-table we accept.
const (
	ScalarTrueType uint32 = 0x00010000
	ScalarApple    uint32 = 0x74727565 // 'true'
	ScalarOpenType uint32 = 0x4F54544F // 'OTTO'
)

// OffsetSubTable is the 12-byte header at the start of a font file.
// The binary search hints are kept as read, they are not used for lookup.
type OffsetSubTable struct {
	ScalarType    uint32
	NumTables     uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// TableRecord locates a table within the font's binary data.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

func (r TableRecord) String() string {
	return fmt.Sprintf("'%s' @ %d [%d bytes]", r.Tag, r.Offset, r.Length)
}

// FontDirectory is the table of contents of a font: the offset sub-table
// followed by one record per table. Tags are unique within a directory.
type FontDirectory struct {
	OffsetSubTable
	records map[Tag]TableRecord
	order   []Tag // tags in file order
}

// Lookup returns the record for a table. If the font does not contain a table
// for tag, an error of kind ErrMissingTable is returned.
func (d *FontDirectory) Lookup(tag Tag) (TableRecord, error) {
	if rec, ok := d.records[tag]; ok {
		return rec, nil
	}
	return TableRecord{}, newFontError(ErrMissingTable, tag, "Directory", 0,
		"missing required table '%s'", tag)
}

// Find returns the record for an optional table.
func (d *FontDirectory) Find(tag Tag) Option[TableRecord] {
	if rec, ok := d.records[tag]; ok {
		return Some(rec)
	}
	return None[TableRecord]()
}

// Tags returns the tags of all tables in the order they appear in the directory.
func (d *FontDirectory) Tags() []Tag {
	tags := make([]Tag, len(d.order))
	copy(tags, d.order)
	return tags
}

// Records returns all table records, sorted by offset.
func (d *FontDirectory) Records() []TableRecord {
	recs := make([]TableRecord, 0, len(d.records))
	for _, tag := range d.order {
		recs = append(recs, d.records[tag])
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Offset < recs[j].Offset
	})
	return recs
}

func (d *FontDirectory) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "directory(%#08x, %d tables)", d.ScalarType, d.NumTables)
	for _, tag := range d.order {
		b.WriteString("\n  ")
		b.WriteString(d.records[tag].String())
	}
	return b.String()
}

// readDirectory reads the offset sub-table and the table records from the start
// of c. Every record is checked to lie within c's data.
func readDirectory(c *Cursor, ec *errorCollector, opts parseOptions) (*FontDirectory, error) {
	c.Section("Header")
	var h OffsetSubTable
	var err error
	if h.ScalarType, err = c.ReadU32(); err != nil {
		return nil, err
	}
	switch h.ScalarType {
	case ScalarTrueType, ScalarApple, ScalarOpenType:
	default:
		return nil, newFontError(ErrMalformedHeader, 0, "Header", 0,
			"font type not supported: %#08x", h.ScalarType)
	}
	for _, field := range []*uint16{&h.NumTables, &h.SearchRange, &h.EntrySelector, &h.RangeShift} {
		if *field, err = c.ReadU16(); err != nil {
			return nil, err
		}
	}
	tracer().Debugf("header = %#08x, %d tables", h.ScalarType, h.NumTables)
	dir := &FontDirectory{
		OffsetSubTable: h,
		records:        make(map[Tag]TableRecord, h.NumTables),
		order:          make([]Tag, 0, h.NumTables),
	}
	c.Section("TableRecords")
	recs, err := readList(c, int(h.NumTables), readTableRecord)
	if err != nil {
		return nil, err
	}
	var prevTag Tag
	for i, rec := range recs {
		recOffset := uint32(12 + 16*i)
		if _, dup := dir.records[rec.Tag]; dup {
			return nil, newFontError(ErrMalformedHeader, rec.Tag, "TableRecords", recOffset,
				"table tag '%s' occurs more than once", rec.Tag)
		}
		end, ok := checkedAdd(rec.Offset, rec.Length)
		if !ok || int64(end) > int64(c.Len()) {
			return nil, newFontError(ErrEOF, rec.Tag, "TableRecords", recOffset,
				"bounds [%d:+%d] exceed font size %d", rec.Offset, rec.Length, c.Len())
		}
		if rec.Tag < prevTag {
			ec.addWarning(rec.Tag, recOffset, "table records not sorted by tag")
		}
		if rec.Offset&3 != 0 {
			ec.addWarning(rec.Tag, rec.Offset, "table does not begin on a 4-byte boundary")
		}
		if !opts.ignoreChecksums {
			sum := tableChecksum(c.data[rec.Offset:end], rec.Tag == T("head"))
			if sum != rec.Checksum {
				ec.addWarning(rec.Tag, recOffset, "checksum %#08x does not match table data (%#08x)",
					rec.Checksum, sum)
			}
		}
		prevTag = rec.Tag
		dir.records[rec.Tag] = rec
		dir.order = append(dir.order, rec.Tag)
		tracer().Debugf("table %s", rec)
	}
	return dir, nil
}

func readTableRecord(c *Cursor) (TableRecord, error) {
	var rec TableRecord
	b, err := c.ReadSlice(16)
	if err != nil {
		return rec, err
	}
	rec.Tag = Tag(u32(b))
	rec.Checksum = u32(b[4:])
	rec.Offset = u32(b[8:])
	rec.Length = u32(b[12:])
	return rec, nil
}

// tableChecksum sums up a table as big-endian uint32 words, padding the final
// word with zeros. For table 'head' the checksum adjustment field is skipped.
func tableChecksum(b []byte, isHead bool) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		if isHead && i == 8 {
			continue
		}
		if i+4 <= len(b) {
			sum += u32(b[i:])
			continue
		}
		var last [4]byte
		copy(last[:], b[i:])
		sum += u32(last[:])
	}
	return sum
}
