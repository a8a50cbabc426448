package tt

import (
	"golang.org/x/exp/constraints"
)

// Reading bytes from a font's binary representation.
// All multi-byte values in TrueType fonts are big-endian.

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func u64(b []byte) uint64 {
	_ = b[7] // Bounds check hint to compiler
	return uint64(u32(b))<<32 | uint64(u32(b[4:]))
}

// --- Cursor ----------------------------------------------------------------

// Cursor is a bounds-checked sequential reader over an immutable byte segment.
// Every read advances the cursor's position. A read which would exceed the
// segment fails with an error of kind ErrEOF and leaves the position unchanged.
//
// A cursor never modifies the bytes it reads from. Slices returned by ReadSlice
// are views into the underlying data.
type Cursor struct {
	data    []byte // read-only view
	pos     int    // current read position within data
	base    uint32 // offset of data[0] within the font's binary data
	table   Tag    // context for error messages
	section string // context for error messages
}

// NewCursor creates a cursor positioned at the start of data.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Sub returns a new cursor over the length bytes starting at offset, relative to the
// start of c's segment. The new cursor reports errors for table tag.
func (c *Cursor) Sub(offset, length int, tag Tag) (*Cursor, error) {
	end, ok := checkedAdd(offset, length)
	if offset < 0 || length < 0 || !ok || end > len(c.data) {
		return nil, c.errorf(ErrEOF, "segment [%d:+%d] of %s exceeds data of size %d",
			offset, length, tag, len(c.data))
	}
	return &Cursor{
		data:  c.data[offset:end:end],
		base:  c.base + uint32(offset),
		table: tag,
	}, nil
}

// Section sets the section name used for error messages and returns c.
func (c *Cursor) Section(name string) *Cursor {
	c.section = name
	return c
}

// Pos returns the current read position, relative to the start of the segment.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the size of the segment in bytes.
func (c *Cursor) Len() int {
	return len(c.data)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Offset returns the current read position as an offset into the font's data.
func (c *Cursor) Offset() uint32 {
	return c.base + uint32(c.pos)
}

// Jump repositions the cursor to offset and checks that at least minRemaining bytes
// are left to read from there.
func (c *Cursor) Jump(offset, minRemaining int) error {
	if offset < 0 || offset > len(c.data) {
		return c.errorf(ErrEOF, "jump to offset %d outside of data of size %d", offset, len(c.data))
	}
	c.pos = offset
	return c.ensure(minRemaining)
}

func (c *Cursor) errorf(kind ErrorKind, format string, args ...any) *FontError {
	return newFontError(kind, c.table, c.section, c.Offset(), format, args...)
}

// ensure checks that n more bytes may be read.
func (c *Cursor) ensure(n int) error {
	if n < 0 || n > len(c.data)-c.pos {
		return c.errorf(ErrEOF, "cannot read %d bytes, %d remaining", n, len(c.data)-c.pos)
	}
	return nil
}

// ReadSlice returns the next n bytes. The returned slice is a view into the
// cursor's data and must be treated as read-only.
func (c *Cursor) ReadSlice(n int) ([]byte, error) {
	if err := c.ensure(n); err != nil {
		return nil, err
	}
	b := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadU8 reads an unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.ensure(1); err != nil {
		return 0, err
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// ReadI8 reads a signed byte.
func (c *Cursor) ReadI8() (int8, error) {
	b, err := c.ReadU8()
	return int8(b), err
}

// ReadU16 reads a big-endian uint16.
func (c *Cursor) ReadU16() (uint16, error) {
	b, err := c.ReadSlice(2)
	if err != nil {
		return 0, err
	}
	return u16(b), nil
}

// ReadI16 reads a big-endian int16.
func (c *Cursor) ReadI16() (int16, error) {
	n, err := c.ReadU16()
	return int16(n), err
}

// ReadU32 reads a big-endian uint32.
func (c *Cursor) ReadU32() (uint32, error) {
	b, err := c.ReadSlice(4)
	if err != nil {
		return 0, err
	}
	return u32(b), nil
}

// ReadI64 reads a big-endian int64.
func (c *Cursor) ReadI64() (int64, error) {
	b, err := c.ReadSlice(8)
	if err != nil {
		return 0, err
	}
	return int64(u64(b)), nil
}

// ReadTag reads a 4-byte tag.
func (c *Cursor) ReadTag() (Tag, error) {
	n, err := c.ReadU32()
	return Tag(n), err
}

// ReadFixed reads a 16.16 fixed-point number.
func (c *Cursor) ReadFixed() (Fixed, error) {
	n, err := c.ReadU32()
	return Fixed(n), err
}

// ReadFWord reads a signed distance in font units.
func (c *Cursor) ReadFWord() (FWord, error) {
	n, err := c.ReadI16()
	return FWord(n), err
}

// ReadUFWord reads an unsigned distance in font units.
func (c *Cursor) ReadUFWord() (UFWord, error) {
	n, err := c.ReadU16()
	return UFWord(n), err
}

// ReadF2Dot14 reads a 2.14 fixed-point number.
func (c *Cursor) ReadF2Dot14() (F2Dot14, error) {
	n, err := c.ReadI16()
	return F2Dot14(n), err
}

// ReadLongDateTime reads a date as seconds since 1904.
func (c *Cursor) ReadLongDateTime() (LongDateTime, error) {
	n, err := c.ReadI64()
	return LongDateTime(n), err
}

// readList reads n homogeneous elements, using read for each element.
func readList[T any](c *Cursor, n int, read func(*Cursor) (T, error)) ([]T, error) {
	if n < 0 {
		return nil, c.errorf(ErrArithmeticRange, "negative list length %d", n)
	}
	list := make([]T, n)
	for i := range list {
		x, err := read(c)
		if err != nil {
			return nil, err
		}
		list[i] = x
	}
	return list, nil
}

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow and underflow.

// checkedSub returns a-b and true, or false if the result would leave the range of T.
func checkedSub[T constraints.Integer](a, b T) (T, bool) {
	d := a - b
	if (b > 0 && d > a) || (b < 0 && d < a) {
		return 0, false
	}
	return d, true
}

// checkedAdd returns a+b and true, or false if the result would leave the range of T.
func checkedAdd[T constraints.Integer](a, b T) (T, bool) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, false
	}
	return s, true
}

// checkedMul returns a*b and true, or false if the result would leave the range of T.
func checkedMul[T constraints.Integer](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	minusOne := ^T(0) // never negative for unsigned T
	if p/b != a || (a == minusOne && b < 0 && p < 0) || (b == minusOne && a < 0 && p < 0) {
		return 0, false
	}
	return p, true
}
