package tt

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReads(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	data := []byte{
		0xFF,                         // u8
		0x80,                         // i8
		0x12, 0x34,                   // u16
		0xFF, 0xFE,                   // i16
		0xDE, 0xAD, 0xBE, 0xEF,       // u32
		0, 0, 0, 0, 0, 0, 0x0E, 0x10, // i64 3600
		0x00, 0x01, 0x80, 0x00,       // fixed 1.5
		0x40, 0x00,                   // f2dot14 1.0
		'c', 'm', 'a', 'p',           // tag
	}
	c := NewCursor(data)
	u8, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), u8)
	i8, err := c.ReadI8()
	require.NoError(t, err)
	assert.Equal(t, int8(-128), i8)
	u16, err := c.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)
	i16, err := c.ReadI16()
	require.NoError(t, err)
	assert.Equal(t, int16(-2), i16)
	u32, err := c.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	dt, err := c.ReadLongDateTime()
	require.NoError(t, err)
	assert.Equal(t, LongDateTime(3600), dt)
	assert.Equal(t, 1904, dt.Time().Year())
	assert.Equal(t, 1, dt.Time().Hour())
	fx, err := c.ReadFixed()
	require.NoError(t, err)
	assert.Equal(t, 1.5, fx.Float())
	f2, err := c.ReadF2Dot14()
	require.NoError(t, err)
	assert.Equal(t, F2Dot14One, f2)
	tag, err := c.ReadTag()
	require.NoError(t, err)
	assert.Equal(t, T("cmap"), tag)
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, len(data), c.Pos())
}

func TestCursorEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	reads := map[string]func(c *Cursor) error{
		"u8":    func(c *Cursor) error { _, err := c.ReadU8(); return err },
		"u16":   func(c *Cursor) error { _, err := c.ReadU16(); return err },
		"u32":   func(c *Cursor) error { _, err := c.ReadU32(); return err },
		"i64":   func(c *Cursor) error { _, err := c.ReadI64(); return err },
		"slice": func(c *Cursor) error { _, err := c.ReadSlice(5); return err },
	}
	for name, read := range reads {
		for size := 0; size < 8; size++ {
			c := NewCursor(make([]byte, size))
			var err error
			for err == nil {
				pos := c.Pos()
				err = read(c)
				if err != nil {
					assert.Equal(t, pos, c.Pos(), "%s: failed read must not advance", name)
				}
			}
			assert.True(t, errors.Is(err, ErrEOF), "%s on %d bytes: expected EOF, got %v", name, size, err)
			assert.LessOrEqual(t, c.Pos(), size)
		}
	}
}

func TestCursorJumpAndSub(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	c := NewCursor(data)
	require.NoError(t, c.Jump(6, 2))
	b, err := c.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(6), b)
	assert.True(t, errors.Is(c.Jump(6, 3), ErrEOF))
	assert.True(t, errors.Is(c.Jump(9, 0), ErrEOF))
	assert.True(t, errors.Is(c.Jump(-1, 0), ErrEOF))
	assert.NoError(t, c.Jump(8, 0))
	//
	sub, err := c.Sub(2, 4, T("test"))
	require.NoError(t, err)
	assert.Equal(t, 4, sub.Len())
	assert.Equal(t, uint32(2), sub.Offset())
	v, err := sub.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x02030405), v)
	_, err = sub.ReadU8()
	var ferr *FontError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, T("test"), ferr.Table)
	assert.Equal(t, uint32(6), ferr.Offset)
	//
	_, err = c.Sub(4, 5, T("test"))
	assert.True(t, errors.Is(err, ErrEOF))
	_, err = c.Sub(math.MaxInt, 2, T("test"))
	assert.True(t, errors.Is(err, ErrEOF))
}

func TestCursorSliceIsView(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	data := []byte{1, 2, 3, 4}
	c := NewCursor(data)
	b, err := c.ReadSlice(2)
	require.NoError(t, err)
	assert.Equal(t, 2, cap(b), "slice must not reach into following bytes")
	_ = append(b, 9)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
}

func TestReadList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	c := NewCursor([]byte{0, 1, 0, 2, 0, 3})
	list, err := readList(c, 3, (*Cursor).ReadU16)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2, 3}, list)
	c = NewCursor([]byte{0, 1, 0})
	_, err = readList(c, 2, (*Cursor).ReadU16)
	assert.True(t, errors.Is(err, ErrEOF))
	_, err = readList(c, -1, (*Cursor).ReadU16)
	assert.True(t, errors.Is(err, ErrArithmeticRange))
}

func TestCheckedArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	_, ok := checkedSub[uint16](3, 4)
	assert.False(t, ok, "unsigned underflow")
	d, ok := checkedSub[uint16](4, 3)
	assert.True(t, ok)
	assert.Equal(t, uint16(1), d)
	_, ok = checkedSub[int16](math.MinInt16, 1)
	assert.False(t, ok)
	_, ok = checkedAdd[uint32](math.MaxUint32, 1)
	assert.False(t, ok)
	_, ok = checkedAdd[int](math.MaxInt, 1)
	assert.False(t, ok)
	s, ok := checkedAdd[int](-3, 5)
	assert.True(t, ok)
	assert.Equal(t, 2, s)
	_, ok = checkedMul[uint32](1<<16, 1<<16)
	assert.False(t, ok)
	_, ok = checkedMul[int](math.MinInt, -1)
	assert.False(t, ok)
	_, ok = checkedMul[int8](-1, math.MinInt8)
	assert.False(t, ok)
	p, ok := checkedMul[int](-4, 5)
	assert.True(t, ok)
	assert.Equal(t, -20, p)
	p8, ok := checkedMul[int8](-1, math.MinInt8+1)
	assert.True(t, ok)
	assert.Equal(t, int8(127), p8)
	u8, ok := checkedMul[uint8](math.MaxUint8, 1)
	assert.True(t, ok, "max value of unsigned type is not -1")
	assert.Equal(t, uint8(math.MaxUint8), u8)
	_, ok = checkedMul[uint8](math.MaxUint8, 2)
	assert.False(t, ok)
}
