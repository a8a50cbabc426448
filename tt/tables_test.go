package tt

import (
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/truetype/internal/fontfixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedTableSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	assert.Len(t, fontfixture.Head(false), headTableSize)
	assert.Len(t, fontfixture.HHea(1), hheaTableSize)
	assert.Len(t, fontfixture.MaxP(1), maxpTableSize)
}

func TestReadHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	c := tableCursorOf(t, "head", fontfixture.Head(true))
	head, err := readHead(c)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Remaining())
	assert.Equal(t, Version1, head.Version)
	assert.Equal(t, 1.5, head.FontRevision.Float())
	assert.Equal(t, uint16(fontfixture.UnitsPerEm), head.UnitsPerEm)
	assert.True(t, head.LongLocaFormat)
	assert.Equal(t, time.Date(1904, 1, 1, 2, 0, 0, 0, time.UTC), head.Modified.Time())
	assert.Equal(t, FWord(700), head.YMax)
	//
	_, err = readHead(tableCursorOf(t, "head", fontfixture.Head(false)[:headTableSize-1]))
	assert.True(t, errors.Is(err, ErrEOF), "got %v", err)
}

func TestReadHHeaAndMaxP(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	hhea, err := readHHea(tableCursorOf(t, "hhea", fontfixture.HHea(3)))
	require.NoError(t, err)
	assert.Equal(t, FWord(800), hhea.Ascent)
	assert.Equal(t, FWord(-200), hhea.Descent)
	assert.Equal(t, UFWord(600), hhea.AdvanceWidthMax)
	assert.Equal(t, uint16(3), hhea.NumOfLongHorMetrics)
	//
	maxp, err := readMaxP(tableCursorOf(t, "maxp", fontfixture.MaxP(4)))
	require.NoError(t, err)
	assert.Equal(t, uint16(4), maxp.NumGlyphs)
	assert.Equal(t, uint16(1), maxp.MaxPoints)
	assert.Equal(t, uint16(13), maxp.MaxComponentDepth)
}

func TestHMtx(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	data := fontfixture.HMtx([][2]int16{{500, 0}, {600, -5}}, 7, 8)
	hmtx, err := readHMtx(tableCursorOf(t, "hmtx", data), 2, 4)
	require.NoError(t, err)
	tests := []struct {
		gid     GlyphIndex
		advance uint16
		lsb     int16
		ok      bool
	}{
		{0, 500, 0, true},
		{1, 600, -5, true},
		{2, 600, 7, true},
		{3, 600, 8, true},
		{4, 0, 0, false},
	}
	for _, test := range tests {
		advance, lsb, ok := hmtx.Metrics(test.gid)
		assert.Equal(t, test.ok, ok, "glyph %d", test.gid)
		assert.Equal(t, test.advance, advance, "glyph %d", test.gid)
		assert.Equal(t, test.lsb, lsb, "glyph %d", test.gid)
	}
	//
	_, err = readHMtx(tableCursorOf(t, "hmtx", data), 5, 4)
	assert.True(t, errors.Is(err, ErrArithmeticRange), "got %v", err)
	_, err = readHMtx(tableCursorOf(t, "hmtx", data), 2, 5)
	assert.True(t, errors.Is(err, ErrEOF), "got %v", err)
	//
	empty, err := readHMtx(tableCursorOf(t, "hmtx", nil), 0, 0)
	require.NoError(t, err)
	_, _, ok := empty.Metrics(0)
	assert.False(t, ok)
}
