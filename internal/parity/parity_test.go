package parity

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/truetype/internal/fontfixture"
	"github.com/npillmayer/truetype/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleRunes = []rune{' ', 'A', 'B', 'Z', 'é', 0x1F600}

func TestSampleFontParity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	//
	for _, long := range []bool{false, true} {
		data := fontfixture.SampleWithLoca(long)
		f, err := tt.Parse(data)
		require.NoError(t, err)
		mm, err := Compare(data, f, sampleRunes)
		require.NoError(t, err)
		assert.Empty(t, mm, "long loca = %v", long)
	}
}

func TestAdvanceMismatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	//
	f, err := tt.Parse(fontfixture.SampleWithLoca(false))
	require.NoError(t, err)
	tables := fontfixture.SampleTables(true, false)
	for i := range tables {
		if tables[i].Tag == "hmtx" {
			tables[i].Data = fontfixture.HMtx([][2]int16{{500, 0}, {260, 0}, {600, 50}}, 10)
		}
	}
	mm, err := Compare(fontfixture.Build(tables...), f, sampleRunes)
	require.NoError(t, err)
	require.Len(t, mm, 1)
	assert.Equal(t, Mismatch{Glyph: 1, What: "advance", Have: "250", Want: "260"}, mm[0])
	assert.Equal(t, "glyph 1 advance: have 250, go-text has 260", mm[0].String())
}

func TestSideBearingDiffersFromXMin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	//
	tables := fontfixture.SampleTables(true, false)
	for i := range tables {
		if tables[i].Tag == "hmtx" { // glyph 2 has xMin 50, glyph 3 has xMin 0
			tables[i].Data = fontfixture.HMtx([][2]int16{{500, 0}, {250, 0}, {600, 80}}, -7)
		}
	}
	data := fontfixture.Build(tables...)
	f, err := tt.Parse(data)
	require.NoError(t, err)
	mm, err := Compare(data, f, sampleRunes)
	require.NoError(t, err)
	assert.Empty(t, mm)
}

func TestUnreadableFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	//
	f, err := tt.Parse(fontfixture.Sample())
	require.NoError(t, err)
	_, err = Compare([]byte("not a font"), f, nil)
	assert.Error(t, err)
}
