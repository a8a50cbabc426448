package ttquery

import (
	"errors"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/truetype/internal/fontfixture"
	"github.com/npillmayer/truetype/tt"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Test Suite Preparation ------------------------------------------------

type QueryTestEnviron struct {
	suite.Suite
	otf *tt.Font
}

// listen for 'go test' command --> run test methods
func TestQueryFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "truetype")
	defer teardown()
	suite.Run(t, new(QueryTestEnviron))
}

// run once, before test suite methods
func (env *QueryTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.truetype").SetTraceLevel(tracing.LevelError)
	otf, err := tt.Parse(fontfixture.SampleWithLoca(true))
	env.Require().NoError(err, "cannot parse sample font")
	env.otf = otf
	tracing.Select("font.truetype").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *QueryTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *QueryTestEnviron) TestInfo() {
	info := Info(env.otf)
	env.Equal(1.5, info.Revision)
	env.Equal(time.Date(1904, 1, 1, 1, 0, 0, 0, time.UTC), info.Created)
	env.Equal(uint16(1000), info.UnitsPerEm)
	env.Equal(4, info.NumGlyphs)
	env.True(info.LongLoca)
	env.Equal([]string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp"}, info.Tables)
}

func (env *QueryTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(FontMetricsInfo{
		UnitsPerEm: 1000,
		Ascent:     800,
		Descent:    -200,
		MaxAdvance: 600,
		LineGap:    90,
	}, m)
	ascent, descent, lineGap := ScaledMetrics(m, fixed.I(10))
	env.Equal(fixed.I(8), ascent)
	env.Equal(fixed.I(-2), descent)
	env.Equal(fixed.Int26_6(58), lineGap)
}

func (env *QueryTestEnviron) TestGlyphIndex() {
	env.Equal(tt.GlyphIndex(2), GlyphIndex(env.otf, 'A'))
	env.Equal(tt.GlyphIndex(0), GlyphIndex(env.otf, 'Z'))
	r := CodePointForGlyph(env.otf, 3)
	env.Equal('B', r, "expected code-point to be %#U, is %#U", 'B', r)
	env.Equal(rune(0), CodePointForGlyph(env.otf, 0))
}

func (env *QueryTestEnviron) TestGlyphMetrics() {
	tests := []struct {
		gid      tt.GlyphIndex
		expected GlyphMetricsInfo
	}{
		{1, GlyphMetricsInfo{Advance: 250}},
		{2, GlyphMetricsInfo{Advance: 600, LSB: 50, RSB: 500,
			BBox: BoundingBox{MinX: 50, MinY: 0, MaxX: 100, MaxY: 300}}},
		{3, GlyphMetricsInfo{Advance: 600, LSB: 10, RSB: 340,
			BBox: BoundingBox{MinX: 0, MinY: -20, MaxX: 250, MaxY: 350}}},
		{7, GlyphMetricsInfo{}},
	}
	for _, test := range tests {
		env.Equal(test.expected, GlyphMetrics(env.otf, test.gid), "glyph %d", test.gid)
	}
	bbox := GlyphMetrics(env.otf, 3).BBox
	env.Equal(sfnt.Units(250), bbox.Dx())
	env.Equal(sfnt.Units(370), bbox.Dy())
}

func (env *QueryTestEnviron) TestSimpleOutline() {
	contours, err := Outline(env.otf, 2)
	env.Require().NoError(err)
	env.Equal([]Contour{{
		{X: 100, Y: 0, OnCurve: true},
		{X: 50, Y: 300, OnCurve: true},
		{X: 50, Y: 50, OnCurve: false},
	}}, contours)
	//
	contours, err = Outline(env.otf, 1)
	env.NoError(err)
	env.Nil(contours, "space has no outline")
	_, err = Outline(env.otf, 4)
	env.True(errors.Is(err, ErrGlyphIndex), "got %v", err)
}

func (env *QueryTestEnviron) TestCompoundOutline() {
	contours, err := Outline(env.otf, 3)
	env.Require().NoError(err)
	env.Equal([]Contour{
		{
			{X: 110, Y: -20, OnCurve: true},
			{X: 60, Y: 280, OnCurve: true},
			{X: 60, Y: 30, OnCurve: false},
		},
		{
			{X: 5, Y: -3, OnCurve: true},
			{X: 255, Y: -3, OnCurve: true},
			{X: 255, Y: 347, OnCurve: true},
			{X: 5, Y: 347, OnCurve: true},
		},
	}, contours)
}

func (env *QueryTestEnviron) TestAnchoredComponent() {
	glyph := compound(
		0x00, 0x22, 0, 0, 0, 0, // .notdef at offset 0,0
		0x00, 0x00, 0, 2, 2, 0, // 'A', its point 0 on point 2 of .notdef
	)
	otf := parseWithGlyph(env.T(), glyph)
	contours, err := Outline(otf, 3)
	env.Require().NoError(err)
	env.Require().Len(contours, 2)
	env.Equal(Contour{
		{X: 500, Y: 700, OnCurve: true},
		{X: 450, Y: 1000, OnCurve: true},
		{X: 450, Y: 750, OnCurve: false},
	}, contours[1])
	//
	glyph = compound(0x00, 0x00, 0, 2, 9, 0)
	_, err = Outline(parseWithGlyph(env.T(), glyph), 3)
	env.True(errors.Is(err, ErrComponentPoint), "got %v", err)
}

func (env *QueryTestEnviron) TestScaledComponentOffset() {
	glyph := compound(
		0x08, 0x0A, 0, 2, 10, 20, // scaled offset, scale 0.5
		0x20, 0x00,
	)
	contours, err := Outline(parseWithGlyph(env.T(), glyph), 3)
	env.Require().NoError(err)
	env.Equal(Point{X: 55, Y: 10, OnCurve: true}, contours[0][0])
}

func (env *QueryTestEnviron) TestRecursiveCompound() {
	glyph := compound(0x00, 0x02, 0, 3, 0, 0) // refers to itself
	_, err := Outline(parseWithGlyph(env.T(), glyph), 3)
	env.True(errors.Is(err, ErrComponentDepth), "got %v", err)
}

func (env *QueryTestEnviron) TestSharedComponentsAreLimited() {
	f := nestedFont(env.T(), fontfixture.TriangleGlyph(), 3)
	contours, err := Outline(f, 6)
	env.Require().NoError(err)
	env.Len(contours, 64, "4³ triangles")
	//
	f = nestedFont(env.T(), fontfixture.TriangleGlyph(), 10)
	_, err = Outline(f, 13)
	env.True(errors.Is(err, ErrOutlineTooComplex), "4¹⁰ triangles: got %v", err)
	//
	f = nestedFont(env.T(), fontfixture.EmptyGlyph(), 10)
	_, err = Outline(f, 13)
	env.True(errors.Is(err, ErrOutlineTooComplex), "4¹⁰ empty components: got %v", err)
}

func (env *QueryTestEnviron) TestRecordWithoutOutline() {
	f, err := tt.Parse(fontfixture.SampleWithLoca(false))
	env.Require().NoError(err)
	for i := range f.Glyf.Glyphs {
		if f.Glyf.Glyphs[i].Index == 2 {
			f.Glyf.Glyphs[i].Outline = nil
		}
	}
	_, err = Outline(f, 2)
	env.True(errors.Is(err, tt.ErrUnsupportedFormat), "got %v", err)
	_, err = Outline(f, 3)
	env.True(errors.Is(err, tt.ErrUnsupportedFormat), "as a component: got %v", err)
}

func (env *QueryTestEnviron) TestScale() {
	upem := sfnt.Units(1000)
	env.Equal(fixed.I(5), Scale(500, fixed.I(10), upem))
	env.Equal(fixed.I(-2), Scale(-200, fixed.I(10), upem))
	env.Equal(fixed.Int26_6(0), Scale(1, fixed.I(1), upem))
	env.Equal(fixed.Int26_6(1), Scale(8, fixed.I(1), upem))
	env.Equal(fixed.Int26_6(0), Scale(500, fixed.I(10), 0))
	//
	scaled := ScaleOutline([]Contour{{{X: 500, Y: 700, OnCurve: true}}}, fixed.I(10), upem)
	env.Equal([][]ScaledPoint{{{Point26_6: fixed.P(5, -7), OnCurve: true}}}, scaled)
}

// --- Helpers ----------------------------------------------------------

// compound returns a compound glyph description with the given component data.
func compound(components ...byte) []byte {
	header := []byte{0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0}
	return append(header, components...)
}

// parseWithGlyph parses the sample font with glyph 3 replaced.
func parseWithGlyph(t *testing.T, glyph []byte) *tt.Font {
	glyphs := fontfixture.SampleGlyphs()
	glyphs[3] = glyph
	glyf, _ := fontfixture.Glyf(glyphs, false, false)
	tables := fontfixture.SampleTables(false, false)
	for i := range tables {
		if tables[i].Tag == "glyf" {
			tables[i].Data = glyf
		}
	}
	otf, err := tt.Parse(fontfixture.Build(tables...))
	if err != nil {
		t.Fatalf("cannot parse font: %v", err)
	}
	return otf
}

// nestedFont returns a font where glyph 3 is base and every following glyph
// is built from four copies of its predecessor, up to glyph 3+levels.
func nestedFont(t *testing.T, base []byte, levels int) *tt.Font {
	glyphs := [][]byte{fontfixture.NotdefGlyph(), fontfixture.EmptyGlyph(), fontfixture.TriangleGlyph(), base}
	for gid := 4; gid <= 3+levels; gid++ {
		var components []byte
		for i := 0; i < 4; i++ {
			flags := byte(0x22) // xy byte offsets, more components
			if i == 3 {
				flags = 0x02
			}
			components = append(components, 0x00, flags, byte((gid-1)>>8), byte(gid-1), 0, 0)
		}
		glyphs = append(glyphs, compound(components...))
	}
	glyf, _ := fontfixture.Glyf(glyphs, false, false)
	lsbs := make([]int16, len(glyphs)-1)
	otf, err := tt.Parse(fontfixture.Build(
		fontfixture.Table{Tag: "head", Data: fontfixture.Head(false)},
		fontfixture.Table{Tag: "hhea", Data: fontfixture.HHea(1)},
		fontfixture.Table{Tag: "maxp", Data: fontfixture.MaxP(uint16(len(glyphs)))},
		fontfixture.Table{Tag: "hmtx", Data: fontfixture.HMtx([][2]int16{{500, 0}}, lsbs...)},
		fontfixture.Table{Tag: "cmap", Data: fontfixture.SampleCMap()},
		fontfixture.Table{Tag: "glyf", Data: glyf},
	))
	if err != nil {
		t.Fatalf("cannot parse font: %v", err)
	}
	return otf
}
