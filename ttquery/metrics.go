package ttquery

import (
	"github.com/npillmayer/truetype/tt"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// Info returns global information about a font.
func Info(f *tt.Font) FontInfo {
	info := FontInfo{
		Revision:   f.Head.FontRevision.Float(),
		Created:    f.Head.Created.Time(),
		Modified:   f.Head.Modified.Time(),
		UnitsPerEm: f.Head.UnitsPerEm,
		NumGlyphs:  f.NumGlyphs(),
		LongLoca:   f.Head.LongLocaFormat,
	}
	for _, tag := range f.Directory.Tags() {
		info.Tables = append(info.Tables, tag.String())
	}
	return info
}

// FontMetrics retrieves selected metrics of a font.
func FontMetrics(f *tt.Font) FontMetricsInfo {
	return FontMetricsInfo{
		UnitsPerEm: sfnt.Units(f.Head.UnitsPerEm),
		Ascent:     sfnt.Units(f.HHea.Ascent),
		Descent:    sfnt.Units(f.HHea.Descent),
		LineGap:    sfnt.Units(f.HHea.LineGap),
		MaxAdvance: sfnt.Units(f.HHea.AdvanceWidthMax),
	}
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a given code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the TrueType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(f *tt.Font, codepoint rune) tt.GlyphIndex {
	return f.GlyphIndex(codepoint)
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: all code-points of the Basic Multilingual
// Plane are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(f *tt.Font, gid tt.GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	for r := rune(0); r <= 0xFFFF; r++ {
		if f.GlyphIndex(r) == gid {
			return r
		}
	}
	tracer().Debugf("no code-point maps to glyph %d", gid)
	return 0
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(f *tt.Font, gid tt.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table hmtx: advance width and left side bearing
	if aw, lsb, ok := f.HMtx.Metrics(gid); ok {
		metrics.Advance = sfnt.Units(aw)
		metrics.LSB = sfnt.Units(lsb)
	}
	//
	// table glyf: bounding box, empty for glyphs without outline
	d := f.Glyph(gid).Or(tt.GlyphRecord{}).Description
	metrics.BBox = BoundingBox{
		MinX: sfnt.Units(d.XMin),
		MinY: sfnt.Units(d.YMin),
		MaxX: sfnt.Units(d.XMax),
		MaxY: sfnt.Units(d.YMax),
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined.
	if !metrics.BBox.IsEmpty() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}
