package ttquery

import (
	"time"

	"golang.org/x/image/font/sfnt"
)

// FontMetricsInfo holds the font-wide vertical metrics from 'hhea', in font units.
type FontMetricsInfo struct {
	UnitsPerEm      sfnt.Units // units per em as stated in 'head'
	Ascent, Descent sfnt.Units // descent is negative below the baseline
	MaxAdvance      sfnt.Units // as stated in 'hhea', not computed from 'hmtx'
	LineGap         sfnt.Units
}

// GlyphMetricsInfo holds the horizontal metrics of a single glyph, in font units.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units
	LSB, RSB sfnt.Units  // RSB = advance − LSB − width of the box
	BBox     BoundingBox // from the glyph header, empty for glyphs without outline
}

// BoundingBox is a rectangle in font units, y growing upwards.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty is true for boxes without area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.Dx() <= 0 || bbox.Dy() <= 0
}

// Dx is the width of the box.
func (bbox BoundingBox) Dx() sfnt.Units { return bbox.MaxX - bbox.MinX }

// Dy is the height of the box.
func (bbox BoundingBox) Dy() sfnt.Units { return bbox.MaxY - bbox.MinY }

// FontInfo summarizes the global properties of a font.
type FontInfo struct {
	Revision   float64   // font revision set by the manufacturer
	Created    time.Time // zero if not set
	Modified   time.Time // zero if not set
	UnitsPerEm uint16
	NumGlyphs  int
	LongLoca   bool     // glyphs are located by 32-bit offsets
	Tables     []string // tags of all tables, in directory order
}
