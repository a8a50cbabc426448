/*
Package parity cross-checks decoded fonts against the font loader of
github.com/go-text/typesetting.

Both decoders are run on the same binary data and must agree on the glyph
selected for a character, on advance widths and on the on-curve points of
glyph outlines. Differences are reported as mismatches, not as errors; an
error is returned only if one of the decoders cannot read the font at all.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package parity

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/truetype/tt"
	"github.com/npillmayer/truetype/ttquery"
	"golang.org/x/image/font/sfnt"
)

// tracer traces with key 'truetype'
func tracer() tracing.Trace {
	return tracing.Select("truetype")
}

// Mismatch is a property on which the two decoders disagree.
type Mismatch struct {
	Glyph tt.GlyphIndex
	Rune  rune   // set for character mapping mismatches
	What  string // property compared
	Have  string // our value
	Want  string // go-text's value
}

func (m Mismatch) String() string {
	if m.Rune != 0 {
		return fmt.Sprintf("%#U %s: have %s, go-text has %s", m.Rune, m.What, m.Have, m.Want)
	}
	return fmt.Sprintf("glyph %d %s: have %s, go-text has %s", m.Glyph, m.What, m.Have, m.Want)
}

// Compare checks a decoded font against go-text's reading of data, which must
// be the binary f has been parsed from. Character mappings are compared for runes,
// metrics and outlines for every glyph of f.
func Compare(data []byte, f *tt.Font, runes []rune) ([]Mismatch, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("go-text cannot read font: %w", err)
	}
	var mm []Mismatch
	for _, r := range runes {
		gid := f.GlyphIndex(r)
		other, _ := face.NominalGlyph(r)
		if font.GID(gid) != other {
			mm = append(mm, Mismatch{Glyph: gid, Rune: r, What: "glyph",
				Have: fmt.Sprint(gid), Want: fmt.Sprint(other)})
		}
	}
	for i := 0; i < f.NumGlyphs(); i++ {
		gid := tt.GlyphIndex(i)
		adv := ttquery.GlyphMetrics(f, gid).Advance
		if other := face.HorizontalAdvance(font.GID(gid)); float32(adv) != other {
			mm = append(mm, Mismatch{Glyph: gid, What: "advance",
				Have: fmt.Sprint(adv), Want: fmt.Sprint(other)})
		}
		mm = append(mm, compareOutline(face, f, gid)...)
	}
	tracer().Debugf("parity check of %d runes and %d glyphs: %d mismatches",
		len(runes), f.NumGlyphs(), len(mm))
	return mm, nil
}

type point struct {
	x, y sfnt.Units
}

// compareOutline checks that every on-curve point of our outline starts or ends
// a segment of go-text's outline. Off-curve points are not compared, as go-text
// inserts implied on-curve points between them.
//
// go-text moves outlines horizontally so that xMin of the glyph description
// falls on the left side bearing from 'hmtx'. Our outlines keep the coordinates
// of 'glyf', so go-text's points are moved back before comparing.
func compareOutline(face *font.Face, f *tt.Font, gid tt.GlyphIndex) []Mismatch {
	contours, err := ttquery.Outline(f, gid)
	if err != nil {
		return []Mismatch{{Glyph: gid, What: "outline", Have: err.Error(), Want: "no error"}}
	}
	var shift sfnt.Units
	if rec, ok := f.Glyph(gid).Unwrap(); ok {
		shift = ttquery.GlyphMetrics(f, gid).LSB - sfnt.Units(rec.Description.XMin)
	}
	ends := map[point]bool{}
	moves := 0
	if outline, ok := face.GlyphData(font.GID(gid)).(font.GlyphOutline); ok {
		for _, seg := range outline.Segments {
			if seg.Op == ot.SegmentOpMoveTo {
				moves++
			}
			args := seg.ArgsSlice()
			end := args[len(args)-1]
			ends[point{sfnt.Units(end.X) - shift, sfnt.Units(end.Y)}] = true
		}
	}
	var mm []Mismatch
	if moves != len(contours) {
		mm = append(mm, Mismatch{Glyph: gid, What: "contours",
			Have: fmt.Sprint(len(contours)), Want: fmt.Sprint(moves)})
	}
	for _, c := range contours {
		for _, p := range c {
			if p.OnCurve && !ends[point{p.X, p.Y}] {
				mm = append(mm, Mismatch{Glyph: gid, What: "on-curve point",
					Have: fmt.Sprintf("(%d,%d)", p.X, p.Y), Want: "none"})
			}
		}
	}
	return mm
}
