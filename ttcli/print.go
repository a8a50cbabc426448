package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/truetype/internal/parity"
	"github.com/npillmayer/truetype/tt"
	"github.com/npillmayer/truetype/ttquery"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/runenames"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	dir := intp.font.Font.Directory
	pterm.Printf("scalar type %#08x, %d tables\n", dir.ScalarType, dir.NumTables)
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	for _, rec := range dir.Records() {
		data = append(data, []string{
			rec.Tag.String(),
			strconv.Itoa(int(rec.Offset)),
			strconv.Itoa(int(rec.Length)),
			fmt.Sprintf("%#08x", rec.Checksum),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func headOp(intp *Intp, op *Op) (error, bool) {
	info := ttquery.Info(intp.font.Font)
	head := intp.font.Font.Head
	printFields([][2]string{
		{"Font name", intp.font.Fontname},
		{"Revision", fmt.Sprintf("%g", info.Revision)},
		{"Units per em", strconv.Itoa(int(info.UnitsPerEm))},
		{"Created", info.Created.String()},
		{"Modified", info.Modified.String()},
		{"Bounding box", fmt.Sprintf("(%d,%d) – (%d,%d)", head.XMin, head.YMin, head.XMax, head.YMax)},
		{"Flags", fmt.Sprintf("%#04x", head.Flags)},
		{"Mac style", fmt.Sprintf("%#04x", head.MacStyle)},
		{"Long loca", strconv.FormatBool(info.LongLoca)},
	})
	return nil, false
}

func hheaOp(intp *Intp, op *Op) (error, bool) {
	m := ttquery.FontMetrics(intp.font.Font)
	ascent, descent, lineGap := ttquery.ScaledMetrics(m, intp.ppem)
	hhea := intp.font.Font.HHea
	printFields([][2]string{
		{"Ascent", fmt.Sprintf("%d (%s px)", m.Ascent, ascent)},
		{"Descent", fmt.Sprintf("%d (%s px)", m.Descent, descent)},
		{"Line gap", fmt.Sprintf("%d (%s px)", m.LineGap, lineGap)},
		{"Max advance", strconv.Itoa(int(m.MaxAdvance))},
		{"Caret slope", fmt.Sprintf("%d/%d", hhea.CaretSlopeRise, hhea.CaretSlopeRun)},
		{"Long metrics", strconv.Itoa(int(hhea.NumOfLongHorMetrics))},
	})
	return nil, false
}

func maxpOp(intp *Intp, op *Op) (error, bool) {
	m := intp.font.Font.MaxP
	printFields([][2]string{
		{"Glyphs", strconv.Itoa(int(m.NumGlyphs))},
		{"Max points", strconv.Itoa(int(m.MaxPoints))},
		{"Max contours", strconv.Itoa(int(m.MaxContours))},
		{"Max component points", strconv.Itoa(int(m.MaxComponentPoints))},
		{"Max component contours", strconv.Itoa(int(m.MaxComponentContours))},
		{"Max component elements", strconv.Itoa(int(m.MaxComponentElements))},
		{"Max component depth", strconv.Itoa(int(m.MaxComponentDepth))},
	})
	return nil, false
}

func cmapOp(intp *Intp, op *Op) (error, bool) {
	cmap := intp.font.Font.CMap
	data := [][]string{
		{"Offset", "Format", "Language", "Encodings", "Aliases"},
	}
	for _, enc := range cmap.Subtables {
		encs := make([]string, len(enc.Encodings))
		for i, pe := range enc.Encodings {
			encs[i] = pe.String()
		}
		data = append(data, []string{
			strconv.Itoa(int(enc.Offset)),
			strconv.Itoa(int(enc.Subtable.Format())),
			strconv.Itoa(int(enc.Subtable.Language())),
			strings.Join(encs, " "),
			fmt.Sprintf("%v", enc.AliasOffsets),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func charOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		return errors.New("usage: char:<c> or char:U+XXXX"), false
	}
	r, err := parseCodePoint(arg)
	if err != nil {
		return err, false
	}
	intp.glyph = ttquery.GlyphIndex(intp.font.Font, r)
	pterm.Printf("%#U %s => glyph %d\n", r, runenames.Name(r), intp.glyph)
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	f := intp.font.Font
	if arg, ok := op.hasArg(); ok {
		gid, err := strconv.ParseUint(arg, 10, 16)
		if err != nil {
			return fmt.Errorf("glyph index not numeric: %v", arg), false
		}
		if int(gid) >= f.NumGlyphs() {
			return fmt.Errorf("glyph %d out of range, font has %d glyphs", gid, f.NumGlyphs()), false
		}
		intp.glyph = tt.GlyphIndex(gid)
	}
	m := ttquery.GlyphMetrics(f, intp.glyph)
	upem := sfnt.Units(f.Head.UnitsPerEm)
	fields := [][2]string{
		{"Glyph", strconv.Itoa(int(intp.glyph))},
		{"Advance", fmt.Sprintf("%d (%s px)", m.Advance, ttquery.Scale(m.Advance, intp.ppem, upem))},
		{"Side bearings", fmt.Sprintf("%d / %d", m.LSB, m.RSB)},
		{"Bounding box", fmt.Sprintf("(%d,%d) – (%d,%d)", m.BBox.MinX, m.BBox.MinY, m.BBox.MaxX, m.BBox.MaxY)},
	}
	if r := ttquery.CodePointForGlyph(f, intp.glyph); r != 0 {
		fields = append(fields, [2]string{"Character", fmt.Sprintf("%#U %s", r, runenames.Name(r))})
	}
	rec, ok := f.Glyph(intp.glyph).Unwrap()
	switch {
	case !ok:
		fields = append(fields, [2]string{"Outline", "none"})
	case rec.Description.IsSimple():
		g := rec.Outline.(*tt.SimpleGlyph)
		fields = append(fields,
			[2]string{"Outline", fmt.Sprintf("simple, %d contours, %d points", len(g.EndPtsOfContours), len(g.Points))},
			[2]string{"Instructions", fmt.Sprintf("%d bytes", len(g.Instructions))})
	default:
		g := rec.Outline.(*tt.CompoundGlyph)
		comps := make([]string, len(g.Components))
		for i, c := range g.Components {
			comps[i] = fmt.Sprintf("%d %s,%s %s", c.GlyphIndex, c.Arg1, c.Arg2, c.Transform.Kind)
		}
		fields = append(fields,
			[2]string{"Outline", fmt.Sprintf("compound of %d", len(g.Components))},
			[2]string{"Components", strings.Join(comps, "; ")},
			[2]string{"Instructions", fmt.Sprintf("%d bytes", len(g.Instructions))})
	}
	printFields(fields)
	return nil, false
}

func outlineOp(intp *Intp, op *Op) (error, bool) {
	if _, ok := op.hasArg(); ok {
		if err, _ := glyphOp(intp, op); err != nil {
			return err, false
		}
	}
	f := intp.font.Font
	contours, err := ttquery.Outline(f, intp.glyph)
	if err != nil {
		return err, false
	}
	scaled := ttquery.ScaleOutline(contours, intp.ppem, sfnt.Units(f.Head.UnitsPerEm))
	for i, c := range contours {
		pterm.Printf("contour %d:\n", i)
		for j, p := range c {
			mark := "○"
			if p.OnCurve {
				mark = "●"
			}
			pterm.Printf("  %s (%5d,%5d)  %v\n", mark, p.X, p.Y, scaled[i][j].Point26_6)
		}
	}
	if len(contours) == 0 {
		pterm.Println("glyph has no outline")
	}
	return nil, false
}

func sizeOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		pterm.Printf("size is %s px per em\n", intp.ppem)
		return nil, false
	}
	px, err := strconv.ParseFloat(arg, 64)
	if err != nil || px <= 0 || px > 10000 {
		return fmt.Errorf("invalid size: %v", arg), false
	}
	intp.ppem = fixed.Int26_6(px * 64)
	return nil, false
}

func warningsOp(intp *Intp, op *Op) (error, bool) {
	warnings := intp.font.Font.Warnings()
	if len(warnings) == 0 {
		pterm.Println("no warnings")
	}
	for _, w := range warnings {
		pterm.Warning.Println(w.String())
	}
	return nil, false
}

// verifyOp decodes the font with go-text and lists where it disagrees with
// our decoding, for Latin-1 characters and all glyphs.
func verifyOp(intp *Intp, op *Op) (error, bool) {
	var runes []rune
	for r := rune(0x20); r <= 0xFF; r++ {
		if r < 0x7F || r >= 0xA0 {
			runes = append(runes, r)
		}
	}
	mm, err := parity.Compare(intp.font.Binary, intp.font.Font, runes)
	if err != nil {
		return err, false
	}
	if len(mm) == 0 {
		pterm.Success.Printf("go-text agrees on %d characters and %d glyphs\n", len(runes), intp.font.Font.NumGlyphs())
	}
	for _, m := range mm {
		pterm.Warning.Println(m.String())
	}
	return nil, false
}

func printFields(fields [][2]string) {
	data := make([][]string, len(fields))
	for i, f := range fields {
		data[i] = []string{f[0], f[1]}
	}
	pterm.DefaultTable.WithData(data).Render()
}
