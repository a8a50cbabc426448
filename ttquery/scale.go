package ttquery

import (
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Scale converts a value in font units to pixels, for a font size of ppem
// pixels per em. The result is rounded to the nearest 1/64 pixel.
func Scale(u sfnt.Units, ppem fixed.Int26_6, unitsPerEm sfnt.Units) fixed.Int26_6 {
	if unitsPerEm <= 0 {
		return 0
	}
	x := int64(u) * int64(ppem)
	half := int64(unitsPerEm) / 2
	if x >= 0 {
		x += half
	} else {
		x -= half
	}
	return fixed.Int26_6(x / int64(unitsPerEm))
}

// ScaledPoint is an outline point in pixels.
type ScaledPoint struct {
	fixed.Point26_6
	OnCurve bool
}

// ScaleOutline converts contours from font units to pixels. As with
// golang.org/x/image, the y axis of the result grows downwards.
func ScaleOutline(contours []Contour, ppem fixed.Int26_6, unitsPerEm sfnt.Units) [][]ScaledPoint {
	scaled := make([][]ScaledPoint, len(contours))
	for i, c := range contours {
		scaled[i] = make([]ScaledPoint, len(c))
		for j, p := range c {
			scaled[i][j] = ScaledPoint{
				Point26_6: fixed.Point26_6{
					X: Scale(p.X, ppem, unitsPerEm),
					Y: -Scale(p.Y, ppem, unitsPerEm),
				},
				OnCurve: p.OnCurve,
			}
		}
	}
	return scaled
}

// ScaledMetrics returns the metrics of a font for a size of ppem pixels per em.
func ScaledMetrics(m FontMetricsInfo, ppem fixed.Int26_6) (ascent, descent, lineGap fixed.Int26_6) {
	ascent = Scale(m.Ascent, ppem, m.UnitsPerEm)
	descent = Scale(m.Descent, ppem, m.UnitsPerEm)
	lineGap = Scale(m.LineGap, ppem, m.UnitsPerEm)
	return
}
