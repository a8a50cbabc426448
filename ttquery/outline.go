package ttquery

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/truetype/tt"
	"golang.org/x/image/font/sfnt"
)

// Point is a point of a resolved glyph outline, in font units.
type Point struct {
	X, Y    sfnt.Units
	OnCurve bool
}

// Contour is a closed sequence of outline points.
type Contour []Point

// MaxComponentDepth is the maximum nesting level of compound glyphs.
const MaxComponentDepth = 16

// Limits on the total size of a resolved outline. Components may be shared
// between compound glyphs, so the size of an outline may grow exponentially
// with the nesting depth. Both limits are 16-bit counts in table 'maxp'.
const (
	MaxOutlinePoints     = math.MaxUint16
	MaxOutlineComponents = math.MaxUint16
)

// Errors returned when resolving compound glyphs.
var (
	ErrGlyphIndex        = errors.New("glyph index out of range")
	ErrComponentDepth    = errors.New("compound glyphs nested too deeply")
	ErrComponentPoint    = errors.New("component anchor point out of range")
	ErrOutlineTooComplex = errors.New("outline too complex")
)

// Outline returns the contours of a glyph. Compound glyphs are resolved
// recursively: every component is transformed and positioned, and its contours
// are appended in component order. Glyphs without contours return nil.
func Outline(f *tt.Font, gid tt.GlyphIndex) ([]Contour, error) {
	r := &resolver{font: f}
	contours, err := r.resolve(gid, 0)
	if err != nil {
		tracer().Errorf("outline of glyph %d: %v", gid, err)
	}
	return contours, err
}

// resolver keeps count of the points and components of one outline.
type resolver struct {
	font       *tt.Font
	points     int
	components int
}

func (r *resolver) resolve(gid tt.GlyphIndex, depth int) ([]Contour, error) {
	if depth > MaxComponentDepth {
		return nil, fmt.Errorf("glyph %d: %w", gid, ErrComponentDepth)
	}
	if int(gid) >= r.font.NumGlyphs() {
		return nil, fmt.Errorf("glyph %d of %d: %w", gid, r.font.NumGlyphs(), ErrGlyphIndex)
	}
	rec, ok := r.font.Glyph(gid).Unwrap()
	if !ok {
		return nil, nil
	}
	switch g := rec.Outline.(type) {
	case *tt.SimpleGlyph:
		if r.points += len(g.Points); r.points > MaxOutlinePoints {
			return nil, fmt.Errorf("glyph %d: more than %d points: %w", gid, MaxOutlinePoints, ErrOutlineTooComplex)
		}
		contours := make([]Contour, 0, len(g.EndPtsOfContours))
		for _, pts := range g.Contours() {
			contour := make(Contour, len(pts))
			for i, p := range pts {
				contour[i] = Point{X: sfnt.Units(p.X), Y: sfnt.Units(p.Y), OnCurve: p.OnCurve}
			}
			contours = append(contours, contour)
		}
		return contours, nil
	case *tt.CompoundGlyph:
		var contours []Contour
		for _, comp := range g.Components {
			if r.components++; r.components > MaxOutlineComponents {
				return nil, fmt.Errorf("glyph %d: more than %d components: %w",
					gid, MaxOutlineComponents, ErrOutlineTooComplex)
			}
			sub, err := r.resolve(comp.GlyphIndex, depth+1)
			if err != nil {
				return nil, err
			}
			transform(sub, comp.Transform)
			dx, dy, err := componentOffset(contours, sub, comp)
			if err != nil {
				return nil, fmt.Errorf("glyph %d: %w", gid, err)
			}
			for _, c := range sub {
				for i := range c {
					c[i].X += dx
					c[i].Y += dy
				}
			}
			contours = append(contours, sub...)
		}
		tracer().Debugf("glyph %d resolved from %d components", gid, len(g.Components))
		return contours, nil
	}
	return nil, fmt.Errorf("glyph %d has outline of type %T: %w", gid, rec.Outline, tt.ErrUnsupportedFormat)
}

// transform applies the linear transformation of a component in place.
//
//	x' = XScale·x + Scale10·y
//	y' = Scale01·x + YScale·y
func transform(contours []Contour, t tt.Transform) {
	if t.Kind == tt.TransformIdentity {
		return
	}
	a, b := t.XScale.Float(), t.Scale01.Float()
	c, d := t.Scale10.Float(), t.YScale.Float()
	for _, contour := range contours {
		for i, p := range contour {
			x, y := float64(p.X), float64(p.Y)
			contour[i].X = sfnt.Units(math.Round(a*x + c*y))
			contour[i].Y = sfnt.Units(math.Round(b*x + d*y))
		}
	}
}

// componentOffset returns the translation of a component, either given as an
// offset or by aligning a point of the glyph so far with a component point.
func componentOffset(parent, sub []Contour, comp tt.ComponentGlyph) (dx, dy sfnt.Units, err error) {
	if comp.Arg1.Kind == tt.ArgOffset {
		dx, dy = sfnt.Units(comp.Arg1.Offset), sfnt.Units(comp.Arg2.Offset)
		if comp.Flags.IsSet(tt.ScaledComponentOffset) && !comp.Flags.IsSet(tt.UnscaledComponentOffset) {
			off := []Contour{{{X: dx, Y: dy}}}
			transform(off, comp.Transform)
			dx, dy = off[0][0].X, off[0][0].Y
		}
		return dx, dy, nil
	}
	p1, ok := nthPoint(parent, int(comp.Arg1.Point))
	if !ok {
		return 0, 0, fmt.Errorf("point %d of compound: %w", comp.Arg1.Point, ErrComponentPoint)
	}
	p2, ok := nthPoint(sub, int(comp.Arg2.Point))
	if !ok {
		return 0, 0, fmt.Errorf("point %d of glyph %d: %w", comp.Arg2.Point, comp.GlyphIndex, ErrComponentPoint)
	}
	return p1.X - p2.X, p1.Y - p2.Y, nil
}

func nthPoint(contours []Contour, n int) (Point, bool) {
	for _, c := range contours {
		if n < len(c) {
			return c[n], true
		}
		n -= len(c)
	}
	return Point{}, false
}
