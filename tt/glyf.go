package tt

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/slices"
)

// GlyphDescription is the header of every glyph in table 'glyf'.
// A positive contour count denotes a simple glyph, a negative one a compound glyph.
type GlyphDescription struct {
	NumberOfContours int16
	XMin, YMin       FWord
	XMax, YMax       FWord
}

// IsSimple returns true if the glyph is described by its own contours.
func (d GlyphDescription) IsSimple() bool {
	return d.NumberOfContours > 0
}

// IsCompound returns true if the glyph is assembled from other glyphs.
func (d GlyphDescription) IsCompound() bool {
	return d.NumberOfContours < 0
}

// Outline is either a *SimpleGlyph or a *CompoundGlyph.
type Outline interface {
	outline()
}

// GlyphRecord is a decoded glyph. Glyphs without contours (e.g., space) have
// no record.
type GlyphRecord struct {
	Index       GlyphIndex
	Description GlyphDescription
	Outline     Outline
}

// GlyfTable holds the decoded outlines of a font, ordered by glyph index.
type GlyfTable struct {
	Glyphs []GlyphRecord
}

// Glyph returns the record for a glyph index. Glyphs without an outline are
// reported as None.
func (t *GlyfTable) Glyph(gid GlyphIndex) Option[GlyphRecord] {
	i, found := slices.BinarySearchFunc(t.Glyphs, gid, func(r GlyphRecord, g GlyphIndex) int {
		return int(r.Index) - int(g)
	})
	if !found {
		return None[GlyphRecord]()
	}
	return Some(t.Glyphs[i])
}

// --- Simple glyphs ---------------------------------------------------------

// SimpleGlyphFlag is the per-point flag of a simple glyph.
type SimpleGlyphFlag uint8

// Flag bits for points of simple glyphs.
const (
	OnCurvePoint      SimpleGlyphFlag = 0x01
	XShortVector      SimpleGlyphFlag = 0x02
	YShortVector      SimpleGlyphFlag = 0x04
	RepeatFlag        SimpleGlyphFlag = 0x08
	XIsSameOrPositive SimpleGlyphFlag = 0x10
	YIsSameOrPositive SimpleGlyphFlag = 0x20
	OverlapSimple     SimpleGlyphFlag = 0x40
)

// IsSet returns true if all bits of flag are set.
func (f SimpleGlyphFlag) IsSet(flag SimpleGlyphFlag) bool {
	return f&flag == flag
}

func (f SimpleGlyphFlag) String() string {
	names := []string{"on-curve", "x-short", "y-short", "repeat", "x-same", "y-same", "overlap"}
	var set []string
	for i, name := range names {
		if f&(1<<i) != 0 {
			set = append(set, name)
		}
	}
	return "[" + strings.Join(set, ",") + "]"
}

// Point is a point of a glyph outline in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// SimpleGlyph is a glyph described by its own contours.
type SimpleGlyph struct {
	EndPtsOfContours []uint16
	Instructions     []byte // view into the font data
	Flags            []SimpleGlyphFlag
	Points           []Point
}

func (*SimpleGlyph) outline() {}

// Contours returns the points of the glyph split into contours.
func (g *SimpleGlyph) Contours() [][]Point {
	contours := make([][]Point, 0, len(g.EndPtsOfContours))
	start := 0
	for _, end := range g.EndPtsOfContours {
		contours = append(contours, g.Points[start:int(end)+1])
		start = int(end) + 1
	}
	return contours
}

// coordEncoding tells how a coordinate delta is stored, as determined by the
// short-vector and is-same-or-positive bits of a point's flag.
type coordEncoding int

const (
	coordShortPositive coordEncoding = iota // unsigned byte, added
	coordShortNegative                      // unsigned byte, subtracted
	coordSame                               // no data, coordinate unchanged
	coordLong                               // signed 16-bit delta
)

func coordEncodingOf(short, sameOrPositive bool) coordEncoding {
	switch {
	case short && sameOrPositive:
		return coordShortPositive
	case short:
		return coordShortNegative
	case sameOrPositive:
		return coordSame
	}
	return coordLong
}

func xEncoding(f SimpleGlyphFlag) coordEncoding {
	return coordEncodingOf(f.IsSet(XShortVector), f.IsSet(XIsSameOrPositive))
}

func yEncoding(f SimpleGlyphFlag) coordEncoding {
	return coordEncodingOf(f.IsSet(YShortVector), f.IsSet(YIsSameOrPositive))
}

func readDelta(c *Cursor, enc coordEncoding) (int32, error) {
	switch enc {
	case coordShortPositive:
		b, err := c.ReadU8()
		return int32(b), err
	case coordShortNegative:
		b, err := c.ReadU8()
		return -int32(b), err
	case coordSame:
		return 0, nil
	case coordLong:
		d, err := c.ReadI16()
		return int32(d), err
	}
	return 0, c.errorf(ErrUnsupportedFormat, "unknown coordinate encoding %d", enc)
}

// readCoordinates reads one coordinate per flag and accumulates the deltas
// into absolute coordinates, starting at 0.
func readCoordinates(c *Cursor, flags []SimpleGlyphFlag, encoding func(SimpleGlyphFlag) coordEncoding) ([]int16, error) {
	coords := make([]int16, len(flags))
	var v int32
	for i, f := range flags {
		d, err := readDelta(c, encoding(f))
		if err != nil {
			return nil, err
		}
		v += d
		if v < math.MinInt16 || v > math.MaxInt16 {
			return nil, c.errorf(ErrArithmeticRange, "coordinate %d of point %d out of range", v, i)
		}
		coords[i] = int16(v)
	}
	return coords, nil
}

func readSimpleGlyph(c *Cursor, contours int) (*SimpleGlyph, error) {
	g := &SimpleGlyph{}
	var err error
	c.Section("EndPoints")
	if g.EndPtsOfContours, err = readList(c, contours, (*Cursor).ReadU16); err != nil {
		return nil, err
	}
	for i := 1; i < len(g.EndPtsOfContours); i++ {
		if g.EndPtsOfContours[i] < g.EndPtsOfContours[i-1] {
			return nil, c.errorf(ErrMalformedHeader, "end point %d of contour %d less than end point %d of contour %d",
				g.EndPtsOfContours[i], i, g.EndPtsOfContours[i-1], i-1)
		}
	}
	numPoints := int(g.EndPtsOfContours[contours-1]) + 1
	c.Section("Instructions")
	n, err := c.ReadU16()
	if err != nil {
		return nil, err
	}
	if g.Instructions, err = c.ReadSlice(int(n)); err != nil {
		return nil, err
	}
	c.Section("Flags")
	if g.Flags, err = readFlags(c, numPoints); err != nil {
		return nil, err
	}
	c.Section("XCoordinates")
	xs, err := readCoordinates(c, g.Flags, xEncoding)
	if err != nil {
		return nil, err
	}
	c.Section("YCoordinates")
	ys, err := readCoordinates(c, g.Flags, yEncoding)
	if err != nil {
		return nil, err
	}
	g.Points = make([]Point, numPoints)
	for i := range g.Points {
		g.Points[i] = Point{X: xs[i], Y: ys[i], OnCurve: g.Flags[i].IsSet(OnCurvePoint)}
	}
	return g, nil
}

// readFlags expands run-length encoded flags to exactly n flags.
func readFlags(c *Cursor, n int) ([]SimpleGlyphFlag, error) {
	flags := make([]SimpleGlyphFlag, 0, n)
	for len(flags) < n {
		b, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		f := SimpleGlyphFlag(b)
		flags = append(flags, f)
		if !f.IsSet(RepeatFlag) {
			continue
		}
		repeat, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		if len(flags)+int(repeat) > n {
			return nil, c.errorf(ErrInconsistentLength, "flag repeat count %d exceeds %d points", repeat, n)
		}
		for i := 0; i < int(repeat); i++ {
			flags = append(flags, f)
		}
	}
	return flags, nil
}

// --- Compound glyphs -------------------------------------------------------

// ComponentFlag is the flag word of a component of a compound glyph.
type ComponentFlag uint16

// Flag bits for components of compound glyphs.
const (
	Arg1And2AreWords        ComponentFlag = 0x0001
	ArgsAreXYValues         ComponentFlag = 0x0002
	RoundXYToGrid           ComponentFlag = 0x0004
	WeHaveAScale            ComponentFlag = 0x0008
	MoreComponents          ComponentFlag = 0x0020
	WeHaveAnXAndYScale      ComponentFlag = 0x0040
	WeHaveATwoByTwo         ComponentFlag = 0x0080
	WeHaveInstructions      ComponentFlag = 0x0100
	UseMyMetrics            ComponentFlag = 0x0200
	OverlapCompound         ComponentFlag = 0x0400
	ScaledComponentOffset   ComponentFlag = 0x0800
	UnscaledComponentOffset ComponentFlag = 0x1000
)

// IsSet returns true if all bits of flag are set.
func (f ComponentFlag) IsSet(flag ComponentFlag) bool {
	return f&flag == flag
}

// ArgumentKind tells how the arguments of a component position it.
type ArgumentKind int

const (
	// ArgOffset arguments are a signed x/y offset.
	ArgOffset ArgumentKind = iota
	// ArgPoint arguments are point numbers: a point of the compound glyph
	// and a point of the component to align with it.
	ArgPoint
)

// ComponentArgument is one of the two positioning arguments of a component.
type ComponentArgument struct {
	Kind   ArgumentKind
	Offset int16  // valid for ArgOffset
	Point  uint16 // valid for ArgPoint
}

func (a ComponentArgument) String() string {
	if a.Kind == ArgPoint {
		return fmt.Sprintf("point(%d)", a.Point)
	}
	return fmt.Sprintf("offset(%d)", a.Offset)
}

// argEncoding combines the width and meaning of component arguments.
type argEncoding int

const (
	argWordOffsets argEncoding = iota
	argByteOffsets
	argWordPoints
	argBytePoints
)

func argEncodingOf(f ComponentFlag) argEncoding {
	words, xy := f.IsSet(Arg1And2AreWords), f.IsSet(ArgsAreXYValues)
	switch {
	case words && xy:
		return argWordOffsets
	case xy:
		return argByteOffsets
	case words:
		return argWordPoints
	}
	return argBytePoints
}

func readArgument(c *Cursor, enc argEncoding) (ComponentArgument, error) {
	switch enc {
	case argWordOffsets:
		v, err := c.ReadI16()
		return ComponentArgument{Kind: ArgOffset, Offset: v}, err
	case argByteOffsets:
		v, err := c.ReadI8()
		return ComponentArgument{Kind: ArgOffset, Offset: int16(v)}, err
	case argWordPoints:
		v, err := c.ReadU16()
		return ComponentArgument{Kind: ArgPoint, Point: v}, err
	case argBytePoints:
		v, err := c.ReadU8()
		return ComponentArgument{Kind: ArgPoint, Point: uint16(v)}, err
	}
	return ComponentArgument{}, c.errorf(ErrUnsupportedFormat, "unknown argument encoding %d", enc)
}

// TransformKind classifies the transformation of a component.
type TransformKind int

const (
	TransformIdentity TransformKind = iota // unit scale
	TransformUniform                       // one scale for x and y
	TransformXY                            // independent x and y scales
	TransformTwoByTwo                      // 2×2 matrix
)

func (k TransformKind) String() string {
	switch k {
	case TransformIdentity:
		return "identity"
	case TransformUniform:
		return "uniform"
	case TransformXY:
		return "x/y"
	case TransformTwoByTwo:
		return "2×2"
	}
	return "<unknown transform>"
}

// Transform is the linear transformation applied to a component, as a matrix
//
//	| XScale  Scale01 |
//	| Scale10 YScale  |
type Transform struct {
	Kind    TransformKind
	XScale  F2Dot14
	Scale01 F2Dot14
	Scale10 F2Dot14
	YScale  F2Dot14
}

// IdentityTransform is the transformation of components without scale.
var IdentityTransform = Transform{Kind: TransformIdentity, XScale: F2Dot14One, YScale: F2Dot14One}

// Uniform returns the scale factor of an identity or uniform transformation.
func (t Transform) Uniform() (F2Dot14, bool) {
	switch t.Kind {
	case TransformIdentity, TransformUniform:
		return t.XScale, true
	}
	return 0, false
}

// transformOf selects the transformation by precedence of the flag bits.
func transformOf(f ComponentFlag) TransformKind {
	switch {
	case f.IsSet(WeHaveAScale):
		return TransformUniform
	case f.IsSet(WeHaveAnXAndYScale):
		return TransformXY
	case f.IsSet(WeHaveATwoByTwo):
		return TransformTwoByTwo
	}
	return TransformIdentity
}

func readTransform(c *Cursor, kind TransformKind) (Transform, error) {
	var scales []F2Dot14
	var err error
	switch kind {
	case TransformIdentity:
		return IdentityTransform, nil
	case TransformUniform:
		scales, err = readList(c, 1, (*Cursor).ReadF2Dot14)
		if err != nil {
			return Transform{}, err
		}
		return Transform{Kind: kind, XScale: scales[0], YScale: scales[0]}, nil
	case TransformXY:
		scales, err = readList(c, 2, (*Cursor).ReadF2Dot14)
		if err != nil {
			return Transform{}, err
		}
		return Transform{Kind: kind, XScale: scales[0], YScale: scales[1]}, nil
	case TransformTwoByTwo:
		scales, err = readList(c, 4, (*Cursor).ReadF2Dot14)
		if err != nil {
			return Transform{}, err
		}
		return Transform{Kind: kind, XScale: scales[0], Scale01: scales[1],
			Scale10: scales[2], YScale: scales[3]}, nil
	}
	return Transform{}, c.errorf(ErrUnsupportedFormat, "unknown transform kind %d", kind)
}

// ComponentGlyph references another glyph as part of a compound glyph.
type ComponentGlyph struct {
	Flags      ComponentFlag
	GlyphIndex GlyphIndex
	Arg1, Arg2 ComponentArgument
	Transform  Transform
}

// CompoundGlyph is a glyph assembled from transformed components.
type CompoundGlyph struct {
	Components   []ComponentGlyph
	Instructions []byte // view into the font data
}

func (*CompoundGlyph) outline() {}

func readCompoundGlyph(c *Cursor) (*CompoundGlyph, error) {
	g := &CompoundGlyph{}
	c.Section("Components")
	for {
		flags, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		comp := ComponentGlyph{Flags: ComponentFlag(flags)}
		gid, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		comp.GlyphIndex = GlyphIndex(gid)
		enc := argEncodingOf(comp.Flags)
		if comp.Arg1, err = readArgument(c, enc); err != nil {
			return nil, err
		}
		if comp.Arg2, err = readArgument(c, enc); err != nil {
			return nil, err
		}
		if comp.Transform, err = readTransform(c, transformOf(comp.Flags)); err != nil {
			return nil, err
		}
		g.Components = append(g.Components, comp)
		if !comp.Flags.IsSet(MoreComponents) {
			break
		}
	}
	if last := g.Components[len(g.Components)-1]; last.Flags.IsSet(WeHaveInstructions) {
		c.Section("Instructions")
		n, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		if g.Instructions, err = c.ReadSlice(int(n)); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// --- Reading ---------------------------------------------------------------

func readGlyphDescription(c *Cursor) (GlyphDescription, error) {
	var d GlyphDescription
	c.Section("Description")
	b, err := c.ReadSlice(10)
	if err != nil {
		return d, err
	}
	d.NumberOfContours = int16(u16(b))
	d.XMin = FWord(u16(b[2:]))
	d.YMin = FWord(u16(b[4:]))
	d.XMax = FWord(u16(b[6:]))
	d.YMax = FWord(u16(b[8:]))
	return d, nil
}

// readGlyph reads a glyph description and its outline. For glyphs without
// contours the outline is nil.
func readGlyph(c *Cursor) (GlyphDescription, Outline, error) {
	d, err := readGlyphDescription(c)
	if err != nil {
		return d, nil, err
	}
	switch {
	case d.NumberOfContours == 0:
		return d, nil, nil
	case d.IsSimple():
		g, err := readSimpleGlyph(c, int(d.NumberOfContours))
		if err != nil {
			return d, nil, err
		}
		return d, g, nil
	default:
		g, err := readCompoundGlyph(c)
		if err != nil {
			return d, nil, err
		}
		return d, g, nil
	}
}

// readGlyfSequential reads numGlyphs glyphs back-to-back. The glyphs have to
// consume the table exactly.
func readGlyfSequential(c *Cursor, numGlyphs uint16) (*GlyfTable, error) {
	t := &GlyfTable{}
	for i := 0; i < int(numGlyphs); i++ {
		d, outline, err := readGlyph(c)
		if err != nil {
			return nil, err
		}
		if outline == nil {
			// glyphs without contours, e.g. space
			continue
		}
		t.Glyphs = append(t.Glyphs, GlyphRecord{Index: GlyphIndex(i), Description: d, Outline: outline})
	}
	if c.Remaining() != 0 {
		return nil, c.Section("").errorf(ErrInconsistentLength,
			"%d glyphs consumed %d of %d bytes", numGlyphs, c.Pos(), c.Len())
	}
	return t, nil
}

// readGlyfIndexed reads every glyph from the extent given by table 'loca'.
// Glyphs may not overrun their extent, trailing padding is allowed.
func readGlyfIndexed(c *Cursor, loca *LocaTable) (*GlyfTable, error) {
	t := &GlyfTable{}
	for i := 0; i < loca.NumGlyphs(); i++ {
		start, end := loca.Offsets[i], loca.Offsets[i+1]
		if start == end {
			continue
		}
		gc, err := c.Sub(int(start), int(end-start), T("glyf"))
		if err != nil {
			return nil, err
		}
		d, outline, err := readGlyph(gc)
		if err != nil {
			return nil, err
		}
		if outline == nil {
			continue
		}
		t.Glyphs = append(t.Glyphs, GlyphRecord{Index: GlyphIndex(i), Description: d, Outline: outline})
	}
	return t, nil
}
