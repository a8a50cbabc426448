/*
Package tt decodes TrueType font files into structured, read-only values.

Intended audience for this package are glyph renderers and applications which need
font metrics and outlines without pulling in a complete font engine. Package `tt`
reads exactly the tables a renderer needs:

▪︎ the table directory (offset sub-table and table records)

▪︎ the fixed-layout tables 'head', 'hhea', 'maxp' and 'hmtx'

▪︎ the character to glyph mapping 'cmap' (subtable formats 0, 4 and 6)

▪︎ the glyph outlines in 'glyf', located through 'loca' if the font has one

Fonts are untrusted input. Every read is bounds-checked, derived counts are computed
with checked arithmetic, and every malformed structure results in a *FontError
carrying one of the error kinds of this package. Clients may test for a kind with
errors.Is:

	otf, err := tt.Parse(data)
	if errors.Is(err, tt.ErrUnsupportedFormat) {
	    …
	}

Parsing is a single synchronous walk over the font's bytes. A parsed Font is
immutable and may be shared between goroutines. Instruction bytes of glyphs are
views into the original data, which therefore must not change while the Font is
in use.

# Status

Outline rasterization, hinting and PostScript-flavored outlines (table 'CFF ') are
not supported. Character map subtable formats 2, 8, 10, 12, 13 and 14 are rejected
with ErrUnsupportedFormat, as are format 4 subtables which index into a glyph ID array.

# Links

TrueType reference manual:
https://developer.apple.com/fonts/TrueType-Reference-Manual/

OpenType specification:
https://docs.microsoft.com/en-us/typography/opentype/spec/

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package tt

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.truetype'
func tracer() tracing.Trace {
	return tracing.Select("font.truetype")
}
