/*
Package ttquery answers questions about a decoded TrueType font, as needed by
renderers and typesetters: font-wide and per-glyph metrics, glyph lookup by
code-point, and glyph outlines with compound glyphs resolved into contours.

Metric values are returned in font units (sfnt.Units) and may be scaled to a
pixel size, yielding fixed.Int26_6 values as used by golang.org/x/image.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'truetype'
func tracer() tracing.Trace {
	return tracing.Select("truetype")
}
