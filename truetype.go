/*
Package truetype is for loading and decoding TrueType fonts.

The decoder itself lives in package tt. It turns the bytes of a font file into
a validated, immutable structure of tables: the table directory, the metric
tables 'head', 'hhea', 'maxp' and 'hmtx', the character map 'cmap' and the
glyph outlines of table 'glyf'. Package ttquery answers questions about a
decoded font, e.g., glyph metrics or outlines in pixel sizes.

This package offers convenience entry points for clients which load fonts
from files.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

# Status

Fonts with PostScript outlines (table 'CFF ') and font collections (*.ttc)
are not supported.

# Links

TrueType reference manual:
https://developer.apple.com/fonts/TrueType-Reference-Manual/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package truetype

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/truetype/internal/fontload"
	"github.com/npillmayer/truetype/tt"
)

// tracer writes to trace with key 'truetype'
func tracer() tracing.Trace {
	return tracing.Select("truetype")
}

// ScalableFont is a decoded TrueType font together with its origin.
type ScalableFont struct {
	Fontname string // full name from table 'name', if present
	Filepath string // file path, empty for fonts parsed from memory
	Binary   []byte // raw data, referenced by Font
	Font     *tt.Font
}

// FromBinary parses raw TrueType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the font to be usable.
func FromBinary(data []byte, opts ...tt.ParseOption) (*tt.Font, error) {
	return tt.Parse(data, opts...)
}

// LoadFont loads a TrueType font from a file.
func LoadFont(fontfile string, opts ...tt.ParseOption) (*ScalableFont, error) {
	ff, err := fontload.Load(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := decode(ff.Binary, opts)
	if err != nil {
		tracer().Errorf("cannot decode font %s: %v", fontfile, err)
		return nil, err
	}
	f.Fontname, f.Filepath = ff.Fontname, ff.Filepath
	tracer().Infof("loaded font %q from %s", f.Fontname, fontfile)
	return f, nil
}

// ParseFont decodes a TrueType font from memory.
func ParseFont(fbytes []byte, opts ...tt.ParseOption) (*ScalableFont, error) {
	f, err := decode(fbytes, opts)
	if err != nil {
		return nil, err
	}
	f.Fontname = fontload.FullName(fbytes)
	return f, nil
}

func decode(fbytes []byte, opts []tt.ParseOption) (*ScalableFont, error) {
	otf, err := tt.Parse(fbytes, opts...)
	if err != nil {
		return nil, err
	}
	for _, w := range otf.Warnings() {
		tracer().Infof("%s", w)
	}
	return &ScalableFont{Binary: fbytes, Font: otf}, nil
}
