package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "cmap", "char":
		pterm.Info.Println("cmap")
		pterm.Println(`
	cmap maps character codes to glyph indices. It consists of encoding records,
	each pointing to a subtable:
	+-------------+-------------+-----------------+
	| Platform ID | Encoding ID | Subtable offset |
	+-------------+-------------+-----------------+
	Several records may point to the same subtable. Supported formats are
	0 (byte encoding), 4 (segments of the BMP) and 6 (trimmed table).

	char:A or char:U+0041 looks up a character in the preferred subtable
	and makes the resulting glyph the current one.
	`)
	case "glyph", "glyf", "outline":
		pterm.Info.Println("glyf")
		pterm.Println(`
	Every glyph starts with a header:
	+--------------------+-----------------------+
	| Number of contours | xMin yMin xMax yMax   |
	+--------------------+-----------------------+
	A positive number of contours introduces a simple glyph, a negative number
	a compound glyph built from transformed components.

	glyph:3 selects glyph 3 and prints its description.
	outline prints the points of the current glyph, in font units and in
	pixels for the current size (see size:16).
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	tables    list the table directory
	head      global font information
	hhea      horizontal metrics header
	maxp      maximum profile
	cmap      character map subtables
	char:c    look up a character, c may be U+XXXX
	glyph:n   describe glyph n (default: current glyph)
	outline   print the outline of the current glyph
	size:px   set the pixel size for outlines
	warnings  list the warnings found when parsing
	verify    compare with the go-text font decoder
	help:t    help on topic t [cmap|glyph]
	quit      leave the CLI

	Commands may be chained on one line, e.g. "char:A outline".
	`)
	}
}
