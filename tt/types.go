package tt

import (
	"fmt"
	"time"
)

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType specification as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Numeric data types ----------------------------------------------------

// Fixed is a 32-bit signed fixed-point number (16.16).
type Fixed int32

// Float returns f as a floating point value.
func (f Fixed) Float() float64 {
	return float64(f) / 65536
}

func (f Fixed) String() string {
	return fmt.Sprintf("%g", f.Float())
}

// FWord is a signed distance in font design units.
type FWord int16

// UFWord is an unsigned distance in font design units.
type UFWord uint16

// F2Dot14 is a 16-bit signed fixed-point number with 2 integer bits and
// 14 fractional bits. 16384 represents 1.0.
type F2Dot14 int16

// F2Dot14One is the value 1.0 as F2Dot14.
const F2Dot14One F2Dot14 = 1 << 14

// Float returns f as a floating point value.
func (f F2Dot14) Float() float64 {
	return float64(f) / float64(F2Dot14One)
}

// LongDateTime is a date represented in number of seconds since
// 12:00 midnight, January 1, 1904, UTC.
type LongDateTime int64

// seconds between 1904-01-01 and the Unix epoch
const macEpochOffset int64 = -2082844800

// Time converts d to a time.Time. The zero LongDateTime is returned as the
// zero time.
func (d LongDateTime) Time() time.Time {
	if d == 0 {
		return time.Time{}
	}
	return time.Unix(macEpochOffset+int64(d), 0).UTC()
}
