package fontload

import (
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'truetype'
func tracer() tracing.Trace {
	return tracing.Select("truetype")
}

// MaxFontSize is the maximum size of a font file accepted by Load.
const MaxFontSize = 64 << 20

// FontFile is the raw content of a font file.
type FontFile struct {
	Fontname string // full font name, empty if the font has no usable 'name' table
	Filepath string
	Binary   []byte
}

// Load reads a font file from disk. Files larger than MaxFontSize are rejected.
func Load(fontfile string) (*FontFile, error) {
	f, err := os.Open(fontfile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxFontSize {
		return nil, fmt.Errorf("font file %s has %d bytes, exceeds maximum of %d", fontfile, info.Size(), MaxFontSize)
	}
	bytez, err := io.ReadAll(io.LimitReader(f, MaxFontSize+1))
	if err != nil {
		return nil, err
	}
	if len(bytez) > MaxFontSize {
		return nil, fmt.Errorf("font file %s exceeds maximum size of %d bytes", fontfile, MaxFontSize)
	}
	ff := &FontFile{Filepath: fontfile, Binary: bytez}
	ff.Fontname = FullName(bytez)
	tracer().Debugf("loaded font file %s (%d bytes)", fontfile, len(bytez))
	return ff, nil
}

// FullName returns the full font name from table 'name', as decoded by
// golang.org/x/image/font/sfnt. If the name cannot be decoded, FullName
// returns an empty string.
func FullName(fbytes []byte) string {
	f, err := sfnt.Parse(fbytes)
	if err != nil {
		tracer().Debugf("cannot read font name: %v", err)
		return ""
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil {
		tracer().Debugf("font has no full name: %v", err)
		return ""
	}
	return name
}
