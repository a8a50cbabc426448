package tt

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// TestErrorKind verifies the ErrorKind String() method.
func TestErrorKind(t *testing.T) {
	tests := []struct {
		kind     ErrorKind
		expected string
	}{
		{ErrEOF, "EOF"},
		{ErrMalformedHeader, "MALFORMED-HEADER"},
		{ErrMissingTable, "MISSING-TABLE"},
		{ErrInconsistentLength, "INCONSISTENT-LENGTH"},
		{ErrInvalidSentinel, "INVALID-SENTINEL"},
		{ErrUnsupportedFormat, "UNSUPPORTED-FORMAT"},
		{ErrArithmeticRange, "ARITHMETIC-RANGE"},
		{ErrorKind(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.kind.String()
		if result != tt.expected {
			t.Errorf("ErrorKind(%d).String() = %q; want %q", tt.kind, result, tt.expected)
		}
	}
}

// TestFontError verifies FontError formatting.
func TestFontError(t *testing.T) {
	tests := []struct {
		name     string
		err      FontError
		expected string
	}{
		{
			name: "Error with offset",
			err: FontError{
				Kind:    ErrInvalidSentinel,
				Table:   T("cmap"),
				Section: "EndCodes",
				Issue:   "end codes not terminated",
				Offset:  1234,
			},
			expected: "[INVALID-SENTINEL] cmap/EndCodes at offset 1234: end codes not terminated",
		},
		{
			name: "Error without offset",
			err: FontError{
				Kind:    ErrMissingTable,
				Table:   T("glyf"),
				Section: "Directory",
				Issue:   "missing required table",
			},
			expected: "[MISSING-TABLE] glyf/Directory: missing required table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.err.Error(); result != tt.expected {
				t.Errorf("FontError.Error() = %q; want %q", result, tt.expected)
			}
		})
	}
}

func TestFontErrorUnwrapsToKind(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	err := fmt.Errorf("loading font: %w",
		newFontError(ErrUnsupportedFormat, T("cmap"), "Subtable", 40, "format %d", 12))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected wrapped error to be of kind %s", ErrUnsupportedFormat)
	}
	if errors.Is(err, ErrEOF) {
		t.Errorf("did not expect wrapped error to be of kind %s", ErrEOF)
	}
	if expected := "loading font: [UNSUPPORTED-FORMAT] cmap/Subtable at offset 40: format 12"; err.Error() != expected {
		t.Errorf("wrapped error message = %q; want %q", err.Error(), expected)
	}
	var ferr *FontError
	if !errors.As(err, &ferr) || ferr.Offset != 40 || ferr.Issue != "format 12" {
		t.Errorf("expected to find font error in chain, got %v", err)
	}
}

// TestFontWarning verifies FontWarning formatting.
func TestFontWarning(t *testing.T) {
	w := FontWarning{Table: T("cmap"), Issue: "duplicate subtable", Offset: 56}
	if s := w.String(); s != "[WARNING] cmap at offset 56: duplicate subtable" {
		t.Errorf("FontWarning.String() = %q", s)
	}
	w.Offset = 0
	if s := w.String(); s != "[WARNING] cmap: duplicate subtable" {
		t.Errorf("FontWarning.String() = %q", s)
	}
}

func TestErrorCollector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	ec := &errorCollector{}
	if ec.hasWarnings() {
		t.Fatalf("expected empty collector")
	}
	ec.addWarning(T("head"), 12, "checksum %#x", 7)
	if !ec.hasWarnings() || ec.warnings[0].Issue != "checksum 0x7" {
		t.Errorf("expected warning to be recorded, have %v", ec.warnings)
	}
}

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.truetype")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	if T("cvt") != T("cvt ") {
		t.Errorf("expected short tag to be padded with spaces")
	}
	if MakeTag(nil) != 0 {
		t.Errorf("expected nil tag to be 0")
	}
}

func TestNumericTypes(t *testing.T) {
	if Fixed(0x00018000).Float() != 1.5 {
		t.Errorf("expected fixed 0x00018000 to be 1.5, is %v", Fixed(0x00018000))
	}
	if F2Dot14(-0x2000).Float() != -0.5 {
		t.Errorf("expected f2dot14 -0x2000 to be -0.5")
	}
	if !LongDateTime(0).Time().IsZero() {
		t.Errorf("expected zero date to be zero time")
	}
	unix := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	if d := LongDateTime(2082844800).Time(); !d.Equal(unix) {
		t.Errorf("expected 2082844800 seconds after 1904 to be Unix epoch, is %v", d)
	}
}
