package tt

import "fmt"

// ErrorKind classifies the errors a font decoder may encounter.
// ErrorKind implements the error interface, so that clients can check for a kind
// of error with errors.Is.
type ErrorKind int

const (
	// ErrEOF signals a read past the end of the data (or of a table's extent).
	ErrEOF ErrorKind = iota + 1
	// ErrMalformedHeader signals a bad magic number, version or scalar type.
	ErrMalformedHeader
	// ErrMissingTable signals that a required table is absent from the directory.
	ErrMissingTable
	// ErrInconsistentLength signals that the bytes consumed differ from a declared length.
	ErrInconsistentLength
	// ErrInvalidSentinel signals a missing terminator value, e.g. 0xFFFF in cmap format 4.
	ErrInvalidSentinel
	// ErrUnsupportedFormat signals a recognized but unimplemented format.
	ErrUnsupportedFormat
	// ErrArithmeticRange signals a derived count or coordinate out of range.
	ErrArithmeticRange
)

// String returns a human-readable representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrEOF:
		return "EOF"
	case ErrMalformedHeader:
		return "MALFORMED-HEADER"
	case ErrMissingTable:
		return "MISSING-TABLE"
	case ErrInconsistentLength:
		return "INCONSISTENT-LENGTH"
	case ErrInvalidSentinel:
		return "INVALID-SENTINEL"
	case ErrUnsupportedFormat:
		return "UNSUPPORTED-FORMAT"
	case ErrArithmeticRange:
		return "ARITHMETIC-RANGE"
	default:
		return "UNKNOWN"
	}
}

func (k ErrorKind) Error() string {
	return "TrueType font format: " + k.String()
}

// FontError represents an error encountered during font parsing.
// The first error encountered stops the parsing process.
type FontError struct {
	Kind    ErrorKind // classification of the error
	Table   Tag       // the table where the error occurred (e.g., "cmap", "glyf")
	Section string    // specific section within the table (e.g., "Format4", "Flags")
	Issue   string    // human-readable description of the issue
	Offset  uint32    // byte offset in the font file where the error occurred (0 if unknown)
}

// Error implements the error interface.
func (e *FontError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Kind.String(), e.Table, e.Section, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Kind.String(), e.Table, e.Section, e.Issue)
}

// Unwrap returns the kind of the error.
func (e *FontError) Unwrap() error {
	return e.Kind
}

func newFontError(kind ErrorKind, table Tag, section string, offset uint32, format string, args ...any) *FontError {
	return &FontError{
		Kind:    kind,
		Table:   table,
		Section: section,
		Issue:   fmt.Sprintf(format, args...),
		Offset:  offset,
	}
}

// FontWarning represents a non-critical issue encountered during font parsing.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font file where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates warnings during font parsing.
// Errors are not collected: the first error terminates parsing.
type errorCollector struct {
	warnings []FontWarning
}

// addWarning records a parsing warning.
func (ec *errorCollector) addWarning(table Tag, offset uint32, format string, args ...any) {
	issue := fmt.Sprintf(format, args...)
	tracer().Infof("%s: %s", table, issue)
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

// hasWarnings returns true if any warnings have been recorded.
func (ec *errorCollector) hasWarnings() bool {
	return len(ec.warnings) > 0
}
