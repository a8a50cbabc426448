package tt

// ParseOption guides and influences the parsing of a font.
type ParseOption int

const (
	// RejectDuplicateSubtables turns cmap subtables with identical content at
	// different offsets into an error. Default is to merge them and warn.
	RejectDuplicateSubtables ParseOption = iota + 1
	// SkipUnsupportedCMapFormats drops cmap subtables of unsupported formats with a
	// warning. Default is to fail with ErrUnsupportedFormat.
	SkipUnsupportedCMapFormats
	// IgnoreChecksums suppresses warnings for table checksum mismatches.
	IgnoreChecksums
)

func (o ParseOption) String() string {
	switch o {
	case RejectDuplicateSubtables:
		return "RejectDuplicateSubtables"
	case SkipUnsupportedCMapFormats:
		return "SkipUnsupportedCMapFormats"
	case IgnoreChecksums:
		return "IgnoreChecksums"
	}
	return "<unknown option>"
}

type parseOptions struct {
	rejectDuplicateSubtables bool
	skipUnsupportedFormats   bool
	ignoreChecksums          bool
}

func makeParseOptions(opts []ParseOption) parseOptions {
	var po parseOptions
	for _, o := range opts {
		switch o {
		case RejectDuplicateSubtables:
			po.rejectDuplicateSubtables = true
		case SkipUnsupportedCMapFormats:
			po.skipUnsupportedFormats = true
		case IgnoreChecksums:
			po.ignoreChecksums = true
		default:
			tracer().Infof("ignoring unknown parse option %d", o)
		}
	}
	return po
}

// --- Option ----------------------------------------------------------------

// Option represents an optional value.
type Option[T any] struct {
	value T
	ok    bool
}

// Some constructs an Option with a value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None constructs an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option contains a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// Unwrap returns the value and a boolean indicating presence.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}

// Or returns the contained value or a default.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
