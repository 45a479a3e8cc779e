package otglyph

import (
	"errors"
	"fmt"

	"github.com/npillmayer/otglyph/ot"
)

// ErrorKind classifies the errors of this package.
type ErrorKind int

const (
	NoError            ErrorKind = iota // not an error of this package
	UnsupportedFormat                   // font container format not supported, e.g., WOFF2
	MalformedFont                       // font binary cannot be decoded
	NoUsableCmapTable                   // no cmap subtable for a supported platform/encoding
	UnknownCmapFormat                   // cmap subtable in a format we cannot invert
	MalformedGlyphData                  // glyph data of a single glyph cannot be decoded
	TruncatedOutline                    // corrupt compact outline; an internal error
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case UnsupportedFormat:
		return "unsupported format"
	case MalformedFont:
		return "malformed font"
	case NoUsableCmapTable:
		return "no usable cmap table"
	case UnknownCmapFormat:
		return "unknown cmap format"
	case MalformedGlyphData:
		return "malformed glyph data"
	case TruncatedOutline:
		return "truncated outline"
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is the error type of this package. Besides its kind, an error may
// carry the number of a cmap format (for UnknownCmapFormat) or the index of a
// glyph (for MalformedGlyphData and TruncatedOutline).
//
// Clients match errors by kind:
//
//	if errors.Is(err, otglyph.ErrUnknownCmapFormat) { … }
//	if otglyph.KindOf(err) == otglyph.MalformedGlyphData { … }
type Error struct {
	Kind   ErrorKind
	Format uint16        // cmap format, if applicable
	Glyph  ot.GlyphIndex // glyph index, if applicable
	Err    error         // underlying cause, may be nil
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case UnknownCmapFormat:
		msg = fmt.Sprintf("%s %d", e.Kind, e.Format)
	case MalformedGlyphData, TruncatedOutline:
		msg = fmt.Sprintf("%s for glyph %d", e.Kind, e.Glyph)
	default:
		msg = e.Kind.String()
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return "otglyph: " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors, one per kind. Use with errors.Is.
var (
	ErrUnsupportedFormat  = &Error{Kind: UnsupportedFormat}
	ErrMalformedFont      = &Error{Kind: MalformedFont}
	ErrNoUsableCmapTable  = &Error{Kind: NoUsableCmapTable}
	ErrUnknownCmapFormat  = &Error{Kind: UnknownCmapFormat}
	ErrMalformedGlyphData = &Error{Kind: MalformedGlyphData}
	ErrTruncatedOutline   = &Error{Kind: TruncatedOutline}
)

// KindOf returns the kind of err, or NoError if err is not (wrapping) an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return NoError
}

func errMalformedFont(err error) error {
	return &Error{Kind: MalformedFont, Err: err}
}

func errMalformedGlyph(gid ot.GlyphIndex, err error) error {
	return &Error{Kind: MalformedGlyphData, Glyph: gid, Err: err}
}

func errTruncated(gid ot.GlyphIndex, msg string) error {
	return &Error{Kind: TruncatedOutline, Glyph: gid, Err: errors.New(msg)}
}
