package otcontainer

import (
	"errors"
	"fmt"
)

// Format is a font container format, as detected from the leading tag of a font binary.
type Format int

const (
	FormatSFNT  Format = iota // raw SFNT (TrueType, OpenType, or unknown)
	FormatWOFF                // WOFF 1.0, zlib-compressed tables
	FormatWOFF2               // WOFF 2.0, brotli-compressed and transformed tables
)

func (f Format) String() string {
	switch f {
	case FormatSFNT:
		return "SFNT"
	case FormatWOFF:
		return "WOFF"
	case FormatWOFF2:
		return "WOFF2"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ErrUnsupportedFormat is returned for container formats we recognize but cannot unwrap.
var ErrUnsupportedFormat = errors.New("unsupported font container format")

// ErrInvalidWOFF flags WOFF data with an inconsistent header, directory or table data.
var ErrInvalidWOFF = errors.New("invalid WOFF data")

// Tag returns the first four bytes of a font binary as a string.
// For binaries shorter than four bytes, the empty string is returned.
func Tag(b []byte) string {
	if len(b) < 4 {
		return ""
	}
	return string(b[:4])
}

// Sniff detects the container format of a font binary from its leading tag.
// Everything not tagged as WOFF or WOFF2 is considered to be a raw SFNT binary;
// validating it is left to the font parser.
func Sniff(b []byte) Format {
	switch Tag(b) {
	case "wOFF":
		return FormatWOFF
	case "wOF2":
		return FormatWOFF2
	}
	return FormatSFNT
}

// Unwrap returns the SFNT binary contained in a font binary, together with the
// detected container format. WOFF data is decompressed, WOFF2 data is rejected
// with ErrUnsupportedFormat without further inspection. Raw SFNT data is returned as-is.
func Unwrap(b []byte) ([]byte, Format, error) {
	format := Sniff(b)
	tracer().Debugf("font binary of %d bytes has container format %s", len(b), format)
	switch format {
	case FormatWOFF:
		sfnt, err := DecompressWOFF(b)
		if err != nil {
			return nil, format, err
		}
		return sfnt, format, nil
	case FormatWOFF2:
		return nil, format, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return b, format, nil
}
