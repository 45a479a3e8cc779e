package otglyph

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/otglyph/internal/fontload"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otcontainer"
)

// Font is a handle for a parsed font. It caches decoded glyphs and the reverse
// Unicode map of the font.
//
// A Font is safe for concurrent use.
type Font struct {
	dec  Decoder
	upem int

	mu     sync.Mutex // guards glyphs
	glyphs map[ot.GlyphIndex]*Glyph

	umapOnce sync.Once
	umap     *UnicodeMap
	umapErr  error
}

// New creates a font handle for a decoder. The decoder must report a positive
// number of units per em.
func New(dec Decoder) (*Font, error) {
	if dec == nil {
		return nil, errMalformedFont(errors.New("no decoder"))
	}
	upem := dec.UnitsPerEm()
	if upem <= 0 {
		return nil, errMalformedFont(fmt.Errorf("illegal units per em: %d", upem))
	}
	return &Font{
		dec:    dec,
		upem:   upem,
		glyphs: make(map[ot.GlyphIndex]*Glyph),
	}, nil
}

// Parse parses a font binary with the default decoder. The binary may be an
// SFNT (TrueType or OpenType) or a WOFF 1.0 container. WOFF2 is not supported
// and results in an error of kind UnsupportedFormat.
//
// The binary must not be changed as long as the font is in use.
func Parse(data []byte, opts ...ParseOption) (*Font, error) {
	return ParseWith(data, DefaultParser, opts...)
}

// ParseWith parses a font binary with a custom container parser. Container
// formats are unwrapped before parser is called.
func ParseWith(data []byte, parser ContainerParser, opts ...ParseOption) (*Font, error) {
	sfnt, format, err := otcontainer.Unwrap(data)
	if err != nil {
		if errors.Is(err, otcontainer.ErrUnsupportedFormat) {
			return nil, &Error{Kind: UnsupportedFormat, Err: err}
		}
		return nil, errMalformedFont(err)
	}
	tracer().Debugf("parsing font binary in %s format", format)
	dec, err := parser(sfnt, makeConfig(opts))
	if err != nil {
		if KindOf(err) == NoError {
			err = errMalformedFont(err)
		}
		return nil, err
	}
	f, err := New(dec)
	if err != nil {
		return nil, err
	}
	tracer().Infof("parsed font %q: %d glyphs, %d units per em", f.Name(), f.NumGlyphs(), f.upem)
	return f, nil
}

// LoadFont reads and parses a font file.
func LoadFont(path string, opts ...ParseOption) (*Font, error) {
	fb, err := fontload.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(fb.Binary, opts...)
}

// LoadSystemFont locates a font by name and parses it. The name may be a path
// of a font file, the name of an installed system font (e.g., "DejaVuSans.ttf"),
// or "goregular" for the packaged Go Regular font.
func LoadSystemFont(name string, opts ...ParseOption) (*Font, error) {
	fb, err := fontload.Resolve(name)
	if err != nil {
		return nil, err
	}
	return Parse(fb.Binary, opts...)
}

// UnitsPerEm returns the size of the em square in font units. It is always positive.
func (f *Font) UnitsPerEm() int {
	return f.upem
}

// Ascender returns the typographic ascender in font units.
func (f *Font) Ascender() int {
	return f.dec.Ascender()
}

// Descender returns the typographic descender in font units, usually a negative value.
func (f *Font) Descender() int {
	return f.dec.Descender()
}

// Name returns the name of the font, or an empty string.
func (f *Font) Name() string {
	return f.dec.Name()
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return f.dec.NumGlyphs()
}

// Decoder returns the decoder of the font.
func (f *Font) Decoder() Decoder {
	return f.dec
}
