package otglyph

import (
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otshape"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
)

// Decoder is the read contract of a binary font decoder. A [Font] accesses font
// data through a Decoder only. The default implementation is [SFNTDecoder].
//
// Decoders must be safe for concurrent use.
type Decoder interface {
	UnitsPerEm() int
	Ascender() int
	Descender() int
	NumGlyphs() int
	Name() string // may be empty
	// AdvanceWidth returns the advance width of a glyph in font units.
	AdvanceWidth(gid ot.GlyphIndex) (int, error)
	// BoundingBox returns the bounding box of a glyph in font units. Glyphs
	// without outline report false.
	BoundingBox(gid ot.GlyphIndex) (Box, bool, error)
	// CMap returns the selected cmap subtable, or nil if the font has no cmap
	// subtable for a supported platform/encoding.
	CMap() ot.CMapSubtable
	// TextToGlyphs shapes a run of text.
	TextToGlyphs(text []rune) ([]otshape.GlyphSlot, error)
	// GlyphPath returns the outline of a glyph in font units, y-axis pointing up.
	GlyphPath(gid ot.GlyphIndex) (Outline, error)
}

// Box is a bounding box in font units.
type Box struct {
	XMin, YMin, XMax, YMax int
}

// Dx is the horizontal extent of a box.
func (b Box) Dx() int { return b.XMax - b.XMin }

// Dy is the vertical extent of a box.
func (b Box) Dy() int { return b.YMax - b.YMin }

// Empty reports whether a box has zero area.
func (b Box) Empty() bool {
	return b.Dx() == 0 || b.Dy() == 0
}

// ContainerParser creates a decoder for an SFNT binary. Container formats
// (WOFF) have been unwrapped before a ContainerParser is called.
type ContainerParser func(sfnt []byte, config Config) (Decoder, error)

// DefaultParser creates an [SFNTDecoder].
func DefaultParser(sfnt []byte, config Config) (Decoder, error) {
	dec, err := NewSFNTDecoder(sfnt, config)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// --- Configuration ---------------------------------------------------------

// Shaping selects the shaping routine of a decoder.
type Shaping int

const (
	ShapeHarfbuzz Shaping = iota // apply OpenType layout features (default)
	ShapeCMap                    // map code-points one by one
)

// Config collects the parameters for creating a decoder.
type Config struct {
	Shaping Shaping
	Params  otshape.Params
}

// ParseOption is an option for parsing a font.
type ParseOption func(*Config)

// WithShaping selects the shaping routine.
func WithShaping(s Shaping) ParseOption {
	return func(c *Config) {
		c.Shaping = s
	}
}

// WithDirection sets the writing direction for shaping. The default is
// left-to-right.
func WithDirection(dir bidi.Direction) ParseOption {
	return func(c *Config) {
		c.Params.Direction = dir
	}
}

// WithLanguage sets the language for shaping. The default is English.
func WithLanguage(lang language.Tag) ParseOption {
	return func(c *Config) {
		c.Params.Language = lang
	}
}

// WithNormalization switches Unicode NFC normalization of text before shaping
// on or off. The default is off.
func WithNormalization(on bool) ParseOption {
	return func(c *Config) {
		c.Params.Normalize = on
	}
}

func makeConfig(opts []ParseOption) Config {
	config := Config{
		Shaping: ShapeHarfbuzz,
		Params:  otshape.DefaultParams,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}
