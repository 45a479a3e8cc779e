package otquery

import "golang.org/x/image/font/sfnt"

// FontMetricsInfo holds the vertical metrics of a font, in font units.
type FontMetricsInfo struct {
	UnitsPerEm sfnt.Units // size of the em square
	Ascent     sfnt.Units // from 'hhea', with 'OS/2' as a fallback
	Descent    sfnt.Units // typographic descender, usually negative
	LineGap    sfnt.Units
	MaxAdvance sfnt.Units // 'hhea' advanceWidthMax
}

// LineHeight is the baseline-to-baseline distance the font recommends.
func (m FontMetricsInfo) LineHeight() sfnt.Units {
	return m.Ascent - m.Descent + m.LineGap
}

// GlyphMetricsInfo holds the horizontal metrics and the box of a single glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units
	LSB, RSB sfnt.Units // left and right side bearing
	BBox     BoundingBox
}

// BoundingBox is a glyph box in font units. Glyphs without outline have a zero box.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty is true for boxes without area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.Dx() == 0 || bbox.Dy() == 0
}

// Dx is the width of the box.
func (bbox BoundingBox) Dx() sfnt.Units { return bbox.MaxX - bbox.MinX }

// Dy is the height of the box.
func (bbox BoundingBox) Dy() sfnt.Units { return bbox.MaxY - bbox.MinY }
