package ot

import "fmt"

// GlyfTable contains the TrueType outline data of the glyphs of a font.
// Glyph data blocks are located with the help of table 'loca'.
//
// We do not interpret the outlines themselves, but only the glyph headers,
// which carry the bounding box of a glyph.
type GlyfTable struct {
	tableBase
	loca *LocaTable
}

// GlyphHeader is the fixed-size header at the start of every glyph data block.
// A negative NumberOfContours denotes a composite glyph.
type GlyphHeader struct {
	NumberOfContours       int16
	XMin, YMin, XMax, YMax int16
}

const glyphHeaderSize = 10

// IsComposite is true for glyphs built from other glyphs.
func (h GlyphHeader) IsComposite() bool {
	return h.NumberOfContours < 0
}

// GlyphHeader returns the header of glyph gid's data block.
// For glyphs without outline (e.g., a space), the boolean result is false
// and no error is returned. Errors flag glyph data inconsistent with 'loca'.
func (t *GlyfTable) GlyphHeader(gid GlyphIndex) (GlyphHeader, bool, error) {
	var h GlyphHeader
	if t == nil || t.loca == nil {
		return h, false, nil
	}
	start, end, ok := t.loca.GlyphExtent(gid)
	if !ok {
		return h, false, fmt.Errorf("glyph %d has no valid location", gid)
	}
	if start == end {
		return h, false, nil
	}
	if int(end) > len(t.data) || end-start < glyphHeaderSize {
		return h, false, fmt.Errorf("glyph %d data [%d:%d] out of bounds (glyf size %d)",
			gid, start, end, len(t.data))
	}
	b := t.data[start:end]
	h.NumberOfContours = int16(u16(b[0:]))
	h.XMin = int16(u16(b[2:]))
	h.YMin = int16(u16(b[4:]))
	h.XMax = int16(u16(b[6:]))
	h.YMax = int16(u16(b[8:]))
	return h, true, nil
}
