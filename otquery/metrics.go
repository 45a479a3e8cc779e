package otquery

import (
	"github.com/npillmayer/otglyph/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontMetrics retrieves selected metrics of a font.
//
// Ascent and descent are taken from table 'hhea'. If both are zero, the
// typographic values of table 'OS/2' serve as a fallback.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if otf == nil {
		return metrics
	}
	if hhea := otf.HHea; hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if asc, desc, gap, ok := typoMetrics(otf); ok {
			tracer().Debugf("hhea without vertical metrics, using OS/2")
			metrics.Ascent, metrics.Descent = asc, desc
			if metrics.LineGap == 0 {
				metrics.LineGap = gap
			}
		}
	}
	if otf.Head != nil {
		metrics.UnitsPerEm = sfnt.Units(otf.Head.UnitsPerEm)
	}
	return metrics
}

// sTypoAscender, sTypoDescender and sTypoLineGap are located at offsets 68, 70
// and 72 of table 'OS/2', for every version of the table.
const os2TypoOffset = 68

func typoMetrics(otf *ot.Font) (asc, desc, gap sfnt.Units, ok bool) {
	table := otf.Table(ot.T("OS/2"))
	if table == nil {
		return
	}
	b := table.Binary()
	if len(b) < os2TypoOffset+6 {
		tracer().Debugf("OS/2 table too short: %d", len(b))
		return
	}
	asc = sfnt.Units(i16(b[os2TypoOffset:]))
	desc = sfnt.Units(i16(b[os2TypoOffset+2:]))
	gap = sfnt.Units(i16(b[os2TypoOffset+4:]))
	return asc, desc, gap, true
}

// FontType returns "TrueType" for fonts with TrueType outlines and "CFF" for
// fonts with PostScript outlines.
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return ""
	}
	if otf.Header.FontType == 0x4f54544f { // OTTO
		return "CFF"
	}
	return "TrueType"
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	if otf == nil {
		return 0
	}
	return otf.CMap.Lookup(codepoint)
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	if otf == nil {
		return metrics
	}
	//
	// table hmtx: advance width and left side bearing
	if aw, lsb, ok := otf.HMtx.HMetrics(gid); ok {
		metrics.Advance = sfnt.Units(aw)
		metrics.LSB = sfnt.Units(lsb)
	}
	//
	// table glyf: bounding box
	h, ok, err := otf.Glyf.GlyphHeader(gid)
	if err != nil {
		tracer().Infof("glyph metrics: %v", err)
	} else if ok {
		metrics.BBox = BoundingBox{
			MinX: sfnt.Units(h.XMin),
			MinY: sfnt.Units(h.YMin),
			MaxX: sfnt.Units(h.XMax),
			MaxY: sfnt.Units(h.YMax),
		}
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// From the OpenType specification:
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing indicated
	// in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.IsEmpty() { // leave RSB for empty bboxes
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}
