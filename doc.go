/*
Package otglyph extracts glyphs from OpenType fonts and lays out lines of text.

A [Font] wraps a font binary (TrueType, OpenType/CFF, or WOFF 1.0) and hands out
glyph records: advance width, bounding box, the Unicode code-point a glyph
represents, and the glyph outline as a sequence of path commands. Glyph records
are decoded on first use and cached for the lifetime of the font.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "font" is a variant of a typeface with a certain weight, slant, etc.
An example is "Helvetica regular". This corresponds to a single SFNT binary.

▪︎ A "glyph" is a shape within a font, identified by a glyph index. Glyph indices
are private to a font and unrelated to Unicode code-points. The cmap table of a
font maps code-points to glyphs; [Font.UnicodeMap] provides the reverse direction.

All measures of glyph records are in font design units. The number of units per
em is reported by [Font.UnitsPerEm]. Outlines use a y-axis pointing up.

Text layout is intentionally simple: text is shaped into glyphs and the glyphs are
placed side by side on a baseline. Kerning pairs, hinting and vertical metrics are
not applied.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

WOFF File Format 1.0:
https://www.w3.org/TR/WOFF/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otglyph

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.glyph'
func tracer() tracing.Trace {
	return tracing.Select("font.glyph")
}
