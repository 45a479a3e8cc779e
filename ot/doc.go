/*
Package ot provides access to the OpenType font tables needed to extract glyphs
from a font and to map between code-points and glyphs.

Package `ot` does not interpret glyph outlines. It exposes the tables
'cmap', 'head', 'hhea', 'hmtx', 'maxp', 'loca' and 'glyf' (headers only)
in a typed manner, and every other table of a font as a generic byte view.
From this point of view, `ot` is a low-level package.

Character maps are interpreted in formats 0, 4 and 12. Exactly one cmap subtable
is selected by platform and encoding; see type `CMapTable`.

Bugs in fonts: many fonts in the wild contain entries that, strictly speaking, infringe
upon the OpenType specification, but an application using them should not fail because
of recoverable errors. Package `ot` records such issues as `FontError`s and `FontWarning`s
and fails only for issues making the font unusable. Every such failure wraps `ErrFontFormat`.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
