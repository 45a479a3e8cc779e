/*
Package otshape resolves text to glyph indices.

The result of shaping is a sequence of glyph slots. Shaping may fold several
code-points into one glyph (ligatures, canonical composition); positions consumed
this way are reported as [NoGlyph] slots, so that the number of slots never falls
below the number of input code-points.

Two shapers are provided:
  - [CMapShaper] maps code-points one by one through a font's cmap table,
  - [HarfbuzzShaper] applies the OpenType layout features of a font, using
    the HarfBuzz port of github.com/go-text/typesetting.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otshape

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer returns a trace sink for the otshape package namespace.
func tracer() tracing.Trace {
	return tracing.Select("font.shaper")
}

// errShaper wraps a message as a user-facing shaping error.
func errShaper(x string) error {
	return fmt.Errorf("text shaping: %s", x)
}
