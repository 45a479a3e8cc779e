package otshape

import (
	"github.com/npillmayer/otglyph/ot"
)

// CMapShaper maps code-points to glyphs through a font's cmap table, one by one.
// It does not apply any layout features. Unmapped code-points resolve to
// glyph 0 (".notdef").
type CMapShaper struct {
	CMap *ot.CMapTable
}

// NewCMapShaper creates a shaper for an OpenType font.
func NewCMapShaper(otf *ot.Font) *CMapShaper {
	return &CMapShaper{CMap: otf.CMap}
}

// Shape resolves text to glyph slots. Without normalization, the number of slots
// equals the number of code-points in text.
func (s *CMapShaper) Shape(text []rune, params Params) ([]GlyphSlot, error) {
	if s.CMap == nil {
		return nil, errShaper("font has no cmap table")
	}
	p := prepare(text, params.Normalize)
	slots := make([]GlyphSlot, 0, len(text))
	for i, r := range p.runes {
		slots = appendCluster(slots, []ot.GlyphIndex{s.CMap.Lookup(r)}, p.folded[i])
	}
	return slots, nil
}
