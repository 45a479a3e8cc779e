package otglyph

import (
	"github.com/npillmayer/otglyph/ot"
)

// Glyph is a decoded glyph. All measures are in font units.
//
// Glyphs are created by [Font.Glyph] and must not be modified by clients.
type Glyph struct {
	Index                  ot.GlyphIndex
	Unicode                rune // 0 if the glyph is not mapped from any code-point
	AdvanceWidth           int
	XMin, YMin, XMax, YMax int // all zero for glyphs without outline
	PathCommandCount       int
	Outline                Outline
}

// Bounds returns the bounding box of a glyph.
func (g *Glyph) Bounds() Box {
	return Box{XMin: g.XMin, YMin: g.YMin, XMax: g.XMax, YMax: g.YMax}
}

// IsEmpty is true for glyphs without outline, e.g., a space.
func (g *Glyph) IsEmpty() bool {
	return g.PathCommandCount == 0
}

// ForEachPathCommand calls fn for every command of the glyph's outline, in order.
// An error of kind TruncatedOutline signals corrupt outline data.
func (g *Glyph) ForEachPathCommand(fn func(OutlineCommand)) error {
	for cmd, err := range g.Outline.commands(g.Index) {
		if err != nil {
			return err
		}
		fn(cmd)
	}
	return nil
}

// Glyph returns the glyph record for glyph index gid. Glyph records are decoded
// once and cached: calling Glyph twice with the same index returns the same record.
//
// Decoder failures are reported as errors of kind MalformedGlyphData. If the
// reverse Unicode map of the font cannot be built, its error is returned.
func (f *Font) Glyph(gid ot.GlyphIndex) (*Glyph, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if g, ok := f.glyphs[gid]; ok {
		return g, nil
	}
	g, err := f.decodeGlyph(gid)
	if err != nil {
		return nil, err
	}
	f.glyphs[gid] = g
	return g, nil
}

func (f *Font) decodeGlyph(gid ot.GlyphIndex) (*Glyph, error) {
	umap, err := f.UnicodeMap()
	if err != nil {
		return nil, err
	}
	g := &Glyph{Index: gid, Unicode: umap.Lookup(gid)}
	box, ok, err := f.dec.BoundingBox(gid)
	if err != nil {
		return nil, errMalformedGlyph(gid, err)
	}
	if ok {
		g.XMin, g.YMin, g.XMax, g.YMax = box.XMin, box.YMin, box.XMax, box.YMax
	}
	if g.AdvanceWidth, err = f.dec.AdvanceWidth(gid); err != nil {
		return nil, errMalformedGlyph(gid, err)
	}
	if g.Outline, err = f.dec.GlyphPath(gid); err != nil {
		return nil, errMalformedGlyph(gid, err)
	}
	g.PathCommandCount = g.Outline.Len()
	tracer().Debugf("decoded glyph %d (%#U): advance %d, %d path commands",
		gid, g.Unicode, g.AdvanceWidth, g.PathCommandCount)
	return g, nil
}

// CachedGlyphs returns the number of glyphs decoded so far.
func (f *Font) CachedGlyphs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.glyphs)
}
