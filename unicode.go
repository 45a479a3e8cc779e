package otglyph

import (
	"iter"
	"maps"
	"slices"

	"github.com/npillmayer/otglyph/ot"
)

// UnicodeMap maps glyph indices to Unicode code-points, the reverse direction
// of a font's cmap table.
//
// If more than one code-point maps to the same glyph, the last one in the order
// of the cmap subtable wins. Glyphs without a code-point map to 0.
type UnicodeMap struct {
	m map[ot.GlyphIndex]rune
}

// Lookup returns the code-point for glyph gid, or 0 if the glyph is not mapped.
func (u *UnicodeMap) Lookup(gid ot.GlyphIndex) rune {
	if u == nil {
		return 0
	}
	return u.m[gid]
}

// Len returns the number of mapped glyphs.
func (u *UnicodeMap) Len() int {
	if u == nil {
		return 0
	}
	return len(u.m)
}

// All iterates over the mapped glyphs in ascending order of glyph indices.
func (u *UnicodeMap) All() iter.Seq2[ot.GlyphIndex, rune] {
	return func(yield func(ot.GlyphIndex, rune) bool) {
		if u == nil {
			return
		}
		for _, gid := range slices.Sorted(maps.Keys(u.m)) {
			if !yield(gid, u.m[gid]) {
				return
			}
		}
	}
}

// maxCodePoint is the upper bound of Unicode; format 12 groups are clipped to it.
const maxCodePoint = 0x10ffff

// BuildUnicodeMap inverts a cmap subtable. Subtables in formats 0, 4 and 12 are
// supported. A nil subtable results in an error of kind NoUsableCmapTable, other
// formats in an error of kind UnknownCmapFormat.
func BuildUnicodeMap(cmap ot.CMapSubtable) (*UnicodeMap, error) {
	if cmap == nil {
		return nil, ErrNoUsableCmapTable
	}
	u := &UnicodeMap{m: make(map[ot.GlyphIndex]rune)}
	switch sub := cmap.(type) {
	case *ot.CMapFormat0:
		for code, gid := range sub.GlyphIDs {
			u.m[ot.GlyphIndex(gid)] = rune(code)
		}
	case *ot.CMapFormat4:
		for i, seg := range sub.Segments {
			for code := int(seg.Start); code <= int(seg.End); code++ {
				// glyph 0 is '.notdef', in particular for the 0xFFFF sentinel segment
				if gid := sub.SegmentGlyph(i, uint16(code)); gid != 0 {
					u.m[gid] = rune(code)
				}
			}
		}
	case *ot.CMapFormat12:
		for _, grp := range sub.Groups {
			end := min(grp.EndCharCode, maxCodePoint)
			for code := uint64(grp.StartCharCode); code <= uint64(end); code++ {
				gid := uint64(grp.StartGlyphID) + code - uint64(grp.StartCharCode)
				if gid > 0xffff {
					break
				}
				u.m[ot.GlyphIndex(gid)] = rune(code)
			}
		}
	default:
		return nil, &Error{Kind: UnknownCmapFormat, Format: cmap.Format()}
	}
	tracer().Debugf("reverse cmap (format %d) maps %d glyphs", cmap.Format(), len(u.m))
	return u, nil
}

// UnicodeMap returns the reverse map of the font's cmap table. It is built on
// first call; the result, including a possible error, is kept for the lifetime
// of the font.
func (f *Font) UnicodeMap() (*UnicodeMap, error) {
	f.umapOnce.Do(func() {
		f.umap, f.umapErr = BuildUnicodeMap(f.dec.CMap())
		if f.umapErr != nil {
			tracer().Infof("font %q: %v", f.Name(), f.umapErr)
		}
	})
	return f.umap, f.umapErr
}
