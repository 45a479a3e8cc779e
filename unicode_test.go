package otglyph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/otglyph/internal/sfntbuild"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnicodeMapFormat0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	sub := &ot.CMapFormat0{}
	for code := range sub.GlyphIDs {
		sub.GlyphIDs[code] = uint8(code % 7)
	}
	umap, err := BuildUnicodeMap(sub)
	require.NoError(t, err)
	assert.Equal(t, 7, umap.Len())
	for code := range 256 {
		gid := ot.GlyphIndex(sub.GlyphIDs[code])
		last := code
		for c := code; c < 256; c++ { // the last code writing gid wins
			if ot.GlyphIndex(sub.GlyphIDs[c]) == gid {
				last = c
			}
		}
		if umap.Lookup(gid) != rune(last) {
			t.Errorf("glyph %d: expected code %d, have %d", gid, last, umap.Lookup(gid))
		}
	}
}

func TestUnicodeMapFormat12(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	sub := &ot.CMapFormat12{Groups: []ot.CMapGroup{
		{StartCharCode: 'A', EndCharCode: 'C', StartGlyphID: 10},
		{StartCharCode: 0x1f600, EndCharCode: 0x1f602, StartGlyphID: 20},
	}}
	umap, err := BuildUnicodeMap(sub)
	require.NoError(t, err)
	for _, grp := range sub.Groups {
		for code := grp.StartCharCode; code <= grp.EndCharCode; code++ {
			gid := ot.GlyphIndex(grp.StartGlyphID + code - grp.StartCharCode)
			assert.Equal(t, rune(code), umap.Lookup(gid), "glyph %d", gid)
		}
	}
	assert.Equal(t, 6, umap.Len())
	//
	overflow := &ot.CMapFormat12{Groups: []ot.CMapGroup{
		{StartCharCode: 0, EndCharCode: 5, StartGlyphID: 0xfffe},
	}}
	umap, err = BuildUnicodeMap(overflow)
	require.NoError(t, err)
	assert.Equal(t, 2, umap.Len(), "glyph indices beyond 0xFFFF must be dropped")
}

func TestUnicodeMapFormat4(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	sub := parseCMap(t, sfntbuild.Format4(
		sfntbuild.Segment{Start: ' ', End: ' ', Delta: 4 - ' '},
		sfntbuild.Segment{Start: 'A', End: 'C', Delta: 1 - 'A'},
		sfntbuild.Segment{Start: 'a', End: 'c', GlyphIDs: []uint16{3, 0, 5}},
	))
	require.Equal(t, uint16(4), sub.Format())
	umap, err := BuildUnicodeMap(sub)
	require.NoError(t, err)
	have := map[ot.GlyphIndex]rune{}
	for gid, code := range umap.All() {
		have[gid] = code
	}
	// 'a' overwrites 'C' for glyph 3, 'b' maps to .notdef, sentinel maps to glyph 0
	expected := map[ot.GlyphIndex]rune{1: 'A', 2: 'B', 3: 'a', 4: ' ', 5: 'c'}
	if diff := cmp.Diff(expected, have); diff != "" {
		t.Errorf("reverse map mismatch (-want +have):\n%s", diff)
	}
}

func TestUnicodeMapUnknownFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	sub := parseCMap(t, sfntbuild.Format6('A', 1, 2, 3))
	umap, err := BuildUnicodeMap(sub)
	assert.Nil(t, umap, "expected no partial map")
	require.ErrorIs(t, err, ErrUnknownCmapFormat)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, uint16(6), e.Format)
	//
	_, err = BuildUnicodeMap(nil)
	assert.ErrorIs(t, err, ErrNoUsableCmapTable)
}

func TestFontUnicodeMapMemoized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	f := fakeFont(t, newFakeDecoder())
	u1, err := f.UnicodeMap()
	require.NoError(t, err)
	u2, _ := f.UnicodeMap()
	assert.Same(t, u1, u2)
	assert.Equal(t, 'Y', u1.Lookup(25))
	//
	dec := newFakeDecoder()
	dec.cmap = nil
	f = fakeFont(t, dec)
	_, err1 := f.UnicodeMap()
	_, err2 := f.UnicodeMap()
	assert.Same(t, err1, err2, "expected error to be memoized")
}

// parseCMap builds a font with a single Windows Unicode BMP subtable and returns
// the subtable as selected by package ot.
func parseCMap(t *testing.T, subtable []byte) ot.CMapSubtable {
	t.Helper()
	b := &sfntbuild.Builder{
		UnitsPerEm: 1000,
		Glyphs:     make([]sfntbuild.Glyph, 8),
		CMaps:      []sfntbuild.CMap{{Platform: 3, Encoding: 1, Data: subtable}},
	}
	otf, err := ot.Parse(b.Build())
	require.NoError(t, err)
	require.NotNil(t, otf.CMap.Subtable)
	return otf.CMap.Subtable
}
