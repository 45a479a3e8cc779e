package ot

import (
	"testing"

	"github.com/npillmayer/otglyph/internal/sfntbuild"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCMapFormat4Delta(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testFont(false))
	cmap := otf.Table(T("cmap")).Self().AsCMap()
	if cmap == nil || cmap.Subtable == nil {
		t.Fatal("cannot convert cmap table")
	}
	if cmap.Platform != 3 || cmap.Encoding != 1 || cmap.Subtable.Format() != 4 {
		t.Errorf("expected subtable 3/1 in format 4, have %d/%d in format %d",
			cmap.Platform, cmap.Encoding, cmap.Subtable.Format())
	}
	for r, g := range map[rune]GlyphIndex{'A': 1, 'B': 2, 'C': 3, ' ': 4, 'D': 0, 0x1F600: 0} {
		if x := cmap.Lookup(r); x != g {
			t.Errorf("expected glyph %d for %#U, have %d", g, r, x)
		}
	}
	f4 := cmap.Subtable.(*CMapFormat4)
	last := f4.Segments[len(f4.Segments)-1]
	if last.Start != 0xffff || last.End != 0xffff {
		t.Errorf("expected sentinel segment at end, have %v", last)
	}
	if g := f4.SegmentGlyph(len(f4.Segments)-1, 0xffff); g != 0 {
		t.Errorf("expected sentinel to map to glyph 0, have %d", g)
	}
}

func TestCMapFormat4RangeOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	data := testFont(false, sfntbuild.CMap{Platform: 0, Encoding: 3, Data: sfntbuild.Format4(
		sfntbuild.Segment{Start: 'a', End: 'c', GlyphIDs: []uint16{3, 0, 1}},
		sfntbuild.Segment{Start: 'x', End: 'y', GlyphIDs: []uint16{2, 4}},
	)})
	otf := parseTestFont(t, data)
	for r, g := range map[rune]GlyphIndex{'a': 3, 'b': 0, 'c': 1, 'x': 2, 'y': 4, 'z': 0} {
		if x := otf.CMap.Lookup(r); x != g {
			t.Errorf("expected glyph %d for %#U, have %d", g, r, x)
		}
	}
}

func TestCMapFormat0(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	var glyphs [256]uint8
	glyphs['A'], glyphs['B'], glyphs['a'] = 1, 2, 1
	otf := parseTestFont(t, testFont(false, sfntbuild.CMap{Platform: 1, Encoding: 0, Data: sfntbuild.Format0(glyphs)}))
	if f := otf.CMap.Subtable.Format(); f != 0 {
		t.Fatalf("expected format 0, have %d", f)
	}
	if otf.CMap.Lookup('a') != 1 || otf.CMap.Lookup('B') != 2 || otf.CMap.Lookup('Z') != 0 {
		t.Errorf("format 0 lookup failed")
	}
	if otf.CMap.Lookup(0x100) != 0 {
		t.Errorf("format 0 must not map code points beyond 255")
	}
}

func TestCMapFormat12(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testFont(false, sfntbuild.CMap{Platform: 0, Encoding: 4, Data: sfntbuild.Format12(
		sfntbuild.Group{Start: 0x41, End: 0x42, StartGlyph: 1},
		sfntbuild.Group{Start: 0x1F600, End: 0x1F601, StartGlyph: 3},
	)}))
	for r, g := range map[rune]GlyphIndex{'A': 1, 'B': 2, 'C': 0, 0x1F600: 3, 0x1F601: 4, 0x1F602: 0} {
		if x := otf.CMap.Lookup(r); x != g {
			t.Errorf("expected glyph %d for %#U, have %d", g, r, x)
		}
	}
}

func TestCMapPreference(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	mapA := func(g int16) []byte {
		return sfntbuild.Format4(sfntbuild.Segment{Start: 'A', End: 'A', Delta: g - 'A'})
	}
	candidates := []sfntbuild.CMap{
		{Platform: 0, Encoding: 3, Data: mapA(4)},
		{Platform: 1, Encoding: 0, Data: mapA(3)},
		{Platform: 3, Encoding: 1, Data: mapA(2)},
		{Platform: 0, Encoding: 4, Data: mapA(1)},
	}
	// dropping the best candidate each round reveals the next one in line
	for i := len(candidates); i > 0; i-- {
		otf := parseTestFont(t, testFont(false, candidates[:i]...))
		want := GlyphIndex(len(candidates) - i + 1)
		if g := otf.CMap.Lookup('A'); g != want {
			t.Errorf("with %d subtables: expected 'A' to map to %d, have %d (platform %d/%d)",
				i, want, g, otf.CMap.Platform, otf.CMap.Encoding)
		}
	}
}

func TestCMapUnusable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testFont(false, sfntbuild.CMap{Platform: 3, Encoding: 10, Data: sfntbuild.Format12(
		sfntbuild.Group{Start: 0x41, End: 0x42, StartGlyph: 1},
	)}))
	if otf.CMap.Subtable != nil {
		t.Errorf("expected no subtable to be selected for platform 3/10")
	}
	if len(otf.CMap.Records) != 1 || otf.CMap.Records[0].Format != 12 {
		t.Errorf("expected encoding record to be listed, have %v", otf.CMap.Records)
	}
	if otf.CMap.Lookup('A') != 0 {
		t.Errorf("expected lookup without subtable to return 0")
	}
	otf = parseTestFont(t, testFont(false, sfntbuild.CMap{Platform: 3, Encoding: 1, Data: sfntbuild.Format6('A', 1, 2)}))
	if otf.CMap.Subtable == nil || otf.CMap.Subtable.Format() != 6 {
		t.Fatalf("expected subtable in format 6 to be selected")
	}
	if otf.CMap.Lookup('A') != 0 {
		t.Errorf("expected format 6 lookup to return 0")
	}
}

func TestCMapCorruptSubtable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	f4 := sfntbuild.Format4(sfntbuild.Segment{Start: 'A', End: 'C', Delta: 1 - 'A'})
	f4[7] = 5 // odd segCountX2
	if _, err := Parse(testFont(false, sfntbuild.CMap{Platform: 3, Encoding: 1, Data: f4})); err == nil {
		t.Errorf("expected corrupt format 4 subtable to be rejected")
	}
}

func TestCMapFormat4SegmentOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// segments handed to the builder out of order end up sorted by end code
	data := testFont(false, sfntbuild.CMap{Platform: 3, Encoding: 1, Data: sfntbuild.Format4(
		sfntbuild.Segment{Start: 'A', End: 'C', Delta: 1 - 'A'},
		sfntbuild.Segment{Start: ' ', End: ' ', Delta: 4 - ' '},
	)})
	otf := parseTestFont(t, data)
	f4 := otf.CMap.Subtable.(*CMapFormat4)
	for i := 1; i < len(f4.Segments); i++ {
		if f4.Segments[i].Start <= f4.Segments[i-1].End {
			t.Errorf("segment %d not in ascending order: %v after %v", i, f4.Segments[i], f4.Segments[i-1])
		}
	}
	if g := otf.CMap.Lookup(' '); g != 4 {
		t.Errorf("expected glyph 4 for space, have %d", g)
	}
	// overlapping segments are rejected
	overlapping := sfntbuild.Format4(
		sfntbuild.Segment{Start: 'A', End: 'C', Delta: 1 - 'A'},
		sfntbuild.Segment{Start: 'B', End: 'D', Delta: 1 - 'B'},
	)
	if _, err := Parse(testFont(false, sfntbuild.CMap{Platform: 3, Encoding: 1, Data: overlapping})); err == nil {
		t.Errorf("expected overlapping format 4 segments to be rejected")
	}
}
