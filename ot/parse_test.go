package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/otglyph/internal/sfntbuild"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func box(xmin, ymin, xmax, ymax int16) *[4]int16 {
	return &[4]int16{xmin, ymin, xmax, ymax}
}

// testFont has glyphs .notdef, A, B, C, space; only the first two carry long metrics.
func testFont(longLoca bool, cmaps ...sfntbuild.CMap) []byte {
	if len(cmaps) == 0 {
		cmaps = []sfntbuild.CMap{{Platform: 3, Encoding: 1, Data: sfntbuild.Format4(
			sfntbuild.Segment{Start: ' ', End: ' ', Delta: 4 - ' '},
			sfntbuild.Segment{Start: 'A', End: 'C', Delta: 1 - 'A'},
		)}}
	}
	b := &sfntbuild.Builder{
		UnitsPerEm: 1000,
		Ascender:   800,
		Descender:  -200,
		Glyphs: []sfntbuild.Glyph{
			{Advance: 500, Box: box(0, 0, 400, 700)},
			{Advance: 600, LSB: 10, Box: box(10, 0, 590, 700)},
			{LSB: 20, Box: box(20, -10, 560, 710)},
			{LSB: 30, Box: box(30, 0, 580, 700)},
			{LSB: 0},
		},
		NumberOfHMetrics: 2,
		LongLoca:         longLoca,
		CMaps:            cmaps,
		Extra:            map[string][]byte{"post": make([]byte, 32)},
	}
	return b.Build()
}

func parseTestFont(t *testing.T, data []byte, opts ...ParseOption) *Font {
	t.Helper()
	otf, err := Parse(data, opts...)
	if err != nil {
		t.Fatalf("cannot parse synthetic font: %v", err)
	}
	return otf
}

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testFont(false))
	if otf.Header.FontType != 0x00010000 {
		t.Fatalf("expected font type 0x0001000, is %x", otf.Header.FontType)
	}
	if otf.Table(T("post")) == nil {
		t.Errorf("expected generic table 'post' to be accessible")
	}
	if len(otf.TableTags()) != 8 {
		t.Errorf("expected 8 tables, have %d", len(otf.TableTags()))
	}
	if len(otf.Warnings()) == 0 {
		t.Errorf("expected a warning for uninterpreted table 'post'")
	}
}

func TestParseMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf := parseTestFont(t, testFont(false))
	if otf.UnitsPerEm() != 1000 {
		t.Errorf("expected units per em of 1000, have %d", otf.UnitsPerEm())
	}
	if otf.HHea.Ascender != 800 || otf.HHea.Descender != -200 {
		t.Errorf("expected ascender/descender 800/-200, have %d/%d", otf.HHea.Ascender, otf.HHea.Descender)
	}
	if otf.NumGlyphs() != 5 {
		t.Errorf("expected 5 glyphs, have %d", otf.NumGlyphs())
	}
	aw, lsb, ok := otf.HMtx.HMetrics(1)
	if !ok || aw != 600 || lsb != 10 {
		t.Errorf("expected metrics 600/10 for glyph 1, have %d/%d (%v)", aw, lsb, ok)
	}
	// glyphs beyond numberOfHMetrics repeat the last advance
	aw, lsb, ok = otf.HMtx.HMetrics(3)
	if !ok || aw != 600 || lsb != 30 {
		t.Errorf("expected metrics 600/30 for glyph 3, have %d/%d (%v)", aw, lsb, ok)
	}
	if _, _, ok = otf.HMtx.HMetrics(5); ok {
		t.Errorf("expected no metrics for glyph 5")
	}
}

func TestParseGlyphHeaders(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, long := range []bool{false, true} {
		otf := parseTestFont(t, testFont(long))
		h, ok, err := otf.Glyf.GlyphHeader(2)
		if err != nil || !ok {
			t.Fatalf("long=%v: expected header for glyph 2, have ok=%v, err=%v", long, ok, err)
		}
		if h.XMin != 20 || h.YMin != -10 || h.XMax != 560 || h.YMax != 710 {
			t.Errorf("long=%v: unexpected bounding box %v", long, h)
		}
		if h.IsComposite() {
			t.Errorf("long=%v: glyph 2 is not composite", long)
		}
		_, ok, err = otf.Glyf.GlyphHeader(4)
		if err != nil || ok {
			t.Errorf("long=%v: expected glyph 4 to have no outline, have ok=%v, err=%v", long, ok, err)
		}
		if _, _, err = otf.Glyf.GlyphHeader(7); err == nil {
			t.Errorf("long=%v: expected error for glyph 7", long)
		}
	}
}

func TestParseMissingTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tables := map[string][]byte{
		"cmap": sfntbuild.CMapTable(),
		"maxp": {0, 0, 0x50, 0, 0, 0},
	}
	data := sfntbuild.Assemble(0x00010000, tables)
	_, err := Parse(data)
	if !errors.Is(err, ErrFontFormat) {
		t.Fatalf("expected font format error for missing tables, have %v", err)
	}
	otf, err := Parse(data, IsTestfont)
	if err != nil {
		t.Fatalf("expected test font to be accepted, have %v", err)
	}
	if len(otf.Errors()) == 0 {
		t.Errorf("expected missing tables to be recorded as errors")
	}
}

func TestParseCorruptFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	if _, err := Parse([]byte{0, 1, 0}); !errors.Is(err, ErrFontFormat) {
		t.Errorf("expected error for short font data, have %v", err)
	}
	if _, err := Parse([]byte("wOFF0000000000000000")); !errors.Is(err, ErrFontFormat) {
		t.Errorf("expected error for non-SFNT data, have %v", err)
	}
	data := testFont(false)
	if _, err := Parse(data[:len(data)-40]); !errors.Is(err, ErrFontFormat) {
		t.Errorf("expected error for truncated font, have %v", err)
	}
}
