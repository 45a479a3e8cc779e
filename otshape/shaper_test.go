package otshape

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/otglyph/ot"
)

// --- Test Suite Preparation ------------------------------------------------

type ShaperTestEnviron struct {
	suite.Suite
	otf  *ot.Font
	cmap *CMapShaper
	hb   *HarfbuzzShaper
}

// listen for 'go test' command --> run test methods
func TestShapers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.shaper")
	defer teardown()
	suite.Run(t, new(ShaperTestEnviron))
}

// run once, before test suite methods
func (env *ShaperTestEnviron) SetupSuite() {
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelError)
	otf, err := ot.Parse(goregular.TTF)
	env.Require().NoError(err, "cannot parse Go Regular")
	env.otf = otf
	env.cmap = NewCMapShaper(otf)
	env.hb, err = NewHarfbuzzShaper(goregular.TTF)
	env.Require().NoError(err, "cannot create HarfBuzz shaper")
}

// --- Tests -----------------------------------------------------------------

func (env *ShaperTestEnviron) TestCMapShaper() {
	text := []rune("Hello")
	slots, err := env.cmap.Shape(text, DefaultParams)
	env.Require().NoError(err)
	env.Require().Len(slots, len(text))
	for i, s := range slots {
		gid, ok := s.Unwrap()
		env.True(ok, "slot %d should hold a glyph", i)
		env.Equal(env.otf.CMap.Lookup(text[i]), gid)
		env.NotZero(gid, "expected Go Regular to map %q", text[i])
	}
}

func (env *ShaperTestEnviron) TestHarfbuzzMatchesCMap() {
	text := []rune("Hello World")
	expected, err := env.cmap.Shape(text, DefaultParams)
	env.Require().NoError(err)
	slots, err := env.hb.Shape(text, DefaultParams)
	env.Require().NoError(err)
	env.Equal(expected, slots)
}

func (env *ShaperTestEnviron) TestHarfbuzzEmpty() {
	slots, err := env.hb.Shape(nil, DefaultParams)
	env.NoError(err)
	env.Empty(slots)
}

func (env *ShaperTestEnviron) TestNormalization() {
	text := []rune("e\u0301x")
	params := Params{Direction: bidi.LeftToRight, Language: language.French, Normalize: true}
	eacute := env.otf.CMap.Lookup('\u00e9')
	env.Require().NotZero(eacute)
	for name, shaper := range map[string]Shaper{"cmap": env.cmap, "harfbuzz": env.hb} {
		slots, err := shaper.Shape(text, params)
		env.Require().NoError(err, name)
		env.Equal([]GlyphSlot{Glyph(eacute), NoGlyph, Glyph(env.otf.CMap.Lookup('x'))}, slots, name)
	}
	slots, err := env.cmap.Shape(text, DefaultParams)
	env.Require().NoError(err)
	env.Len(slots, 3)
	env.True(slots[1].Valid, "without normalization the combining mark keeps its slot")
}

func (env *ShaperTestEnviron) TestNoCMap() {
	_, err := (&CMapShaper{}).Shape([]rune("x"), DefaultParams)
	env.Error(err)
}

// --- Plain tests -----------------------------------------------------------

func TestPrepareFolding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.shaper")
	defer teardown()
	//
	p := prepare([]rune("a\u0308o\u0308!"), true)
	if string(p.runes) != "\u00e4\u00f6!" {
		t.Fatalf("expected NFC composition, have %q", string(p.runes))
	}
	if len(p.folded) != 3 || p.folded[0] != 2 || p.folded[1] != 2 || p.folded[2] != 1 {
		t.Errorf("unexpected folding %v", p.folded)
	}
	if n := p.span(0, 3); n != 5 {
		t.Errorf("expected span of 5 code-points, have %d", n)
	}
	p = prepare([]rune("abc"), false)
	if p.span(1, 2) != 2 {
		t.Errorf("expected unnormalized span of 2 code-points")
	}
}

func TestAppendCluster(t *testing.T) {
	slots := appendCluster(nil, []ot.GlyphIndex{7}, 3)
	if len(slots) != 3 || !slots[0].Valid || slots[1].Valid || slots[2].Valid {
		t.Errorf("expected one glyph followed by two empty slots, have %v", slots)
	}
	slots = appendCluster(nil, []ot.GlyphIndex{1, 2}, 1)
	if len(slots) != 2 {
		t.Errorf("expected decomposed cluster to keep both glyphs, have %v", slots)
	}
}
