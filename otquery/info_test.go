package otquery

import (
	"testing"
	"time"

	"github.com/npillmayer/otglyph/internal/sfntbuild"
	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	otf    *ot.Font // synthetic font
	goFont *ot.Font // Go Regular
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelError)
	var err error
	env.otf, err = ot.Parse(syntheticFont(nil))
	env.Require().NoError(err, "cannot parse synthetic font")
	env.goFont, err = ot.Parse(goregular.TTF)
	env.Require().NoError(err, "cannot parse Go Regular")
	tracing.Select("font.opentype").SetTraceLevel(tracing.LevelInfo)
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	env.Equal("TrueType", FontType(env.otf), "expected font type of test font to be TrueType")
	env.Equal("TrueType", FontType(env.goFont))
	env.Equal("", FontType(nil))
}

func (env *InfoTestEnviron) TestNames() {
	names := map[sfnt.NameID]string{}
	for id, value := range NamesRange(env.otf) {
		names[id] = value
	}
	env.Equal("Synthetic", names[sfnt.NameIDFamily])
	env.Equal("Bold", names[sfnt.NameIDSubfamily])
	env.Equal("Synthetic Bold", FamilyName(env.otf))
	env.Contains(FamilyName(env.goFont), "Go", "expected family name of Go Regular")
}

func (env *InfoTestEnviron) TestNamesRangeStopsEarly() {
	n := 0
	for range NamesRange(env.otf) {
		n++
		break
	}
	env.Equal(1, n)
}

func (env *InfoTestEnviron) TestHeadInfo() {
	h, ok := HeadInfo(env.goFont)
	env.Require().True(ok, "expected to decode table 'head'")
	env.Equal(env.goFont.Head.Flags, h.Flags, "expected matching Flags")
	env.Equal(env.goFont.Head.UnitsPerEm, h.UnitsPerEm, "expected matching UnitsPerEm")
	env.Equal(int16(env.goFont.Head.IndexToLocFormat), h.IndexToLocFormat, "expected matching IndexToLocFormat")
	env.Equal(uint32(0x5F0F3CF5), h.MagicNumber, "expected OpenType head magic number")
	env.True(h.Created.After(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)), "Go fonts are younger")
}

func (env *InfoTestEnviron) TestMaxPInfo() {
	m, ok := MaxPInfo(env.goFont)
	env.Require().True(ok, "expected to decode table 'maxp'")
	env.Equal(uint16(env.goFont.MaxP.NumGlyphs), m.NumGlyphs, "expected matching numGlyphs")
	env.True(m.HasExtendedProfile, "TrueType fonts carry maxp version 1.0")
	//
	m, ok = MaxPInfo(env.otf)
	env.Require().True(ok)
	env.Equal(uint16(5), m.NumGlyphs)
	env.False(m.HasExtendedProfile, "synthetic font carries maxp version 0.5")
}

func (env *InfoTestEnviron) TestFontMetrics() {
	m := FontMetrics(env.otf)
	env.Equal(sfnt.Units(1000), m.UnitsPerEm)
	env.Equal(sfnt.Units(800), m.Ascent)
	env.Equal(sfnt.Units(-200), m.Descent)
}

func (env *InfoTestEnviron) TestFontMetricsOS2Fallback() {
	otf, err := ot.Parse(syntheticFont(func(b *sfntbuild.Builder) {
		b.Ascender, b.Descender = 0, 0
		b.Extra["OS/2"] = sfntbuild.OS2Table(750, -250, 100)
	}))
	env.Require().NoError(err)
	m := FontMetrics(otf)
	env.Equal(sfnt.Units(750), m.Ascent)
	env.Equal(sfnt.Units(-250), m.Descent)
	env.Equal(sfnt.Units(100), m.LineGap)
	env.Equal(sfnt.Units(1100), m.LineHeight())
}

func (env *InfoTestEnviron) TestGlyphMetrics() {
	env.Equal(ot.GlyphIndex(1), GlyphIndex(env.otf, 'A'))
	env.Equal(ot.GlyphIndex(0), GlyphIndex(env.otf, 'Z'))
	m := GlyphMetrics(env.otf, 1)
	env.Equal(sfnt.Units(600), m.Advance)
	env.Equal(sfnt.Units(10), m.LSB)
	env.Equal(BoundingBox{MinX: 10, MinY: 0, MaxX: 590, MaxY: 700}, m.BBox)
	env.Equal(sfnt.Units(10), m.RSB)
	//
	space := GlyphMetrics(env.otf, 2)
	env.True(space.BBox.IsEmpty(), "glyph without outline has an empty box")
	env.Zero(space.RSB)
}

func (env *InfoTestEnviron) TestLayoutInfo() {
	env.Empty(LayoutTables(env.otf), "synthetic font has no layout tables")
	layouts := LayoutTables(env.goFont)
	env.T().Logf("Go Regular layout tables: %v", layouts)
	for _, tag := range layouts {
		env.NotNil(env.goFont.Table(ot.T(tag)), "reported table %s not present", tag)
	}
}

// --- Helpers ----------------------------------------------------------

func syntheticFont(modify func(*sfntbuild.Builder)) []byte {
	b := &sfntbuild.Builder{
		UnitsPerEm: 1000,
		Ascender:   800,
		Descender:  -200,
		Glyphs: []sfntbuild.Glyph{
			{Advance: 500, Box: &[4]int16{0, 0, 400, 700}},
			{Advance: 600, LSB: 10, Box: &[4]int16{10, 0, 590, 700}},
			{Advance: 250},
			{Advance: 250},
			{Advance: 250},
		},
		CMaps: []sfntbuild.CMap{{Platform: 3, Encoding: 1, Data: sfntbuild.Format4(
			sfntbuild.Segment{Start: ' ', End: ' ', Delta: 2 - ' '},
			sfntbuild.Segment{Start: 'A', End: 'A', Delta: 1 - 'A'},
		)}},
		Extra: map[string][]byte{
			"name": sfntbuild.NameTable(map[uint16]string{
				uint16(sfnt.NameIDFamily):    "Synthetic",
				uint16(sfnt.NameIDSubfamily): "Bold",
			}),
		},
	}
	if modify != nil {
		modify(b)
	}
	return b.Build()
}
