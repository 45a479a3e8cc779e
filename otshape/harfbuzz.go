package otshape

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	tslang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/otglyph/ot"
)

// HarfbuzzShaper shapes text with the OpenType layout features of a font
// (ligatures, contextual alternates, mark positioning, …).
//
// HarfbuzzShaper is safe for concurrent use. The parsed font is shared,
// whereas faces and HarfBuzz buffers are created per call or pooled.
type HarfbuzzShaper struct {
	font *font.Font
	upem int
	pool sync.Pool
}

// NewHarfbuzzShaper parses an SFNT font binary for shaping.
func NewHarfbuzzShaper(sfnt []byte) (*HarfbuzzShaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(sfnt))
	if err != nil {
		return nil, errShaper("cannot parse font for HarfBuzz: " + err.Error())
	}
	s := &HarfbuzzShaper{
		font: face.Font,
		upem: int(face.Font.Upem()),
	}
	s.pool.New = func() any {
		return &shaping.HarfbuzzShaper{}
	}
	return s, nil
}

// Shape resolves text to glyph slots. Glyphs are delivered in visual order.
// For every cluster, the glyphs of the cluster are followed by empty slots, if the
// cluster contains more code-points than glyphs.
func (s *HarfbuzzShaper) Shape(text []rune, params Params) ([]GlyphSlot, error) {
	if len(text) == 0 {
		return []GlyphSlot{}, nil
	}
	p := prepare(text, params.Normalize)
	input := shaping.Input{
		Text:      p.runes,
		RunStart:  0,
		RunEnd:    len(p.runes),
		Direction: direction(params.Direction),
		Face:      font.NewFace(s.font), // faces are not safe for concurrent use
		Size:      fixed.I(s.upem),
		Script:    detectScript(p.runes),
		Language:  languageOf(params.Language),
	}
	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)
	tracer().Debugf("HarfBuzz shaped %d code-points to %d glyphs", len(p.runes), len(output.Glyphs))

	slots := make([]GlyphSlot, 0, len(text))
	glyphs := output.Glyphs
	for i := 0; i < len(glyphs); {
		cluster := glyphs[i].TextIndex()
		j := i
		gids := make([]ot.GlyphIndex, 0, 1)
		for ; j < len(glyphs) && glyphs[j].TextIndex() == cluster; j++ {
			gids = append(gids, ot.GlyphIndex(glyphs[j].GlyphID))
		}
		slots = appendCluster(slots, gids, p.span(cluster, glyphs[i].RuneCount))
		i = j
	}
	return slots, nil
}

func direction(d bidi.Direction) di.Direction {
	if d == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func languageOf(tag language.Tag) tslang.Language {
	if tag == language.Und {
		return tslang.NewLanguage("en")
	}
	return tslang.NewLanguage(tag.String())
}

// detectScript returns the script of the first non-space character. This is a simple
// heuristic; for mixed-script text, clients should split runs by script before shaping.
func detectScript(runes []rune) tslang.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return tslang.LookupScript(r)
	}
	return tslang.Latin
}
