package otshape

import (
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/otglyph/ot"
)

// GlyphSlot is the result of shaping for one position of the output sequence.
// A slot either holds a glyph index or is empty, flagging a code-point which
// has been consumed by a preceding glyph.
type GlyphSlot struct {
	GID   ot.GlyphIndex
	Valid bool
}

// NoGlyph is the empty glyph slot.
var NoGlyph = GlyphSlot{}

// Glyph returns a slot holding glyph gid.
func Glyph(gid ot.GlyphIndex) GlyphSlot {
	return GlyphSlot{GID: gid, Valid: true}
}

// Unwrap returns the glyph index and whether the slot holds a glyph.
func (s GlyphSlot) Unwrap() (ot.GlyphIndex, bool) {
	return s.GID, s.Valid
}

// Params collects shaping parameters.
type Params struct {
	Direction bidi.Direction // writing direction; only right-to-left is treated specially
	Language  language.Tag   // BCP 47 language tag; language.Und for none
	Normalize bool           // apply Unicode NFC before shaping
}

// DefaultParams are left-to-right, English, not normalized.
var DefaultParams = Params{
	Direction: bidi.LeftToRight,
	Language:  language.English,
}

// Shaper resolves a run of code-points to glyph slots.
type Shaper interface {
	Shape(text []rune, params Params) ([]GlyphSlot, error)
}

// prepared is a run of code-points, ready for shaping. folded[i] is the
// number of input code-points represented by runes[i]; the sum over folded
// equals the length of the input.
type prepared struct {
	runes  []rune
	folded []int
}

// prepare applies normalization to text, if requested.
func prepare(text []rune, normalize bool) prepared {
	if !normalize {
		p := prepared{runes: text, folded: make([]int, len(text))}
		for i := range p.folded {
			p.folded[i] = 1
		}
		return p
	}
	src := string(text)
	p := prepared{
		runes:  make([]rune, 0, len(text)),
		folded: make([]int, 0, len(text)),
	}
	var it norm.Iter
	it.InitString(norm.NFC, src)
	start := 0
	for !it.Done() {
		seg := it.Next()
		k := utf8.RuneCountInString(src[start:it.Pos()])
		start = it.Pos()
		out := []rune(string(seg))
		for j, r := range out {
			n := 0
			if j < k {
				n = 1
			}
			if j == len(out)-1 && k > len(out) {
				n = k - len(out) + 1 // last rune of the segment carries the surplus
			}
			p.runes = append(p.runes, r)
			p.folded = append(p.folded, n)
		}
	}
	if len(p.runes) != len(text) {
		tracer().Debugf("normalization changed run length from %d to %d", len(text), len(p.runes))
	}
	return p
}

// span returns the number of input code-points represented by runes [from, from+n).
func (p prepared) span(from, n int) int {
	cnt := 0
	for i := from; i < from+n && i < len(p.folded); i++ {
		cnt += p.folded[i]
	}
	return cnt
}

// appendCluster appends the glyphs of a cluster, padded with empty slots
// for consumed code-points.
func appendCluster(slots []GlyphSlot, glyphs []ot.GlyphIndex, codepoints int) []GlyphSlot {
	for _, g := range glyphs {
		slots = append(slots, Glyph(g))
	}
	for i := len(glyphs); i < codepoints; i++ {
		slots = append(slots, NoGlyph)
	}
	return slots
}
