package otglyph

import (
	"fmt"
	"iter"
	"math"
)

// Placement is a glyph placed on the baseline at horizontal offset X.
type Placement struct {
	Glyph *Glyph
	X     float64
}

// Layout places the glyphs for text side by side, starting at x = 0. For every glyph,
// emit is called with the glyph and its horizontal offset. Offsets are in the units
// of fontSize, which is the size of the em square.
//
// After each glyph, the pen advances by the glyph's advance width, scaled to fontSize,
// and by letterSpacing * fontSize. letterSpacing may be negative. Positions of the
// text which shaping folded into a preceding glyph (e.g., ligatures) are skipped.
//
// Layout returns the final pen position, i.e. the width of the text.
func (f *Font) Layout(text []rune, fontSize, letterSpacing float64, emit func(*Glyph, float64)) (float64, error) {
	return f.layout(text, fontSize, letterSpacing, func(g *Glyph, x float64) bool {
		if emit != nil {
			emit(g, x)
		}
		return true
	})
}

// LayoutString is Layout for a UTF-8 string.
func (f *Font) LayoutString(s string, fontSize, letterSpacing float64, emit func(*Glyph, float64)) (float64, error) {
	return f.Layout([]rune(s), fontSize, letterSpacing, emit)
}

// Measure returns the width of text, as Layout would return it.
func (f *Font) Measure(text []rune, fontSize, letterSpacing float64) (float64, error) {
	return f.Layout(text, fontSize, letterSpacing, nil)
}

// Placements is the iterator form of Layout. On error, a zero Placement is
// yielded together with the error and iteration stops.
func (f *Font) Placements(text []rune, fontSize, letterSpacing float64) iter.Seq2[Placement, error] {
	return func(yield func(Placement, error) bool) {
		stopped := false
		_, err := f.layout(text, fontSize, letterSpacing, func(g *Glyph, x float64) bool {
			if !yield(Placement{Glyph: g, X: x}, nil) {
				stopped = true
			}
			return !stopped
		})
		if err != nil && !stopped {
			yield(Placement{}, err)
		}
	}
}

func (f *Font) layout(text []rune, fontSize, letterSpacing float64, emit func(*Glyph, float64) bool) (float64, error) {
	if !(fontSize > 0) || math.IsInf(fontSize, 0) {
		return 0, fmt.Errorf("otglyph: illegal font size %g", fontSize)
	}
	fontScale := fontSize / float64(f.upem)
	slots, err := f.dec.TextToGlyphs(text)
	if err != nil {
		return 0, fmt.Errorf("otglyph: shaping %q: %w", string(text), err)
	}
	penX := 0.0
	for _, slot := range slots {
		gid, ok := slot.Unwrap()
		if !ok {
			continue
		}
		g, err := f.Glyph(gid)
		if err != nil {
			return penX, err
		}
		if !emit(g, penX) {
			return penX, nil
		}
		if g.AdvanceWidth != 0 {
			penX += float64(g.AdvanceWidth) * fontScale
		}
		if letterSpacing != 0 {
			penX += letterSpacing * fontSize
		}
	}
	return penX, nil
}
