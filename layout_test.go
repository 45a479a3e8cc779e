package otglyph

import (
	"testing"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otshape"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emission struct {
	gid ot.GlyphIndex
	x   float64
}

func layoutAll(t *testing.T, f *Font, text string, size, spacing float64) ([]emission, float64) {
	t.Helper()
	var emitted []emission
	penX, err := f.LayoutString(text, size, spacing, func(g *Glyph, x float64) {
		emitted = append(emitted, emission{g.Index, x})
	})
	require.NoError(t, err)
	return emitted, penX
}

func TestLayoutSingleGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	dec := newFakeDecoder()
	dec.advances[1] = 500
	f := fakeFont(t, dec)
	emitted, penX := layoutAll(t, f, "A", 100, 0)
	assert.Equal(t, []emission{{1, 0}}, emitted)
	assert.InDelta(t, 50.0, penX, 1e-9)
}

func TestLayoutSkipsEmptySlots(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	dec := newFakeDecoder()
	dec.advances[3] = 400
	dec.shaped = []otshape.GlyphSlot{otshape.NoGlyph, otshape.Glyph(3)}
	f := fakeFont(t, dec)
	emitted, penX := layoutAll(t, f, "fi", 10, 0)
	assert.Equal(t, []emission{{3, 0}}, emitted)
	assert.InDelta(t, 4.0, penX, 1e-9)
}

func TestLayoutLetterSpacing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	dec := newFakeDecoder()
	dec.advances[1] = 500
	dec.advances[2] = 0 // like a combining mark
	dec.advances[3] = 250
	f := fakeFont(t, dec)
	emitted, penX := layoutAll(t, f, "ABC", 20, 0.1)
	// A: 0 → 10+2; B: 12 → +0+2; C: 14 → +5+2
	require.Len(t, emitted, 3)
	for i, x := range []float64{0, 12, 14} {
		assert.Equal(t, ot.GlyphIndex(i+1), emitted[i].gid)
		assert.InDelta(t, x, emitted[i].x, 1e-9, "glyph %d", i+1)
	}
	assert.InDelta(t, 21.0, penX, 1e-9)
	//
	_, penX = layoutAll(t, f, "A", 20, -0.1)
	assert.InDelta(t, 8.0, penX, 1e-9, "negative letter spacing")
	w, err := f.Measure([]rune("ABC"), 20, 0.1)
	require.NoError(t, err)
	assert.InDelta(t, 21.0, w, 1e-9)
}

func TestLayoutErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	dec := newFakeDecoder()
	dec.broken[2] = true
	f := fakeFont(t, dec)
	for _, size := range []float64{0, -1} {
		_, err := f.Layout([]rune("A"), size, 0, nil)
		assert.Error(t, err, "font size %g", size)
	}
	_, err := f.LayoutString("AB", 12, 0, nil)
	assert.ErrorIs(t, err, ErrMalformedGlyphData)
}

func TestPlacements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.glyph")
	defer teardown()
	//
	dec := newFakeDecoder()
	dec.advances[1] = 1000
	dec.advances[2] = 500
	dec.broken[3] = true
	f := fakeFont(t, dec)
	var xs []float64
	for p, err := range f.Placements([]rune("AB"), 10, 0) {
		require.NoError(t, err)
		xs = append(xs, p.X)
	}
	assert.InDeltaSlice(t, []float64{0, 10}, xs, 1e-9)
	//
	n := 0
	for range f.Placements([]rune("ABAB"), 10, 0) {
		n++
		break
	}
	assert.Equal(t, 1, n)
	//
	var lastErr error
	for _, err := range f.Placements([]rune("AC"), 10, 0) {
		lastErr = err
	}
	assert.ErrorIs(t, lastErr, ErrMalformedGlyphData)
}
