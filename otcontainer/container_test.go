package otcontainer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/otglyph/internal/sfntbuild"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSFNT() []byte {
	b := &sfntbuild.Builder{
		UnitsPerEm: 2048,
		Ascender:   1900,
		Descender:  -500,
		Glyphs: []sfntbuild.Glyph{
			{Advance: 1000, Box: &[4]int16{0, 0, 800, 1400}},
			{Advance: 1200, Box: &[4]int16{10, 0, 1100, 1400}},
			{Advance: 600},
		},
		CMaps: []sfntbuild.CMap{{Platform: 3, Encoding: 1, Data: sfntbuild.Format4(
			sfntbuild.Segment{Start: ' ', End: ' ', Delta: 2 - ' '},
			sfntbuild.Segment{Start: 'A', End: 'A', Delta: 1 - 'A'},
		)}},
		Extra: map[string][]byte{"name": bytes.Repeat([]byte("compress me "), 40)},
	}
	return b.Build()
}

func TestSniff(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.container")
	defer teardown()
	//
	tests := []struct {
		data   []byte
		format Format
	}{
		{[]byte("wOFF...."), FormatWOFF},
		{[]byte("wOF2...."), FormatWOFF2},
		{[]byte{0, 1, 0, 0, 0, 12}, FormatSFNT},
		{[]byte("OTTO"), FormatSFNT},
		{[]byte("wO"), FormatSFNT},
		{nil, FormatSFNT},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.format, Sniff(tt.data), "sniffing %q", tt.data)
	}
	assert.Equal(t, "WOFF2", FormatWOFF2.String())
	assert.Equal(t, "", Tag([]byte("ab")))
}

func TestUnwrapSFNT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.container")
	defer teardown()
	//
	sfnt := testSFNT()
	out, format, err := Unwrap(sfnt)
	require.NoError(t, err)
	assert.Equal(t, FormatSFNT, format)
	assert.Equal(t, sfnt, out)
}

func TestUnwrapWOFF2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.container")
	defer teardown()
	//
	woff2 := append([]byte("wOF2"), testSFNT()...)
	out, format, err := Unwrap(woff2)
	assert.Nil(t, out)
	assert.Equal(t, FormatWOFF2, format)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat), "expected ErrUnsupportedFormat, have %v", err)
}

func TestWOFFRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.container")
	defer teardown()
	//
	sfnt := testSFNT()
	for _, compress := range []bool{false, true} {
		woff := sfntbuild.WOFF(sfnt, compress)
		out, format, err := Unwrap(woff)
		require.NoError(t, err, "compress=%v", compress)
		assert.Equal(t, FormatWOFF, format)
		assert.Equal(t, sfnt, out, "compress=%v: rebuilt SFNT differs from original", compress)
	}
}

func TestWOFFCorrupt(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.container")
	defer teardown()
	//
	woff := sfntbuild.WOFF(testSFNT(), true)
	_, err := DecompressWOFF(woff[:30])
	assert.True(t, errors.Is(err, ErrInvalidWOFF), "truncated header: %v", err)

	noTables := append([]byte{}, woff...)
	noTables[12], noTables[13] = 0, 0
	_, err = DecompressWOFF(noTables)
	assert.True(t, errors.Is(err, ErrInvalidWOFF), "zero tables: %v", err)

	// first directory entry: make compLength exceed origLength
	badLength := append([]byte{}, woff...)
	copy(badLength[woffHeaderSize+8:], []byte{0x7f, 0, 0, 0})
	_, err = DecompressWOFF(badLength)
	assert.True(t, errors.Is(err, ErrInvalidWOFF), "bad comp length: %v", err)

	_, err = DecompressWOFF(woff[:len(woff)-16])
	assert.True(t, errors.Is(err, ErrInvalidWOFF), "truncated data: %v", err)
}
