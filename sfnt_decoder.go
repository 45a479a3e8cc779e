package otglyph

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/npillmayer/otglyph/ot"
	"github.com/npillmayer/otglyph/otquery"
	"github.com/npillmayer/otglyph/otshape"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// SFNTDecoder is the default [Decoder]. Tables are decoded by package ot,
// outlines by golang.org/x/image/font/sfnt. Text is shaped with HarfBuzz or,
// if configured or if the font cannot be loaded for HarfBuzz, with the cmap
// table only.
type SFNTDecoder struct {
	otf    *ot.Font
	name   string
	shaper otshape.Shaper
	params otshape.Params

	mu  sync.Mutex // guards sf and buf
	sf  *sfnt.Font
	buf sfnt.Buffer
}

var _ Decoder = (*SFNTDecoder)(nil)

// NewSFNTDecoder parses an SFNT font binary (TrueType or OpenType).
func NewSFNTDecoder(data []byte, config Config) (*SFNTDecoder, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, errMalformedFont(err)
	}
	sf, err := sfnt.Parse(data)
	if err != nil {
		if !cmapUnusable(otf) {
			return nil, errMalformedFont(err)
		}
		// package sfnt refuses fonts without a usable cmap subtable; the handle
		// reports this on first use, so go on without outlines
		tracer().Infof("font without usable cmap subtable: %v", err)
		sf = nil
	}
	dec := &SFNTDecoder{
		otf:    otf,
		sf:     sf,
		params: config.Params,
	}
	dec.name = otquery.FamilyName(otf)
	if dec.name == "" && sf != nil { // name table without Unicode records
		if n, err := sf.Name(&dec.buf, sfnt.NameIDFull); err == nil {
			dec.name = n
		}
	}
	dec.shaper = otshape.NewCMapShaper(otf)
	if config.Shaping == ShapeHarfbuzz {
		if hb, err := otshape.NewHarfbuzzShaper(data); err == nil {
			dec.shaper = hb
		} else {
			tracer().Infof("font %q: falling back to cmap shaping: %v", dec.name, err)
		}
	}
	tracer().Debugf("loaded and parsed SFNT %s", dec.name)
	return dec, nil
}

// OpenType returns the table view of the font.
func (dec *SFNTDecoder) OpenType() *ot.Font {
	return dec.otf
}

func (dec *SFNTDecoder) UnitsPerEm() int { return dec.otf.UnitsPerEm() }
func (dec *SFNTDecoder) NumGlyphs() int  { return dec.otf.NumGlyphs() }
func (dec *SFNTDecoder) Name() string    { return dec.name }

// Ascender returns the ascender of table 'hhea'.
func (dec *SFNTDecoder) Ascender() int {
	if dec.otf.HHea == nil {
		return 0
	}
	return int(dec.otf.HHea.Ascender)
}

// Descender returns the descender of table 'hhea'.
func (dec *SFNTDecoder) Descender() int {
	if dec.otf.HHea == nil {
		return 0
	}
	return int(dec.otf.HHea.Descender)
}

// AdvanceWidth returns the advance width of glyph gid from table 'hmtx'.
func (dec *SFNTDecoder) AdvanceWidth(gid ot.GlyphIndex) (int, error) {
	if err := dec.checkGlyph(gid); err != nil {
		return 0, err
	}
	aw, _, _ := dec.otf.HMtx.HMetrics(gid)
	return int(aw), nil
}

// BoundingBox returns the bounding box of glyph gid. For fonts with TrueType
// outlines, the box is read from the glyph header, for CFF fonts it is computed
// from the outline.
func (dec *SFNTDecoder) BoundingBox(gid ot.GlyphIndex) (Box, bool, error) {
	if err := dec.checkGlyph(gid); err != nil {
		return Box{}, false, err
	}
	if dec.otf.Glyf == nil {
		outline, err := dec.GlyphPath(gid)
		if err != nil {
			return Box{}, false, err
		}
		return outlineBounds(outline)
	}
	h, ok, err := dec.otf.Glyf.GlyphHeader(gid)
	if err != nil || !ok {
		return Box{}, false, err
	}
	return Box{XMin: int(h.XMin), YMin: int(h.YMin), XMax: int(h.XMax), YMax: int(h.YMax)}, true, nil
}

// CMap returns the cmap subtable selected by package ot.
func (dec *SFNTDecoder) CMap() ot.CMapSubtable {
	if dec.otf.CMap == nil {
		return nil
	}
	return dec.otf.CMap.Subtable
}

// TextToGlyphs shapes text with the configured shaper.
func (dec *SFNTDecoder) TextToGlyphs(text []rune) ([]otshape.GlyphSlot, error) {
	return dec.shaper.Shape(text, dec.params)
}

// GlyphPath loads the outline of glyph gid, unhinted and in font units.
// Every contour is closed with an explicit ClosePath.
func (dec *SFNTDecoder) GlyphPath(gid ot.GlyphIndex) (Outline, error) {
	var outline Outline
	if err := dec.checkGlyph(gid); err != nil {
		return outline, err
	}
	if dec.sf == nil {
		return outline, errors.New("no outline decoder for font without usable cmap")
	}
	dec.mu.Lock()
	defer dec.mu.Unlock()
	// with ppem = units per em, 26.6 fixed point values are font units
	segments, err := dec.sf.LoadGlyph(&dec.buf, sfnt.GlyphIndex(gid), fixed.I(dec.otf.UnitsPerEm()), nil)
	if err != nil {
		return outline, err
	}
	for i, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if i > 0 {
				outline.Append(ClosePath())
			}
			outline.Append(MoveTo(point(seg.Args[0])))
		case sfnt.SegmentOpLineTo:
			outline.Append(LineTo(point(seg.Args[0])))
		case sfnt.SegmentOpQuadTo:
			cx, cy := point(seg.Args[0])
			x, y := point(seg.Args[1])
			outline.Append(QuadTo(cx, cy, x, y))
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := point(seg.Args[0])
			c2x, c2y := point(seg.Args[1])
			x, y := point(seg.Args[2])
			outline.Append(CubeTo(c1x, c1y, c2x, c2y, x, y))
		default:
			return Outline{}, fmt.Errorf("unknown segment operation %d", seg.Op)
		}
	}
	if len(segments) > 0 {
		outline.Append(ClosePath())
	}
	return outline, nil
}

// cmapUnusable is true if the font has no cmap subtable we can interpret.
func cmapUnusable(otf *ot.Font) bool {
	if otf.CMap == nil || otf.CMap.Subtable == nil {
		return true
	}
	_, unsupported := otf.CMap.Subtable.(ot.CMapUnsupported)
	return unsupported
}

func (dec *SFNTDecoder) checkGlyph(gid ot.GlyphIndex) error {
	if int(gid) >= dec.otf.NumGlyphs() {
		return fmt.Errorf("glyph index %d out of range (font has %d glyphs)", gid, dec.otf.NumGlyphs())
	}
	return nil
}

// point converts a point of package sfnt, where y grows downwards, to font units
// with y growing upwards.
func point(p fixed.Point26_6) (float32, float32) {
	return float32(p.X) / 64, -float32(p.Y) / 64
}

// outlineBounds computes the bounding box of the on- and off-curve points of an outline.
func outlineBounds(outline Outline) (Box, bool, error) {
	xmin, ymin := float32(math.MaxFloat32), float32(math.MaxFloat32)
	xmax, ymax := -xmin, -ymin
	points := 0
	for cmd, err := range outline.Commands() {
		if err != nil {
			return Box{}, false, err
		}
		args := cmd.Args()
		for i := 0; i+1 < len(args); i += 2 {
			xmin, xmax = min(xmin, args[i]), max(xmax, args[i])
			ymin, ymax = min(ymin, args[i+1]), max(ymax, args[i+1])
			points++
		}
	}
	if points == 0 {
		return Box{}, false, nil
	}
	return Box{
		XMin: int(math.Floor(float64(xmin))),
		YMin: int(math.Floor(float64(ymin))),
		XMax: int(math.Ceil(float64(xmax))),
		YMax: int(math.Ceil(float64(ymax))),
	}, true, nil
}
