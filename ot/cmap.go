package ot

import (
	"fmt"
	"sort"
)

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
//
// From the subtables present in the font, exactly one is selected, by the
// following preference of platform and encoding IDs:
//
//	0 (Unicode)  4   Unicode full repertoire
//	3 (Windows)  1   Unicode BMP
//	1 (Mac)      0   Roman
//	0 (Unicode)  3   Unicode BMP
//
// Subtables in formats 0, 4 and 12 are interpreted. If the selected subtable uses
// any other format, it is kept as a `CMapUnsupported` which reports its format.
// If none of the platform/encoding combinations above is present, Subtable is nil.
type CMapTable struct {
	tableBase
	Records   []CMapEncodingRecord // all encoding records of the table
	Platform  uint16               // platform ID of the selected subtable
	Encoding  uint16               // encoding ID of the selected subtable
	Subtable  CMapSubtable         // selected subtable, or nil
	NumGlyphs int                  // from table maxp; for glyph index validation
}

// CMapEncodingRecord is an entry of the cmap table header, pointing to a subtable.
type CMapEncodingRecord struct {
	Platform, Encoding uint16
	Offset             uint32
	Format             uint16
}

// Lookup returns the glyph index for a code-point, or 0 if the code-point is not mapped.
func (t *CMapTable) Lookup(r rune) GlyphIndex {
	if t == nil || t.Subtable == nil {
		return 0
	}
	g := t.Subtable.Lookup(r)
	if t.NumGlyphs > 0 && int(g) >= t.NumGlyphs {
		return 0
	}
	return g
}

// Platform IDs and Platform Specific IDs as per
// https://www.microsoft.com/typography/otspec/name.htm
const (
	pidUnicode   = 0
	pidMacintosh = 1
	pidWindows   = 3

	psidUnicode2BMPOnly        = 3
	psidUnicode2FullRepertoire = 4
	psidMacintoshRoman         = 0
	psidWindowsUCS2            = 1
)

// cmapPreference lists the platform/encoding pairs we will consider, best first.
var cmapPreference = [...]struct{ pid, psid uint16 }{
	{pidUnicode, psidUnicode2FullRepertoire},
	{pidWindows, psidWindowsUCS2},
	{pidMacintosh, psidMacintoshRoman},
	{pidUnicode, psidUnicode2BMPOnly},
}

// This value is arbitrary, but defends against parsing malicious font
// files causing excessive memory allocations. For reference, Adobe's
// SourceHanSansSC-Regular.otf has 65535 glyphs and:
//   - its format-4  cmap table has  1581 segments.
//   - its format-12 cmap table has 16498 segments.
const maxCMapSegments = 20000

// CMapSubtable is a character-to-glyph mapping in one of the cmap formats.
type CMapSubtable interface {
	Format() uint16
	Lookup(r rune) GlyphIndex // 0 for unmapped code-points
}

func parseCMap(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	const headerSize, entrySize = 4, 8
	if size < headerSize {
		return nil, ec.fail(tag, "Header", "cmap table too small", offset)
	}
	n := int(b.U16(2)) // number of sub-tables
	tracer().Debugf("font cmap has %d sub-tables in %d bytes", n, size)
	if headerSize+entrySize*n > len(b) {
		return nil, ec.fail(tag, "Header", fmt.Sprintf("table size %d too small for %d encoding records", size, n), offset)
	}
	t := &CMapTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.self = t
	t.Records = make([]CMapEncodingRecord, 0, n)
	for i := range n {
		rec := b[headerSize+entrySize*i:]
		r := CMapEncodingRecord{Platform: u16(rec), Encoding: u16(rec[2:]), Offset: u32(rec[4:])}
		if r.Offset >= size {
			ec.addWarning(tag, fmt.Sprintf("sub-table %d (platform=%d, encoding=%d) out of bounds",
				i, r.Platform, r.Encoding), offset)
			continue
		}
		r.Format = b.U16(int(r.Offset))
		t.Records = append(t.Records, r)
	}
	selected := -1
	for _, pref := range cmapPreference {
		for i, r := range t.Records {
			if r.Platform == pref.pid && r.Encoding == pref.psid {
				selected = i
				break
			}
		}
		if selected >= 0 {
			break
		}
	}
	if selected < 0 {
		tracer().Infof("cmap table has no usable platform/encoding")
		ec.addError(tag, "Encoding", "no usable platform/encoding combination", SeverityMajor, offset)
		return t, nil
	}
	rec := t.Records[selected]
	t.Platform, t.Encoding = rec.Platform, rec.Encoding
	sub := b[rec.Offset:]
	tracer().Debugf("cmap selects subtable platform=%d encoding=%d format=%d",
		rec.Platform, rec.Encoding, rec.Format)
	var err error
	switch rec.Format {
	case 0:
		t.Subtable, err = parseCMapFormat0(sub)
	case 4:
		t.Subtable, err = parseCMapFormat4(sub)
	case 12:
		t.Subtable, err = parseCMapFormat12(sub)
	default:
		ec.addWarning(tag, fmt.Sprintf("cmap subtable format %d not interpreted", rec.Format), offset+rec.Offset)
		t.Subtable = CMapUnsupported{format: rec.Format}
	}
	if err != nil {
		section := fmt.Sprintf("Format%d", rec.Format)
		return nil, ec.fail(tag, section, err.Error(), offset+rec.Offset)
	}
	return t, nil
}

// --- Format 0 --------------------------------------------------------------

// CMapFormat0 is the Apple standard byte encoding table: a simple 1 to 1 mapping
// of character codes 0…255 to glyph indices.
type CMapFormat0 struct {
	GlyphIDs [256]uint8
}

func parseCMapFormat0(b binarySegm) (*CMapFormat0, error) {
	const headerSize = 6
	arr, err := b.view(headerSize, 256)
	if err != nil {
		return nil, fmt.Errorf("glyph id array truncated")
	}
	f := &CMapFormat0{}
	copy(f.GlyphIDs[:], arr)
	return f, nil
}

func (f *CMapFormat0) Format() uint16 { return 0 }

func (f *CMapFormat0) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 255 {
		return 0
	}
	return GlyphIndex(f.GlyphIDs[r])
}

// --- Format 4 --------------------------------------------------------------

// CMapFormat4 is the segment mapping to delta values.
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
//
// Code points are grouped into segments. A segment either maps by adding a delta
// to the code, or, if its RangeOffset is non-zero, points into an array of glyph IDs.
type CMapFormat4 struct {
	Segments     []CMapSegment
	rangeOffsets binarySegm // from idRangeOffset[0] up to the end of the glyph ID array
}

// CMapSegment is a contiguous range of code points in a format 4 subtable.
// The last segment of a well-formed table is the sentinel [0xFFFF, 0xFFFF].
type CMapSegment struct {
	Start, End  uint16
	Delta       uint16
	RangeOffset uint16
}

func parseCMapFormat4(b binarySegm) (*CMapFormat4, error) {
	const headerSize = 14
	if headerSize > len(b) {
		return nil, fmt.Errorf("subtable header truncated")
	}
	segCountX2 := b.U16(6)
	if segCountX2&1 != 0 {
		return nil, fmt.Errorf("illegal segment count %d/2", segCountX2)
	}
	segCount := int(segCountX2 / 2)
	if segCount > maxCMapSegments {
		return nil, fmt.Errorf("more than %d cmap segments not supported", maxCMapSegments)
	}
	// endCode[n], reservedPad, startCode[n], idDelta[n], idRangeOffset[n]
	arrays, err := b.view(headerSize, 8*segCount+2)
	if err != nil {
		return nil, fmt.Errorf("segment arrays truncated")
	}
	f := &CMapFormat4{Segments: make([]CMapSegment, segCount)}
	for i := range f.Segments {
		f.Segments[i] = CMapSegment{
			End:         u16(arrays[2*i:]),
			Start:       u16(arrays[2*segCount+2+2*i:]),
			Delta:       u16(arrays[4*segCount+2+2*i:]),
			RangeOffset: u16(arrays[6*segCount+2+2*i:]),
		}
		if f.Segments[i].End < f.Segments[i].Start {
			return nil, fmt.Errorf("segment %d has end code before start code", i)
		}
		if i > 0 && f.Segments[i].Start <= f.Segments[i-1].End {
			return nil, fmt.Errorf("segment %d overlaps with predecessor", i)
		}
	}
	f.rangeOffsets = b[headerSize+6*segCount+2:]
	return f, nil
}

func (f *CMapFormat4) Format() uint16 { return 4 }

func (f *CMapFormat4) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xffff {
		return 0
	}
	c := uint16(r)
	i := sort.Search(len(f.Segments), func(i int) bool {
		return f.Segments[i].End >= c
	})
	if i == len(f.Segments) || c < f.Segments[i].Start {
		return 0
	}
	return f.SegmentGlyph(i, c)
}

// SegmentGlyph resolves code c with the delta and range offset of segment i,
// without checking that c is in the range of segment i.
// Glyph IDs beyond the bounds of the glyph ID array resolve to 0.
func (f *CMapFormat4) SegmentGlyph(i int, c uint16) GlyphIndex {
	seg := f.Segments[i]
	if seg.RangeOffset == 0 {
		return GlyphIndex(c + seg.Delta)
	}
	// idRangeOffset is relative to its own position in the idRangeOffset array
	at := 2*i + int(seg.RangeOffset) + 2*int(c-seg.Start)
	g, err := f.rangeOffsets.u16(at)
	if err != nil || g == 0 {
		return 0
	}
	return GlyphIndex(g + seg.Delta)
}

// --- Format 12 -------------------------------------------------------------

// CMapFormat12 is the segmented coverage format, the standard character-to-glyph-index
// mapping subtable for fonts supporting Unicode characters beyond the BMP.
type CMapFormat12 struct {
	Groups []CMapGroup
}

// CMapGroup maps a range of code points to a consecutive range of glyphs.
type CMapGroup struct {
	StartCharCode, EndCharCode uint32
	StartGlyphID               uint32
}

func parseCMapFormat12(b binarySegm) (*CMapFormat12, error) {
	const headerSize = 16
	if headerSize > len(b) {
		return nil, fmt.Errorf("subtable header truncated")
	}
	numGroups := u32(b[12:])
	if numGroups > maxCMapSegments {
		return nil, fmt.Errorf("more than %d cmap segments not supported", maxCMapSegments)
	}
	groups, err := b.view(headerSize, 12*int(numGroups))
	if err != nil && numGroups > 0 {
		return nil, fmt.Errorf("groups truncated")
	}
	f := &CMapFormat12{Groups: make([]CMapGroup, numGroups)}
	for i := range f.Groups {
		f.Groups[i] = CMapGroup{
			StartCharCode: u32(groups[12*i:]),
			EndCharCode:   u32(groups[12*i+4:]),
			StartGlyphID:  u32(groups[12*i+8:]),
		}
		if f.Groups[i].EndCharCode < f.Groups[i].StartCharCode {
			return nil, fmt.Errorf("group %d has end code before start code", i)
		}
		if i > 0 && f.Groups[i].StartCharCode <= f.Groups[i-1].EndCharCode {
			return nil, fmt.Errorf("group %d overlaps with predecessor", i)
		}
	}
	return f, nil
}

func (f *CMapFormat12) Format() uint16 { return 12 }

func (f *CMapFormat12) Lookup(r rune) GlyphIndex {
	if r < 0 {
		return 0
	}
	c := uint32(r)
	i := sort.Search(len(f.Groups), func(i int) bool {
		return f.Groups[i].EndCharCode >= c
	})
	if i == len(f.Groups) || c < f.Groups[i].StartCharCode {
		return 0
	}
	g := f.Groups[i].StartGlyphID + (c - f.Groups[i].StartCharCode)
	if g > 0xffff {
		return 0
	}
	return GlyphIndex(g)
}

// --- Other formats ---------------------------------------------------------

// CMapUnsupported stands in for a selected subtable in a format we do not interpret.
// It maps every code-point to glyph 0.
type CMapUnsupported struct {
	format uint16
}

func (f CMapUnsupported) Format() uint16 { return f.format }

func (f CMapUnsupported) Lookup(rune) GlyphIndex { return 0 }
