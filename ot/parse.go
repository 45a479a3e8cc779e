package ot

import (
	"fmt"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionOpenType = 0x4f54544f // OTTO
	sfntVersionApple    = 0x74727565 // true
)

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the fonts byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
//
// Parse expects an uncompressed SFNT binary. Container formats such as WOFF have to be
// unwrapped by the caller.
func Parse(font []byte, opts ...ParseOption) (*Font, error) {
	ec := &errorCollector{}
	src := binarySegm(font)
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	if len(src) < 12 {
		return nil, ec.fail(0, "Header", "font data too short for offset table", 0)
	}
	h := FontHeader{FontType: u32(src), TableCount: u16(src[4:])}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == sfntVersionOpenType ||
		h.FontType == sfntVersionTrueType ||
		h.FontType == sfntVersionApple) {
		return nil, ec.fail(0, "Header", fmt.Sprintf("font type not supported: %x", h.FontType), 0)
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table), parseOptions: opts}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, ec.fail(0, "TableRecords", fmt.Sprintf("table count too large: %v", err), 12)
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, ec.fail(0, "TableRecords", "table record entries", 12)
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			// some font tools do not sort; we tolerate this
			ec.addWarning(tag, "table records not sorted by tag", 12)
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, ec.fail(tag, "Offset", "invalid table offset", off)
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, ec.fail(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), off)
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, ec.fail(tag, "Bounds",
				fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)), off)
		}
		t, err := parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			return nil, err
		}
		if t != nil {
			otf.tables[tag] = t
		}
	}
	if err := extractGlyphInfo(otf, ec); err != nil {
		return nil, err
	}
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// RequiredTables lists the tables a font must contain for glyph extraction.
// Tables 'loca' and 'glyf' are optional, as fonts with CFF outlines lack them.
var RequiredTables = []string{
	"cmap", "head", "hhea", "hmtx", "maxp",
}

// Consistency check and shortcuts to essential tables.
func extractGlyphInfo(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		if otf.tables[T(tag)] == nil {
			if otf.hasOption(IsTestfont) || otf.hasOption(relaxCompleteness) {
				ec.addError(T(tag), "Missing", "missing required table", SeverityMajor, 0)
				continue
			}
			return ec.fail(T(tag), "Missing", "missing required table", 0)
		}
	}
	if t := otf.tables[T("cmap")]; t != nil {
		otf.CMap = t.Self().AsCMap()
	}
	if t := otf.tables[T("head")]; t != nil {
		otf.Head = t.Self().AsHead()
	}
	if t := otf.tables[T("hhea")]; t != nil {
		otf.HHea = t.Self().AsHHea()
	}
	if t := otf.tables[T("hmtx")]; t != nil {
		otf.HMtx = t.Self().AsHMtx()
	}
	if t := otf.tables[T("maxp")]; t != nil {
		otf.MaxP = t.Self().AsMaxP()
	}
	if t := otf.tables[T("loca")]; t != nil {
		otf.Loca = t.Self().AsLoca()
	}
	if t := otf.tables[T("glyf")]; t != nil {
		otf.Glyf = t.Self().AsGlyf()
	}
	return validateCrossTableConsistency(otf, ec)
}

// validateCrossTableConsistency performs cross-table validation and links
// tables which need information from other tables to be interpreted.
func validateCrossTableConsistency(otf *Font, ec *errorCollector) error {
	numGlyphs := otf.NumGlyphs()
	if otf.CMap != nil {
		otf.CMap.NumGlyphs = numGlyphs
	}
	if otf.HHea != nil && otf.HMtx != nil {
		if otf.HHea.NumberOfHMetrics > numGlyphs {
			return ec.fail(T("hhea"), "NumberOfHMetrics",
				fmt.Sprintf("value %d exceeds maxp.NumGlyphs %d", otf.HHea.NumberOfHMetrics, numGlyphs), 0)
		}
		if otf.HHea.NumberOfHMetrics == 0 && numGlyphs > 0 {
			return ec.fail(T("hhea"), "NumberOfHMetrics", "no horizontal metrics", 0)
		}
		// hmtx contains NumberOfHMetrics longHorMetrics (4 bytes each) +
		// (numGlyphs - NumberOfHMetrics) leftSideBearings (2 bytes each)
		if err := otf.HMtx.parseAll(numGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
			return ec.fail(T("hmtx"), "Size", err.Error(), otf.HMtx.offset)
		}
	}
	if otf.Head == nil || otf.Loca == nil {
		if otf.Glyf != nil {
			ec.addWarning(T("glyf"), "glyf table without loca table", 0)
		}
		return nil
	}
	var entrySize int
	switch otf.Head.IndexToLocFormat {
	case 0:
		entrySize = 2
	case 1:
		entrySize = 4
		otf.Loca.inx2loc = longLocaVersion
	default:
		return ec.fail(T("head"), "IndexToLocFormat",
			fmt.Sprintf("invalid value: %d (must be 0 or 1)", otf.Head.IndexToLocFormat), 0)
	}
	expectedLocaSize, err := checkedMulInt(numGlyphs+1, entrySize)
	if err != nil {
		return ec.fail(T("loca"), "Size", fmt.Sprintf("size calculation overflow: %v", err), 0)
	}
	if int(otf.Loca.length) < expectedLocaSize {
		return ec.fail(T("loca"), "Size",
			fmt.Sprintf("table size (%d) insufficient for %d glyphs (need %d)",
				otf.Loca.length, numGlyphs, expectedLocaSize), otf.Loca.offset)
	}
	otf.Loca.locCnt = numGlyphs + 1
	if otf.Glyf != nil {
		otf.Glyf.loca = otf.Loca
	}
	return nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("cmap"):
		return parseCMap(t, b, offset, size, ec)
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("glyf"):
		return parseGlyf(t, b, offset, size, ec)
	case T("hhea"):
		return parseHHea(t, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size, ec)
	case T("loca"):
		return parseLoca(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	}
	tracer().Debugf("font contains table (%s), will not be interpreted", t)
	ec.addWarning(t, "table not interpreted", offset)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("head table too small: %d bytes (need 54)", size), offset)
	}
	t := &HeadTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.self = t
	t.Flags = b.U16(16)
	t.UnitsPerEm = b.U16(18)
	t.XMin, _ = b.i16(36)
	t.YMin, _ = b.i16(38)
	t.XMax, _ = b.i16(40)
	t.YMax, _ = b.i16(42)
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat = b.U16(50)
	if t.UnitsPerEm == 0 {
		ec.addError(tag, "UnitsPerEm", "units per em is 0", SeverityMajor, offset+18)
	}
	return t, nil
}

// --- Loca and glyf tables --------------------------------------------------

func parseLoca(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := &LocaTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.inx2loc = shortLocaVersion // may get changed by font consistency check
	t.self = t
	return t, nil
}

// We do not parse the glyph outlines. Glyph headers are read on demand.
func parseGlyf(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := &GlyfTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.self = t
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts with CFF data
// must use Version 0.5 of this table, specifying only the numGlyphs field. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is required.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("maxp table too small: %d bytes (need 6)", size), offset)
	}
	t := &MaxPTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.self = t
	t.NumGlyphs = int(b.U16(4))
	return t, nil
}

// --- HHea table ------------------------------------------------------------

func parseHHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	tracer().Debugf("HHea table has size %d", size)
	if size < 36 {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("hhea table too small: %d bytes (need 36)", size), offset)
	}
	t := &HHeaTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.self = t
	t.Ascender, _ = b.i16(4)
	t.Descender, _ = b.i16(6)
	t.LineGap, _ = b.i16(8)
	t.AdvanceWidthMax = b.U16(10)
	t.NumberOfHMetrics = int(b.U16(34))
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// The value of the numOfLongHorMetrics field is found in the 'hhea' (Horizontal Header)
// table. Metrics are decoded during the cross-table consistency check, when the
// number of glyphs is known.
func parseHMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := &HMtxTable{tableBase: makeTableBase(tag, b, offset, size)}
	t.self = t
	return t, nil
}
