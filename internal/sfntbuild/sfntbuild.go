// Package sfntbuild assembles small synthetic font binaries for tests.
//
// Fonts built here carry just enough structure for table parsing: a directory,
// 'head', 'hhea', 'hmtx', 'maxp', 'cmap', and optionally 'loca' and 'glyf'
// with glyph headers (no outline points).
package sfntbuild

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"sort"
	"unicode/utf16"
)

// Glyph describes one glyph of a synthetic font.
type Glyph struct {
	Advance uint16
	LSB     int16
	Box     *[4]int16 // xMin, yMin, xMax, yMax; nil for glyphs without outline
}

// CMap is one cmap subtable with its encoding record.
type CMap struct {
	Platform, Encoding uint16
	Data               []byte // complete subtable, see Format0, Format4, …
}

// Builder collects the parameters of a synthetic font.
type Builder struct {
	UnitsPerEm       uint16
	Ascender         int16
	Descender        int16
	Glyphs           []Glyph
	NumberOfHMetrics int  // 0 means one long metric per glyph
	LongLoca         bool // loca in long format
	NoGlyf           bool // omit 'loca' and 'glyf'
	CMaps            []CMap
	Extra            map[string][]byte // additional tables
}

// Build returns the SFNT binary.
func (b *Builder) Build() []byte {
	tables := map[string][]byte{}
	numGlyphs := len(b.Glyphs)
	nhm := b.NumberOfHMetrics
	if nhm == 0 {
		nhm = numGlyphs
	}
	head := make([]byte, 54)
	be.PutUint32(head[0:], 0x00010000)
	be.PutUint32(head[12:], 0x5F0F3CF5) // magic
	be.PutUint16(head[18:], b.UnitsPerEm)
	if b.LongLoca {
		be.PutUint16(head[50:], 1)
	}
	tables["head"] = head

	hhea := make([]byte, 36)
	be.PutUint32(hhea[0:], 0x00010000)
	be.PutUint16(hhea[4:], uint16(b.Ascender))
	be.PutUint16(hhea[6:], uint16(b.Descender))
	be.PutUint16(hhea[34:], uint16(nhm))
	tables["hhea"] = hhea

	maxp := make([]byte, 6)
	be.PutUint32(maxp[0:], 0x00005000)
	be.PutUint16(maxp[4:], uint16(numGlyphs))
	tables["maxp"] = maxp

	var hmtx bytes.Buffer
	for i, g := range b.Glyphs {
		if i < nhm {
			write(&hmtx, g.Advance, g.LSB)
		} else {
			write(&hmtx, g.LSB)
		}
	}
	tables["hmtx"] = hmtx.Bytes()

	if !b.NoGlyf {
		var glyf, loca bytes.Buffer
		putLoc := func(off int) {
			if b.LongLoca {
				write(&loca, uint32(off))
			} else {
				write(&loca, uint16(off/2))
			}
		}
		for _, g := range b.Glyphs {
			putLoc(glyf.Len())
			if g.Box != nil {
				write(&glyf, int16(1), g.Box[0], g.Box[1], g.Box[2], g.Box[3])
				write(&glyf, uint16(0)) // padding to an even length
			}
		}
		putLoc(glyf.Len())
		tables["loca"] = loca.Bytes()
		tables["glyf"] = glyf.Bytes()
	}
	tables["cmap"] = CMapTable(b.CMaps...)
	for tag, data := range b.Extra {
		tables[tag] = data
	}
	return Assemble(0x00010000, tables)
}

// CMapTable assembles a cmap table from subtables.
func CMapTable(subtables ...CMap) []byte {
	var buf bytes.Buffer
	write(&buf, uint16(0), uint16(len(subtables)))
	off := 4 + 8*len(subtables)
	for _, st := range subtables {
		write(&buf, st.Platform, st.Encoding, uint32(off))
		off += len(st.Data)
	}
	for _, st := range subtables {
		buf.Write(st.Data)
	}
	return buf.Bytes()
}

// Format0 builds a byte encoding subtable.
func Format0(glyphs [256]uint8) []byte {
	var buf bytes.Buffer
	write(&buf, uint16(0), uint16(6+256), uint16(0))
	buf.Write(glyphs[:])
	return buf.Bytes()
}

// Segment is a format 4 segment. If GlyphIDs is non-nil, codes map through
// the glyph ID array (one entry per code), otherwise by Delta.
type Segment struct {
	Start, End uint16
	Delta      int16
	GlyphIDs   []uint16
}

// Format4 builds a segment mapping subtable. Segments are sorted by end code,
// and the 0xFFFF sentinel segment is appended.
func Format4(segments ...Segment) []byte {
	segs := append([]Segment{}, segments...)
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].End < segs[j].End })
	segs = append(segs, Segment{Start: 0xffff, End: 0xffff, Delta: 1})
	n := len(segs)
	var glyphArray []uint16
	rangeOffsets := make([]uint16, n)
	for i, s := range segs {
		if s.GlyphIDs == nil {
			continue
		}
		// offset from idRangeOffset[i] to glyphIdArray[len(glyphArray)]
		rangeOffsets[i] = uint16(2*(n-i) + 2*len(glyphArray))
		glyphArray = append(glyphArray, s.GlyphIDs...)
	}
	length := 16 + 8*n + 2*len(glyphArray)
	var buf bytes.Buffer
	write(&buf, uint16(4), uint16(length), uint16(0), uint16(2*n), uint16(0), uint16(0), uint16(0))
	for _, s := range segs {
		write(&buf, s.End)
	}
	write(&buf, uint16(0))
	for _, s := range segs {
		write(&buf, s.Start)
	}
	for _, s := range segs {
		write(&buf, s.Delta)
	}
	write(&buf, rangeOffsets)
	write(&buf, glyphArray)
	return buf.Bytes()
}

// Format6 builds a trimmed table mapping subtable.
func Format6(firstCode uint16, glyphs ...uint16) []byte {
	var buf bytes.Buffer
	write(&buf, uint16(6), uint16(10+2*len(glyphs)), uint16(0), firstCode, uint16(len(glyphs)))
	write(&buf, glyphs)
	return buf.Bytes()
}

// Group is a format 12 group.
type Group struct {
	Start, End, StartGlyph uint32
}

// Format12 builds a segmented coverage subtable.
func Format12(groups ...Group) []byte {
	var buf bytes.Buffer
	write(&buf, uint16(12), uint16(0), uint32(16+12*len(groups)), uint32(0), uint32(len(groups)))
	for _, g := range groups {
		write(&buf, g.Start, g.End, g.StartGlyph)
	}
	return buf.Bytes()
}

// Assemble builds an SFNT binary from tables, sorted by tag and 4-byte aligned.
func Assemble(flavor uint32, tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	n := len(tags)
	searchRange, entrySelector := 1, 0
	for searchRange*2 <= n {
		searchRange *= 2
		entrySelector++
	}
	var buf bytes.Buffer
	write(&buf, flavor, uint16(n), uint16(searchRange*16), uint16(entrySelector), uint16(n*16-searchRange*16))
	off := 12 + 16*n
	for _, tag := range tags {
		data := tables[tag]
		buf.WriteString((tag + "    ")[:4])
		write(&buf, Checksum(data), uint32(off), uint32(len(data)))
		off += pad4(len(data))
	}
	for _, tag := range tags {
		data := tables[tag]
		buf.Write(data)
		buf.Write(make([]byte, pad4(len(data))-len(data)))
	}
	return buf.Bytes()
}

// WOFF wraps an SFNT binary as WOFF 1.0. Tables are zlib-compressed if
// compress is set and compression shrinks them.
func WOFF(sfnt []byte, compress bool) []byte {
	n := int(be.Uint16(sfnt[4:]))
	type entry struct {
		tag                 []byte
		checksum            uint32
		data                []byte
		origLength, compLen int
	}
	entries := make([]entry, n)
	for i := range n {
		rec := sfnt[12+16*i:]
		off, length := be.Uint32(rec[8:]), be.Uint32(rec[12:])
		orig := sfnt[off : off+length]
		e := entry{tag: rec[:4], checksum: be.Uint32(rec[4:]), data: orig, origLength: len(orig), compLen: len(orig)}
		if compress {
			var z bytes.Buffer
			w := zlib.NewWriter(&z)
			w.Write(orig)
			w.Close()
			if z.Len() < len(orig) {
				e.data, e.compLen = z.Bytes(), z.Len()
			}
		}
		entries[i] = e
	}
	off := 44 + 20*n
	total := 12 + 16*n
	var dir, data bytes.Buffer
	for _, e := range entries {
		dir.Write(e.tag)
		write(&dir, uint32(off), uint32(e.compLen), uint32(e.origLength), e.checksum)
		data.Write(e.data)
		data.Write(make([]byte, pad4(len(e.data))-len(e.data)))
		off += pad4(len(e.data))
		total += pad4(e.origLength)
	}
	var buf bytes.Buffer
	buf.WriteString("wOFF")
	write(&buf, be.Uint32(sfnt), uint32(off), uint16(n), uint16(0), uint32(total),
		uint16(1), uint16(0), uint32(0), uint32(0), uint32(0), uint32(0), uint32(0))
	buf.Write(dir.Bytes())
	buf.Write(data.Bytes())
	return buf.Bytes()
}

// NameTable builds a 'name' table with Windows Unicode BMP records, in
// ascending order of name IDs.
func NameTable(names map[uint16]string) []byte {
	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	var records, storage bytes.Buffer
	for _, id := range ids {
		str := utf16.Encode([]rune(names[uint16(id)]))
		write(&records, uint16(3), uint16(1), uint16(0x0409), uint16(id),
			uint16(2*len(str)), uint16(storage.Len()))
		write(&storage, str)
	}
	var buf bytes.Buffer
	write(&buf, uint16(0), uint16(len(ids)), uint16(6+12*len(ids)))
	buf.Write(records.Bytes())
	buf.Write(storage.Bytes())
	return buf.Bytes()
}

// OS2Table builds a version 4 'OS/2' table carrying typographic vertical metrics.
func OS2Table(typoAscender, typoDescender, typoLineGap int16) []byte {
	os2 := make([]byte, 96)
	be.PutUint16(os2[0:], 4)
	be.PutUint16(os2[68:], uint16(typoAscender))
	be.PutUint16(os2[70:], uint16(typoDescender))
	be.PutUint16(os2[72:], uint16(typoLineGap))
	return os2
}

// Checksum computes an SFNT table checksum.
func Checksum(data []byte) uint32 {
	var sum uint32
	for i := 0; i < len(data); i += 4 {
		var word [4]byte
		copy(word[:], data[i:])
		sum += be.Uint32(word[:])
	}
	return sum
}

var be = binary.BigEndian

func pad4(n int) int {
	return (n + 3) &^ 3
}

func write(buf *bytes.Buffer, values ...any) {
	for _, v := range values {
		_ = binary.Write(buf, binary.BigEndian, v)
	}
}
