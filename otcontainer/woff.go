package otcontainer

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WOFF 1.0 is specified at https://www.w3.org/TR/WOFF/.
// A WOFF file consists of a 44-byte header, a table directory with 20-byte entries,
// and the (possibly compressed) font tables. Extended metadata and private data
// blocks are not needed to reconstruct the SFNT and are ignored.

const (
	woffHeaderSize   = 44
	woffEntrySize    = 20
	sfntHeaderSize   = 12
	sfntRecordSize   = 16
	maxWOFFTables    = 1024
	maxSFNTByteCount = math.MaxInt32
)

type woffHeader struct {
	Signature      uint32
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	Reserved       uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
}

type woffTableEntry struct {
	Tag          uint32
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

func errWOFF(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidWOFF, fmt.Sprintf(format, args...))
}

// DecompressWOFF converts a WOFF 1.0 binary into the SFNT binary it wraps.
//
// Tables are inflated if their compressed length is smaller than their original length,
// otherwise they are copied verbatim. The SFNT is rebuilt with table records in directory
// order, carrying the original checksums, and with table data padded to 4-byte boundaries.
func DecompressWOFF(b []byte) ([]byte, error) {
	if len(b) < woffHeaderSize {
		return nil, errWOFF("header truncated (%d bytes)", len(b))
	}
	var h woffHeader
	if err := binary.Read(bytes.NewReader(b[:woffHeaderSize]), binary.BigEndian, &h); err != nil {
		return nil, errWOFF("cannot read header: %v", err)
	}
	if Tag(b) != "wOFF" {
		return nil, errWOFF("signature %q", Tag(b))
	}
	if int64(h.Length) > int64(len(b)) {
		return nil, errWOFF("header states length %d, data has %d bytes", h.Length, len(b))
	}
	n := int(h.NumTables)
	if n == 0 || n > maxWOFFTables {
		return nil, errWOFF("table count %d", n)
	}
	dirEnd := woffHeaderSize + n*woffEntrySize
	if dirEnd > len(b) {
		return nil, errWOFF("table directory truncated")
	}
	entries := make([]woffTableEntry, n)
	if err := binary.Read(bytes.NewReader(b[woffHeaderSize:dirEnd]), binary.BigEndian, entries); err != nil {
		return nil, errWOFF("cannot read table directory: %v", err)
	}
	sfntSize := int64(sfntHeaderSize + n*sfntRecordSize)
	for i, e := range entries {
		if e.OrigLength > maxSFNTByteCount {
			return nil, errWOFF("table %d: original length %d too large", i, e.OrigLength)
		}
		if e.CompLength > e.OrigLength {
			return nil, errWOFF("table %d: compressed length %d exceeds original length %d",
				i, e.CompLength, e.OrigLength)
		}
		if int64(e.Offset) < int64(dirEnd) || int64(e.Offset)+int64(e.CompLength) > int64(len(b)) {
			return nil, errWOFF("table %d: data [%d:+%d] out of bounds", i, e.Offset, e.CompLength)
		}
		sfntSize += int64(pad4(e.OrigLength))
	}
	if sfntSize > maxSFNTByteCount {
		return nil, errWOFF("decompressed size %d too large", sfntSize)
	}
	if h.TotalSfntSize != 0 && int64(h.TotalSfntSize) != sfntSize {
		tracer().Infof("WOFF header states SFNT size %d, rebuilt size is %d", h.TotalSfntSize, sfntSize)
	}
	sfnt := make([]byte, sfntSize)
	writeSFNTHeader(sfnt, h.Flavor, uint16(n))
	offset := uint32(sfntHeaderSize + n*sfntRecordSize)
	for i, e := range entries {
		rec := sfnt[sfntHeaderSize+i*sfntRecordSize:]
		binary.BigEndian.PutUint32(rec[0:], e.Tag)
		binary.BigEndian.PutUint32(rec[4:], e.OrigChecksum)
		binary.BigEndian.PutUint32(rec[8:], offset)
		binary.BigEndian.PutUint32(rec[12:], e.OrigLength)
		dst := sfnt[offset : offset+e.OrigLength]
		src := b[e.Offset : e.Offset+e.CompLength]
		if e.CompLength < e.OrigLength {
			if err := inflate(dst, src); err != nil {
				return nil, errWOFF("table %d: %v", i, err)
			}
		} else {
			copy(dst, src)
		}
		offset += pad4(e.OrigLength)
	}
	tracer().Debugf("decompressed WOFF with %d tables to %d bytes", n, len(sfnt))
	return sfnt, nil
}

// inflate decompresses zlib data src into dst, which must be filled exactly.
func inflate(dst, src []byte) error {
	z, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return err
	}
	defer z.Close()
	if _, err = io.ReadFull(z, dst); err != nil {
		return fmt.Errorf("inflated data shorter than original length: %v", err)
	}
	var extra [1]byte
	if k, _ := z.Read(extra[:]); k > 0 {
		return fmt.Errorf("inflated data longer than original length")
	}
	return nil
}

// writeSFNTHeader writes the offset table, including the binary search hints.
func writeSFNTHeader(sfnt []byte, flavor uint32, numTables uint16) {
	var searchRange, entrySelector uint16 = 1, 0
	for searchRange*2 <= numTables {
		searchRange *= 2
		entrySelector++
	}
	searchRange *= 16
	binary.BigEndian.PutUint32(sfnt[0:], flavor)
	binary.BigEndian.PutUint16(sfnt[4:], numTables)
	binary.BigEndian.PutUint16(sfnt[6:], searchRange)
	binary.BigEndian.PutUint16(sfnt[8:], entrySelector)
	binary.BigEndian.PutUint16(sfnt[10:], numTables*16-searchRange)
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}
