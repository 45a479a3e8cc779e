package otquery

import (
	"time"

	"github.com/npillmayer/otglyph/ot"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
// Values are decoded directly from the raw table bytes.
type HeadTableInfo struct {
	MajorVersion, MinorVersion uint16
	FontRevision               float64 // Fixed 16.16
	MagicNumber                uint32
	Flags                      uint16
	UnitsPerEm                 uint16
	Created, Modified          time.Time
	XMin, YMin, XMax, YMax     int16
	MacStyle                   uint16
	LowestRecPPEM              uint16
	IndexToLocFormat           int16
}

const headTableSize = 54

// LONGDATETIME values count seconds since 1904-01-01 00:00 UTC.
var epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// HeadInfo decodes table 'head' from raw bytes.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b, ok := tableBinary(otf, "head", headTableSize)
	if !ok {
		return info, false
	}
	info.MajorVersion = u16(b[0:])
	info.MinorVersion = u16(b[2:])
	info.FontRevision = float64(int32(u32(b[4:]))) / 65536
	info.MagicNumber = u32(b[12:])
	info.Flags = u16(b[16:])
	info.UnitsPerEm = u16(b[18:])
	info.Created = longDateTime(b[20:])
	info.Modified = longDateTime(b[28:])
	info.XMin = i16(b[36:])
	info.YMin = i16(b[38:])
	info.XMax = i16(b[40:])
	info.YMax = i16(b[42:])
	info.MacStyle = u16(b[44:])
	info.LowestRecPPEM = u16(b[46:])
	info.IndexToLocFormat = i16(b[50:])
	return info, true
}

func longDateTime(b []byte) time.Time {
	secs := int64(u32(b[0:]))<<32 | int64(u32(b[4:]))
	return epoch1904.Add(time.Duration(secs) * time.Second)
}

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// For version 1.0 tables, the TrueType profile fields are decoded if present.
type MaxPTableInfo struct {
	VersionFixed       uint32
	NumGlyphs          uint16
	HasExtendedProfile bool
	MaxPoints          uint16
	MaxContours        uint16
	MaxCompositePoints uint16
	MaxComponentDepth  uint16
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// MaxPInfo decodes table 'maxp' from raw bytes.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	b, ok := tableBinary(otf, "maxp", maxpMinSize)
	if !ok {
		return info, false
	}
	info.VersionFixed = u32(b[0:])
	info.NumGlyphs = u16(b[4:])
	if info.VersionFixed != 0x00010000 || len(b) < maxpV10Size {
		return info, true
	}
	info.HasExtendedProfile = true
	info.MaxPoints = u16(b[6:])
	info.MaxContours = u16(b[8:])
	info.MaxCompositePoints = u16(b[10:])
	info.MaxComponentDepth = u16(b[30:])
	return info, true
}

// LayoutTables returns the tags of the OpenType layout tables present in a font.
// These tables are not interpreted by package ot, but shapers may use them.
func LayoutTables(otf *ot.Font) []string {
	var tags []string
	if otf == nil {
		return tags
	}
	for _, tag := range []string{"BASE", "GDEF", "GPOS", "GSUB", "JSTF", "morx", "kern"} {
		if otf.Table(ot.T(tag)) != nil {
			tags = append(tags, tag)
		}
	}
	return tags
}

func tableBinary(otf *ot.Font, tag string, minSize int) ([]byte, bool) {
	if otf == nil {
		return nil, false
	}
	table := otf.Table(ot.T(tag))
	if table == nil {
		return nil, false
	}
	b := table.Binary()
	if len(b) < minSize {
		tracer().Debugf("table %s too short: %d", tag, len(b))
		return nil, false
	}
	return b, true
}
