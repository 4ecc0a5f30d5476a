package ot

import (
	"fmt"
	"sort"
)

// Font represents the internal structure of an OpenType font.
// It is used to navigate properties of a font for querying names, coverage
// and glyph substitutions.
//
// A Font needs ongoing access to the font's byte-data after the Parse function
// returns. Its elements are assumed immutable while the Font remains in use.
// A Font is safe for concurrent use by multiple goroutines.
type Font struct {
	Header *FontHeader
	tables map[Tag]*Table
	cmap   *CMapTable // may be nil
	gsub   *GSubTable // may be nil
}

// FontHeader is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
// If the font file is an OpenType Font Collection file, the beginning
// point of the table directory for each font is indicated in the TTCHeader.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// Table is one of the top-level tables of a font.
type Table struct {
	tag    Tag
	offset uint32
	length uint32
	data   binarySegm
}

// Tag returns the 4-letter name of a table.
func (t *Table) Tag() Tag {
	return t.tag
}

// Extent returns offset and byte size of this table within the font's binary data.
func (t *Table) Extent() (uint32, uint32) {
	return t.offset, t.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data. A nil table has no bytes.
func (t *Table) Binary() []byte {
	if t == nil {
		return nil
	}
	return t.data
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Table tag names are case-sensitive, following the names in the OpenType
// specification, e.g. 'name', 'OS/2', 'GSUB'.
func (otf *Font) Table(tag Tag) *Table {
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font,
// in ascending order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// CMap returns the character-to-glyph mapping of the font. If the font does
// not contain a supported cmap sub-table, nil is returned.
func (otf *Font) CMap() *CMapTable {
	return otf.cmap
}

// GSub returns the glyph substitution table of the font, or nil.
func (otf *Font) GSub() *GSubTable {
	return otf.gsub
}

// --- Parsing ---------------------------------------------------------------

const (
	ttcTag      = 0x74746366 // ttcf
	offsetTable = 12         // size of the font header
	tableRecord = 16         // size of a table record
)

// Parse parses an OpenType font from a byte slice. If the byte slice contains a
// font collection, the first font of the collection is parsed.
func Parse(font []byte) (*Font, error) {
	return ParseCollection(font, 0)
}

// ParseCollection parses font number index from a font collection.
// Single-font data is treated as a collection of size 1.
func ParseCollection(font []byte, index int) (*Font, error) {
	src := binarySegm(font)
	offsets, err := directoryOffsets(src)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(offsets) {
		return nil, errFontFormat(fmt.Sprintf("no font #%d in collection of size %d", index, len(offsets)))
	}
	return parseDirectory(src, int(offsets[index]))
}

// CollectionSize returns the number of fonts contained in font. For single
// fonts this will be 1; for invalid data it will be 0.
func CollectionSize(font []byte) int {
	offsets, err := directoryOffsets(binarySegm(font))
	if err != nil {
		return 0
	}
	return len(offsets)
}

// directoryOffsets returns the offsets of the table directories of all fonts
// contained in src.
//
// From the OpenType specification: The TTC Header has a tag 'ttcf', a major and minor version,
// the number of fonts and an array of offsets to the OffsetTable for each font
// from the beginning of the file.
func directoryOffsets(src binarySegm) ([]uint32, error) {
	tag, err := src.u32(0)
	if err != nil {
		return nil, errFontFormat("font header")
	}
	if tag != ttcTag {
		return []uint32{0}, nil
	}
	n, err := src.u32(8)
	if err != nil || n == 0 || int(n) > len(src)/4 {
		return nil, errFontFormat("collection header")
	}
	offsets := make([]uint32, n)
	for i := range offsets {
		if offsets[i], err = src.u32(12 + 4*i); err != nil {
			return nil, errFontFormat("collection header")
		}
	}
	return offsets, nil
}

func parseDirectory(src binarySegm, at int) (*Font, error) {
	hdr, err := src.view(at, offsetTable)
	if err != nil {
		return nil, errFontFormat("font header")
	}
	h := FontHeader{FontType: u32(hdr), TableCount: u16(hdr[4:])}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	if !(h.FontType == 0x4f54544f || // OTTO
		h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	otf := &Font{Header: &h, tables: make(map[Tag]*Table)}
	// "The Offset Table is followed immediately by the Table Record entries",
	// 16 bytes each. Offsets are from the beginning of the file, even for
	// fonts within a collection.
	buf, err := src.view(at+offsetTable, tableRecord*int(h.TableCount))
	if err != nil {
		return nil, errFontFormat("table record entries")
	}
	for b := buf; len(b) > 0; b = b[tableRecord:] {
		tag := MakeTag(b[:4])
		off, size := u32(b[8:12]), u32(b[12:16])
		data, err := src.view(int(off), int(size))
		if err != nil {
			// broken fonts are common; we keep what we can read
			tracer().Infof("font table %s exceeds font data, skipping", tag)
			continue
		}
		otf.tables[tag] = &Table{tag: tag, offset: off, length: size, data: data}
	}
	if t := otf.Table(T("cmap")); t != nil {
		if otf.cmap, err = parseCMap(t.data); err != nil {
			tracer().Infof("cannot use cmap table: %v", err)
		}
	}
	if t := otf.Table(T("GSUB")); t != nil {
		if otf.gsub, err = parseGSub(t.data); err != nil {
			tracer().Infof("cannot use GSUB table: %v", err)
		}
	}
	return otf, nil
}
