package ot

/*
Parts of the cmap handling follow the code of the Go core team, available from
https://github.com/golang/image/tree/master/font/sfnt.

   Copyright 2017 The Go Authors. All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
//
// A cmap table may contain more than one lookup table, but we will only
// instantiate the most appropriate one.
type CMapTable struct {
	GlyphIndexMap CMapGlyphIndex
}

// Lookup returns the glyph for a code-point, or 0 if the font has no glyph for r.
func (cmap *CMapTable) Lookup(r rune) GlyphIndex {
	if cmap == nil || cmap.GlyphIndexMap == nil {
		return 0
	}
	return cmap.GlyphIndexMap.Lookup(r)
}

// CMapGlyphIndex represents a CMap table index to receive a glyph index from
// a code-point.
type CMapGlyphIndex interface {
	Lookup(rune) GlyphIndex // central activiy of CMap
}

type encodingRecord struct {
	width   int
	format  uint16
	subtble binarySegm
}

// platformEncodingWidth returns the number of bytes per character assumed by
// the given Platform ID and Platform Specific ID.
//
// Old fonts, from when Unicode meant the Basic Multilingual Plane (BMP),
// assume that 2 bytes per character is sufficient.
//
// Recent fonts naturally support the full range of Unicode code points, which
// can take up to 4 bytes per character.
func platformEncodingWidth(pid, psid uint16) int {
	switch pid {
	case 0: // Unicode platform
		switch psid {
		case 3: // Unicode BMB
			return 2
		case 4, 10: // Unicode full  (include 10 from FontForge bug)
			return 4
		}
	case 3: // Windows platform
		switch psid {
		case 1: // Unicode BMP
			return 2
		case 10: // Unicode full
			return 4
		}
	}
	return 0 // width 0 will never get selected
}

// We only support the following plaform/encoding/format combinations:
//
//	0 (Unicode)  3    4   Unicode BMB
//	0 (Unicode)  4    12  Unicode full  (10 from FontForge, error)
//	3 (Win)      1    4   Unicode BMP
//	3 (Win)      10   12  Unicode full
func supportedCmapFormat(format uint16, width int) bool {
	return (width == 2 && format == 4) || (width == 4 && format == 12)
}

func parseCMap(b binarySegm) (*CMapTable, error) {
	const headerSize, entrySize = 4, 8
	n, err := b.u16(2)
	if err != nil {
		return nil, errFontFormat("cmap header")
	}
	var best encodingRecord
	for i := 0; i < int(n); i++ {
		rec, err := b.view(headerSize+i*entrySize, entrySize)
		if err != nil {
			return nil, errFontFormat("cmap encoding records")
		}
		pid, psid, offset := u16(rec), u16(rec[2:]), u32(rec[4:])
		width := platformEncodingWidth(pid, psid)
		if width <= best.width {
			continue
		}
		sub, err := b.from(int(offset))
		if err != nil {
			continue
		}
		format, err := sub.u16(0)
		if err != nil || !supportedCmapFormat(format, width) {
			continue
		}
		best = encodingRecord{width: width, format: format, subtble: sub}
	}
	if best.width == 0 {
		return nil, errFontFormat("no supported cmap sub-table")
	}
	tracer().Debugf("using cmap sub-table of format %d", best.format)
	var index CMapGlyphIndex
	switch best.format {
	case 4:
		index, err = makeGlyphIndexFormat4(best.subtble)
	case 12:
		index, err = makeGlyphIndexFormat12(best.subtble)
	}
	if err != nil {
		return nil, err
	}
	return &CMapTable{GlyphIndexMap: index}, nil
}

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
type format4GlyphIndex struct {
	segCnt       int
	ends, starts binarySegm
	deltas       binarySegm
	rangeOffsets binarySegm // idRangeOffsets are relative to their own position
}

func (f4 format4GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xffff {
		return 0
	}
	c := uint16(r)
	// binary search for the first segment with endCode >= c
	i, j := 0, f4.segCnt
	for i < j {
		h := i + (j-i)/2
		if end, _ := f4.ends.u16(2 * h); end < c {
			i = h + 1
		} else {
			j = h
		}
	}
	if i >= f4.segCnt {
		return 0
	}
	start, _ := f4.starts.u16(2 * i)
	if c < start {
		return 0
	}
	delta, _ := f4.deltas.u16(2 * i)
	rangeOffset, _ := f4.rangeOffsets.u16(2 * i)
	if rangeOffset == 0 {
		return GlyphIndex(c + delta) // modulo 65536
	}
	// From the OpenType specification: the glyph index is found at
	// *(idRangeOffset[i]/2 + (c - startCode[i]) + &idRangeOffset[i])
	pos := 2*i + int(rangeOffset) + 2*int(c-start)
	g, err := f4.rangeOffsets.u16(pos)
	if err != nil || g == 0 {
		return 0
	}
	return GlyphIndex(g + delta)
}

// The format's data is divided into three parts, which must occur in the following order:
//
// - A four-word header gives parameters for an optimized search of the segment list;
// - Four parallel arrays describe the segments (one segment for each contiguous range of codes);
// - A variable-length array of glyph IDs (unsigned words).
func makeGlyphIndexFormat4(b binarySegm) (CMapGlyphIndex, error) {
	const headerSize = 14
	segCountX2, err := b.u16(6)
	if err != nil || segCountX2&1 != 0 {
		return nil, errFontFormat("cmap table format 4, illegal segment count")
	}
	n := int(segCountX2)
	f4 := format4GlyphIndex{segCnt: n / 2}
	// 2 is a padding entry between endCodes and startCodes
	if f4.ends, err = b.view(headerSize, n); err != nil {
		return nil, errFontFormat("cmap format 4 internal structure")
	}
	if f4.starts, err = b.view(headerSize+n+2, n); err != nil {
		return nil, errFontFormat("cmap format 4 internal structure")
	}
	if f4.deltas, err = b.view(headerSize+2*n+2, n); err != nil {
		return nil, errFontFormat("cmap format 4 internal structure")
	}
	// range offsets and glyph ID array are addressed as one
	if f4.rangeOffsets, err = b.from(headerSize + 3*n + 2); err != nil || f4.rangeOffsets.Size() < n {
		return nil, errFontFormat("cmap format 4 internal structure")
	}
	return f4, nil
}

type cmapEntry32 struct {
	start, end, delta uint32
}

// Each sequential map group record specifies a character range and the starting glyph ID
// mapped from the first character. Glyph IDs for subsequent characters follow in sequence.
type format12GlyphIndex struct {
	entries []cmapEntry32
}

func (f12 format12GlyphIndex) Lookup(r rune) GlyphIndex {
	c := uint32(r)
	for i, j := 0, len(f12.entries); i < j; {
		h := i + (j-i)/2 // do a binary search on f12.entries (which may get large)
		entry := &f12.entries[h]
		if c < entry.start {
			j = h
		} else if entry.end < c {
			i = h + 1
		} else {
			return GlyphIndex(c - entry.start + entry.delta)
		}
	}
	return 0
}

// This is the standard character-to-glyph-index mapping subtable for fonts supporting
// Unicode character repertoires that include supplementary-plane characters (U+10000 to
// U+10FFFF).
func makeGlyphIndexFormat12(b binarySegm) (CMapGlyphIndex, error) {
	const headerSize, groupSize = 16, 12
	grpCount, err := b.u32(12)
	if err != nil {
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	if int(grpCount) > (b.Size()-headerSize)/groupSize {
		return nil, errFontFormat("cmap format 12 internal structure")
	}
	// SequentialMapGroup Record:
	// Type     Name            Description
	// uint32   startCharCode   First character code in this group
	// uint32   endCharCode     Last character code in this group
	// uint32   startGlyphID    Glyph index corresponding to the starting character code
	entries := make([]cmapEntry32, grpCount)
	for i := range entries {
		g := b[headerSize+i*groupSize:]
		entries[i] = cmapEntry32{
			start: u32(g),
			end:   u32(g[4:]),
			delta: u32(g[8:]),
		}
	}
	return format12GlyphIndex{entries: entries}, nil
}
