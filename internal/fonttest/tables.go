package fonttest

import (
	"sort"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

// --- name ------------------------------------------------------------------

// Name is a record of a 'name' table.
type Name struct {
	PlatformID, EncodingID, LanguageID, NameID uint16
	Value                                      string
}

// WinName creates a Windows/Unicode BMP name record for a Windows LCID.
func WinName(lcid, nameID uint16, value string) Name {
	return Name{PlatformID: 3, EncodingID: 1, LanguageID: lcid, NameID: nameID, Value: value}
}

// MacName creates a Macintosh Roman name record for a Macintosh language code.
func MacName(lang, nameID uint16, value string) Name {
	return Name{PlatformID: 1, EncodingID: 0, LanguageID: lang, NameID: nameID, Value: value}
}

// NameTable encodes a 'name' table. If langTags are given, a format 1 table is
// produced; records refer to tag number k with language ID 0x8000+k.
func NameTable(names []Name, langTags ...string) []byte {
	var storage []byte
	format := uint16(0)
	if len(langTags) > 0 {
		format = 1
	}
	hdrSize := 6 + 12*len(names)
	if format == 1 {
		hdrSize += 2 + 4*len(langTags)
	}
	out := be16(nil, format)
	out = be16(out, uint16(len(names)))
	out = be16(out, uint16(hdrSize))
	for _, n := range names {
		s := encodeName(n)
		out = be16(out, n.PlatformID)
		out = be16(out, n.EncodingID)
		out = be16(out, n.LanguageID)
		out = be16(out, n.NameID)
		out = be16(out, uint16(len(s)))
		out = be16(out, uint16(len(storage)))
		storage = append(storage, s...)
	}
	if format == 1 {
		out = be16(out, uint16(len(langTags)))
		for _, t := range langTags {
			s := utf16be(t)
			out = be16(out, uint16(len(s)))
			out = be16(out, uint16(len(storage)))
			storage = append(storage, s...)
		}
	}
	return append(out, storage...)
}

func encodeName(n Name) []byte {
	if n.PlatformID == 1 {
		var enc encoding.Encoding
		switch n.EncodingID {
		case 0:
			enc = charmap.Macintosh
		case 1:
			enc = japanese.ShiftJIS
		}
		if enc != nil {
			if s, err := enc.NewEncoder().String(n.Value); err == nil {
				return []byte(s)
			}
		}
	}
	return utf16be(n.Value)
}

// --- cmap ------------------------------------------------------------------

type mapping struct {
	r rune
	g uint16
}

func sortedMappings(m map[rune]uint16) []mapping {
	mm := make([]mapping, 0, len(m))
	for r, g := range m {
		mm = append(mm, mapping{r, g})
	}
	sort.Slice(mm, func(i, j int) bool { return mm[i].r < mm[j].r })
	return mm
}

// CMap12 encodes a 'cmap' table with a single format 12 sub-table
// (platform 3, encoding 10). Each code-point gets its own group.
func CMap12(m map[rune]uint16) []byte {
	mm := sortedMappings(m)
	out := be16(nil, 0)
	out = be16(out, 1)
	out = be16(out, 3)
	out = be16(out, 10)
	out = be32(out, 12)
	out = be16(out, 12)
	out = be16(out, 0)
	out = be32(out, uint32(16+12*len(mm)))
	out = be32(out, 0)
	out = be32(out, uint32(len(mm)))
	for _, x := range mm {
		out = be32(out, uint32(x.r))
		out = be32(out, uint32(x.r))
		out = be32(out, uint32(x.g))
	}
	return out
}

// CMap4 encodes a 'cmap' table with a single format 4 sub-table
// (platform 3, encoding 1). Code-points outside the BMP are ignored.
// With glyphArray set, glyphs are looked up through the glyph ID array,
// otherwise through segment deltas.
func CMap4(m map[rune]uint16, glyphArray bool) []byte {
	var mm []mapping
	for _, x := range sortedMappings(m) {
		if x.r < 0xffff {
			mm = append(mm, x)
		}
	}
	segCnt := len(mm) + 1
	var ends, starts, deltas, ranges, glyphs []byte
	for _, x := range mm {
		ends = be16(ends, uint16(x.r))
		starts = be16(starts, uint16(x.r))
		if glyphArray {
			deltas = be16(deltas, 0)
			ranges = be16(ranges, uint16(2*segCnt))
			glyphs = be16(glyphs, x.g)
		} else {
			deltas = be16(deltas, x.g-uint16(x.r))
			ranges = be16(ranges, 0)
		}
	}
	ends = be16(ends, 0xffff)
	starts = be16(starts, 0xffff)
	deltas = be16(deltas, 1)
	ranges = be16(ranges, 0)
	sub := be16(nil, 4)
	length := 16 + 8*segCnt + len(glyphs)
	sub = be16(sub, uint16(length))
	sub = be16(sub, 0)
	sub = be16(sub, uint16(2*segCnt))
	sub = append(sub, 0, 0, 0, 0, 0, 0) // search parameters are not evaluated
	sub = append(sub, ends...)
	sub = be16(sub, 0)
	sub = append(sub, starts...)
	sub = append(sub, deltas...)
	sub = append(sub, ranges...)
	sub = append(sub, glyphs...)
	out := be16(nil, 0)
	out = be16(out, 1)
	out = be16(out, 3)
	out = be16(out, 1)
	out = be32(out, 12)
	return append(out, sub...)
}
