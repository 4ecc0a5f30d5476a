package otquery

import (
	"encoding/binary"
	"iter"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

const (
	nameHeaderSize = 6
	nameRecordSize = 12
	langTagRecSize = 4
)

// NameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly, plus the language
// of the record as a BCP 47 tag.
type NameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID  // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
	Tag      language.Tag // language.Und for language-neutral or unknown IDs
}

// PlatformID is an OpenType platform ID.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is a platform specific encoding ID.
type EncodingID uint16

// NamesRange yields decoded name records from a font's OpenType 'name' table,
// in the order of the table.
//
// Records of platforms Unicode and Windows, and of the Macintosh encodings
// Roman, Japanese, Chinese and Korean are decoded. Records with other encodings,
// and malformed or out-of-bounds records, are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[NameKey, string] {
	names := checkNameTableSafe(otf)
	return func(yield func(NameKey, string) bool) {
		if names == nil {
			return
		}
		count := int(u16(names[2:]))
		storage := int(u16(names[4:]))
		langTags := languageTagRecords(names, count, storage)
		for i := range count {
			rec := names[nameHeaderSize+i*nameRecordSize:]
			key := NameKey{
				Platform: PlatformID(u16(rec[0:])),
				Encoding: EncodingID(u16(rec[2:])),
				Language: u16(rec[4:]),
				Name:     sfnt.NameID(u16(rec[6:])),
			}
			start := storage + int(u16(rec[10:]))
			end := start + int(u16(rec[8:]))
			if end > len(names) || end == start {
				continue
			}
			value, ok := decodeName(key, names[start:end])
			if !ok || value == "" {
				continue
			}
			key.Tag = recordLanguage(key, langTags)
			if !yield(key, value) {
				return
			}
		}
	}
}

// checkNameTableSafe checks if the name table is safe to use, i.e. no out-of-bounds access
// for name records, and returns its binary data.
func checkNameTableSafe(otf *ot.Font) []byte {
	if otf == nil {
		return nil
	}
	table := otf.Table(ot.T("name"))
	if table == nil {
		tracer().Debugf("no name table found in font")
		return nil
	}
	b := table.Binary()
	if len(b) < nameHeaderSize {
		tracer().Debugf("name table too short: %d", len(b))
		return nil
	}
	count := int(u16(b[2:]))
	strOff := int(u16(b[4:]))
	if strOff > len(b) {
		tracer().Debugf("name table invalid string offset: %d", strOff)
		return nil
	}
	if nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table record section out of bounds: count=%d", count)
		return nil
	}
	return b
}

// languageTagRecords decodes the language-tag records of a format 1 name table.
// Name records refer to them with language IDs starting at 0x8000.
func languageTagRecords(b []byte, count, storage int) []language.Tag {
	if u16(b) != 1 {
		return nil
	}
	at := nameHeaderSize + count*nameRecordSize
	if at+2 > len(b) {
		return nil
	}
	n := int(u16(b[at:]))
	tags := make([]language.Tag, 0, n)
	for i := range n {
		rec := at + 2 + i*langTagRecSize
		if rec+langTagRecSize > len(b) {
			break
		}
		start := storage + int(u16(b[rec+2:]))
		end := start + int(u16(b[rec:]))
		tag := language.Und
		if end <= len(b) {
			if s, err := utf16BE.NewDecoder().Bytes(b[start:end]); err == nil {
				if t, err := language.Parse(string(s)); err == nil {
					tag = t
				}
			}
		}
		tags = append(tags, tag)
	}
	return tags
}

func recordLanguage(key NameKey, langTags []language.Tag) language.Tag {
	if key.Language >= 0x8000 {
		if i := int(key.Language - 0x8000); i < len(langTags) {
			return langTags[i]
		}
		return language.Und
	}
	switch key.Platform {
	case PlatformIDWindows:
		return windowsLanguage(key.Language)
	case PlatformIDMacintosh:
		return macintoshLanguage(key.Language)
	}
	return language.Und
}

var utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func decodeName(key NameKey, str []byte) (string, bool) {
	var enc encoding.Encoding
	wide := false // multi-byte characters stored in 16-bit units
	switch key.Platform {
	case PlatformIDUnicode:
		enc = utf16BE
	case PlatformIDWindows:
		switch key.Encoding {
		case 0, 1, 10: // Symbol, Unicode BMP, Unicode full
			enc = utf16BE
		case 2:
			enc, wide = japanese.ShiftJIS, true
		case 3:
			enc, wide = simplifiedchinese.GBK, true
		case 4:
			enc, wide = traditionalchinese.Big5, true
		case 5:
			enc, wide = korean.EUCKR, true
		}
	case PlatformIDMacintosh:
		switch key.Encoding {
		case 0:
			enc = charmap.Macintosh
		case 1:
			enc = japanese.ShiftJIS
		case 2:
			enc = traditionalchinese.Big5
		case 3:
			enc = korean.EUCKR
		case 25:
			enc = simplifiedchinese.GBK
		}
	}
	if enc == nil {
		return "", false
	}
	if wide {
		str = narrow(str)
	}
	s, err := enc.NewDecoder().Bytes(str)
	if err != nil {
		tracer().Debugf("cannot decode name record %v: %v", key, err)
		return "", false
	}
	return string(s), true
}

// narrow removes the zero high bytes of 16-bit units from a string of the
// Windows legacy CJK encodings.
func narrow(str []byte) []byte {
	b := make([]byte, 0, len(str))
	for i := 0; i+1 < len(str); i += 2 {
		if str[i] != 0 {
			b = append(b, str[i])
		}
		b = append(b, str[i+1])
	}
	return b
}

// LocalizedNames returns, per language, the name found for the first of ids
// in priority order. Records with language-neutral or unknown language IDs are
// not included. If more than one platform carries a name for the same
// language, Windows records are preferred over Unicode and Macintosh records.
func LocalizedNames(otf *ot.Font, ids ...sfnt.NameID) map[language.Tag]string {
	type candidate struct {
		prio  int
		value string
	}
	found := make(map[language.Tag]candidate)
	for key, value := range NamesRange(otf) {
		if key.Tag == language.Und {
			continue
		}
		p := priority(key, ids)
		if p < 0 {
			continue
		}
		if c, ok := found[key.Tag]; !ok || p < c.prio {
			found[key.Tag] = candidate{prio: p, value: value}
		}
	}
	names := make(map[language.Tag]string, len(found))
	for tag, c := range found {
		names[tag] = c.value
	}
	return names
}

func priority(key NameKey, ids []sfnt.NameID) int {
	for i, id := range ids {
		if key.Name != id {
			continue
		}
		p := 4 * i
		switch key.Platform {
		case PlatformIDUnicode:
			p++
		case PlatformIDMacintosh:
			p += 2
		}
		return p
	}
	return -1
}

func u16(b []byte) uint16 {
	return binary.BigEndian.Uint16(b)
}
