package fonttest

import (
	"strings"
)

// Glyph indices of sample fonts created by Sample.Builder.
const (
	GlyphIdeographicComma    uint16 = 400 // U+3001 、
	GlyphIdeographicStop     uint16 = 401 // U+3002 。
	GlyphLeftCornerBracket   uint16 = 402 // U+300C 「
	GlyphRightCornerBracket  uint16 = 403 // U+300D 」
	GlyphProlongedSound      uint16 = 404 // U+30FC ー
	GlyphFullwidthLeftParen  uint16 = 405 // U+FF08 （
	GlyphFullwidthRightParen uint16 = 406 // U+FF09 ）
	GlyphFullwidthLess       uint16 = 407 // U+FF1C ＜
	GlyphFullwidthGreater    uint16 = 408 // U+FF1E ＞
	GlyphFullwidthHyphen     uint16 = 409 // U+FF0D －
	GlyphPresentationCircL   uint16 = 410 // U+FE3F ︿
	GlyphPresentationCircR   uint16 = 411 // U+FE40 ﹀
	GlyphFullwidthBar        uint16 = 412 // U+FF5C ｜
)

// Offsets of vertical glyphs relative to their horizontal counterparts, per
// vertical feature of a sample font.
const (
	VertOffset = 100 // 'vert': 400… → 500…
	Vrt2Offset = 200 // 'vrt2': 400… → 600…
	VknaOffset = 300 // 'vkna': 400… → 700…
)

// Kanji covered by sample fonts with Kana set.
const Kanji = "一人大日月中国本語明朝体漢字東京年"

// Hangul covered by sample fonts with Hangul set.
const Hangul = "가나다라마바사아자차카타파하한국어글"

var punctuation = map[rune]uint16{
	'、': GlyphIdeographicComma,
	'。': GlyphIdeographicStop,
	'「': GlyphLeftCornerBracket,
	'」': GlyphRightCornerBracket,
	'ー': GlyphProlongedSound,
	'（': GlyphFullwidthLeftParen,
	'）': GlyphFullwidthRightParen,
	'＜': GlyphFullwidthLess,
	'＞': GlyphFullwidthGreater,
	'－': GlyphFullwidthHyphen,
	'︿': GlyphPresentationCircL,
	'﹀': GlyphPresentationCircR,
	'｜': GlyphFullwidthBar,
}

// Sample describes a synthetic font.
type Sample struct {
	Family    string            // English family name, Windows and Macintosh records
	Subfamily string            // defaults to "Regular"
	Localized map[uint16]string // family names per Windows LCID
	Vertical  []string          // vertical features to include: "vert", "vrt2", "vkna"
	Script    string            // GSUB script tag, defaults to "kana"
	Kana      bool              // cmap covers Hiragana, Katakana, Kanji and CJK punctuation
	Hangul    bool              // cmap covers some Hangul syllables
}

// CMap returns the code-point to glyph mapping of a sample font.
// ASCII is always covered.
func (s Sample) CMap() map[rune]uint16 {
	m := make(map[rune]uint16)
	for r := rune(0x20); r < 0x7f; r++ {
		m[r] = uint16(r - 0x1f)
	}
	if s.Kana {
		for r := rune(0x3041); r <= 0x3096; r++ {
			m[r] = uint16(100 + r - 0x3041)
		}
		for r := rune(0x30a1); r <= 0x30fa; r++ {
			m[r] = uint16(200 + r - 0x30a1)
		}
		for i, r := range []rune(Kanji) {
			m[r] = uint16(300 + i)
		}
		for r, g := range punctuation {
			m[r] = g
		}
	}
	if s.Hangul {
		for i, r := range []rune(Hangul) {
			m[r] = uint16(800 + i)
		}
	}
	return m
}

func (s Sample) subfamily() string {
	if s.Subfamily == "" {
		return "Regular"
	}
	return s.Subfamily
}

// PostScriptName returns the PostScript name of a sample font.
func (s Sample) PostScriptName() string {
	return strings.ReplaceAll(s.Family, " ", "") + "-" + s.subfamily()
}

// Names returns the 'name' records of a sample font: family (1), subfamily (2),
// full name (4) and PostScript name (6); localized families come with
// localized full names.
func (s Sample) Names() []Name {
	sub := s.subfamily()
	names := []Name{
		MacName(0, 1, s.Family),
		MacName(0, 2, sub),
		WinName(0x0409, 1, s.Family),
		WinName(0x0409, 2, sub),
		WinName(0x0409, 4, s.Family+" "+sub),
		WinName(0x0409, 6, s.PostScriptName()),
	}
	for lcid, fam := range s.Localized {
		names = append(names, WinName(lcid, 1, fam), WinName(lcid, 4, fam+" "+sub))
	}
	return names
}

// GSub returns the GSUB table of a sample font, or nil if the font has no
// vertical features. Substitutions cover the CJK punctuation glyphs from
// U+3001 to U+FF09, but not the fullwidth less/greater/hyphen glyphs.
func (s Sample) GSub() []byte {
	if len(s.Vertical) == 0 {
		return nil
	}
	script := s.Script
	if script == "" {
		script = "kana"
	}
	var g GSub
	covered := []uint16{
		GlyphIdeographicComma, GlyphIdeographicStop, GlyphLeftCornerBracket,
		GlyphRightCornerBracket, GlyphProlongedSound, GlyphFullwidthLeftParen,
		GlyphFullwidthRightParen,
	}
	// A non-vertical feature to make sure it is skipped.
	g.Features = append(g.Features, Feature{Tag: "liga", Lookups: []int{0}})
	g.Lookups = append(g.Lookups, Lookup{Type: 1, Subtables: [][]byte{SingleSubst1(covered, 1)}})
	for _, v := range s.Vertical {
		var lookup Lookup
		switch v {
		case "vert":
			m := make(map[uint16]uint16, len(covered))
			for _, c := range covered {
				m[c] = c + VertOffset
			}
			lookup = Lookup{Type: 1, Subtables: [][]byte{SingleSubst2(m)}}
		case "vrt2":
			lookup = Lookup{Type: 1, Subtables: [][]byte{SingleSubst1(covered, Vrt2Offset)}}
		case "vkna":
			m := make(map[uint16][]uint16, len(covered))
			for _, c := range covered {
				m[c] = []uint16{c + VknaOffset, c + VknaOffset + 50}
			}
			lookup = Lookup{Type: 7, Subtables: [][]byte{Extension(3, AlternateSubst(m))}}
		default:
			continue
		}
		g.Lookups = append(g.Lookups, lookup)
		g.Features = append(g.Features, Feature{Tag: v, Lookups: []int{len(g.Lookups) - 1}})
	}
	features := make([]int, len(g.Features))
	for i := range features {
		features[i] = i
	}
	g.Scripts = []Script{{Tag: script, Features: features}}
	return g.Bytes()
}

// Builder returns a font builder for the sample.
func (s Sample) Builder() *Builder {
	b := NewFont().
		With("name", NameTable(s.Names())).
		With("cmap", CMap12(s.CMap()))
	if gsub := s.GSub(); gsub != nil {
		b.With("GSUB", gsub)
	}
	return b
}

// Bytes returns the binary of the sample font.
func (s Sample) Bytes() []byte {
	return s.Builder().Bytes()
}
