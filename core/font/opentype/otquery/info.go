package otquery

import (
	"slices"
	"strings"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// FontType returns the font type, encoded in the font header, as a string.
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return "<empty>"
	}
	switch otf.Header.FontType {
	case 0x4f54544f: // OTTO
		return "OpenType (outlines)"
	case 0x00010000: // TrueType
		return "TrueType"
	case 0x74727565: // true
		return "TrueType (Mac legacy)"
	}
	return "<unknown>"
}

// FamilyName returns the canonical family name of a font, preferring the
// typographic family name over the legacy one.
func FamilyName(otf *ot.Font) string {
	return canonicalName(otf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
}

// SubfamilyName returns the canonical style name of a font.
func SubfamilyName(otf *ot.Font) string {
	return canonicalName(otf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
}

// FullName returns the canonical full name of a font.
func FullName(otf *ot.Font) string {
	return canonicalName(otf, sfnt.NameIDFull)
}

// PostScriptName returns the PostScript name of a font.
func PostScriptName(otf *ot.Font) string {
	return canonicalName(otf, sfnt.NameIDPostScript)
}

// canonicalName selects a name among the ids in priority order.
// English names are preferred, then language-neutral ones, then names in the
// alphabetically first language, to be independent of the order of records.
func canonicalName(otf *ot.Font, ids ...sfnt.NameID) string {
	for _, id := range ids {
		var neutral string
		for key, value := range NamesRange(otf) {
			if key.Name == id && key.Tag == language.Und && neutral == "" {
				neutral = value
			}
		}
		names := LocalizedNames(otf, id)
		if name, ok := names[language.AmericanEnglish]; ok {
			return name
		}
		if name, ok := names[language.English]; ok {
			return name
		}
		tags := make([]language.Tag, 0, len(names))
		for tag := range names {
			tags = append(tags, tag)
		}
		slices.SortFunc(tags, func(a, b language.Tag) int {
			return strings.Compare(a.String(), b.String())
		})
		for _, tag := range tags {
			if base, _ := tag.Base(); base.String() == "en" {
				return names[tag]
			}
		}
		if neutral != "" {
			return neutral
		}
		if len(tags) > 0 {
			return names[tags[0]]
		}
	}
	return ""
}

// LayoutTables returns a list of tag strings, one for each layout-table a font includes.
//
// From the OpenType specification:
// OpenType Layout makes use of five tables: GSUB, GPOS, BASE, JSTF, and GDEF.
func LayoutTables(otf *ot.Font) []string {
	var lt []string
	for _, tag := range otf.TableTags() {
		switch tag.String() {
		case "GSUB", "GPOS", "BASE", "JSTF", "GDEF":
			lt = append(lt, tag.String())
		}
	}
	return lt
}

// FontSupportsScript returns true if the GSUB table of a font carries a
// script record for scr.
func FontSupportsScript(otf *ot.Font, scr ot.Tag) bool {
	gsub := otf.GSub()
	if gsub == nil {
		return false
	}
	if !slices.Contains(gsub.ScriptTags(), scr) {
		tracer().Debugf("cannot find script %s in font", scr.String())
		return false
	}
	return true
}
