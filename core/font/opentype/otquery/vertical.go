package otquery

import (
	"slices"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
)

// VerticalFeatures are the GSUB features carrying vertical alternates, in
// order of preference. 'vrt2' supersedes 'vert'; 'vkna' holds vertical Kana
// alternates.
var VerticalFeatures = []ot.Tag{ot.T("vrt2"), ot.T("vert"), ot.T("vkna")}

var preferredScripts = []ot.Tag{ot.T("kana"), ot.T("hani"), ot.T("DFLT")}

// VerticalScripts returns the GSUB scripts of a font in the order in which they
// are searched for vertical features: 'kana', 'hani' and 'DFLT' first, then
// every other script of the font in the order of the script list.
func VerticalScripts(gsub *ot.GSubTable) []ot.Tag {
	if gsub == nil {
		return nil
	}
	tags := gsub.ScriptTags()
	var scripts []ot.Tag
	for _, s := range preferredScripts {
		if slices.Contains(tags, s) {
			scripts = append(scripts, s)
		}
	}
	for _, s := range tags {
		if !slices.Contains(scripts, s) {
			scripts = append(scripts, s)
		}
	}
	return scripts
}

// VerticalLookups returns the indices of GSUB lookups implementing vertical
// substitutions, in the order they have to be applied: by feature preference
// first, then by script order. Every lookup occurs at most once.
func VerticalLookups(otf *ot.Font) []int {
	gsub := otf.GSub()
	if gsub == nil {
		return nil
	}
	scripts := VerticalScripts(gsub)
	var lookups []int
	for _, feature := range VerticalFeatures {
		for _, script := range scripts {
			for _, l := range gsub.FeatureLookups(script, feature) {
				if !slices.Contains(lookups, l) {
					lookups = append(lookups, l)
				}
			}
		}
	}
	tracer().Debugf("vertical lookups of font: %v", lookups)
	return lookups
}

// HasVerticalFeature returns true if a font contains vertical substitution data.
func HasVerticalFeature(otf *ot.Font) bool {
	return len(VerticalLookups(otf)) > 0
}

// SubstituteWith applies the first of a list of lookups to gid which
// delivers a single-glyph substitution.
func SubstituteWith(gsub *ot.GSubTable, lookups []int, gid ot.GlyphIndex) (ot.GlyphIndex, bool) {
	if gsub == nil {
		return gid, false
	}
	for _, l := range lookups {
		if g, ok := gsub.SingleSubstitute(l, gid); ok {
			return g, true
		}
	}
	return gid, false
}

// VerticalSubstitution returns the glyph to use for gid in vertical text
// layout. If the font has no vertical substitution for gid, gid is returned
// together with false.
func VerticalSubstitution(otf *ot.Font, gid ot.GlyphIndex) (ot.GlyphIndex, bool) {
	return SubstituteWith(otf.GSub(), VerticalLookups(otf), gid)
}
