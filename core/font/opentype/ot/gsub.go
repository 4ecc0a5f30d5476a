package ot

import (
	"fmt"
)

// GSubTable is a type representing an OpenType GSUB table
// (see https://docs.microsoft.com/en-us/typography/opentype/spec/gsub).
//
// The GSUB table is organized into three lists: scripts, features and lookups.
// A script lists language systems, a language system selects features, and
// a feature selects lookups from the lookup list. GSubTable offers navigation
// along this path, but interprets lookups only as far as single-glyph
// substitutions are concerned.
type GSubTable struct {
	scripts  tagList
	features tagList
	lookups  binarySegm
}

// LookupType enumerates the lookup types of GSUB.
type LookupType uint16

// GSUB Lookup Type Enumeration
const (
	GSubLookupTypeSingle          LookupType = 1 // Replace one glyph with one glyph
	GSubLookupTypeMultiple        LookupType = 2 // Replace one glyph with more than one glyph
	GSubLookupTypeAlternate       LookupType = 3 // Replace one glyph with one of many glyphs
	GSubLookupTypeLigature        LookupType = 4 // Replace multiple glyphs with one glyph
	GSubLookupTypeContext         LookupType = 5 // Replace one or more glyphs in context
	GSubLookupTypeChainingContext LookupType = 6 // Replace one or more glyphs in chained context
	GSubLookupTypeExtensionSubs   LookupType = 7 // Extension mechanism for other substitutions
	GSubLookupTypeReverseChaining LookupType = 8 // Applied in reverse order, replace single glyph in chaining context
)

func (lt LookupType) String() string {
	switch lt {
	case GSubLookupTypeSingle:
		return "Single"
	case GSubLookupTypeMultiple:
		return "Multiple"
	case GSubLookupTypeAlternate:
		return "Alternate"
	case GSubLookupTypeLigature:
		return "Ligature"
	case GSubLookupTypeContext:
		return "Context"
	case GSubLookupTypeChainingContext:
		return "ChainingContext"
	case GSubLookupTypeExtensionSubs:
		return "Extension"
	case GSubLookupTypeReverseChaining:
		return "ReverseChaining"
	}
	return fmt.Sprintf("LookupType(%d)", uint16(lt))
}

// tagList is a list of records consisting of a tag and a 16-bit offset,
// as used by ScriptList, FeatureList and the LangSys records of a script.
// Offsets are relative to the beginning of the list.
type tagList struct {
	base    binarySegm
	count   int
	records binarySegm
}

func parseTagList(b binarySegm) (tagList, error) {
	n, err := b.u16(0)
	if err != nil {
		return tagList{}, err
	}
	recs, err := b.view(2, 6*int(n))
	if err != nil && n > 0 {
		return tagList{}, err
	}
	return tagList{base: b, count: int(n), records: recs}, nil
}

func (l tagList) tag(i int) Tag {
	return Tag(u32(l.records[6*i:]))
}

// link returns the table the i-th record points to.
func (l tagList) link(i int) (binarySegm, error) {
	off := int(u16(l.records[6*i+4:]))
	return l.base.from(off)
}

func (l tagList) find(tag Tag) (binarySegm, bool) {
	for i := 0; i < l.count; i++ {
		if l.tag(i) == tag {
			b, err := l.link(i)
			return b, err == nil
		}
	}
	return nil, false
}

func parseGSub(b binarySegm) (*GSubTable, error) {
	major, err := b.u16(0)
	if err != nil || major != 1 {
		return nil, errFontFormat("GSUB header")
	}
	gsub := &GSubTable{}
	if sl, err := b.link16(4); err == nil {
		if gsub.scripts, err = parseTagList(sl); err != nil {
			return nil, errFontFormat("GSUB script list")
		}
	}
	if fl, err := b.link16(6); err == nil {
		if gsub.features, err = parseTagList(fl); err != nil {
			return nil, errFontFormat("GSUB feature list")
		}
	}
	if ll, err := b.link16(8); err == nil {
		if _, err = ll.u16(0); err != nil {
			return nil, errFontFormat("GSUB lookup list")
		}
		gsub.lookups = ll
	}
	tracer().Debugf("GSUB has %d scripts, %d features, %d lookups",
		gsub.scripts.count, gsub.features.count, gsub.LookupCount())
	return gsub, nil
}

// ScriptTags returns the script tags of the GSUB table, in the order of
// the font's script list.
func (gsub *GSubTable) ScriptTags() []Tag {
	tags := make([]Tag, gsub.scripts.count)
	for i := range tags {
		tags[i] = gsub.scripts.tag(i)
	}
	return tags
}

// langSys returns the language system table to use for a script: the default
// language system if present, otherwise the first language specific one.
func (gsub *GSubTable) langSys(script Tag) (binarySegm, bool) {
	s, ok := gsub.scripts.find(script)
	if !ok {
		return nil, false
	}
	if ls, err := s.link16(0); err == nil {
		return ls, true
	}
	// Script table without a default language system
	records, err := parseScriptLangSys(s)
	if err != nil || records.count == 0 {
		return nil, false
	}
	ls, err := records.link(0)
	return ls, err == nil
}

// The LangSysRecords of a script table start after the default LangSys offset,
// and their offsets are relative to the script table.
func parseScriptLangSys(s binarySegm) (tagList, error) {
	rest, err := s.from(2)
	if err != nil {
		return tagList{}, err
	}
	l, err := parseTagList(rest)
	l.base = s
	return l, err
}

// featureIndices returns the feature indices of a language system, including
// the required feature if one is set.
func featureIndices(ls binarySegm) []int {
	var indices []int
	if req, err := ls.u16(2); err == nil && req != 0xffff {
		indices = append(indices, int(req))
	}
	n, err := ls.u16(4)
	if err != nil {
		return indices
	}
	for i := 0; i < int(n); i++ {
		inx, err := ls.u16(6 + 2*i)
		if err != nil {
			break
		}
		indices = append(indices, int(inx))
	}
	return indices
}

// FeatureTags returns the tags of the features of the default language system
// of a script. Tags may occur more than once.
func (gsub *GSubTable) FeatureTags(script Tag) []Tag {
	ls, ok := gsub.langSys(script)
	if !ok {
		return nil
	}
	var tags []Tag
	for _, inx := range featureIndices(ls) {
		if inx < gsub.features.count {
			tags = append(tags, gsub.features.tag(inx))
		}
	}
	return tags
}

// FeatureLookups returns the indices into the lookup list for a feature
// of the default language system of a script. If the script or the
// feature is not present, nil is returned.
func (gsub *GSubTable) FeatureLookups(script, feature Tag) []int {
	ls, ok := gsub.langSys(script)
	if !ok {
		return nil
	}
	var lookups []int
	for _, inx := range featureIndices(ls) {
		if inx >= gsub.features.count || gsub.features.tag(inx) != feature {
			continue
		}
		f, err := gsub.features.link(inx)
		if err != nil {
			continue
		}
		// Feature table: featureParamsOffset, lookupIndexCount, lookupListIndices
		n, err := f.u16(2)
		if err != nil {
			continue
		}
		for i := 0; i < int(n); i++ {
			l, err := f.u16(4 + 2*i)
			if err != nil {
				break
			}
			lookups = append(lookups, int(l))
		}
	}
	return lookups
}

// LookupCount returns the number of lookups in the lookup list.
func (gsub *GSubTable) LookupCount() int {
	n, err := gsub.lookups.u16(0)
	if err != nil {
		return 0
	}
	return int(n)
}

func (gsub *GSubTable) lookup(i int) (binarySegm, bool) {
	if i < 0 || i >= gsub.LookupCount() {
		return nil, false
	}
	l, err := gsub.lookups.link16(2 + 2*i)
	return l, err == nil
}

// LookupType returns the type of lookup number i, or 0 if i is out of range.
// Extension lookups report type 7.
func (gsub *GSubTable) LookupType(i int) LookupType {
	l, ok := gsub.lookup(i)
	if !ok {
		return 0
	}
	t, _ := l.u16(0)
	return LookupType(t)
}

// SingleSubstitute applies lookup number i to glyph g, if the lookup is of one
// of the one-to-one kinds. Lookups of type 1 (single substitution) and 3
// (alternate substitution, which will deliver the first alternate) are
// supported, also when wrapped into an extension lookup (type 7).
//
// Sub-tables are tried in order; the first one covering g determines the
// result. If no sub-table covers g, false is returned.
func (gsub *GSubTable) SingleSubstitute(i int, g GlyphIndex) (GlyphIndex, bool) {
	l, ok := gsub.lookup(i)
	if !ok {
		return g, false
	}
	ltype, _ := l.u16(0)
	n, err := l.u16(4)
	if err != nil {
		return g, false
	}
	for k := 0; k < int(n); k++ {
		sub, err := l.link16(6 + 2*k)
		if err != nil {
			continue
		}
		t := LookupType(ltype)
		if t == GSubLookupTypeExtensionSubs {
			if t, sub, err = followExtension(sub); err != nil {
				tracer().Debugf("GSUB lookup %d: %v", i, err)
				continue
			}
		}
		var r GlyphIndex
		switch t {
		case GSubLookupTypeSingle:
			r, ok = applySingle(sub, g)
		case GSubLookupTypeAlternate:
			r, ok = applyAlternate(sub, g)
		default:
			return g, false
		}
		if ok {
			return r, true
		}
	}
	return g, false
}

// Extension substitution subtable: format, extensionLookupType, and a 32-bit
// offset to the extension subtable, relative to the start of this subtable.
func followExtension(sub binarySegm) (LookupType, binarySegm, error) {
	if format, err := sub.u16(0); err != nil || format != 1 {
		return 0, nil, errFontFormat("extension sub-table format")
	}
	t, err := sub.u16(2)
	if err != nil || LookupType(t) == GSubLookupTypeExtensionSubs {
		return 0, nil, errFontFormat("extension lookup type")
	}
	off, err := sub.u32(4)
	if err != nil {
		return 0, nil, errFontFormat("extension offset")
	}
	ext, err := sub.from(int(off))
	if err != nil {
		return 0, nil, errFontFormat("extension offset")
	}
	return LookupType(t), ext, nil
}

func coverageOf(sub binarySegm) (Coverage, bool) {
	b, err := sub.link16(2)
	if err != nil {
		return Coverage{}, false
	}
	cov, err := parseCoverage(b)
	return cov, err == nil
}

// Single substitution:
// Format 1 adds a delta (modulo 65536) to the glyph index,
// format 2 holds an array of substitutes, indexed by coverage index.
func applySingle(sub binarySegm, g GlyphIndex) (GlyphIndex, bool) {
	format, err := sub.u16(0)
	if err != nil {
		return g, false
	}
	cov, ok := coverageOf(sub)
	if !ok {
		return g, false
	}
	inx, ok := cov.Match(g)
	if !ok {
		return g, false
	}
	switch format {
	case 1:
		delta, err := sub.u16(4)
		if err != nil {
			return g, false
		}
		return GlyphIndex(uint16(g) + delta), true
	case 2:
		if cnt, err := sub.u16(4); err != nil || inx >= int(cnt) {
			return g, false
		}
		r, err := sub.u16(6 + 2*inx)
		if err != nil {
			return g, false
		}
		return GlyphIndex(r), true
	}
	return g, false
}

// Alternate substitution: format 1, coverage, alternateSetCount, offsets to
// AlternateSets; each set is a count followed by alternative glyph IDs.
func applyAlternate(sub binarySegm, g GlyphIndex) (GlyphIndex, bool) {
	if format, err := sub.u16(0); err != nil || format != 1 {
		return g, false
	}
	cov, ok := coverageOf(sub)
	if !ok {
		return g, false
	}
	inx, ok := cov.Match(g)
	if !ok {
		return g, false
	}
	if cnt, err := sub.u16(4); err != nil || inx >= int(cnt) {
		return g, false
	}
	set, err := sub.link16(6 + 2*inx)
	if err != nil {
		return g, false
	}
	if n, err := set.u16(0); err != nil || n == 0 {
		return g, false
	}
	r, err := set.u16(2)
	if err != nil {
		return g, false
	}
	return GlyphIndex(r), true
}
