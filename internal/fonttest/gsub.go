package fonttest

import (
	"sort"
)

// GSub describes a GSUB table. Scripts refer to features by index, features
// refer to lookups by index.
type GSub struct {
	Scripts  []Script
	Features []Feature
	Lookups  []Lookup
}

// Script is a script record. If NoDefault is set, the feature indices are
// attached to a language specific language system instead of the default one.
type Script struct {
	Tag       string
	Features  []int
	NoDefault bool
}

// Feature is a feature record.
type Feature struct {
	Tag     string
	Lookups []int
}

// Lookup is a lookup table with encoded sub-tables.
type Lookup struct {
	Type      uint16
	Subtables [][]byte
}

// Bytes encodes the GSUB table.
func (g GSub) Bytes() []byte {
	scripts := g.scriptList()
	features := g.featureList()
	lookups := g.lookupList()
	out := be16(nil, 1)
	out = be16(out, 0)
	out = be16(out, 10)
	out = be16(out, uint16(10+len(scripts)))
	out = be16(out, uint16(10+len(scripts)+len(features)))
	out = append(out, scripts...)
	out = append(out, features...)
	return append(out, lookups...)
}

func tag(t string) string {
	return (t + "    ")[:4]
}

// taggedList encodes a count, tag/offset records and the tables they point to.
func taggedList(tags []string, tables [][]byte, prefix []byte) []byte {
	pos := len(prefix) + 2 + 6*len(tags)
	out := be16(prefix, uint16(len(tags)))
	for i, t := range tags {
		out = append(out, tag(t)...)
		out = be16(out, uint16(pos))
		pos += len(tables[i])
	}
	for _, tbl := range tables {
		out = append(out, tbl...)
	}
	return out
}

func langSys(features []int) []byte {
	out := be16(nil, 0)
	out = be16(out, 0xffff)
	out = be16(out, uint16(len(features)))
	for _, f := range features {
		out = be16(out, uint16(f))
	}
	return out
}

func (g GSub) scriptList() []byte {
	tags := make([]string, len(g.Scripts))
	tables := make([][]byte, len(g.Scripts))
	for i, s := range g.Scripts {
		tags[i] = s.Tag
		ls := langSys(s.Features)
		if s.NoDefault {
			tables[i] = taggedList([]string{"JAN"}, [][]byte{ls}, be16(nil, 0))
		} else {
			tbl := be16(nil, 4) // default LangSys follows the header
			tbl = be16(tbl, 0)
			tables[i] = append(tbl, ls...)
		}
	}
	return taggedList(tags, tables, nil)
}

func (g GSub) featureList() []byte {
	tags := make([]string, len(g.Features))
	tables := make([][]byte, len(g.Features))
	for i, f := range g.Features {
		tags[i] = f.Tag
		tbl := be16(nil, 0)
		tbl = be16(tbl, uint16(len(f.Lookups)))
		for _, l := range f.Lookups {
			tbl = be16(tbl, uint16(l))
		}
		tables[i] = tbl
	}
	return taggedList(tags, tables, nil)
}

func (g GSub) lookupList() []byte {
	var tables [][]byte
	for _, l := range g.Lookups {
		pos := 6 + 2*len(l.Subtables)
		tbl := be16(nil, l.Type)
		tbl = be16(tbl, 0)
		tbl = be16(tbl, uint16(len(l.Subtables)))
		for _, s := range l.Subtables {
			tbl = be16(tbl, uint16(pos))
			pos += len(s)
		}
		for _, s := range l.Subtables {
			tbl = append(tbl, s...)
		}
		tables = append(tables, tbl)
	}
	pos := 2 + 2*len(tables)
	out := be16(nil, uint16(len(tables)))
	for _, t := range tables {
		out = be16(out, uint16(pos))
		pos += len(t)
	}
	for _, t := range tables {
		out = append(out, t...)
	}
	return out
}

// --- Sub-tables --------------------------------------------------------------

func sortedGlyphs[V any](m map[uint16]V) []uint16 {
	gg := make([]uint16, 0, len(m))
	for g := range m {
		gg = append(gg, g)
	}
	sort.Slice(gg, func(i, j int) bool { return gg[i] < gg[j] })
	return gg
}

// Coverage1 encodes a coverage table of format 1.
func Coverage1(glyphs []uint16) []byte {
	gg := append([]uint16(nil), glyphs...)
	sort.Slice(gg, func(i, j int) bool { return gg[i] < gg[j] })
	out := be16(nil, 1)
	out = be16(out, uint16(len(gg)))
	for _, g := range gg {
		out = be16(out, g)
	}
	return out
}

// Coverage2 encodes a coverage table of format 2, merging consecutive glyphs
// into ranges.
func Coverage2(glyphs []uint16) []byte {
	gg := append([]uint16(nil), glyphs...)
	sort.Slice(gg, func(i, j int) bool { return gg[i] < gg[j] })
	type rng struct{ start, end, inx uint16 }
	var ranges []rng
	for i, g := range gg {
		if n := len(ranges); n > 0 && ranges[n-1].end+1 == g {
			ranges[n-1].end = g
			continue
		}
		ranges = append(ranges, rng{g, g, uint16(i)})
	}
	out := be16(nil, 2)
	out = be16(out, uint16(len(ranges)))
	for _, r := range ranges {
		out = be16(out, r.start)
		out = be16(out, r.end)
		out = be16(out, r.inx)
	}
	return out
}

// SingleSubst1 encodes a single substitution of format 1, adding delta to
// every covered glyph.
func SingleSubst1(glyphs []uint16, delta int16) []byte {
	out := be16(nil, 1)
	out = be16(out, 6)
	out = be16(out, uint16(delta))
	return append(out, Coverage1(glyphs)...)
}

// SingleSubst2 encodes a single substitution of format 2 with a range
// coverage table.
func SingleSubst2(m map[uint16]uint16) []byte {
	gg := sortedGlyphs(m)
	out := be16(nil, 2)
	out = be16(out, uint16(6+2*len(gg)))
	out = be16(out, uint16(len(gg)))
	for _, g := range gg {
		out = be16(out, m[g])
	}
	return append(out, Coverage2(gg)...)
}

// AlternateSubst encodes an alternate substitution.
func AlternateSubst(m map[uint16][]uint16) []byte {
	gg := sortedGlyphs(m)
	var sets []byte
	hdr := 6 + 2*len(gg)
	offsets := make([]int, len(gg))
	for i, g := range gg {
		offsets[i] = hdr + len(sets)
		sets = be16(sets, uint16(len(m[g])))
		for _, a := range m[g] {
			sets = be16(sets, a)
		}
	}
	out := be16(nil, 1)
	out = be16(out, uint16(hdr+len(sets)))
	out = be16(out, uint16(len(gg)))
	for _, off := range offsets {
		out = be16(out, uint16(off))
	}
	out = append(out, sets...)
	return append(out, Coverage1(gg)...)
}

// Extension wraps a sub-table of a given lookup type into an extension
// sub-table.
func Extension(lookupType uint16, sub []byte) []byte {
	out := be16(nil, 1)
	out = be16(out, lookupType)
	out = be32(out, 8)
	return append(out, sub...)
}
