package vertical

import (
	"sync"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/core/font/opentype/otquery"
)

// Supplemental vertical forms for fonts which lack GSUB entries for them.
var supplementalPairs = [][2]rune{
	{'＜', '︿'}, // ＜ → ︿
	{'＞', '﹀'}, // ＞ → ﹀
	{'－', '｜'}, // － → ｜
}

// table holds the vertical substitution data of one font.
type table struct {
	name       string
	cmap       *ot.CMapTable
	gsub       *ot.GSubTable
	lookups    []int
	supplement map[ot.GlyphIndex]ot.GlyphIndex
	memo       sync.Map // ot.GlyphIndex → ot.GlyphIndex
}

func newTable(name string, otf *ot.Font) *table {
	t := &table{
		name:    name,
		cmap:    otf.CMap(),
		gsub:    otf.GSub(),
		lookups: otquery.VerticalLookups(otf),
	}
	if len(t.lookups) == 0 {
		tracer().Debugf("font %s has no vertical features", name)
		return t
	}
	for _, pair := range supplementalPairs {
		from, to := t.cmap.Lookup(pair[0]), t.cmap.Lookup(pair[1])
		if from == 0 || to == 0 {
			continue
		}
		if _, ok := otquery.SubstituteWith(t.gsub, t.lookups, from); ok {
			continue
		}
		if t.supplement == nil {
			t.supplement = make(map[ot.GlyphIndex]ot.GlyphIndex)
		}
		t.supplement[from] = to
	}
	tracer().Debugf("font %s: vertical lookups %v, %d supplemental glyphs", name,
		t.lookups, len(t.supplement))
	return t
}

func (t *table) substitute(g ot.GlyphIndex) ot.GlyphIndex {
	if len(t.lookups) == 0 {
		return g
	}
	if v, ok := t.memo.Load(g); ok {
		return v.(ot.GlyphIndex)
	}
	v, ok := otquery.SubstituteWith(t.gsub, t.lookups, g)
	if !ok {
		if s, found := t.supplement[g]; found {
			v = s
		} else {
			v = g
		}
	}
	t.memo.Store(g, v)
	return v
}
