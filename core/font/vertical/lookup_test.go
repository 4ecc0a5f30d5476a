package vertical

import (
	"sync"
	"testing"

	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	comma  = ot.GlyphIndex(fonttest.GlyphIdeographicComma)
	paren  = ot.GlyphIndex(fonttest.GlyphFullwidthLeftParen)
	less   = ot.GlyphIndex(fonttest.GlyphFullwidthLess)
	hyphen = ot.GlyphIndex(fonttest.GlyphFullwidthHyphen)
)

// customFont has a 'vert' lookup covering the fullwidth less-than sign.
func customFont() []byte {
	s := fonttest.Sample{Family: "Custom Vertical", Kana: true}
	gsub := fonttest.GSub{
		Scripts:  []fonttest.Script{{Tag: "hani", Features: []int{0}}},
		Features: []fonttest.Feature{{Tag: "vert", Lookups: []int{0}}},
		Lookups: []fonttest.Lookup{{Type: 1, Subtables: [][]byte{
			fonttest.SingleSubst2(map[uint16]uint16{fonttest.GlyphFullwidthLess: 450}),
		}}},
	}
	return s.Builder().With("GSUB", gsub.Bytes()).Bytes()
}

func sampleCatalog(t *testing.T) *fontcatalog.Catalog {
	mp := fontcatalog.NewMemoryProvider("samples", nil)
	require.NoError(t, mp.Add("mem:vert.ttf", fonttest.Sample{
		Family: "Vert Mincho", Kana: true, Vertical: []string{"vert"},
	}.Bytes()))
	require.NoError(t, mp.Add("mem:vrt2.ttf", fonttest.Sample{
		Family: "Vrt2 Gothic", Kana: true, Vertical: []string{"vert", "vrt2"},
	}.Bytes()))
	require.NoError(t, mp.Add("mem:horizontal.ttf", fonttest.Sample{
		Family: "Horizontal Mincho", Kana: true,
	}.Bytes()))
	require.NoError(t, mp.Add("mem:custom.ttf", customFont()))
	return fontcatalog.NewCatalog(mp)
}

func TestSubstitutionGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	l := New(sampleCatalog(t))
	assert.Equal(t, comma+fonttest.VertOffset, l.SubstitutionGlyph("Vert Mincho", comma))
	assert.Equal(t, paren+fonttest.VertOffset, l.SubstitutionGlyph("VertMincho-Regular", paren))
	assert.Equal(t, comma+fonttest.Vrt2Offset, l.SubstitutionGlyph("Vrt2 Gothic Regular", comma),
		"vrt2 is preferred over vert")
	assert.Equal(t, ot.GlyphIndex(34), l.SubstitutionGlyph("Vert Mincho", 34), "'A' has no vertical form")
	assert.Equal(t, ot.GlyphIndex(0), l.SubstitutionGlyph("Vert Mincho", 0))
	assert.Equal(t, ot.GlyphIndex(9999), l.SubstitutionGlyph("Vert Mincho", 9999))
}

func TestSubstitutionIdentity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	l := New(sampleCatalog(t))
	assert.Equal(t, ot.GlyphIndex(42), l.SubstitutionGlyph("NotARealFont", 42))
	assert.Equal(t, ot.GlyphIndex(42), l.SubstitutionGlyph("", 42))
	for g := ot.GlyphIndex(0); g < 1000; g++ {
		require.Equal(t, g, l.SubstitutionGlyph("Horizontal Mincho", g))
	}
	assert.Equal(t, 1, l.CachedFonts(), "unknown fonts are not cached")
}

func TestSupplementalPairs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	l := New(sampleCatalog(t))
	assert.Equal(t, ot.GlyphIndex(fonttest.GlyphPresentationCircL), l.SubstitutionGlyph("Vert Mincho", less))
	assert.Equal(t, ot.GlyphIndex(fonttest.GlyphFullwidthBar), l.SubstitutionGlyph("Vert Mincho", hyphen))
	assert.Equal(t, ot.GlyphIndex(fonttest.GlyphPresentationCircR), l.SubstitutionForRune("Vert Mincho", '＞'))
	// fonts without vertical features stay identity mapped
	assert.Equal(t, less, l.SubstitutionGlyph("Horizontal Mincho", less))
	// entries of the font take precedence
	assert.Equal(t, ot.GlyphIndex(450), l.SubstitutionGlyph("Custom Vertical", less))
	assert.Equal(t, ot.GlyphIndex(fonttest.GlyphFullwidthBar), l.SubstitutionGlyph("Custom Vertical", hyphen))
	assert.Equal(t, comma, l.SubstitutionGlyph("Custom Vertical", comma))
}

func TestSubstitutionForRune(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	l := New(sampleCatalog(t))
	assert.Equal(t, comma+fonttest.VertOffset, l.SubstitutionForRune("Vert Mincho", '、'))
	assert.Equal(t, ot.GlyphIndex('A'-0x1f), l.SubstitutionForRune("Vert Mincho", 'A'))
	assert.Equal(t, ot.GlyphIndex(0), l.SubstitutionForRune("Vert Mincho", '☃'))
	assert.Equal(t, ot.GlyphIndex(0), l.SubstitutionForRune("NotARealFont", '、'))
}

func TestCacheSizeDoesNotChangeResults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	catalog := sampleCatalog(t)
	big, small := New(catalog), New(catalog, WithCacheSize(1))
	fonts := []string{"Vert Mincho", "Vrt2 Gothic", "Horizontal Mincho", "Custom Vertical", "Nope"}
	for round := 0; round < 3; round++ {
		for _, f := range fonts {
			for g := ot.GlyphIndex(395); g < 415; g++ {
				require.Equal(t, big.SubstitutionGlyph(f, g), small.SubstitutionGlyph(f, g), "%s/%d", f, g)
			}
		}
	}
	assert.Equal(t, 1, small.CachedFonts())
	assert.Equal(t, 4, big.CachedFonts())
	big.Refresh()
	assert.Equal(t, 0, big.CachedFonts())
	assert.Equal(t, comma+fonttest.VertOffset, big.SubstitutionGlyph("Vert Mincho", comma))
	assert.Equal(t, DefaultCacheSize, New(catalog, WithCacheSize(0)).size)
}

func TestCatalogRefreshDropsTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	mp := fontcatalog.NewMemoryProvider("samples", nil)
	require.NoError(t, mp.Add("mem:vert.ttf", fonttest.Sample{
		Family: "Vert Mincho", Kana: true, Vertical: []string{"vert"},
	}.Bytes()))
	catalog := fontcatalog.NewCatalog(mp)
	l := New(catalog)
	assert.Equal(t, comma+fonttest.VertOffset, l.SubstitutionGlyph("Vert Mincho", comma))
	assert.Equal(t, 1, l.CachedFonts())
	// the font is replaced by a version without vertical features, and another
	// component refreshes the shared catalog
	require.NoError(t, mp.Add("mem:vert.ttf", fonttest.Sample{
		Family: "Vert Mincho", Kana: true,
	}.Bytes()))
	catalog.Refresh()
	assert.Equal(t, 0, l.CachedFonts())
	assert.Equal(t, comma, l.SubstitutionGlyph("Vert Mincho", comma))
}

func TestConcurrentSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	l := New(sampleCatalog(t), WithCacheSize(2))
	fonts := []string{"Vert Mincho", "Vrt2 Gothic", "Custom Vertical"}
	want := []ot.GlyphIndex{comma + fonttest.VertOffset, comma + fonttest.Vrt2Offset, comma}
	var wg sync.WaitGroup
	for i := 0; i < 24; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				k := (i + j) % len(fonts)
				assert.Equal(t, want[k], l.SubstitutionGlyph(fonts[k], comma))
			}
		}(i)
	}
	wg.Wait()
}

func TestPackageLevelSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.vertical")
	defer teardown()
	//
	SetDefault(New(sampleCatalog(t)))
	defer SetDefault(nil)
	assert.Equal(t, comma+fonttest.VertOffset, SubstitutionGlyph("Vert Mincho", comma))
	assert.Equal(t, ot.GlyphIndex(42), SubstitutionGlyph("NotARealFont", 42))
}
