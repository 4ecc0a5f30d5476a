package otquery

import (
	"testing"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFont(t *testing.T, s fonttest.Sample) *ot.Font {
	otf, err := ot.Parse(s.Bytes())
	require.NoError(t, err)
	return otf
}

func TestVerticalSubstitution(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	comma := ot.GlyphIndex(fonttest.GlyphIdeographicComma)
	cases := []struct {
		features []string
		script   string
		want     ot.GlyphIndex
	}{
		{[]string{"vert"}, "", comma + fonttest.VertOffset},
		{[]string{"vert", "vrt2"}, "", comma + fonttest.Vrt2Offset},
		{[]string{"vkna", "vert"}, "", comma + fonttest.VertOffset},
		{[]string{"vkna"}, "", comma + fonttest.VknaOffset},
		{[]string{"vert"}, "hani", comma + fonttest.VertOffset},
		{[]string{"vert"}, "DFLT", comma + fonttest.VertOffset},
		{[]string{"vert"}, "latn", comma + fonttest.VertOffset},
	}
	for _, c := range cases {
		otf := sampleFont(t, fonttest.Sample{Family: "V", Kana: true, Vertical: c.features, Script: c.script})
		assert.True(t, HasVerticalFeature(otf))
		g, ok := VerticalSubstitution(otf, comma)
		assert.True(t, ok, "%v/%s", c.features, c.script)
		assert.Equal(t, c.want, g, "%v/%s", c.features, c.script)
		// glyph not covered by vertical lookups
		less := ot.GlyphIndex(fonttest.GlyphFullwidthLess)
		g, ok = VerticalSubstitution(otf, less)
		assert.False(t, ok)
		assert.Equal(t, less, g)
	}
}

func TestVerticalLookupsSkipOtherFeatures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	otf := sampleFont(t, fonttest.Sample{Family: "V", Kana: true, Vertical: []string{"vert", "vrt2"}})
	// lookup 0 is the 'liga' feature of sample fonts
	assert.Equal(t, []int{2, 1}, VerticalLookups(otf))
	plain := sampleFont(t, fonttest.Sample{Family: "P", Kana: true})
	assert.False(t, HasVerticalFeature(plain))
	g, ok := VerticalSubstitution(plain, 400)
	assert.False(t, ok)
	assert.Equal(t, ot.GlyphIndex(400), g)
}

func TestVerticalScriptOrder(t *testing.T) {
	gsub, err := ot.Parse(fonttest.NewFont().With("GSUB", fonttest.GSub{
		Scripts: []fonttest.Script{
			{Tag: "latn"}, {Tag: "DFLT"}, {Tag: "cyrl"}, {Tag: "hani"}, {Tag: "kana"},
		},
	}.Bytes()).Bytes())
	require.NoError(t, err)
	assert.Equal(t, []ot.Tag{
		ot.T("kana"), ot.T("hani"), ot.T("DFLT"), ot.T("latn"), ot.T("cyrl"),
	}, VerticalScripts(gsub.GSub()))
	assert.Nil(t, VerticalScripts(nil))
}
