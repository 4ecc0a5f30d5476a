package ot

import (
	"testing"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestParseHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	require.NoError(t, err)
	t.Logf("otf.header.tag = %x", otf.Header.FontType)
	assert.Equal(t, uint32(0x00010000), otf.Header.FontType)
	assert.NotNil(t, otf.Table(T("name")))
	assert.NotNil(t, otf.Table(T("cmap")))
	assert.Nil(t, otf.Table(T("XXXX")))
	tags := otf.TableTags()
	for i := 1; i < len(tags); i++ {
		assert.Less(t, tags[i-1], tags[i])
	}
}

func TestTags(t *testing.T) {
	assert.Equal(t, "GSUB", T("GSUB").String())
	assert.Equal(t, "DFLT", MakeTag([]byte("DFLT")).String())
	assert.Equal(t, T("kana"), MakeTag([]byte("kana")))
	assert.Equal(t, "abc ", T("abc").String())
}

func TestCMapAgainstSFNT(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	otf, err := Parse(goregular.TTF)
	require.NoError(t, err)
	require.NotNil(t, otf.CMap())
	ref, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	var buf sfnt.Buffer
	for _, r := range "Aa0ÄßΩЖ€一" {
		want, err := ref.GlyphIndex(&buf, r)
		require.NoError(t, err)
		assert.Equal(t, GlyphIndex(want), otf.CMap().Lookup(r), "rune %q", r)
	}
	assert.NotZero(t, otf.CMap().Lookup('A'))
}

func TestCMapFormats(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	m := map[rune]uint16{'A': 7, 'B': 8, 'z': 300, 'あ': 1000, '𠀋': 2000}
	for name, table := range map[string][]byte{
		"format 12":              fonttest.CMap12(m),
		"format 4 (deltas)":      fonttest.CMap4(m, false),
		"format 4 (glyph array)": fonttest.CMap4(m, true),
	} {
		otf, err := Parse(fonttest.NewFont().With("cmap", table).Bytes())
		require.NoError(t, err, name)
		cmap := otf.CMap()
		require.NotNil(t, cmap, name)
		for r, g := range m {
			if r > 0xffff && name != "format 12" {
				assert.Equal(t, GlyphIndex(0), cmap.Lookup(r), "%s: rune %q", name, r)
				continue
			}
			assert.Equal(t, GlyphIndex(g), cmap.Lookup(r), "%s: rune %q", name, r)
		}
		assert.Equal(t, GlyphIndex(0), cmap.Lookup('C'), name)
		assert.Equal(t, GlyphIndex(0), cmap.Lookup(0xffff), name)
	}
}

func TestCollection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	a := fonttest.NewFont().With("cmap", fonttest.CMap12(map[rune]uint16{'a': 1}))
	b := fonttest.NewFont().With("cmap", fonttest.CMap12(map[rune]uint16{'a': 2}))
	ttc := fonttest.Collection(a, b)
	assert.Equal(t, 2, CollectionSize(ttc))
	assert.Equal(t, 1, CollectionSize(a.Bytes()))
	assert.Equal(t, 0, CollectionSize([]byte("xy")))
	for i, g := range []GlyphIndex{1, 2} {
		otf, err := ParseCollection(ttc, i)
		require.NoError(t, err)
		assert.Equal(t, g, otf.CMap().Lookup('a'))
	}
	_, err := ParseCollection(ttc, 2)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestMalformedFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	_, err := Parse(nil)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Parse([]byte("OTTO"))
	assert.Error(t, err)
	_, err = Parse([]byte("abcdefghijklmnop"))
	assert.Error(t, err)
	// A table pointing beyond the end of data is skipped
	f := fonttest.NewFont().With("cmap", fonttest.CMap12(map[rune]uint16{'a': 1})).Bytes()
	otf, err := Parse(f[:len(f)-8])
	require.NoError(t, err)
	assert.Nil(t, otf.Table(T("cmap")))
	assert.Nil(t, otf.CMap())
	// Garbage tables do not make the font unusable
	otf, err = Parse(fonttest.NewFont().
		With("cmap", []byte{0, 0, 0, 9, 1}).
		With("GSUB", []byte{0, 2, 0, 0, 0xff, 0xff}).Bytes())
	require.NoError(t, err)
	assert.Nil(t, otf.CMap())
	assert.Nil(t, otf.GSub())
	assert.NotNil(t, otf.Table(T("GSUB")))
}
