package otquery

import (
	"testing"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

func TestExemplars(t *testing.T) {
	assert.NotEmpty(t, Exemplars(language.Japanese))
	assert.Equal(t, Exemplars(language.MustParse("zh-TW")), Exemplars(language.MustParse("zh-Hant")))
	assert.NotEqual(t, Exemplars(language.MustParse("zh-CN")), Exemplars(language.MustParse("zh-TW")))
	assert.Equal(t, []rune(scriptExemplars["Latn"]), Exemplars(language.MustParse("ga")))
}

func TestLanguageSupport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	goreg, err := ot.Parse(goregular.TTF)
	require.NoError(t, err)
	for _, l := range []string{"en", "de", "fr", "ru"} {
		assert.True(t, SupportsLanguage(goreg, language.MustParse(l)), l)
	}
	for _, l := range []string{"ja", "ko", "zh-Hans", "th"} {
		assert.False(t, SupportsLanguage(goreg, language.MustParse(l)), l)
	}
	jp, err := ot.Parse(fonttest.Sample{Family: "J", Kana: true}.Bytes())
	require.NoError(t, err)
	kr, err := ot.Parse(fonttest.Sample{Family: "K", Hangul: true}.Bytes())
	require.NoError(t, err)
	candidates := []language.Tag{
		language.English, language.German, language.Japanese, language.Korean,
		language.SimplifiedChinese,
	}
	assert.Equal(t, []language.Tag{language.English, language.Japanese}, SupportedLanguages(jp, candidates))
	assert.Equal(t, []language.Tag{language.English, language.Korean}, SupportedLanguages(kr, candidates))
	noCMap, err := ot.Parse(fonttest.NewFont().With("name", fonttest.NameTable(nil)).Bytes())
	require.NoError(t, err)
	assert.False(t, SupportsLanguage(noCMap, language.English))
	assert.Nil(t, SupportedLanguages(noCMap, candidates))
}
