package localized

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/fontloc/core/font"
	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/language"
)

type downProvider struct{}

func (downProvider) Name() string { return "down" }
func (downProvider) Faces() ([]fontcatalog.FaceInfo, error) {
	return nil, errors.New("font service not initialized")
}
func (downProvider) Load(fontcatalog.FaceInfo) (*font.ScalableFont, error) {
	return nil, errors.New("font service not initialized")
}

func sampleCatalog(t *testing.T) *fontcatalog.Catalog {
	mp := fontcatalog.NewMemoryProvider("samples", nil)
	mincho := fonttest.Sample{
		Family:    "Sample Mincho",
		Localized: map[uint16]string{0x0411: "サンプル明朝", 0x0404: "範例明體"},
		Kana:      true,
	}
	minchoBold := mincho
	minchoBold.Subfamily = "Bold"
	require.NoError(t, mp.Add("mem:mincho.ttc", fonttest.Collection(mincho.Builder(), minchoBold.Builder())))
	require.NoError(t, mp.Add("mem:batang.ttf", fonttest.Sample{
		Family:    "Sample Batang",
		Localized: map[uint16]string{0x0412: "샘플바탕"},
		Hangul:    true,
	}.Bytes()))
	require.NoError(t, mp.Add("mem:serif.ttf", fonttest.Sample{Family: "Sample Serif"}.Bytes()))
	return fontcatalog.NewCatalog(mp)
}

var (
	korean  = language.Korean
	japan   = language.MustParse("ja-JP")
	taiwan  = language.MustParse("zh-TW")
	english = language.English
)

type NamesSuite struct {
	suite.Suite
	teardown func()
	catalog  *fontcatalog.Catalog
}

func TestNames(t *testing.T) {
	suite.Run(t, new(NamesSuite))
}

func (s *NamesSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "fontloc.catalog")
	s.catalog = sampleCatalog(s.T())
}

func (s *NamesSuite) TearDownTest() {
	s.teardown()
}

func (s *NamesSuite) TestAvailableFamilyNames() {
	n := New(s.catalog)
	all, err := n.AvailableFamilyNames()
	s.Require().NoError(err)
	s.Equal([]string{"Sample Batang", "Sample Mincho", "Sample Serif"}, all)
	ja, err := n.AvailableFamilyNames(language.Japanese)
	s.Require().NoError(err)
	s.Equal([]string{"Sample Mincho"}, ja)
	cjk, err := n.AvailableFamilyNames(japan, korean, language.Japanese)
	s.Require().NoError(err)
	s.Equal([]string{"Sample Batang", "Sample Mincho"}, cjk)
	none, err := n.AvailableFamilyNames(language.Arabic)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *NamesSuite) TestLocalizedFamilyName() {
	n := New(s.catalog)
	s.Equal("サンプル明朝", n.LocalizedFamilyName("Sample Mincho", language.Japanese))
	s.Equal("範例明體", n.LocalizedFamilyName("sample mincho", taiwan))
	s.Equal("Sample Mincho", n.LocalizedFamilyName("サンプル明朝", english))
	s.Equal("샘플바탕", n.LocalizedFamilyName("Sample Batang", korean))
	// no localization: input unchanged, whatever name was used
	s.Equal("Sample Mincho", n.LocalizedFamilyName("Sample Mincho", korean))
	s.Equal("範例明體", n.LocalizedFamilyName("範例明體", korean))
	s.Equal("sample-serif", n.LocalizedFamilyName("sample-serif", language.Japanese))
	// unknown family
	s.Equal("NotARealFamily", n.LocalizedFamilyName("NotARealFamily", language.Japanese))
	s.Equal("", n.LocalizedFamilyName("", language.Japanese))
}

func (s *NamesSuite) TestLocalizedFontName() {
	n := New(s.catalog)
	s.Equal("サンプル明朝 Bold", n.LocalizedFontName("SampleMincho-Bold", japan))
	s.Equal("Sample Mincho Bold", n.LocalizedFontName("サンプル明朝 Bold", english))
	s.Equal("SampleMincho-Bold", n.LocalizedFontName("SampleMincho-Bold", korean))
	s.Equal("Sample Mincho", n.LocalizedFontName("Sample Mincho", japan), "a family is not a face")
	s.Equal("NotARealFont-Bold", n.LocalizedFontName("NotARealFont-Bold", japan))
}

func (s *NamesSuite) TestFallbackPolicies() {
	canonical := New(s.catalog, WithFallback(FallbackCanonical))
	s.Equal("Sample Mincho", canonical.LocalizedFamilyName("範例明體", korean))
	s.Equal("Sample Mincho Bold", canonical.LocalizedFontName("SampleMincho-Bold", korean))
	s.Equal("NotARealFamily", canonical.LocalizedFamilyName("NotARealFamily", korean))
	//
	locale := New(s.catalog, WithFallback(FallbackSystemLocale), WithLocale(language.Japanese))
	s.Equal(language.Japanese, locale.Locale())
	s.Equal("サンプル明朝", locale.LocalizedFamilyName("Sample Mincho", korean))
	s.Equal("サンプル明朝 Regular", locale.LocalizedFontName("Sample Mincho Regular", korean))
	s.Equal("Sample Serif", locale.LocalizedFamilyName("Sample Serif", korean))
	s.Equal("NotARealFont", locale.LocalizedFontName("NotARealFont", korean))
	//
	undetermined := New(s.catalog, WithFallback(FallbackSystemLocale), WithLocale(language.Und))
	s.Equal("範例明體", undetermined.LocalizedFamilyName("範例明體", korean))
	s.Equal("system-locale", FallbackSystemLocale.String())
}

// Every name of every family, requested in a language the family has no
// name for, comes back unchanged.
func (s *NamesSuite) TestMissingLocalizationIsIdentity() {
	n := New(s.catalog)
	names := n.CompleteFamilyName("")
	s.Require().NotEmpty(names)
	langs := []language.Tag{english, japan, taiwan, korean, language.German, language.Thai}
	for _, name := range names {
		fam, err := s.catalog.Family(name)
		s.Require().NoError(err)
		for _, l := range langs {
			if _, ok := fam.LocalizedName(l); ok {
				continue
			}
			s.Equal(name, n.LocalizedFamilyName(name, l), "%s in %s", name, l)
		}
	}
}

func (s *NamesSuite) TestIdempotence() {
	n := New(s.catalog)
	a, err1 := n.AvailableFamilyNames(korean)
	b, err2 := n.AvailableFamilyNames(korean)
	s.NoError(err1)
	s.NoError(err2)
	s.Equal(a, b)
	s.Equal(n.LocalizedFamilyName("Sample Batang", korean), n.LocalizedFamilyName("Sample Batang", korean))
	s.Equal(n.LocalizedFontName("SampleMincho-Bold", japan), n.LocalizedFontName("SampleMincho-Bold", japan))
}

func (s *NamesSuite) TestCompleteFamilyName() {
	n := New(s.catalog)
	s.Equal([]string{"サンプル明朝"}, n.CompleteFamilyName("サンプル"))
	s.Equal([]string{"Sample Batang", "Sample Mincho", "Sample Serif"}, n.CompleteFamilyName("sample"))
	s.Empty(n.CompleteFamilyName("xyz"))
}

func TestUnavailableCatalog(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	n := New(fontcatalog.NewCatalog(downProvider{}))
	_, err := n.AvailableFamilyNames()
	require.Error(t, err)
	assert.True(t, fontcatalog.IsPlatformQueryError(err))
	_, err = n.AvailableFamilyNames(language.Japanese)
	assert.True(t, fontcatalog.IsPlatformQueryError(err))
	// name lookups never fail
	assert.Equal(t, "Sample Mincho", n.LocalizedFamilyName("Sample Mincho", language.Japanese))
	assert.Equal(t, "SampleMincho-Bold", n.LocalizedFontName("SampleMincho-Bold", language.Japanese))
	assert.Nil(t, n.CompleteFamilyName("S"))
}

func TestPackageLevelFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	SetDefault(New(sampleCatalog(t)))
	defer SetDefault(nil)
	fams, err := AvailableFamilyNames(korean)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sample Batang"}, fams)
	assert.Equal(t, "샘플바탕", LocalizedFamilyName("Sample Batang", korean))
	assert.Equal(t, "サンプル明朝 Bold", LocalizedFontName("Sample Mincho Bold", language.Japanese))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "Sample Mincho", LocalizedFamilyName("サンプル明朝", english))
		}()
	}
	wg.Wait()
}
