package otquery

import (
	"testing"

	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// --- Test Suite Preparation ------------------------------------------------

type InfoTestEnviron struct {
	suite.Suite
	goreg  *ot.Font
	mincho *ot.Font
}

// listen for 'go test' command --> run test methods
func TestInfoFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	suite.Run(t, new(InfoTestEnviron))
}

// run once, before test suite methods
func (env *InfoTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("fontloc.fonts").SetTraceLevel(tracing.LevelError)
	var err error
	env.goreg, err = ot.Parse(goregular.TTF)
	env.Require().NoError(err)
	mincho := fonttest.Sample{
		Family:    "Sample Mincho",
		Localized: map[uint16]string{0x0411: "サンプル明朝", 0x0804: "样本明朝"},
		Kana:      true,
	}
	env.mincho, err = ot.Parse(mincho.Bytes())
	env.Require().NoError(err)
	tracing.Select("fontloc.fonts").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *InfoTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *InfoTestEnviron) TestFontTypeInfo() {
	fti := FontType(env.goreg)
	env.Equal("TrueType", fti, "expected font type of test font to be TrueType")
	env.Equal("<empty>", FontType(nil))
}

func (env *InfoTestEnviron) TestGeneralInfo() {
	ref, err := sfnt.Parse(goregular.TTF)
	env.Require().NoError(err)
	var buf sfnt.Buffer
	full, err := ref.Name(&buf, sfnt.NameIDFull)
	env.Require().NoError(err)
	ps, err := ref.Name(&buf, sfnt.NameIDPostScript)
	env.Require().NoError(err)
	env.Equal("Go", FamilyName(env.goreg))
	env.Equal(full, FullName(env.goreg))
	env.Equal(ps, PostScriptName(env.goreg))
	env.Equal("Regular", SubfamilyName(env.goreg))
}

func (env *InfoTestEnviron) TestSyntheticNames() {
	env.Equal("Sample Mincho", FamilyName(env.mincho))
	env.Equal("Sample Mincho Regular", FullName(env.mincho))
	env.Equal("SampleMincho-Regular", PostScriptName(env.mincho))
	names := LocalizedNames(env.mincho, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
	env.Equal("サンプル明朝", names[language.MustParse("ja-JP")])
	env.Equal("样本明朝", names[language.MustParse("zh-CN")])
	env.Equal("Sample Mincho", names[language.AmericanEnglish])
	env.Equal("Sample Mincho", names[language.English]) // Macintosh record
	env.Len(names, 4)
}

func (env *InfoTestEnviron) TestLayoutInfo() {
	env.Empty(LayoutTables(env.mincho))
	vert := fonttest.Sample{Family: "V", Kana: true, Vertical: []string{"vert"}}
	otf, err := ot.Parse(vert.Bytes())
	env.Require().NoError(err)
	env.Equal([]string{"GSUB"}, LayoutTables(otf))
	env.True(FontSupportsScript(otf, ot.T("kana")))
	env.False(FontSupportsScript(otf, ot.T("latn")))
	env.False(FontSupportsScript(env.mincho, ot.T("kana")))
}

// --- Name table details ----------------------------------------------------

func parseNames(t *testing.T, names []fonttest.Name, langTags ...string) *ot.Font {
	otf, err := ot.Parse(fonttest.NewFont().With("name", fonttest.NameTable(names, langTags...)).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	return otf
}

func TestNameTableFormat1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	otf := parseNames(t, []fonttest.Name{
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x8000, NameID: 1, Value: "Schrift"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x8001, NameID: 1, Value: "Police"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x8009, NameID: 1, Value: "Dangling"},
	}, "de-AT", "fr-CA")
	names := LocalizedNames(otf, sfnt.NameIDFamily)
	if len(names) != 2 {
		t.Fatalf("expected 2 localized names, have %v", names)
	}
	if names[language.MustParse("de-AT")] != "Schrift" || names[language.MustParse("fr-CA")] != "Police" {
		t.Errorf("unexpected names from language-tag records: %v", names)
	}
}

func TestNamePriorityAndEncodings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	otf := parseNames(t, []fonttest.Name{
		fonttest.WinName(0x0407, 1, "Legacy"),
		fonttest.WinName(0x0407, 16, "Typographisch"),
		{PlatformID: 1, EncodingID: 1, LanguageID: 11, NameID: 1, Value: "ゴシック"},
		{PlatformID: 0, EncodingID: 3, LanguageID: 0, NameID: 4, Value: "Neutral Name"},
		{PlatformID: 3, EncodingID: 1, LanguageID: 0x7777, NameID: 1, Value: "Unknown"},
		{PlatformID: 7, EncodingID: 1, LanguageID: 0x0409, NameID: 1, Value: "Unsupported"},
	})
	names := LocalizedNames(otf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
	if names[language.MustParse("de-DE")] != "Typographisch" {
		t.Errorf("expected typographic family to win, have %q", names[language.MustParse("de-DE")])
	}
	if names[language.Japanese] != "ゴシック" {
		t.Errorf("expected Shift-JIS name to be decoded, have %q", names[language.Japanese])
	}
	if len(names) != 2 {
		t.Errorf("expected 2 names, have %v", names)
	}
	if n := FullName(otf); n != "Neutral Name" {
		t.Errorf("expected language-neutral full name, have %q", n)
	}
	count := 0
	for key := range NamesRange(otf) {
		if key.Platform == 7 {
			t.Errorf("record of unsupported platform yielded")
		}
		count++
	}
	if count != 5 {
		t.Errorf("expected 5 decodable records, have %d", count)
	}
}

func TestBrokenNameTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.fonts")
	defer teardown()
	//
	otf, err := ot.Parse(fonttest.NewFont().With("name", []byte{0, 0, 0, 9, 0, 0}).Bytes())
	if err != nil {
		t.Fatal(err)
	}
	for range NamesRange(otf) {
		t.Errorf("expected no names from broken table")
	}
	if FamilyName(otf) != "" {
		t.Errorf("expected empty family name")
	}
	if len(LocalizedNames(nil, sfnt.NameIDFamily)) != 0 {
		t.Errorf("expected no names for nil font")
	}
}
