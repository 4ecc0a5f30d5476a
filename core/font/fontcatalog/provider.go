package fontcatalog

import (
	"os"
	"strings"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
	"golang.org/x/text/language"
)

// FaceInfo describes a single font face of a catalog.
type FaceInfo struct {
	Family         string                  // canonical family name
	Face           string                  // canonical full name of the face
	PostScriptName string                  // may be empty
	StyleName      string                  // sub-family name, e.g. "Bold Italic"
	Style          xfont.Style             // derived from StyleName
	Weight         xfont.Weight            // derived from StyleName
	Path           string                  // file path or a provider specific locator
	Index          int                     // index of the face within a collection
	Families       map[language.Tag]string // localized family names
	Faces          map[language.Tag]string // localized face names
	Aliases        []string                // additional family names, language unknown
	Languages      []language.Tag          // languages the face is suitable for
}

// Provider is a source of font faces.
//
// Faces is called by catalogs to list the faces available. Implementations
// report failures of the underlying platform service as errors; catalogs will
// wrap them as PlatformQueryError.
type Provider interface {
	Name() string
	Faces() ([]FaceInfo, error)
	Load(FaceInfo) (*font.ScalableFont, error)
}

// Invalidator is implemented by providers which hold cached data. Invalidate
// is called when a catalog is refreshed.
type Invalidator interface {
	Invalidate()
}

// DefaultLanguages is the list of languages checked for support when a font
// file is analyzed.
var DefaultLanguages = []language.Tag{
	language.English, language.German, language.French, language.Spanish,
	language.Italian, language.Portuguese, language.Dutch, language.Swedish,
	language.Danish, language.Finnish, language.Polish, language.Czech,
	language.Turkish, language.Vietnamese, language.Russian, language.Ukrainian,
	language.Greek, language.Hebrew, language.Arabic, language.Persian,
	language.Thai, language.Hindi, language.Japanese, language.Korean,
	language.SimplifiedChinese, language.TraditionalChinese,
}

// CandidateLanguages returns the languages to check fonts for. They are taken
// from configuration key 'font-languages' as a comma-separated list of BCP 47
// tags, or default to DefaultLanguages.
func CandidateLanguages(conf schuko.Configuration) []language.Tag {
	if conf == nil || conf.GetString("font-languages") == "" {
		return DefaultLanguages
	}
	var langs []language.Tag
	for _, l := range strings.Split(conf.GetString("font-languages"), ",") {
		tag, err := language.Parse(strings.TrimSpace(l))
		if err != nil {
			tracer().Errorf("ignoring invalid language in configuration: %q", l)
			continue
		}
		langs = append(langs, tag)
	}
	if len(langs) == 0 {
		return DefaultLanguages
	}
	return langs
}

// fontFromBinary wraps the binary of a face. Fonts which
// golang.org/x/image/font/sfnt does not accept (e.g., fonts without outlines)
// are delivered without the SFNT part; their OpenType tables are still usable.
func fontFromBinary(binary []byte, fi FaceInfo) *font.ScalableFont {
	f, err := font.ParseOpenTypeFont(binary, fi.Index)
	if err != nil {
		tracer().Debugf("font %s is not accepted by sfnt: %v", fi.Face, err)
		f = &font.ScalableFont{Binary: binary, Index: fi.Index}
	}
	f.Fontname = fi.Face
	f.Filepath = fi.Path
	return f
}

// loadFontFile reads the font file of a face.
func loadFontFile(fi FaceInfo) (*font.ScalableFont, error) {
	f, err := font.LoadOpenTypeFont(fi.Path, fi.Index)
	if err == nil {
		f.Fontname = fi.Face
		return f, nil
	}
	if core.Code(err) == core.EMISSING {
		return nil, err
	}
	binary, err := os.ReadFile(fi.Path) // rejected by sfnt, use the raw tables
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fi.Path)
	}
	return fontFromBinary(binary, fi), nil
}
