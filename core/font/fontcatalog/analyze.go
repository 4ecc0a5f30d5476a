package fontcatalog

import (
	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"github.com/npillmayer/fontloc/core/font/opentype/otquery"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/language"
)

// Analyze reads the names and language support of all faces contained in a
// font file. path is recorded as the faces' location. Faces without a family
// name are skipped.
func Analyze(binary []byte, path string, candidates []language.Tag) ([]FaceInfo, error) {
	n := ot.CollectionSize(binary)
	if n == 0 {
		return nil, core.Error(core.EINVALID, "not an OpenType font file: %s", path)
	}
	faces := make([]FaceInfo, 0, n)
	for i := range n {
		otf, err := ot.ParseCollection(binary, i)
		if err != nil {
			tracer().Infof("cannot read font #%d of %s: %v", i, path, err)
			continue
		}
		fi := FaceInfo{
			Family:         otquery.FamilyName(otf),
			Face:           otquery.FullName(otf),
			PostScriptName: otquery.PostScriptName(otf),
			StyleName:      otquery.SubfamilyName(otf),
			Path:           path,
			Index:          i,
			Families:       otquery.LocalizedNames(otf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily),
			Faces:          otquery.LocalizedNames(otf, sfnt.NameIDFull),
			Languages:      otquery.SupportedLanguages(otf, candidates),
		}
		if fi.Family == "" {
			tracer().Infof("font #%d of %s has no family name, skipping", i, path)
			continue
		}
		if fi.StyleName == "" {
			fi.StyleName = "Regular"
		}
		if fi.Face == "" {
			fi.Face = fi.Family + " " + fi.StyleName
		}
		fi.Style, fi.Weight = GuessStyleAndWeight(fi.StyleName)
		faces = append(faces, fi)
	}
	if len(faces) == 0 {
		return nil, core.Error(core.EINVALID, "no usable font in %s", path)
	}
	return faces, nil
}
