package fontcatalog

import (
	"sync"

	"github.com/npillmayer/fontloc/core/font"
	"github.com/npillmayer/fontloc/core/locate/resources"
	"github.com/npillmayer/schuko"
	"golang.org/x/text/language"
)

// FontConfigProvider lists the faces known to fontconfig. Names, localizations
// and supported languages are taken from fontconfig; font files are read only
// when a face is loaded.
type FontConfigProvider struct {
	conf   schuko.Configuration
	list   func(schuko.Configuration, bool) ([]resources.FontConfigEntry, error)
	mx     sync.Mutex
	update bool
}

// NewFontConfigProvider creates a provider for fontconfig. conf may be nil.
//
// The first call to Faces always runs fc-list. The on-disk copy of its output
// is re-used only by this provider, until it is invalidated.
func NewFontConfigProvider(conf schuko.Configuration) *FontConfigProvider {
	return &FontConfigProvider{conf: conf, list: resources.FontConfigList, update: true}
}

// Name returns "fontconfig".
func (fcp *FontConfigProvider) Name() string {
	return "fontconfig"
}

// Invalidate makes the next call to Faces run fc-list again instead of using
// its cached output.
func (fcp *FontConfigProvider) Invalidate() {
	fcp.mx.Lock()
	defer fcp.mx.Unlock()
	fcp.update = true
}

// Faces lists the faces known to fontconfig.
func (fcp *FontConfigProvider) Faces() ([]FaceInfo, error) {
	fcp.mx.Lock()
	update := fcp.update
	fcp.update = false
	fcp.mx.Unlock()
	entries, err := fcp.list(fcp.conf, update)
	if err != nil {
		return nil, err
	}
	faces := make([]FaceInfo, 0, len(entries))
	for _, e := range entries {
		if !resources.IsFontFile(e.File) { // e.g., Type 1 or bitmap fonts
			continue
		}
		faces = append(faces, fontConfigFace(e))
	}
	tracer().Infof("fontconfig lists %d OpenType faces", len(faces))
	return faces, nil
}

func fontConfigFace(e resources.FontConfigEntry) FaceInfo {
	fi := FaceInfo{
		PostScriptName: e.PostScriptName,
		StyleName:      e.Style,
		Path:           e.File,
		Index:          e.Index,
		Families:       make(map[language.Tag]string),
		Faces:          make(map[language.Tag]string),
	}
	fi.Family = localize(e.Families, fi.Families, &fi.Aliases)
	var faceAliases []string
	fi.Face = localize(e.FullNames, fi.Faces, &faceAliases)
	if fi.StyleName == "" {
		fi.StyleName = "Regular"
	}
	if fi.Face == "" {
		fi.Face = fi.Family + " " + fi.StyleName
	}
	fi.Style, fi.Weight = GuessStyleAndWeight(fi.StyleName)
	for _, l := range e.Languages {
		if tag, err := language.Parse(l); err == nil {
			fi.Languages = append(fi.Languages, tag)
		}
	}
	return fi
}

// localize distributes fontconfig names to a map of localized names. The
// canonical name is the first English name, or the first name if none is
// English. Names for an already occupied language become aliases.
func localize(names []resources.LocalizedString, m map[language.Tag]string, aliases *[]string) string {
	canonical := ""
	for _, n := range names {
		tag, err := language.Parse(n.Lang)
		if n.Lang == "" || err != nil {
			*aliases = append(*aliases, n.Value)
			continue
		}
		if _, ok := m[tag]; ok {
			*aliases = append(*aliases, n.Value)
			continue
		}
		m[tag] = n.Value
		if base, _ := tag.Base(); base.String() == "en" && canonical == "" {
			canonical = n.Value
		}
	}
	if canonical == "" && len(names) > 0 {
		canonical = names[0].Value
	}
	return canonical
}

// Load loads the font file of a face.
func (fcp *FontConfigProvider) Load(fi FaceInfo) (*font.ScalableFont, error) {
	return loadFontFile(fi)
}

var _ Provider = &FontConfigProvider{}
var _ Invalidator = &FontConfigProvider{}
