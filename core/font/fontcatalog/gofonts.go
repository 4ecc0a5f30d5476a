package fontcatalog

import (
	"sync"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/gofont/gosmallcapsitalic"
	"golang.org/x/text/language"
)

const goRegularPath = "gofont:goregular"

var goFonts = []struct {
	path string
	ttf  []byte
}{
	{goRegularPath, goregular.TTF},
	{"gofont:goitalic", goitalic.TTF},
	{"gofont:gomedium", gomedium.TTF},
	{"gofont:gomediumitalic", gomediumitalic.TTF},
	{"gofont:gobold", gobold.TTF},
	{"gofont:gobolditalic", gobolditalic.TTF},
	{"gofont:gomono", gomono.TTF},
	{"gofont:gomonoitalic", gomonoitalic.TTF},
	{"gofont:gomonobold", gomonobold.TTF},
	{"gofont:gomonobolditalic", gomonobolditalic.TTF},
	{"gofont:gosmallcaps", gosmallcaps.TTF},
	{"gofont:gosmallcapsitalic", gosmallcapsitalic.TTF},
}

// GoFontsProvider delivers the Go fonts (https://go.dev/blog/go-fonts), which
// are compiled into the binary. It is always available and serves as the
// provider of last resort.
type GoFontsProvider struct {
	once sync.Once
	mem  *MemoryProvider
}

// NewGoFontsProvider creates a provider for the Go fonts. Fonts are analyzed
// on first use.
func NewGoFontsProvider() *GoFontsProvider {
	return &GoFontsProvider{}
}

func (gp *GoFontsProvider) init() {
	gp.once.Do(func() {
		gp.mem = NewMemoryProvider("gofonts", []language.Tag{
			language.English, language.German, language.French, language.Spanish,
			language.Italian, language.Portuguese, language.Polish, language.Czech,
			language.Turkish, language.Russian, language.Ukrainian, language.Greek,
		})
		for _, f := range goFonts {
			if err := gp.mem.Add(f.path, f.ttf); err != nil {
				core.UserError(err) // cannot happen unless x/image is broken
			}
		}
	})
}

// Name returns "gofonts".
func (gp *GoFontsProvider) Name() string {
	return "gofonts"
}

// Faces lists the Go fonts.
func (gp *GoFontsProvider) Faces() ([]FaceInfo, error) {
	gp.init()
	return gp.mem.Faces()
}

// Load returns the Go font for a face. Go Regular shares its parsed font
// with font.FallbackFont.
func (gp *GoFontsProvider) Load(fi FaceInfo) (*font.ScalableFont, error) {
	gp.init()
	if fi.Path == goRegularPath {
		f := *font.FallbackFont()
		f.Fontname, f.Filepath = fi.Face, fi.Path
		return &f, nil
	}
	return gp.mem.Load(fi)
}

var _ Provider = &GoFontsProvider{}
