/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" or "family" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" or "face" is a variant of a typeface with a certain
weight, slant, etc.  An example is "Helvetica Bold".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Font files may contain a single font or a collection of fonts (*.ttc, *.otc).
Fonts inside a collection are addressed by their index.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// tracer writes to trace with key 'fontloc.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.fonts")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF or OTF.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, if loaded from a file
	Index    int        // index of the font within a font collection
	Binary   []byte     // raw data, shared for all fonts of a collection
	SFNT     *sfnt.Font // the font's container; may be nil for synthetic fonts
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
// For font collections, index selects the font within the collection; otherwise
// index has to be 0.
func LoadOpenTypeFont(fontfile string, index int) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez, index)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte, index int) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes, Index: index}
	if IsCollection(fbytes) {
		var c *sfnt.Collection
		if c, err = sfnt.ParseCollection(fbytes); err != nil {
			return nil, core.WrapError(err, core.EINVALID, "cannot parse font collection")
		}
		if index < 0 || index >= c.NumFonts() {
			return nil, core.Error(core.EINVALID, "font collection has no font #%d", index)
		}
		f.SFNT, err = c.Font(index)
	} else {
		if index != 0 {
			return nil, core.Error(core.EINVALID, "font #%d requested from a single-font file", index)
		}
		f.SFNT, err = sfnt.Parse(fbytes)
	}
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse OpenType font")
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	}
	return f, nil
}

// IsCollection is a predicate: does the binary data contain a font collection?
func IsCollection(fbytes []byte) bool {
	return bytes.HasPrefix(fbytes, []byte("ttcf"))
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else failes. It is
// always present. Currently we use Go Sans.
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else failes.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := ParseOpenTypeFont(goregular.TTF, 0)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Filepath = "internal"
	return gofont
}

// --- Names -----------------------------------------------------------------

// NormalizeFontname produces a key for comparing font names. Font names are
// compared case-insensitively (Unicode case folding), full-width and
// half-width forms are folded to their canonical width, and blanks, hyphens
// and underscores are ignored. Thus "Hiragino Sans W3", "HiraginoSans-W3" and
// "hiragino_sans_w3" all have the same key.
func NormalizeFontname(fname string) string {
	fname = width.Fold.String(strings.TrimSpace(fname))
	fname = cases.Fold().String(fname) // Casers are stateful, use a fresh one
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return r
	}, fname)
}
