package localized

import (
	"sync"

	"github.com/npillmayer/fontloc/core/font/fontregistry"
	"golang.org/x/text/language"
)

var (
	defaultMx    sync.Mutex
	defaultNames *Names
)

// Default returns the name service over the default catalog of the global
// provider registry. It is created on first successful use.
func Default() (*Names, error) {
	defaultMx.Lock()
	defer defaultMx.Unlock()
	if defaultNames != nil {
		return defaultNames, nil
	}
	c, err := fontregistry.Default(nil)
	if err != nil {
		return nil, err
	}
	defaultNames = New(c)
	return defaultNames, nil
}

// SetDefault replaces the name service used by the package-level functions.
// Passing nil restores the registry's default.
func SetDefault(n *Names) {
	defaultMx.Lock()
	defer defaultMx.Unlock()
	defaultNames = n
}

// AvailableFamilyNames calls AvailableFamilyNames of the default name service.
func AvailableFamilyNames(langs ...language.Tag) ([]string, error) {
	n, err := Default()
	if err != nil {
		return nil, err
	}
	return n.AvailableFamilyNames(langs...)
}

// LocalizedFamilyName calls LocalizedFamilyName of the default name service.
// If no catalog is available, family is returned.
func LocalizedFamilyName(family string, lang language.Tag) string {
	n, err := Default()
	if err != nil {
		return family
	}
	return n.LocalizedFamilyName(family, lang)
}

// LocalizedFontName calls LocalizedFontName of the default name service.
// If no catalog is available, face is returned.
func LocalizedFontName(face string, lang language.Tag) string {
	n, err := Default()
	if err != nil {
		return face
	}
	return n.LocalizedFontName(face, lang)
}
