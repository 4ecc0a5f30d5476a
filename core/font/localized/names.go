package localized

import (
	"sync"

	"github.com/cloudfoundry/jibber_jabber"
	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"golang.org/x/text/language"
)

// FallbackPolicy selects the name returned when a family or face carries no
// localization for a requested language.
type FallbackPolicy int

const (
	// FallbackInput returns the name as given by the caller.
	FallbackInput FallbackPolicy = iota
	// FallbackSystemLocale returns the localization for the system's locale,
	// if present, else the name as given.
	FallbackSystemLocale
	// FallbackCanonical returns the catalog's canonical name.
	FallbackCanonical
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackInput:
		return "input"
	case FallbackSystemLocale:
		return "system-locale"
	case FallbackCanonical:
		return "canonical"
	}
	return "unknown"
}

// Names is the name service over a font catalog. It is safe for concurrent
// use, given the catalog is.
type Names struct {
	catalog  *fontcatalog.Catalog
	fallback FallbackPolicy
	locale   language.Tag
	detect   sync.Once
}

// Option configures a Names service.
type Option func(*Names)

// WithFallback sets the fallback policy. Default is FallbackInput.
func WithFallback(p FallbackPolicy) Option {
	return func(n *Names) {
		n.fallback = p
	}
}

// WithLocale overrides the system locale used by FallbackSystemLocale.
func WithLocale(tag language.Tag) Option {
	return func(n *Names) {
		n.locale = tag
		n.detect.Do(func() {})
	}
}

// New creates a name service for a catalog.
func New(catalog *fontcatalog.Catalog, opts ...Option) *Names {
	n := &Names{catalog: catalog, locale: language.Und}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Catalog returns the catalog n reads from.
func (n *Names) Catalog() *fontcatalog.Catalog {
	return n.catalog
}

// Locale returns the locale used for FallbackSystemLocale. If not set by
// option, it is detected from the environment once; language.Und is returned
// if detection fails.
func (n *Names) Locale() language.Tag {
	n.detect.Do(func() {
		n.locale = SystemLocale()
	})
	return n.locale
}

// SystemLocale detects the user's locale from the environment (LANG, LC_ALL
// or the platform's settings).
func SystemLocale() language.Tag {
	ietf, err := jibber_jabber.DetectIETF()
	if err != nil {
		tracer().Debugf("cannot detect system locale: %v", err)
		return language.Und
	}
	tag, err := language.Parse(ietf)
	if err != nil {
		tracer().Debugf("system locale %q not recognized: %v", ietf, err)
		return language.Und
	}
	return tag
}

// AvailableFamilyNames returns the names of the font families suitable for
// rendering at least one of langs. If no language is given, all families are
// returned. The result is a set, delivered sorted and free of duplicates.
//
// The only error returned reports that the catalog could not be queried (see
// fontcatalog.IsPlatformQueryError).
func (n *Names) AvailableFamilyNames(langs ...language.Tag) ([]string, error) {
	families, err := n.catalog.Families(langs...)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%d families available for %v", len(families), langs)
	return families, nil
}

// LocalizedFamilyName returns the display name of a family in a language.
// The family may be given by any of its names. If the family is unknown, the
// input is returned unchanged; if it has no name for lang, the fallback policy
// applies.
func (n *Names) LocalizedFamilyName(family string, lang language.Tag) string {
	fam, err := n.catalog.Family(family)
	if err != nil {
		return family
	}
	if name, ok := fam.LocalizedName(lang); ok {
		return name
	}
	switch n.fallback {
	case FallbackSystemLocale:
		if locale := n.Locale(); locale != language.Und {
			if name, ok := fam.LocalizedName(locale); ok {
				return name
			}
		}
	case FallbackCanonical:
		return fam.Name
	}
	return family
}

// LocalizedFontName returns the display name of a face in a language, with
// the same contract as LocalizedFamilyName. The face may be given by its full
// name, a localized name or its PostScript name.
func (n *Names) LocalizedFontName(face string, lang language.Tag) string {
	fi, err := n.catalog.Face(face)
	if err != nil {
		return face
	}
	if name, ok := fontcatalog.LocalizedFaceName(fi, lang); ok {
		return name
	}
	switch n.fallback {
	case FallbackSystemLocale:
		if locale := n.Locale(); locale != language.Und {
			if name, ok := fontcatalog.LocalizedFaceName(fi, locale); ok {
				return name
			}
		}
	case FallbackCanonical:
		return fi.Face
	}
	return face
}

// CompleteFamilyName returns the family names, in any language, starting with
// prefix. An unavailable catalog yields no names.
func (n *Names) CompleteFamilyName(prefix string) []string {
	names, err := n.catalog.Complete(prefix)
	if err != nil {
		return nil
	}
	return names
}
