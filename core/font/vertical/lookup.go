package vertical

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/npillmayer/fontloc/core/font"
	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"github.com/npillmayer/fontloc/core/font/fontregistry"
	"github.com/npillmayer/fontloc/core/font/opentype/ot"
)

// DefaultCacheSize is the number of fonts a Lookup keeps tables for.
const DefaultCacheSize = 16

// Lookup maps glyphs to their vertical alternates, for fonts of a catalog.
// A Lookup is safe for concurrent use.
type Lookup struct {
	catalog *fontcatalog.Catalog
	size    int
	tables  *lru.Cache[string, *table]
	gen     atomic.Uint64 // catalog generation the tables belong to
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithCacheSize sets the number of fonts to cache tables for. Values < 1 are
// ignored.
func WithCacheSize(n int) Option {
	return func(l *Lookup) {
		if n > 0 {
			l.size = n
		}
	}
}

// New creates a vertical substitution lookup for the fonts of a catalog.
func New(catalog *fontcatalog.Catalog, opts ...Option) *Lookup {
	l := &Lookup{catalog: catalog, size: DefaultCacheSize}
	for _, opt := range opts {
		opt(l)
	}
	cache, err := lru.New[string, *table](l.size)
	if err != nil { // size is always positive
		panic(err)
	}
	l.tables = cache
	l.gen.Store(catalog.Generation())
	return l
}

// syncCatalog drops the cached tables if the catalog has been refreshed
// since they were read.
func (l *Lookup) syncCatalog() {
	if g := l.catalog.Generation(); l.gen.Swap(g) != g {
		tracer().Debugf("font catalog refreshed, dropping %d vertical tables", l.tables.Len())
		l.tables.Purge()
	}
}

// table returns the vertical table of a font, or nil if the font is unknown
// or cannot be read.
func (l *Lookup) table(fontName string) *table {
	key := font.NormalizeFontname(fontName)
	if key == "" {
		return nil
	}
	l.syncCatalog()
	gen := l.gen.Load()
	if t, ok := l.tables.Get(key); ok {
		return t
	}
	f, fi, err := l.catalog.Load(fontName)
	if err != nil {
		tracer().Debugf("vertical lookup: %v", err)
		return nil
	}
	otf, err := ot.ParseCollection(f.Binary, fi.Index)
	if err != nil {
		tracer().Errorf("vertical lookup: cannot read font %s: %v", fi.Face, err)
		return nil
	}
	t := newTable(fi.Face, otf)
	if l.catalog.Generation() != gen { // refreshed meanwhile, don't cache
		return t
	}
	if prev, ok, _ := l.tables.PeekOrAdd(key, t); ok {
		return prev
	}
	return t
}

// SubstitutionGlyph returns the glyph to render in place of glyph when
// laying out text vertically with the named font. The font may be given by
// face name, PostScript name, or family name (selecting the regular face).
//
// If the font is unknown, has no vertical substitution features, or has no
// vertical alternate for glyph, glyph is returned unchanged.
func (l *Lookup) SubstitutionGlyph(fontName string, glyph ot.GlyphIndex) ot.GlyphIndex {
	t := l.table(fontName)
	if t == nil {
		return glyph
	}
	return t.substitute(glyph)
}

// SubstitutionForRune returns the vertical glyph for a character in the named
// font. It returns 0 (.notdef) if the font is unknown or does not contain r.
func (l *Lookup) SubstitutionForRune(fontName string, r rune) ot.GlyphIndex {
	t := l.table(fontName)
	if t == nil {
		return 0
	}
	g := t.cmap.Lookup(r)
	if g == 0 {
		return 0
	}
	return t.substitute(g)
}

// Refresh refreshes the catalog and drops all cached font tables. Refreshing
// the catalog directly has the same effect on the tables.
func (l *Lookup) Refresh() {
	l.catalog.Refresh()
	l.syncCatalog()
}

// CachedFonts returns the number of fonts currently cached.
func (l *Lookup) CachedFonts() int {
	l.syncCatalog()
	return l.tables.Len()
}

// --- Default lookup --------------------------------------------------------

var (
	defaultMx     sync.Mutex
	defaultLookup *Lookup
)

// Default returns the lookup over the default catalog of the global provider
// registry. It is created on first successful use.
func Default() (*Lookup, error) {
	defaultMx.Lock()
	defer defaultMx.Unlock()
	if defaultLookup != nil {
		return defaultLookup, nil
	}
	c, err := fontregistry.Default(nil)
	if err != nil {
		return nil, err
	}
	defaultLookup = New(c)
	return defaultLookup, nil
}

// SetDefault replaces the lookup used by the package-level functions.
// Passing nil restores the registry's default.
func SetDefault(l *Lookup) {
	defaultMx.Lock()
	defer defaultMx.Unlock()
	defaultLookup = l
}

// SubstitutionGlyph calls SubstitutionGlyph of the default lookup. If no
// catalog is available, glyph is returned unchanged.
func SubstitutionGlyph(fontName string, glyph ot.GlyphIndex) ot.GlyphIndex {
	l, err := Default()
	if err != nil {
		return glyph
	}
	return l.SubstitutionGlyph(fontName, glyph)
}
