package fontcatalog

import (
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/derekparker/trie"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/text/language"
)

// Family groups the faces of a catalog sharing a canonical family name.
type Family struct {
	Name      string                  // canonical name
	Localized map[language.Tag]string // localized names, merged from all faces
	Faces     []*FaceInfo
	Languages []language.Tag // union of the faces' languages
	langs     *matcher
	names     *matcher
}

// Supports returns true if a face of the family is suitable for a language.
func (fam *Family) Supports(lang language.Tag) bool {
	_, ok := fam.langs.match(lang)
	return ok
}

// LocalizedName returns the family name in a language, if the family carries
// a localization for it.
func (fam *Family) LocalizedName(lang language.Tag) (string, bool) {
	if tag, ok := fam.names.match(lang); ok {
		return fam.Localized[tag], true
	}
	return "", false
}

// Regular returns the face of the family closest to a regular upright face.
func (fam *Family) Regular() *FaceInfo {
	return ClosestMatch(fam.Faces, xfont.StyleNormal, xfont.WeightNormal)
}

// LocalizedFaceName returns the name of a face in a language, if the face
// carries a localization for it.
func LocalizedFaceName(fi *FaceInfo, lang language.Tag) (string, bool) {
	tags := make([]language.Tag, 0, len(fi.Faces))
	for tag := range fi.Faces {
		tags = append(tags, tag)
	}
	sortTags(tags)
	if tag, ok := MatchLanguage(tags, lang); ok {
		return fi.Faces[tag], true
	}
	return "", false
}

// nameRef is the payload of the name indexes: a display name and the entity
// it denotes.
type nameRef struct {
	display string
	family  *Family
	face    *FaceInfo
}

// Catalog is a read-through view of the faces of a provider.
//
// The list of faces is requested from the provider on first use and kept until
// Refresh is called. A Catalog is safe for concurrent use.
type Catalog struct {
	provider Provider
	mx       sync.RWMutex
	loaded   bool
	faces    []FaceInfo
	families []*Family // sorted by name
	famIndex *trie.Trie
	faceInx  *trie.Trie
	gen      atomic.Uint64 // incremented by Refresh
}

// NewCatalog creates a catalog for a provider. The provider is not queried
// before the catalog is first used.
func NewCatalog(p Provider) *Catalog {
	return &Catalog{provider: p}
}

// Provider returns the catalog's provider.
func (c *Catalog) Provider() Provider {
	return c.provider
}

// Refresh drops all data of the catalog. The next query will ask the provider
// again.
func (c *Catalog) Refresh() {
	c.mx.Lock()
	defer c.mx.Unlock()
	c.loaded = false
	c.gen.Add(1)
	c.faces, c.families = nil, nil
	c.famIndex, c.faceInx = nil, nil
	if inv, ok := c.provider.(Invalidator); ok {
		inv.Invalidate()
	}
	tracer().Debugf("catalog %s refreshed", c.provider.Name())
}

// Generation counts the calls to Refresh. Clients holding data derived from
// the catalog compare generations to find out if their data is outdated.
func (c *Catalog) Generation() uint64 {
	return c.gen.Load()
}

// withData runs f with the catalog's data loaded and read-locked.
func (c *Catalog) withData(f func()) error {
	c.mx.RLock()
	if c.loaded {
		defer c.mx.RUnlock()
		f()
		return nil
	}
	c.mx.RUnlock()
	c.mx.Lock()
	if !c.loaded {
		if err := c.load(); err != nil {
			c.mx.Unlock()
			return err
		}
	}
	c.mx.Unlock()
	return c.withData(f)
}

// load queries the provider and builds the indexes. Must be called with the
// write lock held.
func (c *Catalog) load() error {
	faces, err := c.provider.Faces()
	if err != nil {
		tracer().Errorf("font catalog %s: %v", c.provider.Name(), err)
		return PlatformQueryError(c.provider.Name(), err)
	}
	c.faces = faces
	c.famIndex, c.faceInx = trie.New(), trie.New()
	byName := make(map[string]*Family)
	for i := range c.faces {
		fi := &c.faces[i]
		key := font.NormalizeFontname(fi.Family)
		fam, ok := byName[key]
		if !ok {
			fam = &Family{Name: fi.Family, Localized: make(map[language.Tag]string)}
			byName[key] = fam
			c.families = append(c.families, fam)
		}
		fam.Faces = append(fam.Faces, fi)
		for tag, name := range fi.Families {
			if _, ok := fam.Localized[tag]; !ok {
				fam.Localized[tag] = name
			}
		}
		for _, l := range fi.Languages {
			if !slices.Contains(fam.Languages, l) {
				fam.Languages = append(fam.Languages, l)
			}
		}
	}
	sort.Slice(c.families, func(i, j int) bool { return c.families[i].Name < c.families[j].Name })
	// canonical names take precedence over localized names and aliases
	for _, fam := range c.families {
		c.index(c.famIndex, fam.Name, nameRef{display: fam.Name, family: fam})
	}
	for _, fam := range c.families {
		tags := make([]language.Tag, 0, len(fam.Localized))
		for tag := range fam.Localized {
			tags = append(tags, tag)
		}
		sortTags(tags)
		for _, tag := range tags {
			name := fam.Localized[tag]
			c.index(c.famIndex, name, nameRef{display: name, family: fam})
		}
		fam.names = newMatcher(tags)
		fam.langs = newMatcher(fam.Languages)
		for _, fi := range fam.Faces {
			for _, alias := range fi.Aliases {
				c.index(c.famIndex, alias, nameRef{display: alias, family: fam})
			}
		}
	}
	for i := range c.faces {
		fi := &c.faces[i]
		c.index(c.faceInx, fi.Face, nameRef{display: fi.Face, face: fi})
	}
	for i := range c.faces {
		fi := &c.faces[i]
		tags := make([]language.Tag, 0, len(fi.Faces))
		for tag := range fi.Faces {
			tags = append(tags, tag)
		}
		sortTags(tags)
		for _, tag := range tags {
			c.index(c.faceInx, fi.Faces[tag], nameRef{display: fi.Faces[tag], face: fi})
		}
		if fi.PostScriptName != "" {
			c.index(c.faceInx, fi.PostScriptName, nameRef{display: fi.PostScriptName, face: fi})
		}
	}
	c.loaded = true
	tracer().Infof("font catalog %s has %d families, %d faces", c.provider.Name(),
		len(c.families), len(c.faces))
	return nil
}

func (c *Catalog) index(t *trie.Trie, name string, ref nameRef) {
	key := font.NormalizeFontname(name)
	if key == "" {
		return
	}
	if _, ok := t.Find(key); ok {
		return // first one wins
	}
	t.Add(key, ref)
}

func lookupName(t *trie.Trie, name string) (nameRef, bool) {
	if t == nil {
		return nameRef{}, false
	}
	node, ok := t.Find(font.NormalizeFontname(name))
	if !ok {
		return nameRef{}, false
	}
	ref, ok := node.Meta().(nameRef)
	return ref, ok
}

// Faces returns all faces of the catalog.
func (c *Catalog) Faces() ([]FaceInfo, error) {
	var faces []FaceInfo
	err := c.withData(func() {
		faces = make([]FaceInfo, len(c.faces))
		copy(faces, c.faces)
	})
	return faces, err
}

// Families returns the canonical names of all families suitable for at least
// one of langs, sorted and free of duplicates. If langs is empty, all families
// are returned.
func (c *Catalog) Families(langs ...language.Tag) ([]string, error) {
	set := treeset.NewWithStringComparator()
	err := c.withData(func() {
		for _, fam := range c.families {
			if len(langs) == 0 {
				set.Add(fam.Name)
				continue
			}
			for _, l := range langs {
				if fam.Supports(l) {
					set.Add(fam.Name)
					break
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return names, nil
}

// Family returns a family by its canonical name, any of its localized names,
// or an alias.
func (c *Catalog) Family(name string) (*Family, error) {
	var fam *Family
	err := c.withData(func() {
		if ref, ok := lookupName(c.famIndex, name); ok {
			fam = ref.family
		}
	})
	if err != nil {
		return nil, err
	}
	if fam == nil {
		return nil, core.WrapError(ErrUnknownName, core.EMISSING, "font family not found: %s", name)
	}
	return fam, nil
}

// Face returns a face by its canonical name, any of its localized names, or
// its PostScript name.
func (c *Catalog) Face(name string) (*FaceInfo, error) {
	var fi *FaceInfo
	err := c.withData(func() {
		if ref, ok := lookupName(c.faceInx, name); ok {
			fi = ref.face
		}
	})
	if err != nil {
		return nil, err
	}
	if fi == nil {
		return nil, core.WrapError(ErrUnknownName, core.EMISSING, "font face not found: %s", name)
	}
	return fi, nil
}

// Resolve finds the face denoted by a name, which may be a face name, a
// PostScript name or a family name. For families, the regular face is
// selected.
func (c *Catalog) Resolve(name string) (*FaceInfo, error) {
	fi, err := c.Face(name)
	if err == nil || IsPlatformQueryError(err) {
		return fi, err
	}
	fam, err := c.Family(name)
	if err != nil {
		return nil, err
	}
	return fam.Regular(), nil
}

// Load resolves a name (see Resolve) and loads the font of the face.
func (c *Catalog) Load(name string) (*font.ScalableFont, *FaceInfo, error) {
	fi, err := c.Resolve(name)
	if err != nil {
		return nil, nil, err
	}
	f, err := c.provider.Load(*fi)
	if err != nil {
		return nil, fi, err
	}
	return f, fi, nil
}

// Complete returns the family names (canonical, localized or aliases)
// starting with prefix, sorted and free of duplicates. Matching is tolerant
// in the same way as name lookups are.
func (c *Catalog) Complete(prefix string) ([]string, error) {
	set := treeset.NewWithStringComparator()
	err := c.withData(func() {
		key := font.NormalizeFontname(prefix)
		var keys []string
		if key == "" {
			keys = c.famIndex.Keys()
		} else {
			keys = c.famIndex.PrefixSearch(key)
		}
		for _, k := range keys {
			if ref, ok := lookupName(c.famIndex, k); ok {
				set.Add(ref.display)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		names = append(names, v.(string))
	}
	return names, nil
}

func sortTags(tags []language.Tag) {
	slices.SortFunc(tags, func(a, b language.Tag) int {
		return strings.Compare(a.String(), b.String())
	})
}
