package fontcatalog

import (
	"sync"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font"
	"golang.org/x/text/language"
)

// MemoryProvider delivers fonts held in memory, e.g. fonts embedded into an
// application binary.
type MemoryProvider struct {
	name       string
	candidates []language.Tag
	mx         sync.RWMutex
	binaries   map[string][]byte
	faces      []FaceInfo
}

// NewMemoryProvider creates an empty provider. candidates are the languages
// fonts will be checked for; if nil, DefaultLanguages are used.
func NewMemoryProvider(name string, candidates []language.Tag) *MemoryProvider {
	if candidates == nil {
		candidates = DefaultLanguages
	}
	return &MemoryProvider{
		name:       name,
		candidates: candidates,
		binaries:   make(map[string][]byte),
	}
}

// Add analyzes a font binary and adds its faces. path is a locator for the
// binary, unique within the provider; adding a binary under an existing
// locator replaces the previous one.
func (mp *MemoryProvider) Add(path string, binary []byte) error {
	faces, err := Analyze(binary, path, mp.candidates)
	if err != nil {
		return err
	}
	mp.mx.Lock()
	defer mp.mx.Unlock()
	if _, ok := mp.binaries[path]; ok {
		kept := mp.faces[:0:0]
		for _, fi := range mp.faces {
			if fi.Path != path {
				kept = append(kept, fi)
			}
		}
		mp.faces = kept
	}
	mp.binaries[path] = binary
	mp.faces = append(mp.faces, faces...)
	return nil
}

// Name returns the name given at creation time.
func (mp *MemoryProvider) Name() string {
	return mp.name
}

// Faces returns the faces of all fonts added, in the order of addition.
func (mp *MemoryProvider) Faces() ([]FaceInfo, error) {
	mp.mx.RLock()
	defer mp.mx.RUnlock()
	faces := make([]FaceInfo, len(mp.faces))
	copy(faces, mp.faces)
	return faces, nil
}

// Load returns a font for a face.
func (mp *MemoryProvider) Load(fi FaceInfo) (*font.ScalableFont, error) {
	mp.mx.RLock()
	binary, ok := mp.binaries[fi.Path]
	mp.mx.RUnlock()
	if !ok {
		return nil, core.WrapError(ErrUnknownName, core.EMISSING, "no font binary %q", fi.Path)
	}
	return fontFromBinary(binary, fi), nil
}

var _ Provider = &MemoryProvider{}
