package fontcatalog

import (
	"os"
	"runtime"
	"sync"

	"github.com/npillmayer/fontloc/core/font"
	"github.com/npillmayer/fontloc/core/locate/resources"
	"github.com/npillmayer/schuko"
	"golang.org/x/text/language"
)

// SystemProvider scans the platform's font directories (and the directories
// configured as 'font-dirs') and analyzes every font file found.
type SystemProvider struct {
	conf       schuko.Configuration
	files      func(schuko.Configuration) []string
	candidates []language.Tag
}

// NewSystemProvider creates a provider for the font files installed on the
// system. conf may be nil.
func NewSystemProvider(conf schuko.Configuration) *SystemProvider {
	return &SystemProvider{
		conf:       conf,
		files:      resources.SystemFontFiles,
		candidates: CandidateLanguages(conf),
	}
}

// Name returns "system".
func (sp *SystemProvider) Name() string {
	return "system"
}

// Faces analyzes all font files found. Files which cannot be read or parsed
// are skipped. The order of faces follows the order of files.
func (sp *SystemProvider) Faces() ([]FaceInfo, error) {
	files := sp.files(sp.conf)
	results := make([][]FaceInfo, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = sp.analyzeFile(files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	var faces []FaceInfo
	for _, r := range results {
		faces = append(faces, r...)
	}
	tracer().Infof("system font scan found %d faces in %d files", len(faces), len(files))
	return faces, nil
}

func (sp *SystemProvider) analyzeFile(path string) []FaceInfo {
	binary, err := os.ReadFile(path)
	if err != nil {
		tracer().Infof("cannot read font file %s: %v", path, err)
		return nil
	}
	faces, err := Analyze(binary, path, sp.candidates)
	if err != nil {
		tracer().Debugf("skipping font file %s: %v", path, err)
	}
	return faces
}

// Load loads the font file of a face.
func (sp *SystemProvider) Load(fi FaceInfo) (*font.ScalableFont, error) {
	return loadFontFile(fi)
}

var _ Provider = &SystemProvider{}
