package resources

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko"
)

var fontExtensions = []string{".ttf", ".otf", ".ttc", ".otc"}

// IsFontFile checks the extension of a file for one of the OpenType font
// file types: *.ttf, *.otf, *.ttc, *.otc.
func IsFontFile(path string) bool {
	return slices.Contains(fontExtensions, strings.ToLower(filepath.Ext(path)))
}

// SystemFontFiles returns the font files installed on the system. It uses
// the platform specific font directories (as known to go-findfont), plus
// the directories configured as 'font-dirs'. The result is sorted and free
// of duplicates.
func SystemFontFiles(conf schuko.Configuration) []string {
	var files []string
	for _, path := range findfont.List() {
		if IsFontFile(path) {
			files = append(files, path)
		}
	}
	for _, dir := range filepath.SplitList(confString(conf, "font-dirs")) {
		files = append(files, fontFilesIn(dir)...)
	}
	slices.Sort(files)
	files = slices.Compact(files)
	tracer().Debugf("found %d font files on the system", len(files))
	return files
}

func fontFilesIn(dir string) []string {
	var files []string
	dir = expandUser(dir)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			tracer().Debugf("skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsFontFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		tracer().Infof("cannot scan font directory %s: %v", dir, err)
	}
	return files
}

func expandUser(dir string) string {
	if !strings.HasPrefix(dir, "~") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, dir[1:])
}
