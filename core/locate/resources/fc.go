package resources

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/schuko"
)

// ErrNoFontConfig is returned if fontconfig is neither configured nor
// installed.
var ErrNoFontConfig = errors.New("fontconfig not available")

// LocalizedString is a string value together with the language it is in.
// Lang is empty if fontconfig did not report a language.
type LocalizedString struct {
	Lang  string
	Value string
}

// FontConfigEntry is a font face, as reported by fontconfig.
type FontConfigEntry struct {
	File           string            // absolute path of the font file
	Index          int               // index of the face within a collection
	Families       []LocalizedString // family names, the first one is the canonical one
	FullNames      []LocalizedString // full face names
	PostScriptName string
	Style          string
	Languages      []string // RFC 3066 languages the face supports, as of fontconfig
}

// fcListFormat lets fc-list print one line per face, with tab-separated fields.
// Values of multi-valued fields are separated by commas.
const fcListFormat = `%{file}\t%{index}\t%{family}\t%{familylang}\t%{fullname}\t%{fullnamelang}\t%{postscriptname}\t%{style}\t%{lang}\n`

const fcListCacheFile = "fc-list.txt"

func findFontConfigBinary(conf schuko.Configuration) (string, error) {
	fcpath := confString(conf, "fontconfig")
	if fcpath == "" {
		p, err := exec.LookPath("fc-list")
		if err != nil {
			tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
			return "", ErrNoFontConfig
		}
		fcpath = p
	}
	if !filepath.IsAbs(fcpath) {
		return "", core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
	}
	if fi, err := os.Stat(fcpath); err != nil || fi.IsDir() || (fi.Mode().Perm()&0100) == 0 {
		if err == nil {
			err = ErrNoFontConfig
		}
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
	}
	return fcpath, nil
}

// FontConfigAvailable returns true if a usable fc-list binary is configured
// or may be found in $PATH.
func FontConfigAvailable(conf schuko.Configuration) bool {
	_, err := findFontConfigBinary(conf)
	return err == nil
}

// cacheFontConfigList copies the output of fc-list to the cache directory,
// if not already present or if update is set. It returns the name of the
// cached file.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, error) {
	dir, err := CacheDirPath(conf, "fontconfig")
	if err != nil {
		return "", err
	}
	fcListFilename := filepath.Join(dir, fcListCacheFile)
	if _, err := os.Stat(fcListFilename); err == nil && !update {
		return fcListFilename, nil // fontlist already exists
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	fccmd := exec.Command(fcpath, "--format", fcListFormat)
	fccmd.Stdout = &out
	if err = fccmd.Run(); err != nil {
		return "", core.WrapError(err, core.EUNAVAILABLE, "fc-list failed: %s", fcpath)
	}
	// write the complete list in one go to not leave a truncated cache behind
	if err = os.WriteFile(fcListFilename, out.Bytes(), 0644); err != nil {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
	}
	tracer().Infof("cached fontconfig list in %s", fcListFilename)
	return fcListFilename, nil
}

// FontConfigList returns the faces known to fontconfig. fontconfig is
// configured by setting the absolute path of the 'fc-list' binary as
// key 'fontconfig'; if not set, 'fc-list' is searched in $PATH.
//
// FontConfigList copies the output of fc-list to the user's cache directory
// once. Subsequent calls will use the cached entries, unless update is set.
//
// We call the binary instead of using the C library because of possible version
// issues.
func FontConfigList(conf schuko.Configuration, update bool) ([]FontConfigEntry, error) {
	fclist, err := cacheFontConfigList(conf, update)
	if err != nil {
		return nil, err
	}
	fc, err := os.Open(fclist)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
	}
	defer fc.Close()
	entries, err := ParseFontConfigList(fc)
	if err != nil {
		return entries, core.WrapError(err, core.EINVALID,
			"encountered a problem during reading of fontconfig font list: %s", fclist)
	}
	return entries, nil
}

// ParseFontConfigList reads lines in the format produced by
// `fc-list --format` with the field list of this package.
// Malformed lines are skipped.
func ParseFontConfigList(r io.Reader) ([]FontConfigEntry, error) {
	var entries []FontConfigEntry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // lang sets make long lines
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok := parseFontConfigLine(line)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	if skipped > 0 {
		tracer().Infof("skipped %d malformed fontconfig entries", skipped)
	}
	return entries, scanner.Err()
}

func parseFontConfigLine(line string) (FontConfigEntry, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 || fields[0] == "" {
		return FontConfigEntry{}, false
	}
	entry := FontConfigEntry{
		File:           fields[0],
		Families:       zipLanguages(splitValues(fields[2]), splitValues(fields[3])),
		FullNames:      zipLanguages(splitValues(fields[4]), splitValues(fields[5])),
		PostScriptName: fields[6],
	}
	if fields[1] != "" {
		inx, err := strconv.Atoi(fields[1])
		if err != nil || inx < 0 {
			return FontConfigEntry{}, false
		}
		entry.Index = inx & 0xffff // upper bits denote named instances of variable fonts
	}
	if styles := splitValues(fields[7]); len(styles) > 0 {
		entry.Style = styles[0]
	}
	if fields[8] != "" {
		entry.Languages = strings.Split(fields[8], "|")
	}
	if len(entry.Families) == 0 {
		return FontConfigEntry{}, false
	}
	return entry, true
}

// splitValues splits a multi-valued fontconfig field at commas. Commas and
// backslashes inside values are escaped by a backslash.
func splitValues(s string) []string {
	if s == "" {
		return nil
	}
	var values []string
	var v strings.Builder
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			v.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ',':
			values = append(values, v.String())
			v.Reset()
		default:
			v.WriteRune(r)
		}
	}
	return append(values, v.String())
}

func zipLanguages(values, langs []string) []LocalizedString {
	l := make([]LocalizedString, 0, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		ls := LocalizedString{Value: v}
		if i < len(langs) {
			ls.Lang = langs[i]
		}
		l = append(l, ls)
	}
	return l
}
