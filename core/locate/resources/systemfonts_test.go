package resources

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsFontFile(t *testing.T) {
	assert.True(t, IsFontFile("/a/b/Font.TTF"))
	assert.True(t, IsFontFile("x.otc"))
	assert.False(t, IsFontFile("x.woff2"))
	assert.False(t, IsFontFile("ttf"))
}

func TestSystemFontFilesWithConfiguredDirs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.resources")
	defer teardown()
	//
	dir1, dir2 := t.TempDir(), t.TempDir()
	files := []string{
		filepath.Join(dir1, "a.ttf"),
		filepath.Join(dir1, "sub", "b.TTC"),
		filepath.Join(dir2, "c.otf"),
	}
	for _, f := range append(files, filepath.Join(dir1, "readme.txt")) {
		require.NoError(t, os.MkdirAll(filepath.Dir(f), 0755))
		require.NoError(t, os.WriteFile(f, []byte("x"), 0644))
	}
	dirs := strings.Join([]string{dir1, dir2, dir1, filepath.Join(dir2, "missing")},
		string(os.PathListSeparator))
	found := SystemFontFiles(testconfig.Conf{"font-dirs": dirs})
	assert.Subset(t, found, files)
	assert.NotContains(t, found, filepath.Join(dir1, "readme.txt"))
	for i := 1; i < len(found); i++ {
		assert.Less(t, found[i-1], found[i], "expected sorted list without duplicates")
	}
}

func TestCacheDirPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.resources")
	defer teardown()
	//
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)
	t.Setenv("HOME", tmp)
	t.Setenv("LocalAppData", tmp)
	dir, err := CacheDirPath(nil, "fonts", "x")
	require.NoError(t, err)
	assert.Equal(t, DefaultAppKey, filepath.Base(filepath.Dir(filepath.Dir(dir))))
	fi, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
	dir, err = CacheDirPath(testconfig.Conf{"app-key": "myapp"})
	require.NoError(t, err)
	assert.Equal(t, "myapp", filepath.Base(dir))
}
