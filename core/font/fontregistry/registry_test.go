package fontregistry

import (
	"errors"
	"sync"
	"testing"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"github.com/npillmayer/fontloc/core/locate/resources"
	"github.com/npillmayer/fontloc/internal/fonttest"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unavailable(schuko.Configuration) (fontcatalog.Provider, error) {
	return nil, errors.New("not on this machine")
}

func TestRegistryBuiltins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	r := NewRegistry()
	assert.Equal(t, []string{"fontconfig", "gofonts", "system"}, r.Names())
	p, err := r.Provider("gofonts", nil)
	require.NoError(t, err)
	assert.Equal(t, "gofonts", p.Name())
	q, err := r.Provider("gofonts", nil)
	require.NoError(t, err)
	assert.Same(t, p, q, "providers are created once")
	_, err = r.Provider("nonexistent", nil)
	assert.Equal(t, core.EMISSING, core.Code(err))
	r.LogProviderList()
}

func TestRegistryUnavailableFactory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	r := NewRegistry()
	r.Register("broken", unavailable)
	_, err := r.Provider("broken", nil)
	require.Error(t, err)
	assert.True(t, fontcatalog.IsPlatformQueryError(err))
	assert.Equal(t, core.EUNAVAILABLE, core.Code(err))
}

func TestFontConfigFactoryUnavailable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	_, err := fontConfigFactory(testconfig.Conf{"fontconfig": "/does/not/exist/fc-list"})
	require.Error(t, err)
	assert.Equal(t, core.EUNAVAILABLE, core.Code(err))
	assert.True(t, errors.Is(err, resources.ErrNoFontConfig))
	r := NewRegistry()
	_, err = r.Provider("fontconfig", testconfig.Conf{"fontconfig": "/does/not/exist/fc-list"})
	assert.True(t, fontcatalog.IsPlatformQueryError(err))
	assert.True(t, errors.Is(err, resources.ErrNoFontConfig))
}

func TestDefaultChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	assert.Equal(t, platformChain, DefaultChain(nil))
	conf := testconfig.Conf{"font-catalog": " broken , gofonts "}
	assert.Equal(t, []string{"broken", "gofonts"}, DefaultChain(conf))
	chain := DefaultChain(nil)
	chain[0] = "changed"
	assert.NotEqual(t, "changed", platformChain[0])
}

func TestDefaultFallsThroughChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	r := NewRegistry()
	r.Register("broken", unavailable)
	conf := testconfig.Conf{"font-catalog": "broken,gofonts"}
	c, err := r.Default(conf)
	require.NoError(t, err)
	assert.Equal(t, "gofonts", c.Provider().Name())
	c2, err := r.Default(conf)
	require.NoError(t, err)
	assert.Same(t, c, c2, "catalogs are created once")
	//
	_, err = r.Default(testconfig.Conf{"font-catalog": "broken"})
	require.Error(t, err)
	assert.True(t, fontcatalog.IsPlatformQueryError(err))
}

func TestRegisterProviderReplaces(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	r := NewRegistry()
	mp := fontcatalog.NewMemoryProvider("app", nil)
	require.NoError(t, mp.Add("mem:serif.ttf", fonttest.Sample{Family: "Sample Serif"}.Bytes()))
	r.Register("app", unavailable)
	_, err := r.Catalog("app", nil)
	require.Error(t, err)
	r.RegisterProvider(mp)
	c, err := r.Catalog("app", nil)
	require.NoError(t, err)
	families, err := c.Families()
	require.NoError(t, err)
	assert.Equal(t, []string{"Sample Serif"}, families)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontloc.catalog")
	defer teardown()
	//
	r := NewRegistry()
	conf := testconfig.Conf{"font-catalog": "gofonts"}
	var wg sync.WaitGroup
	catalogs := make([]*fontcatalog.Catalog, 8)
	for i := range catalogs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			catalogs[i], _ = r.Default(conf)
		}(i)
	}
	wg.Wait()
	for _, c := range catalogs {
		assert.Same(t, catalogs[0], c)
	}
}
