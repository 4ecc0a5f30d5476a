package fontregistry

import (
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/fontloc/core/font/fontcatalog"
	"github.com/npillmayer/fontloc/core/locate/resources"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
)

// Factory creates a provider. Factories return an error if the platform
// service they wrap is not available.
type Factory func(conf schuko.Configuration) (fontcatalog.Provider, error)

// Registry is a type for holding provider factories and the providers and
// catalogs created from them.
type Registry struct {
	sync.Mutex
	factories map[string]Factory
	providers map[string]fontcatalog.Provider
	catalogs  map[string]*fontcatalog.Catalog
}

var globalProviderRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold information about
// font catalog providers.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalProviderRegistry = NewRegistry()
	})
	return globalProviderRegistry
}

// NewRegistry creates a registry with the pre-defined factories
// 'fontconfig', 'system' and 'gofonts'.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		providers: make(map[string]fontcatalog.Provider),
		catalogs:  make(map[string]*fontcatalog.Catalog),
	}
	r.factories["fontconfig"] = fontConfigFactory
	r.factories["system"] = systemFactory
	r.factories["gofonts"] = goFontsFactory
	return r
}

var errNoSystemFonts = errors.New("no font files found in system font directories")

func fontConfigFactory(conf schuko.Configuration) (fontcatalog.Provider, error) {
	if !resources.FontConfigAvailable(conf) {
		return nil, core.ErrorWithCode(resources.ErrNoFontConfig, core.EUNAVAILABLE)
	}
	return fontcatalog.NewFontConfigProvider(conf), nil
}

func systemFactory(conf schuko.Configuration) (fontcatalog.Provider, error) {
	if len(resources.SystemFontFiles(conf)) == 0 {
		return nil, core.ErrorWithCode(errNoSystemFonts, core.EUNAVAILABLE)
	}
	return fontcatalog.NewSystemProvider(conf), nil
}

func goFontsFactory(schuko.Configuration) (fontcatalog.Provider, error) {
	return fontcatalog.NewGoFontsProvider(), nil
}

// Register adds a named factory. An existing factory of the same name, and
// a provider created from it, are replaced.
func (r *Registry) Register(name string, f Factory) {
	if f == nil {
		tracer().Errorf("registry cannot store null factory")
		return
	}
	r.Lock()
	defer r.Unlock()
	r.factories[name] = f
	delete(r.providers, name)
	delete(r.catalogs, name)
}

// RegisterProvider adds a provider instance under its name.
func (r *Registry) RegisterProvider(p fontcatalog.Provider) {
	r.Register(p.Name(), func(schuko.Configuration) (fontcatalog.Provider, error) {
		return p, nil
	})
}

// Names returns the names of all registered factories, sorted.
func (r *Registry) Names() []string {
	r.Lock()
	defer r.Unlock()
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Provider returns the provider of a named factory. Providers are created
// once and cached.
func (r *Registry) Provider(name string, conf schuko.Configuration) (fontcatalog.Provider, error) {
	r.Lock()
	defer r.Unlock()
	return r.provider(name, conf)
}

func (r *Registry) provider(name string, conf schuko.Configuration) (fontcatalog.Provider, error) {
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	f, ok := r.factories[name]
	if !ok {
		return nil, core.Error(core.EMISSING, "no font catalog provider named %q", name)
	}
	p, err := f(conf)
	if err != nil {
		tracer().Infof("font catalog provider %s not available: %v", name, err)
		return nil, fontcatalog.PlatformQueryError(name, err)
	}
	tracer().Debugf("registry creates font catalog provider %s", name)
	r.providers[name] = p
	return p, nil
}

// Catalog returns the catalog for a named provider. Catalogs are created once
// and cached.
func (r *Registry) Catalog(name string, conf schuko.Configuration) (*fontcatalog.Catalog, error) {
	r.Lock()
	defer r.Unlock()
	return r.catalog(name, conf)
}

func (r *Registry) catalog(name string, conf schuko.Configuration) (*fontcatalog.Catalog, error) {
	if c, ok := r.catalogs[name]; ok {
		return c, nil
	}
	p, err := r.provider(name, conf)
	if err != nil {
		return nil, err
	}
	c := fontcatalog.NewCatalog(p)
	r.catalogs[name] = c
	return c, nil
}

// DefaultChain returns the names of factories to try for the default
// provider: the value of configuration key 'font-catalog' (a comma-separated
// list), or the platform's default chain.
func DefaultChain(conf schuko.Configuration) []string {
	if conf != nil {
		if v := conf.GetString("font-catalog"); v != "" {
			var chain []string
			for _, n := range strings.Split(v, ",") {
				if n = strings.TrimSpace(n); n != "" {
					chain = append(chain, n)
				}
			}
			return chain
		}
	}
	return slices.Clone(platformChain)
}

// Default returns the catalog of the first provider of the default chain
// which is available.
func (r *Registry) Default(conf schuko.Configuration) (*fontcatalog.Catalog, error) {
	r.Lock()
	defer r.Unlock()
	var errs []error
	for _, name := range DefaultChain(conf) {
		c, err := r.catalog(name, conf)
		if err == nil {
			tracer().Debugf("default font catalog is %s", name)
			return c, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fontcatalog.PlatformQueryError("default", errors.New("no font catalog configured"))
	}
	return nil, fontcatalog.PlatformQueryError("default", errors.Join(errs...))
}

// Default returns the default catalog of the global registry.
func Default(conf schuko.Configuration) (*fontcatalog.Catalog, error) {
	return GlobalRegistry().Default(conf)
}

// LogProviderList is a helper function to dump the list of known factories
// and providers in a registry to the trace-file (log-level Info).
func (r *Registry) LogProviderList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered font catalog providers ---")
	for _, name := range r.Names() {
		r.Lock()
		_, created := r.providers[name]
		r.Unlock()
		tracer().Infof("provider [%s] created = %v", name, created)
	}
	tracer().Infof("-----------------------------------------")
	tracer().SetTraceLevel(level)
}
