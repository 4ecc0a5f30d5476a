/*
Package localized answers questions about font names in the context of
languages: which font families are suitable for a set of languages, and how
families and faces are named in a given language.

All functions are read-throughs to a font catalog (see package fontcatalog).
Unknown names and missing localizations are not errors: they resolve to a
fallback name, by default the caller's input unchanged. The only error
condition is an unavailable catalog, reported by AvailableFamilyNames.

	names := localized.New(catalog)
	families, err := names.AvailableFamilyNames(language.Japanese)
	...
	display := names.LocalizedFamilyName("Noto Sans CJK JP", language.Japanese)

Package-level functions operate on the default catalog of the global
provider registry (see package fontregistry).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package localized

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontloc.catalog'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.catalog")
}
