/*
Package fontcatalog provides a catalog of the fonts installed on a system.

Fonts are discovered by a Provider. Providers wrap a platform's font service
(fontconfig), scan font directories, or deliver fonts from memory. A Catalog
is a read-through view over a provider: the list of faces is queried once,
indexed by family and face names, and kept until it is refreshed. The catalog
never changes the fonts installed on a system.

Every face is described by a FaceInfo record. Names of families and faces are
available in all languages the fonts carry localizations for; languages are
represented as BCP 47 tags (golang.org/x/text/language).

Name lookups are tolerant with respect to case, width (fullwidth vs. halfwidth
forms) and separators: "Hiragino Sans W3", "hiragino-sans-w3" and
"ＨｉｒａｇｉｎｏＳａｎｓＷ３" denote the same face.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontcatalog

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontloc.catalog'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.catalog")
}

// ErrCatalogUnavailable is the cause of every error reporting that a provider
// could not be queried.
var ErrCatalogUnavailable = errors.New("font catalog unavailable")

// ErrUnknownName is returned for lookups of names not present in a catalog.
var ErrUnknownName = errors.New("unknown font family or face")

// PlatformQueryError reports that the platform font service behind a
// provider could not be queried.
func PlatformQueryError(provider string, cause error) error {
	var err error = ErrCatalogUnavailable
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrCatalogUnavailable, cause)
	}
	return core.WrapError(err, core.EUNAVAILABLE, "font catalog %q cannot be queried", provider)
}

// IsPlatformQueryError returns true if err reports an unavailable provider.
func IsPlatformQueryError(err error) bool {
	return errors.Is(err, ErrCatalogUnavailable)
}
