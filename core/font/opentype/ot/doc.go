/*
Package ot provides low-level access to the tables of OpenType fonts.

Package `ot` exposes the table directory of a font, including fonts residing
in font collections (*.ttc, *.otc), and semantically wraps the few tables
needed for querying font names, character coverage and glyph substitutions:

▪︎ 'cmap': mapping of code-points to glyphs (formats 4 and 12)

▪︎ 'GSUB': script list, feature list and lookup list, together with the
application of single-glyph substitutions (lookup types 1, 3 and 7)

Other tables are accessible as raw binary data, for example

	name := otf.Table(ot.T("name")).Binary()

Fonts found in the wild contain all kinds of defects. Package `ot` will never
panic on malformed data; reads outside of a table's bounds result in an error
or, for lookup-style queries, in a negative answer.

Code comments often cite passages from the OpenType specification version 1.8.4;
see https://docs.microsoft.com/en-us/typography/opentype/spec/.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/fontloc/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontloc.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.fonts")
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(x string) error {
	return core.Error(core.EINVALID, "OpenType font format: %s", x)
}
