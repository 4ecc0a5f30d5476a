/*
Package otquery queries names, language coverage and vertical substitutions
from OpenType fonts.

Package otquery knows about the various tables contained in OpenType fonts and
which ones to address for a query. Clients of this package are font catalogs,
which need localized names and language support of a font without loading a
full text shaping machinery, and vertical text layout.

▪︎ Names are read from table 'name', decoding Unicode, Windows and Macintosh
records, and mapping language IDs to BCP 47 tags.

▪︎ Language support is judged by checking the coverage of a set of exemplar
characters through table 'cmap'.

▪︎ Vertical substitutions follow the 'vrt2', 'vert' and 'vkna' features of
table 'GSUB'.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'fontloc.fonts'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.fonts")
}
