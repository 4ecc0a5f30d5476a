/*
Package vertical finds the glyphs to use for vertical text layout.

Fonts for East Asian scripts carry vertical alternates of punctuation and
some letters (brackets rotated by 90°, small kana moved to the upper right,
etc.) in their GSUB table, under the features 'vrt2', 'vert' and 'vkna'.
SubstitutionGlyph maps a glyph of a font to its vertical alternate:

	vlookup := vertical.New(catalog)
	v := vlookup.SubstitutionGlyph("Noto Serif CJK JP", gid)

Whenever no vertical alternate can be found (the font is unknown, it has no
vertical features, or no entry for the glyph) the glyph is returned
unchanged. No error is ever reported.

Font tables are cached per font name (see WithCacheSize), together with the
glyph mappings already looked up. The cache never changes results; it is
dropped by Refresh.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package vertical

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'fontloc.vertical'
func tracer() tracing.Trace {
	return tracing.Select("fontloc.vertical")
}
