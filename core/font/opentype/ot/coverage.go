package ot

// Coverage is an OpenType coverage table. It defines the glyphs a lookup
// sub-table applies to, and assigns to each of them a coverage index.
//
// From the OpenType specification: Each subtable (except an Extension LookupType subtable) in a
// lookup references a Coverage table (Coverage), which specifies all the glyphs
// affected by a substitution or positioning operation described in the subtable.
// The Coverage Index returned by a Coverage table indicates the position of a
// glyph within the subtable's data arrays.
type Coverage struct {
	format uint16
	count  int
	data   binarySegm // glyph array (format 1) or range records (format 2)
}

// parseCoverage interprets b as a coverage table.
func parseCoverage(b binarySegm) (Coverage, error) {
	format, err := b.u16(0)
	if err != nil {
		return Coverage{}, errFontFormat("coverage table")
	}
	n, err := b.u16(2)
	if err != nil {
		return Coverage{}, errFontFormat("coverage table")
	}
	cov := Coverage{format: format, count: int(n)}
	switch format {
	case 1:
		cov.data, err = b.view(4, 2*cov.count)
	case 2:
		cov.data, err = b.view(4, 6*cov.count)
	default:
		return Coverage{}, errFontFormat("unknown coverage format")
	}
	if err != nil && cov.count > 0 {
		return Coverage{}, errFontFormat("coverage table size")
	}
	return cov, nil
}

// Match returns the coverage index of glyph g, if g is covered.
// Glyph arrays and range records are sorted by glyph index, therefore we
// search them with a binary search.
func (cov Coverage) Match(g GlyphIndex) (int, bool) {
	switch cov.format {
	case 1:
		i, j := 0, cov.count
		for i < j {
			h := i + (j-i)/2
			x := GlyphIndex(u16(cov.data[2*h:]))
			switch {
			case g < x:
				j = h
			case g > x:
				i = h + 1
			default:
				return h, true
			}
		}
	case 2:
		// RangeRecord: startGlyphID, endGlyphID, startCoverageIndex
		i, j := 0, cov.count
		for i < j {
			h := i + (j-i)/2
			rec := cov.data[6*h:]
			start, end := GlyphIndex(u16(rec)), GlyphIndex(u16(rec[2:]))
			switch {
			case g < start:
				j = h
			case g > end:
				i = h + 1
			default:
				return int(u16(rec[4:])) + int(g-start), true
			}
		}
	}
	return 0, false
}

// Len returns the number of glyph entries (format 1) or ranges (format 2).
func (cov Coverage) Len() int {
	return cov.count
}
