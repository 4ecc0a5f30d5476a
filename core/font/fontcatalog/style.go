package fontcatalog

import (
	"strings"

	xfont "golang.org/x/image/font"
)

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's style name (sub-family), e.g. "Bold Italic" or "W3".
func GuessStyleAndWeight(styleName string) (xfont.Style, xfont.Weight) {
	s := strings.ToLower(styleName)
	style := xfont.StyleNormal
	if strings.Contains(s, "italic") || strings.Contains(s, "kursiv") {
		style = xfont.StyleItalic
	} else if strings.Contains(s, "oblique") || strings.Contains(s, "slanted") {
		style = xfont.StyleOblique
	}
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	weight := xfont.WeightNormal
	switch {
	case strings.Contains(s, "thin") || strings.Contains(s, "hairline") || hasWeightNumber(s, "w0", "w1"):
		weight = xfont.WeightThin
	case strings.Contains(s, "extralight") || strings.Contains(s, "ultralight") || hasWeightNumber(s, "w2"):
		weight = xfont.WeightExtraLight
	case strings.Contains(s, "light"):
		weight = xfont.WeightLight
	case strings.Contains(s, "medium") || hasWeightNumber(s, "w5"):
		weight = xfont.WeightMedium
	case strings.Contains(s, "semibold") || strings.Contains(s, "demibold") || hasWeightNumber(s, "w6"):
		weight = xfont.WeightSemiBold
	case strings.Contains(s, "extrabold") || strings.Contains(s, "ultrabold") || hasWeightNumber(s, "w8"):
		weight = xfont.WeightExtraBold
	case strings.Contains(s, "black") || strings.Contains(s, "heavy") || hasWeightNumber(s, "w9"):
		weight = xfont.WeightBlack
	case strings.Contains(s, "bold") || hasWeightNumber(s, "w7"):
		weight = xfont.WeightBold
	}
	return style, weight
}

// Japanese foundries denote weights as W0…W9 (W3 and W4 being regular text
// weights).
func hasWeightNumber(s string, nums ...string) bool {
	for _, n := range nums {
		if strings.HasSuffix(s, n) {
			return true
		}
	}
	return false
}

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// MatchStyle trys to match a face's style to a given style.
func MatchStyle(have, want xfont.Style) MatchConfidence {
	switch {
	case have == want:
		return PerfectConfidence
	case have != xfont.StyleNormal && want != xfont.StyleNormal:
		return HighConfidence // italic for oblique or vice versa
	}
	return NoConfidence
}

// MatchWeight trys to match a face's weight to a given weight.
//
// From https://pkg.go.dev/golang.org/x/image/font, weights are CSS font-weight
// values, (w-400)/100.
func MatchWeight(have, want xfont.Weight) MatchConfidence {
	d := have - want
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return PerfectConfidence
	case 1:
		return HighConfidence
	case 2:
		return LowConfidence
	}
	return NoConfidence
}

// ClosestMatch returns the face of a list which matches style and weight best.
// Style weighs more than weight. Among faces with equal confidence, the first
// one in the list wins. ClosestMatch returns nil for an empty list.
func ClosestMatch(faces []*FaceInfo, style xfont.Style, weight xfont.Weight) *FaceInfo {
	var match *FaceInfo
	best := MatchConfidence(-1)
	for _, f := range faces {
		c := 2*MatchStyle(f.Style, style) + MatchWeight(f.Weight, weight)
		if c > best {
			best, match = c, f
		}
	}
	return match
}
