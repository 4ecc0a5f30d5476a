package fontcatalog

import (
	"golang.org/x/text/language"
)

// MatchLanguage selects the tag of available which serves a requested
// language. Matching follows BCP 47 language matching as implemented by
// golang.org/x/text/language: "ja" is served by "ja-JP", "zh-TW" by
// "zh-Hant", but "en" is not served by "ja". Matches below confidence High
// are rejected.
func MatchLanguage(available []language.Tag, want language.Tag) (language.Tag, bool) {
	if len(available) == 0 {
		return language.Und, false
	}
	return newMatcher(available).match(want)
}

type matcher struct {
	tags []language.Tag
	m    language.Matcher
}

func newMatcher(tags []language.Tag) *matcher {
	return &matcher{tags: tags, m: language.NewMatcher(tags)}
}

func (m *matcher) match(want language.Tag) (language.Tag, bool) {
	if m == nil || len(m.tags) == 0 {
		return language.Und, false
	}
	_, index, conf := m.m.Match(want)
	if conf < language.High {
		return language.Und, false
	}
	return m.tags[index], true
}
