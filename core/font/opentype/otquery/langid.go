package otquery

import (
	"golang.org/x/text/language"
)

// Windows language IDs (LCIDs) as used in name records of platform 3.
// See https://learn.microsoft.com/en-us/typography/opentype/spec/name#windows-language-ids
var windowsLCIDs = map[uint16]string{
	0x0401: "ar-SA", 0x0402: "bg-BG", 0x0403: "ca-ES", 0x0404: "zh-TW",
	0x0405: "cs-CZ", 0x0406: "da-DK", 0x0407: "de-DE", 0x0408: "el-GR",
	0x0409: "en-US", 0x040a: "es-ES", 0x040b: "fi-FI", 0x040c: "fr-FR",
	0x040d: "he-IL", 0x040e: "hu-HU", 0x040f: "is-IS", 0x0410: "it-IT",
	0x0411: "ja-JP", 0x0412: "ko-KR", 0x0413: "nl-NL", 0x0414: "nb-NO",
	0x0415: "pl-PL", 0x0416: "pt-BR", 0x0418: "ro-RO", 0x0419: "ru-RU",
	0x041a: "hr-HR", 0x041b: "sk-SK", 0x041c: "sq-AL", 0x041d: "sv-SE",
	0x041e: "th-TH", 0x041f: "tr-TR", 0x0420: "ur-PK", 0x0421: "id-ID",
	0x0422: "uk-UA", 0x0423: "be-BY", 0x0424: "sl-SI", 0x0425: "et-EE",
	0x0426: "lv-LV", 0x0427: "lt-LT", 0x0429: "fa-IR", 0x042a: "vi-VN",
	0x042d: "eu-ES", 0x0439: "hi-IN", 0x043e: "ms-MY", 0x0445: "bn-IN",
	0x0449: "ta-IN", 0x0804: "zh-CN", 0x0807: "de-CH", 0x0809: "en-GB",
	0x080a: "es-MX", 0x080c: "fr-BE", 0x0810: "it-CH", 0x0813: "nl-BE",
	0x0814: "nn-NO", 0x0816: "pt-PT", 0x0c04: "zh-HK", 0x0c07: "de-AT",
	0x0c09: "en-AU", 0x0c0a: "es-ES", 0x0c0c: "fr-CA", 0x1004: "zh-SG",
	0x1009: "en-CA", 0x100c: "fr-CH", 0x1404: "zh-MO", 0x1409: "en-NZ",
	0x1809: "en-IE",
}

// Macintosh language codes as used in name records of platform 1.
// See https://learn.microsoft.com/en-us/typography/opentype/spec/name#macintosh-language-ids
var macintoshLanguages = map[uint16]string{
	0: "en", 1: "fr", 2: "de", 3: "it", 4: "nl", 5: "sv", 6: "es", 7: "da",
	8: "pt", 9: "no", 10: "he", 11: "ja", 12: "ar", 13: "fi", 14: "el",
	15: "is", 16: "mt", 17: "tr", 18: "hr", 19: "zh-Hant", 20: "ur", 21: "hi",
	22: "th", 23: "ko", 24: "lt", 25: "pl", 26: "hu", 27: "et", 28: "lv",
	30: "fo", 31: "fa", 32: "ru", 33: "zh-Hans", 34: "nl-BE", 35: "ga",
	36: "sq", 37: "ro", 38: "cs", 39: "sk", 40: "sl", 42: "sr", 43: "mk",
	44: "bg", 45: "uk", 46: "be", 80: "vi", 81: "id", 83: "ms",
}

func windowsLanguage(lcid uint16) language.Tag {
	return lookupLanguage(windowsLCIDs, lcid)
}

func macintoshLanguage(code uint16) language.Tag {
	return lookupLanguage(macintoshLanguages, code)
}

func lookupLanguage(table map[uint16]string, id uint16) language.Tag {
	s, ok := table[id]
	if !ok {
		return language.Und
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und
	}
	return tag
}
