package otquery

import (
	"github.com/npillmayer/fontloc/core/font/opentype/ot"
	"golang.org/x/text/language"
)

const latinBasic = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Exemplar characters per language. A font covering all exemplars of a language
// is considered suitable for setting text in this language.
//
// Keys are either a base language or, for languages written in more than one
// script, base language and script.
var languageExemplars = map[string]string{
	"en":      latinBasic,
	"de":      latinBasic + "äöüßÄÖÜ",
	"fr":      latinBasic + "àâæçéèêëîïôœùûüÿÀÇÉÈ",
	"es":      latinBasic + "áéíñóúüÑ¡¿",
	"it":      latinBasic + "àèéìòù",
	"pt":      latinBasic + "áàâãçéêíóôõú",
	"nl":      latinBasic + "éëïĳ",
	"sv":      latinBasic + "åäöÅÄÖ",
	"da":      latinBasic + "æøåÆØÅ",
	"nb":      latinBasic + "æøåÆØÅ",
	"no":      latinBasic + "æøåÆØÅ",
	"fi":      latinBasic + "äöÄÖ",
	"pl":      latinBasic + "ąćęłńóśźżŁ",
	"cs":      latinBasic + "áčďéěíňóřšťúůýž",
	"tr":      latinBasic + "çğıİöşü",
	"vi":      latinBasic + "ăâđêôơưạảấầẩẫậ",
	"ru":      "абвгдеёжзийклмнопрстуфхцчшщъыьэюяАБВГД",
	"uk":      "абвгґдеєжзиіїйклмнопрстуфхцчшщьюяАБВГД",
	"bg":      "абвгдежзийклмнопрстуфхцчшщъьюя",
	"el":      "αβγδεζηθικλμνξοπρστυφχψωάέήίόύώΑΒΓΔ",
	"he":      "אבגדהוזחטיכךלמםנןסעפףצץקרשת",
	"ar":      "ابتثجحخدذرزسشصضطظعغفقكلمنهوي",
	"fa":      "ابپتثجچحخدذرزژسشصضطظعغفقکگلمنهوی",
	"th":      "กขคงจฉชซญดตถทนบปผพฟภมยรลวศสหอฮ",
	"hi":      "अआइईउऊएऐओऔकखगघचछजझटठडढणतथदधनपफबभमयरलवशषसह",
	"ja":      "あいうえおかきくけこさしすせそたちつてとアイウエオカキクケコサシスセソ一人大日月中国本語",
	"ko":      "가나다라마바사아자차카타파하",
	"zh-Hans": "的一是不了人我在有他这中大来上国个到说们为子和你地出道也时年",
	"zh-Hant": "的一是不了人我在有他這中大來上國個到說們為子和你地出道也時年",
}

// Exemplar characters per script, for languages without an entry of their own.
var scriptExemplars = map[string]string{
	"Latn": latinBasic,
	"Cyrl": "абвгдежзийклмнопрстуфхцчшщъыьэюя",
	"Grek": "αβγδεζηθικλμνξοπρστυφχψω",
	"Hebr": "אבגדהוזחטיכלמנסעפצקרשת",
	"Arab": "ابتثجحخدذرزسشصضطظعغفقكلمنهوي",
	"Thai": "กขคงจฉชซญดตถทนบปผพฟภมยรลวศสหอฮ",
	"Deva": "अआइईउऊएऐओऔकखगघचछजझटठडढणतथदधनपफबभमयरलवशषसह",
	"Hang": "가나다라마바사아자차카타파하",
	"Kore": "가나다라마바사아자차카타파하",
	"Hira": "あいうえおかきくけこさしすせそたちつてと",
	"Kana": "アイウエオカキクケコサシスセソ",
	"Jpan": "あいうえおかきくけこアイウエオカキクケコ一人大日月",
	"Hani": "一人大日月中",
	"Hans": "的一是不了人我在有他这中大来上国个到说们为",
	"Hant": "的一是不了人我在有他這中大來上國個到說們為",
}

// Exemplars returns the exemplar characters for a language. The script of a
// tag is inferred if it is not explicit. If neither the language nor its script
// are known, nil is returned.
func Exemplars(tag language.Tag) []rune {
	base, _ := tag.Base()
	script, _ := tag.Script()
	if s, ok := languageExemplars[base.String()+"-"+script.String()]; ok {
		return []rune(s)
	}
	if s, ok := languageExemplars[base.String()]; ok {
		return []rune(s)
	}
	if s, ok := scriptExemplars[script.String()]; ok {
		return []rune(s)
	}
	return nil
}

// SupportsLanguage returns true if the cmap of a font covers all the exemplar
// characters of a language. Fonts without a usable cmap and languages without
// exemplars are not supported.
func SupportsLanguage(otf *ot.Font, tag language.Tag) bool {
	return covers(otf.CMap(), Exemplars(tag))
}

// SupportedLanguages filters candidates for languages supported by a font.
func SupportedLanguages(otf *ot.Font, candidates []language.Tag) []language.Tag {
	cmap := otf.CMap()
	if cmap == nil {
		return nil
	}
	var langs []language.Tag
	for _, tag := range candidates {
		if covers(cmap, Exemplars(tag)) {
			langs = append(langs, tag)
		}
	}
	return langs
}

func covers(cmap *ot.CMapTable, exemplars []rune) bool {
	if cmap == nil || len(exemplars) == 0 {
		return false
	}
	for _, r := range exemplars {
		if cmap.Lookup(r) == 0 {
			return false
		}
	}
	return true
}
