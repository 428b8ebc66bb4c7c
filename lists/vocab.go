package lists

import "strings"

// Numbering format vocabularies, keyed by canonical token (lower-cased,
// separators stripped). These mirror the wordprocessing numFmt values seen
// in the wild; formats found in neither table classify as unordered
// bullets.

var orderedFormats = map[string]bool{
	"decimal": true, "decimalzero": true, "decimalleadingzero": true,
	"decimalfullwidth": true, "decimalhalfwidth": true,
	"decimalenclosedcircle": true, "decimalenclosedfullstop": true,
	"decimalenclosedparen": true, "decimalenclosedcirclechinese": true,
	"lowerroman": true, "upperroman": true,
	"lowerletter": true, "upperletter": true, "alpha": true, "alphabetic": true,
	"arabicalpha": true, "arabicabjad": true,
	"hebrew1": true, "hebrew2": true,
	"chinesecounting": true, "chinesecountingthousand": true,
	"chinesecountingtenthousand": true,
	"ideographtraditional": true, "ideographzodiac": true,
	"ideographdigital": true, "ideographenclosedcircle": true,
	"japanesecounting": true, "japanesedigitaltenthousand": true,
	"aiueo": true, "aiueofullwidth": true, "iroha": true, "irohafullwidth": true,
	"thainumbers": true, "thaicounting": true, "hindinumbers": true,
	"ganada": true, "ganadakr": true,
}

var unorderedFormats = map[string]bool{
	"bullet": true, "none": true, "dingbat": true, "picture": true,
	"disc": true, "circle": true, "square": true,
}

// Style tokens that mark a paragraph as list content. Matched against
// canonical style tokens; team templates can extend the set through
// Config.StyleTokens.
var listStyleTokens = map[string]bool{
	"listparagraph": true,
	"listbullet":    true,
	"listnumber":    true,
	"listcontinue":  true,
}

// schemeFor maps a canonical ordered numbering format to its scheme name.
func schemeFor(format string) string {
	switch {
	case strings.Contains(format, "roman"):
		return "roman"
	case strings.Contains(format, "letter"), strings.Contains(format, "alpha"):
		return "alpha"
	case strings.Contains(format, "ganada"):
		return "ganada"
	case strings.Contains(format, "hebrew"):
		return "hebrew"
	case strings.Contains(format, "thai"):
		return "thai"
	case strings.Contains(format, "chinese"), strings.Contains(format, "ideograph"):
		return "cjk"
	case strings.Contains(format, "aiueo"), strings.Contains(format, "iroha"),
		strings.Contains(format, "japanese"):
		return "kana"
	default:
		return "decimal"
	}
}
