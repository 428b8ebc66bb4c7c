package diagram

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/docstruct/internal/textnorm"
	"github.com/tsawler/docstruct/model"
)

// Circled digits ① (U+2460) through ⑳ (U+2473) map to 1..20.
const (
	circledFirst = '①'
	circledLast  = '⑳'
)

var romanValues = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
	"XI": 11, "XII": 12, "XIII": 13, "XIV": 14, "XV": 15,
	"XVI": 16, "XVII": 17, "XVIII": 18, "XIX": 19, "XX": 20,
}

var (
	// "1. Label", "STEP 2) Label", "3 - Label"
	arabicMarkerRe = regexp.MustCompile(`(?i)^\s*(?:STEP\s*)?(\d{1,3})\s*[.)\-:>\]]\s*(.+)$`)
	// "iv. Label", "II) Label"
	romanMarkerRe = regexp.MustCompile(`(?i)^\s*(i{1,3}|iv|v|vi{0,3}|ix|x|xi{0,3}|xiv|xv|xvi{0,3}|xix|xx)\s*[.)\-:>\]]\s*(.+)$`)
	// "1 Label" with no punctuation
	bareNumberRe = regexp.MustCompile(`^\s*(\d{1,3})\s+(.+)$`)
)

// parseMarker extracts a leading order marker from a step's text. It
// returns the resolved sequence (0 when no marker is present), the title
// with the marker stripped, the marker classification, and the raw marker
// literal. Full-width digits are folded before matching.
func parseMarker(text string) (sequence int, title string, markerType model.MarkerType, literal string) {
	t := strings.TrimSpace(textnorm.Fold(text))
	if t == "" {
		return 0, "", model.MarkerNone, ""
	}

	if r := []rune(t)[0]; r >= circledFirst && r <= circledLast {
		seq := int(r-circledFirst) + 1
		rest := strings.TrimSpace(strings.TrimPrefix(t, string(r)))
		return seq, rest, model.MarkerCircled, string(r)
	}

	if m := arabicMarkerRe.FindStringSubmatch(t); m != nil {
		seq, _ := strconv.Atoi(m[1])
		return seq, strings.TrimSpace(m[2]), model.MarkerArabic, m[1]
	}

	if m := romanMarkerRe.FindStringSubmatch(t); m != nil {
		if seq, ok := romanValues[strings.ToUpper(m[1])]; ok {
			return seq, strings.TrimSpace(m[2]), model.MarkerRoman, m[1]
		}
	}

	if m := bareNumberRe.FindStringSubmatch(t); m != nil {
		seq, _ := strconv.Atoi(m[1])
		return seq, strings.TrimSpace(m[2]), model.MarkerArabic, m[1]
	}

	return 0, t, model.MarkerNone, ""
}
