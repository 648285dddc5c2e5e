package corrector

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"jyotishkb/pkg/astro/model"
)

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "for": true, "from": true, "in": true, "into": true,
	"is": true, "it": true, "of": true, "on": true, "or": true, "that": true,
	"the": true, "their": true, "through": true, "to": true, "with": true,
}

// validate implements the mandatory, non-LLM post-validation gate of
// spec.md §4.3. It returns ("", reason, false) on rejection, or the
// accepted corrected text otherwise.
func validate(item BatchItem, corrected string) (string, model.CorrectionRejectReason, bool) {
	if !utf8.ValidString(corrected) {
		return "", model.RejectInvalidUTF8, false
	}

	if !identityPreserved(item.Conditions, corrected) {
		return "", model.RejectIdentityViolation, false
	}

	origLen := len([]rune(item.OriginalText))
	corrLen := len([]rune(corrected))
	if origLen == 0 {
		return "", model.RejectLengthRatio, false
	}
	ratio := float64(corrLen) / float64(origLen)
	if ratio < 0.5 || ratio > 2.0 {
		return "", model.RejectLengthRatio, false
	}

	if !effectsRetained(item.Effects, corrected) {
		return "", model.RejectEffectsDrift, false
	}

	return corrected, "", true
}

// identityPreserved checks that every condition token present on the rule
// still appears in the corrected text, case-insensitively, per spec.md
// §4.3 rule 1.
func identityPreserved(cond model.Conditions, corrected string) bool {
	lower := strings.ToLower(corrected)

	tokens := []string{}
	if cond.Planet != "" {
		tokens = append(tokens, cond.Planet)
	}
	if cond.Sign != "" {
		tokens = append(tokens, cond.Sign)
	}
	if cond.Nakshatra != "" {
		tokens = append(tokens, cond.Nakshatra)
	}
	if cond.Ascendant != "" {
		tokens = append(tokens, cond.Ascendant)
	}
	if cond.House != 0 {
		if !containsHouseToken(lower, cond.House) {
			return false
		}
	}
	if cond.LordOf != 0 {
		if !containsHouseToken(lower, cond.LordOf) {
			return false
		}
	}
	for _, tok := range tokens {
		if !strings.Contains(lower, strings.ToLower(tok)) {
			return false
		}
	}
	return true
}

var ordinalWords = map[int]string{
	1: "first", 2: "second", 3: "third", 4: "fourth", 5: "fifth", 6: "sixth",
	7: "seventh", 8: "eighth", 9: "ninth", 10: "tenth", 11: "eleventh", 12: "twelfth",
}

// containsHouseToken reports whether corrected contains a recognizable
// rendering of house n: its digit form (with or without ordinal suffix)
// or its English ordinal word.
func containsHouseToken(lowerCorrected string, n int) bool {
	digit := strconv.Itoa(n)
	if strings.Contains(lowerCorrected, digit) {
		return true
	}
	if word, ok := ordinalWords[n]; ok && strings.Contains(lowerCorrected, word) {
		return true
	}
	return false
}

// effectsRetained reports whether the corrected text retains at least
// 60% of the content words found in the rule's extracted effect phrases,
// per spec.md §4.3 rule 3.
func effectsRetained(effects []string, corrected string) bool {
	if len(effects) == 0 {
		return true
	}
	lower := strings.ToLower(corrected)

	total, retained := 0, 0
	for _, effect := range effects {
		for _, w := range strings.Fields(effect) {
			w = strings.Trim(strings.ToLower(w), ".,;:!?()\"'")
			if w == "" || stopWords[w] || len(w) < 3 {
				continue
			}
			total++
			if strings.Contains(lower, w) {
				retained++
			}
		}
	}
	if total == 0 {
		return true
	}
	return float64(retained)/float64(total) >= 0.6
}
