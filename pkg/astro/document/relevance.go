package document

import (
	"regexp"
	"strings"

	"jyotishkb/pkg/astro/lexicon"
)

var ordinalHouseRE = regexp.MustCompile(`\b(1st|2nd|3rd|[4-9]th|1[0-2]th|first|second|third|fourth|fifth|sixth|seventh|eighth|ninth|tenth|eleventh|twelfth)\b`)

// relevanceMatcher is the compiled form of the astrological-relevance
// filter of spec.md §4.1: a sentence passes when it contains a planet, a
// house reference (ordinal within 1-12), a sign, or one of the strong
// astrological keywords. The lexicon alternations are compiled once per
// Service, not per sentence.
type relevanceMatcher struct {
	planets  *regexp.Regexp
	signs    *regexp.Regexp
	houses   *regexp.Regexp
	keywords []string
}

func newRelevanceMatcher(lex *lexicon.Lexicon) *relevanceMatcher {
	planetWords := make([]string, 0, len(lex.PlanetVariants))
	for v := range lex.PlanetVariants {
		planetWords = append(planetWords, v)
	}
	signWords := make([]string, 0, len(lex.SignVariants))
	for v := range lex.SignVariants {
		signWords = append(signWords, v)
	}
	houseWords := make([]string, 0, len(lex.HouseWords))
	for w := range lex.HouseWords {
		houseWords = append(houseWords, w)
	}
	return &relevanceMatcher{
		planets:  wordAlternation(planetWords),
		signs:    wordAlternation(signWords),
		houses:   wordAlternation(houseWords),
		keywords: lex.StrongKeywords,
	}
}

func wordAlternation(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return regexp.MustCompile(`$^`) // matches nothing
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

func (m *relevanceMatcher) isAstrological(sentence string) bool {
	if m.planets.MatchString(sentence) || m.signs.MatchString(sentence) {
		return true
	}
	lower := strings.ToLower(sentence)
	if ordinalHouseRE.MatchString(lower) {
		return true
	}
	if m.houses.MatchString(sentence) {
		return true
	}
	for _, kw := range m.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
