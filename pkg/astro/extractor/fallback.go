package extractor

import (
	"strings"

	"jyotishkb/pkg/astro/model"
)

// matchRelaxed implements the relaxed fallback of spec.md §4.2: accept any
// pair drawn from {planet, house, sign, ascendant}. Confidence is capped
// by the caller after scoring.
func (ps *patternSet) matchRelaxed(sentence string) (*candidate, bool) {
	cond := model.Conditions{}

	if sub := ps.planetToken.FindString(sentence); sub != "" {
		if p, ok := ps.lex.CanonicalPlanet(sub); ok {
			cond.Planet = p
		}
	}
	if sub := ps.housePhrase.FindStringSubmatch(sentence); sub != nil {
		if h, ok := ps.lex.HouseNumber(sub[1]); ok {
			cond.House = h
		}
	}
	if sub := ps.signToken.FindString(sentence); sub != "" {
		if s, ok := ps.lex.CanonicalSign(sub); ok {
			cond.Sign = s
		}
	}
	if strings.Contains(strings.ToLower(sentence), "ascendant") || strings.Contains(strings.ToLower(sentence), "lagna") {
		if cond.Sign != "" {
			cond.Ascendant = cond.Sign
		}
	}

	filled := 0
	if cond.Planet != "" {
		filled++
	}
	if cond.House != 0 {
		filled++
	}
	if cond.Sign != "" {
		filled++
	}
	if cond.Ascendant != "" {
		filled++
	}
	if filled < 2 {
		return nil, false
	}

	return &candidate{
		Conditions:       cond,
		Category:         model.CategoryOther,
		ExtractionMethod: MethodRelaxedFallback,
		Remainder:        sentence,
	}, true
}

// matchKeywordOnly implements the keyword-only fallback of spec.md §4.2:
// the sentence must contain a strong astrological keyword AND at least
// one condition token.
func (ps *patternSet) matchKeywordOnly(sentence string) (*candidate, bool) {
	lower := strings.ToLower(sentence)
	hasKeyword := false
	for _, kw := range ps.lex.StrongKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return nil, false
	}

	cond := model.Conditions{}
	if sub := ps.planetToken.FindString(sentence); sub != "" {
		if p, ok := ps.lex.CanonicalPlanet(sub); ok {
			cond.Planet = p
		}
	}
	if sub := ps.houseToken.FindStringSubmatch(sentence); sub != nil {
		if h, ok := ps.lex.HouseNumber(sub[1]); ok {
			cond.House = h
		}
	}
	if sub := ps.signToken.FindString(sentence); sub != "" {
		if s, ok := ps.lex.CanonicalSign(sub); ok {
			cond.Sign = s
		}
	}
	if !cond.HasPrimaryKey() {
		return nil, false
	}

	return &candidate{
		Conditions:       cond,
		Category:         model.CategoryOther,
		ExtractionMethod: MethodKeywordFallback,
		Remainder:        sentence,
	}, true
}
