package extractor

import (
	"regexp"
	"strings"

	"jyotishkb/pkg/astro/lexicon"
	"jyotishkb/pkg/astro/model"
)

var sentenceTerminalRE = regexp.MustCompile(`[.!?;]`)

// extractEffect locates the first effect indicator in the sentence and
// returns everything after it up to the next sentence-terminal
// punctuation (spec.md §4.2, Effect extraction). hasExplicit is false
// when no indicator was found or nothing follows it, in which case the
// caller derives a category-label effect from the keyword map.
func extractEffect(sentence string, lex *lexicon.Lexicon) (effect string, hasExplicit bool) {
	lower := strings.ToLower(sentence)
	bestIdx := -1
	bestLen := 0
	for _, ind := range lex.EffectIndicators {
		idx := strings.Index(lower, ind)
		if idx < 0 {
			continue
		}
		if bestIdx == -1 || idx < bestIdx {
			bestIdx = idx
			bestLen = len(ind)
		}
	}
	if bestIdx == -1 {
		return "", false
	}

	tail := sentence[bestIdx+bestLen:]
	if loc := sentenceTerminalRE.FindStringIndex(tail); loc != nil {
		tail = tail[:loc[0]]
	}
	tail = strings.TrimSpace(tail)
	return tail, tail != ""
}

// deriveCategoryEffect falls back to a category-label effect when no
// explicit indicator is present, via the fixed keyword->category map
// (spec.md §4.2). The dominant keyword class wins: the category whose
// keywords hit the sentence most often, ties broken by category name so
// replays of the same sentence always derive the same effect. Returns
// "", false when no keyword matches, signalling the candidate should be
// discarded.
func deriveCategoryEffect(sentence string, lex *lexicon.Lexicon) (string, bool) {
	lower := strings.ToLower(sentence)
	counts := make(map[string]int)
	for kw, category := range lex.KeywordCategoryMap {
		if strings.Contains(lower, kw) {
			counts[category]++
		}
	}

	best, bestCount := "", 0
	for category, n := range counts {
		if n > bestCount || (n == bestCount && (best == "" || category < best)) {
			best, bestCount = category, n
		}
	}
	return best, bestCount > 0
}

// inferPolarity classifies the effect phrase using the closed positive/
// negative word lists (spec.md §4.2).
func inferPolarity(effect string, lex *lexicon.Lexicon) model.Polarity {
	lower := strings.ToLower(effect)
	pos, neg := false, false
	for _, w := range lex.PositiveWords {
		if strings.Contains(lower, w) {
			pos = true
			break
		}
	}
	for _, w := range lex.NegativeWords {
		if strings.Contains(lower, w) {
			neg = true
			break
		}
	}
	switch {
	case pos && neg:
		return model.PolarityMixed
	case pos:
		return model.PolarityPositive
	case neg:
		return model.PolarityNegative
	default:
		return model.PolarityNeutral
	}
}
