package extractor

import (
	"strings"

	"jyotishkb/pkg/astro/lexicon"
)

// scoreConfidence implements the weighted confidence formula of spec.md
// §4.2, clamped to [0, 1]. Caps for relaxed/keyword fallbacks are applied
// by the caller after this returns, since they bound the final score
// rather than one of its components. explicitEffect reports whether the
// effect phrase came from an indicator match rather than a derived
// category label, per the completeness sub-formula.
func scoreConfidence(sentence string, explicitEffect bool, c *candidate, lex *lexicon.Lexicon, w Weights) float64 {
	score := w.PatternMatchQuality*patternMatchQuality(c) +
		w.ClassicalTermDensity*classicalTermDensity(sentence, lex) +
		w.StructureScore*structureScore(sentence) +
		w.Completeness*completeness(c, explicitEffect)

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// patternMatchQuality rewards the more specific, structurally anchored
// patterns over the fallbacks.
func patternMatchQuality(c *candidate) float64 {
	switch c.ExtractionMethod {
	case MethodAscendantSpecific:
		return 1.0
	case MethodBasicPlacement, MethodLordship:
		return 0.9
	case MethodAspect, MethodNakshatra:
		return 0.8
	case MethodYoga:
		return 0.75
	case MethodRelaxedFallback:
		return 0.5
	case MethodKeywordFallback:
		return 0.3
	default:
		return 0.4
	}
}

// classicalTermDensity implements spec.md §4.2's literal formula:
// min(1.0, count_of_lexicon_terms x 0.1), a raw count of recognized
// planets/signs/house-words/nakshatras/yogas among the sentence's
// tokens, not a ratio over sentence length.
func classicalTermDensity(sentence string, lex *lexicon.Lexicon) float64 {
	hits := 0
	for _, tok := range strings.Fields(sentence) {
		clean := strings.Trim(strings.ToLower(tok), ".,;:!?()\"'")
		if clean == "" {
			continue
		}
		if _, ok := lex.PlanetVariants[clean]; ok {
			hits++
			continue
		}
		if _, ok := lex.SignVariants[clean]; ok {
			hits++
			continue
		}
		if _, ok := lex.HouseWords[clean]; ok {
			hits++
			continue
		}
		if lex.IsNakshatra(clean) || lex.IsYoga(clean) {
			hits++
		}
	}
	density := float64(hits) * 0.1
	if density > 1.0 {
		density = 1.0
	}
	return density
}

// structureScore implements spec.md §4.2's literal formula: a heuristic
// over sentence length (penalizing fewer than 6 or more than 40 tokens)
// combined with the presence of a clear subject/verb/object triple.
// Length contributes half the score, the SVO triple the other half.
func structureScore(sentence string) float64 {
	trimmed := strings.TrimSpace(sentence)
	if trimmed == "" {
		return 0
	}
	words := len(strings.Fields(trimmed))

	score := 0.0
	if words >= 6 && words <= 40 {
		score += 0.5
	} else {
		score += 0.2
	}
	if hasSubjectVerbObject(trimmed) {
		score += 0.5
	}
	if score > 1 {
		score = 1
	}
	return score
}

// hasSubjectVerbObject is a lexicon-free heuristic for "a clear
// subject/verb/object triple": a capitalized or lexicon-shaped subject
// token, followed by a verb-like word, followed by further tokens
// forming an object phrase.
func hasSubjectVerbObject(sentence string) bool {
	words := strings.Fields(sentence)
	if len(words) < 3 {
		return false
	}
	verbSuffixes := []string{"s", "es", "ed", "ing"}
	for i := 1; i < len(words)-1; i++ {
		w := strings.ToLower(strings.Trim(words[i], ".,;:!?()\"'"))
		if w == "" {
			continue
		}
		for _, suf := range verbSuffixes {
			if strings.HasSuffix(w, suf) && len(w) > len(suf) {
				return true
			}
		}
	}
	return false
}

// completeness implements spec.md §4.2's literal formula: a binary
// bonus, 1.0 when both a condition key and an explicit effect indicator
// are captured, 0.0 otherwise.
func completeness(c *candidate, explicitEffect bool) float64 {
	hasCondition := c.Conditions.HasPrimaryKey() || c.Conditions.Aspect != "" || c.Conditions.LordOf != 0
	if hasCondition && explicitEffect {
		return 1.0
	}
	return 0.0
}
