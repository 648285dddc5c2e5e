// Package extractor implements the Rule Extractor (spec.md §4.2): an
// ordered pattern battery over astrologically-relevant sentences, with
// relaxed and keyword-only fallbacks, confidence scoring, and
// canonicalization of condition values.
package extractor

import "jyotishkb/pkg/astro/model"

// candidate is an intermediate match produced by one pattern in the
// battery, before effect extraction and confidence scoring are applied.
type candidate struct {
	Conditions       model.Conditions
	Category         model.Category
	ExtractionMethod string
	Tags             []string
	// Remainder is the sentence tail a pattern identified as the likely
	// start of the effect clause (may be empty; effect extraction always
	// re-scans the full sentence for the first effect indicator anyway).
	Remainder string
}

// Weights are the confidence-formula constants of spec.md §4.2; exposed
// as configuration per the Open Questions note (spec.md §9, §13).
type Weights struct {
	PatternMatchQuality float64
	ClassicalTermDensity float64
	StructureScore       float64
	Completeness         float64
}

// DefaultWeights are the constants given in spec.md §4.2.
func DefaultWeights() Weights {
	return Weights{
		PatternMatchQuality:  0.40,
		ClassicalTermDensity: 0.25,
		StructureScore:       0.20,
		Completeness:         0.15,
	}
}

const (
	relaxedConfidenceCap = 0.55
	keywordConfidenceCap = 0.40

	MethodBasicPlacement     = "basic_placement"
	MethodAscendantSpecific  = "ascendant_specific"
	MethodAspect             = "aspect"
	MethodLordship           = "lordship"
	MethodNakshatra          = "nakshatra"
	MethodYoga               = "yoga"
	MethodRelaxedFallback    = "relaxed_fallback"
	MethodKeywordFallback    = "keyword_fallback"
)
