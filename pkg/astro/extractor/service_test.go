package extractor

import (
	"testing"

	"jyotishkb/pkg/astro/document"
	"jyotishkb/pkg/astro/lexicon"
	"jyotishkb/pkg/astro/model"
)

func classicalSource() model.SourceBook {
	return model.SourceBook{Title: "Brihat Parashara Hora Shastra", AuthorityLevel: model.AuthorityClassical}
}

// TestExtractBasicPlacement covers spec.md §8 scenario S1.
func TestExtractBasicPlacement(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "Mars in the 7th house causes discord in marriage.", Page: 1}}

	rules := s.Extract("Brihat Parashara Hora Shastra", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Conditions.Planet != "Mars" || r.Conditions.House != 7 {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.Category != model.CategoryPlanetaryPlacement {
		t.Errorf("expected planetary_placement category, got %s", r.Category)
	}
	if r.ExtractionMethod != MethodBasicPlacement {
		t.Errorf("expected basic_placement method, got %s", r.ExtractionMethod)
	}
	if r.Polarity != model.PolarityNegative {
		t.Errorf("expected negative polarity, got %s", r.Polarity)
	}
	if r.Confidence < 0.75 {
		t.Errorf("expected confidence >= 0.75, got %f", r.Confidence)
	}
}

// TestExtractAscendantSpecific covers spec.md §8 scenario S2.
func TestExtractAscendantSpecific(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "For Leo ascendant, Mars in the 9th house brings fortune through courage.", Page: 3}}

	rules := s.Extract("Brihat Parashara Hora Shastra", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Conditions.Planet != "Mars" || r.Conditions.House != 9 || r.Conditions.Ascendant != "Leo" {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.ExtractionMethod != MethodAscendantSpecific {
		t.Errorf("expected ascendant_specific method, got %s", r.ExtractionMethod)
	}
	if r.Polarity != model.PolarityPositive {
		t.Errorf("expected positive polarity, got %s", r.Polarity)
	}
}

// TestExtractLordship covers spec.md §8 scenario S3.
func TestExtractLordship(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "The lord of the 7th in the 2nd house gives wealth through spouse.", Page: 5}}

	rules := s.Extract("Brihat Parashara Hora Shastra", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Conditions.LordOf != 7 || r.Conditions.House != 2 {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.Category != model.CategoryHouseLordship {
		t.Errorf("expected house_lordship category, got %s", r.Category)
	}
}

func TestExtractDiscardsUnrelatedSentence(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "The weather today is sunny and warm.", Page: 1}}

	rules := s.Extract("Misc", classicalSource(), sentences)
	if len(rules) != 0 {
		t.Errorf("expected no rules for unrelated sentence, got %d", len(rules))
	}
}

func TestExtractYoga(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{
		Text: "Gajakesari Yoga gives fame and prosperity when Jupiter is in the 10th house.",
		Page: 10,
	}}

	rules := s.Extract("Phaladeepika", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Category != model.CategoryYoga {
		t.Errorf("expected yoga category, got %s", r.Category)
	}
	if r.ExtractionMethod != MethodYoga {
		t.Errorf("expected yoga method, got %s", r.ExtractionMethod)
	}
	if !r.Conditions.HasPrimaryKey() {
		t.Errorf("expected yoga rule to carry a planet/house/sign condition, got %+v", r.Conditions)
	}
	if r.Conditions.Planet != "Jupiter" || r.Conditions.House != 10 {
		t.Errorf("expected planet=Jupiter house=10, got %+v", r.Conditions)
	}
}

// TestExtractYogaWithoutConditionYieldsNoRule guards against a yoga
// sentence with no accompanying planet/house/sign producing a rule that
// the store would reject: matchYoga must decline the match rather than
// hand back an unstoreable candidate (spec.md §3.2).
func TestExtractYogaWithoutConditionYieldsNoRule(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "Gajakesari Yoga gives fame and prosperity to the native.", Page: 10}}

	rules := s.Extract("Phaladeepika", classicalSource(), sentences)
	for _, r := range rules {
		if !r.Conditions.HasPrimaryKey() && r.Conditions.Aspect == "" {
			t.Errorf("rule with no primary key escaped extraction: %+v", r)
		}
	}
}

func TestExtractNakshatra(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "Moon in Rohini nakshatra gives beauty and charm.", Page: 4}}

	rules := s.Extract("Brihat Parashara Hora Shastra", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Conditions.Planet != "Moon" || r.Conditions.Nakshatra != "Rohini" {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.Category != model.CategoryNakshatra {
		t.Errorf("expected nakshatra category, got %s", r.Category)
	}
	if r.ExtractionMethod != MethodNakshatra {
		t.Errorf("expected nakshatra method, got %s", r.ExtractionMethod)
	}
}

func TestExtractAspect(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "Saturn aspects Moon and the mind turns to disputes in marriage.", Page: 6}}

	rules := s.Extract("Saravali", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.Conditions.Planet != "Saturn" || r.Conditions.Aspect != "aspects" {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.Category != model.CategoryAspect {
		t.Errorf("expected aspect category, got %s", r.Category)
	}
	if r.ExtractionMethod != MethodAspect {
		t.Errorf("expected aspect method, got %s", r.ExtractionMethod)
	}
}

func TestExtractRelaxedFallbackCapsConfidence(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "Jupiter placed in the 5th house gives wisdom and children.", Page: 8}}

	rules := s.Extract("Phaladeepika", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.ExtractionMethod != MethodRelaxedFallback {
		t.Errorf("expected relaxed_fallback method, got %s", r.ExtractionMethod)
	}
	if r.Conditions.Planet != "Jupiter" || r.Conditions.House != 5 {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.Confidence > 0.55 {
		t.Errorf("relaxed fallback confidence must be capped at 0.55, got %f", r.Confidence)
	}
}

func TestExtractKeywordFallbackCapsConfidence(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{Text: "The dasha of Saturn brings delays and obstacles.", Page: 9}}

	rules := s.Extract("Phaladeepika", classicalSource(), sentences)
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	r := rules[0]
	if r.ExtractionMethod != MethodKeywordFallback {
		t.Errorf("expected keyword_fallback method, got %s", r.ExtractionMethod)
	}
	if r.Conditions.Planet != "Saturn" {
		t.Errorf("unexpected conditions: %+v", r.Conditions)
	}
	if r.Confidence > 0.40 {
		t.Errorf("keyword fallback confidence must be capped at 0.40, got %f", r.Confidence)
	}
	if r.Polarity != model.PolarityNegative {
		t.Errorf("expected negative polarity for delays, got %s", r.Polarity)
	}
}

// TestDeriveCategoryEffectPicksDominantClass pins the derived effect
// when several keyword classes hit one sentence: the class with the
// most hits wins, deterministically across runs.
func TestDeriveCategoryEffectPicksDominantClass(t *testing.T) {
	lex := lexicon.Default()
	got, ok := deriveCategoryEffect("Disputes and enemies trouble the marriage.", lex)
	if !ok {
		t.Fatal("expected a derived category effect")
	}
	if got != "conflict" {
		t.Errorf("expected dominant class conflict (two keyword hits), got %q", got)
	}
}

func TestExtractSplitsConjunctiveClauses(t *testing.T) {
	lex := lexicon.Default()
	s := NewService(lex)
	sentences := []document.Sentence{{
		Text: "Mars in the 7th house causes discord; Venus in the 4th house gives domestic happiness.",
		Page: 2,
	}}

	rules := s.Extract("Brihat Parashara Hora Shastra", classicalSource(), sentences)
	if len(rules) != 2 {
		t.Fatalf("expected 2 rules from conjunctive clauses, got %d", len(rules))
	}
}
