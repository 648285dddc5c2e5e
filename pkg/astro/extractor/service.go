package extractor

import (
	"strings"
	"time"

	"jyotishkb/pkg/astro/document"
	"jyotishkb/pkg/astro/lexicon"
	"jyotishkb/pkg/astro/model"
)

// MinConfidence is the default minimum confidence below which a candidate
// rule is discarded (spec.md §4.2).
const MinConfidence = 0.1

// Service runs the ordered pattern battery, relaxed/keyword fallbacks,
// effect extraction, and confidence scoring over astrologically-relevant
// sentences produced by the document package.
type Service struct {
	lex           *lexicon.Lexicon
	weights       Weights
	minConfidence float64
	patterns      *patternSet
}

// Option configures a Service.
type Option func(*Service)

// WithWeights overrides the confidence-formula weights.
func WithWeights(w Weights) Option {
	return func(s *Service) { s.weights = w }
}

// WithMinConfidence overrides the minimum-confidence cutoff.
func WithMinConfidence(min float64) Option {
	return func(s *Service) { s.minConfidence = min }
}

// NewService constructs an extractor Service bound to lex.
func NewService(lex *lexicon.Lexicon, opts ...Option) *Service {
	s := &Service{
		lex:           lex,
		weights:       DefaultWeights(),
		minConfidence: MinConfidence,
		patterns:      newPatternSet(lex),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Extract runs the full rule-extraction pipeline against astrologically
// relevant sentences belonging to a single source. Rule.ID is left unset;
// deterministic ID assignment is the store's responsibility, since the ID
// is a function of (source_title, normalized_text, canonical(conditions))
// rather than anything the extractor alone decides.
func (s *Service) Extract(sourceTitle string, source model.SourceBook, sentences []document.Sentence) []model.Rule {
	var rules []model.Rule
	for _, sent := range sentences {
		for _, clause := range document.SplitConjunctive(sent.Text) {
			clause = strings.TrimSpace(clause)
			if clause == "" {
				continue
			}
			rule, ok := s.extractOne(sourceTitle, source, clause, sent.Page)
			if !ok {
				continue
			}
			rules = append(rules, rule)
		}
	}
	return rules
}

func (s *Service) extractOne(sourceTitle string, source model.SourceBook, clause string, page int) (model.Rule, bool) {
	cand, ok := s.patterns.matchBattery(clause)
	capConfidence := 1.0
	if !ok {
		if cand, ok = s.patterns.matchRelaxed(clause); ok {
			capConfidence = relaxedConfidenceCap
		} else if cand, ok = s.patterns.matchKeywordOnly(clause); ok {
			capConfidence = keywordConfidenceCap
		}
	}
	if !ok || cand == nil {
		return model.Rule{}, false
	}

	if !cand.Conditions.HasPrimaryKey() && cand.Conditions.Aspect == "" {
		return model.Rule{}, false
	}
	if cand.Conditions.House < 0 || cand.Conditions.House > 12 {
		return model.Rule{}, false
	}
	if cand.Conditions.LordOf < 0 || cand.Conditions.LordOf > 12 {
		return model.Rule{}, false
	}

	effect, explicit := extractEffect(clause, s.lex)
	if !explicit {
		label, derived := deriveCategoryEffect(clause, s.lex)
		if !derived {
			return model.Rule{}, false
		}
		effect = label
	}

	confidence := scoreConfidence(clause, explicit, cand, s.lex, s.weights)
	if confidence > capConfidence {
		confidence = capConfidence
	}
	if confidence < s.minConfidence {
		return model.Rule{}, false
	}

	now := time.Now().UTC()
	rule := model.Rule{
		OriginalText:     clause,
		Conditions:       cand.Conditions,
		Effects:          []string{effect},
		Polarity:         inferPolarity(effect, s.lex),
		Tags:             cand.Tags,
		Category:         cand.Category,
		SourceTitle:      sourceTitle,
		Page:             page,
		AuthorityLevel:   source.AuthorityLevel,
		Confidence:       confidence,
		ExtractionMethod: cand.ExtractionMethod,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return rule, true
}
