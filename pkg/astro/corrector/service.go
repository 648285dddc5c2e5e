package corrector

import (
	"context"
	"time"

	"jyotishkb/pkg/astro/model"
)

// Service runs the LLM Corrector end to end: batching, provider
// submission, and the mandatory post-validation gate. It operates on an
// in-memory slice of rules; persisting accepted/rejected outcomes is the
// caller's (knowledge facade's) responsibility, since only the store
// knows how to select "pending" rules and apply results transactionally.
type Service struct {
	provider Provider
	cfg      Config
}

// NewService constructs a Service bound to a Provider.
func NewService(provider Provider, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultConfig().BatchTimeout
	}
	return &Service{provider: provider, cfg: cfg}
}

// Correct runs the corrector over rules, skipping any whose
// LastCorrectedDigest already matches their current OriginalText
// (spec.md §4.3, Idempotence). It returns the mutated rules (accepted
// corrections applied in place) alongside a Report. Rules are returned
// in the same order they were given.
func (s *Service) Correct(ctx context.Context, rules []model.Rule) ([]model.Rule, Report) {
	report := Report{}
	out := make([]model.Rule, len(rules))
	copy(out, rules)

	pendingIdx := make([]int, 0, len(rules))
	for i, r := range rules {
		if r.LastCorrectedDigest != "" && r.LastCorrectedDigest == Digest(r.OriginalText) {
			report.Skipped++
			continue
		}
		pendingIdx = append(pendingIdx, i)
	}

	for _, idxBatch := range chunkIndexes(pendingIdx, s.cfg.BatchSize) {
		items := make([]BatchItem, len(idxBatch))
		for j, idx := range idxBatch {
			r := out[idx]
			items[j] = BatchItem{
				RuleID:       r.ID,
				OriginalText: r.OriginalText,
				Conditions:   r.Conditions,
				Effects:      r.Effects,
			}
		}

		corrections, err := runBatch(ctx, s.provider, items, s.cfg)
		if err != nil {
			// Failure modes (spec.md §4.3): model unavailable or wrong
			// count discards the whole batch; rules stay retryable since
			// their digest is left untouched.
			report.Attempted += len(items)
			continue
		}

		for j, idx := range idxBatch {
			item := items[j]
			report.Attempted++
			corrected, reason, ok := validate(item, corrections[j].CorrectedText)
			now := time.Now().UTC()
			if !ok {
				report.Rejected++
				report.Outcomes = append(report.Outcomes, Outcome{
					RuleID:    item.RuleID,
					Accepted:  false,
					Rejection: model.NewCorrectionRejected(item.RuleID, reason, "post-validation gate"),
				})
				out[idx].LastCorrectedDigest = Digest(item.OriginalText)
				continue
			}

			correction := &model.Correction{
				Confidence:   corrections[j].Confidence,
				FixesApplied: corrections[j].FixesApplied,
				ModelID:      s.provider.ModelID(),
				Timestamp:    now,
				Temperature:  s.cfg.Temperature,
			}
			out[idx].CorrectedText = corrected
			out[idx].Correction = correction
			out[idx].LastCorrectedDigest = Digest(item.OriginalText)
			out[idx].UpdatedAt = now

			report.Accepted++
			report.Outcomes = append(report.Outcomes, Outcome{
				RuleID:     item.RuleID,
				Accepted:   true,
				Correction: correction,
			})
		}
	}

	return out, report
}

func chunkIndexes(indexes []int, size int) [][]int {
	if size <= 0 {
		size = DefaultConfig().BatchSize
	}
	var out [][]int
	for i := 0; i < len(indexes); i += size {
		end := i + size
		if end > len(indexes) {
			end = len(indexes)
		}
		out = append(out, indexes[i:end])
	}
	return out
}
