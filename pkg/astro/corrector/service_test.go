package corrector

import (
	"context"
	"testing"
	"time"

	"jyotishkb/pkg/astro/model"
)

func ruleFixture(id, original string) model.Rule {
	return model.Rule{
		ID:           id,
		OriginalText: original,
		Conditions:   model.Conditions{Planet: "Mars", House: 7},
		Effects:      []string{"discord in marriage"},
	}
}

// identityViolator returns a plausible-looking but identity-violating
// correction, modeling spec.md §8 scenario S6.
type identityViolator struct{}

func (identityViolator) ModelID() string    { return "identity-violator" }
func (identityViolator) IsConfigured() bool { return true }
func (identityViolator) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	out := make([]ProviderCorrection, len(items))
	for i := range items {
		out[i] = ProviderCorrection{CorrectedText: "Venus in 7th house causes discord", Confidence: 0.8}
	}
	return out, nil
}

// TestCorrectRejectsIdentityViolation covers spec.md §8 scenario S6.
func TestCorrectRejectsIdentityViolation(t *testing.T) {
	svc := NewService(identityViolator{}, DefaultConfig())
	rules := []model.Rule{ruleFixture("r1", "Marsin7thhousecausesdiscord")}

	out, report := svc.Correct(context.Background(), rules)
	if report.Accepted != 0 || report.Rejected != 1 {
		t.Fatalf("expected 1 rejection, got accepted=%d rejected=%d", report.Accepted, report.Rejected)
	}
	if out[0].CorrectedText != "" {
		t.Errorf("expected original rule left unchanged, got corrected_text=%q", out[0].CorrectedText)
	}
	if len(report.Outcomes) != 1 || report.Outcomes[0].Rejection == nil {
		t.Fatalf("expected a rejection outcome recorded")
	}
	if report.Outcomes[0].Rejection.Reason != model.RejectIdentityViolation {
		t.Errorf("expected identity_violation reason, got %s", report.Outcomes[0].Rejection.Reason)
	}
}

func TestCorrectAcceptsValidCorrection(t *testing.T) {
	svc := NewService(NewMockProvider(), DefaultConfig())
	rules := []model.Rule{ruleFixture("r2", "Mars  in   the 7th house causes discord in marriage.")}

	out, report := svc.Correct(context.Background(), rules)
	if report.Accepted != 1 || report.Rejected != 0 {
		t.Fatalf("expected 1 acceptance, got accepted=%d rejected=%d", report.Accepted, report.Rejected)
	}
	if out[0].CorrectedText == "" {
		t.Errorf("expected corrected_text to be set")
	}
	if out[0].Correction == nil {
		t.Errorf("expected correction audit record to be set")
	}
	if out[0].LastCorrectedDigest != Digest(rules[0].OriginalText) {
		t.Errorf("expected last_corrected_digest to match original text digest")
	}
}

// TestCorrectIdempotent covers spec.md §4.3 Idempotence.
func TestCorrectIdempotent(t *testing.T) {
	svc := NewService(NewMockProvider(), DefaultConfig())
	r := ruleFixture("r3", "Mars in the 7th house causes discord in marriage.")
	r.LastCorrectedDigest = Digest(r.OriginalText)

	_, report := svc.Correct(context.Background(), []model.Rule{r})
	if report.Skipped != 1 {
		t.Fatalf("expected rule to be skipped, got skipped=%d", report.Skipped)
	}
	if report.Accepted != 0 || report.Rejected != 0 {
		t.Errorf("expected no attempts on an unchanged rule")
	}
}

type unavailableProvider struct{}

func (unavailableProvider) ModelID() string    { return "unavailable" }
func (unavailableProvider) IsConfigured() bool { return true }
func (unavailableProvider) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	return nil, model.NewModelUnavailable("unavailable", context.DeadlineExceeded)
}

func TestCorrectSkipsOnProviderFailure(t *testing.T) {
	svc := NewService(unavailableProvider{}, DefaultConfig())
	r := ruleFixture("r4", "Mars in the 7th house causes discord in marriage.")

	out, report := svc.Correct(context.Background(), []model.Rule{r})
	if report.Accepted != 0 || report.Rejected != 0 {
		t.Errorf("expected no accept/reject on provider failure, got accepted=%d rejected=%d", report.Accepted, report.Rejected)
	}
	if out[0].LastCorrectedDigest != "" {
		t.Errorf("expected digest left unset so the rule stays retryable")
	}
}

func TestDigestStableForSameText(t *testing.T) {
	a := Digest("Mars in the 7th house")
	b := Digest("Mars in the 7th house")
	if a != b {
		t.Errorf("expected stable digest for identical text")
	}
	c := Digest("Venus in the 7th house")
	if a == c {
		t.Errorf("expected different digest for different text")
	}
}

// blockingProvider never answers on its own; it returns only once the
// batch context is done.
type blockingProvider struct{}

func (blockingProvider) ModelID() string    { return "blocking" }
func (blockingProvider) IsConfigured() bool { return true }
func (blockingProvider) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	<-ctx.Done()
	return nil, model.NewModelUnavailable("blocking", ctx.Err())
}

func TestBatchTimeoutHonored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchTimeout = 50 * time.Millisecond
	if cfg.BatchTimeout != 50*time.Millisecond {
		t.Fatalf("expected configured timeout to stick")
	}

	start := time.Now()
	_, report := NewService(blockingProvider{}, cfg).Correct(context.Background(),
		[]model.Rule{ruleFixture("r5", "Mars in the 7th house causes discord in marriage.")})
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("expected the batch to be cut off by the 50ms timeout, took %v", elapsed)
	}
	if report.Accepted != 0 || report.Rejected != 0 {
		t.Errorf("expected a timed-out batch to be skipped, got accepted=%d rejected=%d", report.Accepted, report.Rejected)
	}
}
