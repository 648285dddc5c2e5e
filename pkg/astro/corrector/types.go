// Package corrector implements the LLM Corrector (spec.md §4.3): readability
// repair of a rule's original_text without altering its astrological
// identity, gated by a mandatory non-LLM validation pass.
package corrector

import (
	"context"
	"time"

	"jyotishkb/pkg/astro/model"
)

// BatchItem is one rule submitted to a Provider within a single batch.
type BatchItem struct {
	RuleID       string
	OriginalText string
	Conditions   model.Conditions
	Effects      []string
}

// ProviderCorrection is one raw, unvalidated correction returned by a
// Provider for the batch item at the same index.
type ProviderCorrection struct {
	CorrectedText string
	Confidence    float64
	FixesApplied  []model.FixTag
}

// Provider is anything capable of running the correction prompt contract
// against a model. Implementations must return corrections in the same
// order and the same count as the submitted items (spec.md §4.3,
// Batching); a mismatched count is a caller-visible error so the whole
// batch can be discarded per the Failure modes rule.
type Provider interface {
	CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error)
	ModelID() string
	IsConfigured() bool
}

// Outcome records what happened to one rule in a batch, for the audit
// trail and for the caller to decide what to persist.
type Outcome struct {
	RuleID     string
	Accepted   bool
	Correction *model.Correction
	Rejection  *model.CorrectionRejected
}

// Report summarizes one CorrectPending run.
type Report struct {
	Attempted int
	Accepted  int
	Rejected  int
	Skipped   int // already up to date per LastCorrectedDigest
	Outcomes  []Outcome
}

// Config tunes the scheduler and validation gate. Zero values fall back
// to the defaults named in spec.md §4.3.
type Config struct {
	BatchSize   int
	BatchTimeout time.Duration
	Temperature float64
}

// DefaultConfig returns the spec's defaults: batches of 5, a 60s
// per-batch timeout, temperature 0 (deterministic decoding where the
// provider honors it).
func DefaultConfig() Config {
	return Config{BatchSize: 5, BatchTimeout: 60 * time.Second, Temperature: 0}
}
