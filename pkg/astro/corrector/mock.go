package corrector

import (
	"context"
	"regexp"
	"strings"

	"jyotishkb/pkg/astro/model"
)

// mockProvider deterministically "corrects" text by collapsing runs of
// whitespace to one space and trimming the ends, standing in for a real
// model endpoint in tests.
type mockProvider struct {
	model string
}

// NewMockProvider constructs a deterministic test Provider.
func NewMockProvider() Provider {
	return &mockProvider{model: "mock-corrector-v1"}
}

func (m *mockProvider) ModelID() string    { return m.model }
func (m *mockProvider) IsConfigured() bool { return true }

var mockMultiSpaceRE = regexp.MustCompile(`\s{2,}`)

func (m *mockProvider) CorrectBatch(ctx context.Context, items []BatchItem, temperature float64) ([]ProviderCorrection, error) {
	out := make([]ProviderCorrection, len(items))
	for i, item := range items {
		text := mockMultiSpaceRE.ReplaceAllString(item.OriginalText, " ")
		text = strings.TrimSpace(text)
		tags := []model.FixTag{model.FixSpacing}
		if text == item.OriginalText {
			tags = nil
		}
		out[i] = ProviderCorrection{
			CorrectedText: text,
			Confidence:    0.9,
			FixesApplied:  tags,
		}
	}
	return out, nil
}
