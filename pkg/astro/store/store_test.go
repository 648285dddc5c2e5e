package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"jyotishkb/pkg/astro/model"
)

// openTestStore opens a store on its own temp file so tests (and the
// two stores the round-trip tests hold open at once) never share state.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func classicalSource() model.SourceBook {
	return model.SourceBook{Title: "Brihat Parashara Hora Shastra", Author: "Parashara", AuthorityLevel: model.AuthorityClassical}
}

func sampleRule(source model.SourceBook, text string) model.Rule {
	now := time.Now().UTC()
	return model.Rule{
		OriginalText:     text,
		Conditions:       model.Conditions{Planet: "Mars", House: 7},
		Effects:          []string{"discord in marriage"},
		Polarity:         model.PolarityNegative,
		Category:         model.CategoryPlanetaryPlacement,
		SourceTitle:      source.Title,
		AuthorityLevel:   source.AuthorityLevel,
		Confidence:       0.8,
		ExtractionMethod: "basic_placement",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestRegisterSourceThenConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()

	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	conflicting := src
	conflicting.AuthorityLevel = model.AuthorityModern
	if _, err := s.RegisterSource(ctx, conflicting); err == nil {
		t.Fatal("expected SourceConflict on authority level change")
	} else if _, ok := err.(*model.SourceConflict); !ok {
		t.Fatalf("expected *model.SourceConflict, got %T: %v", err, err)
	}
}

func TestStoreRuleDuplicateIsNoOp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	r := sampleRule(src, "Mars in the 7th house causes discord in marriage.")
	stored, outcome, err := s.StoreRule(ctx, r)
	if err != nil {
		t.Fatalf("StoreRule: %v", err)
	}
	if outcome != StoreOutcomeStored {
		t.Fatalf("expected StoreOutcomeStored, got %s", outcome)
	}

	_, outcome2, err := s.StoreRule(ctx, r)
	if err != nil {
		t.Fatalf("StoreRule (duplicate): %v", err)
	}
	if outcome2 != StoreOutcomeDuplicate {
		t.Fatalf("expected StoreOutcomeDuplicate on re-ingest, got %s", outcome2)
	}

	got, err := s.GetRule(ctx, stored.ID)
	if err != nil {
		t.Fatalf("GetRule: %v", err)
	}
	if got.OriginalText != r.OriginalText {
		t.Errorf("got OriginalText %q, want %q", got.OriginalText, r.OriginalText)
	}
}

func TestStoreRuleRejectsUnknownSource(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	r := sampleRule(model.SourceBook{Title: "Unregistered Book"}, "Mars in the 7th house causes discord.")

	_, outcome, err := s.StoreRule(ctx, r)
	if err == nil {
		t.Fatal("expected error for unregistered source")
	}
	if outcome != StoreOutcomeRejected {
		t.Fatalf("expected StoreOutcomeRejected, got %s", outcome)
	}
	if _, ok := err.(*model.UnknownSource); !ok {
		t.Fatalf("expected *model.UnknownSource, got %T", err)
	}
}

func TestStoreRuleRejectsInvalidConditions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	r := sampleRule(src, "Some sentence with no astrological anchor.")
	r.Conditions = model.Conditions{}

	_, outcome, err := s.StoreRule(ctx, r)
	if err == nil {
		t.Fatal("expected validation error for empty conditions")
	}
	if outcome != StoreOutcomeRejected {
		t.Fatalf("expected StoreOutcomeRejected, got %s", outcome)
	}
}

// TestStoreRuleAcceptsYogaWithCondition guards against a regression where
// every extractor.MethodYoga rule was unstoreable: a yoga rule must carry
// a planet/house/sign condition like any other category (spec.md §3.2),
// and once it does, StoreRule must accept it rather than reject it.
func TestStoreRuleAcceptsYogaWithCondition(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	r := sampleRule(src, "Gajakesari Yoga gives fame and prosperity when Jupiter is in the 10th house.")
	r.Conditions = model.Conditions{Planet: "Jupiter", House: 10}
	r.Category = model.CategoryYoga
	r.ExtractionMethod = "yoga"
	r.Tags = []string{"Gaja Kesari"}

	stored, outcome, err := s.StoreRule(ctx, r)
	if err != nil {
		t.Fatalf("StoreRule: %v", err)
	}
	if outcome != StoreOutcomeStored {
		t.Fatalf("expected StoreOutcomeStored, got %s", outcome)
	}

	got, err := s.GetRule(ctx, stored.ID)
	if err != nil {
		t.Fatalf("GetRule: %v", err)
	}
	if got.Category != model.CategoryYoga {
		t.Errorf("expected yoga category round-trip, got %s", got.Category)
	}
}

func TestStoreRulesBatchSkipsInvalidRowsOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	good := sampleRule(src, "Mars in the 7th house causes discord in marriage.")
	bad := sampleRule(src, "No anchor here.")
	bad.Conditions = model.Conditions{}

	n, err := s.StoreRulesBatch(ctx, []model.Rule{good, bad})
	if err != nil {
		t.Fatalf("StoreRulesBatch: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}
}

func TestGetRuleNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetRule(context.Background(), "does-not-exist")
	if _, ok := err.(*model.NotFound); !ok {
		t.Fatalf("expected *model.NotFound, got %T: %v", err, err)
	}
}

func TestApplyCorrectionUpdatesRuleAndAudit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}
	r := sampleRule(src, "Mars  in the 7th house causes discord in marriage.")
	stored, _, err := s.StoreRule(ctx, r)
	if err != nil {
		t.Fatalf("StoreRule: %v", err)
	}

	correction := model.Correction{
		Confidence:   0.95,
		FixesApplied: []model.FixTag{model.FixSpacing},
		ModelID:      "mock-corrector-v1",
		Timestamp:    time.Now().UTC(),
	}
	if err := s.ApplyCorrection(ctx, stored.ID, "Mars in the 7th house causes discord in marriage.", correction, "digest123"); err != nil {
		t.Fatalf("ApplyCorrection: %v", err)
	}

	got, err := s.GetRule(ctx, stored.ID)
	if err != nil {
		t.Fatalf("GetRule: %v", err)
	}
	if got.CorrectedText != "Mars in the 7th house causes discord in marriage." {
		t.Errorf("unexpected CorrectedText: %q", got.CorrectedText)
	}
	if got.Correction == nil || got.Correction.ModelID != "mock-corrector-v1" {
		t.Errorf("expected correction to be set with model id")
	}
	if got.LastCorrectedDigest != "digest123" {
		t.Errorf("expected digest to be stamped, got %q", got.LastCorrectedDigest)
	}
	if got.OriginalText != r.OriginalText {
		t.Error("ApplyCorrection must not mutate original_text")
	}
}

func TestApplyCorrectionNotFound(t *testing.T) {
	s := openTestStore(t)
	err := s.ApplyCorrection(context.Background(), "missing", "x", model.Correction{}, "d")
	if _, ok := err.(*model.NotFound); !ok {
		t.Fatalf("expected *model.NotFound, got %T", err)
	}
}

func TestRuleIDDeterministic(t *testing.T) {
	cond := model.Conditions{Planet: "Mars", House: 7}
	id1 := RuleID("Book A", "Mars in the 7th house causes discord.", cond)
	id2 := RuleID("Book A", "Mars in the 7th house causes discord.", cond)
	if id1 != id2 {
		t.Fatal("RuleID must be deterministic for identical inputs")
	}

	id3 := RuleID("Book A", "A completely different sentence.", cond)
	if id1 == id3 {
		t.Fatal("RuleID must differ when original_text differs")
	}
}

func TestRuleIDNormalizesWhitespaceAndCase(t *testing.T) {
	cond := model.Conditions{Planet: "Mars", House: 7}
	id1 := RuleID("Book A", "Mars in the 7th house.", cond)
	id2 := RuleID("Book A", "  mars   in the 7th   house.  ", cond)
	if id1 != id2 {
		t.Fatal("RuleID should normalize whitespace and case before hashing")
	}
}
