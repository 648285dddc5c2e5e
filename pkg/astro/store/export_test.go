package store

import (
	"context"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := openTestStore(t)
	source := classicalSource()
	if _, err := src.RegisterSource(ctx, source); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}
	original := mustStore(t, src, sampleRule(source, "Mars in the 7th house causes discord in marriage."))

	bundle, err := src.Export(ctx, SearchFilters{SourceTitle: source.Title})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if bundle.TotalRules != 1 {
		t.Fatalf("expected 1 rule in bundle, got %d", bundle.TotalRules)
	}
	if len(bundle.Sources) != 1 || bundle.Sources[0].Title != source.Title {
		t.Fatalf("expected the source to be included in the bundle, got %+v", bundle.Sources)
	}

	dst := openTestStore(t)
	report, err := dst.Import(ctx, bundle, MergeAppend)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.RulesInserted != 1 {
		t.Fatalf("expected 1 rule inserted, got %d", report.RulesInserted)
	}

	got, err := dst.GetRule(ctx, original.ID)
	if err != nil {
		t.Fatalf("GetRule after import: %v", err)
	}
	if got.ID != original.ID {
		t.Errorf("expected identical id after round trip, got %q want %q", got.ID, original.ID)
	}
	if got.OriginalText != original.OriginalText {
		t.Errorf("expected identical original_text after round trip")
	}
	if got.Conditions != original.Conditions {
		t.Errorf("expected identical conditions after round trip, got %+v want %+v", got.Conditions, original.Conditions)
	}
}

func TestImportSkipDuplicates(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	source := classicalSource()
	if _, err := s.RegisterSource(ctx, source); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}
	r := mustStore(t, s, sampleRule(source, "Mars in the 7th house causes discord in marriage."))

	bundle, err := s.Export(ctx, SearchFilters{SourceTitle: source.Title})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	report, err := s.Import(ctx, bundle, MergeSkipDuplicates)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.RulesInserted != 0 || report.RulesSkipped != 1 {
		t.Fatalf("expected the existing rule to be skipped, got %+v", report)
	}

	got, err := s.GetRule(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRule: %v", err)
	}
	if got.ID != r.ID {
		t.Fatal("skip_duplicates must not disturb the existing rule")
	}
}

func TestImportReplaceOverwritesExisting(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	source := classicalSource()
	if _, err := s.RegisterSource(ctx, source); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}
	r := mustStore(t, s, sampleRule(source, "Mars in the 7th house causes discord in marriage."))

	bundle, err := s.Export(ctx, SearchFilters{SourceTitle: source.Title})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	bundle.Rules[0].Confidence = 0.99

	report, err := s.Import(ctx, bundle, MergeReplace)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if report.RulesReplaced != 1 {
		t.Fatalf("expected 1 rule replaced, got %+v", report)
	}

	got, err := s.GetRule(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetRule: %v", err)
	}
	if got.Confidence != 0.99 {
		t.Errorf("expected replace to overwrite confidence, got %f", got.Confidence)
	}
}
