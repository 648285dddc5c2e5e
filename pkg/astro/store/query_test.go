package store

import (
	"context"
	"testing"

	"jyotishkb/pkg/astro/model"
)

func mustStore(t *testing.T, s *Store, r model.Rule) model.Rule {
	t.Helper()
	stored, outcome, err := s.StoreRule(context.Background(), r)
	if err != nil {
		t.Fatalf("StoreRule: %v", err)
	}
	if outcome != StoreOutcomeStored {
		t.Fatalf("expected stored, got %s", outcome)
	}
	return stored
}

func TestSearchFiltersByPlanetAndHouse(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	marsRule := sampleRule(src, "Mars in the 7th house causes discord in marriage.")
	mustStore(t, s, marsRule)

	venusRule := sampleRule(src, "Venus in the 4th house brings domestic happiness.")
	venusRule.Conditions = model.Conditions{Planet: "Venus", House: 4}
	venusRule.Effects = []string{"domestic happiness"}
	venusRule.Polarity = model.PolarityPositive
	mustStore(t, s, venusRule)

	results, err := s.Search(ctx, SearchFilters{Planet: "Mars"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Conditions.Planet != "Mars" {
		t.Fatalf("expected 1 Mars rule, got %+v", results)
	}

	results, err = s.Search(ctx, SearchFilters{House: 4})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Conditions.House != 4 {
		t.Fatalf("expected 1 rule in house 4, got %+v", results)
	}
}

func TestSearchRelevanceOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	classical := classicalSource()
	if _, err := s.RegisterSource(ctx, classical); err != nil {
		t.Fatalf("RegisterSource classical: %v", err)
	}
	modern := model.SourceBook{Title: "Modern Astrology Digest", AuthorityLevel: model.AuthorityModern}
	if _, err := s.RegisterSource(ctx, modern); err != nil {
		t.Fatalf("RegisterSource modern: %v", err)
	}

	low := sampleRule(modern, "Mars causes minor friction at work.")
	low.AuthorityLevel = model.AuthorityModern
	low.Confidence = 0.3
	mustStore(t, s, low)

	high := sampleRule(classical, "Mars in the 7th house causes discord in marriage.")
	high.AuthorityLevel = model.AuthorityClassical
	high.Confidence = 0.9
	mustStore(t, s, high)

	results, err := s.Search(ctx, SearchFilters{Planet: "Mars", OrderBy: OrderByRelevance})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SourceTitle != classical.Title {
		t.Errorf("expected the classical, high-confidence rule ranked first, got %q", results[0].SourceTitle)
	}
}

// TestSearchLimitAppliesAfterRelevanceRanking guards against LIMIT
// truncating before the relevance sort: a limit of 1 must return the
// most relevant rule, not the oldest one re-ranked.
func TestSearchLimitAppliesAfterRelevanceRanking(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	classical := classicalSource()
	if _, err := s.RegisterSource(ctx, classical); err != nil {
		t.Fatalf("RegisterSource classical: %v", err)
	}
	modern := model.SourceBook{Title: "Modern Astrology Digest", AuthorityLevel: model.AuthorityModern}
	if _, err := s.RegisterSource(ctx, modern); err != nil {
		t.Fatalf("RegisterSource modern: %v", err)
	}

	// Stored first, so it is the oldest row.
	low := sampleRule(modern, "Mars causes minor friction at work.")
	low.AuthorityLevel = model.AuthorityModern
	low.Confidence = 0.3
	mustStore(t, s, low)

	high := sampleRule(classical, "Mars in the 7th house causes discord in marriage.")
	high.AuthorityLevel = model.AuthorityClassical
	high.Confidence = 0.9
	mustStore(t, s, high)

	results, err := s.Search(ctx, SearchFilters{Planet: "Mars", Limit: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].SourceTitle != classical.Title {
		t.Errorf("expected the most relevant rule under the limit, got %q", results[0].SourceTitle)
	}
}

// TestSearchTagsIsAnyOfMatch guards spec.md §4.4's "tags (any-of match)"
// contract: a rule carrying only one of several requested tags must
// still match, not just a rule carrying all of them.
func TestSearchTagsIsAnyOfMatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}

	marriage := sampleRule(src, "Mars in the 7th house causes discord in marriage.")
	marriage.Tags = []string{"marriage"}
	mustStore(t, s, marriage)

	career := sampleRule(src, "Saturn in the 10th house gives a slow but steady career.")
	career.Conditions = model.Conditions{Planet: "Saturn", House: 10}
	career.Effects = []string{"a slow but steady career"}
	career.Tags = []string{"career"}
	mustStore(t, s, career)

	neither := sampleRule(src, "Venus in the 4th house brings domestic happiness.")
	neither.Conditions = model.Conditions{Planet: "Venus", House: 4}
	neither.Effects = []string{"domestic happiness"}
	neither.Tags = []string{"comfort"}
	mustStore(t, s, neither)

	results, err := s.Search(ctx, SearchFilters{Tags: []string{"marriage", "career"}})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 rules matching any of {marriage, career}, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if r.SourceTitle == "" {
			t.Errorf("unexpected empty source in result: %+v", r)
		}
	}
}

func TestSearchEffectContains(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := classicalSource()
	if _, err := s.RegisterSource(ctx, src); err != nil {
		t.Fatalf("RegisterSource: %v", err)
	}
	mustStore(t, s, sampleRule(src, "Mars in the 7th house causes discord in marriage."))

	results, err := s.Search(ctx, SearchFilters{EffectContains: "discord"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 match for effect substring, got %d", len(results))
	}

	results, err = s.Search(ctx, SearchFilters{EffectContains: "prosperity"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected 0 matches for unrelated substring, got %d", len(results))
	}
}
