package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jyotishkb/pkg/astro/model"
)

const bundleSchemaVersion = "1.0"

// MergeStrategy is the closed set of import behaviors spec.md §6 names
// for reconciling a bundle against an existing store.
type MergeStrategy string

const (
	MergeReplace        MergeStrategy = "replace"
	MergeAppend         MergeStrategy = "append"
	MergeSkipDuplicates MergeStrategy = "skip_duplicates"
)

// Bundle is the portable export/import unit of spec.md §6: a filtered
// snapshot of sources and rules, self-describing enough to round-trip.
type Bundle struct {
	SchemaVersion  string             `json:"schema_version"`
	ExportedAt     string             `json:"exported_at"`
	TotalRules     int                `json:"total_rules"`
	FiltersApplied SearchFilters      `json:"filters_applied"`
	Sources        []model.SourceBook `json:"sources"`
	Rules          []model.Rule       `json:"rules"`
}

// ImportReport summarizes what an Import call did, mirroring the
// per-row classification store_rule itself uses.
type ImportReport struct {
	SourcesRegistered int
	RulesInserted     int
	RulesSkipped      int
	RulesReplaced     int
}

// Export produces a Bundle containing every source referenced by the
// rules the filters select, plus those rules themselves.
func (s *Store) Export(ctx context.Context, filters SearchFilters) (Bundle, error) {
	rules, err := s.Search(ctx, filters)
	if err != nil {
		return Bundle{}, err
	}

	seen := make(map[string]bool)
	var sources []model.SourceBook
	for _, r := range rules {
		if seen[r.SourceTitle] {
			continue
		}
		seen[r.SourceTitle] = true
		src, err := s.GetSource(ctx, r.SourceTitle)
		if err != nil {
			return Bundle{}, fmt.Errorf("store: export source %q: %w", r.SourceTitle, err)
		}
		sources = append(sources, src)
	}

	return Bundle{
		SchemaVersion:  bundleSchemaVersion,
		ExportedAt:     time.Now().UTC().Format(time.RFC3339Nano),
		TotalRules:     len(rules),
		FiltersApplied: filters,
		Sources:        sources,
		Rules:          rules,
	}, nil
}

// Import merges a Bundle into the store under the given strategy.
//
// replace: an existing rule with the same id is overwritten in place.
// append: rules are inserted when their id is new; an existing id is
// left untouched.
// skip_duplicates: identical behavior to append for rules, kept as a
// distinct name for API clarity per spec.md §6.
//
// Sources are always upserted first (an authority-level conflict on a
// source is not fatal to the import; that source's rules are skipped).
func (s *Store) Import(ctx context.Context, bundle Bundle, strategy MergeStrategy) (ImportReport, error) {
	var report ImportReport
	conflictedSources := make(map[string]bool)

	for _, src := range bundle.Sources {
		if _, err := s.RegisterSource(ctx, src); err != nil {
			if _, ok := err.(*model.SourceConflict); ok {
				conflictedSources[src.Title] = true
				continue
			}
			return report, err
		}
		report.SourcesRegistered++
	}

	for _, r := range bundle.Rules {
		if conflictedSources[r.SourceTitle] {
			report.RulesSkipped++
			continue
		}

		_, err := s.GetRule(ctx, r.ID)
		exists := err == nil
		if err != nil {
			if _, ok := err.(*model.NotFound); !ok {
				return report, err
			}
		}

		switch {
		case !exists:
			if err := validateRule(r); err != nil {
				report.RulesSkipped++
				continue
			}
			if err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
				return insertRuleTx(ctx, tx, r)
			}); err != nil {
				return report, err
			}
			report.RulesInserted++

		case strategy == MergeReplace:
			if err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
				return replaceRuleTx(ctx, tx, r)
			}); err != nil {
				return report, err
			}
			report.RulesReplaced++

		default:
			report.RulesSkipped++
		}
	}

	return report, nil
}

func replaceRuleTx(ctx context.Context, tx *sql.Tx, r model.Rule) error {
	row, err := toRuleRow(r)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE rules SET
			original_text = ?, corrected_text = ?, planet = ?, house = ?, sign = ?, nakshatra = ?,
			aspect = ?, strength = ?, lord_of = ?, ascendant = ?, effects = ?, polarity = ?, tags = ?,
			category = ?, source_title = ?, page = ?, chapter = ?, verse = ?, authority_level = ?,
			confidence = ?, extraction_method = ?, correction = ?, validated = ?, updated_at = ?,
			last_corrected_digest = ?
		WHERE id = ?`,
		row.OriginalText, row.CorrectedText, row.Planet, row.House, row.Sign, row.Nakshatra,
		row.Aspect, row.Strength, row.LordOf, row.Ascendant, row.Effects, row.Polarity, row.Tags,
		row.Category, row.SourceTitle, row.Page, row.Chapter, row.Verse, row.AuthorityLevel,
		row.Confidence, row.ExtractionMethod, row.Correction, row.Validated, row.UpdatedAt,
		row.LastCorrectedDigest, row.ID,
	)
	if err != nil {
		return fmt.Errorf("store: replace rule: %w", err)
	}
	return nil
}
