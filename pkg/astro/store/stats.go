package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jyotishkb/pkg/astro/model"
)

// SaveExtractionStats records a single extraction pass's summary
// counters (spec.md §4.2 output), used by the ingest facade to report
// the sentences_total / sentences_astrological / rules_extracted
// breakdown for a book.
func (s *Store) SaveExtractionStats(ctx context.Context, stats model.ExtractionStats) error {
	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO extraction_stats (source_title, sentences_total, sentences_astro, rules_extracted, average_confidence, method, timestamp)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			stats.SourceTitle, stats.SentencesTotal, stats.SentencesAstro, stats.RulesExtracted,
			stats.AverageConfidence, stats.Method, stats.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("store: save extraction stats: %w", err)
		}
		return nil
	})
}

// ExtractionStatsForSource returns every extraction pass recorded for a
// source, most recent first.
func (s *Store) ExtractionStatsForSource(ctx context.Context, sourceTitle string) ([]model.ExtractionStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source_title, sentences_total, sentences_astro, rules_extracted, average_confidence, method, timestamp
		 FROM extraction_stats WHERE source_title = ? ORDER BY timestamp DESC`, sourceTitle)
	if err != nil {
		return nil, fmt.Errorf("store: extraction stats for source: %w", err)
	}
	defer rows.Close()

	var out []model.ExtractionStats
	for rows.Next() {
		var st model.ExtractionStats
		var ts string
		if err := rows.Scan(&st.SourceTitle, &st.SentencesTotal, &st.SentencesAstro, &st.RulesExtracted,
			&st.AverageConfidence, &st.Method, &ts); err != nil {
			return nil, err
		}
		st.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("store: parse extraction stats timestamp: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
