package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"jyotishkb/pkg/astro/model"
)

// RegisterSource upserts a SourceBook by title. The authority level is
// immutable once a source has been registered; a conflicting second
// registration fails with model.SourceConflict (spec.md §4.4).
func (s *Store) RegisterSource(ctx context.Context, src model.SourceBook) (model.SourceBook, error) {
	if !src.AuthorityLevel.Valid() {
		return model.SourceBook{}, model.NewValidationError("authority_level", fmt.Sprintf("invalid authority level %d", src.AuthorityLevel))
	}

	var result model.SourceBook
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		existing, err := getSourceTx(ctx, tx, src.Title)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil {
			if existing.AuthorityLevel != src.AuthorityLevel {
				return model.NewSourceConflict(src.Title, existing.AuthorityLevel, src.AuthorityLevel)
			}
			result = existing
			return nil
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO sources (title, author, authority_level) VALUES (?, ?, ?)`,
			src.Title, src.Author, src.AuthorityLevel,
		)
		if err != nil {
			return fmt.Errorf("store: insert source: %w", err)
		}
		result = src
		return nil
	})
	if err != nil {
		return model.SourceBook{}, err
	}
	return result, nil
}

// GetSource looks up a registered source by title.
func (s *Store) GetSource(ctx context.Context, title string) (model.SourceBook, error) {
	row := s.db.QueryRowContext(ctx, `SELECT title, author, authority_level FROM sources WHERE title = ?`, title)
	var src model.SourceBook
	if err := row.Scan(&src.Title, &src.Author, &src.AuthorityLevel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.SourceBook{}, model.NewUnknownSource(title)
		}
		return model.SourceBook{}, fmt.Errorf("store: get source: %w", err)
	}
	return src, nil
}

func getSourceTx(ctx context.Context, tx *sql.Tx, title string) (model.SourceBook, error) {
	row := tx.QueryRowContext(ctx, `SELECT title, author, authority_level FROM sources WHERE title = ?`, title)
	var src model.SourceBook
	err := row.Scan(&src.Title, &src.Author, &src.AuthorityLevel)
	return src, err
}

// ListSources returns every registered source, ordered by title.
func (s *Store) ListSources(ctx context.Context) ([]model.SourceBook, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title, author, authority_level FROM sources ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("store: list sources: %w", err)
	}
	defer rows.Close()

	var out []model.SourceBook
	for rows.Next() {
		var src model.SourceBook
		if err := rows.Scan(&src.Title, &src.Author, &src.AuthorityLevel); err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, rows.Err()
}
