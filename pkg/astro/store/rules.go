package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jyotishkb/pkg/astro/model"
)

// StoreOutcome classifies what happened to a rule submitted to the
// store, per the external API of spec.md §6.
type StoreOutcome string

const (
	StoreOutcomeStored    StoreOutcome = "STORED"
	StoreOutcomeDuplicate StoreOutcome = "DUPLICATE"
	StoreOutcomeRejected  StoreOutcome = "REJECTED"
)

// validateRule enforces the stored-rule invariants of spec.md §8.1: a
// valid confidence, authority level, at least one effect, and a primary
// condition key.
func validateRule(r model.Rule) error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return model.NewValidationError("confidence", fmt.Sprintf("%f out of range [0,1]", r.Confidence))
	}
	if !r.AuthorityLevel.Valid() {
		return model.NewValidationError("authority_level", fmt.Sprintf("invalid authority level %d", r.AuthorityLevel))
	}
	if len(r.Effects) == 0 {
		return model.NewValidationError("effects", "at least one effect is required")
	}
	if !r.Conditions.HasPrimaryKey() {
		return model.NewValidationError("conditions", "at least one of planet, house, sign is required")
	}
	if r.Conditions.House < 0 || r.Conditions.House > 12 {
		return model.NewValidationError("conditions.house", "must be in 1-12")
	}
	if r.Conditions.LordOf < 0 || r.Conditions.LordOf > 12 {
		return model.NewValidationError("conditions.lord_of", "must be in 1-12")
	}
	return nil
}

// StoreRule computes the rule's deterministic id, validates it, and
// inserts it atomically. A pre-existing id is a no-op (spec.md §4.4).
func (s *Store) StoreRule(ctx context.Context, r model.Rule) (model.Rule, StoreOutcome, error) {
	if _, err := s.GetSource(ctx, r.SourceTitle); err != nil {
		return model.Rule{}, StoreOutcomeRejected, err
	}
	if err := validateRule(r); err != nil {
		return model.Rule{}, StoreOutcomeRejected, err
	}

	r.ID = RuleID(r.SourceTitle, r.OriginalText, r.Conditions)
	now := time.Now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now

	var outcome StoreOutcome
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		exists, err := ruleExistsTx(ctx, tx, r.ID)
		if err != nil {
			return err
		}
		if exists {
			outcome = StoreOutcomeDuplicate
			return nil
		}
		if err := insertRuleTx(ctx, tx, r); err != nil {
			return err
		}
		outcome = StoreOutcomeStored
		return nil
	})
	if err != nil {
		return model.Rule{}, StoreOutcomeRejected, err
	}
	return r, outcome, nil
}

// StoreRulesBatch inserts rules in a single transaction. Per spec.md
// §4.4, a per-row failure skips only that row; each insert runs inside
// its own savepoint so a constraint violation never aborts the batch.
// It returns the count actually inserted (duplicates and rejects are
// not counted).
func (s *Store) StoreRulesBatch(ctx context.Context, rules []model.Rule) (int, error) {
	inserted := 0
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		for _, r := range rules {
			if _, err := getSourceTx(ctx, tx, r.SourceTitle); err != nil {
				continue
			}
			if err := validateRule(r); err != nil {
				continue
			}

			r.ID = RuleID(r.SourceTitle, r.OriginalText, r.Conditions)
			now := time.Now().UTC()
			r.CreatedAt, r.UpdatedAt = now, now

			exists, err := ruleExistsTx(ctx, tx, r.ID)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			if _, err := tx.ExecContext(ctx, `SAVEPOINT row_insert`); err != nil {
				return fmt.Errorf("store: open savepoint: %w", err)
			}
			if err := insertRuleTx(ctx, tx, r); err != nil {
				if _, rbErr := tx.ExecContext(ctx, `ROLLBACK TO row_insert`); rbErr != nil {
					return fmt.Errorf("store: rollback savepoint: %w", rbErr)
				}
				tx.ExecContext(ctx, `RELEASE row_insert`)
				continue
			}
			if _, err := tx.ExecContext(ctx, `RELEASE row_insert`); err != nil {
				return fmt.Errorf("store: release savepoint: %w", err)
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

func ruleExistsTx(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var count int
	err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM rules WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("store: check rule existence: %w", err)
	}
	return count > 0, nil
}

func insertRuleTx(ctx context.Context, tx *sql.Tx, r model.Rule) error {
	row, err := toRuleRow(r)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO rules (
			id, original_text, corrected_text, planet, house, sign, nakshatra,
			aspect, strength, lord_of, ascendant, effects, polarity, tags,
			category, source_title, page, chapter, verse, authority_level,
			confidence, extraction_method, correction, validated, created_at,
			updated_at, last_corrected_digest
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.OriginalText, row.CorrectedText, row.Planet, row.House, row.Sign, row.Nakshatra,
		row.Aspect, row.Strength, row.LordOf, row.Ascendant, row.Effects, row.Polarity, row.Tags,
		row.Category, row.SourceTitle, row.Page, row.Chapter, row.Verse, row.AuthorityLevel,
		row.Confidence, row.ExtractionMethod, row.Correction, row.Validated, row.CreatedAt,
		row.UpdatedAt, row.LastCorrectedDigest,
	)
	if err != nil {
		return fmt.Errorf("store: insert rule: %w", err)
	}
	return nil
}

// GetRule looks up a rule by id.
func (s *Store) GetRule(ctx context.Context, id string) (model.Rule, error) {
	row, err := scanRuleRow(s.db.QueryRowContext(ctx, ruleSelectColumns+` FROM rules WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Rule{}, model.NewNotFound(id)
		}
		return model.Rule{}, err
	}
	return row.toRule()
}

// ApplyCorrection writes an accepted correction back to a rule: updates
// corrected_text, correction, last_corrected_digest, and updated_at.
// Every other field is immutable (spec.md §4.4).
func (s *Store) ApplyCorrection(ctx context.Context, ruleID, correctedText string, correction model.Correction, digest string) error {
	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		correctionJSON, err := marshalCorrection(correction)
		if err != nil {
			return err
		}
		now := time.Now().UTC().Format(time.RFC3339Nano)
		res, err := tx.ExecContext(ctx,
			`UPDATE rules SET corrected_text = ?, correction = ?, last_corrected_digest = ?, updated_at = ? WHERE id = ?`,
			correctedText, correctionJSON, digest, now, ruleID,
		)
		if err != nil {
			return fmt.Errorf("store: apply correction: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return model.NewNotFound(ruleID)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO correction_audit (rule_id, accepted, model_id, confidence, temperature, timestamp) VALUES (?, 1, ?, ?, ?, ?)`,
			ruleID, correction.ModelID, correction.Confidence, correction.Temperature, now,
		); err != nil {
			return fmt.Errorf("store: record correction audit: %w", err)
		}
		return nil
	})
}

// RecordRejection appends a rejection entry to the audit trail without
// touching the rule row, and advances last_corrected_digest so the rule
// is not retried until original_text changes.
func (s *Store) RecordRejection(ctx context.Context, ruleID string, reason model.CorrectionRejectReason, detail, digest string) error {
	return s.withWriteTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO correction_audit (rule_id, accepted, reason, detail, timestamp) VALUES (?, 0, ?, ?, ?)`,
			ruleID, string(reason), detail, time.Now().UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("store: record rejection: %w", err)
		}
		_, err := tx.ExecContext(ctx, `UPDATE rules SET last_corrected_digest = ? WHERE id = ?`, digest, ruleID)
		if err != nil {
			return fmt.Errorf("store: advance digest: %w", err)
		}
		return nil
	})
}

func marshalCorrection(c model.Correction) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("store: marshal correction: %w", err)
	}
	return string(b), nil
}
