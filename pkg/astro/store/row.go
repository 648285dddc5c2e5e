package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"jyotishkb/pkg/astro/model"
)

// ruleRow is the flattened, nullable-aware representation of a Rule as
// stored in the rules table.
type ruleRow struct {
	ID                  string
	OriginalText        string
	CorrectedText       sql.NullString
	Planet              sql.NullString
	House               sql.NullInt64
	Sign                sql.NullString
	Nakshatra           sql.NullString
	Aspect              sql.NullString
	Strength            sql.NullString
	LordOf              sql.NullInt64
	Ascendant           sql.NullString
	Effects             string
	Polarity            string
	Tags                sql.NullString
	Category            string
	SourceTitle         string
	Page                sql.NullInt64
	Chapter             sql.NullString
	Verse               sql.NullString
	AuthorityLevel      int
	Confidence          float64
	ExtractionMethod    string
	Correction          sql.NullString
	Validated           bool
	CreatedAt           string
	UpdatedAt           string
	LastCorrectedDigest sql.NullString
}

func toRuleRow(r model.Rule) (ruleRow, error) {
	effectsJSON, err := json.Marshal(r.Effects)
	if err != nil {
		return ruleRow{}, fmt.Errorf("store: marshal effects: %w", err)
	}
	var tagsJSON []byte
	if len(r.Tags) > 0 {
		tagsJSON, err = json.Marshal(r.Tags)
		if err != nil {
			return ruleRow{}, fmt.Errorf("store: marshal tags: %w", err)
		}
	}
	var correctionJSON []byte
	if r.Correction != nil {
		correctionJSON, err = json.Marshal(r.Correction)
		if err != nil {
			return ruleRow{}, fmt.Errorf("store: marshal correction: %w", err)
		}
	}

	row := ruleRow{
		ID:               r.ID,
		OriginalText:     r.OriginalText,
		Effects:          string(effectsJSON),
		Polarity:         string(r.Polarity),
		Category:         string(r.Category),
		SourceTitle:      r.SourceTitle,
		AuthorityLevel:   int(r.AuthorityLevel),
		Confidence:       r.Confidence,
		ExtractionMethod: r.ExtractionMethod,
		Validated:        r.Validated,
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.CorrectedText != "" {
		row.CorrectedText = sql.NullString{String: r.CorrectedText, Valid: true}
	}
	if r.Conditions.Planet != "" {
		row.Planet = sql.NullString{String: r.Conditions.Planet, Valid: true}
	}
	if r.Conditions.House != 0 {
		row.House = sql.NullInt64{Int64: int64(r.Conditions.House), Valid: true}
	}
	if r.Conditions.Sign != "" {
		row.Sign = sql.NullString{String: r.Conditions.Sign, Valid: true}
	}
	if r.Conditions.Nakshatra != "" {
		row.Nakshatra = sql.NullString{String: r.Conditions.Nakshatra, Valid: true}
	}
	if r.Conditions.Aspect != "" {
		row.Aspect = sql.NullString{String: r.Conditions.Aspect, Valid: true}
	}
	if r.Conditions.Strength != "" {
		row.Strength = sql.NullString{String: r.Conditions.Strength, Valid: true}
	}
	if r.Conditions.LordOf != 0 {
		row.LordOf = sql.NullInt64{Int64: int64(r.Conditions.LordOf), Valid: true}
	}
	if r.Conditions.Ascendant != "" {
		row.Ascendant = sql.NullString{String: r.Conditions.Ascendant, Valid: true}
	}
	if len(tagsJSON) > 0 {
		row.Tags = sql.NullString{String: string(tagsJSON), Valid: true}
	}
	if r.Page != 0 {
		row.Page = sql.NullInt64{Int64: int64(r.Page), Valid: true}
	}
	if r.Chapter != "" {
		row.Chapter = sql.NullString{String: r.Chapter, Valid: true}
	}
	if r.Verse != "" {
		row.Verse = sql.NullString{String: r.Verse, Valid: true}
	}
	if len(correctionJSON) > 0 {
		row.Correction = sql.NullString{String: string(correctionJSON), Valid: true}
	}
	if r.LastCorrectedDigest != "" {
		row.LastCorrectedDigest = sql.NullString{String: r.LastCorrectedDigest, Valid: true}
	}
	return row, nil
}

func (row ruleRow) toRule() (model.Rule, error) {
	var effects []string
	if err := json.Unmarshal([]byte(row.Effects), &effects); err != nil {
		return model.Rule{}, fmt.Errorf("store: unmarshal effects: %w", err)
	}
	var tags []string
	if row.Tags.Valid {
		if err := json.Unmarshal([]byte(row.Tags.String), &tags); err != nil {
			return model.Rule{}, fmt.Errorf("store: unmarshal tags: %w", err)
		}
	}
	var correction *model.Correction
	if row.Correction.Valid {
		correction = &model.Correction{}
		if err := json.Unmarshal([]byte(row.Correction.String), correction); err != nil {
			return model.Rule{}, fmt.Errorf("store: unmarshal correction: %w", err)
		}
	}

	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return model.Rule{}, fmt.Errorf("store: parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return model.Rule{}, fmt.Errorf("store: parse updated_at: %w", err)
	}

	r := model.Rule{
		ID:               row.ID,
		OriginalText:     row.OriginalText,
		CorrectedText:    row.CorrectedText.String,
		Effects:          effects,
		Polarity:         model.Polarity(row.Polarity),
		Tags:             tags,
		Category:         model.Category(row.Category),
		SourceTitle:      row.SourceTitle,
		Chapter:          row.Chapter.String,
		Verse:            row.Verse.String,
		AuthorityLevel:   model.AuthorityLevel(row.AuthorityLevel),
		Confidence:       row.Confidence,
		ExtractionMethod: row.ExtractionMethod,
		Correction:       correction,
		Validated:        row.Validated,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
		LastCorrectedDigest: row.LastCorrectedDigest.String,
	}
	r.Conditions = model.Conditions{
		Planet:    row.Planet.String,
		Sign:      row.Sign.String,
		Nakshatra: row.Nakshatra.String,
		Aspect:    row.Aspect.String,
		Strength:  row.Strength.String,
		Ascendant: row.Ascendant.String,
	}
	if row.House.Valid {
		r.Conditions.House = int(row.House.Int64)
	}
	if row.LordOf.Valid {
		r.Conditions.LordOf = int(row.LordOf.Int64)
	}
	if row.Page.Valid {
		r.Page = int(row.Page.Int64)
	}
	return r, nil
}
