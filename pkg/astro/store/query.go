package store

import (
	"context"
	"fmt"
	"strings"

	"jyotishkb/pkg/astro/model"
)

const ruleSelectColumns = `SELECT
	id, original_text, corrected_text, planet, house, sign, nakshatra,
	aspect, strength, lord_of, ascendant, effects, polarity, tags,
	category, source_title, page, chapter, verse, authority_level,
	confidence, extraction_method, correction, validated, created_at,
	updated_at, last_corrected_digest`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRuleRow(rs rowScanner) (ruleRow, error) {
	var row ruleRow
	err := rs.Scan(
		&row.ID, &row.OriginalText, &row.CorrectedText, &row.Planet, &row.House, &row.Sign, &row.Nakshatra,
		&row.Aspect, &row.Strength, &row.LordOf, &row.Ascendant, &row.Effects, &row.Polarity, &row.Tags,
		&row.Category, &row.SourceTitle, &row.Page, &row.Chapter, &row.Verse, &row.AuthorityLevel,
		&row.Confidence, &row.ExtractionMethod, &row.Correction, &row.Validated, &row.CreatedAt,
		&row.UpdatedAt, &row.LastCorrectedDigest,
	)
	return row, err
}

// OrderBy is the closed set of sort keys spec.md §4.4 exposes.
type OrderBy string

const (
	OrderByRelevance  OrderBy = "relevance"
	OrderByConfidence OrderBy = "confidence"
	OrderByAuthority  OrderBy = "authority"
	OrderByCreatedAt  OrderBy = "created_at"
)

// SearchFilters is the closed set of query criteria spec.md §4.4
// supports. Zero values mean "unconstrained" for that field.
type SearchFilters struct {
	Planet           string
	House            int
	Sign             string
	Nakshatra        string
	Ascendant        string
	LordOf           int
	SourceTitle      string
	AuthorityLevel   model.AuthorityLevel
	Category         model.Category
	Tags             []string
	MinConfidence    float64
	MaxConfidence    float64
	EffectContains   string
	ExtractionMethod string
	OrderBy          OrderBy
	Limit            int
	Offset           int
}

// relevanceExpr is spec.md §4.4's ranking formula expressed over the
// rules table's columns, so ordering happens in SQL and LIMIT/OFFSET
// select from the ranked rows: rules from more authoritative sources
// and with higher confidence sort first.
const relevanceExpr = `(0.4 * (4 - authority_level) / 3.0 + 0.6 * confidence)`

// Search runs a multi-criteria query over stored rules, ordered per
// filters.OrderBy (default: relevance desc, created_at asc as tiebreak).
func (s *Store) Search(ctx context.Context, filters SearchFilters) ([]model.Rule, error) {
	var where []string
	var args []interface{}

	add := func(clause string, arg interface{}) {
		where = append(where, clause)
		args = append(args, arg)
	}

	if filters.Planet != "" {
		add("planet = ?", filters.Planet)
	}
	if filters.House != 0 {
		add("house = ?", filters.House)
	}
	if filters.Sign != "" {
		add("sign = ?", filters.Sign)
	}
	if filters.Nakshatra != "" {
		add("nakshatra = ?", filters.Nakshatra)
	}
	if filters.Ascendant != "" {
		add("ascendant = ?", filters.Ascendant)
	}
	if filters.LordOf != 0 {
		add("lord_of = ?", filters.LordOf)
	}
	if filters.SourceTitle != "" {
		add("source_title = ?", filters.SourceTitle)
	}
	if filters.AuthorityLevel != 0 {
		add("authority_level = ?", int(filters.AuthorityLevel))
	}
	if filters.Category != "" {
		add("category = ?", string(filters.Category))
	}
	if filters.ExtractionMethod != "" {
		add("extraction_method = ?", filters.ExtractionMethod)
	}
	if filters.MinConfidence != 0 {
		add("confidence >= ?", filters.MinConfidence)
	}
	if filters.MaxConfidence != 0 {
		add("confidence <= ?", filters.MaxConfidence)
	}
	if filters.EffectContains != "" {
		add("LOWER(effects) LIKE ?", "%"+strings.ToLower(filters.EffectContains)+"%")
	}
	if len(filters.Tags) > 0 {
		var tagClauses []string
		for _, tag := range filters.Tags {
			tagClauses = append(tagClauses, "LOWER(tags) LIKE ?")
			args = append(args, "%\""+strings.ToLower(tag)+"\"%")
		}
		where = append(where, "("+strings.Join(tagClauses, " OR ")+")")
	}

	query := ruleSelectColumns + " FROM rules"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch filters.OrderBy {
	case OrderByConfidence:
		query += " ORDER BY confidence DESC, created_at ASC"
	case OrderByAuthority:
		query += " ORDER BY authority_level ASC, created_at ASC"
	case OrderByCreatedAt:
		query += " ORDER BY created_at ASC"
	default:
		// Relevance, also the unspecified default (spec.md §5).
		query += " ORDER BY " + relevanceExpr + " DESC, created_at ASC"
	}

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filters.Limit)
	} else if filters.Offset > 0 {
		// SQLite needs a LIMIT clause to carry an OFFSET; -1 is unbounded.
		query += " LIMIT -1"
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filters.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	defer rows.Close()

	var rules []model.Rule
	for rows.Next() {
		row, err := scanRuleRow(rows)
		if err != nil {
			return nil, err
		}
		r, err := row.toRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rules, nil
}

// FieldOptions reports the distinct values seen for the enumerable
// filter fields, letting a caller build a search UI without hardcoding
// the lexicon (SPEC_FULL.md §12).
func (s *Store) FieldOptions(ctx context.Context) (map[string][]string, error) {
	fields := map[string]string{
		"planet":    "planet",
		"sign":      "sign",
		"nakshatra": "nakshatra",
		"ascendant": "ascendant",
		"category":  "category",
	}
	out := make(map[string][]string, len(fields))
	for key, column := range fields {
		rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
			"SELECT DISTINCT %s FROM rules WHERE %s IS NOT NULL AND %s != '' ORDER BY %s", column, column, column, column))
		if err != nil {
			return nil, fmt.Errorf("store: field options %s: %w", key, err)
		}
		var values []string
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, err
			}
			values = append(values, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, err
		}
		out[key] = values
	}
	return out, nil
}
