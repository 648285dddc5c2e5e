package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"jyotishkb/pkg/astro/model"
)

// RuleID computes the deterministic, content-addressed id for a rule: a
// pure function of (source_title, normalized_text, canonical(conditions))
// per spec.md §4.4. Two ingests of the same PDF producing the same
// sentence and conditions collapse to the same id, which is what makes
// re-ingestion idempotent (spec.md §8 scenario S5).
func RuleID(sourceTitle, originalText string, cond model.Conditions) string {
	h := sha256.New()
	h.Write([]byte(sourceTitle))
	h.Write([]byte{0})
	h.Write([]byte(normalizeText(originalText)))
	h.Write([]byte{0})
	h.Write([]byte(canonicalConditions(cond)))
	return hex.EncodeToString(h.Sum(nil))
}

// normalizeText lowercases and collapses whitespace so that trivial
// re-extraction of the same sentence (different surrounding whitespace)
// still hashes identically.
func normalizeText(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	return strings.Join(fields, " ")
}

// canonicalConditions produces a stable, order-independent string
// encoding of a Conditions value so the hash does not depend on struct
// field order or zero-value representation choices.
func canonicalConditions(c model.Conditions) string {
	return fmt.Sprintf(
		"planet=%s;house=%d;sign=%s;nakshatra=%s;aspect=%s;strength=%s;lord_of=%d;ascendant=%s",
		strings.ToLower(c.Planet), c.House, strings.ToLower(c.Sign), strings.ToLower(c.Nakshatra),
		strings.ToLower(c.Aspect), strings.ToLower(c.Strength), c.LordOf, strings.ToLower(c.Ascendant),
	)
}
