// Package model defines the entities shared by every stage of the
// knowledge pipeline: source books, rules, and their provenance.
package model

import "time"

// AuthorityLevel ranks the reliability of a SourceBook.
type AuthorityLevel int

const (
	AuthorityClassical   AuthorityLevel = 1
	AuthorityTraditional AuthorityLevel = 2
	AuthorityModern      AuthorityLevel = 3
)

// Valid reports whether a is one of the closed set of authority levels.
func (a AuthorityLevel) Valid() bool {
	return a == AuthorityClassical || a == AuthorityTraditional || a == AuthorityModern
}

// SourceBook identifies a book that rules are extracted from.
type SourceBook struct {
	Title          string         `json:"title"`
	Author         string         `json:"author,omitempty"`
	AuthorityLevel AuthorityLevel `json:"authority_level"`
}

// Polarity classifies the emotional/outcome direction of a rule's effects.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
	PolarityNeutral  Polarity = "neutral"
	PolarityMixed    Polarity = "mixed"
)

// Category is the closed set of rule categories.
type Category string

const (
	CategoryPlanetaryPlacement Category = "planetary_placement"
	CategoryHouseLordship      Category = "house_lordship"
	CategoryAspect             Category = "aspect"
	CategoryNakshatra          Category = "nakshatra"
	CategoryYoga               Category = "yoga"
	CategoryOther              Category = "other"
)

// Conditions is the closed-key, typed representation of a rule's triggering
// astrological configuration. At least one of Planet, House, Sign must be set
// for a rule to be valid (see Conditions.HasPrimaryKey).
type Conditions struct {
	Planet     string `json:"planet,omitempty"`
	House      int    `json:"house,omitempty"` // 1-12, 0 means absent
	Sign       string `json:"sign,omitempty"`
	Nakshatra  string `json:"nakshatra,omitempty"`
	Aspect     string `json:"aspect,omitempty"`
	Strength   string `json:"strength,omitempty"`
	LordOf     int    `json:"lord_of,omitempty"` // 1-12, 0 means absent
	Ascendant  string `json:"ascendant,omitempty"`
}

// HasPrimaryKey reports whether at least one of {planet, house, sign} is set,
// as required by the invariant in spec.md §3.2.
func (c Conditions) HasPrimaryKey() bool {
	return c.Planet != "" || c.House != 0 || c.Sign != ""
}

// Correction is the audit record attached to a rule once the LLM Corrector
// has produced an accepted correction for it.
type Correction struct {
	Confidence   float64   `json:"confidence"`
	FixesApplied []FixTag  `json:"fixes_applied"`
	ModelID      string    `json:"model_id"`
	Timestamp    time.Time `json:"timestamp"`
	Temperature  float64   `json:"temperature"`
}

// FixTag is drawn from the closed set of correction categories.
type FixTag string

const (
	FixSpacing              FixTag = "spacing"
	FixHyphenation          FixTag = "hyphenation"
	FixPunctuation          FixTag = "punctuation"
	FixSpelling             FixTag = "spelling"
	FixSanskritPreservation FixTag = "sanskrit_preservation"
	FixGrammar              FixTag = "grammar"
)

// Rule is the central entity of the knowledge base.
type Rule struct {
	ID               string         `json:"id"`
	OriginalText     string         `json:"original_text"`
	CorrectedText    string         `json:"corrected_text,omitempty"`
	Conditions       Conditions     `json:"conditions"`
	Effects          []string       `json:"effects"`
	Polarity         Polarity       `json:"polarity"`
	Tags             []string       `json:"tags,omitempty"`
	Category         Category       `json:"category"`
	SourceTitle      string         `json:"source_title"`
	Page             int            `json:"page,omitempty"`
	Chapter          string         `json:"chapter,omitempty"`
	Verse            string         `json:"verse,omitempty"`
	AuthorityLevel   AuthorityLevel `json:"authority_level"`
	Confidence       float64        `json:"confidence"`
	ExtractionMethod string         `json:"extraction_method"`
	Correction       *Correction    `json:"correction,omitempty"`
	Validated        bool           `json:"validated"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// lastCorrectedDigest is the digest of OriginalText at the moment the
	// last correction attempt ran; used by the corrector to skip rules
	// whose original text hasn't changed (§4.3 Idempotence).
	LastCorrectedDigest string `json:"last_corrected_digest,omitempty"`
}

// ExtractionStats is an append-only per-source audit record produced by
// the Document Processor / Rule Extractor pass.
type ExtractionStats struct {
	SourceTitle         string    `json:"source_title"`
	SentencesTotal      int       `json:"sentences_total"`
	SentencesAstro      int       `json:"sentences_astrological"`
	RulesExtracted      int       `json:"rules_extracted"`
	AverageConfidence   float64   `json:"average_confidence"`
	Method              string    `json:"method"`
	Timestamp           time.Time `json:"timestamp"`
}
