// Package lexicon holds the classical-text spelling tables and keyword
// lists used by the Document Processor and Rule Extractor. These are
// configuration data, not code (spec.md §9): Default returns the
// built-in tables, and Load reads an override/extension from YAML.
package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon is the full set of closed vocabularies and spelling tables
// consulted by document cleaning and rule extraction.
type Lexicon struct {
	// PlanetVariants maps a lowercase spelling variant to its canonical
	// planet name (e.g. "surya" -> "Sun").
	PlanetVariants map[string]string `yaml:"planet_variants"`
	// SignVariants maps a lowercase spelling variant to its canonical
	// zodiac sign name (e.g. "mesha" -> "Aries").
	SignVariants map[string]string `yaml:"sign_variants"`
	// HouseWords maps ordinal words and Sanskrit house names to house
	// numbers 1-12 (e.g. "seventh" -> 7, "lagna" -> 1, "vyaya" -> 12).
	HouseWords map[string]int `yaml:"house_words"`
	// Nakshatras is the closed list of the 27 lunar mansions, in order.
	Nakshatras []string `yaml:"nakshatras"`
	// Yogas is the closed list of recognized named planetary combinations.
	Yogas []string `yaml:"yogas"`
	// EffectIndicators are verbs/phrases marking condition -> effect.
	EffectIndicators []string `yaml:"effect_indicators"`
	// KeywordCategoryMap maps a dominant keyword to a derived category
	// label, used when no explicit effect indicator is present.
	KeywordCategoryMap map[string]string `yaml:"keyword_category_map"`
	// PositiveWords and NegativeWords drive polarity inference.
	PositiveWords []string `yaml:"positive_words"`
	NegativeWords []string `yaml:"negative_words"`
	// AbbreviationExceptions are tokens ending in '.' that do not end a
	// sentence (e.g. "Mr.", "Dr.", "no.").
	AbbreviationExceptions []string `yaml:"abbreviation_exceptions"`
	// PrefixWords are left-fragments of a hyphenated line break that are
	// themselves valid words and should NOT be joined to the next line
	// (spec.md §4.1.2).
	PrefixWords []string `yaml:"prefix_words"`
	// StrongKeywords are the keyword-only fallback's relevance triggers.
	StrongKeywords []string `yaml:"strong_keywords"`
}

// Load reads a YAML lexicon extension file and merges it on top of
// Default(). Missing keys in the file simply leave the default value.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}
	lex := Default()
	var overlay Lexicon
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("lexicon: parse %s: %w", path, err)
	}
	lex.merge(&overlay)
	return lex, nil
}

func (l *Lexicon) merge(o *Lexicon) {
	for k, v := range o.PlanetVariants {
		l.PlanetVariants[strings.ToLower(k)] = v
	}
	for k, v := range o.SignVariants {
		l.SignVariants[strings.ToLower(k)] = v
	}
	for k, v := range o.HouseWords {
		l.HouseWords[strings.ToLower(k)] = v
	}
	l.Nakshatras = appendUnique(l.Nakshatras, o.Nakshatras)
	l.Yogas = appendUnique(l.Yogas, o.Yogas)
	l.EffectIndicators = appendUnique(l.EffectIndicators, o.EffectIndicators)
	for k, v := range o.KeywordCategoryMap {
		l.KeywordCategoryMap[strings.ToLower(k)] = v
	}
	l.PositiveWords = appendUnique(l.PositiveWords, o.PositiveWords)
	l.NegativeWords = appendUnique(l.NegativeWords, o.NegativeWords)
	l.AbbreviationExceptions = appendUnique(l.AbbreviationExceptions, o.AbbreviationExceptions)
	l.PrefixWords = appendUnique(l.PrefixWords, o.PrefixWords)
	l.StrongKeywords = appendUnique(l.StrongKeywords, o.StrongKeywords)
}

func appendUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, b := range base {
		seen[strings.ToLower(b)] = true
	}
	for _, e := range extra {
		if !seen[strings.ToLower(e)] {
			base = append(base, e)
			seen[strings.ToLower(e)] = true
		}
	}
	return base
}

// Planets is the closed set of recognized planets, in canonical spelling.
var Planets = []string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

// Signs is the closed set of zodiac signs, in order.
var Signs = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// IsPlanet reports whether s (canonical form) is a recognized planet.
func IsPlanet(s string) bool {
	for _, p := range Planets {
		if strings.EqualFold(p, s) {
			return true
		}
	}
	return false
}

// IsSign reports whether s (canonical form) is a recognized zodiac sign.
func IsSign(s string) bool {
	for _, sg := range Signs {
		if strings.EqualFold(sg, s) {
			return true
		}
	}
	return false
}

// CanonicalPlanet normalizes a planet spelling variant (case-insensitive)
// to its canonical form. Returns "", false if unrecognized.
func (l *Lexicon) CanonicalPlanet(word string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if v, ok := l.PlanetVariants[w]; ok {
		return v, true
	}
	if IsPlanet(word) {
		return canonicalCase(word, Planets), true
	}
	return "", false
}

// CanonicalSign normalizes a sign spelling variant to its canonical form.
func (l *Lexicon) CanonicalSign(word string) (string, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	if v, ok := l.SignVariants[w]; ok {
		return v, true
	}
	if IsSign(word) {
		return canonicalCase(word, Signs), true
	}
	return "", false
}

func canonicalCase(word string, set []string) string {
	for _, s := range set {
		if strings.EqualFold(s, word) {
			return s
		}
	}
	return word
}

// HouseNumber resolves an ordinal word, digit string, or Sanskrit house
// name to an integer 1-12. Returns 0, false if not resolvable or out of
// range (spec.md boundary: "13th" is rejected).
func (l *Lexicon) HouseNumber(word string) (int, bool) {
	w := strings.ToLower(strings.TrimSpace(word))
	w = strings.TrimSuffix(w, ".")
	if n, ok := l.HouseWords[w]; ok {
		if n >= 1 && n <= 12 {
			return n, true
		}
		return 0, false
	}
	return 0, false
}

// IsNakshatra reports whether s is one of the 27 closed nakshatra names.
func (l *Lexicon) IsNakshatra(s string) bool {
	for _, n := range l.Nakshatras {
		if strings.EqualFold(n, s) {
			return true
		}
	}
	return false
}

// IsYoga reports whether s names a recognized yoga.
func (l *Lexicon) IsYoga(s string) bool {
	for _, y := range l.Yogas {
		if strings.Contains(strings.ToLower(s), strings.ToLower(y)) {
			return true
		}
	}
	return false
}
