package document

import (
	"regexp"
	"strings"

	"jyotishkb/pkg/astro/lexicon"
)

var whitespaceRunRE = regexp.MustCompile(`\s+`)
var hyphenBreakRE = regexp.MustCompile(`(\p{L}+)-\n(\p{L})`)
var wordTokenRE = regexp.MustCompile(`[A-Za-z]+`)

// cleanPages applies the deterministic normalization pipeline of spec.md
// §4.1 to every page's raw text, in place, and returns the cleaned pages.
// The per-term respace regexes are compiled once for the whole document,
// not per page.
func cleanPages(pages []PageText, lex *lexicon.Lexicon) []PageText {
	headers := detectRepeatedLines(pages)
	respacers := compileRespacers(lex)
	out := make([]PageText, len(pages))
	for i, p := range pages {
		text := stripRepeatedLines(p.Text, headers)
		text = dehyphenate(text, lex)
		text = collapseWhitespace(text)
		text = respaceOCRBoundaries(text, respacers)
		text = canonicalizeSpellings(text, lex)
		out[i] = PageText{Number: p.Number, Text: text}
	}
	return out
}

// detectRepeatedLines finds short lines (likely headers/footers) that
// recur across at least 60% of pages, per spec.md §4.1.1.
func detectRepeatedLines(pages []PageText) map[string]bool {
	if len(pages) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, p := range pages {
		seenOnPage := make(map[string]bool)
		for _, line := range strings.Split(p.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || len(line) > 80 {
				continue
			}
			if !seenOnPage[line] {
				counts[line]++
				seenOnPage[line] = true
			}
		}
	}
	threshold := float64(len(pages)) * 0.6
	headers := make(map[string]bool)
	for line, c := range counts {
		if float64(c) >= threshold {
			headers[line] = true
		}
	}
	return headers
}

func stripRepeatedLines(text string, headers map[string]bool) string {
	if len(headers) == 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if headers[strings.TrimSpace(line)] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// dehyphenate undoes hyphenation across line breaks ("word-\nbreak" ->
// "wordbreak"), except where the left fragment is itself a known word
// (spec.md §4.1.2), in which case the hyphen is kept and the break is
// simply replaced with a space.
func dehyphenate(text string, lex *lexicon.Lexicon) string {
	return hyphenBreakRE.ReplaceAllStringFunc(text, func(m string) string {
		sub := hyphenBreakRE.FindStringSubmatch(m)
		left, right := sub[1], sub[2]
		if isPrefixWord(left, lex) {
			return left + "- " + right
		}
		return left + right
	})
}

func isPrefixWord(fragment string, lex *lexicon.Lexicon) bool {
	f := strings.ToLower(fragment)
	for _, w := range lex.PrefixWords {
		if f == w {
			return true
		}
	}
	return false
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRunRE.ReplaceAllString(text, " "))
}

// respacer holds one boundary term's compiled left/right gluing patterns.
type respacer struct {
	before *regexp.Regexp // letter glued onto the term's left edge
	after  *regexp.Regexp // letter glued onto the term's right edge
}

func compileRespacers(lex *lexicon.Lexicon) []respacer {
	terms := boundaryTerms(lex)
	out := make([]respacer, len(terms))
	for i, term := range terms {
		out[i] = respacer{
			before: regexp.MustCompile(`(?i)([a-z])(` + regexp.QuoteMeta(term) + `)`),
			after:  regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(term) + `)([a-z])`),
		}
	}
	return out
}

// respaceOCRBoundaries re-inserts spaces around lexicon terms that OCR
// commonly glues to neighboring words, e.g. "Marsin7thhouse" ->
// "Mars in 7th house" (spec.md §4.1.3). This is lexicon-driven only.
func respaceOCRBoundaries(text string, respacers []respacer) string {
	for _, r := range respacers {
		text = r.before.ReplaceAllString(text, "$1 $2")
		text = r.after.ReplaceAllStringFunc(text, func(m string) string {
			sub := r.after.FindStringSubmatch(m)
			return sub[1] + " " + sub[2]
		})
	}
	return whitespaceRunRE.ReplaceAllString(text, " ")
}

func boundaryTerms(lex *lexicon.Lexicon) []string {
	var terms []string
	for v := range lex.PlanetVariants {
		terms = append(terms, v)
	}
	for v := range lex.SignVariants {
		terms = append(terms, v)
	}
	terms = append(terms, "lagna", "dasha", "yoga", "bhava", "house", "nakshatra")
	for w := range lex.HouseWords {
		terms = append(terms, w)
	}
	return terms
}

// canonicalizeSpellings normalizes recognized planet/sign variant tokens
// in free text to their canonical spelling (spec.md §4.1.4), leaving
// everything else untouched.
func canonicalizeSpellings(text string, lex *lexicon.Lexicon) string {
	return wordTokenRE.ReplaceAllStringFunc(text, func(tok string) string {
		if canon, ok := lex.CanonicalPlanet(tok); ok {
			return canon
		}
		if canon, ok := lex.CanonicalSign(tok); ok {
			return canon
		}
		return tok
	})
}
