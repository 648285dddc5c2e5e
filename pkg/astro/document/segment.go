package document

import (
	"regexp"
	"strings"

	"jyotishkb/pkg/astro/lexicon"
)

var sentenceBoundaryRE = regexp.MustCompile(`[.!?]+\s+`)

// segment splits cleaned page text into sentences on '.'/'!'/'?'
// boundaries, respecting a fixed abbreviation exception list so that
// "Mr. Sharma" does not split mid-name (spec.md §4.1, Segmentation).
func segment(text string, lex *lexicon.Lexicon) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	var buf strings.Builder
	words := strings.Fields(text)
	for i, w := range words {
		buf.WriteString(w)
		if i < len(words)-1 {
			buf.WriteByte(' ')
		}
		if endsSentence(w, lex) {
			s := strings.TrimSpace(buf.String())
			if s != "" {
				sentences = append(sentences, s)
			}
			buf.Reset()
		}
	}
	if rest := strings.TrimSpace(buf.String()); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func endsSentence(word string, lex *lexicon.Lexicon) bool {
	trimmed := strings.TrimRight(word, `"')]`)
	if trimmed == "" {
		return false
	}
	last := trimmed[len(trimmed)-1]
	if last != '.' && last != '!' && last != '?' {
		return false
	}
	if last == '.' {
		stem := strings.ToLower(strings.TrimSuffix(trimmed, "."))
		for _, ab := range lex.AbbreviationExceptions {
			if stem == ab {
				return false
			}
		}
	}
	return true
}

// SplitConjunctive splits a sentence on ';' for the Rule Extractor's
// multi-clause handling (spec.md §4.2: "Mars in 1st gives X; Mars in 7th
// gives Y" produces two candidate rules). Document Processor itself emits
// whole sentences; this helper is exported for the extractor to use.
func SplitConjunctive(sentence string) []string {
	parts := strings.Split(sentence, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
