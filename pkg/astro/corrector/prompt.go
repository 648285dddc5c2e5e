package corrector

import (
	"fmt"
	"strconv"
	"strings"
)

// buildPrompt implements the prompt contract of spec.md §4.3: fix only
// OCR-like defects, preserve every condition token verbatim after
// canonical normalization, never invent new astrological claims, and
// return one corrected string per input plus confidence and a tag set.
func buildPrompt(items []BatchItem) string {
	var sb strings.Builder
	sb.WriteString(`You are repairing OCR-damaged text extracted from classical astrology books.

For each numbered entry below, fix word spacing, hyphenation artifacts, missing punctuation, and obvious OCR misspellings. Preserve every planet, sign, nakshatra, house, and ordinal number token exactly as given (after normalizing its spelling). Do not add, remove, or alter any astrological claim. Do not invent new text.

Respond with ONLY a JSON array with exactly `)
	sb.WriteString(strconv.Itoa(len(items)))
	sb.WriteString(` elements, in the same order as the input, one object per entry:
[
  {"corrected_text": "<repaired text>", "confidence": <float 0-1>, "fixes_applied": ["spacing"|"hyphenation"|"punctuation"|"spelling"|"sanskrit_preservation"|"grammar"]}
]

Entries:
`)
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, item.OriginalText))
	}
	return sb.String()
}

// extractJSONArray locates the first top-level JSON array in a raw model
// response, mirroring the substring-extraction approach the classifier
// providers use for JSON objects.
func extractJSONArray(response string) (string, bool) {
	start := strings.Index(response, "[")
	end := strings.LastIndex(response, "]")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return response[start : end+1], true
}
