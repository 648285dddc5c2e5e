package document

import (
	"testing"

	"jyotishkb/pkg/astro/lexicon"
)

func TestSegmentBasic(t *testing.T) {
	lex := lexicon.Default()
	got := segment("Mars in the 7th house causes discord. Venus brings love.", lex)
	want := []string{"Mars in the 7th house causes discord.", "Venus brings love."}
	if len(got) != len(want) {
		t.Fatalf("segment() returned %d sentences, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSegmentRespectsAbbreviation(t *testing.T) {
	lex := lexicon.Default()
	got := segment("Dr. Sharma notes Mars in 7th house gives discord.", lex)
	if len(got) != 1 {
		t.Fatalf("segment() split on abbreviation, got %d sentences: %v", len(got), got)
	}
}

func TestSplitConjunctive(t *testing.T) {
	got := SplitConjunctive("Mars in 1st gives X; Mars in 7th gives Y")
	if len(got) != 2 {
		t.Fatalf("SplitConjunctive() returned %d parts, want 2: %v", len(got), got)
	}
}
