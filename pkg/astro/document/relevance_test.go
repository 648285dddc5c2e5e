package document

import (
	"testing"

	"jyotishkb/pkg/astro/lexicon"
)

func TestIsAstrologicalPlanet(t *testing.T) {
	m := newRelevanceMatcher(lexicon.Default())
	if !m.isAstrological("Mars in the 7th house causes discord.") {
		t.Error("expected sentence with planet to be astrological")
	}
}

func TestIsAstrologicalKeywordOnly(t *testing.T) {
	m := newRelevanceMatcher(lexicon.Default())
	if !m.isAstrological("This yoga is considered very auspicious.") {
		t.Error("expected sentence with 'yoga' keyword to be astrological")
	}
}

func TestIsAstrologicalRejectsUnrelated(t *testing.T) {
	m := newRelevanceMatcher(lexicon.Default())
	if m.isAstrological("The weather today is sunny and warm.") {
		t.Error("expected unrelated sentence to be rejected")
	}
}
