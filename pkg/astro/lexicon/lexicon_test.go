package lexicon

import (
	"os"
	"testing"
)

func TestCanonicalPlanetVariants(t *testing.T) {
	lex := Default()
	cases := map[string]string{
		"Mangal": "Mars",
		"Kuja":   "Mars",
		"Surya":  "Sun",
		"Ravi":   "Sun",
		"mars":   "Mars",
	}
	for in, want := range cases {
		got, ok := lex.CanonicalPlanet(in)
		if !ok || got != want {
			t.Errorf("CanonicalPlanet(%q) = %q, %v; want %q, true", in, got, ok, want)
		}
	}
}

func TestCanonicalSignVariants(t *testing.T) {
	lex := Default()
	got, ok := lex.CanonicalSign("Mesha")
	if !ok || got != "Aries" {
		t.Errorf("CanonicalSign(Mesha) = %q, %v; want Aries, true", got, ok)
	}
}

func TestHouseNumberBoundaries(t *testing.T) {
	lex := Default()
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1st", 1, true},
		{"first", 1, true},
		{"lagna", 1, true},
		{"12th", 12, true},
		{"twelfth", 12, true},
		{"vyaya", 12, true},
		{"13th", 0, false},
		{"seventh", 7, true},
	}
	for _, tt := range tests {
		got, ok := lex.HouseNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("HouseNumber(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsNakshatraClosedSet(t *testing.T) {
	lex := Default()
	if !lex.IsNakshatra("Ashwini") {
		t.Error("expected Ashwini to be a recognized nakshatra")
	}
	if lex.IsNakshatra("NotAReal Nakshatra") {
		t.Error("expected unrecognized nakshatra to be rejected")
	}
}

func TestLoadMergesOverlay(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/lexicon.yaml"
	content := []byte("planet_variants:\n  bhanu: Sun\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	lex, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := lex.CanonicalPlanet("bhanu")
	if !ok || got != "Sun" {
		t.Errorf("overlay CanonicalPlanet(bhanu) = %q, %v; want Sun, true", got, ok)
	}
	// Defaults survive the overlay merge.
	got, ok = lex.CanonicalPlanet("mangal")
	if !ok || got != "Mars" {
		t.Errorf("default CanonicalPlanet(mangal) lost after overlay: %q, %v", got, ok)
	}
}
