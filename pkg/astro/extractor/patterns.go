package extractor

import (
	"regexp"
	"strings"

	"jyotishkb/pkg/astro/lexicon"
	"jyotishkb/pkg/astro/model"
)

// patternSet compiles the ordered pattern battery against a lexicon.
// Patterns are tried most-specific first; the first match with at least
// one condition key wins for the sentence.
type patternSet struct {
	lex *lexicon.Lexicon

	planetAlt string
	signAlt   string
	houseAlt  string

	basicPlacementHouse *regexp.Regexp
	basicPlacementSign  *regexp.Regexp
	ascendantSpecific   *regexp.Regexp
	aspect              *regexp.Regexp
	lordship            *regexp.Regexp
	nakshatraPlacement  []nakshatraPattern

	// Loose single-token matchers shared by the fallbacks and
	// yogaConditions; compiled once like the battery patterns above.
	planetToken *regexp.Regexp
	signToken   *regexp.Regexp
	houseToken  *regexp.Regexp
	housePhrase *regexp.Regexp // "<ordinal> house"
}

// nakshatraPattern pairs one nakshatra's compiled placement regex with
// its canonical name.
type nakshatraPattern struct {
	name string
	re   *regexp.Regexp
}

func newPatternSet(lex *lexicon.Lexicon) *patternSet {
	ps := &patternSet{lex: lex}
	ps.planetAlt = altGroup(planetWords(lex))
	ps.signAlt = altGroup(signWords(lex))
	ps.houseAlt = altGroup(houseWords(lex))

	ps.basicPlacementHouse = regexp.MustCompile(`(?i)\b(` + ps.planetAlt + `)\s+in\s+(?:the\s+)?(` + ps.houseAlt + `)\s*house\b`)
	ps.basicPlacementSign = regexp.MustCompile(`(?i)\b(` + ps.planetAlt + `)\s+in\s+(` + ps.signAlt + `)\b`)
	ps.ascendantSpecific = regexp.MustCompile(`(?i)for\s+(` + ps.signAlt + `)\s+(?:ascendant|lagna)\s*,?\s+(` + ps.planetAlt + `)\s+in\s+(?:the\s+)?(` + ps.houseAlt + `)\s*house\b`)
	ps.aspect = regexp.MustCompile(`(?i)\b(` + ps.planetAlt + `)\s+(aspects|conjunct|with)\s+(` + ps.planetAlt + `)\b`)
	ps.lordship = regexp.MustCompile(`(?i)(?:the\s+)?lord\s+of\s+(?:the\s+)?(` + ps.houseAlt + `)\s+in\s+(?:the\s+)?(` + ps.houseAlt + `|` + ps.signAlt + `)\b`)
	for _, nak := range lex.Nakshatras {
		ps.nakshatraPlacement = append(ps.nakshatraPlacement, nakshatraPattern{
			name: nak,
			re:   regexp.MustCompile(`(?i)\b(` + ps.planetAlt + `)\s+in\s+` + regexp.QuoteMeta(nak) + `\b(?:\s+nakshatra)?`),
		})
	}
	ps.planetToken = regexp.MustCompile(`(?i)\b(` + ps.planetAlt + `)\b`)
	ps.signToken = regexp.MustCompile(`(?i)\b(` + ps.signAlt + `)\b`)
	ps.houseToken = regexp.MustCompile(`(?i)\b(` + ps.houseAlt + `)\b`)
	ps.housePhrase = regexp.MustCompile(`(?i)\b(` + ps.houseAlt + `)\s*house\b`)
	return ps
}

var yogaPhraseRE = regexp.MustCompile(`(?i)([A-Za-z][A-Za-z ]*?)\s+yoga\s+(is formed|occurs|gives)`)

func altGroup(words []string) string {
	if len(words) == 0 {
		return "$^" // matches nothing
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(quoted, "|")
}

func planetWords(lex *lexicon.Lexicon) []string {
	seen := make(map[string]bool)
	var out []string
	for v := range lex.PlanetVariants {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	for _, p := range lexicon.Planets {
		lp := strings.ToLower(p)
		if !seen[lp] {
			out = append(out, lp)
			seen[lp] = true
		}
	}
	return out
}

func signWords(lex *lexicon.Lexicon) []string {
	seen := make(map[string]bool)
	var out []string
	for v := range lex.SignVariants {
		if !seen[v] {
			out = append(out, v)
			seen[v] = true
		}
	}
	for _, s := range lexicon.Signs {
		ls := strings.ToLower(s)
		if !seen[ls] {
			out = append(out, ls)
			seen[ls] = true
		}
	}
	return out
}

func houseWords(lex *lexicon.Lexicon) []string {
	var out []string
	for w := range lex.HouseWords {
		out = append(out, w)
	}
	return out
}

// matchBasicPlacement implements pattern 1 of spec.md §4.2.
func (ps *patternSet) matchBasicPlacement(sentence string) (*candidate, bool) {
	if m := ps.basicPlacementHouse.FindStringSubmatchIndex(sentence); m != nil {
		sub := ps.basicPlacementHouse.FindStringSubmatch(sentence)
		planet, ok1 := ps.lex.CanonicalPlanet(sub[1])
		house, ok2 := ps.lex.HouseNumber(sub[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		return &candidate{
			Conditions:       model.Conditions{Planet: planet, House: house},
			Category:         model.CategoryPlanetaryPlacement,
			ExtractionMethod: MethodBasicPlacement,
			Remainder:        sentence[m[1]:],
		}, true
	}
	if sub := ps.basicPlacementSign.FindStringSubmatch(sentence); sub != nil {
		planet, ok1 := ps.lex.CanonicalPlanet(sub[1])
		sign, ok2 := ps.lex.CanonicalSign(sub[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		idx := ps.basicPlacementSign.FindStringIndex(sentence)
		return &candidate{
			Conditions:       model.Conditions{Planet: planet, Sign: sign},
			Category:         model.CategoryPlanetaryPlacement,
			ExtractionMethod: MethodBasicPlacement,
			Remainder:        sentence[idx[1]:],
		}, true
	}
	return nil, false
}

// matchAscendantSpecific implements pattern 2.
func (ps *patternSet) matchAscendantSpecific(sentence string) (*candidate, bool) {
	sub := ps.ascendantSpecific.FindStringSubmatch(sentence)
	if sub == nil {
		return nil, false
	}
	sign, ok1 := ps.lex.CanonicalSign(sub[1])
	planet, ok2 := ps.lex.CanonicalPlanet(sub[2])
	house, ok3 := ps.lex.HouseNumber(sub[3])
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	idx := ps.ascendantSpecific.FindStringIndex(sentence)
	return &candidate{
		Conditions:       model.Conditions{Planet: planet, House: house, Ascendant: sign},
		Category:         model.CategoryPlanetaryPlacement,
		ExtractionMethod: MethodAscendantSpecific,
		Remainder:        sentence[idx[1]:],
	}, true
}

// matchAspect implements pattern 3.
func (ps *patternSet) matchAspect(sentence string) (*candidate, bool) {
	sub := ps.aspect.FindStringSubmatch(sentence)
	if sub == nil {
		return nil, false
	}
	p1, ok1 := ps.lex.CanonicalPlanet(sub[1])
	p2, ok2 := ps.lex.CanonicalPlanet(sub[3])
	if !ok1 || !ok2 {
		return nil, false
	}
	idx := ps.aspect.FindStringIndex(sentence)
	return &candidate{
		Conditions:       model.Conditions{Planet: p1, Aspect: strings.ToLower(sub[2])},
		Category:         model.CategoryAspect,
		ExtractionMethod: MethodAspect,
		Tags:             []string{strings.ToLower(p2)},
		Remainder:        sentence[idx[1]:],
	}, true
}

// matchLordship implements pattern 4.
func (ps *patternSet) matchLordship(sentence string) (*candidate, bool) {
	sub := ps.lordship.FindStringSubmatch(sentence)
	if sub == nil {
		return nil, false
	}
	lordOf, ok1 := ps.lex.HouseNumber(sub[1])
	if !ok1 {
		return nil, false
	}
	cond := model.Conditions{LordOf: lordOf}
	if house, ok := ps.lex.HouseNumber(sub[2]); ok {
		cond.House = house
	} else if sign, ok := ps.lex.CanonicalSign(sub[2]); ok {
		cond.Sign = sign
	} else {
		return nil, false
	}
	idx := ps.lordship.FindStringIndex(sentence)
	return &candidate{
		Conditions:       cond,
		Category:         model.CategoryHouseLordship,
		ExtractionMethod: MethodLordship,
		Remainder:        sentence[idx[1]:],
	}, true
}

// matchNakshatra implements pattern 5.
func (ps *patternSet) matchNakshatra(sentence string) (*candidate, bool) {
	for _, np := range ps.nakshatraPlacement {
		sub := np.re.FindStringSubmatch(sentence)
		if sub == nil {
			continue
		}
		planet, ok := ps.lex.CanonicalPlanet(sub[1])
		if !ok {
			continue
		}
		idx := np.re.FindStringIndex(sentence)
		return &candidate{
			Conditions:       model.Conditions{Planet: planet, Nakshatra: np.name},
			Category:         model.CategoryNakshatra,
			ExtractionMethod: MethodNakshatra,
			Remainder:        sentence[idx[1]:],
		}, true
	}
	return nil, false
}

// yogaConditions captures the planet/house/sign a yoga sentence mentions
// alongside the yoga name, so a yoga rule can satisfy the same
// at-least-one-of-{planet,house,sign} invariant every other rule must
// (spec.md §3.2). A yoga sentence with no such token produces no
// condition and matchYoga reports no match, letting the relaxed/keyword
// fallbacks have a try instead of storing an unstoreable rule.
func (ps *patternSet) yogaConditions(sentence string) model.Conditions {
	cond := model.Conditions{}
	if sub := ps.planetToken.FindString(sentence); sub != "" {
		if p, ok := ps.lex.CanonicalPlanet(sub); ok {
			cond.Planet = p
		}
	}
	if sub := ps.housePhrase.FindStringSubmatch(sentence); sub != nil {
		if h, ok := ps.lex.HouseNumber(sub[1]); ok {
			cond.House = h
		}
	}
	if cond.House == 0 {
		if sub := ps.signToken.FindString(sentence); sub != "" {
			if s, ok := ps.lex.CanonicalSign(sub); ok {
				cond.Sign = s
			}
		}
	}
	return cond
}

// matchYoga implements pattern 6.
func (ps *patternSet) matchYoga(sentence string) (*candidate, bool) {
	lower := strings.ToLower(sentence)
	for _, yoga := range ps.lex.Yogas {
		if strings.Contains(lower, strings.ToLower(yoga)) {
			cond := ps.yogaConditions(sentence)
			if !cond.HasPrimaryKey() {
				return nil, false
			}
			return &candidate{
				Conditions:       cond,
				Category:         model.CategoryYoga,
				ExtractionMethod: MethodYoga,
				Tags:             []string{yoga},
				Remainder:        sentence,
			}, true
		}
	}
	if sub := yogaPhraseRE.FindStringSubmatch(sentence); sub != nil {
		cond := ps.yogaConditions(sentence)
		if !cond.HasPrimaryKey() {
			return nil, false
		}
		return &candidate{
			Conditions:       cond,
			Category:         model.CategoryYoga,
			ExtractionMethod: MethodYoga,
			Tags:             []string{strings.TrimSpace(sub[1]) + " Yoga"},
			Remainder:        sentence,
		}, true
	}
	return nil, false
}

// matchBattery tries every pattern in priority order and returns the
// first match with at least one condition key. The ascendant-specific
// pattern runs before basic placement: its clause embeds a
// "<planet> in <house> house" span that basic placement would otherwise
// claim, dropping the ascendant.
func (ps *patternSet) matchBattery(sentence string) (*candidate, bool) {
	matchers := []func(string) (*candidate, bool){
		ps.matchAscendantSpecific,
		ps.matchBasicPlacement,
		ps.matchAspect,
		ps.matchLordship,
		ps.matchNakshatra,
		ps.matchYoga,
	}
	for _, m := range matchers {
		if c, ok := m(sentence); ok {
			if c.Conditions.HasPrimaryKey() || c.Conditions.Aspect != "" || c.Conditions.LordOf != 0 {
				return c, true
			}
		}
	}
	return nil, false
}
