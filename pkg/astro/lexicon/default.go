package lexicon

// Default returns the built-in classical-astrology lexicon. It is the
// configuration baseline described in spec.md §9: "classical-text
// lexicons... are configuration data, not code." Callers that need an
// extended or house-specific vocabulary load an overlay with Load.
func Default() *Lexicon {
	return &Lexicon{
		PlanetVariants: map[string]string{
			"sun": "Sun", "surya": "Sun", "ravi": "Sun",
			"moon": "Moon", "chandra": "Moon", "soma": "Moon",
			"mars": "Mars", "mangal": "Mars", "mangala": "Mars", "kuja": "Mars", "angaraka": "Mars",
			"mercury": "Mercury", "budha": "Mercury", "buddh": "Mercury",
			"jupiter": "Jupiter", "guru": "Jupiter", "brihaspati": "Jupiter",
			"venus": "Venus", "shukra": "Venus", "sukra": "Venus",
			"saturn": "Saturn", "shani": "Saturn", "sani": "Saturn",
			"rahu": "Rahu",
			"ketu": "Ketu",
		},
		SignVariants: map[string]string{
			"aries": "Aries", "mesha": "Aries", "mesh": "Aries",
			"taurus": "Taurus", "vrishabha": "Taurus", "vrishabh": "Taurus",
			"gemini": "Gemini", "mithuna": "Gemini",
			"cancer": "Cancer", "karka": "Cancer", "kark": "Cancer",
			"leo": "Leo", "simha": "Leo",
			"virgo": "Virgo", "kanya": "Virgo",
			"libra": "Libra", "tula": "Libra",
			"scorpio": "Scorpio", "vrishchika": "Scorpio", "vrischika": "Scorpio",
			"sagittarius": "Sagittarius", "dhanu": "Sagittarius", "dhanus": "Sagittarius",
			"capricorn": "Capricorn", "makara": "Capricorn",
			"aquarius": "Aquarius", "kumbha": "Aquarius",
			"pisces": "Pisces", "meena": "Pisces", "mina": "Pisces",
		},
		HouseWords: map[string]int{
			"1st": 1, "first": 1, "lagna": 1, "tanu": 1,
			"2nd": 2, "second": 2, "dhana": 2,
			"3rd": 3, "third": 3, "sahaja": 3,
			"4th": 4, "fourth": 4, "sukha": 4, "bandhu": 4,
			"5th": 5, "fifth": 5, "putra": 5,
			"6th": 6, "sixth": 6, "ripu": 6, "shatru": 6,
			"7th": 7, "seventh": 7, "yuvati": 7, "kalatra": 7,
			"8th": 8, "eighth": 8, "ayu": 8, "randhra": 8,
			"9th": 9, "ninth": 9, "dharma": 9, "bhagya": 9,
			"10th": 10, "tenth": 10, "karma": 10,
			"11th": 11, "eleventh": 11, "labha": 11,
			"12th": 12, "twelfth": 12, "vyaya": 12,
		},
		Nakshatras: []string{
			"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
			"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
			"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
			"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta",
			"Shatabhisha", "Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
		},
		Yogas: []string{
			"Raja Yoga", "Gaja Kesari", "Dhana Yoga", "Budhaditya", "Chandra Mangal",
			"Neecha Bhanga", "Vipareeta Raja", "Panch Mahapurusha", "Kemadruma",
			"Adhi Yoga", "Shakata Yoga",
		},
		EffectIndicators: []string{
			"causes", "gives", "indicates", "brings", "creates", "produces",
			"results in", "leads to", "bestows", "grants", "confers",
		},
		KeywordCategoryMap: map[string]string{
			"marriage": "marriage", "spouse": "marriage", "wedding": "marriage",
			"wealth": "wealth", "money": "wealth", "riches": "wealth", "prosperity": "wealth",
			"career": "career", "profession": "career", "job": "career",
			"health": "health", "disease": "health", "illness": "health",
			"spiritual": "spiritual", "moksha": "spiritual", "devotion": "spiritual",
			"conflict": "conflict", "dispute": "conflict", "enemies": "conflict", "discord": "conflict",
		},
		PositiveWords: []string{
			"fortune", "success", "prosperity", "happiness", "auspicious",
			"blessed", "gain", "wealth", "growth", "harmony", "courage",
		},
		NegativeWords: []string{
			"discord", "conflict", "loss", "misfortune", "obstacles",
			"disease", "affliction", "malefic", "enemies", "delay", "debt",
		},
		AbbreviationExceptions: []string{
			"mr", "mrs", "dr", "st", "no", "ch", "v", "etc",
		},
		PrefixWords: []string{
			"self", "non", "pre", "co", "re", "sub", "well", "ill",
		},
		StrongKeywords: []string{
			"lagna", "ascendant", "bhava", "dasha", "yoga", "nakshatra",
			"aspect", "conjunct", "exalt", "debilitat", "lord of",
		},
	}
}
