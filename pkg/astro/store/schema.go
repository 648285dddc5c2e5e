package store

// schema creates the relational layout of spec.md §4.4: rules, sources,
// extraction_stats, and correction_audit, plus the logical indexes the
// spec requires on source_title, authority_level, confidence, category,
// and the planet, house, sign and nakshatra condition keys.
const schema = `
CREATE TABLE IF NOT EXISTS sources (
	title           TEXT PRIMARY KEY,
	author          TEXT,
	authority_level INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS rules (
	id                     TEXT PRIMARY KEY,
	original_text          TEXT NOT NULL,
	corrected_text         TEXT,
	planet                 TEXT,
	house                  INTEGER,
	sign                   TEXT,
	nakshatra              TEXT,
	aspect                 TEXT,
	strength               TEXT,
	lord_of                INTEGER,
	ascendant              TEXT,
	effects                TEXT NOT NULL,
	polarity               TEXT NOT NULL,
	tags                   TEXT,
	category               TEXT NOT NULL,
	source_title           TEXT NOT NULL REFERENCES sources(title),
	page                   INTEGER,
	chapter                TEXT,
	verse                  TEXT,
	authority_level        INTEGER NOT NULL,
	confidence             REAL NOT NULL,
	extraction_method      TEXT NOT NULL,
	correction             TEXT,
	validated              INTEGER NOT NULL DEFAULT 0,
	created_at             TEXT NOT NULL,
	updated_at             TEXT NOT NULL,
	last_corrected_digest  TEXT
);

CREATE INDEX IF NOT EXISTS idx_rules_source_title      ON rules(source_title);
CREATE INDEX IF NOT EXISTS idx_rules_authority_level    ON rules(authority_level);
CREATE INDEX IF NOT EXISTS idx_rules_confidence         ON rules(confidence);
CREATE INDEX IF NOT EXISTS idx_rules_category           ON rules(category);
CREATE INDEX IF NOT EXISTS idx_rules_planet             ON rules(planet);
CREATE INDEX IF NOT EXISTS idx_rules_house              ON rules(house);
CREATE INDEX IF NOT EXISTS idx_rules_sign               ON rules(sign);
CREATE INDEX IF NOT EXISTS idx_rules_nakshatra          ON rules(nakshatra);

CREATE TABLE IF NOT EXISTS extraction_stats (
	id                  INTEGER PRIMARY KEY AUTOINCREMENT,
	source_title        TEXT NOT NULL,
	sentences_total     INTEGER NOT NULL,
	sentences_astro     INTEGER NOT NULL,
	rules_extracted     INTEGER NOT NULL,
	average_confidence  REAL NOT NULL,
	method              TEXT NOT NULL,
	timestamp           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_extraction_stats_source ON extraction_stats(source_title);

CREATE TABLE IF NOT EXISTS correction_audit (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	rule_id     TEXT NOT NULL,
	accepted    INTEGER NOT NULL,
	reason      TEXT,
	detail      TEXT,
	model_id    TEXT,
	confidence  REAL,
	temperature REAL,
	timestamp   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_correction_audit_rule ON correction_audit(rule_id);
`
