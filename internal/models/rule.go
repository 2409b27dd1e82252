package models

// PatternRule is the persisted form of a PatternEntry, as written in a
// ruleset file or learned from user feedback.
type PatternRule struct {
	Pattern string         `yaml:"pattern" json:"pattern"`
	Type    string         `yaml:"type" json:"type"`
	Score   int            `yaml:"score" json:"score"`
	Hints   ExtractorHints `yaml:"hints,omitempty" json:"hints"`
}

// PatternRuleSet is the top-level structure of a ruleset file.
type PatternRuleSet struct {
	Rules []PatternRule `yaml:"rules"`
}
