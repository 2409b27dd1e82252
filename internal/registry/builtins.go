package registry

import (
	"regexp"

	"fjacquet/subscan/internal/models"
)

var builtinTable = []struct {
	pattern string
	kind    models.PatternType
	score   int
	hints   models.ExtractorHints
}{
	{
		pattern: `(?i)\b(?:welcome\s+to\b|thanks?\s+(?:you\s+)?for\s+subscribing|you(?:'ve|\s+have)\s+(?:successfully\s+)?subscribed|subscription\s+(?:is\s+now\s+active|has\s+been\s+activated|(?:is\s+)?confirmed))`,
		kind:    models.PatternSubscriptionConfirmation,
		score:   85,
		hints:   models.ExtractorHints{ServiceName: true},
	},
	{
		pattern: `(?i)\b(?:payment|charge)\b.{0,60}?\b(?:has\s+been|was|is)\s+(?:successfully\s+)?(?:processed|received|completed|confirmed)|\b(?:payment|charge)\s+(?:received|successful|confirmed)|\breceipt\s+for\s+your\b`,
		kind:    models.PatternPaymentConfirmation,
		score:   80,
		hints:   models.ExtractorHints{Amount: true, ServiceName: true},
	},
	{
		pattern: `(?i)\b(?:free\s+)?trial\s+(?:ends|will\s+end|is\s+ending|expires|will\s+expire|is\s+about\s+to\s+(?:end|expire))`,
		kind:    models.PatternTrialEnding,
		score:   85,
		hints:   models.ExtractorHints{ServiceName: true, Date: true},
	},
	{
		pattern: `(?i)\b(?:will\s+(?:automatically\s+)?(?:auto-?)?renew|(?:is\s+)?(?:set|scheduled)\s+to\s+renew|renews\s+on|renewal\s+(?:date|reminder|notice)|next\s+billing\s+date)`,
		kind:    models.PatternRenewalNotice,
		score:   80,
		hints:   models.ExtractorHints{Amount: true, ServiceName: true, Date: true},
	},
	{
		pattern: `(?i)\b(?:price\s+(?:change|increase|update)|(?:increas|chang|updat)(?:e|es|ed|ing)\s+(?:to\s+)?(?:your\s+)?(?:subscription\s+|membership\s+|plan\s+)?price)`,
		kind:    models.PatternPriceChange,
		score:   85,
		hints:   models.ExtractorHints{Amount: true, ServiceName: true},
	},
	{
		pattern: `(?i)\b(?:(?:subscription|membership|plan)\s+(?:has\s+been|was|is)\s+cancel+ed|cancel+ation\s+(?:is\s+)?confirmed|you(?:'ve|\s+have)\s+cancel+ed)`,
		kind:    models.PatternCancellation,
		score:   85,
		hints:   models.ExtractorHints{ServiceName: true},
	},
	{
		pattern: `(?i)\b(?:recurring|automatic|auto-?)\s*payments?\b|\bauto-?pay\b`,
		kind:    models.PatternPaymentConfirmation,
		score:   70,
		hints:   models.ExtractorHints{Amount: true},
	},
}

// Builtins returns the built-in entries in registration order.
func Builtins() []models.PatternEntry {
	out := make([]models.PatternEntry, 0, len(builtinTable))
	for _, b := range builtinTable {
		out = append(out, models.PatternEntry{
			Pattern: regexp.MustCompile(b.pattern),
			Type:    b.kind,
			Score:   b.score,
			Hints:   b.hints,
			Source:  models.SourceBuiltin,
		})
	}
	return out
}
