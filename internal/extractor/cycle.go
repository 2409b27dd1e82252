package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"fjacquet/subscan/internal/lexicon"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/textutils"
)

type cyclePhrasePattern struct {
	re    *regexp.Regexp
	cycle models.BillingCycle
}

type intervalPattern struct {
	re         *regexp.Regexp
	confidence float64
}

// CycleExtractor detects how often a subscription is billed.
type CycleExtractor struct {
	dictionary []cyclePhrasePattern
	intervals  []intervalPattern
	contextual []cyclePhrasePattern
	suffixes   []cyclePhrasePattern
	logger     logging.Logger
}

// NewCycleExtractor compiles the cycle tables.
func NewCycleExtractor(logger logging.Logger) *CycleExtractor {
	compile := func(phrases []lexicon.CyclePhrase) []cyclePhrasePattern {
		out := make([]cyclePhrasePattern, 0, len(phrases))
		for _, p := range phrases {
			out = append(out, cyclePhrasePattern{re: textutils.WordPattern(p.Phrase), cycle: p.Cycle})
		}
		return out
	}

	suffixes := make([]cyclePhrasePattern, 0, len(lexicon.IntervalSuffixes))
	for _, s := range lexicon.IntervalSuffixes {
		// Digit or currency symbol, an optional code or currency word, then the period.
		re := regexp.MustCompile(`(?i)[\d\p{Sc}](?:\s*[a-z]{1,10})?\s*` + s.Pattern)
		suffixes = append(suffixes, cyclePhrasePattern{re: re, cycle: s.Cycle})
	}

	return &CycleExtractor{
		dictionary: compile(lexicon.CyclePhrases()),
		intervals: []intervalPattern{
			{re: regexp.MustCompile(`(?i)\bevery\s+(\d+)\s+(months?|years?)\b`), confidence: 0.9},
			{re: regexp.MustCompile(`(?i)\b(\d+)[-\s](month|year)\b`), confidence: 0.85},
		},
		contextual: compile(lexicon.ContextualCyclePhrases()),
		suffixes:   suffixes,
		logger:     orDefaultLogger(logger),
	}
}

// MaxIntervalMonths is the longest numeric interval accepted; longer ones
// make the interval pattern non-matching.
const MaxIntervalMonths = 1200

// Extract returns the billing cycle named in text, or nil.
func (e *CycleExtractor) Extract(text string) *models.ExtractedBillingCycle {
	if isBlank(text) {
		return nil
	}

	if c := firstPhrase(e.dictionary, text); c != "" {
		return e.result("dictionary", c, 0, 0.9)
	}

	for _, p := range e.intervals {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			n, err := strconv.Atoi(m[1])
			if err != nil || n == 0 || n > MaxIntervalMonths {
				continue
			}
			if strings.HasPrefix(strings.ToLower(m[2]), "year") {
				n *= 12
			}
			if n > MaxIntervalMonths {
				continue
			}
			cycle := lexicon.CycleForMonths(n)
			if cycle == models.CycleCustom {
				return e.result("interval", cycle, uint32(n), p.confidence-0.05)
			}
			return e.result("interval", cycle, 0, p.confidence)
		}
	}

	if c := firstPhrase(e.contextual, text); c != "" {
		return e.result("contextual", c, 0, 0.85)
	}

	if c := firstPhrase(e.suffixes, text); c != "" {
		return e.result("amount-suffix", c, 0, 0.8)
	}

	lower := strings.ToLower(text)
	if textutils.ContainsAny(lower, "subscription", "recurring") &&
		textutils.ContainsAny(lower, "payment", "charge", "billing") {
		return e.result("fallback", models.CycleMonthly, 0, 0.6)
	}
	return nil
}

func firstPhrase(patterns []cyclePhrasePattern, text string) models.BillingCycle {
	for _, p := range patterns {
		if p.re.MatchString(text) {
			return p.cycle
		}
	}
	return ""
}

func (e *CycleExtractor) result(tier string, cycle models.BillingCycle, interval uint32, confidence float64) *models.ExtractedBillingCycle {
	e.logger.Debug("Billing cycle extracted",
		logging.Field{Key: "tier", Value: tier},
		logging.Field{Key: "cycle", Value: string(cycle)},
		logging.Field{Key: logging.FieldConfidence, Value: confidence})
	return &models.ExtractedBillingCycle{
		Cycle:          cycle,
		IntervalMonths: interval,
		Confidence:     confidence,
	}
}
