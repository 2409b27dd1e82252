package extractor

import (
	"regexp"
	"strings"

	"fjacquet/subscan/internal/currencyutils"
	"fjacquet/subscan/internal/lexicon"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
)

const numberPattern = `(\d+(?:[.,]\d+)*)`

// amountPattern is one row of the amount table. Group indexes of zero mean
// the pattern has no such group.
type amountPattern struct {
	name        string
	re          *regexp.Regexp
	confidence  float64
	numberGroup int
	codeGroup   int
	symbolGroup int
	nameGroup   int
	// strictCode makes a match count only when its code group is a known ISO code.
	strictCode bool
	// keywords, when set, must appear in the lower-cased text.
	keywords []string
}

// AmountExtractor finds the first monetary amount in a message.
type AmountExtractor struct {
	patterns []amountPattern
	logger   logging.Logger
}

// NewAmountExtractor builds the amount table.
func NewAmountExtractor(logger logging.Logger) *AmountExtractor {
	return &AmountExtractor{
		patterns: buildAmountPatterns(),
		logger:   orDefaultLogger(logger),
	}
}

func alternation(entries []lexicon.CodeEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, regexp.QuoteMeta(e.Key))
	}
	return strings.Join(parts, "|")
}

func symbolClass() string {
	var b strings.Builder
	b.WriteString("[")
	for _, e := range lexicon.SingleSymbols {
		b.WriteString(regexp.QuoteMeta(e.Key))
	}
	b.WriteString("]")
	return b.String()
}

func currencyNameAlternation() string {
	parts := make([]string, 0, len(lexicon.CurrencyNames))
	for _, e := range lexicon.CurrencyNames {
		parts = append(parts, regexp.QuoteMeta(e.Key))
	}
	return strings.Join(parts, "|")
}

func regionalDollarAlternation() string {
	parts := make([]string, 0, len(lexicon.RegionalDollarNames))
	for _, e := range lexicon.RegionalDollarNames {
		parts = append(parts, strings.ReplaceAll(regexp.QuoteMeta(e.Key), " ", `\s+`))
	}
	return strings.Join(parts, "|")
}

// intervalWords are the period nouns accepted after an amount.
const intervalWords = `(?:/\s*|per\s+|a\s+)(?:month|mo|year|yr|week|wk|quarter|day)\b`

func buildAmountPatterns() []amountPattern {
	sym := symbolClass()
	optCode := `(?:([A-Za-z]{3})\s*)?`
	optSym := `(?:(` + sym + `)\s?)?`

	return []amountPattern{
		// Explicit symbols and codes.
		{
			name:        "multi-symbol-before",
			re:          regexp.MustCompile(`(` + alternation(lexicon.MultiCharSymbols) + `)\s*` + numberPattern),
			confidence:  0.9,
			symbolGroup: 1, numberGroup: 2,
		},
		{
			name:        "symbol-before",
			re:          regexp.MustCompile(`(` + sym + `)\s?` + numberPattern),
			confidence:  0.9,
			symbolGroup: 1, numberGroup: 2,
		},
		{
			name:       "code-before",
			re:         regexp.MustCompile(`\b([A-Z]{3})\s?` + numberPattern),
			confidence: 0.9,
			codeGroup:  1, numberGroup: 2, strictCode: true,
		},
		{
			name:        "multi-symbol-after",
			re:          regexp.MustCompile(numberPattern + `\s?(` + alternation(lexicon.MultiCharSymbols) + `)`),
			confidence:  0.85,
			numberGroup: 1, symbolGroup: 2,
		},
		{
			name:        "symbol-after",
			re:          regexp.MustCompile(numberPattern + `\s?(` + sym + `)`),
			confidence:  0.85,
			numberGroup: 1, symbolGroup: 2,
		},
		{
			name:        "code-after",
			re:          regexp.MustCompile(numberPattern + `\s?([A-Z]{3})\b`),
			confidence:  0.85,
			numberGroup: 1, codeGroup: 2, strictCode: true,
		},

		// Contextual anchors.
		{
			name:       "payment-of",
			re:         regexp.MustCompile(`(?i)\b(?:payment|charge)\s+of\s+` + optCode + optSym + numberPattern),
			confidence: 0.9,
			codeGroup:  1, symbolGroup: 2, numberGroup: 3,
		},
		{
			name:       "labelled-amount",
			re:         regexp.MustCompile(`(?i)\b(?:amount|price|total)\s*:\s*` + optCode + optSym + numberPattern),
			confidence: 0.9,
			codeGroup:  1, symbolGroup: 2, numberGroup: 3,
		},
		{
			name:       "for-of-decimal",
			re:         regexp.MustCompile(`(?i)\b(?:for|of)\s+` + optCode + optSym + `(\d+[.,]\d{2})\b`),
			confidence: 0.85,
			codeGroup:  1, symbolGroup: 2, numberGroup: 3,
		},

		// Spelled-out currency names.
		{
			name:        "regional-dollars",
			re:          regexp.MustCompile(`(?i)` + numberPattern + `\s*((?:` + regionalDollarAlternation() + `)\s+dollars?)\b`),
			confidence:  0.85,
			numberGroup: 1, nameGroup: 2,
		},
		{
			name:        "currency-name",
			re:          regexp.MustCompile(`(?i)` + numberPattern + `\s*(` + currencyNameAlternation() + `)\b`),
			confidence:  0.85,
			numberGroup: 1, nameGroup: 2,
		},

		// Amount followed by a billing period.
		{
			name:        "amount-interval",
			re:          regexp.MustCompile(`(?i)` + numberPattern + `\s*` + intervalWords),
			confidence:  0.8,
			numberGroup: 1,
		},

		// Bare decimal, only in payment-like messages.
		{
			name:        "bare-decimal",
			re:          regexp.MustCompile(`(\d+\.\d{2})`),
			confidence:  0.6,
			numberGroup: 1,
			keywords:    []string{"subscription", "payment", "charge"},
		},
	}
}

// Extract returns the first amount found in text, or nil.
func (e *AmountExtractor) Extract(text string) *models.NormalizedAmount {
	if isBlank(text) {
		return nil
	}
	lower := strings.ToLower(text)

	for _, p := range e.patterns {
		if len(p.keywords) > 0 && !containsAnyWord(lower, p.keywords) {
			continue
		}
		m := p.firstMatch(text)
		if m == nil {
			continue
		}

		value, ok := currencyutils.ParseAmountFloat(group(m, p.numberGroup))
		if !ok {
			e.logger.Debug("Amount pattern matched an unparseable number",
				logging.Field{Key: "pattern", Value: p.name},
				logging.Field{Key: "match", Value: m[0]})
			continue
		}

		currency := currencyutils.ResolveCurrency(
			group(m, p.codeGroup), group(m, p.symbolGroup), group(m, p.nameGroup), text)

		e.logger.Debug("Amount extracted",
			logging.Field{Key: "pattern", Value: p.name},
			logging.Field{Key: logging.FieldConfidence, Value: p.confidence})

		return &models.NormalizedAmount{
			Value:        value,
			Currency:     currency,
			OriginalText: strings.TrimSpace(m[0]),
			Confidence:   p.confidence,
		}
	}
	return nil
}

// firstMatch returns the first match of the pattern. For strict-code patterns,
// matches whose code is not a known ISO code are skipped.
func (p amountPattern) firstMatch(text string) []string {
	if !p.strictCode {
		return p.re.FindStringSubmatch(text)
	}
	for _, m := range p.re.FindAllStringSubmatch(text, -1) {
		if lexicon.IsISOCode(group(m, p.codeGroup)) {
			return m
		}
	}
	return nil
}

func group(m []string, i int) string {
	if i <= 0 || i >= len(m) {
		return ""
	}
	return m[i]
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
