// Package currencyutils provides amount parsing, currency resolution and
// display formatting for extracted amounts.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/subscan/internal/lexicon"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when neither the match nor its context names a currency.
const DefaultCurrency = "USD"

var (
	isoWordPattern = regexp.MustCompile(`\b([A-Z]{3})\b`)

	domainPatterns  = compileTable(lexicon.DomainCurrencies, `(?i)[a-z0-9-]`, `\b`)
	countryPatterns = compileTable(lexicon.CountryCurrencies, `(?i)\b`, `\b`)
)

type codePattern struct {
	re   *regexp.Regexp
	code string
}

func compileTable(entries []lexicon.CodeEntry, prefix, suffix string) []codePattern {
	out := make([]codePattern, 0, len(entries))
	for _, e := range entries {
		out = append(out, codePattern{
			re:   regexp.MustCompile(prefix + regexp.QuoteMeta(e.Key) + suffix),
			code: e.Code,
		})
	}
	return out
}

// ParseAmount parses a matched number. Every comma is treated as a decimal
// separator, so "9,99" is 9.99 while "1,234.56" becomes "1.234.56" and fails.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.ReplaceAll(amountStr, ",", "."))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount '%s'", amountStr)
	}
	return amount, nil
}

// ParseAmountFloat is ParseAmount returning a float64 and a success flag.
func ParseAmountFloat(amountStr string) (float64, bool) {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		return 0, false
	}
	f, _ := amount.Float64()
	return f, true
}

// DetectCurrencyFromContext looks for currency evidence anywhere in text:
// ISO code words first, then web domains, then country names.
func DetectCurrencyFromContext(text string) (string, bool) {
	for _, m := range isoWordPattern.FindAllStringSubmatch(text, -1) {
		if lexicon.IsISOCode(m[1]) {
			return m[1], true
		}
	}
	for _, p := range domainPatterns {
		if p.re.MatchString(text) {
			return p.code, true
		}
	}
	for _, p := range countryPatterns {
		if p.re.MatchString(text) {
			return p.code, true
		}
	}
	return "", false
}

// ResolveCurrency picks the currency for an amount match. Explicit ISO codes win
// over symbols, symbols over spelled-out names, and names over the message context.
func ResolveCurrency(code, symbol, name, text string) string {
	if c := strings.ToUpper(strings.TrimSpace(code)); lexicon.IsISOCode(c) {
		return c
	}
	if symbol != "" {
		if c, ok := lexicon.SymbolCode(symbol); ok {
			return c
		}
	}
	if name != "" {
		if c, ok := lexicon.NameCode(name); ok {
			return c
		}
	}
	if c, ok := DetectCurrencyFromContext(text); ok {
		return c
	}
	return DefaultCurrency
}

// FormatAmount formats an amount with two decimals and the currency's symbol
// when it has an unambiguous one, e.g. "$9.99", "€4.50" or "CHF 12.00".
func FormatAmount(value float64, currency string) string {
	formatted := decimal.NewFromFloat(value).StringFixed(2)

	switch strings.ToUpper(currency) {
	case "":
		return formatted
	case "USD":
		return "$" + formatted
	case "EUR":
		return "€" + formatted
	case "GBP":
		return "£" + formatted
	case "JPY":
		return "¥" + formatted
	case "INR":
		return "₹" + formatted
	default:
		return strings.ToUpper(currency) + " " + formatted
	}
}

// FormatPlain formats an amount with two decimals and no currency, e.g. "9.99".
func FormatPlain(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}
