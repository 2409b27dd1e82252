// Package lexicon holds the static vocabularies the extractors match against:
// currency symbols, names and codes, service aliases, billing-cycle phrases and
// calendar names. Every table that is iterated is an ordered slice.
package lexicon

import "strings"

// CodeEntry maps a surface form (symbol, name, TLD or country) to an ISO 4217 code.
type CodeEntry struct {
	Key  string
	Code string
}

// MultiCharSymbols are symbols longer than one rune. They are tried before
// SingleSymbols so that "R$" is not read as "$".
var MultiCharSymbols = []CodeEntry{
	{Key: "US$", Code: "USD"},
	{Key: "HK$", Code: "HKD"},
	{Key: "NZ$", Code: "NZD"},
	{Key: "CHF", Code: "CHF"},
	{Key: "R$", Code: "BRL"},
	{Key: "C$", Code: "CAD"},
	{Key: "A$", Code: "AUD"},
	{Key: "S$", Code: "SGD"},
}

// SingleSymbols are one-rune currency symbols.
var SingleSymbols = []CodeEntry{
	{Key: "$", Code: "USD"},
	{Key: "€", Code: "EUR"},
	{Key: "£", Code: "GBP"},
	{Key: "¥", Code: "JPY"},
	{Key: "₹", Code: "INR"},
	{Key: "₽", Code: "RUB"},
	{Key: "₩", Code: "KRW"},
	{Key: "₺", Code: "TRY"},
	{Key: "₪", Code: "ILS"},
	{Key: "฿", Code: "THB"},
	{Key: "₫", Code: "VND"},
	{Key: "₱", Code: "PHP"},
	{Key: "₦", Code: "NGN"},
}

// ISOCodes is the set of currency codes recognised as explicit codes in text.
var ISOCodes = []string{
	"USD", "EUR", "GBP", "JPY", "INR", "RUB", "KRW", "TRY", "ILS", "THB",
	"VND", "PHP", "NGN", "BRL", "CAD", "AUD", "HKD", "NZD", "SGD", "CHF",
	"CNY", "SEK", "NOK", "DKK", "PLN", "CZK", "HUF", "MXN", "ZAR", "IDR",
	"MYR", "AED", "SAR", "EGP", "KES", "ARS", "CLP", "COP", "PKR", "BDT",
}

// RegionalDollarNames are the qualifiers accepted before "dollars".
var RegionalDollarNames = []CodeEntry{
	{Key: "new zealand", Code: "NZD"},
	{Key: "hong kong", Code: "HKD"},
	{Key: "australian", Code: "AUD"},
	{Key: "singapore", Code: "SGD"},
	{Key: "canadian", Code: "CAD"},
	{Key: "us", Code: "USD"},
}

// CurrencyNames maps spelled-out currency names to codes, plural forms first.
var CurrencyNames = []CodeEntry{
	{Key: "dollars", Code: "USD"},
	{Key: "dollar", Code: "USD"},
	{Key: "euros", Code: "EUR"},
	{Key: "euro", Code: "EUR"},
	{Key: "pounds", Code: "GBP"},
	{Key: "pound", Code: "GBP"},
	{Key: "yen", Code: "JPY"},
	{Key: "rupees", Code: "INR"},
	{Key: "rupee", Code: "INR"},
	{Key: "reais", Code: "BRL"},
	{Key: "francs", Code: "CHF"},
	{Key: "franc", Code: "CHF"},
	{Key: "yuan", Code: "CNY"},
	{Key: "rubles", Code: "RUB"},
	{Key: "ruble", Code: "RUB"},
	{Key: "won", Code: "KRW"},
	{Key: "pesos", Code: "MXN"},
	{Key: "peso", Code: "MXN"},
	{Key: "rand", Code: "ZAR"},
	{Key: "lira", Code: "TRY"},
	{Key: "kronor", Code: "SEK"},
	{Key: "zloty", Code: "PLN"},
}

// DomainCurrencies maps sender or link top-level domains to codes.
// Compound suffixes come first.
var DomainCurrencies = []CodeEntry{
	{Key: ".co.uk", Code: "GBP"},
	{Key: ".com.au", Code: "AUD"},
	{Key: ".com.br", Code: "BRL"},
	{Key: ".co.in", Code: "INR"},
	{Key: ".co.jp", Code: "JPY"},
	{Key: ".de", Code: "EUR"},
	{Key: ".fr", Code: "EUR"},
	{Key: ".es", Code: "EUR"},
	{Key: ".it", Code: "EUR"},
	{Key: ".nl", Code: "EUR"},
	{Key: ".in", Code: "INR"},
	{Key: ".ca", Code: "CAD"},
	{Key: ".jp", Code: "JPY"},
	{Key: ".ch", Code: "CHF"},
}

// CountryCurrencies maps country names to codes.
var CountryCurrencies = []CodeEntry{
	{Key: "united kingdom", Code: "GBP"},
	{Key: "united states", Code: "USD"},
	{Key: "switzerland", Code: "CHF"},
	{Key: "australia", Code: "AUD"},
	{Key: "germany", Code: "EUR"},
	{Key: "france", Code: "EUR"},
	{Key: "canada", Code: "CAD"},
	{Key: "brazil", Code: "BRL"},
	{Key: "mexico", Code: "MXN"},
	{Key: "india", Code: "INR"},
	{Key: "japan", Code: "JPY"},
	{Key: "spain", Code: "EUR"},
	{Key: "italy", Code: "EUR"},
}

// IsISOCode reports whether code is a known ISO currency code. Matching is exact
// and upper-case, so words such as "won" or "yen" are never treated as codes.
func IsISOCode(code string) bool {
	for _, c := range ISOCodes {
		if c == code {
			return true
		}
	}
	return false
}

// SymbolCode resolves a currency symbol.
func SymbolCode(symbol string) (string, bool) {
	for _, table := range [][]CodeEntry{MultiCharSymbols, SingleSymbols} {
		for _, e := range table {
			if e.Key == symbol {
				return e.Code, true
			}
		}
	}
	return "", false
}

// NameCode resolves a spelled-out currency name such as "euros" or
// "canadian dollars".
func NameCode(name string) (string, bool) {
	n := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	for _, e := range RegionalDollarNames {
		if n == e.Key+" dollars" || n == e.Key+" dollar" {
			return e.Code, true
		}
	}
	for _, e := range CurrencyNames {
		if n == e.Key {
			return e.Code, true
		}
	}
	return "", false
}
