package lexicon

import (
	"sort"

	"fjacquet/subscan/internal/models"
)

// CyclePhrase maps a phrase to the billing cycle it denotes.
type CyclePhrase struct {
	Phrase string
	Cycle  models.BillingCycle
}

var cyclePhrases = []CyclePhrase{
	{Phrase: "monthly", Cycle: models.CycleMonthly},
	{Phrase: "every month", Cycle: models.CycleMonthly},
	{Phrase: "yearly", Cycle: models.CycleYearly},
	{Phrase: "annually", Cycle: models.CycleYearly},
	{Phrase: "annual", Cycle: models.CycleYearly},
	{Phrase: "every year", Cycle: models.CycleYearly},
	{Phrase: "per annum", Cycle: models.CycleYearly},
	{Phrase: "weekly", Cycle: models.CycleWeekly},
	{Phrase: "every week", Cycle: models.CycleWeekly},
	{Phrase: "quarterly", Cycle: models.CycleQuarterly},
	{Phrase: "every quarter", Cycle: models.CycleQuarterly},
	{Phrase: "biannual", Cycle: models.CycleBiannual},
	{Phrase: "biannually", Cycle: models.CycleBiannual},
	{Phrase: "semi-annual", Cycle: models.CycleBiannual},
	{Phrase: "semi-annually", Cycle: models.CycleBiannual},
	{Phrase: "semiannual", Cycle: models.CycleBiannual},
	{Phrase: "half-yearly", Cycle: models.CycleBiannual},
	{Phrase: "twice a year", Cycle: models.CycleBiannual},
	{Phrase: "daily", Cycle: models.CycleDaily},
	{Phrase: "every day", Cycle: models.CycleDaily},
}

// Contextual phrases are weaker than the dictionary and only consulted after it.
var contextualCyclePhrases = []CyclePhrase{
	{Phrase: "each month", Cycle: models.CycleMonthly},
	{Phrase: "month-to-month", Cycle: models.CycleMonthly},
	{Phrase: "monthly plan", Cycle: models.CycleMonthly},
	{Phrase: "annual plan", Cycle: models.CycleYearly},
	{Phrase: "each year", Cycle: models.CycleYearly},
	{Phrase: "each week", Cycle: models.CycleWeekly},
	{Phrase: "each quarter", Cycle: models.CycleQuarterly},
	{Phrase: "every three months", Cycle: models.CycleQuarterly},
	{Phrase: "every six months", Cycle: models.CycleBiannual},
	{Phrase: "each day", Cycle: models.CycleDaily},
}

func init() {
	for _, table := range [][]CyclePhrase{cyclePhrases, contextualCyclePhrases} {
		t := table
		sort.SliceStable(t, func(i, j int) bool {
			return len(t[i].Phrase) > len(t[j].Phrase)
		})
	}
}

// CyclePhrases returns the dictionary phrases, longest first.
func CyclePhrases() []CyclePhrase {
	out := make([]CyclePhrase, len(cyclePhrases))
	copy(out, cyclePhrases)
	return out
}

// ContextualCyclePhrases returns the contextual phrases, longest first.
func ContextualCyclePhrases() []CyclePhrase {
	out := make([]CyclePhrase, len(contextualCyclePhrases))
	copy(out, contextualCyclePhrases)
	return out
}

// IntervalSuffix maps an amount suffix such as "/mo" to a cycle.
type IntervalSuffix struct {
	Pattern string
	Cycle   models.BillingCycle
}

// IntervalSuffixes are regular expression fragments matched right after an amount.
var IntervalSuffixes = []IntervalSuffix{
	{Pattern: `(?:/\s*|per\s+|a\s+)(?:month|mo)\b`, Cycle: models.CycleMonthly},
	{Pattern: `(?:/\s*|per\s+|a\s+)(?:year|yr)\b`, Cycle: models.CycleYearly},
	{Pattern: `(?:/\s*|per\s+|a\s+)(?:week|wk)\b`, Cycle: models.CycleWeekly},
	{Pattern: `(?:/\s*|per\s+|a\s+)quarter\b`, Cycle: models.CycleQuarterly},
	{Pattern: `(?:/\s*|per\s+|a\s+)day\b`, Cycle: models.CycleDaily},
}

// CycleForMonths maps an interval in months to a named cycle. Intervals
// without a name return CycleCustom.
func CycleForMonths(n int) models.BillingCycle {
	switch n {
	case 1:
		return models.CycleMonthly
	case 3:
		return models.CycleQuarterly
	case 6:
		return models.CycleBiannual
	case 12:
		return models.CycleYearly
	default:
		return models.CycleCustom
	}
}
