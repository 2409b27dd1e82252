package classifier

import (
	"strings"

	"fjacquet/subscan/internal/models"
)

// TypeRule infers a pattern type from the lower-cased message text when no
// registry entry matched.
type TypeRule interface {
	// Name returns the name of this rule for logging and debugging purposes.
	Name() string

	// Infer returns the pattern type and whether the rule applies.
	Infer(lower string) (models.PatternType, bool)
}

// KeywordRule applies when every group has at least one of its keywords in
// the text. A rule without groups always applies.
type KeywordRule struct {
	RuleName string
	Type     models.PatternType
	Groups   [][]string
}

func (r KeywordRule) Name() string { return r.RuleName }

func (r KeywordRule) Infer(lower string) (models.PatternType, bool) {
	for _, group := range r.Groups {
		hit := false
		for _, kw := range group {
			if strings.Contains(lower, kw) {
				hit = true
				break
			}
		}
		if !hit {
			return "", false
		}
	}
	return r.Type, true
}

// DefaultTypeRules returns the inference chain. The last rule always applies.
func DefaultTypeRules() []TypeRule {
	return []TypeRule{
		KeywordRule{"renewal", models.PatternRenewalNotice, [][]string{{"renew", "next bill"}}},
		KeywordRule{"welcome", models.PatternSubscriptionConfirmation, [][]string{{"welcome", "subscribed"}}},
		KeywordRule{"trial-ending", models.PatternTrialEnding, [][]string{{"trial"}, {"end", "expir"}}},
		KeywordRule{"cancellation", models.PatternCancellation, [][]string{{"cancel"}}},
		KeywordRule{"price-change", models.PatternPriceChange, [][]string{{"price"}, {"change", "increas"}}},
		KeywordRule{"payment", models.PatternPaymentConfirmation, nil},
	}
}
