// Package models provides the data structures shared by the extractors, the
// pattern registry, the classifier and the batch scanner.
package models

import (
	"regexp"
	"strings"

	"fjacquet/subscan/internal/scanerror"
)

// PatternType is the closed set of subscription event classes.
type PatternType string

const (
	PatternSubscriptionConfirmation PatternType = "SubscriptionConfirmation"
	PatternPaymentConfirmation      PatternType = "PaymentConfirmation"
	PatternTrialEnding              PatternType = "TrialEnding"
	PatternRenewalNotice            PatternType = "RenewalNotice"
	PatternPriceChange              PatternType = "PriceChange"
	PatternCancellation             PatternType = "Cancellation"
)

var patternTypes = []PatternType{
	PatternSubscriptionConfirmation,
	PatternPaymentConfirmation,
	PatternTrialEnding,
	PatternRenewalNotice,
	PatternPriceChange,
	PatternCancellation,
}

// PatternTypes returns every pattern type in declaration order.
func PatternTypes() []PatternType {
	out := make([]PatternType, len(patternTypes))
	copy(out, patternTypes)
	return out
}

// ParsePatternType resolves a pattern type name, ignoring case.
func ParsePatternType(s string) (PatternType, error) {
	name := strings.TrimSpace(s)
	for _, pt := range patternTypes {
		if strings.EqualFold(string(pt), name) {
			return pt, nil
		}
	}
	return "", &scanerror.ValidationError{
		Field:  "type",
		Reason: "unknown pattern type '" + s + "'",
	}
}

// IsValid reports whether p is one of the known pattern types.
func (p PatternType) IsValid() bool {
	for _, pt := range patternTypes {
		if pt == p {
			return true
		}
	}
	return false
}

func (p PatternType) String() string {
	return string(p)
}

// Ptr returns a pointer to a copy of p.
func (p PatternType) Ptr() *PatternType {
	return &p
}

// ExtractorHints names the fields a pattern expects the message to carry.
// Hints are informational: extraction always runs every extractor.
type ExtractorHints struct {
	Amount      bool `json:"amount" yaml:"amount"`
	ServiceName bool `json:"serviceName" yaml:"service_name"`
	Date        bool `json:"date" yaml:"date"`
}

// Pattern entry sources.
const (
	SourceBuiltin  = "builtin"
	SourceConfig   = "config"
	SourceFeedback = "feedback"
	SourceRuntime  = "runtime"
)

// PatternEntry is one classification rule held by the registry.
type PatternEntry struct {
	Pattern *regexp.Regexp
	Type    PatternType
	Score   int
	Hints   ExtractorHints
	Source  string
}

// Matches reports whether the entry's regular expression matches text.
func (e PatternEntry) Matches(text string) bool {
	return e.Pattern != nil && e.Pattern.MatchString(text)
}
