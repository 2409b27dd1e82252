package extractor

import (
	"fmt"
	"strings"

	"fjacquet/subscan/internal/models"
)

// StrategyResult records the outcome of one service strategy attempt.
type StrategyResult struct {
	Strategy string
	Service  *models.ExtractedService
	Found    bool
}

// StrategyResults aggregates the attempts made for one message, in order.
type StrategyResults struct {
	Results []StrategyResult
}

// Winner returns the successful result, if any.
func (sr StrategyResults) Winner() (StrategyResult, bool) {
	for _, r := range sr.Results {
		if r.Found {
			return r, true
		}
	}
	return StrategyResult{}, false
}

// Summary returns a compact trace such as "alias-in-text:no_match, email-sender:success".
func (sr StrategyResults) Summary() string {
	parts := make([]string, 0, len(sr.Results))
	for _, r := range sr.Results {
		status := "no_match"
		if r.Found {
			status = "success"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", r.Strategy, status))
	}
	return strings.Join(parts, ", ")
}
