// Package classifier decides what kind of subscription event a message is.
// It combines the pattern registry with the field extraction of the
// orchestrator.
package classifier

import (
	"math"
	"strings"
	"time"

	"fjacquet/subscan/internal/dateutils"
	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/orchestrator"
	"fjacquet/subscan/internal/registry"
)

// FallbackThreshold is the overall extraction confidence above which an
// unmatched message is still accepted.
const FallbackThreshold = 0.6

// Classifier is safe for concurrent use as long as its Source is.
type Classifier struct {
	source       registry.Source
	orchestrator *orchestrator.Orchestrator
	rules        []TypeRule
	clock        extractor.Clock
	logger       logging.Logger
}

// New creates a Classifier reading patterns from source.
func New(source registry.Source, orch *orchestrator.Orchestrator, clock extractor.Clock, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if clock == nil {
		clock = extractor.SystemClock
	}
	if orch == nil {
		orch = orchestrator.New(logger, clock)
	}
	return &Classifier{
		source:       source,
		orchestrator: orch,
		rules:        DefaultTypeRules(),
		clock:        clock,
		logger:       logger,
	}
}

// WithSource returns a copy of c reading patterns from source, typically a
// registry snapshot.
func (c *Classifier) WithSource(source registry.Source) *Classifier {
	cp := *c
	cp.source = source
	return &cp
}

// Analyze classifies (text, sender).
func (c *Classifier) Analyze(text, sender string) models.PatternMatchResult {
	result, _ := c.AnalyzeWithExtraction(text, sender)
	return result
}

// AnalyzeWithExtraction is Analyze that also returns the underlying extraction.
func (c *Classifier) AnalyzeWithExtraction(text, sender string) (models.PatternMatchResult, models.ExtractionResult) {
	if strings.TrimSpace(text) == "" {
		return models.PatternMatchResult{}, models.ExtractionResult{}
	}

	var result models.PatternMatchResult
	best, found := c.bestEntry(text)
	if found {
		result.Matched = true
		result.Confidence = best.Score
		result.PatternType = best.Type.Ptr()
	}

	extraction := c.orchestrator.ExtractSubscriptionData(text, sender)

	if !found && extraction.Service != nil {
		result.PatternType = c.inferType(text)
	}
	if !result.Matched && extraction.OverallConfidence > FallbackThreshold {
		result.Matched = true
		result.Confidence = int(math.Floor(extraction.OverallConfidence * 100))
	}

	result.ExtractedData = c.extractedData(result.PatternType, extraction)

	if found {
		c.logMissingHints(best, extraction)
	}
	c.logger.Debug("Message classified",
		logging.Field{Key: logging.FieldSender, Value: sender},
		logging.Field{Key: "matched", Value: result.Matched},
		logging.Field{Key: logging.FieldScore, Value: result.Confidence},
		logging.Field{Key: logging.FieldPatternType, Value: typeName(result.PatternType)})
	return result, extraction
}

// bestEntry returns the highest scoring matching entry. Only a strictly
// greater score replaces the current best, so the first registered entry
// wins ties. Entries scoring 0 never win.
func (c *Classifier) bestEntry(text string) (models.PatternEntry, bool) {
	var best models.PatternEntry
	highest := 0
	found := false
	if c.source == nil {
		return best, false
	}
	for _, e := range c.source.Entries() {
		if e.Score > highest && e.Matches(text) {
			best = e
			highest = e.Score
			found = true
		}
	}
	return best, found
}

func (c *Classifier) inferType(text string) *models.PatternType {
	lower := strings.ToLower(text)
	for _, rule := range c.rules {
		if t, ok := rule.Infer(lower); ok {
			c.logger.Debug("Pattern type inferred",
				logging.Field{Key: logging.FieldStrategy, Value: rule.Name()},
				logging.Field{Key: logging.FieldPatternType, Value: string(t)})
			return t.Ptr()
		}
	}
	return nil
}

func (c *Classifier) extractedData(patternType *models.PatternType, r models.ExtractionResult) models.ExtractedData {
	var data models.ExtractedData
	if r.Amount != nil {
		price := r.Amount.Value
		data.Price = &price
		data.Currency = r.Amount.Currency
	}
	if r.Service != nil {
		data.ServiceName = r.Service.NormalizedName
	}
	if r.Date != nil {
		d := r.Date.Date
		data.Date = &d
	}
	if r.BillingCycle != nil {
		data.BillingCycle = string(r.BillingCycle.Cycle)
	}
	data.NextBillingDate = NextBillingDate(patternType, r, dateutils.DateOnly(c.clock()))
	return data
}

// NextBillingDate derives the next charge date. Renewal and trial notices
// carry it directly; other events advance the extracted date, or today, by
// one billing cycle.
func NextBillingDate(patternType *models.PatternType, r models.ExtractionResult, today time.Time) *time.Time {
	if patternType == nil {
		return nil
	}
	switch *patternType {
	case models.PatternRenewalNotice, models.PatternTrialEnding:
		if r.Date == nil {
			return nil
		}
		d := r.Date.Date
		return &d
	}

	if r.BillingCycle == nil {
		return nil
	}
	base := today
	if r.Date != nil {
		base = r.Date.Date
	}
	next, ok := dateutils.AdvanceByCycle(base, r.BillingCycle.Cycle, r.BillingCycle.IntervalMonths)
	if !ok {
		return nil
	}
	return &next
}

func (c *Classifier) logMissingHints(entry models.PatternEntry, r models.ExtractionResult) {
	missing := func(field string) {
		c.logger.Debug("Hinted field not extracted",
			logging.Field{Key: logging.FieldField, Value: field},
			logging.Field{Key: logging.FieldPatternType, Value: string(entry.Type)},
			logging.Field{Key: logging.FieldSource, Value: entry.Source})
	}
	if entry.Hints.Amount && r.Amount == nil {
		missing("amount")
	}
	if entry.Hints.ServiceName && r.Service == nil {
		missing("service_name")
	}
	if entry.Hints.Date && r.Date == nil {
		missing("date")
	}
}

func typeName(t *models.PatternType) string {
	if t == nil {
		return ""
	}
	return string(*t)
}
