// Package orchestrator runs the four field extractors over a message and
// aggregates their confidences into one overall score.
package orchestrator

import (
	"strings"

	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/lexicon"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
)

// Field weights used by the confidence aggregation.
const (
	WeightAmount  = 1.5
	WeightService = 1.5
	WeightDate    = 1.0
	WeightCycle   = 1.0
)

// Additive boosts applied, in this order, to the weighted mean.
const (
	BoostAmountAndService = 0.1
	BoostKeyword          = 0.05
	BoostThreeFields      = 0.1
	BoostSenderMatch      = 0.05
)

// Orchestrator owns one instance of each extractor.
type Orchestrator struct {
	amount  *extractor.AmountExtractor
	service *extractor.ServiceExtractor
	date    *extractor.DateExtractor
	cycle   *extractor.CycleExtractor
	logger  logging.Logger
}

// New creates an Orchestrator with the default extractors. A nil clock means
// the system clock.
func New(logger logging.Logger, clock extractor.Clock) *Orchestrator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Orchestrator{
		amount:  extractor.NewAmountExtractor(logger),
		service: extractor.NewServiceExtractor(logger),
		date:    extractor.NewDateExtractor(logger, clock),
		cycle:   extractor.NewCycleExtractor(logger),
		logger:  logger,
	}
}

// ExtractSubscriptionData runs every extractor on (text, sender) and returns
// the merged result. Empty text yields an empty result.
func (o *Orchestrator) ExtractSubscriptionData(text, sender string) models.ExtractionResult {
	if strings.TrimSpace(text) == "" {
		return models.ExtractionResult{}
	}

	result := models.ExtractionResult{
		Amount:       o.amount.Extract(text),
		Service:      o.service.Extract(text, sender),
		Date:         o.date.Extract(text),
		BillingCycle: o.cycle.Extract(text),
	}
	result.OverallConfidence = AggregateConfidence(result, text, sender)

	o.logger.Debug("Extraction completed",
		logging.Field{Key: logging.FieldSender, Value: sender},
		logging.Field{Key: logging.FieldCount, Value: result.FieldCount()},
		logging.Field{Key: logging.FieldConfidence, Value: result.OverallConfidence})
	return result
}

// AggregateConfidence computes the overall confidence of r: the weighted mean
// of the present fields plus the boosts, capped at 1.0.
func AggregateConfidence(r models.ExtractionResult, text, sender string) float64 {
	var sum, weights float64
	add := func(confidence, weight float64) {
		sum += confidence * weight
		weights += weight
	}
	if r.Amount != nil {
		add(r.Amount.Confidence, WeightAmount)
	}
	if r.Service != nil {
		add(r.Service.Confidence, WeightService)
	}
	if r.Date != nil {
		add(r.Date.Confidence, WeightDate)
	}
	if r.BillingCycle != nil {
		add(r.BillingCycle.Confidence, WeightCycle)
	}
	if weights == 0 {
		return 0
	}

	overall := sum / weights
	if r.Amount != nil && r.Service != nil {
		overall += BoostAmountAndService
	}
	lower := strings.ToLower(text)
	for _, kw := range lexicon.SubscriptionKeywords {
		if strings.Contains(lower, kw) {
			overall += BoostKeyword
			break
		}
	}
	if r.FieldCount() >= 3 {
		overall += BoostThreeFields
	}
	if r.Service != nil && r.Service.RawName != "" &&
		strings.Contains(strings.ToLower(sender), strings.ToLower(r.Service.RawName)) {
		overall += BoostSenderMatch
	}

	if overall > 1.0 {
		return 1.0
	}
	return overall
}
