package extractor

import (
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
)

// ServiceStrategy is one way of finding the service a message refers to.
type ServiceStrategy interface {
	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string

	// Attempt returns the service found by this strategy and whether it succeeded.
	Attempt(text, sender string) (*models.ExtractedService, bool)
}

// ServiceExtractor runs its strategies in order and keeps the first success.
type ServiceExtractor struct {
	strategies []ServiceStrategy
	logger     logging.Logger
}

// DefaultServiceStrategies returns the standard cascade, strongest evidence first.
func DefaultServiceStrategies() []ServiceStrategy {
	return []ServiceStrategy{
		NewAliasInTextStrategy(),
		NewEmailSenderStrategy(),
		NewPlainSenderStrategy(),
		NewContextualPhraseStrategy(),
		NewCapitalizedWordStrategy(),
		NewSenderFallbackStrategy(),
	}
}

// NewServiceExtractor creates a ServiceExtractor with the default strategies.
func NewServiceExtractor(logger logging.Logger) *ServiceExtractor {
	return NewServiceExtractorWithStrategies(logger, DefaultServiceStrategies()...)
}

// NewServiceExtractorWithStrategies creates a ServiceExtractor with a custom cascade.
func NewServiceExtractorWithStrategies(logger logging.Logger, strategies ...ServiceStrategy) *ServiceExtractor {
	return &ServiceExtractor{
		strategies: strategies,
		logger:     orDefaultLogger(logger),
	}
}

// Extract returns the service named by text or sender, or nil.
func (e *ServiceExtractor) Extract(text, sender string) *models.ExtractedService {
	svc, _ := e.ExtractWithTrace(text, sender)
	return svc
}

// ExtractWithTrace is Extract that also reports every strategy attempted.
func (e *ServiceExtractor) ExtractWithTrace(text, sender string) (*models.ExtractedService, StrategyResults) {
	var trace StrategyResults
	if isBlank(text) {
		return nil, trace
	}

	for _, s := range e.strategies {
		svc, ok := s.Attempt(text, sender)
		trace.Results = append(trace.Results, StrategyResult{Strategy: s.Name(), Service: svc, Found: ok})
		if !ok {
			continue
		}
		e.logger.Debug("Service extracted",
			logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
			logging.Field{Key: logging.FieldSender, Value: sender},
			logging.Field{Key: logging.FieldConfidence, Value: svc.Confidence},
			logging.Field{Key: "trace", Value: trace.Summary()})
		return svc, trace
	}

	e.logger.Debug("No service found",
		logging.Field{Key: logging.FieldSender, Value: sender},
		logging.Field{Key: "trace", Value: trace.Summary()})
	return nil, trace
}
