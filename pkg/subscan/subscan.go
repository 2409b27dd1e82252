// Package subscan is the public entry point to the subscription message
// extraction engine, for callers that need classification without the CLI
// or the batch scanner.
//
//	engine, err := subscan.New(subscan.Options{})
//	if err != nil {
//		return err
//	}
//	result := engine.Analyze("Your payment of $9.99 for Spotify has been processed", "Spotify")
package subscan

import (
	"fmt"
	"regexp"
	"time"

	"fjacquet/subscan/internal/classifier"
	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/orchestrator"
	"fjacquet/subscan/internal/registry"
	"fjacquet/subscan/internal/store"
)

// Re-exported result and pattern types.
type (
	PatternType        = models.PatternType
	ExtractorHints     = models.ExtractorHints
	ExtractionResult   = models.ExtractionResult
	PatternMatchResult = models.PatternMatchResult
	PatternRule        = models.PatternRule
)

// Pattern types.
const (
	SubscriptionConfirmation = models.PatternSubscriptionConfirmation
	PaymentConfirmation      = models.PatternPaymentConfirmation
	TrialEnding              = models.PatternTrialEnding
	RenewalNotice            = models.PatternRenewalNotice
	PriceChange              = models.PatternPriceChange
	Cancellation             = models.PatternCancellation
)

// Options configures an Engine. The zero value gives the built-in patterns,
// the system clock and the default logger.
type Options struct {
	// Now replaces the clock used for relative dates and the date window.
	Now func() time.Time
	// Logger receives debug traces. Nil means logging.GetLogger().
	Logger logging.Logger
	// WithoutBuiltins starts from an empty registry.
	WithoutBuiltins bool
	// Rules are registered after the built-ins, in order.
	Rules []PatternRule
}

// Engine extracts and classifies subscription messages. It is safe for
// concurrent use, including concurrent RegisterPattern calls.
type Engine struct {
	registry     *registry.Registry
	orchestrator *orchestrator.Orchestrator
	classifier   *classifier.Classifier
}

// New creates an Engine. It fails only when one of opts.Rules is invalid.
func New(opts Options) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	clock := extractor.Clock(extractor.SystemClock)
	if opts.Now != nil {
		clock = opts.Now
	}

	reg := registry.New(!opts.WithoutBuiltins)
	if _, err := store.ApplyRules(reg, "options", opts.Rules); err != nil {
		return nil, err
	}

	orch := orchestrator.New(logger, clock)
	return &Engine{
		registry:     reg,
		orchestrator: orch,
		classifier:   classifier.New(reg, orch, clock, logger),
	}, nil
}

// Extract runs every field extractor over text and sender.
func (e *Engine) Extract(text, sender string) ExtractionResult {
	return e.orchestrator.ExtractSubscriptionData(text, sender)
}

// Analyze classifies text and attaches the extracted fields.
func (e *Engine) Analyze(text, sender string) PatternMatchResult {
	return e.classifier.Analyze(text, sender)
}

// RegisterPattern compiles expr and appends it to the engine's registry.
// It takes part in every later Analyze call.
func (e *Engine) RegisterPattern(expr string, patternType PatternType, score int, hints ExtractorHints) error {
	re, err := regexp.Compile(expr)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	if !patternType.IsValid() {
		return fmt.Errorf("unknown pattern type %q", patternType)
	}
	if score < 0 || score > 100 {
		return fmt.Errorf("score must be between 0 and 100, got: %d", score)
	}
	e.registry.Register(re, patternType, score, hints)
	return nil
}

// PatternCount returns the number of registered patterns.
func (e *Engine) PatternCount() int {
	return e.registry.Len()
}
