// Package container provides dependency injection for the subscan application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/subscan/internal/classifier"
	"fjacquet/subscan/internal/config"
	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/orchestrator"
	"fjacquet/subscan/internal/registry"
	"fjacquet/subscan/internal/scanner"
	"fjacquet/subscan/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation. The registry it holds is not: rules
// registered through GetRegistry are seen by every later classification.
type Container struct {
	logger       logging.Logger
	config       *config.Config
	clock        extractor.Clock
	registry     *registry.Registry
	store        *store.PatternStore
	orchestrator *orchestrator.Orchestrator
	classifier   *classifier.Classifier
}

// Option customizes a Container before its dependencies are wired.
type Option func(*Container)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for relative dates.
func WithClock(clock extractor.Clock) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewContainer creates and wires all application dependencies.
//
// The registry starts with the built-in patterns when patterns.builtin is set,
// followed by the rules of patterns.file. An invalid ruleset fails the whole
// container so a typo in a rule is never silently ignored.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	c := &Container{
		config: cfg,
		clock:  extractor.SystemClock,
	}
	for _, opt := range opts {
		opt(c)
	}

	// Create logger first as it's needed by other components
	if c.logger == nil {
		c.logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	c.registry = registry.New(cfg.Patterns.Builtin)
	c.store = store.NewPatternStore(cfg.Patterns.File, c.logger)

	rules, err := c.store.LoadRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load pattern rules: %w", err)
	}
	applied, err := store.ApplyRules(c.registry, c.store.RulesFile, rules)
	if err != nil {
		return nil, err
	}

	c.orchestrator = orchestrator.New(c.logger, c.clock)
	c.classifier = classifier.New(c.registry, c.orchestrator, c.clock, c.logger)

	c.logger.Debug("Container initialized",
		logging.Field{Key: "builtin_patterns", Value: cfg.Patterns.Builtin},
		logging.Field{Key: "file_patterns", Value: applied},
		logging.Field{Key: logging.FieldCount, Value: c.registry.Len()})

	return c, nil
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRegistry returns the shared pattern registry.
func (c *Container) GetRegistry() *registry.Registry {
	return c.registry
}

// GetStore returns the pattern rule store.
func (c *Container) GetStore() *store.PatternStore {
	return c.store
}

// GetOrchestrator returns the field extraction orchestrator.
func (c *Container) GetOrchestrator() *orchestrator.Orchestrator {
	return c.orchestrator
}

// GetClassifier returns the classifier bound to the shared registry.
func (c *Container) GetClassifier() *classifier.Classifier {
	return c.classifier
}

// NewScanner returns a batch scanner using the configured threshold and
// worker count. Each call returns a fresh scanner with no progress callback.
func (c *Container) NewScanner() *scanner.Scanner {
	return scanner.New(
		c.classifier,
		c.registry,
		c.config.Classification.AcceptThreshold,
		c.config.EffectiveWorkers(),
		c.logger,
	)
}

// Close releases any resources held by the container.
// Currently a no-op, kept for future resource cleanup.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
