package container

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"fjacquet/subscan/internal/config"
	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/registry"
	"fjacquet/subscan/internal/scanerror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Patterns.File = filepath.Join(t.TempDir(), "patterns.yaml")
	return cfg
}

func writeRules(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		rules       string
		expectError bool
		errorMsg    string
		expectLen   int
	}{
		{
			name:        "nil config",
			config:      func(t *testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:      "builtins without rules file",
			config:    testConfig,
			expectLen: len(registry.Builtins()),
		},
		{
			name: "builtins disabled",
			config: func(t *testing.T) *config.Config {
				cfg := testConfig(t)
				cfg.Patterns.Builtin = false
				return cfg
			},
			expectLen: 0,
		},
		{
			name:   "rules appended after builtins",
			config: testConfig,
			rules: `rules:
  - pattern: "(?i)membership fee"
    type: PaymentConfirmation
    score: 90
`,
			expectLen: len(registry.Builtins()) + 1,
		},
		{
			name:   "invalid rule fails",
			config: testConfig,
			rules: `rules:
  - pattern: "(unclosed"
    type: PaymentConfirmation
    score: 90
`,
			expectError: true,
			errorMsg:    "failed to apply pattern rules",
		},
		{
			name:        "malformed rules file fails",
			config:      testConfig,
			rules:       "rules: [unterminated",
			expectError: true,
			errorMsg:    "failed to load pattern rules",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config(t)
			if tt.rules != "" {
				writeRules(t, cfg.Patterns.File, tt.rules)
			}

			c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.Same(t, cfg, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetOrchestrator())
			assert.NotNil(t, c.GetClassifier())
			assert.Equal(t, tt.expectLen, c.GetRegistry().Len())
		})
	}
}

func TestNewContainer_MalformedRulesIsInvalidInput(t *testing.T) {
	cfg := testConfig(t)
	writeRules(t, cfg.Patterns.File, "rules: [unterminated")

	_, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))

	var inputErr *scanerror.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestContainer_FileRulesTakePartInClassification(t *testing.T) {
	cfg := testConfig(t)
	writeRules(t, cfg.Patterns.File, `rules:
  - pattern: "(?i)gym membership"
    type: RenewalNotice
    score: 92
    hints:
      date: true
`)

	c, err := NewContainer(cfg,
		WithLogger(logging.NewMockLogger()),
		WithClock(extractor.FixedClock(testNow)))
	require.NoError(t, err)

	entries := c.GetRegistry().Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, models.SourceConfig, last.Source)
	assert.Equal(t, 92, last.Score)

	result := c.GetClassifier().Analyze("Your gym membership continues on 11/01/2026", "FitClub")
	assert.True(t, result.Matched)
	assert.Equal(t, 92, result.Confidence)
	require.NotNil(t, result.PatternType)
	assert.Equal(t, models.PatternRenewalNotice, *result.PatternType)
}

func TestContainer_RuntimeRegistrationIsShared(t *testing.T) {
	c, err := NewContainer(testConfig(t), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	text := "Your gizmo plan is live"
	assert.False(t, c.GetClassifier().Analyze(text, "").Matched)

	entry := models.PatternEntry{Type: models.PatternSubscriptionConfirmation, Score: 88}
	entry.Pattern = regexp.MustCompile(`(?i)gizmo plan is live`)
	c.GetRegistry().RegisterEntry(entry)

	result := c.GetClassifier().Analyze(text, "")
	assert.True(t, result.Matched)
	assert.Equal(t, 88, result.Confidence)
}

func TestContainer_NewScanner(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scan.Workers = 2
	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	first := c.NewScanner()
	second := c.NewScanner()
	require.NotNil(t, first)
	assert.NotSame(t, first, second)
}

func TestContainer_Close(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainer(testConfig(t), WithLogger(logger))
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.True(t, logger.HasEntry("INFO", "Container closed"))
}

func TestContainer_LogsInitialization(t *testing.T) {
	logger := logging.NewMockLogger()
	_, err := NewContainer(testConfig(t), WithLogger(logger))
	require.NoError(t, err)

	count, ok := logger.FieldValue("Container initialized", logging.FieldCount)
	require.True(t, ok)
	assert.Equal(t, len(registry.Builtins()), count)
}
