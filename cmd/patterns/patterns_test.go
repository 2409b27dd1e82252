package patterns_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/subscan/cmd/patterns"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/registry"
	"fjacquet/subscan/internal/scanerror"
	"fjacquet/subscan/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatternsCommand_SubCommands(t *testing.T) {
	assert.Equal(t, "patterns", patterns.Cmd.Use)

	names := make([]string, 0)
	for _, c := range patterns.Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"list", "learn", "validate"}, names)
}

func TestList(t *testing.T) {
	tests := []struct {
		name      string
		filter    string
		wantRows  int
		wantType  string
		wantError string
	}{
		{name: "all", wantRows: len(registry.Builtins())},
		{name: "filtered", filter: "TrialEnding", wantRows: 1, wantType: "TrialEnding"},
		{name: "filter ignores case", filter: "paymentconfirmation", wantRows: 2, wantType: "PaymentConfirmation"},
		{name: "unknown type", filter: "Refund", wantError: "unknown pattern type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := patterns.List(registry.New(true), tt.filter, &buf)

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			require.Len(t, lines, tt.wantRows+1)
			assert.True(t, strings.HasPrefix(lines[0], "#"))
			assert.Contains(t, lines[0], "PATTERN")
			for _, l := range lines[1:] {
				assert.Contains(t, l, models.SourceBuiltin)
				if tt.wantType != "" {
					assert.Contains(t, l, tt.wantType)
				}
			}
		})
	}
}

func TestList_Hints(t *testing.T) {
	reg := registry.New(false)
	reg.RegisterEntry(models.PatternEntry{Type: models.PatternCancellation, Score: 10, Source: models.SourceRuntime})

	var buf bytes.Buffer
	require.NoError(t, patterns.List(reg, "", &buf))
	assert.Contains(t, buf.String(), "Cancellation")
	assert.Contains(t, buf.String(), " - ")

	buf.Reset()
	require.NoError(t, patterns.List(registry.New(true), "RenewalNotice", &buf))
	assert.Contains(t, buf.String(), "amount,service,date")
}

func TestLearn(t *testing.T) {
	rules := &store.MockRuleStore{}
	reg := registry.New(true)
	logger := logging.NewMockLogger()
	rule := models.PatternRule{Pattern: `(?i)gym dues`, Type: "PaymentConfirmation", Score: 77}

	require.NoError(t, patterns.Learn(rules, reg, rule, logger))

	require.Len(t, rules.Rules, 1)
	assert.Equal(t, rule, rules.Rules[0])
	assert.Equal(t, len(registry.Builtins())+1, reg.Len())

	entries := reg.Entries()
	last := entries[len(entries)-1]
	assert.Equal(t, models.SourceFeedback, last.Source)
	assert.Equal(t, 77, last.Score)
	assert.True(t, logger.HasEntry("INFO", "Learned pattern rule"))
}

func TestLearn_Errors(t *testing.T) {
	tests := []struct {
		name      string
		rule      models.PatternRule
		store     *store.MockRuleStore
		wantError string
	}{
		{
			name:      "invalid pattern",
			rule:      models.PatternRule{Pattern: `(`, Type: "Cancellation", Score: 50},
			store:     &store.MockRuleStore{},
			wantError: "pattern",
		},
		{
			name:      "invalid type",
			rule:      models.PatternRule{Pattern: `x`, Type: "Refund", Score: 50},
			store:     &store.MockRuleStore{},
			wantError: "type",
		},
		{
			name:      "store failure",
			rule:      models.PatternRule{Pattern: `x`, Type: "Cancellation", Score: 50},
			store:     &store.MockRuleStore{AppendRuleError: errors.New("disk full")},
			wantError: "failed to save rule",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := registry.New(false)

			err := patterns.Learn(tt.store, reg, tt.rule, logging.NewMockLogger())

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
			assert.Empty(t, tt.store.Rules)
			assert.Equal(t, 0, reg.Len())
		})
	}
}

func TestLearn_InvalidRuleIsRuleError(t *testing.T) {
	err := patterns.Learn(&store.MockRuleStore{}, registry.New(false),
		models.PatternRule{Pattern: `x`, Type: "Cancellation", Score: 101}, logging.NewMockLogger())

	var ruleErr *scanerror.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "score", ruleErr.Field)
}

func TestLearnThenValidate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "patterns.yaml")
	ps := store.NewPatternStore(file, logging.NewMockLogger())

	n, err := patterns.Validate(ps)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	for _, p := range []string{`(?i)club dues`, `(?i)locker fee`} {
		rule := models.PatternRule{Pattern: p, Type: "PaymentConfirmation", Score: 70}
		require.NoError(t, patterns.Learn(ps, registry.New(false), rule, logging.NewMockLogger()))
	}

	n, err = patterns.Validate(ps)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestValidate_InvalidFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "patterns.yaml")
	require.NoError(t, os.WriteFile(file, []byte("rules:\n  - pattern: \"ok\"\n    type: Cancellation\n    score: 10\n  - pattern: \"[\"\n    type: Cancellation\n    score: 10\n"), 0600))

	n, err := patterns.Validate(store.NewPatternStore(file, logging.NewMockLogger()))
	require.Error(t, err)
	assert.Equal(t, 0, n)

	var ruleErr *scanerror.RuleError
	require.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, 1, ruleErr.Index)
}
