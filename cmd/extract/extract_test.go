package extract_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"fjacquet/subscan/cmd/extract"
	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/orchestrator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator() *orchestrator.Orchestrator {
	clock := extractor.FixedClock(time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC))
	return orchestrator.New(logging.NewMockLogger(), clock)
}

func TestExtractCommand_Metadata(t *testing.T) {
	assert.Equal(t, "extract [message...]", extract.Cmd.Use)
	assert.Contains(t, extract.Cmd.Short, "Extract amount")
	assert.NotNil(t, extract.Cmd.RunE)
}

func TestExtractCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"text", "t", ""},
		{"sender", "s", ""},
		{"format", "f", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := extract.Cmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestRun_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := extract.Run(newTestOrchestrator(), "Your payment of $9.99 to Netflix has been processed.", "", "json", &buf)
	require.NoError(t, err)

	var result models.ExtractionResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.NotNil(t, result.Amount)
	assert.InDelta(t, 9.99, result.Amount.Value, 1e-9)
	assert.Equal(t, "USD", result.Amount.Currency)
	require.NotNil(t, result.Service)
	assert.Equal(t, "Netflix", result.Service.NormalizedName)
	assert.Nil(t, result.Date)
	assert.Greater(t, result.OverallConfidence, 0.0)
}

func TestRun_Text(t *testing.T) {
	var buf bytes.Buffer

	err := extract.Run(newTestOrchestrator(), "Your Spotify Premium renews on Nov 3, 2026 for €10.99/month", "no-reply@spotify.com", "text", &buf)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "service:    Spotify")
	assert.Contains(t, out, "amount:     €10.99")
	assert.Contains(t, out, "date:       2026-11-03")
	assert.Contains(t, out, "cycle:      monthly")
}

func TestRun_NothingFound(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, extract.Run(newTestOrchestrator(), "lol ok", "", "json", &buf))
	assert.JSONEq(t, `{"overallConfidence": 0}`, buf.String())
}
