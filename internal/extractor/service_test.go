package extractor

import (
	"strings"
	"testing"

	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceExtractor_Cascade(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		sender     string
		raw        string
		normalized string
		confidence float64
		strategy   string
	}{
		{"alias in text", "Your payment to Netflix was processed", "", "Netflix", "Netflix", 0.95, "alias-in-text"},
		{"longest alias wins", "Your Amazon Prime membership renews", "", "Amazon Prime", "Amazon Prime", 0.95, "alias-in-text"},
		{"alias ending in symbol", "Disney+ renews tomorrow", "", "Disney+", "Disney+", 0.95, "alias-in-text"},
		{"email domain alias", "Your receipt is ready", "info@mailer.spotify.com", "spotify", "Spotify", 0.9, "email-sender"},
		{"email domain unknown", "Your receipt is ready", "billing@acmestream.com", "acmestream", "Acmestream", 0.85, "email-sender"},
		{"plain sender alias", "Your receipt is ready", "AD-SPOTIFY", "SPOTIFY", "Spotify", 0.9, "plain-sender"},
		{"plain sender unknown", "Your receipt is ready", "VM-GYMBOX", "GYMBOX", "Gymbox", 0.8, "plain-sender"},
		{"subscribing phrase", "thank you for subscribing to Acme Stream!", "12345", "Acme Stream", "Acme Stream", 0.9, "contextual-phrase"},
		{"your plan phrase", "Your Acme Cloud plan has been updated", "", "Acme Cloud", "Acme Cloud", 0.85, "contextual-phrase"},
		{"capitalized word", "payment received for Zumba classes", "", "Zumba", "Zumba", 0.7, "capitalized-word"},
		{"all-caps word", "ACME renewal processed", "", "ACME", "ACME", 0.7, "capitalized-word"},
		{"all-caps stop word and currency code skipped", "YOUR USD charge, GYMBOX", "", "GYMBOX", "GYMBOX", 0.7, "capitalized-word"},
		{"sender fallback", "see you soon", "billing-gymbox@mail.com", "gymbox", "Gymbox", 0.6, "sender-fallback"},
		{"numeric short code", "Your order has shipped", "12345", "12345", "12345", 0.6, "sender-fallback"},
	}

	e := NewServiceExtractor(logging.NewMockLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, trace := e.ExtractWithTrace(tt.text, tt.sender)
			require.NotNil(t, svc)
			assert.Equal(t, tt.raw, svc.RawName)
			assert.Equal(t, tt.normalized, svc.NormalizedName)
			assert.InDelta(t, tt.confidence, svc.Confidence, 1e-9)

			winner, ok := trace.Winner()
			require.True(t, ok)
			assert.Equal(t, tt.strategy, winner.Strategy)
		})
	}
}

func TestServiceExtractor_NoService(t *testing.T) {
	e := NewServiceExtractor(logging.NewMockLogger())

	svc, trace := e.ExtractWithTrace("Your pizza delivery is on the way!", "")
	assert.Nil(t, svc)
	assert.Len(t, trace.Results, len(DefaultServiceStrategies()))
	assert.Equal(t, 0, strings.Count(trace.Summary(), "success"))

	assert.Nil(t, e.Extract("  ", "netflix@netflix.com"))
	assert.Nil(t, e.Extract("Your order has shipped", "12"))
}

type stubStrategy struct {
	name  string
	found bool
}

func (s stubStrategy) Name() string { return s.name }

func (s stubStrategy) Attempt(_, _ string) (*models.ExtractedService, bool) {
	if !s.found {
		return nil, false
	}
	return &models.ExtractedService{RawName: s.name, NormalizedName: s.name, Confidence: 1}, true
}

func TestServiceExtractor_FirstSuccessShortCircuits(t *testing.T) {
	logger := logging.NewMockLogger()
	e := NewServiceExtractorWithStrategies(logger,
		stubStrategy{name: "first"},
		stubStrategy{name: "second", found: true},
		stubStrategy{name: "third", found: true},
	)

	svc, trace := e.ExtractWithTrace("text", "")
	require.NotNil(t, svc)
	assert.Equal(t, "second", svc.RawName)
	assert.Equal(t, "first:no_match, second:success", trace.Summary())

	v, ok := logger.FieldValue("Service extracted", logging.FieldStrategy)
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}
