package classifier

import (
	"math"
	"regexp"
	"testing"
	"time"

	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/orchestrator"
	"fjacquet/subscan/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = extractor.FixedClock(time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC))

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newTestClassifier(source registry.Source, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return New(source, orchestrator.New(logger, testClock), testClock, logger)
}

func TestAnalyze_PaymentConfirmation(t *testing.T) {
	c := newTestClassifier(registry.New(true), nil)

	r := c.Analyze("Your payment of $9.99 to Netflix has been processed. Thank you for your subscription.", "")

	assert.True(t, r.Matched)
	require.NotNil(t, r.PatternType)
	assert.Equal(t, models.PatternPaymentConfirmation, *r.PatternType)
	assert.GreaterOrEqual(t, r.Confidence, 75)
	require.NotNil(t, r.ExtractedData.Price)
	assert.InDelta(t, 9.99, *r.ExtractedData.Price, 1e-9)
	assert.Equal(t, "USD", r.ExtractedData.Currency)
	assert.Equal(t, "Netflix", r.ExtractedData.ServiceName)
	assert.Equal(t, "monthly", r.ExtractedData.BillingCycle)
	require.NotNil(t, r.ExtractedData.NextBillingDate)
	assert.True(t, date(2026, time.November, 15).Equal(*r.ExtractedData.NextBillingDate))
}

func TestAnalyze_SubscriptionConfirmation(t *testing.T) {
	c := newTestClassifier(registry.New(true), nil)

	r := c.Analyze("Welcome to your Netflix subscription! Start streaming today at netflix.com", "")

	assert.True(t, r.Matched)
	require.NotNil(t, r.PatternType)
	assert.Equal(t, models.PatternSubscriptionConfirmation, *r.PatternType)
	assert.GreaterOrEqual(t, r.Confidence, 80)
	assert.Equal(t, "Netflix", r.ExtractedData.ServiceName)
}

func TestAnalyze_NonSubscriptionMessages(t *testing.T) {
	c := newTestClassifier(registry.New(true), nil)

	for _, text := range []string{
		"Your pizza delivery is on the way!",
		"Your order has shipped",
		"lol ok",
	} {
		t.Run(text, func(t *testing.T) {
			r := c.Analyze(text, "")
			assert.False(t, r.Matched)
			assert.Equal(t, 0, r.Confidence)
			assert.Nil(t, r.PatternType)
		})
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	c := newTestClassifier(registry.New(true), nil)

	assert.Equal(t, models.PatternMatchResult{}, c.Analyze("", "netflix@netflix.com"))
	assert.Equal(t, models.PatternMatchResult{}, c.Analyze(" \n\t", ""))
}

func TestAnalyze_RegisteredPatternWins(t *testing.T) {
	reg := registry.New(true)
	reg.Register(regexp.MustCompile(`(?i)thank you for using custom service`),
		models.PatternSubscriptionConfirmation, 95, models.ExtractorHints{ServiceName: true})
	c := newTestClassifier(reg, nil)

	r := c.Analyze("Thank you for using Custom Service! Your subscription is now active.", "")

	assert.True(t, r.Matched)
	assert.Equal(t, 95, r.Confidence)
	require.NotNil(t, r.PatternType)
	assert.Equal(t, models.PatternSubscriptionConfirmation, *r.PatternType)
}

func TestAnalyze_TieBreakKeepsFirstRegistered(t *testing.T) {
	reg := registry.New(false)
	re := regexp.MustCompile(`(?i)netflix`)
	reg.Register(re, models.PatternRenewalNotice, 50, models.ExtractorHints{})
	reg.Register(re, models.PatternCancellation, 80, models.ExtractorHints{})
	reg.Register(re, models.PatternPriceChange, 80, models.ExtractorHints{})
	reg.Register(re, models.PatternTrialEnding, 60, models.ExtractorHints{})
	c := newTestClassifier(reg, nil)

	r := c.Analyze("Netflix update", "")

	assert.Equal(t, 80, r.Confidence)
	require.NotNil(t, r.PatternType)
	assert.Equal(t, models.PatternCancellation, *r.PatternType)
}

func TestAnalyze_ZeroScoreEntriesNeverMatch(t *testing.T) {
	reg := registry.New(false)
	reg.Register(regexp.MustCompile(`.`), models.PatternCancellation, 0, models.ExtractorHints{})
	c := newTestClassifier(reg, nil)

	r := c.Analyze("lol ok", "")
	assert.False(t, r.Matched)
	assert.Nil(t, r.PatternType)
}

func TestAnalyze_InfersTypeFromKeywords(t *testing.T) {
	tests := []struct {
		text string
		want models.PatternType
	}{
		{"Spotify will renew soon", models.PatternRenewalNotice},
		{"Spotify: your next bill is ready", models.PatternRenewalNotice},
		{"Spotify renewal canceled", models.PatternRenewalNotice},
		{"Spotify says welcome aboard", models.PatternSubscriptionConfirmation},
		{"You subscribed to Spotify", models.PatternSubscriptionConfirmation},
		{"Spotify trial ends soon", models.PatternTrialEnding},
		{"Spotify trial expired", models.PatternTrialEnding},
		{"Spotify trial started", models.PatternPaymentConfirmation},
		{"Spotify plan canceled", models.PatternCancellation},
		{"Spotify price increase", models.PatternPriceChange},
		{"Spotify price is the same", models.PatternPaymentConfirmation},
	}

	// An empty registry forces the inference chain.
	c := newTestClassifier(registry.New(false), nil)
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r, extraction := c.AnalyzeWithExtraction(tt.text, "")
			require.NotNil(t, extraction.Service)
			require.NotNil(t, r.PatternType)
			assert.Equal(t, tt.want, *r.PatternType)
		})
	}
}

func TestAnalyze_FallbackOnOverallConfidence(t *testing.T) {
	c := newTestClassifier(registry.New(false), nil)

	r, extraction := c.AnalyzeWithExtraction("charged $5.00 on 11/01/2026", "")

	require.Nil(t, extraction.Service)
	require.Greater(t, extraction.OverallConfidence, FallbackThreshold)
	assert.True(t, r.Matched)
	assert.Equal(t, int(math.Floor(extraction.OverallConfidence*100)), r.Confidence)
	assert.Nil(t, r.PatternType)
	assert.Nil(t, r.ExtractedData.NextBillingDate)
}

func TestAnalyze_InferredTypeAcceptedOnOverallConfidence(t *testing.T) {
	c := newTestClassifier(registry.New(false), nil)

	r, extraction := c.AnalyzeWithExtraction("see you soon", "billing-gymbox@mail.com")

	require.NotNil(t, extraction.Service)
	assert.True(t, r.Matched)
	assert.Equal(t, int(math.Floor(extraction.OverallConfidence*100)), r.Confidence)
	require.NotNil(t, r.PatternType)
	assert.Equal(t, models.PatternPaymentConfirmation, *r.PatternType)
	assert.Equal(t, "Gymbox", r.ExtractedData.ServiceName)
}

func TestAnalyze_NumericShortCodeSender(t *testing.T) {
	c := newTestClassifier(registry.New(true), nil)

	r, extraction := c.AnalyzeWithExtraction("Your order has shipped", "12345")

	require.NotNil(t, extraction.Service)
	assert.Equal(t, "12345", extraction.Service.RawName)
	assert.InDelta(t, 0.65, extraction.OverallConfidence, 1e-9)
	assert.True(t, r.Matched)
	assert.Equal(t, 65, r.Confidence)
	require.NotNil(t, r.PatternType)
	assert.Equal(t, models.PatternPaymentConfirmation, *r.PatternType)
}

func TestAnalyze_FallbackThresholdIsExclusive(t *testing.T) {
	c := newTestClassifier(registry.New(false), nil)

	r, extraction := c.AnalyzeWithExtraction("recurring charge", "")

	require.NotNil(t, extraction.BillingCycle)
	assert.Equal(t, FallbackThreshold, extraction.OverallConfidence)
	assert.False(t, r.Matched)
	assert.Equal(t, 0, r.Confidence)
	assert.Nil(t, r.PatternType)
	assert.Equal(t, "monthly", r.ExtractedData.BillingCycle)
	assert.Nil(t, r.ExtractedData.NextBillingDate)
}

func TestAnalyze_Idempotent(t *testing.T) {
	c := newTestClassifier(registry.New(true), nil)
	text := "Your Spotify Premium renews on Nov 3, 2026 for €10.99/month"

	first := c.Analyze(text, "no-reply@spotify.com")
	second := c.Analyze(text, "no-reply@spotify.com")
	assert.Equal(t, first, second)
}

func TestAnalyze_LogsMissingHintedFields(t *testing.T) {
	logger := logging.NewMockLogger()
	reg := registry.New(false)
	reg.RegisterEntry(models.PatternEntry{
		Pattern: regexp.MustCompile(`(?i)membership`),
		Type:    models.PatternRenewalNotice,
		Score:   90,
		Hints:   models.ExtractorHints{Amount: true, Date: true},
		Source:  models.SourceConfig,
	})
	c := newTestClassifier(reg, logger)

	r := c.Analyze("Your Netflix membership renews soon", "")
	require.True(t, r.Matched)

	var fields []interface{}
	for _, e := range logger.GetEntriesByLevel("DEBUG") {
		if e.Message != "Hinted field not extracted" {
			continue
		}
		for _, f := range e.Fields {
			if f.Key == logging.FieldField {
				fields = append(fields, f.Value)
			}
		}
	}
	assert.ElementsMatch(t, []interface{}{"amount", "date"}, fields)
}

func TestWithSource_UsesSnapshot(t *testing.T) {
	reg := registry.New(true)
	c := newTestClassifier(reg, nil)
	snapshotted := c.WithSource(reg.Snapshot())

	reg.Register(regexp.MustCompile(`(?i)custom service`), models.PatternCancellation, 99, models.ExtractorHints{})

	text := "Custom Service: your subscription is now active"
	assert.Equal(t, 99, c.Analyze(text, "").Confidence)
	assert.Equal(t, 85, snapshotted.Analyze(text, "").Confidence)
}

func TestNextBillingDate(t *testing.T) {
	today := date(2026, time.October, 15)
	extracted := &models.ExtractedDate{Date: date(2026, time.November, 3), Confidence: 0.9}
	monthly := &models.ExtractedBillingCycle{Cycle: models.CycleMonthly, Confidence: 0.9}
	custom := &models.ExtractedBillingCycle{Cycle: models.CycleCustom, IntervalMonths: 18, Confidence: 0.85}

	tests := []struct {
		name   string
		kind   *models.PatternType
		result models.ExtractionResult
		want   *time.Time
	}{
		{"no type", nil, models.ExtractionResult{Date: extracted, BillingCycle: monthly}, nil},
		{"renewal uses date", models.PatternRenewalNotice.Ptr(), models.ExtractionResult{Date: extracted, BillingCycle: monthly}, &extracted.Date},
		{"trial without date", models.PatternTrialEnding.Ptr(), models.ExtractionResult{BillingCycle: monthly}, nil},
		{"payment advances date", models.PatternPaymentConfirmation.Ptr(), models.ExtractionResult{Date: extracted, BillingCycle: monthly}, timePtr(date(2026, time.December, 3))},
		{"payment advances today", models.PatternPaymentConfirmation.Ptr(), models.ExtractionResult{BillingCycle: monthly}, timePtr(date(2026, time.November, 15))},
		{"custom interval", models.PatternSubscriptionConfirmation.Ptr(), models.ExtractionResult{BillingCycle: custom}, timePtr(date(2028, time.April, 15))},
		{"no cycle", models.PatternPriceChange.Ptr(), models.ExtractionResult{Date: extracted}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextBillingDate(tt.kind, tt.result, today)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestDefaultTypeRules_LastAlwaysApplies(t *testing.T) {
	rules := DefaultTypeRules()
	kind, ok := rules[len(rules)-1].Infer("")
	assert.True(t, ok)
	assert.Equal(t, models.PatternPaymentConfirmation, kind)
}

func timePtr(t time.Time) *time.Time { return &t }
