package extractor

import (
	"testing"
	"time"

	"fjacquet/subscan/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testToday is a Thursday.
var testToday = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newDateExtractor() *DateExtractor {
	return NewDateExtractor(logging.NewMockLogger(), FixedClock(testToday))
}

func TestDateExtractor_Absolute(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       time.Time
		confidence float64
	}{
		{"us numeric", "Renews 12/25/2026", day(2026, time.December, 25), 0.9},
		{"us numeric short year", "Next charge 12/25/26", day(2026, time.December, 25), 0.8},
		{"european dotted", "Valid until 25.12.2026", day(2026, time.December, 25), 0.85},
		{"european dashed short year", "Billed 25-12-26", day(2026, time.December, 25), 0.75},
		{"abbreviated month with comma", "Your plan renews Oct 20, 2026", day(2026, time.October, 20), 0.95},
		{"iso", "Next billing: 2026-11-01", day(2026, time.November, 1), 0.95},
		{"day month year", "Expires 3 November 2026", day(2026, time.November, 3), 0.9},
		{"ordinal day of month", "Expires 3rd of November 2026", day(2026, time.November, 3), 0.9},
		{"month day year", "Expires November 3 2026", day(2026, time.November, 3), 0.9},
		{"month day assumes current year", "Expires November 3", day(2026, time.November, 3), 0.75},
	}

	e := newDateExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(got.Date), "got %s", got.Date)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.False(t, got.IsRelative)
			assert.NotEmpty(t, got.OriginalText)
		})
	}
}

func TestDateExtractor_Window(t *testing.T) {
	e := newDateExtractor()

	tests := []struct {
		text  string
		found bool
	}{
		{"Renews 10/15/2031", true},
		{"Renews 10/16/2031", false},
		{"Renews 10/15/2021", true},
		{"Renews 10/14/2021", false},
		{"Member since 01/01/2020", false},
		{"Renews 12/31/2032", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := e.Extract(tt.text)
			if tt.found {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestDateExtractor_InvalidCalendarDate(t *testing.T) {
	logger := logging.NewMockLogger()
	e := NewDateExtractor(logger, FixedClock(testToday))

	assert.Nil(t, e.Extract("Due 02/30/2026"))
	assert.True(t, logger.HasEntry("DEBUG", "Date candidate rejected"))
}

func TestDateExtractor_Relative(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		want       time.Time
		confidence float64
	}{
		{"tomorrow", "Your trial ends tomorrow", day(2026, time.October, 16), 0.9},
		{"next week", "We will charge you next week", day(2026, time.October, 22), 0.85},
		{"next month", "Renews next month", day(2026, time.November, 15), 0.85},
		{"next year", "Renews next year", day(2027, time.October, 15), 0.85},
		{"next weekday", "Renews next Friday", day(2026, time.October, 16), 0.85},
		{"on same weekday skips today", "Charged on Thursday", day(2026, time.October, 22), 0.8},
		{"in days", "Your trial ends in 10 days", day(2026, time.October, 25), 0.9},
		{"in weeks", "Renews in 3 weeks", day(2026, time.November, 5), 0.85},
		{"in months", "Renews in 2 months", day(2026, time.December, 15), 0.85},
	}

	e := newDateExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(got.Date), "got %s", got.Date)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
			assert.True(t, got.IsRelative)
		})
	}
}

func TestDateExtractor_RelativeCountLimits(t *testing.T) {
	e := newDateExtractor()

	assert.Nil(t, e.Extract("Renews in 400 days"))
	assert.Nil(t, e.Extract("Renews in 60 weeks"))
	assert.Nil(t, e.Extract("Renews in 30 months"))
}

func TestDateExtractor_ContextFallback(t *testing.T) {
	e := newDateExtractor()

	got := e.Extract("Old code 02/30/2026. Renews on 03/15/2027")
	require.NotNil(t, got)
	assert.True(t, day(2027, time.March, 15).Equal(got.Date))
	assert.InDelta(t, 0.85, got.Confidence, 1e-9)

	got = e.Extract("Your plan renews on December3")
	require.NotNil(t, got)
	assert.True(t, day(2026, time.December, 3).Equal(got.Date))
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
	assert.Equal(t, "December3", got.OriginalText)
}

func TestDateExtractor_NoDate(t *testing.T) {
	e := newDateExtractor()

	for _, text := range []string{"", "Your pizza delivery is on the way!", "Hello there"} {
		assert.Nil(t, e.Extract(text), text)
	}
}

func TestDateExtractor_NilClockUsesSystemTime(t *testing.T) {
	e := NewDateExtractor(nil, nil)

	got := e.Extract("Renews tomorrow")
	require.NotNil(t, got)
	tomorrow := time.Now().AddDate(0, 0, 1)
	assert.Equal(t, tomorrow.Day(), got.Date.Day())
}
