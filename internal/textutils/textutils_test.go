package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordPattern(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		phrase   string
		expected bool
	}{
		{"simple word", "Your Netflix plan", "netflix", true},
		{"followed by dot", "visit netflix.com", "netflix", true},
		{"inside another word", "netflixing is fun", "netflix", false},
		{"symbol ending", "Disney+ renews soon", "disney+", true},
		{"flexible inner spaces", "Your HBO   Max plan", "hbo max", true},
		{"hyphen bounded", "semi-annual plan", "annual", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, WordPattern(tt.phrase).MatchString(tt.text))
		})
	}
}

func TestWordPattern_IsCached(t *testing.T) {
	assert.Same(t, WordPattern("spotify"), WordPattern("spotify"))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Acme Stream", Capitalize("acme stream"))
	assert.Equal(t, "Streamflix", Capitalize("STREAMFLIX"))
	assert.Equal(t, "", Capitalize("  "))
}

func TestSplitEmail(t *testing.T) {
	local, domain, ok := SplitEmail("Netflix <Info@Mailer.Netflix.com>")
	assert.True(t, ok)
	assert.Equal(t, "info", local)
	assert.Equal(t, "mailer.netflix.com", domain)

	_, _, ok = SplitEmail("VM-NFLIX")
	assert.False(t, ok)

	_, _, ok = SplitEmail("@example.com")
	assert.False(t, ok)
}

func TestMeaningfulDomainLabel(t *testing.T) {
	tests := []struct {
		domain   string
		expected string
		ok       bool
	}{
		{"netflix.com", "netflix", true},
		{"mail.acmestream.com", "acmestream", true},
		{"billing.streamco.co.uk", "streamco", true},
		{"noreply.com", "", false},
		{"localhost", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			label, ok := MeaningfulDomainLabel(tt.domain)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, label)
		})
	}
}

func TestCleanPlainSender(t *testing.T) {
	assert.Equal(t, "NFLIX", CleanPlainSender("VM-NFLIX"))
	assert.Equal(t, "SPOTIFY", CleanPlainSender("AD-SPOTIFY1"))
	assert.Equal(t, "", CleanPlainSender("12345"))
	assert.Equal(t, "Acme Gym", CleanPlainSender("Acme_Gym!"))
}

func TestStripSenderNoise(t *testing.T) {
	assert.Equal(t, "acme", StripSenderNoise("billing-acme@payments.example.com"))
	assert.Equal(t, "", StripSenderNoise("noreply@example.com"))
	assert.Equal(t, "streamco", StripSenderNoise("StreamCo"))
}

func TestContainsAnyAndCountLetters(t *testing.T) {
	assert.True(t, ContainsAny("recurring payment", "charge", "payment"))
	assert.False(t, ContainsAny("hello", "charge"))
	assert.Equal(t, 3, CountLetters("a1b2c3"))
}
