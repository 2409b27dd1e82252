package models

import "time"

// ExtractedData is the flattened view of an ExtractionResult attached to a
// classification.
type ExtractedData struct {
	Price           *float64   `json:"price,omitempty"`
	ServiceName     string     `json:"serviceName,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	BillingCycle    string     `json:"billingCycle,omitempty"`
	Currency        string     `json:"currency,omitempty"`
	NextBillingDate *time.Time `json:"nextBillingDate,omitempty"`
}

// PatternMatchResult is the classifier verdict for one message.
// Confidence is on a 0-100 scale, unlike the 0-1 extractor confidences.
type PatternMatchResult struct {
	Matched       bool          `json:"matched"`
	Confidence    int           `json:"confidence"`
	PatternType   *PatternType  `json:"patternType,omitempty"`
	ExtractedData ExtractedData `json:"extractedData"`
}
