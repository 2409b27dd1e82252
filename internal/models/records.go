package models

// Message is one input row of a batch scan.
type Message struct {
	ID     string `csv:"id"`
	Sender string `csv:"sender"`
	Text   string `csv:"text"`
}

// ScanRecord is one output row of a batch scan. Optional values are empty
// strings so the CSV stays readable.
type ScanRecord struct {
	ID                string  `csv:"id"`
	Sender            string  `csv:"sender"`
	Matched           bool    `csv:"matched"`
	Confidence        int     `csv:"confidence"`
	PatternType       string  `csv:"pattern_type"`
	Accepted          bool    `csv:"accepted"`
	Service           string  `csv:"service"`
	Amount            string  `csv:"amount"`
	Currency          string  `csv:"currency"`
	Date              string  `csv:"date"`
	BillingCycle      string  `csv:"billing_cycle"`
	IntervalMonths    uint32  `csv:"interval_months"`
	NextBillingDate   string  `csv:"next_billing_date"`
	OverallConfidence float64 `csv:"overall_confidence"`
}
