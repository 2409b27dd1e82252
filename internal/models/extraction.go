package models

import "time"

// NormalizedAmount is a monetary amount found in a message.
type NormalizedAmount struct {
	Value        float64 `json:"value"`
	Currency     string  `json:"currency"`
	OriginalText string  `json:"originalText"`
	Confidence   float64 `json:"confidence"`
}

// ExtractedService is the merchant or service a message refers to.
type ExtractedService struct {
	RawName        string  `json:"rawName"`
	NormalizedName string  `json:"normalizedName"`
	Confidence     float64 `json:"confidence"`
}

// ExtractedDate is a calendar date at midnight in the extractor clock's location.
type ExtractedDate struct {
	Date         time.Time `json:"date"`
	OriginalText string    `json:"originalText"`
	IsRelative   bool      `json:"isRelative"`
	Confidence   float64   `json:"confidence"`
}

// BillingCycle is the recurrence of a subscription charge.
type BillingCycle string

const (
	CycleMonthly   BillingCycle = "monthly"
	CycleYearly    BillingCycle = "yearly"
	CycleWeekly    BillingCycle = "weekly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleBiannual  BillingCycle = "biannual"
	CycleDaily     BillingCycle = "daily"
	CycleCustom    BillingCycle = "custom"
)

// ExtractedBillingCycle carries IntervalMonths only for CycleCustom.
type ExtractedBillingCycle struct {
	Cycle          BillingCycle `json:"cycle"`
	IntervalMonths uint32       `json:"intervalMonths,omitempty"`
	Confidence     float64      `json:"confidence"`
}

// ExtractionResult is the merged output of all extractors for one message.
// A nil field means the extractor found nothing.
type ExtractionResult struct {
	Amount            *NormalizedAmount      `json:"amount,omitempty"`
	Service           *ExtractedService      `json:"service,omitempty"`
	Date              *ExtractedDate         `json:"date,omitempty"`
	BillingCycle      *ExtractedBillingCycle `json:"billingCycle,omitempty"`
	OverallConfidence float64                `json:"overallConfidence"`
}

// FieldCount returns how many of the four fields were extracted.
func (r ExtractionResult) FieldCount() int {
	n := 0
	if r.Amount != nil {
		n++
	}
	if r.Service != nil {
		n++
	}
	if r.Date != nil {
		n++
	}
	if r.BillingCycle != nil {
		n++
	}
	return n
}
