// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/subscan/internal/currencyutils"
	"fjacquet/subscan/internal/models"
)

// Output formats accepted by --format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// ValidateFormat rejects unknown output formats.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("invalid output format: %s (must be '%s' or '%s')", format, FormatJSON, FormatText)
	}
}

// MessageText resolves the message to analyze. The --text flag wins over
// positional arguments, and "-" reads the whole of stdin.
func MessageText(flagText string, args []string, stdin io.Reader) (string, error) {
	text := flagText
	if text == "" {
		text = strings.Join(args, " ")
	}
	if text == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("error reading message from stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("message text is required")
	}
	return text, nil
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

// WriteExtractionText writes one "field: value" line per extracted field.
func WriteExtractionText(w io.Writer, r models.ExtractionResult) error {
	var b strings.Builder
	if r.Service != nil {
		fmt.Fprintf(&b, "service:    %s (%.2f)\n", r.Service.NormalizedName, r.Service.Confidence)
	}
	if r.Amount != nil {
		fmt.Fprintf(&b, "amount:     %s (%.2f)\n", currencyutils.FormatAmount(r.Amount.Value, r.Amount.Currency), r.Amount.Confidence)
	}
	if r.Date != nil {
		fmt.Fprintf(&b, "date:       %s (%.2f)\n", r.Date.Date.Format(models.DateLayout), r.Date.Confidence)
	}
	if r.BillingCycle != nil {
		cycle := string(r.BillingCycle.Cycle)
		if r.BillingCycle.Cycle == models.CycleCustom {
			cycle = fmt.Sprintf("every %d months", r.BillingCycle.IntervalMonths)
		}
		fmt.Fprintf(&b, "cycle:      %s (%.2f)\n", cycle, r.BillingCycle.Confidence)
	}
	fmt.Fprintf(&b, "confidence: %.2f\n", r.OverallConfidence)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteMatchText writes a short human-readable verdict.
func WriteMatchText(w io.Writer, r models.PatternMatchResult) error {
	var b strings.Builder
	if r.Matched {
		fmt.Fprintf(&b, "matched:    yes (%d)\n", r.Confidence)
	} else {
		b.WriteString("matched:    no\n")
	}
	if r.PatternType != nil {
		fmt.Fprintf(&b, "type:       %s\n", *r.PatternType)
	}

	d := r.ExtractedData
	if d.ServiceName != "" {
		fmt.Fprintf(&b, "service:    %s\n", d.ServiceName)
	}
	if d.Price != nil {
		fmt.Fprintf(&b, "amount:     %s\n", currencyutils.FormatAmount(*d.Price, d.Currency))
	}
	if d.Date != nil {
		fmt.Fprintf(&b, "date:       %s\n", d.Date.Format(models.DateLayout))
	}
	if d.BillingCycle != "" {
		fmt.Fprintf(&b, "cycle:      %s\n", d.BillingCycle)
	}
	if d.NextBillingDate != nil {
		fmt.Fprintf(&b, "next bill:  %s\n", d.NextBillingDate.Format(models.DateLayout))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
