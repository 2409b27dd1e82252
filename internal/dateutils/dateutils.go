// Package dateutils provides the calendar arithmetic behind date extraction
// and next-billing-date derivation.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"fjacquet/subscan/internal/models"
)

// Date layouts accepted by ParseDate, in the order they are tried.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutEuropean,
	DateLayoutUS,
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

// WindowYears bounds extracted absolute dates around today.
const WindowYears = 5

var spaces = regexp.MustCompile(`\s+`)

// ParseDate parses a user-supplied date such as a --today flag value.
// Returns the parsed date and the layout that matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = strings.TrimSpace(spaces.ReplaceAllString(dateStr, " "))

	for _, format := range CommonFormats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ValidDate builds a calendar date and reports false when the components do
// not survive a round trip, e.g. February 30.
func ValidDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// WithinWindow reports whether d lies in [today-years, today+years], inclusive.
func WithinWindow(d, today time.Time, years int) bool {
	today = DateOnly(today)
	lower := today.AddDate(-years, 0, 0)
	upper := today.AddDate(years, 0, 0)
	return !d.Before(lower) && !d.After(upper)
}

// NextWeekday returns the first day strictly after today falling on wd.
func NextWeekday(today time.Time, wd time.Weekday) time.Time {
	today = DateOnly(today)
	delta := (int(wd) - int(today.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return today.AddDate(0, 0, delta)
}

// AdvanceByCycle returns d moved forward by one billing cycle. Custom cycles
// use intervalMonths; a custom cycle without an interval reports false.
func AdvanceByCycle(d time.Time, cycle models.BillingCycle, intervalMonths uint32) (time.Time, bool) {
	switch cycle {
	case models.CycleDaily:
		return d.AddDate(0, 0, 1), true
	case models.CycleWeekly:
		return d.AddDate(0, 0, 7), true
	case models.CycleMonthly:
		return d.AddDate(0, 1, 0), true
	case models.CycleQuarterly:
		return d.AddDate(0, 3, 0), true
	case models.CycleBiannual:
		return d.AddDate(0, 6, 0), true
	case models.CycleYearly:
		return d.AddDate(1, 0, 0), true
	case models.CycleCustom:
		if intervalMonths == 0 {
			return time.Time{}, false
		}
		return d.AddDate(0, int(intervalMonths), 0), true
	default:
		return time.Time{}, false
	}
}
