package lexicon

import (
	"strings"
	"time"
)

// MonthPattern matches English month names and their usual abbreviations.
const MonthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// WeekdayPattern matches full English weekday names.
const WeekdayPattern = `(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`

var monthPrefixes = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// MonthFromName resolves a month name or abbreviation.
func MonthFromName(name string) (time.Month, bool) {
	n := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(name, ".")))
	if len(n) < 3 {
		return 0, false
	}
	for i, p := range monthPrefixes {
		if strings.HasPrefix(n, p) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// WeekdayFromName resolves a full weekday name.
func WeekdayFromName(name string) (time.Weekday, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == n {
			return d, true
		}
	}
	return 0, false
}
