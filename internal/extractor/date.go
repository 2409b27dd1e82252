package extractor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"fjacquet/subscan/internal/dateutils"
	"fjacquet/subscan/internal/lexicon"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
)

// dateBuilder turns the submatches of a date pattern into a calendar date.
type dateBuilder func(m []string, today time.Time) (time.Time, bool)

type datePattern struct {
	name       string
	re         *regexp.Regexp
	confidence float64
	build      dateBuilder
}

// DateExtractor finds the first plausible calendar date in a message.
// Absolute dates must fall within five years of the clock's today.
type DateExtractor struct {
	absolute []datePattern
	relative []datePattern
	context  []datePattern
	minimal  *regexp.Regexp
	clock    Clock
	logger   logging.Logger
}

// NewDateExtractor builds the date tables. A nil clock means SystemClock.
func NewDateExtractor(logger logging.Logger, clock Clock) *DateExtractor {
	if clock == nil {
		clock = SystemClock
	}
	month := lexicon.MonthPattern
	ordinal := `(?:st|nd|rd|th)?`

	return &DateExtractor{
		absolute: []datePattern{
			{"mm/dd/yyyy", regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`), 0.9, numericDate(3, 1, 2, false)},
			{"mm/dd/yy", regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2})\b`), 0.8, numericDate(3, 1, 2, true)},
			{"dd.mm.yyyy", regexp.MustCompile(`\b(\d{1,2})[.-](\d{1,2})[.-](\d{4})\b`), 0.85, numericDate(3, 2, 1, false)},
			{"dd-mm-yy", regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{2})\b`), 0.75, numericDate(3, 2, 1, true)},
			{"mon dd, yyyy", regexp.MustCompile(`(?i)\b` + month + `\.?\s+(\d{1,2})` + ordinal + `,\s*(\d{4})\b`), 0.95, namedDate(3, 1, 2)},
			{"yyyy-mm-dd", regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`), 0.95, numericDate(1, 2, 3, false)},
			{"dd month yyyy", regexp.MustCompile(`(?i)\b(\d{1,2})` + ordinal + `\s+(?:of\s+)?` + month + `\.?,?\s+(\d{4})\b`), 0.9, namedDate(3, 2, 1)},
			{"month dd yyyy", regexp.MustCompile(`(?i)\b` + month + `\.?\s+(\d{1,2})` + ordinal + `\s+(\d{4})\b`), 0.9, namedDate(3, 1, 2)},
			{"month dd", regexp.MustCompile(`(?i)\b` + month + `\.?\s+(\d{1,2})` + ordinal + `\b`), 0.75, namedDate(0, 1, 2)},
		},
		relative: []datePattern{
			{"tomorrow", regexp.MustCompile(`(?i)\btomorrow\b`), 0.9, offsetDate(0, 0, 1)},
			{"next period", regexp.MustCompile(`(?i)\bnext\s+(week|month|year)\b`), 0.85, nextPeriod},
			{"next weekday", regexp.MustCompile(`(?i)\bnext\s+` + lexicon.WeekdayPattern + `\b`), 0.85, weekdayDate},
			{"in n days", regexp.MustCompile(`(?i)\bin\s+(\d+)\s+days?\b`), 0.9, countedDate(365, 0, 0, 1)},
			{"in n weeks", regexp.MustCompile(`(?i)\bin\s+(\d+)\s+weeks?\b`), 0.85, countedDate(52, 0, 0, 7)},
			{"in n months", regexp.MustCompile(`(?i)\bin\s+(\d+)\s+months?\b`), 0.85, countedDate(24, 0, 1, 0)},
			{"on weekday", regexp.MustCompile(`(?i)\bon\s+` + lexicon.WeekdayPattern + `\b`), 0.8, weekdayDate},
		},
		context: []datePattern{
			{"event on", regexp.MustCompile(`(?i)\b(?:ends|renews|expires|starts|begins|due|billed|charged)\s+on\s+([^.!?\n]{3,30})`), 0.85, nil},
			{"on", regexp.MustCompile(`(?i)\bon\s+([^.!?\n]{3,30})`), 0.75, nil},
		},
		minimal: regexp.MustCompile(`(?i)` + month + `[a-z]*\.?\s*(\d{1,2})` + ordinal + `(?:,?\s*(\d{4}))?`),
		clock:   clock,
		logger:  orDefaultLogger(logger),
	}
}

// Extract returns the first date found in text, or nil.
func (e *DateExtractor) Extract(text string) *models.ExtractedDate {
	if isBlank(text) {
		return nil
	}
	today := dateutils.DateOnly(e.clock())

	if d := e.matchTable(e.absolute, text, today, false); d != nil {
		return d
	}
	if d := e.matchTable(e.relative, text, today, true); d != nil {
		return d
	}

	for _, p := range e.context {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		sub := strings.TrimSpace(m[1])
		if d := e.matchTable(e.absolute, sub, today, false); d != nil {
			d.Confidence = p.confidence
			return d
		}
		if d := e.minimalParse(sub, today); d != nil {
			return d
		}
	}
	return nil
}

func (e *DateExtractor) matchTable(table []datePattern, text string, today time.Time, relative bool) *models.ExtractedDate {
	for _, p := range table {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		d, ok := p.build(m, today)
		if !ok || !dateutils.WithinWindow(d, today, dateutils.WindowYears) {
			e.logger.Debug("Date candidate rejected",
				logging.Field{Key: "pattern", Value: p.name},
				logging.Field{Key: "match", Value: m[0]})
			continue
		}
		e.logger.Debug("Date extracted",
			logging.Field{Key: "pattern", Value: p.name},
			logging.Field{Key: logging.FieldConfidence, Value: p.confidence})
		return &models.ExtractedDate{
			Date:         d,
			OriginalText: strings.TrimSpace(m[0]),
			IsRelative:   relative,
			Confidence:   p.confidence,
		}
	}
	return nil
}

func (e *DateExtractor) minimalParse(sub string, today time.Time) *models.ExtractedDate {
	m := e.minimal.FindStringSubmatch(sub)
	if m == nil {
		return nil
	}
	d, ok := namedDate(3, 1, 2)(m, today)
	if !ok || !dateutils.WithinWindow(d, today, dateutils.WindowYears) {
		return nil
	}
	return &models.ExtractedDate{
		Date:         d,
		OriginalText: strings.TrimSpace(m[0]),
		Confidence:   0.7,
	}
}

// numericDate builds a date from numeric groups. Two-digit years are 20YY.
func numericDate(yearGroup, monthGroup, dayGroup int, shortYear bool) dateBuilder {
	return func(m []string, today time.Time) (time.Time, bool) {
		year, err1 := strconv.Atoi(m[yearGroup])
		month, err2 := strconv.Atoi(m[monthGroup])
		day, err3 := strconv.Atoi(m[dayGroup])
		if err1 != nil || err2 != nil || err3 != nil {
			return time.Time{}, false
		}
		if shortYear {
			year += 2000
		}
		return dateutils.ValidDate(year, time.Month(month), day, today.Location())
	}
}

// namedDate builds a date from a month-name group. A zero or empty year
// group means the current year.
func namedDate(yearGroup, monthGroup, dayGroup int) dateBuilder {
	return func(m []string, today time.Time) (time.Time, bool) {
		month, ok := lexicon.MonthFromName(m[monthGroup])
		if !ok {
			return time.Time{}, false
		}
		day, err := strconv.Atoi(m[dayGroup])
		if err != nil {
			return time.Time{}, false
		}
		year := today.Year()
		if yearGroup > 0 && yearGroup < len(m) && m[yearGroup] != "" {
			if year, err = strconv.Atoi(m[yearGroup]); err != nil {
				return time.Time{}, false
			}
		}
		return dateutils.ValidDate(year, month, day, today.Location())
	}
}

func offsetDate(years, months, days int) dateBuilder {
	return func(_ []string, today time.Time) (time.Time, bool) {
		return today.AddDate(years, months, days), true
	}
}

func nextPeriod(m []string, today time.Time) (time.Time, bool) {
	switch strings.ToLower(m[1]) {
	case "week":
		return today.AddDate(0, 0, 7), true
	case "month":
		return today.AddDate(0, 1, 0), true
	case "year":
		return today.AddDate(1, 0, 0), true
	}
	return time.Time{}, false
}

func weekdayDate(m []string, today time.Time) (time.Time, bool) {
	wd, ok := lexicon.WeekdayFromName(m[1])
	if !ok {
		return time.Time{}, false
	}
	return dateutils.NextWeekday(today, wd), true
}

// countedDate handles "in N units"; N above max makes the pattern non-matching.
func countedDate(max, years, months, days int) dateBuilder {
	return func(m []string, today time.Time) (time.Time, bool) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n > max {
			return time.Time{}, false
		}
		return today.AddDate(years*n, months*n, days*n), true
	}
}
