// Package extractor implements the four field extractors of the subscription
// engine: amount, service name, date and billing cycle.
//
// Every extractor is stateless after construction and safe for concurrent use.
// Each one walks an ordered table of patterns and returns the first hit;
// absence is reported as a nil result, never as an error.
package extractor

import (
	"strings"
	"time"

	"fjacquet/subscan/internal/logging"
)

// Clock returns the current time. Relative dates and the date window are
// computed from it.
type Clock func() time.Time

// SystemClock is the default Clock.
func SystemClock() time.Time {
	return time.Now()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func orDefaultLogger(logger logging.Logger) logging.Logger {
	if logger == nil {
		return logging.GetLogger()
	}
	return logger
}
