// Package scanerror defines the typed errors returned at the I/O edges of subscan:
// pattern rule files, message CSV files and configuration values.
// The extraction engine itself never returns errors for unmatched text.
package scanerror

import "fmt"

// RuleError reports a pattern rule that could not be loaded.
// Index is the zero-based position of the rule in its source file.
type RuleError struct {
	Source string
	Index  int
	Field  string
	Value  string
	Err    error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: rule #%d: invalid %s='%s': %v",
		e.Source, e.Index, e.Field, e.Value, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// InvalidInputError represents an input file that is missing or not in the expected shape.
type InvalidInputError struct {
	FilePath string
	Reason   string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input '%s': %s", e.FilePath, e.Reason)
}

// ValidationError represents a value rejected before it reaches the engine,
// such as an out-of-range score or an unknown pattern type.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}
