// Package scan handles the batch scanning command
package scan

import (
	"context"
	"fmt"
	"io"

	"fjacquet/subscan/cmd/root"
	internalcommon "fjacquet/subscan/internal/common"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/scanner"
	"fjacquet/subscan/internal/validation"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	input        string
	output       string
	delimiter    string
	workers      int
	acceptedOnly bool
	noProgress   bool
)

// Cmd represents the scan command
var Cmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify a CSV backlog of messages",
	Long: `Classify every message of a CSV file and write one result row per message.
The input needs a "text" column; "id" and "sender" columns are optional.
Rows without an id get a generated one.`,
	RunE: scanFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Input CSV file")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default: stdout)")
	Cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "CSV delimiter (overrides scan.delimiter)")
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of workers (overrides scan.workers)")
	Cmd.Flags().BoolVarP(&acceptedOnly, "accepted-only", "a", false, "Only write rows above the accept threshold")
	Cmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not draw a progress bar")
	_ = Cmd.MarkFlagRequired("input")
}

func scanFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	cfg := c.GetConfig()
	if delimiter != "" {
		cfg.Scan.Delimiter = delimiter
	}
	if workers > 0 {
		cfg.Scan.Workers = workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	sc := c.NewScanner()
	opts := Options{
		Input:        input,
		Output:       output,
		Delimiter:    cfg.DelimiterRune(),
		AcceptedOnly: acceptedOnly,
	}
	if !noProgress {
		opts.Progress = cmd.ErrOrStderr()
	}
	return Run(cmd.Context(), sc, opts, cmd.OutOrStdout(), c.GetLogger())
}

// Options describes one scan run.
type Options struct {
	Input        string
	Output       string
	Delimiter    rune
	AcceptedOnly bool
	// Progress receives a progress bar when not nil.
	Progress io.Writer
}

// Run reads opts.Input, scans it and writes the records to opts.Output, or to
// stdout when no output file is given.
func Run(ctx context.Context, sc *scanner.Scanner, opts Options, stdout io.Writer, logger logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := validation.InputFile(opts.Input); err != nil {
		return fmt.Errorf("error reading messages: %w", err)
	}
	if err := validation.DistinctPaths(opts.Input, opts.Output); err != nil {
		return err
	}

	messages, err := internalcommon.ReadMessages(opts.Input, opts.Delimiter, logger)
	if err != nil {
		return fmt.Errorf("error reading messages: %w", err)
	}

	var bar *progressbar.ProgressBar
	if opts.Progress != nil && len(messages) > 0 {
		bar = progressbar.NewOptions(len(messages),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("Scanning"),
			progressbar.OptionShowCount(),
		)
		sc.SetProgress(func(done, total int) {
			_ = bar.Add(1)
		})
	}

	records, err := sc.Scan(ctx, messages)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	if opts.AcceptedOnly {
		records = Accepted(records)
	}

	if opts.Output == "" {
		return internalcommon.WriteScanRecordsTo(stdout, records, opts.Delimiter)
	}
	return internalcommon.WriteScanRecords(records, opts.Output, opts.Delimiter, logger)
}

// Accepted keeps the records whose classification passed the accept threshold.
func Accepted(records []models.ScanRecord) []models.ScanRecord {
	out := make([]models.ScanRecord, 0, len(records))
	for _, r := range records {
		if r.Accepted {
			out = append(out, r)
		}
	}
	return out
}
