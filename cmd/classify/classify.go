// Package classify handles the message classification command
package classify

import (
	"io"

	"fjacquet/subscan/cmd/common"
	"fjacquet/subscan/cmd/root"
	"fjacquet/subscan/internal/classifier"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"

	"github.com/spf13/cobra"
)

var (
	text           string
	sender         string
	format         string
	withExtraction bool
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify [message...]",
	Short: "Classify a message as a subscription event",
	Long: `Classify a message against the pattern registry and report the event type,
the classifier confidence (0-100) and the extracted fields.
The message is taken from --text, from the arguments, or from stdin when it is "-".`,
	RunE: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Message text")
	Cmd.Flags().StringVarP(&sender, "sender", "s", "", "Message sender (e-mail address, short code or name)")
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatJSON, "Output format (json, text)")
	Cmd.Flags().BoolVarP(&withExtraction, "with-extraction", "x", false, "Include the full extraction result in JSON output")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	if err := common.ValidateFormat(format); err != nil {
		return err
	}
	message, err := common.MessageText(text, args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	c.GetLogger().Debug("Classify command called",
		logging.Field{Key: logging.FieldSender, Value: sender})
	return Run(c.GetClassifier(), message, sender, Options{Format: format, WithExtraction: withExtraction}, cmd.OutOrStdout())
}

// Options controls how a classification is written.
type Options struct {
	Format         string
	WithExtraction bool
}

// Report is the JSON document written with --with-extraction.
type Report struct {
	Result     models.PatternMatchResult `json:"result"`
	Extraction models.ExtractionResult   `json:"extraction"`
}

// Run classifies one message and writes the verdict to w.
func Run(cls *classifier.Classifier, message, sender string, opts Options, w io.Writer) error {
	result, extraction := cls.AnalyzeWithExtraction(message, sender)

	switch {
	case opts.Format == common.FormatText:
		if err := common.WriteMatchText(w, result); err != nil {
			return err
		}
		if opts.WithExtraction {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
			return common.WriteExtractionText(w, extraction)
		}
		return nil
	case opts.WithExtraction:
		return common.WriteJSON(w, Report{Result: result, Extraction: extraction})
	default:
		return common.WriteJSON(w, result)
	}
}
