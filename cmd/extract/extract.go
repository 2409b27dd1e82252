// Package extract handles the field extraction command
package extract

import (
	"io"

	"fjacquet/subscan/cmd/common"
	"fjacquet/subscan/cmd/root"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/orchestrator"

	"github.com/spf13/cobra"
)

var (
	text   string
	sender string
	format string
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract [message...]",
	Short: "Extract amount, service, date and billing cycle from a message",
	Long: `Extract the structured fields of a message without classifying it.
The message is taken from --text, from the arguments, or from stdin when it is "-".`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&text, "text", "t", "", "Message text")
	Cmd.Flags().StringVarP(&sender, "sender", "s", "", "Message sender (e-mail address, short code or name)")
	Cmd.Flags().StringVarP(&format, "format", "f", common.FormatJSON, "Output format (json, text)")
}

func extractFunc(cmd *cobra.Command, args []string) error {
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

	c.GetLogger().Debug("Extract command called",
		logging.Field{Key: logging.FieldSender, Value: sender})
	return Run(c.GetOrchestrator(), message, sender, format, cmd.OutOrStdout())
}

// Run extracts the fields of one message and writes them to w.
func Run(orch *orchestrator.Orchestrator, message, sender, format string, w io.Writer) error {
	result := orch.ExtractSubscriptionData(message, sender)
	if format == common.FormatText {
		return common.WriteExtractionText(w, result)
	}
	return common.WriteJSON(w, result)
}
