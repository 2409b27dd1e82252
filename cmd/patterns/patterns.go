// Package patterns handles the pattern registry commands
package patterns

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/subscan/cmd/root"
	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/registry"
	"fjacquet/subscan/internal/store"

	"github.com/spf13/cobra"
)

var (
	listType string

	learnPattern string
	learnType    string
	learnScore   int
	hintAmount   bool
	hintService  bool
	hintDate     bool
)

// Cmd represents the patterns command
var Cmd = &cobra.Command{
	Use:   "patterns",
	Short: "Inspect and extend the pattern registry",
	Long:  `Inspect the registered classification patterns and learn new ones from feedback.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered patterns in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return List(c.GetRegistry(), listType, cmd.OutOrStdout())
	},
}

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Add a pattern rule to the rules file",
	Long: `Validate a pattern rule and append it to the rules file (patterns.file).
The rule is registered again on every later start.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		rule := models.PatternRule{
			Pattern: learnPattern,
			Type:    learnType,
			Score:   learnScore,
			Hints:   models.ExtractorHints{Amount: hintAmount, ServiceName: hintService, Date: hintDate},
		}
		if err := Learn(c.GetStore(), c.GetRegistry(), rule, c.GetLogger()); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Learned %s rule %q (score %d)\n", rule.Type, rule.Pattern, rule.Score)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a rules file without registering it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		file := c.GetConfig().Patterns.File
		if len(args) == 1 {
			file = args[0]
		}
		n, err := Validate(store.NewPatternStore(file, c.GetLogger()))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d valid rules\n", file, n)
		return err
	},
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "Only list patterns of this type")

	learnCmd.Flags().StringVarP(&learnPattern, "pattern", "p", "", "Regular expression to match")
	learnCmd.Flags().StringVarP(&learnType, "type", "t", "", "Pattern type (e.g. PaymentConfirmation)")
	learnCmd.Flags().IntVarP(&learnScore, "score", "s", 80, "Classifier score (0-100)")
	learnCmd.Flags().BoolVar(&hintAmount, "hint-amount", false, "Matching messages are expected to carry an amount")
	learnCmd.Flags().BoolVar(&hintService, "hint-service", false, "Matching messages are expected to name a service")
	learnCmd.Flags().BoolVar(&hintDate, "hint-date", false, "Matching messages are expected to carry a date")
	_ = learnCmd.MarkFlagRequired("pattern")
	_ = learnCmd.MarkFlagRequired("type")

	Cmd.AddCommand(listCmd, learnCmd, validateCmd)
}

// List writes the registry entries as a table, optionally filtered by type.
func List(source registry.Source, typeFilter string, w io.Writer) error {
	var filter models.PatternType
	if typeFilter != "" {
		pt, err := models.ParsePatternType(typeFilter)
		if err != nil {
			return err
		}
		filter = pt
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSOURCE\tTYPE\tSCORE\tHINTS\tPATTERN")
	for i, e := range source.Entries() {
		if filter != "" && e.Type != filter {
			continue
		}
		pattern := ""
		if e.Pattern != nil {
			pattern = e.Pattern.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", i, e.Source, e.Type, e.Score, hintList(e.Hints), pattern)
	}
	return tw.Flush()
}

func hintList(h models.ExtractorHints) string {
	var hints []string
	if h.Amount {
		hints = append(hints, "amount")
	}
	if h.ServiceName {
		hints = append(hints, "service")
	}
	if h.Date {
		hints = append(hints, "date")
	}
	if len(hints) == 0 {
		return "-"
	}
	return strings.Join(hints, ",")
}

// Learn validates rule, appends it to rules and registers it in reg.
func Learn(rules store.RuleStore, reg *registry.Registry, rule models.PatternRule, logger logging.Logger) error {
	entry, err := store.CompileRule("feedback", 0, rule, models.SourceFeedback)
	if err != nil {
		return err
	}
	if err := rules.AppendRule(rule); err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	reg.RegisterEntry(entry)

	logger.Info("Learned pattern rule",
		logging.Field{Key: logging.FieldPatternType, Value: entry.Type},
		logging.Field{Key: logging.FieldScore, Value: entry.Score})
	return nil
}

// Validate loads every rule of rules and compiles it into a scratch registry.
// It returns the number of rules.
func Validate(rules *store.PatternStore) (int, error) {
	loaded, err := rules.LoadRules()
	if err != nil {
		return 0, err
	}
	return store.ApplyRules(registry.New(false), rules.RulesFile, loaded)
}
