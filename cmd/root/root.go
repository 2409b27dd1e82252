// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/subscan/internal/config"
	"fjacquet/subscan/internal/container"
	"fjacquet/subscan/internal/dateutils"
	"fjacquet/subscan/internal/extractor"
	"fjacquet/subscan/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Config    string
	Patterns  string
	LogLevel  string
	LogFormat string
	// Today pins the date relative phrases are resolved against.
	Today     string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the loaded configuration with flag overrides applied.
	AppConfig *config.Config

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "subscan",
		Short: "A CLI tool to detect and extract subscription events from messages.",
		Long: `subscan analyzes short messages such as SMS or notification bodies, decides
whether they describe a subscription event and extracts the amount, service,
date and billing cycle they mention.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: bootstrap,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
			}
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Config, "config", "c", "", "Config file (default: $HOME/.subscan/config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Patterns, "patterns", "", "Pattern rules YAML file (overrides patterns.file)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Today, "today", "", "Resolve relative dates against this day, e.g. 2026-10-15 (default: current date)")
}

// bootstrap loads the configuration, applies flag overrides and wires the container.
func bootstrap(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(SharedFlags.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	ApplyFlags(cfg, SharedFlags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := ContainerOptions(SharedFlags)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	logging.SetDefaultLogger(Log)
	return nil
}

// ApplyFlags overrides cfg with the flags that were set.
func ApplyFlags(cfg *config.Config, flags CommonFlags) {
	if flags.Patterns != "" {
		cfg.Patterns.File = flags.Patterns
	}
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
}

// ContainerOptions turns flags that do not live in the configuration into
// container options.
func ContainerOptions(flags CommonFlags) ([]container.Option, error) {
	if flags.Today == "" {
		return nil, nil
	}
	today, _, err := dateutils.ParseDate(flags.Today)
	if err != nil {
		return nil, fmt.Errorf("invalid --today value: %w", err)
	}
	return []container.Option{container.WithClock(extractor.FixedClock(today))}, nil
}

// GetContainer returns the container built by the root command.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return AppContainer, nil
}

// GetConfig returns the configuration loaded by the root command.
func GetConfig() *config.Config {
	return AppConfig
}
