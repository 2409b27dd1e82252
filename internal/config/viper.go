// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// PatternsConfig controls which pattern entries the registry starts with.
type PatternsConfig struct {
	// File is a YAML ruleset re-registered on every start. A missing file is not an error.
	File    string `mapstructure:"file" yaml:"file"`
	Builtin bool   `mapstructure:"builtin" yaml:"builtin"`
}

// ClassificationConfig holds the thresholds applied to classifier output.
type ClassificationConfig struct {
	// AcceptThreshold is on the 0-100 classifier scale.
	AcceptThreshold int `mapstructure:"accept_threshold" yaml:"accept_threshold"`
}

// ScanConfig controls batch scanning.
type ScanConfig struct {
	Workers   int    `mapstructure:"workers" yaml:"workers"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// Config represents the complete application configuration
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	Patterns       PatternsConfig       `mapstructure:"patterns" yaml:"patterns"`
	Classification ClassificationConfig `mapstructure:"classification" yaml:"classification"`
	Scan           ScanConfig           `mapstructure:"scan" yaml:"scan"`
}

// InitializeConfig loads configuration from defaults, an optional config file and
// SUBSCAN_* environment variables, in increasing order of precedence.
// When configFile is empty the usual search path is used.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.subscan")
		v.AddConfigPath(".subscan")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SUBSCAN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
			}
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration produced by defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults always decode.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("patterns.file", "patterns.yaml")
	v.SetDefault("patterns.builtin", true)

	v.SetDefault("classification.accept_threshold", 75)

	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.delimiter", ",")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Classification.AcceptThreshold < 0 || config.Classification.AcceptThreshold > 100 {
		return fmt.Errorf("classification.accept_threshold must be between 0 and 100, got: %d", config.Classification.AcceptThreshold)
	}

	if config.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got: %d", config.Scan.Workers)
	}

	if len([]rune(config.Scan.Delimiter)) != 1 {
		return fmt.Errorf("scan delimiter must be a single character, got: %q", config.Scan.Delimiter)
	}

	return nil
}

// Validate checks a configuration that was changed after loading.
func (c *Config) Validate() error {
	if err := validateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EffectiveWorkers resolves scan.workers, where 0 means one worker per CPU.
func (c *Config) EffectiveWorkers() int {
	if c.Scan.Workers > 0 {
		return c.Scan.Workers
	}
	return runtime.NumCPU()
}

// DelimiterRune returns the scan delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.Scan.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}
