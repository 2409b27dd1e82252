// Package store loads and saves pattern rulesets. Rules read from a file are
// re-registered into the pattern registry on every start.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"fjacquet/subscan/internal/logging"
	"fjacquet/subscan/internal/models"
	"fjacquet/subscan/internal/registry"
	"fjacquet/subscan/internal/scanerror"
	"fjacquet/subscan/internal/validation"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is used when no ruleset file is configured.
const DefaultRulesFile = "patterns.yaml"

// RuleStore is the persistence contract for pattern rules.
type RuleStore interface {
	LoadRules() ([]models.PatternRule, error)
	SaveRules(rules []models.PatternRule) error
	AppendRule(rule models.PatternRule) error
}

// PatternStore persists rules in a YAML file.
type PatternStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewPatternStore creates a store for rulesFile.
func NewPatternStore(rulesFile string, logger logging.Logger) *PatternStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &PatternStore{RulesFile: rulesFile, logger: logger}
}

func (s *PatternStore) filename() string {
	if s.RulesFile == "" {
		return DefaultRulesFile
	}
	return s.RulesFile
}

// FindConfigFile looks for filename in the current directory, ./config and
// $HOME/.config/subscan.
func (s *PatternStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "subscan", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules reads the ruleset. A missing file yields no rules and no error.
func (s *PatternStore) LoadRules() ([]models.PatternRule, error) {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("Pattern rules file not found",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return []models.PatternRule{}, nil
		}
		return nil, fmt.Errorf("error resolving pattern rules file: %w", err)
	}

	if info, err := os.Stat(filePath); err == nil {
		if err := validation.FilePermissions(info.Mode().Perm()); err != nil {
			s.logger.WithError(err).Warn("Pattern rules file is writable by others",
				logging.Field{Key: logging.FieldFile, Value: filePath})
		}
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading pattern rules file: %w", err)
	}

	var set models.PatternRuleSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, &scanerror.InvalidInputError{FilePath: filePath, Reason: "malformed YAML: " + err.Error()}
	}
	if set.Rules == nil {
		set.Rules = []models.PatternRule{}
	}

	s.logger.Debug("Loaded pattern rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(set.Rules)})
	return set.Rules, nil
}

// SaveRules writes rules, replacing the file. The file is written where it
// was found, or at the configured path when it does not exist yet.
func (s *PatternStore) SaveRules(rules []models.PatternRule) error {
	filename := s.filename()

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("error resolving pattern rules file: %w", err)
		}
		filePath = filename
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	data, err := yaml.Marshal(models.PatternRuleSet{Rules: rules})
	if err != nil {
		return fmt.Errorf("error marshaling pattern rules: %w", err)
	}
	if err := os.WriteFile(filePath, data, models.PermissionRuleFile); err != nil {
		return fmt.Errorf("error writing pattern rules: %w", err)
	}

	s.logger.Debug("Saved pattern rules",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(rules)})
	return nil
}

// AppendRule validates rule and adds it at the end of the ruleset.
func (s *PatternStore) AppendRule(rule models.PatternRule) error {
	rules, err := s.LoadRules()
	if err != nil {
		return err
	}
	if _, err := CompileRule(s.filename(), len(rules), rule, models.SourceFeedback); err != nil {
		return err
	}
	return s.SaveRules(append(rules, rule))
}

// CompileRule turns a persisted rule into a registry entry. index is the
// rule's position in its file, used in error messages.
func CompileRule(source string, index int, rule models.PatternRule, entrySource string) (models.PatternEntry, error) {
	if rule.Pattern == "" {
		return models.PatternEntry{}, &scanerror.RuleError{Source: source, Index: index, Field: "pattern", Value: rule.Pattern, Err: errors.New("pattern is empty")}
	}
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return models.PatternEntry{}, &scanerror.RuleError{Source: source, Index: index, Field: "pattern", Value: rule.Pattern, Err: err}
	}
	patternType, err := models.ParsePatternType(rule.Type)
	if err != nil {
		return models.PatternEntry{}, &scanerror.RuleError{Source: source, Index: index, Field: "type", Value: rule.Type, Err: err}
	}
	if rule.Score < 0 || rule.Score > 100 {
		return models.PatternEntry{}, &scanerror.RuleError{
			Source: source, Index: index, Field: "score", Value: fmt.Sprint(rule.Score),
			Err: errors.New("score must be between 0 and 100"),
		}
	}
	return models.PatternEntry{
		Pattern: re,
		Type:    patternType,
		Score:   rule.Score,
		Hints:   rule.Hints,
		Source:  entrySource,
	}, nil
}

// ApplyRules compiles every rule and registers them in file order. Nothing
// is registered when any rule is invalid.
func ApplyRules(reg *registry.Registry, source string, rules []models.PatternRule) (int, error) {
	entries := make([]models.PatternEntry, 0, len(rules))
	for i, rule := range rules {
		entry, err := CompileRule(source, i, rule, models.SourceConfig)
		if err != nil {
			return 0, fmt.Errorf("failed to apply pattern rules: %w", err)
		}
		entries = append(entries, entry)
	}
	for _, entry := range entries {
		reg.RegisterEntry(entry)
	}
	return len(entries), nil
}
