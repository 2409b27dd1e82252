package store

import (
	"fjacquet/subscan/internal/models"
)

// MockRuleStore is an in-memory RuleStore for tests.
type MockRuleStore struct {
	Rules []models.PatternRule

	// Error flags for testing error conditions
	LoadRulesError  error
	SaveRulesError  error
	AppendRuleError error
}

// LoadRules returns a copy of the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.PatternRule, error) {
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	result := make([]models.PatternRule, len(m.Rules))
	copy(result, m.Rules)
	return result, nil
}

// SaveRules replaces the mock rules.
func (m *MockRuleStore) SaveRules(rules []models.PatternRule) error {
	if m.SaveRulesError != nil {
		return m.SaveRulesError
	}
	m.Rules = append([]models.PatternRule(nil), rules...)
	return nil
}

// AppendRule adds rule to the mock rules.
func (m *MockRuleStore) AppendRule(rule models.PatternRule) error {
	if m.AppendRuleError != nil {
		return m.AppendRuleError
	}
	m.Rules = append(m.Rules, rule)
	return nil
}
