package store

import "fjacquet/card-recon/internal/models"

// MockRuleStore is a mock implementation of the rule store for testing.
type MockRuleStore struct {
	Rules []models.CategoryRule

	LoadRulesError error
	LoadCalls      int
}

// LoadRules returns a copy of the mock rules.
func (m *MockRuleStore) LoadRules() ([]models.CategoryRule, error) {
	m.LoadCalls++
	if m.LoadRulesError != nil {
		return nil, m.LoadRulesError
	}
	return append([]models.CategoryRule(nil), m.Rules...), nil
}
