package models

import "strings"

// CategoryRule maps a keyword found in a description to a classification.
// Blank optional columns are resolved at categorization time.
type CategoryRule struct {
	KeywordPattern   string `csv:"Keyword Pattern" yaml:"keyword" json:"keyword"`
	ExpenseType      string `csv:"Expense Type" yaml:"expense_type,omitempty" json:"expense_type,omitempty"`
	MerchantCategory string `csv:"Merchant Category" yaml:"merchant_category,omitempty" json:"merchant_category,omitempty"`
	StoreName        string `csv:"Store Name" yaml:"store_name,omitempty" json:"store_name,omitempty"`
}

// Keyword returns the upper-cased, trimmed keyword used for matching.
func (r CategoryRule) Keyword() string {
	return strings.ToUpper(strings.TrimSpace(r.KeywordPattern))
}

// CategoryRulesConfig is the YAML document layout of a rule table.
type CategoryRulesConfig struct {
	Rules []CategoryRule `yaml:"rules"`
}
