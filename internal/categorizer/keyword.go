package categorizer

import (
	"context"
	"strings"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/textutils"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// KeywordStrategy classifies by the category rule table. The rule with the
// longest keyword contained in the description wins; equal lengths go to the
// rule listed first.
type KeywordStrategy struct {
	rules    []models.CategoryRule
	keywords []string
	buckets  []Bucket
	logger   logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over rules. Buckets infer the
// expense type of rules that leave it blank.
func NewKeywordStrategy(rules []models.CategoryRule, buckets []Bucket, logger logging.Logger) *KeywordStrategy {
	keywords := make([]string, len(rules))
	for i, r := range rules {
		keywords[i] = r.Keyword()
	}
	return &KeywordStrategy{
		rules:    rules,
		keywords: keywords,
		buckets:  buckets,
		logger:   logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Rules returns the number of loaded rules.
func (s *KeywordStrategy) Rules() int {
	return len(s.rules)
}

// Categorize matches the description against the rule table.
func (s *KeywordStrategy) Categorize(_ context.Context, tx Transaction) (models.Classification, bool, error) {
	if strings.TrimSpace(tx.Description) == "" {
		return models.Classification{}, false, nil
	}

	idx, ok := textutils.LongestMatch(tx.Description, s.keywords)
	if !ok {
		return models.Classification{}, false, nil
	}
	rule := s.rules[idx]

	c := models.Classification{
		ExpenseType:      rule.ExpenseType,
		MerchantCategory: rule.MerchantCategory,
		StoreName:        rule.StoreName,
	}
	if c.ExpenseType == "" {
		c.ExpenseType = models.CategoryUncategorized
		if inferred, ok := InferExpenseType(s.buckets, tx.Description); ok {
			c.ExpenseType = inferred
		}
	}
	if c.MerchantCategory == "" {
		c.MerchantCategory = models.CategoryUncategorized
	}
	if c.StoreName == "" {
		c.StoreName = cases.Title(language.English).String(strings.ToLower(s.keywords[idx]))
	}

	s.logger.Debug("Transaction classified by rule",
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldKeyword, s.keywords[idx]),
		logging.F(logging.FieldCategory, c.ExpenseType))
	return c, true, nil
}
