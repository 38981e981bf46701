// Package categorizer classifies card transactions into an expense type,
// merchant category and store name using, in order:
// 1. Account-family overrides
// 2. The keyword rule table (longest matching keyword wins)
// 3. Heuristic keyword buckets
// Anything left over is Uncategorized.
package categorizer

import (
	"context"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/parsererror"
)

// Transaction is the part of a transaction the strategies look at.
type Transaction struct {
	Account     string
	Description string
}

// Categorizer runs the categorization strategies in order.
type Categorizer struct {
	strategies []CategorizationStrategy
	keyword    *KeywordStrategy
	logger     logging.Logger
}

// NewCategorizer loads the rule table from store and assembles the default
// strategy chain. A store failure degrades to heuristic-only classification.
func NewCategorizer(store RuleStore, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var rules []models.CategoryRule
	if store != nil {
		loaded, err := store.LoadRules()
		if err != nil {
			logger.WithError(err).Warn("Failed to load category rules, using heuristic categorization only")
		} else {
			rules = loaded
		}
	}

	buckets := DefaultBuckets()
	keyword := NewKeywordStrategy(rules, buckets, logger)
	return &Categorizer{
		strategies: []CategorizationStrategy{
			NewAccountOverrideStrategy(DefaultAccountOverrides(), logger),
			keyword,
			NewHeuristicStrategy(buckets, logger),
		},
		keyword: keyword,
		logger:  logger,
	}
}

// NewCategorizerWithStrategies creates a Categorizer over an explicit chain.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// RuleCount returns the number of rules in the loaded table.
func (c *Categorizer) RuleCount() int {
	if c.keyword == nil {
		return 0
	}
	return c.keyword.Rules()
}

// Categorize returns the classification of tx. A failing strategy is logged
// and skipped; the result is never empty.
func (c *Categorizer) Categorize(ctx context.Context, tx Transaction) models.Classification {
	if best, ok := c.Explain(ctx, tx).GetBestResult(); ok {
		return best.Classification
	}
	return models.DefaultClassification
}

// Explain runs the strategy chain up to the first match and records every
// attempt.
func (c *Categorizer) Explain(ctx context.Context, tx Transaction) StrategyResults {
	var results StrategyResults
	for _, s := range c.strategies {
		class, found, err := s.Categorize(ctx, tx)
		if err != nil {
			err = &parsererror.CategorizationError{Description: tx.Description, Strategy: s.Name(), Err: err}
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.F(logging.FieldStrategy, s.Name()))
		}
		results.Results = append(results.Results, StrategyResult{
			Strategy:       s.Name(),
			Classification: class,
			Found:          found,
			Error:          err,
		})
		if found && err == nil {
			break
		}
	}
	return results
}

// CategorizeAll returns copies of txs with their classification set.
func (c *Categorizer) CategorizeAll(ctx context.Context, txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	uncategorized := 0
	for i, tx := range txs {
		class := c.Categorize(ctx, Transaction{Account: tx.Account, Description: tx.Description})
		if class == models.DefaultClassification {
			uncategorized++
		}
		out[i] = tx.WithClassification(class)
	}
	if len(txs) > 0 {
		c.logger.Debug("Categorized transactions",
			logging.F(logging.FieldCount, len(txs)),
			logging.F("uncategorized", uncategorized))
	}
	return out
}
