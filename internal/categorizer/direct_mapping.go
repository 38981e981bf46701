package categorizer

import (
	"context"
	"strings"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
)

// AccountUniGoldUPI is the account family whose spend is always personal UPI
// leisure spend, whatever the description says.
const AccountUniGoldUPI = "Uni Gold Card UPI"

// DefaultAccountOverrides returns the built-in account-family overrides.
func DefaultAccountOverrides() map[string]models.Classification {
	return map[string]models.Classification{
		AccountUniGoldUPI: {ExpenseType: "Personal", MerchantCategory: "Leisure", StoreName: "UPI"},
	}
}

// AccountOverrideStrategy force-classifies every transaction of an account
// family. Account names are matched case-insensitively.
type AccountOverrideStrategy struct {
	overrides map[string]models.Classification
	logger    logging.Logger
}

// NewAccountOverrideStrategy creates an AccountOverrideStrategy.
func NewAccountOverrideStrategy(overrides map[string]models.Classification, logger logging.Logger) *AccountOverrideStrategy {
	normalized := make(map[string]models.Classification, len(overrides))
	for account, c := range overrides {
		normalized[strings.ToUpper(strings.TrimSpace(account))] = c
	}
	return &AccountOverrideStrategy{overrides: normalized, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *AccountOverrideStrategy) Name() string {
	return "AccountOverride"
}

// Categorize returns the override of the transaction's account, if any.
func (s *AccountOverrideStrategy) Categorize(_ context.Context, tx Transaction) (models.Classification, bool, error) {
	c, ok := s.overrides[strings.ToUpper(strings.TrimSpace(tx.Account))]
	if !ok {
		return models.Classification{}, false, nil
	}
	s.logger.Debug("Transaction classified by account override",
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldAccount, tx.Account))
	return c, true, nil
}
