package categorizer

import (
	"context"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/textutils"
)

// Bucket is a heuristic expense type and the keywords that imply it.
type Bucket struct {
	ExpenseType string
	Keywords    []string
}

// DefaultBuckets returns the heuristic buckets in priority order.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{"Shopping", []string{"AMAZON", "RELIANCE", "MART", "STORE", "FLIPKART", "MYNTRA"}},
		{"Grocery", []string{"GROCERY", "SUPERMARKET", "DMART", "BIGBASKET"}},
		{"Food", []string{"SWIGGY", "ZOMATO", "DOMINOS", "PIZZA", "RESTAURANT", "CAFE"}},
		{"Entertainment", []string{"SPOTIFY", "NETFLIX", "PRIME VIDEO", "HOTSTAR", "BOOKMYSHOW", "PVR", "INOX", "MOVIE"}},
		{"Travel", []string{"IXIGO", "IRCTC", "MAKE MY TRIP", "MAKEMYTRIP", "GOIBIBO", "UBER", "OLA", "AIR", "RAIL"}},
		{"Fuel", []string{"FUEL", "PETROL", "DIESEL", "INDIAN OIL", "IOCL", "BPCL", "HPCL"}},
	}
}

// InferExpenseType returns the expense type of the first bucket with a
// keyword contained in description.
func InferExpenseType(buckets []Bucket, description string) (string, bool) {
	for _, b := range buckets {
		if textutils.ContainsAny(description, b.Keywords) {
			return b.ExpenseType, true
		}
	}
	return "", false
}

// HeuristicStrategy classifies by keyword bucket when no rule matched.
// Only the expense type is known; merchant and store stay unknown.
type HeuristicStrategy struct {
	buckets []Bucket
	logger  logging.Logger
}

// NewHeuristicStrategy creates a HeuristicStrategy.
func NewHeuristicStrategy(buckets []Bucket, logger logging.Logger) *HeuristicStrategy {
	return &HeuristicStrategy{buckets: buckets, logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *HeuristicStrategy) Name() string {
	return "Heuristic"
}

// Categorize infers the expense type from the description.
func (s *HeuristicStrategy) Categorize(_ context.Context, tx Transaction) (models.Classification, bool, error) {
	expenseType, ok := InferExpenseType(s.buckets, tx.Description)
	if !ok {
		return models.Classification{}, false, nil
	}
	s.logger.Debug("Transaction classified by keyword bucket",
		logging.F(logging.FieldStrategy, s.Name()),
		logging.F(logging.FieldCategory, expenseType))
	return models.Classification{
		ExpenseType:      expenseType,
		MerchantCategory: models.CategoryUncategorized,
		StoreName:        models.StoreUnknown,
	}, true, nil
}
