package categorizer

import (
	"context"

	"fjacquet/card-recon/internal/models"
)

// CategorizationStrategy defines one way of classifying a transaction.
// Strategies are tried in order; the first that reports found wins.
type CategorizationStrategy interface {
	// Categorize returns the classification and whether this strategy
	// recognized the transaction.
	Categorize(ctx context.Context, tx Transaction) (models.Classification, bool, error)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
