package categorizer

import "fjacquet/card-recon/internal/models"

// RuleStore supplies the category rule table.
// This allows for dependency injection and easier testing.
type RuleStore interface {
	LoadRules() ([]models.CategoryRule, error)
}
