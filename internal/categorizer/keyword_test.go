package categorizer

import (
	"context"
	"testing"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"

	"github.com/stretchr/testify/assert"
)

func rule(keyword, expenseType, category, store string) models.CategoryRule {
	return models.CategoryRule{KeywordPattern: keyword, ExpenseType: expenseType, MerchantCategory: category, StoreName: store}
}

func TestKeywordStrategy_Categorize(t *testing.T) {
	rules := []models.CategoryRule{
		rule("RELIANCE", "Shopping", "Shopping", "Reliance"),
		rule("RELIANCE MART", "Shopping", "Shopping", "Reliance Mart"),
		rule("swiggy", "Food", "Food Delivery", "Swiggy"),
		rule("ZOMATO", "Food", "Restaurants", "Zomato"),
		rule("bigbasket", "", "", ""),
		rule("cult fit", "", "Fitness", ""),
	}
	s := NewKeywordStrategy(rules, DefaultBuckets(), logging.NewMockLogger())

	tests := []struct {
		name        string
		description string
		expected    models.Classification
		found       bool
	}{
		{
			name:        "longest keyword wins",
			description: "RELIANCE MART HYDERABAD",
			expected:    models.Classification{ExpenseType: "Shopping", MerchantCategory: "Shopping", StoreName: "Reliance Mart"},
			found:       true,
		},
		{
			name:        "shorter keyword alone",
			description: "RELIANCE TRENDS",
			expected:    models.Classification{ExpenseType: "Shopping", MerchantCategory: "Shopping", StoreName: "Reliance"},
			found:       true,
		},
		{
			name:        "case insensitive",
			description: "Swiggy Instamart Bangalore",
			expected:    models.Classification{ExpenseType: "Food", MerchantCategory: "Food Delivery", StoreName: "Swiggy"},
			found:       true,
		},
		{
			name:        "equal length goes to table order",
			description: "ZOMATO REFUND VIA SWIGGY",
			expected:    models.Classification{ExpenseType: "Food", MerchantCategory: "Food Delivery", StoreName: "Swiggy"},
			found:       true,
		},
		{
			name:        "blank columns are inferred",
			description: "BIGBASKET ORDER 123",
			expected:    models.Classification{ExpenseType: "Grocery", MerchantCategory: "Uncategorized", StoreName: "Bigbasket"},
			found:       true,
		},
		{
			name:        "blank expense type without bucket",
			description: "CULT FIT GACHIBOWLI",
			expected:    models.Classification{ExpenseType: "Uncategorized", MerchantCategory: "Fitness", StoreName: "Cult Fit"},
			found:       true,
		},
		{
			name:        "no rule",
			description: "UNKNOWN MERCHANT",
		},
		{
			name: "empty description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := s.Categorize(context.Background(), Transaction{Description: tt.description})
			assert.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestKeywordStrategy_Deterministic(t *testing.T) {
	rules := []models.CategoryRule{rule("AMAZON", "Shopping", "Shopping", "Amazon"), rule("AMAZON PAY", "Bills", "Wallet", "Amazon Pay")}
	s := NewKeywordStrategy(rules, DefaultBuckets(), logging.NewMockLogger())

	first, _, _ := s.Categorize(context.Background(), Transaction{Description: "AMAZON PAY INDIA"})
	for i := 0; i < 20; i++ {
		got, _, _ := s.Categorize(context.Background(), Transaction{Description: "AMAZON PAY INDIA"})
		assert.Equal(t, first, got)
	}
	assert.Equal(t, "Amazon Pay", first.StoreName)
	assert.Equal(t, 2, s.Rules())
}

func TestHeuristicStrategy(t *testing.T) {
	s := NewHeuristicStrategy(DefaultBuckets(), logging.NewMockLogger())

	tests := []struct {
		description string
		expenseType string
	}{
		{"RAZ IXIGO,GURGAON", "Travel"},
		{"SWIGGY LIMITED", "Food"},
		{"NETFLIX.COM", "Entertainment"},
		{"INDIAN OIL PETROL PUMP", "Fuel"},
		{"DMART AMEERPET", "Shopping"},
		{"FRESH GROCERY HUB", "Grocery"},
		{"XYZ CORP", ""},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			got, found, err := s.Categorize(context.Background(), Transaction{Description: tt.description})
			assert.NoError(t, err)
			if tt.expenseType == "" {
				assert.False(t, found)
				return
			}
			assert.True(t, found)
			assert.Equal(t, models.Classification{ExpenseType: tt.expenseType, MerchantCategory: "Uncategorized", StoreName: "Unknown"}, got)
		})
	}
}
