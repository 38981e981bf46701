package store

import "fjacquet/card-recon/internal/models"

// StarterRules returns the rule table written by "rules init".
func StarterRules() []models.CategoryRule {
	rule := func(keyword, expenseType, category, storeName string) models.CategoryRule {
		return models.CategoryRule{
			KeywordPattern:   keyword,
			ExpenseType:      expenseType,
			MerchantCategory: category,
			StoreName:        storeName,
		}
	}
	return []models.CategoryRule{
		rule("AMAZON", "Shopping", "Shopping", "Amazon"),
		rule("RELIANCE", "Shopping", "Shopping", "Reliance"),
		rule("RELIANCE MART", "Shopping", "Shopping", "Reliance Mart"),
		rule("SWIGGY", "Food", "Food Delivery", "Swiggy"),
		rule("ZOMATO", "Food", "Food Delivery", "Zomato"),
		rule("IXIGO", "Travel", "Travel Booking", "Ixigo"),
		rule("SPOTIFY", "Entertainment", "Subscriptions", "Spotify"),
		rule("BBPS PAYMENT RECEIVED", models.ExpenseTypeCardPayment, models.MerchantCategoryBillPayment, "Bank"),
		rule("SMS BASED REDEMPTION", models.ExpenseTypeCardPayment, models.MerchantCategoryBillPayment, "Axis Bank"),
		rule("PAY BY REWARDS", models.ExpenseTypeCardPayment, models.MerchantCategoryBillPayment, "Axis Bank"),
		rule("INFINITY PAYMENT RECEIVED", models.ExpenseTypeCardPayment, models.MerchantCategoryBillPayment, "Axis Bank"),
	}
}
