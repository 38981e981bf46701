package models

// Classification defaults
const (
	CategoryUncategorized = "Uncategorized"
	StoreUnknown          = "Unknown"
	PeriodUnknown         = "Unknown"
)

// Bill payment classification
const (
	ExpenseTypeCardPayment      = "Card Payment"
	MerchantCategoryBillPayment = "CC Bill Payment"
)

// NoOutstandingDescription labels the zero-amount payment row synthesized for
// billed periods without any recorded payment.
const NoOutstandingDescription = "No outstanding"

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
