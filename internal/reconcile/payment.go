package reconcile

import (
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/textutils"
)

// PaymentKeywords mark a description as a card bill payment.
var PaymentKeywords = []string{
	"PAYMENT RECEIVED",
	"PAYMENT RECIEVED",
	"SI PAYMENT",
	"SI PAYMENT RECEIVED",
	"BBPS PAYMENT RECEIVED",
	"AUTO-DEBIT",
	"SMS BASED REDEMPTION",
	"PAY BY REWARDS",
	"INFINITY PAYMENT RECEIVED",
}

// IsPayment reports whether tx is payment-like: classified as a bill payment
// or described with a payment keyword.
func IsPayment(tx models.Transaction) bool {
	return tx.IsBillPayment() || textutils.ContainsAny(tx.Description, PaymentKeywords)
}
