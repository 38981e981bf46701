// Package models provides the data structures used throughout the application.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical day-month-year layout of transaction dates.
const DateLayout = "02/01/2006"

// Direction is the normalized debit/credit marker of a transaction line.
type Direction string

const (
	DirectionDebit  Direction = "Dr"
	DirectionCredit Direction = "Cr"
)

// ParseDirection normalizes an issuer direction literal ("Dr", "DR", "DEBIT",
// "Cr", "CR", "CREDIT", ...) to a Direction.
func ParseDirection(token string) (Direction, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "DR", "DEBIT", "D", "DBIT":
		return DirectionDebit, true
	case "CR", "CREDIT", "C", "CRDT":
		return DirectionCredit, true
	}
	return "", false
}

// IsCredit reports whether the direction denotes a payment or refund.
func (d Direction) IsCredit() bool {
	return d == DirectionCredit
}

// RawToken is an issuer-specific tuple taken straight off a document.
// It only lives inside a single extractor call.
type RawToken struct {
	Date        string
	Description string
	Amount      string
	Direction   string
}

// Key identifies a statement: one account and one reporting period.
type Key struct {
	Account string
	Period  string
}

// String returns "account/period".
func (k Key) String() string {
	return k.Account + "/" + k.Period
}

// Classification is the categorizer output for a transaction.
type Classification struct {
	ExpenseType      string `json:"expense_type" yaml:"expense_type"`
	MerchantCategory string `json:"merchant_category" yaml:"merchant_category"`
	StoreName        string `json:"store_name" yaml:"store_name"`
}

// DefaultClassification is assigned when neither the rule table nor the
// keyword buckets recognize a description.
var DefaultClassification = Classification{
	ExpenseType:      CategoryUncategorized,
	MerchantCategory: CategoryUncategorized,
	StoreName:        StoreUnknown,
}

// IsBillPayment reports whether the classification marks a card bill payment.
func (c Classification) IsBillPayment() bool {
	return c.ExpenseType == ExpenseTypeCardPayment || c.MerchantCategory == MerchantCategoryBillPayment
}

// Transaction is the canonical record produced by the normalizer.
//
// Amount sign follows Direction: debits are positive, credits negative.
// Period is the statement's period, never derived from Date.
type Transaction struct {
	Account     string
	Period      string
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   Direction
	Classification
}

// Key returns the (account, period) key of the transaction.
func (t Transaction) Key() Key {
	return Key{Account: t.Account, Period: t.Period}
}

// FormattedDate returns the date in day/month/year form, or "" for placeholder rows.
func (t Transaction) FormattedDate() string {
	if t.Date.IsZero() {
		return ""
	}
	return t.Date.Format(DateLayout)
}

// WithClassification returns a copy of the transaction carrying c.
func (t Transaction) WithClassification(c Classification) Transaction {
	t.Classification = c
	return t
}

// HasValidSign reports whether the amount sign agrees with the direction.
func (t Transaction) HasValidSign() bool {
	switch t.Direction {
	case DirectionCredit:
		return !t.Amount.IsPositive()
	case DirectionDebit:
		return !t.Amount.IsNegative()
	}
	return true
}

// StatementTotal is the amount-due figure scraped from one statement.
type StatementTotal struct {
	Key    Key
	Amount decimal.Decimal
}
