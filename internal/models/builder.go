package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing transactions.
// The first error short-circuits the remaining calls and is returned by Build.
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder creates a new TransactionBuilder with default values
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Period:         PeriodUnknown,
			Amount:         decimal.Zero,
			Classification: DefaultClassification,
		},
	}
}

// WithAccount sets the issuer/product account label
func (b *TransactionBuilder) WithAccount(account string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Account = strings.TrimSpace(account)
	return b
}

// WithPeriod sets the statement period; blank periods become "Unknown"
func (b *TransactionBuilder) WithPeriod(period string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if strings.TrimSpace(period) == "" {
		period = PeriodUnknown
	}
	b.tx.Period = period
	return b
}

// WithDate sets the transaction date
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("transaction date is required")
		return b
	}
	b.tx.Date = date
	return b
}

// WithDescription sets the cleaned description
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = description
	return b
}

// WithAmount sets the signed amount and its direction marker
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal, direction Direction) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Amount = amount
	b.tx.Direction = direction
	return b
}

// WithClassification sets the categorizer output
func (b *TransactionBuilder) WithClassification(c Classification) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Classification = c
	return b
}

// Build validates and returns the transaction
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if b.tx.Account == "" {
		return Transaction{}, errors.New("transaction account is required")
	}
	if !b.tx.HasValidSign() {
		return Transaction{}, fmt.Errorf("amount %s disagrees with direction %s", b.tx.Amount.String(), b.tx.Direction)
	}
	return b.tx, nil
}
