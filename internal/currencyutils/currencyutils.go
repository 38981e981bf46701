// Package currencyutils provides the amount parsing and sign handling shared by
// every issuer dialect.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/parsererror"

	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of decimal places amounts are rounded to.
const CurrencyPrecision = 2

var (
	symbolPattern = regexp.MustCompile(`(?i)[₹$€£]|\bINR\b|\bRs\.?`)
	validPattern  = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)
)

// ParseAmount parses an amount token such as "1,79,520", "₹ 741.00" or "Rs. 12,345.6".
// Thousands separators in any grouping (western or lakh/crore) and currency
// symbols are stripped; integer strings are whole-unit amounts.
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	standardized := StandardizeAmount(amountStr)
	if !validPattern.MatchString(standardized) {
		return decimal.Zero, &parsererror.ParseError{
			Parser: "amount",
			Field:  "amount",
			Value:  amountStr,
			Err:    parsererror.ErrMalformedAmount,
		}
	}

	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w: %v", amountStr, parsererror.ErrMalformedAmount, err)
	}
	return amount, nil
}

// StandardizeAmount removes currency symbols, whitespace and thousands separators.
func StandardizeAmount(amountStr string) string {
	s := symbolPattern.ReplaceAllString(amountStr, "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.Join(strings.Fields(s), "")
}

// CanonicalizeSign projects amount onto the sign implied by direction:
// credits become -|amount|, debits +|amount|. Applying it twice is a no-op.
func CanonicalizeSign(amount decimal.Decimal, direction models.Direction) decimal.Decimal {
	if direction.IsCredit() {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// Round rounds to currency precision.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(CurrencyPrecision)
}

// WithinTolerance reports whether |a-b| <= tolerance after rounding the difference.
func WithinTolerance(a, b, tolerance decimal.Decimal) bool {
	return Round(a.Sub(b)).Abs().LessThanOrEqual(tolerance)
}

// FormatAmount formats amount with two decimals and no grouping, e.g. "741.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(CurrencyPrecision)
}

// FormatNullAmount formats an optional amount, rendering absent values as "".
func FormatNullAmount(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return ""
	}
	return FormatAmount(amount.Decimal)
}
