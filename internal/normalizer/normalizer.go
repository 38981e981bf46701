// Package normalizer promotes issuer-specific raw tokens into canonical
// transactions: parsed date, sign-corrected amount, cleaned description.
package normalizer

import (
	"fmt"
	"strings"

	"fjacquet/card-recon/internal/currencyutils"
	"fjacquet/card-recon/internal/dateutils"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/parsererror"
	"fjacquet/card-recon/internal/textutils"
)

// Context carries the statement-level facts shared by every token of one document.
type Context struct {
	Account string
	Period  string
	// DateLayouts are tried in order; empty means dateutils.DefaultLayouts.
	DateLayouts []string
	// Clean replaces textutils.CleanDescription when set.
	Clean func(string) string
}

// Promote converts one raw token into a Transaction.
func Promote(tok models.RawToken, ctx Context) (models.Transaction, error) {
	date, err := dateutils.ParseDate(tok.Date, ctx.DateLayouts...)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := currencyutils.ParseAmount(tok.Amount)
	if err != nil {
		return models.Transaction{}, err
	}

	direction, ok := models.ParseDirection(tok.Direction)
	if !ok {
		return models.Transaction{}, &parsererror.ParseError{
			Parser: "normalizer",
			Field:  "direction",
			Value:  tok.Direction,
			Err:    parsererror.ErrUnknownDirection,
		}
	}

	clean := ctx.Clean
	if clean == nil {
		clean = textutils.CleanDescription
	}

	tx, err := models.NewTransactionBuilder().
		WithAccount(ctx.Account).
		WithPeriod(ctx.Period).
		WithDate(date).
		WithDescription(clean(tok.Description)).
		WithAmount(currencyutils.CanonicalizeSign(amount, direction), direction).
		Build()
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to build transaction from %q: %w", strings.TrimSpace(tok.Description), err)
	}
	return tx, nil
}

// PromoteAll promotes every token, dropping the ones that fail normalization.
// It returns the surviving transactions in input order and the number dropped.
func PromoteAll(tokens []models.RawToken, ctx Context, logger logging.Logger) ([]models.Transaction, int) {
	out := make([]models.Transaction, 0, len(tokens))
	dropped := 0
	for _, tok := range tokens {
		tx, err := Promote(tok, ctx)
		if err != nil {
			dropped++
			if logger != nil {
				logger.WithError(err).Debug("Dropping transaction line",
					logging.Field{Key: logging.FieldAccount, Value: ctx.Account},
					logging.Field{Key: "line", Value: tok.Description})
			}
			continue
		}
		out = append(out, tx)
	}
	return out, dropped
}
