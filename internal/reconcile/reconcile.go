// Package reconcile compares the spend computed from extracted transactions
// against the amount due stated on each statement.
package reconcile

import (
	"sort"

	"fjacquet/card-recon/internal/currencyutils"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"

	"github.com/shopspring/decimal"
)

// DefaultTolerance is the largest |stated - computed| still reconciled.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// KeyResult is the reconciliation outcome of one (account, period).
type KeyResult struct {
	Key models.Key
	// Billed is the sum of expense-like amounts; absent without expenses.
	Billed decimal.NullDecimal
	// LastPayment is the latest recorded payment amount.
	LastPayment decimal.NullDecimal
	StatedDue   decimal.NullDecimal
	Diff        decimal.NullDecimal
	Reconciled  bool
}

// PaymentRow is one row of the payments view, carrying the reconciliation
// figures of its key.
type PaymentRow struct {
	models.Transaction
	Placeholder bool
	Billed      decimal.NullDecimal
	Outstanding decimal.NullDecimal
	Diff        decimal.NullDecimal
	Reconciled  bool
}

// SummaryRow aggregates transactions sharing one classification.
type SummaryRow struct {
	models.Classification
	Total decimal.Decimal
	Count int
}

// Result holds the three report views plus the per-key outcomes.
type Result struct {
	Expenses []models.Transaction
	Payments []PaymentRow
	Summary  []SummaryRow
	Keys     []KeyResult
}

// Engine reconciles categorized transactions against statement totals.
type Engine struct {
	tolerance decimal.Decimal
	logger    logging.Logger
}

// NewEngine creates an Engine. A negative tolerance is treated as zero.
func NewEngine(tolerance decimal.Decimal, logger logging.Logger) *Engine {
	if tolerance.IsNegative() {
		tolerance = decimal.Zero
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{tolerance: tolerance, logger: logger}
}

// Reconcile partitions txs into expenses and payments, reconciles every
// (account, period) present and builds the summary. txs is not modified.
func (e *Engine) Reconcile(txs []models.Transaction, totals *Totals) Result {
	var (
		res      Result
		payments []models.Transaction
		order    []models.Key
		billed   = make(map[models.Key]decimal.Decimal)
		paid     = make(map[models.Key]bool)
		seen     = make(map[models.Key]bool)
	)

	for _, tx := range txs {
		key := tx.Key()
		if !seen[key] {
			seen[key] = true
			order = append(order, key)
		}
		if IsPayment(tx) {
			payments = append(payments, tx)
			paid[key] = true
			continue
		}
		res.Expenses = append(res.Expenses, tx)
		billed[key] = billed[key].Add(tx.Amount)
	}

	sortTransactions(res.Expenses)
	sortTransactions(payments)

	results := make(map[models.Key]KeyResult, len(order))
	for _, key := range order {
		kr := KeyResult{Key: key}
		if sum, ok := billed[key]; ok {
			kr.Billed = decimal.NewNullDecimal(currencyutils.Round(sum))
		}
		if due, ok := totals.Get(key); ok {
			kr.StatedDue = decimal.NewNullDecimal(due)
		}
		if kr.Billed.Valid && kr.StatedDue.Valid {
			kr.Diff = decimal.NewNullDecimal(currencyutils.Round(kr.StatedDue.Decimal.Sub(kr.Billed.Decimal)))
			kr.Reconciled = currencyutils.WithinTolerance(kr.StatedDue.Decimal, kr.Billed.Decimal, e.tolerance)
		}
		results[key] = kr
	}

	// payments is sorted by date within a key, so the last row seen wins.
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		kr := results[p.Key()]
		kr.LastPayment = decimal.NewNullDecimal(p.Amount)
		results[p.Key()] = kr
		rows = append(rows, PaymentRow{Transaction: p})
	}
	for _, key := range order {
		if _, hasExpense := billed[key]; hasExpense && !paid[key] {
			rows = append(rows, PaymentRow{Transaction: placeholder(key), Placeholder: true})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return less(rows[i].Transaction, rows[j].Transaction) })

	for i := range rows {
		kr := results[rows[i].Key()]
		rows[i].Billed = kr.Billed
		rows[i].Outstanding = kr.StatedDue
		rows[i].Diff = kr.Diff
		rows[i].Reconciled = kr.Reconciled
	}
	res.Payments = rows

	for _, key := range sortedKeys(order) {
		kr := results[key]
		res.Keys = append(res.Keys, kr)
		e.logKey(kr)
	}

	res.Summary = summarize(txs)
	return res
}

func (e *Engine) logKey(kr KeyResult) {
	fields := []logging.Field{
		logging.F(logging.FieldAccount, kr.Key.Account),
		logging.F(logging.FieldPeriod, kr.Key.Period),
		logging.F("billed", currencyutils.FormatNullAmount(kr.Billed)),
		logging.F("stated_due", currencyutils.FormatNullAmount(kr.StatedDue)),
	}
	switch {
	case kr.Reconciled:
		e.logger.Debug("Period reconciled", fields...)
	case !kr.StatedDue.Valid:
		e.logger.Debug("No statement total to reconcile against", fields...)
	default:
		e.logger.Info("Period does not reconcile",
			append(fields, logging.F("diff", currencyutils.FormatNullAmount(kr.Diff)))...)
	}
}

func placeholder(key models.Key) models.Transaction {
	return models.Transaction{
		Account:     key.Account,
		Period:      key.Period,
		Description: models.NoOutstandingDescription,
		Amount:      decimal.Zero,
	}
}

func summarize(txs []models.Transaction) []SummaryRow {
	index := make(map[models.Classification]int)
	var rows []SummaryRow
	for _, tx := range txs {
		i, ok := index[tx.Classification]
		if !ok {
			i = len(rows)
			index[tx.Classification] = i
			rows = append(rows, SummaryRow{Classification: tx.Classification})
		}
		rows[i].Total = rows[i].Total.Add(tx.Amount)
		rows[i].Count++
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Classification, rows[j].Classification
		if a.ExpenseType != b.ExpenseType {
			return a.ExpenseType < b.ExpenseType
		}
		if a.MerchantCategory != b.MerchantCategory {
			return a.MerchantCategory < b.MerchantCategory
		}
		return a.StoreName < b.StoreName
	})
	return rows
}

// sortTransactions orders by account, period, then date. Undated rows sort
// first within their key.
func sortTransactions(txs []models.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return less(txs[i], txs[j]) })
}

func less(a, b models.Transaction) bool {
	if a.Account != b.Account {
		return a.Account < b.Account
	}
	if a.Period != b.Period {
		return a.Period < b.Period
	}
	return a.Date.Before(b.Date)
}

func sortedKeys(keys []models.Key) []models.Key {
	out := append([]models.Key(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Account != out[j].Account {
			return out[i].Account < out[j].Account
		}
		return out[i].Period < out[j].Period
	})
	return out
}
