// Package report renders the reconciliation result as the three output views.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/card-recon/internal/common"
	"fjacquet/card-recon/internal/currencyutils"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/reconcile"
)

// Supported formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Output file names, without extension.
const (
	ExpensesName       = "credit_card_expenses"
	ReconciliationName = "credit_card_reconciliation"
	SummaryName        = "credit_card_summary"
	ReportName         = "credit_card_report"
)

// ExpenseRow is one line of the expenses view.
type ExpenseRow struct {
	Account          string `csv:"Account" json:"account"`
	Period           string `csv:"Period" json:"period"`
	Date             string `csv:"Date" json:"date"`
	Description      string `csv:"Description" json:"description"`
	Amount           string `csv:"Amount" json:"amount"`
	ExpenseType      string `csv:"Expense Type" json:"expense_type"`
	MerchantCategory string `csv:"Merchant Category" json:"merchant_category"`
	StoreName        string `csv:"Store Name" json:"store_name"`
}

// ReconciliationRow is one line of the payments view.
type ReconciliationRow struct {
	Period         string `csv:"Period" json:"period"`
	Account        string `csv:"Account" json:"account"`
	Date           string `csv:"Date" json:"date"`
	Description    string `csv:"Description" json:"description"`
	LastPaid       string `csv:"Last Paid Amount" json:"last_paid_amount"`
	Outstanding    string `csv:"Current Outstanding Amt" json:"current_outstanding_amount"`
	Billed         string `csv:"Current Billed Amount" json:"current_billed_amount"`
	Reconciled     string `csv:"Reconciled?" json:"reconciled"`
	Diff           string `csv:"Recon Diff" json:"recon_diff"`
	NoPaymentFound bool   `csv:"-" json:"no_payment_found,omitempty"`
}

// SummaryRow is one line of the summary view.
type SummaryRow struct {
	ExpenseType      string `csv:"Expense Type" json:"expense_type"`
	MerchantCategory string `csv:"Merchant Category" json:"merchant_category"`
	StoreName        string `csv:"Store Name" json:"store_name"`
	TotalAmount      string `csv:"TotalAmount" json:"total_amount"`
	TransactionCount int    `csv:"TransactionCount" json:"transaction_count"`
}

// Views holds the rendered rows of all three views.
type Views struct {
	Expenses       []ExpenseRow        `json:"expenses"`
	Reconciliation []ReconciliationRow `json:"reconciliation"`
	Summary        []SummaryRow        `json:"summary"`
}

// ReportGenerator writes reconciliation results to disk.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
	}
}

// Render converts the result into report rows with formatted amounts.
func Render(res reconcile.Result) Views {
	v := Views{
		Expenses:       make([]ExpenseRow, 0, len(res.Expenses)),
		Reconciliation: make([]ReconciliationRow, 0, len(res.Payments)),
		Summary:        make([]SummaryRow, 0, len(res.Summary)),
	}

	for _, tx := range res.Expenses {
		v.Expenses = append(v.Expenses, expenseRow(tx))
	}

	for _, p := range res.Payments {
		v.Reconciliation = append(v.Reconciliation, ReconciliationRow{
			Period:         p.Period,
			Account:        p.Account,
			Date:           p.FormattedDate(),
			Description:    p.Description,
			LastPaid:       currencyutils.FormatAmount(p.Amount),
			Outstanding:    currencyutils.FormatNullAmount(p.Outstanding),
			Billed:         currencyutils.FormatNullAmount(p.Billed),
			Reconciled:     yesNo(p.Reconciled),
			Diff:           currencyutils.FormatNullAmount(p.Diff),
			NoPaymentFound: p.Placeholder,
		})
	}

	for _, s := range res.Summary {
		v.Summary = append(v.Summary, SummaryRow{
			ExpenseType:      s.ExpenseType,
			MerchantCategory: s.MerchantCategory,
			StoreName:        s.StoreName,
			TotalAmount:      currencyutils.FormatAmount(s.Total),
			TransactionCount: s.Count,
		})
	}
	return v
}

// Write renders res into dir in the given format and returns the files
// written. CSV produces one file per view, JSON a single document.
func (g *ReportGenerator) Write(dir, format string, res reconcile.Result) ([]string, error) {
	views := Render(res)

	var (
		files []string
		err   error
	)
	switch format {
	case FormatCSV:
		files, err = g.writeCSV(dir, views)
	case FormatJSON:
		files, err = g.writeJSON(dir, views)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to write report",
			logging.F(logging.FieldOutputDir, dir))
		return nil, err
	}

	g.logger.Info("Report written",
		logging.F(logging.FieldOutputDir, dir),
		logging.F("format", format),
		logging.F("expenses", len(views.Expenses)),
		logging.F("payments", len(views.Reconciliation)),
		logging.F("summary", len(views.Summary)))
	return files, nil
}

func (g *ReportGenerator) writeCSV(dir string, v Views) ([]string, error) {
	expenses := filepath.Join(dir, ExpensesName+".csv")
	if err := common.WriteCSVFile(expenses, v.Expenses); err != nil {
		return nil, fmt.Errorf("failed to write expenses view: %w", err)
	}
	recon := filepath.Join(dir, ReconciliationName+".csv")
	if err := common.WriteCSVFile(recon, v.Reconciliation); err != nil {
		return nil, fmt.Errorf("failed to write reconciliation view: %w", err)
	}
	summary := filepath.Join(dir, SummaryName+".csv")
	if err := common.WriteCSVFile(summary, v.Summary); err != nil {
		return nil, fmt.Errorf("failed to write summary view: %w", err)
	}
	return []string{expenses, recon, summary}, nil
}

func (g *ReportGenerator) writeJSON(dir string, v Views) ([]string, error) {
	path := filepath.Join(dir, ReportName+".json")
	err := common.WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// WriteTransactions writes canonical transactions as CSV, used for
// single-document extraction.
func WriteTransactions(w io.Writer, txs []models.Transaction) error {
	rows := make([]ExpenseRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, expenseRow(tx))
	}
	return common.WriteCSV(w, rows)
}

func expenseRow(tx models.Transaction) ExpenseRow {
	return ExpenseRow{
		Account:          tx.Account,
		Period:           tx.Period,
		Date:             tx.FormattedDate(),
		Description:      tx.Description,
		Amount:           currencyutils.FormatAmount(tx.Amount),
		ExpenseType:      tx.ExpenseType,
		MerchantCategory: tx.MerchantCategory,
		StoreName:        tx.StoreName,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
