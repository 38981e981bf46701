package normalizer

import (
	"strings"
	"testing"
	"time"

	"fjacquet/card-recon/internal/dateutils"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var axisCtx = Context{
	Account:     "Axis Bank Rewards CC",
	Period:      "Dec-25",
	DateLayouts: []string{dateutils.LayoutDayMonthYear},
}

func TestPromote_AxisDebit(t *testing.T) {
	tx, err := Promote(models.RawToken{
		Date:        "08/12/2025",
		Description: "RAZ*IXIGO,GURGAON TRANSPORT",
		Amount:      "741.00",
		Direction:   "Dr",
	}, axisCtx)
	require.NoError(t, err)

	assert.Equal(t, "Axis Bank Rewards CC", tx.Account)
	assert.Equal(t, "Dec-25", tx.Period)
	assert.Equal(t, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "RAZ IXIGO,GURGAON", tx.Description)
	assert.Equal(t, "741.00", tx.Amount.StringFixed(2))
	assert.Equal(t, models.DirectionDebit, tx.Direction)
	assert.Equal(t, models.DefaultClassification, tx.Classification)
}

func TestPromote_SignInvariant(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		direction string
		expected  string
		dir       models.Direction
	}{
		{"credit token", "1,79,520", "CREDIT", "-179520", models.DirectionCredit},
		{"credit already negative", "-2,538.00", "Cr", "-2538", models.DirectionCredit},
		{"debit with stray minus", "-99.00", "DR", "99", models.DirectionDebit},
		{"debit word", "₹1,250", "DEBIT", "1250", models.DirectionDebit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := Promote(models.RawToken{Date: "01/12/2025", Description: "X", Amount: tt.amount, Direction: tt.direction}, axisCtx)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(tx.Amount), "got %s", tx.Amount)
			assert.Equal(t, tt.dir, tx.Direction)
			assert.True(t, tx.HasValidSign())
		})
	}
}

func TestPromote_Failures(t *testing.T) {
	tests := []struct {
		name string
		tok  models.RawToken
		ctx  Context
		want error
	}{
		{"bad date", models.RawToken{Date: "2025-12-08", Amount: "1.00", Direction: "Dr"}, axisCtx, parsererror.ErrUnparsableDate},
		{"bad amount", models.RawToken{Date: "08/12/2025", Amount: "1.0.0", Direction: "Dr"}, axisCtx, parsererror.ErrMalformedAmount},
		{"bad direction", models.RawToken{Date: "08/12/2025", Amount: "1.00", Direction: "XX"}, axisCtx, parsererror.ErrUnknownDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Promote(tt.tok, tt.ctx)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Promote(models.RawToken{Date: "08/12/2025", Amount: "1.00", Direction: "Dr"}, Context{})
	assert.Error(t, err, "account is required")
}

func TestPromote_CustomCleanerAndBlankPeriod(t *testing.T) {
	ctx := Context{
		Account: "Uni Gold Card",
		Clean:   func(s string) string { return strings.ToLower(s) },
	}
	tx, err := Promote(models.RawToken{Date: "08/12/2025", Description: "SWIGGY", Amount: "10", Direction: "DEBIT"}, ctx)
	require.NoError(t, err)
	assert.Equal(t, "swiggy", tx.Description)
	assert.Equal(t, models.PeriodUnknown, tx.Period)
}

func TestPromoteAll_DropsBadLines(t *testing.T) {
	logger := logging.NewMockLogger()
	tokens := []models.RawToken{
		{Date: "08/12/2025", Description: "A", Amount: "1.00", Direction: "Dr"},
		{Date: "99/99/2025", Description: "B", Amount: "2.00", Direction: "Dr"},
		{Date: "09/12/2025", Description: "C", Amount: "3.00", Direction: "Cr"},
	}

	txs, dropped := PromoteAll(tokens, axisCtx, logger)
	require.Len(t, txs, 2)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, "A", txs[0].Description)
	assert.Equal(t, "C", txs[1].Description)
	assert.Len(t, logger.GetEntriesByLevel("DEBUG"), 1)
}
