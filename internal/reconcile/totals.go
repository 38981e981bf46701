package reconcile

import (
	"fjacquet/card-recon/internal/models"

	"github.com/shopspring/decimal"
)

// Totals holds the stated amount due per (account, period). Repeated figures
// for a key keep the largest, since a reprinted summary or a partial OCR read
// can only understate it.
type Totals struct {
	byKey map[models.Key]decimal.Decimal
}

// NewTotals creates an empty Totals.
func NewTotals() *Totals {
	return &Totals{byKey: make(map[models.Key]decimal.Decimal)}
}

// Add merges st into the map and reports whether it became the stored value.
func (t *Totals) Add(st models.StatementTotal) bool {
	if cur, ok := t.byKey[st.Key]; ok && !st.Amount.GreaterThan(cur) {
		return false
	}
	t.byKey[st.Key] = st.Amount
	return true
}

// Get returns the stated amount due of key.
func (t *Totals) Get(key models.Key) (decimal.Decimal, bool) {
	if t == nil {
		return decimal.Decimal{}, false
	}
	v, ok := t.byKey[key]
	return v, ok
}

// Len returns the number of keys with a stated total.
func (t *Totals) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byKey)
}
