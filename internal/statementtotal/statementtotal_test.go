package statementtotal

import (
	"context"
	"errors"
	"strings"
	"testing"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/pdfparser"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtractor(docs map[string]pdfparser.MockDocument) (*Extractor, *pdfparser.MockProvider) {
	p := pdfparser.NewMockProvider(docs)
	return New(p, logging.NewMockLogger(), Options{}), p
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name: "summary window with minimum due after total",
			text: `AXIS BANK PAYMENT SUMMARY
Previous Balance 3,000.00 Dr
Total Payment Due 5,000.00 Dr Minimum Payment Due 250.00 Dr Payment Due Date 05/01/2026
ACCOUNT SUMMARY Total Amount Due 9,999.00 Dr`,
			expected: "5000",
		},
		{
			name:     "first tagged amount wins",
			text:     "Total Payment Due 1,500.00 Dr 2,000.00 Dr",
			expected: "1500",
		},
		{
			name:     "account summary in zone prefers last tagged",
			text:     "Total Amount Due ACCOUNT SUMMARY 1,000.00 Dr 2,500.00 Dr",
			expected: "2500",
		},
		{
			name:     "untagged fallback",
			text:     "Billed Amount 7,890 and 8,000",
			expected: "7890",
		},
		{
			name:     "label priority over position",
			text:     "Total Amount Due 2,000.00 then Total Payment Due 3,000.00",
			expected: "3000",
		},
		{
			name:     "label directly followed by another label has an empty zone",
			text:     "Total Payment DueBilled Amount 1,200.00 Total Amount Due 800.00",
			expected: "800",
		},
		{
			name:     "next occurrence when zone is empty",
			text:     "Total Payment Due see below. Total Payment Due 4,000.00 Dr",
			expected: "4000",
		},
		{
			name:     "purchases debits variant",
			text:     "Purchases / Debits 6,543.21",
			expected: "6543.21",
		},
		{
			name:     "dates are not amounts",
			text:     "Total Amount Due 05/01/2026 3,210.00",
			expected: "3210",
		},
		{
			name:     "small figures rejected",
			text:     "Total Amount Due Page 2 of 4 12,000.00",
			expected: "12000",
		},
		{
			name:     "credit limit distractor",
			text:     "Billed Amount Credit Limit: 50,000 (includes cash advances and other charges) 4,321.00",
			expected: "4321",
		},
		{
			name:     "zone cut at stop token after first amount",
			text:     "Total Amount Due 12,345.67 Credit Limit 2,00,000.00 Dr",
			expected: "12345.67",
		},
		{
			name:     "OCR glyph for rupee",
			text:     "Total Amount Due `12,000.00",
			expected: "12000",
		},
		{
			name:     "rupee sign",
			text:     "Total Amount Due ₹ 8,450.00",
			expected: "8450",
		},
		{
			name:     "window without labels falls back to full text",
			text:     "STATEMENT SUMMARY opening notes TRANSACTION DETAILS lines Total Amount Due 1,234.00",
			expected: "1234",
		},
		{
			name:     "case insensitive labels",
			text:     "TOTAL AMOUNT DUE 2,222.00 DR",
			expected: "2222",
		},
	}

	e, _ := newExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := e.FromText(tt.text)
			require.True(t, ok)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(v), "got %s", v)
		})
	}
}

func TestFromText_NotFound(t *testing.T) {
	e, _ := newExtractor(nil)
	for _, text := range []string{
		"",
		"no figures here",
		"Total Amount Due 12.00",
		"Total Amount Due Credit Limit 50,000",
		"Billed Amount " + strings.Repeat("x", 250) + " 1,000.00",
	} {
		_, ok := e.FromText(text)
		assert.False(t, ok, text)
	}
}

func TestOptions(t *testing.T) {
	p := pdfparser.NewMockProvider(nil)
	far := "Billed Amount " + strings.Repeat("x", 250) + " 1,000.00"

	v, ok := New(p, logging.NewMockLogger(), Options{ZoneCap: 500}).FromText(far)
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(1000).Equal(v))

	v, ok = New(p, logging.NewMockLogger(), Options{MinAmount: 10}).FromText("Billed Amount 50")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(50).Equal(v))

	assert.Equal(t, DefaultOptions(), New(p, nil, Options{}).opts)
}

func TestSummaryWindow(t *testing.T) {
	text := "intro STATEMENT AT A GLANCE a CREDIT SUMMARY b PAYMENT SUMMARY c TRANSACTION DETAILS d"
	assert.Equal(t, "STATEMENT AT A GLANCE a ", summaryWindow(text))
	assert.Equal(t, "plain", summaryWindow("plain"))
	assert.Equal(t, "PAYMENT SUMMARY tail", summaryWindow("x PAYMENT SUMMARY tail"))
}

func TestExtract(t *testing.T) {
	const path = "doc.pdf"
	boom := errors.New("unreadable")

	tests := []struct {
		name      string
		document  pdfparser.MockDocument
		expected  string
		wantCalls map[string]int
	}{
		{
			name:      "direct text",
			document:  pdfparser.MockDocument{Text: "Total Amount Due 1,111.00 Dr", OCRText: "Total Amount Due 2,222.00 Dr"},
			expected:  "1111",
			wantCalls: map[string]int{"Text": 1},
		},
		{
			name:      "OCR retry when text has no total",
			document:  pdfparser.MockDocument{Text: "image only", OCRText: "Total Amount Due 2,222.00 Dr"},
			expected:  "2222",
			wantCalls: map[string]int{"Text": 1, "OCRText": 1},
		},
		{
			name:      "OCR retry when text is unreadable",
			document:  pdfparser.MockDocument{TextErr: boom, OCRText: "Billed Amount 3,333.00"},
			expected:  "3333",
			wantCalls: map[string]int{"Text": 1, "OCRText": 1},
		},
		{
			name:      "nothing anywhere",
			document:  pdfparser.MockDocument{TextErr: boom, OCRErr: boom},
			wantCalls: map[string]int{"Text": 1, "OCRText": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, p := newExtractor(map[string]pdfparser.MockDocument{path: tt.document})

			v, ok := e.Extract(context.Background(), path)
			assert.Equal(t, tt.wantCalls, p.Calls)
			if tt.expected == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(v), "got %s", v)
		})
	}
}
