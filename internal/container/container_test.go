package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/card-recon/internal/config"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `AXIS BANK CREDIT CARD STATEMENT
Statement Generation Date: 18/12/2025
DATE TRANSACTION DETAILS MERCHANT CATEGORY AMOUNT (Rs.)
08/12/2025 RAZ*IXIGO,GURGAON TRANSPORT 741.00 Dr
`

func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")

	_, err = NewContainerWithProvider(nil, pdfparser.NewMockProvider(nil), nil)
	assert.Error(t, err)
}

func TestNewContainer_Defaults(t *testing.T) {
	cfg := loadConfig(t, "log:\n  level: warn\n")

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.Same(t, cfg, c.GetConfig())
	assert.NotNil(t, c.GetLogger())
	assert.NotNil(t, c.GetStore())
	assert.NotNil(t, c.GetCategorizer())
	assert.NotNil(t, c.GetProvider())
	assert.NotNil(t, c.GetStatementTotals())
	assert.NotNil(t, c.GetEngine())
	assert.NotNil(t, c.GetAggregator())
	assert.NotNil(t, c.GetScanner())
	assert.NotNil(t, c.GetReportGenerator())
	assert.Len(t, c.GetRegistry().Tags(), 8)
}

func TestNewContainerWithProvider_WiresRules(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte(`rules:
  - keyword: IXIGO
    expense_type: Travel
    merchant_category: Flights
    store_name: Ixigo
`), 0600))

	cfg := loadConfig(t, "rules:\n  file: "+rules+"\n")
	provider := pdfparser.NewMockProvider(map[string]pdfparser.MockDocument{
		"/corpus/axis rewards/dec.pdf": {Text: statement},
	})

	c, err := NewContainerWithProvider(cfg, provider, logging.NewMockLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, c.GetCategorizer().RuleCount())

	doc, err := c.GetAggregator().Process(context.Background(), "/corpus/axis rewards/dec.pdf", "")
	require.NoError(t, err)
	require.Len(t, doc.Transactions, 1)
	assert.Equal(t, "Travel", doc.Transactions[0].ExpenseType)
	assert.Equal(t, "Ixigo", doc.Transactions[0].StoreName)
}

func TestNewContainerWithProvider_IssuerOverrides(t *testing.T) {
	dir := t.TempDir()

	t.Run("custom dialect is routed", func(t *testing.T) {
		issuers := filepath.Join(dir, "issuers.yaml")
		require.NoError(t, os.WriteFile(issuers, []byte(`dialects:
  - tag: hdfc
    path_tokens: [hdfc]
    account: HDFC Regalia CC
    line_pattern: '(?P<date>\d{2}/\d{2}/\d{4})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<dir>Dr|Cr)'
    date_layouts: ["02/01/2006"]
    stages: [DirectText]
`), 0600))

		cfg := loadConfig(t, "issuers:\n  file: "+issuers+"\n")
		c, err := NewContainerWithProvider(cfg, pdfparser.NewMockProvider(nil), logging.NewMockLogger())
		require.NoError(t, err)
		assert.Equal(t, "hdfc", c.GetRegistry().Tags()[0])

		ext, err := c.GetRegistry().Resolve("/corpus/HDFC/jan.pdf")
		require.NoError(t, err)
		assert.Equal(t, "hdfc", ext.Tag())
	})

	t.Run("invalid dialect fails", func(t *testing.T) {
		issuers := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(issuers, []byte("dialects:\n  - tag: broken\n"), 0600))

		cfg := loadConfig(t, "issuers:\n  file: "+issuers+"\n")
		_, err := NewContainerWithProvider(cfg, pdfparser.NewMockProvider(nil), logging.NewMockLogger())
		assert.Error(t, err)
	})
}
