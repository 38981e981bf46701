package process

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/card-recon/internal/config"
	"fjacquet/card-recon/internal/container"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statement = `AXIS BANK CREDIT CARD STATEMENT
Statement Generation Date: 18/12/2025
PAYMENT SUMMARY
Total Payment Due 741.00 Dr Minimum Payment Due 250.00 Dr
ACCOUNT SUMMARY
08/12/2025 RAZ*IXIGO,GURGAON TRANSPORT 741.00 Dr
10/12/2025 PAYMENT RECEIVED 2,538.00 Cr
`

func newContainer(t *testing.T, docs map[string]pdfparser.MockDocument) *container.Container {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("rules:\n  file: "+filepath.Join(t.TempDir(), "none.csv")+"\n"), 0600))
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	c, err := container.NewContainerWithProvider(cfg, pdfparser.NewMockProvider(docs), logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "process", Cmd.Use)
	assert.NotNil(t, Cmd.RunE)
	for _, name := range []string{"input", "output", "format"} {
		assert.NotNil(t, Cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "i", Cmd.Flags().Lookup("input").Shorthand)
}

func TestRun(t *testing.T) {
	corpus := t.TempDir()
	doc := filepath.Join(corpus, "Axis_Rewards", "dec.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(doc), 0750))
	require.NoError(t, os.WriteFile(doc, []byte("%PDF"), 0600))
	stray := filepath.Join(corpus, "HDFC", "jan.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(stray), 0750))
	require.NoError(t, os.WriteFile(stray, []byte("%PDF"), 0600))

	c := newContainer(t, map[string]pdfparser.MockDocument{doc: {Text: statement}})
	reports := filepath.Join(t.TempDir(), "reports")

	var out bytes.Buffer
	stats, err := Run(context.Background(), c, corpus, reports, "csv", &out)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Succeeded)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 2, stats.Transactions)

	assert.Contains(t, out.String(), "Processed 2 documents: 1 succeeded, 1 failed, 2 transactions")
	assert.Contains(t, out.String(), "Axis Bank Rewards CC/Dec-25: reconciled")
	assert.FileExists(t, filepath.Join(reports, "credit_card_expenses.csv"))
	assert.FileExists(t, filepath.Join(reports, "credit_card_reconciliation.csv"))
	assert.FileExists(t, filepath.Join(reports, "credit_card_summary.csv"))
}

func TestRun_ConfigDefaults(t *testing.T) {
	corpus := t.TempDir()
	c := newContainer(t, nil)
	c.GetConfig().Report.Directory = filepath.Join(t.TempDir(), "out")
	c.GetConfig().Report.Format = "json"

	var out bytes.Buffer
	stats, err := Run(context.Background(), c, corpus, "", "", &out)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.FileExists(t, filepath.Join(c.GetConfig().Report.Directory, "credit_card_report.json"))
}

func TestRun_MissingInput(t *testing.T) {
	c := newContainer(t, nil)
	_, err := Run(context.Background(), c, filepath.Join(t.TempDir(), "missing"), t.TempDir(), "csv", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRun_InvalidFormat(t *testing.T) {
	c := newContainer(t, nil)
	_, err := Run(context.Background(), c, t.TempDir(), t.TempDir(), "xlsx", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
