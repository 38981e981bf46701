package due

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

func newContainer(t *testing.T, docs map[string]pdfparser.MockDocument) *container.Container {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0600))
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)

	c, err := container.NewContainerWithProvider(cfg, pdfparser.NewMockProvider(docs), logging.NewMockLogger())
	require.NoError(t, err)
	return c
}

func TestRun(t *testing.T) {
	c := newContainer(t, map[string]pdfparser.MockDocument{
		"text.pdf":  {Text: "PAYMENT SUMMARY Total Payment Due 12,345.67 Dr Minimum Payment Due 617.00 Dr"},
		"ocr.pdf":   {Text: "scanned", OCRText: "Total Amount Due r 2,000.00"},
		"blank.pdf": {},
	})

	tests := []struct {
		path     string
		found    bool
		expected string
	}{
		{"text.pdf", true, "Amount due: 12345.67\n"},
		{"ocr.pdf", true, "Amount due: 2000.00\n"},
		{"blank.pdf", false, "No statement total found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var out bytes.Buffer
			_, found := Run(context.Background(), c, tt.path, &out)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestCommand_Metadata(t *testing.T) {
	assert.Equal(t, "due", Cmd.Use)
	assert.NotNil(t, Cmd.Flags().Lookup("input"))
}
