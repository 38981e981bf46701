// Package extract handles single-statement extraction commands
package extract

import (
	"context"
	"fmt"
	"io"

	"fjacquet/card-recon/cmd/common"
	"fjacquet/card-recon/internal/batch"
	"fjacquet/card-recon/internal/container"
	"fjacquet/card-recon/internal/report"
	"fjacquet/card-recon/internal/validation"

	"github.com/spf13/cobra"
)

var (
	inputFile  string
	outputFile string
	family     string
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the transactions of one statement as CSV",
	Long: `Run routing, the extraction cascade, normalization and categorization on a
single statement and print its transactions as CSV.`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Statement PDF")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file (default: stdout)")
	Cmd.Flags().StringVar(&family, "family", "", "Issuer tag to use instead of path routing")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	if err := common.RequireFlag("input", inputFile); err != nil {
		return err
	}
	if err := validation.IsValidDocument(inputFile); err != nil {
		return err
	}
	c, err := common.Container()
	if err != nil {
		return err
	}

	w, closeFn, err := common.OpenOutput(outputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, err = Run(cmd.Context(), c, inputFile, family, w)
	if cerr := closeFn(); err == nil {
		err = cerr
	}
	return err
}

// Run extracts one document and writes its transactions to w.
func Run(ctx context.Context, c *container.Container, path, tag string, w io.Writer) (batch.Document, error) {
	doc, err := c.GetAggregator().Process(ctx, path, tag)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", doc.Status, err)
	}
	if err := report.WriteTransactions(w, doc.Transactions); err != nil {
		return doc, err
	}
	return doc, nil
}
