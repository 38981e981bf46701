// Package due prints the amount due stated on a statement.
package due

import (
	"context"
	"fmt"
	"io"

	"fjacquet/card-recon/cmd/common"
	"fjacquet/card-recon/internal/container"
	"fjacquet/card-recon/internal/currencyutils"
	"fjacquet/card-recon/internal/validation"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var inputFile string

// Cmd represents the due command
var Cmd = &cobra.Command{
	Use:   "due",
	Short: "Print the statement total (amount due) of one statement",
	RunE:  dueFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Statement PDF")
}

func dueFunc(cmd *cobra.Command, args []string) error {
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
	Run(cmd.Context(), c, inputFile, cmd.OutOrStdout())
	return nil
}

// Run prints the statement total of path and returns it.
func Run(ctx context.Context, c *container.Container, path string, out io.Writer) (decimal.Decimal, bool) {
	amount, found := c.GetAggregator().StatementTotal(ctx, path)
	if !found {
		fmt.Fprintln(out, "No statement total found")
		return amount, false
	}
	fmt.Fprintf(out, "Amount due: %s\n", currencyutils.FormatAmount(amount))
	return amount, true
}
