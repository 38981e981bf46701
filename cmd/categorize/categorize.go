// Package categorize handles transaction categorization commands
package categorize

import (
	"context"
	"fmt"
	"io"

	"fjacquet/card-recon/cmd/common"
	"fjacquet/card-recon/internal/categorizer"
	"fjacquet/card-recon/internal/models"

	"github.com/spf13/cobra"
)

var (
	description string
	account     string
	explain     bool
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a transaction description",
	Long: `Categorize a transaction description with the account overrides, the
keyword rule table and the heuristic buckets, in that order.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description to categorize")
	Cmd.Flags().StringVarP(&account, "account", "a", "", "Account label (optional)")
	Cmd.Flags().BoolVar(&explain, "explain", false, "Show the outcome of every strategy")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	if err := common.RequireFlag("description", description); err != nil {
		return err
	}
	c, err := common.Container()
	if err != nil {
		return err
	}
	Run(cmd.Context(), c.GetCategorizer(), categorizer.Transaction{Account: account, Description: description}, explain, cmd.OutOrStdout())
	return nil
}

// Run prints the classification of tx.
func Run(ctx context.Context, cat *categorizer.Categorizer, tx categorizer.Transaction, explain bool, out io.Writer) models.Classification {
	class := cat.Categorize(ctx, tx)
	fmt.Fprintf(out, "Expense Type: %s\nMerchant Category: %s\nStore Name: %s\n",
		class.ExpenseType, class.MerchantCategory, class.StoreName)
	if explain {
		results := cat.Explain(ctx, tx)
		fmt.Fprintf(out, "Strategies: %s\n", results.Summary())
		for _, err := range results.GetErrors() {
			fmt.Fprintf(out, "  error: %v\n", err)
		}
	}
	return class
}
