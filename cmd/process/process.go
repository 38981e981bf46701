// Package process runs the full statement pipeline over a directory.
package process

import (
	"context"
	"fmt"
	"io"

	"fjacquet/card-recon/cmd/common"
	"fjacquet/card-recon/internal/batch"
	"fjacquet/card-recon/internal/container"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/validation"

	"github.com/spf13/cobra"
)

var (
	inputDir  string
	outputDir string
	format    string
)

// Cmd represents the process command
var Cmd = &cobra.Command{
	Use:   "process",
	Short: "Extract, categorize and reconcile every statement under a directory",
	Long: `Walk the input directory for statement PDFs, route each one to its issuer
dialect, extract and categorize the transactions, reconcile billed spend
against the stated amount due and write the expenses, reconciliation and
summary views to the output directory.

Example:
  card-recon process -i statements/ -o reports/`,
	RunE: processFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory (or file) holding statement PDFs")
	Cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Report directory (default: report.directory)")
	Cmd.Flags().StringVar(&format, "format", "", "Report format: csv or json (default: report.format)")
}

func processFunc(cmd *cobra.Command, args []string) error {
	if err := common.RequireFlag("input", inputDir); err != nil {
		return err
	}
	c, err := common.Container()
	if err != nil {
		return err
	}
	_, err = Run(cmd.Context(), c, inputDir, outputDir, format, cmd.OutOrStdout())
	return err
}

// Run processes input and writes the report. Empty output and format fall
// back to the configuration.
func Run(ctx context.Context, c *container.Container, input, output, format string, out io.Writer) (batch.Stats, error) {
	cfg := c.GetConfig()
	if output == "" {
		output = cfg.Report.Directory
	}
	if format == "" {
		format = cfg.Report.Format
	}
	if err := validation.IsValidPath(input); err != nil {
		return batch.Stats{}, err
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return batch.Stats{}, err
	}
	logger := c.GetLogger()

	paths, err := c.GetScanner().ScanPaths([]string{input})
	if err != nil {
		return batch.Stats{}, err
	}
	if len(paths) == 0 {
		logger.Warn("No statement documents found", logging.F(logging.FieldFile, input))
	}

	run, err := c.GetAggregator().Run(ctx, paths)
	if err != nil {
		return run.Stats, err
	}

	files, err := c.GetReportGenerator().Write(output, format, run.Report)
	if err != nil {
		return run.Stats, err
	}

	s := run.Stats
	fmt.Fprintf(out, "Processed %d documents: %d succeeded, %d failed, %d transactions\n",
		s.Total, s.Succeeded, s.Failed, s.Transactions)
	for _, k := range run.Report.Keys {
		status := "not reconciled"
		if k.Reconciled {
			status = "reconciled"
		}
		fmt.Fprintf(out, "  %s: %s\n", k.Key, status)
	}
	for _, f := range files {
		fmt.Fprintf(out, "Wrote %s\n", f)
	}
	return s, nil
}
