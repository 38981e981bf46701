// Package rules manages the category rule table.
package rules

import (
	"fmt"
	"io"

	"fjacquet/card-recon/cmd/common"
	"fjacquet/card-recon/internal/store"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	force      bool
)

// Cmd groups the rule table commands.
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Manage the category rule table",
}

// InitCmd writes the starter rule table.
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter category rule table (.csv, .yaml or .db)",
	RunE:  initFunc,
}

func init() {
	InitCmd.Flags().StringVarP(&outputFile, "output", "o", store.DefaultRulesFile, "Rule table to create")
	InitCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing rule table")
	Cmd.AddCommand(InitCmd)
}

func initFunc(cmd *cobra.Command, args []string) error {
	c, err := common.Container()
	if err != nil {
		return err
	}
	return Init(c.GetStore(), outputFile, force, cmd.OutOrStdout())
}

// Init writes the starter rules to path.
func Init(s *store.CategoryStore, path string, force bool, out io.Writer) error {
	if err := s.InitRules(path, force); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d starter rules to %s\n", len(store.StarterRules()), path)
	return nil
}
