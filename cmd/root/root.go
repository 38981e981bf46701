// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/card-recon/internal/config"
	"fjacquet/card-recon/internal/container"

	"github.com/spf13/cobra"
)

var (
	// AppContainer holds the wired dependencies once PersistentPreRunE ran.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "card-recon",
		Short: "Extract, categorize and reconcile credit-card statements.",
		Long: `card-recon reads credit-card statement PDFs from several issuers, extracts
the transactions (falling back from direct text to tables to OCR), categorizes
them from a keyword rule table and reconciles each statement's billed spend
against the amount due printed on it.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContainer()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer != nil {
				_ = AppContainer.Close()
				AppContainer = nil
			}
		},
	}

	// ConfigFile is an explicit configuration file path.
	ConfigFile string
	// LogLevel and LogFormat override the configured logging.
	LogLevel  string
	LogFormat string
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default: $HOME/.card-recon/config.yaml)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text, json)")
}

// LoadConfig reads the configuration and applies the command-line overrides.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(ConfigFile)
	if err != nil {
		return nil, err
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if LogFormat != "" {
		cfg.Log.Format = LogFormat
	}
	return cfg, nil
}

func initContainer() error {
	if AppContainer != nil {
		return nil
	}
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	AppContainer = c
	return nil
}

// GetContainer returns the application container, or nil before
// PersistentPreRunE has run.
func GetContainer() *container.Container {
	return AppContainer
}
