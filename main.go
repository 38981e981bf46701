package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/card-recon/cmd/categorize"
	"fjacquet/card-recon/cmd/due"
	"fjacquet/card-recon/cmd/extract"
	"fjacquet/card-recon/cmd/process"
	"fjacquet/card-recon/cmd/root"
	"fjacquet/card-recon/cmd/rules"
	"fjacquet/card-recon/internal/config"
	"fjacquet/card-recon/internal/logging"

	"github.com/sirupsen/logrus"
)

func init() {
	// .env first so CARDRECON_* variables are visible to the log level and viper
	config.LoadEnv()

	logging.SetAllLogLevels(configureLogLevelDirectly())

	root.Init()

	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(due.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
}

// configureLogLevelDirectly sets the global logrus level before any command
// runs and returns it.
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")
	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
