// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides (CARDRECON_LOG_LEVEL, ...).
const EnvPrefix = "CARDRECON"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Rules struct {
		// File is the categorization table: .yaml, .csv or .db/.sqlite.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"rules" yaml:"rules"`

	Issuers struct {
		// File optionally overrides or extends the built-in issuer dialects.
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"issuers" yaml:"issuers"`

	Extraction struct {
		OCREnabled        bool   `mapstructure:"ocr_enabled" yaml:"ocr_enabled"`
		OCRLanguage       string `mapstructure:"ocr_language" yaml:"ocr_language"`
		OCRDPI            int    `mapstructure:"ocr_dpi" yaml:"ocr_dpi"`
		PdftotextFallback bool   `mapstructure:"pdftotext_fallback" yaml:"pdftotext_fallback"`
		MinTextLength     int    `mapstructure:"min_text_length" yaml:"min_text_length"`
	} `mapstructure:"extraction" yaml:"extraction"`

	StatementTotal struct {
		MinAmount        int `mapstructure:"min_amount" yaml:"min_amount"`
		ZoneCap          int `mapstructure:"zone_cap" yaml:"zone_cap"`
		DistractorWindow int `mapstructure:"distractor_window" yaml:"distractor_window"`
	} `mapstructure:"statement_total" yaml:"statement_total"`

	Reconciliation struct {
		Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"`
	} `mapstructure:"reconciliation" yaml:"reconciliation"`

	Batch struct {
		Deduplicate bool `mapstructure:"deduplicate" yaml:"deduplicate"`
	} `mapstructure:"batch" yaml:"batch"`

	Report struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Format    string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig loads configuration from the default search paths.
func InitializeConfig() (*Config, error) {
	return Load("")
}

// Load builds the configuration from defaults, an optional config file and
// CARDRECON_* environment variables, in increasing order of precedence.
// When configFile is empty the usual locations are searched.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.card-recon")
		v.AddConfigPath(".card-recon")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("rules.file", "category_mapping.csv")
	v.SetDefault("issuers.file", "")

	v.SetDefault("extraction.ocr_enabled", true)
	v.SetDefault("extraction.ocr_language", "eng")
	v.SetDefault("extraction.ocr_dpi", 300)
	v.SetDefault("extraction.pdftotext_fallback", true)
	v.SetDefault("extraction.min_text_length", 100)

	v.SetDefault("statement_total.min_amount", 100)
	v.SetDefault("statement_total.zone_cap", 200)
	v.SetDefault("statement_total.distractor_window", 40)

	v.SetDefault("reconciliation.tolerance", 0.01)

	v.SetDefault("batch.deduplicate", false)

	v.SetDefault("report.directory", "reports")
	v.SetDefault("report.format", "csv")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Extraction.OCRDPI < 72 || config.Extraction.OCRDPI > 1200 {
		return fmt.Errorf("extraction.ocr_dpi must be between 72 and 1200, got: %d", config.Extraction.OCRDPI)
	}

	if config.Extraction.MinTextLength < 0 {
		return fmt.Errorf("extraction.min_text_length must not be negative, got: %d", config.Extraction.MinTextLength)
	}

	if config.StatementTotal.ZoneCap < 1 {
		return fmt.Errorf("statement_total.zone_cap must be positive, got: %d", config.StatementTotal.ZoneCap)
	}

	if config.StatementTotal.MinAmount < 0 || config.StatementTotal.DistractorWindow < 0 {
		return fmt.Errorf("statement_total.min_amount and distractor_window must not be negative")
	}

	if config.Reconciliation.Tolerance < 0 {
		return fmt.Errorf("reconciliation.tolerance must not be negative, got: %f", config.Reconciliation.Tolerance)
	}

	switch config.Report.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("invalid report format: %s (must be 'csv' or 'json')", config.Report.Format)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
