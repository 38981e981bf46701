// Package store loads and saves the category rule table.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/card-recon/internal/common"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// DefaultRulesFile is the rule table looked up when none is configured.
const DefaultRulesFile = "category_mapping.csv"

// Format is the on-disk encoding of a rule table.
type Format string

// Supported rule table formats.
const (
	FormatCSV    Format = "csv"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// FormatOf infers the rule table format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("unsupported rule table extension: %q", filepath.Ext(path))
	}
}

// CategoryStore reads the rule table from CSV, YAML or SQLite.
type CategoryStore struct {
	RulesFile string
	logger    logging.Logger
}

// NewCategoryStore creates a store for the rule table at rulesFile.
func NewCategoryStore(rulesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CategoryStore{RulesFile: rulesFile, logger: logger}
}

// FindConfigFile looks for a rule table in the standard locations.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "card-recon", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadRules returns the rule table in file order. A missing table is not an
// error: an empty table is returned and categorization falls back to the
// heuristic buckets.
func (s *CategoryStore) LoadRules() ([]models.CategoryRule, error) {
	filename := s.RulesFile
	if filename == "" {
		filename = DefaultRulesFile
	}

	path, err := s.FindConfigFile(filename)
	if err != nil {
		s.logger.WithError(fmt.Errorf("%w: %s", parsererror.ErrMappingTableMissing, filename)).
			Warn("Category rule table not found, using heuristic categorization only",
				logging.F(logging.FieldFile, filename))
		return []models.CategoryRule{}, nil
	}

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	var rules []models.CategoryRule
	switch format {
	case FormatCSV:
		rules, err = readCSV(path)
	case FormatYAML:
		rules, err = readYAML(path)
	case FormatSQLite:
		rules, err = readSQLite(path)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading rule table %s: %w", path, err)
	}

	rules = s.sanitize(rules, path)
	s.logger.Info("Loaded category rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return rules, nil
}

// sanitize trims every column and drops rows without a keyword.
func (s *CategoryStore) sanitize(rules []models.CategoryRule, path string) []models.CategoryRule {
	out := make([]models.CategoryRule, 0, len(rules))
	for i, r := range rules {
		r.KeywordPattern = strings.TrimSpace(r.KeywordPattern)
		r.ExpenseType = strings.TrimSpace(r.ExpenseType)
		r.MerchantCategory = strings.TrimSpace(r.MerchantCategory)
		r.StoreName = strings.TrimSpace(r.StoreName)
		if r.KeywordPattern == "" {
			s.logger.Debug("Skipping rule without keyword",
				logging.F(logging.FieldFile, path),
				logging.F("row", i+1))
			continue
		}
		out = append(out, r)
	}
	if len(rules) > 0 && len(out) == 0 {
		s.logger.Warn("Every category rule lacks a keyword; check the table headers",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldCount, len(rules)))
	}
	return out
}

// csvRule is a CSV rule row. Keyword and Category are the headers of older
// tables and stand in for Keyword Pattern and Expense Type.
type csvRule struct {
	KeywordPattern   string `csv:"Keyword Pattern"`
	Keyword          string `csv:"Keyword"`
	ExpenseType      string `csv:"Expense Type"`
	Category         string `csv:"Category"`
	MerchantCategory string `csv:"Merchant Category"`
	StoreName        string `csv:"Store Name"`
}

func readCSV(path string) ([]models.CategoryRule, error) {
	rows, err := common.ReadCSVFile[csvRule](path)
	if err != nil {
		return nil, err
	}
	rules := make([]models.CategoryRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, models.CategoryRule{
			KeywordPattern:   firstNonBlank(row.KeywordPattern, row.Keyword),
			ExpenseType:      firstNonBlank(row.ExpenseType, row.Category),
			MerchantCategory: row.MerchantCategory,
			StoreName:        row.StoreName,
		})
	}
	return rules, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func readYAML(path string) ([]models.CategoryRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg models.CategoryRulesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Rules) > 0 {
		return cfg.Rules, nil
	}

	// Bare list without the top-level key.
	var rules []models.CategoryRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing rule table: %w", err)
	}
	return rules, nil
}

// SaveRules writes rules to path in the format implied by its extension.
func (s *CategoryStore) SaveRules(path string, rules []models.CategoryRule) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		err = common.WriteCSVFile(path, rules)
	case FormatYAML:
		err = common.WriteFileAtomic(path, func(w io.Writer) error {
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(models.CategoryRulesConfig{Rules: rules}); err != nil {
				return err
			}
			return enc.Close()
		})
	case FormatSQLite:
		err = writeSQLite(path, rules)
	}
	if err != nil {
		return fmt.Errorf("error saving rule table %s: %w", path, err)
	}

	s.logger.Info("Saved category rules",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rules)))
	return nil
}

// InitRules writes the starter rule table to path, refusing to overwrite an
// existing file unless force is set.
func (s *CategoryStore) InitRules(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("rule table already exists: %s", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return s.SaveRules(path, StarterRules())
}
