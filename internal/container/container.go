// Package container provides dependency injection for the card-recon application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/card-recon/internal/batch"
	"fjacquet/card-recon/internal/categorizer"
	"fjacquet/card-recon/internal/common"
	"fjacquet/card-recon/internal/config"
	"fjacquet/card-recon/internal/factory"
	"fjacquet/card-recon/internal/issuer"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/pdfparser"
	"fjacquet/card-recon/internal/reconcile"
	"fjacquet/card-recon/internal/report"
	"fjacquet/card-recon/internal/scanner"
	"fjacquet/card-recon/internal/statementtotal"
	"fjacquet/card-recon/internal/store"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.CategoryStore
	categorizer *categorizer.Categorizer
	provider    pdfparser.Provider
	registry    *factory.Registry
	totals      *statementtotal.Extractor
	engine      *reconcile.Engine
	aggregator  *batch.BatchAggregator
	scanner     *scanner.DocumentScanner
	reports     *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies using the
// real document provider.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	provider := pdfparser.NewCachingProvider(pdfparser.NewRealProvider(logger, pdfparser.Options{
		OCREnabled:        cfg.Extraction.OCREnabled,
		OCRLanguage:       cfg.Extraction.OCRLanguage,
		OCRDPI:            cfg.Extraction.OCRDPI,
		PdftotextFallback: cfg.Extraction.PdftotextFallback,
	}))

	return NewContainerWithProvider(cfg, provider, logger)
}

// NewContainerWithProvider wires the application around an explicit document
// provider and logger.
func NewContainerWithProvider(cfg *config.Config, provider pdfparser.Provider, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if provider == nil {
		return nil, fmt.Errorf("document provider cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	if cfg.CSV.Delimiter != "" {
		common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
	}
	common.SetLogger(logger)

	dialects, err := issuer.LoadDialects(cfg.Issuers.File, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load issuer dialects: %w", err)
	}
	for i := range dialects {
		if dialects[i].MinTextLength == 0 {
			dialects[i].MinTextLength = cfg.Extraction.MinTextLength
		}
	}
	registry, err := factory.NewRegistry(dialects, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build issuer registry: %w", err)
	}

	categoryStore := store.NewCategoryStore(cfg.Rules.File, logger)
	cat := categorizer.NewCategorizer(categoryStore, logger)

	totals := statementtotal.New(provider, logger, statementtotal.Options{
		MinAmount:        cfg.StatementTotal.MinAmount,
		ZoneCap:          cfg.StatementTotal.ZoneCap,
		DistractorWindow: cfg.StatementTotal.DistractorWindow,
	})
	engine := reconcile.NewEngine(decimal.NewFromFloat(cfg.Reconciliation.Tolerance), logger)

	aggregator := batch.NewBatchAggregator(registry, provider, cat, totals, engine,
		batch.Options{Deduplicate: cfg.Batch.Deduplicate}, logger)

	logger.Info("Container initialized successfully",
		logging.F("issuers", len(registry.Tags())),
		logging.F("rules", cat.RuleCount()),
		logging.F("ocr_enabled", cfg.Extraction.OCREnabled))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       categoryStore,
		categorizer: cat,
		provider:    provider,
		registry:    registry,
		totals:      totals,
		engine:      engine,
		aggregator:  aggregator,
		scanner:     scanner.NewDocumentScanner(logger),
		reports:     report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the category rule store.
func (c *Container) GetStore() *store.CategoryStore {
	return c.store
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetProvider returns the document content provider.
func (c *Container) GetProvider() pdfparser.Provider {
	return c.provider
}

// GetRegistry returns the issuer routing registry.
func (c *Container) GetRegistry() *factory.Registry {
	return c.registry
}

// GetStatementTotals returns the statement-total extractor.
func (c *Container) GetStatementTotals() *statementtotal.Extractor {
	return c.totals
}

// GetEngine returns the reconciliation engine.
func (c *Container) GetEngine() *reconcile.Engine {
	return c.engine
}

// GetAggregator returns the batch pipeline.
func (c *Container) GetAggregator() *batch.BatchAggregator {
	return c.aggregator
}

// GetScanner returns the document scanner.
func (c *Container) GetScanner() *scanner.DocumentScanner {
	return c.scanner
}

// GetReportGenerator returns the report writer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reports
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return nil
}
