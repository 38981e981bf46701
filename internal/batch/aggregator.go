// Package batch runs the statement pipeline over a corpus of documents and
// aggregates the results per (account, period).
package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/card-recon/internal/cascade"
	"fjacquet/card-recon/internal/categorizer"
	"fjacquet/card-recon/internal/dateutils"
	"fjacquet/card-recon/internal/factory"
	"fjacquet/card-recon/internal/issuer"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/normalizer"
	"fjacquet/card-recon/internal/pdfparser"
	"fjacquet/card-recon/internal/reconcile"
	"fjacquet/card-recon/internal/statementtotal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status is the per-document outcome reported on the status line.
type Status string

const (
	StatusSucceeded  Status = "succeeded"
	StatusEmpty      Status = "no transactions"
	StatusUnreadable Status = "unreadable"
	StatusNoRoute    Status = "no route"
)

// Document is the outcome of running the pipeline on one file.
type Document struct {
	Path    string
	Issuer  string
	Account string
	Period  string
	Stage   issuer.Stage
	Status  Status
	// Dropped counts lines that failed field normalization.
	Dropped      int
	Transactions []models.Transaction
	// Total is the stated amount due; nil when not found or not looked for.
	Total *models.StatementTotal
	Err   error
}

// Stats are the end-of-run counters.
type Stats struct {
	RunID        string
	Total        int
	Succeeded    int
	Failed       int
	Transactions int
	Duplicates   int
}

// Run is the result of a full corpus run.
type Run struct {
	Stats     Stats
	Documents []Document
	Report    reconcile.Result
}

// forgetter is implemented by providers that cache document content.
type forgetter interface {
	Forget(path string)
}

// Options tune the aggregator.
type Options struct {
	// Deduplicate drops (account, period, date, description, amount) rows
	// already contributed by another document. Repeats within one document
	// are genuine charges and are kept.
	Deduplicate bool
	// Now anchors path-derived periods; time.Now when nil.
	Now func() time.Time
}

// BatchAggregator wires routing, the extraction cascade, normalization,
// categorization and reconciliation together.
type BatchAggregator struct {
	registry    *factory.Registry
	provider    pdfparser.Provider
	controller  *cascade.Controller
	categorizer *categorizer.Categorizer
	totals      *statementtotal.Extractor
	engine      *reconcile.Engine
	opts        Options
	logger      logging.Logger
}

// NewBatchAggregator creates a BatchAggregator.
func NewBatchAggregator(
	registry *factory.Registry,
	provider pdfparser.Provider,
	cat *categorizer.Categorizer,
	totals *statementtotal.Extractor,
	engine *reconcile.Engine,
	opts Options,
	logger logging.Logger,
) *BatchAggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &BatchAggregator{
		registry:    registry,
		provider:    provider,
		controller:  cascade.NewController(logger),
		categorizer: cat,
		totals:      totals,
		engine:      engine,
		opts:        opts,
		logger:      logger,
	}
}

// Run processes every path in order and reconciles the combined result.
// Per-document failures are counted and skipped; only context cancellation
// aborts the run.
func (ba *BatchAggregator) Run(ctx context.Context, paths []string) (Run, error) {
	run := Run{Stats: Stats{RunID: uuid.NewString(), Total: len(paths)}}
	logger := ba.logger.WithField(logging.FieldRunID, run.Stats.RunID)

	logger.Info("Starting statement run", logging.F(logging.FieldCount, len(paths)))

	totals := reconcile.NewTotals()

	for _, path := range paths {
		doc, err := ba.Process(ctx, path, "")
		if f, ok := ba.provider.(forgetter); ok {
			f.Forget(path)
		}
		if err != nil && ctx.Err() != nil {
			return run, fmt.Errorf("run %s aborted: %w", run.Stats.RunID, err)
		}
		ba.logStatus(logger, doc)

		run.Documents = append(run.Documents, doc)
		if doc.Status != StatusSucceeded {
			run.Stats.Failed++
			continue
		}
		run.Stats.Succeeded++
		if doc.Total != nil {
			totals.Add(*doc.Total)
		}
	}

	var all []models.Transaction
	if ba.opts.Deduplicate {
		all, run.Stats.Duplicates = ba.deduplicate(logger, run.Documents)
	} else {
		for _, doc := range run.Documents {
			all = append(all, doc.Transactions...)
		}
	}
	run.Stats.Transactions = len(all)

	run.Report = ba.engine.Reconcile(all, totals)

	logger.Info("Statement run complete",
		logging.F("documents", run.Stats.Total),
		logging.F("succeeded", run.Stats.Succeeded),
		logging.F("failed", run.Stats.Failed),
		logging.F("transactions", run.Stats.Transactions),
		logging.F("duplicates", run.Stats.Duplicates))

	return run, nil
}

// Process runs routing, the cascade, normalization and categorization on one
// document. tag forces an issuer dialect; empty means route by path. The
// returned error is also recorded on the Document.
func (ba *BatchAggregator) Process(ctx context.Context, path, tag string) (Document, error) {
	doc := Document{Path: path}

	ext, err := ba.extractorFor(path, tag)
	if err != nil {
		doc.Status = StatusNoRoute
		doc.Err = err
		return doc, err
	}
	doc.Issuer = ext.Tag()

	out, err := ba.controller.Run(ctx, path, cascade.Strategies(ext, ba.provider))
	if err != nil {
		doc.Status = StatusUnreadable
		doc.Err = err
		return doc, err
	}
	doc.Stage = out.Stage
	doc.Account = ext.Account(path, out.Result.Source)
	doc.Period = ba.period(ext, path, out.Result.Source)

	if out.Empty() {
		doc.Status = StatusEmpty
		return doc, nil
	}

	txs, dropped := normalizer.PromoteAll(out.Result.Tokens, ext.NormalizerContext(doc.Account, doc.Period), ba.logger)
	doc.Dropped = dropped
	if len(txs) == 0 {
		doc.Status = StatusEmpty
		return doc, nil
	}

	doc.Transactions = ba.categorizer.CategorizeAll(ctx, txs)
	doc.Status = StatusSucceeded

	if ba.totals != nil {
		if amount, found := ba.totals.Extract(ctx, path); found {
			doc.Total = &models.StatementTotal{
				Key:    models.Key{Account: doc.Account, Period: doc.Period},
				Amount: amount,
			}
		}
	}
	return doc, nil
}

// StatementTotal returns the stated amount due of one document.
func (ba *BatchAggregator) StatementTotal(ctx context.Context, path string) (decimal.Decimal, bool) {
	if ba.totals == nil {
		return decimal.Decimal{}, false
	}
	return ba.totals.Extract(ctx, path)
}

func (ba *BatchAggregator) extractorFor(path, tag string) (*issuer.Extractor, error) {
	if tag != "" {
		return ba.registry.GetExtractor(tag)
	}
	return ba.registry.Resolve(path)
}

// period prefers the document text, then the path, then PeriodUnknown.
func (ba *BatchAggregator) period(ext *issuer.Extractor, path, source string) string {
	if p := ext.Period(source); p != "" {
		return p
	}
	if p := dateutils.PeriodFromPath(path, ba.opts.Now()); p != "" {
		ba.logger.Debug("Period derived from path",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldPeriod, p))
		return p
	}
	ba.logger.Warn("Statement period not found",
		logging.F(logging.FieldFile, path))
	return models.PeriodUnknown
}

func (ba *BatchAggregator) logStatus(logger logging.Logger, doc Document) {
	fields := []logging.Field{
		logging.F(logging.FieldFile, filepath.Base(doc.Path)),
		logging.F(logging.FieldStatus, string(doc.Status)),
	}

	switch doc.Status {
	case StatusSucceeded:
		fields = append(fields,
			logging.F(logging.FieldIssuer, doc.Issuer),
			logging.F(logging.FieldAccount, doc.Account),
			logging.F(logging.FieldPeriod, doc.Period),
			logging.F(logging.FieldStage, string(doc.Stage)),
			logging.F(logging.FieldCount, len(doc.Transactions)))
		if doc.Dropped > 0 {
			fields = append(fields, logging.F("dropped", doc.Dropped))
		}
		logger.Info("Document processed", fields...)
	case StatusEmpty:
		fields = append(fields, logging.F(logging.FieldIssuer, doc.Issuer))
		logger.Warn("Document processed", fields...)
	case StatusNoRoute:
		logger.Warn("Document processed", fields...)
	default:
		logger.WithError(doc.Err).Error("Document processed", fields...)
	}
}

type dedupKey struct {
	account     string
	period      string
	date        time.Time
	description string
	amount      string
}

// deduplicate flattens the documents' transactions, dropping a row when its
// key was first seen in a different document.
func (ba *BatchAggregator) deduplicate(logger logging.Logger, docs []Document) ([]models.Transaction, int) {
	origin := make(map[dedupKey]string)
	var out []models.Transaction
	dups := 0

	for _, doc := range docs {
		for _, tx := range doc.Transactions {
			k := dedupKey{
				account:     tx.Account,
				period:      tx.Period,
				date:        tx.Date,
				description: strings.ToLower(strings.TrimSpace(tx.Description)),
				amount:      tx.Amount.StringFixed(2),
			}
			first, seen := origin[k]
			if seen && first != doc.Path {
				dups++
				logger.Warn("Duplicate transaction dropped",
					logging.F(logging.FieldFile, filepath.Base(doc.Path)),
					logging.F("first_seen", filepath.Base(first)),
					logging.F(logging.FieldAccount, tx.Account),
					logging.F(logging.FieldPeriod, tx.Period),
					logging.F("date", tx.FormattedDate()),
					logging.F(logging.FieldAmount, tx.Amount.StringFixed(2)),
					logging.F("description", tx.Description))
				continue
			}
			if !seen {
				origin[k] = doc.Path
			}
			out = append(out, tx)
		}
	}

	if dups > 0 {
		logger.Warn("Found duplicate transactions",
			logging.F(logging.FieldCount, dups))
	}
	return out, dups
}
