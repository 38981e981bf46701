// Package cascade runs extraction strategies for one document in a fixed
// priority order and accepts the first one that yields transactions.
package cascade

import (
	"context"
	"errors"
	"sort"

	"fjacquet/card-recon/internal/issuer"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/parsererror"
)

// Result is what one strategy extracted from a document.
type Result struct {
	Tokens []models.RawToken
	// Source is the document text the period and account are read from.
	Source string
}

// Strategy is one extraction technique of the cascade.
type Strategy interface {
	Stage() issuer.Stage
	Extract(ctx context.Context, path string) (Result, error)
}

// Attempt records the outcome of one stage.
type Attempt struct {
	Stage  issuer.Stage
	Tokens int
	Err    error
}

// Outcome is the result of a full cascade run. Stage is empty when every
// stage came back empty.
type Outcome struct {
	Stage    issuer.Stage
	Result   Result
	Attempts []Attempt
}

// Empty reports whether the cascade was exhausted without tokens.
func (o Outcome) Empty() bool { return len(o.Result.Tokens) == 0 }

// Controller drives the cascade.
type Controller struct {
	logger logging.Logger
}

// NewController creates a Controller.
func NewController(logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Controller{logger: logger}
}

// Run tries strategies in stage order, each at most once. A strategy error is
// logged and the cascade advances. An exhausted cascade returns an empty
// Outcome and no error, unless every attempted stage failed, in which case
// the document is reported unreadable.
func (c *Controller) Run(ctx context.Context, path string, strategies []Strategy) (Outcome, error) {
	ordered := make([]Strategy, len(strategies))
	copy(ordered, strategies)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Stage().Rank() < ordered[j].Stage().Rank()
	})

	var (
		out     Outcome
		seen    = make(map[issuer.Stage]bool, len(ordered))
		errs    []error
		lastErr error
	)
	for _, s := range ordered {
		stage := s.Stage()
		if seen[stage] {
			continue
		}
		seen[stage] = true

		if err := ctx.Err(); err != nil {
			return out, err
		}

		res, err := s.Extract(ctx, path)
		out.Attempts = append(out.Attempts, Attempt{Stage: stage, Tokens: len(res.Tokens), Err: err})
		if err != nil {
			c.logger.WithError(err).Warn("Extraction stage failed, advancing",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldStage, string(stage)))
			errs = append(errs, err)
			lastErr = err
			continue
		}
		if len(res.Tokens) == 0 {
			c.logger.Debug("Extraction stage yielded nothing",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldStage, string(stage)))
			continue
		}

		out.Stage = stage
		out.Result = res
		c.logger.Debug("Extraction stage accepted",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldStage, string(stage)),
			logging.F(logging.FieldCount, len(res.Tokens)))
		return out, nil
	}

	if len(errs) > 0 && len(errs) == len(out.Attempts) {
		var docErr *parsererror.DocumentError
		if len(errs) == 1 && errors.As(lastErr, &docErr) {
			return out, lastErr
		}
		return out, &parsererror.DocumentError{FilePath: path, Err: errors.Join(errs...)}
	}
	return out, nil
}
