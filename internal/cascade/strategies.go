package cascade

import (
	"context"

	"fjacquet/card-recon/internal/issuer"
	"fjacquet/card-recon/internal/pdfparser"
)

type strategyFunc struct {
	stage issuer.Stage
	fn    func(ctx context.Context, path string) (Result, error)
}

func (s strategyFunc) Stage() issuer.Stage { return s.stage }

func (s strategyFunc) Extract(ctx context.Context, path string) (Result, error) {
	return s.fn(ctx, path)
}

// NewStrategy adapts a function to the Strategy interface.
func NewStrategy(stage issuer.Stage, fn func(ctx context.Context, path string) (Result, error)) Strategy {
	return strategyFunc{stage: stage, fn: fn}
}

// Strategies returns the strategies enabled by ext's dialect, reading
// document content from p.
func Strategies(ext *issuer.Extractor, p pdfparser.Provider) []Strategy {
	var out []Strategy
	d := ext.Dialect()

	if d.HasStage(issuer.StageDirectText) {
		out = append(out, NewStrategy(issuer.StageDirectText, func(ctx context.Context, path string) (Result, error) {
			text, err := p.Text(ctx, path)
			if err != nil {
				return Result{}, err
			}
			return Result{Tokens: ext.FromText(text), Source: text}, nil
		}))
	}

	if d.HasStage(issuer.StageStructuredTable) && d.Table != nil {
		out = append(out, NewStrategy(issuer.StageStructuredTable, func(ctx context.Context, path string) (Result, error) {
			tables, err := p.Tables(ctx, path)
			if err != nil {
				return Result{}, err
			}
			res := Result{Tokens: ext.FromTables(tables)}
			// Period and account still come from the linear text when it exists.
			if text, textErr := p.Text(ctx, path); textErr == nil {
				res.Source = text
			}
			return res, nil
		}))
	}

	if d.HasStage(issuer.StageOpticalScan) {
		out = append(out, NewStrategy(issuer.StageOpticalScan, func(ctx context.Context, path string) (Result, error) {
			text, err := p.OCRText(ctx, path)
			if err != nil {
				return Result{}, err
			}
			return Result{Tokens: ext.FromOCR(text), Source: text}, nil
		}))
	}

	return out
}
