// Package factory routes statement documents to the issuer extractor that
// understands them, using an explicit priority list of account-family tags.
package factory

import (
	"fmt"
	"strings"

	"fjacquet/card-recon/internal/issuer"
	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/parsererror"
)

// Registry maps account-family tags to compiled extractors. Tags are tried
// in registration order, so more specific families must be registered first.
type Registry struct {
	logger     logging.Logger
	extractors []*issuer.Extractor
	byTag      map[string]*issuer.Extractor
}

// NewRegistry compiles dialects in priority order.
func NewRegistry(dialects []issuer.Dialect, logger logging.Logger) (*Registry, error) {
	r := &Registry{logger: logger, byTag: make(map[string]*issuer.Extractor, len(dialects))}
	for _, d := range dialects {
		if _, dup := r.byTag[d.Tag]; dup {
			return nil, fmt.Errorf("duplicate issuer tag: %s", d.Tag)
		}
		e, err := issuer.Compile(d)
		if err != nil {
			return nil, err
		}
		r.extractors = append(r.extractors, e)
		r.byTag[d.Tag] = e
	}
	return r, nil
}

// NewDefaultRegistry returns a registry over the built-in dialects.
func NewDefaultRegistry(logger logging.Logger) *Registry {
	r, err := NewRegistry(issuer.Builtin(), logger)
	if err != nil {
		panic(fmt.Sprintf("built-in dialects are invalid: %v", err))
	}
	return r
}

// Resolve returns the extractor of the first tag whose path tokens all occur
// in the normalized path, or ErrNoRoute.
func (r *Registry) Resolve(path string) (*issuer.Extractor, error) {
	normalized := issuer.NormalizePath(path)
	for _, e := range r.extractors {
		if matchesAll(normalized, e.Dialect().PathTokens) {
			r.logger.Debug("Resolved issuer",
				logging.F(logging.FieldFile, path),
				logging.F(logging.FieldIssuer, e.Tag()))
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", parsererror.ErrNoRoute, path)
}

// GetExtractor returns the extractor registered under tag.
func (r *Registry) GetExtractor(tag string) (*issuer.Extractor, error) {
	e, ok := r.byTag[tag]
	if !ok {
		return nil, fmt.Errorf("unknown issuer tag: %s", tag)
	}
	return e, nil
}

// Tags lists the registered tags in priority order.
func (r *Registry) Tags() []string {
	tags := make([]string, len(r.extractors))
	for i, e := range r.extractors {
		tags[i] = e.Tag()
	}
	return tags
}

func matchesAll(path string, tokens []string) bool {
	for _, t := range tokens {
		if !strings.Contains(path, strings.ToLower(t)) {
			return false
		}
	}
	return len(tokens) > 0
}
