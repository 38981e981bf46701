package pdfparser

import (
	"context"
	"sync"
)

type cached[T any] struct {
	val T
	err error
}

// CachingProvider memoizes another Provider per document path so the
// cascade and the statement-total extractor share one read of each source.
type CachingProvider struct {
	inner Provider

	mu     sync.Mutex
	text   map[string]cached[string]
	tables map[string]cached[[]Table]
	ocr    map[string]cached[string]
}

// NewCachingProvider wraps inner.
func NewCachingProvider(inner Provider) *CachingProvider {
	return &CachingProvider{
		inner:  inner,
		text:   map[string]cached[string]{},
		tables: map[string]cached[[]Table]{},
		ocr:    map[string]cached[string]{},
	}
}

func memo[T any](mu *sync.Mutex, m map[string]cached[T], path string, load func() (T, error)) (T, error) {
	mu.Lock()
	defer mu.Unlock()
	if c, ok := m[path]; ok {
		return c.val, c.err
	}
	v, err := load()
	m[path] = cached[T]{val: v, err: err}
	return v, err
}

func (c *CachingProvider) Text(ctx context.Context, path string) (string, error) {
	return memo(&c.mu, c.text, path, func() (string, error) { return c.inner.Text(ctx, path) })
}

func (c *CachingProvider) Tables(ctx context.Context, path string) ([]Table, error) {
	return memo(&c.mu, c.tables, path, func() ([]Table, error) { return c.inner.Tables(ctx, path) })
}

func (c *CachingProvider) OCRText(ctx context.Context, path string) (string, error) {
	return memo(&c.mu, c.ocr, path, func() (string, error) { return c.inner.OCRText(ctx, path) })
}

// Forget drops everything cached for path.
func (c *CachingProvider) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.text, path)
	delete(c.tables, path)
	delete(c.ocr, path)
}
