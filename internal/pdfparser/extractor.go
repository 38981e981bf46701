// Package pdfparser supplies the content of statement documents: page text,
// page tables and OCR text. Callers depend on the Provider interface so tests
// can substitute MockProvider.
package pdfparser

import "context"

// Table is one page's rows of cells, top to bottom, left to right.
type Table [][]string

// Provider defines the document-content boundary of the pipeline.
// All three methods are pure functions of the document path.
type Provider interface {
	// Text returns the concatenated page text of the document.
	Text(ctx context.Context, path string) (string, error)
	// Tables returns the row/cell structure of each page.
	Tables(ctx context.Context, path string) ([]Table, error)
	// OCRText returns text recognized from rendered page images.
	OCRText(ctx context.Context, path string) (string, error)
}

// MockDocument is the canned content MockProvider returns for one path.
type MockDocument struct {
	Text      string
	Tables    []Table
	OCRText   string
	TextErr   error
	TablesErr error
	OCRErr    error
}

// MockProvider implements Provider for testing purposes.
// It records how many times each method was called.
type MockProvider struct {
	Documents map[string]MockDocument
	Calls     map[string]int
}

// NewMockProvider creates a MockProvider serving docs.
func NewMockProvider(docs map[string]MockDocument) *MockProvider {
	if docs == nil {
		docs = map[string]MockDocument{}
	}
	return &MockProvider{Documents: docs, Calls: map[string]int{}}
}

func (m *MockProvider) doc(method, path string) MockDocument {
	if m.Calls == nil {
		m.Calls = map[string]int{}
	}
	m.Calls[method]++
	return m.Documents[path]
}

// Text returns the predefined text or error.
func (m *MockProvider) Text(_ context.Context, path string) (string, error) {
	d := m.doc("Text", path)
	return d.Text, d.TextErr
}

// Tables returns the predefined tables or error.
func (m *MockProvider) Tables(_ context.Context, path string) ([]Table, error) {
	d := m.doc("Tables", path)
	return d.Tables, d.TablesErr
}

// OCRText returns the predefined OCR text or error.
func (m *MockProvider) OCRText(_ context.Context, path string) (string, error) {
	d := m.doc("OCRText", path)
	return d.OCRText, d.OCRErr
}
