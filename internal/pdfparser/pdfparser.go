package pdfparser

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// columnGap is the horizontal distance, in points, that separates two table cells.
const columnGap = 15.0

// Options tune the real provider.
type Options struct {
	OCREnabled        bool
	OCRLanguage       string
	OCRDPI            int
	PdftotextFallback bool
}

// RealProvider reads documents with github.com/ledongthuc/pdf and the
// poppler/tesseract command-line tools.
type RealProvider struct {
	logger logging.Logger
	opts   Options
}

// NewRealProvider creates a RealProvider.
func NewRealProvider(logger logging.Logger, opts Options) *RealProvider {
	if opts.OCRLanguage == "" {
		opts.OCRLanguage = "eng"
	}
	if opts.OCRDPI == 0 {
		opts.OCRDPI = 300
	}
	return &RealProvider{logger: logger, opts: opts}
}

// Text extracts page text with the PDF library, falling back to pdftotext
// when the library fails and the fallback is enabled.
func (p *RealProvider) Text(ctx context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &parsererror.DocumentError{FilePath: path, Stage: "open", Err: err}
	}

	pages, libErr := readRows(path)
	if libErr == nil {
		return strings.Join(pages, "\n"), nil
	}
	p.logger.WithError(libErr).Debug("PDF library could not read document",
		logging.Field{Key: logging.FieldFile, Value: path})

	if !p.opts.PdftotextFallback {
		return "", &parsererror.DocumentError{FilePath: path, Stage: "text", Err: libErr}
	}

	text, err := pdftotext(ctx, path)
	if err != nil {
		return "", &parsererror.DocumentError{FilePath: path, Stage: "text", Err: fmt.Errorf("%v; %w", libErr, err)}
	}
	return text, nil
}

// Tables reconstructs each page's rows from positioned text, splitting
// cells where the horizontal gap exceeds columnGap.
func (p *RealProvider) Tables(_ context.Context, path string) (tables []Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &parsererror.DocumentError{FilePath: path, Stage: "tables", Err: fmt.Errorf("PDF library crashed: %v", r)}
		}
	}()

	f, r, openErr := pdf.Open(path)
	if openErr != nil {
		return nil, &parsererror.DocumentError{FilePath: path, Stage: "tables", Err: openErr}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.logger.WithError(cerr).Warn("Failed to close document",
				logging.Field{Key: logging.FieldFile, Value: path})
		}
	}()

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		if table := tableFromContent(page.Content().Text); len(table) > 0 {
			tables = append(tables, table)
		}
	}
	return tables, nil
}

// OCRText renders every page with pdftoppm and recognizes it with tesseract.
// With OCR disabled it returns empty text.
func (p *RealProvider) OCRText(ctx context.Context, path string) (string, error) {
	if !p.opts.OCREnabled {
		p.logger.Debug("OCR disabled, skipping optical scan",
			logging.Field{Key: logging.FieldFile, Value: path})
		return "", nil
	}
	for _, tool := range []string{"pdftoppm", "tesseract"} {
		if _, err := exec.LookPath(tool); err != nil {
			return "", &parsererror.DocumentError{FilePath: path, Stage: "ocr", Err: fmt.Errorf("%s not available: %w", tool, err)}
		}
	}

	tmpDir, err := os.MkdirTemp("", "card-recon-ocr-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			p.logger.WithError(err).Warn("Failed to remove OCR temp dir")
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	// #nosec G204 -- arguments are a user-provided document path and fixed flags
	cmd := exec.CommandContext(ctx, "pdftoppm", "-r", strconv.Itoa(p.opts.OCRDPI), "-png", path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", &parsererror.DocumentError{FilePath: path, Stage: "ocr", Err: fmt.Errorf("pdftoppm failed: %w (output: %s)", err, out)}
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil || len(images) == 0 {
		return "", &parsererror.DocumentError{FilePath: path, Stage: "ocr", Err: fmt.Errorf("pdftoppm produced no page images")}
	}
	sort.Strings(images)

	var pages []string
	for _, img := range images {
		outBase := strings.TrimSuffix(img, ".png") + "-ocr"
		// #nosec G204 -- image paths are generated in our temp dir
		cmd := exec.CommandContext(ctx, "tesseract", img, outBase, "-l", p.opts.OCRLanguage, "--psm", "4")
		if out, err := cmd.CombinedOutput(); err != nil {
			p.logger.WithError(err).Warn("tesseract failed on page image",
				logging.Field{Key: logging.FieldFile, Value: img},
				logging.Field{Key: "output", Value: string(out)})
			continue
		}
		data, err := os.ReadFile(outBase + ".txt") // #nosec G304 -- generated path
		if err != nil {
			continue
		}
		if text := strings.TrimSpace(string(data)); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

func readRows(path string) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		lines := make([]string, 0, len(rows))
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			if line := strings.TrimSpace(strings.Join(words, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}

	if len(pages) == 0 {
		plain, err := r.GetPlainText()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(plain)
		if err != nil {
			return nil, err
		}
		pages = append(pages, string(data))
	}
	return pages, nil
}

// tableFromContent groups positioned text into rows by Y (top to bottom)
// and cells by X gaps.
func tableFromContent(texts []pdf.Text) Table {
	type item struct {
		x, w float64
		s    string
	}
	rows := make(map[int][]item)
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		y := int(math.Round(t.Y))
		rows[y] = append(rows[y], item{x: t.X, w: t.W, s: t.S})
	}

	ys := make([]int, 0, len(rows))
	for y := range rows {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	var table Table
	for _, y := range ys {
		items := rows[y]
		sort.Slice(items, func(a, b int) bool { return items[a].x < items[b].x })

		var cells []string
		var cell strings.Builder
		end := 0.0
		for i, it := range items {
			if i > 0 && it.x-end > columnGap {
				cells = appendCell(cells, cell.String())
				cell.Reset()
			}
			cell.WriteString(it.s)
			end = it.x + it.w
		}
		cells = appendCell(cells, cell.String())
		if len(cells) > 0 {
			table = append(table, cells)
		}
	}
	return table
}

func appendCell(cells []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(cells, s)
	}
	return cells
}

func pdftotext(ctx context.Context, path string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}
	// #nosec G204 -- CLI tool requires user-provided file paths
	out, err := exec.CommandContext(ctx, "pdftotext", "-layout", path, "-").Output()
	if err != nil {
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	return string(out), nil
}
