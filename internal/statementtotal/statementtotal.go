// Package statementtotal scrapes the issuer-reported "amount due" figure from
// the free-form summary text of a statement.
package statementtotal

import (
	"context"
	"regexp"
	"strings"

	"fjacquet/card-recon/internal/logging"
	"fjacquet/card-recon/internal/pdfparser"
	"fjacquet/card-recon/internal/textutils"

	"github.com/shopspring/decimal"
)

// Default search parameters.
const (
	DefaultMinAmount        = 100
	DefaultZoneCap          = 200
	DefaultDistractorWindow = 40
)

const labelTotalPaymentDue = "Total Payment Due"

var (
	startLabels = compileAll(
		`PAYMENT SUMMARY`,
		`STATEMENT SUMMARY`,
		`SUMMARY AS BILLED`,
		`STATEMENT AT A GLANCE`,
		`THIS MONTH'S STATEMENT AT A GLANCE`,
	)
	endLabels = compileAll(
		`ACCOUNT SUMMARY`,
		`TRANSACTION DETAILS`,
		`CREDIT SUMMARY`,
		`SPENDS OVERVIEW`,
	)
	stopTokens = compileAll(
		`CREDIT LIMIT`,
		`AVAILABLE CREDIT`,
		`CASH LIMIT`,
		`PAYMENT DUE DATE`,
		`MINIMUM PAYMENT DUE`,
		`STATEMENT PERIOD`,
		`DUE DATE`,
		`PREVIOUS BALANCE`,
		`ACCOUNT SUMMARY`,
	)

	// amountLabels are tried in priority order.
	amountLabels = []label{
		{name: labelTotalPaymentDue, re: ci(`Total Payment Due`)},
		{name: "Total Amount Due", re: ci(`Total Amount Due`)},
		{name: "Billed Amount", re: ci(`Billed Amount`)},
		{name: "Purchases/Debits", re: ci(`Purchases\s*/\s*Debits`)},
	}

	// The glyph class includes ` r R, which OCR produces for the rupee sign.
	amountPattern      = regexp.MustCompile("[`₹rR]?\\s*([0-9][0-9,]*)(?:\\.(\\d{2}))?\\s*(Dr|CR|Cr|DR)?")
	firstAmountPattern = regexp.MustCompile("[`₹rR]?\\s*[0-9][0-9,]*(?:\\.\\d{2})?")

	minimumDue     = ci(`Minimum Payment Due`)
	accountSummary = ci(`ACCOUNT SUMMARY`)
	creditLimit    = ci(`CREDIT LIMIT`)

	yearLow  = decimal.NewFromInt(1900)
	yearHigh = decimal.NewFromInt(2100)
)

type label struct {
	name string
	re   *regexp.Regexp
}

func ci(pattern string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + pattern)
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		out[i] = ci(p)
	}
	return out
}

// Options tunes the search.
type Options struct {
	// MinAmount rejects page numbers and reference codes.
	MinAmount int
	// ZoneCap bounds a candidate zone when no further label follows.
	ZoneCap int
	// DistractorWindow is how far before an amount a CREDIT LIMIT mention
	// disqualifies it.
	DistractorWindow int
}

// DefaultOptions returns the standard search parameters.
func DefaultOptions() Options {
	return Options{
		MinAmount:        DefaultMinAmount,
		ZoneCap:          DefaultZoneCap,
		DistractorWindow: DefaultDistractorWindow,
	}
}

// Extractor finds statement totals in document text.
type Extractor struct {
	provider  pdfparser.Provider
	logger    logging.Logger
	opts      Options
	minAmount decimal.Decimal
}

// New creates an Extractor reading documents through provider. Zero option
// fields take their defaults.
func New(provider pdfparser.Provider, logger logging.Logger, opts Options) *Extractor {
	def := DefaultOptions()
	if opts.MinAmount == 0 {
		opts.MinAmount = def.MinAmount
	}
	if opts.ZoneCap == 0 {
		opts.ZoneCap = def.ZoneCap
	}
	if opts.DistractorWindow == 0 {
		opts.DistractorWindow = def.DistractorWindow
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Extractor{
		provider:  provider,
		logger:    logger,
		opts:      opts,
		minAmount: decimal.NewFromInt(int64(opts.MinAmount)),
	}
}

// Extract returns the amount due of the document at path. The direct text is
// searched first and OCR text second; found is false when neither yields a
// figure. Provider failures are logged, never returned.
func (e *Extractor) Extract(ctx context.Context, path string) (amount decimal.Decimal, found bool) {
	text, err := e.provider.Text(ctx, path)
	if err != nil {
		e.logger.WithError(err).Debug("Direct text unavailable for statement total",
			logging.F(logging.FieldFile, path))
	} else if amount, found = e.FromText(text); found {
		return amount, true
	}

	ocr, err := e.provider.OCRText(ctx, path)
	if err != nil {
		e.logger.WithError(err).Debug("OCR text unavailable for statement total",
			logging.F(logging.FieldFile, path))
		return decimal.Decimal{}, false
	}
	if amount, found = e.FromText(ocr); found {
		e.logger.Debug("Statement total recovered from OCR text",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldAmount, amount.StringFixed(2)))
		return amount, true
	}

	e.logger.Info("No statement total found", logging.F(logging.FieldFile, path))
	return decimal.Decimal{}, false
}

// FromText searches text for the amount due.
func (e *Extractor) FromText(text string) (decimal.Decimal, bool) {
	norm := textutils.NormalizeWhitespace(text)
	block := summaryWindow(norm)
	if !anyLabel(block) {
		block = norm
	}

	for _, l := range amountLabels {
		for _, loc := range l.re.FindAllStringIndex(block, -1) {
			zone := e.zone(block, loc[1])
			if v, ok := e.pick(l, zone); ok {
				return v, true
			}
		}
	}
	return decimal.Decimal{}, false
}

// summaryWindow returns the text between the earliest summary start label
// and the nearest end label after it, or text itself when no start label
// occurs.
func summaryWindow(text string) string {
	start := -1
	for _, re := range startLabels {
		if loc := re.FindStringIndex(text); loc != nil && (start < 0 || loc[0] < start) {
			start = loc[0]
		}
	}
	if start < 0 {
		return text
	}

	end := len(text)
	for _, re := range endLabels {
		if loc := re.FindStringIndex(text[start:]); loc != nil && start+loc[0] < end {
			end = start + loc[0]
		}
	}
	return text[start:end]
}

func anyLabel(text string) bool {
	for _, l := range amountLabels {
		if l.re.MatchString(text) {
			return true
		}
	}
	return false
}

// zone returns the candidate text following a label that ends at from: up to
// the next label occurrence or the zone cap, then cut at the first stop token
// that follows the first amount.
func (e *Extractor) zone(block string, from int) string {
	rest := block[from:]

	next := -1
	for _, l := range amountLabels {
		if loc := l.re.FindStringIndex(rest); loc != nil && (next < 0 || loc[0] < next) {
			next = loc[0]
		}
	}
	var zone string
	switch {
	case next >= 0:
		zone = rest[:next]
	case len(rest) > e.opts.ZoneCap:
		zone = rest[:e.opts.ZoneCap]
	default:
		zone = rest
	}

	first := firstAmountPattern.FindStringIndex(zone)
	if first == nil {
		return zone
	}
	cut := -1
	for _, re := range stopTokens {
		if loc := re.FindStringIndex(zone); loc != nil && loc[0] > first[0] && (cut < 0 || loc[0] < cut) {
			cut = loc[0]
		}
	}
	if cut >= 0 {
		zone = zone[:cut]
	}
	return zone
}

// pick enumerates the plausible amounts of a zone and applies the tie-break.
func (e *Extractor) pick(l label, zone string) (decimal.Decimal, bool) {
	var all, tagged []decimal.Decimal

	for _, m := range amountPattern.FindAllStringSubmatchIndex(zone, -1) {
		digits := strings.ReplaceAll(zone[m[2]:m[3]], ",", "")
		if m[4] >= 0 {
			digits += "." + zone[m[4]:m[5]]
		}
		v, err := decimal.NewFromString(digits)
		if err != nil {
			continue
		}
		if v.LessThan(e.minAmount) {
			continue
		}
		if looksLikeYear(zone, m[0], v) {
			continue
		}
		if creditLimit.MatchString(zone[max(0, m[0]-e.opts.DistractorWindow):m[0]]) {
			continue
		}
		all = append(all, v)
		if m[6] >= 0 {
			tagged = append(tagged, v)
		}
	}

	switch {
	case len(tagged) > 0:
		if l.name == labelTotalPaymentDue && minimumDue.MatchString(zone) {
			return tagged[0], true
		}
		if accountSummary.MatchString(zone) {
			return tagged[len(tagged)-1], true
		}
		return tagged[0], true
	case len(all) > 0:
		return all[0], true
	}
	return decimal.Decimal{}, false
}

func looksLikeYear(zone string, start int, v decimal.Decimal) bool {
	if v.LessThan(yearLow) || v.GreaterThan(yearHigh) {
		return false
	}
	return strings.Contains(zone[max(0, start-2):min(len(zone), start+2)], "/")
}
