package issuer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/card-recon/internal/currencyutils"
	"fjacquet/card-recon/internal/dateutils"
	"fjacquet/card-recon/internal/models"
	"fjacquet/card-recon/internal/normalizer"
	"fjacquet/card-recon/internal/pdfparser"
	"fjacquet/card-recon/internal/textutils"

	"github.com/shopspring/decimal"
)

// DefaultMinTextLength is the direct-text length under which a document is
// considered image-only.
const DefaultMinTextLength = 100

var (
	scanDate       = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)
	scanAmount     = regexp.MustCompile(`[\d,]+\.\d{2}`)
	scanSerial     = regexp.MustCompile(`\b\d{10,}\b`)
	scanPoints     = regexp.MustCompile(`\s+\d{1,4}\s+`)
	scanNegPoints  = regexp.MustCompile(`\s+-\d{1,4}\s+`)
	tableDirection = regexp.MustCompile(`(?i)\b(Dr|Cr)\b`)
)

type periodMatcher struct {
	re      *regexp.Regexp
	layouts []string
	within  int
}

// Extractor is a compiled Dialect.
type Extractor struct {
	dialect Dialect

	line          *regexp.Regexp
	dateIdx       int
	descIdx       int
	amountIdx     int
	dirIdx        int
	strip         []*regexp.Regexp
	credit        *regexp.Regexp
	periods       []periodMatcher
	tableDate     *regexp.Regexp
	minTextLen    int
	categoryCodes []string
}

// Compile validates d and prepares its patterns.
func Compile(d Dialect) (*Extractor, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	e := &Extractor{dialect: d, minTextLen: d.MinTextLength, categoryCodes: d.CategoryCodes}
	if e.minTextLen == 0 {
		e.minTextLen = DefaultMinTextLength
	}

	if d.scanMode() == ScanPattern {
		e.line = regexp.MustCompile(d.LinePattern)
		e.dateIdx = e.line.SubexpIndex("date")
		e.descIdx = e.line.SubexpIndex("desc")
		e.amountIdx = e.line.SubexpIndex("amount")
		e.dirIdx = e.line.SubexpIndex("dir")
	}
	if marker := strings.TrimSpace(d.CreditMarker); marker != "" {
		e.credit = regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(marker) + `(\s|$)`)
	}
	for _, p := range d.StripPatterns {
		e.strip = append(e.strip, regexp.MustCompile(p))
	}
	for _, r := range d.PeriodRules {
		pattern := r.Pattern
		if r.IgnoreCase {
			pattern = "(?i)" + pattern
		}
		e.periods = append(e.periods, periodMatcher{re: regexp.MustCompile(pattern), layouts: r.Layouts, within: r.Within})
	}
	if d.Table != nil {
		e.tableDate = regexp.MustCompile(d.Table.DatePattern)
	}
	return e, nil
}

// MustCompile is Compile that panics on invalid dialects. Used for built-ins.
func MustCompile(d Dialect) *Extractor {
	e, err := Compile(d)
	if err != nil {
		panic(fmt.Sprintf("issuer: %v", err))
	}
	return e
}

// Dialect returns the dialect the extractor was compiled from.
func (e *Extractor) Dialect() Dialect { return e.dialect }

// Tag returns the dialect tag.
func (e *Extractor) Tag() string { return e.dialect.Tag }

// FromText locates transaction lines in direct text. Text shorter than the
// minimum length yields nothing so the cascade moves on.
func (e *Extractor) FromText(text string) []models.RawToken {
	if len(strings.TrimSpace(text)) < e.minTextLen {
		return nil
	}
	return e.scan(text)
}

// FromOCR locates transaction lines in OCR text after repairing misread
// decimal points.
func (e *Extractor) FromOCR(text string) []models.RawToken {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return e.scan(textutils.SanitizeOCRAmounts(text))
}

func (e *Extractor) scan(text string) []models.RawToken {
	if e.dialect.scanMode() == ScanMaxAmount {
		return e.scanMaxAmount(text)
	}

	var tokens []models.RawToken
	for _, m := range e.line.FindAllStringSubmatch(text, -1) {
		tokens = append(tokens, models.RawToken{
			Date:        m[e.dateIdx],
			Description: e.dialect.DescriptionPrefix + m[e.descIdx],
			Amount:      m[e.amountIdx],
			Direction:   m[e.dirIdx],
		})
	}
	return tokens
}

// scanMaxAmount handles layouts whose columns do not survive extraction:
// any line with a date is a transaction, its largest amount is the charge
// and the residue is the description.
func (e *Extractor) scanMaxAmount(text string) []models.RawToken {
	var tokens []models.RawToken
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		date := scanDate.FindString(line)
		if date == "" {
			continue
		}

		amounts := scanAmount.FindAllString(line, -1)
		best := ""
		var bestVal decimal.Decimal
		for _, a := range amounts {
			v, err := currencyutils.ParseAmount(a)
			if err != nil {
				continue
			}
			if best == "" || v.GreaterThan(bestVal) {
				best, bestVal = a, v
			}
		}
		if best == "" {
			continue
		}

		// The marker is a standalone token; "CRED CLUB" is not a credit.
		credit := e.credit != nil && e.credit.MatchString(line)

		desc := strings.ReplaceAll(line, date, "")
		if credit {
			desc = e.credit.ReplaceAllString(desc, " ")
		}
		desc = scanSerial.ReplaceAllString(desc, "")
		for _, a := range amounts {
			desc = strings.ReplaceAll(desc, a, "")
		}
		desc = scanPoints.ReplaceAllString(desc, " ")
		desc = scanNegPoints.ReplaceAllString(desc, " ")
		desc = textutils.NormalizeWhitespace(desc)
		if len(desc) < 3 {
			continue
		}

		direction := string(models.DirectionDebit)
		if credit {
			direction = string(models.DirectionCredit)
		}
		tokens = append(tokens, models.RawToken{
			Date:        date,
			Description: e.dialect.DescriptionPrefix + desc,
			Amount:      best,
			Direction:   direction,
		})
	}
	return tokens
}

// FromTables reads transaction rows from structured page tables.
// Dialects without a table rule yield nothing.
func (e *Extractor) FromTables(tables []pdfparser.Table) []models.RawToken {
	rule := e.dialect.Table
	if rule == nil {
		return nil
	}

	var tokens []models.RawToken
	for _, table := range tables {
		for _, row := range table {
			if len(row) < rule.MinCells {
				continue
			}
			date := strings.TrimSpace(row[0])
			amountCell := strings.TrimSpace(row[len(row)-1])
			if date == "" || amountCell == "" || isHeader(date, rule.HeaderTokens) {
				continue
			}
			if !e.tableDate.MatchString(date) {
				continue
			}

			direction := string(models.DirectionDebit)
			if m := tableDirection.FindStringSubmatch(amountCell); m != nil && strings.EqualFold(m[1], "Cr") {
				direction = string(models.DirectionCredit)
			}
			amount := strings.TrimSpace(tableDirection.ReplaceAllString(amountCell, ""))
			if _, err := currencyutils.ParseAmount(amount); err != nil {
				continue
			}

			tokens = append(tokens, models.RawToken{
				Date:        date,
				Description: e.dialect.DescriptionPrefix + strings.TrimSpace(row[1]),
				Amount:      amount,
				Direction:   direction,
			})
		}
	}
	return tokens
}

func isHeader(cell string, tokens []string) bool {
	upper := strings.ToUpper(cell)
	for _, t := range tokens {
		if strings.Contains(upper, strings.ToUpper(t)) {
			return true
		}
	}
	return false
}

// Period returns the statement period (e.g. "Dec-25") found in text, trying
// each period rule in order, or "" when none matches.
func (e *Extractor) Period(text string) string {
	norm := textutils.NormalizeWhitespace(text)
	for _, p := range e.periods {
		haystack := norm
		if p.within > 0 && len(haystack) > p.within {
			haystack = haystack[:p.within]
		}
		m := p.re.FindStringSubmatch(haystack)
		if m == nil {
			continue
		}
		date, err := dateutils.ParseDate(m[len(m)-1], p.layouts...)
		if err != nil {
			continue
		}
		return dateutils.FormatPeriod(date)
	}
	return ""
}

// Account resolves the account label from the path and document text.
func (e *Extractor) Account(path, text string) string {
	normalized := NormalizePath(path)
	for _, r := range e.dialect.AccountRules {
		if r.PathToken != "" && strings.Contains(normalized, strings.ToLower(r.PathToken)) {
			return r.Account
		}
		if r.ContentToken != "" && strings.Contains(text, r.ContentToken) {
			return r.Account
		}
	}
	return e.dialect.Account
}

// CleanDescription applies the dialect's description cleaning.
func (e *Extractor) CleanDescription(desc string) string {
	for _, re := range e.strip {
		desc = re.ReplaceAllString(desc, "")
	}
	return textutils.CleanDescriptionWith(desc, e.categoryCodes)
}

// NormalizerContext returns the normalization context for one document.
func (e *Extractor) NormalizerContext(account, period string) normalizer.Context {
	return normalizer.Context{
		Account:     account,
		Period:      period,
		DateLayouts: e.dialect.DateLayouts,
		Clean:       e.CleanDescription,
	}
}

// NormalizePath lower-cases path and turns '_', '-' and '.' into spaces so
// path tokens like "uni gold" match "Uni_Gold_Card".
func NormalizePath(path string) string {
	return strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(strings.ToLower(path))
}
