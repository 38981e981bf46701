// Package dateutils provides the date parsing and statement-period helpers used
// by the issuer dialects.
package dateutils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"fjacquet/card-recon/internal/parsererror"
)

// Date layouts found on statements.
const (
	LayoutDayMonthYear      = "02/01/2006"
	LayoutDayMonthShortYear = "02/01/06"
	LayoutDayMonYY          = "02 Jan 06"
	LayoutDayMonYYYY        = "02 Jan 2006"
	LayoutDayDashMonYY      = "02-Jan-06"
	LayoutDayDashMonYYYY    = "02-Jan-2006"
	LayoutDaySlashMonYYYY   = "02/Jan/2006"
	LayoutDayMonCommaYYYY   = "2 Jan, 2006"
	LayoutMonthDayYYYY      = "January 2, 2006"
	LayoutMonDayYYYY        = "Jan 2, 2006"

	// PeriodLayout renders a statement period, e.g. "Dec-25".
	PeriodLayout = "Jan-06"
)

// DefaultLayouts is tried when a caller supplies no format hints.
var DefaultLayouts = []string{
	LayoutDayMonthYear,
	LayoutDayMonthShortYear,
	LayoutDayMonYY,
	LayoutDayMonYYYY,
	LayoutDayDashMonYY,
	LayoutDayDashMonYYYY,
	LayoutDaySlashMonYYYY,
	LayoutDayMonCommaYYYY,
	LayoutMonthDayYYYY,
	LayoutMonDayYYYY,
}

var whitespace = regexp.MustCompile(`\s+`)

// ParseDate tries each layout hint in order and returns the first success.
// Without hints DefaultLayouts is used. Failure wraps ErrUnparsableDate.
func ParseDate(dateStr string, hints ...string) (time.Time, error) {
	cleaned := CleanDateString(dateStr)
	layouts := hints
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, nil
		}
	}

	return time.Time{}, &parsererror.ParseError{
		Parser: "date",
		Field:  "date",
		Value:  dateStr,
		Err:    parsererror.ErrUnparsableDate,
	}
}

// CleanDateString collapses whitespace and normalizes comma spacing.
func CleanDateString(dateStr string) string {
	s := whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
	return strings.ReplaceAll(s, " ,", ",")
}

// FormatPeriod renders the year-month bucket of t, e.g. "Dec-25".
func FormatPeriod(t time.Time) string {
	return t.Format(PeriodLayout)
}

var (
	monthYearPattern = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*[- ]?(\d{4}|\d{2})`)
	monthOnlyPattern = regexp.MustCompile(`(?i)^(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)$`)
	fullMonthPattern = regexp.MustCompile(`(?i)(january|february|march|april|may|june|july|august|september|october|november|december)`)
	yearPattern      = regexp.MustCompile(`20\d{2}`)
)

// PeriodFromPath derives a statement period from a document path when the
// document text carries none. It tries, in order: a "Mon-YY"/"Mon YYYY" token
// in the file name, a bare month file name with a year in a parent folder,
// a full month name in the file name, then "Mon-YY" in any folder name.
// The year defaults to now's year when only a month is known.
// Returns "" when nothing matches.
func PeriodFromPath(path string, now time.Time) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	parts := strings.Split(filepath.ToSlash(filepath.Dir(path)), "/")

	if p, ok := monthYear(stem); ok {
		return p
	}

	if m := monthOnlyPattern.FindStringSubmatch(stem); m != nil {
		return periodOf(m[1], yearFromParts(parts, now))
	}

	if m := fullMonthPattern.FindStringSubmatch(stem); m != nil {
		year := fmt.Sprint(now.Year())
		if y := yearPattern.FindString(stem); y != "" {
			year = y
		}
		return periodOf(m[1][:3], year)
	}

	for i := len(parts) - 1; i >= 0; i-- {
		if p, ok := monthYear(parts[i]); ok {
			return p
		}
	}
	return ""
}

func monthYear(s string) (string, bool) {
	m := monthYearPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	year := m[2]
	if len(year) == 2 {
		year = "20" + year
	}
	return periodOf(m[1], year), true
}

func yearFromParts(parts []string, now time.Time) string {
	for _, part := range parts {
		if y := yearPattern.FindString(part); y != "" {
			return y
		}
	}
	return fmt.Sprint(now.Year())
}

func periodOf(month, year string) string {
	t, err := time.Parse("Jan 2006", strings.ToUpper(month[:1])+strings.ToLower(month[1:3])+" "+year)
	if err != nil {
		return ""
	}
	return FormatPeriod(t)
}
