// Package textutils provides description cleaning and keyword matching helpers.
package textutils

import (
	"regexp"
	"strings"
)

// DefaultCategoryCodes are merchant-category labels some issuers print inline
// after the merchant name.
var DefaultCategoryCodes = []string{"TRANSPORT", "HOTELS", "MERCHANT CATEGORY"}

var (
	artifactReplacer = strings.NewReplacer("|", " ", "_", " ", "*", " ")
	whitespace       = regexp.MustCompile(`\s+`)
	ocrDecimal       = regexp.MustCompile(`(\d)[;:](\d{2})\b`)
	defaultCodes     = codePattern(DefaultCategoryCodes)
)

// CleanDescription removes pipe, underscore and asterisk artifacts, strips the
// default category-code tokens, collapses whitespace and trims.
func CleanDescription(text string) string {
	return cleanWith(text, defaultCodes)
}

// CleanDescriptionWith is CleanDescription with a custom category-code list.
func CleanDescriptionWith(text string, codes []string) string {
	return cleanWith(text, codePattern(codes))
}

func cleanWith(text string, codes *regexp.Regexp) string {
	text = artifactReplacer.Replace(text)
	if codes != nil {
		text = codes.ReplaceAllString(text, " ")
	}
	return NormalizeWhitespace(text)
}

func codePattern(codes []string) *regexp.Regexp {
	if len(codes) == 0 {
		return nil
	}
	quoted := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			quoted = append(quoted, regexp.QuoteMeta(c))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// NormalizeWhitespace collapses runs of whitespace into one space and trims.
func NormalizeWhitespace(text string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

// SanitizeOCRAmounts repairs decimal points that OCR read as ';' or ':'
// between digits, e.g. "741;00" -> "741.00".
func SanitizeOCRAmounts(text string) string {
	return ocrDecimal.ReplaceAllString(text, "$1.$2")
}

// ContainsAny reports whether the upper-cased text contains any of keywords.
// Keywords are compared upper-cased.
func ContainsAny(text string, keywords []string) bool {
	_, ok := LongestMatch(text, keywords)
	return ok
}

// LongestMatch returns the index of the longest keyword contained in the
// upper-cased text. Ties go to the earliest keyword.
func LongestMatch(text string, keywords []string) (int, bool) {
	upper := strings.ToUpper(text)
	best, bestLen := -1, 0
	for i, kw := range keywords {
		kw = strings.ToUpper(strings.TrimSpace(kw))
		if kw == "" || len(kw) <= bestLen {
			continue
		}
		if strings.Contains(upper, kw) {
			best, bestLen = i, len(kw)
		}
	}
	return best, best >= 0
}
