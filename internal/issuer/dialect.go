// Package issuer describes each card issuer's statement layout as declarative
// configuration (a Dialect) and compiles it into an Extractor that turns
// document text or tables into raw transaction tokens.
package issuer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/card-recon/internal/parsererror"
)

// Stage names one extraction technique of the fallback cascade.
type Stage string

// Extraction stages, cheapest first.
const (
	StageDirectText      Stage = "DirectText"
	StageStructuredTable Stage = "StructuredTable"
	StageOpticalScan     Stage = "OpticalScan"
)

// Rank orders stages for the cascade; unknown stages rank last.
func (s Stage) Rank() int {
	switch s {
	case StageDirectText:
		return 0
	case StageStructuredTable:
		return 1
	case StageOpticalScan:
		return 2
	}
	return 3
}

// ScanMode selects how transaction lines are located.
type ScanMode string

const (
	// ScanPattern applies LinePattern across the whole text.
	ScanPattern ScanMode = "pattern"
	// ScanMaxAmount treats every line holding a date as a transaction whose
	// amount is the largest amount on the line.
	ScanMaxAmount ScanMode = "max-amount"
)

// Dialect is the declarative description of one statement family.
type Dialect struct {
	Tag string `yaml:"tag"`
	// PathTokens must all occur in the normalized document path for the dialect to apply.
	PathTokens []string `yaml:"path_tokens"`
	// Account is the label used when no AccountRule matches.
	Account      string        `yaml:"account"`
	AccountRules []AccountRule `yaml:"account_rules,omitempty"`

	Scan ScanMode `yaml:"scan,omitempty"`
	// LinePattern uses the named groups date, desc, amount and dir.
	LinePattern string `yaml:"line_pattern,omitempty"`
	// CreditMarker flags a credit line in ScanMaxAmount mode.
	CreditMarker string   `yaml:"credit_marker,omitempty"`
	DateLayouts  []string `yaml:"date_layouts"`

	DescriptionPrefix string   `yaml:"description_prefix,omitempty"`
	CategoryCodes     []string `yaml:"category_codes,omitempty"`
	StripPatterns     []string `yaml:"strip_patterns,omitempty"`

	PeriodRules []PeriodRule `yaml:"period_rules,omitempty"`
	Table       *TableRule   `yaml:"table,omitempty"`
	Stages      []Stage      `yaml:"stages"`

	// MinTextLength below which direct text is treated as an image-only document.
	MinTextLength int `yaml:"min_text_length,omitempty"`
}

// AccountRule refines the account label from the path or the document text.
// PathToken is matched against the normalized path, ContentToken
// case-sensitively against the text.
type AccountRule struct {
	PathToken    string `yaml:"path_token,omitempty"`
	ContentToken string `yaml:"content_token,omitempty"`
	Account      string `yaml:"account"`
}

// PeriodRule locates the statement date. The last capture group holds the
// date, parsed with Layouts. Within limits the search to the first N characters.
type PeriodRule struct {
	Pattern    string   `yaml:"pattern"`
	Layouts    []string `yaml:"layouts"`
	Within     int      `yaml:"within,omitempty"`
	IgnoreCase bool     `yaml:"ignore_case,omitempty"`
}

// TableRule describes transaction rows of structured tables: the first cell
// is the date, the second the description, the last the amount with its
// direction marker.
type TableRule struct {
	MinCells     int      `yaml:"min_cells"`
	DatePattern  string   `yaml:"date_pattern"`
	HeaderTokens []string `yaml:"header_tokens,omitempty"`
}

// Validate checks that the dialect is complete and its patterns compile.
func (d Dialect) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return &parsererror.ValidationError{FilePath: "dialect " + d.Tag, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(d.Tag) == "" {
		return fail("tag is required")
	}
	if len(d.PathTokens) == 0 {
		return fail("at least one path token is required")
	}
	if strings.TrimSpace(d.Account) == "" {
		return fail("account is required")
	}
	if len(d.Stages) == 0 {
		return fail("at least one stage is required")
	}
	for _, s := range d.Stages {
		if s.Rank() > 2 {
			return fail("unknown stage %q", s)
		}
	}

	switch d.scanMode() {
	case ScanPattern:
		re, err := regexp.Compile(d.LinePattern)
		if err != nil {
			return fail("line pattern: %v", err)
		}
		for _, group := range []string{"date", "desc", "amount", "dir"} {
			if re.SubexpIndex(group) < 0 {
				return fail("line pattern lacks named group %q", group)
			}
		}
	case ScanMaxAmount:
	default:
		return fail("unknown scan mode %q", d.Scan)
	}

	for _, p := range d.StripPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fail("strip pattern %q: %v", p, err)
		}
	}
	for _, r := range d.PeriodRules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return fail("period pattern %q: %v", r.Pattern, err)
		}
		if re.NumSubexp() == 0 {
			return fail("period pattern %q has no capture group", r.Pattern)
		}
	}
	if d.Table != nil {
		if _, err := regexp.Compile(d.Table.DatePattern); err != nil {
			return fail("table date pattern: %v", err)
		}
	}
	return nil
}

func (d Dialect) scanMode() ScanMode {
	if d.Scan == "" {
		return ScanPattern
	}
	return d.Scan
}

// HasStage reports whether s is enabled for the dialect.
func (d Dialect) HasStage(s Stage) bool {
	for _, st := range d.Stages {
		if st == s {
			return true
		}
	}
	return false
}
