package issuer

import "fjacquet/card-recon/internal/textutils"

const (
	dmy        = `\d{2}/\d{2}/\d{4}`
	dMonY      = `\d{1,2}/[A-Za-z]{3}/\d{4}`
	longDate   = `\w+\s+\d+,\s+\d{4}`
	layoutDMY  = "02/01/2006"
	layoutDMon = "2/Jan/2006"
)

var (
	allStages  = []Stage{StageDirectText, StageStructuredTable, StageOpticalScan}
	textAndOCR = []Stage{StageDirectText, StageOpticalScan}
	longDates  = []string{"January 2, 2006", "Jan 2, 2006"}
)

func axisDialect(tag string, tokens []string, account string, rules []AccountRule) Dialect {
	return Dialect{
		Tag:           tag,
		PathTokens:    tokens,
		Account:       account,
		AccountRules:  rules,
		LinePattern:   `(?P<date>` + dmy + `)\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<dir>Dr|Cr)`,
		DateLayouts:   []string{layoutDMY},
		CategoryCodes: append([]string(nil), textutils.DefaultCategoryCodes...),
		PeriodRules: []PeriodRule{
			{Pattern: `Statement Generation Date\s*[:\-]?\s*(` + dmy + `)`, Layouts: []string{layoutDMY}, IgnoreCase: true},
			{Pattern: `Statement Date\s*[:\-]?\s*(` + dmy + `)`, Layouts: []string{layoutDMY}, IgnoreCase: true},
			{Pattern: `Statement Period\s+(` + dmy + `)\s+-\s+(` + dmy + `)`, Layouts: []string{layoutDMY}},
			{Pattern: `(` + dmy + `)\s*[-–]\s*(` + dmy + `)`, Layouts: []string{layoutDMY}},
			{Pattern: `(` + dmy + `)`, Layouts: []string{layoutDMY}, Within: 2000},
		},
		Table: &TableRule{
			MinCells:     4,
			DatePattern:  `^` + dmy,
			HeaderTokens: []string{"DATE", "TRANSACTION"},
		},
		Stages: allStages,
	}
}

// Builtin returns the built-in dialects in routing priority order: more
// specific path tags precede the generic ones they refine.
func Builtin() []Dialect {
	return []Dialect{
		{
			Tag:           "icici-amazon",
			PathTokens:    []string{"icici", "amazon"},
			Account:       "ICICI Amazon Pay CC",
			Scan:          ScanMaxAmount,
			CreditMarker:  " CR",
			DateLayouts:   []string{layoutDMY},
			StripPatterns: []string{`\b\d{11,}\b`},
			PeriodRules: []PeriodRule{
				{Pattern: `Statement period\s*:\s*` + longDate + `\s+to\s+(` + longDate + `)`, Layouts: longDates},
				{Pattern: `STATEMENT DATE\s+(` + longDate + `)`, Layouts: longDates, IgnoreCase: true},
				{Pattern: `Statement.*?Date[:\-]?\s*(` + longDate + `)`, Layouts: longDates, IgnoreCase: true},
			},
			Stages: textAndOCR,
		},
		axisDialect("axis-indian-oil", []string{"axis", "indian oil"}, "Axis Bank Indian Oil CC", nil),
		axisDialect("axis-select", []string{"axis", "select"}, "Axis Bank Select CC", nil),
		axisDialect("axis-rewards", []string{"axis", "rewards"}, "Axis Bank Rewards CC", nil),
		axisDialect("axis", []string{"axis"}, "Axis Bank CC", []AccountRule{
			{ContentToken: "SELECT", Account: "Axis Bank Select CC"},
			{ContentToken: "REWARDS", Account: "Axis Bank Rewards CC"},
		}),
		{
			Tag:         "idfc",
			PathTokens:  []string{"idfc"},
			Account:     "IDFC FIRST CC",
			LinePattern: `(?P<date>\d{2}\s+[A-Z][a-z]{2}\s+\d{2})\s+(?P<desc>.+?)\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<dir>DR|CR)`,
			DateLayouts: []string{"02 Jan 06"},
			PeriodRules: []PeriodRule{
				{Pattern: `Statement Date[:\-]?\s*(` + dMonY + `)`, Layouts: []string{layoutDMon}},
				{Pattern: `Statement Date[:\-]?\s*(` + dmy + `)`, Layouts: []string{layoutDMY}},
				{Pattern: `Statement Period.*?(` + dMonY + `)\s*-\s*(` + dMonY + `)`, Layouts: []string{layoutDMon}},
				{Pattern: `(` + dMonY + `)\s*-\s*(` + dMonY + `)`, Layouts: []string{layoutDMon}},
				{Pattern: `(` + dMonY + `)`, Layouts: []string{layoutDMon}, Within: 500},
			},
			Stages: textAndOCR,
		},
		{
			Tag:               "uni-gold-upi",
			PathTokens:        []string{"uni gold", "upi"},
			Account:           "Uni Gold Card UPI",
			LinePattern:       `(?P<date>` + dmy + `)\s+[A-Z0-9]+\s+UPI-(?P<desc>.+?)\s+INR\s+[\d,]+\.\d{2}\s+(?P<amount>[\d,]+\.\d{2})\s+(?P<dir>DR|CR)`,
			DateLayouts:       []string{layoutDMY},
			DescriptionPrefix: "UPI-",
			PeriodRules: []PeriodRule{
				{Pattern: `Statement Date\s*:\s*(` + dmy + `)`, Layouts: []string{layoutDMY}},
			},
			Stages: textAndOCR,
		},
		{
			Tag:           "uni-gold",
			PathTokens:    []string{"uni gold"},
			Account:       "Uni Gold Card",
			LinePattern:   `(?P<date>` + dmy + `)\s+(?P<desc>.+?)\s+(?P<dir>DEBIT|CREDIT)\s+₹(?P<amount>[\d,]+(?:\.\d{2})?)`,
			DateLayouts:   []string{layoutDMY},
			StripPatterns: []string{`₹`},
			PeriodRules: []PeriodRule{
				{Pattern: `Statement Date\s+(\d{1,2}\s+[A-Za-z]{3},\s+\d{4})`, Layouts: []string{"2 Jan, 2006"}},
				{Pattern: `Statement Date[:\-]?\s*(` + dmy + `)`, Layouts: []string{layoutDMY}},
			},
			Stages: textAndOCR,
		},
	}
}
