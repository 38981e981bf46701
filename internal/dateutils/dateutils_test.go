package dateutils

import (
	"testing"
	"time"

	"fjacquet/card-recon/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_WithHints(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		hints    []string
		expected time.Time
	}{
		{"day month year", "08/12/2025", []string{LayoutDayMonthYear}, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)},
		{"short year", "08/12/25", []string{LayoutDayMonthYear, LayoutDayMonthShortYear}, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)},
		{"idfc", "14 Nov 25", []string{LayoutDayMonYY}, time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"upper case month", "14 NOV 2025", []string{LayoutDayMonYYYY}, time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"extra whitespace", " 14   Nov  25 ", []string{LayoutDayMonYY}, time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC)},
		{"month day year", "December 15, 2025", []string{LayoutMonthDayYYYY}, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)},
		{"uni gold", "5 Jan, 2026", []string{LayoutDayMonCommaYYYY}, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"defaults", "15/Dec/2025", nil, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, tt.hints...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseDate_FirstHintWins(t *testing.T) {
	got, err := ParseDate("01/02/2025", LayoutDayMonthYear, "01/02/2006")
	require.NoError(t, err)
	assert.Equal(t, time.February, got.Month())
}

func TestParseDate_Unparsable(t *testing.T) {
	for _, input := range []string{"", "32/13/2025", "yesterday", "2025-12-08"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDate(input, LayoutDayMonthYear, LayoutDayMonYY)
			require.Error(t, err)
			assert.ErrorIs(t, err, parsererror.ErrUnparsableDate)
		})
	}
}

func TestFormatPeriod(t *testing.T) {
	assert.Equal(t, "Dec-25", FormatPeriod(time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Jan-26", FormatPeriod(time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodFromPath(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		path     string
		expected string
	}{
		{"statements/axis/Axis_Select_Dec-25.pdf", "Dec-25"},
		{"statements/idfc/nov 2025.pdf", "Nov-25"},
		{"statements/2025/uni/Aug.pdf", "Aug-25"},
		{"statements/uni/Aug.pdf", "Aug-26"},
		{"statements/icici/December_2025_statement.pdf", "Dec-25"},
		{"statements/icici/october.pdf", "Oct-26"},
		{"statements/Sep-25/axis/statement.pdf", "Sep-25"},
		{"statements/axis/statement.pdf", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeriodFromPath(tt.path, now))
		})
	}
}
