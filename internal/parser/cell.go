package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Spreadsheet date serials: day 0 = 1899-12-30. Serials between 40000 and
// 50000 cover roughly 2009–2036, the plausible window for bill dates in
// real exports; numbers outside it are treated as plain amounts.
const (
	dateSerialMin = 40000
	dateSerialMax = 50000
)

var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	amountStripRe = regexp.MustCompile(`[^0-9.\-]`)
	numPrefixRe   = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)
	intPrefixRe   = regexp.MustCompile(`^-?\d+`)
	dateDMYRe     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dateISORe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// NormalizeCell converts one raw cell value into its canonical string form.
// Numeric values in the date-serial window become DD/MM/YYYY, other numbers
// pass through unchanged, and everything else has non-breaking spaces and
// repeated whitespace collapsed. Deterministic for identical input.
func NormalizeCell(value string) string {
	trimmed := strings.TrimSpace(value)
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if f > dateSerialMin && f < dateSerialMax {
			return serialEpoch.AddDate(0, 0, int(f)).Format("02/01/2006")
		}
		return trimmed
	}
	s := strings.ReplaceAll(value, "\u00a0", " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseAmount extracts a monetary amount from a cell: every character except
// digits, '.' and '-' is stripped, then the longest leading numeric run is
// parsed. Empty or non-numeric input yields zero.
func ParseAmount(value string) decimal.Decimal {
	cleaned := amountStripRe.ReplaceAllString(NormalizeCell(value), "")
	num := numPrefixRe.FindString(cleaned)
	num = strings.TrimSuffix(num, ".")
	if num == "" || num == "-" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDueDays reads an integer day count from a cell, truncating any
// fractional part and defaulting to zero.
func ParseDueDays(value string) int {
	num := intPrefixRe.FindString(NormalizeCell(value))
	if num == "" {
		return 0
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0
	}
	return n
}

// LooksLikeDate reports whether a cell normalizes to a recognized date form
// (DD/MM/YYYY, YYYY-MM-DD, or a raw numeric serial in the window).
func LooksLikeDate(value string) bool {
	s := NormalizeCell(value)
	return dateDMYRe.MatchString(s) || dateISORe.MatchString(s)
}

// ParseBillDate parses the two recognized bill date forms. The second return
// is false for anything else; callers fall back to the current time.
func ParseBillDate(s string) (time.Time, bool) {
	switch {
	case dateISORe.MatchString(s):
		t, err := time.Parse("2006-01-02", s)
		return t, err == nil
	case dateDMYRe.MatchString(s):
		t, err := time.Parse("02/01/2006", s)
		return t, err == nil
	}
	return time.Time{}, false
}
