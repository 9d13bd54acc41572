package parser

import "strings"

// Detection windows. Real-world exports from accounting software interleave
// a free-text letterhead layout with the occasional clean tabular export;
// one pass over the leading rows has to discriminate without a second read.
const (
	billDetectWindow    = 20
	companyDetectWindow = 15

	// A single vocabulary hit is enough to call a bills sheet tabular, but
	// company master sheets share too many generic headers ("name",
	// "address") with letterheads, so those need a wider agreement.
	companyHeaderThreshold = 7
)

// billHeaderVocab marks a tabular bills header row. One exact cell match
// selects that row as the header.
var billHeaderVocab = []string{
	"company name",
	"bill no",
	"bill amount",
	"pending amount",
	"due days",
	"invoice no",
	"bill date",
}

// companyHeaderVocab marks a tabular company-master header row.
var companyHeaderVocab = []string{
	"name",
	"address",
	"city",
	"contact no.",
	"e-mail & website",
	"gst no.",
	"pan no.",
	"bank name",
	"bank branch name",
	"bank address",
	"bank ifsc code",
	"bank account no.",
	"iban no.",
	"swift code",
}

// Detect classifies the sheet layout for the given collection kind.
//
// Bills: scan the first 20 rows for a tabular header (any cell equal to a
// bill vocabulary entry); failing that, fall back to the block signature —
// the first row whose joined text contains "bill no" together with "due" or
// "bill amount", with the ledger starting on the following row.
//
// Companies: tabular only; a row in the first 15 rows must match at least 7
// company vocabulary entries.
func Detect(rows RawSheet, kind Kind) (Detection, error) {
	if kind == KindCompanies {
		return detectCompanies(rows)
	}
	return detectBills(rows)
}

func detectBills(rows RawSheet) (Detection, error) {
	window := billDetectWindow
	if len(rows) < window {
		window = len(rows)
	}

	for i := 0; i < window; i++ {
		if rowHasAny(rows[i], billHeaderVocab) {
			return Detection{Layout: LayoutTabular, HeaderRow: i}, nil
		}
	}

	// Block fallback: locate the ledger marker row.
	for i := 0; i < window; i++ {
		text := strings.ToLower(strings.Join(rows[i], " "))
		if strings.Contains(text, "bill no") &&
			(strings.Contains(text, "due") || strings.Contains(text, "bill amount")) {
			return Detection{Layout: LayoutBlock, LedgerStart: i + 1}, nil
		}
	}

	return Detection{}, &FormatError{Reason: "no recognizable header"}
}

func detectCompanies(rows RawSheet) (Detection, error) {
	window := companyDetectWindow
	if len(rows) < window {
		window = len(rows)
	}

	for i := 0; i < window; i++ {
		matches := 0
		for _, cell := range rows[i] {
			if containsFold(companyHeaderVocab, cell) {
				matches++
			}
		}
		if matches >= companyHeaderThreshold {
			return Detection{Layout: LayoutTabular, HeaderRow: i}, nil
		}
	}

	return Detection{}, &FormatError{Reason: "no recognizable header"}
}

func rowHasAny(row []string, vocab []string) bool {
	for _, cell := range row {
		if containsFold(vocab, cell) {
			return true
		}
	}
	return false
}

func containsFold(vocab []string, cell string) bool {
	c := strings.ToLower(strings.TrimSpace(cell))
	if c == "" {
		return false
	}
	for _, v := range vocab {
		if c == v {
			return true
		}
	}
	return false
}
