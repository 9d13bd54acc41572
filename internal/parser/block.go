package parser

import (
	"regexp"
	"strings"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
)

// Positional columns of a ledger row inside a company block. The layout has
// no header per block, so the offsets are fixed.
const (
	colDate = iota
	colBillNo
	colPoNo
	colType
	colDueDays
	colBillAmount
	colAdjAmount
	colPendingAmount
)

var (
	noiseLineRe  = regexp.MustCompile(`(?i)total|balance|report|date|due`)
	amountCellRe = regexp.MustCompile(`[0-9,.\-]`)
)

// BlockOptions tunes block parsing.
type BlockOptions struct {
	// KeepEmptyCompanies returns company sections that closed without any
	// ledger rows, so the reconciler can still create them. Off by default:
	// a name-only section is usually a stray letterhead line.
	KeepEmptyCompanies bool
}

type blockState struct {
	opts BlockOptions

	company       string
	addressLines  []string
	bills         []model.BillRecord
	inBillSection bool

	out   []model.BillRecord
	empty []model.CompanyRecord
}

// ParseBlocks walks the ledger region of a block-layout sheet. A section is
// one company: a name line, optional address lines, then date-prefixed bill
// rows until the next name line. Bill rows seen before any company name are
// dropped. Returns the flattened bill records plus any zero-bill company
// sections when KeepEmptyCompanies is set.
func ParseBlocks(rows RawSheet, ledgerStart int, opts BlockOptions) ([]model.BillRecord, []model.CompanyRecord, error) {
	st := blockState{opts: opts}

	for i := ledgerStart; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		first := NormalizeCell(row[0])
		if first == "" {
			continue
		}

		if isBillLine(first, row) {
			st.billLine(row, first)
			continue
		}

		// Text line: a company name or an address continuation. Short
		// fragments and summary rows are noise.
		if len(first) > 2 && !noiseLineRe.MatchString(first) {
			st.textLine(first)
		}
	}
	st.closeSection()

	if len(st.out) == 0 && len(st.empty) == 0 {
		return nil, nil, &ParseError{Reason: "no company or bill sections detected"}
	}
	return st.out, st.empty, nil
}

// isBillLine: first cell parses as a date and some cell looks amount-like.
func isBillLine(first string, row []string) bool {
	if !LooksLikeDate(first) {
		return false
	}
	for _, c := range row {
		if amountCellRe.MatchString(NormalizeCell(c)) {
			return true
		}
	}
	return false
}

func (st *blockState) billLine(row []string, date string) {
	if st.company == "" {
		return
	}
	st.inBillSection = true

	billAmount := ParseAmount(cellAt(row, colBillAmount))
	pendingAmount := ParseAmount(cellAt(row, colPendingAmount))
	if pendingAmount.IsZero() {
		pendingAmount = billAmount
	}

	st.bills = append(st.bills, model.BillRecord{
		Date:          date,
		BillNo:        NormalizeCell(cellAt(row, colBillNo)),
		PoNo:          NormalizeCell(cellAt(row, colPoNo)),
		Type:          NormalizeCell(cellAt(row, colType)),
		DueDays:       ParseDueDays(cellAt(row, colDueDays)),
		BillAmount:    billAmount,
		AdjAmount:     ParseAmount(cellAt(row, colAdjAmount)),
		PendingAmount: pendingAmount,
		BalanceAmount: pendingAmount,
	})
}

func (st *blockState) textLine(first string) {
	if st.inBillSection {
		st.closeSection()
		st.company = first
		return
	}
	if st.company == "" {
		st.company = first
		return
	}
	st.addressLines = append(st.addressLines, first)
}

// closeSection flushes the current company block, stamping the company name
// and joined address onto each of its bills.
func (st *blockState) closeSection() {
	name := strings.TrimSpace(st.company)
	address := strings.TrimSpace(strings.Join(st.addressLines, " "))

	switch {
	case name != "" && len(st.bills) > 0:
		for _, b := range st.bills {
			b.CompanyName = name
			b.Address = address
			st.out = append(st.out, b)
		}
	case name != "" && st.opts.KeepEmptyCompanies:
		st.empty = append(st.empty, model.CompanyRecord{Name: name, Address: address})
	}

	st.company = ""
	st.addressLines = nil
	st.bills = nil
	st.inBillSection = false
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
