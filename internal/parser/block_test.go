package parser

import "testing"

func blockFixture() RawSheet {
	return RawSheet{
		{"Outstanding Report"},
		{"Date", "Bill No.", "PO No.", "Type", "Due", "Bill Amt", "Adj", "Pending"},
		{"Acme Ltd"},
		{"12 Mill Road"},
		{"Pune 411001"},
		{"45000", "INV-1", "PO-9", "GST", "30", "1,000", "0", "600"},
		{"16/03/2023", "INV-2", "", "", "15", "500", "", ""},
		{"Total"},
		{"Beta Co"},
		{"17/03/2023", "INV-3", "", "", "45", "2000", "0", "2000"},
	}
}

func TestParseBlocks(t *testing.T) {
	rows := blockFixture()

	det, err := Detect(rows, KindBills)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Layout != LayoutBlock || det.LedgerStart != 2 {
		t.Fatalf("detection %+v", det)
	}

	bills, empty, err := ParseBlocks(rows, det.LedgerStart, BlockOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("unexpected empty companies: %+v", empty)
	}
	if len(bills) != 3 {
		t.Fatalf("got %d bills, want 3", len(bills))
	}

	b := bills[0]
	if b.CompanyName != "Acme Ltd" {
		t.Fatalf("company %q", b.CompanyName)
	}
	if b.Address != "12 Mill Road Pune 411001" {
		t.Fatalf("address %q", b.Address)
	}
	if b.Date != "15/03/2023" {
		t.Fatalf("serial date not normalized: %q", b.Date)
	}
	if b.BillNo != "INV-1" || b.PoNo != "PO-9" || b.Type != "GST" || b.DueDays != 30 {
		t.Fatalf("got %+v", b)
	}
	if b.BillAmount.String() != "1000" || b.PendingAmount.String() != "600" {
		t.Fatalf("amounts %s / %s", b.BillAmount, b.PendingAmount)
	}

	// Missing pending amount falls back to the bill amount.
	if !bills[1].PendingAmount.Equal(bills[1].BillAmount) {
		t.Fatalf("pending %s, bill %s", bills[1].PendingAmount, bills[1].BillAmount)
	}

	if bills[2].CompanyName != "Beta Co" || bills[2].Address != "" {
		t.Fatalf("got %+v", bills[2])
	}
}

func TestParseBlocksKeepEmptyCompanies(t *testing.T) {
	rows := RawSheet{
		{"Acme Ltd"},
		{"12 Mill Road"},
		{"15/03/2023", "INV-1", "", "", "30", "1000", "0", "1000"},
		{"Ghost Traders"},
		{"99 Nowhere Lane"},
	}

	bills, empty, err := ParseBlocks(rows, 0, BlockOptions{KeepEmptyCompanies: true})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("got %d bills", len(bills))
	}
	if len(empty) != 1 || empty[0].Name != "Ghost Traders" {
		t.Fatalf("empty companies %+v", empty)
	}
	if empty[0].Address != "99 Nowhere Lane" {
		t.Fatalf("address %q", empty[0].Address)
	}

	// Default behavior drops the zero-bill section.
	_, empty, err = ParseBlocks(rows, 0, BlockOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty companies kept by default: %+v", empty)
	}
}

func TestParseBlocksBillBeforeCompanyDropped(t *testing.T) {
	rows := RawSheet{
		{"15/03/2023", "INV-0", "", "", "30", "100", "0", "100"},
		{"Acme Ltd"},
		{"16/03/2023", "INV-1", "", "", "30", "200", "0", "200"},
	}

	bills, _, err := ParseBlocks(rows, 0, BlockOptions{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(bills) != 1 || bills[0].BillNo != "INV-1" {
		t.Fatalf("got %+v", bills)
	}
}

func TestParseBlocksNothingDetected(t *testing.T) {
	rows := RawSheet{
		{"Total"},
		{"xx"},
	}
	if _, _, err := ParseBlocks(rows, 0, BlockOptions{}); err == nil {
		t.Fatalf("expected parse error")
	}
}
