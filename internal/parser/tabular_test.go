package parser

import "testing"

func TestParseTabularBills(t *testing.T) {
	rows := RawSheet{
		{"Company Name", "Invoice No", "Bill Date", "Bill Amount", "Due Days", "Remarks"},
		{"Acme Ltd", "INV-1", "45000", "₹1,000.00", "30", "urgent"},
		{"", "INV-2", "45001", "500", "15", ""},
		{"Beta Co", "INV-3", "2023-04-01", "2,500", "", ""},
	}

	records, err := ParseTabularBills(rows, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (nameless row dropped)", len(records))
	}

	r := records[0]
	if r.CompanyName != "Acme Ltd" || r.BillNo != "INV-1" {
		t.Fatalf("got %+v", r)
	}
	if r.Date != "15/03/2023" {
		t.Fatalf("serial date not normalized: %q", r.Date)
	}
	if r.BillAmount.String() != "1000" {
		t.Fatalf("bill amount %s", r.BillAmount)
	}
	if !r.PendingAmount.Equal(r.BillAmount) {
		t.Fatalf("pending should default to bill amount, got %s", r.PendingAmount)
	}
	if r.DueDays != 30 {
		t.Fatalf("due days %d", r.DueDays)
	}
	if r.Extra["remarks"] != "urgent" {
		t.Fatalf("extra not carried: %+v", r.Extra)
	}

	if records[1].CompanyName != "Beta Co" || records[1].Date != "2023-04-01" {
		t.Fatalf("got %+v", records[1])
	}
}

func TestParseTabularBillsPendingOverride(t *testing.T) {
	rows := RawSheet{
		{"Company Name", "Bill No", "Bill Amount", "Pending Amount"},
		{"Acme Ltd", "INV-1", "1000", "400"},
	}

	records, err := ParseTabularBills(rows, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if records[0].PendingAmount.String() != "400" {
		t.Fatalf("pending %s, want 400", records[0].PendingAmount)
	}
}

func TestParseTabularBillsZeroPendingDefaults(t *testing.T) {
	rows := RawSheet{
		{"Company Name", "Bill No", "Bill Amount", "Pending Amount"},
		{"Acme Ltd", "INV-1", "1000", "0"},
		{"Acme Ltd", "INV-2", "1000", "n/a"},
	}

	records, err := ParseTabularBills(rows, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for i, r := range records {
		if r.PendingAmount.String() != "1000" {
			t.Fatalf("row %d: pending %s, want 1000 (zero-parsed cell defaults to bill amount)",
				i, r.PendingAmount)
		}
		if !r.BalanceAmount.Equal(r.PendingAmount) {
			t.Fatalf("row %d: balance %s diverges from pending", i, r.BalanceAmount)
		}
	}
}

func TestParseTabularBillsNoUsableRows(t *testing.T) {
	rows := RawSheet{
		{"Company Name", "Bill No"},
		{"", "INV-1"},
	}
	if _, err := ParseTabularBills(rows, 0); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestParseTabularCompanies(t *testing.T) {
	rows := RawSheet{
		{"Name", "Address", "City", "Contact No.", "E-Mail & Website",
			"Bank Name", "Bank IFSC Code", "GST No."},
		{"Acme Ltd", "12 Mill Road", "Pune", "9800000000", "ops@acme.example",
			"State Bank", "SBIN0001", "27AAACA1234A1Z5"},
		{"", "orphan row"},
	}

	records, err := ParseTabularCompanies(rows, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records", len(records))
	}

	r := records[0]
	if r.Name != "Acme Ltd" || r.City != "Pune" || r.Phone != "9800000000" {
		t.Fatalf("got %+v", r)
	}
	if r.Email != "ops@acme.example" {
		t.Fatalf("email %q", r.Email)
	}
	if r.BankDetails["bankName"] != "State Bank" || r.BankDetails["ifsc"] != "SBIN0001" {
		t.Fatalf("bank details %+v", r.BankDetails)
	}
	if r.Extra["gst no."] != "27AAACA1234A1Z5" {
		t.Fatalf("extra %+v", r.Extra)
	}
}
