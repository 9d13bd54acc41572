package parser

import (
	"errors"
	"testing"
)

func TestDetectBillsTabular(t *testing.T) {
	rows := RawSheet{
		{"Outstanding Report"},
		{},
		{"Company Name", "Bill No", "Bill Date", "Bill Amount", "Pending Amount", "Due Days"},
		{"Acme Ltd", "INV-1", "15/03/2023", "1000", "1000", "30"},
	}

	det, err := Detect(rows, KindBills)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Layout != LayoutTabular || det.HeaderRow != 2 {
		t.Fatalf("got %+v", det)
	}
}

func TestDetectBillsBlockFallback(t *testing.T) {
	rows := RawSheet{
		{"Outstanding Report as on 31/03/2023"},
		{"Date", "Bill No.", "PO No.", "Type", "Due", "Bill Amt", "Adj", "Pending"},
		{"Acme Ltd"},
		{"15/03/2023", "INV-1", "", "", "30", "1000", "0", "1000"},
	}

	det, err := Detect(rows, KindBills)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Layout != LayoutBlock || det.LedgerStart != 2 {
		t.Fatalf("got %+v", det)
	}
}

func TestDetectBillsNoSignature(t *testing.T) {
	rows := RawSheet{
		{"hello"},
		{"world"},
	}

	_, err := Detect(rows, KindBills)
	if err == nil {
		t.Fatalf("expected format error")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %T: %v", err, err)
	}
}

func TestDetectCompaniesThreshold(t *testing.T) {
	header := []string{
		"Name", "Address", "City", "Contact No.", "E-Mail & Website",
		"Bank Name", "Bank IFSC Code",
	}
	rows := RawSheet{
		{"Company Master"},
		header,
	}

	det, err := Detect(rows, KindCompanies)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if det.Layout != LayoutTabular || det.HeaderRow != 1 {
		t.Fatalf("got %+v", det)
	}

	// Six matches is below the threshold.
	rows[1] = header[:6]
	if _, err := Detect(rows, KindCompanies); err == nil {
		t.Fatalf("expected format error below threshold")
	}
}

func TestDetectDeterministic(t *testing.T) {
	rows := RawSheet{
		{"Company Name", "Bill No"},
	}
	first, err := Detect(rows, KindBills)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Detect(rows, KindBills)
		if err != nil || again != first {
			t.Fatalf("run %d: %+v vs %+v (err %v)", i, again, first, err)
		}
	}
}
