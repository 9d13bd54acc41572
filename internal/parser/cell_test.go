package parser

import "testing"

func TestNormalizeCellDateSerial(t *testing.T) {
	got := NormalizeCell("45000")
	if got != "15/03/2023" {
		t.Fatalf("serial 45000: got %q, want 15/03/2023", got)
	}
}

func TestNormalizeCellNumericPassthrough(t *testing.T) {
	cases := map[string]string{
		"12500":    "12500",
		"12500.50": "12500.50",
		"-300":     "-300",
		"39999":    "39999",
		"50000":    "50000",
	}
	for in, want := range cases {
		if got := NormalizeCell(in); got != want {
			t.Fatalf("NormalizeCell(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeCellWhitespace(t *testing.T) {
	got := NormalizeCell("  Acme  Industries \t Ltd  ")
	if got != "Acme Industries Ltd" {
		t.Fatalf("got %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"₹1,23,456.00 CR": "123456",
		"1,000":           "1000",
		"-250.75":         "-250.75",
		"abc":             "0",
		"":                "0",
		"12.":             "12",
	}
	for in, want := range cases {
		got := ParseAmount(in)
		if got.String() != want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseDueDays(t *testing.T) {
	if got := ParseDueDays("45 days"); got != 45 {
		t.Fatalf("got %d, want 45", got)
	}
	if got := ParseDueDays(""); got != 0 {
		t.Fatalf("empty: got %d, want 0", got)
	}
}

func TestParseBillDate(t *testing.T) {
	d, ok := ParseBillDate("15/03/2023")
	if !ok {
		t.Fatalf("DD/MM/YYYY not parsed")
	}
	if d.Year() != 2023 || int(d.Month()) != 3 || d.Day() != 15 {
		t.Fatalf("got %v", d)
	}

	d, ok = ParseBillDate("2023-03-15")
	if !ok || d.Day() != 15 {
		t.Fatalf("ISO: ok=%v d=%v", ok, d)
	}

	if _, ok := ParseBillDate("yesterday"); ok {
		t.Fatalf("junk date accepted")
	}
}
