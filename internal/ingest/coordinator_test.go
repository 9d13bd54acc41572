package ingest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
	"github.com/Princy-soni14/billing-reminder-system/internal/parser"
	"github.com/Princy-soni14/billing-reminder-system/internal/store"
)

func newTestCoordinator(t *testing.T) (*Coordinator, *store.Store) {
	t.Helper()
	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewCoordinator(s, testLogger()), s
}

const companiesCSV = `Name,Address,City,Contact No.,E-Mail & Website,Bank Name,Bank IFSC Code
Acme Ltd,12 Mill Road,Pune,9800000000,ops@acme.example,State Bank,SBIN0001
Beta Co,7 Harbor St,Mumbai,9811111111,,,
`

const billsCSV = `Company Name,Bill No,Bill Date,Bill Amount,Pending Amount,Due Days
Acme Ltd,INV-1,15/03/2023,1000,600,30
Acme Ltd,INV-2,16/03/2023,500,,15
Gamma Traders,INV-9,2023-04-01,2500,2500,45
`

func TestRunCompaniesThenBills(t *testing.T) {
	c, s := newTestCoordinator(t)

	res, err := c.Run(strings.NewReader(companiesCSV), Options{
		Filename: "companies.csv",
		Kind:     parser.KindCompanies,
	})
	if err != nil {
		t.Fatalf("companies run: %v", err)
	}
	if res.Summary.Created != 2 || res.Summary.Updated != 0 {
		t.Fatalf("companies summary %+v", res.Summary)
	}

	res, err = c.Run(strings.NewReader(billsCSV), Options{
		Filename: "bills.csv",
		Kind:     parser.KindBills,
	})
	if err != nil {
		t.Fatalf("bills run: %v", err)
	}
	if res.Layout != parser.LayoutTabular {
		t.Fatalf("layout %s", res.Layout)
	}
	if res.Summary.Created != 3 || res.Summary.TotalCompanies != 2 {
		t.Fatalf("bills summary %+v", res.Summary)
	}

	companies, err := s.ListCompanies()
	if err != nil {
		t.Fatalf("list companies: %v", err)
	}
	if len(companies) != 3 {
		t.Fatalf("got %d companies, want 3 (Gamma created from bills)", len(companies))
	}

	var acme, gamma bool
	for _, co := range companies {
		switch co.NameLower {
		case "acme ltd":
			acme = true
			if co.TotalBills != 2 || co.TotalPendingAmount.String() != "1100" {
				t.Fatalf("acme aggregates %+v", co)
			}
		case "gamma traders":
			gamma = true
			if co.TotalBills != 1 || co.TotalPendingAmount.String() != "2500" {
				t.Fatalf("gamma aggregates %+v", co)
			}
		}
	}
	if !acme || !gamma {
		t.Fatalf("companies missing: %+v", companies)
	}

	bills, err := s.ListBills()
	if err != nil {
		t.Fatalf("list bills: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("got %d bills", len(bills))
	}

	audits, err := s.ListAudits()
	if err != nil {
		t.Fatalf("list audits: %v", err)
	}
	if len(audits) != 2 {
		t.Fatalf("got %d audits", len(audits))
	}
	// Newest first: the bills run.
	if audits[0].CollectionName != "bills" || audits[0].TotalCompanies != 2 {
		t.Fatalf("got %+v", audits[0])
	}
	if audits[1].CollectionName != "companies" || audits[1].Created != 2 {
		t.Fatalf("got %+v", audits[1])
	}
}

func TestRunBillsIdempotent(t *testing.T) {
	c, s := newTestCoordinator(t)

	upload := func() *Result {
		t.Helper()
		res, err := c.Run(strings.NewReader(billsCSV), Options{
			Filename: "bills.csv",
			Kind:     parser.KindBills,
		})
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return res
	}

	first := upload()
	if first.Summary.Created != 3 {
		t.Fatalf("first run %+v", first.Summary)
	}

	second := upload()
	if second.Summary.Created != 0 || second.Summary.Skipped != 3 {
		t.Fatalf("second run not idempotent: %+v", second.Summary)
	}

	companies, err := s.ListCompanies()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, co := range companies {
		if co.NameLower == "acme ltd" && co.TotalBills != 2 {
			t.Fatalf("aggregates drifted on re-upload: %+v", co)
		}
	}
}

func TestRunBlockLayout(t *testing.T) {
	c, _ := newTestCoordinator(t)

	blockCSV := `Outstanding Report,,,,,,,
Date,Bill No.,PO No.,Type,Due,Bill Amt,Adj,Pending
Acme Ltd,,,,,,,
12 Mill Road,,,,,,,
15/03/2023,INV-1,PO-9,GST,30,1000,0,600
16/03/2023,INV-2,,,15,500,,
`

	res, err := c.Run(strings.NewReader(blockCSV), Options{
		Filename: "outstanding.csv",
		Kind:     parser.KindBills,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Layout != parser.LayoutBlock {
		t.Fatalf("layout %s", res.Layout)
	}
	if res.Summary.Created != 2 || res.Summary.TotalCompanies != 1 {
		t.Fatalf("summary %+v", res.Summary)
	}
}

func TestRunRejectsUnknownInputs(t *testing.T) {
	c, _ := newTestCoordinator(t)

	if _, err := c.Run(strings.NewReader("x"), Options{Filename: "data.pdf", Kind: parser.KindBills}); err == nil {
		t.Fatalf("extension gate missing")
	}
	if _, err := c.Run(strings.NewReader("x"), Options{Filename: "data.csv", Kind: "invoices"}); err == nil {
		t.Fatalf("kind gate missing")
	}

	res, err := c.Run(strings.NewReader("hello,world\nfoo,bar\n"), Options{
		Filename: "data.csv",
		Kind:     parser.KindBills,
	})
	if err == nil {
		t.Fatalf("expected format error, got %+v", res)
	}
}

// failingStore plans reads normally but refuses the commit.
type failingStore struct {
	applyErr error
	audits   []*model.UploadAudit
}

func (s *failingStore) ListCompanies() ([]*model.Company, error) { return nil, nil }
func (s *failingStore) ListBills() ([]*model.Bill, error)        { return nil, nil }
func (s *failingStore) Apply(*model.WriteBatch) error            { return s.applyErr }

func (s *failingStore) AppendAudit(a *model.UploadAudit) error {
	s.audits = append(s.audits, a)
	return nil
}

func TestRunFailedCommitWritesNoAudit(t *testing.T) {
	st := &failingStore{applyErr: errors.New("disk I/O error")}
	c := NewCoordinator(st, testLogger())

	_, err := c.Run(strings.NewReader(billsCSV), Options{
		Filename: "bills.csv",
		Kind:     parser.KindBills,
	})
	if err == nil {
		t.Fatalf("expected commit failure")
	}

	var ce *CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("got %T: %v", err, err)
	}
	if len(st.audits) != 0 {
		t.Fatalf("audit written after failed commit: %+v", st.audits)
	}
}

func TestIngestStreamsEvents(t *testing.T) {
	c, _ := newTestCoordinator(t)

	ch := c.Ingest(strings.NewReader(billsCSV), Options{
		Filename: "bills.csv",
		Kind:     parser.KindBills,
	})

	var types []string
	for ev := range ch {
		types = append(types, ev.Type)
	}
	if len(types) < 2 || types[0] != "start" || types[len(types)-1] != "done" {
		t.Fatalf("event sequence %v", types)
	}
}
