package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
)

const billColumns = `id, bill_no, bill_no_lower, company_id, company_name,
	bill_amount, pending_amount, balance_amount, due_days, due_date, date,
	po_no, type, is_reminder_paused, reminder_count, last_reminder_sent,
	uploaded_at`

// ListBills returns every bill ordered by id.
func (s *Store) ListBills() ([]*model.Bill, error) {
	rows, err := s.db.Query("SELECT " + billColumns + " FROM bills ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*model.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// ListBillsByCompany returns the bills belonging to one company.
func (s *Store) ListBillsByCompany(companyID string) ([]*model.Bill, error) {
	rows, err := s.db.Query(
		"SELECT "+billColumns+" FROM bills WHERE company_id = ? ORDER BY id", companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*model.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

func scanBill(rows *sql.Rows) (*model.Bill, error) {
	var (
		b            model.Bill
		billAmt      string
		pendingAmt   string
		balanceAmt   string
		paused       int
		lastReminder sql.NullString
	)

	err := rows.Scan(
		&b.ID, &b.BillNo, &b.BillNoLower, &b.CompanyID, &b.CompanyName,
		&billAmt, &pendingAmt, &balanceAmt, &b.DueDays, &b.DueDate, &b.Date,
		&b.PoNo, &b.Type, &paused, &b.ReminderCount, &lastReminder,
		&b.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan bill: %w", err)
	}

	if b.BillAmount, err = decimal.NewFromString(billAmt); err != nil {
		return nil, fmt.Errorf("failed to parse bill amount for %s: %w", b.ID, err)
	}
	if b.PendingAmount, err = decimal.NewFromString(pendingAmt); err != nil {
		return nil, fmt.Errorf("failed to parse pending amount for %s: %w", b.ID, err)
	}
	if b.BalanceAmount, err = decimal.NewFromString(balanceAmt); err != nil {
		return nil, fmt.Errorf("failed to parse balance amount for %s: %w", b.ID, err)
	}

	b.IsReminderPaused = paused != 0
	if lastReminder.Valid {
		t, err := time.Parse(time.RFC3339, lastReminder.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last_reminder_sent for %s: %w", b.ID, err)
		}
		b.LastReminderSent = &t
	}

	return &b, nil
}

func insertBill(tx *sql.Tx, b *model.Bill) error {
	paused := 0
	if b.IsReminderPaused {
		paused = 1
	}

	var lastReminder interface{}
	if b.LastReminderSent != nil {
		lastReminder = b.LastReminderSent.Format(time.RFC3339)
	}

	_, err := tx.Exec(`
		INSERT INTO bills (
			id, bill_no, bill_no_lower, company_id, company_name,
			bill_amount, pending_amount, balance_amount, due_days, due_date,
			date, po_no, type, is_reminder_paused, reminder_count,
			last_reminder_sent, uploaded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID, b.BillNo, b.BillNoLower, b.CompanyID, b.CompanyName,
		b.BillAmount.String(), b.PendingAmount.String(), b.BalanceAmount.String(),
		b.DueDays, b.DueDate, b.Date, b.PoNo, b.Type, paused, b.ReminderCount,
		lastReminder, b.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert bill %s: %w", b.ID, err)
	}
	return nil
}
