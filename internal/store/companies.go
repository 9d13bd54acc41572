package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
)

const companyColumns = `id, name, name_lower, address, city, state, pincode,
	phone, email, contact_person, bank_details, total_pending_amount,
	total_bills, auto_reminders_enabled, created_at, updated_at`

// ListCompanies returns every company ordered by id.
func (s *Store) ListCompanies() ([]*model.Company, error) {
	rows, err := s.db.Query("SELECT " + companyColumns + " FROM companies ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	var companies []*model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// GetCompany returns one company by id, or nil when absent.
func (s *Store) GetCompany(id string) (*model.Company, error) {
	rows, err := s.db.Query("SELECT "+companyColumns+" FROM companies WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query company: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCompany(rows)
}

func scanCompany(rows *sql.Rows) (*model.Company, error) {
	var (
		c          model.Company
		bankJSON   string
		pending    string
		autoRemind int
		createdAt  string
		updatedAt  sql.NullString
	)

	err := rows.Scan(
		&c.ID, &c.Name, &c.NameLower, &c.Address, &c.City, &c.State, &c.Pincode,
		&c.Phone, &c.Email, &c.ContactPerson, &bankJSON, &pending,
		&c.TotalBills, &autoRemind, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan company: %w", err)
	}

	if bankJSON != "" && bankJSON != "{}" {
		if err := json.Unmarshal([]byte(bankJSON), &c.BankDetails); err != nil {
			return nil, fmt.Errorf("failed to decode bank details for %s: %w", c.ID, err)
		}
	}

	c.TotalPendingAmount, err = decimal.NewFromString(pending)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pending amount for %s: %w", c.ID, err)
	}

	c.AutoRemindersEnabled = autoRemind != 0

	c.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for %s: %w", c.ID, err)
	}
	if updatedAt.Valid {
		t, err := time.Parse(time.RFC3339, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for %s: %w", c.ID, err)
		}
		c.UpdatedAt = &t
	}

	return &c, nil
}

func insertCompany(tx *sql.Tx, c *model.Company) error {
	bankJSON, err := json.Marshal(c.BankDetails)
	if err != nil {
		return fmt.Errorf("failed to encode bank details: %w", err)
	}
	if c.BankDetails == nil {
		bankJSON = []byte("{}")
	}

	autoRemind := 0
	if c.AutoRemindersEnabled {
		autoRemind = 1
	}

	_, err = tx.Exec(`
		INSERT INTO companies (
			id, name, name_lower, address, city, state, pincode,
			phone, email, contact_person, bank_details, total_pending_amount,
			total_bills, auto_reminders_enabled, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.Name, c.NameLower, c.Address, c.City, c.State, c.Pincode,
		c.Phone, c.Email, c.ContactPerson, string(bankJSON),
		c.TotalPendingAmount.String(), c.TotalBills, autoRemind,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert company %s: %w", c.ID, err)
	}
	return nil
}

// updateCompany builds the SET clause from the staged update, touching only
// the columns it carries.
func updateCompany(tx *sql.Tx, u model.CompanyUpdate) error {
	set := []string{}
	args := []interface{}{}

	for col, val := range u.Fields {
		set = append(set, col+" = ?")
		args = append(args, val)
	}
	if u.BankDetails != nil {
		bankJSON, err := json.Marshal(u.BankDetails)
		if err != nil {
			return fmt.Errorf("failed to encode bank details: %w", err)
		}
		set = append(set, "bank_details = ?")
		args = append(args, string(bankJSON))
	}
	if u.TotalPendingAmount != nil {
		set = append(set, "total_pending_amount = ?")
		args = append(args, u.TotalPendingAmount.String())
	}
	if u.TotalBills != nil {
		set = append(set, "total_bills = ?")
		args = append(args, *u.TotalBills)
	}

	if len(set) == 0 {
		return nil
	}

	set = append(set, "updated_at = ?")
	args = append(args, time.Now().UTC().Format(time.RFC3339))
	args = append(args, u.ID)

	query := "UPDATE companies SET " + strings.Join(set, ", ") + " WHERE id = ?"
	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update company %s: %w", u.ID, err)
	}
	return nil
}
