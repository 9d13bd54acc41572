package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Company is the persisted company document. Aggregate fields
// (TotalPendingAmount, TotalBills) are maintained incrementally by the
// ingestion engine and are never recomputed from scratch during a run.
type Company struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	NameLower            string            `json:"nameLower"` // matching key: lower-cased, trimmed name
	Address              string            `json:"address"`
	City                 string            `json:"city"`
	State                string            `json:"state,omitempty"`
	Pincode              string            `json:"pincode,omitempty"`
	Phone                string            `json:"phone"`
	Email                string            `json:"email"`
	ContactPerson        string            `json:"contactPerson,omitempty"`
	BankDetails          map[string]string `json:"bankDetails,omitempty"`
	TotalPendingAmount   decimal.Decimal   `json:"totalPendingAmount"`
	TotalBills           int               `json:"totalBills"`
	AutoRemindersEnabled bool              `json:"autoRemindersEnabled"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            *time.Time        `json:"updatedAt,omitempty"`
}

// CompanyRecord is the transient normalized shape produced by the parsers.
// It lives only within one ingestion run.
type CompanyRecord struct {
	Name          string
	Address       string
	City          string
	State         string
	Pincode       string
	Phone         string
	Email         string
	ContactPerson string
	BankDetails   map[string]string
	Extra         map[string]string // unrecognized headers, carried through but ignored downstream
}

// NameKey returns the reconciliation key for the record.
func (r CompanyRecord) NameKey() string {
	return NormalizeName(r.Name)
}

// NormalizeName lowers and trims a company name for matching.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
