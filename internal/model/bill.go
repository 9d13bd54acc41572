package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the persisted bill document. Reminder-state fields are
// zero-initialized on creation and never touched by ingestion afterwards.
type Bill struct {
	ID               string          `json:"id"`
	BillNo           string          `json:"billNo"`
	BillNoLower      string          `json:"billNoLower"` // dedup key half: lower-cased, trimmed bill no
	CompanyID        string          `json:"companyId"`
	CompanyName      string          `json:"companyName"`
	BillAmount       decimal.Decimal `json:"billAmount"`
	PendingAmount    decimal.Decimal `json:"pendingAmount"`
	BalanceAmount    decimal.Decimal `json:"balanceAmount"`
	DueDays          int             `json:"dueDays"`
	DueDate          string          `json:"dueDate"` // ISO, derived: bill date + due days
	Date             string          `json:"date"`    // original string as parsed from the sheet
	PoNo             string          `json:"poNo"`
	Type             string          `json:"type"`
	IsReminderPaused bool            `json:"isReminderPaused"`
	ReminderCount    int             `json:"reminderCount"`
	LastReminderSent *time.Time      `json:"lastReminderSent"`
	UploadedAt       string          `json:"uploadedAt"` // ISO
}

// BillRecord is the transient normalized shape produced by the parsers.
// CompanyName links the row to a company; Address is denormalized onto the
// record by the block parser so new companies pick it up.
type BillRecord struct {
	CompanyName   string
	Address       string
	BillNo        string
	Date          string // DD/MM/YYYY or YYYY-MM-DD
	PoNo          string
	Type          string
	DueDays       int
	BillAmount    decimal.Decimal
	AdjAmount     decimal.Decimal
	PendingAmount decimal.Decimal
	BalanceAmount decimal.Decimal
	Extra         map[string]string
}

// BillKey composes the duplicate-suppression key once the owning company is
// resolved. Identical bill numbers under different companies are distinct.
func BillKey(companyID, billNo string) string {
	return companyID + "_" + strings.ToLower(strings.TrimSpace(billNo))
}
