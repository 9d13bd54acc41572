package model

import "github.com/shopspring/decimal"

// UploadAudit is one append-only record per ingestion run, written after a
// successful batch commit and never mutated.
type UploadAudit struct {
	ID                  int64  `json:"id"`
	RunID               string `json:"runId"`
	CollectionName      string `json:"collectionName"` // "companies" or "bills"
	UploadedAt          string `json:"uploadedAt"`     // ISO
	TotalRecords        int    `json:"totalRecords"`
	Created             int    `json:"created"`
	Updated             int    `json:"updated"`
	TotalRecordsSkipped int    `json:"totalRecordsSkipped"`
	TotalCompanies      int    `json:"totalCompanies,omitempty"` // bills runs only
}

// CompanyUpdate stages a non-destructive partial update: only non-empty
// incoming scalar fields appear in Fields, BankDetails carries the already
// merged map (nil leaves the column untouched), and the aggregate pointers
// carry absolute new values computed additively by the reconciler.
type CompanyUpdate struct {
	ID                 string
	Fields             map[string]string // column name -> new value
	BankDetails        map[string]string
	TotalPendingAmount *decimal.Decimal
	TotalBills         *int
}

// WriteBatch is the single atomic unit of mutation for one ingestion run.
// Either every staged write lands or none do.
type WriteBatch struct {
	CompanyCreates []*Company
	CompanyUpdates []CompanyUpdate
	BillCreates    []*Bill
}

// Empty reports whether the batch stages no writes at all.
func (b *WriteBatch) Empty() bool {
	return len(b.CompanyCreates) == 0 && len(b.CompanyUpdates) == 0 && len(b.BillCreates) == 0
}
