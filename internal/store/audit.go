package store

import (
	"fmt"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
)

// AppendAudit records one completed ingestion run. Audit rows are append-only.
func (s *Store) AppendAudit(a *model.UploadAudit) error {
	res, err := s.db.Exec(`
		INSERT INTO upload_audits (
			run_id, collection_name, uploaded_at, total_records,
			created, updated, total_records_skipped, total_companies
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.RunID, a.CollectionName, a.UploadedAt, a.TotalRecords,
		a.Created, a.Updated, a.TotalRecordsSkipped, a.TotalCompanies,
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload audit: %w", err)
	}

	a.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get audit id: %w", err)
	}
	return nil
}

// ListAudits returns upload audits, newest first.
func (s *Store) ListAudits() ([]*model.UploadAudit, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, collection_name, uploaded_at, total_records,
			created, updated, total_records_skipped, total_companies
		FROM upload_audits ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload audits: %w", err)
	}
	defer rows.Close()

	var audits []*model.UploadAudit
	for rows.Next() {
		var a model.UploadAudit
		err := rows.Scan(
			&a.ID, &a.RunID, &a.CollectionName, &a.UploadedAt, &a.TotalRecords,
			&a.Created, &a.Updated, &a.TotalRecordsSkipped, &a.TotalCompanies,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upload audit: %w", err)
		}
		audits = append(audits, &a)
	}
	return audits, rows.Err()
}
