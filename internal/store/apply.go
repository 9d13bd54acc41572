package store

import (
	"fmt"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
)

// Apply commits one ingestion batch atomically: company creates first so
// bill foreign keys resolve, then partial updates, then bill creates. Any
// failure rolls the whole batch back.
func (s *Store) Apply(batch *model.WriteBatch) error {
	if batch == nil || batch.Empty() {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range batch.CompanyCreates {
		if err := insertCompany(tx, c); err != nil {
			return err
		}
	}
	for _, u := range batch.CompanyUpdates {
		if err := updateCompany(tx, u); err != nil {
			return err
		}
	}
	for _, b := range batch.BillCreates {
		if err := insertBill(tx, b); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
