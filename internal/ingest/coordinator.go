package ingest

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
	"github.com/Princy-soni14/billing-reminder-system/internal/parser"
)

// Store is the persistence surface the coordinator needs: a snapshot read
// side and an atomic write side.
type Store interface {
	ListCompanies() ([]*model.Company, error)
	ListBills() ([]*model.Bill, error)
	Apply(batch *model.WriteBatch) error
	AppendAudit(a *model.UploadAudit) error
}

// Coordinator drives one ingestion run end to end: load, detect, parse,
// reconcile, commit, audit.
type Coordinator struct {
	store Store
	log   *logrus.Logger
}

// NewCoordinator creates an ingestion coordinator.
func NewCoordinator(store Store, log *logrus.Logger) *Coordinator {
	return &Coordinator{store: store, log: log}
}

// Options selects what one run ingests.
type Options struct {
	Filename           string
	Kind               parser.Kind
	KeepEmptyCompanies bool // block layout: also create zero-bill company sections
}

// Result is the outcome of a completed run.
type Result struct {
	RunID   string             `json:"runId"`
	Kind    parser.Kind        `json:"kind"`
	Layout  parser.Layout      `json:"layout"`
	Summary Summary            `json:"summary"`
	Audit   *model.UploadAudit `json:"audit"`
}

// ProgressEvent is one step of a streaming run.
// Type is one of start/info/done/error.
type ProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Ingest runs asynchronously and streams progress; the channel closes when
// the run finishes. Events are dropped rather than blocking a slow consumer.
func (c *Coordinator) Ingest(r io.Reader, opts Options) <-chan ProgressEvent {
	ch := make(chan ProgressEvent, 100)

	go func() {
		defer close(ch)
		emit := func(ev ProgressEvent) {
			ev.Timestamp = time.Now()
			select {
			case ch <- ev:
			default:
			}
		}
		if _, err := c.run(r, opts, emit); err != nil {
			emit(ProgressEvent{Type: "error", Message: err.Error()})
		}
	}()

	return ch
}

// Run executes one run synchronously.
func (c *Coordinator) Run(r io.Reader, opts Options) (*Result, error) {
	return c.run(r, opts, func(ProgressEvent) {})
}

func (c *Coordinator) run(r io.Reader, opts Options, emit func(ProgressEvent)) (*Result, error) {
	if !opts.Kind.Valid() {
		return nil, fmt.Errorf("unknown collection kind %q", opts.Kind)
	}
	if !parser.Accepted(opts.Filename) {
		return nil, &parser.FormatError{Reason: "unsupported file type, expected .xlsx, .xls or .csv"}
	}

	runID := uuid.NewString()
	now := time.Now().UTC()
	log := c.log.WithFields(logrus.Fields{
		"runId":    runID,
		"kind":     opts.Kind,
		"filename": opts.Filename,
	})

	emit(ProgressEvent{Type: "start", Message: "reading " + opts.Filename,
		Data: map[string]string{"runId": runID}})

	rows, err := parser.LoadSheet(r, opts.Filename)
	if err != nil {
		return nil, err
	}

	det, err := parser.Detect(rows, opts.Kind)
	if err != nil {
		return nil, err
	}
	log.WithField("layout", det.Layout).Info("layout detected")
	emit(ProgressEvent{Type: "info", Message: fmt.Sprintf("detected %s layout", det.Layout),
		Data: det})

	companies, err := c.store.ListCompanies()
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}

	var (
		rec *reconciler
		sum Summary
	)

	switch opts.Kind {
	case parser.KindCompanies:
		records, err := parser.ParseTabularCompanies(rows, det.HeaderRow)
		if err != nil {
			return nil, err
		}
		emit(ProgressEvent{Type: "info", Message: fmt.Sprintf("parsed %d company rows", len(records))})

		rec = newReconciler(c.log, now, companies, nil)
		sum = rec.reconcileCompanies(records)

	case parser.KindBills:
		var (
			records []model.BillRecord
			extras  []model.CompanyRecord
		)
		if det.Layout == parser.LayoutTabular {
			records, err = parser.ParseTabularBills(rows, det.HeaderRow)
		} else {
			records, extras, err = parser.ParseBlocks(rows, det.LedgerStart,
				parser.BlockOptions{KeepEmptyCompanies: opts.KeepEmptyCompanies})
		}
		if err != nil {
			return nil, err
		}
		emit(ProgressEvent{Type: "info", Message: fmt.Sprintf("parsed %d bill rows", len(records))})

		bills, err := c.store.ListBills()
		if err != nil {
			return nil, fmt.Errorf("failed to load bills: %w", err)
		}

		rec = newReconciler(c.log, now, companies, bills)
		sum = rec.reconcileBills(records, extras)
	}

	if err := c.store.Apply(&rec.batch); err != nil {
		return nil, &CommitError{Err: err}
	}

	audit := &model.UploadAudit{
		RunID:               runID,
		CollectionName:      string(opts.Kind),
		UploadedAt:          now.Format(time.RFC3339),
		TotalRecords:        sum.TotalRecords,
		Created:             sum.Created,
		Updated:             sum.Updated,
		TotalRecordsSkipped: sum.Skipped,
		TotalCompanies:      sum.TotalCompanies,
	}
	if err := c.store.AppendAudit(audit); err != nil {
		// The batch is already committed; surface the failure without
		// pretending the data is gone.
		log.WithError(err).Error("audit append failed after commit")
		return nil, fmt.Errorf("batch committed but audit append failed: %w", err)
	}

	log.WithFields(logrus.Fields{
		"created": sum.Created,
		"updated": sum.Updated,
		"skipped": sum.Skipped,
	}).Info("ingestion run complete")

	result := &Result{
		RunID:   runID,
		Kind:    opts.Kind,
		Layout:  det.Layout,
		Summary: sum,
		Audit:   audit,
	}
	emit(ProgressEvent{Type: "done", Message: "ingestion complete", Data: result})
	return result, nil
}
