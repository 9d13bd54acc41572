package ingest

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
	"github.com/Princy-soni14/billing-reminder-system/internal/parser"
)

// Summary is the outcome of one reconciliation pass.
type Summary struct {
	TotalRecords   int `json:"totalRecords"`
	Created        int `json:"created"`
	Updated        int `json:"updated"`
	Skipped        int `json:"skipped"`
	TotalCompanies int `json:"totalCompanies,omitempty"` // bills runs only
}

// CommitError wraps a failed batch commit. The run produced a valid batch
// but nothing was persisted.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return "commit failed: " + e.Err.Error()
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// reconciler plans one run's writes against an in-memory snapshot of the
// store. It never touches the database itself; the coordinator applies the
// resulting batch atomically.
type reconciler struct {
	log *logrus.Logger
	now time.Time

	// snapshot indices
	byName   map[string]*model.Company // existing companies by name key
	staged   map[string]*model.Company // companies created this run, by name key
	billKeys map[string]bool           // composite duplicate keys, existing plus staged

	compSeq *idSequence
	billSeq *idSequence

	batch model.WriteBatch
}

func newReconciler(log *logrus.Logger, now time.Time, companies []*model.Company, bills []*model.Bill) *reconciler {
	r := &reconciler{
		log:      log,
		now:      now,
		byName:   make(map[string]*model.Company, len(companies)),
		staged:   make(map[string]*model.Company),
		billKeys: make(map[string]bool, len(bills)),
	}

	compIDs := make([]string, 0, len(companies))
	for _, c := range companies {
		key := c.NameLower
		if key == "" {
			key = model.NormalizeName(c.Name)
		}
		r.byName[key] = c
		compIDs = append(compIDs, c.ID)
	}

	billIDs := make([]string, 0, len(bills))
	for _, b := range bills {
		r.billKeys[model.BillKey(b.CompanyID, b.BillNo)] = true
		billIDs = append(billIDs, b.ID)
	}

	r.compSeq = newIDSequence("comp-", compIDs)
	r.billSeq = newIDSequence("bill-", billIDs)
	return r
}

// reconcileCompanies matches each record against the snapshot by name key:
// unknown names create, known names get a non-destructive partial update,
// and rows carrying nothing new are skipped.
func (r *reconciler) reconcileCompanies(records []model.CompanyRecord) Summary {
	sum := Summary{TotalRecords: len(records)}

	for _, rec := range records {
		key := rec.NameKey()
		if key == "" {
			sum.Skipped++
			continue
		}

		if c, ok := r.staged[key]; ok {
			// Repeated name inside the run: fold into the staged create.
			mergeIntoCreate(c, rec)
			sum.Updated++
			continue
		}

		if c, ok := r.byName[key]; ok {
			u := stageUpdate(c, rec)
			if len(u.Fields) == 0 && u.BankDetails == nil {
				sum.Skipped++
				continue
			}
			r.batch.CompanyUpdates = append(r.batch.CompanyUpdates, u)
			sum.Updated++
			continue
		}

		r.createCompany(key, rec)
		sum.Created++
	}

	return sum
}

// reconcileBills groups records by company name key, resolves or creates the
// owning company per group, suppresses duplicate bills by composite key, and
// folds each group's new-bill totals into the company aggregates additively.
// Extra companies are zero-bill sections surfaced by the block parser.
func (r *reconciler) reconcileBills(records []model.BillRecord, extraCompanies []model.CompanyRecord) Summary {
	var sum Summary

	groups, order := groupByCompany(records)
	sum.TotalCompanies = len(order)

	for _, key := range order {
		group := groups[key]
		company := r.resolveCompany(key, group[0])

		pendingDelta := decimal.Zero
		newBills := 0

		for _, rec := range group {
			billKey := model.BillKey(company.ID, rec.BillNo)
			if r.billKeys[billKey] {
				sum.Skipped++
				continue
			}
			r.billKeys[billKey] = true

			bill := r.newBill(company, rec)
			r.batch.BillCreates = append(r.batch.BillCreates, bill)
			pendingDelta = pendingDelta.Add(bill.PendingAmount)
			newBills++
		}

		if newBills > 0 {
			r.bumpAggregates(company, pendingDelta, newBills)
		}
		sum.Created += newBills
	}

	for _, rec := range extraCompanies {
		key := rec.NameKey()
		if key == "" {
			continue
		}
		if _, ok := r.staged[key]; ok {
			continue
		}
		if _, ok := r.byName[key]; ok {
			continue
		}
		r.createCompany(key, rec)
	}

	sum.TotalRecords = sum.Created
	return sum
}

// resolveCompany finds the owning company for a bill group, creating it from
// the group's first row when unknown. Existing companies with no stored
// address get it backfilled from the sheet.
func (r *reconciler) resolveCompany(key string, sample model.BillRecord) *model.Company {
	if c, ok := r.staged[key]; ok {
		return c
	}
	if c, ok := r.byName[key]; ok {
		if c.Address == "" && sample.Address != "" {
			r.batch.CompanyUpdates = append(r.batch.CompanyUpdates, model.CompanyUpdate{
				ID:     c.ID,
				Fields: map[string]string{"address": sample.Address},
			})
		}
		return c
	}

	return r.createCompany(key, model.CompanyRecord{
		Name:    sample.CompanyName,
		Address: sample.Address,
	})
}

func (r *reconciler) createCompany(key string, rec model.CompanyRecord) *model.Company {
	c := &model.Company{
		ID:                   r.compSeq.Next(),
		Name:                 rec.Name,
		NameLower:            key,
		Address:              rec.Address,
		City:                 rec.City,
		State:                rec.State,
		Pincode:              rec.Pincode,
		Phone:                rec.Phone,
		Email:                rec.Email,
		ContactPerson:        rec.ContactPerson,
		BankDetails:          rec.BankDetails,
		TotalPendingAmount:   decimal.Zero,
		AutoRemindersEnabled: true,
		CreatedAt:            r.now,
	}
	r.staged[key] = c
	r.batch.CompanyCreates = append(r.batch.CompanyCreates, c)
	return c
}

func (r *reconciler) newBill(company *model.Company, rec model.BillRecord) *model.Bill {
	billNo := strings.TrimSpace(rec.BillNo)

	billDate, ok := parser.ParseBillDate(rec.Date)
	if !ok {
		if rec.Date != "" {
			r.log.WithFields(logrus.Fields{
				"company": company.Name,
				"billNo":  billNo,
				"date":    rec.Date,
			}).Warn("unparseable bill date, falling back to today")
		}
		billDate = r.now
	}
	dueDate := billDate.AddDate(0, 0, rec.DueDays)

	return &model.Bill{
		ID:            r.billSeq.Next(),
		BillNo:        billNo,
		BillNoLower:   model.NormalizeName(billNo),
		CompanyID:     company.ID,
		CompanyName:   company.Name,
		BillAmount:    rec.BillAmount,
		PendingAmount: rec.PendingAmount,
		BalanceAmount: rec.BalanceAmount,
		DueDays:       rec.DueDays,
		DueDate:       dueDate.UTC().Format(time.RFC3339),
		Date:          rec.Date,
		PoNo:          rec.PoNo,
		Type:          rec.Type,
		UploadedAt:    r.now.UTC().Format(time.RFC3339),
	}
}

// bumpAggregates adds a group's new-bill totals on top of the company's
// stored totals. Staged creates are mutated in place; existing companies get
// an absolute-value update computed from the snapshot.
func (r *reconciler) bumpAggregates(company *model.Company, pendingDelta decimal.Decimal, newBills int) {
	company.TotalPendingAmount = company.TotalPendingAmount.Add(pendingDelta)
	company.TotalBills += newBills

	if _, isStaged := r.staged[company.NameLower]; isStaged {
		return
	}

	pending := company.TotalPendingAmount
	bills := company.TotalBills
	r.batch.CompanyUpdates = append(r.batch.CompanyUpdates, model.CompanyUpdate{
		ID:                 company.ID,
		TotalPendingAmount: &pending,
		TotalBills:         &bills,
	})
}

func groupByCompany(records []model.BillRecord) (map[string][]model.BillRecord, []string) {
	groups := make(map[string][]model.BillRecord)
	var order []string

	for _, rec := range records {
		key := model.NormalizeName(rec.CompanyName)
		if key == "" {
			continue
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rec)
	}
	return groups, order
}

// stageUpdate builds the partial update for an existing company: only
// non-empty incoming scalars, and a key-by-key bank merge where incoming
// values win.
func stageUpdate(c *model.Company, rec model.CompanyRecord) model.CompanyUpdate {
	u := model.CompanyUpdate{ID: c.ID, Fields: map[string]string{}}

	setIfPresent(u.Fields, "address", rec.Address)
	setIfPresent(u.Fields, "city", rec.City)
	setIfPresent(u.Fields, "state", rec.State)
	setIfPresent(u.Fields, "pincode", rec.Pincode)
	setIfPresent(u.Fields, "phone", rec.Phone)
	setIfPresent(u.Fields, "email", rec.Email)
	setIfPresent(u.Fields, "contact_person", rec.ContactPerson)

	if len(rec.BankDetails) > 0 {
		merged := make(map[string]string, len(c.BankDetails)+len(rec.BankDetails))
		for k, v := range c.BankDetails {
			merged[k] = v
		}
		for k, v := range rec.BankDetails {
			merged[k] = v
		}
		u.BankDetails = merged
	}

	return u
}

// mergeIntoCreate folds a repeated row into a company staged for creation.
func mergeIntoCreate(c *model.Company, rec model.CompanyRecord) {
	if c.Address == "" {
		c.Address = rec.Address
	}
	if c.City == "" {
		c.City = rec.City
	}
	if c.State == "" {
		c.State = rec.State
	}
	if c.Pincode == "" {
		c.Pincode = rec.Pincode
	}
	if c.Phone == "" {
		c.Phone = rec.Phone
	}
	if c.Email == "" {
		c.Email = rec.Email
	}
	if c.ContactPerson == "" {
		c.ContactPerson = rec.ContactPerson
	}
	if len(rec.BankDetails) > 0 {
		if c.BankDetails == nil {
			c.BankDetails = make(map[string]string, len(rec.BankDetails))
		}
		for k, v := range rec.BankDetails {
			c.BankDetails[k] = v
		}
	}
}

func setIfPresent(fields map[string]string, column, value string) {
	if value != "" {
		fields[column] = value
	}
}
