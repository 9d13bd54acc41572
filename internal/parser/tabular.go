package parser

import (
	"strings"

	"github.com/Princy-soni14/billing-reminder-system/internal/model"
)

// billSynonyms maps normalized header text to the canonical bill field name.
// Headers with no entry land in the record's Extra map untouched.
var billSynonyms = map[string]string{
	"company name": "companyName",
	"name":         "companyName",
	"company":      "companyName",

	"bill no":    "billNo",
	"invoice no": "billNo",

	"bill date":              "date",
	"bill date (dd/mm/yyyy)": "date",
	"date":                   "date",

	"po no":          "poNo",
	"type":           "type",
	"bill amount":    "billAmount",
	"pending amount": "pendingAmount",
	"balance amount": "balanceAmount",
	"due days":       "dueDays",
	"address":        "address",
}

// companySynonyms covers the scalar company-master columns. Bank columns are
// handled separately because they merge into the nested BankDetails map.
var companySynonyms = map[string]string{
	"name":         "name",
	"company name": "name",
	"company":      "name",
	"companyname":  "name",

	"address": "address",
	"city":    "city",
	"state":   "state",
	"pincode": "pincode",

	"contact no.": "phone",
	"contact no":  "phone",
	"phone":       "phone",
	"contact":     "phone",

	"e-mail & website": "email",
	"email":            "email",
	"e-mail":           "email",

	"contact person": "contactPerson",
}

// bankSynonyms maps header text to the key used inside BankDetails.
var bankSynonyms = map[string]string{
	"bank name":        "bankName",
	"bank branch name": "branchName",
	"bank address":     "bankAddress",
	"bank ifsc code":   "ifsc",
	"bank account no.": "accountNo",
	"iban no.":         "iban",
	"swift code":       "swift",
}

// mapHeader resolves each header cell to its canonical field name, falling
// back to the normalized raw header for unrecognized columns.
func mapHeader(row []string, synonyms map[string]string) []string {
	fields := make([]string, len(row))
	for i, cell := range row {
		key := strings.ToLower(strings.TrimSpace(cell))
		if canonical, ok := synonyms[key]; ok {
			fields[i] = canonical
		} else {
			fields[i] = key
		}
	}
	return fields
}

// rowToMap zips one data row against the resolved field names, normalizing
// every cell. Later duplicate columns win, matching spreadsheet reading
// order.
func rowToMap(fields []string, row []string) map[string]string {
	m := make(map[string]string, len(fields))
	for i, field := range fields {
		if field == "" || i >= len(row) {
			continue
		}
		m[field] = NormalizeCell(row[i])
	}
	return m
}

// ParseTabularBills converts the rows below the header into bill records.
// Rows without a company name are dropped; pendingAmount defaults to the
// bill amount whenever its cell parses to zero (absent, empty or "0").
func ParseTabularBills(rows RawSheet, headerRow int) ([]model.BillRecord, error) {
	fields := mapHeader(rows[headerRow], billSynonyms)

	var records []model.BillRecord
	for _, row := range rows[headerRow+1:] {
		m := rowToMap(fields, row)

		name := strings.TrimSpace(m["companyName"])
		if name == "" {
			continue
		}

		billAmount := ParseAmount(m["billAmount"])
		pendingAmount := ParseAmount(m["pendingAmount"])
		if pendingAmount.IsZero() {
			pendingAmount = billAmount
		}

		rec := model.BillRecord{
			CompanyName:   name,
			Address:       m["address"],
			BillNo:        strings.TrimSpace(m["billNo"]),
			Date:          m["date"],
			PoNo:          m["poNo"],
			Type:          m["type"],
			DueDays:       ParseDueDays(m["dueDays"]),
			BillAmount:    billAmount,
			PendingAmount: pendingAmount,
			BalanceAmount: pendingAmount,
			Extra:         extraFields(m, billExtraSkip),
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &ParseError{Reason: "no usable rows"}
	}
	return records, nil
}

// ParseTabularCompanies converts the rows below the header into company
// records. Rows without a name are dropped.
func ParseTabularCompanies(rows RawSheet, headerRow int) ([]model.CompanyRecord, error) {
	fields := mapHeader(rows[headerRow], companySynonyms)

	var records []model.CompanyRecord
	for _, row := range rows[headerRow+1:] {
		m := rowToMap(fields, row)

		name := strings.TrimSpace(m["name"])
		if name == "" {
			continue
		}

		bank := make(map[string]string)
		for header, key := range bankSynonyms {
			if v := strings.TrimSpace(m[header]); v != "" {
				bank[key] = v
			}
		}
		if len(bank) == 0 {
			bank = nil
		}

		rec := model.CompanyRecord{
			Name:          name,
			Address:       m["address"],
			City:          m["city"],
			State:         m["state"],
			Pincode:       m["pincode"],
			Phone:         m["phone"],
			Email:         m["email"],
			ContactPerson: m["contactPerson"],
			BankDetails:   bank,
			Extra:         extraFields(m, companyExtraSkip),
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &ParseError{Reason: "no usable rows"}
	}
	return records, nil
}

var billExtraSkip = map[string]bool{
	"companyName": true, "billNo": true, "date": true, "poNo": true,
	"type": true, "billAmount": true, "pendingAmount": true,
	"balanceAmount": true, "dueDays": true, "address": true,
}

var companyExtraSkip = func() map[string]bool {
	skip := map[string]bool{
		"name": true, "address": true, "city": true, "state": true,
		"pincode": true, "phone": true, "email": true, "contactPerson": true,
	}
	for header := range bankSynonyms {
		skip[header] = true
	}
	return skip
}()

func extraFields(m map[string]string, skip map[string]bool) map[string]string {
	var extra map[string]string
	for k, v := range m {
		if skip[k] || strings.TrimSpace(v) == "" {
			continue
		}
		if extra == nil {
			extra = make(map[string]string)
		}
		extra[k] = v
	}
	return extra
}
