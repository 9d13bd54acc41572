package parser

// Kind selects which collection an uploaded sheet targets.
type Kind string

const (
	KindBills     Kind = "bills"
	KindCompanies Kind = "companies"
)

// Valid reports whether the kind is one of the two known selectors.
func (k Kind) Valid() bool {
	return k == KindBills || k == KindCompanies
}

// Layout is the detected sheet layout.
type Layout string

const (
	// LayoutTabular is one header row naming columns followed by one data
	// row per record.
	LayoutTabular Layout = "tabular"
	// LayoutBlock is free-text company lines (name/address) followed by a
	// run of date-prefixed ledger rows until the next company begins.
	LayoutBlock Layout = "block"
)

// RawSheet is the ordered rows of one parsed spreadsheet, cells as raw
// strings (numeric cells arrive unformatted, e.g. a date serial as "45000").
// Produced once per uploaded file and discarded after parsing.
type RawSheet [][]string

// Detection locates where parsing starts for the detected layout.
type Detection struct {
	Layout      Layout `json:"layout"`
	HeaderRow   int    `json:"headerRow"`   // tabular: index of the header row
	LedgerStart int    `json:"ledgerStart"` // block: index of the first ledger row
}

// FormatError means no header/ledger signature was found in the scanned
// window. Fatal for the run; nothing is written.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return e.Reason
}

// ParseError means the layout was detected but zero usable rows survived
// row-level filtering. Fatal; nothing is written.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return e.Reason
}
