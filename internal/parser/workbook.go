package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// AcceptedExtensions lists the upload formats the loader understands.
var AcceptedExtensions = []string{".xlsx", ".xls", ".csv"}

// Accepted reports whether the file name carries a loadable extension.
func Accepted(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range AcceptedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadSheet reads the uploaded file into raw rows. Excel files are read from
// the first sheet with raw cell values, so date cells arrive as serial
// strings and NormalizeCell can recognize them. CSV files are read with
// ragged rows allowed.
func LoadSheet(r io.Reader, filename string) (RawSheet, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return loadCSV(r)
	case ".xlsx", ".xls":
		return loadExcel(r)
	}
	return nil, &FormatError{Reason: fmt.Sprintf("unsupported file type %q", ext)}
}

func loadCSV(r io.Reader) (RawSheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return RawSheet(records), nil
}

func loadExcel(r io.Reader) (RawSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Reason: "workbook has no sheets"}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return RawSheet(rows), nil
}
