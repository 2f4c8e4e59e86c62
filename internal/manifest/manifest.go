// Package manifest writes the per-file summary of an affidavit batch as CSV
// or XLSX.
package manifest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"gpcaffidavit/internal/session"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

const sheetName = "Batch"

// columns defines the header row.
var columns = []string{
	"File Name",
	"Status",
	"Case Number",
	"Claimant",
	"Registry",
	"Date Lodged",
	"Defendant Count",
	"Defendants",
	"Affidavits",
	"Error",
}

// Writer wraps csv.Writer for the manifest rows.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteItems writes one row per batch item.
func (w *Writer) WriteItems(items []session.Item) error {
	for i := range items {
		if err := w.csv.Write(itemToRow(&items[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// CSV renders items as a BOM-prefixed CSV document.
func CSV(items []session.Item) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)
	w := NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	if err := w.WriteItems(items); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// XLSX renders items as a single-sheet workbook.
func XLSX(items []session.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	for r := range items {
		row := itemToRow(&items[r])
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if c == 6 {
				n, _ := strconv.Atoi(v)
				_ = f.SetCellValue(sheetName, cell, n)
				continue
			}
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 32) // file
	_ = f.SetColWidth(sheetName, "B", "B", 12) // status
	_ = f.SetColWidth(sheetName, "C", "C", 18)
	_ = f.SetColWidth(sheetName, "D", "E", 36)
	_ = f.SetColWidth(sheetName, "F", "G", 14)
	_ = f.SetColWidth(sheetName, "H", "J", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// itemToRow converts one item to a row. Case columns stay empty until the
// file has been extracted.
func itemToRow(item *session.Item) []string {
	row := make([]string, len(columns))
	row[0] = item.FileName
	row[1] = string(item.Status)
	row[9] = item.Error

	names := make([]string, 0, len(item.Affidavits))
	for _, a := range item.Affidavits {
		names = append(names, a.FileName)
	}
	row[8] = strings.Join(names, "; ")

	if item.Case == nil {
		row[6] = "0"
		return row
	}
	row[2] = item.Case.CaseNumber
	row[3] = item.Case.Claimant
	row[4] = item.Case.Registry
	row[5] = item.Case.DateLodged
	row[6] = strconv.Itoa(len(item.Case.Defendants))
	row[7] = strings.Join(item.Case.DefendantNames(), "; ")
	return row
}
