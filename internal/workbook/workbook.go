// Package workbook exposes spreadsheet files as named sheets of string rows.
//
// Report adapters only need sheet names and a row table per sheet, so they
// depend on the Workbook interface rather than on excelize directly; tests can
// hand them a Memory workbook instead of a file on disk.
package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over a spreadsheet's sheets
type Workbook interface {
	// SheetNames lists the sheets in workbook order
	SheetNames() []string
	// Rows returns every row of sheet as strings. Rows may be ragged:
	// trailing empty cells are not returned.
	Rows(sheet string) ([][]string, error)
}

// File is a Workbook backed by an .xlsx file opened with excelize
type File struct {
	f *excelize.File
}

// Open opens the workbook at path
func Open(path string) (*File, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &File{f: f}, nil
}

// SheetNames lists the sheets in workbook order
func (w *File) SheetNames() []string {
	return w.f.GetSheetList()
}

// Rows reads the sheet's raw cell values. Number formats are not applied so
// that a currency cell displayed as "$12.35" still yields its stored 12.345.
func (w *File) Rows(sheet string) ([][]string, error) {
	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Close releases the underlying file
func (w *File) Close() error {
	return w.f.Close()
}

// Memory is an in-memory Workbook, keyed by sheet name
type Memory struct {
	Order  []string
	Sheets map[string][][]string
}

// NewMemory builds a Memory workbook; sheets keep the order they are added in
func NewMemory() *Memory {
	return &Memory{Sheets: make(map[string][][]string)}
}

// AddSheet appends a sheet with the given rows
func (m *Memory) AddSheet(name string, rows [][]string) *Memory {
	if _, exists := m.Sheets[name]; !exists {
		m.Order = append(m.Order, name)
	}
	m.Sheets[name] = rows
	return m
}

// SheetNames lists the sheets in insertion order
func (m *Memory) SheetNames() []string {
	return m.Order
}

// Rows returns the rows of sheet
func (m *Memory) Rows(sheet string) ([][]string, error) {
	rows, ok := m.Sheets[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q does not exist", sheet)
	}
	return rows, nil
}
