package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a generated fixture workbook
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// CurrentEraSheet builds a "Sales Detail (Net Sales)" sheet with the standard
// header followed by rows of Title, Product ID, Net Units, Net Sales and
// Net Royalties Earned.
func CurrentEraSheet(rows ...[]interface{}) Sheet {
	header := []interface{}{"Title", "Author", "Product ID", "Net Units", "Net Sales", "Net Royalties Earned"}
	all := [][]interface{}{header}
	for _, r := range rows {
		// Author column sits between Title and Product ID in real reports.
		withAuthor := append([]interface{}{r[0], "A. Narrator"}, r[1:]...)
		all = append(all, withAuthor)
	}
	return Sheet{Name: "Sales Detail (Net Sales)", Rows: all}
}

// LegacyEraSheet builds a "Sales Details" sheet: three preamble rows, then
// header, then rows.
func LegacyEraSheet(header []interface{}, rows ...[]interface{}) Sheet {
	all := [][]interface{}{
		{"ACX Royalty Earnings Report"},
		{"Reporting period", "2018-01-01 to 2018-12-31"},
		{"Generated by ACX"},
		header,
	}
	all = append(all, rows...)
	return Sheet{Name: "Sales Details", Rows: all}
}

// WorkbookFixtures writes generated .xlsx reports under Dir
type WorkbookFixtures struct {
	Dir string
}

// NewWorkbookFixtures creates a fixtures manager rooted at dir
func NewWorkbookFixtures(dir string) *WorkbookFixtures {
	return &WorkbookFixtures{Dir: dir}
}

// Write saves a workbook with the given sheets at Dir/rel and returns its path
func (f *WorkbookFixtures) Write(t *testing.T, rel string, sheets ...Sheet) string {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	defaultSheet := wb.GetSheetName(0)
	for i, s := range sheets {
		if i == 0 {
			if err := wb.SetSheetName(defaultSheet, s.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := wb.NewSheet(s.Name); err != nil {
			t.Fatalf("create sheet %q: %v", s.Name, err)
		}

		for r, row := range s.Rows {
			addr, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := wb.SetSheetRow(s.Name, addr, &values); err != nil {
				t.Fatalf("write row %d of %q: %v", r+1, s.Name, err)
			}
		}
	}

	path := filepath.Join(f.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}
