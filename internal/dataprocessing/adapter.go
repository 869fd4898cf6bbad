package dataprocessing

import (
	"errors"
	"fmt"
	"strings"

	"acxroyalty/internal/workbook"
	"acxroyalty/pkg/contracts/domain"
)

// ErrUnrecognizedLayout is returned for workbooks matching no known report format
var ErrUnrecognizedLayout = errors.New("unrecognized report layout")

// Adapter extracts canonical records from a workbook of one layout
type Adapter interface {
	Layout() Layout
	Extract(wb workbook.Workbook) ([]domain.RoyaltyRecord, error)
}

var adapters = map[Layout]Adapter{
	LayoutCurrentEra: currentEraAdapter{},
	LayoutLegacyEra:  legacyEraAdapter{},
}

// AdapterFor returns the adapter registered for layout
func AdapterFor(layout Layout) (Adapter, error) {
	a, ok := adapters[layout]
	if !ok {
		return nil, ErrUnrecognizedLayout
	}
	return a, nil
}

// Adapt classifies wb and runs the matching adapter
func Adapt(wb workbook.Workbook) (Layout, []domain.RoyaltyRecord, error) {
	layout := Classify(wb.SheetNames())
	adapter, err := AdapterFor(layout)
	if err != nil {
		return layout, nil, err
	}
	records, err := adapter.Extract(wb)
	if err != nil {
		return layout, nil, fmt.Errorf("%s: %w", layout, err)
	}
	return layout, records, nil
}

// columnPredicate selects a source column by its header text
type columnPredicate func(header string) bool

func named(name string) columnPredicate {
	return func(header string) bool { return header == name }
}

func containsAll(parts ...string) columnPredicate {
	return func(header string) bool {
		for _, p := range parts {
			if !strings.Contains(header, p) {
				return false
			}
		}
		return true
	}
}

// firstMatch returns the leftmost header index satisfying match, or -1
func firstMatch(header []string, match columnPredicate) int {
	for i, h := range header {
		if match(h) {
			return i
		}
	}
	return -1
}

// lastMatch returns the rightmost header index satisfying match, or -1.
// Legacy reports append a new column per period, so the rightmost is current.
func lastMatch(header []string, match columnPredicate) int {
	for i := len(header) - 1; i >= 0; i-- {
		if match(header[i]) {
			return i
		}
	}
	return -1
}

// columnIndex is the resolved position of each field an adapter reads; -1
// means the column is absent from the sheet.
type columnIndex struct {
	title, asin, units, gross, net int
}

func (c columnIndex) row(row []string) rawRow {
	return rawRow{
		title: cell(row, c.title),
		asin:  cell(row, c.asin),
		units: cell(row, c.units),
		gross: cell(row, c.gross),
		net:   cell(row, c.net),
	}
}

func extractRows(rows [][]string, cols columnIndex) []domain.RoyaltyRecord {
	records := make([]domain.RoyaltyRecord, 0, len(rows))
	for _, row := range rows {
		if rec, ok := clean(cols.row(row)); ok {
			records = append(records, rec)
		}
	}
	return records
}
