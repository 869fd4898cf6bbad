package dataprocessing

import (
	"fmt"

	"acxroyalty/internal/workbook"
	"acxroyalty/pkg/contracts/domain"
)

// legacyPreambleRows precede the header row on "Sales Details"
const legacyPreambleRows = 3

// Legacy reports repeat these columns with version suffixes
// ("Qty_2018", "Qty_2019", ...); the rightmost match is used.
var (
	legacyUnits = containsAll("Qty")
	legacyGross = containsAll("Net Sales")
	legacyNet   = containsAll("Royalty", "Earned")
)

// legacyEraAdapter reads "Sales Details" from older reports
type legacyEraAdapter struct{}

func (legacyEraAdapter) Layout() Layout { return LayoutLegacyEra }

func (legacyEraAdapter) Extract(wb workbook.Workbook) ([]domain.RoyaltyRecord, error) {
	rows, err := wb.Rows(SheetLegacyEra)
	if err != nil {
		return nil, err
	}
	if len(rows) <= legacyPreambleRows {
		return nil, fmt.Errorf("sheet %q has no header row after the %d-row preamble", SheetLegacyEra, legacyPreambleRows)
	}

	header := rows[legacyPreambleRows]
	cols := columnIndex{
		title: firstMatch(header, named(colTitle)),
		asin:  firstMatch(header, named(colProductID)),
		units: lastMatch(header, legacyUnits),
		gross: lastMatch(header, legacyGross),
		net:   lastMatch(header, legacyNet),
	}
	if cols.title < 0 {
		return nil, fmt.Errorf("sheet %q is missing column %q", SheetLegacyEra, colTitle)
	}

	return extractRows(rows[legacyPreambleRows+1:], cols), nil
}
