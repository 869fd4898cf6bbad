package dataprocessing

import (
	"fmt"

	"acxroyalty/internal/workbook"
	"acxroyalty/pkg/contracts/domain"
)

// Current-era source headers
const (
	colTitle        = "Title"
	colProductID    = "Product ID"
	colNetUnits     = "Net Units"
	colNetSales     = "Net Sales"
	colNetRoyalties = "Net Royalties Earned"
)

// currentEraAdapter reads "Sales Detail (Net Sales)" with its header on the first row
type currentEraAdapter struct{}

func (currentEraAdapter) Layout() Layout { return LayoutCurrentEra }

func (currentEraAdapter) Extract(wb workbook.Workbook) ([]domain.RoyaltyRecord, error) {
	rows, err := wb.Rows(SheetCurrentEra)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", SheetCurrentEra)
	}

	header := rows[0]
	cols := columnIndex{
		title: firstMatch(header, named(colTitle)),
		asin:  firstMatch(header, named(colProductID)),
		units: firstMatch(header, named(colNetUnits)),
		gross: firstMatch(header, named(colNetSales)),
		net:   firstMatch(header, named(colNetRoyalties)),
	}

	required := []struct {
		name string
		idx  int
	}{
		{colTitle, cols.title},
		{colNetUnits, cols.units},
		{colNetSales, cols.gross},
		{colNetRoyalties, cols.net},
	}
	for _, r := range required {
		if r.idx < 0 {
			return nil, fmt.Errorf("sheet %q is missing column %q", SheetCurrentEra, r.name)
		}
	}

	return extractRows(rows[1:], cols), nil
}
