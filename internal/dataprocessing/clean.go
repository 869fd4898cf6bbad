package dataprocessing

import (
	"strings"

	"github.com/shopspring/decimal"

	"acxroyalty/pkg/contracts/domain"
)

var currencyStripper = strings.NewReplacer("$", "", ",", "")

// ParseMoney coerces a currency cell such as "$1,234.50" to a decimal.
// Blank or non-numeric input yields zero; it never fails.
func ParseMoney(raw string) decimal.Decimal {
	return parseDecimal(currencyStripper.Replace(raw))
}

// ParseCount coerces a unit-count cell to a decimal, zero when not numeric
func ParseCount(raw string) decimal.Decimal {
	return parseDecimal(raw)
}

func parseDecimal(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// rawRow holds the cells an adapter picked for one report row, before cleaning
type rawRow struct {
	title string
	asin  string
	units string
	gross string
	net   string
}

// clean applies the layout-independent cleaning pass. It reports false for
// rows without a usable title.
func clean(raw rawRow) (domain.RoyaltyRecord, bool) {
	// A whitespace-only title counts as missing. The title itself is kept
	// untrimmed for grouping.
	if strings.TrimSpace(raw.title) == "" {
		return domain.RoyaltyRecord{}, false
	}

	rec := domain.NewRoyaltyRecord(raw.title)
	rec.ASIN = domain.StringPtr(raw.asin)
	rec.Audiobooks = ParseCount(raw.units)
	rec.GrossRoyalties = ParseMoney(raw.gross)
	rec.NetRoyalties = ParseMoney(raw.net)
	rec.ZeroReserved()
	return rec, true
}

// cell returns row[idx], or "" when the column is absent or the row is short
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
