package exporter

import (
	"github.com/shopspring/decimal"

	"acxroyalty/pkg/contracts/domain"
)

// formatMoney renders a dollar amount with exactly 2 decimal places
func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatCount renders a count as its exact decimal value; whole numbers have
// no fractional part
func formatCount(d decimal.Decimal) string {
	return d.String()
}

// formatText renders an optional text column; null is an empty cell
func formatText(s *string) string {
	return domain.Deref(s)
}

// formatColumn renders one schema column of r
func formatColumn(col domain.Column, r *domain.RoyaltyRecord) string {
	switch col.Kind {
	case domain.KindKey:
		return r.Title
	case domain.KindText:
		return formatText(*col.Text(r))
	case domain.KindMoney:
		return formatMoney(*col.Number(r))
	default:
		return formatCount(*col.Number(r))
	}
}
