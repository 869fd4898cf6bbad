package domain

import (
	"github.com/shopspring/decimal"
)

// RoyaltyRecord is one title's royalty figures in the canonical template shape.
// Before aggregation a record describes a single (title, source file) pair;
// after aggregation it describes one title across every report.
type RoyaltyRecord struct {
	Title        string  `json:"title" db:"title" validate:"required"`
	ASIN         *string `json:"asin,omitempty" db:"asin"`
	Series       *string `json:"series,omitempty" db:"series"`
	SeriesOrder  *string `json:"series_order,omitempty" db:"series_order"`
	SeriesName   *string `json:"series_name,omitempty" db:"series_name"`
	Distribution *string `json:"distribution,omitempty" db:"distribution"`

	Paperbacks    decimal.Decimal `json:"paperbacks" db:"paperbacks"`
	Hardcover     decimal.Decimal `json:"hardcover" db:"hardcover"`
	EbooksPaid    decimal.Decimal `json:"ebooks_paid" db:"ebooks_paid"`
	EbooksFree    decimal.Decimal `json:"ebooks_free" db:"ebooks_free"`
	Audiobooks    decimal.Decimal `json:"audiobooks" db:"audiobooks"`
	AdOrders      decimal.Decimal `json:"ad_orders" db:"ad_orders"`
	TotalAdClicks decimal.Decimal `json:"total_ad_clicks" db:"total_ad_clicks"`
	AdClicksAMZ   decimal.Decimal `json:"ad_clicks_amz" db:"ad_clicks_amz"`
	AdClicksFB    decimal.Decimal `json:"ad_clicks_fb" db:"ad_clicks_fb"`
	Reads         decimal.Decimal `json:"reads" db:"reads"`

	GrossRoyalties   decimal.Decimal `json:"gross_royalties" db:"gross_royalties"`
	TotalSpending    decimal.Decimal `json:"total_spending" db:"total_spending"`
	SpendingAMZ      decimal.Decimal `json:"spending_amz" db:"spending_amz"`
	SpendingFB       decimal.Decimal `json:"spending_fb" db:"spending_fb"`
	SpendingBookBub  decimal.Decimal `json:"spending_bookbub" db:"spending_bookbub"`
	SpendingExternal decimal.Decimal `json:"spending_external" db:"spending_external"`
	NetRoyalties     decimal.Decimal `json:"net_royalties" db:"net_royalties"`
}

// NewRoyaltyRecord returns a record for title with every numeric column at zero.
func NewRoyaltyRecord(title string) RoyaltyRecord {
	r := RoyaltyRecord{Title: title}
	for _, col := range Schema {
		if col.IsNumeric() {
			*col.Number(&r) = decimal.Zero
		}
	}
	return r
}

// ZeroReserved force-sets every reserved column to zero.
func (r *RoyaltyRecord) ZeroReserved() {
	for _, col := range ReservedColumns() {
		*col.Number(r) = decimal.Zero
	}
}

// StringPtr returns nil for an empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
