package domain

import (
	"github.com/shopspring/decimal"
)

// ColumnKind describes how a template column is typed and rendered.
type ColumnKind int

const (
	// KindKey is the merge key column (Title).
	KindKey ColumnKind = iota
	// KindText is an optional free-text column.
	KindText
	// KindCount is a numeric count column (units, clicks, reads).
	KindCount
	// KindMoney is a dollar amount column, rendered with two decimals.
	KindMoney
)

// MergeRule is the reducer applied to a column when records share a title.
type MergeRule int

const (
	// MergeKey marks the grouping column itself.
	MergeKey MergeRule = iota
	// MergeFirst keeps the first non-null value in input order.
	MergeFirst
	// MergeSum adds the values of every record in the group.
	MergeSum
)

// Column is one entry of the canonical template schema.
type Column struct {
	Header   string
	Kind     ColumnKind
	Merge    MergeRule
	Reserved bool // not populated by ACX reports; always zero

	text   func(*RoyaltyRecord) **string
	number func(*RoyaltyRecord) *decimal.Decimal
}

// IsNumeric reports whether the column holds a decimal value.
func (c Column) IsNumeric() bool {
	return c.Kind == KindCount || c.Kind == KindMoney
}

// Text returns the address of the column's optional text field on r.
// It returns nil for key and numeric columns.
func (c Column) Text(r *RoyaltyRecord) **string {
	if c.text == nil {
		return nil
	}
	return c.text(r)
}

// Number returns the address of the column's decimal field on r.
// It returns nil for key and text columns.
func (c Column) Number(r *RoyaltyRecord) *decimal.Decimal {
	if c.number == nil {
		return nil
	}
	return c.number(r)
}

func textColumn(header string, f func(*RoyaltyRecord) **string) Column {
	return Column{Header: header, Kind: KindText, Merge: MergeFirst, text: f}
}

func countColumn(header string, reserved bool, f func(*RoyaltyRecord) *decimal.Decimal) Column {
	return Column{Header: header, Kind: KindCount, Merge: MergeSum, Reserved: reserved, number: f}
}

func moneyColumn(header string, reserved bool, f func(*RoyaltyRecord) *decimal.Decimal) Column {
	return Column{Header: header, Kind: KindMoney, Merge: MergeSum, Reserved: reserved, number: f}
}

// Template header names referenced outside the schema table.
const (
	HeaderTitle          = "Title"
	HeaderAudiobooks     = "Audiobooks"
	HeaderGrossRoyalties = "Gross Royalties ($)"
	HeaderNetRoyalties   = "Net Royalties ($)"
)

// Schema is the fixed, ordered Amazon template every report is normalized into.
// It is shared with the other sales channels, which is why most numeric columns
// are reserved for this source.
var Schema = []Column{
	{Header: HeaderTitle, Kind: KindKey, Merge: MergeKey},
	textColumn("ASIN", func(r *RoyaltyRecord) **string { return &r.ASIN }),
	textColumn("Series", func(r *RoyaltyRecord) **string { return &r.Series }),
	textColumn("Book's Order in Series", func(r *RoyaltyRecord) **string { return &r.SeriesOrder }),
	textColumn("Series Name", func(r *RoyaltyRecord) **string { return &r.SeriesName }),
	countColumn("Paperbacks", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.Paperbacks }),
	textColumn("Distribution", func(r *RoyaltyRecord) **string { return &r.Distribution }),
	countColumn("Hardcover", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.Hardcover }),
	countColumn("Ebooks (Paid)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.EbooksPaid }),
	countColumn("Ebooks (Free)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.EbooksFree }),
	countColumn(HeaderAudiobooks, false, func(r *RoyaltyRecord) *decimal.Decimal { return &r.Audiobooks }),
	countColumn("Ad Orders", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.AdOrders }),
	countColumn("Total Ad Clicks", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.TotalAdClicks }),
	countColumn("Ad Clicks (AMZ)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.AdClicksAMZ }),
	countColumn("Ad Clicks (FB)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.AdClicksFB }),
	countColumn("Reads", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.Reads }),
	moneyColumn(HeaderGrossRoyalties, false, func(r *RoyaltyRecord) *decimal.Decimal { return &r.GrossRoyalties }),
	moneyColumn("Total Spending ($)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.TotalSpending }),
	moneyColumn("Spending (AMZ) ($)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.SpendingAMZ }),
	moneyColumn("Spending (FB) ($)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.SpendingFB }),
	moneyColumn("Spending (BookBub) ($)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.SpendingBookBub }),
	moneyColumn("Spending (External) ($)", true, func(r *RoyaltyRecord) *decimal.Decimal { return &r.SpendingExternal }),
	moneyColumn(HeaderNetRoyalties, false, func(r *RoyaltyRecord) *decimal.Decimal { return &r.NetRoyalties }),
}

var reservedColumns = func() []Column {
	var cols []Column
	for _, c := range Schema {
		if c.Reserved {
			cols = append(cols, c)
		}
	}
	return cols
}()

// ReservedColumns lists the fourteen columns ACX never populates.
func ReservedColumns() []Column {
	return reservedColumns
}

// Headers returns the template header row in schema order.
func Headers() []string {
	headers := make([]string, len(Schema))
	for i, c := range Schema {
		headers[i] = c.Header
	}
	return headers
}

// ColumnByHeader looks up a schema column by its template header.
func ColumnByHeader(header string) (Column, bool) {
	for _, c := range Schema {
		if c.Header == header {
			return c, true
		}
	}
	return Column{}, false
}
