package dataprocessing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acxroyalty/internal/workbook"
	"acxroyalty/pkg/contracts/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(dec(want)), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func legacyRows(header []string, rows ...[]string) [][]string {
	all := [][]string{
		{"ACX Royalty Earnings Report"},
		{"Reporting period"},
		{"Generated"},
		header,
	}
	return append(all, rows...)
}

func TestAdapterFor(t *testing.T) {
	a, err := AdapterFor(LayoutCurrentEra)
	require.NoError(t, err)
	assert.Equal(t, LayoutCurrentEra, a.Layout())

	a, err = AdapterFor(LayoutLegacyEra)
	require.NoError(t, err)
	assert.Equal(t, LayoutLegacyEra, a.Layout())

	_, err = AdapterFor(LayoutUnrecognized)
	assert.ErrorIs(t, err, ErrUnrecognizedLayout)
}

func TestAdapt_Unrecognized(t *testing.T) {
	wb := workbook.NewMemory().AddSheet("Royalties", [][]string{{"Title"}, {"Moonrise"}})

	layout, records, err := Adapt(wb)
	assert.Equal(t, LayoutUnrecognized, layout)
	assert.ErrorIs(t, err, ErrUnrecognizedLayout)
	assert.Empty(t, records)
}

func TestCurrentEraAdapter(t *testing.T) {
	t.Run("maps columns", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetCurrentEra, [][]string{
			{"Title", "Author", "Product ID", "Net Units", "Net Sales", "Net Royalties Earned"},
			{"Moonrise", "J. Doe", "B00MOON", "100", "$500.00", "350"},
			{"Starfall", "J. Doe", "", "7", "1,050.25", "$735.18"},
		})

		layout, records, err := Adapt(wb)
		require.NoError(t, err)
		assert.Equal(t, LayoutCurrentEra, layout)
		require.Len(t, records, 2)

		assert.Equal(t, "Moonrise", records[0].Title)
		assert.Equal(t, "B00MOON", domain.Deref(records[0].ASIN))
		assertDecimal(t, "100", records[0].Audiobooks)
		assertDecimal(t, "500", records[0].GrossRoyalties)
		assertDecimal(t, "350", records[0].NetRoyalties)

		assert.Nil(t, records[1].ASIN)
		assertDecimal(t, "1050.25", records[1].GrossRoyalties)
		assertDecimal(t, "735.18", records[1].NetRoyalties)
	})

	t.Run("product id column absent", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetCurrentEra, [][]string{
			{"Title", "Net Units", "Net Sales", "Net Royalties Earned"},
			{"Moonrise", "1", "2", "3"},
		})

		_, records, err := Adapt(wb)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Nil(t, records[0].ASIN)
	})

	t.Run("short and blank rows", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetCurrentEra, [][]string{
			{"Title", "Product ID", "Net Units", "Net Sales", "Net Royalties Earned"},
			{"Moonrise", "B00MOON"},
			{},
			{"", "B00GHOST", "5", "5", "5"},
		})

		_, records, err := Adapt(wb)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assertDecimal(t, "0", records[0].Audiobooks)
		assertDecimal(t, "0", records[0].GrossRoyalties)
		assertDecimal(t, "0", records[0].NetRoyalties)
	})

	t.Run("missing required column", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetCurrentEra, [][]string{
			{"Title", "Net Units", "Net Sales"},
			{"Moonrise", "1", "2"},
		})

		_, _, err := Adapt(wb)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Net Royalties Earned")
	})

	t.Run("empty sheet", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetCurrentEra, nil)
		_, _, err := Adapt(wb)
		assert.Error(t, err)
	})
}

func TestLegacyEraAdapter(t *testing.T) {
	t.Run("rightmost versioned column wins", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, legacyRows(
			[]string{"Title", "Qty_2018", "Net Sales 2018", "Royalty Earned 2018", "Qty_2019", "Net Sales 2019", "Royalty Earned 2019"},
			[]string{"Moonrise", "10", "100.00", "70.00", "20", "$200.00", "$140.00"},
		))

		layout, records, err := Adapt(wb)
		require.NoError(t, err)
		assert.Equal(t, LayoutLegacyEra, layout)
		require.Len(t, records, 1)
		assertDecimal(t, "20", records[0].Audiobooks)
		assertDecimal(t, "200", records[0].GrossRoyalties)
		assertDecimal(t, "140", records[0].NetRoyalties)
	})

	t.Run("royalty needs both words", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, legacyRows(
			[]string{"Title", "Royalty Earned", "Royalty Rate", "Earned Date"},
			[]string{"Moonrise", "12.50", "0.4", "2018-06-01"},
		))

		_, records, err := Adapt(wb)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assertDecimal(t, "12.5", records[0].NetRoyalties)
	})

	t.Run("absent columns default to zero", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, legacyRows(
			[]string{"Title", "Author"},
			[]string{"Moonrise", "J. Doe"},
		))

		_, records, err := Adapt(wb)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.True(t, records[0].Audiobooks.IsZero())
		assert.True(t, records[0].GrossRoyalties.IsZero())
		assert.True(t, records[0].NetRoyalties.IsZero())
		assert.Nil(t, records[0].ASIN)
	})

	t.Run("drops rows without title", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, legacyRows(
			[]string{"Title", "Product ID", "Qty"},
			[]string{"Moonrise", "B00MOON", "1"},
			[]string{"", "", "99"},
			[]string{"Total"},
			[]string{"   ", "", "5"},
		))

		_, records, err := Adapt(wb)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "Moonrise", records[0].Title)
		assert.Equal(t, "B00MOON", domain.Deref(records[0].ASIN))
		assert.Equal(t, "Total", records[1].Title)
	})

	t.Run("preamble rows are skipped", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, [][]string{
			{"Title", "Qty"},
			{"Preamble Book", "1"},
			{"Another", "2"},
			{"Title", "Qty"},
			{"Moonrise", "3"},
		})

		_, records, err := Adapt(wb)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Moonrise", records[0].Title)
	})

	t.Run("missing title column", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, legacyRows(
			[]string{"Book", "Qty"},
			[]string{"Moonrise", "3"},
		))
		_, _, err := Adapt(wb)
		assert.Error(t, err)
	})

	t.Run("too short for a header", func(t *testing.T) {
		wb := workbook.NewMemory().AddSheet(SheetLegacyEra, [][]string{{"x"}, {"y"}})
		_, _, err := Adapt(wb)
		assert.Error(t, err)
		assert.False(t, errors.Is(err, ErrUnrecognizedLayout))
	})
}

func TestColumnMatching(t *testing.T) {
	header := []string{"Qty_2018", "Title", "Qty_2019", "Qty"}

	assert.Equal(t, 3, lastMatch(header, containsAll("Qty")))
	assert.Equal(t, 0, firstMatch(header, containsAll("Qty")))
	assert.Equal(t, 2, lastMatch(header, containsAll("Qty_", "2019")))
	assert.Equal(t, 1, firstMatch(header, named("Title")))
	assert.Equal(t, -1, firstMatch(header, named("title")))
	assert.Equal(t, -1, lastMatch(nil, containsAll("Qty")))
}
