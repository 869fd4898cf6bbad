package dataprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acxroyalty/pkg/contracts/domain"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$1,234.50", "1234.5"},
		{"1234.50", "1234.5"},
		{"  $12.00 ", "12"},
		{"-$3.25", "-3.25"},
		{"$-3.25", "-3.25"},
		{"12.345", "12.345"},
		{"1.5E+3", "1500"},
		{"", "0"},
		{"   ", "0"},
		{"N/A", "0"},
		{"$", "0"},
		{"(12.00)", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseMoney(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"100", "100"},
		{" 50 ", "50"},
		{"2.5", "2.5"},
		{"-1", "-1"},
		{"", "0"},
		{"ten", "0"},
		{"1,000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseCount(tt.raw)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestClean(t *testing.T) {
	t.Run("coerces and zeroes reserved", func(t *testing.T) {
		rec, ok := clean(rawRow{title: "Moonrise", asin: "B0X", units: "3", gross: "$1,000.10", net: "bad"})
		require.True(t, ok)

		assert.Equal(t, "Moonrise", rec.Title)
		assert.Equal(t, "B0X", domain.Deref(rec.ASIN))
		assert.True(t, rec.Audiobooks.Equal(decimal.NewFromInt(3)))
		assert.True(t, rec.GrossRoyalties.Equal(decimal.RequireFromString("1000.10")))
		assert.True(t, rec.NetRoyalties.IsZero())
		for _, col := range domain.ReservedColumns() {
			assert.True(t, col.Number(&rec).IsZero(), col.Header)
		}
	})

	t.Run("empty asin is null", func(t *testing.T) {
		rec, ok := clean(rawRow{title: "Moonrise"})
		require.True(t, ok)
		assert.Nil(t, rec.ASIN)
	})

	t.Run("title is not trimmed", func(t *testing.T) {
		rec, ok := clean(rawRow{title: " Moonrise"})
		require.True(t, ok)
		assert.Equal(t, " Moonrise", rec.Title)
	})

	for _, title := range []string{"", "   ", "\t"} {
		_, ok := clean(rawRow{title: title, units: "1"})
		assert.False(t, ok, "title %q", title)
	}
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "b", cell(row, 1))
	assert.Equal(t, "", cell(row, 2))
	assert.Equal(t, "", cell(row, -1))
	assert.Equal(t, "", cell(nil, 0))
}
