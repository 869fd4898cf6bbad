package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		sheets []string
		want   Layout
	}{
		{"current era only", []string{"Sales Detail (Net Sales)"}, LayoutCurrentEra},
		{"current era among others", []string{"Summary", "Sales Detail (Net Sales)", "Returns"}, LayoutCurrentEra},
		{"current era wins over legacy", []string{"Sales Details", "Sales Detail (Net Sales)"}, LayoutCurrentEra},
		{"legacy era", []string{"Cover", "Sales Details"}, LayoutLegacyEra},
		{"names are case sensitive", []string{"sales details", "SALES DETAIL (NET SALES)"}, LayoutUnrecognized},
		{"near miss", []string{"Sales Detail", "Sales Details (2018)"}, LayoutUnrecognized},
		{"no sheets", nil, LayoutUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sheets))
		})
	}
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "current_era", LayoutCurrentEra.String())
	assert.Equal(t, "legacy_era", LayoutLegacyEra.String())
	assert.Equal(t, "unrecognized", LayoutUnrecognized.String())
	assert.Equal(t, "unrecognized", Layout(42).String())
}
