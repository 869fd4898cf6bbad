package dataprocessing

// Layout identifies one of the historical ACX report formats
type Layout int

const (
	// LayoutUnrecognized is any workbook matching no known format
	LayoutUnrecognized Layout = iota
	// LayoutCurrentEra reports carry a "Sales Detail (Net Sales)" sheet
	LayoutCurrentEra
	// LayoutLegacyEra reports carry a "Sales Details" sheet with a 3-row preamble
	LayoutLegacyEra
)

// Sheet names that identify each layout
const (
	SheetCurrentEra = "Sales Detail (Net Sales)"
	SheetLegacyEra  = "Sales Details"
)

// String returns the layout name used in logs and the run ledger
func (l Layout) String() string {
	switch l {
	case LayoutCurrentEra:
		return "current_era"
	case LayoutLegacyEra:
		return "legacy_era"
	default:
		return "unrecognized"
	}
}

// Classify decides a workbook's layout from its sheet names.
// A current-era sheet wins over a legacy one when both are present.
func Classify(sheetNames []string) Layout {
	var legacy bool
	for _, name := range sheetNames {
		switch name {
		case SheetCurrentEra:
			return LayoutCurrentEra
		case SheetLegacyEra:
			legacy = true
		}
	}
	if legacy {
		return LayoutLegacyEra
	}
	return LayoutUnrecognized
}
