package dataprocessing

import (
	"errors"
	"fmt"
	"path/filepath"

	apperrors "acxroyalty/internal/errors"
	"acxroyalty/internal/workbook"
	"acxroyalty/pkg/contracts/domain"
)

// ParseFile opens one report and extracts its canonical records.
//
// It is the per-file error boundary: open failures, adapter errors and panics
// from the spreadsheet reader all come back as a PARSING AppError carrying the
// file name. A workbook of no known layout returns a LAYOUT AppError wrapping
// ErrUnrecognizedLayout.
func ParseFile(path string) (layout Layout, records []domain.RoyaltyRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			layout, records = LayoutUnrecognized, nil
			err = fileError(path, fmt.Errorf("panic: %v", r))
		}
	}()

	wb, err := workbook.Open(path)
	if err != nil {
		return LayoutUnrecognized, nil, fileError(path, err)
	}
	defer wb.Close()

	layout, records, err = Adapt(wb)
	if err != nil {
		return layout, nil, fileError(path, err)
	}
	return layout, records, nil
}

func fileError(path string, cause error) error {
	name := filepath.Base(path)
	if errors.Is(cause, ErrUnrecognizedLayout) {
		return apperrors.NewLayoutError(fmt.Sprintf("%s matches no known report layout", name), cause).
			WithContext("file", path)
	}
	return apperrors.NewParsingError(fmt.Sprintf("failed to process %s", name), cause).
		WithContext("file", path)
}
