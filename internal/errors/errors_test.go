package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "layout error type", errType: ErrTypeLayout, expected: "LAYOUT"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
		{name: "no data error type", errType: ErrTypeNoData, expected: "NO_DATA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    NewAppValidationError("workers must be positive"),
			wantMessage: "[VALIDATION] workers must be positive",
		},
		{
			name:        "error with cause",
			appError:    NewParsingError("failed to read report.xlsx", fmt.Errorf("zip: not a valid zip file")),
			wantMessage: "[PARSING] failed to read report.xlsx: zip: not a valid zip file",
		},
		{
			name:        "not found",
			appError:    NewNotFoundError("sheet Sales Details"),
			wantMessage: "[NOT_FOUND] sheet Sales Details not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := NewStorageError("write failed", sentinel)

	assert.True(t, errors.Is(err, sentinel))

	var appErr *AppError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("bad file", nil).
		WithContext("file", "2019.xlsx").
		WithContext("layout", "legacy")

	assert.Equal(t, "2019.xlsx", err.Context["file"])
	assert.Equal(t, "legacy", err.Context["layout"])

	bare := &AppError{Type: ErrTypeConfig}
	bare.WithContext("key", 1)
	assert.Equal(t, 1, bare.Context["key"])
}

func TestIsType(t *testing.T) {
	layout := NewLayoutError("no known sheet", nil)
	parsing := NewParsingError("file failed", layout)

	assert.True(t, IsType(parsing, ErrTypeParsing))
	assert.True(t, IsType(parsing, ErrTypeLayout))
	assert.True(t, IsType(fmt.Errorf("outer: %w", parsing), ErrTypeLayout))
	assert.False(t, IsType(parsing, ErrTypeStorage))
	assert.False(t, IsType(errors.New("plain"), ErrTypeParsing))
	assert.False(t, IsType(nil, ErrTypeParsing))
}
