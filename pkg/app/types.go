package app

import (
	"fmt"
	"strings"
)

// Supported output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// ValidateOutputFormat checks that format is one of the supported output formats.
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	}
	return NewError(ErrCodeInvalidInput, fmt.Sprintf("unsupported output format: %s", format), nil)
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeDeviceAccess   = "DEVICE_ACCESS"
	ErrCodeDecodeFailed   = "DECODE_FAILED"
	ErrCodeEncodeFailed   = "ENCODE_FAILED"
	ErrCodeSlotOutOfRange = "SLOT_OUT_OF_RANGE"
	ErrCodeInvalidLayout  = "INVALID_LAYOUT"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
