// Package errors provides error codes shared across the liftbook backend.
package errors

import "fmt"

// ErrorCode identifies a class of failure that callers can branch on.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Entry errors
	ErrEntryNotFound ErrorCode = "ENTRY_NOT_FOUND"
	ErrEntryInvalid  ErrorCode = "ENTRY_INVALID"

	// Local storage errors
	ErrStorage       ErrorCode = "STORAGE_ERROR"
	ErrStorageDecode ErrorCode = "STORAGE_DECODE_FAILED"

	// Sync errors
	ErrSyncTransport ErrorCode = "SYNC_TRANSPORT_FAILED"
	ErrSyncPush      ErrorCode = "SYNC_PUSH_FAILED"
	ErrSyncDecode    ErrorCode = "SYNC_DECODE_FAILED"

	// Remote slot errors
	ErrSlotRead  ErrorCode = "SLOT_READ_FAILED"
	ErrSlotWrite ErrorCode = "SLOT_WRITE_FAILED"
	ErrSlotEmpty ErrorCode = "SLOT_EMPTY"

	// Config errors
	ErrConfig ErrorCode = "CONFIG_INVALID"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap wraps an existing error with an error code.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
