// Package errors provides custom error types for the spendlog web app.
// All service-layer errors should use AppError so that handlers can render
// a consistent inline message without leaking internal details to users.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// errors.Is(err, ErrExpenseNotFound) matches wrapped copies of a sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// As returns err as an *AppError, or nil when it is not one.
func As(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password.", StatusCode: http.StatusUnauthorized}
	ErrSessionExpired     = &AppError{Code: "SESSION_EXPIRED", Message: "Session expired", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Page not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrPasswordMismatch  = &AppError{Code: "PASSWORD_MISMATCH", Message: "Passwords do not match.", StatusCode: http.StatusBadRequest}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "Username already taken.", StatusCode: http.StatusBadRequest}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
	ErrInvalidAmount   = &AppError{Code: "INVALID_INPUT", Message: "Amount must be a number with at most two decimal places", StatusCode: http.StatusBadRequest}
)

// Backup errors.
var (
	ErrInvalidBackup = &AppError{Code: "INVALID_BACKUP", Message: "Backup file is not valid", StatusCode: http.StatusBadRequest}
)
