package testutil

import (
	"errors"
	"strings"
	"testing"

	apperrors "spendlog/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code
// and returns it.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertAppErrorMessage is AssertAppError plus a check that the user-facing
// message starts with prefix.
func AssertAppErrorMessage(t *testing.T, err error, expectedCode, prefix string) {
	t.Helper()

	appErr := AssertAppError(t, err, expectedCode)
	if !strings.HasPrefix(appErr.Message, prefix) {
		t.Errorf("expected message starting with %q, got %q", prefix, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
