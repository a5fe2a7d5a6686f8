package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" || err.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected wrapped error: %+v", err)
	}
	if !errors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to cause")
	}
	if !errors.Is(err, ErrInternalServer) {
		t.Error("expected wrapped error to match its sentinel")
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "name is required")

	if err.Message != "name is required" {
		t.Errorf("message = %q", err.Message)
	}
	if err.Code != ErrInvalidInput.Code || err.StatusCode != http.StatusBadRequest {
		t.Errorf("code/status not carried over: %+v", err)
	}
	if errors.Is(err, ErrInvalidAmount) {
		t.Error("different sentinels must not match")
	}
}

func TestAppError_As(t *testing.T) {
	var err error = fmt.Errorf("creating expense: %w", ErrBudgetNotFound)

	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected errors.As to find AppError")
	}
	if appErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", appErr.StatusCode)
	}
}
