package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", Invalid("op", "bad input"), EINVALID},
		{"wrapped domain error", fmt.Errorf("outer: %w", Conflict("op", "taken")), ECONFLICT},
		{"plain error", errors.New("boom"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"user-facing message", NotFound("order.get", "order", "42"), "order not found: 42"},
		{"internal hides details", Internal(errors.New("pq: connection refused"), "op", "db down"), "An internal error occurred. Please try again later."},
		{"plain error hides details", errors.New("boom"), "An internal error occurred. Please try again later."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrapErrorPreservesCause(t *testing.T) {
	cause := errors.New("underlying")
	err := WrapError(cause, EINTERNAL, "op", "something failed")

	if !errors.Is(err, cause) {
		t.Error("wrapped error should match the cause with errors.Is")
	}
	if ErrorOp(err) != "op" {
		t.Errorf("ErrorOp() = %q, want %q", ErrorOp(err), "op")
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(nil, EINTERNAL, "op", "msg"); err != nil {
		t.Errorf("WrapError(nil, ...) = %v, want nil", err)
	}
}

func TestIsCode(t *testing.T) {
	err := Forbidden("op", "not allowed")
	if !IsCode(err, EFORBIDDEN) {
		t.Error("IsCode should match the error's code")
	}
	if IsCode(err, ENOTFOUND) {
		t.Error("IsCode should not match a different code")
	}
}
