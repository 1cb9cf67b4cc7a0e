package transport

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	conn := NewConnectionError(errors.New("refused"))
	timeout := NewTimeoutError(errors.New("deadline"))

	if !IsConnection(conn) || IsTimeout(conn) {
		t.Error("connection error misclassified")
	}
	if !IsTimeout(timeout) || IsConnection(timeout) {
		t.Error("timeout error misclassified")
	}
	if IsConnection(errors.New("plain")) {
		t.Error("plain error must not classify")
	}
	if !IsConnection(fmt.Errorf("wrapped: %w", conn)) {
		t.Error("wrapped error must classify")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("refused")
	err := NewConnectionError(cause)
	if !errors.Is(err, cause) {
		t.Error("expected cause in chain")
	}
}

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeConnection, "connection"},
		{ErrCodeTimeout, "timeout"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
