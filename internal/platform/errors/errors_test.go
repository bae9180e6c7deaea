package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "error with cause",
			err: Wrap(KindResolver, "load", "image probe failed",
				errors.New("connection refused")),
			contains: []string{"[resolver:load]", "image probe failed", "connection refused"},
		},
		{
			name:     "error without cause",
			err:      New(KindExport, "assemble", "archive writer closed"),
			contains: []string{"[export:assemble]", "archive writer closed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("error string %q does not contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := Wrap(KindStorage, "test", "wrapped", originalErr)

	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Unwrap should return the original error")
	}
}

func TestWrapExistingTypedError(t *testing.T) {
	typed := New(KindGeneration, "image", "provider unavailable")
	rewrapped := Wrap(KindTransport, "handler", "request failed", typed)

	if rewrapped.Kind != KindGeneration {
		t.Errorf("expected original kind to win, got %s", rewrapped.Kind)
	}
}

func TestIsKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
		want bool
	}{
		{"matching kind", New(KindAuth, "verify", "bad token"), KindAuth, true},
		{"mismatched kind", New(KindAuth, "verify", "bad token"), KindStorage, false},
		{"plain error", errors.New("plain"), KindAuth, false},
		{"nil error", nil, KindAuth, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsKind(tt.err, tt.kind); got != tt.want {
				t.Errorf("IsKind() = %v, want %v", got, tt.want)
			}
		})
	}
}
