package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"classified", New(KindActionNotFound, "action %q not found", "x"), KindActionNotFound},
		{"wrapped once", fmt.Errorf("outer: %w", New(KindRateLimit, "throttled")), KindRateLimit},
		{"plain error", errors.New("boom"), KindUnknown},
		{"nil-ish cause chain", Wrap(KindNetwork, errors.New("refused"), "openai request failed"), KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(KindService, "provider failure").WithStatus(503)
	if err.Error() != "provider failure (status 503)" {
		t.Errorf("unexpected message: %s", err.Error())
	}

	err = New(KindActionNotFound, "action %q not found", "nonexistent")
	if err.Error() != `action "nonexistent" not found` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindNetwork, cause, "anthropic request failed")
	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		kind      Kind
		retryable bool
	}{
		{KindNetwork, true},
		{KindRateLimit, true},
		{KindService, true},
		{KindAuth, false},
		{KindBadRequest, false},
		{KindAPI, false},
		{KindActionNotFound, false},
		{KindInvalidTemplate, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := IsRetryable(New(tt.kind, "x")); got != tt.retryable {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.kind, got, tt.retryable)
			}
		})
	}
}
