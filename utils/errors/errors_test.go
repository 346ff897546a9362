package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	if got := Wrap(ErrNotFound, "X", "x", 500); got != ErrNotFound {
		t.Errorf("Wrap replaced an APIError: %v", got)
	}

	got := Wrap(fmt.Errorf("network: invalid status 500"), ErrUpstream.Code, ErrUpstream.Message, ErrUpstream.Status)
	if got.Status != http.StatusBadGateway || got.Details != "network: invalid status 500" {
		t.Errorf("Wrap = %+v", got)
	}
	if !stderrors.Is(got, ErrUpstream) {
		t.Error("wrapped error does not match ErrUpstream")
	}
}

func TestWithDetailsKeepsIdentity(t *testing.T) {
	err := ErrInvalidType.WithDetails("spaceship")
	if !stderrors.Is(err, ErrInvalidType) {
		t.Error("WithDetails copy does not match its sentinel")
	}
	if stderrors.Is(err, ErrInvalidInput) {
		t.Error("WithDetails copy matches an unrelated sentinel")
	}
	if ErrInvalidType.Details != "" {
		t.Error("WithDetails modified the sentinel")
	}
}
