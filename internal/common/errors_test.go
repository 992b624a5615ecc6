package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorConstructors_StatusAndKind(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    *Error
		kind   Kind
		status int
	}{
		{"validation", Validation("bad"), KindValidation, http.StatusBadRequest},
		{"unauthenticated", Unauthenticated("nope", cause), KindAuthentication, http.StatusUnauthorized},
		{"not found 404", NotFound(http.StatusNotFound, "missing"), KindNotFound, http.StatusNotFound},
		{"not found 411", NotFound(http.StatusLengthRequired, "missing"), KindNotFound, http.StatusLengthRequired},
		{"configuration", Configuration("no secret"), KindConfiguration, http.StatusInternalServerError},
		{"internal", Internal("oops", cause), KindServer, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.kind {
				t.Fatalf("kind: want %v, got %v", tt.kind, tt.err.Kind)
			}
			if tt.err.Status != tt.status {
				t.Fatalf("status: want %d, got %d", tt.status, tt.err.Status)
			}
		})
	}
}

func TestError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("signature is invalid")
	e := Unauthenticated("token rejected", cause)

	if !errors.Is(e, cause) {
		t.Fatal("errors.Is must see the cause")
	}
	if e.Error() != "token rejected: signature is invalid" {
		t.Fatalf("unexpected message %q", e.Error())
	}
	if Validation("x").Error() != "x" {
		t.Fatal("message without cause must be bare")
	}
}

func TestNotFound_WrapsSentinel(t *testing.T) {
	if !errors.Is(NotFound(http.StatusNotFound, "x"), ErrorNotFound) {
		t.Fatal("NotFound must wrap ErrorNotFound")
	}
}

func TestAsError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Validation("bad"))
	e, ok := AsError(wrapped)
	if !ok || e.Message != "bad" {
		t.Fatalf("AsError failed: %v %v", e, ok)
	}
	if _, ok := AsError(errors.New("plain")); ok {
		t.Fatal("plain error must not match")
	}
}
