package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAsUnwrapsChain(t *testing.T) {
	base := NotFound("route not found")
	wrapped := fmt.Errorf("load: %w", base)

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("expected apierr in chain")
	}
	if got.Status != http.StatusNotFound || got.Code != "not_found" {
		t.Fatalf("unexpected error: %+v", got)
	}
	if got.Error() != "route not found" {
		t.Fatalf("unexpected message: %q", got.Error())
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Fatal("plain error should not match")
	}
}

func TestErrorFallbackMessages(t *testing.T) {
	if msg := New(http.StatusTeapot, "", nil).Error(); msg != "api error (418)" {
		t.Fatalf("unexpected: %q", msg)
	}
	if msg := New(0, "boom", nil).Error(); msg != "boom" {
		t.Fatalf("unexpected: %q", msg)
	}
	var nilErr *Error
	if nilErr.Error() != "" {
		t.Fatal("nil error should render empty")
	}
}
