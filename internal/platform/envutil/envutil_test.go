package envutil

import (
	"testing"
	"time"
)

func TestReaders(t *testing.T) {
	t.Setenv("ENVUTIL_INT", " 42 ")
	t.Setenv("ENVUTIL_BAD_INT", "x")
	t.Setenv("ENVUTIL_BOOL", "yes")
	t.Setenv("ENVUTIL_SECONDS", "7")
	t.Setenv("ENVUTIL_LIST", "a, b,,c ")

	if got := Int("ENVUTIL_INT", 1); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("ENVUTIL_BAD_INT", 1); got != 1 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if !Bool("ENVUTIL_BOOL", false) {
		t.Fatal("Bool: expected true")
	}
	if Bool("ENVUTIL_MISSING", false) {
		t.Fatal("Bool default: expected false")
	}
	if got := Seconds("ENVUTIL_SECONDS", time.Second); got != 7*time.Second {
		t.Fatalf("Seconds: got %s", got)
	}
	if got := String("ENVUTIL_MISSING", "def"); got != "def" {
		t.Fatalf("String default: got %q", got)
	}
	got := List("ENVUTIL_LIST", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("List: got %v", got)
	}
}
