package logger

import "testing"

func TestSanitizeKVsRedactsSecrets(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "true")

	out := sanitizeKVs([]interface{}{"username", "anna", "password", "hunter2", "Authorization", "Basic abc", "dangling"})
	if len(out) != 7 {
		t.Fatalf("unexpected length: %d", len(out))
	}
	if out[1] != "anna" {
		t.Fatalf("username should pass through, got %v", out[1])
	}
	if out[3] != "[REDACTED]" || out[5] != "[REDACTED]" {
		t.Fatalf("expected redaction, got %v / %v", out[3], out[5])
	}
	if out[6] != "dangling" {
		t.Fatalf("odd trailing key should be kept, got %v", out[6])
	}
}

func TestSanitizeKVsDisabled(t *testing.T) {
	t.Setenv("LOG_REDACTION_ENABLED", "off")

	out := sanitizeKVs([]interface{}{"password", "hunter2"})
	if out[1] != "hunter2" {
		t.Fatalf("redaction disabled, got %v", out[1])
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production", "test"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		log.With("component", "test").Debug("hello", "k", "v")
	}
}
