package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestSanitizePayloadMasksPin(t *testing.T) {
	payload := map[string]any{
		"username": "ada",
		"pin":      "1234",
		"nested": map[string]any{
			"pinHash": "$2a$10$abc",
		},
	}

	sanitized, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatal("expected sanitized payload to be a map")
	}
	if sanitized["pin"] != "******" {
		t.Fatalf("expected pin to be masked, got %v", sanitized["pin"])
	}
	nested := sanitized["nested"].(map[string]any)
	if nested["pinHash"] != "******" {
		t.Fatalf("expected nested pinHash to be masked, got %v", nested["pinHash"])
	}
	if sanitized["username"] != "ada" {
		t.Fatalf("expected username to be kept, got %v", sanitized["username"])
	}
}

func TestErrorWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Error("withdrawal failed", errors.New("boom"), Fields{"accountId": 7, "pin": "9999"})

	line := strings.TrimSpace(buf.String())
	var decoded map[string]any
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("expected json log line, got %q", line)
	}
	if decoded["level"] != "error" {
		t.Fatalf("expected level error, got %v", decoded["level"])
	}
	if decoded["error"] != "boom" {
		t.Fatalf("expected error field boom, got %v", decoded["error"])
	}
	if decoded["pin"] != "******" {
		t.Fatalf("expected pin to be masked, got %v", decoded["pin"])
	}
	if decoded["message"] != "withdrawal failed" {
		t.Fatalf("expected message, got %v", decoded["message"])
	}
}
