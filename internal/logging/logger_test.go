package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strings"
	"testing"
)

// captureLine runs fn with the stdlib logger redirected and returns the
// decoded JSON payload of the single line it emitted.
func captureLine(t *testing.T, fn func()) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	fn()

	line := strings.TrimSpace(buf.String())
	start := strings.IndexByte(line, '{')
	if start < 0 {
		t.Fatalf("no JSON payload in log line %q", line)
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line[start:]), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, line)
	}
	return m
}

func TestWarn_IncludesLevelAndError(t *testing.T) {
	m := captureLine(t, func() {
		Warn("hand refresh after play failed", errors.New("boom"), Fields{"battle_code": "TEST0001"})
	})
	if m["level"] != "warn" {
		t.Fatalf("expected warn level, got %v", m["level"])
	}
	if m["error"] != "boom" {
		t.Fatalf("expected error text in fields, got %v", m["error"])
	}
	if m["battle_code"] != "TEST0001" {
		t.Fatalf("expected caller fields preserved, got %v", m)
	}
}

func TestWarn_NilErrorAndFields(t *testing.T) {
	m := captureLine(t, func() { Warn("timeout scanner failed", nil, nil) })
	if m["level"] != "warn" || m["msg"] != "timeout scanner failed" {
		t.Fatalf("unexpected payload %v", m)
	}
	if _, ok := m["error"]; ok {
		t.Fatalf("nil error must not add an error field: %v", m)
	}
}
