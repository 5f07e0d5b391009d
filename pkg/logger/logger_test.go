package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Format: JSON, Output: &buf, Service: "console"})

	log.Info("section changed", "section", "doctors")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "console" {
		t.Errorf("expected service attr 'console', got %v", entry[SERVICE])
	}
	if entry["section"] != "doctors" {
		t.Errorf("expected section attr 'doctors', got %v", entry["section"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug level", DEBUG, true, true},
		{"info level", INFO, false, true},
		{"warn level", WARN, false, false},
		{"unknown falls back to info", "verbose", false, true},
		{"empty falls back to info", EMPTY, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(Config{Level: tt.level, Format: TEXT, Output: &buf})

			log.Debug("debug-line")
			log.Info("info-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug emitted = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info-line"); got != tt.wantInfo {
				t.Errorf("info emitted = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}

func TestWith_CarriesAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Format: TEXT, Output: &buf}).With("session_id", "abc")

	log.Info("state changed")

	if !strings.Contains(buf.String(), "session_id=abc") {
		t.Errorf("expected child attrs in output, got %q", buf.String())
	}
}
