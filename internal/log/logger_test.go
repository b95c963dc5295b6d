package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warning", LevelWarn},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	if buf.Len() > 0 {
		t.Errorf("expected no output for debug/info at warn level, got: %s", buf.String())
	}

	logger.Warn("warn message")
	if buf.Len() == 0 {
		t.Error("expected output for warn message")
	}
}

func TestJSONFormatOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, ServiceName: "cleanaid"})

	logger.WithComponent("transport").Info("request completed", "path", "/admin/users", "status", 200)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}

	if entry["msg"] != "request completed" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
	if entry["service"] != "cleanaid" {
		t.Errorf("expected service attribute, got %v", entry["service"])
	}
	if entry["component"] != "transport" {
		t.Errorf("expected component attribute, got %v", entry["component"])
	}
	if entry["status"] != float64(200) {
		t.Errorf("expected status 200, got %v", entry["status"])
	}
}

func TestTextFormatOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("test message", "key1", "value1")

	output := buf.String()
	if !strings.Contains(output, "test message") || !strings.Contains(output, "key1=value1") {
		t.Errorf("unexpected text output: %s", output)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	err := errors.NewStatusError("GET", "/admin/orders", 503, "maintenance", nil)
	logger.WithError(fmt.Errorf("list orders: %w", err)).Error("request failed")

	var entry map[string]interface{}
	if jerr := json.Unmarshal(buf.Bytes(), &entry); jerr != nil {
		t.Fatalf("failed to parse JSON output: %v", jerr)
	}
	if entry["error_code"] != string(errors.ErrCodeServer) {
		t.Errorf("expected error_code, got %v", entry["error_code"])
	}
	if entry["status"] != float64(503) {
		t.Errorf("expected status, got %v", entry["status"])
	}

	buf.Reset()
	logger.WithError(fmt.Errorf("plain")).Error("other failure")
	if !strings.Contains(buf.String(), `"error":"plain"`) {
		t.Errorf("expected plain error attribute, got %s", buf.String())
	}

	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestDefaultLogger(t *testing.T) {
	original := defaultLogger
	defer func() { defaultLogger = original }()

	defaultLogger = nil
	first := DefaultLogger()
	if first == nil {
		t.Fatal("expected lazily created logger")
	}
	if DefaultLogger() != first {
		t.Error("DefaultLogger should be stable")
	}

	custom := Discard()
	SetDefaultLogger(custom)
	if OrDefault(nil) != custom {
		t.Error("OrDefault(nil) should return the default logger")
	}
	if OrDefault(first) != first {
		t.Error("OrDefault should keep a non-nil logger")
	}
}
