package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	cases := map[LogLevel]string{
		LogLevelDebug: "DEBUG",
		LogLevelInfo:  "INFO",
		LogLevelWarn:  "WARN",
		LogLevelError: "ERROR",
		LogLevel(9):   "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", level, got, want)
		}
	}
}

func TestSessionHubLogger_Attrs(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf, Component: "store"})

	l.WithUser("bob").WithContext("attempt", 2).Info("resumed")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output not JSON: %v", err)
	}
	if record["component"] != "store" || record["user_id"] != "bob" {
		t.Errorf("missing contextual attrs: %v", record)
	}
	if record["attempt"] != float64(2) {
		t.Errorf("missing custom attr: %v", record)
	}
}

func TestSessionHubLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelWarn, Format: "text", Output: &buf})

	l.Info("should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("info leaked through warn level: %s", buf.String())
	}
	l.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn record missing: %s", buf.String())
	}
}

func TestSessionHubLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(&LoggerConfig{Level: LogLevelDebug, Format: "json", Output: &buf})
	_ = parent.WithComponent("manager").WithUser("bob")

	parent.Info("plain")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output not JSON: %v", err)
	}
	if _, ok := record["component"]; ok {
		t.Error("child context leaked into parent")
	}
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: LogLevelInfo, Format: "json", Output: &buf})

	l.LogOperation("startSession", 12*time.Millisecond, errors.New("rejected"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output not JSON: %v", err)
	}
	if record["operation"] != "startSession" || record["success"] != false {
		t.Errorf("unexpected record: %v", record)
	}
	if record["error"] != "rejected" {
		t.Errorf("error attr missing: %v", record)
	}
}

func TestNoOpLogger(t *testing.T) {
	// Must not panic; it is the default everywhere.
	var l Logger = NoOpLogger{}
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")
}
