package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text")
	defer InitWithWriter(&buf, "INFO", "text")

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug message should be filtered at WARN level")
	}
	if strings.Contains(out, "info message") {
		t.Error("info message should be filtered at WARN level")
	}
	if !strings.Contains(out, "warn message") {
		t.Error("warn message should be logged at WARN level")
	}
	if !strings.Contains(out, "error message") {
		t.Error("error message should be logged at WARN level")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json")
	defer InitWithWriter(&buf, "INFO", "text")

	Info("structured", "module", "gallery", "count", 3)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "structured" {
		t.Errorf("expected msg %q, got %v", "structured", record["msg"])
	}
	if record["module"] != "gallery" {
		t.Errorf("expected module field, got %v", record["module"])
	}
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text")

	SetLevel("NOPE")

	Info("still logged")
	if !strings.Contains(buf.String(), "still logged") {
		t.Error("invalid level change should leave the previous level in place")
	}
}

func TestLevelString(t *testing.T) {
	cases := map[Level]string{
		LevelDebug: "DEBUG",
		LevelInfo:  "INFO",
		LevelWarn:  "WARN",
		LevelError: "ERROR",
		Level(42):  "UNKNOWN",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Errorf("Level(%d).String() = %q, want %q", level, got, want)
		}
	}
}
