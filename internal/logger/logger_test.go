package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// capture swaps in a debug-level JSON logger for the duration of the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Logger
	Logger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { Logger = prev })
	return &buf
}

func TestLevelHelpers(t *testing.T) {
	buf := capture(t)

	for level, fn := range map[string]func(string, ...any){
		"DEBUG": Debug,
		"INFO":  Info,
		"WARN":  Warn,
		"ERROR": Error,
	} {
		buf.Reset()
		fn("snapshot computed", "points", 4)

		var rec struct {
			Level  string `json:"level"`
			Msg    string `json:"msg"`
			Points int    `json:"points"`
		}
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("%s: bad log line %q: %v", level, buf.String(), err)
		}
		if rec.Level != level || rec.Msg != "snapshot computed" || rec.Points != 4 {
			t.Errorf("%s: got %+v", level, rec)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_File(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	path := filepath.Join(t.TempDir(), "logs", "gasflow.log")
	closer, err := Setup(path, "warn")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	Info("hidden")
	Warn("visible", "batch", "b-1")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("info message should be filtered at warn level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "batch=b-1") {
		t.Errorf("log file = %q", out)
	}
}

func TestSetup_Discard(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	closer, err := Setup("", "debug")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	Info("goes nowhere")
	if err := closer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
