package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// TestParseLevel tests level names
func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

// TestNewFormats tests JSON and text handlers
func TestNewFormats(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Info("file_written", "file", "1_A.mif")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"file":"1_A.mif"`) {
		t.Errorf("Expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, "info", "text").Info("file_written", "file", "1_A.mif")
	if !strings.Contains(buf.String(), "msg=file_written") {
		t.Errorf("Expected text output, got %q", buf.String())
	}

	buf.Reset()
	New(&buf, "warn", "text").Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("Expected info to be filtered at warn level, got %q", buf.String())
	}
}

// TestSetup tests installing the default logger
func TestSetup(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	l := Setup(&buf, "debug", "text")
	slog.Debug("row_written", "row", 1)
	if slog.Default() != l {
		t.Error("Expected Setup to install the default logger")
	}
	if !strings.Contains(buf.String(), "msg=row_written") {
		t.Errorf("Expected debug record, got %q", buf.String())
	}
}
