package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readEntries(t *testing.T, path string) []map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not valid JSON: %v\nline: %s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger_WritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Info("task created", "task_id", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readEntries(t, filepath.Join(dir, "taredo.log"))
	if len(entries) != 1 {
		t.Fatalf("got %d log entries, want 1", len(entries))
	}
	if entries[0]["msg"] != "task created" {
		t.Errorf("msg = %v, want %q", entries[0]["msg"], "task created")
	}
	if entries[0]["task_id"] != float64(3) {
		t.Errorf("task_id = %v, want 3", entries[0]["task_id"])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelWarn)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	logger.Debug("dropped")
	logger.Info("dropped too")
	logger.Warn("kept")
	logger.Error("also kept")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readEntries(t, filepath.Join(dir, "taredo.log"))
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
}

func TestLogger_ChildAttributes(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	child := logger.WithActor("alice").WithOp("create")
	child.Info("done")
	// The parent stays unstamped.
	logger.Info("plain")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readEntries(t, filepath.Join(dir, "taredo.log"))
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if entries[0]["actor"] != "alice" || entries[0]["op"] != "create" {
		t.Errorf("child entry = %v, want actor=alice op=create", entries[0])
	}
	if _, ok := entries[1]["actor"]; ok {
		t.Error("parent logger must not carry the child's attributes")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	// Must not panic and Close must be a no-op.
	logger.Info("discarded")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
