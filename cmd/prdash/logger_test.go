package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npratt/prdash/internal/config"
)

func TestSetupTUILogger_WritesToFile(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "prdash.log")

	result, err := SetupTUILogger(logPath, slog.LevelInfo, config.Default().LogRotation)
	if err != nil {
		t.Fatalf("SetupTUILogger failed: %v", err)
	}
	defer func() { _ = result.Close() }()

	if result.FilePath != logPath {
		t.Errorf("FilePath = %q, want %q", result.FilePath, logPath)
	}

	// Write a log message
	result.Logger.Info("test message", "key", "value")

	// Read back the file and verify content
	content, err := os.ReadFile(result.FilePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !strings.Contains(string(content), "test message") {
		t.Errorf("log file should contain 'test message', got: %s", content)
	}
	if !strings.Contains(string(content), `"key":"value"`) {
		t.Errorf("log file should contain key=value, got: %s", content)
	}
}

func TestSetupTUILogger_DoesNotWriteToStderr(t *testing.T) {
	// This test verifies that the TUI logger writes to a file,
	// not to stderr. This is critical because stderr output would
	// corrupt the dashboard display.

	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "prdash.log")

	// Capture stderr
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	result, err := SetupTUILogger(logPath, slog.LevelInfo, config.Default().LogRotation)
	if err != nil {
		os.Stderr = oldStderr
		t.Fatalf("SetupTUILogger failed: %v", err)
	}
	defer func() { _ = result.Close() }()

	// Write a log message
	result.Logger.Info("this should not appear on stderr")

	// Restore stderr and close pipe
	_ = w.Close()
	os.Stderr = oldStderr

	// Read captured stderr
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	// Verify nothing was written to stderr
	if buf.Len() > 0 {
		t.Errorf("TUI logger wrote to stderr: %s", buf.String())
	}
}

func TestSetupTUILoggerWithWriter_WritesToWriter(t *testing.T) {
	// Test that we can create a logger that writes to any writer
	var buf bytes.Buffer

	logger := SetupTUILoggerWithWriter(&buf, slog.LevelInfo)
	logger.Info("test message", "foo", "bar")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("output should contain 'test message', got: %s", output)
	}
	if !strings.Contains(output, `"foo":"bar"`) {
		t.Errorf("output should contain foo=bar, got: %s", output)
	}
}
