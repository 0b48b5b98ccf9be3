package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recite/internal/config"
	"recite/internal/logging"
	"recite/internal/services"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("session started", logging.Int(logging.FieldChapter, 1))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "recite.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "session started") || !strings.Contains(string(content), "chapter=1") {
		t.Fatalf("unexpected log content %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerFormatsSubject(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "subject.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "playback")
	logger = logging.WithSessionID(logger, "0123456789abcdef")
	logger.Info("row toggled", logging.String(logging.FieldItemID, "42"), logging.String("state", "playing"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "playback · session 01234567 · item #42: row toggled") {
		t.Fatalf("expected subject prefix, got %q", line)
	}
	if !strings.Contains(line, "state=playing") {
		t.Fatalf("expected trailing attributes, got %q", line)
	}
}

func TestJSONLoggerUsesLowercaseLevels(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("page fetch failed", logging.Int(logging.FieldCursor, 2))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(content, &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
	if payload[logging.FieldCursor] != float64(2) {
		t.Fatalf("expected cursor attribute, got %v", payload[logging.FieldCursor])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestComponentOverrideQuietsComponent(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "override.log")

	base, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	quiet := logging.NewComponentLoggerWithOverrides(base, "pagination", map[string]string{"pagination": "error"})
	quiet.Info("hidden")
	quiet.Error("shown")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), "hidden") {
		t.Fatalf("expected info line to be suppressed, got %q", content)
	}
	if !strings.Contains(string(content), "shown") {
		t.Fatalf("expected error line, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithSessionID(context.Background(), "sess")
	ctx = services.WithItemID(ctx, "7")

	fields := logging.ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != logging.FieldSessionID || fields[1].Key != logging.FieldItemID {
		t.Fatalf("unexpected field keys: %v", fields)
	}
	if logging.WithContext(ctx, nil) == nil {
		t.Fatal("expected logger")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 8) {
		t.Fatal("expected nop logger to be disabled")
	}
}
