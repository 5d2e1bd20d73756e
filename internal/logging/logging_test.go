package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "taskboard.log")
	logger, closer, err := Setup(Options{Path: path, Level: "warn"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	logger.Info("dropped")
	logger.WithField("key", "todos").Warn("kept")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not json: %v", err)
	}
	if entry["msg"] != "kept" || entry["key"] != "todos" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestSetupDebugOverridesLevel(t *testing.T) {
	logger, closer, err := Setup(Options{Level: "error", Debug: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer closer.Close()
	if logger.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, _, err := Setup(Options{Level: "chatty"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
