package logger_test

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/saadjs/bump-cli/internal/config"
	"github.com/saadjs/bump-cli/internal/logger"
)

func TestInitWritesJSONToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "bump.log")
	logger.Init(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1})
	logger.Debug("hidden below info")
	logger.Info("weight added", "id", 7)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line at info level, got %q", string(data))
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["msg"] != "weight added" || rec["level"] != "INFO" || rec["id"] != float64(7) {
		t.Fatalf("unexpected log record: %v", rec)
	}
}

func TestLevelFiltersWarnAndError(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "bump.log")
	logger.Init(config.LogConfig{Level: "warn", File: path, MaxSizeMB: 1})
	logger.Info("request", "path", "/api/health")
	logger.Warn("ignoring malformed gain band", "trimester", 2)
	logger.Error("request failed", "status", 500)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected warn and error lines only, got %q", string(data))
	}
	for i, want := range []string{"WARN", "ERROR"} {
		var rec map[string]any
		if err := json.Unmarshal([]byte(lines[i]), &rec); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		if rec["level"] != want {
			t.Fatalf("line %d: expected level %s, got %v", i, want, rec["level"])
		}
	}
}
