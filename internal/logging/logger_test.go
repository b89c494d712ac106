package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"showbrake/internal/config"
	"showbrake/internal/logging"
)

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "disc-scanner").Info("disc scan finished",
		logging.Int("titles", 4),
		logging.String("path", "/Volumes/MY SHOW"),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO disc-scanner: disc scan finished") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "titles=4") || !strings.Contains(line, `path="/Volumes/MY SHOW"`) {
		t.Fatalf("expected formatted attributes, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as a prefix, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information at info level, got %q", line)
	}
}

func TestConsoleLoggerPrefixesSessionAndEpisode(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	session := logging.NewComponentLogger(logger, "session").With(
		logging.String(logging.FieldSessionID, "1f0c2a9e-5d1b-4c7e-9a55-0e2b8f3d6a11"),
	)
	session.With(
		logging.Int(logging.FieldEpisodeIndex, 2),
		logging.Int(logging.FieldEpisodeCount, 3),
	).Info("episode ripped",
		logging.String("file", "Bluey S01E02.mp4"),
		logging.Duration("elapsed", 90*time.Second),
	)

	line := buf.String()
	if !strings.Contains(line, "INFO [1f0c2a9e ep 2/3] session: episode ripped") {
		t.Fatalf("unexpected console prefix: %q", line)
	}
	if !strings.Contains(line, `file="Bluey S01E02.mp4"`) || !strings.Contains(line, "elapsed=1m30s") {
		t.Fatalf("expected formatted attributes, got %q", line)
	}
	for _, lifted := range []string{"session_id=", "episode_index=", "episode_count="} {
		if strings.Contains(line, lifted) {
			t.Fatalf("%s should be rendered in the prefix, got %q", lifted, line)
		}
	}

	buf.Reset()
	logger.WithGroup("scan").Info("grouped", logging.Int("titles", 3))
	if !strings.Contains(buf.String(), "scan.titles=3") {
		t.Fatalf("expected grouped key, got %q", buf.String())
	}
}

func TestConsoleLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("quiet")
	logger.Debug("quieter")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "WARN loud") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

func TestJSONLoggerWritesStructuredRecords(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Error("rip failed", logging.Error(errors.New("exit status 1")))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if record["level"] != "error" || record["msg"] != "rip failed" || record["error"] != "exit status 1" {
		t.Fatalf("unexpected record: %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewFromConfigTeesIntoLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("scan line ignored", logging.String("line", "libdvdnav: noise"))

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), `"msg":"scan line ignored"`) {
		t.Fatalf("expected JSON record in log file, got %q", content)
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "iflicks import failed", "iflicks_import_failed",
		logging.String(logging.FieldImpact, "episode stays in the output directory"),
	)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record[logging.FieldEventType] != "iflicks_import_failed" {
		t.Fatalf("expected event type, got %v", record)
	}
	if record[logging.FieldErrorHint] == nil {
		t.Fatalf("expected default error hint, got %v", record)
	}
	if record[logging.FieldImpact] != "episode stays in the output directory" {
		t.Fatalf("caller impact must win over the default, got %v", record)
	}
}

func TestTypedAttrsInJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	attrs := []logging.Attr{
		logging.Bool("foreign_subtitles", true),
		logging.Float64("duration_deviation", 0.25),
		logging.Duration("elapsed", 1500*time.Millisecond),
	}
	if !logging.HasAttrKey(attrs, "elapsed") || logging.HasAttrKey(attrs, "missing") {
		t.Fatalf("HasAttrKey mismatch for %v", attrs)
	}
	logger.Info("episode ripped", logging.Args(attrs...)...)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["foreign_subtitles"] != true || record["duration_deviation"] != 0.25 {
		t.Fatalf("unexpected typed fields: %v", record)
	}
	if record["elapsed"] == nil {
		t.Fatalf("expected elapsed field, got %v", record)
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "test")
	logger.Error("discarded")
	if logger.Handler().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger must not be enabled")
	}
}
