package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		value string
		env   string
		want  slog.Level
	}{
		{"", "development", slog.LevelDebug},
		{"", "production", slog.LevelInfo},
		{"WARN", "production", slog.LevelWarn},
		{"error", "development", slog.LevelError},
		{"fatal", "production", LevelCritical},
		{"bogus", "production", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.value, tt.env); got != tt.want {
			t.Fatalf("parseLevel(%q, %q) = %v, want %v", tt.value, tt.env, got, tt.want)
		}
	}
}

func TestCriticalLevelName(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo, "json")

	log.Critical("app: init failed", "component", "db")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["level"] != "CRITICAL" {
		t.Fatalf("expected CRITICAL level, got %v", record["level"])
	}
	if record["component"] != "db" {
		t.Fatalf("expected component attr, got %v", record["component"])
	}
}

func TestBusinessErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelDebug, "text")

	log.BusinessError("goals.get: not found", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error, got %q", buf.String())
	}

	log.BusinessError("goals.get: not found", errors.New("goal not found"), "goal_id", "g-1")
	line := buf.String()
	if !strings.Contains(line, "level=WARN") || !strings.Contains(line, "goal_id=g-1") {
		t.Fatalf("unexpected log line: %q", line)
	}
}
