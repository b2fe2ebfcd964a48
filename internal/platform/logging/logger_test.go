package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesKeyValueFields(t *testing.T) {
	core, logs := observer.New(LevelDebug)
	logger := FromZap(zap.New(core)).Named("cricbuzz").With("run_id", "r1")

	logger.WarnContext(context.Background(), "dot ball lookup failed", "bowler", "Bumrah", "error", errors.New("timeout"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("unexpected entry count: got=%d want=1", len(entries))
	}
	entry := entries[0]
	if entry.LoggerName != "cricbuzz" {
		t.Fatalf("unexpected logger name: got=%q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if fields["run_id"] != "r1" || fields["bowler"] != "Bumrah" || fields["error"] != "timeout" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestLoggerOddArgsKeepsTrailingKey(t *testing.T) {
	core, logs := observer.New(LevelInfo)
	logger := FromZap(zap.New(core))

	logger.Info("odd", "match_id")

	fields := logs.All()[0].ContextMap()
	if _, ok := fields["match_id"]; !ok {
		t.Fatalf("expected trailing key to be kept, got %+v", fields)
	}
}

func TestNewRespectsLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, FormatJSON, LevelWarn)

	logger.Info("hidden")
	logger.Warn("shown", "match_id", "101")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"match_id":"101"`) {
		t.Fatalf("expected json field in output: %s", out)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.Named("x") == nil {
		t.Fatalf("expected nop logger")
	}
}
