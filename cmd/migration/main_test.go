package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(""); err != nil || got != 1 {
		t.Fatalf("unexpected default steps: got=%d err=%v", got, err)
	}
	if got, err := parseSteps(" 3 "); err != nil || got != 3 {
		t.Fatalf("unexpected steps: got=%d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-2", "two"} {
		if _, err := parseSteps(raw); err == nil {
			t.Fatalf("expected error for steps %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("1739500100"); err != nil || got != 1739500100 {
		t.Fatalf("unexpected version: got=%d err=%v", got, err)
	}
	for _, raw := range []string{"", "-1", "v1"} {
		if _, err := parseVersion(raw); err == nil {
			t.Fatalf("expected error for version %q", raw)
		}
	}
	if got, err := parseTarget("1739500000"); err != nil || got != 1739500000 {
		t.Fatalf("unexpected target: got=%d err=%v", got, err)
	}
	if _, err := parseTarget("-5"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if got != dir {
		t.Fatalf("unexpected dir: got=%s want=%s", got, dir)
	}

	if _, err := resolveMigrationsDir(filepath.Join(dir, "missing")); err != nil && !strings.Contains(err.Error(), "not found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	raw := "postgres://u:p@localhost:5432/cricket?sslmode=disable"
	if got := normalizeDBURL(raw, false); got != raw {
		t.Fatalf("url must be untouched when disabled: %s", got)
	}
	got := normalizeDBURL(raw, true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") || !strings.Contains(got, "sslmode=disable") {
		t.Fatalf("unexpected normalized url: %s", got)
	}
}

func TestIgnoreNoChange(t *testing.T) {
	t.Parallel()

	if err := ignoreNoChange(migrate.ErrNoChange); err != nil {
		t.Fatalf("ErrNoChange must be ignored: %v", err)
	}
	boom := errors.New("boom")
	if err := ignoreNoChange(boom); !errors.Is(err, boom) {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ignoreNoChange(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
