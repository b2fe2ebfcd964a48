package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("PERSIST_ENABLED", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PersistEnabled {
		t.Fatalf("expected persistence off without DB_URL")
	}
	if cfg.CricbuzzBaseURL != "https://www.cricbuzz.com" {
		t.Fatalf("unexpected CricbuzzBaseURL: %q", cfg.CricbuzzBaseURL)
	}
	if cfg.CricbuzzMaxRetries != 3 || cfg.CricbuzzBackoff != 2*time.Second || cfg.CricbuzzMatchPause != 2*time.Second {
		t.Fatalf("unexpected fetch defaults: retries=%d backoff=%s pause=%s", cfg.CricbuzzMaxRetries, cfg.CricbuzzBackoff, cfg.CricbuzzMatchPause)
	}
	if cfg.LogFormat != logging.FormatConsole {
		t.Fatalf("unexpected dev log format: %s", cfg.LogFormat)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected pyroscope app name to default to service name")
	}
}

func TestLoad_PersistenceFollowsDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("DB_URL", "postgres://u:p@localhost:5432/cricket?sslmode=disable")
	t.Setenv("PERSIST_ENABLED", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.PersistEnabled {
		t.Fatalf("expected persistence on when DB_URL is set")
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected prod log format: %s", cfg.LogFormat)
	}
}

func TestLoad_PersistRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("DB_URL", "")
	t.Setenv("PERSIST_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PERSIST_ENABLED=true without DB_URL")
	}
}

func TestLoad_InvalidValuesNameTheVariable(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{key: "CRICBUZZ_TIMEOUT", value: "soon"},
		{key: "CRICBUZZ_MAX_RETRIES", value: "-1"},
		{key: "CRICBUZZ_CIRCUIT_FAILURE_COUNT", value: "0"},
		{key: "PIPELINE_MAX_WORKERS", value: "many"},
		{key: "DOT_BALL_WORKERS", value: "0"},
		{key: "PERSIST_ENABLED", value: "maybe"},
		{key: "APP_LOG_FORMAT", value: "xml"},
	}

	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"WARNING": logging.LevelWarn,
		"error":   logging.LevelError,
		"":        logging.LevelInfo,
		"verbose": logging.LevelInfo,
	}
	for raw, want := range cases {
		if got := parseLogLevel(raw); got != want {
			t.Fatalf("unexpected level for %q: got=%s want=%s", raw, got, want)
		}
	}
}
