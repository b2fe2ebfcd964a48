package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

// Config stores runtime configuration for the scraper.
type Config struct {
	AppEnv                  string
	ServiceName             string
	ServiceVersion          string
	LogLevel                logging.Level
	LogFormat               logging.Format
	DBURL                   string
	DBDisablePreparedBinary bool
	PersistEnabled          bool

	CricbuzzBaseURL               string
	CricbuzzSeriesPath            string
	CricbuzzTimeout               time.Duration
	CricbuzzMaxRetries            int
	CricbuzzBackoff               time.Duration
	CricbuzzMatchPause            time.Duration
	CricbuzzCircuitEnabled        bool
	CricbuzzCircuitFailureCount   int
	CricbuzzCircuitOpenTimeout    time.Duration
	CricbuzzCircuitHalfOpenMaxReq int
	ProfileCacheTTL               time.Duration

	PipelineMaxWorkers int
	DotBallWorkers     int

	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	logFormat, err := parseLogFormat(getEnv("APP_LOG_FORMAT", defaultLogFormat(appEnv)))
	if err != nil {
		return Config{}, err
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	persistEnabled, err := strconv.ParseBool(getEnv("PERSIST_ENABLED", strconv.FormatBool(dbURL != "")))
	if err != nil {
		return Config{}, fmt.Errorf("parse PERSIST_ENABLED: %w", err)
	}
	if persistEnabled && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when PERSIST_ENABLED=true")
	}

	cricbuzzTimeout, err := time.ParseDuration(getEnv("CRICBUZZ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_TIMEOUT: %w", err)
	}
	if cricbuzzTimeout <= 0 {
		return Config{}, fmt.Errorf("CRICBUZZ_TIMEOUT must be > 0")
	}

	cricbuzzMaxRetries, err := getEnvAsInt("CRICBUZZ_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_MAX_RETRIES: %w", err)
	}
	if cricbuzzMaxRetries < 0 {
		return Config{}, fmt.Errorf("CRICBUZZ_MAX_RETRIES must be >= 0")
	}

	cricbuzzBackoff, err := time.ParseDuration(getEnv("CRICBUZZ_BACKOFF", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_BACKOFF: %w", err)
	}
	if cricbuzzBackoff <= 0 {
		return Config{}, fmt.Errorf("CRICBUZZ_BACKOFF must be > 0")
	}

	cricbuzzMatchPause, err := time.ParseDuration(getEnv("CRICBUZZ_MATCH_PAUSE", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_MATCH_PAUSE: %w", err)
	}
	if cricbuzzMatchPause < 0 {
		return Config{}, fmt.Errorf("CRICBUZZ_MATCH_PAUSE must be >= 0")
	}

	cricbuzzCircuitEnabled, err := strconv.ParseBool(getEnv("CRICBUZZ_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_CIRCUIT_ENABLED: %w", err)
	}

	cricbuzzCircuitFailureCount, err := getEnvAsInt("CRICBUZZ_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if cricbuzzCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CRICBUZZ_CIRCUIT_FAILURE_COUNT must be >= 1")
	}

	cricbuzzCircuitOpenTimeout, err := time.ParseDuration(getEnv("CRICBUZZ_CIRCUIT_OPEN_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if cricbuzzCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CRICBUZZ_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}

	cricbuzzCircuitHalfOpenMaxReq, err := getEnvAsInt("CRICBUZZ_CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse CRICBUZZ_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if cricbuzzCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("CRICBUZZ_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	profileCacheTTL, err := time.ParseDuration(getEnv("PROFILE_CACHE_TTL", "6h"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PROFILE_CACHE_TTL: %w", err)
	}
	if profileCacheTTL < 0 {
		return Config{}, fmt.Errorf("PROFILE_CACHE_TTL must be >= 0")
	}

	pipelineMaxWorkers, err := getEnvAsInt("PIPELINE_MAX_WORKERS", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse PIPELINE_MAX_WORKERS: %w", err)
	}
	if pipelineMaxWorkers < 1 {
		return Config{}, fmt.Errorf("PIPELINE_MAX_WORKERS must be >= 1")
	}

	dotBallWorkers, err := getEnvAsInt("DOT_BALL_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse DOT_BALL_WORKERS: %w", err)
	}
	if dotBallWorkers < 1 {
		return Config{}, fmt.Errorf("DOT_BALL_WORKERS must be >= 1")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	serviceName := strings.TrimSpace(getEnv("APP_SERVICE_NAME", "fantasy-cricket-scraper"))

	return Config{
		AppEnv:                  appEnv,
		ServiceName:             serviceName,
		ServiceVersion:          strings.TrimSpace(getEnv("APP_SERVICE_VERSION", "dev")),
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:               logFormat,
		DBURL:                   dbURL,
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		PersistEnabled:          persistEnabled,

		CricbuzzBaseURL:               strings.TrimSpace(getEnv("CRICBUZZ_BASE_URL", "https://www.cricbuzz.com")),
		CricbuzzSeriesPath:            strings.TrimSpace(getEnv("CRICBUZZ_SERIES_PATH", "/cricket-series/9351/womens-premier-league-2025/matches")),
		CricbuzzTimeout:               cricbuzzTimeout,
		CricbuzzMaxRetries:            cricbuzzMaxRetries,
		CricbuzzBackoff:               cricbuzzBackoff,
		CricbuzzMatchPause:            cricbuzzMatchPause,
		CricbuzzCircuitEnabled:        cricbuzzCircuitEnabled,
		CricbuzzCircuitFailureCount:   cricbuzzCircuitFailureCount,
		CricbuzzCircuitOpenTimeout:    cricbuzzCircuitOpenTimeout,
		CricbuzzCircuitHalfOpenMaxReq: cricbuzzCircuitHalfOpenMaxReq,
		ProfileCacheTTL:               profileCacheTTL,

		PipelineMaxWorkers: pipelineMaxWorkers,
		DotBallWorkers:     dotBallWorkers,

		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAppName:           strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", serviceName)),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func defaultLogFormat(appEnv string) string {
	if appEnv == EnvDev {
		return string(logging.FormatConsole)
	}
	return string(logging.FormatJSON)
}

func parseLogFormat(v string) (logging.Format, error) {
	switch logging.Format(strings.ToLower(strings.TrimSpace(v))) {
	case logging.FormatJSON:
		return logging.FormatJSON, nil
	case logging.FormatConsole:
		return logging.FormatConsole, nil
	default:
		return "", fmt.Errorf("invalid APP_LOG_FORMAT %q: valid values are %s, %s", v, logging.FormatJSON, logging.FormatConsole)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
