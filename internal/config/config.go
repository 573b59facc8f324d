package config

import (
	"fmt"
	"os"
	"time"
)

// Data source selectors. The request-parameter policy only ever distinguishes
// "sheets" from the configured default; local-csv is reachable through
// DATA_SOURCE alone.
const (
	SourceLocalJSON = "local-json"
	SourceLocalCSV  = "local-csv"
	SourceSheetsCSV = "sheets-csv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	DataSource    string
	LocalJSONPath string
	LocalCSVPath  string
	SheetsCSVURL  string
	FetchTimeout  time.Duration

	DefaultLang  string
	LangPrefPath string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataSource:    envOrDefault("DATA_SOURCE", SourceLocalJSON),
		LocalJSONPath: envOrDefault("LOCAL_JSON_PATH", "data/incidents.json"),
		LocalCSVPath:  envOrDefault("LOCAL_CSV_PATH", "data/incidents.csv"),
		SheetsCSVURL:  os.Getenv("SHEETS_CSV_URL"),
		FetchTimeout:  fetchTimeout,

		DefaultLang:  envOrDefault("DEFAULT_LANG", "zh-Hans"),
		LangPrefPath: os.Getenv("LANG_PREF_PATH"),
	}

	switch cfg.DataSource {
	case SourceLocalJSON, SourceLocalCSV, SourceSheetsCSV:
	default:
		return nil, fmt.Errorf("invalid DATA_SOURCE %q", cfg.DataSource)
	}
	// An unset SHEETS_CSV_URL with DATA_SOURCE=sheets-csv is allowed: the
	// loader warns and falls back to local JSON at load time.

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
