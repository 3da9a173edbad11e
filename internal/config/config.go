package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fmiopen/pkg/fmi"
)

// Config holds the CLI settings. Values come from defaults, then an
// optional YAML file, then environment variables, later sources winning.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	MetaURL  string        `yaml:"meta_url"`
	Timeout  time.Duration `yaml:"-"`
	LogLevel slog.Level    `yaml:"-"`
	LogJSON  bool          `yaml:"log_json"`

	TimeoutStr  string `yaml:"timeout"`
	LogLevelStr string `yaml:"log_level"`
}

// Load builds the configuration. path names an optional YAML file; an
// empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:  fmi.DefaultBaseURL,
		MetaURL:  fmi.DefaultMetaURL,
		Timeout:  120 * time.Second,
		LogLevel: slog.LevelInfo,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if v := strings.TrimSpace(os.Getenv("FMI_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("FMI_META_URL")); v != "" {
		cfg.MetaURL = v
	}
	if v := strings.TrimSpace(os.Getenv("FMI_TIMEOUT")); v != "" {
		cfg.TimeoutStr = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.LogLevelStr = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_JSON")); v != "" {
		cfg.LogJSON = v == "1" || strings.EqualFold(v, "true")
	}

	if cfg.TimeoutStr != "" {
		d, err := time.ParseDuration(cfg.TimeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q: %w", cfg.TimeoutStr, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid timeout %q: must be positive", cfg.TimeoutStr)
		}
		cfg.Timeout = d
	}
	if cfg.LogLevelStr != "" {
		level, err := parseLogLevel(cfg.LogLevelStr)
		if err != nil {
			return Config{}, err
		}
		cfg.LogLevel = level
	}
	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q (allowed: debug, info, warn, error)", s)
	}
}
