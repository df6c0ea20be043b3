package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TASKDECK_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TASKDECK_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TASKDECK_DATA_FORMAT"); v != "" {
		cfg.DataFormat = v
	}
	if v := os.Getenv("TASKDECK_DEFAULT_PRIORITY"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.DefaultPriority = i
		}
	}
	if v := os.Getenv("TASKDECK_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv("TASKDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKDECK_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TASKDECK_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TASKDECK_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

// boolFromString accepts the usual truthy spellings.
func boolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
