package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the server.
type Config struct {
	Port           string
	DBPath         string
	JWTSecret      string
	TokenTTL       time.Duration
	AllowedOrigins []string
	LogLevel       string
}

// Load reads configuration from environment variables with sane defaults.
// TASKFLOW_JWT_SECRET is required; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Port:      strings.TrimSpace(os.Getenv("TASKFLOW_PORT")),
		DBPath:    strings.TrimSpace(os.Getenv("TASKFLOW_DB_PATH")),
		JWTSecret: strings.TrimSpace(os.Getenv("TASKFLOW_JWT_SECRET")),
		TokenTTL:  parseHours(strings.TrimSpace(os.Getenv("TASKFLOW_TOKEN_TTL_HOURS"))),
		LogLevel:  strings.TrimSpace(os.Getenv("TASKFLOW_LOG_LEVEL")),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "taskflow.db"
	}
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.AllowedOrigins = splitOrigins(os.Getenv("TASKFLOW_ALLOWED_ORIGINS"))

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("TASKFLOW_JWT_SECRET is required")
	}

	return cfg, nil
}

func parseHours(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw + "h")
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
