package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DBPath      string
	ExecAPIURL  string
	ExecTimeout time.Duration
	LogLevel    string
}

func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "coderoom.db"),
		ExecAPIURL:  getEnv("EXEC_API_URL", "http://localhost:2000/execute"),
		ExecTimeout: getEnvDuration("EXEC_TIMEOUT_SECONDS", 15*time.Second),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv returns the env var or a default
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvDuration parses a seconds env var with a fallback
func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}
