// Package config loads runtime settings from the environment and the optional rules file.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection (previous-run store)
	StoreEnabled       bool
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Logging
	LogFile  string
	LogLevel slog.Level

	// Pipeline
	Concurrency int
	RulesFile   string
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		StoreEnabled:       getEnv("AIMREPORT_STORE", "false") == "true",
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "facilities"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "aim"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		LogFile:  getEnv("AIMREPORT_LOG_FILE", "/tmp/aimreport.log"),
		LogLevel: parseLogLevel(getEnv("AIMREPORT_LOG_LEVEL", "INFO")),

		Concurrency: getEnvInt("AIMREPORT_CONCURRENCY", 4),
		RulesFile:   getEnv("AIMREPORT_RULES_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
