// Package config loads runtime configuration for the service binaries from
// a .env file (when present) and the process environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the flat configuration consumed by the entry points.
type Config struct {
	// Port is the HTTP listen port for the API server.
	Port string

	// GCSBucket is the bucket receipt images and annotations are stored in.
	GCSBucket string

	// BigQueryProject and BigQueryDataset locate the receipts dataset.
	BigQueryProject string
	BigQueryDataset string

	// CacheTTL and CacheSweepInterval control the parse result cache used
	// by the synchronous parse endpoint.
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// WorkerCount is the number of concurrent job workers.
	WorkerCount int

	// QueueBufferSize is the in-memory job queue capacity.
	QueueBufferSize int

	// LogLevel sets the zerolog level (debug, info, warn, error).
	LogLevel string
}

// Load reads .env when present, then the environment, and returns the
// resulting configuration. Every field has a default so the binaries can
// start with an empty environment.
func Load() *Config {
	// A missing .env file is fine, the OS environment still applies.
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		BigQueryProject:    getEnv("BIGQUERY_PROJECT", "receipts-parser-471119"),
		BigQueryDataset:    getEnv("BIGQUERY_DATASET", "receipts"),
		CacheTTL:           getEnvAsDuration("PARSE_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: getEnvAsDuration("PARSE_CACHE_SWEEP_INTERVAL", 5*time.Minute),
		WorkerCount:        getEnvAsInt("WORKER_COUNT", 4),
		QueueBufferSize:    getEnvAsInt("QUEUE_BUFFER_SIZE", 100),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
