package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	// ResultsModeFresh scores the answers again on every results view.
	ResultsModeFresh = "fresh"
	// ResultsModeStable keeps the first report of a session until restart.
	ResultsModeStable = "stable"
)

type Config struct {
	Port            string
	Environment     string
	CacheBackend    string
	RedisURL        string
	ResultsMode     string
	ReportCacheTTL  time.Duration
	SessionIdleTTL  time.Duration
	TimerInterval   time.Duration
	ShutdownTimeout time.Duration
	Events          EventConfig
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		CacheBackend:    getEnv("CACHE_BACKEND", CacheBackendMemory),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		ResultsMode:     getEnv("RESULTS_MODE", ResultsModeFresh),
		ReportCacheTTL:  getEnvAsDuration("REPORT_CACHE_TTL", 30*time.Minute),
		SessionIdleTTL:  getEnvAsDuration("SESSION_IDLE_TTL", time.Hour),
		TimerInterval:   getEnvAsDuration("TIMER_INTERVAL", time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Events: EventConfig{
			Enabled:      getEnvAsBool("EVENTS_ENABLED", true),
			Publisher:    getEnv("EVENTS_PUBLISHER", PublisherGoChannel),
			KafkaBrokers: getEnv("KAFKA_BROKERS", "localhost:9092"),
			Topic:        getEnv("EVENTS_TOPIC", "interview_events"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q", c.CacheBackend)
	}

	switch c.ResultsMode {
	case ResultsModeFresh, ResultsModeStable:
	default:
		return fmt.Errorf("invalid RESULTS_MODE %q", c.ResultsMode)
	}

	if c.TimerInterval <= 0 {
		return fmt.Errorf("TIMER_INTERVAL must be positive")
	}
	if c.SessionIdleTTL <= 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
