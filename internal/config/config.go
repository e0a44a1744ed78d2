// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Storage backends accepted by STORAGE_BACKEND.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// ============================================================
// DEVELOPER: Add new configuration fields here.
// ============================================================
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `env:",required"` - make it required
// - `envDefault:"value"` - set a default value
//
// After adding fields here, update loader.go Validate() if custom
// validation is needed.
// ============================================================
type Config struct {
	// ============================================================
	// Service configuration
	// ============================================================
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"LearnerProgression"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`

	// ============================================================
	// Storage configuration
	// ============================================================
	StorageBackend string        `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"progression.db"`
	ProfileSlot    string        `env:"PROFILE_SLOT" envDefault:"default"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"3s"`

	// ============================================================
	// Redis configuration
	// ============================================================
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	RedisKeyTTL       time.Duration `env:"REDIS_KEY_TTL" envDefault:"0"`

	// ============================================================
	// Pipeline and transitions
	// ============================================================
	// PipelineConfigPath empty means the embedded default pipeline.
	PipelineConfigPath string        `env:"PIPELINE_CONFIG_PATH"`
	WarpDuration       time.Duration `env:"WARP_DURATION" envDefault:"1200ms"`
	IntroDelay         time.Duration `env:"INTRO_DELAY" envDefault:"800ms"`

	// ============================================================
	// Observability
	// ============================================================
	MetricsEnabled  bool   `env:"METRICS_ENABLED" envDefault:"false"`
	MetricsPort     int    `env:"METRICS_PORT" envDefault:"8080"`
	MetricsEndpoint string `env:"METRICS_ENDPOINT" envDefault:"/metrics"`
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	ZipkinEndpoint  string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
}
