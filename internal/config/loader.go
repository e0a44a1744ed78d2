// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load the .env files first (for local development),
// then parses environment variables into the Config struct.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil {
			logrus.Debugf("no env file loaded from %s: %v", file, err)
		} else {
			logrus.Infof("loaded environment variables from %s", file)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	return cfg, nil
}

// Validate performs custom validation on the configuration.
//
// ============================================================
// DEVELOPER: Add custom validation logic here.
// ============================================================
// This function is called after environment variables are parsed.
// Add validation for value ranges and cross-field constraints.
// ============================================================
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case StorageRedis:
		if c.RedisHost == "" {
			return fmt.Errorf("REDIS_HOST is required for the redis backend")
		}
		if c.RedisMaxRetries < 0 {
			return fmt.Errorf("invalid REDIS_MAX_RETRIES: %d (must be non-negative)", c.RedisMaxRetries)
		}
		if c.RedisKeyTTL < 0 {
			return fmt.Errorf("invalid REDIS_KEY_TTL: %s (must be non-negative)", c.RedisKeyTTL)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND: %q (must be sqlite, redis or memory)", c.StorageBackend)
	}

	if c.ProfileSlot == "" {
		return fmt.Errorf("PROFILE_SLOT is required")
	}

	if c.WriteTimeout <= 0 {
		return fmt.Errorf("invalid WRITE_TIMEOUT: %s (must be positive)", c.WriteTimeout)
	}

	if c.WarpDuration < 0 || c.IntroDelay < 0 {
		return fmt.Errorf("WARP_DURATION and INTRO_DELAY must be non-negative")
	}

	if c.MetricsEnabled && (c.MetricsPort < 1 || c.MetricsPort > 65535) {
		return fmt.Errorf("invalid METRICS_PORT: %d (must be 1-65535)", c.MetricsPort)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid LOG_FORMAT: %q (must be text or json)", c.LogFormat)
	}

	return nil
}

// ConfigureLogging applies the log level and format to the standard logrus
// logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if strings.EqualFold(c.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
