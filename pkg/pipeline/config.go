// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_pipeline.yaml
var defaultPipelineYAML []byte

// Config is the complete pipeline configuration.
type Config struct {
	// RollbackOnError rolls back the executed actions of a trigger when a
	// later one fails. Defaults to true.
	RollbackOnError *bool          `yaml:"rollback_on_error,omitempty"`
	Rules           []RuleConfig   `yaml:"rules"`
	Actions         []ActionConfig `yaml:"actions"`
}

// RuleConfig is a rule entry.
type RuleConfig struct {
	ID         string                 `yaml:"id"`
	Name       string                 `yaml:"name,omitempty"`
	Type       string                 `yaml:"type"`
	Enabled    bool                   `yaml:"enabled"`
	Priority   int                    `yaml:"priority,omitempty"`
	Actions    []string               `yaml:"actions,omitempty"` // action IDs run when the rule triggers
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`
}

// ActionConfig is an action entry.
type ActionConfig struct {
	ID         string                 `yaml:"id"`
	Name       string                 `yaml:"name,omitempty"`
	Type       string                 `yaml:"type"`
	Enabled    bool                   `yaml:"enabled"`
	Parameters map[string]interface{} `yaml:"parameters,omitempty"`
}

// LoadConfig reads and parses a YAML pipeline file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// DefaultConfig returns the embedded default pipeline.
func DefaultConfig() (*Config, error) {
	return ParseConfig(defaultPipelineYAML)
}

// ParseConfig expands ${VAR} and ${VAR:default} references, parses the YAML
// and validates the result.
func ParseConfig(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ShouldRollback reports the effective rollback setting.
func (c *Config) ShouldRollback() bool {
	return c.RollbackOnError == nil || *c.RollbackOnError
}

// Validate checks IDs, types and action references.
func (c *Config) Validate() error {
	ruleIDs := make(map[string]bool)
	for _, rule := range c.Rules {
		if rule.ID == "" {
			return fmt.Errorf("rule with empty ID found")
		}
		if ruleIDs[rule.ID] {
			return fmt.Errorf("duplicate rule ID: %s", rule.ID)
		}
		ruleIDs[rule.ID] = true

		if rule.Type == "" {
			return fmt.Errorf("rule %s has empty type", rule.ID)
		}
	}

	actionIDs := make(map[string]bool)
	for _, action := range c.Actions {
		if action.ID == "" {
			return fmt.Errorf("action with empty ID found")
		}
		if actionIDs[action.ID] {
			return fmt.Errorf("duplicate action ID: %s", action.ID)
		}
		actionIDs[action.ID] = true

		if action.Type == "" {
			return fmt.Errorf("action %s has empty type", action.ID)
		}
	}

	for _, rule := range c.Rules {
		for _, actionID := range rule.Actions {
			if !actionIDs[actionID] {
				return fmt.Errorf("rule %s references unknown action: %s", rule.ID, actionID)
			}
		}
	}

	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:default}. An unset or empty
// variable takes the default.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		name, defaultValue, _ := strings.Cut(key, ":")

		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}
