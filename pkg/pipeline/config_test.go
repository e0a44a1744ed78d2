// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "pipeline.yaml")

	configContent := `
rules:
  - id: first-completion
    type: lesson_first_completion
    enabled: true
    priority: 100
    parameters:
      lesson_ids: [orientation, market-signals]
    actions: [lesson-rewards]

  - id: level-milestone
    type: level_up
    enabled: true
    parameters:
      min_level: 3

actions:
  - id: lesson-rewards
    type: grant_lesson_rewards
    enabled: true

  - id: pin
    type: grant_item
    enabled: true
    parameters:
      item_id: "pin-{level}"
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if len(config.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(config.Rules))
	}
	if config.Rules[0].ID != "first-completion" || config.Rules[0].Type != "lesson_first_completion" {
		t.Errorf("unexpected first rule: %+v", config.Rules[0])
	}
	if config.Rules[0].Priority != 100 {
		t.Errorf("expected priority 100, got %d", config.Rules[0].Priority)
	}
	if minLevel, ok := config.Rules[1].Parameters["min_level"].(int); !ok || minLevel != 3 {
		t.Errorf("expected min_level parameter to be 3, got %v", config.Rules[1].Parameters["min_level"])
	}

	if len(config.Actions) != 2 {
		t.Errorf("expected 2 actions, got %d", len(config.Actions))
	}
	if config.Actions[1].Parameters["item_id"] != "pin-{level}" {
		t.Errorf("unexpected item_id: %v", config.Actions[1].Parameters["item_id"])
	}
	if !config.ShouldRollback() {
		t.Error("rollback should default to enabled")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseConfig_RollbackDisabled(t *testing.T) {
	config, err := ParseConfig([]byte("rollback_on_error: false\nrules: []\nactions: []\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if config.ShouldRollback() {
		t.Error("expected rollback to be disabled")
	}
}

func TestParseConfig_InvalidYAML(t *testing.T) {
	if _, err := ParseConfig([]byte("rules: [unterminated")); err == nil {
		t.Error("expected parse error")
	}
}

func TestDefaultConfig(t *testing.T) {
	config, err := DefaultConfig()
	if err != nil {
		t.Fatalf("DefaultConfig failed: %v", err)
	}

	types := make(map[string]bool)
	for _, rc := range config.Rules {
		types[rc.Type] = true
	}
	for _, expected := range []string{"lesson_first_completion", "curriculum_complete", "level_up", "health_depleted"} {
		if !types[expected] {
			t.Errorf("default pipeline is missing a %s rule", expected)
		}
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PIPELINE_TEST_SET", "10")
	t.Setenv("PIPELINE_TEST_EMPTY", "")

	tests := []struct {
		input    string
		expected string
	}{
		{input: "${PIPELINE_TEST_SET}", expected: "10"},
		{input: "${PIPELINE_TEST_SET:5}", expected: "10"},
		{input: "${PIPELINE_TEST_UNSET:5}", expected: "5"},
		{input: "${PIPELINE_TEST_EMPTY:fallback}", expected: "fallback"},
		{input: "${PIPELINE_TEST_UNSET}", expected: ""},
		{input: "item-{level}", expected: "item-{level}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandEnvVars(tt.input); got != tt.expected {
				t.Errorf("expandEnvVars(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_MIN_LEVEL", "10")

	config, err := ParseConfig([]byte(`
rules:
  - id: test-rule
    type: level_up
    enabled: true
    parameters:
      min_level: ${TEST_MIN_LEVEL:2}
actions: []
`))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	// YAML unmarshaling interprets "10" as int
	if minLevel, ok := config.Rules[0].Parameters["min_level"].(int); !ok || minLevel != 10 {
		t.Errorf("expected min_level to be 10, got %v (type: %T)", config.Rules[0].Parameters["min_level"], config.Rules[0].Parameters["min_level"])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "duplicate rule ID",
			config: Config{Rules: []RuleConfig{
				{ID: "duplicate", Type: "level_up"},
				{ID: "duplicate", Type: "health_depleted"},
			}},
			wantErr: "duplicate rule ID",
		},
		{
			name: "duplicate action ID",
			config: Config{Actions: []ActionConfig{
				{ID: "duplicate", Type: "grant_badge"},
				{ID: "duplicate", Type: "grant_item"},
			}},
			wantErr: "duplicate action ID",
		},
		{
			name:    "empty rule ID",
			config:  Config{Rules: []RuleConfig{{Type: "level_up"}}},
			wantErr: "empty ID",
		},
		{
			name:    "empty rule type",
			config:  Config{Rules: []RuleConfig{{ID: "test"}}},
			wantErr: "empty type",
		},
		{
			name:    "empty action type",
			config:  Config{Actions: []ActionConfig{{ID: "test"}}},
			wantErr: "empty type",
		},
		{
			name: "unknown action reference",
			config: Config{
				Rules:   []RuleConfig{{ID: "r", Type: "level_up", Actions: []string{"pin", "missing"}}},
				Actions: []ActionConfig{{ID: "pin", Type: "grant_item"}},
			},
			wantErr: "unknown action: missing",
		},
		{
			name: "valid references",
			config: Config{
				Rules:   []RuleConfig{{ID: "r", Type: "level_up", Actions: []string{"pin"}}},
				Actions: []ActionConfig{{ID: "pin", Type: "grant_item"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
