// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

// RuleConfig is the configuration shared by all rules, loaded from the
// pipeline YAML.
type RuleConfig struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g. "lesson_first_completion"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Priority   int                    `yaml:"priority" json:"priority"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetInt retrieves an integer parameter with a default.
func (c *RuleConfig) GetInt(key string, defaultValue int) int {
	switch v := c.Parameters[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return defaultValue
}

// GetString retrieves a string parameter with a default.
func (c *RuleConfig) GetString(key string, defaultValue string) string {
	if v, ok := c.Parameters[key].(string); ok {
		return v
	}
	return defaultValue
}

// GetBool retrieves a boolean parameter with a default.
func (c *RuleConfig) GetBool(key string, defaultValue bool) bool {
	if v, ok := c.Parameters[key].(bool); ok {
		return v
	}
	return defaultValue
}

// GetStringSlice retrieves a list parameter. YAML decodes lists as
// []interface{}; non-string elements are skipped.
func (c *RuleConfig) GetStringSlice(key string) []string {
	switch v := c.Parameters[key].(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
