// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

// ActionConfig is the configuration shared by all actions, loaded from the
// pipeline YAML.
type ActionConfig struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g. "grant_badge"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// GetParameterInt retrieves an integer parameter with a default.
func (c *ActionConfig) GetParameterInt(key string, defaultValue int) int {
	switch v := c.Parameters[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return defaultValue
}

// GetParameterString retrieves a string parameter with a default.
func (c *ActionConfig) GetParameterString(key string, defaultValue string) string {
	if v, ok := c.Parameters[key].(string); ok {
		return v
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *ActionConfig) GetParameterBool(key string, defaultValue bool) bool {
	if v, ok := c.Parameters[key].(bool); ok {
		return v
	}
	return defaultValue
}
