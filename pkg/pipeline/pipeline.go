// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

// Pipeline maps rules to the actions they trigger.
type Pipeline struct {
	Name            string
	Rules           []string            // rule IDs in configuration order
	Actions         map[string][]string // rule ID to action IDs
	RollbackOnError bool
}

// NewPipeline creates an empty pipeline with rollback enabled.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		Name:            name,
		Actions:         make(map[string][]string),
		RollbackOnError: true,
	}
}

// FromConfig builds the mapping of every enabled rule in config.
func FromConfig(name string, config *Config) *Pipeline {
	p := NewPipeline(name)
	p.RollbackOnError = config.ShouldRollback()
	for _, rc := range config.Rules {
		if !rc.Enabled {
			continue
		}
		p.AddRule(rc.ID)
		if len(rc.Actions) > 0 {
			p.AddActions(rc.ID, rc.Actions...)
		}
	}
	return p
}

// AddRule adds a rule to the pipeline.
func (p *Pipeline) AddRule(ruleID string) *Pipeline {
	p.Rules = append(p.Rules, ruleID)
	return p
}

// AddActions associates actions with a rule.
func (p *Pipeline) AddActions(ruleID string, actionIDs ...string) *Pipeline {
	if p.Actions == nil {
		p.Actions = make(map[string][]string)
	}
	p.Actions[ruleID] = append(p.Actions[ruleID], actionIDs...)
	return p
}

// GetActions returns the action IDs of a rule.
func (p *Pipeline) GetActions(ruleID string) []string {
	return p.Actions[ruleID]
}
