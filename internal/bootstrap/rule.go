// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/pipeline"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	ruleBuiltin "github.com/AccelByte/extend-learner-progression/pkg/rule/builtin"
	"github.com/sirupsen/logrus"
)

// InitRuleEngine creates a rule engine with the rules of the pipeline config.
//
// ============================================================
// DEVELOPER: Register custom rule types here.
// ============================================================
// Rules read profile signals and decide whether to trigger actions.
//
// Steps to add a new rule:
// 1. Create your rule in pkg/rule/builtin/
// 2. Implement the Rule interface
// 3. Register the rule type in pkg/rule/builtin/init.go
// 4. Add the rule to the pipeline YAML
//
// Rule types outside pkg/rule/builtin/ can be registered below with
// rule.RegisterRuleType before the configs are converted.
// ============================================================
func InitRuleEngine(pipelineConfig *pipeline.Config, c *curriculum.Curriculum) (*rule.Engine, *rule.Registry, error) {
	ruleBuiltin.RegisterRules(c)

	ruleConfigs := convertRuleConfigs(pipelineConfig.Rules)

	registry := rule.NewRegistry()
	if err := rule.RegisterRules(registry, ruleConfigs); err != nil {
		return nil, nil, fmt.Errorf("failed to register rules: %w", err)
	}

	logrus.Infof("registered %d of %d configured rules", registry.Count(), len(ruleConfigs))
	for _, r := range registry.GetAll() {
		logrus.Debugf("rule %s (priority %d, enabled %t)", r.ID(), r.Config().Priority, r.Config().Enabled)
	}

	return rule.NewEngine(registry), registry, nil
}

func convertRuleConfigs(configs []pipeline.RuleConfig) []rule.RuleConfig {
	result := make([]rule.RuleConfig, len(configs))
	for i, rc := range configs {
		result[i] = rule.RuleConfig{
			ID:         rc.ID,
			Name:       rc.Name,
			Type:       rc.Type,
			Enabled:    rc.Enabled,
			Priority:   rc.Priority,
			Parameters: rc.Parameters,
		}
	}
	return result
}
