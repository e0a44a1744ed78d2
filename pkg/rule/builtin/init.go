// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package builtin provides the progression rule types.
package builtin

import (
	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
)

// RegisterRules registers every built-in rule type with the factory.
// c is the lesson order used by curriculum-aware rules; nil means
// curriculum.Default.
func RegisterRules(c *curriculum.Curriculum) {
	if c == nil {
		c = curriculum.Default
	}

	rule.RegisterRuleType(LessonFirstCompletionRuleID, func(config rule.RuleConfig) (rule.Rule, error) {
		return NewLessonFirstCompletionRule(config), nil
	})

	rule.RegisterRuleType(CurriculumCompleteRuleID, func(config rule.RuleConfig) (rule.Rule, error) {
		return NewCurriculumCompleteRule(config, c), nil
	})

	rule.RegisterRuleType(LevelUpRuleID, func(config rule.RuleConfig) (rule.Rule, error) {
		return NewLevelUpRule(config), nil
	})

	rule.RegisterRuleType(HealthDepletedRuleID, func(config rule.RuleConfig) (rule.Rule, error) {
		return NewHealthDepletedRule(config), nil
	})
}
