// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
)

const (
	// LevelUpRuleID is the type of the level-up rule.
	LevelUpRuleID = "level_up"

	// DefaultMinLevel is the lowest level that triggers by default.
	DefaultMinLevel = 2
)

// LevelUpRule matches experience grants that cross a level boundary and land
// at or above "min_level".
type LevelUpRule struct {
	config   rule.RuleConfig
	minLevel int
}

// NewLevelUpRule creates a level-up rule.
func NewLevelUpRule(config rule.RuleConfig) *LevelUpRule {
	return &LevelUpRule{
		config:   config,
		minLevel: config.GetInt("min_level", DefaultMinLevel),
	}
}

// ID returns the rule identifier.
func (r *LevelUpRule) ID() string {
	return r.config.ID
}

// Name returns the rule name.
func (r *LevelUpRule) Name() string {
	return "Level Up"
}

// SignalTypes returns the signal types this rule handles.
func (r *LevelUpRule) SignalTypes() []string {
	return []string{signal.TypeExperienceGranted}
}

// Config returns the rule configuration.
func (r *LevelUpRule) Config() rule.RuleConfig {
	return r.config
}

// Evaluate matches level boundary crossings.
func (r *LevelUpRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	granted, ok := sig.(*signal.ExperienceGrantedSignal)
	if !ok {
		return false, nil, fmt.Errorf("expected ExperienceGrantedSignal, got %T", sig)
	}

	if !granted.LeveledUp() || granted.LevelAfter < r.minLevel {
		return false, nil, nil
	}

	trigger := rule.NewTrigger(r.ID(), sig, fmt.Sprintf("reached level %d", granted.LevelAfter), r.config.Priority).
		WithMetadata("level", granted.LevelAfter).
		WithMetadata("previous_level", granted.LevelBefore)

	return true, trigger, nil
}
