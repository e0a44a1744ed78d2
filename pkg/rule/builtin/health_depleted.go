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

// HealthDepletedRuleID is the type of the health depletion rule.
const HealthDepletedRuleID = "health_depleted"

// HealthDepletedRule matches health changes that reach zero.
type HealthDepletedRule struct {
	config rule.RuleConfig
}

// NewHealthDepletedRule creates a health depletion rule.
func NewHealthDepletedRule(config rule.RuleConfig) *HealthDepletedRule {
	return &HealthDepletedRule{config: config}
}

func (r *HealthDepletedRule) ID() string              { return r.config.ID }
func (r *HealthDepletedRule) Name() string            { return "Health Depleted" }
func (r *HealthDepletedRule) SignalTypes() []string   { return []string{signal.TypeHealthChanged} }
func (r *HealthDepletedRule) Config() rule.RuleConfig { return r.config }

// Evaluate matches a transition into zero health.
func (r *HealthDepletedRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	health, ok := sig.(*signal.HealthChangedSignal)
	if !ok {
		return false, nil, fmt.Errorf("expected HealthChangedSignal, got %T", sig)
	}

	if !health.Depleted() || health.Previous == 0 {
		return false, nil, nil
	}

	trigger := rule.NewTrigger(r.ID(), sig, "health depleted", r.config.Priority).
		WithMetadata("previous_health", health.Previous)
	if sig.Context() != nil {
		trigger.WithLesson(sig.Context().Profile.CurrentLessonID)
	}

	return true, trigger, nil
}
