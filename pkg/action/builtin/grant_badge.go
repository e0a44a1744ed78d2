// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/sirupsen/logrus"
)

// GrantBadgeActionID is the type of the badge action.
const GrantBadgeActionID = "grant_badge"

// GrantBadgeAction unlocks the badge named by the "badge_id" parameter.
type GrantBadgeAction struct {
	config      action.ActionConfig
	progression Progression
	badgeID     string
}

// NewGrantBadgeAction creates a badge action. badge_id is required.
func NewGrantBadgeAction(config action.ActionConfig, progression Progression) (*GrantBadgeAction, error) {
	badgeID := config.GetParameterString("badge_id", "")
	if badgeID == "" {
		return nil, fmt.Errorf("%w: %s requires badge_id", action.ErrInvalidConfig, config.ID)
	}

	return &GrantBadgeAction{
		config:      config,
		progression: progression,
		badgeID:     badgeID,
	}, nil
}

func (a *GrantBadgeAction) ID() string                  { return a.config.ID }
func (a *GrantBadgeAction) Name() string                { return "Grant Badge" }
func (a *GrantBadgeAction) Config() action.ActionConfig { return a.config }

// Execute unlocks the badge; holding it already is not an error.
func (a *GrantBadgeAction) Execute(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	if a.progression == nil {
		return fmt.Errorf("%w: no progression store", action.ErrInvalidConfig)
	}

	if a.progression.UnlockBadge(a.badgeID) {
		logrus.Infof("badge %s unlocked by rule %s", a.badgeID, trigger.RuleID)
	}
	return nil
}

// Rollback is not supported: badges are never revoked.
func (a *GrantBadgeAction) Rollback(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	return action.ErrRollbackNotSupported
}
