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
)

// UnlockCompanionActionID is the type of the companion action.
const UnlockCompanionActionID = "unlock_companion"

// UnlockCompanionAction sets the companion flag.
type UnlockCompanionAction struct {
	config      action.ActionConfig
	progression Progression
}

// NewUnlockCompanionAction creates a companion action.
func NewUnlockCompanionAction(config action.ActionConfig, progression Progression) *UnlockCompanionAction {
	return &UnlockCompanionAction{config: config, progression: progression}
}

func (a *UnlockCompanionAction) ID() string                  { return a.config.ID }
func (a *UnlockCompanionAction) Name() string                { return "Unlock Companion" }
func (a *UnlockCompanionAction) Config() action.ActionConfig { return a.config }

func (a *UnlockCompanionAction) Execute(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	if a.progression == nil {
		return fmt.Errorf("%w: no progression store", action.ErrInvalidConfig)
	}
	a.progression.UnlockCompanion()
	return nil
}

func (a *UnlockCompanionAction) Rollback(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	return action.ErrRollbackNotSupported
}
