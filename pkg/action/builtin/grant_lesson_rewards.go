// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/sirupsen/logrus"
)

// GrantLessonRewardsActionID is the type of the lesson reward action.
const GrantLessonRewardsActionID = "grant_lesson_rewards"

// GrantLessonRewardsAction applies the reward bundle of the trigger lesson.
// Wire it only to first-completion rules: the bundle experience is additive.
type GrantLessonRewardsAction struct {
	config      action.ActionConfig
	progression Progression
	vocabulary  *reward.Vocabulary
}

// NewGrantLessonRewardsAction creates a lesson reward action.
func NewGrantLessonRewardsAction(config action.ActionConfig, progression Progression, vocabulary *reward.Vocabulary) *GrantLessonRewardsAction {
	return &GrantLessonRewardsAction{
		config:      config,
		progression: progression,
		vocabulary:  vocabulary,
	}
}

// ID returns the action identifier.
func (a *GrantLessonRewardsAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *GrantLessonRewardsAction) Name() string {
	return "Grant Lesson Rewards"
}

// Config returns the action configuration.
func (a *GrantLessonRewardsAction) Config() action.ActionConfig {
	return a.config
}

// Execute grants the bundle. A lesson without a bundle grants nothing.
func (a *GrantLessonRewardsAction) Execute(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	if a.progression == nil {
		return fmt.Errorf("%w: no progression store", action.ErrInvalidConfig)
	}
	if trigger.LessonID == "" {
		return fmt.Errorf("trigger %s carries no lesson", trigger.RuleID)
	}

	bundle, ok := a.vocabulary.Lookup(trigger.LessonID)
	if !ok {
		logrus.Debugf("no reward bundle for lesson %s", trigger.LessonID)
		return nil
	}

	if bundle.Experience > 0 {
		a.progression.GrantExperience(bundle.Experience)
	}
	if bundle.BadgeID != "" {
		a.progression.UnlockBadge(bundle.BadgeID)
	}
	for _, k := range bundle.Knowledge {
		a.progression.UnlockKnowledge(k.Entry())
	}
	for _, track := range state.Tracks {
		if delta := bundle.Insight[track]; delta > 0 {
			a.progression.UpdateInsight(track, delta)
		}
	}
	if bundle.ItemID != "" {
		a.progression.AddInventoryItem(bundle.ItemID)
	}
	if bundle.UnlockCompanion {
		a.progression.UnlockCompanion()
	}

	logrus.Infof("granted rewards of lesson %s (experience %d, badge %s)", trigger.LessonID, bundle.Experience, bundle.BadgeID)
	return nil
}

// Rollback is not supported: profile sets only grow.
func (a *GrantLessonRewardsAction) Rollback(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	return action.ErrRollbackNotSupported
}
