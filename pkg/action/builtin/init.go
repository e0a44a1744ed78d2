// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package builtin provides the progression action types. Every action
// mutates the learner profile through Progression.
package builtin

import (
	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
)

// Progression is the subset of the profile store the actions use.
// profile.Store implements it.
type Progression interface {
	GrantExperience(amount int) bool
	UnlockBadge(id string) bool
	AddInventoryItem(id string) bool
	UnlockKnowledge(entry state.KnowledgeEntry) bool
	UpdateInsight(track state.Track, delta int) bool
	UnlockCompanion() bool
}

// Dependencies holds what the built-in actions need.
type Dependencies struct {
	Progression Progression
	// Vocabulary defaults to reward.Default.
	Vocabulary *reward.Vocabulary
}

// RegisterActions registers the built-in action factories bound to deps.
func RegisterActions(deps *Dependencies) {
	vocabulary := deps.Vocabulary
	if vocabulary == nil {
		vocabulary = reward.Default
	}

	action.RegisterActionType(GrantLessonRewardsActionID, func(config action.ActionConfig) (action.Action, error) {
		return NewGrantLessonRewardsAction(config, deps.Progression, vocabulary), nil
	})

	action.RegisterActionType(GrantBadgeActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewGrantBadgeAction(config, deps.Progression)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	action.RegisterActionType(GrantItemActionID, func(config action.ActionConfig) (action.Action, error) {
		a, err := NewGrantItemAction(config, deps.Progression)
		if err != nil {
			return nil, err
		}
		return a, nil
	})

	action.RegisterActionType(UnlockCompanionActionID, func(config action.ActionConfig) (action.Action, error) {
		return NewUnlockCompanionAction(config, deps.Progression), nil
	})
}
