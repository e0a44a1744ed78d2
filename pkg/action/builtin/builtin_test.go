// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"errors"
	"testing"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/profile"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCurriculum = curriculum.FromIDs("L0", "L1")

var testVocabulary = reward.NewVocabulary(reward.Bundle{
	LessonID:   "L0",
	Experience: 1200,
	BadgeID:    "first-badge",
	Knowledge: []reward.Knowledge{
		{ID: "k1", Category: "basics", Title: "One"},
		{ID: "k2", Category: "basics", Title: "Two"},
	},
	Insight:         map[state.Track]int{state.TrackA: 15, state.TrackC: 5},
	ItemID:          "notebook",
	UnlockCompanion: true,
})

func newStore() *profile.Store {
	return profile.NewStore(state.Default(testCurriculum), profile.StoreConfig{Curriculum: testCurriculum})
}

func lessonTrigger(id curriculum.LessonID) *rule.Trigger {
	return rule.NewTrigger("first_completion", nil, "test", 0).WithLesson(id)
}

func TestGrantLessonRewardsAction_AppliesBundle(t *testing.T) {
	store := newStore()
	a := NewGrantLessonRewardsAction(action.ActionConfig{ID: "rewards", Enabled: true}, store, testVocabulary)

	require.NoError(t, a.Execute(context.Background(), lessonTrigger("L0"), nil))

	p := store.Snapshot()
	assert.Equal(t, 1200, p.Experience)
	assert.Equal(t, 2, p.Level())
	assert.Equal(t, []string{"first-badge"}, p.Badges)
	assert.Equal(t, []string{"notebook"}, p.Inventory)
	assert.Len(t, p.KnowledgeEntries, 2)
	assert.Equal(t, state.InsightScores{TrackA: 15, TrackC: 5}, p.InsightScores)
	assert.True(t, p.CompanionUnlocked)
}

func TestGrantLessonRewardsAction_UnknownBundleGrantsNothing(t *testing.T) {
	store := newStore()
	a := NewGrantLessonRewardsAction(action.ActionConfig{ID: "rewards", Enabled: true}, store, testVocabulary)

	require.NoError(t, a.Execute(context.Background(), lessonTrigger("L1"), nil))
	assert.Equal(t, state.Default(testCurriculum), store.Snapshot())
}

func TestGrantLessonRewardsAction_RequiresLesson(t *testing.T) {
	a := NewGrantLessonRewardsAction(action.ActionConfig{ID: "rewards"}, newStore(), testVocabulary)

	err := a.Execute(context.Background(), rule.NewTrigger("r", nil, "test", 0), nil)
	assert.Error(t, err)
}

func TestGrantLessonRewardsAction_Rollback(t *testing.T) {
	a := NewGrantLessonRewardsAction(action.ActionConfig{ID: "rewards"}, newStore(), testVocabulary)

	err := a.Rollback(context.Background(), lessonTrigger("L0"), nil)
	assert.True(t, errors.Is(err, action.ErrRollbackNotSupported))
}

func TestGrantBadgeAction(t *testing.T) {
	store := newStore()
	a, err := NewGrantBadgeAction(action.ActionConfig{
		ID:         "graduate",
		Parameters: map[string]interface{}{"badge_id": "graduate"},
	}, store)
	require.NoError(t, err)

	require.NoError(t, a.Execute(context.Background(), lessonTrigger("L1"), nil))
	require.NoError(t, a.Execute(context.Background(), lessonTrigger("L1"), nil))

	assert.Equal(t, []string{"graduate"}, store.Snapshot().Badges)
}

func TestGrantItemAction_LevelPlaceholder(t *testing.T) {
	tests := []struct {
		name       string
		template   string
		metadata   map[string]interface{}
		learnerCtx *signal.LearnerContext
		expectItem string
		expectErr  error
	}{
		{
			name:       "plain item",
			template:   "stapler",
			expectItem: "stapler",
		},
		{
			name:       "level from trigger",
			template:   "pin-level-{level}",
			metadata:   map[string]interface{}{"level": 3},
			expectItem: "pin-level-3",
		},
		{
			name:       "level from learner context",
			template:   "pin-level-{level}",
			learnerCtx: &signal.LearnerContext{Profile: state.Profile{Experience: 4200}},
			expectItem: "pin-level-5",
		},
		{
			name:      "no level source",
			template:  "pin-level-{level}",
			expectErr: action.ErrMissingLearnerContext,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			a, err := NewGrantItemAction(action.ActionConfig{
				ID:         "pin",
				Parameters: map[string]interface{}{"item_id": tt.template},
			}, store)
			require.NoError(t, err)

			trigger := rule.NewTrigger("level_up", nil, "test", 0)
			for k, v := range tt.metadata {
				trigger.WithMetadata(k, v)
			}

			err = a.Execute(context.Background(), trigger, tt.learnerCtx)
			if tt.expectErr != nil {
				assert.True(t, errors.Is(err, tt.expectErr), "got %v", err)
				assert.Empty(t, store.Snapshot().Inventory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.expectItem}, store.Snapshot().Inventory)
		})
	}
}

func TestNewGrantItemAction_RequiresItemID(t *testing.T) {
	_, err := NewGrantItemAction(action.ActionConfig{ID: "pin"}, newStore())
	assert.True(t, errors.Is(err, action.ErrInvalidConfig))
}

func TestUnlockCompanionAction(t *testing.T) {
	store := newStore()
	a := NewUnlockCompanionAction(action.ActionConfig{ID: "companion"}, store)

	require.NoError(t, a.Execute(context.Background(), lessonTrigger("L0"), nil))
	assert.True(t, store.Snapshot().CompanionUnlocked)
}

func TestActions_WithoutProgression(t *testing.T) {
	a := NewUnlockCompanionAction(action.ActionConfig{ID: "companion"}, nil)

	err := a.Execute(context.Background(), lessonTrigger("L0"), nil)
	assert.True(t, errors.Is(err, action.ErrInvalidConfig))
}
