// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
)

const (
	// TypeLessonCompleted is emitted when a lesson joins the completed set.
	TypeLessonCompleted = "lesson_completed"
	// TypeExperienceGranted is emitted when experience is added.
	TypeExperienceGranted = "experience_granted"
	// TypeHealthChanged is emitted on damage, heal and health reset.
	TypeHealthChanged = "health_changed"
	// TypeViewChanged is emitted when the navigational view changes.
	TypeViewChanged = "view_changed"
	// TypeProfileUpdated covers every other profile field.
	TypeProfileUpdated = "profile_updated"
)

// Fields reported by ProfileUpdatedSignal.
const (
	FieldBadges        = "badges"
	FieldInventory     = "inventory"
	FieldKnowledge     = "knowledgeEntries"
	FieldInsight       = "insightScores"
	FieldCompanion     = "companionUnlocked"
	FieldIdentity      = "identity"
	FieldCurrentLesson = "currentLessonId"
	FieldReset         = "reset"
)

// LessonCompletedSignal reports a lesson completion.
type LessonCompletedSignal struct {
	*BaseSignal
	LessonID       curriculum.LessonID
	First          bool
	CompletedCount int
}

// NewLessonCompletedSignal creates a lesson completion signal.
func NewLessonCompletedSignal(seq uint64, ts time.Time, lessonID curriculum.LessonID, first bool, completedCount int, learnerCtx *LearnerContext) *LessonCompletedSignal {
	metadata := map[string]interface{}{
		"lesson_id":       string(lessonID),
		"first":           first,
		"completed_count": completedCount,
	}
	return &LessonCompletedSignal{
		BaseSignal:     NewBaseSignal(TypeLessonCompleted, seq, ts, metadata, learnerCtx),
		LessonID:       lessonID,
		First:          first,
		CompletedCount: completedCount,
	}
}

// ExperienceGrantedSignal reports an experience grant.
type ExperienceGrantedSignal struct {
	*BaseSignal
	Amount      int
	Total       int
	LevelBefore int
	LevelAfter  int
}

// LeveledUp reports whether the grant crossed a level boundary.
func (s *ExperienceGrantedSignal) LeveledUp() bool {
	return s.LevelAfter > s.LevelBefore
}

// NewExperienceGrantedSignal creates an experience signal.
func NewExperienceGrantedSignal(seq uint64, ts time.Time, amount, total int, learnerCtx *LearnerContext) *ExperienceGrantedSignal {
	before := state.LevelFor(total - amount)
	after := state.LevelFor(total)
	metadata := map[string]interface{}{
		"amount":       amount,
		"total":        total,
		"level_before": before,
		"level_after":  after,
	}
	return &ExperienceGrantedSignal{
		BaseSignal:  NewBaseSignal(TypeExperienceGranted, seq, ts, metadata, learnerCtx),
		Amount:      amount,
		Total:       total,
		LevelBefore: before,
		LevelAfter:  after,
	}
}

// HealthChangedSignal reports a health change.
type HealthChangedSignal struct {
	*BaseSignal
	Previous int
	Current  int
	Max      int
}

// Depleted reports whether health reached zero.
func (s *HealthChangedSignal) Depleted() bool {
	return s.Current == 0
}

// NewHealthChangedSignal creates a health signal.
func NewHealthChangedSignal(seq uint64, ts time.Time, previous, current, max int, learnerCtx *LearnerContext) *HealthChangedSignal {
	metadata := map[string]interface{}{
		"previous": previous,
		"current":  current,
		"max":      max,
	}
	return &HealthChangedSignal{
		BaseSignal: NewBaseSignal(TypeHealthChanged, seq, ts, metadata, learnerCtx),
		Previous:   previous,
		Current:    current,
		Max:        max,
	}
}

// ViewChangedSignal reports a navigational view change.
type ViewChangedSignal struct {
	*BaseSignal
	Previous state.View
	Current  state.View
	LessonID curriculum.LessonID
}

// NewViewChangedSignal creates a view signal. lessonID is the current lesson
// pointer at the time of the change.
func NewViewChangedSignal(seq uint64, ts time.Time, previous, current state.View, lessonID curriculum.LessonID, learnerCtx *LearnerContext) *ViewChangedSignal {
	metadata := map[string]interface{}{
		"previous":  string(previous),
		"current":   string(current),
		"lesson_id": string(lessonID),
	}
	return &ViewChangedSignal{
		BaseSignal: NewBaseSignal(TypeViewChanged, seq, ts, metadata, learnerCtx),
		Previous:   previous,
		Current:    current,
		LessonID:   lessonID,
	}
}

// ProfileUpdatedSignal reports a change to any other field.
type ProfileUpdatedSignal struct {
	*BaseSignal
	Field string
	Value interface{}
}

// NewProfileUpdatedSignal creates a generic profile update signal.
func NewProfileUpdatedSignal(seq uint64, ts time.Time, field string, value interface{}, learnerCtx *LearnerContext) *ProfileUpdatedSignal {
	metadata := map[string]interface{}{
		"field": field,
		"value": value,
	}
	return &ProfileUpdatedSignal{
		BaseSignal: NewBaseSignal(TypeProfileUpdated, seq, ts, metadata, learnerCtx),
		Field:      field,
		Value:      value,
	}
}
