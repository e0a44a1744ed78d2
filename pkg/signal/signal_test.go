// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"testing"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
)

func TestBaseSignal(t *testing.T) {
	timestamp := time.Now()
	metadata := map[string]interface{}{
		"test_key": "test_value",
	}
	learnerCtx := &LearnerContext{
		SessionID: "session-1",
		Profile:   state.Default(curriculum.Default),
	}

	signal := NewBaseSignal("test_type", 7, timestamp, metadata, learnerCtx)

	if signal.Type() != "test_type" {
		t.Errorf("Expected type 'test_type', got '%s'", signal.Type())
	}
	if signal.SessionID() != "session-1" {
		t.Errorf("Expected session 'session-1', got '%s'", signal.SessionID())
	}
	if signal.Sequence() != 7 {
		t.Errorf("Expected sequence 7, got %d", signal.Sequence())
	}
	if !signal.Timestamp().Equal(timestamp) {
		t.Errorf("Expected timestamp %v, got %v", timestamp, signal.Timestamp())
	}
	if signal.Metadata()["test_key"] != "test_value" {
		t.Errorf("Expected metadata test_key='test_value', got '%v'", signal.Metadata()["test_key"])
	}
	if signal.Context() != learnerCtx {
		t.Errorf("Expected context to match")
	}
}

func TestBaseSignal_NilMetadata(t *testing.T) {
	signal := NewBaseSignal("test", 1, time.Now(), nil, nil)

	if signal.Metadata() == nil {
		t.Error("Expected non-nil metadata map")
	}
	if signal.SessionID() != "" {
		t.Errorf("Expected empty session without context, got %q", signal.SessionID())
	}
}

func TestExperienceGrantedSignal_Levels(t *testing.T) {
	tests := []struct {
		name      string
		amount    int
		total     int
		before    int
		after     int
		leveledUp bool
	}{
		{name: "within level", amount: 200, total: 200, before: 1, after: 1},
		{name: "crosses boundary", amount: 300, total: 1100, before: 1, after: 2, leveledUp: true},
		{name: "lands exactly on boundary", amount: 1000, total: 1000, before: 1, after: 2, leveledUp: true},
		{name: "skips levels", amount: 2500, total: 3400, before: 1, after: 4, leveledUp: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := NewExperienceGrantedSignal(1, time.Now(), tt.amount, tt.total, nil)

			if sig.LevelBefore != tt.before || sig.LevelAfter != tt.after {
				t.Errorf("levels = %d -> %d, expected %d -> %d", sig.LevelBefore, sig.LevelAfter, tt.before, tt.after)
			}
			if sig.LeveledUp() != tt.leveledUp {
				t.Errorf("LeveledUp() = %v, expected %v", sig.LeveledUp(), tt.leveledUp)
			}
			if sig.Type() != TypeExperienceGranted {
				t.Errorf("Type() = %s", sig.Type())
			}
		})
	}
}

func TestConcreteSignals_Metadata(t *testing.T) {
	now := time.Now()

	completed := NewLessonCompletedSignal(3, now, "L1", true, 2, nil)
	if completed.Metadata()["lesson_id"] != "L1" || completed.Metadata()["completed_count"] != 2 {
		t.Errorf("unexpected lesson metadata: %v", completed.Metadata())
	}

	health := NewHealthChangedSignal(4, now, 10, 0, 100, nil)
	if !health.Depleted() {
		t.Error("health at zero should be depleted")
	}

	view := NewViewChangedSignal(5, now, state.ViewFreeRoam, state.ViewInLesson, "L1", nil)
	if view.Metadata()["current"] != "in-lesson" {
		t.Errorf("unexpected view metadata: %v", view.Metadata())
	}

	updated := NewProfileUpdatedSignal(6, now, FieldBadges, "first-day", nil)
	if updated.Type() != TypeProfileUpdated || updated.Field != FieldBadges {
		t.Errorf("unexpected profile update signal: %+v", updated)
	}

	var _ Signal = completed
	var _ Signal = health
	var _ Signal = view
	var _ Signal = updated
}
