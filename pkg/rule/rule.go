// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rule turns profile signals into triggers.
package rule

import (
	"context"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
)

// Rule evaluates signals and emits triggers when its conditions are met.
// Rules are registered in a Registry and evaluated by the Engine.
type Rule interface {
	// ID returns the unique rule identifier.
	ID() string

	// Name returns a human-readable rule name.
	Name() string

	// SignalTypes returns the signal types this rule handles.
	// An empty slice means the rule handles every signal type.
	SignalTypes() []string

	// Evaluate checks whether the signal matches the rule.
	// The error is reserved for unexpected failures, not mismatches.
	Evaluate(ctx context.Context, sig signal.Signal) (bool, *Trigger, error)

	// Config returns the rule configuration.
	Config() RuleConfig
}

// Trigger is a rule match that should execute actions.
type Trigger struct {
	RuleID    string                 // rule that matched
	SessionID string                 // learner session the signal came from
	LessonID  curriculum.LessonID    // lesson involved, empty when none
	Timestamp time.Time              // signal time
	Reason    string                 // human-readable reason
	Metadata  map[string]interface{} // rule-specific data for actions
	Priority  int                    // higher runs first
}

// NewTrigger creates a trigger for sig.
func NewTrigger(ruleID string, sig signal.Signal, reason string, priority int) *Trigger {
	t := &Trigger{
		RuleID:   ruleID,
		Reason:   reason,
		Metadata: make(map[string]interface{}),
		Priority: priority,
	}
	if sig != nil {
		t.SessionID = sig.SessionID()
		t.Timestamp = sig.Timestamp()
	} else {
		t.Timestamp = time.Now().UTC()
	}
	return t
}

// WithLesson sets the lesson and returns the trigger for chaining.
func (t *Trigger) WithLesson(id curriculum.LessonID) *Trigger {
	t.LessonID = id
	return t
}

// WithMetadata adds one metadata entry and returns the trigger for chaining.
func (t *Trigger) WithMetadata(key string, value interface{}) *Trigger {
	t.Metadata[key] = value
	return t
}
