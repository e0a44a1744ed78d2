// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/sirupsen/logrus"
)

const (
	// LessonFirstCompletionRuleID is the type of the first-completion rule.
	LessonFirstCompletionRuleID = "lesson_first_completion"

	// CurriculumCompleteRuleID is the type of the curriculum completion rule.
	CurriculumCompleteRuleID = "curriculum_complete"
)

// LessonFirstCompletionRule matches the first completion of a lesson.
// The optional "lesson_ids" parameter restricts it to the listed lessons.
type LessonFirstCompletionRule struct {
	config  rule.RuleConfig
	lessons curriculum.Set
}

// NewLessonFirstCompletionRule creates a first-completion rule.
func NewLessonFirstCompletionRule(config rule.RuleConfig) *LessonFirstCompletionRule {
	var lessons curriculum.Set
	if ids := config.GetStringSlice("lesson_ids"); len(ids) > 0 {
		lessons = curriculum.NewSet()
		for _, id := range ids {
			lessons[curriculum.LessonID(id)] = struct{}{}
		}
	}

	logrus.Debugf("creating lesson first completion rule %s with %d lesson filters", config.ID, len(lessons))

	return &LessonFirstCompletionRule{
		config:  config,
		lessons: lessons,
	}
}

// ID returns the rule identifier.
func (r *LessonFirstCompletionRule) ID() string {
	return r.config.ID
}

// Name returns the rule name.
func (r *LessonFirstCompletionRule) Name() string {
	return "Lesson First Completion"
}

// SignalTypes returns the signal types this rule handles.
func (r *LessonFirstCompletionRule) SignalTypes() []string {
	return []string{signal.TypeLessonCompleted}
}

// Config returns the rule configuration.
func (r *LessonFirstCompletionRule) Config() rule.RuleConfig {
	return r.config
}

// Evaluate matches first completions of a filtered lesson.
func (r *LessonFirstCompletionRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	completed, ok := sig.(*signal.LessonCompletedSignal)
	if !ok {
		return false, nil, fmt.Errorf("expected LessonCompletedSignal, got %T", sig)
	}

	if !completed.First {
		return false, nil, nil
	}
	if r.lessons != nil && !r.lessons.HasCompleted(completed.LessonID) {
		return false, nil, nil
	}

	trigger := rule.NewTrigger(r.ID(), sig, fmt.Sprintf("lesson %s completed for the first time", completed.LessonID), r.config.Priority).
		WithLesson(completed.LessonID).
		WithMetadata("completed_count", completed.CompletedCount)

	return true, trigger, nil
}

// CurriculumCompleteRule matches the first completion that finishes every
// terminal lesson.
type CurriculumCompleteRule struct {
	config     rule.RuleConfig
	curriculum *curriculum.Curriculum
	terminal   curriculum.Set
}

// NewCurriculumCompleteRule creates a curriculum completion rule over c.
func NewCurriculumCompleteRule(config rule.RuleConfig, c *curriculum.Curriculum) *CurriculumCompleteRule {
	return &CurriculumCompleteRule{
		config:     config,
		curriculum: c,
		terminal:   curriculum.NewSet(c.Terminal()...),
	}
}

// ID returns the rule identifier.
func (r *CurriculumCompleteRule) ID() string {
	return r.config.ID
}

// Name returns the rule name.
func (r *CurriculumCompleteRule) Name() string {
	return "Curriculum Complete"
}

// SignalTypes returns the signal types this rule handles.
func (r *CurriculumCompleteRule) SignalTypes() []string {
	return []string{signal.TypeLessonCompleted}
}

// Config returns the rule configuration.
func (r *CurriculumCompleteRule) Config() rule.RuleConfig {
	return r.config
}

// Evaluate matches when a terminal lesson is completed for the first time and
// the profile now holds the whole terminal set. Completing a non-terminal
// lesson never changes terminal completeness, so it cannot match.
func (r *CurriculumCompleteRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	completed, ok := sig.(*signal.LessonCompletedSignal)
	if !ok {
		return false, nil, fmt.Errorf("expected LessonCompletedSignal, got %T", sig)
	}
	if sig.Context() == nil {
		return false, nil, fmt.Errorf("lesson completion signal without learner context")
	}

	if !completed.First || !r.terminal.HasCompleted(completed.LessonID) {
		return false, nil, nil
	}
	if !r.curriculum.AllComplete(sig.Context().Profile) {
		return false, nil, nil
	}

	logrus.Infof("curriculum completed in session %s", sig.SessionID())

	trigger := rule.NewTrigger(r.ID(), sig, "every terminal lesson completed", r.config.Priority).
		WithLesson(completed.LessonID).
		WithMetadata("lesson_count", r.curriculum.Len())

	return true, trigger, nil
}
