// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package action executes operations in response to rule triggers.
package action

import (
	"context"

	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
)

// Action performs an operation in response to a trigger.
// Actions are registered in a Registry and executed by the Executor.
type Action interface {
	// ID returns the unique action identifier.
	ID() string

	// Name returns a human-readable action name.
	Name() string

	// Execute performs the action. learnerCtx is the profile snapshot taken
	// when the triggering signal was emitted.
	Execute(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error

	// Rollback undoes the action, or returns ErrRollbackNotSupported.
	// It is called when a later action of the same pipeline fails and
	// rollback is enabled.
	Rollback(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error

	// Config returns the action configuration.
	Config() ActionConfig
}

// ActionResult is the outcome of one action execution.
type ActionResult struct {
	ActionID string
	Success  bool
	Error    error
}

// NewActionResult creates a successful result.
func NewActionResult(actionID string) *ActionResult {
	return &ActionResult{ActionID: actionID, Success: true}
}

// NewActionError creates a failed result.
func NewActionError(actionID string, err error) *ActionResult {
	return &ActionResult{ActionID: actionID, Error: err}
}
