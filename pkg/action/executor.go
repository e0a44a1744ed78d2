// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/metrics"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Executor executes actions in response to rule triggers.
type Executor struct {
	registry *Registry
}

// NewExecutor creates an action executor.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{
		registry: registry,
	}
}

// Execute runs one action.
func (e *Executor) Execute(ctx context.Context, actionID string, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) (*ActionResult, error) {
	a := e.registry.Get(actionID)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
	}

	if err := e.run(ctx, a, trigger, learnerCtx); err != nil {
		return NewActionError(actionID, err), err
	}
	return NewActionResult(actionID), nil
}

// ExecuteMultiple executes actions in order and stops at the first failure.
// With rollbackOnError the already executed actions are rolled back in
// reverse order.
func (e *Executor) ExecuteMultiple(ctx context.Context, actionIDs []string, trigger *rule.Trigger, learnerCtx *signal.LearnerContext, rollbackOnError bool) ([]*ActionResult, error) {
	var results []*ActionResult
	var executed []Action

	fail := func(err error) ([]*ActionResult, error) {
		if rollbackOnError && len(executed) > 0 {
			e.rollback(ctx, executed, trigger, learnerCtx)
		}
		return results, err
	}

	for _, actionID := range actionIDs {
		a := e.registry.Get(actionID)
		if a == nil {
			err := fmt.Errorf("%w: %s", ErrActionNotFound, actionID)
			logrus.Error(err)
			return fail(err)
		}

		if err := e.run(ctx, a, trigger, learnerCtx); err != nil {
			results = append(results, NewActionError(actionID, err))
			return fail(err)
		}

		executed = append(executed, a)
		results = append(results, NewActionResult(actionID))
	}

	return results, nil
}

func (e *Executor) run(ctx context.Context, a Action, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	logrus.Debugf("executing action %s for trigger %s (session: %s)", a.ID(), trigger.RuleID, trigger.SessionID)

	err := a.Execute(ctx, trigger, learnerCtx)
	metrics.ActionExecutionsTotal.WithLabelValues(a.ID(), metrics.Result(err)).Inc()
	if err != nil {
		logrus.Errorf("action %s failed: %v", a.ID(), err)
		return err
	}

	logrus.Debugf("action %s completed", a.ID())
	return nil
}

func (e *Executor) rollback(ctx context.Context, actions []Action, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) {
	logrus.Warnf("rolling back %d actions", len(actions))

	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		err := a.Rollback(ctx, trigger, learnerCtx)
		switch {
		case errors.Is(err, ErrRollbackNotSupported):
			logrus.Warnf("action %s does not support rollback", a.ID())
		case err != nil:
			logrus.Errorf("failed to rollback action %s: %v", a.ID(), err)
		default:
			logrus.Infof("action %s rolled back", a.ID())
		}
	}
}
