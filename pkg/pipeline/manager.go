// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/common"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
)

// Subscriber is a source of profile signals. *profile.Store implements it.
type Subscriber interface {
	Subscribe(name string, handler signal.Handler) (unsubscribe func())
}

// Manager orchestrates the progression pipeline:
// Signal → Rules → Actions → Store mutations → Signal ...
type Manager struct {
	engine   *rule.Engine
	executor *action.Executor
	pipeline *Pipeline

	signalsHandled   atomic.Int64
	triggers         atomic.Int64
	actionsExecuted  atomic.Int64
	actionsSucceeded atomic.Int64
	actionsFailed    atomic.Int64
}

// NewManager creates a new pipeline manager with all required components.
func NewManager(engine *rule.Engine, executor *action.Executor, pipeline *Pipeline) *Manager {
	if pipeline == nil {
		pipeline = NewPipeline("empty")
	}

	return &Manager{
		engine:   engine,
		executor: executor,
		pipeline: pipeline,
	}
}

// Attach subscribes the manager to sub and returns the unsubscribe function.
func (m *Manager) Attach(sub Subscriber) func() {
	return sub.Subscribe("pipeline:"+m.pipeline.Name, m.Handle)
}

// Handle runs one signal through the pipeline. It is a signal.Handler; errors
// are logged, never returned to the store.
func (m *Manager) Handle(ctx context.Context, sig signal.Signal) {
	if sig == nil {
		return
	}
	m.signalsHandled.Add(1)

	scope := common.NewScope(ctx, "pipeline."+sig.Type()).WithSession(sig.SessionID())
	defer scope.Finish()
	scope.SetAttributes("sequence", sig.Sequence())

	if err := m.evaluateAndExecute(scope, sig); err != nil {
		scope.TraceError(err)
		scope.Log.Errorf("pipeline failed for signal %s (seq %d): %v", sig.Type(), sig.Sequence(), err)
	}
}

// evaluateAndExecute evaluates rules for a signal and executes triggered actions.
func (m *Manager) evaluateAndExecute(scope *common.Scope, sig signal.Signal) error {
	triggers, err := m.engine.Evaluate(scope.Ctx, sig)
	if err != nil {
		return fmt.Errorf("rule evaluation failed: %w", err)
	}

	if len(triggers) == 0 {
		scope.Log.Debugf("no rules triggered for signal %s", sig.Type())
		return nil
	}
	m.triggers.Add(int64(len(triggers)))

	scope.Log.Infof("%d rules triggered by signal %s", len(triggers), sig.Type())

	for _, trigger := range triggers {
		actionIDs := m.pipeline.GetActions(trigger.RuleID)
		if len(actionIDs) == 0 {
			scope.Log.Debugf("trigger %s has no actions configured", trigger.RuleID)
			continue
		}

		child := scope.NewChildScope("rule." + trigger.RuleID)
		child.SetAttributes("actions", actionIDs)

		results, err := m.executor.ExecuteMultiple(child.Ctx, actionIDs, trigger, sig.Context(), m.pipeline.RollbackOnError)
		if err != nil {
			child.TraceError(err)
			child.Log.Errorf("action execution for rule %s encountered error: %v", trigger.RuleID, err)
		}

		successCount, failureCount := 0, 0
		for _, result := range results {
			m.actionsExecuted.Add(1)
			if result.Error != nil {
				failureCount++
				child.Log.Errorf("action %s failed for rule %s: %v", result.ActionID, trigger.RuleID, result.Error)
			} else {
				successCount++
			}
		}
		m.actionsSucceeded.Add(int64(successCount))
		m.actionsFailed.Add(int64(failureCount))

		if failureCount > 0 && successCount > 0 {
			child.Log.Warnf("partial action failure for rule %s: %d succeeded, %d failed", trigger.RuleID, successCount, failureCount)
		} else {
			child.Log.Debugf("rule %s executed %d actions", trigger.RuleID, successCount)
		}
		child.Finish()
	}

	return nil
}

// Stats contains pipeline counters since the manager was created.
type Stats struct {
	SignalsHandled   int64 `json:"signals_handled"`
	Triggers         int64 `json:"triggers"`
	ActionsExecuted  int64 `json:"actions_executed"`
	ActionsSucceeded int64 `json:"actions_succeeded"`
	ActionsFailed    int64 `json:"actions_failed"`
}

// Stats returns the current pipeline counters.
func (m *Manager) Stats() Stats {
	return Stats{
		SignalsHandled:   m.signalsHandled.Load(),
		Triggers:         m.triggers.Load(),
		ActionsExecuted:  m.actionsExecuted.Load(),
		ActionsSucceeded: m.actionsSucceeded.Load(),
		ActionsFailed:    m.actionsFailed.Load(),
	}
}
