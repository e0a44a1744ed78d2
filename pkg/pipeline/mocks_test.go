// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
)

// mockRule matches every signal of its types when shouldMatch is set.
type mockRule struct {
	id          string
	signalTypes []string
	enabled     bool
	shouldMatch bool
	priority    int
}

func (m *mockRule) ID() string            { return m.id }
func (m *mockRule) Name() string          { return "Mock Rule" }
func (m *mockRule) SignalTypes() []string { return m.signalTypes }
func (m *mockRule) Evaluate(ctx context.Context, sig signal.Signal) (bool, *rule.Trigger, error) {
	if !m.shouldMatch {
		return false, nil, nil
	}
	return true, rule.NewTrigger(m.id, sig, "mock rule triggered", m.priority), nil
}
func (m *mockRule) Config() rule.RuleConfig {
	return rule.RuleConfig{ID: m.id, Type: "mock", Enabled: m.enabled, Priority: m.priority}
}

// callLog records action calls in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type mockAction struct {
	id         string
	enabled    bool
	shouldFail bool
	log        *callLog
}

func (m *mockAction) ID() string   { return m.id }
func (m *mockAction) Name() string { return "Mock Action" }
func (m *mockAction) Execute(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	if m.log != nil {
		m.log.add("execute:" + m.id)
	}
	if m.shouldFail {
		return errors.New("mock action failed")
	}
	return nil
}
func (m *mockAction) Rollback(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	if m.log != nil {
		m.log.add("rollback:" + m.id)
	}
	return nil
}
func (m *mockAction) Config() action.ActionConfig {
	return action.ActionConfig{ID: m.id, Type: "mock", Enabled: m.enabled}
}
