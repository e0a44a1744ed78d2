// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"context"
	"sort"

	"github.com/AccelByte/extend-learner-progression/pkg/metrics"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/sirupsen/logrus"
)

// Engine evaluates signals against registered rules and returns triggers.
type Engine struct {
	registry *Registry
}

// NewEngine creates a rule evaluation engine.
func NewEngine(registry *Registry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// Evaluate runs sig through every rule handling its type. Triggers come back
// ordered by priority, highest first; ties keep rule ID order.
func (e *Engine) Evaluate(ctx context.Context, sig signal.Signal) ([]*Trigger, error) {
	if sig == nil {
		return nil, nil
	}

	rules := e.registry.GetBySignalType(sig.Type())
	if len(rules) == 0 {
		logrus.Debugf("no rules found for signal type '%s'", sig.Type())
		return nil, nil
	}

	var triggers []*Trigger
	for _, r := range rules {
		matched, trigger, err := r.Evaluate(ctx, sig)
		if err != nil {
			// keep evaluating the remaining rules
			logrus.Errorf("rule %s evaluation failed: %v", r.ID(), err)
			continue
		}
		if matched && trigger != nil {
			logrus.Infof("rule %s triggered for session %s: %s", r.ID(), sig.SessionID(), trigger.Reason)
			metrics.RuleTriggersTotal.WithLabelValues(r.ID()).Inc()
			triggers = append(triggers, trigger)
		}
	}

	sort.SliceStable(triggers, func(i, j int) bool {
		return triggers[i].Priority > triggers[j].Priority
	})

	return triggers, nil
}

