// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ActionFactory creates an action from its configuration.
type ActionFactory func(config ActionConfig) (Action, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]ActionFactory)
)

// RegisterActionType registers a factory for an action type.
func RegisterActionType(actionType string, factory ActionFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[actionType] = factory
	logrus.Debugf("registered action type: %s", actionType)
}

// IsRegistered reports whether a factory exists for actionType.
func IsRegistered(actionType string) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	_, ok := factories[actionType]
	return ok
}

// CreateAction builds an action from config. Disabled actions yield (nil, nil).
func CreateAction(config ActionConfig) (Action, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled action: %s", config.ID)
		return nil, nil
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown action type: %s", config.Type)
	}

	logrus.Debugf("creating action: id=%s, type=%s", config.ID, config.Type)
	return factory(config)
}

// CreateActions builds every config, collecting errors instead of stopping.
func CreateActions(configs []ActionConfig) ([]Action, []error) {
	var actions []Action
	var errs []error

	for _, config := range configs {
		a, err := CreateAction(config)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create action %s: %w", config.ID, err))
			continue
		}
		if a != nil {
			actions = append(actions, a)
		}
	}

	return actions, errs
}

// RegisterActions creates the configured actions and adds them to registry.
// Creation errors are logged and skipped; a registration conflict is fatal.
func RegisterActions(registry *Registry, configs []ActionConfig) error {
	actions, errs := CreateActions(configs)
	for _, err := range errs {
		logrus.Warnf("action creation error: %v", err)
	}

	for _, a := range actions {
		if err := registry.Register(a); err != nil {
			return fmt.Errorf("failed to register action %s: %w", a.ID(), err)
		}
	}

	logrus.Infof("registered %d actions", len(actions))
	return nil
}
