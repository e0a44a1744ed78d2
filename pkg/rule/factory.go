// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// RuleFactory creates a rule from its configuration.
type RuleFactory func(config RuleConfig) (Rule, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]RuleFactory)
)

// RegisterRuleType registers a factory for a rule type. Registering the same
// type again replaces the factory.
func RegisterRuleType(ruleType string, factory RuleFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	factories[ruleType] = factory
	logrus.Debugf("registered rule type: %s", ruleType)
}

// IsRegistered reports whether a factory exists for ruleType.
func IsRegistered(ruleType string) bool {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()

	_, ok := factories[ruleType]
	return ok
}

// CreateRule builds a rule from config. Disabled rules yield (nil, nil).
func CreateRule(config RuleConfig) (Rule, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled rule: %s", config.ID)
		return nil, nil
	}

	factoriesMu.RLock()
	factory, exists := factories[config.Type]
	factoriesMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown rule type: %s", config.Type)
	}

	logrus.Debugf("creating rule: id=%s, type=%s, priority=%d", config.ID, config.Type, config.Priority)
	return factory(config)
}

// CreateRules builds every config, collecting errors instead of stopping.
func CreateRules(configs []RuleConfig) ([]Rule, []error) {
	var rules []Rule
	var errs []error

	for _, config := range configs {
		r, err := CreateRule(config)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to create rule %s: %w", config.ID, err))
			continue
		}
		if r != nil {
			rules = append(rules, r)
		}
	}

	return rules, errs
}

// RegisterRules creates the configured rules and adds them to registry.
// Creation errors are logged and skipped; a registration conflict is fatal.
func RegisterRules(registry *Registry, configs []RuleConfig) error {
	rules, errs := CreateRules(configs)
	for _, err := range errs {
		logrus.Warnf("rule creation error: %v", err)
	}

	for _, r := range rules {
		if err := registry.Register(r); err != nil {
			return fmt.Errorf("failed to register rule %s: %w", r.ID(), err)
		}
	}

	logrus.Infof("registered %d rules", len(rules))
	return nil
}
