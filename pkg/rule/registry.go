// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rule

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe set of rules keyed by ID.
type Registry struct {
	rules map[string]Rule
	mu    sync.RWMutex
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule. Registering an ID twice is an error.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.ID()]; exists {
		return fmt.Errorf("rule %s already registered", rule.ID())
	}

	r.rules[rule.ID()] = rule
	return nil
}

// Get returns a rule by ID, or nil.
func (r *Registry) Get(ruleID string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.rules[ruleID]
}

// GetBySignalType returns the enabled rules handling signalType, sorted by ID.
func (r *Registry) GetBySignalType(signalType string) []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matching []Rule
	for _, rule := range r.rules {
		if !rule.Config().Enabled {
			continue
		}
		if handles(rule, signalType) {
			matching = append(matching, rule)
		}
	}

	sortByID(matching)
	return matching
}

func handles(rule Rule, signalType string) bool {
	types := rule.SignalTypes()
	if len(types) == 0 {
		return true
	}
	for _, st := range types {
		if st == signalType {
			return true
		}
	}
	return false
}

// GetAll returns every registered rule, sorted by ID.
func (r *Registry) GetAll() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}

	sortByID(rules)
	return rules
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rules)
}

func sortByID(rules []Rule) {
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID() < rules[j].ID() })
}
