// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe set of actions keyed by ID.
type Registry struct {
	actions map[string]Action
	mu      sync.RWMutex
}

// NewRegistry creates an empty action registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
	}
}

// Register adds an action. Registering an ID twice is an error.
func (r *Registry) Register(a Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[a.ID()]; exists {
		return fmt.Errorf("action %s already registered", a.ID())
	}

	r.actions[a.ID()] = a
	return nil
}

// Get returns an action by ID, or nil.
func (r *Registry) Get(actionID string) Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.actions[actionID]
}

// GetAll returns every registered action, sorted by ID.
func (r *Registry) GetAll() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actions := make([]Action, 0, len(r.actions))
	for _, a := range r.actions {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i].ID() < actions[j].ID() })

	return actions
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.actions)
}
