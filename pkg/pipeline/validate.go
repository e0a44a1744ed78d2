// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package pipeline

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
)

// ValidateWiring checks that every enabled rule and action of config has a
// registered instance. It catches unregistered factories, type typos and
// factories that rejected their parameters.
func ValidateWiring(ruleRegistry *rule.Registry, actionRegistry *action.Registry, config *Config) error {
	var problems []string

	for _, rc := range config.Rules {
		if rc.Enabled && ruleRegistry.Get(rc.ID) == nil {
			problems = append(problems, fmt.Sprintf("rule '%s' (type=%s) is enabled in config but not registered", rc.ID, rc.Type))
		}
	}

	for _, ac := range config.Actions {
		if ac.Enabled && actionRegistry.Get(ac.ID) == nil {
			problems = append(problems, fmt.Sprintf("action '%s' (type=%s) is enabled in config but not registered", ac.ID, ac.Type))
		}
	}

	// enabled rules must only map to enabled actions
	enabledActions := make(map[string]bool)
	for _, ac := range config.Actions {
		enabledActions[ac.ID] = ac.Enabled
	}
	for _, rc := range config.Rules {
		if !rc.Enabled {
			continue
		}
		for _, id := range rc.Actions {
			if !enabledActions[id] {
				problems = append(problems, fmt.Sprintf("rule '%s' maps to disabled action '%s'", rc.ID, id))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("pipeline wiring validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}

	return nil
}
