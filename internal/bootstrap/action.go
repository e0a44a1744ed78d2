// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	actionBuiltin "github.com/AccelByte/extend-learner-progression/pkg/action/builtin"
	"github.com/AccelByte/extend-learner-progression/pkg/pipeline"
	"github.com/sirupsen/logrus"
)

// InitActionExecutor creates an action executor with the actions of the
// pipeline config.
//
// ============================================================
// DEVELOPER: Register custom action types here.
// ============================================================
// Actions mutate the learner profile when rules trigger.
//
// Steps to add a new action:
// 1. Create your action in pkg/action/builtin/
// 2. Implement the Action interface
// 3. Register the action type in pkg/action/builtin/init.go
// 4. Add the action to the pipeline YAML and map it to rules
//
// Actions reach the profile only through deps.Progression.
// ============================================================
func InitActionExecutor(
	pipelineConfig *pipeline.Config,
	deps *actionBuiltin.Dependencies,
) (*action.Executor, *action.Registry, error) {
	actionBuiltin.RegisterActions(deps)

	actionConfigs := convertActionConfigs(pipelineConfig.Actions)

	registry := action.NewRegistry()
	if err := action.RegisterActions(registry, actionConfigs); err != nil {
		return nil, nil, fmt.Errorf("failed to register actions: %w", err)
	}

	logrus.Infof("registered %d of %d configured actions", registry.Count(), len(actionConfigs))
	for _, a := range registry.GetAll() {
		logrus.Debugf("action %s (enabled %t)", a.ID(), a.Config().Enabled)
	}

	return action.NewExecutor(registry), registry, nil
}

func convertActionConfigs(configs []pipeline.ActionConfig) []action.ActionConfig {
	result := make([]action.ActionConfig, len(configs))
	for i, ac := range configs {
		result[i] = action.ActionConfig{
			ID:         ac.ID,
			Name:       ac.Name,
			Type:       ac.Type,
			Enabled:    ac.Enabled,
			Parameters: ac.Parameters,
		}
	}
	return result
}
