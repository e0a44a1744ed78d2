// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package bootstrap wires the rule engine, the action executor and the
// pipeline manager from a pipeline config.
package bootstrap

import (
	"fmt"

	actionBuiltin "github.com/AccelByte/extend-learner-progression/pkg/action/builtin"
	"github.com/AccelByte/extend-learner-progression/pkg/pipeline"
	"github.com/AccelByte/extend-learner-progression/pkg/profile"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/sirupsen/logrus"
)

// InitPipeline builds the pipeline for store from pipelineConfig and attaches
// it to the store signals. The returned function detaches it.
//
// ============================================================
// DEVELOPER: Configure rule-to-action mappings
// ============================================================
// The pipeline orchestrates the flow:
// Store mutation → Signal → Rules → Actions → Store mutation
//
// Rule-to-action mappings live in the pipeline YAML:
//
// rules:
//   - id: my-rule
//     type: my_rule_type
//     actions: [action1, action2]  # ← Actions to execute
//
// To modify mappings, edit the YAML, not this file.
// ============================================================
func InitPipeline(
	pipelineConfig *pipeline.Config,
	store *profile.Store,
	vocabulary *reward.Vocabulary,
) (*pipeline.Manager, func(), error) {
	engine, ruleRegistry, err := InitRuleEngine(pipelineConfig, store.Curriculum())
	if err != nil {
		return nil, nil, err
	}

	executor, actionRegistry, err := InitActionExecutor(pipelineConfig, &actionBuiltin.Dependencies{
		Progression: store,
		Vocabulary:  vocabulary,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := pipeline.ValidateWiring(ruleRegistry, actionRegistry, pipelineConfig); err != nil {
		return nil, nil, fmt.Errorf("invalid pipeline: %w", err)
	}

	p := pipeline.FromConfig("progression", pipelineConfig)
	logrus.Infof("configured %d rule-to-action mappings", len(p.Actions))

	manager := pipeline.NewManager(engine, executor, p)
	detach := manager.Attach(store)
	logrus.Infof("initialized pipeline manager")

	return manager, detach, nil
}
