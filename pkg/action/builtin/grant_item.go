// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/AccelByte/extend-learner-progression/pkg/action"
	"github.com/AccelByte/extend-learner-progression/pkg/rule"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/sirupsen/logrus"
)

const (
	// GrantItemActionID is the type of the inventory item action.
	GrantItemActionID = "grant_item"

	// LevelPlaceholder in item_id is replaced with the learner level.
	LevelPlaceholder = "{level}"
)

// GrantItemAction adds the inventory item named by the "item_id" parameter.
type GrantItemAction struct {
	config      action.ActionConfig
	progression Progression
	itemID      string
}

// NewGrantItemAction creates an item action. item_id is required.
func NewGrantItemAction(config action.ActionConfig, progression Progression) (*GrantItemAction, error) {
	itemID := config.GetParameterString("item_id", "")
	if itemID == "" {
		return nil, fmt.Errorf("%w: %s requires item_id", action.ErrInvalidConfig, config.ID)
	}

	logrus.Debugf("creating grant item action: itemID=%s", itemID)

	return &GrantItemAction{
		config:      config,
		progression: progression,
		itemID:      itemID,
	}, nil
}

// ID returns the action identifier.
func (a *GrantItemAction) ID() string {
	return a.config.ID
}

// Name returns the action name.
func (a *GrantItemAction) Name() string {
	return "Grant Item"
}

// Config returns the action configuration.
func (a *GrantItemAction) Config() action.ActionConfig {
	return a.config
}

// Execute adds the item. The level comes from the trigger "level" metadata
// and falls back to the learner context.
func (a *GrantItemAction) Execute(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	if a.progression == nil {
		return fmt.Errorf("%w: no progression store", action.ErrInvalidConfig)
	}

	itemID := a.itemID
	if strings.Contains(itemID, LevelPlaceholder) {
		level, ok := trigger.Metadata["level"].(int)
		if !ok {
			if learnerCtx == nil {
				return action.ErrMissingLearnerContext
			}
			level = learnerCtx.Profile.Level()
		}
		itemID = strings.ReplaceAll(itemID, LevelPlaceholder, strconv.Itoa(level))
	}

	if a.progression.AddInventoryItem(itemID) {
		logrus.Infof("item %s granted by rule %s", itemID, trigger.RuleID)
	}
	return nil
}

// Rollback is not supported: inventory items are never taken back.
func (a *GrantItemAction) Rollback(ctx context.Context, trigger *rule.Trigger, learnerCtx *signal.LearnerContext) error {
	return action.ErrRollbackNotSupported
}
