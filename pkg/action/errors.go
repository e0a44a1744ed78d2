// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package action

import "errors"

var (
	// ErrRollbackNotSupported indicates that an action cannot be undone.
	ErrRollbackNotSupported = errors.New("rollback not supported for this action")

	// ErrActionNotFound indicates that a requested action is not registered.
	ErrActionNotFound = errors.New("action not found in registry")

	// ErrInvalidConfig indicates that an action configuration is invalid.
	ErrInvalidConfig = errors.New("invalid action configuration")

	// ErrMissingLearnerContext indicates that the action needs a profile
	// snapshot the trigger did not carry.
	ErrMissingLearnerContext = errors.New("missing learner context")
)
