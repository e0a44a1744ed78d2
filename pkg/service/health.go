// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// HealthChecker provides storage health check functionality
type HealthChecker struct {
	pinger  Pinger
	timeout time.Duration
}

// NewHealthChecker creates a new health checker.
// A nil pinger always reports healthy.
func NewHealthChecker(pinger Pinger) *HealthChecker {
	return &HealthChecker{pinger: pinger, timeout: 2 * time.Second}
}

// Check performs a storage health check
func (h *HealthChecker) Check(ctx context.Context) error {
	if h.pinger == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		logrus.Errorf("storage health check failed: %v", err)
		return err
	}

	logrus.Debugf("storage health check passed")
	return nil
}

// IsHealthy returns true if the storage is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}
