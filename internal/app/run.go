// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Start starts the metrics server when enabled.
func (a *App) Start(ctx context.Context) error {
	if a.metricsServer != nil {
		if err := a.metricsServer.Start(ctx); err != nil {
			return err
		}
	}
	logrus.Info("application started successfully")
	return nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutdown signal received")
	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down all application components.
//
// ============================================================
// DEVELOPER: Shutdown order is critical
// ============================================================
// Components are shut down in reverse dependency order:
// 1. Stop the metrics server
// 2. Stop the orchestrator timers and detach the pipeline
// 3. Flush and close the snapshot writer
// 4. Close the storage connection (sqlite, redis)
// 5. Flush telemetry data (OpenTelemetry)
//
// IMPORTANT: Shutdown errors are logged but don't stop the
// shutdown sequence. Each component gets a chance to clean up.
// The returned error is the snapshot writer's, since a failed
// final write means lost progress.
// ============================================================
func (a *App) Shutdown(ctx context.Context) error {
	logrus.Info("shutting down application...")

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			logrus.Errorf("metrics server shutdown error: %v", err)
		}
	}

	if a.orchestrator != nil {
		a.orchestrator.Stop()
	}
	if a.detachPipeline != nil {
		a.detachPipeline()
		a.detachPipeline = nil
	}

	var writeErr error
	if a.writer != nil {
		if writeErr = a.writer.Close(ctx); writeErr != nil {
			logrus.Errorf("snapshot writer close error: %v", writeErr)
		}
	}

	if a.closeSlot != nil {
		if err := a.closeSlot(); err != nil {
			logrus.Errorf("storage close error: %v", err)
		}
		a.closeSlot = nil
	}

	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
		a.shutdownTelemetry = nil
	}

	logrus.Info("application shutdown complete")
	return writeErr
}
