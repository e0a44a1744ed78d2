// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/pkg/common"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// SetupTelemetry initializes the OpenTelemetry tracer provider and propagators.
// Returns a shutdown function that should be called on application shutdown.
//
// ============================================================
// DEVELOPER: OpenTelemetry configuration
// ============================================================
// Spans are created per dispatched profile signal (see
// pkg/pipeline/manager.go). They are exported to Zipkin when
// OTEL_EXPORTER_ZIPKIN_ENDPOINT is set; otherwise they only
// stamp trace ids on log lines.
//
// The tracer provider is built in pkg/common/tracer.go. Modify
// that file to change sampling or resource attributes.
//
// Trace context propagation uses B3, W3C TraceContext and W3C
// Baggage so exported traces join downstream collectors.
// ============================================================
func SetupTelemetry(ctx context.Context, cfg common.TracerConfig) (func(context.Context) error, error) {
	tracerProvider, err := common.NewTracerProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tracerProvider)
	logrus.Infof("set tracer provider: (name: %s environment: %s id: %s)", cfg.ServiceName, cfg.Environment, cfg.InstanceID)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			b3.New(),                   // Zipkin B3 propagation
			propagation.TraceContext{}, // W3C Trace Context
			propagation.Baggage{},      // W3C Baggage
		),
	)
	logrus.Infof("set text map propagator")

	shutdown := func(ctx context.Context) error {
		logrus.Info("shutting down telemetry...")
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return err
		}
		logrus.Info("telemetry stopped")
		return nil
	}

	return shutdown, nil
}
