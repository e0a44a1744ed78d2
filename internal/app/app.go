// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package app assembles the progression engine from configuration and owns
// its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/AccelByte/extend-learner-progression/internal/bootstrap"
	"github.com/AccelByte/extend-learner-progression/internal/config"
	"github.com/AccelByte/extend-learner-progression/internal/server"
	"github.com/AccelByte/extend-learner-progression/pkg/common"
	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/orchestrator"
	"github.com/AccelByte/extend-learner-progression/pkg/pipeline"
	"github.com/AccelByte/extend-learner-progression/pkg/profile"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/AccelByte/extend-learner-progression/pkg/service"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnknownLesson is returned for lesson ids outside the curriculum.
	ErrUnknownLesson = errors.New("unknown lesson")
	// ErrLessonLocked is returned when the predecessor is not complete.
	ErrLessonLocked = errors.New("lesson is locked")
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg        *config.Config
	curriculum *curriculum.Curriculum
	vocabulary *reward.Vocabulary
	scheduler  orchestrator.Scheduler

	slot        service.SlotStore
	closeSlot   func() error
	redisClient *redis.Client
	health      *service.HealthChecker
	outcome     state.LoadOutcome

	writer         *state.SnapshotWriter
	store          *profile.Store
	pipeline       *pipeline.Manager
	detachPipeline func()
	orchestrator   *orchestrator.Orchestrator

	metricsServer     *server.MetricsServer
	shutdownTelemetry func(context.Context) error
}

// Option customizes New.
type Option func(*App)

// WithSlot uses slot instead of the configured storage backend.
func WithSlot(slot service.SlotStore) Option {
	return func(a *App) { a.slot = slot }
}

// WithScheduler replaces the orchestrator timer source.
func WithScheduler(s orchestrator.Scheduler) Option {
	return func(a *App) { a.scheduler = s }
}

// WithCurriculum replaces the lesson order and its reward vocabulary.
func WithCurriculum(c *curriculum.Curriculum, v *reward.Vocabulary) Option {
	return func(a *App) {
		a.curriculum = c
		a.vocabulary = v
	}
}

// New creates and initializes a new application instance.
//
// ============================================================
// DEVELOPER: Application initialization order
// ============================================================
// Components are initialized in dependency order:
// 1. Storage slot (sqlite, redis or memory)
// 2. Profile load (falls back to the default profile)
// 3. Snapshot writer
// 4. Profile store
// 5. Pipeline (signal → rule → action)
// 6. Transition orchestrator
// 7. Metrics server
// 8. Telemetry (OpenTelemetry tracing)
// ============================================================
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{
		cfg:        cfg,
		curriculum: curriculum.Default,
		vocabulary: reward.Default,
	}
	for _, opt := range opts {
		opt(app)
	}
	if missing := app.vocabulary.Covers(app.curriculum); len(missing) > 0 {
		logrus.Warnf("no reward bundle for lessons %v", missing)
	}

	// ============================================================
	// Step 1: Storage slot
	// ============================================================
	if app.slot == nil {
		if err := app.initSlot(ctx); err != nil {
			return nil, fmt.Errorf("failed to init %s storage: %w", cfg.StorageBackend, err)
		}
	}
	if pinger, ok := app.slot.(service.Pinger); ok {
		app.health = service.NewHealthChecker(pinger)
	} else {
		app.health = service.NewHealthChecker(nil)
	}

	// ============================================================
	// Step 2-4: Load, writer, store
	// ============================================================
	initial, outcome := state.Load(ctx, app.slot, app.curriculum)
	app.outcome = outcome

	app.writer = state.NewSnapshotWriter(app.slot, state.SnapshotWriterConfig{WriteTimeout: cfg.WriteTimeout})
	app.store = profile.NewStore(initial, profile.StoreConfig{
		Curriculum:  app.curriculum,
		Snapshotter: app.writer,
	})

	// ============================================================
	// Step 5: Pipeline
	// ============================================================
	pipelineConfig, err := app.loadPipelineConfig()
	if err != nil {
		app.closeStorage(ctx)
		return nil, err
	}

	app.pipeline, app.detachPipeline, err = bootstrap.InitPipeline(pipelineConfig, app.store, app.vocabulary)
	if err != nil {
		app.closeStorage(ctx)
		return nil, fmt.Errorf("failed to init pipeline: %w", err)
	}

	// ============================================================
	// Step 6: Orchestrator
	// ============================================================
	app.orchestrator = orchestrator.New(app.store, orchestrator.Config{
		WarpDuration: cfg.WarpDuration,
		IntroDelay:   cfg.IntroDelay,
		Scheduler:    app.scheduler,
		Vocabulary:   app.vocabulary,
	})
	app.orchestrator.Start()

	// ============================================================
	// Step 7: Metrics server
	// ============================================================
	if cfg.MetricsEnabled {
		app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, cfg.MetricsEndpoint)
		if err := app.metricsServer.Setup(); err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to setup metrics server: %w", err)
		}
	}

	// ============================================================
	// Step 8: Telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, common.TracerConfig{
			ServiceName:    cfg.ServiceName,
			Environment:    cfg.Environment,
			InstanceID:     app.store.SessionID(),
			ZipkinEndpoint: cfg.ZipkinEndpoint,
		})
		if err != nil {
			app.Shutdown(ctx)
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.WithField("session_id", app.store.SessionID()).Infof("application initialized (profile %s)", outcome)

	return app, nil
}

func (a *App) loadPipelineConfig() (*pipeline.Config, error) {
	if a.cfg.PipelineConfigPath == "" {
		cfg, err := pipeline.DefaultConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load default pipeline config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := pipeline.LoadConfig(a.cfg.PipelineConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline config from %s: %w", a.cfg.PipelineConfigPath, err)
	}
	logrus.Infof("loaded pipeline configuration from %s", a.cfg.PipelineConfigPath)
	return cfg, nil
}

func (a *App) initSlot(ctx context.Context) error {
	switch a.cfg.StorageBackend {
	case config.StorageMemory:
		a.slot = service.NewMemorySlotStore(a.cfg.ProfileSlot)
	case config.StorageRedis:
		if err := a.initRedis(ctx); err != nil {
			return err
		}
		a.slot = service.NewRedisSlotStore(a.redisClient, service.RedisSlotStoreConfig{
			Slot: a.cfg.ProfileSlot,
			TTL:  a.cfg.RedisKeyTTL,
		})
		a.closeSlot = a.redisClient.Close
	default:
		slot, err := service.OpenSQLiteSlotStore(a.cfg.SQLitePath, a.cfg.ProfileSlot)
		if err != nil {
			return err
		}
		a.slot = slot
		a.closeSlot = slot.Close
	}
	return nil
}

// initRedis connects to Redis, retrying with exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(a.cfg.RedisHost, a.cfg.RedisPort),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	if a.cfg.RedisRetryDelayMs > 0 {
		b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries)), ctx)

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		policy,
	)
	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

// Store returns the learner profile store.
func (a *App) Store() *profile.Store { return a.store }

// Orchestrator returns the transition orchestrator.
func (a *App) Orchestrator() *orchestrator.Orchestrator { return a.orchestrator }

// Curriculum returns the lesson order.
func (a *App) Curriculum() *curriculum.Curriculum { return a.curriculum }

// Vocabulary returns the reward tables.
func (a *App) Vocabulary() *reward.Vocabulary { return a.vocabulary }

// Pipeline returns the progression pipeline manager.
func (a *App) Pipeline() *pipeline.Manager { return a.pipeline }

// LoadOutcome reports how the profile was obtained at startup.
func (a *App) LoadOutcome() state.LoadOutcome { return a.outcome }

// Healthy checks the storage backend.
func (a *App) Healthy(ctx context.Context) error { return a.health.Check(ctx) }

// Flush waits until the latest profile snapshot has been written.
func (a *App) Flush(ctx context.Context) error { return a.writer.Flush(ctx) }

// EnterLesson opens lesson id if the gate allows it: it moves the lesson
// pointer and switches to the in-lesson view.
func (a *App) EnterLesson(id curriculum.LessonID) error {
	if !a.curriculum.Contains(id) {
		return fmt.Errorf("%w: %s", ErrUnknownLesson, id)
	}
	p := a.store.Snapshot()
	if !a.curriculum.IsUnlocked(id, p) {
		return fmt.Errorf("%w: %s", ErrLessonLocked, id)
	}

	if p.CurrentView == state.ViewInLesson && p.CurrentLessonID != id {
		a.store.SetView(state.ViewFreeRoam)
	}
	a.store.SetCurrentLesson(id)
	a.store.SetView(state.ViewInLesson)
	return nil
}

func (a *App) closeStorage(ctx context.Context) {
	if a.writer != nil {
		if err := a.writer.Close(ctx); err != nil {
			logrus.Errorf("snapshot writer close error: %v", err)
		}
	}
	if a.closeSlot != nil {
		if err := a.closeSlot(); err != nil {
			logrus.Errorf("storage close error: %v", err)
		}
		a.closeSlot = nil
	}
}
