// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package cli implements the learner progression command line.
package cli

import (
	"context"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/internal/app"
	"github.com/AccelByte/extend-learner-progression/internal/config"
	"github.com/spf13/cobra"
)

// AppFactory builds the application for one command.
type AppFactory func(ctx context.Context, cfg *config.Config) (*app.App, error)

// Options configures the root command.
type Options struct {
	// NewApp defaults to app.New.
	NewApp AppFactory
}

type runner struct {
	newApp   AppFactory
	envFiles []string
	cfg      *config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts Options) *cobra.Command {
	r := &runner{newApp: opts.NewApp}
	if r.newApp == nil {
		r.newApp = func(ctx context.Context, cfg *config.Config) (*app.App, error) {
			return app.New(ctx, cfg)
		}
	}

	root := &cobra.Command{
		Use:   "progression",
		Short: "Learner progression engine",
		Long: `Keeps one learner's training profile, gates lessons in order and
drives the lesson overlays.

Configuration comes from the environment and an optional .env file.`,
		SilenceUsage:      true,
		PersistentPreRunE: r.loadConfig,
	}
	root.PersistentFlags().StringSliceVar(&r.envFiles, "env-file", []string{".env"}, "env files to load before reading the environment")

	root.AddCommand(
		r.statusCommand(),
		r.lessonsCommand(),
		r.onboardCommand(),
		r.resetCommand(),
		r.playCommand(),
		r.serveCommand(),
	)
	return root
}

func (r *runner) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(r.envFiles...)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.ConfigureLogging()
	r.cfg = cfg
	return nil
}

// withApp runs fn against a freshly built application and shuts it down
// afterwards, flushing the profile.
func (r *runner) withApp(cmd *cobra.Command, fn func(a *app.App) error) (err error) {
	a, err := r.newApp(cmd.Context(), r.cfg)
	if err != nil {
		return err
	}
	defer func() {
		if shutdownErr := a.Shutdown(context.Background()); err == nil && shutdownErr != nil {
			err = fmt.Errorf("failed to save profile: %w", shutdownErr)
		}
	}()

	return fn(a)
}

// Execute runs the command line with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand(Options{}).ExecuteContext(ctx)
}
