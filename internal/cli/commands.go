// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cli

import (
	"errors"
	"fmt"

	"github.com/AccelByte/extend-learner-progression/internal/app"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/spf13/cobra"
)

var errAlreadyOnboarded = errors.New("learner is already onboarded, reset the profile first")

func (r *runner) onboardCommand() *cobra.Command {
	var identity state.Identity

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Set the learner identity and avatar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				if !a.Store().SetIdentity(identity) {
					return errAlreadyOnboarded
				}
				fmt.Fprintf(cmd.OutOrStdout(), "welcome aboard, %s\n", identity.Name)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&identity.Name, "name", "", "learner name")
	cmd.Flags().StringVar(&identity.Department, "department", "", "learner department")
	cmd.Flags().IntVar(&identity.Avatar.Hair, "hair", 0, "avatar hair style")
	cmd.Flags().IntVar(&identity.Avatar.Face, "face", 0, "avatar face")
	cmd.Flags().IntVar(&identity.Avatar.Suit, "suit", 0, "avatar suit")
	cmd.Flags().IntVar(&identity.Avatar.Accessory, "accessory", 0, "avatar accessory")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func (r *runner) resetCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return fmt.Errorf("reset erases all progress; pass --yes to confirm")
			}
			return r.withApp(cmd, func(a *app.App) error {
				a.Store().Reset()
				fmt.Fprintln(cmd.OutOrStdout(), "profile reset")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the reset")

	return cmd
}

func (r *runner) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run headless with the metrics server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := r.newApp(cmd.Context(), r.cfg)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context())
		},
	}
}
