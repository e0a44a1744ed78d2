// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/AccelByte/extend-learner-progression/internal/app"
	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/rank"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/spf13/cobra"
)

func (r *runner) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the learner profile, level, rank and unlocked lessons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				printStatus(cmd.OutOrStdout(), a)
				if err := a.Healthy(cmd.Context()); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "storage:     unhealthy (%v)\n", err)
				}
				return nil
			})
		},
	}
}

func (r *runner) lessonsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lessons",
		Short: "List the lessons in order with their lock state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				printLessons(cmd.OutOrStdout(), a.Curriculum(), a.Store().Snapshot())
				return nil
			})
		},
	}
}

func printStatus(w io.Writer, a *app.App) {
	p := a.Store().Snapshot()
	standing := rank.Progress(p)

	name := p.Identity.Name
	if p.NeedsOnboarding() {
		name = "(not onboarded)"
	}
	fmt.Fprintf(w, "learner:     %s", name)
	if p.Identity.Department != "" {
		fmt.Fprintf(w, " / %s", p.Identity.Department)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "level:       %d (%d xp)\n", p.Level(), p.Experience)
	fmt.Fprintf(w, "health:      %d/%d\n", p.Health, p.MaxHealth)
	fmt.Fprintf(w, "rank:        %s\n", standing.Current.Title)
	if standing.Next != nil {
		fmt.Fprintf(w, "next rank:   %s (insight +%.1f, badges +%d)\n",
			standing.Next.Title, standing.InsightNeeded, standing.BadgesNeeded)
	}
	fmt.Fprintf(w, "insight:     A %d  B %d  C %d\n", p.InsightScores.TrackA, p.InsightScores.TrackB, p.InsightScores.TrackC)
	fmt.Fprintf(w, "badges:      %s\n", listOrNone(p.Badges))
	fmt.Fprintf(w, "inventory:   %s\n", listOrNone(p.Inventory))
	fmt.Fprintf(w, "knowledge:   %d entries\n", len(p.KnowledgeEntries))
	fmt.Fprintf(w, "companion:   %t\n", p.CompanionUnlocked)
	fmt.Fprintf(w, "completed:   %d/%d lessons\n", len(p.CompletedLessons), a.Curriculum().Len())
	fmt.Fprintf(w, "unlocked:    %s\n", joinIDs(a.Curriculum().Unlocked(p)))
	fmt.Fprintf(w, "position:    %s (%s)\n", p.CurrentLessonID, p.CurrentView)
}

func printLessons(w io.Writer, c *curriculum.Curriculum, p state.Profile) {
	for i, lesson := range c.Lessons() {
		status := "locked"
		switch {
		case p.HasCompleted(lesson.ID):
			status = "done"
		case c.IsUnlocked(lesson.ID, p):
			status = "open"
		}
		hazard := ""
		if lesson.Hazardous {
			hazard = " (hazardous)"
		}
		fmt.Fprintf(w, "%d. [%-6s] %-18s %s%s\n", i+1, status, lesson.ID, lesson.Title, hazard)
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func joinIDs(ids []curriculum.LessonID) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return listOrNone(out)
}
