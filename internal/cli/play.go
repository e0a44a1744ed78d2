// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/AccelByte/extend-learner-progression/internal/app"
	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/orchestrator"
	"github.com/spf13/cobra"
)

const playHelp = `commands:
  enter <lesson>   warp into an unlocked lesson
  complete [id]    complete a lesson (defaults to the current one)
  damage <n>       apply damage
  heal <n>         restore health
  dismiss          close the lesson summary or finale
  retry            leave the game over screen with full health
  status           show the learner profile
  lessons          list lessons
  help             show this help
  quit             save and exit`

func (r *runner) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start an interactive learning session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				out := &lockedWriter{w: cmd.OutOrStdout()}
				s := &session{app: a, out: out}
				a.Orchestrator().Subscribe(s.printOverlay)
				return s.loop(cmd.InOrStdin())
			})
		},
	}
}

// lockedWriter serializes output from the prompt and from overlay timers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type session struct {
	app *app.App
	out io.Writer
}

func (s *session) loop(in io.Reader) error {
	fmt.Fprintln(s.out, "type 'help' for commands")
	s.printOverlay(s.app.Orchestrator().Snapshot())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := s.exec(fields[0], fields[1:]); quit {
			return nil
		}
	}
}

func (s *session) exec(command string, args []string) (quit bool) {
	store := s.app.Store()
	command = strings.ToLower(command)

	switch command {
	case "quit", "exit":
		fmt.Fprintln(s.out, "progress saved, goodbye")
		return true
	case "help":
		fmt.Fprintln(s.out, playHelp)
	case "status":
		printStatus(s.out, s.app)
	case "lessons":
		printLessons(s.out, s.app.Curriculum(), store.Snapshot())
	case "enter":
		if len(args) != 1 {
			fmt.Fprintln(s.out, "usage: enter <lesson>")
			return false
		}
		if err := s.app.EnterLesson(curriculum.LessonID(args[0])); err != nil {
			fmt.Fprintf(s.out, "cannot enter %s: %v\n", args[0], err)
		}
	case "complete":
		id := store.Snapshot().CurrentLessonID
		if len(args) > 0 {
			id = curriculum.LessonID(args[0])
		}
		if store.MarkLessonComplete(id) {
			fmt.Fprintf(s.out, "completed %s\n", id)
		} else {
			fmt.Fprintf(s.out, "%s was not completed (unknown or already done)\n", id)
		}
	case "damage", "heal":
		amount, err := amountArg(args)
		if err != nil {
			fmt.Fprintf(s.out, "usage: %s <n>\n", command)
			return false
		}
		changed := false
		if command == "damage" {
			changed = store.ApplyDamage(amount)
		} else {
			changed = store.Heal(amount)
		}
		p := store.Snapshot()
		if !changed {
			fmt.Fprintf(s.out, "health unchanged at %d/%d\n", p.Health, p.MaxHealth)
		} else {
			fmt.Fprintf(s.out, "health %d/%d\n", p.Health, p.MaxHealth)
		}
	case "dismiss":
		if !s.app.Orchestrator().Dismiss() {
			fmt.Fprintln(s.out, "nothing to dismiss")
		}
	case "retry":
		if !s.app.Orchestrator().Retry() {
			fmt.Fprintln(s.out, "nothing to retry")
		}
	default:
		fmt.Fprintf(s.out, "unknown command %q, type 'help'\n", command)
	}
	return false
}

func amountArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one amount")
	}
	return strconv.Atoi(args[0])
}

func (s *session) printOverlay(snap orchestrator.Snapshot) {
	switch snap.State {
	case orchestrator.Idle:
		if snap.LessonID != "" && snap.ContentRevealed {
			fmt.Fprintf(s.out, "[overlay] idle, %s is open\n", snap.LessonID)
		} else {
			fmt.Fprintln(s.out, "[overlay] idle")
		}
	case orchestrator.WarpingToLesson:
		fmt.Fprintf(s.out, "[overlay] warping to %s (%s)\n", snap.LessonID, snap.Stage)
	case orchestrator.ShowingLessonComplete:
		fmt.Fprintf(s.out, "[overlay] lesson complete: %s\n", describeSummary(snap.Summary))
	case orchestrator.ShowingGrandFinale:
		fmt.Fprintln(s.out, "[overlay] grand finale: every lesson is complete")
	case orchestrator.ShowingGameOver:
		fmt.Fprintln(s.out, "[overlay] game over, type 'retry' to try again")
	}
}

func describeSummary(sum *orchestrator.Summary) string {
	if sum == nil {
		return "no rewards"
	}
	parts := []string{fmt.Sprintf("%s +%d xp", sum.Title, sum.Experience)}
	if sum.BadgeID != "" {
		parts = append(parts, "badge "+sum.BadgeID)
	}
	if sum.ItemID != "" {
		parts = append(parts, "item "+sum.ItemID)
	}
	if len(sum.Knowledge) > 0 {
		parts = append(parts, "knowledge "+strings.Join(sum.Knowledge, ", "))
	}
	if sum.UnlockCompanion {
		parts = append(parts, "companion unlocked")
	}
	return strings.Join(parts, "; ")
}
