// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package orchestrator

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/profile"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	testWarp  = 100 * time.Millisecond
	testIntro = 50 * time.Millisecond
)

var testCurriculum = curriculum.New(
	curriculum.Lesson{ID: "L0", Title: "Welcome"},
	curriculum.Lesson{ID: "L1", Title: "Pricing"},
	curriculum.Lesson{ID: "L2", Title: "Closing"},
)

var testVocabulary = reward.NewVocabulary(
	reward.Bundle{
		LessonID:   "L0",
		Experience: 200,
		BadgeID:    "first-day",
		Knowledge:  []reward.Knowledge{{ID: "k0", Title: "Basics"}},
		Insight:    map[state.Track]int{state.TrackA: 10},
		ItemID:     "notebook",
	},
	reward.Bundle{LessonID: "L1", Experience: 300, BadgeID: "pricer"},
	reward.Bundle{LessonID: "L2", Experience: 400, BadgeID: "closer"},
)

type fixture struct {
	store     *profile.Store
	orch      *Orchestrator
	scheduler *fakeScheduler

	mu     sync.Mutex
	states []State
}

func newFixture(t *testing.T, initial state.Profile) *fixture {
	t.Helper()
	f := &fixture{scheduler: &fakeScheduler{}}
	f.store = profile.NewStore(initial, profile.StoreConfig{Curriculum: testCurriculum, SessionID: "orchestrator-test"})
	f.orch = New(f.store, Config{
		WarpDuration: testWarp,
		IntroDelay:   testIntro,
		Scheduler:    f.scheduler,
		Vocabulary:   testVocabulary,
	})
	f.orch.Subscribe(func(s Snapshot) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.states = append(f.states, s.State)
	})
	f.orch.Start()
	t.Cleanup(f.orch.Stop)
	return f
}

func (f *fixture) transitions() []State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]State(nil), f.states...)
}

func (f *fixture) complete(t *testing.T, id curriculum.LessonID) {
	t.Helper()
	if !f.store.MarkLessonComplete(id) {
		t.Fatalf("completion of %s was rejected", id)
	}
}

func (f *fixture) enter(id curriculum.LessonID) {
	f.store.SetView(state.ViewFreeRoam)
	f.store.SetCurrentLesson(id)
	f.store.SetView(state.ViewInLesson)
}

func expectState(t *testing.T, o *Orchestrator, expected State) Snapshot {
	t.Helper()
	s := o.Snapshot()
	if s.State != expected {
		t.Fatalf("state = %s, expected %s", s.State, expected)
	}
	return s
}

func TestOrchestrator_FirstLessonRevealsAtOnce(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))

	f.store.SetView(state.ViewInLesson)

	s := expectState(t, f.orch, Idle)
	if s.LessonID != "L0" || !s.ContentRevealed || !s.DialogueRevealed {
		t.Errorf("unexpected snapshot: %+v", s)
	}
	if f.scheduler.Pending() != 0 {
		t.Errorf("expected no timers, got %d", f.scheduler.Pending())
	}
}

func TestOrchestrator_WarpStages(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	f.complete(t, "L0")
	f.orch.Dismiss()

	f.enter("L1")

	s := expectState(t, f.orch, WarpingToLesson)
	if s.Stage != StageWarp || s.ContentRevealed || s.LessonID != "L1" {
		t.Errorf("unexpected warp snapshot: %+v", s)
	}

	f.scheduler.Advance(testWarp - time.Millisecond)
	expectState(t, f.orch, WarpingToLesson)

	f.scheduler.Advance(time.Millisecond)
	s = expectState(t, f.orch, WarpingToLesson)
	if s.Stage != StageIntro || !s.ContentRevealed || s.DialogueRevealed {
		t.Errorf("unexpected intro snapshot: %+v", s)
	}

	f.scheduler.Advance(testIntro)
	s = expectState(t, f.orch, Idle)
	if !s.DialogueRevealed || s.LessonID != "L1" {
		t.Errorf("unexpected revealed snapshot: %+v", s)
	}
}

func TestOrchestrator_LessonCompleteSummary(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))

	f.complete(t, "L0")

	s := expectState(t, f.orch, ShowingLessonComplete)
	expected := &Summary{
		LessonID:   "L0",
		Title:      "Welcome",
		Experience: 200,
		BadgeID:    "first-day",
		Knowledge:  []string{"Basics"},
		Insight:    map[state.Track]int{state.TrackA: 10},
		ItemID:     "notebook",
	}
	if !reflect.DeepEqual(s.Summary, expected) {
		t.Errorf("summary = %+v, expected %+v", s.Summary, expected)
	}

	if !f.orch.Dismiss() {
		t.Fatal("expected the summary to be dismissed")
	}
	expectState(t, f.orch, Idle)
	if v := f.store.Snapshot().CurrentView; v != state.ViewFreeRoam {
		t.Errorf("view = %s, expected free-roam", v)
	}
	if f.orch.Dismiss() {
		t.Error("nothing should be left to dismiss")
	}
}

func TestOrchestrator_GrandFinaleOncePerCompletion(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))

	for _, id := range []curriculum.LessonID{"L0", "L1"} {
		f.complete(t, id)
		f.orch.Dismiss()
		expectState(t, f.orch, Idle)
	}

	f.complete(t, "L2")
	f.orch.Dismiss()
	expectState(t, f.orch, ShowingGrandFinale)

	f.orch.Dismiss()
	expectState(t, f.orch, Idle)
	if v := f.store.Snapshot().CurrentView; v != state.ViewCertificate {
		t.Errorf("view = %s, expected certificate", v)
	}

	// reset re-arms the finale
	f.store.Reset()
	for _, id := range []curriculum.LessonID{"L0", "L1", "L2"} {
		f.complete(t, id)
		f.orch.Dismiss()
	}
	expectState(t, f.orch, ShowingGrandFinale)
}

func TestOrchestrator_NoFinaleOnReload(t *testing.T) {
	restored := state.Default(testCurriculum)
	restored.CompletedLessons = []curriculum.LessonID{"L0", "L1", "L2"}

	f := newFixture(t, restored)

	if f.store.MarkLessonComplete("L2") {
		t.Fatal("repeat completion must be rejected")
	}
	if f.orch.Dismiss() {
		t.Error("nothing should be shown for a restored complete profile")
	}
	if got := f.transitions(); len(got) != 0 {
		t.Errorf("expected no transitions, got %v", got)
	}
}

func TestOrchestrator_FinaleAfterReloadMidway(t *testing.T) {
	restored := state.Default(testCurriculum)
	restored.CompletedLessons = []curriculum.LessonID{"L0", "L1"}

	f := newFixture(t, restored)
	f.complete(t, "L2")
	f.orch.Dismiss()

	expectState(t, f.orch, ShowingGrandFinale)
}

func TestOrchestrator_SingleFlight(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))

	f.complete(t, "L0")
	f.store.SetCurrentLesson("L1")
	f.store.SetView(state.ViewInLesson)
	s := expectState(t, f.orch, ShowingLessonComplete)
	if s.LessonID != "L0" {
		t.Errorf("lesson = %s, expected L0", s.LessonID)
	}
	if f.scheduler.Pending() != 0 {
		t.Error("ignored entry must not schedule a warp")
	}

	f.orch.Dismiss()
	f.enter("L1")
	f.complete(t, "L1")
	expectState(t, f.orch, WarpingToLesson)
}

func TestOrchestrator_GameOverInterruptsWarp(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	f.complete(t, "L0")
	f.orch.Dismiss()
	f.store.GrantExperience(500)
	f.enter("L1")
	expectState(t, f.orch, WarpingToLesson)

	f.store.ApplyDamage(1000)
	expectState(t, f.orch, ShowingGameOver)

	f.scheduler.Advance(testWarp + testIntro)
	expectState(t, f.orch, ShowingGameOver)

	f.complete(t, "L1")
	expectState(t, f.orch, ShowingGameOver)

	if !f.orch.Retry() {
		t.Fatal("expected retry to leave game-over")
	}

	// the completion reached during game-over is shown once the learner is back
	s := expectState(t, f.orch, ShowingLessonComplete)
	if s.LessonID != "L1" || s.Summary == nil || s.Summary.BadgeID != "pricer" {
		t.Errorf("unexpected deferred summary: %+v", s)
	}

	p := f.store.Snapshot()
	if p.Health != p.MaxHealth {
		t.Errorf("health = %d, expected %d", p.Health, p.MaxHealth)
	}
	if p.Experience != 500 || len(p.CompletedLessons) != 2 || p.CurrentView != state.ViewInLesson {
		t.Errorf("retry must keep progress: %+v", p)
	}
	if f.orch.Retry() {
		t.Error("retry outside game-over must be rejected")
	}

	f.orch.Dismiss()
	expectState(t, f.orch, Idle)
}

func TestOrchestrator_FinaleAfterGameOver(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	for _, id := range []curriculum.LessonID{"L0", "L1"} {
		f.complete(t, id)
		f.orch.Dismiss()
	}

	f.store.ApplyDamage(1000)
	f.complete(t, "L2")
	expectState(t, f.orch, ShowingGameOver)

	f.orch.Retry()
	s := expectState(t, f.orch, ShowingLessonComplete)
	if s.LessonID != "L2" {
		t.Errorf("lesson = %s, expected L2", s.LessonID)
	}

	f.orch.Dismiss()
	expectState(t, f.orch, ShowingGrandFinale)
	f.orch.Dismiss()
	expectState(t, f.orch, Idle)

	expected := []State{
		ShowingLessonComplete, Idle,
		ShowingLessonComplete, Idle,
		ShowingGameOver,
		ShowingLessonComplete,
		ShowingGrandFinale,
		Idle,
	}
	if got := f.transitions(); !reflect.DeepEqual(got, expected) {
		t.Errorf("transitions = %v, expected %v", got, expected)
	}
}

func TestOrchestrator_FinaleAfterWarp(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	for _, id := range []curriculum.LessonID{"L0", "L1"} {
		f.complete(t, id)
		f.orch.Dismiss()
	}

	f.enter("L2")
	f.complete(t, "L2")
	expectState(t, f.orch, WarpingToLesson)

	f.scheduler.Advance(testWarp + testIntro)
	s := expectState(t, f.orch, ShowingLessonComplete)
	if s.LessonID != "L2" {
		t.Errorf("lesson = %s, expected L2", s.LessonID)
	}

	f.orch.Dismiss()
	expectState(t, f.orch, ShowingGrandFinale)
	f.orch.Dismiss()
	if f.orch.Dismiss() {
		t.Error("finale must not fire twice")
	}
}

func TestOrchestrator_GameOverKeepsOpenSummary(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	f.complete(t, "L0")

	f.store.ApplyDamage(1000)
	expectState(t, f.orch, ShowingGameOver)

	f.orch.Retry()
	s := expectState(t, f.orch, ShowingLessonComplete)
	if s.LessonID != "L0" {
		t.Errorf("lesson = %s, expected L0", s.LessonID)
	}
}

func TestOrchestrator_DeferredSummaryClearedByReset(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	f.store.ApplyDamage(1000)
	f.complete(t, "L0")

	f.store.Reset()
	expectState(t, f.orch, Idle)
	if f.orch.Dismiss() {
		t.Error("reset must drop the deferred summary")
	}
}

func TestOrchestrator_StaleCompletionIgnored(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	f.complete(t, "L0")
	f.orch.Dismiss()

	stale := signal.NewLessonCompletedSignal(99, time.Now(), "L0", true, 1, nil)
	f.orch.handle(context.Background(), stale)

	expectState(t, f.orch, Idle)
}

func TestOrchestrator_GameOverOnStart(t *testing.T) {
	restored := state.Default(testCurriculum)
	restored.Health = 0

	f := newFixture(t, restored)

	expectState(t, f.orch, ShowingGameOver)
	f.orch.Retry()
	if h := f.store.Snapshot().Health; h != state.DefaultMaxHealth {
		t.Errorf("health = %d, expected %d", h, state.DefaultMaxHealth)
	}
}

func TestOrchestrator_Transitions(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))

	f.complete(t, "L0")
	f.orch.Dismiss()
	f.enter("L1")
	f.scheduler.Advance(testWarp)
	f.scheduler.Advance(testIntro)
	f.store.ApplyDamage(1000)
	f.orch.Retry()

	expected := []State{
		ShowingLessonComplete,
		Idle,
		WarpingToLesson,
		WarpingToLesson,
		Idle,
		ShowingGameOver,
		Idle,
	}
	if got := f.transitions(); !reflect.DeepEqual(got, expected) {
		t.Errorf("transitions = %v, expected %v", got, expected)
	}
}

func TestOrchestrator_StopCancelsTimers(t *testing.T) {
	f := newFixture(t, state.Default(testCurriculum))
	f.complete(t, "L0")
	f.orch.Dismiss()
	f.enter("L1")

	f.orch.Stop()
	f.scheduler.Advance(testWarp + testIntro)
	f.store.ApplyDamage(1000)

	s := f.orch.Snapshot()
	if s.State != WarpingToLesson || s.Stage != StageWarp {
		t.Errorf("stopped orchestrator must not move: %+v", s)
	}
}

func TestOrchestrator_WallClock(t *testing.T) {
	store := profile.NewStore(state.Default(testCurriculum), profile.StoreConfig{Curriculum: testCurriculum})
	store.MarkLessonComplete("L0")

	o := New(store, Config{WarpDuration: 5 * time.Millisecond, IntroDelay: 5 * time.Millisecond, Vocabulary: testVocabulary})
	done := make(chan struct{})
	var once sync.Once
	o.Subscribe(func(s Snapshot) {
		if s.State == Idle && s.DialogueRevealed {
			once.Do(func() { close(done) })
		}
	})
	o.Start()
	defer o.Stop()

	store.SetCurrentLesson("L1")
	store.SetView(state.ViewInLesson)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("warp did not finish, state %+v", o.Snapshot())
	}
}
