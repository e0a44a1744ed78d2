// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package orchestrator drives the overlay and transition choreography around
// the learner profile: the warp into a lesson, the lesson-complete summary,
// the grand finale and game-over.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/metrics"
	"github.com/AccelByte/extend-learner-progression/pkg/reward"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/sirupsen/logrus"
)

// State is the overlay currently shown.
type State string

const (
	Idle                  State = "idle"
	WarpingToLesson       State = "warping-to-lesson"
	ShowingLessonComplete State = "showing-lesson-complete"
	ShowingGrandFinale    State = "showing-grand-finale"
	ShowingGameOver       State = "showing-game-over"
)

// Stage is the phase of a warp into a lesson.
type Stage string

const (
	StageNone  Stage = ""
	StageWarp  Stage = "warp"
	StageIntro Stage = "intro"
)

const (
	DefaultWarpDuration = 1200 * time.Millisecond
	DefaultIntroDelay   = 800 * time.Millisecond
)

// Summary is the reward overview shown by the lesson-complete overlay.
type Summary struct {
	LessonID        curriculum.LessonID
	Title           string
	Experience      int
	BadgeID         string
	Knowledge       []string
	Insight         map[state.Track]int
	ItemID          string
	UnlockCompanion bool
}

// Snapshot is the observable orchestrator state.
type Snapshot struct {
	State    State
	Stage    Stage
	LessonID curriculum.LessonID
	// Summary is set while ShowingLessonComplete.
	Summary *Summary
	// ContentRevealed and DialogueRevealed track the lesson intro.
	ContentRevealed  bool
	DialogueRevealed bool
}

// Store is the part of profile.Store the orchestrator drives.
type Store interface {
	Snapshot() state.Profile
	Curriculum() *curriculum.Curriculum
	Subscribe(name string, handler signal.Handler) (unsubscribe func())
	SetView(view state.View) bool
	ResetHealth() bool
}

// Config configures an Orchestrator. Zero durations take the defaults.
type Config struct {
	WarpDuration time.Duration
	IntroDelay   time.Duration
	Scheduler    Scheduler
	Vocabulary   *reward.Vocabulary
}

// Orchestrator is a single-flight state machine fed by store signals.
// Only one non-Idle state is active at a time; game-over interrupts any
// other state.
type Orchestrator struct {
	store      Store
	curriculum *curriculum.Curriculum
	vocabulary *reward.Vocabulary
	scheduler  Scheduler
	warp       time.Duration
	intro      time.Duration

	mu           sync.Mutex
	current      Snapshot
	generation   uint64
	timer        Timer
	lastObserved int
	finaleShown  bool
	deferred     curriculum.LessonID
	started      bool
	unsubscribe  func()
	listeners    []func(Snapshot)
}

// New creates an orchestrator for store. Call Start to begin observing.
func New(store Store, cfg Config) *Orchestrator {
	if cfg.WarpDuration <= 0 {
		cfg.WarpDuration = DefaultWarpDuration
	}
	if cfg.IntroDelay <= 0 {
		cfg.IntroDelay = DefaultIntroDelay
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = WallClock{}
	}
	if cfg.Vocabulary == nil {
		cfg.Vocabulary = reward.Default
	}

	return &Orchestrator{
		store:      store,
		curriculum: store.Curriculum(),
		vocabulary: cfg.Vocabulary,
		scheduler:  cfg.Scheduler,
		warp:       cfg.WarpDuration,
		intro:      cfg.IntroDelay,
		current:    Snapshot{State: Idle},
	}
}

// Start seeds the observed progress from the store and subscribes to its
// signals. A restored profile without health enters game-over at once.
func (o *Orchestrator) Start() {
	p := o.store.Snapshot()

	o.mu.Lock()
	if o.started {
		o.mu.Unlock()
		return
	}
	o.started = true
	o.lastObserved = len(p.CompletedLessons)
	o.finaleShown = o.curriculum.AllComplete(p)
	o.mu.Unlock()

	unsubscribe := o.store.Subscribe("orchestrator", o.handle)

	o.mu.Lock()
	o.unsubscribe = unsubscribe
	var notify *Snapshot
	if p.Health == 0 {
		notify = o.enterGameOverLocked()
	}
	o.mu.Unlock()

	o.notify(notify)
}

// Stop unsubscribes from the store and cancels pending timers.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	unsubscribe := o.unsubscribe
	o.unsubscribe = nil
	o.started = false
	o.invalidateTimersLocked()
	o.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Snapshot returns the current state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.current.copy()
}

// Subscribe registers fn to be called after every transition.
func (o *Orchestrator) Subscribe(fn func(Snapshot)) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.listeners = append(o.listeners, fn)
}

// Dismiss closes the lesson-complete summary or the grand finale. It reports
// whether an overlay was dismissed.
func (o *Orchestrator) Dismiss() bool {
	p := o.store.Snapshot()

	o.mu.Lock()
	var next *Snapshot
	var view state.View
	switch o.current.State {
	case ShowingLessonComplete:
		next = o.resumeLocked(p, Snapshot{State: Idle, LessonID: o.current.LessonID})
		if next.State == Idle {
			view = state.ViewFreeRoam
		}
	case ShowingGrandFinale:
		o.deferred = ""
		next = o.enterLocked(Snapshot{State: Idle, LessonID: o.current.LessonID})
		view = state.ViewCertificate
	default:
		current := o.current.State
		o.mu.Unlock()
		logrus.Debugf("nothing to dismiss in state %s", current)
		return false
	}
	o.mu.Unlock()

	if view != "" {
		o.store.SetView(view)
	}
	o.notify(next)
	return true
}

// Retry leaves game-over by restoring health. Progress is kept.
func (o *Orchestrator) Retry() bool {
	p := o.store.Snapshot()

	o.mu.Lock()
	if o.current.State != ShowingGameOver {
		o.mu.Unlock()
		return false
	}
	next := o.resumeLocked(p, Snapshot{State: Idle, LessonID: o.current.LessonID})
	o.mu.Unlock()

	o.store.ResetHealth()
	o.notify(next)
	return true
}

func (o *Orchestrator) handle(_ context.Context, sig signal.Signal) {
	o.mu.Lock()
	var next *Snapshot
	switch s := sig.(type) {
	case *signal.HealthChangedSignal:
		if s.Depleted() {
			next = o.enterGameOverLocked()
		}
	case *signal.LessonCompletedSignal:
		next = o.onCompletionLocked(s)
	case *signal.ViewChangedSignal:
		if s.Current == state.ViewInLesson {
			next = o.onEnterLessonLocked(s.LessonID)
		}
	case *signal.ProfileUpdatedSignal:
		if s.Field == signal.FieldReset {
			o.lastObserved = 0
			o.finaleShown = false
			o.deferred = ""
			next = o.enterLocked(Snapshot{State: Idle})
		}
	}
	o.mu.Unlock()

	o.notify(next)
}

func (o *Orchestrator) onCompletionLocked(s *signal.LessonCompletedSignal) *Snapshot {
	if s.CompletedCount <= o.lastObserved {
		return nil
	}
	o.lastObserved = s.CompletedCount
	if o.current.State != Idle {
		logrus.Debugf("deferring summary of %s while %s", s.LessonID, o.current.State)
		o.deferred = s.LessonID
		return nil
	}
	return o.enterLocked(Snapshot{
		State:    ShowingLessonComplete,
		LessonID: s.LessonID,
		Summary:  o.summary(s.LessonID),
	})
}

func (o *Orchestrator) onEnterLessonLocked(id curriculum.LessonID) *Snapshot {
	if o.current.State != Idle {
		logrus.Debugf("ignoring entry into %s while %s", id, o.current.State)
		return nil
	}
	if id == o.curriculum.First() {
		return o.enterLocked(Snapshot{State: Idle, LessonID: id, ContentRevealed: true, DialogueRevealed: true})
	}

	next := o.enterLocked(Snapshot{State: WarpingToLesson, Stage: StageWarp, LessonID: id})
	generation := o.generation
	o.timer = o.scheduler.AfterFunc(o.warp, func() { o.onWarpDone(generation) })
	return next
}

func (o *Orchestrator) onWarpDone(generation uint64) {
	o.mu.Lock()
	if generation != o.generation || o.current.State != WarpingToLesson {
		o.mu.Unlock()
		return
	}
	o.current.Stage = StageIntro
	o.current.ContentRevealed = true
	next := o.current.copy()
	o.timer = o.scheduler.AfterFunc(o.intro, func() { o.onIntroDone(generation) })
	o.mu.Unlock()

	o.notify(&next)
}

func (o *Orchestrator) onIntroDone(generation uint64) {
	p := o.store.Snapshot()

	o.mu.Lock()
	if generation != o.generation || o.current.State != WarpingToLesson {
		o.mu.Unlock()
		return
	}
	next := o.resumeLocked(p, Snapshot{
		State:            Idle,
		LessonID:         o.current.LessonID,
		ContentRevealed:  true,
		DialogueRevealed: true,
	})
	o.mu.Unlock()

	o.notify(next)
}

func (o *Orchestrator) enterGameOverLocked() *Snapshot {
	switch o.current.State {
	case ShowingGameOver:
		return nil
	case ShowingLessonComplete:
		if o.deferred == "" {
			o.deferred = o.current.LessonID
		}
	}
	return o.enterLocked(Snapshot{State: ShowingGameOver, LessonID: o.current.LessonID})
}

// resumeLocked leaves a busy state. A summary deferred while busy is shown
// first, then the finale if p completes the curriculum and it has not been
// shown yet. Otherwise the machine settles on idle.
func (o *Orchestrator) resumeLocked(p state.Profile, idle Snapshot) *Snapshot {
	if id := o.deferred; id != "" {
		o.deferred = ""
		return o.enterLocked(Snapshot{State: ShowingLessonComplete, LessonID: id, Summary: o.summary(id)})
	}
	if !o.finaleShown && o.curriculum.AllComplete(p) {
		o.finaleShown = true
		return o.enterLocked(Snapshot{State: ShowingGrandFinale, LessonID: idle.LessonID})
	}
	return o.enterLocked(idle)
}

// enterLocked replaces the state and invalidates every pending timer.
func (o *Orchestrator) enterLocked(next Snapshot) *Snapshot {
	o.invalidateTimersLocked()
	if next.State != o.current.State {
		metrics.TransitionsTotal.WithLabelValues(string(next.State)).Inc()
		logrus.Debugf("orchestrator %s -> %s (lesson %q)", o.current.State, next.State, next.LessonID)
	}
	o.current = next
	out := next.copy()
	return &out
}

func (o *Orchestrator) invalidateTimersLocked() {
	o.generation++
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *Orchestrator) notify(next *Snapshot) {
	if next == nil {
		return
	}
	o.mu.Lock()
	listeners := make([]func(Snapshot), len(o.listeners))
	copy(listeners, o.listeners)
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(next.copy())
	}
}

func (o *Orchestrator) summary(id curriculum.LessonID) *Summary {
	s := &Summary{LessonID: id}
	if lesson, ok := o.curriculum.Lesson(id); ok {
		s.Title = lesson.Title
	}
	bundle, ok := o.vocabulary.Lookup(id)
	if !ok {
		return s
	}
	s.Experience = bundle.Experience
	s.BadgeID = bundle.BadgeID
	s.ItemID = bundle.ItemID
	s.UnlockCompanion = bundle.UnlockCompanion
	s.Insight = bundle.Insight
	for _, k := range bundle.Knowledge {
		s.Knowledge = append(s.Knowledge, k.Title)
	}
	return s
}

func (s Snapshot) copy() Snapshot {
	if s.Summary != nil {
		summary := *s.Summary
		summary.Knowledge = append([]string(nil), s.Summary.Knowledge...)
		if s.Summary.Insight != nil {
			summary.Insight = make(map[state.Track]int, len(s.Summary.Insight))
			for t, d := range s.Summary.Insight {
				summary.Insight[t] = d
			}
		}
		s.Summary = &summary
	}
	return s
}
