// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package profile implements the learner profile store: the single source of
// truth for progress, mutated only through its operations.
package profile

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/metrics"
	"github.com/AccelByte/extend-learner-progression/pkg/signal"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Snapshotter receives a serialized profile after every accepted mutation.
// state.SnapshotWriter implements it.
type Snapshotter interface {
	Submit(seq uint64, data []byte)
}

// StoreConfig configures a Store. Every field is optional.
type StoreConfig struct {
	// Curriculum validates lesson ids. Defaults to curriculum.Default.
	Curriculum *curriculum.Curriculum
	// Snapshotter persists snapshots. Nil disables persistence.
	Snapshotter Snapshotter
	// Dispatcher delivers change signals. Defaults to a new dispatcher.
	Dispatcher *signal.Dispatcher
	// Clock stamps signals and knowledge unlocks. Defaults to time.Now in UTC.
	Clock func() time.Time
	// SessionID identifies this learner session. Defaults to a random UUID.
	SessionID string
}

// Store holds the learner profile. Each operation is atomic: it either fully
// applies, emits one signal and submits one snapshot, or it is a no-op that
// returns false.
type Store struct {
	mu      sync.Mutex
	profile state.Profile
	seq     uint64

	curriculum  *curriculum.Curriculum
	snapshotter Snapshotter
	dispatcher  *signal.Dispatcher
	clock       func() time.Time
	sessionID   string
	log         *logrus.Entry
}

// NewStore creates a store holding initial.
func NewStore(initial state.Profile, cfg StoreConfig) *Store {
	if cfg.Curriculum == nil {
		cfg.Curriculum = curriculum.Default
	}
	if cfg.Dispatcher == nil {
		cfg.Dispatcher = signal.NewDispatcher()
	}
	if cfg.Clock == nil {
		cfg.Clock = func() time.Time { return time.Now().UTC() }
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}

	return &Store{
		profile:     initial.Clone(),
		curriculum:  cfg.Curriculum,
		snapshotter: cfg.Snapshotter,
		dispatcher:  cfg.Dispatcher,
		clock:       cfg.Clock,
		sessionID:   cfg.SessionID,
		log:         logrus.WithField("session_id", cfg.SessionID),
	}
}

// SessionID returns the learner session id.
func (s *Store) SessionID() string {
	return s.sessionID
}

// Curriculum returns the lesson order the store validates against.
func (s *Store) Curriculum() *curriculum.Curriculum {
	return s.curriculum
}

// Snapshot returns a deep copy of the current profile.
func (s *Store) Snapshot() state.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.profile.Clone()
}

// Subscribe registers handler for change signals.
func (s *Store) Subscribe(name string, handler signal.Handler) (unsubscribe func()) {
	return s.dispatcher.Subscribe(name, handler)
}

// Dispatcher returns the dispatcher carrying the store signals.
func (s *Store) Dispatcher() *signal.Dispatcher {
	return s.dispatcher
}

type emitFunc func(seq uint64, ts time.Time, learnerCtx *signal.LearnerContext) signal.Signal

// apply runs mutate under the lock. On change it assigns the next sequence,
// submits the snapshot and, once unlocked, publishes the signal built by emit.
func (s *Store) apply(op string, mutate func(p *state.Profile, now time.Time) bool, emit emitFunc) bool {
	s.mu.Lock()
	now := s.clock()
	if !mutate(&s.profile, now) {
		s.mu.Unlock()
		s.log.Debugf("ignored no-op %s", op)
		return false
	}
	s.seq++
	seq := s.seq
	snap := s.profile.Clone()
	s.persist(seq, snap)
	s.mu.Unlock()

	metrics.MutationsTotal.WithLabelValues(op).Inc()
	learnerCtx := &signal.LearnerContext{SessionID: s.sessionID, Profile: snap}
	s.dispatcher.Publish(context.Background(), emit(seq, now, learnerCtx))
	return true
}

// persist must be called with the lock held so snapshots are submitted in
// sequence order.
func (s *Store) persist(seq uint64, p state.Profile) {
	if s.snapshotter == nil {
		return
	}
	data, err := state.Encode(p)
	if err != nil {
		s.log.Errorf("failed to encode snapshot %d: %v", seq, err)
		return
	}
	s.snapshotter.Submit(seq, data)
}

// GrantExperience adds amount experience points. The level follows.
func (s *Store) GrantExperience(amount int) bool {
	var applied, total int
	ok := s.apply("grant_experience", func(p *state.Profile, _ time.Time) bool {
		before := p.Experience
		if !state.GrantExperience(p, amount) {
			return false
		}
		applied, total = p.Experience-before, p.Experience
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewExperienceGrantedSignal(seq, ts, applied, total, lc)
	})
	if ok {
		metrics.ExperienceGrantedTotal.Add(float64(applied))
	}
	return ok
}

// UnlockBadge adds a badge unless already held.
func (s *Store) UnlockBadge(id string) bool {
	return s.apply("unlock_badge", func(p *state.Profile, _ time.Time) bool {
		return state.AddBadge(p, id)
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldBadges, id, lc)
	})
}

// AddInventoryItem adds an item unless already held.
func (s *Store) AddInventoryItem(id string) bool {
	return s.apply("add_inventory_item", func(p *state.Profile, _ time.Time) bool {
		return state.AddItem(p, id)
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldInventory, id, lc)
	})
}

// UnlockKnowledge adds a knowledge entry unless its id is already unlocked.
// The payload is captured as given; UnlockedAt defaults to the store clock.
func (s *Store) UnlockKnowledge(entry state.KnowledgeEntry) bool {
	return s.apply("unlock_knowledge", func(p *state.Profile, now time.Time) bool {
		return state.AddKnowledge(p, entry, now)
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldKnowledge, entry.ID, lc)
	})
}

// MarkLessonComplete adds id to the completed set. It returns true only the
// first time a lesson is completed; callers grant rewards on that flag.
func (s *Store) MarkLessonComplete(id curriculum.LessonID) bool {
	var count int
	return s.apply("mark_lesson_complete", func(p *state.Profile, _ time.Time) bool {
		if !state.CompleteLesson(p, s.curriculum, id) {
			return false
		}
		count = len(p.CompletedLessons)
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewLessonCompletedSignal(seq, ts, id, true, count, lc)
	})
}

// ApplyDamage lowers health by amount, stopping at zero.
func (s *Store) ApplyDamage(amount int) bool {
	return s.applyHealth("apply_damage", func(p *state.Profile) bool {
		return state.ApplyDamage(p, amount)
	})
}

// Heal raises health by amount, stopping at maxHealth.
func (s *Store) Heal(amount int) bool {
	return s.applyHealth("heal", func(p *state.Profile) bool {
		return state.Heal(p, amount)
	})
}

// ResetHealth restores health to maxHealth.
func (s *Store) ResetHealth() bool {
	return s.applyHealth("reset_health", state.ResetHealth)
}

func (s *Store) applyHealth(op string, change func(p *state.Profile) bool) bool {
	var previous, current, max int
	return s.apply(op, func(p *state.Profile, _ time.Time) bool {
		previous = p.Health
		if !change(p) {
			return false
		}
		current, max = p.Health, p.MaxHealth
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewHealthChangedSignal(seq, ts, previous, current, max, lc)
	})
}

// UpdateInsight adds delta to track, saturating at 100.
func (s *Store) UpdateInsight(track state.Track, delta int) bool {
	var score int
	return s.apply("update_insight", func(p *state.Profile, _ time.Time) bool {
		_, after, changed := state.AddInsight(p, track, delta)
		score = after
		return changed
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldInsight,
			map[string]interface{}{"track": string(track), "delta": delta, "score": score}, lc)
	})
}

// UnlockCompanion sets the companion flag. It never reverts except on Reset.
func (s *Store) UnlockCompanion() bool {
	return s.apply("unlock_companion", func(p *state.Profile, _ time.Time) bool {
		if p.CompanionUnlocked {
			return false
		}
		p.CompanionUnlocked = true
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldCompanion, true, lc)
	})
}

// SetCurrentLesson moves the lesson pointer. Unknown lessons are ignored.
// Gating is the caller's concern.
func (s *Store) SetCurrentLesson(id curriculum.LessonID) bool {
	return s.apply("set_current_lesson", func(p *state.Profile, _ time.Time) bool {
		if !s.curriculum.Contains(id) || p.CurrentLessonID == id {
			return false
		}
		p.CurrentLessonID = id
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldCurrentLesson, string(id), lc)
	})
}

// SetView changes the navigational view. Unknown views are ignored.
func (s *Store) SetView(view state.View) bool {
	var previous state.View
	var lesson curriculum.LessonID
	return s.apply("set_view", func(p *state.Profile, _ time.Time) bool {
		if !view.Valid() || p.CurrentView == view {
			return false
		}
		previous, lesson = p.CurrentView, p.CurrentLessonID
		p.CurrentView = view
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewViewChangedSignal(seq, ts, previous, view, lesson, lc)
	})
}

// SetIdentity records the onboarding choices. It is accepted only while no
// identity has been set; Reset clears it again.
func (s *Store) SetIdentity(identity state.Identity) bool {
	return s.apply("set_identity", func(p *state.Profile, _ time.Time) bool {
		if identity.Name == "" || !p.NeedsOnboarding() {
			return false
		}
		p.Identity = identity
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldIdentity, identity.Name, lc)
	})
}

// Reset restores the default profile, clearing identity and every set.
func (s *Store) Reset() bool {
	s.log.Info("resetting learner profile")
	return s.apply("reset", func(p *state.Profile, _ time.Time) bool {
		*p = state.Default(s.curriculum)
		return true
	}, func(seq uint64, ts time.Time, lc *signal.LearnerContext) signal.Signal {
		return signal.NewProfileUpdatedSignal(seq, ts, signal.FieldReset, nil, lc)
	})
}
