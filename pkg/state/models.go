// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
)

const (
	// LevelStep is the experience needed per level.
	LevelStep = 1000
	// DefaultMaxHealth is the health pool of a fresh profile.
	DefaultMaxHealth = 100
	// MaxInsight is the saturation point of every insight track.
	MaxInsight = 100
)

// View is the coarse navigational state of the learner.
type View string

const (
	ViewFreeRoam    View = "free-roam"
	ViewInLesson    View = "in-lesson"
	ViewCertificate View = "certificate"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewFreeRoam, ViewInLesson, ViewCertificate:
		return true
	}
	return false
}

// Track names one of the three insight tracks.
type Track string

const (
	TrackA Track = "trackA"
	TrackB Track = "trackB"
	TrackC Track = "trackC"
)

// Tracks lists every insight track in display order.
var Tracks = []Track{TrackA, TrackB, TrackC}

// Valid reports whether t is a known track.
func (t Track) Valid() bool {
	switch t {
	case TrackA, TrackB, TrackC:
		return true
	}
	return false
}

// Avatar is the categorical appearance chosen during onboarding.
type Avatar struct {
	Hair      int `json:"hair"`
	Face      int `json:"face"`
	Suit      int `json:"suit"`
	Accessory int `json:"accessory"`
}

// Identity is set once during onboarding.
type Identity struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Avatar     Avatar `json:"avatar"`
}

// KnowledgeEntry is an unlocked knowledge item with the payload captured at
// unlock time.
type KnowledgeEntry struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// InsightScores holds the three bounded insight percentages.
type InsightScores struct {
	TrackA int `json:"trackA"`
	TrackB int `json:"trackB"`
	TrackC int `json:"trackC"`
}

// Get returns the score of track t.
func (s InsightScores) Get(t Track) (int, bool) {
	switch t {
	case TrackA:
		return s.TrackA, true
	case TrackB:
		return s.TrackB, true
	case TrackC:
		return s.TrackC, true
	}
	return 0, false
}

// ptr returns the field backing track t.
func (s *InsightScores) ptr(t Track) *int {
	switch t {
	case TrackA:
		return &s.TrackA
	case TrackB:
		return &s.TrackB
	case TrackC:
		return &s.TrackC
	}
	return nil
}

// Profile is the single learner's persistent progress record.
// Level is derived from Experience and never stored.
type Profile struct {
	Identity          Identity              `json:"identity"`
	Experience        int                   `json:"experience"`
	Health            int                   `json:"health"`
	MaxHealth         int                   `json:"maxHealth"`
	CompletedLessons  []curriculum.LessonID `json:"completedLessons"`
	Badges            []string              `json:"badges"`
	Inventory         []string              `json:"inventory"`
	KnowledgeEntries  []KnowledgeEntry      `json:"knowledgeEntries"`
	InsightScores     InsightScores         `json:"insightScores"`
	CompanionUnlocked bool                  `json:"companionUnlocked"`
	CurrentLessonID   curriculum.LessonID   `json:"currentLessonId"`
	CurrentView       View                  `json:"currentView"`
}

// Default returns a fresh profile positioned at the first lesson of c.
func Default(c *curriculum.Curriculum) Profile {
	return Profile{
		Health:           DefaultMaxHealth,
		MaxHealth:        DefaultMaxHealth,
		CompletedLessons: []curriculum.LessonID{},
		Badges:           []string{},
		Inventory:        []string{},
		KnowledgeEntries: []KnowledgeEntry{},
		CurrentLessonID:  c.First(),
		CurrentView:      ViewFreeRoam,
	}
}

// Level returns the level derived from experience.
func (p Profile) Level() int {
	return LevelFor(p.Experience)
}

// HasCompleted implements curriculum.Completions.
func (p Profile) HasCompleted(id curriculum.LessonID) bool {
	for _, c := range p.CompletedLessons {
		if c == id {
			return true
		}
	}
	return false
}

// HasBadge reports whether the badge is held.
func (p Profile) HasBadge(id string) bool {
	return containsString(p.Badges, id)
}

// HasItem reports whether the inventory item is held.
func (p Profile) HasItem(id string) bool {
	return containsString(p.Inventory, id)
}

// HasKnowledge reports whether the knowledge entry is unlocked.
func (p Profile) HasKnowledge(id string) bool {
	for _, e := range p.KnowledgeEntries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// NeedsOnboarding reports whether no identity has been chosen yet.
func (p Profile) NeedsOnboarding() bool {
	return p.Identity.Name == ""
}

// Clone returns a deep copy of p. Sets are never nil in the copy.
func (p Profile) Clone() Profile {
	out := p
	out.CompletedLessons = append(make([]curriculum.LessonID, 0, len(p.CompletedLessons)), p.CompletedLessons...)
	out.Badges = append(make([]string, 0, len(p.Badges)), p.Badges...)
	out.Inventory = append(make([]string, 0, len(p.Inventory)), p.Inventory...)
	out.KnowledgeEntries = append(make([]KnowledgeEntry, 0, len(p.KnowledgeEntries)), p.KnowledgeEntries...)
	return out
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
