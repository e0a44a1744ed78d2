// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"fmt"
	"math"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/sirupsen/logrus"
)

// LevelFor returns floor(experience / LevelStep) + 1.
func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/LevelStep + 1
}

// GrantExperience adds amount to the profile experience, saturating at
// math.MaxInt. Returns false and leaves p untouched when amount is not
// positive or experience is already saturated.
func GrantExperience(p *Profile, amount int) bool {
	if amount <= 0 {
		logrus.Debugf("ignoring non-positive experience grant: %d", amount)
		return false
	}
	if p.Experience >= math.MaxInt-amount {
		if p.Experience == math.MaxInt {
			return false
		}
		p.Experience = math.MaxInt
		return true
	}
	p.Experience += amount
	return true
}

// AddBadge inserts a badge. Returns true only when the badge was not held.
func AddBadge(p *Profile, id string) bool {
	if id == "" || p.HasBadge(id) {
		return false
	}
	p.Badges = append(p.Badges, id)
	return true
}

// AddItem inserts an inventory item. Returns true only when the item was not held.
func AddItem(p *Profile, id string) bool {
	if id == "" || p.HasItem(id) {
		return false
	}
	p.Inventory = append(p.Inventory, id)
	return true
}

// AddKnowledge inserts a knowledge entry keyed by its ID, stamping UnlockedAt
// with now when the entry carries no timestamp.
func AddKnowledge(p *Profile, entry KnowledgeEntry, now time.Time) bool {
	if entry.ID == "" || p.HasKnowledge(entry.ID) {
		return false
	}
	if entry.UnlockedAt.IsZero() {
		entry.UnlockedAt = now
	}
	p.KnowledgeEntries = append(p.KnowledgeEntries, entry)
	return true
}

// CompleteLesson inserts id into the completed set.
// Returns true only the first time a known lesson is completed.
func CompleteLesson(p *Profile, c *curriculum.Curriculum, id curriculum.LessonID) bool {
	if !c.Contains(id) {
		logrus.Debugf("ignoring completion of unknown lesson %q", id)
		return false
	}
	if p.HasCompleted(id) {
		return false
	}
	p.CompletedLessons = append(p.CompletedLessons, id)
	return true
}

// ApplyDamage lowers health by amount, never below zero.
func ApplyDamage(p *Profile, amount int) bool {
	if amount <= 0 || p.Health == 0 {
		return false
	}
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
	return true
}

// Heal raises health by amount, never above MaxHealth.
func Heal(p *Profile, amount int) bool {
	if amount <= 0 || p.Health >= p.MaxHealth {
		return false
	}
	p.Health += amount
	if p.Health > p.MaxHealth {
		p.Health = p.MaxHealth
	}
	return true
}

// ResetHealth restores health to MaxHealth.
func ResetHealth(p *Profile) bool {
	if p.Health == p.MaxHealth {
		return false
	}
	p.Health = p.MaxHealth
	return true
}

// AddInsight performs a saturating add on track. Scores never decrease, so a
// non-positive delta is ignored. Returns the score before and after.
func AddInsight(p *Profile, track Track, delta int) (before, after int, changed bool) {
	field := p.InsightScores.ptr(track)
	if field == nil {
		logrus.Debugf("ignoring insight update for unknown track %q", track)
		return 0, 0, false
	}
	before = *field
	if delta <= 0 || before >= MaxInsight {
		return before, before, false
	}
	after = before + delta
	if after > MaxInsight {
		after = MaxInsight
	}
	*field = after
	return before, after, true
}

// Validate checks every invariant a persisted profile must satisfy.
// The returned error wraps ErrInvalidProfile.
func Validate(p Profile, c *curriculum.Curriculum) error {
	switch {
	case p.Experience < 0:
		return fmt.Errorf("%w: negative experience %d", ErrInvalidProfile, p.Experience)
	case p.MaxHealth <= 0:
		return fmt.Errorf("%w: maxHealth %d must be positive", ErrInvalidProfile, p.MaxHealth)
	case p.Health < 0 || p.Health > p.MaxHealth:
		return fmt.Errorf("%w: health %d outside [0, %d]", ErrInvalidProfile, p.Health, p.MaxHealth)
	case !p.CurrentView.Valid():
		return fmt.Errorf("%w: unknown view %q", ErrInvalidProfile, p.CurrentView)
	}

	if p.CurrentLessonID != "" && !c.Contains(p.CurrentLessonID) {
		return fmt.Errorf("%w: unknown current lesson %q", ErrInvalidProfile, p.CurrentLessonID)
	}

	for _, t := range Tracks {
		score, _ := p.InsightScores.Get(t)
		if score < 0 || score > MaxInsight {
			return fmt.Errorf("%w: %s insight %d outside [0, %d]", ErrInvalidProfile, t, score, MaxInsight)
		}
	}

	seenLessons := make(map[curriculum.LessonID]bool, len(p.CompletedLessons))
	for _, id := range p.CompletedLessons {
		if !c.Contains(id) {
			return fmt.Errorf("%w: unknown completed lesson %q", ErrInvalidProfile, id)
		}
		if seenLessons[id] {
			return fmt.Errorf("%w: duplicate completed lesson %q", ErrInvalidProfile, id)
		}
		seenLessons[id] = true
	}

	if err := uniqueStrings("badge", p.Badges); err != nil {
		return err
	}
	if err := uniqueStrings("inventory item", p.Inventory); err != nil {
		return err
	}

	knowledge := make([]string, len(p.KnowledgeEntries))
	for i, e := range p.KnowledgeEntries {
		knowledge[i] = e.ID
	}
	return uniqueStrings("knowledge entry", knowledge)
}

func uniqueStrings(kind string, values []string) error {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if v == "" {
			return fmt.Errorf("%w: empty %s id", ErrInvalidProfile, kind)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate %s %q", ErrInvalidProfile, kind, v)
		}
		seen[v] = true
	}
	return nil
}
