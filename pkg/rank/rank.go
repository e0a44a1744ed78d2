// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package rank derives the learner's grade from insight and badges.
// Grades are computed on demand and never stored in the profile.
package rank

import "github.com/AccelByte/extend-learner-progression/pkg/state"

// Tier is one row of the threshold table.
type Tier struct {
	ID          string
	Title       string
	MinInsight  float64
	MinBadges   int
	Description string
}

// Tiers is the threshold table, highest tier first. The last tier has zero
// thresholds so every profile matches something.
var Tiers = []Tier{
	{ID: "legendary-strategist", Title: "Legendary Strategist", MinInsight: 90, MinBadges: 6,
		Description: "Sees the whole board and moves every piece with purpose."},
	{ID: "master-tactician", Title: "Master Tactician", MinInsight: 75, MinBadges: 5,
		Description: "Turns insight into decisive action."},
	{ID: "senior-analyst", Title: "Senior Analyst", MinInsight: 50, MinBadges: 3,
		Description: "Reads the signals others miss."},
	{ID: "field-agent", Title: "Field Agent", MinInsight: 25, MinBadges: 1,
		Description: "Has earned a place on the team."},
	{ID: "new-recruit", Title: "New Recruit", MinInsight: 0, MinBadges: 0,
		Description: "Everyone starts somewhere."},
}

// MeanInsight is the arithmetic mean of the three insight tracks.
func MeanInsight(scores state.InsightScores) float64 {
	return float64(scores.TrackA+scores.TrackB+scores.TrackC) / float64(len(state.Tracks))
}

// Qualifies reports whether the given mean insight and badge count satisfy t.
func (t Tier) Qualifies(meanInsight float64, badges int) bool {
	return meanInsight >= t.MinInsight && badges >= t.MinBadges
}

// Grade returns the first tier, from the top, whose thresholds the profile meets.
func Grade(p state.Profile) Tier {
	mean := MeanInsight(p.InsightScores)
	badges := len(p.Badges)
	for _, t := range Tiers {
		if t.Qualifies(mean, badges) {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// Standing describes the current tier and the gap to the next one.
type Standing struct {
	Current         Tier
	Next            *Tier
	MeanInsight     float64
	Badges          int
	InsightNeeded   float64
	BadgesNeeded    int
	ExperienceLevel int
}

// Progress reports the current tier and what is missing for the next one.
func Progress(p state.Profile) Standing {
	current := Grade(p)
	s := Standing{
		Current:         current,
		MeanInsight:     MeanInsight(p.InsightScores),
		Badges:          len(p.Badges),
		ExperienceLevel: p.Level(),
	}

	for i, t := range Tiers {
		if t.ID != current.ID || i == 0 {
			continue
		}
		next := Tiers[i-1]
		s.Next = &next
		if gap := next.MinInsight - s.MeanInsight; gap > 0 {
			s.InsightNeeded = gap
		}
		if gap := next.MinBadges - s.Badges; gap > 0 {
			s.BadgesNeeded = gap
		}
	}
	return s
}
