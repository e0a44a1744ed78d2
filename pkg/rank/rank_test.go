// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package rank

import (
	"fmt"
	"testing"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profileWith(a, b, c, badges int) state.Profile {
	p := state.Default(curriculum.Default)
	p.InsightScores = state.InsightScores{TrackA: a, TrackB: b, TrackC: c}
	for i := 0; i < badges; i++ {
		p.Badges = append(p.Badges, fmt.Sprintf("badge-%d", i))
	}
	return p
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name     string
		profile  state.Profile
		expected string
	}{
		{name: "fresh profile", profile: profileWith(0, 0, 0, 0), expected: "new-recruit"},
		{name: "insight without badges", profile: profileWith(100, 100, 100, 0), expected: "new-recruit"},
		{name: "badges without insight", profile: profileWith(0, 0, 0, 10), expected: "new-recruit"},
		{name: "field agent boundary", profile: profileWith(25, 25, 25, 1), expected: "field-agent"},
		{name: "just below senior insight", profile: profileWith(50, 50, 49, 3), expected: "field-agent"},
		{name: "senior analyst", profile: profileWith(50, 50, 50, 3), expected: "senior-analyst"},
		{name: "master needs five badges", profile: profileWith(80, 80, 80, 4), expected: "senior-analyst"},
		{name: "master tactician", profile: profileWith(75, 75, 75, 5), expected: "master-tactician"},
		{name: "legendary strategist", profile: profileWith(90, 90, 90, 6), expected: "legendary-strategist"},
		{name: "maxed out", profile: profileWith(100, 100, 100, 20), expected: "legendary-strategist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Grade(tt.profile).ID)
		})
	}
}

func TestTiers_OrderedTopDown(t *testing.T) {
	require.NotEmpty(t, Tiers)
	last := Tiers[len(Tiers)-1]
	assert.Zero(t, last.MinInsight)
	assert.Zero(t, last.MinBadges)

	for i := 1; i < len(Tiers); i++ {
		assert.LessOrEqual(t, Tiers[i].MinInsight, Tiers[i-1].MinInsight)
		assert.LessOrEqual(t, Tiers[i].MinBadges, Tiers[i-1].MinBadges)
	}
}

func TestGrade_RecomputedOnDemand(t *testing.T) {
	p := profileWith(20, 20, 20, 0)
	assert.Equal(t, "new-recruit", Grade(p).ID)

	p.Badges = append(p.Badges, "first-day")
	p.InsightScores.TrackA = 35
	assert.Equal(t, "field-agent", Grade(p).ID)
}

func TestMeanInsight(t *testing.T) {
	assert.InDelta(t, 50.0, MeanInsight(state.InsightScores{TrackA: 30, TrackB: 60, TrackC: 60}), 1e-9)
	assert.InDelta(t, 33.333, MeanInsight(state.InsightScores{TrackA: 100}), 1e-3)
}

func TestProgress(t *testing.T) {
	s := Progress(profileWith(30, 30, 30, 1))
	assert.Equal(t, "field-agent", s.Current.ID)
	require.NotNil(t, s.Next)
	assert.Equal(t, "senior-analyst", s.Next.ID)
	assert.InDelta(t, 20.0, s.InsightNeeded, 1e-9)
	assert.Equal(t, 2, s.BadgesNeeded)
	assert.Equal(t, 1, s.ExperienceLevel)

	top := Progress(profileWith(100, 100, 100, 6))
	assert.Nil(t, top.Next)
	assert.Zero(t, top.BadgesNeeded)
}
