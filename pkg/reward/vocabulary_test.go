// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package reward

import (
	"testing"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversDefaultCurriculum(t *testing.T) {
	assert.Empty(t, Default.Covers(curriculum.Default))
}

func TestDefault_BundlesAreWellFormed(t *testing.T) {
	badges := map[string]bool{}
	knowledge := map[string]bool{}

	for _, id := range curriculum.Default.Terminal() {
		b, ok := Default.Lookup(id)
		require.True(t, ok, "missing bundle for %s", id)

		assert.Equal(t, id, b.LessonID)
		assert.Positive(t, b.Experience, "lesson %s grants no experience", id)
		assert.NotEmpty(t, b.BadgeID, "lesson %s grants no badge", id)
		assert.False(t, badges[b.BadgeID], "badge %s granted twice", b.BadgeID)
		badges[b.BadgeID] = true

		for _, k := range b.Knowledge {
			assert.NotEmpty(t, k.ID)
			assert.False(t, knowledge[k.ID], "knowledge %s granted twice", k.ID)
			knowledge[k.ID] = true
		}
		for track, delta := range b.Insight {
			assert.True(t, track.Valid(), "unknown track %s", track)
			assert.Positive(t, delta)
		}
	}
}

func TestLookup_ReturnsCopy(t *testing.T) {
	v := NewVocabulary(Bundle{
		LessonID:  "L0",
		Knowledge: []Knowledge{{ID: "k"}},
		Insight:   map[state.Track]int{state.TrackA: 5},
	})

	b, ok := v.Lookup("L0")
	require.True(t, ok)
	b.Knowledge[0].ID = "mutated"
	b.Insight[state.TrackA] = 99

	again, _ := v.Lookup("L0")
	assert.Equal(t, "k", again.Knowledge[0].ID)
	assert.Equal(t, 5, again.Insight[state.TrackA])
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Default.Lookup("nope")
	assert.False(t, ok)

	var nilVocabulary *Vocabulary
	_, ok = nilVocabulary.Lookup("orientation")
	assert.False(t, ok)
}

func TestKnowledge_Entry(t *testing.T) {
	entry := Knowledge{ID: "k", Category: "c", Title: "t", Body: "b"}.Entry()
	assert.Equal(t, state.KnowledgeEntry{ID: "k", Category: "c", Title: "t", Body: "b"}, entry)
	assert.True(t, entry.UnlockedAt.IsZero())
}
