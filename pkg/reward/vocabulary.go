// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package reward holds the static reward tables granted on lesson completion.
package reward

import (
	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/state"
)

// Knowledge is a knowledge entry template; the unlock time is stamped by the store.
type Knowledge struct {
	ID       string
	Category string
	Title    string
	Body     string
}

// Entry converts the template into a profile knowledge entry.
func (k Knowledge) Entry() state.KnowledgeEntry {
	return state.KnowledgeEntry{
		ID:       k.ID,
		Category: k.Category,
		Title:    k.Title,
		Body:     k.Body,
	}
}

// Bundle is everything one lesson grants on its first completion.
type Bundle struct {
	LessonID        curriculum.LessonID
	Experience      int
	BadgeID         string
	Knowledge       []Knowledge
	Insight         map[state.Track]int
	ItemID          string
	UnlockCompanion bool
}

// Vocabulary maps lessons to their reward bundle. It is immutable once built.
type Vocabulary struct {
	bundles map[curriculum.LessonID]Bundle
}

// NewVocabulary builds a vocabulary from bundles keyed by their LessonID.
// A later bundle for the same lesson replaces an earlier one.
func NewVocabulary(bundles ...Bundle) *Vocabulary {
	v := &Vocabulary{bundles: make(map[curriculum.LessonID]Bundle, len(bundles))}
	for _, b := range bundles {
		v.bundles[b.LessonID] = b.clone()
	}
	return v
}

// Lookup returns a copy of the bundle of id.
func (v *Vocabulary) Lookup(id curriculum.LessonID) (Bundle, bool) {
	if v == nil {
		return Bundle{}, false
	}
	b, ok := v.bundles[id]
	if !ok {
		return Bundle{}, false
	}
	return b.clone(), true
}

// Covers returns the lessons of c that have no bundle.
func (v *Vocabulary) Covers(c *curriculum.Curriculum) []curriculum.LessonID {
	var missing []curriculum.LessonID
	for _, id := range c.Terminal() {
		if _, ok := v.bundles[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func (b Bundle) clone() Bundle {
	out := b
	out.Knowledge = append([]Knowledge(nil), b.Knowledge...)
	if b.Insight != nil {
		out.Insight = make(map[state.Track]int, len(b.Insight))
		for t, d := range b.Insight {
			out.Insight[t] = d
		}
	}
	return out
}

// Default covers curriculum.Default.
var Default = NewVocabulary(
	Bundle{
		LessonID:   "orientation",
		Experience: 200,
		BadgeID:    "first-day",
		Knowledge: []Knowledge{{
			ID:       "kb-company-map",
			Category: "organisation",
			Title:    "Company Map",
			Body:     "Every department owns one part of the value chain.",
		}},
		Insight: map[state.Track]int{state.TrackA: 10},
		ItemID:  "visitor-badge",
	},
	Bundle{
		LessonID:   "market-signals",
		Experience: 350,
		BadgeID:    "signal-reader",
		Knowledge: []Knowledge{{
			ID:       "kb-leading-indicators",
			Category: "market",
			Title:    "Leading Indicators",
			Body:     "Order books move before revenue does.",
		}},
		Insight:         map[state.Track]int{state.TrackB: 20, state.TrackA: 5},
		UnlockCompanion: true,
	},
	Bundle{
		LessonID:   "negotiation-room",
		Experience: 450,
		BadgeID:    "deal-maker",
		Knowledge: []Knowledge{{
			ID:       "kb-batna",
			Category: "negotiation",
			Title:    "Best Alternative",
			Body:     "Know your walk-away point before the first offer.",
		}},
		Insight: map[state.Track]int{state.TrackC: 25},
		ItemID:  "signed-term-sheet",
	},
	Bundle{
		LessonID:   "supply-crisis",
		Experience: 500,
		BadgeID:    "crisis-manager",
		Knowledge: []Knowledge{
			{
				ID:       "kb-single-source",
				Category: "operations",
				Title:    "Single Sourcing",
				Body:     "One supplier is one point of failure.",
			},
			{
				ID:       "kb-safety-stock",
				Category: "operations",
				Title:    "Safety Stock",
				Body:     "Buffers buy time, not solutions.",
			},
		},
		Insight: map[state.Track]int{state.TrackA: 20, state.TrackB: 15},
	},
	Bundle{
		LessonID:   "boardroom-pitch",
		Experience: 600,
		BadgeID:    "boardroom-voice",
		Knowledge: []Knowledge{{
			ID:       "kb-pyramid",
			Category: "communication",
			Title:    "Answer First",
			Body:     "Lead with the recommendation, then the evidence.",
		}},
		Insight: map[state.Track]int{state.TrackC: 30, state.TrackB: 10},
		ItemID:  "pitch-deck",
	},
	Bundle{
		LessonID:   "final-assessment",
		Experience: 900,
		BadgeID:    "graduate",
		Knowledge: []Knowledge{{
			ID:       "kb-systems-view",
			Category: "strategy",
			Title:    "Systems View",
			Body:     "Decisions ripple through every department.",
		}},
		Insight: map[state.Track]int{state.TrackA: 40, state.TrackB: 40, state.TrackC: 40},
		ItemID:  "graduation-pin",
	},
)
