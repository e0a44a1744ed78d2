// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package curriculum holds the fixed linear lesson order and the gating
// queries over it.
package curriculum

// LessonID identifies one lesson of the curriculum.
type LessonID string

// Lesson describes one unit of the fixed lesson order.
type Lesson struct {
	ID    LessonID
	Title string
	// Hazardous lessons consume learner health on mistakes.
	Hazardous bool
}

// Completions reports whether a lesson has been completed.
type Completions interface {
	HasCompleted(id LessonID) bool
}

// Curriculum is an ordered, immutable list of lessons. Each lesson has exactly
// one predecessor (except the first) and one successor (except the last).
type Curriculum struct {
	lessons []Lesson
	index   map[LessonID]int
}

// Default is the hard-coded lesson order of the training experience.
var Default = New(
	Lesson{ID: "orientation", Title: "Orientation Briefing"},
	Lesson{ID: "market-signals", Title: "Reading Market Signals"},
	Lesson{ID: "negotiation-room", Title: "The Negotiation Room", Hazardous: true},
	Lesson{ID: "supply-crisis", Title: "Supply Chain Crisis", Hazardous: true},
	Lesson{ID: "boardroom-pitch", Title: "Boardroom Pitch"},
	Lesson{ID: "final-assessment", Title: "Final Assessment", Hazardous: true},
)

// New creates a curriculum from lessons in order.
// Lessons with an empty or repeated ID are skipped.
func New(lessons ...Lesson) *Curriculum {
	c := &Curriculum{
		lessons: make([]Lesson, 0, len(lessons)),
		index:   make(map[LessonID]int, len(lessons)),
	}
	for _, l := range lessons {
		if l.ID == "" {
			continue
		}
		if _, exists := c.index[l.ID]; exists {
			continue
		}
		c.index[l.ID] = len(c.lessons)
		c.lessons = append(c.lessons, l)
	}
	return c
}

// FromIDs creates a curriculum with untitled lessons.
func FromIDs(ids ...LessonID) *Curriculum {
	lessons := make([]Lesson, len(ids))
	for i, id := range ids {
		lessons[i] = Lesson{ID: id, Title: string(id)}
	}
	return New(lessons...)
}

// Len returns the number of lessons.
func (c *Curriculum) Len() int {
	return len(c.lessons)
}

// First returns the first lesson, or "" for an empty curriculum.
func (c *Curriculum) First() LessonID {
	if len(c.lessons) == 0 {
		return ""
	}
	return c.lessons[0].ID
}

// Lessons returns a copy of the lesson order.
func (c *Curriculum) Lessons() []Lesson {
	out := make([]Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// Contains reports whether id is part of the curriculum.
func (c *Curriculum) Contains(id LessonID) bool {
	_, ok := c.index[id]
	return ok
}

// Index returns the position of id in the order.
func (c *Curriculum) Index(id LessonID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Lesson returns the lesson with the given id.
func (c *Curriculum) Lesson(id LessonID) (Lesson, bool) {
	i, ok := c.index[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// IsUnlocked reports whether the learner may enter id. The first lesson is
// always unlocked; any other lesson is unlocked iff its predecessor has been
// completed. Unknown ids are never unlocked.
func (c *Curriculum) IsUnlocked(id LessonID, completed Completions) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	if i == 0 {
		return true
	}
	if completed == nil {
		return false
	}
	return completed.HasCompleted(c.lessons[i-1].ID)
}

// Next returns the successor of id. It returns false when id is the last
// lesson or unknown.
func (c *Curriculum) Next(id LessonID) (LessonID, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.lessons) {
		return "", false
	}
	return c.lessons[i+1].ID, true
}

// Terminal returns the lessons that must all be complete for the curriculum
// to count as finished.
func (c *Curriculum) Terminal() []LessonID {
	ids := make([]LessonID, len(c.lessons))
	for i, l := range c.lessons {
		ids[i] = l.ID
	}
	return ids
}

// AllComplete reports whether every terminal lesson has been completed.
func (c *Curriculum) AllComplete(completed Completions) bool {
	if completed == nil || len(c.lessons) == 0 {
		return false
	}
	for _, l := range c.lessons {
		if !completed.HasCompleted(l.ID) {
			return false
		}
	}
	return true
}

// Unlocked returns every currently unlocked lesson in order.
func (c *Curriculum) Unlocked(completed Completions) []LessonID {
	var ids []LessonID
	for _, l := range c.lessons {
		if c.IsUnlocked(l.ID, completed) {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// Set is a Completions backed by a map, handy for callers that only hold ids.
type Set map[LessonID]struct{}

// NewSet creates a Set containing ids.
func NewSet(ids ...LessonID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// HasCompleted implements Completions.
func (s Set) HasCompleted(id LessonID) bool {
	_, ok := s[id]
	return ok
}
