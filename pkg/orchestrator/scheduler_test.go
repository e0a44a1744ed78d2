// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package orchestrator

import (
	"sort"
	"sync"
	"time"
)

// fakeScheduler fires timers only when Advance is called.
type fakeScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	s       *fakeScheduler
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &fakeTimer{s: s, at: s.now + d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock by d and fires every timer that came due,
// including timers scheduled by the fired callbacks.
func (s *fakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		var due []*fakeTimer
		for _, t := range s.timers {
			if !t.stopped && !t.fired && t.at <= s.now {
				due = append(due, t)
			}
		}
		sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
		if len(due) == 0 {
			s.mu.Unlock()
			return
		}
		next := due[0]
		next.fired = true
		s.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of timers neither fired nor stopped.
func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
