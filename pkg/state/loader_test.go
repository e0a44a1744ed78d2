// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"errors"
	"testing"

	"github.com/AccelByte/extend-learner-progression/pkg/service"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// brokenSlot fails every operation
type brokenSlot struct{}

func (brokenSlot) Name() string                                 { return "broken" }
func (brokenSlot) Read(ctx context.Context) ([]byte, error)     { return nil, errors.New("disk on fire") }
func (brokenSlot) Write(ctx context.Context, data []byte) error { return errors.New("disk on fire") }
func (brokenSlot) Clear(ctx context.Context) error              { return errors.New("disk on fire") }

func TestLoad(t *testing.T) {
	ctx := context.Background()
	saved, err := Encode(populatedProfile())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	tests := []struct {
		name     string
		slot     func() service.SlotStore
		outcome  LoadOutcome
		expected Profile
	}{
		{
			name:     "missing slot",
			slot:     func() service.SlotStore { return service.NewMemorySlotStore("s") },
			outcome:  OutcomeMissing,
			expected: Default(testCurriculum),
		},
		{
			name: "restored",
			slot: func() service.SlotStore {
				s := service.NewMemorySlotStore("s")
				_ = s.Write(ctx, saved)
				return s
			},
			outcome:  OutcomeRestored,
			expected: populatedProfile(),
		},
		{
			name: "corrupt document",
			slot: func() service.SlotStore {
				s := service.NewMemorySlotStore("s")
				_ = s.Write(ctx, []byte("not json at all"))
				return s
			},
			outcome:  OutcomeUnreadable,
			expected: Default(testCurriculum),
		},
		{
			name: "bad version tag",
			slot: func() service.SlotStore {
				s := service.NewMemorySlotStore("s")
				_ = s.Write(ctx, []byte(`{"version":7,"experience":900,"health":100,"maxHealth":100,"currentView":"free-roam"}`))
				return s
			},
			outcome:  OutcomeVersionMismatch,
			expected: Default(testCurriculum),
		},
		{
			name: "invariant violation",
			slot: func() service.SlotStore {
				s := service.NewMemorySlotStore("s")
				_ = s.Write(ctx, []byte(`{"version":1,"experience":900,"health":150,"maxHealth":100,"currentView":"free-roam"}`))
				return s
			},
			outcome:  OutcomeInvalid,
			expected: Default(testCurriculum),
		},
		{
			name:     "storage error",
			slot:     func() service.SlotStore { return brokenSlot{} },
			outcome:  OutcomeUnreadable,
			expected: Default(testCurriculum),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile, outcome := Load(ctx, tt.slot(), testCurriculum)

			if outcome != tt.outcome {
				t.Errorf("outcome = %s, expected %s", outcome, tt.outcome)
			}
			if outcome.Restored() != (tt.outcome == OutcomeRestored) {
				t.Errorf("Restored() = %v", outcome.Restored())
			}
			if diff := cmp.Diff(tt.expected, profile, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("profile mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
