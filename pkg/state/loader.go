// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"errors"

	"github.com/AccelByte/extend-learner-progression/pkg/curriculum"
	"github.com/AccelByte/extend-learner-progression/pkg/metrics"
	"github.com/AccelByte/extend-learner-progression/pkg/service"
	"github.com/sirupsen/logrus"
)

// LoadOutcome describes how a profile was obtained at startup.
type LoadOutcome string

const (
	OutcomeRestored        LoadOutcome = "restored"
	OutcomeMissing         LoadOutcome = "missing"
	OutcomeUnreadable      LoadOutcome = "unreadable"
	OutcomeVersionMismatch LoadOutcome = "version_mismatch"
	OutcomeInvalid         LoadOutcome = "invalid"
)

// Restored reports whether the profile came from storage.
func (o LoadOutcome) Restored() bool {
	return o == OutcomeRestored
}

// Load reads the slot and returns the stored profile. Any failure (absent
// slot, storage error, bad version, invariant violation) yields the default
// profile; the outcome is only informative.
func Load(ctx context.Context, slot service.SlotStore, c *curriculum.Curriculum) (Profile, LoadOutcome) {
	outcome := OutcomeRestored
	profile, err := load(ctx, slot, c)
	if err != nil {
		outcome = classify(err)
		if outcome == OutcomeMissing {
			logrus.Infof("no saved profile in slot %s, starting fresh", slot.Name())
		} else {
			logrus.Warnf("discarding saved profile in slot %s (%s): %v", slot.Name(), outcome, err)
		}
		profile = Default(c)
	} else {
		logrus.Infof("restored profile from slot %s (level %d, %d lessons completed)",
			slot.Name(), profile.Level(), len(profile.CompletedLessons))
	}

	metrics.ProfileLoadsTotal.WithLabelValues(string(outcome)).Inc()
	return profile, outcome
}

func load(ctx context.Context, slot service.SlotStore, c *curriculum.Curriculum) (Profile, error) {
	data, err := slot.Read(ctx)
	if err != nil {
		return Profile{}, err
	}
	return Decode(data, c)
}

func classify(err error) LoadOutcome {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		return OutcomeMissing
	case errors.Is(err, ErrVersionMismatch):
		return OutcomeVersionMismatch
	case errors.Is(err, ErrInvalidProfile):
		return OutcomeInvalid
	default:
		return OutcomeUnreadable
	}
}
