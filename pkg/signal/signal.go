// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/state"
)

// Signal is a change descriptor emitted by the profile store after an
// accepted mutation. Signals are consumed by the rule engine and by the
// transition orchestrator.
type Signal interface {
	// Type returns the signal type identifier (e.g., "lesson_completed").
	Type() string

	// SessionID returns the learner session that produced the signal.
	SessionID() string

	// Sequence returns the mutation sequence number; it increases by one per
	// accepted mutation within a store.
	Sequence() uint64

	// Timestamp returns when the mutation was applied.
	Timestamp() time.Time

	// Metadata returns additional signal-specific data.
	// This allows rules to access signal-specific information without type assertions.
	Metadata() map[string]interface{}

	// Context returns the learner context captured right after the mutation.
	Context() *LearnerContext
}

// LearnerContext carries the profile snapshot taken after the mutation.
type LearnerContext struct {
	SessionID string
	Profile   state.Profile
}

// BaseSignal implements Signal and is embedded by every concrete signal.
type BaseSignal struct {
	signalType string
	sessionID  string
	sequence   uint64
	timestamp  time.Time
	metadata   map[string]interface{}
	context    *LearnerContext
}

// NewBaseSignal creates a signal with the common fields set.
func NewBaseSignal(signalType string, seq uint64, timestamp time.Time, metadata map[string]interface{}, learnerCtx *LearnerContext) *BaseSignal {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	sessionID := ""
	if learnerCtx != nil {
		sessionID = learnerCtx.SessionID
	}
	return &BaseSignal{
		signalType: signalType,
		sessionID:  sessionID,
		sequence:   seq,
		timestamp:  timestamp,
		metadata:   metadata,
		context:    learnerCtx,
	}
}

// Type implements Signal interface.
func (s *BaseSignal) Type() string {
	return s.signalType
}

// SessionID implements Signal interface.
func (s *BaseSignal) SessionID() string {
	return s.sessionID
}

// Sequence implements Signal interface.
func (s *BaseSignal) Sequence() uint64 {
	return s.sequence
}

// Timestamp implements Signal interface.
func (s *BaseSignal) Timestamp() time.Time {
	return s.timestamp
}

// Metadata implements Signal interface.
func (s *BaseSignal) Metadata() map[string]interface{} {
	return s.metadata
}

// Context implements Signal interface.
func (s *BaseSignal) Context() *LearnerContext {
	return s.context
}
