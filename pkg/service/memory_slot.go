// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"sync"
)

// MemorySlotStore is a process-local SlotStore. Nothing survives a restart.
type MemorySlotStore struct {
	mu     sync.RWMutex
	slot   string
	data   []byte
	writes int
}

// NewMemorySlotStore creates an empty in-memory slot.
func NewMemorySlotStore(slot string) *MemorySlotStore {
	if slot == "" {
		slot = redisSlotDefaultName
	}
	return &MemorySlotStore{slot: slot}
}

// Name returns the slot name.
func (m *MemorySlotStore) Name() string {
	return m.slot
}

// Read returns a copy of the stored document.
func (m *MemorySlotStore) Read(ctx context.Context) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.data == nil {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Write stores a copy of data.
func (m *MemorySlotStore) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.writes++
	return nil
}

// Clear drops the stored document.
func (m *MemorySlotStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil
	return nil
}

// Writes returns how many writes have been applied.
func (m *MemorySlotStore) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.writes
}
