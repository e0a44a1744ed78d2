// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by SlotStore.Read when the slot holds no document.
var ErrSlotNotFound = errors.New("profile slot not found")

// SlotStore is a single named slot in durable storage holding one serialized
// profile document. Writes replace the whole document.
//
// Implementations: RedisSlotStore, SQLiteSlotStore, MemorySlotStore.
type SlotStore interface {
	// Name returns the slot name.
	Name() string

	// Read returns the stored document or ErrSlotNotFound.
	Read(ctx context.Context) ([]byte, error)

	// Write replaces the stored document.
	Write(ctx context.Context, data []byte) error

	// Clear removes the stored document. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}

// Pinger is implemented by slot stores backed by a remote or file resource.
type Pinger interface {
	Ping(ctx context.Context) error
}
