// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// redisSlotKeyPrefix is the prefix for all profile slot keys
	redisSlotKeyPrefix = "learner_progression:profile:"
	// redisSlotDefaultName is used when no slot name is configured
	redisSlotDefaultName = "default"
)

// RedisSlotStore implements SlotStore using one Redis string key.
type RedisSlotStore struct {
	client redis.UniversalClient
	cfg    RedisSlotStoreConfig
}

// RedisSlotStoreConfig configures a RedisSlotStore.
type RedisSlotStoreConfig struct {
	// Slot is the slot name appended to the key prefix.
	Slot string
	// KeyPrefix overrides the default key prefix.
	KeyPrefix string
	// TTL expires the document after the last write. Zero keeps it forever.
	TTL time.Duration
}

// NewRedisSlotStore creates a new Redis-backed profile slot.
func NewRedisSlotStore(client redis.UniversalClient, cfg RedisSlotStoreConfig) *RedisSlotStore {
	if cfg.Slot == "" {
		cfg.Slot = redisSlotDefaultName
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = redisSlotKeyPrefix
	}
	return &RedisSlotStore{
		client: client,
		cfg:    cfg,
	}
}

// key returns the Redis key of the slot
func (r *RedisSlotStore) key() string {
	return fmt.Sprintf("%s%s", r.cfg.KeyPrefix, r.cfg.Slot)
}

// Name returns the slot name.
func (r *RedisSlotStore) Name() string {
	return r.cfg.Slot
}

// Read retrieves the profile document from Redis.
func (r *RedisSlotStore) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key()).Bytes()
	if err == redis.Nil {
		logrus.Debugf("no document in redis slot %s", r.cfg.Slot)
		return nil, ErrSlotNotFound
	}
	if err != nil {
		logrus.Errorf("failed to read redis slot %s: %v", r.cfg.Slot, err)
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}

	return data, nil
}

// Write stores the profile document in Redis.
func (r *RedisSlotStore) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key(), data, r.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to write redis slot %s: %v", r.cfg.Slot, err)
		return fmt.Errorf("failed to write slot: %w", err)
	}

	logrus.Debugf("wrote %d bytes to redis slot %s", len(data), r.cfg.Slot)
	return nil
}

// Clear deletes the profile document from Redis.
func (r *RedisSlotStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		logrus.Errorf("failed to clear redis slot %s: %v", r.cfg.Slot, err)
		return fmt.Errorf("failed to clear slot: %w", err)
	}

	logrus.Infof("cleared redis slot %s", r.cfg.Slot)
	return nil
}

// Ping checks the Redis connection.
func (r *RedisSlotStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
