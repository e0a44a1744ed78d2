// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profile_slots (
    slot       TEXT PRIMARY KEY,
    document   BLOB NOT NULL,
    updated_at INTEGER NOT NULL
)`

// SQLiteSlotStore implements SlotStore with a local SQLite file, one row per slot.
type SQLiteSlotStore struct {
	db   *sql.DB
	slot string
}

// OpenSQLiteSlotStore opens (creating if needed) the SQLite file at path and
// returns the slot with the given name.
func OpenSQLiteSlotStore(path, slot string) (*SQLiteSlotStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if slot == "" {
		slot = redisSlotDefaultName
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// one writer keeps slot updates ordered
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logrus.Infof("opened sqlite profile store at %s (slot: %s)", path, slot)
	return &SQLiteSlotStore{db: db, slot: slot}, nil
}

// Name returns the slot name.
func (s *SQLiteSlotStore) Name() string {
	return s.slot
}

// Read loads the profile document of the slot.
func (s *SQLiteSlotStore) Read(ctx context.Context) ([]byte, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("sqlite store is not configured")
	}

	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM profile_slots WHERE slot = ?`, s.slot,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		logrus.Errorf("failed to read sqlite slot %s: %v", s.slot, err)
		return nil, fmt.Errorf("failed to read slot: %w", err)
	}

	return data, nil
}

// Write upserts the profile document of the slot.
func (s *SQLiteSlotStore) Write(ctx context.Context, data []byte) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store is not configured")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile_slots (slot, document, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		    document = excluded.document,
		    updated_at = excluded.updated_at`,
		s.slot, data, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		logrus.Errorf("failed to write sqlite slot %s: %v", s.slot, err)
		return fmt.Errorf("failed to write slot: %w", err)
	}

	return nil
}

// Clear deletes the slot row.
func (s *SQLiteSlotStore) Clear(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store is not configured")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM profile_slots WHERE slot = ?`, s.slot); err != nil {
		return fmt.Errorf("failed to clear slot: %w", err)
	}

	logrus.Infof("cleared sqlite slot %s", s.slot)
	return nil
}

// Ping checks the database connection.
func (s *SQLiteSlotStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlite store is not configured")
	}
	return s.db.PingContext(ctx)
}

// Close releases the database.
func (s *SQLiteSlotStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
