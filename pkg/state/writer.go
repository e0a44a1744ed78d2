// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-learner-progression/pkg/metrics"
	"github.com/AccelByte/extend-learner-progression/pkg/service"
	"github.com/sirupsen/logrus"
)

const defaultWriteTimeout = 3 * time.Second

// SnapshotWriterConfig configures a SnapshotWriter.
type SnapshotWriterConfig struct {
	// WriteTimeout bounds one slot write. Defaults to 3s.
	WriteTimeout time.Duration
}

type snapshot struct {
	seq  uint64
	data []byte
}

// SnapshotWriter writes serialized profile snapshots to a slot from a single
// background goroutine. Submit never blocks on storage. Snapshots are written
// in sequence order and a pending snapshot is replaced by a newer one, so the
// slot always converges to the latest submitted document.
type SnapshotWriter struct {
	slot    service.SlotStore
	timeout time.Duration

	mu        sync.Mutex
	pending   *snapshot
	submitted uint64
	attempted uint64
	lastErr   error
	progress  chan struct{}
	closed    bool

	wake      chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewSnapshotWriter creates a writer and starts its goroutine.
// Call Close to stop it.
func NewSnapshotWriter(slot service.SlotStore, cfg SnapshotWriterConfig) *SnapshotWriter {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	w := &SnapshotWriter{
		slot:     slot,
		timeout:  cfg.WriteTimeout,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w
}

// Submit queues data as snapshot seq. Snapshots with a sequence not newer than
// the last submitted one are dropped.
func (w *SnapshotWriter) Submit(seq uint64, data []byte) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		logrus.Warnf("dropping snapshot %d: %v", seq, ErrWriterClosed)
		return
	}
	if seq <= w.submitted {
		w.mu.Unlock()
		logrus.Debugf("dropping stale snapshot %d (latest %d)", seq, w.submitted)
		return
	}
	if w.pending != nil {
		metrics.SnapshotsSupersededTotal.Inc()
	}
	w.pending = &snapshot{seq: seq, data: data}
	w.submitted = seq
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *SnapshotWriter) run() {
	defer close(w.done)

	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

// drain writes pending snapshots until none is left.
func (w *SnapshotWriter) drain() {
	for {
		w.mu.Lock()
		snap := w.pending
		w.pending = nil
		w.mu.Unlock()

		if snap == nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.slot.Write(ctx, snap.data)
		cancel()

		metrics.SnapshotWritesTotal.WithLabelValues(metrics.Result(err)).Inc()
		if err != nil {
			logrus.Errorf("failed to persist snapshot %d to slot %s: %v", snap.seq, w.slot.Name(), err)
		} else {
			logrus.Debugf("persisted snapshot %d to slot %s", snap.seq, w.slot.Name())
		}

		w.mu.Lock()
		w.attempted = snap.seq
		w.lastErr = err
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

// Flush waits until the latest submitted snapshot has been attempted and
// returns the error of that attempt.
func (w *SnapshotWriter) Flush(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.attempted >= w.submitted {
			err := w.lastErr
			w.mu.Unlock()
			return err
		}
		progress := w.progress
		w.mu.Unlock()

		select {
		case <-progress:
		case <-w.done:
			w.mu.Lock()
			defer w.mu.Unlock()
			if w.attempted >= w.submitted {
				return w.lastErr
			}
			return ErrWriterClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close flushes pending snapshots and stops the writer goroutine.
func (w *SnapshotWriter) Close(ctx context.Context) error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		close(w.stop)
	})

	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}
