// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package signal

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Handler consumes signals.
type Handler func(ctx context.Context, sig Signal)

type subscription struct {
	id      int
	name    string
	handler Handler
}

type queued struct {
	ctx context.Context
	sig Signal
}

// Dispatcher delivers signals to subscribers in publish order.
//
// A publish made while signals are being delivered (for example by a handler
// that mutates the store) is queued and delivered by the outer Publish after
// the current signal has reached every subscriber. Delivery is therefore
// breadth-first and never recursive.
type Dispatcher struct {
	mu       sync.Mutex
	subs     []subscription
	nextID   int
	queue    []queued
	draining bool
}

// NewDispatcher creates a dispatcher without subscribers.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers handler under name and returns a function removing it.
// Subscribers are called in registration order.
func (d *Dispatcher) Subscribe(name string, handler Handler) (unsubscribe func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, name: name, handler: handler})
	logrus.Debugf("subscribed %s to profile signals", name)

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish queues sig and, unless a delivery is already in progress, delivers
// everything queued.
func (d *Dispatcher) Publish(ctx context.Context, sig Signal) {
	if sig == nil {
		return
	}

	d.mu.Lock()
	d.queue = append(d.queue, queued{ctx: ctx, sig: sig})
	if d.draining {
		d.mu.Unlock()
		return
	}
	d.draining = true

	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		subs := append([]subscription(nil), d.subs...)
		d.mu.Unlock()

		for _, s := range subs {
			deliver(next.ctx, s, next.sig)
		}

		d.mu.Lock()
	}

	d.draining = false
	d.mu.Unlock()
}

// deliver calls one subscriber, isolating the others from its panics.
func deliver(ctx context.Context, s subscription, sig Signal) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("subscriber %s panicked on signal %s (seq %d): %v", s.name, sig.Type(), sig.Sequence(), r)
		}
	}()
	s.handler(ctx, sig)
}

// Subscribers returns the number of registered subscribers.
func (d *Dispatcher) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.subs)
}
