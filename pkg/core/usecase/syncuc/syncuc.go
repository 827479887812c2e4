// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package syncuc contains the cars synchronization use case. Its Store
// keeps an in-memory list of cars consistent with the remote cars
// service: each mutation is applied optimistically to the local list
// as soon as the service confirms it and then the whole list is
// refreshed from the service, which is the system of record.
//
// Store operations never block their callers and never return errors.
// They return a channel which is closed when the operation completes,
// and their outcome (including the failure messages) is published as
// State snapshots. Snapshots may be polled by the Snapshot method or
// observed by the Subscribe method.
package syncuc

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/momeni/carsync/pkg/core/log"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/repo"
)

// Store is the cars synchronization state machine. It is safe for
// concurrent use.
type Store struct {
	remote repo.CarsRemote
	serial bool

	mu       sync.Mutex
	st       State
	inflight int
	obs      map[*observer]struct{}
	closed   bool

	// tail is closed when the last serialized operation finishes
	tail chan struct{}
}

// New instantiates a cars Store which synchronizes with the remote
// cars service. The Store starts with an empty list of cars.
func New(remote repo.CarsRemote, opts ...Option) (*Store, error) {
	if remote == nil {
		return nil, errors.New("remote cars service is nil")
	}
	s := &Store{
		remote: remote,
		st:     State{Items: []model.Car{}},
		obs:    make(map[*observer]struct{}),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return s, nil
}

// Snapshot returns the last published State.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// Subscribe registers the fn callback in order to be called with every
// published State, starting with the current one. Calls of fn happen
// one at a time and in the order of publication, on a goroutine which
// is dedicated to this subscription, so fn may call the Store methods.
// The returned cancel function stops the subscription. It may be
// called several times.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	o := newObserver(fn)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return func() {}
	}
	s.obs[o] = struct{}{}
	o.push(s.st)
	s.mu.Unlock()
	go o.run()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.obs, o)
			s.mu.Unlock()
			o.stop()
		})
	}
}

// Close stops all subscriptions. Operations which are in flight will
// complete, but their states are not delivered to observers anymore.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for o := range s.obs {
		o.stop()
	}
	clear(s.obs)
}

// mutate applies fn on a copy of the current state, publishes the
// result, and queues it for all observers. Since all mutations are
// performed while holding the lock, observers receive the states in
// the order of their publication.
func (s *Store) mutate(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	fn(&st)
	s.st = st
	for o := range s.obs {
		o.push(st)
	}
}

// enqueue appends a serialized operation to the queue of operations.
// The operation may run after prev is closed and must close its turn
// channel when it finishes.
func (s *Store) enqueue() (prev, turn chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, turn = s.tail, make(chan struct{})
	s.tail = turn
	return prev, turn
}

// begin marks the start of an operation: the Store becomes busy and
// the last error is cleared.
func (s *Store) begin(ctx context.Context, op string, extra func(st *State)) {
	s.mutate(func(st *State) {
		s.inflight++
		st.Busy = true
		st.LastError = ""
		if extra != nil {
			extra(st)
		}
	})
	log.Debug(ctx, "cars store operation started", opAttr(op))
}

// end marks the completion of an operation, applying its last changes
// by the fn function, if it is non-nil. The Store stays busy while
// other operations are in flight.
func (s *Store) end(ctx context.Context, op string, fn func(st *State)) {
	s.mutate(func(st *State) {
		if fn != nil {
			fn(st)
		}
		s.inflight--
		st.Busy = s.inflight > 0
	})
	log.Debug(ctx, "cars store operation completed", opAttr(op))
}

// fail ends the op operation by recording the err failure.
func (s *Store) fail(ctx context.Context, op string, err error, fn func(st *State)) {
	log.Info(ctx, "cars store operation failed", opAttr(op), log.Err("err", err))
	s.end(ctx, op, func(st *State) {
		st.LastError = errorMessage(err)
		if fn != nil {
			fn(st)
		}
	})
}
