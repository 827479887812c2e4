// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package syncuc

import (
	"context"
	"log/slog"

	"github.com/momeni/carsync/pkg/core/async"
	"github.com/momeni/carsync/pkg/core/model"
)

const (
	opRefresh = "refresh"
	opLoad    = "load"
	opAdd     = "add"
	opUpdate  = "update"
	opRemove  = "remove"
)

// Refresh replaces the list of cars by the list which is fetched from
// the remote service. On failure, the current list is kept.
func (s *Store) Refresh(ctx context.Context) <-chan struct{} {
	return s.spawn(ctx, opRefresh, nil, func(ctx context.Context) {
		s.refresh(ctx, opRefresh)
	})
}

// Load fetches the id car and makes it the Current car.
func (s *Store) Load(ctx context.Context, id string) <-chan struct{} {
	return s.spawn(ctx, opLoad, nil, func(ctx context.Context) {
		car, err := async.Await(ctx, func(ctx context.Context) (*model.Car, error) {
			return s.remote.Get(ctx, id)
		})
		if err != nil {
			s.fail(ctx, opLoad, err, nil)
			return
		}
		s.end(ctx, opLoad, func(st *State) {
			st.Current = car
			st.LastError = ""
		})
	})
}

// Add creates the car in the remote service. The created car is added
// to the list (replacing any car with the same identifier), becomes
// the Current car, and then the list is refreshed.
func (s *Store) Add(ctx context.Context, car model.Car) <-chan struct{} {
	return s.spawn(ctx, opAdd, nil, func(ctx context.Context) {
		created, err := async.Await(ctx, func(ctx context.Context) (*model.Car, error) {
			return s.remote.Create(ctx, car)
		})
		if err != nil {
			s.fail(ctx, opAdd, err, nil)
			return
		}
		if created == nil {
			created = &car
		}
		s.mutate(func(st *State) {
			st.Items = upsert(st.Items, *created)
			st.Current = created
		})
		s.refresh(ctx, opAdd)
	})
}

// Update replaces the id car by the given car in the remote service.
// The updated car replaces the id car in the list (keeping its
// position), becomes the Current car, and then the list is refreshed.
func (s *Store) Update(ctx context.Context, id string, car model.Car) <-chan struct{} {
	return s.spawn(ctx, opUpdate, nil, func(ctx context.Context) {
		updated, err := async.Await(ctx, func(ctx context.Context) (*model.Car, error) {
			return s.remote.Update(ctx, id, car)
		})
		if err != nil {
			s.fail(ctx, opUpdate, err, nil)
			return
		}
		if updated == nil {
			updated = &car
		}
		s.mutate(func(st *State) {
			st.Items = replace(st.Items, id, *updated, false)
			st.Current = updated
		})
		s.refresh(ctx, opUpdate)
	})
}

// Remove deletes the id car from the remote service. The car is
// removed from the list right away, Deleted becomes true, and then
// the list is refreshed.
func (s *Store) Remove(ctx context.Context, id string) <-chan struct{} {
	reset := func(st *State) {
		st.Deleted = false
		st.Message = ""
	}
	return s.spawn(ctx, opRemove, reset, func(ctx context.Context) {
		msg, err := async.Await(ctx, func(ctx context.Context) (string, error) {
			return s.remote.Delete(ctx, id)
		})
		if err != nil {
			s.fail(ctx, opRemove, err, reset)
			return
		}
		s.mutate(func(st *State) {
			st.Items = without(st.Items, id)
			st.Deleted = true
			st.Message = msg
		})
		s.refresh(ctx, opRemove)
	})
}

// spawn starts the op operation synchronously, so the Store is busy
// as soon as spawn returns, and runs its body on a new goroutine.
// The body is responsible to end the operation. The returned channel
// is closed when body returns. Serialized operations take their turn
// in spawn, so they run in the order of invocation.
func (s *Store) spawn(
	ctx context.Context, op string, reset func(st *State),
	body func(ctx context.Context),
) <-chan struct{} {
	done := make(chan struct{})
	var prev, turn chan struct{}
	if s.serial {
		prev, turn = s.enqueue()
	}
	s.begin(ctx, op, reset)
	go func() {
		defer close(done)
		if turn != nil {
			select {
			case <-prev:
				defer close(turn)
			case <-ctx.Done():
				// the next operation still waits for prev
				go func() {
					<-prev
					close(turn)
				}()
				s.fail(ctx, op, ctx.Err(), nil)
				return
			}
		}
		body(ctx)
	}()
	return done
}

// refresh fetches all cars and ends the op operation.
func (s *Store) refresh(ctx context.Context, op string) {
	cars, err := async.Await(ctx, s.remote.List)
	if err != nil {
		s.fail(ctx, op, err, nil)
		return
	}
	s.end(ctx, op, func(st *State) {
		st.Items = dedupe(cars)
		st.LastError = ""
	})
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "unknown error"
}

func opAttr(op string) slog.Attr {
	return slog.String("op", op)
}
