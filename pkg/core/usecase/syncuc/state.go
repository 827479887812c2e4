// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package syncuc

import (
	"log/slog"
	"slices"

	"github.com/momeni/carsync/pkg/core/model"
)

// State is an immutable snapshot of a Store. Each mutation publishes a
// new State with a new Items slice, so observers may keep a State as
// long as they need, but they must not modify its Items or Current.
type State struct {
	// Items lists the known cars, without duplicate identifiers,
	// in the order of the last refresh (followed by the cars which
	// are added afterwards).
	Items []model.Car

	// Current is the car which was returned by the last successful
	// Load, Add, or Update operation.
	Current *model.Car

	// Busy is true while at least one operation is in flight.
	Busy bool

	// LastError is the message of the last failed operation. It is
	// cleared when the next operation starts, and when a later list
	// refresh or car load succeeds.
	LastError string

	// Deleted reports whether the last Remove operation succeeded,
	// and Message holds its confirmation message.
	Deleted bool
	Message string
}

// LogValue implements slog.LogValuer interface.
func (st State) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("items", len(st.Items)),
		slog.Bool("busy", st.Busy),
		slog.String("last-error", st.LastError),
	)
}

// dedupe returns a copy of cars without repeated identifiers. The
// first occurrence of each identifier wins.
func dedupe(cars []model.Car) []model.Car {
	seen := make(map[string]struct{}, len(cars))
	items := make([]model.Car, 0, len(cars))
	for _, c := range cars {
		if _, found := seen[c.ID]; found {
			continue
		}
		seen[c.ID] = struct{}{}
		items = append(items, c)
	}
	return items
}

// upsert returns a copy of items where the car with the c.ID identifier
// is replaced by c, or c is appended if there was no such car.
func upsert(items []model.Car, c model.Car) []model.Car {
	return replace(items, c.ID, c, true)
}

// replace returns a copy of items where the car with the id identifier
// is replaced by c in place. If no car has the id identifier, c is
// appended when add is true and ignored otherwise.
func replace(items []model.Car, id string, c model.Car, add bool) []model.Car {
	out := slices.Clone(items)
	if out == nil {
		out = []model.Car{}
	}
	i := slices.IndexFunc(out, func(it model.Car) bool {
		return it.ID == id
	})
	switch {
	case i >= 0:
		out[i] = c
		if c.ID != id {
			out = dedupe(out)
		}
	case add:
		out = append(out, c)
	}
	return out
}

// without returns a copy of items excluding the car with id identifier.
func without(items []model.Car, id string) []model.Car {
	out := make([]model.Car, 0, len(items))
	for _, c := range items {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}
