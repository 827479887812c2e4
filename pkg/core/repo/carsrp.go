// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/carsync/pkg/core/model"
)

// CarsConnQueryer lists the cars queries which need a connection.
// The Migrate method creates the cars storage (if it is missing) and
// must not be run in a transaction, so concurrent service instances
// may run it without blocking each other for long.
type CarsConnQueryer interface {
	CarsQueryer
	Migrate(ctx context.Context) error
}

type CarsTxQueryer interface {
	CarsQueryer
}

// CarsQueryer lists the queries which the reference cars service
// performs on its storage. Missing cars are reported as cerr.NotFound
// errors and duplicate identifiers as cerr.Conflict errors.
type CarsQueryer interface {
	List(ctx context.Context) ([]model.Car, error)
	Get(ctx context.Context, id string) (*model.Car, error)
	Create(ctx context.Context, c *model.Car) (*model.Car, error)
	Update(ctx context.Context, id string, c *model.Car) (*model.Car, error)
	Delete(ctx context.Context, id string) error
}

type Cars interface {
	Conn(Conn) CarsConnQueryer
	Tx(Tx) CarsTxQueryer
}
