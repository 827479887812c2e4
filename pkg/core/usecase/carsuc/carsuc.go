// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsuc contains the cars UseCase of the reference cars
// service. It supports listing, fetching, creating, updating, and
// deleting cars, validating the cars before storing them.
package carsuc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/log"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/repo"
)

// UseCase represents a cars use case. It holds a storage connections
// pool and the cars repository instance (to be guided with the pool).
type UseCase struct {
	pool   repo.Pool
	carsrp repo.Cars

	migrate bool
}

// New instantiates a cars use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(ctx context.Context, p repo.Pool, c repo.Cars, opts ...Option) (*UseCase, error) {
	uc := &UseCase{pool: p, carsrp: c}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.migrate {
		err := p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
			return uc.carsrp.Conn(c).Migrate(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("migrating cars storage: %w", err)
		}
		log.Info(ctx, "cars storage is ready")
	}
	return uc, nil
}

// List use case returns all cars.
func (cars *UseCase) List(ctx context.Context) (list []model.Car, err error) {
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		list, err = cars.carsrp.Conn(c).List(ctx)
		return err
	})
	if err != nil {
		list = nil
	}
	return
}

// Get use case returns the id car.
func (cars *UseCase) Get(ctx context.Context, id string) (car *model.Car, err error) {
	if err = model.ValidateID(id); err != nil {
		return nil, cerr.BadRequest(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		car, err = cars.carsrp.Conn(c).Get(ctx, id)
		return err
	})
	if err != nil {
		car = nil
	}
	return
}

// Create use case validates and stores the c car. A car with the same
// identifier must not exist.
func (cars *UseCase) Create(ctx context.Context, c *model.Car) (car *model.Car, err error) {
	if err = c.Validate(); err != nil {
		return nil, cerr.Unprocessable(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		car, err = cars.carsrp.Conn(cn).Create(ctx, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "car is created", log.Valuer("car", car))
	return car, nil
}

// Update use case validates the c car and replaces the id car with it.
// The c car may carry a new identifier, as long as no other car uses
// that identifier.
func (cars *UseCase) Update(ctx context.Context, id string, c *model.Car) (car *model.Car, err error) {
	if err = model.ValidateID(id); err != nil {
		return nil, cerr.BadRequest(err)
	}
	if err = c.Validate(); err != nil {
		return nil, cerr.Unprocessable(err)
	}
	err = cars.pool.Conn(ctx, func(ctx context.Context, cn repo.Conn) error {
		return cn.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			car, err = cars.carsrp.Tx(tx).Update(ctx, id, c)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "car is updated", log.Valuer("car", car))
	return car, nil
}

// Delete use case removes the id car.
func (cars *UseCase) Delete(ctx context.Context, id string) error {
	if err := model.ValidateID(id); err != nil {
		return cerr.BadRequest(err)
	}
	err := cars.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return cars.carsrp.Conn(c).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "car is deleted", slog.String("id", id))
	return nil
}
