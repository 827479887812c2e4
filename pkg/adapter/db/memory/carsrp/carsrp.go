// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp provides a reification of the repo.Cars interface
// which keeps the cars in a memory.Pool.
package carsrp

import (
	"context"
	"fmt"
	"slices"

	"github.com/momeni/carsync/pkg/adapter/db/memory"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/repo"
)

// Repo represents the in-memory cars repository.
type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

var _ repo.Cars = (*Repo)(nil)

// doer is implemented by *memory.Conn and *memory.Tx.
type doer interface {
	Do(f func(d *memory.Data) error) error
}

type queryer struct {
	doer
}

type connQueryer struct {
	queryer
}

// Conn unwraps c, expecting to find a *memory.Conn instance, and
// panics otherwise.
func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	return connQueryer{queryer{c.(*memory.Conn)}}
}

// Migrate has nothing to create since the memory data is typed.
func (connQueryer) Migrate(context.Context) error {
	return nil
}

// Tx unwraps tx, expecting to find a *memory.Tx instance, and panics
// otherwise.
func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	return queryer{tx.(*memory.Tx)}
}

func (q queryer) List(context.Context) (cars []model.Car, err error) {
	err = q.Do(func(d *memory.Data) error {
		cars = slices.Clone(d.Cars)
		return nil
	})
	if cars == nil && err == nil {
		cars = []model.Car{}
	}
	return cars, err
}

func (q queryer) Get(_ context.Context, id string) (car *model.Car, err error) {
	err = q.Do(func(d *memory.Data) error {
		i := index(d, id)
		if i < 0 {
			return notFound(id)
		}
		c := d.Cars[i]
		car = &c
		return nil
	})
	return car, err
}

func (q queryer) Create(_ context.Context, c *model.Car) (*model.Car, error) {
	created := *c
	err := q.Do(func(d *memory.Data) error {
		if index(d, c.ID) >= 0 {
			return conflict(c.ID)
		}
		d.Cars = append(d.Cars, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (q queryer) Update(_ context.Context, id string, c *model.Car) (*model.Car, error) {
	updated := *c
	err := q.Do(func(d *memory.Data) error {
		i := index(d, id)
		if i < 0 {
			return notFound(id)
		}
		if j := index(d, c.ID); j >= 0 && j != i {
			return conflict(c.ID)
		}
		d.Cars[i] = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (q queryer) Delete(_ context.Context, id string) error {
	return q.Do(func(d *memory.Data) error {
		i := index(d, id)
		if i < 0 {
			return notFound(id)
		}
		d.Cars = slices.Delete(d.Cars, i, i+1)
		return nil
	})
}

func index(d *memory.Data, id string) int {
	return slices.IndexFunc(d.Cars, func(c model.Car) bool {
		return c.ID == id
	})
}

func notFound(id string) error {
	return cerr.NotFound(fmt.Errorf("car %s not found", id))
}

func conflict(id string) error {
	return cerr.Conflict(fmt.Errorf("car %s already exists", id))
}
