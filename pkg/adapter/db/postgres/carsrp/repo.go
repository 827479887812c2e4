// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrp provides a reification of the repo.Cars interface
// which keeps the cars in the "cars" table of a PostgreSQL database.
package carsrp

import (
	"context"

	"github.com/momeni/carsync/pkg/adapter/db/postgres"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/repo"
)

// Repo represents the cars repository.
type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

var _ repo.Cars = (*Repo)(nil)

type connQueryer struct {
	*postgres.Conn
}

// Conn unwraps c, expecting to find a *postgres.Conn instance as
// created by the postgres adapter, and panics otherwise.
func (cars *Repo) Conn(c repo.Conn) repo.CarsConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) Migrate(ctx context.Context) error {
	return Migrate(ctx, cq.Conn)
}

func (cq connQueryer) List(ctx context.Context) ([]model.Car, error) {
	return List(ctx, cq.Conn)
}

func (cq connQueryer) Get(ctx context.Context, id string) (*model.Car, error) {
	return Get(ctx, cq.Conn, id)
}

func (cq connQueryer) Create(ctx context.Context, c *model.Car) (*model.Car, error) {
	return Create(ctx, cq.Conn, c)
}

func (cq connQueryer) Update(ctx context.Context, id string, c *model.Car) (*model.Car, error) {
	return Update(ctx, cq.Conn, id, c)
}

func (cq connQueryer) Delete(ctx context.Context, id string) error {
	return Delete(ctx, cq.Conn, id)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps tx, expecting to find a *postgres.Tx instance as created
// by the postgres adapter, and panics otherwise.
func (cars *Repo) Tx(tx repo.Tx) repo.CarsTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) List(ctx context.Context) ([]model.Car, error) {
	return List(ctx, tq.Tx)
}

func (tq txQueryer) Get(ctx context.Context, id string) (*model.Car, error) {
	return Get(ctx, tq.Tx, id)
}

func (tq txQueryer) Create(ctx context.Context, c *model.Car) (*model.Car, error) {
	return Create(ctx, tq.Tx, c)
}

func (tq txQueryer) Update(ctx context.Context, id string, c *model.Car) (*model.Car, error) {
	return Update(ctx, tq.Tx, id, c)
}

func (tq txQueryer) Delete(ctx context.Context, id string) error {
	return Delete(ctx, tq.Tx, id)
}
