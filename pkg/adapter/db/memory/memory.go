// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memory is a storage adapter which keeps the data of the
// reference cars service in the process memory. It reifies the
// repo.Pool, repo.Conn, and repo.Tx interfaces like the postgres
// adapter, so the use cases may run with either of them. Data is lost
// when the process terminates.
//
// Statements on a connection run one at a time, and a transaction
// holds the pool lock for its whole lifetime, so transactions are
// serializable. Raw SQL statements are not supported.
package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/repo"
)

// ErrClosed is returned when a closed Pool is used.
var ErrClosed = errors.New("memory pool is closed")

// Data is the whole content of a memory Pool.
type Data struct {
	Cars []model.Car // in the order of their creation
}

func (d *Data) clone() *Data {
	return &Data{Cars: slices.Clone(d.Cars)}
}

// Pool is an in-memory database.
type Pool struct {
	mu     sync.Mutex
	data   *Data
	closed bool
}

var _ repo.Pool = (*Pool)(nil)

// NewPool creates an empty in-memory database.
func NewPool() *Pool {
	return &Pool{data: &Data{}}
}

// Conn passes a connection to the f handler.
func (p *Pool) Conn(ctx context.Context, f repo.ConnHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f(ctx, &Conn{pool: p})
}

// Close releases the data. Next uses of the pool fail with ErrClosed.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.data = nil
	return nil
}

// Conn is a connection to a memory Pool.
type Conn struct {
	pool *Pool
}

var _ repo.Conn = (*Conn)(nil)

// Do locks the pool and runs f on its data.
func (c *Conn) Do(f func(d *Data) error) error {
	c.pool.mu.Lock()
	defer c.pool.mu.Unlock()
	if c.pool.closed {
		return ErrClosed
	}
	return f(c.pool.data)
}

// Tx locks the pool and passes a transaction to the f handler.
// Changes of the transaction are discarded if f fails or panics.
func (c *Conn) Tx(ctx context.Context, f repo.TxHandler) (err error) {
	p := c.pool
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	tx := &Tx{data: p.data.clone()}
	defer func() {
		tx.done = true
		if r := recover(); r != nil {
			err = fmt.Errorf("panicked: %v", r)
			return
		}
		if err == nil {
			p.data = tx.data
		}
	}()
	return f(ctx, tx)
}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.ErrUnsupported
}

func (c *Conn) IsConn() {
}

// Tx is a memory transaction. It works on a private copy of the data,
// which replaces the pool data on commit.
type Tx struct {
	data *Data
	done bool
}

var _ repo.Tx = (*Tx)(nil)

// Do runs f on the transaction data.
func (tx *Tx) Do(f func(d *Data) error) error {
	if tx.done {
		return errors.New("transaction is already finished")
	}
	return f(tx.data)
}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errors.ErrUnsupported
}

func (tx *Tx) IsTx() {
}
