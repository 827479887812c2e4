// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"fmt"

	"github.com/momeni/carsync/pkg/core/repo"
	"gorm.io/gorm"
)

// Conn is a single database connection, as passed to the handlers of
// the Pool.Conn method. It is unsafe to be used concurrently.
type Conn struct {
	*gorm.DB
}

var _ repo.Conn = (*Conn)(nil)

type TxHandler = repo.TxHandler

// Tx begins a transaction, passes it to the f handler, and commits it
// if f returns nil. The transaction is rolled back if f fails or
// panics. The unique constraint violations and missing records are
// reported as classified errors (see Classify).
func (c *Conn) Tx(ctx context.Context, f TxHandler) (err error) {
	tx := c.DB.WithContext(ctx).Begin()
	if err = tx.Error; err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			if err = tx.Rollback().Error; err != nil {
				err = fmt.Errorf("panicked: %v, rollback: %w", r, err)
				return
			}
			err = fmt.Errorf("panicked: %v", r)
			return
		}
		if err != nil {
			if err2 := tx.Rollback().Error; err2 != nil {
				err = fmt.Errorf("handler: %w, rollback: %w", err, err2)
			}
			return
		}
		if err = tx.Commit().Error; err != nil {
			err = Classify(fmt.Errorf("commit: %w", err))
		}
	}()
	return f(ctx, &Tx{DB: tx})
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(c.GORM(ctx), sql, args...)
}

func (c *Conn) IsConn() {
}

// GORM returns the embedded *gorm.DB instance, configured to operate
// on the ctx context.
func (c *Conn) GORM(ctx context.Context) *gorm.DB {
	return c.DB.WithContext(ctx)
}
