// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres is the PostgreSQL storage adapter of the reference
// cars service. It reifies the repo.Pool, repo.Conn, and repo.Tx
// interfaces using the GORM framework on top of the pgx driver, so the
// repository packages (such as carsrp) may use GORM for their queries.
package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/carsync/pkg/core/cerr"
	"gorm.io/gorm"
)

// uniqueViolation is the SQLSTATE of the unique_violation errors.
const uniqueViolation = "23505"

// Classify converts the err database error into a *cerr.Error when it
// has a meaning for the use cases layer. Missing records are reported
// as cerr.NotFound and the unique constraint violations as
// cerr.Conflict errors. Other errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cerr.NotFound(err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return cerr.Conflict(err)
	}
	return err
}
