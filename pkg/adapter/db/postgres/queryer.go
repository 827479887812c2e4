// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/carsync/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of the generic repository functions
// which may run on a connection or a transaction alike.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}

// exec runs sql with args and returns the number of affected rows.
// Parameters may be numbered like $1 or given as ? and @name (which
// are supported by GORM). Without args, sql may contain several
// semicolon separated statements.
func exec(gdb *gorm.DB, sql string, args ...any) (int64, error) {
	tt := gdb.Exec(sql, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}
