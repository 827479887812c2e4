// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// It creates a temporary PostgreSQL container and connects to it by
// a *postgres.Pool connections pool, so integration-level test suites
// may run against a real DBMS server. Those suites should be skipped
// in the short mode.
package dbcontainer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/carsync/pkg/adapter/db/postgres"
	"github.com/momeni/carsync/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// DBMSVersion is the tag of the postgres image.
const DBMSVersion = "16"

// sqlStateStartingUp is reported while the DBMS is starting up.
const sqlStateStartingUp = "57P03"

const retryInterval = 200 * time.Millisecond

// New starts a postgres container using the docker (or podman) API,
// as found by the DOCKER_HOST environment variable, e.g.,
// DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock for podman.
// The ctx is used during the container start up and shutdown, while
// the timeout only limits the start up phase.
// Failures are reported on t and cause ok to be false. The dfrs
// functions must be called (in their order) when the container is
// not needed anymore, even if ok is false.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(ctx2, DBMSVersion)
	if ok = assert.NoError(t, err, "failed to set up a test database"); !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	pool, err = connect(ctx2, pg.ConnectionString())
	if ok = assert.NoError(t, err, "cannot connect to test database"); !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	return
}

// connect creates a connections pool for the url database, retrying
// while the DBMS is starting up or is unreachable, until ctx is done.
func connect(ctx context.Context, url string) (*postgres.Pool, error) {
	for {
		pool, err := postgres.NewPool(ctx, url)
		if err == nil {
			return pool, nil
		}
		if !transient(err) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for DBMS: %w", err)
		case <-time.After(retryInterval):
		}
	}
}

func transient(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == sqlStateStartingUp
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// DropTables drops the given tables (if they exist), so each test
// of a suite may start with an empty database.
func DropTables(ctx context.Context, p repo.Pool, tables ...string) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		for _, tbl := range tables {
			if _, err := c.Exec(ctx, "DROP TABLE IF EXISTS "+tbl); err != nil {
				return fmt.Errorf("dropping %s: %w", tbl, err)
			}
		}
		return nil
	})
}
