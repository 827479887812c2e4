// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/carsync/pkg/core/model"
)

// CarsRemote represents the remote cars service as seen by the client
// side use cases. It is the counterpart of the Cars repository which
// is used by the service itself: instead of a database, it is backed
// by the /car REST endpoint.
//
// Implementations must be stateless per call and must never panic.
// Every non-nil returned error is expected to be a classified
// *cerr.Error, so its message may be shown to end-users as is.
type CarsRemote interface {
	// List fetches all cars. An empty response yields an empty list.
	List(ctx context.Context) ([]model.Car, error)

	// Get fetches the id car. The id is validated before any request.
	Get(ctx context.Context, id string) (*model.Car, error)

	// Create validates and sends the c car, returning its stored form.
	Create(ctx context.Context, c model.Car) (*model.Car, error)

	// Update validates id and c and replaces the id car by c,
	// returning its stored form.
	Update(ctx context.Context, id string, c model.Car) (*model.Car, error)

	// Delete removes the id car and returns a confirmation message.
	Delete(ctx context.Context, id string) (string, error)
}
