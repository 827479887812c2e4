// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo declares the interfaces which the use cases layer needs
// from the storage and remote service adapters. The reference cars
// service reaches its storage through a Pool of connections (backed by
// PostgreSQL or by the process memory), while the synchronization
// client reaches the cars service through the CarsRemote interface.
package repo

import "context"

type ConnHandler func(context.Context, Conn) error

// Pool hands out connections. The handler is called with a connection
// which is released as soon as the handler returns.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
	Close() error
}
