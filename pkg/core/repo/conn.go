// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

type TxHandler func(context.Context, Tx) error

// Conn is a single storage connection. A transaction may be started
// on it by the Tx method, which commits if the handler returns nil and
// rolls back otherwise.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error
	IsConn()
}
