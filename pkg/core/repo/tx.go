// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Tx represents a storage transaction.
// It is unsafe to be used concurrently. For the PostgreSQL backend,
// all statements of a single transaction observe the ACID properties
// with the default READ-COMMITTED isolation level. The in-memory
// backend serializes transactions by holding its lock for the whole
// lifetime of the transaction handler.
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
