// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Queryer runs raw statements, such as the DDL statements of the
// tests. Storage backends which do not speak SQL (such as the
// in-memory one) return errors.ErrUnsupported.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
}
