// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsuc

import "errors"

// Option is a functional option for the cars use case.
type Option func(uc *UseCase) error

// WithMigration option makes the New function to create the cars
// storage (e.g., the cars table) if it is missing.
func WithMigration() Option {
	return func(uc *UseCase) error {
		if uc.migrate {
			return errors.New("migration is already configured")
		}
		uc.migrate = true
		return nil
	}
}
