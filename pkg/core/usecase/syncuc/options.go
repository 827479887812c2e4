// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package syncuc

import "errors"

// Option is a functional option for the cars Store.
type Option func(s *Store) error

// WithSerializedOps option configures a Store instance to run its
// operations one at a time, in the order of their invocation.
// By default, operations overlap and the last one to finish wins.
func WithSerializedOps() Option {
	return func(s *Store) error {
		if s.serial {
			return errors.New("serialized ops are already configured")
		}
		s.serial = true
		s.tail = make(chan struct{})
		close(s.tail)
		return nil
	}
}
