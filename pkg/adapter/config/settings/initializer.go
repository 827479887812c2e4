// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Nil2Zero makes the nil (*t) pointer to point to a newly allocated
// zero value of T. A non-nil (*t) is kept as is.
func Nil2Zero[T any](t **T) {
	if (*t) != nil {
		return
	}
	var zero T
	(*t) = &zero
}

// OverwriteNil makes the nil (*dst) pointer to point to a copy of def.
// A non-nil (*dst) is kept as is, so settings which were given in a
// configuration file take precedence over their def default values.
func OverwriteNil[T any](dst **T, def T) {
	if (*dst) != nil {
		return
	}
	(*dst) = &def
}

// Zero2Default replaces the zero value of (*dst) with def.
func Zero2Default[T comparable](dst *T, def T) {
	var zero T
	if *dst == zero {
		*dst = def
	}
}
