// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// Coordinate represents a geographical location with a latitude and
// longitude. The zero Coordinate, (0, 0), is taken as an unset location
// and is rejected by Validate.
type Coordinate struct {
	Lat float64 `json:"lat"`  // latitude of the geo-location
	Lon float64 `json:"long"` // longitude of the geo-location
}

// IsZero reports whether c is the unset (0, 0) location.
func (c Coordinate) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}
