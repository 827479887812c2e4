// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// By the way, it is acceptable to annotate structs in this package with
// multiple frameworks dependent tags (e.g., as required by JSON or ORM
// libraries) since adding more tags does not complicate definition of
// a struct, but can prevent unnecessary structs duplication.
package model

import "log/slog"

// Car models a car record which is owned by the remote cars service.
// The remote service is the system of record, so a Car which is kept
// by the client side is a cached copy of the last server response.
// JSON tags follow the wire format of the /car REST endpoint.
type Car struct {
	ID       string     `json:"id"`       // numeric-only identifier
	ImageURL string     `json:"imageUrl"` // URL of an uploaded picture
	Year     string     `json:"year"`     // free-form model year
	Name     string     `json:"name"`     // display name of the car
	Licence  string     `json:"licence"`  // plate in ABC-1234 format
	Place    Coordinate `json:"place"`    // last known geo-location
}

// LogValue implements slog.LogValuer, so a Car may be logged as a
// group of its identifying fields without its image URL.
func (c Car) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", c.ID),
		slog.String("name", c.Name),
		slog.String("licence", c.Licence),
	)
}

// CarEnvelope is the body of a single car fetching response which
// wraps the car in its value field, next to its identifier.
type CarEnvelope struct {
	ID    string `json:"id"`
	Value *Car   `json:"value"`
}
