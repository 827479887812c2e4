// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrc

import (
	"log/slog"

	"github.com/momeni/carsync/pkg/core/model"
)

// ErrorResponse is the body which the cars service may send along a
// non-successful status code. Its content is only logged because the
// end-user message is derived from the status code.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes the rejection of one car field.
type FieldError struct {
	Car   *model.Car `json:"car,omitempty"`
	ID    string     `json:"id,omitempty"`
	Error string     `json:"error"`
}

// LogValue implements slog.LogValuer interface.
func (er ErrorResponse) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", er.Error)}
	for _, fe := range er.Errors {
		attrs = append(attrs, slog.String("field."+fe.ID, fe.Error))
	}
	return slog.GroupValue(attrs...)
}

// DeleteResponse is the body of a successful deletion.
type DeleteResponse struct {
	Message string `json:"message"`
}

// MsgDeleted is reported by Delete when the service confirms a deletion
// without a message of its own.
const MsgDeleted = "car deleted successfully"
