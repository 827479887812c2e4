// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr provides the user-facing error taxonomy of the cars
// synchronization core. Each Error carries one Kind and one message
// which is stable across call sites, so it can be shown to end-users
// without further translation. An optional HTTP status code records
// the remote response which caused the error (if any).
//
// The same Error type is used in the opposite direction by the cars
// REST resources, so use case failures may be serialized with their
// relevant HTTP status codes.
package cerr

import (
	"errors"
	"log/slog"
	"net/http"
)

// Kind enumerates the error categories. The zero value is KindUnknown.
type Kind int

// Supported error kinds.
const (
	KindUnknown       Kind = iota // fallback, carries raw message
	KindValidation                // local, detected before any request
	KindNetwork                   // connectivity, timeout, or TLS
	KindBadRequest                // HTTP 400
	KindUnauthorized              // HTTP 401
	KindForbidden                 // HTTP 403
	KindNotFound                  // HTTP 404
	KindConflict                  // HTTP 409, duplicate or in-use
	KindUnprocessable             // HTTP 422, invalid fields
	KindServer                    // HTTP 5xx
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindValidation:    "validation",
	KindNetwork:       "network",
	KindBadRequest:    "bad-request",
	KindUnauthorized:  "unauthorized",
	KindForbidden:     "forbidden",
	KindNotFound:      "not-found",
	KindConflict:      "conflict",
	KindUnprocessable: "unprocessable",
	KindServer:        "server",
}

// String returns a short, label friendly, name of the k kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Error is a classified error. The Err field holds the user-facing
// message (possibly wrapping a lower level cause) and HTTPStatusCode
// is zero when no HTTP response was involved.
type Error struct {
	Kind           Kind
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Error returns the user-facing message of e.
func (e *Error) Error() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// LogValue implements slog.LogValuer, so an Error may be logged with
// its kind and status code next to its message.
func (e *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", e.Kind.String()),
		slog.Int("status", e.HTTPStatusCode),
		slog.String("msg", e.Error()),
	)
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &cerr.Error{Kind: cerr.KindNotFound}) may be used.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in the err chain.
// Errors which do not wrap an *Error are reported as KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// New creates an Error of k kind with the msg message and sc status.
func New(k Kind, sc int, msg string) *Error {
	return &Error{Kind: k, Err: errors.New(msg), HTTPStatusCode: sc}
}

func Validation(err error) *Error {
	return &Error{Kind: KindValidation, Err: err}
}

func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Err: err}
}

func BadRequest(err error) *Error {
	return &Error{Kind: KindBadRequest, Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func Authentication(err error) *Error {
	return &Error{Kind: KindUnauthorized, Err: err, HTTPStatusCode: http.StatusUnauthorized}
}

func Authorization(err error) *Error {
	return &Error{Kind: KindForbidden, Err: err, HTTPStatusCode: http.StatusForbidden}
}

func NotFound(err error) *Error {
	return &Error{Kind: KindNotFound, Err: err, HTTPStatusCode: http.StatusNotFound}
}

func Conflict(err error) *Error {
	return &Error{Kind: KindConflict, Err: err, HTTPStatusCode: http.StatusConflict}
}

func Unprocessable(err error) *Error {
	return &Error{Kind: KindUnprocessable, Err: err, HTTPStatusCode: http.StatusUnprocessableEntity}
}

func Server(err error) *Error {
	return &Error{Kind: KindServer, Err: err, HTTPStatusCode: http.StatusInternalServerError}
}
