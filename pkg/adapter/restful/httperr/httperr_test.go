// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package httperr_test

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"testing"

	"github.com/momeni/carsync/pkg/adapter/restful/httperr"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromStatusTable(t *testing.T) {
	for _, tc := range []struct {
		code int
		kind cerr.Kind
		msg  string
	}{
		{400, cerr.KindBadRequest, "invalid data"},
		{401, cerr.KindUnauthorized, "unauthorized"},
		{403, cerr.KindForbidden, "forbidden"},
		{404, cerr.KindNotFound, "not found"},
		{409, cerr.KindConflict, "conflict, already exists"},
		{422, cerr.KindUnprocessable, "unprocessable entity"},
		{500, cerr.KindServer, "internal server error"},
		{502, cerr.KindServer, "bad gateway"},
		{503, cerr.KindServer, "service unavailable"},
	} {
		t.Run(fmt.Sprint(tc.code), func(t *testing.T) {
			err := httperr.FromStatus(tc.code, http.StatusText(tc.code), nil)
			assert.Equal(t, tc.msg, err.Error())
			assert.Equal(t, tc.kind, err.Kind)
			assert.Equal(t, tc.code, err.HTTPStatusCode)
		})
	}
}

func TestFromStatusUnmappedCodes(t *testing.T) {
	err := httperr.FromStatus(418, "I'm a teapot", nil)
	assert.Equal(t, "HTTP 418: I'm a teapot", err.Error())
	assert.Equal(t, cerr.KindUnknown, err.Kind)

	err = httperr.FromStatus(504, "Gateway Timeout", nil)
	assert.Equal(t, "HTTP 504: Gateway Timeout", err.Error())
	assert.Equal(t, cerr.KindServer, err.Kind)
}

func TestFromStatusOverrides(t *testing.T) {
	o := httperr.Overrides{404: "car 9 not found"}
	err := httperr.FromStatus(404, "Not Found", o)
	assert.Equal(t, "car 9 not found", err.Error())
	assert.Equal(t, cerr.KindNotFound, err.Kind)

	err = httperr.FromStatus(500, "Internal Server Error", o)
	assert.Equal(t, "internal server error", err.Error(), "other codes use the table")
}

func TestStatusText(t *testing.T) {
	resp := &http.Response{StatusCode: 418, Status: "418 I'm a teapot"}
	assert.Equal(t, "I'm a teapot", httperr.StatusText(resp))
	resp = &http.Response{StatusCode: 404}
	assert.Equal(t, "Not Found", httperr.StatusText(resp))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func urlErr(err error) error {
	return &url.Error{Op: "Get", URL: "https://cars.example/car", Err: err}
}

func TestClassifyTransportErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		kind cerr.Kind
		msg  string
	}{
		{
			name: "dns",
			err:  urlErr(&net.DNSError{Err: "no such host", Name: "cars.example", IsNotFound: true}),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgNoInternet,
		},
		{
			name: "dns timeout is still unresolvable",
			err:  &net.DNSError{Err: "timeout", Name: "cars.example", IsTimeout: true},
			kind: cerr.KindNetwork,
			msg:  httperr.MsgNoInternet,
		},
		{
			name: "network unreachable",
			err:  urlErr(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ENETUNREACH}),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgNoInternet,
		},
		{
			name: "read timeout",
			err:  urlErr(&net.OpError{Op: "read", Net: "tcp", Err: timeoutErr{}}),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgTimeout,
		},
		{
			name: "deadline",
			err:  urlErr(context.DeadlineExceeded),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgTimeout,
		},
		{
			name: "unknown authority",
			err:  urlErr(x509.UnknownAuthorityError{}),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgSecureConn,
		},
		{
			name: "hostname mismatch",
			err:  urlErr(x509.HostnameError{Host: "cars.example", Certificate: &x509.Certificate{}}),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgSecureConn,
		},
		{
			name: "connection refused",
			err:  urlErr(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgNetwork,
		},
		{
			name: "truncated body",
			err:  fmt.Errorf("decoding: %w", io.ErrUnexpectedEOF),
			kind: cerr.KindNetwork,
			msg:  httperr.MsgNetwork,
		},
		{
			name: "anything else",
			err:  errors.New("invalid character 'x' looking for beginning of value"),
			kind: cerr.KindUnknown,
			msg:  "invalid character 'x' looking for beginning of value",
		},
		{
			name: "empty message",
			err:  errors.New(""),
			kind: cerr.KindUnknown,
			msg:  httperr.MsgUnknownError,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ce := httperr.Classify(tc.err)
			require.NotNil(t, ce)
			assert.Equal(t, tc.kind, ce.Kind)
			assert.Equal(t, tc.msg, ce.Error())
			assert.ErrorIs(t, ce, tc.err, "original error stays reachable")
		})
	}
}

func TestClassifyKeepsClassifiedErrors(t *testing.T) {
	orig := cerr.Conflict(errors.New("car already exists for this id"))
	assert.Same(t, orig, httperr.Classify(fmt.Errorf("create: %w", orig)))
	assert.Nil(t, httperr.Classify(nil))
}
