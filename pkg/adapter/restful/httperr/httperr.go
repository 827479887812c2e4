// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package httperr classifies the failures of HTTP requests into the
// cerr taxonomy. Two sources of failure are supported: errors which
// are returned by the transport (see Classify) and unsuccessful HTTP
// responses (see FromStatus). Both functions are total, stateless, and
// perform no I/O.
package httperr

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"

	"github.com/momeni/carsync/pkg/core/cerr"
)

// User-facing messages of the transport failures.
const (
	MsgNoInternet   = "no internet connection"
	MsgTimeout      = "timeout, try again"
	MsgSecureConn   = "secure connection error"
	MsgNetwork      = "network error"
	MsgUnknownError = "unknown error"
)

// transportRule matches one family of transport errors. Rules are
// checked in order, so more specific families must come first.
type transportRule struct {
	match func(err error) bool
	msg   string
}

var transportRules = []transportRule{
	{isHostUnreachable, MsgNoInternet},
	{isTimeout, MsgTimeout},
	{isTLS, MsgSecureConn},
	{isIO, MsgNetwork},
}

// Classify maps the err transport error into a *cerr.Error.
// An err which already wraps a *cerr.Error is returned as that error,
// so Classify may be applied more than once safely. Network families
// (unresolvable or unreachable host, timeout, TLS, other I/O) become
// KindNetwork errors. Anything else becomes a KindUnknown error
// carrying the raw message (or "unknown error" if it is empty).
// A nil err yields nil.
func Classify(err error) *cerr.Error {
	if err == nil {
		return nil
	}
	var ce *cerr.Error
	if errors.As(err, &ce) {
		return ce
	}
	for _, r := range transportRules {
		if r.match(err) {
			return cerr.Network(&causeError{msg: r.msg, cause: err})
		}
	}
	msg := err.Error()
	if msg == "" {
		msg = MsgUnknownError
	}
	return cerr.Unknown(&causeError{msg: msg, cause: err})
}

// causeError keeps the original transport error reachable by the
// errors.Is and errors.As functions while reporting the classified
// message as its Error string.
type causeError struct {
	msg   string
	cause error
}

func (e *causeError) Error() string { return e.msg }
func (e *causeError) Unwrap() error { return e.cause }

func isHostUnreachable(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isTLS(err error) bool {
	var (
		verifyErr    *tls.CertificateVerificationError
		recordErr    tls.RecordHeaderError
		authorityErr x509.UnknownAuthorityError
		hostErr      x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &verifyErr) ||
		errors.As(err, &recordErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &invalidErr)
}

func isIO(err error) bool {
	var (
		opErr  *net.OpError
		urlErr *url.Error
		errno  syscall.Errno
	)
	return errors.As(err, &opErr) ||
		errors.As(err, &urlErr) ||
		errors.As(err, &errno) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// statusEntry is one row of the HTTP status table.
type statusEntry struct {
	kind cerr.Kind
	msg  string
}

var statusTable = map[int]statusEntry{
	http.StatusBadRequest:          {cerr.KindBadRequest, "invalid data"},
	http.StatusUnauthorized:        {cerr.KindUnauthorized, "unauthorized"},
	http.StatusForbidden:           {cerr.KindForbidden, "forbidden"},
	http.StatusNotFound:            {cerr.KindNotFound, "not found"},
	http.StatusConflict:            {cerr.KindConflict, "conflict, already exists"},
	http.StatusUnprocessableEntity: {cerr.KindUnprocessable, "unprocessable entity"},
	http.StatusInternalServerError: {cerr.KindServer, "internal server error"},
	http.StatusBadGateway:          {cerr.KindServer, "bad gateway"},
	http.StatusServiceUnavailable:  {cerr.KindServer, "service unavailable"},
}

// Overrides replace the messages of specific status codes, so callers
// which know their context (e.g., the identifier of a missing car) may
// report more specific messages than the generic table.
type Overrides map[int]string

// FromStatus maps an unsuccessful HTTP response, given by its code and
// status text, into a *cerr.Error. Messages are looked up in overrides
// first, then in the status table, and fall back to the generic
// "HTTP {code}: {text}" form for unmapped codes. The Kind depends on
// the code alone: unmapped 5xx codes are KindServer and all other
// unmapped codes are KindUnknown.
func FromStatus(code int, text string, overrides Overrides) *cerr.Error {
	e, ok := statusTable[code]
	if !ok {
		e.kind = cerr.KindUnknown
		if code >= 500 && code <= 599 {
			e.kind = cerr.KindServer
		}
		e.msg = fmt.Sprintf("HTTP %d: %s", code, text)
	}
	if msg, found := overrides[code]; found {
		e.msg = msg
	}
	return &cerr.Error{
		Kind:           e.kind,
		Err:            errors.New(e.msg),
		HTTPStatusCode: code,
	}
}

// StatusText returns the reason phrase of resp, e.g., "Not Found" for
// a "404 Not Found" status line. The standard phrase of the status code
// is used if the server did not send any.
func StatusText(resp *http.Response) string {
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if len(resp.Status) > len(prefix) && resp.Status[:len(prefix)] == prefix {
		return resp.Status[len(prefix):]
	}
	return http.StatusText(resp.StatusCode)
}
