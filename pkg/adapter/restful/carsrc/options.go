// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrc

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/momeni/carsync/pkg/adapter/metrics"
)

// DefaultTimeout is the overall deadline of each request when neither
// WithTimeout nor WithHTTPClient options are given.
const DefaultTimeout = 30 * time.Second

// Option is a functional option for the cars REST Client.
type Option func(c *Client) error

// WithHTTPClient option makes the Client to send its requests using
// the hc HTTP client. It is useful for tests and for custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		if c.httpClient != nil {
			return errors.New("http client is already configured")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout option limits each request to the given timeout.
// If WithHTTPClient is also passed, the timeout overrides the
// timeout of that HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if d := int64(timeout); d <= 0 {
			return fmt.Errorf("timeout (%d) is not positive", d)
		}
		if c.timeout != 0 {
			return errors.New("timeout is already configured")
		}
		c.timeout = timeout
		return nil
	}
}

// WithToken option sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(c *Client) error {
		if token == "" {
			return errors.New("token is empty")
		}
		if c.token != "" {
			return errors.New("token is already configured")
		}
		c.token = token
		return nil
	}
}

// WithMetrics option records the calls outcomes and latencies in m.
func WithMetrics(m *metrics.Client) Option {
	return func(c *Client) error {
		if m == nil {
			return errors.New("metrics collectors are nil")
		}
		if c.metrics != nil {
			return errors.New("metrics are already configured")
		}
		c.metrics = m
		return nil
	}
}
