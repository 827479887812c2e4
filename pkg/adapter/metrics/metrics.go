// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package metrics provides the prometheus collectors of the cars
// synchronization client and the reference cars service. Collectors
// are registered on an explicit registerer (instead of the global
// one), so several clients or tests may use their own registries.
package metrics

import (
	"strconv"
	"time"

	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeOK labels the successful calls. Failed calls are labeled by
// their cerr.Kind string, e.g., "network" or "not-found".
const OutcomeOK = "ok"

// Client holds the collectors of a cars REST client. A nil *Client is
// valid and records nothing.
type Client struct {
	Calls   *prometheus.CounterVec
	Latency *prometheus.HistogramVec
}

// NewClient creates and registers the client collectors on reg.
func NewClient(reg prometheus.Registerer) *Client {
	f := promauto.With(reg)
	return &Client{
		Calls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carsync_client_calls_total",
				Help: "Total number of cars REST calls by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		Latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carsync_client_call_duration_seconds",
				Help:    "Cars REST call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
}

// Observe records one op call which was started at start and ended
// with the err error (nil for a successful call).
func (m *Client) Observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = cerr.KindOf(err).String()
	}
	m.Calls.WithLabelValues(op, outcome).Inc()
	m.Latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// RouteUnmatched labels the requests which matched no route.
const RouteUnmatched = "unmatched"

// Server holds the collectors of the reference cars service. A nil
// *Server is valid and records nothing.
type Server struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewServer creates and registers the service collectors on reg.
func NewServer(reg prometheus.Registerer) *Server {
	f := promauto.With(reg)
	return &Server{
		Requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "carsync_server_requests_total",
				Help: "Total number of served requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		Latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "carsync_server_request_duration_seconds",
				Help:    "Served request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Observe records one request of the route pattern (empty if no route
// was matched) which was started at start and got the status code.
func (m *Server) Observe(method, route string, status int, start time.Time) {
	if m == nil {
		return
	}
	if route == "" {
		route = RouteUnmatched
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.Latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
