// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/momeni/carsync/pkg/adapter/metrics"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsByOutcome(t *testing.T) {
	m := metrics.NewClient(prometheus.NewRegistry())
	start := time.Now()
	m.Observe("list", start, nil)
	m.Observe("list", start, nil)
	m.Observe("get", start, cerr.NotFound(errors.New("car 1 not found")))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Calls.WithLabelValues("list", metrics.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("get", "not-found")))
}

func TestNilClientRecordsNothing(t *testing.T) {
	var m *metrics.Client
	assert.NotPanics(t, func() {
		m.Observe("list", time.Now(), nil)
	})
}

func TestServerObserveLabelsRoutes(t *testing.T) {
	m := metrics.NewServer(prometheus.NewRegistry())
	start := time.Now()
	m.Observe("GET", "/car/:id", 200, start)
	m.Observe("GET", "/car/:id", 404, start)
	m.Observe("GET", "", 404, start)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/car/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/car/:id", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("GET", metrics.RouteUnmatched, "404")))

	var nilServer *metrics.Server
	assert.NotPanics(t, func() {
		nilServer.Observe("GET", "/car", 200, start)
	})
}
