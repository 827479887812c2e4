// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrc_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/momeni/carsync/pkg/adapter/metrics"
	"github.com/momeni/carsync/pkg/adapter/restful/carsrc"
	"github.com/momeni/carsync/pkg/adapter/restful/httperr"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCar(id string) model.Car {
	return model.Car{
		ID:       id,
		ImageURL: "https://example.com/" + id + ".jpg",
		Year:     "2020",
		Name:     "Car " + id,
		Licence:  "ABC-1234",
		Place:    model.Coordinate{Lat: 1.5, Lon: 2.5},
	}
}

// fakeService is an httptest server which counts its requests and
// responds by the handler which is configured per test.
type fakeService struct {
	*httptest.Server
	calls   atomic.Int32
	lastReq atomic.Pointer[http.Request]
}

func newFakeService(t *testing.T, h http.HandlerFunc) *fakeService {
	t.Helper()
	fs := &fakeService{}
	fs.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			fs.calls.Add(1)
			fs.lastReq.Store(r.Clone(context.Background()))
			h(w, r)
		},
	))
	t.Cleanup(fs.Close)
	return fs
}

func jsonHandler(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	}
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

func newClient(t *testing.T, fs *fakeService, opts ...carsrc.Option) *carsrc.Client {
	t.Helper()
	c, err := carsrc.New(fs.URL, opts...)
	require.NoError(t, err)
	return c
}

func requireKind(t *testing.T, err error, k cerr.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var ce *cerr.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, k, ce.Kind)
	assert.Equal(t, msg, err.Error())
}

func TestNewRejectsBadConfigurations(t *testing.T) {
	_, err := carsrc.New("localhost:8080")
	assert.Error(t, err)
	_, err = carsrc.New("http://localhost", carsrc.WithTimeout(0))
	assert.Error(t, err)
	_, err = carsrc.New(
		"http://localhost",
		carsrc.WithToken("a"), carsrc.WithToken("b"),
	)
	assert.Error(t, err)
	_, err = carsrc.New("http://localhost", carsrc.WithHTTPClient(nil))
	assert.Error(t, err)
}

func TestListDecodesCars(t *testing.T) {
	cars := []model.Car{sampleCar("1"), sampleCar("2")}
	fs := newFakeService(t, jsonHandler(http.StatusOK, cars))
	c := newClient(t, fs, carsrc.WithToken("secret"))

	got, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cars, got)

	req := fs.lastReq.Load()
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/car", req.URL.Path)
	assert.Equal(t, "Bearer secret", req.Header.Get("Authorization"))
	assert.NotEmpty(t, req.Header.Get(carsrc.HeaderRequestID))
}

func TestListEmptyBodyIsEmptyList(t *testing.T) {
	for name, h := range map[string]http.HandlerFunc{
		"no body": statusHandler(http.StatusOK),
		"null": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "null")
		},
		"empty list": jsonHandler(http.StatusOK, []model.Car{}),
	} {
		t.Run(name, func(t *testing.T) {
			fs := newFakeService(t, h)
			got, err := newClient(t, fs).List(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestListClassifiesStatusCodes(t *testing.T) {
	fs := newFakeService(t, statusHandler(http.StatusServiceUnavailable))
	_, err := newClient(t, fs).List(context.Background())
	requireKind(t, err, cerr.KindServer, "service unavailable")
}

func TestListClassifiesMalformedBodies(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "{not json")
	})
	_, err := newClient(t, fs).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, cerr.KindUnknown, cerr.KindOf(err))
	assert.Contains(t, err.Error(), "decoding cars")
}

func TestListRejectsOversizedBodies(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "["+strings.Repeat(" ", carsrc.MaxResponseSize)+"]")
	})
	_, err := newClient(t, fs).List(context.Background())
	requireKind(t, err, cerr.KindUnknown, carsrc.MsgResponseTooLarge)
}

func TestListAcceptsBodiesUpToTheLimit(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "["+strings.Repeat(" ", carsrc.MaxResponseSize-2)+"]")
	})
	got, err := newClient(t, fs).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRejectionBodiesAreLogged(t *testing.T) {
	defer slog.SetDefault(slog.Default())
	fs := newFakeService(t, jsonHandler(
		http.StatusBadRequest, carsrc.ErrorResponse{Error: "bad car"},
	))
	c := newClient(t, fs)

	buf := &bytes.Buffer{}
	slog.SetDefault(slog.New(slog.NewTextHandler(buf, nil)))
	_, err := c.List(context.Background())
	requireKind(t, err, cerr.KindBadRequest, "invalid data")
	assert.Contains(t, buf.String(), `response.error="bad car"`)

	buf.Reset()
	slog.SetDefault(slog.New(slog.NewTextHandler(
		buf, &slog.HandlerOptions{Level: slog.LevelWarn},
	)))
	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestMalformedIDsNeverReachTheNetwork(t *testing.T) {
	fs := newFakeService(t, statusHandler(http.StatusOK))
	c := newClient(t, fs)
	ctx := context.Background()

	for id, msg := range map[string]string{
		"":   "identifier is required",
		"  ": "identifier must be numeric",
		"a1": "identifier must be numeric",
	} {
		_, err := c.Get(ctx, id)
		requireKind(t, err, cerr.KindValidation, msg)
		_, err = c.Update(ctx, id, sampleCar("1"))
		requireKind(t, err, cerr.KindValidation, msg)
		_, err = c.Delete(ctx, id)
		requireKind(t, err, cerr.KindValidation, msg)
	}
	assert.Zero(t, fs.calls.Load())
}

func TestInvalidCarsNeverReachTheNetwork(t *testing.T) {
	fs := newFakeService(t, statusHandler(http.StatusOK))
	c := newClient(t, fs)
	car := sampleCar("3")
	car.Licence = "abc-1234"

	_, err := c.Create(context.Background(), car)
	requireKind(t, err, cerr.KindValidation, "licence must be ABC-1234 format")
	_, err = c.Update(context.Background(), "3", car)
	requireKind(t, err, cerr.KindValidation, "licence must be ABC-1234 format")
	assert.Zero(t, fs.calls.Load())
}

func TestGetUnwrapsTheEnvelope(t *testing.T) {
	car := sampleCar("5")
	fs := newFakeService(t, jsonHandler(http.StatusOK, model.CarEnvelope{
		ID: "5", Value: &car,
	}))
	got, err := newClient(t, fs).Get(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, car, *got)
	assert.Equal(t, "/car/5", fs.lastReq.Load().URL.Path)
}

func TestGetFailures(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
		kind cerr.Kind
		msg  string
	}{
		{"not found", statusHandler(http.StatusNotFound), cerr.KindNotFound, "car 9 not found"},
		{"empty body", statusHandler(http.StatusOK), cerr.KindNotFound, carsrc.MsgCarNotFound},
		{"no value", jsonHandler(http.StatusOK, map[string]string{"id": "9"}), cerr.KindNotFound, carsrc.MsgCarNotFound},
		{"forbidden", statusHandler(http.StatusForbidden), cerr.KindForbidden, "forbidden"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := newFakeService(t, tc.h)
			car, err := newClient(t, fs).Get(context.Background(), "9")
			assert.Nil(t, car)
			requireKind(t, err, tc.kind, tc.msg)
		})
	}
}

func TestCreatePostsTheCar(t *testing.T) {
	posted := make(chan model.Car, 1)
	fs := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		var car model.Car
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&car))
		posted <- car
		jsonHandler(http.StatusCreated, car)(w, r)
	})
	car := sampleCar("7")
	got, err := newClient(t, fs).Create(context.Background(), car)
	require.NoError(t, err)
	assert.Equal(t, car, <-posted)
	assert.Equal(t, car, *got)
	assert.Equal(t, http.MethodPost, fs.lastReq.Load().Method)
}

func TestCreateWithoutEchoReturnsTheSentCar(t *testing.T) {
	fs := newFakeService(t, statusHandler(http.StatusCreated))
	car := sampleCar("8")
	got, err := newClient(t, fs).Create(context.Background(), car)
	require.NoError(t, err)
	assert.Equal(t, car, *got)
}

func TestCreateAndUpdateOverrides(t *testing.T) {
	ctx := context.Background()
	car := sampleCar("4")
	tests := []struct {
		status int
		call   func(*carsrc.Client) error
		kind   cerr.Kind
		msg    string
	}{
		{http.StatusConflict, func(c *carsrc.Client) error {
			_, err := c.Create(ctx, car)
			return err
		}, cerr.KindConflict, "car already exists for this id"},
		{http.StatusUnprocessableEntity, func(c *carsrc.Client) error {
			_, err := c.Create(ctx, car)
			return err
		}, cerr.KindUnprocessable, "invalid fields"},
		{http.StatusNotFound, func(c *carsrc.Client) error {
			_, err := c.Update(ctx, "4", car)
			return err
		}, cerr.KindNotFound, "car 4 not found for update"},
		{http.StatusUnprocessableEntity, func(c *carsrc.Client) error {
			_, err := c.Update(ctx, "4", car)
			return err
		}, cerr.KindUnprocessable, "invalid fields"},
		{http.StatusBadRequest, func(c *carsrc.Client) error {
			_, err := c.Update(ctx, "4", car)
			return err
		}, cerr.KindBadRequest, "invalid data"},
	}
	for _, tc := range tests {
		fs := newFakeService(t, jsonHandler(tc.status, carsrc.ErrorResponse{
			Error: "rejected",
		}))
		requireKind(t, tc.call(newClient(t, fs)), tc.kind, tc.msg)
	}
}

func TestUpdatePatchesTheCar(t *testing.T) {
	car := sampleCar("4")
	car.Name = "Renamed"
	fs := newFakeService(t, jsonHandler(http.StatusOK, car))
	got, err := newClient(t, fs).Update(context.Background(), "4", car)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	req := fs.lastReq.Load()
	assert.Equal(t, http.MethodPatch, req.Method)
	assert.Equal(t, "/car/4", req.URL.Path)
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
		msg  string
		kind cerr.Kind
		err  string
	}{
		{name: "message", h: jsonHandler(http.StatusOK, carsrc.DeleteResponse{Message: "bye"}), msg: "bye"},
		{name: "empty body", h: statusHandler(http.StatusNoContent), msg: carsrc.MsgDeleted},
		{name: "empty message", h: jsonHandler(http.StatusOK, carsrc.DeleteResponse{}), msg: carsrc.MsgDeleted},
		{name: "not found", h: statusHandler(http.StatusNotFound), kind: cerr.KindNotFound, err: "car 6 not found for deletion"},
		{name: "in use", h: statusHandler(http.StatusConflict), kind: cerr.KindConflict, err: "cannot delete, car in use"},
		{name: "teapot", h: statusHandler(http.StatusTeapot), kind: cerr.KindUnknown, err: "HTTP 418: I'm a teapot"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := newFakeService(t, tc.h)
			msg, err := newClient(t, fs).Delete(context.Background(), "6")
			if tc.err != "" {
				requireKind(t, err, tc.kind, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.msg, msg)
			assert.Equal(t, http.MethodDelete, fs.lastReq.Load().Method)
		})
	}
}

func TestTransportFailuresAreClassified(t *testing.T) {
	fs := newFakeService(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	c := newClient(t, fs, carsrc.WithTimeout(20*time.Millisecond))
	_, err := c.List(context.Background())
	requireKind(t, err, cerr.KindNetwork, httperr.MsgTimeout)

	fs.Close()
	_, err = newClient(t, fs).List(context.Background())
	requireKind(t, err, cerr.KindNetwork, httperr.MsgNetwork)
}

func TestMetricsAreRecorded(t *testing.T) {
	m := metrics.NewClient(prometheus.NewRegistry())
	fs := newFakeService(t, statusHandler(http.StatusNotFound))
	c := newClient(t, fs, carsrc.WithMetrics(m))

	_, _ = c.Get(context.Background(), "1")
	_, _ = c.Get(context.Background(), "x")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("get", "not-found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("get", "validation")))
}
