// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package carsrc is the REST client adapter of the remote cars service.
// It implements the repo.CarsRemote interface on top of the /car
// endpoint, validating the local inputs before sending any request and
// classifying all failures (by the httperr package) so that callers
// only see *cerr.Error instances with end-user presentable messages.
package carsrc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/carsync/pkg/adapter/metrics"
	"github.com/momeni/carsync/pkg/adapter/restful/httperr"
	"github.com/momeni/carsync/pkg/core/cerr"
	"github.com/momeni/carsync/pkg/core/log"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/repo"
)

// HeaderRequestID carries a fresh identifier for each request, so the
// client and service logs of one call can be correlated.
const HeaderRequestID = "X-Request-ID"

// MsgCarNotFound is reported by Get when the service responds with a
// successful status, but without any car.
const MsgCarNotFound = "car not found"

// MaxResponseSize is the maximum accepted size of a response body.
// Larger successful responses fail with MsgResponseTooLarge.
const MaxResponseSize = 10 << 20

// MsgResponseTooLarge is reported for responses over MaxResponseSize.
const MsgResponseTooLarge = "cars response is too large"

var errResponseTooLarge = errors.New(MsgResponseTooLarge)

const (
	carsPath = "/car"

	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Client is a cars REST client. It keeps no per-call state and may be
// used by many goroutines concurrently.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	token      string
	metrics    *metrics.Client
}

var _ repo.CarsRemote = (*Client)(nil)

// New instantiates a cars REST Client which sends its requests to the
// baseURL service, e.g., "http://localhost:8080" which serves the
// "http://localhost:8080/car" endpoint.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf(
			"base url %q is not an absolute http(s) url", baseURL,
		)
	}
	c := &Client{baseURL: strings.TrimRight(baseURL, "/")}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.timeout != 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// List fetches all cars. An empty response body yields an empty list.
func (c *Client) List(ctx context.Context) (cars []model.Car, err error) {
	defer c.finish(opList, time.Now(), &err)
	body, err := c.send(ctx, request{op: opList, method: http.MethodGet})
	if err != nil {
		return nil, err
	}
	if isEmpty(body) {
		return []model.Car{}, nil
	}
	if err := json.Unmarshal(body, &cars); err != nil {
		return nil, decodingError("cars", err)
	}
	if cars == nil {
		cars = []model.Car{}
	}
	return cars, nil
}

// Get fetches the id car. A malformed id is rejected without sending
// any request.
func (c *Client) Get(ctx context.Context, id string) (car *model.Car, err error) {
	defer c.finish(opGet, time.Now(), &err)
	if err := model.ValidateID(id); err != nil {
		return nil, cerr.Validation(err)
	}
	body, err := c.send(ctx, request{
		op:     opGet,
		method: http.MethodGet,
		id:     id,
		overrides: httperr.Overrides{
			http.StatusNotFound: fmt.Sprintf("car %s not found", id),
		},
	})
	if err != nil {
		return nil, err
	}
	if isEmpty(body) {
		return nil, cerr.New(cerr.KindNotFound, http.StatusOK, MsgCarNotFound)
	}
	var env model.CarEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodingError("car", err)
	}
	if env.Value == nil {
		return nil, cerr.New(cerr.KindNotFound, http.StatusOK, MsgCarNotFound)
	}
	if env.Value.ID == "" {
		env.Value.ID = env.ID
	}
	return env.Value, nil
}

// Create validates and posts the car, returning the stored car as
// reported by the service. If the service accepts the car without
// echoing it back, the sent car is returned.
func (c *Client) Create(ctx context.Context, car model.Car) (_ *model.Car, err error) {
	defer c.finish(opCreate, time.Now(), &err)
	if err := car.Validate(); err != nil {
		return nil, cerr.Validation(err)
	}
	body, err := c.send(ctx, request{
		op:     opCreate,
		method: http.MethodPost,
		body:   car,
		overrides: httperr.Overrides{
			http.StatusConflict:            "car already exists for this id",
			http.StatusUnprocessableEntity: "invalid fields",
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeCar(body, car)
}

// Update validates the id and car and patches the id car with it,
// returning the stored car as reported by the service.
func (c *Client) Update(
	ctx context.Context, id string, car model.Car,
) (_ *model.Car, err error) {
	defer c.finish(opUpdate, time.Now(), &err)
	if err := model.ValidateID(id); err != nil {
		return nil, cerr.Validation(err)
	}
	if err := car.Validate(); err != nil {
		return nil, cerr.Validation(err)
	}
	body, err := c.send(ctx, request{
		op:     opUpdate,
		method: http.MethodPatch,
		id:     id,
		body:   car,
		overrides: httperr.Overrides{
			http.StatusNotFound: fmt.Sprintf(
				"car %s not found for update", id,
			),
			http.StatusUnprocessableEntity: "invalid fields",
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeCar(body, car)
}

// Delete removes the id car and returns the confirmation message of
// the service, or MsgDeleted if the service sent no message.
func (c *Client) Delete(ctx context.Context, id string) (msg string, err error) {
	defer c.finish(opDelete, time.Now(), &err)
	if err := model.ValidateID(id); err != nil {
		return "", cerr.Validation(err)
	}
	body, err := c.send(ctx, request{
		op:     opDelete,
		method: http.MethodDelete,
		id:     id,
		overrides: httperr.Overrides{
			http.StatusNotFound: fmt.Sprintf(
				"car %s not found for deletion", id,
			),
			http.StatusConflict: "cannot delete, car in use",
		},
	})
	if err != nil {
		return "", err
	}
	if isEmpty(body) {
		return MsgDeleted, nil
	}
	var dr DeleteResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return "", decodingError("deletion confirmation", err)
	}
	if dr.Message == "" {
		return MsgDeleted, nil
	}
	return dr.Message, nil
}

// request describes one call of the cars endpoint.
type request struct {
	op        string
	method    string
	id        string // empty for the collection
	body      any    // nil for requests without body
	overrides httperr.Overrides
}

func (r request) path() string {
	if r.id == "" {
		return carsPath
	}
	return carsPath + "/" + url.PathEscape(r.id)
}

// send performs the r request and returns the response body if the
// service responded with a 2xx status code. Otherwise, the classified
// transport or status error is returned.
func (c *Client) send(ctx context.Context, r request) ([]byte, error) {
	var payload io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, httperr.Classify(
				fmt.Errorf("encoding %s request: %w", r.op, err),
			)
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(
		ctx, r.method, c.baseURL+r.path(), payload,
	)
	if err != nil {
		return nil, httperr.Classify(err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rid := uuid.NewString()
	req.Header.Set(HeaderRequestID, rid)
	attrs := []slog.Attr{
		slog.String("op", r.op),
		slog.String("method", r.method),
		slog.String("path", req.URL.Path),
		slog.String("request-id", rid),
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		ce := httperr.Classify(err)
		log.Info(ctx, "cars request failed", append(
			attrs, log.Elapsed("elapsed", start), log.Err("err", err),
		)...)
		return nil, ce
	}
	defer func() { _ = resp.Body.Close() }()
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if readErr == nil && len(body) > MaxResponseSize {
		body, readErr = body[:MaxResponseSize], errResponseTooLarge
	}
	attrs = append(
		attrs,
		slog.Int("status", resp.StatusCode),
		log.Elapsed("elapsed", start),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ce := httperr.FromStatus(
			resp.StatusCode, httperr.StatusText(resp), r.overrides,
		)
		attrs = append(attrs, log.Err("err", ce))
		var er ErrorResponse
		if len(body) > 0 && log.Enabled(ctx, slog.LevelInfo) &&
			json.Unmarshal(body, &er) == nil {
			attrs = append(attrs, log.Valuer("response", er))
		}
		log.Info(ctx, "cars request was rejected", attrs...)
		return nil, ce
	}
	if readErr != nil {
		log.Info(ctx, "reading cars response failed", append(
			attrs, log.Err("err", readErr),
		)...)
		return nil, httperr.Classify(readErr)
	}
	log.Debug(ctx, "cars request completed", attrs...)
	return body, nil
}

// finish records the op call metrics and converts a panic of the call
// into an Unknown error, so no panic escapes from the Client methods.
// It must be deferred directly.
func (c *Client) finish(op string, start time.Time, err *error) {
	if p := recover(); p != nil {
		*err = cerr.Unknown(fmt.Errorf("%s call panicked: %v", op, p))
	}
	c.metrics.Observe(op, start, *err)
}

func decodeCar(body []byte, sent model.Car) (*model.Car, error) {
	if isEmpty(body) {
		return &sent, nil
	}
	var car model.Car
	if err := json.Unmarshal(body, &car); err != nil {
		return nil, decodingError("car", err)
	}
	return &car, nil
}

func decodingError(what string, err error) *cerr.Error {
	return httperr.Classify(fmt.Errorf("decoding %s: %w", what, err))
}

func isEmpty(body []byte) bool {
	b := bytes.TrimSpace(body)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

