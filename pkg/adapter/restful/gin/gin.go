// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package gin adapts the gin-gonic web framework for the reference
// cars service. Its sub-packages realize the REST resources, while
// this package provides the engine and its middlewares.
package gin

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/carsync/pkg/adapter/metrics"
	"github.com/momeni/carsync/pkg/core/log"
)

type HandlerFunc = gin.HandlerFunc
type Engine = gin.Engine

// HeaderRequestID is echoed back in responses. A fresh identifier is
// generated for requests which do not carry one.
const HeaderRequestID = "X-Request-ID"

func New(middlewares ...HandlerFunc) *Engine {
	e := gin.New()
	e.Use(middlewares...)
	return e
}

func Recovery() HandlerFunc {
	return gin.Recovery()
}

// RequestLogger returns a middleware which assigns a request identifier
// to each request (unless the client sent one) and logs the request
// using the structured logger after it is served.
func RequestLogger() HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)
		start := time.Now()

		c.Next()

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.String("request-id", rid),
			log.Elapsed("elapsed", start),
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			attrs = append(attrs, slog.String("errors", errs.String()))
		}
		if c.Writer.Status() >= 500 {
			log.Warn(c, "request failed", attrs...)
			return
		}
		log.Info(c, "request served", attrs...)
	}
}

// Metrics returns a middleware which records the served requests in m,
// labeled by their route pattern instead of their raw path.
func Metrics(m *metrics.Server) HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Observe(c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}
}
