// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the selected storage backend.
package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/carsync/pkg/adapter/metrics"
	cagin "github.com/momeni/carsync/pkg/adapter/restful/gin"
	"github.com/momeni/carsync/pkg/adapter/restful/gin/carsrs"
	"github.com/momeni/carsync/pkg/core/repo"
	"github.com/momeni/carsync/pkg/core/usecase/carsuc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register instantiates the cars use case with the p connections pool
// and the cars repository (which must match the p storage backend) and
// the given use case options, e.g., carsuc.WithMigration. The use case is
// adapted by the cars resource and registered on the e engine as the
// /car REST API. When reg is not nil, the served requests are recorded
// in reg and its metrics are served at the /metrics path too.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, cars repo.Cars,
	reg *prometheus.Registry, opts ...carsuc.Option,
) error {
	carsUseCase, err := carsuc.New(ctx, p, cars, opts...)
	if err != nil {
		return fmt.Errorf("creating cars use case: %w", err)
	}
	if reg != nil {
		e.Use(cagin.Metrics(metrics.NewServer(reg)))
		e.GET("metrics", gin.WrapH(
			promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		))
	}
	carsrs.Register(e, carsUseCase)
	e.GET("healthz", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return nil
}
