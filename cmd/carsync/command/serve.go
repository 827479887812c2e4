// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momeni/carsync/pkg/adapter/restful/gin/routes"
	"github.com/momeni/carsync/pkg/core/log"
	"github.com/momeni/carsync/pkg/core/usecase/carsuc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the reference cars service",
	Long: `Runs the reference cars service which serves the /car REST API,
the /metrics prometheus metrics, and the /healthz health check.
Cars are kept in a PostgreSQL database if server.database-url is
configured, otherwise, they are kept in memory until the service stops.`,
	Args: cobra.NoArgs,
	RunE: startWebServer,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	p, cars, err := cfg.Server.NewPool(ctx)
	if err != nil {
		return fmt.Errorf("creating storage pool: %w", err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Warn(ctx, "closing storage pool", log.Err("err", err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	var opts []carsuc.Option
	if *cfg.Server.Migrate {
		opts = append(opts, carsuc.WithMigration())
	}
	e := cfg.Gin.NewEngine()
	if err = routes.Register(ctx, e, p, cars, reg, opts...); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	log.Info(ctx, "cars service is listening",
		slog.String("address", cfg.Server.Address),
		slog.Bool("postgres", cfg.Server.DatabaseURL != ""),
	)

	select {
	case err = <-errs:
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down the cars service")
	sctx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), shutdownTimeout,
	)
	defer cancel()
	if err = srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err = <-errs; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving http: %w", err)
	}
	return nil
}
