// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"
	"github.com/momeni/carsync/pkg/core/log"
	"github.com/momeni/carsync/pkg/core/model"
	"github.com/momeni/carsync/pkg/core/usecase/syncuc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var carsCmd = &cobra.Command{
	Use:   "cars",
	Short: "Manages the cars of a remote cars service",
	Long: `Manages the cars of the remote cars service which is configured
by client.base-url. Cars are validated before being sent, so malformed
cars are rejected without any request.`,
}

var carsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists all cars",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, s *syncuc.Store, cmd *cobra.Command, _ []string) error {
		<-s.Refresh(ctx)
		st, err := outcome(s)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st.Items)
	}),
}

var carsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Shows one car",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, s *syncuc.Store, cmd *cobra.Command, args []string) error {
		<-s.Load(ctx, args[0])
		st, err := outcome(s)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st.Current)
	}),
}

var carsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Adds a car",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, s *syncuc.Store, cmd *cobra.Command, _ []string) error {
		car := model.Car{}
		applyCarFlags(cmd.Flags(), &car)
		<-s.Add(ctx, car)
		st, err := outcome(s)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st.Current)
	}),
}

var carsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Updates the given fields of a car",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, s *syncuc.Store, cmd *cobra.Command, args []string) error {
		id := args[0]
		<-s.Load(ctx, id)
		st, err := outcome(s)
		if err != nil {
			return err
		}
		car := *st.Current
		applyCarFlags(cmd.Flags(), &car)
		<-s.Update(ctx, id, car)
		if st, err = outcome(s); err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), st.Current)
	}),
}

var carsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Deletes a car",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, s *syncuc.Store, cmd *cobra.Command, args []string) error {
		<-s.Remove(ctx, args[0])
		st, err := outcome(s)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), st.Message)
		return err
	}),
}

// carFlags keeps the values of the car fields flags. Only the changed
// flags are applied to a car, so update may change a subset of fields.
var carFlags struct {
	id, name, year, licence, imageURL string
	lat, lon                          float64
}

func init() {
	for _, c := range []*cobra.Command{carsAddCmd, carsUpdateCmd} {
		fs := c.Flags()
		fs.StringVar(&carFlags.name, "name", "", "display name")
		fs.StringVar(&carFlags.year, "year", "", "model year")
		fs.StringVar(&carFlags.licence, "licence", "", "plate, like ABC-1234")
		fs.StringVar(&carFlags.imageURL, "image-url", "", "picture url")
		fs.Float64Var(&carFlags.lat, "lat", 0, "latitude of the car place")
		fs.Float64Var(&carFlags.lon, "lon", 0, "longitude of the car place")
	}
	carsAddCmd.Flags().StringVar(&carFlags.id, "id", "", "numeric identifier")
	carsCmd.AddCommand(
		carsListCmd, carsGetCmd, carsAddCmd, carsUpdateCmd, carsDeleteCmd,
	)
}

func applyCarFlags(fs *pflag.FlagSet, car *model.Car) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "id":
			car.ID = carFlags.id
		case "name":
			car.Name = carFlags.name
		case "year":
			car.Year = carFlags.year
		case "licence":
			car.Licence = carFlags.licence
		case "image-url":
			car.ImageURL = carFlags.imageURL
		case "lat":
			car.Place.Lat = carFlags.lat
		case "lon":
			car.Place.Lon = carFlags.lon
		}
	})
}

type storeRunner func(
	ctx context.Context, s *syncuc.Store, cmd *cobra.Command, args []string,
) error

// withStore creates a cars store, backed by the configured REST client,
// for the duration of the f sub-command. All published states of the
// store and the client metrics are logged in the debug level.
func withStore(f storeRunner) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		reg := prometheus.NewRegistry()
		cl, err := cfg.Client.NewClient(reg)
		if err != nil {
			return err
		}
		defer reportMetrics(ctx, reg)
		s, err := cfg.Store.NewStore(cl)
		if err != nil {
			return err
		}
		defer s.Close()
		cancel := s.Subscribe(func(st syncuc.State) {
			log.Debug(ctx, "cars store changed", log.Valuer("state", st))
		})
		defer cancel()
		return f(ctx, s, cmd, args)
	}
}

// reportMetrics logs the metrics which are gathered from g, one record
// per labeled series, in the debug level.
func reportMetrics(ctx context.Context, g prometheus.Gatherer) {
	if !log.Enabled(ctx, slog.LevelDebug) {
		return
	}
	mfs, err := g.Gather()
	if err != nil {
		log.Warn(ctx, "gathering client metrics", log.Err("err", err))
		return
	}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			attrs := make([]slog.Attr, 0, len(m.GetLabel())+2)
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, slog.String(lp.GetName(), lp.GetValue()))
			}
			if c := m.GetCounter(); c != nil {
				attrs = append(attrs, slog.Float64("value", c.GetValue()))
			}
			if h := m.GetHistogram(); h != nil {
				attrs = append(attrs,
					slog.Uint64("count", h.GetSampleCount()),
					slog.Float64("sum", h.GetSampleSum()),
				)
			}
			log.Debug(ctx, mf.GetName(), attrs...)
		}
	}
}

// outcome returns the current state of s, or the last error of s as
// an error value.
func outcome(s *syncuc.Store) (syncuc.State, error) {
	st := s.Snapshot()
	if st.LastError != "" {
		return st, errors.New(st.LastError)
	}
	return st, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}
