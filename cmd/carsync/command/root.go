// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the carsync
// program. Commands are organized using the cobra library.
// The "serve" sub-command runs the reference cars service, while the
// "cars" sub-command synchronizes with a remote cars service and
// manages its cars.
//
//	./carsync serve [-c /path/of/config.yaml]
//	./carsync cars list [-c /path/of/config.yaml]
//	./carsync cars get 12
//	./carsync cars add --id 12 --name Tesla --year 2021 \
//	    --licence ABC-1234 --image-url https://... --lat 35.7 --lon 51.4
//	./carsync cars update 12 --name Roadster ...
//	./carsync cars delete 12
//
// Environment variables may be defined in a .env file in the working
// directory too. They can be referenced by the config file contents.
package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/carsync/pkg/adapter/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	isDebug bool

	// cfg is loaded before running any sub-command
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "carsync",
	Short: "A cars REST synchronization client and its reference service",
	Long: `A cars REST synchronization client and its reference service.
The client validates cars before sending them, classifies the network
and HTTP failures as a few user presentable errors, and keeps a local
list of cars consistent with the remote service by applying each
change optimistically and refreshing the list from the service.
The reference service realizes the /car REST API using Gin Gonic,
keeping cars in memory or in a PostgreSQL database.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// loadConfig loads the .env file (if any) and the configuration file,
// and installs the configured logging handler as the default one.
func loadConfig(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	fixConfigPath()
	var err error
	if cfgPath == "" {
		cfg, err = config.Parse(nil)
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if isDebug {
		cfg.Logging.SetLevel(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(cfg.Logging.NewHandler(os.Stderr)))
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.PersistentFlags().BoolVar(
		&isDebug, "debug", false, "enable debug logging",
	)
	rootCmd.AddCommand(serveCmd, carsCmd)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args or the CONFIG_FILE environment variable. An empty cfgPath
// means that default settings should be used.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	cfgPath = os.Getenv("CONFIG_FILE")
}
