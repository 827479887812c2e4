// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config is an adapter which accepts yaml formatted config
// files from its users and allows the carsync commands to instantiate
// different components, from the adapter or use cases layers, using
// those loaded configuration settings.
// The parsed and validated settings are passed to their ultimate
// components as a series of individual params (for the mandatory
// items) and a series of functional options (for the optional items),
// so each component validates its own settings again.
package config

import (
	"fmt"
	"os"

	"github.com/momeni/carsync/pkg/adapter/config/settings"
	"github.com/momeni/carsync/pkg/adapter/restful/carsrc"
	"gopkg.in/yaml.v3"
)

// These constants are the default values of the optional settings.
const (
	DefaultBaseURL = "http://localhost:8080"
	DefaultAddress = ":8080"
	DefaultLevel   = "info"
	DefaultFormat  = FormatText
)

// Config contains all settings which are required by the carsync
// commands. The client and store settings are used by the cars
// sub-commands, while the server and gin settings are used by the
// serve sub-command. Logging settings are used by all commands.
type Config struct {
	Client  Client  // REST client of the cars service
	Store   Store   // cars synchronization store
	Server  Server  // reference cars service
	Gin     Gin     // Gin-Gonic instantiation settings
	Logging Logging // structured logging handler
}

// Load reads the path configuration file, expands the environment
// variables which are referenced in its contents (e.g., ${CARS_TOKEN}),
// and parses it using the Parse function.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse unmarshals the data byte slice as a Config instance. Extra
// items in the data are ignored and missing items take their default
// values. Thereafter, the Config is validated and normalized in order
// to ensure that provided settings are acceptable.
// An empty data is acceptable and yields the default settings.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	return c, nil
}

// ValidateAndNormalize validates the configuration settings and
// returns an error if they were not acceptable. It also replaces the
// missing settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Client.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating client settings: %w", err)
	}
	settings.Nil2Zero(&c.Store.SerializeOps)
	settings.Zero2Default(&c.Server.Address, DefaultAddress)
	settings.OverwriteNil(&c.Server.Migrate, true)
	settings.OverwriteNil(&c.Gin.Logger, true)
	settings.OverwriteNil(&c.Gin.Recovery, true)
	if err := c.Logging.ValidateAndNormalize(); err != nil {
		return fmt.Errorf("validating logging settings: %w", err)
	}
	return nil
}

// Marshal encodes c in the YAML format, as expected by Parse.
func (c *Config) Marshal() ([]byte, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling yaml: %w", err)
	}
	return b, nil
}

// ValidateAndNormalize checks the client settings, filling the missing
// base url and timeout with their default values.
func (c *Client) ValidateAndNormalize() error {
	settings.Zero2Default(&c.BaseURL, DefaultBaseURL)
	settings.OverwriteNil(
		&c.Timeout, settings.Duration(carsrc.DefaultTimeout),
	)
	if *c.Timeout <= 0 {
		return fmt.Errorf(
			"timeout must be positive, got %s", *c.Timeout.Marshal(),
		)
	}
	return nil
}
