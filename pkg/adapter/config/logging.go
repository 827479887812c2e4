// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/momeni/carsync/pkg/adapter/config/settings"
)

// These constants are the supported logging formats.
const (
	FormatText = "text" // slog.TextHandler
	FormatJSON = "json" // slog.JSONHandler
	FormatTint = "tint" // colorized text for terminals
)

// Logging contains the structured logging settings.
type Logging struct {
	Level  string // debug, info, warn, or error
	Format string // one of text, json, or tint

	level slog.Level
}

// ValidateAndNormalize fills the missing level and format settings
// with their default values and ensures that they are supported.
func (l *Logging) ValidateAndNormalize() error {
	settings.Zero2Default(&l.Level, DefaultLevel)
	settings.Zero2Default(&l.Format, DefaultFormat)
	l.Level = strings.ToLower(l.Level)
	l.Format = strings.ToLower(l.Format)
	if err := l.level.UnmarshalText([]byte(l.Level)); err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	switch l.Format {
	case FormatText, FormatJSON, FormatTint:
	default:
		return fmt.Errorf("unsupported log format: %q", l.Format)
	}
	return nil
}

// SetLevel overrides the configured logging level, e.g., by a CLI flag.
func (l *Logging) SetLevel(level slog.Level) {
	l.level = level
	l.Level = strings.ToLower(level.String())
}

// NewHandler creates a slog handler which writes to w, as configured
// by the l settings. The tint handler only emits colors if w is a
// terminal.
func (l Logging) NewHandler(w io.Writer) slog.Handler {
	switch l.Format {
	case FormatJSON:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: l.level,
		})
	case FormatTint:
		noColor := true
		if f, ok := w.(*os.File); ok {
			noColor = !isatty.IsTerminal(f.Fd())
		}
		return tint.NewHandler(w, &tint.Options{
			Level:      l.level,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: l.level,
		})
	}
}
